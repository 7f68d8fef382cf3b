package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type KeyMap struct {
	Search     tea.Key
	Expr       tea.Key
	Favorites  tea.Key
	Toggle     tea.Key
	Open       tea.Key
	Back       tea.Key
	Prev       tea.Key
	PrevAlt    tea.Key
	Next       tea.Key
	NextAlt    tea.Key
	Translate  tea.Key
	Copy       tea.Key
	Retry      tea.Key
	Banner     tea.Key
	AppLogs    tea.Key
	Help       tea.Key
	Quit       tea.Key
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Search:    tea.Key{Type: tea.KeyRunes, Runes: []rune{'/'}},
		Expr:      tea.Key{Type: tea.KeyRunes, Runes: []rune{'w'}},
		Favorites: tea.Key{Type: tea.KeyRunes, Runes: []rune{'f'}},
		Toggle:    tea.Key{Type: tea.KeyRunes, Runes: []rune{' '}},
		Open:      tea.Key{Type: tea.KeyEnter},
		Back:      tea.Key{Type: tea.KeyEsc},
		Prev:      tea.Key{Type: tea.KeyLeft},
		PrevAlt:   tea.Key{Type: tea.KeyRunes, Runes: []rune{'h'}},
		Next:      tea.Key{Type: tea.KeyRight},
		NextAlt:   tea.Key{Type: tea.KeyRunes, Runes: []rune{'l'}},
		Translate: tea.Key{Type: tea.KeyRunes, Runes: []rune{'t'}},
		Copy:      tea.Key{Type: tea.KeyRunes, Runes: []rune{'c'}},
		Retry:     tea.Key{Type: tea.KeyRunes, Runes: []rune{'r'}},
		Banner:    tea.Key{Type: tea.KeyRunes, Runes: []rune{'b'}},
		AppLogs:   tea.Key{Type: tea.KeyRunes, Runes: []rune{'L'}},
		Help:      tea.Key{Type: tea.KeyRunes, Runes: []rune{'?'}},
		Quit:      tea.Key{Type: tea.KeyRunes, Runes: []rune{'q'}},
	}
}

func keyMatches(msg tea.KeyMsg, k tea.Key) bool {
	if k.Type != tea.KeyRunes {
		return msg.Type == k.Type
	}
	if len(k.Runes) > 0 {
		return msg.String() == string(k.Runes)
	}
	return false
}

// binding adapts a tea.Key to the help bar.
func binding(desc string, ks ...tea.Key) key.Binding {
	keys := make([]string, 0, len(ks))
	labels := ""
	for i, k := range ks {
		keys = append(keys, k.String())
		if i > 0 {
			labels += "/"
		}
		labels += keyLabel(k)
	}
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(labels, desc))
}

func (m *Model) shortHelp() []key.Binding {
	km := m.keymap
	switch {
	case m.inlineMode != inlineNone:
		return []key.Binding{
			binding("terapkan", tea.Key{Type: tea.KeyEnter}),
			binding("batal", km.Back),
		}
	case m.view == viewDetail:
		return []key.Binding{
			binding("sebelumnya", km.Prev, km.PrevAlt),
			binding("selanjutnya", km.Next, km.NextAlt),
			binding("terjemahan", km.Translate),
			binding("salin", km.Copy),
			binding("kembali", km.Back),
			binding("bantuan", km.Help),
		}
	default:
		return []key.Binding{
			binding("cari", km.Search),
			binding("favorit", km.Favorites),
			binding("tandai", km.Toggle),
			binding("buka", km.Open),
			binding("bantuan", km.Help),
			binding("keluar", km.Quit),
		}
	}
}
