package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"doaharian/internal/config"
	"doaharian/internal/model"
	"doaharian/internal/reward"
	"doaharian/internal/screen"
)

type view int

const (
	viewList view = iota
	viewDetail
)

type modalKind int

const (
	modalNone modalKind = iota
	modalHelp
	modalLogs
	modalNotice
)

type inlineMode int

const (
	inlineNone inlineMode = iota
	inlineSearch
	inlineExpr
)

type target int

const (
	targetList target = iota
	targetDetail
)

type tickMsg struct{}

// fetchDoneMsg carries one fetch outcome. detail is the detail screen that
// asked for it; a result for a screen that has since closed is dropped.
type fetchDoneMsg struct {
	target target
	detail *screen.Detail
	recs   []model.Record
	err    error
}

type rewardDoneMsg struct {
	id     string
	earned bool
	err    error
}

type Model struct {
	ctx context.Context
	cfg *config.Config
	src screen.Source
	ads *reward.Machine

	// Screens
	view     view
	list     *screen.List
	detail   *screen.Detail
	watching bool
	banner   *reward.Banner

	// UI
	tbl        table.Model
	help       help.Model
	styles     Styles
	search     textinput.Model
	viewport   viewport.Model
	spin       spinner.Model
	keymap     KeyMap
	termWidth  int
	termHeight int

	inlineMode inlineMode
	lastMsg    string

	// Modal popup
	modalActive bool
	modalKind   modalKind
	modalVP     viewport.Model
	modalTitle  string
	modalBody   string

	// Help menu state
	helpItems []helpItem
	helpSel   int
}

type helpItem struct {
	group string
	text  string
	key   tea.Key
}

func keyCmd(k tea.Key) tea.Cmd {
	return func() tea.Msg {
		if k.Type == tea.KeyRunes {
			return tea.KeyMsg{Type: k.Type, Runes: k.Runes}
		}
		return tea.KeyMsg{Type: k.Type}
	}
}

func keyLabel(k tea.Key) string {
	switch k.Type {
	case tea.KeyRunes:
		if len(k.Runes) == 1 {
			r := k.Runes[0]
			if r == ' ' {
				return "space"
			}
			return string(r)
		}
		return strings.ToLower(string(k.Runes))
	case tea.KeyEnter:
		return "enter"
	case tea.KeyEsc:
		return "esc"
	case tea.KeyLeft:
		return "←"
	case tea.KeyRight:
		return "→"
	case tea.KeyUp:
		return "↑"
	case tea.KeyDown:
		return "↓"
	default:
		return strings.ToLower(k.String())
	}
}
