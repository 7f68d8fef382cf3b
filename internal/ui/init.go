package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"doaharian/internal/config"
	"doaharian/internal/reward"
	"doaharian/internal/screen"
)

const bannerText = "Iklan · Dukung Doa Harian dengan menonton iklan"

func initialModel(ctx context.Context, cfg *config.Config, src screen.Source, ads *reward.Machine) *Model {
	m := &Model{
		ctx:     ctx,
		cfg:     cfg,
		src:     src,
		ads:     ads,
		view:    viewList,
		list:    screen.NewList(),
		detail:  screen.NewDetail(""),
		banner:  reward.NewBanner(ads, bannerText),
		help:    help.New(),
		styles:  NewStyles(cfg.Theme == config.ThemeDark),
		keymap:  DefaultKeyMap(),
		search:  textinput.New(),
		spin:    spinner.New(),
		modalVP: viewport.New(60, 10),
	}
	m.spin.Spinner = spinner.Dot
	m.search.Placeholder = "Cari doa..."
	m.search.CharLimit = 128
	m.search.Prompt = "/"
	m.viewport = viewport.New(80, 20)

	m.tbl = table.New(table.WithFocused(true), table.WithHeight(20))
	m.tbl.SetColumns(listColumns(80))
	ts := table.DefaultStyles()
	ts.Header = m.styles.TableStyles.Header
	ts.Cell = m.styles.TableStyles.Cell
	ts.Selected = m.styles.TableStyles.Selected
	m.tbl.SetStyles(ts)
	// f, space and b belong to the list screen
	m.tbl.KeyMap.PageDown = key.NewBinding(key.WithKeys("pgdown"))
	m.tbl.KeyMap.PageUp = key.NewBinding(key.WithKeys("pgup"))
	m.tbl.KeyMap.HalfPageDown = key.NewBinding(key.WithKeys("ctrl+d"))
	m.tbl.KeyMap.HalfPageUp = key.NewBinding(key.WithKeys("ctrl+u"))
	return m
}

func listColumns(width int) []table.Column {
	name := width - 2 - 6 - 3
	if name < 10 {
		name = 10
	}
	return []table.Column{{Title: "", Width: 2}, {Title: "No", Width: 5}, {Title: "Nama Doa", Width: name}}
}

func Run(ctx context.Context, cfg *config.Config, src screen.Source, ads *reward.Machine) error {
	m := initialModel(ctx, cfg, src, ads)
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	m.ads.Load()
	return tea.Batch(m.fetchList(), tickCmd())
}

func tickCmd() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(time.Time) tea.Msg { return tickMsg{} })
}
