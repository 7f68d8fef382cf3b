package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"doaharian/internal/crash"
	"doaharian/internal/model"
	"doaharian/internal/reward"
	"doaharian/internal/screen"
	"doaharian/internal/util/logx"
)

func (m *Model) buildHelpItems() []helpItem {
	km := m.keymap
	return []helpItem{
		{group: "Daftar", text: "Cari nama doa", key: km.Search},
		{group: "Daftar", text: "Filter lanjutan (ekspresi)", key: km.Expr},
		{group: "Daftar", text: "Hanya favorit", key: km.Favorites},
		{group: "Daftar", text: "Tandai/hapus favorit", key: km.Toggle},
		{group: "Daftar", text: "Buka doa", key: km.Open},

		{group: "Doa", text: "Sebelumnya", key: km.Prev},
		{group: "Doa", text: "Selanjutnya", key: km.Next},
		{group: "Doa", text: reward.ButtonLabel, key: km.Translate},
		{group: "Doa", text: "Salin teks doa", key: km.Copy},
		{group: "Doa", text: screen.BackLabel, key: km.Back},

		{group: "Aplikasi", text: screen.RetryLabel, key: km.Retry},
		{group: "Aplikasi", text: "Tutup iklan banner", key: km.Banner},
		{group: "Aplikasi", text: "Log aplikasi", key: km.AppLogs},
		{group: "Aplikasi", text: "Keluar", key: km.Quit},
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth, m.termHeight = msg.Width, msg.Height
		// title, search line, status, help, banner
		h := msg.Height - 6
		if h < 3 {
			h = 3
		}
		m.tbl.SetHeight(h)
		m.tbl.SetWidth(msg.Width)
		m.tbl.SetColumns(listColumns(msg.Width))
		m.viewport.Width = msg.Width
		m.viewport.Height = h
		if m.modalActive {
			m.resizeModal()
		}
		return m, nil

	case tickMsg:
		return m, tickCmd()

	case spinner.TickMsg:
		if !m.loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case fetchDoneMsg:
		m.applyFetch(msg)
		return m, nil

	case rewardDoneMsg:
		m.applyReward(msg)
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.modalActive {
			return m.updateModal(msg)
		}
		if m.inlineMode != inlineNone {
			return m.updateInline(msg)
		}
		if cmd, ok := m.globalKey(msg); ok {
			return m, cmd
		}
		if m.view == viewDetail {
			return m.updateDetail(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m *Model) loading() bool {
	if m.view == viewDetail {
		return m.detail.Phase() == screen.Loading
	}
	return m.list.Phase() == screen.Loading
}

// fetchList starts a list fetch. A fetch already in flight is not
// cancelled; whichever result arrives last is shown.
func (m *Model) fetchList() tea.Cmd {
	m.list.Begin()
	m.rebuildRows()
	return tea.Batch(m.spin.Tick, fetchCmd(m, targetList, nil))
}

func (m *Model) fetchDetail() tea.Cmd {
	m.detail.Begin()
	return tea.Batch(m.spin.Tick, fetchCmd(m, targetDetail, m.detail))
}

func fetchCmd(m *Model, t target, d *screen.Detail) tea.Cmd {
	ctx, src := m.ctx, m.src
	return func() (msg tea.Msg) {
		defer func() {
			if v := recover(); v != nil {
				crash.Report("ui.fetch", v)
				msg = fetchDoneMsg{target: t, detail: d, err: fmt.Errorf("panic: %v", v)}
			}
		}()
		recs, err := src.Fetch(ctx)
		return fetchDoneMsg{target: t, detail: d, recs: recs, err: err}
	}
}

func (m *Model) applyFetch(msg fetchDoneMsg) {
	switch msg.target {
	case targetList:
		if msg.err != nil {
			m.list.Fail(msg.err)
		} else {
			m.list.Load(msg.recs)
		}
		m.rebuildRows()
	case targetDetail:
		if msg.detail != m.detail {
			logx.Debugf("ui: dropping fetch for closed detail %s", msg.detail.ID())
			return
		}
		if msg.err != nil {
			m.detail.Fail(msg.err)
		} else {
			m.detail.Load(msg.recs)
		}
		m.viewport.GotoTop()
	}
}

func (m *Model) applyReward(msg rewardDoneMsg) {
	m.watching = false
	if msg.err != nil {
		m.lastMsg = reward.Notice(msg.err)
		return
	}
	if !msg.earned {
		m.lastMsg = "Iklan ditutup sebelum selesai."
		return
	}
	// The unlock only counts for the prayer that was on screen.
	if m.view != viewDetail || m.detail.ID() != msg.id {
		return
	}
	m.detail.Unlock()
	m.openNoticeModal(reward.EarnedTitle, reward.EarnedMessage)
}

func (m *Model) globalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	km := m.keymap
	switch {
	case keyMatches(msg, km.Quit):
		return tea.Quit, true
	case keyMatches(msg, km.Help):
		m.openHelpModal()
		return nil, true
	case keyMatches(msg, km.AppLogs):
		m.openAppLogsModal()
		return nil, true
	case keyMatches(msg, km.Banner):
		m.banner.Dismiss()
		return nil, true
	}
	return nil, false
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	km := m.keymap
	if keyMatches(msg, km.Retry) && m.list.Phase() != screen.Ready {
		return m, m.fetchList()
	}
	if m.list.Phase() != screen.Ready {
		return m, nil
	}
	switch {
	case keyMatches(msg, km.Search):
		m.inlineMode = inlineSearch
		m.search.Prompt = "/"
		m.search.Placeholder = "Cari doa..."
		m.search.SetValue(m.list.Criteria().Query)
		m.search.CursorEnd()
		return m, m.search.Focus()
	case keyMatches(msg, km.Expr):
		m.inlineMode = inlineExpr
		m.search.Prompt = "where> "
		m.search.Placeholder = "id >= 10 && favorite"
		m.search.SetValue(m.list.Criteria().Expr)
		m.search.CursorEnd()
		return m, m.search.Focus()
	case keyMatches(msg, km.Favorites):
		if m.list.ToggleFavoritesOnly() {
			m.lastMsg = "Menampilkan favorit"
		} else {
			m.lastMsg = "Menampilkan semua doa"
		}
		m.rebuildRows()
		return m, nil
	case keyMatches(msg, km.Toggle):
		if p, ok := m.selected(); ok {
			m.list.ToggleFavorite(p.Key())
			m.rebuildRows()
		}
		return m, nil
	case keyMatches(msg, km.Open):
		if p, ok := m.selected(); ok {
			return m, m.openDetail(p.Key())
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.tbl, cmd = m.tbl.Update(msg)
	return m, cmd
}

func (m *Model) updateInline(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		if m.inlineMode == inlineExpr {
			if err := m.list.SetExpr(strings.TrimSpace(m.search.Value())); err != nil {
				m.lastMsg = "Ekspresi tidak valid: " + err.Error()
				return m, nil
			}
			m.lastMsg = ""
			m.rebuildRows()
		}
		m.closeInline()
		return m, nil
	case tea.KeyEsc:
		if m.inlineMode == inlineSearch {
			m.list.SetQuery("")
			m.rebuildRows()
		}
		m.closeInline()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.inlineMode == inlineSearch {
		m.list.SetQuery(m.search.Value())
		m.rebuildRows()
	}
	return m, cmd
}

func (m *Model) closeInline() {
	m.inlineMode = inlineNone
	m.search.Blur()
}

func (m *Model) openDetail(id string) tea.Cmd {
	m.view = viewDetail
	m.detail = screen.NewDetail(id)
	m.lastMsg = ""
	return m.fetchDetail()
}

func (m *Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	km := m.keymap
	if keyMatches(msg, km.Back) {
		m.view = viewList
		m.lastMsg = ""
		return m, nil
	}
	if keyMatches(msg, km.Retry) && m.detail.Phase() != screen.Ready {
		return m, m.fetchDetail()
	}
	if m.detail.Phase() != screen.Ready {
		return m, nil
	}
	p, err := m.detail.Current()
	if err != nil {
		return m, nil
	}
	switch {
	case keyMatches(msg, km.Prev), keyMatches(msg, km.PrevAlt):
		if m.detail.Prev() {
			m.viewport.GotoTop()
			m.lastMsg = ""
		}
		return m, nil
	case keyMatches(msg, km.Next), keyMatches(msg, km.NextAlt):
		if m.detail.Next() {
			m.viewport.GotoTop()
			m.lastMsg = ""
		}
		return m, nil
	case keyMatches(msg, km.Copy):
		if err := copyToClipboard(p.Text); err != nil {
			m.lastMsg = "Gagal menyalin teks"
		} else {
			m.lastMsg = "Teks doa disalin"
		}
		return m, nil
	case keyMatches(msg, km.Translate):
		return m, m.watchAd()
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// watchAd runs the rewarded flow for the prayer on screen. Show blocks for
// the whole view, so it runs as a command.
func (m *Model) watchAd() tea.Cmd {
	if m.detail.Unlocked() || m.watching {
		return nil
	}
	if !m.ads.Available() {
		m.lastMsg = reward.Notice(reward.ErrUnavailable)
		return nil
	}
	if m.ads.State() != reward.Ready {
		m.ads.Load()
		m.lastMsg = reward.Notice(reward.ErrNotReady)
		return nil
	}
	m.watching = true
	m.lastMsg = "Menonton iklan..."
	id, ads, ctx := m.detail.ID(), m.ads, m.ctx
	return func() (msg tea.Msg) {
		defer func() {
			if v := recover(); v != nil {
				crash.Report("ui.reward", v)
				msg = rewardDoneMsg{id: id, err: fmt.Errorf("panic: %v", v)}
			}
		}()
		earned, err := ads.Show(ctx)
		return rewardDoneMsg{id: id, earned: earned, err: err}
	}
}

func (m *Model) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.modalKind == modalHelp {
		switch msg.Type {
		case tea.KeyUp:
			if m.helpSel > 0 {
				m.helpSel--
			}
			return m, nil
		case tea.KeyDown:
			if m.helpSel < len(m.helpItems)-1 {
				m.helpSel++
			}
			return m, nil
		case tea.KeyEnter:
			m.modalActive = false
			if m.helpSel >= 0 && m.helpSel < len(m.helpItems) {
				return m, keyCmd(m.helpItems[m.helpSel].key)
			}
			return m, nil
		}
	}
	if msg.Type == tea.KeyEsc || msg.Type == tea.KeyEnter || keyMatches(msg, m.keymap.Quit) {
		m.modalActive = false
		return m, nil
	}
	if msg.Type == tea.KeyRunes && msg.String() == "c" && m.modalKind == modalLogs {
		if err := copyToClipboard(m.modalBody); err == nil {
			m.lastMsg = "Log disalin"
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.modalVP, cmd = m.modalVP.Update(msg)
	return m, cmd
}

func (m *Model) selected() (model.Prayer, bool) {
	visible := m.list.Visible()
	i := m.tbl.Cursor()
	if i < 0 || i >= len(visible) {
		return model.Prayer{}, false
	}
	return visible[i], true
}

// rebuildRows mirrors the visible list into the table, keeping the cursor
// on the same prayer when it is still visible.
func (m *Model) rebuildRows() {
	curID := ""
	if row := m.tbl.SelectedRow(); len(row) > 1 {
		curID = row[1]
	}
	visible := m.list.Visible()
	rows := make([]table.Row, 0, len(visible))
	sel := 0
	for i, p := range visible {
		star := "☆"
		if p.Favorite {
			star = "★"
		}
		rows = append(rows, table.Row{star, strconv.Itoa(p.ID), p.Name})
		if p.Key() == curID {
			sel = i
		}
	}
	m.tbl.SetRows(rows)
	m.tbl.SetCursor(sel)
}
