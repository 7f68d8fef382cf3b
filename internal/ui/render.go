package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"doaharian/internal/model"
	"doaharian/internal/reward"
	"doaharian/internal/screen"
	"doaharian/internal/util/logx"
)

func (m *Model) View() string {
	var v string
	if m.view == viewDetail {
		v = m.renderDetail()
	} else {
		v = m.renderList()
	}
	if m.modalActive {
		// Dim the background content while keeping it visible
		dimmed := lipgloss.NewStyle().Faint(true).Render(v)
		v = overlay(dimmed, m.renderModal())
	}
	return v
}

func (m *Model) width() int {
	if m.termWidth <= 0 {
		return 80
	}
	return m.termWidth
}

func (m *Model) renderList() string {
	var b strings.Builder
	title := m.styles.Title.Render("Doa Harian")
	if m.list.Phase() == screen.Ready {
		title += m.styles.Status.Render(fmt.Sprintf("  %d doa · %d favorit", len(m.list.All()), m.list.Favorites()))
	}
	b.WriteString(title + "\n")
	switch m.list.Phase() {
	case screen.Loading:
		b.WriteString(m.spin.View() + " " + screen.LoadingListMessage + "\n")
	case screen.Failed:
		b.WriteString(m.renderError(m.list.Err()))
	default:
		b.WriteString(m.renderSearchLine() + "\n")
		if len(m.list.Visible()) == 0 {
			b.WriteString(m.styles.Status.Render(m.list.EmptyMessage()) + "\n")
		} else {
			b.WriteString(m.tbl.View() + "\n")
		}
	}
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m *Model) renderSearchLine() string {
	if m.inlineMode != inlineNone {
		return m.search.View()
	}
	c := m.list.Criteria()
	parts := []string{}
	if c.Query != "" {
		parts = append(parts, "/"+c.Query)
	} else {
		parts = append(parts, m.styles.Status.Render("[/] Cari doa..."))
	}
	if c.FavoritesOnly {
		parts = append(parts, m.styles.Star.Render("★ Favorit"))
	}
	if c.Expr != "" {
		parts = append(parts, m.styles.Status.Render("where: "+c.Expr))
	}
	return strings.Join(parts, "  ")
}

func (m *Model) renderError(err error) string {
	msg := "unknown"
	if err != nil {
		msg = err.Error()
	}
	return m.styles.Error.Render("Error: "+msg) + "\n" + m.styles.Button.Render("[r] "+screen.RetryLabel) + "\n"
}

func (m *Model) renderDetail() string {
	var b strings.Builder
	w := m.width()
	switch m.detail.Phase() {
	case screen.Loading:
		b.WriteString(m.styles.Title.Render("Doa Harian") + "\n")
		b.WriteString(m.spin.View() + " " + screen.LoadingDetailMessage + "\n")
	case screen.Failed:
		b.WriteString(m.styles.Title.Render("Doa Harian") + "\n")
		b.WriteString(m.renderError(m.detail.Err()))
	default:
		p, err := m.detail.Current()
		if err != nil {
			b.WriteString(m.styles.Title.Render("Doa Harian") + "\n")
			b.WriteString(m.styles.Error.Render(screen.NotFoundMessage) + "\n")
			b.WriteString(m.styles.Button.Render("[esc] "+screen.BackLabel) + "\n")
			break
		}
		b.WriteString(m.styles.Title.Render(p.Name) + "\n")
		m.viewport.Width = w
		m.viewport.SetContent(m.detailBody(p, w-2))
		b.WriteString(m.viewport.View() + "\n")
		b.WriteString(spread("« Sebelumnya [←]", "[→] Selanjutnya »", w) + "\n")
	}
	b.WriteString(m.renderFooter())
	return b.String()
}

// detailBody is the scrollable part: right-to-left text and the
// translation block.
func (m *Model) detailBody(p model.Prayer, w int) string {
	w = maxInt(w, 10)
	text := m.styles.Arabic.Width(w).Align(lipgloss.Right).Render(wordwrap.String(p.Text, w))
	out := []string{"", text, ""}
	switch {
	case m.detail.Unlocked():
		out = append(out, m.styles.Title.Render("Terjemahan"), m.styles.Translation.Render(wordwrap.String(reward.Translation, w)))
	case m.ads.Available():
		label := m.styles.Button.Render("[t] " + reward.ButtonLabel)
		if m.watching || m.ads.State() == reward.Loading {
			label += " " + m.styles.Status.Render(reward.LoadingLabel)
		}
		out = append(out, label, m.styles.Status.Render(reward.PromptMessage))
	}
	return strings.Join(out, "\n")
}

func (m *Model) renderFooter() string {
	lines := []string{}
	if m.lastMsg != "" {
		lines = append(lines, m.styles.Status.Render(m.lastMsg))
	}
	lines = append(lines, m.help.ShortHelpView(m.shortHelp()))
	if t := m.banner.Text(); t != "" {
		lines = append(lines, m.styles.Banner.Width(m.width()).Render(spread(" "+t, "[b] tutup ", m.width())))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderHelp() string {
	var b strings.Builder
	group := ""
	for i, it := range m.helpItems {
		if it.group != group {
			if group != "" {
				b.WriteString("\n")
			}
			group = it.group
			b.WriteString(m.styles.PopupTitle.Render(group) + "\n")
		}
		line := fmt.Sprintf("  %-8s %s", keyLabel(it.key), it.text)
		if i == m.helpSel {
			line = m.styles.TableStyles.Selected.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m *Model) openHelpModal() {
	m.modalActive = true
	m.modalKind = modalHelp
	m.modalTitle = "Bantuan"
	m.helpItems = m.buildHelpItems()
	m.helpSel = 0
	m.modalBody = m.renderHelp()
	m.resizeModal()
}

func (m *Model) openAppLogsModal() {
	m.modalActive = true
	m.modalKind = modalLogs
	m.modalTitle = "Log Aplikasi"
	m.modalBody = logx.Dump()
	m.resizeModal()
	m.modalVP.GotoBottom()
}

func (m *Model) openNoticeModal(title, body string) {
	m.modalActive = true
	m.modalKind = modalNotice
	m.modalTitle = title
	m.modalBody = body
	m.resizeModal()
}

func (m *Model) resizeModal() {
	w := maxInt(m.width()-6, 20)
	h := maxInt(m.termHeight-6, 5)
	if m.modalKind == modalNotice {
		w = minInt(w, 60)
		h = 5
	}
	m.modalVP = viewport.New(w-4, h-4)
	body := m.modalBody
	if m.modalKind == modalNotice {
		body = wordwrap.String(body, w-6)
	}
	m.modalVP.SetContent(body)
}

func (m *Model) renderModal() string {
	content := ""
	switch m.modalKind {
	case modalHelp:
		m.modalVP.SetContent(m.renderHelp())
		content = m.modalVP.View() + "\n[esc]=tutup  [enter]=jalankan"
	case modalLogs:
		status := fmt.Sprintf("daftar: %s  doa: %s  iklan: %s", m.list.Phase(), m.detail.Phase(), m.ads.State())
		content = m.styles.Help.Render(status) + "\n" + m.modalVP.View() + "\n[esc/enter]=tutup  [c]=salin"
	default:
		content = m.modalVP.View() + "\n[enter]=OK"
	}
	boxW := maxInt(m.width()-6, 20)
	if m.modalKind == modalNotice {
		boxW = minInt(boxW, 60)
	}
	title := m.styles.PopupTitle.Render(m.modalTitle)
	body := m.styles.PopupBox.Width(boxW).Render(title + "\n" + content)
	return lipgloss.Place(m.width(), maxInt(m.termHeight, 24), lipgloss.Center, lipgloss.Center, body)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
