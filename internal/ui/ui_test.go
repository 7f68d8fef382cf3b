package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"doaharian/internal/config"
	"doaharian/internal/model"
	"doaharian/internal/reward"
	"doaharian/internal/screen"
)

type fakeSource struct {
	recs []model.Record
	err  error
}

func (f *fakeSource) Fetch(ctx context.Context) ([]model.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.recs, nil
}

func sample() []model.Record {
	return []model.Record{
		{ID: 1, Name: "Doa Sebelum Makan", Text: "اللهم بارك لنا"},
		{ID: 2, Name: "Doa Sesudah Makan", Text: "الحمد لله"},
		{ID: 3, Name: "Doa Tidur", Text: "باسمك اللهم"},
	}
}

func newTestModel(t *testing.T, src *fakeSource) *Model {
	t.Helper()
	ads := reward.NewMachine(reward.Disabled{}, reward.DefaultOptions())
	t.Cleanup(ads.Close)
	m := initialModel(context.Background(), &config.Config{Theme: config.ThemeDark}, src, ads)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

// loadList runs one list fetch to completion.
func loadList(m *Model) {
	m.fetchList()
	m.Update(fetchCmd(m, targetList, nil)())
}

func loadDetail(m *Model) {
	m.Update(fetchCmd(m, targetDetail, m.detail)())
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func visibleIDs(m *Model) []int {
	out := []int{}
	for _, p := range m.list.Visible() {
		out = append(out, p.ID)
	}
	return out
}

func TestListLoadingThenReady(t *testing.T) {
	m := newTestModel(t, &fakeSource{recs: sample()})
	m.fetchList()
	if !strings.Contains(m.View(), screen.LoadingListMessage) {
		t.Fatalf("loading view missing message:\n%s", m.View())
	}
	m.Update(fetchCmd(m, targetList, nil)())
	if m.list.Phase() != screen.Ready {
		t.Fatalf("phase=%v", m.list.Phase())
	}
	if len(m.tbl.Rows()) != 3 {
		t.Fatalf("rows=%d", len(m.tbl.Rows()))
	}
}

func TestListErrorAndRetry(t *testing.T) {
	src := &fakeSource{err: errors.New("boom")}
	m := newTestModel(t, src)
	loadList(m)
	v := m.View()
	if !strings.Contains(v, "Error: boom") || !strings.Contains(v, screen.RetryLabel) {
		t.Fatalf("error view:\n%s", v)
	}
	src.err = nil
	src.recs = sample()
	m.Update(runes("r"))
	if m.list.Phase() != screen.Loading {
		t.Fatalf("retry should restart loading, got %v", m.list.Phase())
	}
	m.Update(fetchCmd(m, targetList, nil)())
	if m.list.Phase() != screen.Ready || len(m.list.Visible()) != 3 {
		t.Fatalf("after retry: %v %v", m.list.Phase(), visibleIDs(m))
	}
}

func TestRetryWhileLoadingLastResultWins(t *testing.T) {
	m := newTestModel(t, &fakeSource{recs: sample()})
	m.fetchList()
	_, cmd := m.Update(runes("r"))
	if cmd == nil || m.list.Phase() != screen.Loading {
		t.Fatalf("retry while loading should issue another fetch")
	}
	// The second request finishes first; the first one lands last and wins.
	m.Update(fetchDoneMsg{target: targetList, recs: sample()})
	if m.list.Phase() != screen.Ready {
		t.Fatalf("phase=%v", m.list.Phase())
	}
	m.Update(fetchDoneMsg{target: targetList, err: errors.New("late")})
	if m.list.Phase() != screen.Failed || m.list.Err().Error() != "late" {
		t.Fatalf("last finished result not applied: %v %v", m.list.Phase(), m.list.Err())
	}
}

func TestRetryIgnoredWhenReady(t *testing.T) {
	m := newTestModel(t, &fakeSource{recs: sample()})
	loadList(m)
	m.Update(runes("r"))
	if m.list.Phase() != screen.Ready || len(m.list.Visible()) != 3 {
		t.Fatalf("r on a loaded list should do nothing")
	}
}

func TestInlineSearch(t *testing.T) {
	m := newTestModel(t, &fakeSource{recs: sample()})
	loadList(m)
	m.Update(runes("/"))
	if m.inlineMode != inlineSearch {
		t.Fatalf("expected inline search")
	}
	for _, r := range "MAKAN" {
		m.Update(runes(string(r)))
	}
	if got := visibleIDs(m); len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("visible=%v", got)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.inlineMode != inlineNone || m.list.Criteria().Query != "MAKAN" {
		t.Fatalf("enter should keep query, got %q", m.list.Criteria().Query)
	}
	m.Update(runes("/"))
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.list.Criteria().Query != "" || len(m.list.Visible()) != 3 {
		t.Fatalf("esc should clear query")
	}
}

func TestFavoritesToggleAndFilter(t *testing.T) {
	m := newTestModel(t, &fakeSource{recs: sample()})
	loadList(m)
	m.Update(runes("f"))
	if len(m.list.Visible()) != 0 {
		t.Fatalf("no favorites yet")
	}
	if !strings.Contains(m.View(), "Belum ada doa favorit") {
		t.Fatalf("empty favorites message missing")
	}
	m.Update(runes("f"))
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(runes(" "))
	if m.list.Favorites() != 1 || !m.list.All()[1].Favorite {
		t.Fatalf("favorite not toggled on second row: %+v", m.list.All())
	}
	if m.tbl.Cursor() != 1 {
		t.Fatalf("cursor moved: %d", m.tbl.Cursor())
	}
	m.Update(runes("f"))
	if got := visibleIDs(m); len(got) != 1 || got[0] != 2 {
		t.Fatalf("favorites view=%v", got)
	}
}

func TestExprFilter(t *testing.T) {
	m := newTestModel(t, &fakeSource{recs: sample()})
	loadList(m)
	m.Update(runes("w"))
	for _, r := range "id >= 2" {
		m.Update(runes(string(r)))
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := visibleIDs(m); len(got) != 2 {
		t.Fatalf("visible=%v", got)
	}
	m.Update(runes("w"))
	m.search.SetValue("id >=")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !strings.HasPrefix(m.lastMsg, "Ekspresi tidak valid") || m.inlineMode != inlineExpr {
		t.Fatalf("invalid expression should stay in edit mode, msg=%q", m.lastMsg)
	}
	if m.list.Criteria().Expr != "id >= 2" {
		t.Fatalf("previous expression lost: %q", m.list.Criteria().Expr)
	}
}

func TestDetailNavigation(t *testing.T) {
	m := newTestModel(t, &fakeSource{recs: sample()})
	loadList(m)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.view != viewDetail || m.detail.Phase() != screen.Loading {
		t.Fatalf("enter should open a loading detail")
	}
	if !strings.Contains(m.View(), screen.LoadingDetailMessage) {
		t.Fatalf("detail loading message missing")
	}
	loadDetail(m)
	if m.detail.ID() != "1" || !strings.Contains(m.View(), "Doa Sebelum Makan") {
		t.Fatalf("detail id=%s", m.detail.ID())
	}
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.detail.ID() != "3" {
		t.Fatalf("prev from first should wrap to last, got %s", m.detail.ID())
	}
	m.Update(runes("l"))
	m.Update(runes("l"))
	if m.detail.ID() != "2" {
		t.Fatalf("next twice, got %s", m.detail.ID())
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.view != viewList {
		t.Fatalf("esc should return to list")
	}
}

func TestDetailNotFound(t *testing.T) {
	m := newTestModel(t, &fakeSource{recs: sample()})
	m.openDetail("99")
	loadDetail(m)
	v := m.View()
	if !strings.Contains(v, screen.NotFoundMessage) || !strings.Contains(v, screen.BackLabel) {
		t.Fatalf("not found view:\n%s", v)
	}
}

func TestDetailFetchIgnoredAfterClose(t *testing.T) {
	m := newTestModel(t, &fakeSource{recs: sample()})
	loadList(m)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	first := m.detail
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m.openDetail("2")
	m.Update(fetchDoneMsg{target: targetDetail, detail: first, err: errors.New("late")})
	if m.detail.Phase() != screen.Loading {
		t.Fatalf("closed screen's fetch applied to the new one: %v", m.detail.Phase())
	}
	loadDetail(m)
	if m.detail.Phase() != screen.Ready || m.detail.ID() != "2" {
		t.Fatalf("detail=%s %v", m.detail.ID(), m.detail.Phase())
	}
}

func TestTranslateUnavailable(t *testing.T) {
	m := newTestModel(t, &fakeSource{recs: sample()})
	m.openDetail("1")
	loadDetail(m)
	if strings.Contains(m.View(), reward.ButtonLabel) {
		t.Fatalf("button should be hidden without ads")
	}
	m.Update(runes("t"))
	if m.lastMsg != reward.Notice(reward.ErrUnavailable) {
		t.Fatalf("lastMsg=%q", m.lastMsg)
	}
	if m.detail.Unlocked() {
		t.Fatalf("unlocked without reward")
	}
}

func TestRewardUnlocksCurrentPrayerOnly(t *testing.T) {
	m := newTestModel(t, &fakeSource{recs: sample()})
	m.openDetail("1")
	loadDetail(m)
	m.Update(rewardDoneMsg{id: "2", earned: true})
	if m.detail.Unlocked() {
		t.Fatalf("reward for another prayer unlocked this one")
	}
	m.Update(rewardDoneMsg{id: "1", earned: true})
	if !m.detail.Unlocked() || !m.modalActive || m.modalTitle != reward.EarnedTitle {
		t.Fatalf("reward not applied: unlocked=%v modal=%v", m.detail.Unlocked(), m.modalTitle)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !strings.Contains(m.View(), "Terjemahan") {
		t.Fatalf("translation missing after unlock")
	}
	m.Update(runes("l"))
	if m.detail.Unlocked() {
		t.Fatalf("unlock should reset on navigation")
	}
}

func TestCopyText(t *testing.T) {
	var got string
	orig := copyToClipboard
	copyToClipboard = func(s string) error { got = s; return nil }
	t.Cleanup(func() { copyToClipboard = orig })

	m := newTestModel(t, &fakeSource{recs: sample()})
	m.openDetail("3")
	loadDetail(m)
	m.Update(runes("c"))
	if got != "باسمك اللهم" || m.lastMsg != "Teks doa disalin" {
		t.Fatalf("copied %q msg=%q", got, m.lastMsg)
	}
}

func TestBannerHiddenWhenAdsUnavailable(t *testing.T) {
	m := newTestModel(t, &fakeSource{recs: sample()})
	loadList(m)
	if strings.Contains(m.View(), bannerText) {
		t.Fatalf("banner rendered with ads disabled")
	}
}

func TestBannerDismiss(t *testing.T) {
	ads := reward.NewMachine(reward.Demo{}, reward.DefaultOptions())
	t.Cleanup(ads.Close)
	m := initialModel(context.Background(), &config.Config{Theme: config.ThemeLight}, &fakeSource{recs: sample()}, ads)
	if !strings.Contains(m.View(), bannerText) {
		t.Fatalf("banner missing")
	}
	m.Update(runes("b"))
	if strings.Contains(m.View(), bannerText) {
		t.Fatalf("banner not dismissed")
	}
}

func TestHelpAndLogsModal(t *testing.T) {
	m := newTestModel(t, &fakeSource{recs: sample()})
	m.Update(runes("?"))
	if !m.modalActive || m.modalKind != modalHelp {
		t.Fatalf("help modal not open")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m.Update(runes("L"))
	if !m.modalActive || m.modalKind != modalLogs {
		t.Fatalf("logs modal not open")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.modalActive {
		t.Fatalf("modal not closed")
	}
}
