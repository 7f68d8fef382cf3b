package screen

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"doaharian/internal/model"
	"doaharian/internal/source"
)

type fakeSource struct {
	calls int
	errs  []error
	recs  []model.Record
}

func (f *fakeSource) Fetch(ctx context.Context) ([]model.Record, error) {
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	return f.recs, nil
}

func records() []model.Record {
	return []model.Record{{ID: 1, Name: "Pagi"}, {ID: 2, Name: "Malam"}, {ID: 3, Name: "Makan"}}
}

func names(list []model.Prayer) []string {
	out := []string{}
	for _, p := range list {
		out = append(out, p.Name)
	}
	return out
}

func TestFetchFailureThenRetry(t *testing.T) {
	src := &fakeSource{errs: []error{source.ErrFetchFailure}, recs: records()}
	l := NewList()
	if l.Phase() != Loading {
		t.Fatalf("initial phase: %v", l.Phase())
	}
	if err := Fetch(context.Background(), src, l); !errors.Is(err, source.ErrFetchFailure) {
		t.Fatalf("first fetch: %v", err)
	}
	if l.Phase() != Failed || l.Err() == nil {
		t.Fatalf("expected failed state, got %v", l.Phase())
	}
	if err := Fetch(context.Background(), src, l); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if l.Phase() != Ready || l.Err() != nil || src.calls != 2 {
		t.Fatalf("after retry: phase=%v err=%v calls=%d", l.Phase(), l.Err(), src.calls)
	}
	if !reflect.DeepEqual(names(l.Visible()), []string{"Pagi", "Malam", "Makan"}) {
		t.Fatalf("visible: %v", names(l.Visible()))
	}
}

func TestListQueryAndFavorites(t *testing.T) {
	l := NewList()
	l.Load(records())
	l.SetQuery("ma")
	if !reflect.DeepEqual(names(l.Visible()), []string{"Malam", "Makan"}) {
		t.Fatalf("query: %v", names(l.Visible()))
	}
	if !l.ToggleFavoritesOnly() {
		t.Fatalf("favorites-only not enabled")
	}
	if len(l.Visible()) != 0 || l.EmptyMessage() != "Belum ada doa favorit" {
		t.Fatalf("no favorites yet: %v %q", names(l.Visible()), l.EmptyMessage())
	}
	l.ToggleFavorite("3")
	if !reflect.DeepEqual(names(l.Visible()), []string{"Makan"}) {
		t.Fatalf("after toggle: %v", names(l.Visible()))
	}
	if l.Favorites() != 1 {
		t.Fatalf("favorites: %d", l.Favorites())
	}
	l.SetQuery("")
	l.SetFavoritesOnly(false)
	if len(l.Visible()) != 3 {
		t.Fatalf("reset: %v", names(l.Visible()))
	}
}

func TestReloadClearsFavorites(t *testing.T) {
	l := NewList()
	l.Load(records())
	l.ToggleFavorite("1")
	l.SetFavoritesOnly(true)
	if len(l.Visible()) != 1 {
		t.Fatalf("visible: %v", names(l.Visible()))
	}
	l.Begin()
	l.Load(records())
	if l.Favorites() != 0 || len(l.Visible()) != 0 {
		t.Fatalf("favorites survived refetch")
	}
}

func TestListExpr(t *testing.T) {
	l := NewList()
	l.Load(records())
	if err := l.SetExpr("id != 2"); err != nil {
		t.Fatalf("expr: %v", err)
	}
	if !reflect.DeepEqual(names(l.Visible()), []string{"Pagi", "Makan"}) {
		t.Fatalf("expr: %v", names(l.Visible()))
	}
	if err := l.SetExpr("id >"); err == nil {
		t.Fatalf("expected error")
	}
	if l.Criteria().Expr != "id != 2" {
		t.Fatalf("invalid expr replaced active one: %q", l.Criteria().Expr)
	}
}

func TestLastResultWins(t *testing.T) {
	l := NewList()
	l.Begin()
	l.Begin()
	l.Load(records())
	l.Fail(source.ErrFetchFailure)
	if l.Phase() != Failed {
		t.Fatalf("phase: %v", l.Phase())
	}
	l.Load(records()[:1])
	if l.Phase() != Ready || len(l.All()) != 1 {
		t.Fatalf("phase %v len %d", l.Phase(), len(l.All()))
	}
}

func TestDetailNavigation(t *testing.T) {
	d := NewDetail("1")
	d.Load(records())
	p, err := d.Current()
	if err != nil || p.Name != "Pagi" {
		t.Fatalf("current: %+v %v", p, err)
	}
	prev, next, ok := d.Neighbors()
	if !ok || prev != "3" || next != "2" {
		t.Fatalf("neighbors: %s %s %v", prev, next, ok)
	}
	d.Unlock()
	if !d.Prev() || d.ID() != "3" {
		t.Fatalf("prev: %s", d.ID())
	}
	if d.Unlocked() {
		t.Fatalf("unlock should reset on navigation")
	}
	if !d.Next() || d.ID() != "1" {
		t.Fatalf("next: %s", d.ID())
	}
}

func TestDetailNotFound(t *testing.T) {
	d := NewDetail("99")
	d.Load(records())
	if _, err := d.Current(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, _, ok := d.Neighbors(); ok {
		t.Fatalf("neighbors of missing id")
	}
	if d.Next() || d.Prev() {
		t.Fatalf("navigation from missing id")
	}
}

func TestDetailSingleWrapsToSelf(t *testing.T) {
	d := NewDetail("1")
	d.Load(records()[:1])
	prev, next, ok := d.Neighbors()
	if !ok || prev != "1" || next != "1" {
		t.Fatalf("neighbors: %s %s %v", prev, next, ok)
	}
	if d.Next() {
		t.Fatalf("self wrap should not report a change")
	}
}
