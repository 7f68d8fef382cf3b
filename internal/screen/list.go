package screen

import (
	"doaharian/internal/favorite"
	"doaharian/internal/filter"
	"doaharian/internal/model"
)

// List is the prayer list screen: the full list plus the active query and
// favorites-only toggle, with the visible subsequence kept in sync.
type List struct {
	State
	criteria filter.Criteria
	eval     *filter.Evaluator
	visible  []model.Prayer
}

func NewList() *List {
	l := &List{}
	l.eval, _ = filter.NewEvaluator(l.criteria)
	return l
}

func (l *List) Load(records []model.Record) {
	l.State.Load(records)
	l.refresh()
}

func (l *List) Criteria() filter.Criteria { return l.criteria }

func (l *List) SetQuery(q string) {
	l.criteria.Query = q
	l.refresh()
}

// SetExpr installs an advanced govaluate filter; an invalid expression is
// rejected and the previous one stays active.
func (l *List) SetExpr(expr string) error {
	c := l.criteria
	c.Expr = expr
	ev, err := filter.NewEvaluator(c)
	if err != nil {
		return err
	}
	l.criteria, l.eval = c, ev
	l.visible = l.eval.Apply(l.all)
	return nil
}

// ToggleFavoritesOnly flips the favorites-only filter and returns the new value.
func (l *List) ToggleFavoritesOnly() bool {
	l.criteria.FavoritesOnly = !l.criteria.FavoritesOnly
	l.refresh()
	return l.criteria.FavoritesOnly
}

func (l *List) SetFavoritesOnly(on bool) {
	l.criteria.FavoritesOnly = on
	l.refresh()
}

// ToggleFavorite flips one prayer's flag and re-runs the filter.
func (l *List) ToggleFavorite(id string) {
	l.all = favorite.Toggle(l.all, id)
	l.refresh()
}

// Visible is the filtered list in source order.
func (l *List) Visible() []model.Prayer { return l.visible }

func (l *List) EmptyMessage() string { return filter.EmptyMessage(l.criteria) }

func (l *List) Favorites() int { return favorite.Count(l.all) }

func (l *List) refresh() {
	ev, err := filter.NewEvaluator(l.criteria)
	if err == nil {
		l.eval = ev
	}
	if l.eval == nil {
		l.visible = filter.Apply(l.all, l.criteria)
		return
	}
	l.visible = l.eval.Apply(l.all)
}
