package filter

import (
	"strings"

	"github.com/Knetic/govaluate"

	"doaharian/internal/model"
)

type Criteria struct {
	Query         string // case-insensitive substring of the prayer name
	FavoritesOnly bool
	Expr          string // govaluate expression over id, name, favorite
}

// Active reports whether any predicate is set.
func (c Criteria) Active() bool {
	return strings.TrimSpace(c.Query) != "" || c.FavoritesOnly || strings.TrimSpace(c.Expr) != ""
}

type Evaluator struct {
	c     Criteria
	query string
	expr  *govaluate.EvaluableExpression
}

func NewEvaluator(c Criteria) (*Evaluator, error) {
	e := &Evaluator{c: c, query: strings.ToLower(strings.TrimSpace(c.Query))}
	if strings.TrimSpace(c.Expr) != "" {
		expr, err := govaluate.NewEvaluableExpression(c.Expr)
		if err != nil {
			return nil, err
		}
		e.expr = expr
	}
	return e, nil
}

func (e *Evaluator) Match(p model.Prayer) bool {
	if e.query != "" {
		if !strings.Contains(strings.ToLower(p.Name), e.query) {
			return false
		}
	}
	if e.c.FavoritesOnly && !p.Favorite {
		return false
	}
	if e.expr != nil {
		params := map[string]any{
			"id":       float64(p.ID),
			"name":     p.Name,
			"favorite": p.Favorite,
		}
		result, err := e.expr.Evaluate(params)
		if err != nil {
			return false
		}
		b, ok := result.(bool)
		if !ok || !b {
			return false
		}
	}
	return true
}

// Apply returns the matching prayers in their original order. The result
// never aliases list.
func (e *Evaluator) Apply(list []model.Prayer) []model.Prayer {
	out := make([]model.Prayer, 0, len(list))
	for _, p := range list {
		if e.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

// Apply filters list by c. An expression that does not compile matches
// nothing; call NewEvaluator first to surface the error.
func Apply(list []model.Prayer, c Criteria) []model.Prayer {
	ev, err := NewEvaluator(c)
	if err != nil {
		return []model.Prayer{}
	}
	return ev.Apply(list)
}

// EmptyMessage is the text shown when Apply yields nothing.
func EmptyMessage(c Criteria) string {
	switch {
	case c.FavoritesOnly:
		return "Belum ada doa favorit"
	case strings.TrimSpace(c.Query) != "":
		return "Tidak ada doa yang cocok"
	default:
		return "Tidak ada doa ditemukan"
	}
}
