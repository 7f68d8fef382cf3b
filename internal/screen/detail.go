package screen

import (
	"doaharian/internal/model"
	"doaharian/internal/nav"
)

// Detail is one prayer's screen. Its translation unlock lasts only while
// the same prayer is shown.
type Detail struct {
	State
	id       string
	unlocked bool
}

func NewDetail(id string) *Detail { return &Detail{id: id} }

func (d *Detail) ID() string { return d.id }

// Open switches to another prayer without refetching.
func (d *Detail) Open(id string) {
	if id == "" || id == d.id {
		return
	}
	d.id = id
	d.unlocked = false
}

// Current returns the shown prayer or ErrNotFound once the list is loaded.
func (d *Detail) Current() (model.Prayer, error) {
	p, _, ok := nav.Find(d.all, d.id)
	if !ok {
		return model.Prayer{}, ErrNotFound
	}
	return p, nil
}

func (d *Detail) Neighbors() (prev, next string, ok bool) {
	return nav.Neighbors(d.all, d.id)
}

// Prev moves to the previous prayer, wrapping around. It reports whether
// the screen changed.
func (d *Detail) Prev() bool {
	prev, _, ok := d.Neighbors()
	if !ok || prev == d.id {
		return false
	}
	d.Open(prev)
	return true
}

func (d *Detail) Next() bool {
	_, next, ok := d.Neighbors()
	if !ok || next == d.id {
		return false
	}
	d.Open(next)
	return true
}

func (d *Detail) Unlock()        { d.unlocked = true }
func (d *Detail) Unlocked() bool { return d.unlocked }
