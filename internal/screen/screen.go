// Package screen holds the presentation state shared by the TUI, the CLI
// and the HTTP surface: the fetch lifecycle, the filtered list and the
// detail view with ring navigation.
package screen

import (
	"context"
	"errors"

	"doaharian/internal/model"
	"doaharian/internal/util/logx"
)

type Phase int

const (
	Loading Phase = iota
	Failed
	Ready
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Failed:
		return "error"
	case Ready:
		return "ready"
	}
	return "unknown"
}

// Source is the prayer record provider.
type Source interface {
	Fetch(ctx context.Context) ([]model.Record, error)
}

var ErrNotFound = errors.New("prayer not found")

const (
	LoadingListMessage   = "Memuat daftar doa..."
	LoadingDetailMessage = "Memuat doa..."
	NotFoundMessage      = "Doa tidak ditemukan"
	RetryLabel           = "Coba Lagi"
	BackLabel            = "Kembali ke Daftar"
)

// Loader receives the outcome of a fetch.
type Loader interface {
	Begin()
	Fail(err error)
	Load(records []model.Record)
}

// State is the fetch lifecycle: exactly one of Loading, Failed or Ready.
type State struct {
	phase Phase
	err   error
	all   []model.Prayer
}

func (s *State) Phase() Phase { return s.phase }
func (s *State) Err() error   { return s.err }

// All is the full list in source order. Callers must not modify it.
func (s *State) All() []model.Prayer { return s.all }

func (s *State) Begin() {
	s.phase = Loading
	s.err = nil
}

// Fail keeps the previous list around but hides it behind the error state.
func (s *State) Fail(err error) {
	s.phase = Failed
	s.err = err
}

// Load replaces the list wholesale; favorites start cleared.
func (s *State) Load(records []model.Record) {
	s.phase = Ready
	s.err = nil
	s.all = model.Attach(records)
}

// Fetch runs one fetch against src and records the outcome on l. There is
// no retry; calling Fetch again is the retry.
func Fetch(ctx context.Context, src Source, l Loader) error {
	l.Begin()
	recs, err := src.Fetch(ctx)
	if err != nil {
		logx.Warnf("screen: fetch failed: %v", err)
		l.Fail(err)
		return err
	}
	l.Load(recs)
	return nil
}
