// Package server exposes the prayer screens over HTTP: "/" is the list
// route and "/prayer/{id}" the detail route, as on the mobile app.
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"doaharian/internal/filter"
	"doaharian/internal/model"
	"doaharian/internal/reward"
	"doaharian/internal/screen"
	"doaharian/internal/util/logx"
)

// Server keeps one in-memory list session shared by all clients: the
// fetched list and its favorite flags. Favorites vanish with the process or
// the next refresh. Filters are per request.
type Server struct {
	src screen.Source
	ads *reward.Machine

	mu   sync.Mutex
	list *screen.List
}

func New(src screen.Source, ads *reward.Machine) *Server {
	return &Server{src: src, ads: ads, list: screen.NewList()}
}

// lockedLoader applies fetch outcomes under the session lock while the
// fetch itself runs unlocked.
type lockedLoader struct {
	mu *sync.Mutex
	l  screen.Loader
}

func (ll lockedLoader) Begin()                    { ll.mu.Lock(); ll.l.Begin(); ll.mu.Unlock() }
func (ll lockedLoader) Fail(err error)            { ll.mu.Lock(); ll.l.Fail(err); ll.mu.Unlock() }
func (ll lockedLoader) Load(recs []model.Record) { ll.mu.Lock(); ll.l.Load(recs); ll.mu.Unlock() }

// Refresh fetches the list again. Overlapping refreshes are not coalesced;
// the last to finish wins.
func (s *Server) Refresh(ctx context.Context) error {
	return screen.Fetch(ctx, s.src, lockedLoader{mu: &s.mu, l: s.list})
}

type prayerJSON struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Text     string `json:"text"`
	Favorite bool   `json:"isFavorite"`
}

func toJSON(p model.Prayer) prayerJSON {
	return prayerJSON{ID: p.ID, Name: p.Name, Text: p.Text, Favorite: p.Favorite}
}

type listBody struct {
	Phase         string       `json:"phase"`
	Error         string       `json:"error,omitempty"`
	Query         string       `json:"query"`
	FavoritesOnly bool         `json:"favoritesOnly"`
	Empty         string       `json:"empty,omitempty"`
	Prayers       []prayerJSON `json:"prayers"`
}

// listCriteria reads the list filter of one request. It is never stored
// on the session, so clients cannot change each other's view.
func listCriteria(r *http.Request) (filter.Criteria, error) {
	q := r.URL.Query()
	c := filter.Criteria{Query: q.Get("q")}
	if v := q.Get("favorites"); v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return c, errors.New("favorites must be true or false")
		}
		c.FavoritesOnly = on
	}
	return c, nil
}

func (s *Server) listBodyLocked(c filter.Criteria) listBody {
	b := listBody{
		Phase:         s.list.Phase().String(),
		Query:         c.Query,
		FavoritesOnly: c.FavoritesOnly,
		Prayers:       []prayerJSON{},
	}
	switch s.list.Phase() {
	case screen.Loading:
		b.Empty = screen.LoadingListMessage
	case screen.Failed:
		b.Error = s.list.Err().Error()
	case screen.Ready:
		for _, p := range filter.Apply(s.list.All(), c) {
			b.Prayers = append(b.Prayers, toJSON(p))
		}
		if len(b.Prayers) == 0 {
			b.Empty = filter.EmptyMessage(c)
		}
	}
	return b
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	c, err := listCriteria(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}
	s.mu.Lock()
	b := s.listBodyLocked(c)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	c, err := listCriteria(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}
	_ = s.Refresh(r.Context())
	s.mu.Lock()
	b := s.listBodyLocked(c)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleFavorite(w http.ResponseWriter, r *http.Request) {
	c, err := listCriteria(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	if s.list.Phase() != screen.Ready {
		s.mu.Unlock()
		writeJSON(w, http.StatusConflict, errorBody{Error: "list not loaded"})
		return
	}
	s.list.ToggleFavorite(id)
	b := s.listBodyLocked(c)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, b)
}

type detailBody struct {
	Prayer prayerJSON `json:"prayer"`
	Prev   string     `json:"prev"`
	Next   string     `json:"next"`
}

// handleDetail is a fresh screen activation: it fetches its own copy of
// the list like the detail screen does.
func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	d := screen.NewDetail(mux.Vars(r)["id"])
	if err := screen.Fetch(r.Context(), s.src, d); err != nil {
		writeJSON(w, http.StatusBadGateway, errorBody{Error: err.Error()})
		return
	}
	p, err := d.Current()
	if errors.Is(err, screen.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: screen.NotFoundMessage})
		return
	}
	prev, next, _ := d.Neighbors()
	writeJSON(w, http.StatusOK, detailBody{Prayer: toJSON(p), Prev: prev, Next: next})
}

type rewardBody struct {
	Earned      bool   `json:"earned"`
	Translation string `json:"translation,omitempty"`
	Notice      string `json:"notice,omitempty"`
}

func (s *Server) handleReward(w http.ResponseWriter, r *http.Request) {
	if s.ads == nil {
		writeJSON(w, http.StatusServiceUnavailable, rewardBody{Notice: reward.Notice(reward.ErrUnavailable)})
		return
	}
	earned, err := s.ads.Show(r.Context())
	if err != nil {
		code := http.StatusServiceUnavailable
		if !errors.Is(err, reward.ErrUnavailable) && !errors.Is(err, reward.ErrNotReady) {
			code = http.StatusBadGateway
		}
		writeJSON(w, code, rewardBody{Notice: reward.Notice(err)})
		return
	}
	if !earned {
		writeJSON(w, http.StatusOK, rewardBody{})
		return
	}
	logx.Infof("http: translation unlocked for prayer %s", mux.Vars(r)["id"])
	writeJSON(w, http.StatusOK, rewardBody{Earned: true, Translation: reward.Translation, Notice: reward.EarnedMessage})
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	hs := &http.Server{Addr: addr, Handler: s.Router(), ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- hs.ListenAndServe() }()
	logx.Infof("http: listening on %s", addr)
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
