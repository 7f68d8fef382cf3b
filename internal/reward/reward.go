// Package reward wraps a rewarded-advertisement collaborator in a small
// restartable state machine. Nothing here may block prayer reading: every
// failure ends as a notice string and a log line.
package reward

import (
	"context"
	"errors"
	"sync"
	"time"

	"doaharian/internal/crash"
	"doaharian/internal/util/logx"
)

type State int

const (
	Unloaded State = iota
	Loading
	Ready
	Error
)

func (s State) String() string {
	return [...]string{"unloaded", "loading", "ready", "error"}[s]
}

var (
	ErrUnavailable = errors.New("ads unavailable")
	ErrNotReady    = errors.New("ad not loaded yet")
)

const (
	// Translation is the text unlocked by watching an ad. It is the same for
	// every prayer.
	Translation = "\"Ya Allah, berikanlah kami petunjuk dan kemudahan dalam menjalani hari ini. " +
		"Lindungilah kami dari segala keburukan dan berikanlah keberkahan dalam setiap langkah kami.\""

	ButtonLabel   = "Dapatkan Terjemahan"
	PromptMessage = "Tonton iklan untuk mendapatkan terjemahan doa"
	EarnedTitle   = "Reward Diterima!"
	EarnedMessage = "Anda telah mendapatkan akses ke terjemahan doa. Terima kasih telah menonton iklan!"
	LoadingLabel  = "Memuat..."
)

// Notice maps a Show/Load error to the user-facing text.
func Notice(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnavailable):
		return "Iklan tidak tersedia di platform ini."
	case errors.Is(err, ErrNotReady):
		return "Iklan sedang dimuat. Silakan tunggu sebentar."
	default:
		return "Gagal menampilkan iklan."
	}
}

// Provider is the ad SDK seen from here.
type Provider interface {
	Available() bool
	Load(ctx context.Context) error
	// Show blocks while the ad is on screen and reports whether the
	// viewer earned the reward.
	Show(ctx context.Context) (earned bool, err error)
}

type Options struct {
	ReloadDelay time.Duration // after a view, earned or not
	RetryDelay  time.Duration // after a failed load
	OnReward    func()
	OnChange    func(State)
}

func DefaultOptions() Options {
	return Options{ReloadDelay: time.Second, RetryDelay: 3 * time.Second}
}

type Machine struct {
	p    Provider
	opts Options

	mu      sync.Mutex
	state   State
	lastErr error
	timer   *time.Timer
	ctx     context.Context
	cancel  context.CancelFunc
	closed  bool
}

func NewMachine(p Provider, opts Options) *Machine {
	ctx, cancel := context.WithCancel(context.Background())
	return &Machine{p: p, opts: opts, ctx: ctx, cancel: cancel}
}

func (m *Machine) Available() bool { return m.p != nil && m.p.Available() }

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// LastError is the most recent load failure, cleared on the next success.
func (m *Machine) LastError() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

// Load starts loading in the background unless a load is in flight or an
// ad is already waiting.
func (m *Machine) Load() {
	if !m.Available() {
		return
	}
	m.mu.Lock()
	if m.closed || m.state == Loading || m.state == Ready {
		m.mu.Unlock()
		return
	}
	m.stopTimerLocked()
	m.setLocked(Loading)
	ctx := m.ctx
	m.mu.Unlock()

	crash.Go("reward.load", func() {
		err := m.p.Load(ctx)
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.closed {
			return
		}
		if err != nil {
			logx.Warnf("reward: load failed: %v", err)
			m.lastErr = err
			m.setLocked(Error)
			m.scheduleLocked(m.opts.RetryDelay)
			return
		}
		logx.Infof("reward: ad loaded")
		m.lastErr = nil
		m.setLocked(Ready)
	})
}

// Show plays the loaded ad. OnReward runs once per earned view before Show
// returns. When no ad is ready, a load is kicked and ErrNotReady returned.
func (m *Machine) Show(ctx context.Context) (bool, error) {
	if !m.Available() {
		return false, ErrUnavailable
	}
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return false, ErrUnavailable
	}
	if m.state != Ready {
		idle := m.state != Loading
		m.mu.Unlock()
		if idle {
			m.Load()
		}
		return false, ErrNotReady
	}
	m.setLocked(Unloaded)
	m.mu.Unlock()

	earned, err := m.p.Show(ctx)
	if err != nil {
		logx.Errorf("reward: show failed: %v", err)
	} else if earned {
		logx.Infof("reward: earned")
		if m.opts.OnReward != nil {
			m.opts.OnReward()
		}
	} else {
		logx.Infof("reward: closed without reward")
	}
	m.mu.Lock()
	m.scheduleLocked(m.opts.ReloadDelay)
	m.mu.Unlock()
	return earned, err
}

// Close cancels pending reloads and in-flight loads.
func (m *Machine) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	m.stopTimerLocked()
	m.cancel()
}

func (m *Machine) setLocked(s State) {
	if m.state == s {
		return
	}
	m.state = s
	if m.opts.OnChange != nil {
		m.opts.OnChange(s)
	}
}

func (m *Machine) scheduleLocked(d time.Duration) {
	if m.closed {
		return
	}
	m.stopTimerLocked()
	m.timer = time.AfterFunc(d, m.Load)
}

func (m *Machine) stopTimerLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

// WaitReady kicks a load if needed and blocks until an ad is ready, the
// load fails, or ctx is done.
func (m *Machine) WaitReady(ctx context.Context) error {
	if !m.Available() {
		return ErrUnavailable
	}
	m.Load()
	t := time.NewTicker(20 * time.Millisecond)
	defer t.Stop()
	for {
		switch m.State() {
		case Ready:
			return nil
		case Error:
			return m.LastError()
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
}
