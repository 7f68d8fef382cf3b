package reward

import (
	"context"
	"time"
)

// Disabled is the provider for targets without an ad SDK.
type Disabled struct{}

func (Disabled) Available() bool                    { return false }
func (Disabled) Load(context.Context) error         { return ErrUnavailable }
func (Disabled) Show(context.Context) (bool, error) { return false, ErrUnavailable }

// Demo simulates an ad network: loading takes LoadDelay and a view lasts
// Watch. Cancelling the Show context counts as closing the ad early.
type Demo struct {
	LoadDelay time.Duration
	Watch     time.Duration
}

func (d Demo) Available() bool { return true }

func (d Demo) Load(ctx context.Context) error {
	return sleep(ctx, d.LoadDelay)
}

func (d Demo) Show(ctx context.Context) (bool, error) {
	if err := sleep(ctx, d.Watch); err != nil {
		return false, nil
	}
	return true, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Banner is the fire-and-forget banner slot. It renders nothing when ads
// are unavailable or after the user dismisses it.
type Banner struct {
	text      string
	available bool
	dismissed bool
}

// NewBanner takes anything that reports availability: a Provider or a
// Machine.
func NewBanner(p interface{ Available() bool }, text string) *Banner {
	return &Banner{text: text, available: p != nil && p.Available()}
}

func (b *Banner) Dismiss() { b.dismissed = true }

func (b *Banner) Text() string {
	if b == nil || !b.available || b.dismissed {
		return ""
	}
	return b.text
}
