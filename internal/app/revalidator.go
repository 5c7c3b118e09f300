package app

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/cohort/internal/state"
	"github.com/five82/cohort/internal/ui"
)

const (
	defaultRevalidateEvery = 30 * time.Second
	maxBackoff             = 30 * time.Second
)

// Sender delivers a message to the running UI. *tea.Program implements it.
type Sender interface {
	Send(msg tea.Msg)
}

// StartRevalidator launches a goroutine that asks the UI to revalidate the
// list it shows. After failed fetches the wait grows exponentially. It
// returns immediately.
func StartRevalidator(ctx context.Context, store *state.Store, sink Sender, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = defaultRevalidateEvery
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	go func() {
		for {
			failures := store.Snapshot().ConsecutiveFailures
			wait := calculateBackoff(failures, interval)
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
			if failures > 0 {
				logger.Debug("revalidating after failures", "failures", failures, "waited", wait)
			}
			sink.Send(ui.RevalidateMsg{})
		}
	}()
}

// calculateBackoff returns the wait before the next revalidation:
// base * 2^failures, capped at maxBackoff. A base above the cap is used
// as-is.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	limit := max(maxBackoff, base)
	backoff := base
	for range failures {
		backoff *= 2
		if backoff >= limit {
			return limit
		}
	}
	return backoff
}
