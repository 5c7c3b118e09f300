package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/cohort/internal/state"
	"github.com/five82/cohort/internal/ui"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"four failures capped", 4, 30 * time.Second}, // Would be 32s, capped to 30s
		{"many failures capped", 10, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calculateBackoff(tt.failures, baseInterval))
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 64; failures++ {
		assert.LessOrEqual(t, calculateBackoff(failures, baseInterval), maxBackoff, "failures=%d", failures)
	}
}

func TestCalculateBackoff_BaseAboveCap(t *testing.T) {
	base := time.Minute
	for _, failures := range []int{0, 1, 5} {
		assert.Equal(t, base, calculateBackoff(failures, base), "failures=%d", failures)
	}
}

type recordingSender struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (r *recordingSender) Send(msg tea.Msg) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

func (r *recordingSender) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.msgs)
}

func TestStartRevalidator_SendsUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sink := &recordingSender{}
	StartRevalidator(ctx, &state.Store{}, sink, 10*time.Millisecond, nil)

	require.Eventually(t, func() bool { return sink.count() >= 2 }, 2*time.Second, 5*time.Millisecond)
	cancel()

	sink.mu.Lock()
	first := sink.msgs[0]
	sink.mu.Unlock()
	assert.IsType(t, ui.RevalidateMsg{}, first)

	time.Sleep(30 * time.Millisecond)
	settled := sink.count()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, settled, sink.count(), "revalidator kept sending after cancel")
}

func TestStartRevalidator_BacksOffAfterFailures(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := &state.Store{}
	for range 3 {
		gen := store.Begin(false)
		store.Update(gen, nil, errors.New("connection refused"))
	}

	sink := &recordingSender{}
	// 20ms * 2^3 = 160ms before the first revalidation.
	StartRevalidator(ctx, store, sink, 20*time.Millisecond, nil)

	time.Sleep(60 * time.Millisecond)
	assert.Zero(t, sink.count(), "revalidator sent during backoff")
}
