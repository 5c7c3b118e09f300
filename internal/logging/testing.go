package logging

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"
)

// ForTest returns a debug logger whose records are written through t.Log,
// so they only show up for failing or verbose tests.
func ForTest(tb testing.TB) *slog.Logger {
	tb.Helper()
	return slog.New(slog.NewTextHandler(&tbWriter{tb: tb}, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

type tbWriter struct {
	mu sync.Mutex
	tb testing.TB
}

func (w *tbWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.tb.Helper()
	w.tb.Log(string(bytes.TrimRight(p, "\n")))
	return len(p), nil
}
