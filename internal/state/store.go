package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/cohort/internal/cohortapi"
)

// Snapshot represents the latest list page available to the UI.
type Snapshot struct {
	Generation          uint64
	Items               []cohortapi.ListSummary
	TotalCount          int
	HasData             bool
	InFlight            bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive failed fetches
}

// IsLoading reports a request in flight with no data to show for its key.
func (s Snapshot) IsLoading() bool {
	return s.InFlight && !s.HasData
}

// IsRevalidating reports any request in flight, including refreshes of shown data.
func (s Snapshot) IsRevalidating() bool {
	return s.InFlight
}

// IsOffline returns true when the API has failed several fetches in a row.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store tracks the newest issued request and the result that belongs to it.
// Results for any older generation are dropped.
type Store struct {
	mu       sync.RWMutex
	issued   uint64
	snapshot Snapshot
}

// Begin issues a new generation. When keyChanged is true the previous items
// belong to another filter or page and are discarded; otherwise they stay
// visible while the request revalidates them.
func (s *Store) Begin(keyChanged bool) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.issued++
	s.snapshot.Generation = s.issued
	s.snapshot.InFlight = true
	if keyChanged {
		s.snapshot.Items = nil
		s.snapshot.TotalCount = 0
		s.snapshot.HasData = false
		s.snapshot.LastError = nil
	}
	return s.issued
}

// Current returns the newest issued generation.
func (s *Store) Current() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.issued
}

// Update records the outcome of the request issued as gen. It returns false
// and changes nothing when gen has been superseded. When err is non-nil the
// previous data is kept but the error is recorded for visibility.
func (s *Store) Update(gen uint64, page *cohortapi.ListPage, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.issued {
		return false
	}
	s.snapshot.InFlight = false
	s.snapshot.LastUpdated = time.Now()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return true
	}

	if page != nil {
		s.snapshot.Items = cloneItems(page.Results)
		s.snapshot.TotalCount = max(page.TotalCount, 0)
	} else {
		s.snapshot.Items = nil
		s.snapshot.TotalCount = 0
	}
	s.snapshot.HasData = true
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
	return true
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Items = cloneItems(s.snapshot.Items)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneItems(items []cohortapi.ListSummary) []cohortapi.ListSummary {
	if len(items) == 0 {
		return nil
	}
	dup := make([]cohortapi.ListSummary, len(items))
	copy(dup, items)
	return dup
}
