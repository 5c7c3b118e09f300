package state

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/cohort/internal/cohortapi"
)

func TestStore_UpdateAndSnapshotClone(t *testing.T) {
	var s Store

	gen := s.Begin(true)
	snap := s.Snapshot()
	assert.True(t, snap.IsLoading())
	assert.True(t, snap.IsRevalidating())

	page := &cohortapi.ListPage{
		Results:    []cohortapi.ListSummary{{ID: "1"}, {ID: "2"}},
		TotalCount: 12,
	}
	before := time.Now()
	require.True(t, s.Update(gen, page, nil))

	snap = s.Snapshot()
	assert.True(t, snap.HasData)
	assert.Equal(t, 12, snap.TotalCount)
	assert.Len(t, snap.Items, 2)
	assert.False(t, snap.IsLoading())
	assert.False(t, snap.IsRevalidating())
	assert.False(t, snap.LastUpdated.Before(before))

	// Returned snapshot should be independent of the stored one.
	snap.Items[0].ID = "999"
	assert.Equal(t, "1", s.Snapshot().Items[0].ID)
}

func TestStore_StaleGenerationIsDropped(t *testing.T) {
	var s Store

	first := s.Begin(true)
	second := s.Begin(true)
	require.Greater(t, second, first)

	assert.False(t, s.Update(first, &cohortapi.ListPage{TotalCount: 99}, nil))
	snap := s.Snapshot()
	assert.False(t, snap.HasData)
	assert.Zero(t, snap.TotalCount)
	assert.True(t, snap.InFlight)

	require.True(t, s.Update(second, &cohortapi.ListPage{TotalCount: 3}, nil))
	assert.Equal(t, 3, s.Snapshot().TotalCount)
}

func TestStore_RevalidateKeepsItems(t *testing.T) {
	var s Store

	gen := s.Begin(true)
	s.Update(gen, &cohortapi.ListPage{Results: []cohortapi.ListSummary{{ID: "a"}}, TotalCount: 1}, nil)

	s.Begin(false)
	snap := s.Snapshot()
	assert.True(t, snap.HasData)
	assert.Len(t, snap.Items, 1)
	assert.False(t, snap.IsLoading())
	assert.True(t, snap.IsRevalidating())

	s.Begin(true)
	snap = s.Snapshot()
	assert.False(t, snap.HasData, "key change kept old items")
	assert.Empty(t, snap.Items)
}

func TestStore_UpdateErrorKeepsPreviousData(t *testing.T) {
	var s Store

	gen := s.Begin(true)
	s.Update(gen, &cohortapi.ListPage{Results: []cohortapi.ListSummary{{ID: "1"}}, TotalCount: 1}, nil)

	gen = s.Begin(false)
	origErr := errors.New("boom")
	s.Update(gen, nil, origErr)

	snap := s.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "1", snap.Items[0].ID)
	require.Error(t, snap.LastError)
	assert.EqualError(t, snap.LastError, "boom")
	assert.ErrorIs(t, snap.LastError, origErr)
	assert.NotSame(t, origErr, snap.LastError, "Snapshot should clone error instance")
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	assert.False(t, s.Snapshot().IsOffline())

	for i := 1; i <= 3; i++ {
		gen := s.Begin(false)
		s.Update(gen, nil, errors.New("fail"))
		snap := s.Snapshot()
		assert.Equal(t, i, snap.ConsecutiveFailures)
		assert.Equal(t, i >= 2, snap.IsOffline(), "failures=%d", i)
	}

	gen := s.Begin(false)
	s.Update(gen, &cohortapi.ListPage{}, nil)
	snap := s.Snapshot()
	assert.Zero(t, snap.ConsecutiveFailures)
	assert.False(t, snap.IsOffline())
	assert.True(t, snap.HasData, "empty page should count as data")
	assert.Zero(t, snap.TotalCount)
}
