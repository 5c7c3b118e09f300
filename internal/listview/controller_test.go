package listview

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/cohort/internal/cohortapi"
)

type fakeFetcher struct {
	mu      sync.Mutex
	total   int
	err     error
	queries []cohortapi.ListQuery
}

func (f *fakeFetcher) FetchLists(ctx context.Context, q cohortapi.ListQuery) (cohortapi.ListPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	if f.err != nil {
		return cohortapi.ListPage{}, f.err
	}
	n := min(q.PageSize, max(f.total-q.Offset(), 0))
	results := make([]cohortapi.ListSummary, n)
	for i := range results {
		results[i] = cohortapi.ListSummary{ID: string(rune('a' + i)), Display: "list"}
	}
	return cohortapi.ListPage{Results: results, TotalCount: f.total}, nil
}

func (f *fakeFetcher) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

func newTestController(f Fetcher, loc *fakeLocation, mode ViewMode, size int) *Controller {
	return NewController(Options{
		Fetcher:   f,
		Location:  loc,
		Navigator: loc,
		Mode:      mode,
		PageSize:  size,
	})
}

// syncAndApply mimics one render of the view: issue what changed, run it, apply it.
func syncAndApply(t *testing.T, c *Controller) bool {
	t.Helper()
	req, ok := c.Sync()
	if !ok {
		return false
	}
	require.True(t, c.Apply(req.Do()))
	return true
}

func TestSystemDefinedSearchScenario(t *testing.T) {
	f := &fakeFetcher{total: 5}
	c := newTestController(f, &fakeLocation{}, ModeSystemDefined, 20)
	c.SetSearch("diabetes")
	require.True(t, syncAndApply(t, c))

	props := c.Props()
	assert.Len(t, props.Headers, 3)
	assert.False(t, props.ShowPaginator)
	assert.False(t, c.ShowPaginator())
	assert.Equal(t, 1, props.Page)
	assert.Equal(t, 5, props.TotalCount)
	assert.Len(t, props.Items, 5)
	assert.Equal(t, "system-defined", props.Label)

	require.Len(t, f.queries, 1)
	assert.Equal(t, cohortapi.ListQuery{
		Filter:   cohortapi.ListFilter{Kind: cohortapi.KindSystem, NameContains: "diabetes"},
		Page:     1,
		PageSize: 20,
	}, f.queries[0])
}

func TestStarredPagingScenario(t *testing.T) {
	f := &fakeFetcher{total: 45}
	c := newTestController(f, &fakeLocation{}, ModeStarred, 10)
	require.True(t, syncAndApply(t, c))
	assert.True(t, c.ShowPaginator())
	assert.Len(t, c.Props().Headers, 4)

	assert.True(t, c.SetPage(2))
	require.True(t, syncAndApply(t, c))
	assert.False(t, c.SetPage(2))
	assert.False(t, syncAndApply(t, c))

	assert.Equal(t, 2, f.calls())
	assert.Equal(t, 2, f.queries[1].Page)
}

func TestIdenticalInputsDoNotRefetch(t *testing.T) {
	f := &fakeFetcher{total: 3}
	c := newTestController(f, &fakeLocation{}, ModeAll, 10)
	c.SetSearch("asthma")
	require.True(t, syncAndApply(t, c))

	filter := c.Filter()
	for range 5 {
		c.SetSearch("asthma")
		assert.Same(t, filter, c.Filter())
		assert.False(t, syncAndApply(t, c))
	}
	assert.Equal(t, 1, f.calls())
}

func TestSetSearchResetsPage(t *testing.T) {
	c := newTestController(&fakeFetcher{}, &fakeLocation{}, ModeAll, 10)
	c.SetPage(7)
	c.SetSearch("anything")
	assert.Equal(t, 1, c.Page())

	c.SetPage(3)
	c.SetSearch("anything")
	assert.Equal(t, 1, c.Page(), "even unchanged search text resets the page")
}

func TestSetPageSizeDoesNotResetPage(t *testing.T) {
	f := &fakeFetcher{total: 45}
	c := newTestController(f, &fakeLocation{}, ModeAll, 10)
	c.SetPage(5)
	assert.True(t, c.SetPageSize(50))
	assert.Equal(t, 5, c.Page())

	// Page 5 of 50 is past the single page of results; the view shows it empty.
	require.True(t, syncAndApply(t, c))
	props := c.Props()
	assert.Empty(t, props.Items)
	assert.Equal(t, 1, props.TotalPages)
	assert.False(t, props.ShowPaginator)
}

func TestSetModeKeepsPage(t *testing.T) {
	c := newTestController(&fakeFetcher{}, &fakeLocation{}, ModeStarred, 10)
	c.SetPage(3)
	assert.True(t, c.SetMode(ModeUserDefined))
	assert.False(t, c.SetMode(ModeUserDefined))
	assert.Equal(t, 3, c.Page())
	assert.True(t, c.SetMode(ViewMode(17)))
	assert.Equal(t, ModeAll, c.Mode())
}

func TestCyclePageSize(t *testing.T) {
	c := newTestController(&fakeFetcher{}, &fakeLocation{}, ModeAll, 10)
	assert.True(t, c.CyclePageSize(1))
	assert.Equal(t, 20, c.PageSize())
	assert.True(t, c.CyclePageSize(-2))
	assert.Equal(t, 50, c.PageSize())

	odd := newTestController(&fakeFetcher{}, &fakeLocation{}, ModeAll, 15)
	assert.True(t, odd.CyclePageSize(1))
	assert.Equal(t, 10, odd.PageSize())
}

func TestStaleResponsesAreDropped(t *testing.T) {
	f := &fakeFetcher{total: 30}
	c := newTestController(f, &fakeLocation{}, ModeAll, 10)

	first, ok := c.Sync()
	require.True(t, ok)
	c.SetSearch("b")
	second, ok := c.Sync()
	require.True(t, ok)

	assert.ErrorIs(t, first.ctx.Err(), context.Canceled, "superseded request is cancelled")

	assert.True(t, c.Apply(second.Do()))
	assert.False(t, c.Apply(Response{Generation: first.Generation, Page: cohortapi.ListPage{TotalCount: 999}}))
	assert.Equal(t, 30, c.Result().TotalCount)
}

func TestLoadingAndRevalidating(t *testing.T) {
	f := &fakeFetcher{total: 12}
	c := newTestController(f, &fakeLocation{}, ModeAll, 10)

	req, ok := c.Sync()
	require.True(t, ok)
	res := c.Result()
	assert.True(t, res.IsLoading)
	assert.True(t, res.IsRevalidating)

	c.Apply(req.Do())
	res = c.Result()
	assert.False(t, res.IsLoading)
	assert.False(t, res.IsRevalidating)

	refetch := res.Refetch()
	res = c.Result()
	assert.False(t, res.IsLoading, "refetch keeps the shown items")
	assert.True(t, res.IsRevalidating)
	assert.Len(t, res.Items, 10)
	c.Apply(refetch.Do())
	assert.Equal(t, 2, f.calls())
}

func TestFetchErrorIsForwarded(t *testing.T) {
	boom := errors.New("boom")
	f := &fakeFetcher{total: 3}
	c := newTestController(f, &fakeLocation{}, ModeAll, 10)
	require.True(t, syncAndApply(t, c))

	f.err = boom
	c.Apply(c.Refetch().Do())
	res := c.Result()
	assert.ErrorIs(t, res.Err, boom)
	assert.Len(t, res.Items, 3)
	assert.Equal(t, 2, f.calls(), "errors are not retried")
}

func TestOnCreatedRefetchesWithoutClosing(t *testing.T) {
	loc := &fakeLocation{address: "/home/patient-lists?new_cohort=true"}
	f := &fakeFetcher{total: 1}
	c := newTestController(f, loc, ModeUserDefined, 10)
	require.True(t, syncAndApply(t, c))
	assert.True(t, c.IsOverlayOpen())

	f.total = 2
	c.Apply(c.OnCreated().Do())
	assert.True(t, c.IsOverlayOpen())
	assert.Equal(t, 2, c.Result().TotalCount)

	c.CloseOverlay()
	assert.False(t, c.IsOverlayOpen())
	assert.Equal(t, "/home/patient-lists", loc.address)
	c.OpenOverlay()
	assert.True(t, c.Props().OverlayOpen)
}

func TestRequestTimeoutApplies(t *testing.T) {
	block := FetcherFunc(func(ctx context.Context, _ cohortapi.ListQuery) (cohortapi.ListPage, error) {
		<-ctx.Done()
		return cohortapi.ListPage{}, ctx.Err()
	})
	c := NewController(Options{Fetcher: block, RequestTimeout: 10 * time.Millisecond})
	req, ok := c.Sync()
	require.True(t, ok)
	resp := req.Do()
	assert.ErrorIs(t, resp.Err, context.DeadlineExceeded)
	assert.True(t, c.Apply(resp))
}

func TestCloseCancelsInFlight(t *testing.T) {
	c := newTestController(&fakeFetcher{}, &fakeLocation{}, ModeAll, 10)
	req, _ := c.Sync()
	c.Close()
	assert.Error(t, req.ctx.Err())
}
