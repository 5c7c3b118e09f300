package listview

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/five82/cohort/internal/cohortapi"
	"github.com/five82/cohort/internal/state"
)

// Fetcher loads one page of list summaries.
type Fetcher interface {
	FetchLists(ctx context.Context, query cohortapi.ListQuery) (cohortapi.ListPage, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, query cohortapi.ListQuery) (cohortapi.ListPage, error)

// FetchLists implements Fetcher.
func (f FetcherFunc) FetchLists(ctx context.Context, query cohortapi.ListQuery) (cohortapi.ListPage, error) {
	return f(ctx, query)
}

const defaultRequestTimeout = 5 * time.Second

// Options configure a Controller.
type Options struct {
	Context        context.Context
	Fetcher        Fetcher
	Location       Location
	Navigator      Navigator
	Translator     Translator
	Store          *state.Store // nil creates a private store
	Logger         *slog.Logger
	BasePath       string
	Mode           ViewMode
	PageSize       int
	PageSizes      []int
	RequestTimeout time.Duration
}

// FetchResult is what the renderer knows about the current fetch.
type FetchResult struct {
	Items          []cohortapi.ListSummary
	TotalCount     int
	IsLoading      bool
	IsRevalidating bool
	Err            error
	Refetch        func() Request
}

// ViewProps bundles everything a renderer needs for one frame.
type ViewProps struct {
	Mode          ViewMode
	Label         string
	Search        string
	Loading       bool
	Validating    bool
	Headers       []Column
	Items         []cohortapi.ListSummary
	Err           error
	Page          int
	PageSize      int
	PageSizes     []int
	TotalCount    int
	TotalPages    int
	ShowPaginator bool
	OverlayOpen   bool
}

// Request is a fetch issued by the controller, ready to run off the UI loop.
type Request struct {
	Generation uint64
	Query      cohortapi.ListQuery

	ctx     context.Context
	cancel  context.CancelFunc
	fetcher Fetcher
}

// Response carries a finished Request back to Controller.Apply.
type Response struct {
	Generation uint64
	Page       cohortapi.ListPage
	Err        error
}

// Do performs the fetch. It blocks and is meant to run inside a tea.Cmd.
func (r Request) Do() Response {
	if r.cancel != nil {
		defer r.cancel()
	}
	if r.fetcher == nil {
		return Response{Generation: r.Generation, Err: errors.New("no fetcher configured")}
	}
	ctx := r.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	page, err := r.fetcher.FetchLists(ctx, r.Query)
	return Response{Generation: r.Generation, Page: page, Err: err}
}

type requestKey struct {
	filter   *QueryFilter
	page     int
	pageSize int
}

// Controller is the state behind one mounted list view: view mode, search
// text, pagination and the overlay flag derived from the address.
//
// It is not safe for concurrent use; drive it from a single event loop and
// run Request.Do elsewhere.
type Controller struct {
	ctx       context.Context
	fetcher   Fetcher
	t         Translator
	store     *state.Store
	logger    *slog.Logger
	overlay   OverlaySync
	timeout   time.Duration
	pageSizes []int

	mode   ViewMode
	search string
	pager  Pagination
	memo   filterMemo

	issued    requestKey
	hasIssued bool
	cancel    context.CancelFunc
}

// NewController builds a Controller on page 1 of opts.Mode.
func NewController(opts Options) *Controller {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	store := opts.Store
	if store == nil {
		store = &state.Store{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	sizes := slices.Clone(opts.PageSizes)
	if len(sizes) == 0 {
		sizes = slices.Clone(DefaultPageSizes)
	}

	return &Controller{
		ctx:       ctx,
		fetcher:   opts.Fetcher,
		t:         orIdentity(opts.Translator),
		store:     store,
		logger:    logger,
		overlay:   NewOverlaySync(opts.Location, opts.Navigator, opts.BasePath),
		timeout:   timeout,
		pageSizes: sizes,
		mode:      opts.Mode.Normalize(),
		pager:     NewPagination(opts.PageSize),
	}
}

// Mode returns the selected view mode.
func (c *Controller) Mode() ViewMode { return c.mode }

// SetMode selects a view mode. Out-of-range values select ModeAll. The page
// is not reset.
func (c *Controller) SetMode(mode ViewMode) bool {
	mode = mode.Normalize()
	if mode == c.mode {
		return false
	}
	c.mode = mode
	return true
}

// Search returns the current search text.
func (c *Controller) Search() string { return c.search }

// SetSearch replaces the search text and always returns to page 1.
func (c *Controller) SetSearch(text string) {
	c.search = text
	c.pager.ResetPage()
}

// Page returns the current 1-based page.
func (c *Controller) Page() int { return c.pager.Page() }

// PageSize returns the current page size.
func (c *Controller) PageSize() int { return c.pager.PageSize() }

// PageSizes returns the selectable page sizes.
func (c *Controller) PageSizes() []int { return slices.Clone(c.pageSizes) }

// SetPage moves to page n; it reports false when n is already current.
func (c *Controller) SetPage(n int) bool { return c.pager.SetPage(n) }

// SetPageSize changes the page size without touching the page; it reports
// false when size is already current.
func (c *Controller) SetPageSize(size int) bool { return c.pager.SetPageSize(size) }

// CyclePageSize steps through PageSizes by delta positions. A page size not
// in the list is treated as sitting before the first entry.
func (c *Controller) CyclePageSize(delta int) bool {
	idx := slices.Index(c.pageSizes, c.pager.PageSize())
	n := len(c.pageSizes)
	if idx < 0 {
		if delta > 0 {
			idx = -1
		} else {
			idx = 0
		}
	}
	next := ((idx+delta)%n + n) % n
	return c.SetPageSize(c.pageSizes[next])
}

// Filter returns the derived filter. It returns the same pointer until the
// mode or search text changes.
func (c *Controller) Filter() *QueryFilter {
	return c.memo.get(c.mode, c.search, c.t)
}

// Columns returns the table headers for the current mode.
func (c *Controller) Columns() []Column {
	return Columns(c.mode, c.t)
}

func (c *Controller) key() requestKey {
	return requestKey{filter: c.Filter(), page: c.pager.Page(), pageSize: c.pager.PageSize()}
}

// Sync issues a fetch when the filter, page or page size differs from the
// last issued request. Identical inputs issue nothing.
func (c *Controller) Sync() (Request, bool) {
	key := c.key()
	if c.hasIssued && key == c.issued {
		return Request{}, false
	}
	return c.issue(key, true), true
}

// Refetch reissues the current request, keeping shown items while it runs.
func (c *Controller) Refetch() Request {
	key := c.key()
	changed := !c.hasIssued || key != c.issued
	return c.issue(key, changed)
}

func (c *Controller) issue(key requestKey, keyChanged bool) Request {
	if c.cancel != nil {
		c.cancel()
	}
	gen := c.store.Begin(keyChanged)
	ctx, cancel := context.WithTimeout(c.ctx, c.timeout)
	c.cancel = cancel
	c.issued = key
	c.hasIssued = true

	query := cohortapi.ListQuery{
		Filter:   key.filter.ListFilter(),
		Page:     key.page,
		PageSize: key.pageSize,
	}
	c.logger.Debug("list fetch issued",
		"generation", gen,
		"mode", c.mode.String(),
		"page", query.Page,
		"page_size", query.PageSize,
		"revalidate", !keyChanged,
	)
	return Request{Generation: gen, Query: query, ctx: ctx, cancel: cancel, fetcher: c.fetcher}
}

// Apply records a finished fetch. Responses for superseded requests are
// dropped and Apply returns false.
func (c *Controller) Apply(resp Response) bool {
	var page *cohortapi.ListPage
	if resp.Err == nil {
		page = &resp.Page
	}
	if !c.store.Update(resp.Generation, page, resp.Err) {
		c.logger.Debug("stale list fetch dropped", "generation", resp.Generation)
		return false
	}
	if resp.Err != nil {
		c.logger.Warn("list fetch failed", "generation", resp.Generation, "error", resp.Err)
	}
	return true
}

// Result returns the latest fetch state for the current request.
func (c *Controller) Result() FetchResult {
	snap := c.store.Snapshot()
	return FetchResult{
		Items:          snap.Items,
		TotalCount:     snap.TotalCount,
		IsLoading:      snap.IsLoading(),
		IsRevalidating: snap.IsRevalidating(),
		Err:            snap.LastError,
		Refetch:        c.Refetch,
	}
}

// ShowPaginator reports whether the result spans more than one page.
func (c *Controller) ShowPaginator() bool {
	return c.pager.ShowPaginator(c.store.Snapshot().TotalCount)
}

// Props assembles the renderer input for the current state.
func (c *Controller) Props() ViewProps {
	res := c.Result()
	return ViewProps{
		Mode:          c.mode,
		Label:         c.Filter().Label,
		Search:        c.search,
		Loading:       res.IsLoading,
		Validating:    res.IsRevalidating,
		Headers:       c.Columns(),
		Items:         res.Items,
		Err:           res.Err,
		Page:          c.pager.Page(),
		PageSize:      c.pager.PageSize(),
		PageSizes:     c.PageSizes(),
		TotalCount:    res.TotalCount,
		TotalPages:    c.pager.TotalPages(res.TotalCount),
		ShowPaginator: c.pager.ShowPaginator(res.TotalCount),
		OverlayOpen:   c.IsOverlayOpen(),
	}
}

// IsOverlayOpen derives the overlay state from the current address.
func (c *Controller) IsOverlayOpen() bool { return c.overlay.IsOpen() }

// OpenOverlay rewrites the address to show the create-list overlay.
func (c *Controller) OpenOverlay() { c.overlay.Open() }

// CloseOverlay rewrites the address to hide the create-list overlay.
func (c *Controller) CloseOverlay() { c.overlay.Close() }

// OnCreated refreshes the list after the overlay created an entry. The
// overlay stays open; closing it is the overlay's own job.
func (c *Controller) OnCreated() Request { return c.Refetch() }

// Close cancels the in-flight request, if any.
func (c *Controller) Close() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}
