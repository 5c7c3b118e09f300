package ui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/cohort/internal/cohortapi"
	"github.com/five82/cohort/internal/config"
	"github.com/five82/cohort/internal/listview"
	"github.com/five82/cohort/internal/location"
	"github.com/five82/cohort/internal/logging"
	"github.com/five82/cohort/internal/prefs"
	"github.com/five82/cohort/internal/state"
)

// Options configure the list browser.
type Options struct {
	Context    context.Context
	Service    cohortapi.Service
	Store      *state.Store
	History    *location.History
	Translator listview.Translator
	Logger     *slog.Logger
	Config     *config.Config
	ThemeName  string
	Mode       listview.ViewMode
	PageSize   int    // zero uses Config.ListsToShow
	PrefsPath  string // empty disables saving preferences
}

// Model is the Bubble Tea model for the patient-list browser.
type Model struct {
	ctx       context.Context
	svc       cohortapi.Service
	store     *state.Store
	ctrl      *listview.Controller
	history   *location.History
	changes   <-chan struct{}
	stopWatch func()
	t         listview.Translator
	logger    *slog.Logger
	timeout   time.Duration
	prefsPath string

	keys    keyMap
	help    help.Model
	theme   Theme
	styles  Styles
	table   table.Model
	spinner spinner.Model
	dialog  createDialog

	search    textinput.Model
	searching bool
	searchSeq int

	spinning bool
	showHelp bool
	toast    string
	toastSeq int
	notice   string

	width  int
	height int
}

// startMsg kicks off the first fetch once the program is running.
type startMsg struct{}

// New creates a list browser model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := opts.Config
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}
	t := opts.Translator
	if t == nil {
		t = listview.TranslatorFunc(func(_, fallback string) string { return fallback })
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	store := opts.Store
	if store == nil {
		store = &state.Store{}
	}
	history := opts.History
	if history == nil {
		history = location.New(listview.CloseAddress(cfg.BasePath))
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = cfg.ListsToShow
	}

	ctrl := listview.NewController(listview.Options{
		Context:        ctx,
		Fetcher:        opts.Service,
		Location:       history,
		Navigator:      history,
		Translator:     t,
		Store:          store,
		Logger:         logger,
		BasePath:       cfg.BasePath,
		Mode:           opts.Mode,
		PageSize:       pageSize,
		PageSizes:      cfg.PageSizes,
		RequestTimeout: cfg.RequestTimeout,
	})
	changes, stop := history.Watch()

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = t.T("searchThisList", "Search this list")
	search.CharLimit = maxNameLength

	tbl := table.New(table.WithFocused(true), table.WithHeight(10))

	m := Model{
		ctx:       ctx,
		svc:       opts.Service,
		store:     store,
		ctrl:      ctrl,
		history:   history,
		changes:   changes,
		stopWatch: stop,
		t:         t,
		logger:    logger,
		timeout:   cfg.RequestTimeout,
		prefsPath: opts.PrefsPath,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		table:     tbl,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		dialog:    newCreateDialog(t),
		search:    search,
	}
	m.setTheme(opts.ThemeName)
	m.refreshTable()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return startMsg{} },
		waitForLocation(m.changes),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case startMsg:
		return m, tea.Batch(m.sync(), m.syncOverlay())

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil

	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		return m, tea.Batch(cmd, m.syncOverlay())

	case listsLoadedMsg:
		if m.ctrl.Apply(msg.resp) {
			m.refreshTable()
		}
		return m, nil

	case locationMsg:
		return m, tea.Batch(m.syncOverlay(), waitForLocation(m.changes))

	case RevalidateMsg:
		// A key change in flight already carries fresh data.
		if m.store.Snapshot().InFlight {
			return m, nil
		}
		return m, m.startFetch(m.ctrl.Refetch())

	case createdMsg:
		return m, m.handleCreated(msg)

	case starredMsg:
		return m, m.handleStarred(msg)

	case searchDebounceMsg:
		if msg.seq != m.searchSeq {
			return m, nil
		}
		return m, m.applySearch()

	case toastClearMsg:
		if msg.seq == m.toastSeq {
			m.toast = ""
		}
		return m, nil

	case spinner.TickMsg:
		if !m.store.Snapshot().InFlight {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Cursor blink and similar input housekeeping.
	if m.dialog.active {
		return m, m.dialog.update(msg)
	}
	if m.searching {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		m.Close()
		return tea.Quit
	}
	if m.dialog.active {
		return m.handleDialogKey(msg)
	}
	if m.showHelp {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.Close()
			return tea.Quit
		case key.Matches(msg, m.keys.Help, m.keys.Cancel):
			m.showHelp = false
		}
		return nil
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}

	m.notice = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Close()
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.CycleTheme):
		m.setTheme(NextTheme(m.theme.Name))
		m.savePrefs()
	case key.Matches(msg, m.keys.Back):
		m.history.Back()
	case key.Matches(msg, m.keys.NextTab):
		return m.setMode(m.ctrl.Mode().Next())
	case key.Matches(msg, m.keys.PrevTab):
		return m.setMode(m.ctrl.Mode().Prev())
	case key.Matches(msg, m.keys.Tab1):
		return m.setMode(listview.ModeStarred)
	case key.Matches(msg, m.keys.Tab2):
		return m.setMode(listview.ModeSystemDefined)
	case key.Matches(msg, m.keys.Tab3):
		return m.setMode(listview.ModeUserDefined)
	case key.Matches(msg, m.keys.Tab4):
		return m.setMode(listview.ModeAll)
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.search.CursorEnd()
		return m.search.Focus()
	case key.Matches(msg, m.keys.ClearSearch):
		m.search.SetValue("")
		m.searchSeq++
		return m.applySearch()
	case key.Matches(msg, m.keys.NextPage):
		props := m.ctrl.Props()
		if props.Page < props.TotalPages && m.ctrl.SetPage(props.Page+1) {
			return m.sync()
		}
	case key.Matches(msg, m.keys.PrevPage):
		if page := m.ctrl.Page(); page > 1 && m.ctrl.SetPage(page-1) {
			return m.sync()
		}
	case key.Matches(msg, m.keys.PageSize):
		if m.ctrl.CyclePageSize(1) {
			m.savePrefs()
			return m.sync()
		}
	case key.Matches(msg, m.keys.ToggleStar):
		item, ok := m.selected()
		if !ok || m.svc == nil {
			return nil
		}
		return starCmd(m.ctx, m.svc, m.timeout, item.ID, !item.IsStarred)
	case key.Matches(msg, m.keys.NewList):
		m.ctrl.OpenOverlay()
	case key.Matches(msg, m.keys.Refresh):
		return m.startFetch(m.ctrl.Refetch())
	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.searching = false
		m.search.Blur()
		m.searchSeq++
		return m.applySearch()
	case key.Matches(msg, m.keys.Cancel):
		m.searching = false
		m.search.Blur()
		return nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() == before {
		return cmd
	}
	m.searchSeq++
	return tea.Batch(cmd, debounceCmd(m.searchSeq))
}

func (m *Model) handleDialogKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		if !m.dialog.submitting {
			m.ctrl.CloseOverlay()
		}
		return nil
	case m.dialog.submitting:
		return nil
	case key.Matches(msg, m.keys.Submit):
		return m.submitDialog()
	case key.Matches(msg, m.keys.Confirm):
		if m.dialog.focus < fieldCount-1 {
			return m.dialog.focusField(m.dialog.focus + 1)
		}
		return m.submitDialog()
	case key.Matches(msg, m.keys.NextField):
		return m.dialog.focusField(m.dialog.focus + 1)
	case key.Matches(msg, m.keys.PrevField):
		return m.dialog.focusField(m.dialog.focus - 1)
	}
	return m.dialog.update(msg)
}

func (m *Model) submitDialog() tea.Cmd {
	list, problem := m.dialog.request(m.t)
	if problem != "" {
		m.dialog.err = problem
		return m.dialog.focusField(fieldName)
	}
	if m.svc == nil {
		return nil
	}
	m.dialog.submitting = true
	return createCmd(m.ctx, m.svc, m.timeout, list)
}

func (m *Model) handleCreated(msg createdMsg) tea.Cmd {
	if msg.err != nil {
		m.logger.Warn("create list failed", "error", msg.err)
		m.dialog.submitting = false
		m.dialog.err = m.t.T("createFailed", "Could not create list") + ": " + describeError(msg.err, m.t)
		return nil
	}
	m.logger.Info("list created", "id", msg.list.ID, "name", msg.list.Display)
	refetch := m.startFetch(m.ctrl.OnCreated())
	m.ctrl.CloseOverlay()
	m.dialog.close()
	return tea.Batch(refetch, m.showToast(m.t.T("listCreated", "List created")))
}

func (m *Model) handleStarred(msg starredMsg) tea.Cmd {
	if msg.err != nil {
		m.logger.Warn("star toggle failed", "id", msg.id, "error", msg.err)
		m.notice = m.t.T("starFailed", "Could not update list") + ": " + describeError(msg.err, m.t)
		return nil
	}
	text := m.t.T("unstarredToast", "List removed from starred")
	if msg.starred {
		text = m.t.T("starredToast", "List starred")
	}
	return tea.Batch(m.startFetch(m.ctrl.Refetch()), m.showToast(text))
}

// syncOverlay opens or closes the dialog to match the address.
func (m *Model) syncOverlay() tea.Cmd {
	open := m.ctrl.IsOverlayOpen()
	switch {
	case open && !m.dialog.active:
		m.searching = false
		m.search.Blur()
		m.showHelp = false
		return m.dialog.open()
	case !open && m.dialog.active:
		m.dialog.close()
	}
	return nil
}

func (m *Model) setMode(mode listview.ViewMode) tea.Cmd {
	if !m.ctrl.SetMode(mode) {
		return nil
	}
	m.table.SetCursor(0)
	m.savePrefs()
	return m.sync()
}

func (m *Model) applySearch() tea.Cmd {
	value := m.search.Value()
	if value == m.ctrl.Search() {
		return nil
	}
	m.ctrl.SetSearch(value)
	m.table.SetCursor(0)
	return m.sync()
}

// sync issues a fetch when the request key changed.
func (m *Model) sync() tea.Cmd {
	req, ok := m.ctrl.Sync()
	if !ok {
		return nil
	}
	return m.startFetch(req)
}

func (m *Model) startFetch(req listview.Request) tea.Cmd {
	m.refreshTable()
	cmds := []tea.Cmd{fetchCmd(req)}
	if !m.spinning {
		m.spinning = true
		cmds = append(cmds, m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

func (m *Model) showToast(text string) tea.Cmd {
	m.toast = text
	m.toastSeq++
	return clearToastCmd(m.toastSeq)
}

func (m *Model) setTheme(name string) {
	m.theme = GetTheme(name)
	m.styles = m.theme.Styles()
	m.table.SetStyles(m.theme.TableStyles())
	m.spinner.Style = m.styles.AccentText
	m.help.Styles.ShortKey = m.styles.AccentText
	m.help.Styles.ShortDesc = m.styles.MutedText
	m.help.Styles.ShortSeparator = m.styles.FaintText
	m.help.Styles.FullKey = m.styles.AccentText
	m.help.Styles.FullDesc = m.styles.MutedText
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{
		Theme:    m.theme.Name,
		PageSize: m.ctrl.PageSize(),
		ViewMode: m.ctrl.Mode().String(),
	}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("save prefs failed", "path", m.prefsPath, "error", err)
	}
}

// refreshTable copies the controller's rows into the table and enables the
// paginator keys only while the paginator is shown.
func (m *Model) refreshTable() {
	props := m.ctrl.Props()
	cols := tableColumns(props.Headers, m.width)
	rows := tableRows(props.Items, props.Headers, m.t)
	setTableData(&m.table, cols, rows)

	m.keys.NextPage.SetEnabled(props.ShowPaginator)
	m.keys.PrevPage.SetEnabled(props.ShowPaginator)
	m.keys.PageSize.SetEnabled(props.ShowPaginator)
}

func (m *Model) layout() {
	m.table.SetWidth(m.width)
	m.table.SetHeight(max(m.bodyHeight()-2, 1))
	m.refreshTable()
}

// selected returns the list under the table cursor.
func (m Model) selected() (cohortapi.ListSummary, bool) {
	items := m.store.Snapshot().Items
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(items) {
		return cohortapi.ListSummary{}, false
	}
	return items[idx], true
}

// Close stops watching the address and cancels any in-flight fetch.
func (m Model) Close() {
	m.ctrl.Close()
	if m.stopWatch != nil {
		m.stopWatch()
	}
}
