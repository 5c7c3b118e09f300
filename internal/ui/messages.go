package ui

import (
	"github.com/five82/cohort/internal/cohortapi"
	"github.com/five82/cohort/internal/listview"
)

// listsLoadedMsg carries a finished list fetch.
type listsLoadedMsg struct {
	resp listview.Response
}

// locationMsg signals that the address changed.
type locationMsg struct{}

// RevalidateMsg asks the view to refetch the page it shows, keeping the
// current rows visible until the response arrives.
type RevalidateMsg struct{}

// createdMsg carries the outcome of the create-list dialog.
type createdMsg struct {
	list cohortapi.ListSummary
	err  error
}

// starredMsg carries the outcome of a star toggle.
type starredMsg struct {
	id      string
	starred bool
	err     error
}

type searchDebounceMsg struct{ seq int }

type toastClearMsg struct{ seq int }
