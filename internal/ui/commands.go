package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/cohort/internal/cohortapi"
	"github.com/five82/cohort/internal/listview"
)

const (
	searchDebounce = 250 * time.Millisecond
	toastDuration  = 3 * time.Second
)

func fetchCmd(req listview.Request) tea.Cmd {
	return func() tea.Msg {
		return listsLoadedMsg{resp: req.Do()}
	}
}

// waitForLocation blocks until the address changes. A closed channel ends
// the loop.
func waitForLocation(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return locationMsg{}
	}
}

func createCmd(ctx context.Context, svc cohortapi.Service, timeout time.Duration, list cohortapi.NewList) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		created, err := svc.CreateList(ctx, list)
		return createdMsg{list: created, err: err}
	}
}

func starCmd(ctx context.Context, svc cohortapi.Service, timeout time.Duration, id string, starred bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		err := svc.SetStarred(ctx, id, starred)
		return starredMsg{id: id, starred: starred, err: err}
	}
}

func debounceCmd(seq int) tea.Cmd {
	return tea.Tick(searchDebounce, func(time.Time) tea.Msg {
		return searchDebounceMsg{seq: seq}
	})
}

func clearToastCmd(seq int) tea.Cmd {
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastClearMsg{seq: seq}
	})
}
