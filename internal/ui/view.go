package ui

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/cohort/internal/cohortapi"
	"github.com/five82/cohort/internal/listview"
)

// Rows outside the table: header, tabs, search (two lines), paginator,
// detail line and key hints.
const chromeHeight = 7

func (m Model) bodyHeight() int {
	return max(m.height-chromeHeight, 3)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	props := m.ctrl.Props()

	sections := []string{
		m.renderHeader(),
		m.renderTabs(props),
		m.renderSearch(props),
		m.renderBody(props),
		m.renderPaginator(props),
		m.renderFooter(props),
	}
	view := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		MaxHeight(m.height).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))

	switch {
	case m.dialog.active:
		view = overlayCenter(view, m.dialog.view(m.styles, m.t), m.width, m.height)
	case m.showHelp:
		view = overlayCenter(view, m.renderHelp(), m.width, m.height)
	}
	return view
}

// renderHeader renders the breadcrumb bar.
func (m Model) renderHeader() string {
	bg := NewBgStyle(m.theme.Surface)
	left := bg.Join([]string{
		bg.Render(m.t.T("home", "Home"), m.styles.Breadcrumb),
		bg.Render(m.t.T("patientLists", "Patient lists"), m.styles.Title),
	}, " / ")

	right := bg.Render("c "+m.t.T("newList", "New list"), m.styles.AccentText)
	if m.store.Snapshot().IsOffline() {
		right = bg.Render(m.t.T("apiOffline", "API offline"), m.styles.DangerText) + bg.Spaces(2) + right
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	return m.styles.Header.Width(m.width).Render(left + bg.Spaces(gap) + right)
}

func (m Model) renderTabs(props listview.ViewProps) string {
	tabs := make([]string, 0, len(listview.Modes))
	for _, mode := range listview.Modes {
		style := m.styles.Tab
		if mode == props.Mode {
			style = m.styles.ActiveTab
		}
		tabs = append(tabs, style.Render(mode.TabLabel(m.t)))
	}
	return truncate(lipgloss.JoinHorizontal(lipgloss.Top, tabs...), m.width)
}

func (m Model) renderSearch(props listview.ViewProps) string {
	box := m.styles.Search
	if m.searching {
		box = m.styles.SearchFocused
	}
	status := ""
	if props.Validating {
		status = m.spinner.View() + " " + m.styles.MutedText.Render(m.t.T("validating", "Validating"))
	}
	input := m.search.View()
	gap := m.width - lipgloss.Width(input) - lipgloss.Width(status)
	line := input + strings.Repeat(" ", max(gap, 1)) + status
	return box.Width(m.width).Render(truncate(line, m.width))
}

func (m Model) renderBody(props listview.ViewProps) string {
	var content string
	switch {
	case props.Loading:
		content = m.spinner.View() + " " + m.styles.MutedText.Render(m.t.T("loading", "Loading lists…"))
	case props.Err != nil && len(props.Items) == 0:
		content = lipgloss.JoinVertical(lipgloss.Center,
			m.styles.DangerText.Render(m.t.T("errorLoadingLists", "Error loading lists")),
			m.styles.MutedText.Render(describeError(props.Err, m.t)),
		)
	case len(props.Items) == 0 && props.Search != "":
		content = m.styles.MutedText.Render(m.t.T("noMatchingLists", "No lists match your search"))
	case len(props.Items) == 0:
		text := m.t.T("noListsToDisplay", "No patient lists to display")
		if props.Label != "" {
			text += " (" + props.Label + ")"
		}
		content = m.styles.MutedText.Render(text)
	default:
		return m.table.View()
	}
	return lipgloss.Place(m.width, m.bodyHeight(), lipgloss.Center, lipgloss.Center, content)
}

// renderPaginator shows page position and the page size choices. The line
// stays blank while everything fits on one page.
func (m Model) renderPaginator(props listview.ViewProps) string {
	if !props.ShowPaginator {
		return ""
	}
	sizes := make([]string, 0, len(props.PageSizes))
	for _, size := range props.PageSizes {
		label := strconv.Itoa(size)
		if size == props.PageSize {
			sizes = append(sizes, m.styles.AccentText.Render("["+label+"]"))
			continue
		}
		sizes = append(sizes, m.styles.FaintText.Render(label))
	}

	position := fmt.Sprintf("%s %d %s %d",
		m.t.T("page", "Page"), props.Page, m.t.T("of", "of"), props.TotalPages)
	total := fmt.Sprintf("%d %s", props.TotalCount, m.t.T("items", "items"))
	line := strings.Join([]string{
		m.styles.Text.Render(position),
		m.styles.MutedText.Render(total),
		m.styles.MutedText.Render(m.t.T("itemsPerPage", "Items per page")+":") + " " + strings.Join(sizes, " "),
	}, m.styles.FaintText.Render("  ·  "))
	return truncate(line, m.width)
}

func (m Model) renderFooter(props listview.ViewProps) string {
	var detail string
	switch {
	case m.toast != "":
		detail = m.styles.Toast.Render(m.toast)
	case m.notice != "":
		detail = m.styles.DangerText.Render(m.notice)
	case props.Err != nil && len(props.Items) > 0:
		detail = m.styles.WarningText.Render(describeError(props.Err, m.t))
	default:
		if item, ok := m.selected(); ok {
			detail = m.renderSelected(item, props.Search)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		truncate(detail, m.width),
		truncate(m.shortHelp(), m.width),
	)
}

const createdLayout = "2 Jan 2006"

// renderSelected describes the list under the cursor, marking the runes that
// match the search text.
func (m Model) renderSelected(item cohortapi.ListSummary, search string) string {
	parts := []string{
		highlightMatch(item.Display, search, m.styles.Text, m.styles.Match),
		m.styles.MutedText.Render(kindLabel(item.Kind, m.t)),
		m.styles.MutedText.Render(fmt.Sprintf("%d %s", item.Size, m.t.T("patients", "patients"))),
	}
	if created := item.ParsedCreatedAt(); !created.IsZero() {
		parts = append(parts, m.styles.MutedText.Render(m.t.T("created", "created")+" "+created.Format(createdLayout)))
	}
	if item.IsStarred {
		parts = append(parts, m.styles.Star.Render(starredGlyph))
	}
	if item.Description != "" {
		parts = append(parts, m.styles.FaintText.Render(item.Description))
	}
	return strings.Join(parts, m.styles.FaintText.Render(" · "))
}

// describeError turns a fetch error into a short human string.
func describeError(err error, t listview.Translator) string {
	if err == nil {
		return ""
	}
	var se *cohortapi.StatusError
	switch {
	case errors.As(err, &se):
		if se.Message != "" {
			return se.Message
		}
		return http.StatusText(se.Code)
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "cancelled"
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return t.T("apiOffline", "API offline")
	case strings.Contains(msg, "no such host"):
		return "host not found"
	case strings.Contains(msg, "timeout"):
		return "timeout"
	default:
		return msg
	}
}
