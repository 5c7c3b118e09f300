package ui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"

	"github.com/five82/cohort/internal/cohortapi"
	"github.com/five82/cohort/internal/listview"
)

const (
	cellPadding    = 2 // table.DefaultStyles pads each cell by one on both sides
	minNameWidth   = 16
	kindWidth      = 10
	starWidth      = 2
	starredGlyph   = "★"
	unstarredGlyph = "☆"
)

// tableColumns sizes headers to fit width. The name column takes whatever
// the fixed-width columns leave over.
func tableColumns(headers []listview.Column, width int) []table.Column {
	cols := make([]table.Column, len(headers))
	fixed := 0
	nameIdx := -1
	for i, h := range headers {
		w := 0
		switch h.Key {
		case listview.ColumnName:
			nameIdx = i
		case listview.ColumnKind:
			w = max(kindWidth, len([]rune(h.Header)))
		case listview.ColumnSize:
			w = max(8, len([]rune(h.Header)))
		case listview.ColumnStarred:
			w = starWidth
		default:
			w = max(8, len([]rune(h.Header)))
		}
		cols[i] = table.Column{Title: h.Header, Width: w}
		fixed += w + cellPadding
	}
	if nameIdx >= 0 {
		cols[nameIdx].Width = max(minNameWidth, width-fixed)
	}
	return cols
}

// tableRows renders items in header order.
func tableRows(items []cohortapi.ListSummary, headers []listview.Column, t listview.Translator) []table.Row {
	rows := make([]table.Row, 0, len(items))
	for _, item := range items {
		row := make(table.Row, len(headers))
		for i, h := range headers {
			row[i] = cellValue(item, h.Key, t)
		}
		rows = append(rows, row)
	}
	return rows
}

func cellValue(item cohortapi.ListSummary, key string, t listview.Translator) string {
	switch key {
	case listview.ColumnName:
		return item.Display
	case listview.ColumnKind:
		return kindLabel(item.Kind, t)
	case listview.ColumnSize:
		return strconv.Itoa(item.Size)
	case listview.ColumnStarred:
		if item.IsStarred {
			return starredGlyph
		}
		return unstarredGlyph
	default:
		return ""
	}
}

func kindLabel(kind cohortapi.ListKind, t listview.Translator) string {
	switch kind {
	case cohortapi.KindSystem:
		return t.T("systemList", "System")
	case cohortapi.KindUser:
		return t.T("userList", "User")
	default:
		return string(kind)
	}
}

// setTableData replaces the table contents. bubbles/table renders rows
// against the current columns, so rows are cleared before a column change
// to keep a short row from being indexed past its end.
//
// An empty table leaves the cursor at -1, so it is moved back onto the
// first row once rows arrive.
func setTableData(tbl *table.Model, cols []table.Column, rows []table.Row) {
	if len(tbl.Columns()) != len(cols) {
		tbl.SetRows(nil)
	}
	tbl.SetColumns(cols)
	tbl.SetRows(rows)
	n := len(rows)
	switch {
	case n == 0:
	case tbl.Cursor() < 0:
		tbl.SetCursor(0)
	case tbl.Cursor() >= n:
		tbl.SetCursor(n - 1)
	}
}
