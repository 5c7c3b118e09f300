package ui

import (
	"testing"

	"github.com/charmbracelet/bubbles/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/cohort/internal/cohortapi"
	"github.com/five82/cohort/internal/listview"
)

var identityT = listview.TranslatorFunc(func(_, fallback string) string { return fallback })

func TestTableColumnsFillWidth(t *testing.T) {
	headers := listview.Columns(listview.ModeAll, nil)
	cols := tableColumns(headers, 80)
	require.Len(t, cols, 4)

	total := 0
	for _, c := range cols {
		total += c.Width + cellPadding
	}
	assert.Equal(t, 80, total)
	assert.Equal(t, "List name", cols[0].Title)
	assert.Equal(t, starWidth, cols[3].Width)
}

func TestTableColumnsKeepMinimumNameWidth(t *testing.T) {
	cols := tableColumns(listview.Columns(listview.ModeStarred, nil), 10)
	assert.Equal(t, minNameWidth, cols[0].Width)
}

func TestTableRowsFollowHeaderOrder(t *testing.T) {
	items := []cohortapi.ListSummary{
		{ID: "a", Display: "Diabetes follow-up", Kind: cohortapi.KindSystem, Size: 23, IsStarred: true},
		{ID: "b", Display: "Ward 7", Kind: cohortapi.KindUser, Size: 4},
	}

	rows := tableRows(items, listview.Columns(listview.ModeAll, nil), identityT)
	require.Len(t, rows, 2)
	assert.Equal(t, table.Row{"Diabetes follow-up", "System", "23", starredGlyph}, rows[0])
	assert.Equal(t, table.Row{"Ward 7", "User", "4", unstarredGlyph}, rows[1])

	rows = tableRows(items, listview.Columns(listview.ModeSystemDefined, nil), identityT)
	assert.Equal(t, table.Row{"Diabetes follow-up", "23", starredGlyph}, rows[0])
}

func TestSetTableDataHandlesColumnCountChange(t *testing.T) {
	tbl := table.New(table.WithHeight(5))
	wide := listview.Columns(listview.ModeAll, nil)
	narrow := listview.Columns(listview.ModeUserDefined, nil)
	items := []cohortapi.ListSummary{{Display: "a"}, {Display: "b"}, {Display: "c"}}

	setTableData(&tbl, tableColumns(wide, 60), tableRows(items, wide, identityT))
	tbl.SetCursor(2)
	require.Len(t, tbl.Columns(), 4)

	assert.NotPanics(t, func() {
		setTableData(&tbl, tableColumns(narrow, 60), tableRows(items[:1], narrow, identityT))
		_ = tbl.View()
	})
	assert.Len(t, tbl.Columns(), 3)
	assert.Len(t, tbl.Rows(), 1)
	assert.Equal(t, 0, tbl.Cursor())
}

func TestKindLabel(t *testing.T) {
	assert.Equal(t, "System", kindLabel(cohortapi.KindSystem, identityT))
	assert.Equal(t, "User", kindLabel(cohortapi.KindUser, identityT))
	assert.Equal(t, "", kindLabel("", identityT))
}

func TestSetTableDataSelectsFirstRowAfterEmpty(t *testing.T) {
	tbl := table.New(table.WithHeight(5))
	cols := listview.Columns(listview.ModeAll, nil)
	items := []cohortapi.ListSummary{{Display: "a"}, {Display: "b"}}

	setTableData(&tbl, tableColumns(cols, 60), nil)
	assert.Equal(t, -1, tbl.Cursor())

	setTableData(&tbl, tableColumns(cols, 60), tableRows(items, cols, identityT))
	assert.Equal(t, 0, tbl.Cursor())
}
