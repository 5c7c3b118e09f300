package listview

// Column describes one table column handed to the renderer.
type Column struct {
	ID     int
	Key    string
	Header string
}

// Column keys.
const (
	ColumnName    = "display"
	ColumnKind    = "type"
	ColumnSize    = "size"
	ColumnStarred = "isStarred"
)

// Columns returns the table headers for mode. The kind column is dropped
// when the mode already scopes the list to one kind.
func Columns(mode ViewMode, t Translator) []Column {
	t = orIdentity(t)
	cols := []Column{{ID: 1, Key: ColumnName, Header: t.T("listName", "List name")}}
	if mode.ShowsKindColumn() {
		cols = append(cols, Column{ID: 2, Key: ColumnKind, Header: t.T("listType", "List type")})
	}
	cols = append(cols,
		Column{ID: 3, Key: ColumnSize, Header: t.T("noOfPatients", "No. of patients")},
		Column{ID: 4, Key: ColumnStarred, Header: ""},
	)
	return cols
}
