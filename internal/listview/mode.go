package listview

import "strings"

// ViewMode selects which lists the view is scoped to.
type ViewMode int

const (
	ModeStarred ViewMode = iota
	ModeSystemDefined
	ModeUserDefined
	ModeAll
)

// Modes lists the selectable view modes in tab order.
var Modes = []ViewMode{ModeStarred, ModeSystemDefined, ModeUserDefined, ModeAll}

// Normalize maps any value outside the enumeration onto ModeAll.
func (m ViewMode) Normalize() ViewMode {
	switch m {
	case ModeStarred, ModeSystemDefined, ModeUserDefined, ModeAll:
		return m
	default:
		return ModeAll
	}
}

// String returns the persisted name of the mode.
func (m ViewMode) String() string {
	switch m.Normalize() {
	case ModeStarred:
		return "starred"
	case ModeSystemDefined:
		return "system"
	case ModeUserDefined:
		return "user"
	default:
		return "all"
	}
}

// ParseViewMode is the inverse of String. Empty input yields the default
// mode (starred); unknown names fall back to ModeAll.
func ParseViewMode(value string) ViewMode {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "starred":
		return ModeStarred
	case "system":
		return ModeSystemDefined
	case "user":
		return ModeUserDefined
	default:
		return ModeAll
	}
}

// Next returns the following tab, wrapping around.
func (m ViewMode) Next() ViewMode {
	return Modes[(int(m.Normalize())+1)%len(Modes)]
}

// Prev returns the preceding tab, wrapping around.
func (m ViewMode) Prev() ViewMode {
	return Modes[(int(m.Normalize())+len(Modes)-1)%len(Modes)]
}

// ShowsKindColumn reports whether the list kind is worth a column. Scoped
// modes already imply the kind.
func (m ViewMode) ShowsKindColumn() bool {
	switch m.Normalize() {
	case ModeStarred, ModeAll:
		return true
	default:
		return false
	}
}

// TabLabel returns the translated tab caption for the mode.
func (m ViewMode) TabLabel(t Translator) string {
	t = orIdentity(t)
	switch m.Normalize() {
	case ModeStarred:
		return t.T("starredLists", "Starred lists")
	case ModeSystemDefined:
		return t.T("systemLists", "System lists")
	case ModeUserDefined:
		return t.T("myLists", "My lists")
	default:
		return t.T("allLists", "All lists")
	}
}
