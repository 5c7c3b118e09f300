package listview

import "github.com/five82/cohort/internal/cohortapi"

// Translator looks up a display string, returning fallback when the key has
// no translation.
type Translator interface {
	T(key, fallback string) string
}

// TranslatorFunc adapts a function to Translator.
type TranslatorFunc func(key, fallback string) string

// T implements Translator.
func (f TranslatorFunc) T(key, fallback string) string { return f(key, fallback) }

// identity returns every fallback unchanged.
var identity = TranslatorFunc(func(_, fallback string) string { return fallback })

func orIdentity(t Translator) Translator {
	if t == nil {
		return identity
	}
	return t
}

// QueryFilter is the structured predicate sent to the fetch collaborator.
// Label describes the active mode for display and is not part of the query.
type QueryFilter struct {
	IsStarred    bool
	Kind         cohortapi.ListKind
	NameContains string
	Label        string
}

// ListFilter converts the filter to its wire form.
func (f QueryFilter) ListFilter() cohortapi.ListFilter {
	return cohortapi.ListFilter{
		Starred:      f.IsStarred,
		Kind:         f.Kind,
		NameContains: f.NameContains,
	}
}

// DeriveFilter maps a view mode and search text onto a QueryFilter.
// NameContains is always the search text verbatim.
func DeriveFilter(mode ViewMode, search string, t Translator) QueryFilter {
	t = orIdentity(t)
	switch mode {
	case ModeStarred:
		return QueryFilter{IsStarred: true, NameContains: search, Label: t.T("starred", "starred")}
	case ModeSystemDefined:
		return QueryFilter{Kind: cohortapi.KindSystem, NameContains: search, Label: t.T("systemDefined", "system-defined")}
	case ModeUserDefined:
		return QueryFilter{Kind: cohortapi.KindUser, NameContains: search, Label: t.T("userDefined", "user-defined")}
	default:
		return QueryFilter{NameContains: search, Label: ""}
	}
}

// filterMemo caches the last derived filter so unchanged inputs return the
// same pointer. Callers compare pointers to decide whether to refetch.
type filterMemo struct {
	mode   ViewMode
	search string
	filter *QueryFilter
}

func (m *filterMemo) get(mode ViewMode, search string, t Translator) *QueryFilter {
	if m.filter != nil && m.mode == mode && m.search == search {
		return m.filter
	}
	f := DeriveFilter(mode, search, t)
	m.mode = mode
	m.search = search
	m.filter = &f
	return m.filter
}
