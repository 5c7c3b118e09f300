package cohortapi

import (
	"strings"
	"time"
)

// ListKind distinguishes lists maintained by the system from lists users create.
type ListKind string

const (
	KindSystem ListKind = "system"
	KindUser   ListKind = "user"
)

// ParseListKind normalizes a kind string. Unknown values yield "".
func ParseListKind(value string) ListKind {
	switch ListKind(strings.ToLower(strings.TrimSpace(value))) {
	case KindSystem:
		return KindSystem
	case KindUser:
		return KindUser
	default:
		return ""
	}
}

// ListSummary describes a patient list in transport-friendly form.
type ListSummary struct {
	ID          string   `json:"id"`
	Display     string   `json:"display"`
	Description string   `json:"description,omitempty"`
	Kind        ListKind `json:"kind"`
	Size        int      `json:"size"`
	IsStarred   bool     `json:"isStarred"`
	CreatedAt   string   `json:"createdAt,omitempty"`
}

// ParsedCreatedAt returns the parsed CreatedAt timestamp.
func (l ListSummary) ParsedCreatedAt() time.Time {
	if l.CreatedAt == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, l.CreatedAt); err == nil {
			return t
		}
	}
	return time.Time{}
}

// ListFilter scopes which lists a query returns.
type ListFilter struct {
	Starred      bool
	Kind         ListKind
	NameContains string
}

// ListQuery is one page request against /api/lists.
type ListQuery struct {
	Filter   ListFilter
	Page     int
	PageSize int
}

// Offset returns the zero-based row offset of the first item on the page.
func (q ListQuery) Offset() int {
	if q.Page < 1 || q.PageSize < 1 {
		return 0
	}
	return (q.Page - 1) * q.PageSize
}

// ListPage mirrors the payload returned by GET /api/lists.
type ListPage struct {
	Results    []ListSummary `json:"results"`
	TotalCount int           `json:"totalCount"`
}

// NewList is the payload accepted by POST /api/lists.
type NewList struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Kind        ListKind `json:"kind,omitempty"`
}

// ErrorResponse is the body the API sends with 4xx/5xx responses.
type ErrorResponse struct {
	Error string `json:"error"`
}
