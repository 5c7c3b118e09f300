package cohortapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	require.NoError(t, err)
	assert.Equal(t, "http", u.Scheme)
	assert.Equal(t, defaultAPIBind, u.Host)

	u, err = parseBaseURL("http://example.com:1234/path?x=1#frag")
	require.NoError(t, err)
	assert.Empty(t, u.Path)
	assert.Empty(t, u.RawQuery)
	assert.Empty(t, u.Fragment)
}

func TestClient_FetchListsEncodesQuery(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	var gotUserAgent string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/lists" {
			http.NotFound(w, r)
			return
		}
		gotQuery = r.URL.Query()
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ListPage{
			Results:    []ListSummary{{ID: "a", Display: "Diabetes", Kind: KindSystem, Size: 12}},
			TotalCount: 31,
		})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	page, err := c.FetchLists(ctx, ListQuery{
		Filter:   ListFilter{Starred: true, Kind: KindSystem, NameContains: "diab etes"},
		Page:     3,
		PageSize: 25,
	})
	require.NoError(t, err)
	assert.Equal(t, 31, page.TotalCount)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "a", page.Results[0].ID)

	assert.Equal(t, "true", gotQuery.Get("starred"))
	assert.Equal(t, "system", gotQuery.Get("kind"))
	assert.Equal(t, "diab etes", gotQuery.Get("name"))
	assert.Equal(t, "3", gotQuery.Get("page"))
	assert.Equal(t, "25", gotQuery.Get("pageSize"))
	assert.True(t, strings.HasPrefix(gotUserAgent, "cohort/"), "User-Agent = %q", gotUserAgent)
}

func TestClient_FetchListsOmitsEmptyFilter(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_ = json.NewEncoder(w).Encode(ListPage{})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	require.NoError(t, err)
	_, err = c.FetchLists(context.Background(), ListQuery{Page: 1, PageSize: 10})
	require.NoError(t, err)
	for _, key := range []string{"starred", "kind", "name"} {
		assert.False(t, gotQuery.Has(key), "query %v should not carry %q", gotQuery, key)
	}
}

func TestClient_CreateListAndStar(t *testing.T) {
	t.Parallel()

	var gotBody NewList
	var starCalls []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/lists":
			if r.Header.Get("Content-Type") != "application/json" {
				http.Error(w, "bad content type", http.StatusUnsupportedMediaType)
				return
			}
			_ = json.NewDecoder(r.Body).Decode(&gotBody)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(ListSummary{ID: "new-id", Display: gotBody.Name, Kind: KindUser})
		case strings.HasSuffix(r.URL.Path, "/star"):
			starCalls = append(starCalls, r.Method+" "+r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, WithTimeout(time.Second))
	require.NoError(t, err)

	created, err := c.CreateList(context.Background(), NewList{Name: "Ward 3", Description: "inpatients"})
	require.NoError(t, err)
	assert.Equal(t, "new-id", created.ID)
	assert.Equal(t, "Ward 3", created.Display)
	assert.Equal(t, "inpatients", gotBody.Description)

	require.NoError(t, c.SetStarred(context.Background(), "new-id", true))
	require.NoError(t, c.SetStarred(context.Background(), "new-id", false))
	assert.Equal(t, []string{"POST /api/lists/new-id/star", "DELETE /api/lists/new-id/star"}, starCalls)
}

func TestClient_CreateListRequiresName(t *testing.T) {
	c, err := NewClient("127.0.0.1:1")
	require.NoError(t, err)

	_, err = c.CreateList(context.Background(), NewList{Name: "   "})
	assert.Error(t, err)
	assert.Error(t, c.SetStarred(context.Background(), "", true))
}

func TestClient_HTTPErrorAndDecodeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not-json"))
		case http.MethodPost:
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(ErrorResponse{Error: "name is required"})
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	require.NoError(t, err)

	_, err = c.FetchLists(context.Background(), ListQuery{})
	assert.ErrorContains(t, err, "decode response")

	_, err = c.CreateList(context.Background(), NewList{Name: "x"})
	assert.True(t, IsStatus(err, http.StatusBadRequest), "got %v", err)
	assert.ErrorContains(t, err, "name is required")
}

func TestListQueryOffset(t *testing.T) {
	cases := []struct {
		q    ListQuery
		want int
	}{
		{ListQuery{Page: 1, PageSize: 10}, 0},
		{ListQuery{Page: 3, PageSize: 25}, 50},
		{ListQuery{Page: 0, PageSize: 10}, 0},
		{ListQuery{Page: 2, PageSize: 0}, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.q.Offset(), "%+v", tc.q)
	}
}

func TestParseListKind(t *testing.T) {
	assert.Equal(t, KindSystem, ParseListKind(" System "))
	assert.Equal(t, KindUser, ParseListKind("user"))
	assert.Equal(t, ListKind(""), ParseListKind("other"))
}

func TestParsedCreatedAt(t *testing.T) {
	l := ListSummary{CreatedAt: "2026-05-01T09:30:00.5Z"}
	assert.True(t, l.ParsedCreatedAt().Equal(time.Date(2026, 5, 1, 9, 30, 0, 5e8, time.UTC)))

	assert.True(t, ListSummary{}.ParsedCreatedAt().IsZero())
	assert.True(t, ListSummary{CreatedAt: "yesterday"}.ParsedCreatedAt().IsZero())
}
