package cohortapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Service defines the patient-list operations the browser depends on.
// This interface is implemented by *Client and can be used for testing.
type Service interface {
	FetchLists(ctx context.Context, query ListQuery) (ListPage, error)
	CreateList(ctx context.Context, list NewList) (ListSummary, error)
	SetStarred(ctx context.Context, id string, starred bool) error
}

// Ensure Client implements Service at compile time.
var _ Service = (*Client)(nil)

// StatusError reports a non-2xx API response.
type StatusError struct {
	Path    string
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api %s returned status %d: %s", e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("api %s returned status %d", e.Path, e.Code)
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}

// Client talks to the patient-list HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultAPIBind   = "127.0.0.1:7488"
	defaultUserAgent = "cohort/0.1"
	requestTimeout   = 5 * time.Second
)

// Option customizes a Client.
type Option func(*Client)

// WithTimeout overrides the per-request timeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// NewClient builds a Client using the provided apiBind host:port value.
func NewClient(apiBind string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(apiBind)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// FetchLists retrieves one page of list summaries matching query.
func (c *Client) FetchLists(ctx context.Context, query ListQuery) (ListPage, error) {
	if c == nil {
		return ListPage{}, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	if query.Filter.Starred {
		values.Set("starred", "true")
	}
	if query.Filter.Kind != "" {
		values.Set("kind", string(query.Filter.Kind))
	}
	if query.Filter.NameContains != "" {
		values.Set("name", query.Filter.NameContains)
	}
	if query.Page > 0 {
		values.Set("page", strconv.Itoa(query.Page))
	}
	if query.PageSize > 0 {
		values.Set("pageSize", strconv.Itoa(query.PageSize))
	}
	rel := &url.URL{Path: "/api/lists", RawQuery: values.Encode()}
	var payload ListPage
	if err := c.doURL(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return ListPage{}, err
	}
	return payload, nil
}

// CreateList creates a new list and returns the stored summary.
func (c *Client) CreateList(ctx context.Context, list NewList) (ListSummary, error) {
	if c == nil {
		return ListSummary{}, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(list.Name) == "" {
		return ListSummary{}, fmt.Errorf("list name required")
	}
	var created ListSummary
	if err := c.doURL(ctx, http.MethodPost, &url.URL{Path: "/api/lists"}, list, &created); err != nil {
		return ListSummary{}, err
	}
	return created, nil
}

// SetStarred stars or unstars the list with the given id.
func (c *Client) SetStarred(ctx context.Context, id string, starred bool) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("list id required")
	}
	method := http.MethodPost
	if !starred {
		method = http.MethodDelete
	}
	rel := &url.URL{Path: "/api/lists/" + url.PathEscape(id) + "/star"}
	return c.doURL(ctx, method, rel, nil, nil)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, body any, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		statusErr := &StatusError{Path: rel.Path, Code: resp.StatusCode}
		var apiErr ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil {
			statusErr.Message = apiErr.Error
		}
		return statusErr
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(apiBind string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBind)
	if trimmed == "" {
		trimmed = defaultAPIBind
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_bind %q: %w", apiBind, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
