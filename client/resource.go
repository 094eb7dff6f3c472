// Package client provides a small consumer-side container for the
// paginated list endpoints. One generic Resource serves places,
// festivals, and reviews alike.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"telatour/database/query"
)

// State is the lifecycle phase of a Resource.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Snapshot is a point-in-time copy of a Resource's observable state.
// After a failed refresh Items still holds the last good page.
type Snapshot[T any] struct {
	State      State
	Items      []T
	Pagination query.Pagination
	Err        string
}

// Resource tracks one paginated collection endpoint. It is safe for
// concurrent use; overlapping fetches resolve in favor of the most
// recently started one.
type Resource[T any] struct {
	httpClient *http.Client
	endpoint   string

	mu         sync.Mutex
	filters    map[string]string
	state      State
	items      []T
	pagination query.Pagination
	errMsg     string
	seq        uint64
}

// NewResource builds a Resource for the given list endpoint URL, e.g.
// "http://localhost:5000/api/places". A nil httpClient gets a default
// with a 10s timeout.
func NewResource[T any](httpClient *http.Client, endpoint string) *Resource[T] {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Resource[T]{
		httpClient: httpClient,
		endpoint:   endpoint,
		filters:    make(map[string]string),
		state:      StateIdle,
	}
}

// SetFilters merges the given filters into the current set without
// fetching. An empty value removes the filter.
func (r *Resource[T]) SetFilters(filters map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, v := range filters {
		if v == "" {
			delete(r.filters, k)
			continue
		}
		r.filters[k] = v
	}
}

// Snapshot returns a copy of the current observable state.
func (r *Resource[T]) Snapshot() Snapshot[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]T, len(r.items))
	copy(items, r.items)
	return Snapshot[T]{
		State:      r.state,
		Items:      items,
		Pagination: r.pagination,
		Err:        r.errMsg,
	}
}

// Fetch loads one page with the current filters. A fetch started after
// this one wins; this one's response is then discarded, whatever order
// the responses arrive in.
func (r *Resource[T]) Fetch(ctx context.Context) error {
	r.mu.Lock()
	r.seq++
	token := r.seq
	r.state = StateLoading
	reqURL := r.requestURL()
	r.mu.Unlock()

	page, err := r.fetchPage(ctx, reqURL)

	r.mu.Lock()
	defer r.mu.Unlock()
	if token != r.seq {
		return nil
	}
	if err != nil {
		r.state = StateError
		r.errMsg = err.Error()
		return err
	}
	r.state = StateReady
	r.items = page.Items
	r.pagination = page.Pagination
	r.errMsg = ""
	return nil
}

func (r *Resource[T]) requestURL() string {
	if len(r.filters) == 0 {
		return r.endpoint
	}
	q := url.Values{}
	for k, v := range r.filters {
		q.Set(k, v)
	}
	return r.endpoint + "?" + q.Encode()
}

func (r *Resource[T]) fetchPage(ctx context.Context, reqURL string) (*query.Page[T], error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, apiErr.Error)
		}
		return nil, fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	var page query.Page[T]
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &page, nil
}
