// Package moviedata is a client for the OMDb-style movie metadata API.
// Responses are cached briefly in memory so a burst of identical queries
// (typeahead search, detail refreshes) does not hammer the upstream.
package moviedata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/vibescine/cinevibes/internal/domain"
)

const (
	searchTTL      = 30 * time.Second
	detailTTL      = 60 * time.Second
	requestTimeout = 10 * time.Second
	userAgent      = "CineVibes/1.0"
)

// SearchItem is one row of a title search.
type SearchItem struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	IMDbID string `json:"imdbID"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

// Details is the full metadata record for one title.
type Details struct {
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Released   string `json:"Released"`
	Runtime    string `json:"Runtime"`
	Genre      string `json:"Genre"`
	Director   string `json:"Director"`
	Actors     string `json:"Actors"`
	Plot       string `json:"Plot"`
	Language   string `json:"Language"`
	Country    string `json:"Country"`
	Awards     string `json:"Awards"`
	Poster     string `json:"Poster"`
	IMDbRating string `json:"imdbRating"`
	IMDbID     string `json:"imdbID"`
	Type       string `json:"Type"`
	Response   string `json:"Response"`
	Error      string `json:"Error"`
}

type searchResponse struct {
	Search   []SearchItem `json:"Search"`
	Response string       `json:"Response"`
	Error    string       `json:"Error"`
}

type searchCacheEntry struct {
	items   []SearchItem
	expires time.Time
}

type detailCacheEntry struct {
	details *Details
	expires time.Time
}

// Client talks to the movie metadata API. A zero api key disables the
// client; calls then fail with ErrUnavailable so handlers can surface a
// clear upstream error instead of leaking empty results.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client

	mu          sync.Mutex
	searchCache map[string]searchCacheEntry
	detailCache map[string]detailCacheEntry
}

// NewClient creates a Client for the given API endpoint.
func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:      apiKey,
		baseURL:     baseURL,
		http:        &http.Client{Timeout: requestTimeout},
		searchCache: make(map[string]searchCacheEntry),
		detailCache: make(map[string]detailCacheEntry),
	}
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

// Search returns movie-typed results for a free-text title query. A query
// with no upstream matches returns an empty slice, not an error.
func (c *Client) Search(ctx context.Context, query string) ([]SearchItem, error) {
	if !c.Enabled() {
		return nil, domain.ErrUnavailable
	}

	c.mu.Lock()
	if entry, ok := c.searchCache[query]; ok && time.Now().Before(entry.expires) {
		items := entry.items
		c.mu.Unlock()
		return items, nil
	}
	c.mu.Unlock()

	var parsed searchResponse
	if err := c.get(ctx, url.Values{"s": {query}}, &parsed); err != nil {
		return nil, err
	}

	if parsed.Response != "True" {
		// "Movie not found!" is an empty result, not a failure.
		if parsed.Error == "Movie not found!" || parsed.Error == "Too many results." {
			return []SearchItem{}, nil
		}
		return nil, fmt.Errorf("movie api: %s", parsed.Error)
	}

	movies := make([]SearchItem, 0, len(parsed.Search))
	for _, item := range parsed.Search {
		if item.Type == "movie" {
			movies = append(movies, item)
		}
	}

	c.mu.Lock()
	c.searchCache[query] = searchCacheEntry{items: movies, expires: time.Now().Add(searchTTL)}
	c.mu.Unlock()

	return movies, nil
}

// ByID fetches the full record for an external id, with the long plot.
func (c *Client) ByID(ctx context.Context, imdbID string) (*Details, error) {
	if !c.Enabled() {
		return nil, domain.ErrUnavailable
	}

	c.mu.Lock()
	if entry, ok := c.detailCache[imdbID]; ok && time.Now().Before(entry.expires) {
		details := entry.details
		c.mu.Unlock()
		return details, nil
	}
	c.mu.Unlock()

	details := &Details{}
	if err := c.get(ctx, url.Values{"i": {imdbID}, "plot": {"full"}}, details); err != nil {
		return nil, err
	}

	if details.Response != "True" {
		return nil, domain.ErrNotFound
	}

	c.mu.Lock()
	c.detailCache[imdbID] = detailCacheEntry{details: details, expires: time.Now().Add(detailTTL)}
	c.mu.Unlock()

	return details, nil
}

// ByTitle fetches the record matching a title, optionally pinned to a
// year. Used to enrich movie requests; responses are not cached.
func (c *Client) ByTitle(ctx context.Context, title, year string) (*Details, error) {
	if !c.Enabled() {
		return nil, domain.ErrUnavailable
	}

	params := url.Values{"t": {title}}
	if year != "" {
		params.Set("y", year)
	}

	details := &Details{}
	if err := c.get(ctx, params, details); err != nil {
		return nil, err
	}

	if details.Response != "True" {
		return nil, domain.ErrNotFound
	}
	return details, nil
}

func (c *Client) get(ctx context.Context, params url.Values, out any) error {
	params.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build movie api request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("movie api request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("movie api status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode movie api response: %w", err)
	}
	return nil
}
