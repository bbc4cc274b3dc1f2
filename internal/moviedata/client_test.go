package moviedata_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/vibescine/cinevibes/internal/domain"
	"github.com/vibescine/cinevibes/internal/moviedata"
)

func TestClient_Search(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if got := r.URL.Query().Get("apikey"); got != "test-key" {
			t.Errorf("expected apikey test-key, got %q", got)
		}
		if got := r.URL.Query().Get("s"); got != "inception" {
			t.Errorf("expected query inception, got %q", got)
		}
		if got := r.Header.Get("User-Agent"); got != "CineVibes/1.0" {
			t.Errorf("expected client user agent, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"Search": [
				{"Title": "Inception", "Year": "2010", "imdbID": "tt1375666", "Type": "movie"},
				{"Title": "Inception: The Series", "Year": "2012", "imdbID": "tt9999901", "Type": "series"}
			],
			"totalResults": "2",
			"Response": "True"
		}`))
	}))
	defer srv.Close()

	client := moviedata.NewClient("test-key", srv.URL)

	results, err := client.Search(context.Background(), "inception")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected series results to be filtered out, got %d items", len(results))
	}
	if results[0].IMDbID != "tt1375666" {
		t.Fatalf("expected tt1375666, got %q", results[0].IMDbID)
	}

	// A repeat within the cache TTL must not hit the upstream again.
	if _, err := client.Search(context.Background(), "inception"); err != nil {
		t.Fatalf("cached Search: %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected 1 upstream call, got %d", calls.Load())
	}
}

func TestClient_Search_NoMatches(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Response": "False", "Error": "Movie not found!"}`))
	}))
	defer srv.Close()

	client := moviedata.NewClient("test-key", srv.URL)

	results, err := client.Search(context.Background(), "zzzzz")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected empty results, got %d", len(results))
	}
}

func TestClient_ByID(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if got := r.URL.Query().Get("i"); got != "tt1375666" {
			t.Errorf("expected id tt1375666, got %q", got)
		}
		if got := r.URL.Query().Get("plot"); got != "full" {
			t.Errorf("expected full plot, got %q", got)
		}
		w.Write([]byte(`{
			"Title": "Inception", "Year": "2010", "Released": "16 Jul 2010",
			"Genre": "Action, Sci-Fi", "imdbRating": "8.8", "imdbID": "tt1375666",
			"Type": "movie", "Response": "True"
		}`))
	}))
	defer srv.Close()

	client := moviedata.NewClient("test-key", srv.URL)

	details, err := client.ByID(context.Background(), "tt1375666")
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if details.Title != "Inception" {
		t.Fatalf("expected Inception, got %q", details.Title)
	}

	// Detail lookups are cached too.
	if _, err := client.ByID(context.Background(), "tt1375666"); err != nil {
		t.Fatalf("cached ByID: %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected 1 upstream call, got %d", calls.Load())
	}
}

func TestClient_ByID_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Response": "False", "Error": "Incorrect IMDb ID."}`))
	}))
	defer srv.Close()

	client := moviedata.NewClient("test-key", srv.URL)

	_, err := client.ByID(context.Background(), "bogus")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClient_ByTitle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("t"); got != "Inception" {
			t.Errorf("expected title Inception, got %q", got)
		}
		if got := r.URL.Query().Get("y"); got != "2010" {
			t.Errorf("expected year 2010, got %q", got)
		}
		w.Write([]byte(`{"Title": "Inception", "imdbID": "tt1375666", "Response": "True"}`))
	}))
	defer srv.Close()

	client := moviedata.NewClient("test-key", srv.URL)

	details, err := client.ByTitle(context.Background(), "Inception", "2010")
	if err != nil {
		t.Fatalf("ByTitle: %v", err)
	}
	if details.IMDbID != "tt1375666" {
		t.Fatalf("expected tt1375666, got %q", details.IMDbID)
	}
}

func TestClient_Disabled(t *testing.T) {
	client := moviedata.NewClient("", "https://example.com")

	if client.Enabled() {
		t.Fatal("expected client without key to be disabled")
	}
	if _, err := client.Search(context.Background(), "anything"); !errors.Is(err, domain.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if _, err := client.ByID(context.Background(), "tt1"); !errors.Is(err, domain.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestClient_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := moviedata.NewClient("test-key", srv.URL)

	if _, err := client.Search(context.Background(), "inception"); err == nil {
		t.Fatal("expected error for upstream failure")
	}
}
