package domain

import (
	"context"
	"time"
)

// Movie is a catalog row. Metadata originates from the external movie API
// and is cached here when a title is imported; Available and VideoLink are
// owned by this system and track what the catalog can actually play.
type Movie struct {
	ID          int64
	IMDbID      string
	Title       string
	Year        string
	Poster      string
	Plot        string
	Director    string
	Actors      string
	Genres      string
	IMDbRating  float64
	ReleaseDate time.Time
	Runtime     string
	Language    string
	Country     string
	Awards      string
	Available   bool
	VideoLink   string
}

// MovieRepository defines persistence operations for the movie catalog.
type MovieRepository interface {
	// Upsert inserts the movie or refreshes the existing row with the same
	// external id, preserving Available and VideoLink unless set.
	Upsert(ctx context.Context, movie *Movie) error
	GetByID(ctx context.Context, id int64) (*Movie, error)
	GetByIMDbID(ctx context.Context, imdbID string) (*Movie, error)
	// Recent returns available titles ordered by release date, newest first.
	Recent(ctx context.Context, limit, offset int) ([]Movie, error)
	CountAvailable(ctx context.Context) (int, error)
	Available(ctx context.Context) ([]Movie, error)
	// AvailableIDs returns the external ids of every available title, used
	// to annotate external search results.
	AvailableIDs(ctx context.Context) (map[string]bool, error)
	Random(ctx context.Context, limit int) ([]Movie, error)
	Genres(ctx context.Context) ([]string, error)
	Actors(ctx context.Context) ([]string, error)
	Directors(ctx context.Context) ([]string, error)
	// Recommend returns available titles matching the given filters, best
	// rated first, excluding the user's favorites.
	Recommend(ctx context.Context, userID int64, genre, actor, director string, limit int) ([]Movie, error)
}
