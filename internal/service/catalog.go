package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vibescine/cinevibes/internal/domain"
	"github.com/vibescine/cinevibes/internal/moviedata"
)

const (
	moviesPerPage  = 6
	randomCount    = 16
	recommendLimit = 6
	suggestLimit   = 5
)

// MovieData is the slice of the external movie API the services consume.
type MovieData interface {
	Search(ctx context.Context, query string) ([]moviedata.SearchItem, error)
	ByID(ctx context.Context, imdbID string) (*moviedata.Details, error)
	ByTitle(ctx context.Context, title, year string) (*moviedata.Details, error)
	Enabled() bool
}

// SearchResult is an external search hit annotated with whether the
// title is in the local catalog.
type SearchResult struct {
	moviedata.SearchItem
	Available bool
}

// MovieDetails merges external metadata with catalog state and the
// local review summary.
type MovieDetails struct {
	moviedata.Details
	Available bool
	VideoLink string
	Rating    domain.RatingSummary
}

// MoviePage is one page of the recent-releases listing.
type MoviePage struct {
	Movies     []domain.Movie
	Page       int
	TotalPages int
}

// Facets lists the distinct genres, actors and directors of the
// catalog, for building recommendation filters.
type Facets struct {
	Genres    []string
	Actors    []string
	Directors []string
}

// CatalogService serves movie browsing: search against the external
// API, catalog listings and per-user recommendations.
type CatalogService struct {
	movies  domain.MovieRepository
	reviews domain.ReviewRepository
	data    MovieData
}

// NewCatalogService creates a CatalogService.
func NewCatalogService(movies domain.MovieRepository, reviews domain.ReviewRepository, data MovieData) *CatalogService {
	return &CatalogService{movies: movies, reviews: reviews, data: data}
}

// Search queries the external API and annotates each hit with catalog
// availability. By default only available titles are returned;
// includeAll exposes the full annotated list.
func (s *CatalogService) Search(ctx context.Context, query string, includeAll bool) ([]SearchResult, error) {
	results, err := s.annotatedSearch(ctx, query)
	if err != nil {
		return nil, err
	}
	if includeAll {
		return results, nil
	}

	available := results[:0]
	for _, r := range results {
		if r.Available {
			available = append(available, r)
		}
	}
	return available, nil
}

// Suggest returns the first few annotated hits for realtime search
// boxes.
func (s *CatalogService) Suggest(ctx context.Context, query string) ([]SearchResult, error) {
	results, err := s.annotatedSearch(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(results) > suggestLimit {
		results = results[:suggestLimit]
	}
	return results, nil
}

func (s *CatalogService) annotatedSearch(ctx context.Context, query string) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: search query is required", domain.ErrInvalidInput)
	}

	items, err := s.data.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	ids, err := s.movies.AvailableIDs(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(items))
	for _, item := range items {
		results = append(results, SearchResult{SearchItem: item, Available: ids[item.IMDbID]})
	}
	return results, nil
}

// Details fetches full metadata for one title and merges in catalog
// availability and the local rating summary. When the external API is
// unreachable it falls back to the catalog record alone.
func (s *CatalogService) Details(ctx context.Context, imdbID string) (*MovieDetails, error) {
	local, localErr := s.movies.GetByIMDbID(ctx, imdbID)
	if localErr != nil && !errors.Is(localErr, domain.ErrNotFound) {
		return nil, localErr
	}

	details := &MovieDetails{}
	ext, err := s.data.ByID(ctx, imdbID)
	switch {
	case err == nil:
		details.Details = *ext
	case local != nil && (errors.Is(err, domain.ErrUnavailable) || errors.Is(err, domain.ErrNotFound)):
		details.Details = detailsFromMovie(local)
	default:
		return nil, err
	}

	if local != nil {
		details.Available = local.Available
		if local.Available {
			details.VideoLink = local.VideoLink
		}
		summary, err := s.reviews.RatingSummary(ctx, imdbID)
		if err != nil {
			return nil, err
		}
		details.Rating = *summary
	}
	return details, nil
}

// Recent returns one page of available titles, newest release first.
func (s *CatalogService) Recent(ctx context.Context, page int) (*MoviePage, error) {
	if page < 1 {
		page = 1
	}

	total, err := s.movies.CountAvailable(ctx)
	if err != nil {
		return nil, err
	}
	totalPages := (total + moviesPerPage - 1) / moviesPerPage
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}

	movies, err := s.movies.Recent(ctx, moviesPerPage, (page-1)*moviesPerPage)
	if err != nil {
		return nil, err
	}
	return &MoviePage{Movies: movies, Page: page, TotalPages: totalPages}, nil
}

// Available lists every available catalog title, ordered by name.
func (s *CatalogService) Available(ctx context.Context) ([]domain.Movie, error) {
	return s.movies.Available(ctx)
}

// Random picks a shuffled sample of available titles for the landing
// page.
func (s *CatalogService) Random(ctx context.Context) ([]domain.Movie, error) {
	return s.movies.Random(ctx, randomCount)
}

// Facets returns the filter values for the recommendation form.
func (s *CatalogService) Facets(ctx context.Context) (*Facets, error) {
	genres, err := s.movies.Genres(ctx)
	if err != nil {
		return nil, err
	}
	actors, err := s.movies.Actors(ctx)
	if err != nil {
		return nil, err
	}
	directors, err := s.movies.Directors(ctx)
	if err != nil {
		return nil, err
	}
	return &Facets{Genres: genres, Actors: actors, Directors: directors}, nil
}

// Recommendations returns top-rated available titles matching the
// filters, excluding the user's favorites.
func (s *CatalogService) Recommendations(ctx context.Context, userID int64, genre, actor, director string) ([]domain.Movie, error) {
	return s.movies.Recommend(ctx, userID, strings.TrimSpace(genre), strings.TrimSpace(actor), strings.TrimSpace(director), recommendLimit)
}

// Import makes sure a title exists in the catalog, fetching it from the
// external API when missing.
func (s *CatalogService) Import(ctx context.Context, imdbID string) (*domain.Movie, error) {
	return ensureMovie(ctx, s.movies, s.data, imdbID)
}

// ensureMovie resolves an external id to a catalog row, importing the
// title on first sight. Titles unknown to both the catalog and the
// external API yield ErrNotFound.
func ensureMovie(ctx context.Context, movies domain.MovieRepository, data MovieData, imdbID string) (*domain.Movie, error) {
	movie, err := movies.GetByIMDbID(ctx, imdbID)
	if err == nil {
		return movie, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	details, err := data.ByID(ctx, imdbID)
	if err != nil {
		if errors.Is(err, domain.ErrUnavailable) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	movie = movieFromDetails(details)
	if err := movies.Upsert(ctx, movie); err != nil {
		return nil, err
	}
	return movie, nil
}

func movieFromDetails(d *moviedata.Details) *domain.Movie {
	return &domain.Movie{
		IMDbID:      d.IMDbID,
		Title:       d.Title,
		Year:        d.Year,
		Poster:      d.Poster,
		Plot:        d.Plot,
		Director:    d.Director,
		Actors:      d.Actors,
		Genres:      d.Genre,
		IMDbRating:  parseRating(d.IMDbRating),
		ReleaseDate: parseReleaseDate(d.Released),
		Runtime:     d.Runtime,
		Language:    d.Language,
		Country:     d.Country,
		Awards:      d.Awards,
	}
}

func detailsFromMovie(m *domain.Movie) moviedata.Details {
	d := moviedata.Details{
		Title:    m.Title,
		Year:     m.Year,
		IMDbID:   m.IMDbID,
		Poster:   m.Poster,
		Plot:     m.Plot,
		Director: m.Director,
		Actors:   m.Actors,
		Genre:    m.Genres,
		Runtime:  m.Runtime,
		Language: m.Language,
		Country:  m.Country,
		Awards:   m.Awards,
	}
	if m.IMDbRating > 0 {
		d.IMDbRating = strconv.FormatFloat(m.IMDbRating, 'f', 1, 64)
	}
	if !m.ReleaseDate.IsZero() {
		d.Released = m.ReleaseDate.Format(releaseDateLayout)
	}
	return d
}

const releaseDateLayout = "02 Jan 2006"

func parseReleaseDate(s string) time.Time {
	t, err := time.Parse(releaseDateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func parseRating(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
