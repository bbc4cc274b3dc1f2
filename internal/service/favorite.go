package service

import (
	"context"
	"errors"

	"github.com/vibescine/cinevibes/internal/domain"
)

// FavoriteService manages per-user favorite titles.
type FavoriteService struct {
	favorites domain.FavoriteRepository
	movies    domain.MovieRepository
	data      MovieData
}

// NewFavoriteService creates a FavoriteService.
func NewFavoriteService(favorites domain.FavoriteRepository, movies domain.MovieRepository, data MovieData) *FavoriteService {
	return &FavoriteService{favorites: favorites, movies: movies, data: data}
}

// Add marks a title as a favorite, importing it into the catalog if
// needed. Adding an existing favorite is a no-op.
func (s *FavoriteService) Add(ctx context.Context, userID int64, imdbID string) error {
	movie, err := ensureMovie(ctx, s.movies, s.data, imdbID)
	if err != nil {
		return err
	}

	err = s.favorites.Add(ctx, &domain.Favorite{UserID: userID, MovieID: movie.ID})
	if errors.Is(err, domain.ErrDuplicateFavorite) {
		return nil
	}
	return err
}

// Remove unmarks a favorite.
func (s *FavoriteService) Remove(ctx context.Context, userID int64, imdbID string) error {
	movie, err := s.movies.GetByIMDbID(ctx, imdbID)
	if err != nil {
		return err
	}
	return s.favorites.Remove(ctx, userID, movie.ID)
}

// List returns the user's favorite titles, most recently added first.
func (s *FavoriteService) List(ctx context.Context, userID int64) ([]domain.Movie, error) {
	return s.favorites.ListByUser(ctx, userID)
}

// Has reports whether a title is among the user's favorites.
func (s *FavoriteService) Has(ctx context.Context, userID int64, imdbID string) (bool, error) {
	movie, err := s.movies.GetByIMDbID(ctx, imdbID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return s.favorites.Has(ctx, userID, movie.ID)
}
