package service

import (
	"context"
	"log/slog"

	"github.com/vibescine/cinevibes/internal/domain"
)

const historyLimit = 50

// HistoryService records and lists what a user has watched.
type HistoryService struct {
	history domain.WatchHistoryRepository
	movies  domain.MovieRepository
}

// NewHistoryService creates a HistoryService.
func NewHistoryService(history domain.WatchHistoryRepository, movies domain.MovieRepository) *HistoryService {
	return &HistoryService{history: history, movies: movies}
}

// Player returns the video link for an available title and records the
// watch. Titles without a playable link report ErrNotFound.
func (s *HistoryService) Player(ctx context.Context, userID int64, imdbID string) (string, error) {
	movie, err := s.movies.GetByIMDbID(ctx, imdbID)
	if err != nil {
		return "", err
	}
	if !movie.Available || movie.VideoLink == "" {
		return "", domain.ErrNotFound
	}

	entry := &domain.WatchEntry{UserID: userID, MovieID: movie.ID}
	if err := s.history.Record(ctx, entry); err != nil {
		slog.Warn("record watch", "user", userID, "movie", movie.IMDbID, "error", err)
	}
	return movie.VideoLink, nil
}

// List returns the user's most recent watches, newest first.
func (s *HistoryService) List(ctx context.Context, userID int64) ([]domain.WatchedMovie, error) {
	return s.history.ListByUser(ctx, userID, historyLimit)
}
