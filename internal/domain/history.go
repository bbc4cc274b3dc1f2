package domain

import (
	"context"
	"time"
)

// WatchEntry records that a user opened the player for a catalog movie.
type WatchEntry struct {
	ID        int64
	UserID    int64
	MovieID   int64
	WatchedAt time.Time
}

// WatchedMovie pairs a history entry with its catalog row.
type WatchedMovie struct {
	Movie
	WatchedAt time.Time
}

// WatchHistoryRepository defines persistence operations for watch history.
type WatchHistoryRepository interface {
	Record(ctx context.Context, entry *WatchEntry) error
	ListByUser(ctx context.Context, userID int64, limit int) ([]WatchedMovie, error)
}
