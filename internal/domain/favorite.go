package domain

import (
	"context"
	"time"
)

// Favorite links a user to a catalog movie. At most one row per pair.
type Favorite struct {
	ID        int64
	UserID    int64
	MovieID   int64
	CreatedAt time.Time
}

// FavoriteRepository defines persistence operations for favorites.
type FavoriteRepository interface {
	Add(ctx context.Context, favorite *Favorite) error
	Remove(ctx context.Context, userID, movieID int64) error
	ListByUser(ctx context.Context, userID int64) ([]Movie, error)
	Has(ctx context.Context, userID, movieID int64) (bool, error)
}
