package domain

import (
	"context"
	"time"
)

// Review rating bounds.
const (
	MinRating = 1
	MaxRating = 10
)

// Review is a user's rating and write-up for a movie. MovieID is the
// external catalog identifier, so users can review titles the local
// catalog has not imported yet.
type Review struct {
	ID        int64
	UserID    int64
	MovieID   string
	Rating    int
	Text      string
	CreatedAt time.Time
}

// MovieReview is a review joined with its author, for movie pages.
type MovieReview struct {
	Review
	Nickname   string
	ProfilePic string
}

// UserReview is a review joined with catalog metadata, for profile pages.
type UserReview struct {
	Review
	MovieTitle  string
	MoviePoster string
	MovieYear   string
}

// RatingSummary aggregates the community rating for one movie.
type RatingSummary struct {
	Average float64
	Count   int
}

// ReviewRepository defines persistence operations for reviews. Update and
// Delete take the acting user's id and only touch rows that user owns.
type ReviewRepository interface {
	Create(ctx context.Context, review *Review) error
	GetByID(ctx context.Context, id int64) (*Review, error)
	ListByMovie(ctx context.Context, movieID string) ([]MovieReview, error)
	ListByUser(ctx context.Context, userID int64) ([]UserReview, error)
	CountByUser(ctx context.Context, userID int64) (int, error)
	RatingSummary(ctx context.Context, movieID string) (*RatingSummary, error)
	Update(ctx context.Context, id, userID int64, rating int, text string) error
	Delete(ctx context.Context, id, userID int64) error
}
