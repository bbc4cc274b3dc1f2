package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/vibescine/cinevibes/internal/domain"
)

// ReviewService manages movie reviews. Mutations are owner-only.
type ReviewService struct {
	reviews domain.ReviewRepository
	movies  domain.MovieRepository
	data    MovieData
}

// NewReviewService creates a ReviewService.
func NewReviewService(reviews domain.ReviewRepository, movies domain.MovieRepository, data MovieData) *ReviewService {
	return &ReviewService{reviews: reviews, movies: movies, data: data}
}

// Add creates a review for a title, importing the title into the
// catalog first if needed.
func (s *ReviewService) Add(ctx context.Context, userID int64, imdbID string, rating int, text string) (*domain.Review, error) {
	text = strings.TrimSpace(text)
	if err := validateReview(rating, text); err != nil {
		return nil, err
	}

	movie, err := ensureMovie(ctx, s.movies, s.data, imdbID)
	if err != nil {
		return nil, err
	}

	review := &domain.Review{
		UserID:  userID,
		MovieID: movie.IMDbID,
		Rating:  rating,
		Text:    text,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// ListByMovie returns all reviews for a title, newest first, with
// author details attached.
func (s *ReviewService) ListByMovie(ctx context.Context, imdbID string) ([]domain.MovieReview, error) {
	return s.reviews.ListByMovie(ctx, imdbID)
}

// ListByUser returns all reviews a user wrote, newest first, with
// movie details attached.
func (s *ReviewService) ListByUser(ctx context.Context, userID int64) ([]domain.UserReview, error) {
	return s.reviews.ListByUser(ctx, userID)
}

// CountByUser returns how many reviews a user has written.
func (s *ReviewService) CountByUser(ctx context.Context, userID int64) (int, error) {
	return s.reviews.CountByUser(ctx, userID)
}

// Update rewrites a review's rating and text. Only the author may
// update it.
func (s *ReviewService) Update(ctx context.Context, userID, reviewID int64, rating int, text string) (*domain.Review, error) {
	text = strings.TrimSpace(text)
	if err := validateReview(rating, text); err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, userID, reviewID); err != nil {
		return nil, err
	}
	if err := s.reviews.Update(ctx, reviewID, userID, rating, text); err != nil {
		return nil, err
	}
	return s.reviews.GetByID(ctx, reviewID)
}

// Delete removes a review. Only the author may delete it.
func (s *ReviewService) Delete(ctx context.Context, userID, reviewID int64) error {
	if err := s.authorize(ctx, userID, reviewID); err != nil {
		return err
	}
	return s.reviews.Delete(ctx, reviewID, userID)
}

// authorize distinguishes a missing review from someone else's.
func (s *ReviewService) authorize(ctx context.Context, userID, reviewID int64) error {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.UserID != userID {
		return domain.ErrUnauthorized
	}
	return nil
}

func validateReview(rating int, text string) error {
	if rating < domain.MinRating || rating > domain.MaxRating {
		return fmt.Errorf("%w: rating must be between %d and %d", domain.ErrInvalidInput, domain.MinRating, domain.MaxRating)
	}
	if text == "" {
		return fmt.Errorf("%w: review text is required", domain.ErrInvalidInput)
	}
	return nil
}
