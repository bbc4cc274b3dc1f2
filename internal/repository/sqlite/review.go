package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vibescine/cinevibes/internal/domain"
)

// ReviewRepository implements domain.ReviewRepository using SQLite.
type ReviewRepository struct {
	db *sql.DB
}

// NewReviewRepository creates a new SQLite-backed ReviewRepository.
func NewReviewRepository(db *DB) *ReviewRepository {
	return &ReviewRepository{db: db.SqlDB}
}

func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO reviews (user_id, movie_id, rating, review_text, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		review.UserID, review.MovieID, review.Rating, review.Text, now,
	)
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get review id: %w", err)
	}
	review.ID = id
	review.CreatedAt = now
	return nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	review := &domain.Review{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, movie_id, rating, review_text, created_at
		 FROM reviews WHERE id = ?`, id,
	).Scan(&review.ID, &review.UserID, &review.MovieID, &review.Rating, &review.Text, &review.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query review by id: %w", err)
	}
	return review, nil
}

func (r *ReviewRepository) ListByMovie(ctx context.Context, movieID string) ([]domain.MovieReview, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT r.id, r.user_id, r.movie_id, r.rating, r.review_text, r.created_at,
		        u.nickname, u.profile_pic
		 FROM reviews r
		 JOIN users u ON u.id = r.user_id
		 WHERE r.movie_id = ?
		 ORDER BY r.created_at DESC`, movieID)
	if err != nil {
		return nil, fmt.Errorf("list reviews by movie: %w", err)
	}
	defer rows.Close()

	var reviews []domain.MovieReview
	for rows.Next() {
		var mr domain.MovieReview
		if err := rows.Scan(&mr.ID, &mr.UserID, &mr.MovieID, &mr.Rating, &mr.Text,
			&mr.CreatedAt, &mr.Nickname, &mr.ProfilePic); err != nil {
			return nil, fmt.Errorf("scan movie review: %w", err)
		}
		reviews = append(reviews, mr)
	}
	return reviews, rows.Err()
}

func (r *ReviewRepository) ListByUser(ctx context.Context, userID int64) ([]domain.UserReview, error) {
	// LEFT JOIN keeps reviews for titles the catalog has not imported.
	rows, err := r.db.QueryContext(ctx,
		`SELECT r.id, r.user_id, r.movie_id, r.rating, r.review_text, r.created_at,
		        COALESCE(m.title, ''), COALESCE(m.poster, ''), COALESCE(m.year, '')
		 FROM reviews r
		 LEFT JOIN movies m ON m.imdb_id = r.movie_id
		 WHERE r.user_id = ?
		 ORDER BY r.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list reviews by user: %w", err)
	}
	defer rows.Close()

	var reviews []domain.UserReview
	for rows.Next() {
		var ur domain.UserReview
		if err := rows.Scan(&ur.ID, &ur.UserID, &ur.MovieID, &ur.Rating, &ur.Text,
			&ur.CreatedAt, &ur.MovieTitle, &ur.MoviePoster, &ur.MovieYear); err != nil {
			return nil, fmt.Errorf("scan user review: %w", err)
		}
		reviews = append(reviews, ur)
	}
	return reviews, rows.Err()
}

func (r *ReviewRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM reviews WHERE user_id = ?", userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count reviews: %w", err)
	}
	return count, nil
}

func (r *ReviewRepository) RatingSummary(ctx context.Context, movieID string) (*domain.RatingSummary, error) {
	summary := &domain.RatingSummary{}
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(AVG(rating), 0), COUNT(*) FROM reviews WHERE movie_id = ?",
		movieID).Scan(&summary.Average, &summary.Count)
	if err != nil {
		return nil, fmt.Errorf("rating summary: %w", err)
	}
	return summary, nil
}

// Update touches the row only when it belongs to userID.
func (r *ReviewRepository) Update(ctx context.Context, id, userID int64, rating int, text string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE reviews SET rating = ?, review_text = ? WHERE id = ? AND user_id = ?",
		rating, text, id, userID)
	if err != nil {
		return fmt.Errorf("update review: %w", err)
	}
	return requireRow(result)
}

// Delete removes the row only when it belongs to userID.
func (r *ReviewRepository) Delete(ctx context.Context, id, userID int64) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM reviews WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	return requireRow(result)
}

// requireRow maps a zero rowcount to ErrNotFound.
func requireRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
