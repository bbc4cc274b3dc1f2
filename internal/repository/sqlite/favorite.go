package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vibescine/cinevibes/internal/domain"
)

// FavoriteRepository implements domain.FavoriteRepository using SQLite.
type FavoriteRepository struct {
	db *sql.DB
}

// NewFavoriteRepository creates a new SQLite-backed FavoriteRepository.
func NewFavoriteRepository(db *DB) *FavoriteRepository {
	return &FavoriteRepository{db: db.SqlDB}
}

func (r *FavoriteRepository) Add(ctx context.Context, favorite *domain.Favorite) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO favorites (user_id, movie_id, created_at) VALUES (?, ?, ?)",
		favorite.UserID, favorite.MovieID, now,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return domain.ErrDuplicateFavorite
		}
		return fmt.Errorf("insert favorite: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get favorite id: %w", err)
	}
	favorite.ID = id
	favorite.CreatedAt = now
	return nil
}

func (r *FavoriteRepository) Remove(ctx context.Context, userID, movieID int64) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM favorites WHERE user_id = ? AND movie_id = ?", userID, movieID)
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	return requireRow(result)
}

func (r *FavoriteRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Movie, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT m.id, m.imdb_id, m.title, m.year, m.poster, m.plot, m.director, m.actors,
		        m.genres, m.imdb_rating, m.release_date, m.runtime, m.language, m.country,
		        m.awards, m.available, m.video_link
		 FROM favorites f
		 JOIN movies m ON m.id = f.movie_id
		 WHERE f.user_id = ?
		 ORDER BY f.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return collectMovies(rows)
}

func (r *FavoriteRepository) Has(ctx context.Context, userID, movieID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM favorites WHERE user_id = ? AND movie_id = ?)",
		userID, movieID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check favorite: %w", err)
	}
	return exists, nil
}
