package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vibescine/cinevibes/internal/domain"
)

// WatchHistoryRepository implements domain.WatchHistoryRepository using SQLite.
type WatchHistoryRepository struct {
	db *sql.DB
}

// NewWatchHistoryRepository creates a new SQLite-backed WatchHistoryRepository.
func NewWatchHistoryRepository(db *DB) *WatchHistoryRepository {
	return &WatchHistoryRepository{db: db.SqlDB}
}

func (r *WatchHistoryRepository) Record(ctx context.Context, entry *domain.WatchEntry) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO watch_history (user_id, movie_id, watched_at) VALUES (?, ?, ?)",
		entry.UserID, entry.MovieID, now,
	)
	if err != nil {
		return fmt.Errorf("insert watch entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get watch entry id: %w", err)
	}
	entry.ID = id
	entry.WatchedAt = now
	return nil
}

func (r *WatchHistoryRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]domain.WatchedMovie, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT m.id, m.imdb_id, m.title, m.year, m.poster, m.plot, m.director, m.actors,
		        m.genres, m.imdb_rating, m.release_date, m.runtime, m.language, m.country,
		        m.awards, m.available, m.video_link, h.watched_at
		 FROM watch_history h
		 JOIN movies m ON m.id = h.movie_id
		 WHERE h.user_id = ?
		 ORDER BY h.watched_at DESC
		 LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list watch history: %w", err)
	}
	defer rows.Close()

	var watched []domain.WatchedMovie
	for rows.Next() {
		var wm domain.WatchedMovie
		var release sql.NullTime
		if err := rows.Scan(&wm.ID, &wm.IMDbID, &wm.Title, &wm.Year, &wm.Poster, &wm.Plot,
			&wm.Director, &wm.Actors, &wm.Genres, &wm.IMDbRating, &release,
			&wm.Runtime, &wm.Language, &wm.Country, &wm.Awards, &wm.Available,
			&wm.VideoLink, &wm.WatchedAt); err != nil {
			return nil, fmt.Errorf("scan watch entry: %w", err)
		}
		if release.Valid {
			wm.ReleaseDate = release.Time
		}
		watched = append(watched, wm)
	}
	return watched, rows.Err()
}
