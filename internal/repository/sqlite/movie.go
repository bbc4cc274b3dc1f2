package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/vibescine/cinevibes/internal/domain"
)

// MovieRepository implements domain.MovieRepository using SQLite.
type MovieRepository struct {
	db *sql.DB
}

// NewMovieRepository creates a new SQLite-backed MovieRepository.
func NewMovieRepository(db *DB) *MovieRepository {
	return &MovieRepository{db: db.SqlDB}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMovie(s scanner) (*domain.Movie, error) {
	m := &domain.Movie{}
	var release sql.NullTime
	err := s.Scan(&m.ID, &m.IMDbID, &m.Title, &m.Year, &m.Poster, &m.Plot,
		&m.Director, &m.Actors, &m.Genres, &m.IMDbRating, &release,
		&m.Runtime, &m.Language, &m.Country, &m.Awards, &m.Available, &m.VideoLink)
	if err != nil {
		return nil, err
	}
	if release.Valid {
		m.ReleaseDate = release.Time
	}
	return m, nil
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC()
}

func (r *MovieRepository) Upsert(ctx context.Context, movie *domain.Movie) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO movies (imdb_id, title, year, poster, plot, director, actors, genres,
		                     imdb_rating, release_date, runtime, language, country, awards,
		                     available, video_link)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(imdb_id) DO UPDATE SET
		     title = excluded.title,
		     year = excluded.year,
		     poster = excluded.poster,
		     plot = excluded.plot,
		     director = excluded.director,
		     actors = excluded.actors,
		     genres = excluded.genres,
		     imdb_rating = excluded.imdb_rating,
		     release_date = excluded.release_date,
		     runtime = excluded.runtime,
		     language = excluded.language,
		     country = excluded.country,
		     awards = excluded.awards,
		     available = CASE WHEN excluded.available = 1 THEN 1 ELSE movies.available END,
		     video_link = CASE WHEN excluded.video_link != '' THEN excluded.video_link ELSE movies.video_link END`,
		movie.IMDbID, movie.Title, movie.Year, movie.Poster, movie.Plot, movie.Director,
		movie.Actors, movie.Genres, movie.IMDbRating, nullTime(movie.ReleaseDate),
		movie.Runtime, movie.Language, movie.Country, movie.Awards, movie.Available, movie.VideoLink,
	)
	if err != nil {
		return fmt.Errorf("upsert movie: %w", err)
	}

	// LastInsertId is unreliable for the update arm of an upsert.
	err = r.db.QueryRowContext(ctx, "SELECT id FROM movies WHERE imdb_id = ?", movie.IMDbID).Scan(&movie.ID)
	if err != nil {
		return fmt.Errorf("get movie id: %w", err)
	}
	return nil
}

func (r *MovieRepository) GetByID(ctx context.Context, id int64) (*domain.Movie, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, imdb_id, title, year, poster, plot, director, actors, genres,
		        imdb_rating, release_date, runtime, language, country, awards, available, video_link
		 FROM movies WHERE id = ?`, id)
	movie, err := scanMovie(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query movie by id: %w", err)
	}
	return movie, nil
}

func (r *MovieRepository) GetByIMDbID(ctx context.Context, imdbID string) (*domain.Movie, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, imdb_id, title, year, poster, plot, director, actors, genres,
		        imdb_rating, release_date, runtime, language, country, awards, available, video_link
		 FROM movies WHERE imdb_id = ?`, imdbID)
	movie, err := scanMovie(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query movie by imdb id: %w", err)
	}
	return movie, nil
}

func (r *MovieRepository) Recent(ctx context.Context, limit, offset int) ([]domain.Movie, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, imdb_id, title, year, poster, plot, director, actors, genres,
		        imdb_rating, release_date, runtime, language, country, awards, available, video_link
		 FROM movies WHERE available = 1
		 ORDER BY release_date DESC
		 LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list recent movies: %w", err)
	}
	return collectMovies(rows)
}

func (r *MovieRepository) CountAvailable(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM movies WHERE available = 1").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count movies: %w", err)
	}
	return count, nil
}

func (r *MovieRepository) Available(ctx context.Context) ([]domain.Movie, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, imdb_id, title, year, poster, plot, director, actors, genres,
		        imdb_rating, release_date, runtime, language, country, awards, available, video_link
		 FROM movies WHERE available = 1
		 ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("list available movies: %w", err)
	}
	return collectMovies(rows)
}

func (r *MovieRepository) AvailableIDs(ctx context.Context) (map[string]bool, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT imdb_id FROM movies WHERE available = 1")
	if err != nil {
		return nil, fmt.Errorf("list available ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan imdb id: %w", err)
		}
		ids[id] = true
	}
	return ids, rows.Err()
}

func (r *MovieRepository) Random(ctx context.Context, limit int) ([]domain.Movie, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, imdb_id, title, year, poster, plot, director, actors, genres,
		        imdb_rating, release_date, runtime, language, country, awards, available, video_link
		 FROM movies WHERE available = 1
		 ORDER BY RANDOM()
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list random movies: %w", err)
	}
	return collectMovies(rows)
}

func (r *MovieRepository) Genres(ctx context.Context) ([]string, error) {
	return r.distinctValues(ctx, "genres")
}

func (r *MovieRepository) Actors(ctx context.Context) ([]string, error) {
	return r.distinctValues(ctx, "actors")
}

func (r *MovieRepository) Directors(ctx context.Context) ([]string, error) {
	return r.distinctValues(ctx, "director")
}

// distinctValues splits a comma-separated catalog column into a sorted,
// deduplicated list. Column names are fixed by the callers above.
func (r *MovieRepository) distinctValues(ctx context.Context, column string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(
		"SELECT %s FROM movies WHERE available = 1 AND %s != ''", column, column))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", column, err)
	}
	defer rows.Close()

	seen := make(map[string]bool)
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan %s: %w", column, err)
		}
		for _, value := range strings.Split(raw, ",") {
			value = strings.TrimSpace(value)
			if value != "" && value != "N/A" {
				seen[value] = true
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	values := make([]string, 0, len(seen))
	for value := range seen {
		values = append(values, value)
	}
	sort.Strings(values)
	return values, nil
}

func (r *MovieRepository) Recommend(ctx context.Context, userID int64, genre, actor, director string, limit int) ([]domain.Movie, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, imdb_id, title, year, poster, plot, director, actors, genres,
		        imdb_rating, release_date, runtime, language, country, awards, available, video_link
		 FROM movies
		 WHERE available = 1
		   AND (? = '' OR genres LIKE '%' || ? || '%')
		   AND (? = '' OR actors LIKE '%' || ? || '%')
		   AND (? = '' OR director LIKE '%' || ? || '%')
		   AND id NOT IN (SELECT movie_id FROM favorites WHERE user_id = ?)
		 ORDER BY imdb_rating DESC
		 LIMIT ?`,
		genre, genre, actor, actor, director, director, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("recommend movies: %w", err)
	}
	return collectMovies(rows)
}

func collectMovies(rows *sql.Rows) ([]domain.Movie, error) {
	defer rows.Close()

	var movies []domain.Movie
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, *movie)
	}
	return movies, rows.Err()
}
