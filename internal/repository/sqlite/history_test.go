package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/vibescine/cinevibes/internal/domain"
	"github.com/vibescine/cinevibes/internal/repository/sqlite"
)

func TestWatchHistoryRepository_RecordAndList(t *testing.T) {
	db := newTestDB(t)
	users := sqlite.NewUserRepository(db)
	movies := sqlite.NewMovieRepository(db)
	history := sqlite.NewWatchHistoryRepository(db)
	ctx := context.Background()

	user := createTestUser(t, users, "watcher@example.com")
	first := seedMovie(t, movies, "tt0000300", "Watched First", 7.0, time.Now(), true)
	second := seedMovie(t, movies, "tt0000301", "Watched Second", 7.5, time.Now(), true)

	for _, m := range []*domain.Movie{first, second} {
		entry := &domain.WatchEntry{UserID: user.ID, MovieID: m.ID}
		if err := history.Record(ctx, entry); err != nil {
			t.Fatalf("Record %s: %v", m.IMDbID, err)
		}
		if entry.ID == 0 || entry.WatchedAt.IsZero() {
			t.Fatalf("expected entry id and timestamp to be set, got %+v", entry)
		}
	}

	watched, err := history.ListByUser(ctx, user.ID, 10)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(watched) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(watched))
	}
	if watched[0].Title == "" || watched[0].WatchedAt.IsZero() {
		t.Fatalf("expected joined catalog fields, got %+v", watched[0])
	}

	// Rewatching the same title appends a new entry.
	if err := history.Record(ctx, &domain.WatchEntry{UserID: user.ID, MovieID: first.ID}); err != nil {
		t.Fatalf("Record rewatch: %v", err)
	}

	limited, err := history.ListByUser(ctx, user.ID, 2)
	if err != nil {
		t.Fatalf("ListByUser limited: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("expected limit to cap entries at 2, got %d", len(limited))
	}
}
