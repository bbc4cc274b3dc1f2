package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vibescine/cinevibes/internal/domain"
	"github.com/vibescine/cinevibes/internal/repository/sqlite"
	"github.com/vibescine/cinevibes/internal/service"
)

func newTestHistoryService(t *testing.T) (*service.HistoryService, *sqlite.DB) {
	t.Helper()
	db := newTestDB(t)
	history := service.NewHistoryService(db.History(), db.Movies())
	return history, db
}

func TestHistoryService_Player_RecordsWatch(t *testing.T) {
	history, db := newTestHistoryService(t)
	ctx := context.Background()
	user := createUser(t, db, "watcher@example.com")
	movie := seedAvailable(t, db, "tt6001", "Watchable", time.Now())

	link, err := history.Player(ctx, user.ID, "tt6001")
	if err != nil {
		t.Fatalf("Player: %v", err)
	}
	if link != movie.VideoLink {
		t.Fatalf("expected %q, got %q", movie.VideoLink, link)
	}

	watched, err := history.List(ctx, user.ID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(watched) != 1 || watched[0].Title != "Watchable" {
		t.Fatalf("expected the watch to be recorded, got %+v", watched)
	}
}

func TestHistoryService_Player_UnavailableTitle(t *testing.T) {
	history, db := newTestHistoryService(t)
	ctx := context.Background()
	user := createUser(t, db, "blocked@example.com")

	movie := &domain.Movie{IMDbID: "tt6002", Title: "Catalog Only", Year: "2017"}
	if err := db.Movies().Upsert(ctx, movie); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	_, err := history.Player(ctx, user.ID, "tt6002")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for an unavailable title, got %v", err)
	}
}

func TestHistoryService_Player_UnknownTitle(t *testing.T) {
	history, db := newTestHistoryService(t)
	user := createUser(t, db, "lost@example.com")

	_, err := history.Player(context.Background(), user.ID, "tt0000")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestHistoryService_List_Empty(t *testing.T) {
	history, db := newTestHistoryService(t)
	user := createUser(t, db, "fresh@example.com")

	watched, err := history.List(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(watched) != 0 {
		t.Fatalf("expected empty history, got %d entries", len(watched))
	}
}
