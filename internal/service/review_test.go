package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/vibescine/cinevibes/internal/domain"
	"github.com/vibescine/cinevibes/internal/moviedata"
	"github.com/vibescine/cinevibes/internal/repository/sqlite"
	"github.com/vibescine/cinevibes/internal/service"
)

func newTestReviewService(t *testing.T) (*service.ReviewService, *sqlite.DB, *fakeMovieData) {
	t.Helper()
	db := newTestDB(t)
	data := &fakeMovieData{details: map[string]*moviedata.Details{
		"tt7777": {Title: "Reviewable", Year: "2021", IMDbID: "tt7777"},
	}}
	reviews := service.NewReviewService(db.Reviews(), db.Movies(), data)
	return reviews, db, data
}

// createUser inserts an account directly, bypassing registration.
func createUser(t *testing.T, db *sqlite.DB, email string) *domain.User {
	t.Helper()
	user := &domain.User{Nickname: "Reviewer", Email: email, PasswordHash: "x", IsVerified: true}
	if err := db.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func TestReviewService_Add_ImportsMovie(t *testing.T) {
	reviews, db, _ := newTestReviewService(t)
	ctx := context.Background()
	user := createUser(t, db, "add@example.com")

	review, err := reviews.Add(ctx, user.ID, "tt7777", 8, "Tightly plotted.")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if review.ID == 0 {
		t.Fatal("expected review ID to be set")
	}

	// The title was pulled into the catalog as part of the add.
	movie, err := db.Movies().GetByIMDbID(ctx, "tt7777")
	if err != nil {
		t.Fatalf("imported movie missing: %v", err)
	}
	if movie.Available {
		t.Fatal("imported titles start unavailable")
	}
}

func TestReviewService_Add_InvalidInput(t *testing.T) {
	reviews, db, _ := newTestReviewService(t)
	ctx := context.Background()
	user := createUser(t, db, "invalid@example.com")

	tests := []struct {
		name   string
		rating int
		text   string
	}{
		{"rating too low", 0, "fine"},
		{"rating too high", 11, "fine"},
		{"empty text", 5, "   "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := reviews.Add(ctx, user.ID, "tt7777", tc.rating, tc.text)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestReviewService_Add_UnknownMovie(t *testing.T) {
	reviews, db, _ := newTestReviewService(t)
	user := createUser(t, db, "unknown@example.com")

	_, err := reviews.Add(context.Background(), user.ID, "tt0000", 7, "Phantom film.")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReviewService_ListByMovie(t *testing.T) {
	reviews, db, _ := newTestReviewService(t)
	ctx := context.Background()
	user := createUser(t, db, "list@example.com")

	if _, err := reviews.Add(ctx, user.ID, "tt7777", 8, "First take."); err != nil {
		t.Fatalf("Add: %v", err)
	}

	listed, err := reviews.ListByMovie(ctx, "tt7777")
	if err != nil {
		t.Fatalf("ListByMovie: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected 1 review, got %d", len(listed))
	}
	if listed[0].Nickname != "Reviewer" {
		t.Fatalf("expected author details attached, got %+v", listed[0])
	}
}

func TestReviewService_Update_ByOwner(t *testing.T) {
	reviews, db, _ := newTestReviewService(t)
	ctx := context.Background()
	user := createUser(t, db, "owner@example.com")

	review, err := reviews.Add(ctx, user.ID, "tt7777", 6, "Decent.")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	updated, err := reviews.Update(ctx, user.ID, review.ID, 9, "On rewatch it lands.")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Rating != 9 || updated.Text != "On rewatch it lands." {
		t.Fatalf("unexpected review after update: %+v", updated)
	}
}

func TestReviewService_Update_ForeignReview(t *testing.T) {
	reviews, db, _ := newTestReviewService(t)
	ctx := context.Background()
	author := createUser(t, db, "author@example.com")
	other := createUser(t, db, "other@example.com")

	review, err := reviews.Add(ctx, author.ID, "tt7777", 6, "Mine.")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	_, err = reviews.Update(ctx, other.ID, review.ID, 1, "Hijacked.")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestReviewService_Update_Missing(t *testing.T) {
	reviews, db, _ := newTestReviewService(t)
	user := createUser(t, db, "missing@example.com")

	_, err := reviews.Update(context.Background(), user.ID, 12345, 5, "Ghost.")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReviewService_Delete_ByOwner(t *testing.T) {
	reviews, db, _ := newTestReviewService(t)
	ctx := context.Background()
	user := createUser(t, db, "deleter@example.com")

	review, err := reviews.Add(ctx, user.ID, "tt7777", 6, "Short lived.")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := reviews.Delete(ctx, user.ID, review.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	listed, err := reviews.ListByMovie(ctx, "tt7777")
	if err != nil {
		t.Fatalf("ListByMovie: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("expected no reviews left, got %d", len(listed))
	}
}

func TestReviewService_Delete_ForeignReview(t *testing.T) {
	reviews, db, _ := newTestReviewService(t)
	ctx := context.Background()
	author := createUser(t, db, "author2@example.com")
	other := createUser(t, db, "other2@example.com")

	review, err := reviews.Add(ctx, author.ID, "tt7777", 6, "Keep out.")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	err = reviews.Delete(ctx, other.ID, review.ID)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
