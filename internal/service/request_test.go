package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/vibescine/cinevibes/internal/domain"
	"github.com/vibescine/cinevibes/internal/moviedata"
	"github.com/vibescine/cinevibes/internal/service"
)

func newTestRequestService(t *testing.T) (*service.RequestService, *fakeMovieData, *fakeMailer) {
	t.Helper()
	data := &fakeMovieData{byTitle: map[string]*moviedata.Details{
		"the heist": {Title: "The Heist", Year: "2015", IMDbID: "tt5555"},
	}}
	mail := &fakeMailer{}
	requests := service.NewRequestService(data, mail)
	return requests, data, mail
}

func TestRequestService_Submit(t *testing.T) {
	requests, _, mail := newTestRequestService(t)
	user := &domain.User{ID: 1, Nickname: "Asker", Email: "asker@example.com"}

	err := requests.Submit(context.Background(), user, "the heist", "2015", "Saw it mentioned somewhere.")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if len(mail.requests) != 1 {
		t.Fatalf("expected 1 sent request, got %d", len(mail.requests))
	}
	sent := mail.requests[0]
	if sent.Title != "The Heist" || sent.Year != "2015" {
		t.Fatalf("expected canonical title from the lookup, got %+v", sent)
	}
	if sent.Nickname != "Asker" || sent.Email != "asker@example.com" {
		t.Fatalf("expected requester identity attached, got %+v", sent)
	}
}

func TestRequestService_Submit_LookupMiss(t *testing.T) {
	requests, _, mail := newTestRequestService(t)
	user := &domain.User{ID: 1, Nickname: "Asker", Email: "asker@example.com"}

	err := requests.Submit(context.Background(), user, "Totally Obscure", "", "")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if len(mail.requests) != 1 || mail.requests[0].Title != "Totally Obscure" {
		t.Fatalf("expected the entered title to survive a lookup miss, got %+v", mail.requests)
	}
}

func TestRequestService_Submit_TitleRequired(t *testing.T) {
	requests, _, _ := newTestRequestService(t)
	user := &domain.User{ID: 1, Nickname: "Asker", Email: "asker@example.com"}

	err := requests.Submit(context.Background(), user, "   ", "", "")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRequestService_Submit_MailFailureSwallowed(t *testing.T) {
	requests, _, mail := newTestRequestService(t)
	mail.fail = true
	user := &domain.User{ID: 1, Nickname: "Asker", Email: "asker@example.com"}

	if err := requests.Submit(context.Background(), user, "Anything", "", ""); err != nil {
		t.Fatalf("expected mail trouble to be swallowed, got %v", err)
	}
}
