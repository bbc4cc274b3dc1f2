package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vibescine/cinevibes/internal/domain"
	"github.com/vibescine/cinevibes/internal/mailer"
)

// RequestService forwards movie requests to the site admin by mail.
type RequestService struct {
	data MovieData
	mail mailer.Mailer
}

// NewRequestService creates a RequestService.
func NewRequestService(data MovieData, mail mailer.Mailer) *RequestService {
	return &RequestService{data: data, mail: mail}
}

// Submit sends a movie request on behalf of a user. When the external
// API knows the title, the request carries its canonical title and
// year. Mail trouble is logged, not surfaced: the request was taken.
func (s *RequestService) Submit(ctx context.Context, user *domain.User, title, year, info string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("%w: movie title is required", domain.ErrInvalidInput)
	}

	req := &domain.MovieRequest{
		Nickname: user.Nickname,
		Email:    user.Email,
		Title:    title,
		Year:     strings.TrimSpace(year),
		Info:     strings.TrimSpace(info),
	}
	if s.data.Enabled() {
		if details, err := s.data.ByTitle(ctx, req.Title, req.Year); err == nil {
			req.Title = details.Title
			req.Year = details.Year
		}
	}

	if err := s.mail.SendMovieRequest(ctx, req); err != nil {
		slog.Warn("send movie request", "title", req.Title, "error", err)
	}
	return nil
}
