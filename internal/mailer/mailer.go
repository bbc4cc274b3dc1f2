// Package mailer delivers account and catalog notification email.
package mailer

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"

	"github.com/vibescine/cinevibes/internal/domain"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// Mailer sends the application's outbound email. Implementations must not
// block registration or request flows indefinitely; callers treat send
// failures as warnings where the original action already succeeded.
type Mailer interface {
	SendVerificationCode(ctx context.Context, to, nickname, code string) error
	SendMovieRequest(ctx context.Context, req *domain.MovieRequest) error
}

type verificationData struct {
	Nickname string
	Code     string
}

type requestData struct {
	Req *domain.MovieRequest
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

// LogMailer is the fallback used when SMTP is not configured. It writes
// the mail to the log instead of sending, including the verification code
// so local signups stay completable.
type LogMailer struct{}

func (LogMailer) SendVerificationCode(ctx context.Context, to, nickname, code string) error {
	slog.Info("mail disabled, skipping verification email", "to", to, "code", code)
	return nil
}

func (LogMailer) SendMovieRequest(ctx context.Context, req *domain.MovieRequest) error {
	slog.Info("mail disabled, skipping movie request email",
		"title", req.Title, "requester", req.Email)
	return nil
}
