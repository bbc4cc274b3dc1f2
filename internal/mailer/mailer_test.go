package mailer

import (
	"context"
	"strings"
	"testing"

	"github.com/vibescine/cinevibes/internal/domain"
)

func TestRenderVerification(t *testing.T) {
	body, err := render("verification.html", verificationData{Nickname: "Ada", Code: "XK29QZ"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(body, "XK29QZ") {
		t.Fatal("expected body to contain the verification code")
	}
	if !strings.Contains(body, "Ada") {
		t.Fatal("expected body to greet the user")
	}
}

func TestRenderMovieRequest(t *testing.T) {
	req := &domain.MovieRequest{
		Nickname: "Ada",
		Email:    "ada@example.com",
		Title:    "Stalker",
		Year:     "1979",
		Info:     "The Tarkovsky one, not the remake.",
	}

	adminBody, err := render("request_admin.html", requestData{Req: req})
	if err != nil {
		t.Fatalf("render admin: %v", err)
	}
	for _, want := range []string{"Stalker", "1979", "ada@example.com", "Tarkovsky"} {
		if !strings.Contains(adminBody, want) {
			t.Fatalf("expected admin body to contain %q", want)
		}
	}

	confirmBody, err := render("request_confirm.html", requestData{Req: req})
	if err != nil {
		t.Fatalf("render confirm: %v", err)
	}
	if !strings.Contains(confirmBody, "Stalker") {
		t.Fatal("expected confirmation to name the title")
	}
}

func TestRenderEscapesHTML(t *testing.T) {
	req := &domain.MovieRequest{
		Nickname: "Ada",
		Email:    "ada@example.com",
		Title:    `<script>alert("x")</script>`,
	}

	body, err := render("request_admin.html", requestData{Req: req})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(body, "<script>") {
		t.Fatal("expected template to escape markup in user input")
	}
}

func TestLogMailer(t *testing.T) {
	var m Mailer = LogMailer{}
	ctx := context.Background()

	if err := m.SendVerificationCode(ctx, "to@example.com", "Ada", "ABC123"); err != nil {
		t.Fatalf("SendVerificationCode: %v", err)
	}
	if err := m.SendMovieRequest(ctx, &domain.MovieRequest{Title: "Stalker", Email: "a@b.c"}); err != nil {
		t.Fatalf("SendMovieRequest: %v", err)
	}
}
