package mailer

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/vibescine/cinevibes/internal/domain"
)

// SMTPMailer sends mail through an SMTP relay with STARTTLS.
type SMTPMailer struct {
	client *mail.Client
	sender string
	admin  string
}

// NewSMTPMailer builds the SMTP client. admin receives movie-request
// notifications; when empty they go to the sender address.
func NewSMTPMailer(host string, port int, username, password, sender, admin string) (*SMTPMailer, error) {
	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(username),
		mail.WithPassword(password),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	if admin == "" {
		admin = sender
	}
	return &SMTPMailer{client: client, sender: sender, admin: admin}, nil
}

func (m *SMTPMailer) SendVerificationCode(ctx context.Context, to, nickname, code string) error {
	body, err := render("verification.html", verificationData{Nickname: nickname, Code: code})
	if err != nil {
		return err
	}
	text := fmt.Sprintf("Hi %s,\n\nEnter this code to verify your CineVibes account: %s\n\nIf you did not create a CineVibes account, you can ignore this email.\n", nickname, code)
	return m.send(ctx, to, "Verify your CineVibes account", text, body)
}

func (m *SMTPMailer) SendMovieRequest(ctx context.Context, req *domain.MovieRequest) error {
	adminBody, err := render("request_admin.html", requestData{Req: req})
	if err != nil {
		return err
	}
	adminText := fmt.Sprintf("New movie request\n\nTitle: %s\nYear: %s\nRequested by: %s (%s)\nNotes: %s\n",
		req.Title, req.Year, req.Nickname, req.Email, req.Info)
	if err := m.send(ctx, m.admin, "New movie request: "+req.Title, adminText, adminBody); err != nil {
		return err
	}

	confirmBody, err := render("request_confirm.html", requestData{Req: req})
	if err != nil {
		return err
	}
	confirmText := fmt.Sprintf("Hi %s,\n\nWe got your request for %s. We will let you know when it lands in the catalog.\n",
		req.Nickname, req.Title)
	return m.send(ctx, req.Email, "We received your movie request", confirmText, confirmBody)
}

func (m *SMTPMailer) send(ctx context.Context, to, subject, textBody, htmlBody string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.sender); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, textBody)
	msg.AddAlternativeString(mail.TypeTextHTML, htmlBody)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}
