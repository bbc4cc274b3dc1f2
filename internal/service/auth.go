package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"net/http"
	"net/mail"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/vibescine/cinevibes/internal/domain"
	"github.com/vibescine/cinevibes/internal/mailer"
)

const (
	tokenLifetime  = 24 * time.Hour
	minPasswordLen = 8

	codeLength   = 6
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// AuthService handles registration, email verification, login, token
// validation and profile management.
type AuthService struct {
	users      domain.UserRepository
	pictures   domain.PictureStore
	mail       mailer.Mailer
	jwtSecret  []byte
	bcryptCost int
}

// NewAuthService creates an AuthService backed by the given repositories.
func NewAuthService(users domain.UserRepository, pictures domain.PictureStore, mail mailer.Mailer, jwtSecret string, bcryptCost int) *AuthService {
	return &AuthService{
		users:      users,
		pictures:   pictures,
		mail:       mail,
		jwtSecret:  []byte(jwtSecret),
		bcryptCost: bcryptCost,
	}
}

// Register creates an unverified account and emails a verification code.
// A failed send does not undo the registration; the user can ask for a
// new code later.
func (s *AuthService) Register(ctx context.Context, nickname, email, password, confirmPassword string) (*domain.User, error) {
	nickname = strings.TrimSpace(nickname)
	email = normalizeEmail(email)

	if nickname == "" {
		return nil, fmt.Errorf("%w: nickname is required", domain.ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email address", domain.ErrInvalidInput)
	}
	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLen)
	}
	if password != confirmPassword {
		return nil, fmt.Errorf("%w: passwords do not match", domain.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	code, err := generateCode()
	if err != nil {
		return nil, fmt.Errorf("generate verification code: %w", err)
	}

	user := &domain.User{
		Nickname:         nickname,
		Email:            email,
		PasswordHash:     string(hash),
		VerificationCode: code,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.mail.SendVerificationCode(ctx, user.Email, user.Nickname, code); err != nil {
		slog.Warn("send verification code", "email", user.Email, "error", err)
	}
	return user, nil
}

// VerifyEmail checks the code sent at registration and marks the account
// verified. Verifying an already verified account is a no-op.
func (s *AuthService) VerifyEmail(ctx context.Context, email, code string) error {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}
	if user.IsVerified {
		return nil
	}

	code = strings.ToUpper(strings.TrimSpace(code))
	if user.VerificationCode == "" || subtle.ConstantTimeCompare([]byte(code), []byte(user.VerificationCode)) != 1 {
		return domain.ErrInvalidCode
	}
	return s.users.SetVerified(ctx, user.ID)
}

// ResendCode issues a fresh verification code for an unverified account.
// The new code is stored before the mail goes out, so a failed send can
// be retried without invalidating anything.
func (s *AuthService) ResendCode(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}
	if user.IsVerified {
		return fmt.Errorf("%w: account is already verified", domain.ErrInvalidInput)
	}

	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("generate verification code: %w", err)
	}
	if err := s.users.SetVerificationCode(ctx, user.ID, code); err != nil {
		return err
	}
	if err := s.mail.SendVerificationCode(ctx, user.Email, user.Nickname, code); err != nil {
		return fmt.Errorf("send verification code: %w", err)
	}
	return nil
}

// Login checks the credentials and returns a signed JWT. Unverified
// accounts cannot log in.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrUnauthorized
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", domain.ErrUnauthorized
	}
	if !user.IsVerified {
		return "", domain.ErrNotVerified
	}
	return s.generateJWT(user)
}

// ValidateToken parses a JWT and returns the user ID it carries.
func (s *AuthService) ValidateToken(tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return 0, domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, domain.ErrUnauthorized
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return 0, domain.ErrUnauthorized
	}
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, domain.ErrUnauthorized
	}
	return userID, nil
}

// GetUserByID retrieves a user by their ID.
func (s *AuthService) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// UpdateProfile changes nickname, email and optionally the password.
// Leaving the password fields empty keeps the current one.
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, nickname, email, newPassword, confirmPassword string) (*domain.User, error) {
	nickname = strings.TrimSpace(nickname)
	email = normalizeEmail(email)

	if nickname == "" {
		return nil, fmt.Errorf("%w: nickname is required", domain.ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email address", domain.ErrInvalidInput)
	}
	if newPassword != "" {
		if len(newPassword) < minPasswordLen {
			return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLen)
		}
		if newPassword != confirmPassword {
			return nil, fmt.Errorf("%w: passwords do not match", domain.ErrInvalidInput)
		}
	}

	if err := s.users.UpdateProfile(ctx, userID, nickname, email); err != nil {
		return nil, err
	}
	if newPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		if err := s.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
			return nil, err
		}
	}
	return s.users.GetByID(ctx, userID)
}

// UpdateProfilePicture validates and stores a new profile picture,
// replacing any previous one.
func (s *AuthService) UpdateProfilePicture(ctx context.Context, userID int64, filename, contentType string, data []byte) (*domain.User, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty file", domain.ErrInvalidInput)
	}
	if len(data) > domain.MaxPictureSize {
		return nil, fmt.Errorf("%w: picture exceeds %d bytes", domain.ErrInvalidInput, domain.MaxPictureSize)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png":
	default:
		return nil, fmt.Errorf("%w: only jpg, jpeg and png files are allowed", domain.ErrInvalidInput)
	}

	// Sniff the actual content rather than trusting the upload headers.
	switch detected := http.DetectContentType(data); detected {
	case "image/jpeg", "image/png":
	default:
		return nil, fmt.Errorf("%w: file content is not a supported image", domain.ErrInvalidInput)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("user_%d_%d_%s%s", userID, time.Now().Unix(), uuid.NewString()[:8], ext)
	ref, err := s.pictures.Save(ctx, name, contentType, data)
	if err != nil {
		return nil, fmt.Errorf("store picture: %w", err)
	}
	if err := s.users.UpdateProfilePic(ctx, userID, ref); err != nil {
		return nil, err
	}

	if old := user.ProfilePic; old != "" && old != ref {
		if err := s.pictures.Delete(ctx, old); err != nil {
			slog.Warn("delete replaced profile picture", "ref", old, "error", err)
		}
	}
	return s.users.GetByID(ctx, userID)
}

// RemoveProfilePicture deletes the stored picture and clears the
// reference on the account.
func (s *AuthService) RemoveProfilePicture(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.ProfilePic == "" {
		return user, nil
	}

	if err := s.users.UpdateProfilePic(ctx, userID, ""); err != nil {
		return nil, err
	}
	if err := s.pictures.Delete(ctx, user.ProfilePic); err != nil {
		slog.Warn("delete profile picture", "ref", user.ProfilePic, "error", err)
	}
	return s.users.GetByID(ctx, userID)
}

func (s *AuthService) generateJWT(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatInt(user.ID, 10),
		"email":    user.Email,
		"nickname": user.Nickname,
		"iat":      now.Unix(),
		"exp":      now.Add(tokenLifetime).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func generateCode() (string, error) {
	buf := make([]byte, codeLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			return "", err
		}
		buf[i] = codeAlphabet[n.Int64()]
	}
	return string(buf), nil
}
