package domain

import (
	"context"
	"time"
)

// User represents a registered user of the application. Accounts start
// unverified and become usable once the emailed verification code is
// confirmed.
type User struct {
	ID               int64
	Nickname         string
	Email            string
	PasswordHash     string
	IsVerified       bool
	VerificationCode string
	ProfilePic       string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// SetVerified marks the user verified and clears the stored code.
	SetVerified(ctx context.Context, id int64) error
	// SetVerificationCode replaces the pending code, invalidating the old one.
	SetVerificationCode(ctx context.Context, id int64, code string) error
	UpdateProfile(ctx context.Context, id int64, nickname, email string) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	UpdateProfilePic(ctx context.Context, id int64, ref string) error
}
