package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vibescine/cinevibes/internal/domain"
)

// UserRepository implements domain.UserRepository using SQLite.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new SQLite-backed UserRepository.
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db.SqlDB}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO users (nickname, email, password_hash, is_verified, verification_code, profile_pic, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		user.Nickname, user.Email, user.PasswordHash, user.IsVerified, user.VerificationCode, user.ProfilePic, now, now,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	user.ID = id
	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user := &domain.User{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, nickname, email, password_hash, is_verified, verification_code, profile_pic, created_at, updated_at
		 FROM users WHERE id = ?`, id,
	).Scan(&user.ID, &user.Nickname, &user.Email, &user.PasswordHash, &user.IsVerified,
		&user.VerificationCode, &user.ProfilePic, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query user by id: %w", err)
	}
	return user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user := &domain.User{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, nickname, email, password_hash, is_verified, verification_code, profile_pic, created_at, updated_at
		 FROM users WHERE email = ?`, email,
	).Scan(&user.ID, &user.Nickname, &user.Email, &user.PasswordHash, &user.IsVerified,
		&user.VerificationCode, &user.ProfilePic, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query user by email: %w", err)
	}
	return user, nil
}

func (r *UserRepository) SetVerified(ctx context.Context, id int64) error {
	return r.update(ctx,
		`UPDATE users SET is_verified = 1, verification_code = '', updated_at = ? WHERE id = ?`,
		"verify user", time.Now().UTC(), id)
}

func (r *UserRepository) SetVerificationCode(ctx context.Context, id int64, code string) error {
	return r.update(ctx,
		`UPDATE users SET verification_code = ?, updated_at = ? WHERE id = ?`,
		"set verification code", code, time.Now().UTC(), id)
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, nickname, email string) error {
	err := r.update(ctx,
		`UPDATE users SET nickname = ?, email = ?, updated_at = ? WHERE id = ?`,
		"update profile", nickname, email, time.Now().UTC(), id)
	if isUniqueConstraintError(err) {
		return domain.ErrDuplicateEmail
	}
	return err
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	return r.update(ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		"update password", passwordHash, time.Now().UTC(), id)
}

func (r *UserRepository) UpdateProfilePic(ctx context.Context, id int64, ref string) error {
	return r.update(ctx,
		`UPDATE users SET profile_pic = ?, updated_at = ? WHERE id = ?`,
		"update profile pic", ref, time.Now().UTC(), id)
}

// update runs a single-row UPDATE and maps a zero rowcount to ErrNotFound.
func (r *UserRepository) update(ctx context.Context, query, op string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// isUniqueConstraintError checks if the error is a SQLite unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "unique constraint")
}
