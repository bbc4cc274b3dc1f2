package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrDuplicateFavorite = errors.New("movie already in favorites")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotVerified       = errors.New("email not verified")
	ErrInvalidCode       = errors.New("invalid verification code")
	ErrUnavailable       = errors.New("service unavailable")
)
