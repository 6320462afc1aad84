package services

import "errors"

var (
	// ErrBookExists is returned when creating a book whose ISBN is taken.
	ErrBookExists = errors.New("book already exists")
	// ErrUserExists is returned when signing up with a taken username.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials is returned when a password does not match.
	ErrInvalidCredentials = errors.New("invalid username or password")
)
