package auth

import "errors"

var (
	// ErrEmailTaken is returned when the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned for both unknown email and wrong
	// password, so callers cannot tell which one failed.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrTokenExpired is returned when the token's exp claim is in the past.
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenInvalid is returned for any malformed, tampered or claimless token.
	ErrTokenInvalid = errors.New("could not validate credentials")
	// ErrUserNotFound is returned when a valid token references a deleted account.
	ErrUserNotFound = errors.New("user not found")
)
