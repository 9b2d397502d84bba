package services

import "errors"

var (
	// ErrInvalidCredentials is the only error a failed login reports, whether
	// the email is unknown or the password is wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthenticated covers missing, malformed, expired and revoked tokens.
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrProductNotFound = errors.New("product not found")
)
