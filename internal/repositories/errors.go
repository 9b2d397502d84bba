package repositories

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrDuplicateEmail      = errors.New("email already registered")
	ErrProductNotFound     = errors.New("product not found")
	ErrAccessTokenNotFound = errors.New("access token not found")
)
