package service

import "errors"

// Lookup and credential failures surfaced by the services. Handlers match
// these with errors.Is when translating to HTTP statuses.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrCharacterNotFound   = errors.New("character not found")
	ErrItemNotFound        = errors.New("item not found")
	ErrIncorrectPassword   = errors.New("incorrect password")
	ErrInvalidRefreshToken = errors.New("refresh token expired or invalid")
)
