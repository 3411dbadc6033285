package domain

import "errors"

// Sentinel errors shared by every layer. Storage and usecase code wrap these
// with fmt.Errorf("...: %w", ...) so callers can test with errors.Is while
// the HTTP layer maps them to status codes.
var (
	// ErrNotFound means a referenced entity does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput means the request data violates a domain rule
	// (self-booking, duplicate booking, empty partial update, bad price range).
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict means a uniqueness constraint was violated on create.
	ErrConflict = errors.New("resource already exists")

	// ErrUnauthorized means a credential check failed.
	ErrUnauthorized = errors.New("invalid credentials")

	// ErrForbidden means the actor is authenticated but not permitted.
	ErrForbidden = errors.New("not permitted")
)
