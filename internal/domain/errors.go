package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrBadRequest   = errors.New("bad request")
	// ErrDependency marks failures originating from a collaborator (storage, email).
	// Handlers report it generically and never echo the underlying detail.
	ErrDependency = errors.New("dependency failure")
)
