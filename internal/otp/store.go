package otp

import (
	"context"
	"time"
)

// Entry is one pending verification challenge. At most one live entry exists
// per identity; a new Put for the same identity replaces the old entry.
type Entry struct {
	Identity  string
	Code      string
	ExpiresAt time.Time
}

// Store holds pending entries keyed by identity. Implementations must make
// CompareAndDelete atomic: concurrent callers submitting the same code must
// not both succeed.
type Store interface {
	// Put stores the entry, replacing any prior entry for the same identity.
	Put(ctx context.Context, e Entry) error
	// CompareAndDelete deletes the entry for identity and returns true only if
	// an entry exists, its code equals the submitted code exactly, and it has
	// not expired. On any failure the stored state is left unchanged.
	CompareAndDelete(ctx context.Context, identity, code string) (bool, error)
}
