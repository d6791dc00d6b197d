// Package otp implements the one-time-passcode registry: short-lived 6-digit
// numeric codes keyed by identity (email address), issued for signup and
// password reset and consumed exactly once on successful verification.
package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// TTL is the fixed validity window of an issued code.
const TTL = 5 * time.Minute

// Codes are uniform over 100000–999999 inclusive: always 6 characters,
// never a leading zero.
const (
	codeMin  = 100000
	codeSpan = 900000
)

// Registry issues and verifies passcodes against an injected Store.
type Registry struct {
	store Store
	ttl   time.Duration
	now   func() time.Time
}

func NewRegistry(store Store) *Registry {
	return &Registry{store: store, ttl: TTL, now: time.Now}
}

// Issue generates a fresh code for identity and stores it with the fixed TTL,
// replacing any pending code for the same identity. The code is returned so
// the caller can dispatch it out of band.
func (r *Registry) Issue(ctx context.Context, identity string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpan))
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	code := fmt.Sprintf("%d", n.Int64()+codeMin)
	e := Entry{
		Identity:  identity,
		Code:      code,
		ExpiresAt: r.now().Add(r.ttl),
	}
	if err := r.store.Put(ctx, e); err != nil {
		return "", fmt.Errorf("store code: %w", err)
	}
	return code, nil
}

// VerifyAndConsume reports whether code is the live passcode for identity and
// deletes it when it is. Missing, mismatched and expired codes all report
// false without distinguishing which, and leave the stored state unchanged.
func (r *Registry) VerifyAndConsume(ctx context.Context, identity, code string) (bool, error) {
	return r.store.CompareAndDelete(ctx, identity, code)
}
