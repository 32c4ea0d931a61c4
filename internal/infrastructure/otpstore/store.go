// Package otpstore holds outstanding password-reset challenges keyed by
// email. Entries expire: a challenge that is never consumed does not live
// past its TTL.
package otpstore

import (
	"context"
	"time"
)

// Store is the OTP challenge store. Put overwrites any prior challenge for
// the same email (last write wins); Delete is idempotent. Implementations
// must be safe for concurrent use.
type Store interface {
	Put(ctx context.Context, email, code string, ttl time.Duration) error
	// Get returns the outstanding code for email, or ok=false when there is
	// none (absent or expired).
	Get(ctx context.Context, email string) (code string, ok bool, err error)
	Delete(ctx context.Context, email string) error
}
