// Package cache holds short-lived shared state: revoked principals and
// per-key locks. Redis backs it in production; Memory serves single-process
// deployments and tests.
package cache

import (
	"context"
	"time"
)

type Store interface {
	// Revoke marks key as revoked for ttl.
	Revoke(ctx context.Context, key string, ttl time.Duration) error
	IsRevoked(ctx context.Context, key string) (bool, error)
	// TryLock acquires key for ttl. It returns a token for Unlock and false
	// when somebody else holds the lock.
	TryLock(ctx context.Context, key string, ttl time.Duration) (string, bool, error)
	// Unlock releases key only if token still owns it.
	Unlock(ctx context.Context, key, token string) error
	Close() error
}

func RevokedKey(scope, principalID string) string { return "revoked:" + scope + ":" + principalID }

func PaymentLockKey(userID string) string { return "lock:payment:" + userID }
