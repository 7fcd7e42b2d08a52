package cache

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestMemory_Revoke(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	now := time.Now()
	m.now = func() time.Time { return now }

	key := RevokedKey("user", "u-1")
	if revoked, _ := m.IsRevoked(ctx, key); revoked {
		t.Fatal("fresh key should not be revoked")
	}
	if err := m.Revoke(ctx, key, time.Minute); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	if revoked, _ := m.IsRevoked(ctx, key); !revoked {
		t.Fatal("key should be revoked")
	}

	now = now.Add(2 * time.Minute)
	if revoked, _ := m.IsRevoked(ctx, key); revoked {
		t.Fatal("revocation should expire with its ttl")
	}
}

func TestMemory_Lock(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	key := PaymentLockKey("u-1")

	tok, ok, err := m.TryLock(ctx, key, time.Minute)
	if err != nil || !ok {
		t.Fatalf("first TryLock = %v, %v", ok, err)
	}
	if _, ok, _ := m.TryLock(ctx, key, time.Minute); ok {
		t.Fatal("second TryLock should fail while held")
	}

	// a stale token must not release somebody else's lock
	_ = m.Unlock(ctx, key, "stale")
	if _, ok, _ := m.TryLock(ctx, key, time.Minute); ok {
		t.Fatal("lock released by wrong token")
	}

	_ = m.Unlock(ctx, key, tok)
	if _, ok, _ := m.TryLock(ctx, key, time.Minute); !ok {
		t.Fatal("lock should be free after Unlock")
	}
}

func TestMemory_LockConcurrent(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	var wg sync.WaitGroup
	var mu sync.Mutex
	winners := 0
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok, _ := m.TryLock(ctx, "k", time.Minute); ok {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if winners != 1 {
		t.Fatalf("winners = %d, want 1", winners)
	}
}

func TestMemory_WritesSweepExpired(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	now := time.Now()
	m.now = func() time.Time { return now }

	for _, id := range []string{"u-1", "u-2", "u-3"} {
		_ = m.Revoke(ctx, RevokedKey("user", id), time.Minute)
	}
	if len(m.items) != 3 {
		t.Fatalf("items = %d, want 3", len(m.items))
	}

	now = now.Add(2 * time.Minute)
	_ = m.Revoke(ctx, RevokedKey("moderator", "m-1"), time.Minute)
	if len(m.items) != 1 {
		t.Fatalf("items after sweep = %d, want 1", len(m.items))
	}
	if revoked, _ := m.IsRevoked(ctx, RevokedKey("moderator", "m-1")); !revoked {
		t.Error("fresh key lost in sweep")
	}
}
