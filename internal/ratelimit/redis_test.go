package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStoreFromClient(client), mr
}

func TestRedisStoreGetMissingKey(t *testing.T) {
	store, _ := newTestRedisStore(t)

	count, err := store.Get(context.Background(), "rl:chat:1.2.3.4:100")
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Fatalf("missing key should read as 0, got %d", count)
	}
}

func TestRedisStoreIncrSetsTTLOnce(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()
	key := "rl:chat:1.2.3.4:100"

	count, err := store.Incr(ctx, key, 120*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("first increment should return 1, got %d", count)
	}
	if ttl := mr.TTL(key); ttl != 120*time.Second {
		t.Fatalf("expected 120s TTL, got %s", ttl)
	}

	mr.FastForward(30 * time.Second)
	if _, err := store.Incr(ctx, key, 120*time.Second); err != nil {
		t.Fatal(err)
	}
	if ttl := mr.TTL(key); ttl != 90*time.Second {
		t.Fatalf("second increment must not refresh the TTL, got %s", ttl)
	}
}

func TestRedisStoreExpiry(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()
	key := "rl:estimate:1.2.3.4:100"

	for i := 0; i < 3; i++ {
		if _, err := store.Incr(ctx, key, 120*time.Second); err != nil {
			t.Fatal(err)
		}
	}
	mr.FastForward(121 * time.Second)

	count, err := store.Get(ctx, key)
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Fatalf("expired window should read as 0, got %d", count)
	}
}

func TestLimiterWithRedisStore(t *testing.T) {
	store, _ := newTestRedisStore(t)
	l := newTestLimiter(store)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if !l.Allow(ctx, "estimate", "1.2.3.4", 3) {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if l.Allow(ctx, "estimate", "1.2.3.4", 3) {
		t.Fatal("request over the limit should be denied")
	}
}
