package cache

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()

	server, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})

	t.Cleanup(func() {
		_ = client.Close()
		server.Close()
	})
	return NewRedisFromClient(client, "hangman:"), server
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()
	now := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Fatal("unexpected hit on empty cache")
	}
	if err := c.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatal(err)
	}
	if v, ok, _ := c.Get(ctx, "k"); !ok || v != "v" {
		t.Fatalf("Get = %q, %v", v, ok)
	}

	now = now.Add(time.Minute)
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("entry should have expired")
	}

	_ = c.Set(ctx, "forever", "x", 0)
	now = now.Add(24 * time.Hour)
	if v, ok, _ := c.Get(ctx, "forever"); !ok || v != "x" {
		t.Error("zero ttl entry expired")
	}
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	c, server := newTestRedis(t)

	if _, ok, err := c.Get(ctx, "k"); err != nil || ok {
		t.Fatalf("Get on empty: ok=%v err=%v", ok, err)
	}
	if err := c.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got, _ := server.Get("hangman:k"); got != "v" {
		t.Errorf("stored value = %q, want v under prefixed key", got)
	}
	if v, ok, err := c.Get(ctx, "k"); err != nil || !ok || v != "v" {
		t.Fatalf("Get = %q, %v, %v", v, ok, err)
	}

	server.FastForward(2 * time.Minute)
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("entry should have expired")
	}
}
