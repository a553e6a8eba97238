package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore(time.Minute)
	now := time.Now()
	m.now = func() time.Time { return now }

	if _, err := m.Load(ctx, "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load(missing) err = %v, want ErrNotFound", err)
	}

	res := testResult("r")
	if err := m.Save(ctx, "x", res); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := m.Load(ctx, "x")
	if err != nil || got != res {
		t.Fatalf("Load = %v, %v", got, err)
	}

	now = now.Add(time.Minute)
	if _, err := m.Load(ctx, "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load(expired) err = %v, want ErrNotFound", err)
	}

	m.Save(ctx, "y", res)
	m.Delete(ctx, "y")
	if _, err := m.Load(ctx, "y"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load(deleted) err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStorePurge(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore(time.Minute)
	now := time.Now()
	m.now = func() time.Time { return now }

	for i := 0; i < 1000; i++ {
		m.Save(ctx, fmt.Sprintf("s%d", i), testResult("r"))
	}
	now = now.Add(30 * time.Second)
	m.Save(ctx, "fresh", testResult("r"))

	now = now.Add(45 * time.Second)
	if n := m.Purge(); n != 1000 {
		t.Errorf("Purge removed %d, want 1000", n)
	}
	if m.Len() != 1 {
		t.Errorf("Len = %d, want 1", m.Len())
	}
	if _, err := m.Load(ctx, "fresh"); err != nil {
		t.Errorf("fresh entry purged: %v", err)
	}
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx := context.Background()
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		t.Skipf("redis unavailable: %v", err)
	}

	s := NewRedisStore(rdb, time.Minute)
	id := NewID()
	defer s.Delete(ctx, id)

	if _, err := s.Load(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load(missing) err = %v, want ErrNotFound", err)
	}
	res := testResult("r")
	if err := s.Save(ctx, id, res); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load(ctx, id)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.ID != res.ID || got.Media != res.Media {
		t.Errorf("Load = %+v, want %+v", got, res)
	}
	ttl, err := rdb.TTL(ctx, redisKeyPrefix+id).Result()
	if err != nil || ttl <= 0 || ttl > time.Minute {
		t.Errorf("TTL = %v, %v", ttl, err)
	}
}
