package cache

import (
	"context"
	"errors"
	"testing"
	"time"
	"trip-planner-service/internal/adapters/places"
	"trip-planner-service/internal/adapters/repositories"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/db"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var testCandidates = []domain.CandidateDestination{
	{ID: "Q1", Name: "Periyar Tiger Reserve", Tags: "natural,park", Coordinates: &domain.Coordinates{Lat: 9.3723, Lon: 76.8148}, DistanceMeters: 25000},
	{ID: "Q2", Name: "No Coordinates", Tags: "other", DistanceMeters: 10},
}

func newRedisCache(t *testing.T) (*RedisCandidateCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisCandidateCache(client), mr
}

func TestRedisCandidateCacheRoundTrip(t *testing.T) {
	c, mr := newRedisCache(t)
	ctx := context.Background()

	if _, ok, err := c.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}

	if err := c.Set(ctx, "k", testCandidates, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, ok, err := c.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if len(got) != 2 || got[0].Coordinates == nil || got[0].Coordinates.Lat != 9.3723 {
		t.Fatalf("unexpected candidates %+v", got)
	}
	if got[1].Coordinates != nil {
		t.Fatalf("expected nil coordinates, got %+v", got[1].Coordinates)
	}

	mr.FastForward(2 * time.Minute)
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Fatal("expected entry to expire")
	}
}

func TestCachedSourceServesSecondRequestFromCache(t *testing.T) {
	c, _ := newRedisCache(t)
	src := places.NewMockCandidateSource(testCandidates)
	cached := NewCachedCandidateSource(src, c, time.Minute)

	center := domain.Coordinates{Lat: 10.5276, Lon: 76.2144}
	for i := 0; i < 3; i++ {
		got, err := cached.FetchCandidates(context.Background(), center, 100000, 100)
		if err != nil {
			t.Fatalf("fetch: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 candidates, got %d", len(got))
		}
	}

	if src.Calls() != 1 {
		t.Fatalf("source calls = %d, want 1", src.Calls())
	}
}

func TestCachedSourceBypassesBrokenCache(t *testing.T) {
	c, mr := newRedisCache(t)
	mr.Close()

	src := places.NewMockCandidateSource(testCandidates)
	cached := NewCachedCandidateSource(src, c, time.Minute)

	got, err := cached.FetchCandidates(context.Background(), domain.Coordinates{}, 20000, 10)
	if err != nil {
		t.Fatalf("expected cache failure to be bypassed, got %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
}

func TestCachedSourceDoesNotCacheErrors(t *testing.T) {
	c, mr := newRedisCache(t)
	src := places.NewFailingCandidateSource(errors.New("upstream down"))
	cached := NewCachedCandidateSource(src, c, time.Minute)

	if _, err := cached.FetchCandidates(context.Background(), domain.Coordinates{}, 20000, 10); err == nil {
		t.Fatal("expected error")
	}
	if keys := mr.Keys(); len(keys) != 0 {
		t.Fatalf("expected empty cache, got keys %v", keys)
	}
}

func TestCandidateKeyRoundsCenter(t *testing.T) {
	a := CandidateKey(domain.Coordinates{Lat: 10.52761, Lon: 76.21439}, 20000, 100)
	b := CandidateKey(domain.Coordinates{Lat: 10.52758, Lon: 76.21441}, 20000, 100)
	if a != b {
		t.Fatalf("keys differ: %q != %q", a, b)
	}
	if c := CandidateKey(domain.Coordinates{Lat: 10.52761, Lon: 76.21439}, 100000, 100); c == a {
		t.Fatal("radius must be part of the key")
	}
}

func TestSQLCandidateCache(t *testing.T) {
	ctx := context.Background()
	conn, err := db.Open(ctx, db.SQLite, ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer conn.Close()
	if err := repositories.InitSchema(ctx, conn, db.SQLite); err != nil {
		t.Fatalf("init schema: %v", err)
	}

	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	c := NewSQLCandidateCache(conn, db.SQLite)
	c.now = func() time.Time { return now }

	if err := c.Set(ctx, "k", testCandidates, 10*time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok, err := c.Get(ctx, "k")
	if err != nil || !ok || len(got) != 2 {
		t.Fatalf("expected hit with 2 candidates, got %d ok=%v err=%v", len(got), ok, err)
	}

	// Overwrite keeps one row.
	if err := c.Set(ctx, "k", testCandidates[:1], 10*time.Minute); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, _, _ = c.Get(ctx, "k")
	if len(got) != 1 {
		t.Fatalf("expected 1 candidate after overwrite, got %d", len(got))
	}

	now = now.Add(11 * time.Minute)
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Fatal("expected expired entry to miss")
	}

	n, err := c.PurgeExpired(ctx)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if n != 1 {
		t.Fatalf("purged %d rows, want 1", n)
	}
}

func TestBadgerCandidateCache(t *testing.T) {
	bdb, err := OpenBadger("")
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	t.Cleanup(func() { bdb.Close() })

	c := NewBadgerCandidateCache(bdb)
	ctx := context.Background()

	if _, ok, err := c.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}

	if err := c.Set(ctx, "k", testCandidates, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok, err := c.Get(ctx, "k")
	if err != nil || !ok || len(got) != 2 {
		t.Fatalf("expected hit with 2 candidates, got %d ok=%v err=%v", len(got), ok, err)
	}
	if got[0].Name != "Periyar Tiger Reserve" || got[1].Coordinates != nil {
		t.Fatalf("unexpected candidates %+v", got)
	}
}

func TestCachedSourceWithBadger(t *testing.T) {
	bdb, err := OpenBadger("")
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	t.Cleanup(func() { bdb.Close() })

	src := places.NewMockCandidateSource(testCandidates)
	cached := NewCachedCandidateSource(src, NewBadgerCandidateCache(bdb), time.Minute)

	for i := 0; i < 2; i++ {
		if _, err := cached.FetchCandidates(context.Background(), domain.Coordinates{Lat: 1, Lon: 2}, 20000, 10); err != nil {
			t.Fatalf("fetch: %v", err)
		}
	}
	if src.Calls() != 1 {
		t.Fatalf("source calls = %d, want 1", src.Calls())
	}
}
