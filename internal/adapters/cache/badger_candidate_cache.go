package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"

	"github.com/dgraph-io/badger/v4"
)

const badgerKeyPrefix = "candidates/"

// BadgerCandidateCache stores candidate lists in an embedded Badger database.
// Entries expire through Badger's native TTL.
type BadgerCandidateCache struct {
	db *badger.DB
}

func NewBadgerCandidateCache(db *badger.DB) *BadgerCandidateCache {
	return &BadgerCandidateCache{db: db}
}

// OpenBadger opens (or creates) a Badger database in dir. An empty dir opens
// an in-memory database.
func OpenBadger(dir string) (*badger.DB, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger %q: %w", dir, err)
	}
	return db, nil
}

func (c *BadgerCandidateCache) Get(ctx context.Context, key string) (_ []domain.CandidateDestination, _ bool, err error) {
	defer obs.TimeStore(ctx, "candidates.cache.badger.Get")(&err)

	var payload []byte
	err = c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(badgerKeyPrefix + key))
		if err != nil {
			return err
		}
		payload, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("badger candidate cache get %q: %w", key, err)
	}

	out, err := decodeCandidates(payload)
	if err != nil {
		return nil, false, fmt.Errorf("badger candidate cache get %q: %w", key, err)
	}
	return out, true, nil
}

func (c *BadgerCandidateCache) Set(ctx context.Context, key string, candidates []domain.CandidateDestination, ttl time.Duration) (err error) {
	defer obs.TimeStore(ctx, "candidates.cache.badger.Set")(&err)

	b, err := encodeCandidates(candidates)
	if err != nil {
		return err
	}

	err = c.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(badgerKeyPrefix+key), b)
		if ttl > 0 {
			e = e.WithTTL(ttl)
		}
		return txn.SetEntry(e)
	})
	if err != nil {
		return fmt.Errorf("badger candidate cache set %q: %w", key, err)
	}
	return nil
}
