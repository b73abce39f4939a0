package storage

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

var seenBucket = []byte("seen_items")

// seenRecord is the value stored per item id: an 8-byte big-endian unix
// expiry followed by the id of the job that published the item.
type seenRecord struct {
	expires time.Time
	jobID   string
}

func (r seenRecord) encode() []byte {
	buf := make([]byte, 8+len(r.jobID))
	binary.BigEndian.PutUint64(buf, uint64(r.expires.Unix()))
	copy(buf[8:], r.jobID)
	return buf
}

func decodeSeenRecord(v []byte) (seenRecord, bool) {
	if len(v) < 8 {
		return seenRecord{}, false
	}
	unix := int64(binary.BigEndian.Uint64(v[:8]))
	if unix <= 0 {
		return seenRecord{}, false
	}
	return seenRecord{expires: time.Unix(unix, 0), jobID: string(v[8:])}, true
}

func (r seenRecord) liveAt(now time.Time) bool { return r.expires.After(now) }

// boltStore persists seen records in one bucket. Reads never write; expired
// and malformed records are swept by Mark at most once per sweepEvery.
type boltStore struct {
	db         *bolt.DB
	ttl        time.Duration
	sweepEvery time.Duration
	now        func() time.Time

	mu        sync.Mutex
	nextSweep time.Time
}

func openBolt(path string, opts Options) (*boltStore, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(seenBucket)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init seen bucket: %w", err)
	}

	b := &boltStore{
		db:         db,
		ttl:        opts.ItemTTL,
		sweepEvery: opts.CleanupInterval,
		now:        time.Now,
	}
	b.nextSweep = b.now().Add(b.sweepEvery)
	return b, nil
}

func (b *boltStore) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

func (b *boltStore) Seen(id string) (bool, error) {
	var live bool
	err := b.db.View(func(tx *bolt.Tx) error {
		rec, ok := decodeSeenRecord(tx.Bucket(seenBucket).Get([]byte(id)))
		live = ok && rec.liveAt(b.now())
		return nil
	})
	return live, err
}

func (b *boltStore) Mark(id, jobID string) error {
	now := b.now()
	return b.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(seenBucket)
		if err := b.sweepIfDue(bkt, now); err != nil {
			return fmt.Errorf("sweep expired items: %w", err)
		}
		rec := seenRecord{expires: now.Add(b.ttl), jobID: jobID}
		return bkt.Put([]byte(id), rec.encode())
	})
}

func (b *boltStore) Counts() (map[string]int, error) {
	out := make(map[string]int)
	now := b.now()
	err := b.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(seenBucket).ForEach(func(_, v []byte) error {
			if rec, ok := decodeSeenRecord(v); ok && rec.liveAt(now) {
				out[rec.jobID]++
			}
			return nil
		})
	})
	return out, err
}

// sweepIfDue deletes dead records inside the caller's write transaction.
func (b *boltStore) sweepIfDue(bkt *bolt.Bucket, now time.Time) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if now.Before(b.nextSweep) {
		return nil
	}

	var dead [][]byte
	if err := bkt.ForEach(func(k, v []byte) error {
		if rec, ok := decodeSeenRecord(v); !ok || !rec.liveAt(now) {
			dead = append(dead, append([]byte(nil), k...))
		}
		return nil
	}); err != nil {
		return err
	}
	for _, k := range dead {
		if err := bkt.Delete(k); err != nil {
			return err
		}
	}
	b.nextSweep = now.Add(b.sweepEvery)
	return nil
}
