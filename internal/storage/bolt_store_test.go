package storage

import (
	"path/filepath"
	"testing"
	"time"

	bolt "go.etcd.io/bbolt"
)

// fakeClock is a settable time source for boltStore.now.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func openTestBolt(t *testing.T, opts Options) (*boltStore, *fakeClock) {
	t.Helper()
	store, err := openBolt(filepath.Join(t.TempDir(), "seen.db"), normalizeOptions(opts))
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	store.now = clock.now
	store.nextSweep = clock.t.Add(store.sweepEvery)
	return store, clock
}

func rawKeys(t *testing.T, store *boltStore) int {
	t.Helper()
	n := 0
	if err := store.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(seenBucket).Stats().KeyN
		return nil
	}); err != nil {
		t.Fatalf("view: %v", err)
	}
	return n
}

func TestBoltStoreMarksAndExpiresItems(t *testing.T) {
	store, clock := openTestBolt(t, Options{ItemTTL: time.Hour, CleanupInterval: 2 * time.Hour})

	seen, err := store.Seen("id1")
	if err != nil || seen {
		t.Fatalf("expected unseen item, seen=%v err=%v", seen, err)
	}
	if err := store.Mark("id1", "blog-posts"); err != nil {
		t.Fatalf("Mark: %v", err)
	}
	if seen, err := store.Seen("id1"); err != nil || !seen {
		t.Fatalf("expected item marked as seen, got seen=%v err=%v", seen, err)
	}

	clock.t = clock.t.Add(90 * time.Minute)
	if seen, _ := store.Seen("id1"); seen {
		t.Fatalf("expected id1 to read as expired")
	}
	if rawKeys(t, store) != 1 {
		t.Fatalf("Seen must not delete records")
	}

	clock.t = clock.t.Add(time.Hour)
	if err := store.Mark("id2", "blog-posts"); err != nil {
		t.Fatalf("Mark: %v", err)
	}
	if n := rawKeys(t, store); n != 1 {
		t.Fatalf("expected sweep to drop id1, %d keys left", n)
	}
}

func TestBoltStoreCountsLiveItemsPerJob(t *testing.T) {
	store, clock := openTestBolt(t, Options{ItemTTL: time.Hour})

	for _, m := range []struct{ id, job string }{{"a", "posts"}, {"b", "posts"}, {"c", "stats"}} {
		if err := store.Mark(m.id, m.job); err != nil {
			t.Fatalf("Mark %s: %v", m.id, err)
		}
	}
	counts, err := store.Counts()
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if counts["posts"] != 2 || counts["stats"] != 1 {
		t.Fatalf("unexpected counts %#v", counts)
	}

	clock.t = clock.t.Add(2 * time.Hour)
	if counts, _ := store.Counts(); len(counts) != 0 {
		t.Fatalf("expired entries should not be counted: %#v", counts)
	}
}

func TestBoltStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "seen.db")

	first, err := NewStore("bbolt", path, Options{})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := first.Mark("post-1", "blog"); err != nil {
		t.Fatalf("Mark: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second, err := NewStore("bbolt", path, Options{})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()

	if seen, err := second.Seen("post-1"); err != nil || !seen {
		t.Fatalf("expected persisted id, seen=%v err=%v", seen, err)
	}
	if counts, _ := second.Counts(); counts["blog"] != 1 {
		t.Fatalf("job id not persisted: %#v", counts)
	}
}

func TestBoltStoreTreatsMalformedValuesAsUnseen(t *testing.T) {
	store, _ := openTestBolt(t, Options{})

	if err := store.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(seenBucket).Put([]byte("bad"), []byte("x"))
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if seen, err := store.Seen("bad"); err != nil || seen {
		t.Fatalf("malformed entry should read as unseen, seen=%v err=%v", seen, err)
	}
}

func TestSeenRecordRoundTrip(t *testing.T) {
	rec := seenRecord{expires: time.Unix(1_800_000_000, 0), jobID: "stats-summary"}
	got, ok := decodeSeenRecord(rec.encode())
	if !ok || !got.expires.Equal(rec.expires) || got.jobID != rec.jobID {
		t.Fatalf("decoded %#v ok=%v", got, ok)
	}
	if _, ok := decodeSeenRecord(make([]byte, 8)); ok {
		t.Fatalf("zero expiry should be rejected")
	}
}

func TestNewStoreBackends(t *testing.T) {
	store, err := NewStore("none", "", Options{})
	if err != nil {
		t.Fatalf("NewStore none: %v", err)
	}
	if err := store.Mark("x", "j"); err != nil {
		t.Fatalf("noop Mark: %v", err)
	}
	if seen, _ := store.Seen("x"); seen {
		t.Fatalf("noop store should never report seen")
	}

	if _, err := NewStore("bbolt", " ", Options{}); err == nil {
		t.Fatalf("expected error for bbolt without path")
	}
	if _, err := NewStore("redis", "", Options{}); err == nil {
		t.Fatalf("expected error for unsupported type")
	}
}

func TestMemoryStoreExpires(t *testing.T) {
	store, err := NewStore("memory", "", Options{ItemTTL: 30 * time.Millisecond})
	if err != nil {
		t.Fatalf("NewStore memory: %v", err)
	}
	defer store.Close()

	if err := store.Mark("a", "posts"); err != nil {
		t.Fatalf("Mark: %v", err)
	}
	if seen, _ := store.Seen("a"); !seen {
		t.Fatalf("expected a to be seen")
	}
	if counts, _ := store.Counts(); counts["posts"] != 1 {
		t.Fatalf("unexpected counts %#v", counts)
	}

	time.Sleep(100 * time.Millisecond)
	if seen, _ := store.Seen("a"); seen {
		t.Fatalf("expected a to expire")
	}
}
