package cache

import "testing"

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory cache: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ============================================================
// Cache initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	c, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	var version int
	c.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/cache.db"
	c, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Put(SlotTasks, []sample{{Name: "a"}}); err != nil {
		t.Fatal(err)
	}
	c.Close()

	// Reopen: data survives and migration does not run twice.
	c2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer c2.Close()

	var got []sample
	ok, err := c2.Get(SlotTasks, &got)
	if err != nil || !ok {
		t.Fatalf("expected persisted snapshot, ok=%v err=%v", ok, err)
	}
	if len(got) != 1 || got[0].Name != "a" {
		t.Fatalf("unexpected snapshot: %+v", got)
	}
}

func TestDefaultPath(t *testing.T) {
	path, err := DefaultPath()
	if err != nil {
		t.Skipf("no user config dir: %v", err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

func TestMigrationIdempotent(t *testing.T) {
	c := newTestCache(t)
	if err := c.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

// ============================================================
// Snapshots
// ============================================================

func TestGetMissingSlot(t *testing.T) {
	c := newTestCache(t)

	v := sample{Name: "untouched"}
	ok, err := c.Get(SlotNotes, &v)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("missing slot should report false")
	}
	if v.Name != "untouched" {
		t.Fatal("missing slot should leave target untouched")
	}
}

func TestPutOverwrites(t *testing.T) {
	c := newTestCache(t)

	c.Put(SlotTimerStats, sample{Name: "first", Count: 1})
	c.Put(SlotTimerStats, sample{Name: "second", Count: 2})

	var got sample
	ok, err := c.Get(SlotTimerStats, &got)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.Name != "second" || got.Count != 2 {
		t.Fatalf("expected latest snapshot, got %+v", got)
	}
}

func TestSlotsAreIndependent(t *testing.T) {
	c := newTestCache(t)
	c.Put(SlotTasks, []sample{{Name: "task"}})
	c.Put(SlotNotes, []sample{{Name: "note"}})

	var tasks, notes []sample
	c.Get(SlotTasks, &tasks)
	c.Get(SlotNotes, &notes)
	if tasks[0].Name != "task" || notes[0].Name != "note" {
		t.Fatalf("slots mixed up: %+v %+v", tasks, notes)
	}
}

func TestGetCorruptPayload(t *testing.T) {
	c := newTestCache(t)
	if _, err := c.db.Exec(`INSERT INTO snapshots (slot, payload) VALUES (?, ?)`, string(SlotTasks), "{not json"); err != nil {
		t.Fatal(err)
	}

	var v []sample
	if _, err := c.Get(SlotTasks, &v); err == nil {
		t.Fatal("expected decode error for corrupt payload")
	}
}
