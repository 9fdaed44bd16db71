package bolt

import (
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) (*Store, func()) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}

	return store, cleanup
}

func TestOpen(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	if store == nil {
		t.Fatal("expected non-nil store")
	}
}

func TestGet_Missing(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	v, found, err := store.Get("streaks_habits_v1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if found || v != nil {
		t.Fatalf("expected missing key, got found=%v value=%q", found, v)
	}
}

func TestPutGet(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	want := `[{"id":1,"name":"guitar","history":{}}]`
	if err := store.Put("streaks_habits_v1", []byte(want)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, found, err := store.Get("streaks_habits_v1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !found {
		t.Fatal("expected key to be found")
	}
	if string(got) != want {
		t.Fatalf("got %q want %q", got, want)
	}

	if err := store.Put("streaks_habits_v1", []byte("[]")); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	got, _, _ = store.Get("streaks_habits_v1")
	if string(got) != "[]" {
		t.Fatalf("expected overwrite, got %q", got)
	}
}

func TestNextSequence_SurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "seq.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	first, err := store.NextSequence()
	if err != nil {
		t.Fatalf("NextSequence failed: %v", err)
	}
	second, _ := store.NextSequence()
	if second <= first {
		t.Fatalf("sequence not increasing: %d then %d", first, second)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	third, err := store.NextSequence()
	if err != nil {
		t.Fatalf("NextSequence failed: %v", err)
	}
	if third <= second {
		t.Fatalf("sequence reused after reopen: %d then %d", second, third)
	}
}
