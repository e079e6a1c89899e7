package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreRecordAndRecent(t *testing.T) {
	store := openTestStore(t)

	runs := []Run{
		{Phase: PhaseBoot, Outcome: OutcomeFinished, Ticks: 40, Duration: 640 * time.Millisecond},
		{Phase: PhaseGame, Game: "garden.bitsy", Outcome: OutcomeFinished, Ticks: 900, Duration: 15 * time.Second},
		{Phase: PhaseGame, Game: "broken.bitsy", Outcome: OutcomeFailed, Error: "script: load games/broken.bitsy: syntax error"},
	}
	for _, r := range runs {
		if _, err := store.RecordRun(r); err != nil {
			t.Fatalf("RecordRun() failed: %v", err)
		}
	}

	got, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(got))
	}

	// Newest first
	if got[0].Game != "broken.bitsy" || got[0].Outcome != OutcomeFailed || got[0].Error == "" {
		t.Errorf("Unexpected newest run: %+v", got[0])
	}
	if got[1].Duration != 15*time.Second || got[1].Ticks != 900 {
		t.Errorf("Duration/ticks not preserved: %+v", got[1])
	}
	if got[2].Phase != PhaseBoot || got[2].Game != "" {
		t.Errorf("Unexpected oldest run: %+v", got[2])
	}
}

func TestStoreRecentRunsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.RecordRun(Run{Phase: PhaseGame, Game: "garden.bitsy", Outcome: OutcomeFinished, Ticks: i})
	}

	got, err := store.RecentRuns(3)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("Expected 3 runs with limit, got %d", len(got))
	}
	if got[0].Ticks != 4 || got[2].Ticks != 2 {
		t.Errorf("Runs not in expected order: %+v", got)
	}
}

func TestStorePlayCounts(t *testing.T) {
	store := openTestStore(t)

	store.RecordRun(Run{Phase: PhaseBoot, Outcome: OutcomeFinished})
	store.RecordRun(Run{Phase: PhaseGame, Game: "lighthouse.bitsy", Outcome: OutcomeFinished})
	store.RecordRun(Run{Phase: PhaseGame, Game: "garden.bitsy", Outcome: OutcomeFinished})
	store.RecordRun(Run{Phase: PhaseGame, Game: "garden.bitsy", Outcome: OutcomeCancelled})

	counts, err := store.PlayCounts()
	if err != nil {
		t.Fatalf("PlayCounts() failed: %v", err)
	}
	if len(counts) != 2 {
		t.Fatalf("Expected 2 games, got %+v", counts)
	}
	if counts[0].Game != "garden.bitsy" || counts[0].Count != 2 {
		t.Errorf("Expected garden.bitsy played twice first, got %+v", counts[0])
	}
	if counts[1].Game != "lighthouse.bitsy" || counts[1].Count != 1 {
		t.Errorf("Unexpected second entry: %+v", counts[1])
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.RecordRun(Run{Phase: PhaseBoot, Outcome: OutcomeFinished})
	if err := store.ClearRuns(); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	got, _ := store.RecentRuns(10)
	if len(got) != 0 {
		t.Errorf("Expected empty journal after clear, got %d runs", len(got))
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
