package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pixil98/go-testutil"
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

func mustSave(t *testing.T, s *Store, r Run) {
	t.Helper()
	if _, err := s.SaveRun(r); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndLookup(t *testing.T) {
	store := openTestStore(t)

	run := Run{
		RunID:      "5a0b3c1e-1111-4222-8333-444455556666",
		LevelID:    "first-echo",
		Player:     "ada",
		Outcome:    OutcomeComplete,
		Loops:      2,
		TotalTicks: 1058,
		Score:      1273,
	}
	id, err := store.SaveRun(run)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if id <= 0 {
		t.Errorf("SaveRun() id = %d, expected positive", id)
	}

	got, err := store.RunByID(run.RunID)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("RunByID() returned nil")
	}
	testutil.AssertEqual(t, "level", got.LevelID, run.LevelID)
	testutil.AssertEqual(t, "player", got.Player, run.Player)
	testutil.AssertEqual(t, "outcome", got.Outcome, run.Outcome)
	testutil.AssertEqual(t, "loops", got.Loops, run.Loops)
	testutil.AssertEqual(t, "ticks", got.TotalTicks, run.TotalTicks)
	testutil.AssertEqual(t, "score", got.Score, run.Score)
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	missing, err := store.RunByID("nope")
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if missing != nil {
		t.Errorf("RunByID() = %+v, expected nil", missing)
	}
}

func TestStoreSaveRunGeneratesID(t *testing.T) {
	store := openTestStore(t)
	mustSave(t, store, Run{LevelID: "first-echo", Outcome: "paradox"})
	mustSave(t, store, Run{LevelID: "first-echo", Outcome: "paradox"})

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(runs))
	}
	if runs[0].RunID == "" || runs[0].RunID == runs[1].RunID {
		t.Errorf("run ids = %q, %q, expected distinct generated ids", runs[0].RunID, runs[1].RunID)
	}
}

func TestStoreSaveRunErrors(t *testing.T) {
	store := openTestStore(t)
	mustSave(t, store, Run{RunID: "dup", LevelID: "first-echo", Outcome: OutcomeComplete})

	_, err := store.SaveRun(Run{RunID: "dup", LevelID: "first-echo", Outcome: OutcomeComplete})
	testutil.AssertErrorContains(t, err, "cannot save run")

	_, err = store.SaveRun(Run{Outcome: OutcomeComplete})
	testutil.AssertErrorContains(t, err, "has no level")
}

func TestStoreBestRuns(t *testing.T) {
	store := openTestStore(t)
	for _, r := range []Run{
		{LevelID: "first-echo", Outcome: OutcomeComplete, Score: 1100, TotalTicks: 1500},
		{LevelID: "first-echo", Outcome: OutcomeComplete, Score: 1273, TotalTicks: 1058},
		{LevelID: "first-echo", Outcome: OutcomeComplete, Score: 1100, TotalTicks: 1400},
		{LevelID: "first-echo", Outcome: "paradox", Score: 0},
		{LevelID: "watchful-eye", Outcome: OutcomeComplete, Score: 1500},
	} {
		mustSave(t, store, r)
	}

	runs, err := store.BestRuns("first-echo", 10)
	if err != nil {
		t.Fatalf("BestRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 completed runs, got %d", len(runs))
	}

	expected := []int{1058, 1400, 1500}
	for i, r := range runs {
		if r.TotalTicks != expected[i] {
			t.Errorf("runs[%d].TotalTicks = %d, expected %d", i, r.TotalTicks, expected[i])
		}
	}

	all, err := store.BestRuns("", 10)
	if err != nil {
		t.Fatalf("BestRuns() failed: %v", err)
	}
	if len(all) != 4 || all[0].LevelID != "watchful-eye" {
		t.Errorf("BestRuns(all) = %d runs led by %q", len(all), all[0].LevelID)
	}
}

func TestStoreBestRunsLimit(t *testing.T) {
	store := openTestStore(t)
	for i := 0; i < 15; i++ {
		mustSave(t, store, Run{LevelID: "first-echo", Outcome: OutcomeComplete, Score: 1000 + i})
	}

	runs, err := store.BestRuns("first-echo", 5)
	if err != nil {
		t.Fatalf("BestRuns() failed: %v", err)
	}
	if len(runs) != 5 {
		t.Errorf("Expected 5 runs, got %d", len(runs))
	}

	runs, err = store.BestRuns("first-echo", 0)
	if err != nil {
		t.Fatalf("BestRuns() failed: %v", err)
	}
	if len(runs) != 10 {
		t.Errorf("Expected default limit of 10, got %d", len(runs))
	}
}

func TestStoreBestScore(t *testing.T) {
	store := openTestStore(t)

	score, err := store.BestScore("first-echo")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if score != 0 {
		t.Errorf("Expected 0 for an unplayed level, got %d", score)
	}

	mustSave(t, store, Run{LevelID: "first-echo", Outcome: OutcomeComplete, Score: 1100})
	mustSave(t, store, Run{LevelID: "first-echo", Outcome: OutcomeComplete, Score: 1273})
	mustSave(t, store, Run{LevelID: "first-echo", Outcome: "detected", Score: 9999})

	score, err = store.BestScore("first-echo")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if score != 1273 {
		t.Errorf("BestScore() = %d, expected 1273", score)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)
	mustSave(t, store, Run{LevelID: "first-echo", Outcome: OutcomeComplete, Score: 1100})
	mustSave(t, store, Run{LevelID: "double-echo", Outcome: OutcomeComplete, Score: 1200})

	if err := store.ClearRuns("first-echo"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	runs, _ := store.BestRuns("first-echo", 10)
	if len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}
	runs, _ = store.BestRuns("double-echo", 10)
	if len(runs) != 1 {
		t.Errorf("Other levels should keep their runs, got %d", len(runs))
	}
}

func TestStoreLevelStats(t *testing.T) {
	store := openTestStore(t)
	for _, r := range []Run{
		{LevelID: "first-echo", Outcome: "paradox", Loops: 1, TotalTicks: 300},
		{LevelID: "first-echo", Outcome: OutcomeComplete, Loops: 2, TotalTicks: 1058, Score: 1273},
		{LevelID: "first-echo", Outcome: OutcomeComplete, Loops: 2, TotalTicks: 1200, Score: 1250},
		{LevelID: "watchful-eye", Outcome: "detected", Loops: 1, TotalTicks: 90},
	} {
		mustSave(t, store, r)
	}

	st, err := store.GetLevelStats("first-echo")
	if err != nil {
		t.Fatalf("GetLevelStats() failed: %v", err)
	}
	testutil.AssertEqual(t, "attempts", st.Attempts, 3)
	testutil.AssertEqual(t, "completions", st.Completions, 2)
	testutil.AssertEqual(t, "best", st.BestScore, 1273)
	testutil.AssertEqual(t, "fewest loops", st.FewestLoops, 2)
	testutil.AssertEqual(t, "fastest", st.FastestTicks, 1058)

	st, err = store.GetLevelStats("watchful-eye")
	if err != nil {
		t.Fatalf("GetLevelStats() failed: %v", err)
	}
	testutil.AssertEqual(t, "completions", st.Completions, 0)
	testutil.AssertEqual(t, "fastest", st.FastestTicks, 0)

	st, err = store.GetLevelStats("unplayed")
	if err != nil {
		t.Fatalf("GetLevelStats() failed: %v", err)
	}
	testutil.AssertEqual(t, "attempts", st.Attempts, 0)

	all, err := store.GetAllLevelStats()
	if err != nil {
		t.Fatalf("GetAllLevelStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Expected stats for 2 levels, got %d", len(all))
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

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestRunDuration(t *testing.T) {
	r := Run{TotalTicks: 90}
	testutil.AssertEqual(t, "duration", r.Duration().Milliseconds(), int64(1500))
}
