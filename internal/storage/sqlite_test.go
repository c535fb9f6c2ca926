package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/neonflip/internal/scores"
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

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, s := range []int{100, 50, 200} {
		if _, err := store.SaveScore("session-a", "neo", s); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	entries, err := store.TopScores(10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(entries))
	}
	if entries[0].Score != 200 || entries[1].Score != 100 || entries[2].Score != 50 {
		t.Errorf("Scores not sorted descending: %v", entries)
	}
	if entries[0].SessionID != "session-a" || entries[0].Username != "neo" {
		t.Errorf("Entry fields not stored: %+v", entries[0])
	}
	if entries[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestStoreSaveRejectsNegative(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveScore("s", "", -1); !errors.Is(err, scores.ErrNegativeScore) {
		t.Errorf("SaveScore(-1) = %v, expected ErrNegativeScore", err)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("s", "", (i+1)*100)
	}

	entries, err := store.TopScores(3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(entries) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(entries))
	}
	if entries[0].Score != 500 || entries[1].Score != 400 || entries[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", entries)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty store, got %d", high)
	}

	store.SaveScore("s", "", 100)
	store.SaveScore("s", "", 300)
	store.SaveScore("s", "", 200)

	high, err = store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("s", "", 100)
	store.SaveScore("s", "", 200)

	if err := store.ClearScores(); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	entries, _ := store.TopScores(10)
	if len(entries) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(entries))
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.GamesCount != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", stats)
	}

	store.SaveScore("s", "", 10)
	store.SaveScore("s", "", 20)
	store.SaveScore("s", "", 30)

	stats, err = store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.GamesCount != 3 || stats.HighScore != 30 || stats.TotalScore != 60 || stats.AvgScore != 20 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}
}

func TestRecorderSubmitScore(t *testing.T) {
	store := openTestStore(t)
	rec := store.Recorder("session-b", "trinity")
	ctx := context.Background()

	tests := []struct {
		score    int
		expected scores.Result
	}{
		{0, scores.Result{NewHighScore: false, HighScore: 0}},
		{12, scores.Result{NewHighScore: true, HighScore: 12}},
		{8, scores.Result{NewHighScore: false, HighScore: 12}},
		{12, scores.Result{NewHighScore: false, HighScore: 12}},
		{13, scores.Result{NewHighScore: true, HighScore: 13}},
	}

	for _, tc := range tests {
		res, err := rec.SubmitScore(ctx, tc.score)
		if err != nil {
			t.Fatalf("SubmitScore(%d) failed: %v", tc.score, err)
		}
		if res != tc.expected {
			t.Errorf("SubmitScore(%d) = %+v, expected %+v", tc.score, res, tc.expected)
		}
	}

	entries, _ := store.TopScores(10)
	if len(entries) != len(tests) {
		t.Errorf("Expected %d recorded games, got %d", len(tests), len(entries))
	}
	if entries[0].Username != "trinity" || entries[0].SessionID != "session-b" {
		t.Errorf("Recorder did not tag entry: %+v", entries[0])
	}
}

func TestRecorderRejectsNegative(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.Recorder("s", "").SubmitScore(context.Background(), -5); !errors.Is(err, scores.ErrNegativeScore) {
		t.Errorf("SubmitScore(-5) = %v, expected ErrNegativeScore", err)
	}
	if high, _ := store.HighScore(); high != 0 {
		t.Error("rejected score should not be stored")
	}
}

func TestStoreExpandHomePath(t *testing.T) {
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
