package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/hailam/chessrules/internal/board"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestDefaultPreferences(t *testing.T) {
	prefs := DefaultPreferences()
	if prefs.Username == "" {
		t.Error("expected a generated username")
	}
	if prefs.TimeControlMinutes != 10 || prefs.IncrementSeconds != 0 {
		t.Errorf("time control = %d+%d, want 10+0", prefs.TimeControlMinutes, prefs.IncrementSeconds)
	}
	if !prefs.AutoQueen {
		t.Error("expected auto-queen enabled by default")
	}

	initial, increment := prefs.TimeControl()
	if initial != 10*time.Minute || increment != 0 {
		t.Errorf("TimeControl() = %v, %v", initial, increment)
	}
}

func TestPreferencesRoundTrip(t *testing.T) {
	s := newTestStorage(t)

	prefs, err := s.LoadPreferences()
	if err != nil {
		t.Fatalf("LoadPreferences: %v", err)
	}
	prefs.Username = "tester"
	prefs.TimeControlMinutes = 3
	prefs.IncrementSeconds = 2
	prefs.AutoQueen = false
	if err := s.SavePreferences(prefs); err != nil {
		t.Fatalf("SavePreferences: %v", err)
	}

	got, err := s.LoadPreferences()
	if err != nil {
		t.Fatalf("LoadPreferences: %v", err)
	}
	if diff := cmp.Diff(prefs.Username, got.Username); diff != "" {
		t.Errorf("username mismatch:\n%s", diff)
	}
	if got.TimeControlMinutes != 3 || got.IncrementSeconds != 2 || got.AutoQueen {
		t.Errorf("loaded %+v", got)
	}
}

func TestRecordGame(t *testing.T) {
	s := newTestStorage(t)
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	games := []GameResult{
		{ID: uuid.New(), Winner: board.White, Termination: "checkmate", Plies: 5, Duration: time.Minute, FinishedAt: base},
		{ID: uuid.New(), Winner: board.NoColor, Termination: "stalemate", Plies: 1, Duration: 2 * time.Minute, FinishedAt: base.Add(time.Hour)},
		{ID: uuid.New(), Winner: board.Black, Termination: "timeout", Duration: 10 * time.Minute, FinishedAt: base.Add(2 * time.Hour)},
	}
	for _, g := range games {
		if err := s.RecordGame(g); err != nil {
			t.Fatalf("RecordGame: %v", err)
		}
	}

	stats, err := s.LoadStats()
	if err != nil {
		t.Fatalf("LoadStats: %v", err)
	}
	want := &GameStats{
		GamesPlayed:   3,
		WhiteWins:     1,
		BlackWins:     1,
		Draws:         1,
		ByTermination: map[string]int{"checkmate": 1, "stalemate": 1, "timeout": 1},
		TotalPlayTime: 13 * time.Minute,
		LongestGame:   5,
	}
	if diff := cmp.Diff(want, stats); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}

	if !games[1].Draw() || games[0].Draw() {
		t.Error("Draw() misreports the winner")
	}

	results, err := s.Results()
	if err != nil {
		t.Fatalf("Results: %v", err)
	}
	newestFirst := []GameResult{games[2], games[1], games[0]}
	if diff := cmp.Diff(newestFirst, results); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
}

func TestOpenDirectory(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.RecordGame(GameResult{Winner: board.White, Termination: "checkmate"}); err != nil {
		t.Fatalf("RecordGame: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s, err = Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	stats, err := s.LoadStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.GamesPlayed != 1 || stats.WhiteWins != 1 {
		t.Errorf("stats after reopen = %+v", stats)
	}
	if stats.DrawRate() != 0 {
		t.Errorf("DrawRate() = %v, want 0", stats.DrawRate())
	}
}

func TestDataPaths(t *testing.T) {
	t.Setenv(DataDirEnv, "")
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	dbDir, err := DatabaseDir()
	if err != nil {
		t.Fatalf("DatabaseDir failed: %v", err)
	}
	if _, err := os.Stat(dbDir); os.IsNotExist(err) {
		t.Errorf("database directory was not created: %s", dbDir)
	}
}

func TestDataDirOverride(t *testing.T) {
	root := filepath.Join(t.TempDir(), "portable")
	t.Setenv(DataDirEnv, root)

	dbDir, err := DatabaseDir()
	if err != nil {
		t.Fatalf("DatabaseDir failed: %v", err)
	}
	if want := filepath.Join(root, dbDirName); dbDir != want {
		t.Errorf("DatabaseDir() = %q, want %q", dbDir, want)
	}
	if info, err := os.Stat(dbDir); err != nil || !info.IsDir() {
		t.Errorf("database directory was not created: %v", err)
	}
}
