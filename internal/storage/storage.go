package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	petname "github.com/dustinkirkland/golang-petname"
	"github.com/google/uuid"

	"github.com/hailam/chessrules/internal/board"
)

// Storage keys
const (
	keyPreferences  = "preferences"
	keyStats        = "stats"
	keyResultPrefix = "result/"
)

// UserPreferences stores user settings
type UserPreferences struct {
	Username           string    `json:"username"`
	TimeControlMinutes int       `json:"time_control_minutes"`
	IncrementSeconds   int       `json:"increment_seconds"`
	AutoQueen          bool      `json:"auto_queen"`
	FlipBoard          bool      `json:"flip_board"`
	SoundEnabled       bool      `json:"sound_enabled"`
	LastPlayed         time.Time `json:"last_played"`
}

// DefaultPreferences returns default user preferences
func DefaultPreferences() *UserPreferences {
	return &UserPreferences{
		Username:           petname.Generate(2, "-"),
		TimeControlMinutes: 10,
		AutoQueen:          true,
		SoundEnabled:       true,
		LastPlayed:         time.Now(),
	}
}

// TimeControl returns the per-side starting time and the per-move increment.
func (p *UserPreferences) TimeControl() (initial, increment time.Duration) {
	return time.Duration(p.TimeControlMinutes) * time.Minute,
		time.Duration(p.IncrementSeconds) * time.Second
}

// GameStats aggregates every recorded game
type GameStats struct {
	GamesPlayed   int            `json:"games_played"`
	WhiteWins     int            `json:"white_wins"`
	BlackWins     int            `json:"black_wins"`
	Draws         int            `json:"draws"`
	ByTermination map[string]int `json:"by_termination"`
	TotalPlayTime time.Duration  `json:"total_play_time"`
	LongestGame   int            `json:"longest_game_plies"`
}

// NewGameStats returns empty game statistics
func NewGameStats() *GameStats {
	return &GameStats{ByTermination: make(map[string]int)}
}

// DrawRate returns the share of drawn games as a percentage (0-100)
func (s *GameStats) DrawRate() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.Draws) / float64(s.GamesPlayed) * 100
}

// GameResult summarizes one finished game
type GameResult struct {
	ID          uuid.UUID     `json:"id"`
	Winner      board.Color   `json:"winner"` // board.NoColor for a draw
	Termination string        `json:"termination"`
	Plies       int           `json:"plies"`
	Duration    time.Duration `json:"duration"`
	FinishedAt  time.Time     `json:"finished_at"`
}

// Draw reports whether the game had no winner.
func (r GameResult) Draw() bool {
	return r.Winner == board.NoColor
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// NewStorage opens the database in the platform data directory
func NewStorage() (*Storage, error) {
	dbDir, err := DatabaseDir()
	if err != nil {
		return nil, err
	}
	log.Printf("[STORAGE] database directory: %s", dbDir)
	return Open(dbDir)
}

// Open opens (or creates) a database in dir
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	return open(opts)
}

// OpenInMemory opens a database that lives only as long as the process
func OpenInMemory() (*Storage, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts)
}

func open(opts badger.Options) (*Storage, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// getJSON decodes key into v, leaving v untouched when the key is absent.
func getJSON(txn *badger.Txn, key string, v any) error {
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, v)
	})
}

func setJSON(txn *badger.Txn, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return txn.Set([]byte(key), data)
}

// SavePreferences saves user preferences
func (s *Storage) SavePreferences(prefs *UserPreferences) error {
	prefs.LastPlayed = time.Now()
	err := s.db.Update(func(txn *badger.Txn) error {
		return setJSON(txn, keyPreferences, prefs)
	})
	if err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}

// LoadPreferences loads user preferences, returns defaults if not found
func (s *Storage) LoadPreferences() (*UserPreferences, error) {
	prefs := DefaultPreferences()
	err := s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, keyPreferences, prefs)
	})
	if err != nil {
		return prefs, fmt.Errorf("load preferences: %w", err)
	}
	return prefs, nil
}

// LoadStats loads game statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*GameStats, error) {
	stats := NewGameStats()
	err := s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, keyStats, stats)
	})
	if err != nil {
		return stats, fmt.Errorf("load stats: %w", err)
	}
	return stats, nil
}

// RecordGame stores the game summary and folds it into the statistics in
// one transaction
func (s *Storage) RecordGame(result GameResult) error {
	if result.ID == uuid.Nil {
		result.ID = uuid.New()
	}
	if result.FinishedAt.IsZero() {
		result.FinishedAt = time.Now()
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		stats := NewGameStats()
		if err := getJSON(txn, keyStats, stats); err != nil {
			return err
		}
		if stats.ByTermination == nil {
			stats.ByTermination = make(map[string]int)
		}

		stats.GamesPlayed++
		stats.TotalPlayTime += result.Duration
		stats.ByTermination[result.Termination]++
		stats.LongestGame = max(stats.LongestGame, result.Plies)
		switch result.Winner {
		case board.White:
			stats.WhiteWins++
		case board.Black:
			stats.BlackWins++
		default:
			stats.Draws++
		}

		if err := setJSON(txn, keyResultPrefix+result.ID.String(), result); err != nil {
			return err
		}
		return setJSON(txn, keyStats, stats)
	})
	if err != nil {
		return fmt.Errorf("record game %s: %w", result.ID, err)
	}
	return nil
}

// Results returns every stored game summary, most recent first
func (s *Storage) Results() ([]GameResult, error) {
	var results []GameResult
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(keyResultPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var r GameResult
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &r)
			}); err != nil {
				return err
			}
			results = append(results, r)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	slices.SortFunc(results, func(a, b GameResult) int {
		return b.FinishedAt.Compare(a.FinishedAt)
	})
	return results, nil
}
