package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"

	"github.com/hailam/chesscore/internal/game"
	"github.com/hailam/chesscore/internal/logging"
)

// Storage keys
const (
	keyPreferences = "prefs"
	keyStats       = "stats"
	prefixGame     = "game/"
)

// ErrGameNotFound is returned by LoadGame for an unknown id.
var ErrGameNotFound = errors.New("game not found")

// Preferences stores the settings the binaries start with.
type Preferences struct {
	Depth      int       `json:"depth"`
	AIColor    string    `json:"ai_color"`
	LogLevel   string    `json:"log_level"`
	LastPlayed time.Time `json:"last_played"`
}

// DefaultPreferences returns default preferences
func DefaultPreferences() *Preferences {
	return &Preferences{
		Depth:    3,
		AIColor:  "black",
		LogLevel: logging.DefaultLevel,
	}
}

// Stats counts finished games by result.
type Stats struct {
	GamesPlayed int `json:"games_played"`
	WhiteWins   int `json:"white_wins"`
	BlackWins   int `json:"black_wins"`
	Draws       int `json:"draws"`
}

// GameRecord is a finished or abandoned game. Moves are in coordinate
// notation ("e2e4") starting from StartFEN.
type GameRecord struct {
	ID       string    `json:"id"`
	StartFEN string    `json:"start_fen"`
	Moves    []string  `json:"moves"`
	Result   string    `json:"result"`
	Reason   string    `json:"reason"`
	Started  time.Time `json:"started"`
	Finished time.Time `json:"finished"`
}

// NewGameID returns an id that sorts by start time.
func NewGameID(started time.Time) string {
	return started.UTC().Format("20060102-150405.000000000")
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db  *badger.DB
	log zerolog.Logger
}

// Open opens (or creates) the database in dir. An empty dir selects the
// platform data directory.
func Open(dir string, log zerolog.Logger) (*Storage, error) {
	if dir == "" {
		var err error
		if dir, err = DatabaseDir(); err != nil {
			return nil, fmt.Errorf("database dir: %w", err)
		}
	}
	log.Debug().Str("dir", dir).Msg("opening database")
	return open(badger.DefaultOptions(dir), log)
}

// OpenInMemory opens a database that lives only as long as the process.
func OpenInMemory(log zerolog.Logger) (*Storage, error) {
	return open(badger.DefaultOptions("").WithInMemory(true), log)
}

func open(opts badger.Options, log zerolog.Logger) (*Storage, error) {
	opts = opts.WithLogger(logging.Badger{Log: log.With().Str("component", "badger").Logger()})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return &Storage{db: db, log: log}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Storage) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// get decodes the value under key into v. It reports false when the key
// does not exist.
func (s *Storage) get(key string, v any) (bool, error) {
	found := false
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
	return found, err
}

// SavePreferences saves preferences and stamps LastPlayed.
func (s *Storage) SavePreferences(prefs *Preferences) error {
	prefs.LastPlayed = time.Now()
	return s.put(keyPreferences, prefs)
}

// LoadPreferences loads preferences, returns defaults if not found
func (s *Storage) LoadPreferences() (*Preferences, error) {
	prefs := DefaultPreferences()
	if _, err := s.get(keyPreferences, prefs); err != nil {
		return DefaultPreferences(), fmt.Errorf("load preferences: %w", err)
	}
	return prefs, nil
}

// LoadStats loads game statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*Stats, error) {
	stats := &Stats{}
	if _, err := s.get(keyStats, stats); err != nil {
		return &Stats{}, fmt.Errorf("load stats: %w", err)
	}
	return stats, nil
}

// RecordResult adds one finished game with the given result to the
// statistics. Unknown results count as played only.
func (s *Storage) RecordResult(result string) (*Stats, error) {
	var stats Stats
	err := s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyStats))
		switch {
		case errors.Is(err, badger.ErrKeyNotFound):
		case err != nil:
			return err
		default:
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &stats)
			}); err != nil {
				return err
			}
		}

		stats.GamesPlayed++
		switch result {
		case game.ResultWhiteWins:
			stats.WhiteWins++
		case game.ResultBlackWins:
			stats.BlackWins++
		case game.ResultDraw:
			stats.Draws++
		}

		data, err := json.Marshal(stats)
		if err != nil {
			return err
		}
		return txn.Set([]byte(keyStats), data)
	})
	if err != nil {
		return nil, fmt.Errorf("record result: %w", err)
	}
	return &stats, nil
}

// SaveGame stores rec, assigning an id from its start time if it has none.
func (s *Storage) SaveGame(rec *GameRecord) error {
	if rec.Started.IsZero() {
		rec.Started = time.Now()
	}
	if rec.ID == "" {
		rec.ID = NewGameID(rec.Started)
	}
	if err := s.put(prefixGame+rec.ID, rec); err != nil {
		return fmt.Errorf("save game %s: %w", rec.ID, err)
	}
	s.log.Debug().Str("id", rec.ID).Int("plies", len(rec.Moves)).Str("result", rec.Result).Msg("game saved")
	return nil
}

// LoadGame returns the game with the given id or ErrGameNotFound.
func (s *Storage) LoadGame(id string) (*GameRecord, error) {
	rec := &GameRecord{}
	found, err := s.get(prefixGame+id, rec)
	if err != nil {
		return nil, fmt.Errorf("load game %s: %w", id, err)
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	return rec, nil
}

// ListGames returns up to limit games, newest first. A limit of zero or
// less returns all of them.
func (s *Storage) ListGames(limit int) ([]*GameRecord, error) {
	var games []*GameRecord

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = []byte(prefixGame)
		it := txn.NewIterator(opts)
		defer it.Close()

		// Reverse iteration starts at the last key below the seek key.
		seek := append([]byte(prefixGame), 0xFF)
		for it.Seek(seek); it.ValidForPrefix([]byte(prefixGame)); it.Next() {
			rec := &GameRecord{}
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, rec)
			}); err != nil {
				return err
			}
			games = append(games, rec)
			if limit > 0 && len(games) == limit {
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return games, nil
}

// DeleteGame removes a stored game. Deleting an unknown id is not an error.
func (s *Storage) DeleteGame(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(prefixGame + id))
	})
}
