package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hetulpatel/valorfinder/internal/models"
)

const (
	defaultPath = "data/valorfinder.db"

	betsKey = "bets"
)

// Store wraps a SQLite DB connection and persists the bet ledger as a single
// serialized collection under one key.
type Store struct {
	path string
	db   *sql.DB
}

// Open creates (if needed) and opens the SQLite database.
func Open(path string) (*Store, error) {
	if path == "" {
		path = defaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure data dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := ensureWAL(db); err != nil {
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &Store{path: path, db: db}, nil
}

func ensureWAL(db *sql.DB) error {
	const (
		maxAttempts = 5
		delay       = 200 * time.Millisecond
	)
	for i := 0; i < maxAttempts; i++ {
		if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			if strings.Contains(err.Error(), "database is locked") {
				time.Sleep(delay)
				continue
			}
			return err
		}
		return nil
	}
	return fmt.Errorf("database is locked after retries")
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS ledger (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
`

// Path returns the path backing the store.
func (s *Store) Path() string {
	return s.path
}

// Close closes the DB.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Load reads the persisted bet collection. An absent row means an empty ledger.
func (s *Store) Load(ctx context.Context) ([]models.Bet, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM ledger WHERE key = ?;`, betsKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var bets []models.Bet
	if err := json.Unmarshal([]byte(raw), &bets); err != nil {
		return nil, fmt.Errorf("decode bets: %w", err)
	}
	return bets, nil
}

// Save overwrites the persisted collection with the given list.
func (s *Store) Save(ctx context.Context, bets []models.Bet) error {
	if bets == nil {
		bets = []models.Bet{}
	}
	payload, err := json.Marshal(bets)
	if err != nil {
		return fmt.Errorf("encode bets: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err = s.db.ExecContext(ctx, `
INSERT INTO ledger (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at;`,
		betsKey, string(payload), now)
	return err
}
