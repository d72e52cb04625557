// Package history persists committed trades to a local sqlite database so
// operators can answer per-user questions without replaying the ledger.
// Recording is best-effort by contract: the ledger never rolls back a
// committed operation because a history write failed.
package history

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/swaptrade/swaptrade/x/swap/keeper"
)

const schema = `
CREATE TABLE IF NOT EXISTS trades (
	id          TEXT PRIMARY KEY,
	user        TEXT NOT NULL,
	kind        TEXT NOT NULL,
	from_asset  TEXT NOT NULL,
	to_asset    TEXT NOT NULL,
	amount_in   TEXT NOT NULL,
	amount_out  TEXT NOT NULL,
	fee         TEXT NOT NULL,
	executed_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_trades_user ON trades(user, executed_at DESC);
`

// Trade is one stored history row. Amounts are decimal strings: sqlite
// integers cap at 64 bits and ledger amounts do not.
type Trade struct {
	ID         string
	User       string
	Kind       string
	FromAsset  string
	ToAsset    string
	AmountIn   string
	AmountOut  string
	Fee        string
	ExecutedAt uint64
}

// Store wraps the sqlite trade log.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the trade log at path. Use ":memory:"
// for tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Record implements keeper.HistoryRecorder.
func (s *Store) Record(rec keeper.TradeRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO trades (id, user, kind, from_asset, to_asset, amount_in, amount_out, fee, executed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), rec.User, rec.Kind, rec.FromAsset, rec.ToAsset,
		rec.AmountIn.String(), rec.AmountOut.String(), rec.Fee.String(), rec.ExecutedAt,
	)
	if err != nil {
		return fmt.Errorf("history: insert trade for %s: %w", rec.User, err)
	}
	return nil
}

// UserTrades returns the most recent trades for a user, newest first.
func (s *Store) UserTrades(user string, limit int) ([]Trade, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(
		`SELECT id, user, kind, from_asset, to_asset, amount_in, amount_out, fee, executed_at
		 FROM trades WHERE user = ? ORDER BY executed_at DESC, id LIMIT ?`, user, limit)
	if err != nil {
		return nil, fmt.Errorf("history: query trades for %s: %w", user, err)
	}
	defer rows.Close()

	var trades []Trade
	for rows.Next() {
		var t Trade
		if err := rows.Scan(&t.ID, &t.User, &t.Kind, &t.FromAsset, &t.ToAsset,
			&t.AmountIn, &t.AmountOut, &t.Fee, &t.ExecutedAt); err != nil {
			return nil, fmt.Errorf("history: scan trade row: %w", err)
		}
		trades = append(trades, t)
	}
	return trades, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
