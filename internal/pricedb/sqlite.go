package pricedb

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// SQLiteStore persists quotes and price history to a SQLite database.
type SQLiteStore struct {
	db  *sql.DB
	mu  sync.Mutex
	log *zap.Logger
}

// OpenSQLite opens (or creates) the database file and runs migrations.
func OpenSQLite(path string, log *zap.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so the GUI can read while the collector writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db, log: log}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info("sqlite store opened", zap.String("path", path))
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS quotes (
			symbol     TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			price      REAL NOT NULL,
			change_24h REAL,
			color      TEXT,
			updated_at INTEGER NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS price_history (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol    TEXT NOT NULL,
			timestamp INTEGER NOT NULL,
			price     REAL NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_history_symbol_ts ON price_history(symbol, timestamp)`,
	}

	for _, st := range stmts {
		if _, err := s.db.Exec(st); err != nil {
			return fmt.Errorf("exec %q: %w", st[:40], err)
		}
	}
	return nil
}

func (s *SQLiteStore) Quotes(ctx context.Context) ([]Quote, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT symbol, name, price, change_24h, color, updated_at FROM quotes ORDER BY symbol`)
	if err != nil {
		return nil, fmt.Errorf("query quotes: %w", err)
	}
	defer rows.Close()

	var out []Quote
	for rows.Next() {
		var q Quote
		var ts int64
		if err := rows.Scan(&q.Symbol, &q.Name, &q.Price, &q.Change24h, &q.ColorHex, &ts); err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		q.UpdatedAt = time.Unix(ts, 0)
		out = append(out, q)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) History(ctx context.Context, symbol string, days int) ([]PricePoint, error) {
	since := time.Now().AddDate(0, 0, -days).Unix()
	rows, err := s.db.QueryContext(ctx,
		`SELECT timestamp, price FROM price_history
		 WHERE symbol = ? AND timestamp >= ? ORDER BY timestamp`,
		symbol, since)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []PricePoint
	for rows.Next() {
		var ts int64
		var p PricePoint
		if err := rows.Scan(&ts, &p.Price); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		p.Time = time.Unix(ts, 0)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) UpsertQuote(ctx context.Context, q Quote) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO quotes (symbol, name, price, change_24h, color, updated_at)
		 VALUES (?,?,?,?,?,?)
		 ON CONFLICT(symbol) DO UPDATE SET
		   name=excluded.name, price=excluded.price, change_24h=excluded.change_24h,
		   color=excluded.color, updated_at=excluded.updated_at`,
		q.Symbol, q.Name, q.Price, q.Change24h, q.ColorHex, q.UpdatedAt.Unix())
	if err != nil {
		return fmt.Errorf("upsert quote %s: %w", q.Symbol, err)
	}
	return nil
}

func (s *SQLiteStore) RecordPrice(ctx context.Context, symbol string, price float64, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO price_history (symbol, timestamp, price) VALUES (?,?,?)`,
		symbol, at.Unix(), price)
	if err != nil {
		return fmt.Errorf("record price %s: %w", symbol, err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	s.log.Info("closing sqlite store")
	return s.db.Close()
}
