package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"CryptoDigest/internal/ports"
)

const seenSchema = `
CREATE TABLE IF NOT EXISTS seen_items (
    item_id    TEXT PRIMARY KEY,
    first_seen TIMESTAMP NOT NULL
);`

// SQLiteStore keeps the seen-id set in a sqlite table. The set is
// append-only: Save inserts only ids not already present, inside one
// transaction, so a snapshot is either fully applied or not at all.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

var _ ports.DedupStore = (*SQLiteStore)(nil)

// NewSQLiteStore opens (and initializes) the database at path.
func NewSQLiteStore(path string, logger *slog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open dedup database: %w", err)
	}

	if _, err := db.Exec(seenSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init dedup schema: %w", err)
	}

	return &SQLiteStore{db: db, logger: logger}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load reads every persisted id. Query failures fail open to an empty
// set with a warning, matching the store contract.
func (s *SQLiteStore) Load(ctx context.Context) (map[string]struct{}, error) {
	ids := map[string]struct{}{}

	query, args, err := sq.Select("item_id").From("seen_items").ToSql()
	if err != nil {
		return ids, fmt.Errorf("build load query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		s.warn("dedup store unreadable, starting empty", "error", err)
		return ids, nil
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			s.warn("dedup store row unreadable, starting empty", "error", err)
			return map[string]struct{}{}, nil
		}
		ids[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		s.warn("dedup store iteration failed, starting empty", "error", err)
		return map[string]struct{}{}, nil
	}

	return ids, nil
}

// Save upserts the id set in sorted order inside a single transaction.
func (s *SQLiteStore) Save(ctx context.Context, ids map[string]struct{}) error {
	list := make([]string, 0, len(ids))
	for id := range ids {
		list = append(list, id)
	}
	sort.Strings(list)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin dedup save: %w", err)
	}

	now := time.Now().UTC()
	for _, id := range list {
		query, args, err := sq.Insert("seen_items").
			Options("OR IGNORE").
			Columns("item_id", "first_seen").
			Values(id, now).
			ToSql()
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("build insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert seen id %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit dedup save: %w", err)
	}
	return nil
}

func (s *SQLiteStore) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
