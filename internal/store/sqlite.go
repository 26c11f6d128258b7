package store

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/debemdeboas/the-draft/internal/util/compression"
)

// SQLiteStore persists slots in a single kv table with zstd-compressed
// values.
type SQLiteStore struct { // implements Store
	conn       *sql.DB
	compressor compression.Compressor
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	_, err = conn.Exec(`
CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value BLOB,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);`)
	if err != nil {
		conn.Close()
		return nil, err
	}

	storeLogger.Info().Str("path", path).Msg("Store initialized")
	return &SQLiteStore{
		conn:       conn,
		compressor: compression.ZstdCompressor{},
	}, nil
}

func (s *SQLiteStore) Get(key string) (string, bool) {
	var compressed []byte
	row := s.conn.QueryRow(`SELECT value FROM kv WHERE key = ?`, key)
	if err := row.Scan(&compressed); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			storeLogger.Error().Err(err).Str("key", key).Msg("Error reading slot")
		}
		return "", false
	}

	value, err := s.compressor.Decompress(compressed)
	if err != nil {
		storeLogger.Error().Err(err).Str("key", key).Msg("Error decompressing slot")
		return "", false
	}
	return string(value), true
}

func (s *SQLiteStore) Set(key, value string) error {
	compressed, err := s.compressor.Compress([]byte(value))
	if err != nil {
		return fmt.Errorf("compressing %q: %w", key, err)
	}

	_, err = s.conn.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, compressed,
	)
	if err != nil {
		return fmt.Errorf("setting %q: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Remove(key string) {
	if _, err := s.conn.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		storeLogger.Error().Err(err).Str("key", key).Msg("Error removing slot")
	}
}

func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}
