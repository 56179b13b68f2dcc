// C:\Users\wasab\OneDrive\デスクトップ\REGI\database\sqlite.go
package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// SQLiteStore は app_state テーブルに状態を保存する Store 実装です。
type SQLiteStore struct {
	db *sqlx.DB
}

func NewSQLiteStore(db *sqlx.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Get(key string) (string, bool, error) {
	var value string
	err := s.db.Get(&value, `SELECT value FROM app_state WHERE key = ?`, key)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read app_state key %q: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLiteStore) Set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO app_state (key, value, updated_at) VALUES (?, ?, ?)`,
		key, value, time.Now().Format("20060102150405"),
	)
	if err != nil {
		return fmt.Errorf("failed to write app_state key %q: %w", key, err)
	}
	return nil
}
