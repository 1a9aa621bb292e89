package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Schema creates the tables the service needs. Non-repeating time slots
// store an empty rrule so the unique constraint covers them too.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS users (id UUID PRIMARY KEY, username TEXT NOT NULL UNIQUE, is_interviewer BOOLEAN NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS time_slots (id UUID PRIMARY KEY, start_time TIMESTAMP NOT NULL, end_time TIMESTAMP NOT NULL, rrule TEXT NOT NULL DEFAULT '', creator_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE, UNIQUE (start_time, end_time, creator_id, rrule))`,
	`CREATE INDEX IF NOT EXISTS time_slots_creator_id_idx ON time_slots (creator_id)`,
}

// Migrate applies Schema in a single transaction.
func Migrate(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range Schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec context: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
