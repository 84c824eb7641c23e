// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store keeps a bookkeeping record of observed channel messages and
// emitted predictions in SQLite. The prediction engine never reads from it;
// its own state is in-memory and process-lifetime by design. The store
// exists for auditing and the report command.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/dkouassi/jokerbot/internal/predictor"
	"github.com/dkouassi/jokerbot/pkg/types"
)

const dbFile = "jokerbot.db"

// Store manages the bookkeeping SQLite database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore opens or creates the database at dataDir/jokerbot.db, creating
// the schema if it does not exist.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "data"
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS messages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			chat_id INTEGER NOT NULL,
			message_id INTEGER NOT NULL,
			game_number INTEGER NOT NULL,
			text TEXT NOT NULL,
			edited INTEGER NOT NULL,
			received_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_game ON messages(game_number)`,
		`CREATE TABLE IF NOT EXISTS pending_edits (
			message_id INTEGER PRIMARY KEY,
			game_number INTEGER NOT NULL,
			text TEXT NOT NULL,
			filed_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS predictions (
			target_game INTEGER PRIMARY KEY,
			source_game INTEGER NOT NULL,
			combination TEXT NOT NULL,
			status TEXT NOT NULL,
			verification_offset INTEGER,
			chat_id INTEGER,
			message_id INTEGER,
			created_at TEXT NOT NULL,
			resolved_at TEXT
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// RecordMessage stores one observed channel message. gameNumber is 0 when
// the text carries no game tag.
func (s *Store) RecordMessage(ctx context.Context, ev types.Event, gameNumber int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (chat_id, message_id, game_number, text, edited, received_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		ev.ChatID, ev.MessageID, gameNumber, ev.Text, boolToInt(ev.Edited), s.timestamp())
	if err != nil {
		return fmt.Errorf("recording message: %w", err)
	}
	return nil
}

// RecordPendingEdit files a provisional message, replacing any earlier row
// for the same message id (each edit supersedes the previous text).
func (s *Store) RecordPendingEdit(ctx context.Context, messageID int64, gameNumber int, text string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO pending_edits (message_id, game_number, text, filed_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(message_id) DO UPDATE SET
			game_number = excluded.game_number,
			text = excluded.text,
			filed_at = excluded.filed_at`,
		messageID, gameNumber, text, s.timestamp())
	if err != nil {
		return fmt.Errorf("recording pending edit: %w", err)
	}
	return nil
}

// RecordPrediction stores an emitted prediction and the handle of its
// outbound message.
func (s *Store) RecordPrediction(ctx context.Context, p *predictor.Prediction, ref predictor.MessageRef) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO predictions (target_game, source_game, combination, status, chat_id, message_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(target_game) DO NOTHING`,
		p.TargetGame, p.SourceGame, p.Combination, string(p.Status), ref.ChatID, ref.MessageID, s.timestamp())
	if err != nil {
		return fmt.Errorf("recording prediction: %w", err)
	}
	return nil
}

// MarkResolved updates a prediction's terminal status and offset.
func (s *Store) MarkResolved(ctx context.Context, out predictor.Outcome) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE predictions SET status = ?, verification_offset = ?, resolved_at = ?
		 WHERE target_game = ?`,
		string(out.Status), out.Offset, s.timestamp(), out.TargetGame)
	if err != nil {
		return fmt.Errorf("resolving prediction %d: %w", out.TargetGame, err)
	}
	return nil
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
