// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package archive

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/SKN-4rdPJT-6Team/Ready-To-Go/internal/model"
)

// ErrNotFound is returned when a requested session is not archived.
var ErrNotFound = errors.New("session not found in archive")

// =============================================================================
// RECORD TYPES
// =============================================================================

// SessionRecord is an archived session header.
type SessionRecord struct {
	ID             int64
	ConversationID int64
	Title          string
	Country        string
	Topic          string
	Model          string
	Offline        bool
	CreatedAt      time.Time
	MessageCount   int
}

// MessageRecord is one archived message.
type MessageRecord struct {
	SessionID  int64
	Role       string
	Text       string
	References []string
	Timestamp  time.Time
}

// =============================================================================
// ARCHIVE
// =============================================================================

// Archive is the SQLite-backed transcript archive.
type Archive struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (and if needed creates) an archive database at path.
func Open(path string) (*Archive, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive database: %w", err)
	}

	// SQLite allows one writer at a time; keep the pool at one
	// connection so writes never contend.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA temp_store=MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to configure archive database: %w", err)
		}
	}

	a := &Archive{db: db}
	if err := a.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return a, nil
}

// OpenDefault opens the archive at ~/.readytogo/archive.db.
func OpenDefault() (*Archive, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return Open(filepath.Join(home, ".readytogo", "archive.db"))
}

// Close closes the underlying database.
func (a *Archive) Close() error {
	return a.db.Close()
}

func (a *Archive) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id              INTEGER PRIMARY KEY,
		conversation_id INTEGER NOT NULL,
		title           TEXT NOT NULL,
		country         TEXT NOT NULL,
		topic           TEXT NOT NULL,
		model           TEXT NOT NULL,
		offline         INTEGER NOT NULL DEFAULT 0,
		created_at      TIMESTAMP NOT NULL
	);
	CREATE TABLE IF NOT EXISTS messages (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id INTEGER NOT NULL REFERENCES sessions(id),
		role       TEXT NOT NULL,
		text       TEXT NOT NULL,
		refs       TEXT,
		created_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_messages_session ON messages(session_id);
	`
	if _, err := a.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to migrate archive schema: %w", err)
	}
	return nil
}

// =============================================================================
// WRITES
// =============================================================================

// RecordSession archives a session header. Re-recording the same
// session id is a no-op.
func (a *Archive) RecordSession(session *model.ChatSession) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	_, err := a.db.Exec(
		`INSERT OR IGNORE INTO sessions
		 (id, conversation_id, title, country, topic, model, offline, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		session.ID, session.ConversationID, session.Title,
		session.Selection.Country, session.Selection.Topic, session.Selection.Model,
		boolToInt(session.Offline), session.CreatedAt,
	)
	return err
}

// RecordMessage appends a message to an archived session.
func (a *Archive) RecordMessage(sessionID int64, msg *model.Message) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	var refs any
	if len(msg.References) > 0 {
		data, err := json.Marshal(msg.References)
		if err != nil {
			return err
		}
		refs = string(data)
	}

	_, err := a.db.Exec(
		`INSERT INTO messages (session_id, role, text, refs, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		sessionID, string(msg.Role), msg.Text, refs, msg.Timestamp,
	)
	return err
}

// =============================================================================
// READS
// =============================================================================

// ListSessions returns archived session headers, newest first.
// limit <= 0 means no limit.
func (a *Archive) ListSessions(limit int) ([]SessionRecord, error) {
	query := `
	SELECT s.id, s.conversation_id, s.title, s.country, s.topic, s.model,
	       s.offline, s.created_at,
	       (SELECT COUNT(*) FROM messages m WHERE m.session_id = s.id)
	FROM sessions s
	ORDER BY s.created_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := a.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []SessionRecord
	for rows.Next() {
		var rec SessionRecord
		var offline int
		if err := rows.Scan(&rec.ID, &rec.ConversationID, &rec.Title,
			&rec.Country, &rec.Topic, &rec.Model,
			&offline, &rec.CreatedAt, &rec.MessageCount); err != nil {
			return nil, err
		}
		rec.Offline = offline != 0
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Messages returns the archived transcript of one session in insertion
// order.
func (a *Archive) Messages(sessionID int64) ([]MessageRecord, error) {
	var exists int
	err := a.db.QueryRow(`SELECT COUNT(*) FROM sessions WHERE id = ?`, sessionID).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, ErrNotFound
	}

	rows, err := a.db.Query(
		`SELECT session_id, role, text, refs, created_at
		 FROM messages WHERE session_id = ? ORDER BY id`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []MessageRecord
	for rows.Next() {
		var rec MessageRecord
		var refs sql.NullString
		if err := rows.Scan(&rec.SessionID, &rec.Role, &rec.Text, &refs, &rec.Timestamp); err != nil {
			return nil, err
		}
		if refs.Valid && refs.String != "" {
			if err := json.Unmarshal([]byte(refs.String), &rec.References); err != nil {
				rec.References = nil
			}
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
