package assist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/anatolykoptev/go_recruiter/internal/engine"
	_ "modernc.org/sqlite"
)

var (
	sessionDB   *sql.DB
	sessionOnce sync.Once
	sessionErr  error

	// resumes holds the current resume record per session. Uploads are
	// rare and small; memory is fine, the raw file is not kept.
	resumes sync.Map // session id → *engine.ResumeRecord
)

// openSessionDB opens (or creates) the SQLite chat history database.
func openSessionDB() (*sql.DB, error) {
	sessionOnce.Do(func() {
		dir := engine.Cfg.DataDir
		if dir == "" {
			dir = filepath.Join(os.Getenv("HOME"), ".go_recruiter")
		}
		if err := os.MkdirAll(dir, 0750); err != nil {
			sessionErr = fmt.Errorf("sessions: mkdir %s: %w", dir, err)
			return
		}
		dbPath := filepath.Join(dir, "chat.db")
		db, err := sql.Open("sqlite", dbPath)
		if err != nil {
			sessionErr = fmt.Errorf("sessions: open db: %w", err)
			return
		}
		db.SetMaxOpenConns(1) // SQLite: single writer
		if err := initSessionSchema(db); err != nil {
			sessionErr = fmt.Errorf("sessions: init schema: %w", err)
			return
		}
		sessionDB = db
	})
	return sessionDB, sessionErr
}

// initSessionSchema creates the messages table if it doesn't exist.
func initSessionSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS messages (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		session    TEXT NOT NULL,
		role       TEXT NOT NULL,
		content    TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`)
	if err != nil {
		return err
	}
	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_messages_session ON messages(session, id)`)
	return err
}

// AppendMessage persists one chat turn entry.
func AppendMessage(ctx context.Context, session, role, content string) error {
	if session == "" {
		session = "default"
	}
	if role != "user" && role != "assistant" {
		return fmt.Errorf("sessions: invalid role %q", role)
	}
	db, err := openSessionDB()
	if err != nil {
		return err
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err = db.ExecContext(ctx,
		`INSERT INTO messages (session, role, content, created_at) VALUES (?, ?, ?, ?)`,
		session, role, content, now)
	if err != nil {
		return fmt.Errorf("sessions: insert: %w", err)
	}
	return nil
}

// History returns the most recent messages of a session in chronological
// order. limit <= 0 or > 200 defaults to 50.
func History(ctx context.Context, session string, limit int) ([]engine.ChatMessage, error) {
	if session == "" {
		session = "default"
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	db, err := openSessionDB()
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx,
		`SELECT role, content, created_at FROM (
			SELECT id, role, content, created_at FROM messages
			WHERE session = ? ORDER BY id DESC LIMIT ?
		) ORDER BY id ASC`,
		session, limit)
	if err != nil {
		return nil, fmt.Errorf("sessions: query: %w", err)
	}
	defer rows.Close()

	msgs := []engine.ChatMessage{}
	for rows.Next() {
		var m engine.ChatMessage
		if err := rows.Scan(&m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("sessions: scan: %w", err)
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// SetResume stores the parsed resume for a session.
func SetResume(session string, record *engine.ResumeRecord) {
	if session == "" {
		session = "default"
	}
	resumes.Store(session, record)
}

// CurrentResume returns the session's resume record, if one was uploaded.
func CurrentResume(session string) (*engine.ResumeRecord, bool) {
	if session == "" {
		session = "default"
	}
	val, ok := resumes.Load(session)
	if !ok {
		return nil, false
	}
	record, ok := val.(*engine.ResumeRecord)
	return record, ok
}

// ErrNoResume signals that a resume-dependent operation ran before an upload.
var ErrNoResume = errors.New("no resume uploaded")
