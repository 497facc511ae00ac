package scheduler

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const auditSchema = `
CREATE TABLE IF NOT EXISTS reminder_log (
	entry_id TEXT PRIMARY KEY,
	email TEXT NOT NULL,
	bill_count INTEGER NOT NULL,
	bills_json TEXT NOT NULL,
	sent_at INTEGER NOT NULL,
	status TEXT NOT NULL DEFAULT 'sent',
	error TEXT
);
CREATE INDEX IF NOT EXISTS idx_reminder_log_email ON reminder_log(email);
CREATE INDEX IF NOT EXISTS idx_reminder_log_time ON reminder_log(sent_at);
`

// AuditEntry records one reminder dispatch: who, which bills, when, outcome.
// The log is the source of truth for "what was sent when".
type AuditEntry struct {
	EntryID   string
	Email     string
	BillCount int
	BillsJSON string
	SentAt    int64
	Status    string
	Error     string
}

// AuditLog writes reminder dispatch entries to sqlite asynchronously so a
// slow disk never stalls the dispatch loop.
type AuditLog struct {
	db   *sql.DB
	ch   chan *AuditEntry
	done chan struct{}
	once sync.Once
}

// OpenAuditLog opens (and migrates) the reminder audit database.
func OpenAuditLog(path string) (*AuditLog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating audit dir: %w", err)
	}
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening audit db: %w", err)
	}
	if _, err := db.Exec(auditSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating audit db: %w", err)
	}
	l := &AuditLog{
		db:   db,
		ch:   make(chan *AuditEntry, 256),
		done: make(chan struct{}),
	}
	go l.flushLoop()
	return l, nil
}

// LogAsync queues an entry; a full buffer drops it with a warning rather
// than blocking the scheduler.
func (l *AuditLog) LogAsync(e *AuditEntry) {
	l.fillDefaults(e)
	select {
	case l.ch <- e:
	default:
		slog.Warn("reminder audit buffer full, dropping entry", "email", e.Email)
	}
}

// Recent returns the newest entries, most recent first.
func (l *AuditLog) Recent(limit int) ([]AuditEntry, error) {
	rows, err := l.db.Query(`
		SELECT entry_id, email, bill_count, bills_json, sent_at, status, COALESCE(error, '')
		FROM reminder_log ORDER BY sent_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AuditEntry
	for rows.Next() {
		var e AuditEntry
		if err := rows.Scan(&e.EntryID, &e.Email, &e.BillCount, &e.BillsJSON, &e.SentAt, &e.Status, &e.Error); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close drains the queue and closes the database.
func (l *AuditLog) Close() error {
	l.once.Do(func() {
		close(l.ch)
		<-l.done
	})
	return l.db.Close()
}

func (l *AuditLog) fillDefaults(e *AuditEntry) {
	if e.EntryID == "" {
		e.EntryID = "rem_" + uuid.NewString()
	}
	if e.SentAt == 0 {
		e.SentAt = time.Now().Unix()
	}
	if e.Status == "" {
		if e.Error != "" {
			e.Status = "error"
		} else {
			e.Status = "sent"
		}
	}
}

func (l *AuditLog) flushLoop() {
	defer close(l.done)
	batch := make([]*AuditEntry, 0, 32)
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case e, ok := <-l.ch:
			if !ok {
				l.flushBatch(batch)
				return
			}
			batch = append(batch, e)
			if len(batch) >= 32 {
				l.flushBatch(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				l.flushBatch(batch)
				batch = batch[:0]
			}
		}
	}
}

func (l *AuditLog) flushBatch(batch []*AuditEntry) {
	for _, e := range batch {
		_, err := l.db.Exec(`
			INSERT INTO reminder_log (entry_id, email, bill_count, bills_json, sent_at, status, error)
			VALUES (?,?,?,?,?,?,?)`,
			e.EntryID, e.Email, e.BillCount, e.BillsJSON, e.SentAt, e.Status, e.Error)
		if err != nil {
			slog.Error("reminder audit write failed", "error", err, "email", e.Email)
		}
	}
}
