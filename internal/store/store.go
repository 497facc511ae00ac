// Package store persists tool records as flat JSON files, one file per tool.
//
// Every record is wrapped in an Envelope. Writers serialize on a per-file
// mutex and replace the file atomically (temp sibling, fsync, rename) so a
// reader always sees a complete JSON array. Readers tolerate a missing or
// corrupt file by treating it as empty.
package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Envelope is the uniform wrapper around one stored record. Envelope fields
// are never mutated after write; only Data may change via UpdateByID.
type Envelope struct {
	ID        string         `json:"id"`
	SessionID string         `json:"session_id"`
	UserEmail string         `json:"user_email,omitempty"`
	Timestamp string         `json:"timestamp"`
	Data      map[string]any `json:"data"`
}

// Store is an append-only envelope store backed by a single JSON file.
type Store struct {
	path string

	mu sync.Mutex
	// lastStamp enforces monotonic timestamps across appends to this file.
	lastStamp time.Time
}

// Open prepares a store at path, creating the parent directory. Permission
// problems surface here rather than on first write.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	if _, err := os.Stat(path); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("checking store file: %w", err)
	}
	return &Store{path: path}, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Append mints an id and timestamp, writes the envelope, and returns the id.
// email may be empty for anonymous records.
func (s *Store) Append(data map[string]any, sessionID, email string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	envelopes := s.readLocked()
	env := Envelope{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		UserEmail: email,
		Timestamp: s.nextStamp(),
		Data:      data,
	}
	envelopes = append(envelopes, env)
	if err := s.writeLocked(envelopes); err != nil {
		slog.Error("store append failed", "path", s.path, "session_id", sessionID, "error", err)
		return "", err
	}
	return env.ID, nil
}

// ReadAll returns a snapshot of all envelopes in file order, normalizing
// legacy-shaped records and skipping malformed entries.
func (s *Store) ReadAll() []Envelope {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readLocked()
}

// FilterBySession returns envelopes owned by sessionID, in append order.
func (s *Store) FilterBySession(sessionID string) []Envelope {
	var out []Envelope
	for _, env := range s.ReadAll() {
		if env.SessionID == sessionID {
			out = append(out, env)
		}
	}
	return out
}

// FilterByEmail returns envelopes whose denormalized user_email matches.
func (s *Store) FilterByEmail(email string) []Envelope {
	var out []Envelope
	for _, env := range s.ReadAll() {
		if env.UserEmail == email {
			out = append(out, env)
		}
	}
	return out
}

// GetByID returns the envelope with the given id, or false.
func (s *Store) GetByID(id string) (Envelope, bool) {
	for _, env := range s.ReadAll() {
		if env.ID == id {
			return env, true
		}
	}
	return Envelope{}, false
}

// UpdateByID replaces the data payload of one envelope, preserving the
// envelope fields. Returns false when the id is unknown or the write fails.
func (s *Store) UpdateByID(id string, data map[string]any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	envelopes := s.readLocked()
	found := false
	for i := range envelopes {
		if envelopes[i].ID == id {
			envelopes[i].Data = data
			found = true
			break
		}
	}
	if !found {
		return false
	}
	if err := s.writeLocked(envelopes); err != nil {
		slog.Error("store update failed", "path", s.path, "id", id, "error", err)
		return false
	}
	return true
}

// DeleteByID removes one envelope. Returns false when the id is unknown or
// the write fails.
func (s *Store) DeleteByID(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	envelopes := s.readLocked()
	out := envelopes[:0]
	found := false
	for _, env := range envelopes {
		if env.ID == id {
			found = true
			continue
		}
		out = append(out, env)
	}
	if !found {
		return false
	}
	if err := s.writeLocked(out); err != nil {
		slog.Error("store delete failed", "path", s.path, "id", id, "error", err)
		return false
	}
	return true
}

// Create replaces the file contents wholesale. Used for seeding.
func (s *Store) Create(envelopes []Envelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(envelopes)
}

// nextStamp returns an RFC 3339 UTC timestamp strictly later than any
// previous append to this file. Caller holds the mutex.
func (s *Store) nextStamp() string {
	now := time.Now().UTC()
	if !now.After(s.lastStamp) {
		now = s.lastStamp.Add(time.Microsecond)
	}
	s.lastStamp = now
	return now.Format(time.RFC3339Nano)
}

func (s *Store) readLocked() []Envelope {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("store read failed, treating as empty", "path", s.path, "error", err)
		}
		return nil
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		slog.Warn("store file is not a JSON array, treating as empty", "path", s.path, "error", err)
		return nil
	}

	envelopes := make([]Envelope, 0, len(entries))
	for i, entry := range entries {
		env, ok := decodeEnvelope(entry)
		if !ok {
			slog.Warn("skipping malformed record", "path", s.path, "index", i)
			continue
		}
		envelopes = append(envelopes, env)
	}
	return envelopes
}

// decodeEnvelope parses one array entry, unwrapping the legacy intermediate
// shape data = {step: n, data: {...}} left behind by older wizard versions.
func decodeEnvelope(raw json.RawMessage) (Envelope, bool) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Envelope{}, false
	}
	if env.ID == "" || env.Data == nil {
		return Envelope{}, false
	}
	if _, hasStep := env.Data["step"]; hasStep {
		if inner, ok := env.Data["data"].(map[string]any); ok {
			env.Data = inner
		}
	}
	return env, true
}

func (s *Store) writeLocked(envelopes []Envelope) error {
	if envelopes == nil {
		envelopes = []Envelope{}
	}
	data, err := json.MarshalIndent(envelopes, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding records: %w", err)
	}
	return atomicWrite(s.path, data)
}

// Healthy reports whether the backing file is accessible. A missing file is
// healthy; it reads as an empty store.
func (s *Store) Healthy() error {
	_, err := statReadable(s.path)
	return err
}

// statReadable distinguishes "file absent" (healthy, empty store) from a
// genuine access problem such as a permission error.
func statReadable(path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	f.Close()
	return true, nil
}

// atomicWrite writes data to a temp sibling, fsyncs, and renames it over
// path so readers never observe a partial file.
func atomicWrite(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing store file: %w", err)
	}
	return nil
}
