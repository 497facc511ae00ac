// Package export writes a session's records as CSV and optionally mirrors
// finalized budget records to a spreadsheet webhook. The webhook is a
// best-effort side channel: the record store stays the source of truth and
// webhook failures are logged and swallowed.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/kudimara/kudimara/internal/store"
)

// WriteCSV renders envelopes as CSV: the envelope columns first, then the
// union of data keys in sorted order so the header is stable.
func WriteCSV(w io.Writer, envelopes []store.Envelope) error {
	keys := map[string]struct{}{}
	for _, env := range envelopes {
		for k := range env.Data {
			keys[k] = struct{}{}
		}
	}
	dataCols := make([]string, 0, len(keys))
	for k := range keys {
		dataCols = append(dataCols, k)
	}
	sort.Strings(dataCols)

	cw := csv.NewWriter(w)
	header := append([]string{"id", "timestamp", "user_email"}, dataCols...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, env := range envelopes {
		row := []string{env.ID, env.Timestamp, env.UserEmail}
		for _, col := range dataCols {
			row = append(row, cell(env.Data[col]))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func cell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		// Trim the ".000000" noise from whole amounts.
		if x == float64(int64(x)) {
			return fmt.Sprintf("%d", int64(x))
		}
		return fmt.Sprintf("%.2f", x)
	default:
		raw, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprintf("%v", x)
		}
		return string(raw)
	}
}

// SheetsMirror posts finalized records to a spreadsheet webhook.
type SheetsMirror struct {
	url    string
	client *http.Client
}

// NewSheetsMirror returns nil when no webhook is configured; callers treat a
// nil mirror as disabled.
func NewSheetsMirror(url string) *SheetsMirror {
	if url == "" {
		return nil
	}
	return &SheetsMirror{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Push fires the record at the webhook and forgets it. Never blocks the
// caller's request: the post runs on its own goroutine.
func (m *SheetsMirror) Push(env store.Envelope) {
	if m == nil {
		return
	}
	go func() {
		raw, err := json.Marshal(env)
		if err != nil {
			slog.Warn("sheets mirror encode failed", "id", env.ID, "error", err)
			return
		}
		resp, err := m.client.Post(m.url, "application/json", bytes.NewReader(raw))
		if err != nil {
			slog.Warn("sheets mirror push failed", "id", env.ID, "error", err)
			return
		}
		resp.Body.Close()
		if resp.StatusCode >= 300 {
			slog.Warn("sheets mirror rejected record", "id", env.ID, "status", resp.StatusCode)
		}
	}()
}
