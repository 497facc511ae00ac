package export

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/kudimara/kudimara/internal/store"
)

func TestWriteCSV(t *testing.T) {
	envelopes := []store.Envelope{
		{
			ID: "id1", Timestamp: "2025-01-01T00:00:00Z", UserEmail: "a@example.com",
			Data: map[string]any{"income": 100000.0, "score": 98.0, "status": "excellent"},
		},
		{
			ID: "id2", Timestamp: "2025-01-02T00:00:00Z",
			Data: map[string]any{"income": 50000.5, "badges": []any{"Savings Pro"}},
		},
	}

	var b strings.Builder
	if err := WriteCSV(&b, envelopes); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	rows, err := csv.NewReader(strings.NewReader(b.String())).ReadAll()
	if err != nil {
		t.Fatalf("reparsing output: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}

	header := rows[0]
	// Envelope columns first, then data keys sorted.
	want := []string{"id", "timestamp", "user_email", "badges", "income", "score", "status"}
	if len(header) != len(want) {
		t.Fatalf("header = %v", header)
	}
	for i := range want {
		if header[i] != want[i] {
			t.Fatalf("header = %v, want %v", header, want)
		}
	}

	if rows[1][0] != "id1" || rows[1][2] != "a@example.com" {
		t.Errorf("row1 = %v", rows[1])
	}
	if rows[1][4] != "100000" {
		t.Errorf("whole amount = %q, want 100000", rows[1][4])
	}
	if rows[2][4] != "50000.50" {
		t.Errorf("fractional amount = %q, want 50000.50", rows[2][4])
	}
	// Absent keys render as empty cells, not the word "nil".
	if rows[2][6] != "" {
		t.Errorf("missing status cell = %q", rows[2][6])
	}
	// Non-scalar values are embedded as JSON.
	if rows[2][3] != `["Savings Pro"]` {
		t.Errorf("badges cell = %q", rows[2][3])
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	var b strings.Builder
	if err := WriteCSV(&b, nil); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if got := strings.TrimSpace(b.String()); got != "id,timestamp,user_email" {
		t.Errorf("empty export = %q", got)
	}
}

func TestNewSheetsMirrorDisabled(t *testing.T) {
	if m := NewSheetsMirror(""); m != nil {
		t.Error("empty webhook URL should disable the mirror")
	}
	var m *SheetsMirror
	// Pushing to a nil mirror is a no-op, not a panic.
	m.Push(store.Envelope{ID: "x"})
}
