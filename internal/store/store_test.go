package store

import (
	"os"
	"path/filepath"
	"testing"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "records.json"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	return s
}

func TestAppendAndReadAll(t *testing.T) {
	s := tempStore(t)

	id1, err := s.Append(map[string]any{"n": 1.0}, "sess-a", "a@example.com")
	if err != nil {
		t.Fatalf("first append: %v", err)
	}
	id2, err := s.Append(map[string]any{"n": 2.0}, "sess-b", "")
	if err != nil {
		t.Fatalf("second append: %v", err)
	}
	if id1 == "" || id2 == "" || id1 == id2 {
		t.Fatalf("ids not unique: %q %q", id1, id2)
	}

	all := s.ReadAll()
	if len(all) != 2 {
		t.Fatalf("ReadAll = %d records, want 2", len(all))
	}
	if all[0].ID != id1 || all[1].ID != id2 {
		t.Errorf("records out of append order")
	}
	if all[0].UserEmail != "a@example.com" || all[1].UserEmail != "" {
		t.Errorf("user_email not preserved: %q %q", all[0].UserEmail, all[1].UserEmail)
	}
	if all[0].Timestamp >= all[1].Timestamp {
		t.Errorf("timestamps not strictly increasing: %s then %s", all[0].Timestamp, all[1].Timestamp)
	}
}

func TestTimestampsMonotonicUnderBursts(t *testing.T) {
	s := tempStore(t)
	prev := ""
	for i := 0; i < 20; i++ {
		if _, err := s.Append(map[string]any{"i": float64(i)}, "sess", ""); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
	for i, env := range s.ReadAll() {
		if env.Timestamp <= prev {
			t.Fatalf("record %d timestamp %s not after %s", i, env.Timestamp, prev)
		}
		prev = env.Timestamp
	}
}

func TestReopenSeesSameRecords(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "records.json")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	id, err := s.Append(map[string]any{"k": "v"}, "sess", "")
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopening store: %v", err)
	}
	got, ok := s2.GetByID(id)
	if !ok {
		t.Fatal("record lost across reopen")
	}
	if got.Data["k"] != "v" {
		t.Errorf("data = %v, want k=v", got.Data)
	}
}

func TestMissingFileReadsEmpty(t *testing.T) {
	s := tempStore(t)
	if got := s.ReadAll(); len(got) != 0 {
		t.Errorf("ReadAll on missing file = %d records, want 0", len(got))
	}
	if err := s.Healthy(); err != nil {
		t.Errorf("missing file should be healthy, got %v", err)
	}
}

func TestCorruptFileReadsEmpty(t *testing.T) {
	s := tempStore(t)
	if err := os.WriteFile(s.Path(), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := s.ReadAll(); len(got) != 0 {
		t.Errorf("ReadAll on corrupt file = %d records, want 0", len(got))
	}
}

func TestMalformedRecordsSkipped(t *testing.T) {
	s := tempStore(t)
	raw := `[
		{"id": "", "session_id": "s", "timestamp": "t", "data": {"a": 1}},
		{"id": "good", "session_id": "s", "timestamp": "t", "data": {"a": 2}},
		{"id": "nodata", "session_id": "s", "timestamp": "t"},
		"not an object"
	]`
	if err := os.WriteFile(s.Path(), []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}
	all := s.ReadAll()
	if len(all) != 1 || all[0].ID != "good" {
		t.Fatalf("ReadAll = %+v, want only the well-formed record", all)
	}
}

func TestLegacyStepShapeUnwrapped(t *testing.T) {
	s := tempStore(t)
	raw := `[{"id": "old", "session_id": "s", "timestamp": "t",
		"data": {"step": 3, "data": {"income": 5000}}}]`
	if err := os.WriteFile(s.Path(), []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}
	env, ok := s.GetByID("old")
	if !ok {
		t.Fatal("legacy record not readable")
	}
	if env.Data["income"] != 5000.0 {
		t.Errorf("data = %v, want unwrapped inner payload", env.Data)
	}
	if _, hasStep := env.Data["step"]; hasStep {
		t.Errorf("step marker leaked into data: %v", env.Data)
	}
}

func TestFilterBySessionAndEmail(t *testing.T) {
	s := tempStore(t)
	s.Append(map[string]any{"n": 1.0}, "sess-a", "a@example.com")
	s.Append(map[string]any{"n": 2.0}, "sess-b", "b@example.com")
	s.Append(map[string]any{"n": 3.0}, "sess-a", "a@example.com")

	bySess := s.FilterBySession("sess-a")
	if len(bySess) != 2 {
		t.Fatalf("FilterBySession = %d, want 2", len(bySess))
	}
	if bySess[0].Data["n"] != 1.0 || bySess[1].Data["n"] != 3.0 {
		t.Errorf("session filter lost append order: %v", bySess)
	}
	if got := s.FilterByEmail("b@example.com"); len(got) != 1 {
		t.Errorf("FilterByEmail = %d, want 1", len(got))
	}
}

func TestUpdateByID(t *testing.T) {
	s := tempStore(t)
	id, _ := s.Append(map[string]any{"status": "unpaid"}, "sess", "a@example.com")

	if !s.UpdateByID(id, map[string]any{"status": "paid"}) {
		t.Fatal("update reported failure")
	}
	env, _ := s.GetByID(id)
	if env.Data["status"] != "paid" {
		t.Errorf("status = %v after update, want paid", env.Data["status"])
	}
	if env.SessionID != "sess" || env.UserEmail != "a@example.com" {
		t.Errorf("envelope fields mutated by update: %+v", env)
	}
	if s.UpdateByID("missing", map[string]any{}) {
		t.Error("update of unknown id reported success")
	}
}

func TestDeleteByID(t *testing.T) {
	s := tempStore(t)
	id1, _ := s.Append(map[string]any{"n": 1.0}, "sess", "")
	id2, _ := s.Append(map[string]any{"n": 2.0}, "sess", "")

	if !s.DeleteByID(id1) {
		t.Fatal("delete reported failure")
	}
	if _, ok := s.GetByID(id1); ok {
		t.Error("deleted record still readable")
	}
	if _, ok := s.GetByID(id2); !ok {
		t.Error("delete removed the wrong record")
	}
	if s.DeleteByID(id1) {
		t.Error("second delete of same id reported success")
	}
}

func TestRegistryOpensEveryTool(t *testing.T) {
	reg, err := OpenRegistry(t.TempDir())
	if err != nil {
		t.Fatalf("OpenRegistry: %v", err)
	}
	for _, tool := range Tools {
		st := reg.For(tool)
		if st == nil {
			t.Fatalf("no store for %s", tool)
		}
		if filepath.Base(st.Path()) != tool+".json" {
			t.Errorf("store file for %s is %s", tool, st.Path())
		}
	}
	if err := reg.Health(); err != nil {
		t.Errorf("fresh registry unhealthy: %v", err)
	}
}

func TestListStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "courses.json")
	ls, err := OpenList[Course](path)
	if err != nil {
		t.Fatalf("OpenList: %v", err)
	}
	if got := ls.ReadAll(); len(got) != 0 {
		t.Fatalf("fresh list store has %d items", len(got))
	}
	in := []Course{{ID: "c1", TitleEN: "One", TitleHA: "Daya"}}
	if err := ls.Replace(in); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	out := ls.ReadAll()
	if len(out) != 1 || out[0].ID != "c1" || out[0].TitleHA != "Daya" {
		t.Errorf("ReadAll = %+v", out)
	}
}
