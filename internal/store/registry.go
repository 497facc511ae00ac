package store

import (
	"fmt"
	"path/filepath"
)

// Tool names double as record file basenames.
const (
	ToolFinancialHealth = "financial_health"
	ToolBudget          = "budget"
	ToolNetWorth        = "net_worth"
	ToolEmergencyFund   = "emergency_fund"
	ToolBill            = "bill"
	ToolQuiz            = "quiz"
)

// Tools lists every wizard tool with a record store.
var Tools = []string{
	ToolFinancialHealth,
	ToolBudget,
	ToolNetWorth,
	ToolEmergencyFund,
	ToolBill,
	ToolQuiz,
}

// Course is a learning-hub catalog entry. The catalog file is the one store
// that holds plain records instead of envelopes.
type Course struct {
	ID      string   `json:"id"`
	TitleEN string   `json:"title_en"`
	TitleHA string   `json:"title_ha"`
	Lessons []Lesson `json:"lessons"`
}

type Lesson struct {
	TitleEN string `json:"title_en"`
	TitleHA string `json:"title_ha"`
	BodyEN  string `json:"body_en"`
	BodyHA  string `json:"body_ha"`
}

// Registry holds every store, built once at startup and injected into the
// handlers and the scheduler.
type Registry struct {
	stores  map[string]*Store
	Courses *ListStore[Course]
}

// OpenRegistry opens one envelope store per tool plus the course catalog
// under dir. Any failure is fatal to startup.
func OpenRegistry(dir string) (*Registry, error) {
	r := &Registry{stores: make(map[string]*Store, len(Tools))}
	for _, tool := range Tools {
		s, err := Open(filepath.Join(dir, tool+".json"))
		if err != nil {
			return nil, fmt.Errorf("opening %s store: %w", tool, err)
		}
		r.stores[tool] = s
	}
	courses, err := OpenList[Course](filepath.Join(dir, "courses.json"))
	if err != nil {
		return nil, fmt.Errorf("opening courses store: %w", err)
	}
	r.Courses = courses
	return r, nil
}

// For returns the store for a tool name; it panics on an unknown tool, which
// is a programming error, not runtime input.
func (r *Registry) For(tool string) *Store {
	s, ok := r.stores[tool]
	if !ok {
		panic(fmt.Sprintf("no store registered for tool %q", tool))
	}
	return s
}

// Health reports the first store whose backing file is unreadable, for the
// /health probe. A missing file is healthy (treated as empty).
func (r *Registry) Health() error {
	for _, tool := range Tools {
		if err := r.stores[tool].Healthy(); err != nil {
			return fmt.Errorf("store %s: %w", tool, err)
		}
	}
	if err := r.Courses.Healthy(); err != nil {
		return fmt.Errorf("store courses: %w", err)
	}
	return nil
}
