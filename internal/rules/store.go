package rules

import (
	"fmt"
	"sync/atomic"

	"github.com/pkravets/claimlens/internal/model"
)

// Store holds the active rule table behind an atomic pointer. Evaluations
// running concurrently with a reload always see a complete table: reload
// builds a fresh table and swaps the pointer, never mutating the live one.
type Store struct {
	table atomic.Pointer[model.RuleTable]
	path  string
}

// NewStore creates a store with the given initial table.
func NewStore(table *model.RuleTable, path string) *Store {
	s := &Store{path: path}
	s.table.Store(table)
	return s
}

// Open loads the table from path (or the built-in default for an empty path)
// and wraps it in a store.
func Open(path string) (*Store, error) {
	table, err := Load(path)
	if err != nil {
		return nil, err
	}
	return NewStore(table, path), nil
}

// Table returns the current rule table. The returned table must be treated
// as read-only.
func (s *Store) Table() *model.RuleTable {
	return s.table.Load()
}

// Reload re-reads the rule file and atomically swaps in the new table.
// On any error the previous table stays active.
func (s *Store) Reload() error {
	if s.path == "" {
		return fmt.Errorf("reload: store has no backing file")
	}

	table, err := Load(s.path)
	if err != nil {
		return fmt.Errorf("reload rules: %w", err)
	}

	s.table.Store(table)
	return nil
}

// Swap replaces the active table directly. Intended for tests and for
// callers that build tables programmatically.
func (s *Store) Swap(table *model.RuleTable) {
	s.table.Store(table)
}
