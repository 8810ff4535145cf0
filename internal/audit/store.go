// Package audit keeps an append-only SQLite log of final decisions so past
// adjudications can be inspected after the fact. It is optional and purely
// observational: nothing in the pipeline reads it back.
package audit

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/pkravets/claimlens/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS decisions (
	id TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	patient TEXT NOT NULL,
	diagnosis TEXT NOT NULL,
	treatment TEXT NOT NULL,
	cost REAL NOT NULL,
	decision TEXT NOT NULL,
	decision_score REAL NOT NULL,
	confidence REAL NOT NULL,
	rules_fingerprint TEXT NOT NULL,
	report_json TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_decisions_created_at ON decisions(created_at);
`

// Store is the SQLite-backed decision log
type Store struct {
	db *sql.DB
}

// Entry is one logged decision, without the full report payload
type Entry struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Patient   string    `json:"patient"`
	Decision  string    `json:"decision"`
	Cost      float64   `json:"cost"`
	Score     float64   `json:"decision_score"`
}

// Open opens (or creates) the audit database at path
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open audit db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init audit schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Record appends a decision to the log and returns the generated record id
func (s *Store) Record(report *model.Report) (string, error) {
	payload, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}

	id := uuid.NewString()
	_, err = s.db.Exec(
		`INSERT INTO decisions (id, created_at, patient, diagnosis, treatment, cost, decision, decision_score, confidence, rules_fingerprint, report_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		report.EvaluatedAt.UTC().Format(time.RFC3339Nano),
		report.Claim.Patient,
		report.Claim.Diagnosis,
		report.Claim.Treatment,
		report.Claim.Cost,
		string(report.Decision.Decision),
		report.Decision.DecisionScore,
		report.Decision.Confidence,
		report.RulesFingerprint,
		string(payload),
	)
	if err != nil {
		return "", fmt.Errorf("insert decision: %w", err)
	}

	return id, nil
}

// Recent returns the latest logged decisions, newest first
func (s *Store) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, created_at, patient, decision, cost, decision_score
		 FROM decisions ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query decisions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var createdAt string
		if err := rows.Scan(&e.ID, &createdAt, &e.Patient, &e.Decision, &e.Cost, &e.Score); err != nil {
			return nil, fmt.Errorf("scan decision: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			e.CreatedAt = t
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}
