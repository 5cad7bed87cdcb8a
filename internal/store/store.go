// Package store persists grading runs in SQLite.
//
// One immutable row per grading invocation plus its findings, keyed by
// run id. The store is the system's only durable state: grading itself
// is stateless and the history/trend surfaces read back these rows.
// Uses modernc.org/sqlite (pure Go driver) with WAL mode and in-code
// idempotent migrations.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/SmackdabDevOps/smackdab-api-grader-sub001/internal/rules"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// RunRecord is one persisted grading invocation — a denormalized
// subset of the grade result, immutable once inserted.
type RunRecord struct {
	RunID           string  `json:"runId"`
	APIID           string  `json:"apiId"`
	GradedAt        string  `json:"gradedAt"`
	TotalScore      int     `json:"totalScore"`
	LetterGrade     string  `json:"letterGrade"`
	CompliancePct   float64 `json:"compliancePct"`
	AutoFail        bool    `json:"autoFail"`
	CriticalIssues  int     `json:"criticalIssues"`
	FindingsCount   int     `json:"findingsCount"`
	TemplateVersion string  `json:"templateVersion"`
}

// ViolationCount is a rule id with how often it appeared across runs.
type ViolationCount struct {
	RuleID string `json:"ruleId"`
	Count  int    `json:"count"`
}

// Config holds store configuration.
type Config struct {
	DataDir string
}

// DefaultConfig places the database under ~/.apigrader.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{DataDir: filepath.Join(home, ".apigrader")}
}

// Store is the run history engine backed by SQLite.
type Store struct {
	db *sql.DB
}

// New creates the data directory if needed, opens SQLite with WAL
// mode, and runs migrations.
func New(cfg Config) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return nil, fmt.Errorf("store: create data dir: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, "runs.db")
	db, err := openDB("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("store: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("store: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS run (
			run_id           TEXT PRIMARY KEY,
			api_id           TEXT    NOT NULL,
			graded_at        TEXT    NOT NULL,
			total_score      INTEGER NOT NULL,
			letter_grade     TEXT    NOT NULL,
			compliance_pct   REAL    NOT NULL,
			auto_fail        INTEGER NOT NULL DEFAULT 0,
			critical_issues  INTEGER NOT NULL DEFAULT 0,
			findings_count   INTEGER NOT NULL DEFAULT 0,
			template_version TEXT    NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_run_api     ON run(api_id, graded_at DESC);
		CREATE INDEX IF NOT EXISTS idx_run_graded  ON run(graded_at DESC);

		CREATE TABLE IF NOT EXISTS finding (
			run_id    TEXT NOT NULL,
			rule_id   TEXT NOT NULL,
			severity  TEXT NOT NULL,
			json_path TEXT NOT NULL,
			message   TEXT NOT NULL,
			category  TEXT NOT NULL,
			FOREIGN KEY (run_id) REFERENCES run(run_id) ON DELETE CASCADE
		);

		CREATE INDEX IF NOT EXISTS idx_finding_run  ON finding(run_id);
		CREATE INDEX IF NOT EXISTS idx_finding_rule ON finding(rule_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// InsertRun persists a run and its findings in a single transaction.
// Either everything lands or nothing does — partial results are never
// visible to history queries.
func (s *Store) InsertRun(rec RunRecord, findings []rules.Finding) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(
		`INSERT INTO run (run_id, api_id, graded_at, total_score, letter_grade,
		                  compliance_pct, auto_fail, critical_issues, findings_count, template_version)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID, rec.APIID, rec.GradedAt, rec.TotalScore, rec.LetterGrade,
		rec.CompliancePct, boolInt(rec.AutoFail), rec.CriticalIssues, rec.FindingsCount, rec.TemplateVersion,
	)
	if err != nil {
		return fmt.Errorf("store: insert run %s: %w", rec.RunID, err)
	}

	for _, f := range findings {
		if _, err := tx.Exec(
			`INSERT INTO finding (run_id, rule_id, severity, json_path, message, category)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			rec.RunID, f.RuleID, string(f.Severity), f.JSONPath, f.Message, f.Category,
		); err != nil {
			return fmt.Errorf("store: insert finding %s/%s: %w", rec.RunID, f.RuleID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit run %s: %w", rec.RunID, err)
	}
	return nil
}

// History returns prior runs for an API identity, most recent first.
// since, when non-zero, filters to runs graded at or after it.
func (s *Store) History(apiID string, limit int, since time.Time) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT run_id, api_id, graded_at, total_score, letter_grade,
		       compliance_pct, auto_fail, critical_issues, findings_count, template_version
		FROM run
		WHERE api_id = ?
	`
	args := []any{apiID}

	if !since.IsZero() {
		query += " AND graded_at >= ?"
		args = append(args, since.UTC().Format(time.RFC3339))
	}

	query += " ORDER BY graded_at DESC, run_id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: history query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []RunRecord
	for rows.Next() {
		var r RunRecord
		var autoFail int
		if err := rows.Scan(&r.RunID, &r.APIID, &r.GradedAt, &r.TotalScore, &r.LetterGrade,
			&r.CompliancePct, &autoFail, &r.CriticalIssues, &r.FindingsCount, &r.TemplateVersion); err != nil {
			return nil, fmt.Errorf("store: history scan: %w", err)
		}
		r.AutoFail = autoFail != 0
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetRun fetches one run row by id.
func (s *Store) GetRun(runID string) (*RunRecord, error) {
	row := s.db.QueryRow(
		`SELECT run_id, api_id, graded_at, total_score, letter_grade,
		        compliance_pct, auto_fail, critical_issues, findings_count, template_version
		 FROM run WHERE run_id = ?`, runID,
	)
	var r RunRecord
	var autoFail int
	if err := row.Scan(&r.RunID, &r.APIID, &r.GradedAt, &r.TotalScore, &r.LetterGrade,
		&r.CompliancePct, &autoFail, &r.CriticalIssues, &r.FindingsCount, &r.TemplateVersion); err != nil {
		return nil, fmt.Errorf("store: get run %s: %w", runID, err)
	}
	r.AutoFail = autoFail != 0
	return &r, nil
}

// ViolationCounts groups finding frequencies by rule id over the most
// recent runLimit runs of an API, count descending with ties broken by
// rule id.
func (s *Store) ViolationCounts(apiID string, runLimit int) ([]ViolationCount, error) {
	if runLimit <= 0 {
		runLimit = 20
	}

	rows, err := s.db.Query(`
		SELECT f.rule_id, COUNT(*) AS n
		FROM finding f
		WHERE f.run_id IN (
			SELECT run_id FROM run WHERE api_id = ? ORDER BY graded_at DESC, run_id DESC LIMIT ?
		)
		GROUP BY f.rule_id
		ORDER BY n DESC, f.rule_id ASC
	`, apiID, runLimit)
	if err != nil {
		return nil, fmt.Errorf("store: violation counts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []ViolationCount
	for rows.Next() {
		var vc ViolationCount
		if err := rows.Scan(&vc.RuleID, &vc.Count); err != nil {
			return nil, fmt.Errorf("store: violation scan: %w", err)
		}
		out = append(out, vc)
	}
	return out, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
