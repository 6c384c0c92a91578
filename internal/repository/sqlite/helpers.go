package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"skillindex/internal/domain"
)

// ============================================================================
// Null Type Conversion Helpers
// ============================================================================

// nullToString safely converts sql.NullString to string
func nullToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// stringToNull safely converts string to sql.NullString
func stringToNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// ============================================================================
// Time Helpers
// ============================================================================

// Timestamps are stored as RFC 3339 text in UTC so they sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

// ============================================================================
// JSON Marshaling Helpers
// ============================================================================

// unmarshalJSONField safely unmarshals JSON from nullable string into target
func unmarshalJSONField(ns sql.NullString, target interface{}) error {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	return json.Unmarshal([]byte(ns.String), target)
}

// marshalCounts marshals category counts; empty maps are stored as NULL
func marshalCounts(counts map[domain.Category]int) (sql.NullString, error) {
	if len(counts) == 0 {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(counts)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

// ============================================================================
// Run Row Scanner
// ============================================================================

// runRow holds all columns from a run query for scanning
type runRow struct {
	ID          string
	StartedAt   string
	FinishedAt  string
	Fingerprint string
	IndexPath   sql.NullString
	OutputPath  sql.NullString
	Total       int
	Skipped     int
	CountsJSON  sql.NullString
}

// scanArgs returns pointers to all fields for sql.Scan()
// MUST match runColumns order exactly
func (r *runRow) scanArgs() []interface{} {
	return []interface{}{
		&r.ID,
		&r.StartedAt,
		&r.FinishedAt,
		&r.Fingerprint,
		&r.IndexPath,
		&r.OutputPath,
		&r.Total,
		&r.Skipped,
		&r.CountsJSON,
	}
}

// toDomain converts the scanned row to a domain.Run
func (r *runRow) toDomain() (*domain.Run, error) {
	started, err := parseTime(r.StartedAt)
	if err != nil {
		return nil, fmt.Errorf("parse started_at: %w", err)
	}
	finished, err := parseTime(r.FinishedAt)
	if err != nil {
		return nil, fmt.Errorf("parse finished_at: %w", err)
	}

	run := &domain.Run{
		ID:          r.ID,
		StartedAt:   started,
		FinishedAt:  finished,
		Fingerprint: r.Fingerprint,
		IndexPath:   nullToString(r.IndexPath),
		OutputPath:  nullToString(r.OutputPath),
		Total:       r.Total,
		Skipped:     r.Skipped,
		Counts:      map[domain.Category]int{},
	}

	if err := unmarshalJSONField(r.CountsJSON, &run.Counts); err != nil {
		return nil, fmt.Errorf("unmarshal counts: %w", err)
	}
	return run, nil
}

const runColumns = `id, started_at, finished_at, fingerprint, index_path, output_path, total, skipped, counts`

// runInsertArgs prepares arguments in runColumns order
func runInsertArgs(run *domain.Run) ([]interface{}, error) {
	counts, err := marshalCounts(run.Counts)
	if err != nil {
		return nil, fmt.Errorf("marshal counts: %w", err)
	}
	return []interface{}{
		run.ID,
		formatTime(run.StartedAt),
		formatTime(run.FinishedAt),
		run.Fingerprint,
		stringToNull(run.IndexPath),
		stringToNull(run.OutputPath),
		run.Total,
		run.Skipped,
		counts,
	}, nil
}

// ============================================================================
// Classification Row Scanner
// ============================================================================

// classificationRow holds all columns from a classification query for scanning
type classificationRow struct {
	SkillID     string
	Source      sql.NullString
	Title       sql.NullString
	RunID       string
	Category    string
	Subcategory sql.NullString
	Outcome     string
	Rule        sql.NullString
}

// scanArgs returns pointers to all fields for sql.Scan()
// MUST match classificationColumns order exactly
func (r *classificationRow) scanArgs() []interface{} {
	return []interface{}{
		&r.SkillID,
		&r.Source,
		&r.Title,
		&r.RunID,
		&r.Category,
		&r.Subcategory,
		&r.Outcome,
		&r.Rule,
	}
}

// toDomain converts the scanned row to a domain.ClassificationRecord
func (r *classificationRow) toDomain() domain.ClassificationRecord {
	return domain.ClassificationRecord{
		SkillID: r.SkillID,
		Source:  nullToString(r.Source),
		Title:   nullToString(r.Title),
		RunID:   r.RunID,
		Classification: domain.Classification{
			Primary:     domain.Category(r.Category),
			Subcategory: domain.Subcategory(nullToString(r.Subcategory)),
			Outcome:     domain.Outcome(r.Outcome),
			Rule:        nullToString(r.Rule),
		},
	}
}

const classificationColumns = `skill_id, source, title, run_id, category, subcategory, outcome, rule`

// classificationInsertArgs prepares arguments in classificationColumns order
func classificationInsertArgs(rec *domain.ClassificationRecord) []interface{} {
	return []interface{}{
		rec.SkillID,
		stringToNull(rec.Source),
		stringToNull(rec.Title),
		rec.RunID,
		string(rec.Classification.Primary),
		stringToNull(string(rec.Classification.Subcategory)),
		string(rec.Classification.Outcome),
		stringToNull(rec.Classification.Rule),
	}
}
