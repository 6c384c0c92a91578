package domain

import "time"

// Run records one rebuild of the category index
type Run struct {
	ID          string           `json:"id"`
	StartedAt   time.Time        `json:"startedAt"`
	FinishedAt  time.Time        `json:"finishedAt"`
	Fingerprint string           `json:"fingerprint"` // hex blake2b-256 of the skills index bytes
	IndexPath   string           `json:"indexPath"`
	OutputPath  string           `json:"outputPath"`
	Total       int              `json:"total"`   // entries classified
	Skipped     int              `json:"skipped"` // entries without an ID
	Counts      map[Category]int `json:"counts"`
}

// Duration reports how long the run took
func (r *Run) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// ClassificationRecord is a stored classification of one catalog entry
type ClassificationRecord struct {
	SkillID        string         `json:"skillId"` // the entry's full ID
	Source         string         `json:"source"`
	Title          string         `json:"title"`
	RunID          string         `json:"runId"`
	Classification Classification `json:"classification"`
}

// NewClassificationRecord pairs an entry with its classification
func NewClassificationRecord(runID string, e Entry, c Classification) ClassificationRecord {
	return ClassificationRecord{
		SkillID:        e.ID,
		Source:         e.Source,
		Title:          e.Title,
		RunID:          runID,
		Classification: c,
	}
}
