package domain

import "time"

// CategoryIndexVersion is the schema version of the output document
const CategoryIndexVersion = 3

// TimestampFormat renders UTC timestamps with a trailing Z
const TimestampFormat = "2006-01-02T15:04:05.000000Z"

// SkillsIndex is the input document listing catalog entries
type SkillsIndex struct {
	UpdatedAt       string  `json:"updatedAt,omitempty"`
	SourceUpdatedAt string  `json:"sourceUpdatedAt,omitempty"`
	Items           []Entry `json:"items"`
}

// SkillsUpdatedAt returns the crawl timestamp, falling back to the index timestamp
func (s *SkillsIndex) SkillsUpdatedAt() string {
	if s.SourceUpdatedAt != "" {
		return s.SourceUpdatedAt
	}
	return s.UpdatedAt
}

// CategoryIndex is the output document consumed by the website
type CategoryIndex struct {
	UpdatedAt             string                 `json:"updatedAt" yaml:"updatedAt"`
	SourceIndexUpdatedAt  *string                `json:"sourceIndexUpdatedAt" yaml:"sourceIndexUpdatedAt"`   // null when the input has none
	SourceSkillsUpdatedAt *string                `json:"sourceSkillsUpdatedAt" yaml:"sourceSkillsUpdatedAt"` // null when the input has none
	Version               int                    `json:"version" yaml:"version"`
	PrimaryCategories     []Category             `json:"primaryCategories" yaml:"primaryCategories"`
	SkillToCategory       map[string]Category    `json:"skillToCategory" yaml:"skillToCategory"`
	SkillToSubcategory    map[string]Subcategory `json:"skillToSubcategory" yaml:"skillToSubcategory"`
}

// NewCategoryIndex creates an empty output document for the given input index
func NewCategoryIndex(src *SkillsIndex, now time.Time) *CategoryIndex {
	idx := &CategoryIndex{
		UpdatedAt:          now.UTC().Format(TimestampFormat),
		Version:            CategoryIndexVersion,
		PrimaryCategories:  append([]Category(nil), PrimaryCategories...),
		SkillToCategory:    make(map[string]Category),
		SkillToSubcategory: make(map[string]Subcategory),
	}
	if src != nil {
		idx.SourceIndexUpdatedAt = optional(src.UpdatedAt)
		idx.SourceSkillsUpdatedAt = optional(src.SkillsUpdatedAt())
	}
	return idx
}

// Set records a classification for a skill ID.
// The primary is normalized into the taxonomy; the subcategory map stays sparse.
func (idx *CategoryIndex) Set(id string, c Classification) {
	c = c.Normalized()
	idx.SkillToCategory[id] = c.Primary
	if c.HasSubcategory() {
		idx.SkillToSubcategory[id] = c.Subcategory
	} else {
		delete(idx.SkillToSubcategory, id)
	}
}

// Counts returns the number of skills per primary category.
// Every taxonomy label is present, including zero counts.
func (idx *CategoryIndex) Counts() map[Category]int {
	counts := make(map[Category]int, len(PrimaryCategories))
	for _, c := range PrimaryCategories {
		counts[c] = 0
	}
	for _, c := range idx.SkillToCategory {
		counts[c]++
	}
	return counts
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
