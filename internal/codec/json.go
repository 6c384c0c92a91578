package codec

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"skillindex/internal/domain"
)

// JSONCodec handles JSON import/export
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// jsonIndex mirrors the skills index file; unknown fields (installs, name, ...) are ignored
type jsonIndex struct {
	UpdatedAt       string      `json:"updatedAt"`
	SourceUpdatedAt string      `json:"sourceUpdatedAt"`
	Items           []jsonEntry `json:"items"`
}

type jsonEntry struct {
	ID          string  `json:"id"`
	Source      string  `json:"source"`
	SkillID     string  `json:"skillId"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

// Parse imports a skills index from JSON
func (c *JSONCodec) Parse(r io.Reader) (*domain.SkillsIndex, error) {
	var ji jsonIndex
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&ji); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	idx := &domain.SkillsIndex{
		UpdatedAt:       ji.UpdatedAt,
		SourceUpdatedAt: ji.SourceUpdatedAt,
		Items:           make([]domain.Entry, 0, len(ji.Items)),
	}

	for _, je := range ji.Items {
		entry := domain.Entry{
			ID:      strings.TrimSpace(je.ID),
			Source:  je.Source,
			SkillID: je.SkillID,
			Title:   je.Title,
		}
		if je.Description != nil {
			entry.Description = *je.Description
		}
		idx.Items = append(idx.Items, entry)
	}

	return idx, nil
}

// Export writes the category index as indented JSON.
// Map keys are emitted in sorted order so regenerated files diff cleanly.
func (c *JSONCodec) Export(idx *domain.CategoryIndex, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(idx); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
