package domain

import "strings"

// Entry represents one catalog item to classify
type Entry struct {
	ID          string `json:"id"`                    // globally unique, e.g. "owner/repo/skill"
	Source      string `json:"source"`                // source repository, e.g. "owner/repo"
	SkillID     string `json:"skillId"`               // identifier within the source
	Title       string `json:"title,omitempty"`       // human title, optional
	Description string `json:"description,omitempty"` // repo-relative description file, optional
}

// HasID reports whether the entry carries a usable identifier.
// Entries without one are skipped before classification.
func (e Entry) HasID() bool {
	return strings.TrimSpace(e.ID) != ""
}

// Outcome identifies which stage produced a classification
type Outcome string

const (
	OutcomeCascade  Outcome = "cascade"  // identifying strings matched a rule
	OutcomeFallback Outcome = "fallback" // description text matched a rule
	OutcomeDefault  Outcome = "default"  // nothing matched
)

// Classification is the engine output for a single entry
type Classification struct {
	Primary     Category    `json:"primary"`
	Subcategory Subcategory `json:"subcategory,omitempty"`
	Outcome     Outcome     `json:"outcome"`
	Rule        string      `json:"rule,omitempty"` // name of the matching rule, empty for default
}

// DefaultClassification returns the classification used when nothing matched
func DefaultClassification() Classification {
	return Classification{
		Primary: DefaultCategory,
		Outcome: OutcomeDefault,
	}
}

// HasSubcategory reports whether a rule derived a subcategory
func (c Classification) HasSubcategory() bool {
	return c.Subcategory != SubcategoryNone
}

// Normalized returns a copy whose primary category is guaranteed to be in the taxonomy.
// An out-of-taxonomy primary also drops its subcategory, which only has meaning under it.
func (c Classification) Normalized() Classification {
	if c.Primary.IsValid() {
		return c
	}
	return Classification{
		Primary: DefaultCategory,
		Outcome: c.Outcome,
		Rule:    c.Rule,
	}
}
