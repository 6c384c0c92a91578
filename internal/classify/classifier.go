// Package classify assigns skills to the fixed category taxonomy.
//
// Classification is a three stage, first-match-wins evaluation:
//
//  1. the cascade: ordered keyword/phrase rules over the entry's source,
//     identifier and title
//  2. the fallback: a reduced rule set over a bounded description excerpt,
//     consulted only when the cascade found nothing
//  3. the default: DefaultCategory with no subcategory
//
// Rules are fixed at build time. Their order is part of the contract: an entry
// that satisfies several rules resolves to the earliest one.
//
// The Classifier holds no mutable state and is safe for concurrent use.
package classify

import (
	"skillindex/internal/description"
	"skillindex/internal/domain"
)

// Classifier classifies entries
type Classifier struct {
	descriptions description.Source
}

// New creates a classifier. A nil source disables the description fallback.
func New(src description.Source) *Classifier {
	if src == nil {
		src = description.None{}
	}
	return &Classifier{descriptions: src}
}

// Classify returns the classification for a single entry.
// It never fails: missing fields simply match nothing.
func (c *Classifier) Classify(e domain.Entry) domain.Classification {
	if cls, ok := firstMatch(cascade, Extract(e.Source, e.SkillID, e.Title)); ok {
		cls.Outcome = domain.OutcomeCascade
		return cls
	}

	if e.Description != "" {
		text, _ := c.descriptions.Description(e.Description)
		if cls, ok := classifyDescription(text); ok {
			cls.Outcome = domain.OutcomeFallback
			return cls
		}
	}

	return domain.DefaultClassification()
}

// ClassifyText classifies identifying strings plus literal description text,
// bypassing the description source.
func (c *Classifier) ClassifyText(source, skillID, title, text string) domain.Classification {
	if cls, ok := firstMatch(cascade, Extract(source, skillID, title)); ok {
		cls.Outcome = domain.OutcomeCascade
		return cls
	}
	if cls, ok := classifyDescription(description.Text(text, description.DefaultBudget)); ok {
		cls.Outcome = domain.OutcomeFallback
		return cls
	}
	return domain.DefaultClassification()
}

// Rules returns the cascade rule names in evaluation order
func Rules() []string {
	return ruleNames(cascade)
}

// FallbackRules returns the description rule names in evaluation order
func FallbackRules() []string {
	return ruleNames(fallbackRules)
}

func ruleNames(rules []rule) []string {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.name
	}
	return names
}
