package classify

import (
	"regexp"
	"strings"
)

// splitPattern matches runs of characters that separate tokens
var splitPattern = regexp.MustCompile(`[^a-z0-9]+`)

// TokenSet is a set of lowercase alphanumeric tokens
type TokenSet map[string]struct{}

// Tokenize lowercases s and splits it into a token set
func Tokenize(s string) TokenSet {
	set := make(TokenSet)
	for _, w := range splitWords(s) {
		set[w] = struct{}{}
	}
	return set
}

func splitWords(s string) []string {
	parts := splitPattern.Split(strings.ToLower(s), -1)
	words := parts[:0]
	for _, p := range parts {
		if p != "" {
			words = append(words, p)
		}
	}
	return words
}

// Has reports whether the set contains token
func (t TokenSet) Has(token string) bool {
	_, ok := t[token]
	return ok
}

// Intersects reports whether the two sets share a token
func (t TokenSet) Intersects(other TokenSet) bool {
	small, large := t, other
	if len(small) > len(large) {
		small, large = large, small
	}
	for tok := range small {
		if large.Has(tok) {
			return true
		}
	}
	return false
}

// newSet builds a TokenSet from literal tokens
func newSet(tokens ...string) TokenSet {
	set := make(TokenSet, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	return set
}

// union returns a new set holding every token of the given sets
func union(sets ...TokenSet) TokenSet {
	out := make(TokenSet)
	for _, s := range sets {
		for tok := range s {
			out[tok] = struct{}{}
		}
	}
	return out
}

// without returns a copy of t minus the given tokens
func without(t TokenSet, tokens ...string) TokenSet {
	out := union(t)
	for _, tok := range tokens {
		delete(out, tok)
	}
	return out
}

// Features are the two normalized views of an entry the rules look at
type Features struct {
	Source string   // lowercased source repository, for repo-level hints
	Key    string   // "source/skill title", for phrase containment
	Tokens TokenSet // whole tokens of Key, for membership
}

// Extract normalizes the identifying strings of an entry.
// Empty inputs produce an empty key segment and contribute no tokens.
func Extract(source, skillID, title string) Features {
	source = strings.ToLower(source)
	key := source + "/" + strings.ToLower(skillID) + " " + strings.ToLower(title)
	return Features{
		Source: source,
		Key:    key,
		Tokens: Tokenize(key),
	}
}

// textFeatures normalizes free text (a description) for the fallback rules
func textFeatures(text string) Features {
	text = strings.ToLower(text)
	return Features{
		Key:    text,
		Tokens: Tokenize(text),
	}
}

// ContainsAny reports whether the key contains any of the phrases.
// Use only for multi-word, hyphenated or path-like phrases; short needles
// like "ui" would match inside unrelated words.
func (f Features) ContainsAny(phrases ...string) bool {
	for _, p := range phrases {
		if strings.Contains(f.Key, p) {
			return true
		}
	}
	return false
}
