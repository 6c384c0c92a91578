// Package description reads bounded excerpts of skill description files.
//
// Descriptions are only consulted when the identifying strings of an entry
// match no rule. Reads are capped at a small rune budget, and any failure to
// resolve or read a file yields "no text" instead of an error.
package description

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultBudget is the number of runes kept from a description
const DefaultBudget = 2000

// Source resolves a description reference to lowercase text.
// The boolean is false when nothing could be read.
type Source interface {
	Description(ref string) (string, bool)
}

// Loader reads description files relative to a data root
type Loader struct {
	root   string
	budget int
}

// NewLoader creates a loader rooted at root. A non-positive budget uses DefaultBudget.
func NewLoader(root string, budget int) *Loader {
	if budget <= 0 {
		budget = DefaultBudget
	}
	return &Loader{root: root, budget: budget}
}

// Description reads at most budget runes of the referenced file.
// References are repo-relative; leading slashes are ignored and paths that
// would leave the root are refused.
func (l *Loader) Description(ref string) (string, bool) {
	path, ok := l.resolve(ref)
	if !ok {
		return "", false
	}

	f, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()

	return decode(io.LimitReader(f, int64(l.budget*utf8.UTFMax)), l.budget)
}

func (l *Loader) resolve(ref string) (string, bool) {
	ref = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(ref), "/"))
	if ref == "" {
		return "", false
	}

	rel := filepath.FromSlash(ref)
	if !filepath.IsLocal(rel) {
		return "", false
	}
	return filepath.Join(l.root, rel), true
}

// decode converts raw bytes to lowercase text, honoring a UTF-16 BOM and
// dropping anything that is not valid UTF-8.
func decode(r io.Reader, budget int) (string, bool) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	data, err := io.ReadAll(transform.NewReader(r, dec))
	if err != nil {
		return "", false
	}

	data = bytes.ReplaceAll(data, []byte(string(utf8.RuneError)), nil)
	return Text(string(data), budget), true
}

// Text truncates s to budget runes and lowercases it
func Text(s string, budget int) string {
	if budget <= 0 {
		budget = DefaultBudget
	}
	if utf8.RuneCountInString(s) > budget {
		n := 0
		for i := range s {
			if n == budget {
				s = s[:i]
				break
			}
			n++
		}
	}
	return strings.ToLower(s)
}

// Map is an in-memory Source keyed by reference
type Map map[string]string

// Description returns the bounded, lowercased text stored under ref
func (m Map) Description(ref string) (string, bool) {
	text, ok := m[ref]
	if !ok {
		return "", false
	}
	return Text(text, DefaultBudget), true
}

// None is a Source that never yields text
type None struct{}

// Description always reports no text
func (None) Description(string) (string, bool) {
	return "", false
}
