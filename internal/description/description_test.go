package description

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel string, data []byte) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, data, 0644))
}

func TestLoaderDescription(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "data/skills-md/acme/tools/scan/description_en.txt", []byte("Run a PENTEST against staging"))

	l := NewLoader(root, 0)
	assert.Equal(t, DefaultBudget, l.budget)

	tests := []struct {
		name   string
		ref    string
		want   string
		wantOK bool
	}{
		{"relative reference", "data/skills-md/acme/tools/scan/description_en.txt", "run a pentest against staging", true},
		{"leading slash is ignored", "/data/skills-md/acme/tools/scan/description_en.txt", "run a pentest against staging", true},
		{"surrounding whitespace is ignored", "  data/skills-md/acme/tools/scan/description_en.txt \n", "run a pentest against staging", true},
		{"empty reference", "", "", false},
		{"missing file", "data/skills-md/acme/tools/nope/description_en.txt", "", false},
		{"escaping the root", "../../etc/passwd", "", false},
		{"directory", "data/skills-md", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := l.Description(tt.ref)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoaderBudget(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "long.txt", []byte(strings.Repeat("ab", 5000)))
	writeFile(t, root, "multibyte.txt", []byte(strings.Repeat("é", 100)))

	l := NewLoader(root, 10)

	got, ok := l.Description("long.txt")
	require.True(t, ok)
	assert.Equal(t, "ababababab", got)

	got, ok = l.Description("multibyte.txt")
	require.True(t, ok)
	assert.Equal(t, strings.Repeat("é", 10), got)
}

func TestLoaderDecoding(t *testing.T) {
	root := t.TempDir()

	// UTF-8 BOM is stripped
	writeFile(t, root, "bom8.txt", append([]byte{0xEF, 0xBB, 0xBF}, []byte("Security Audit")...))
	// UTF-16LE with BOM is decoded
	writeFile(t, root, "bom16.txt", []byte{0xFF, 0xFE, 'P', 0, 'D', 0, 'F', 0})
	// invalid bytes are dropped, not fatal
	writeFile(t, root, "invalid.txt", []byte{'f', 'o', 0xFF, 'r', 'e', 'n', 's', 'i', 'c', 's'})

	l := NewLoader(root, 0)

	got, ok := l.Description("bom8.txt")
	require.True(t, ok)
	assert.Equal(t, "security audit", got)

	got, ok = l.Description("bom16.txt")
	require.True(t, ok)
	assert.Equal(t, "pdf", got)

	got, ok = l.Description("invalid.txt")
	require.True(t, ok)
	assert.Equal(t, "forensics", got)
}

func TestText(t *testing.T) {
	assert.Equal(t, "hello", Text("HELLO", 0))
	assert.Equal(t, "hel", Text("HELLO", 3))
	assert.Equal(t, "", Text("", 3))
}

func TestMapAndNone(t *testing.T) {
	m := Map{"ref": "Use JIRA for tickets"}

	got, ok := m.Description("ref")
	assert.True(t, ok)
	assert.Equal(t, "use jira for tickets", got)

	_, ok = m.Description("other")
	assert.False(t, ok)

	_, ok = None{}.Description("ref")
	assert.False(t, ok)
}
