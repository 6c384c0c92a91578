package codec

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"skillindex/internal/domain"
)

const sampleIndex = `{
  "updatedAt": "2025-03-01T00:00:00Z",
  "sourceUpdatedAt": "2025-02-28T23:00:00Z",
  "count": 3,
  "items": [
    {"id": "acme/tools/pdf", "source": "acme/tools", "skillId": "pdf", "title": "PDF", "installs": 12,
     "description": "data/skills-md/acme/tools/pdf/description_en.txt"},
    {"id": "acme/tools/x", "source": "acme/tools", "skillId": "x", "description": null},
    {"id": "", "source": "acme/tools", "skillId": "orphan"}
  ]
}`

func TestJSONParse(t *testing.T) {
	idx, err := NewJSONCodec().Parse(strings.NewReader(sampleIndex))
	require.NoError(t, err)

	assert.Equal(t, "2025-03-01T00:00:00Z", idx.UpdatedAt)
	assert.Equal(t, "2025-02-28T23:00:00Z", idx.SourceUpdatedAt)
	require.Len(t, idx.Items, 3)

	assert.Equal(t, domain.Entry{
		ID:          "acme/tools/pdf",
		Source:      "acme/tools",
		SkillID:     "pdf",
		Title:       "PDF",
		Description: "data/skills-md/acme/tools/pdf/description_en.txt",
	}, idx.Items[0])
	assert.Empty(t, idx.Items[1].Description, "null description is absent")
	assert.False(t, idx.Items[2].HasID())
}

func TestJSONParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", "nope"},
		{"items not a list", `{"items": {"a": 1}}`},
		{"truncated", `{"items": [`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewJSONCodec().Parse(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestJSONParseTrimsIDs(t *testing.T) {
	idx, err := NewJSONCodec().Parse(strings.NewReader(`{"items": [{"id": " acme/scan\n"}, {"id": "\t "}]}`))
	require.NoError(t, err)
	require.Len(t, idx.Items, 2)
	assert.Equal(t, "acme/scan", idx.Items[0].ID)
	assert.Empty(t, idx.Items[1].ID)
}

func TestJSONParseMissingItems(t *testing.T) {
	idx, err := NewJSONCodec().Parse(strings.NewReader(`{"updatedAt": "x"}`))
	require.NoError(t, err)
	assert.Empty(t, idx.Items)
}

func sampleCategoryIndex() *domain.CategoryIndex {
	idx := domain.NewCategoryIndex(&domain.SkillsIndex{UpdatedAt: "src"}, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))
	idx.Set("z/last", domain.Classification{Primary: domain.CategoryProductivity})
	idx.Set("a/first", domain.Classification{Primary: domain.CategorySecurity, Subcategory: domain.SubcategoryForensics})
	idx.Set("m/<html>", domain.Classification{Primary: domain.CategoryCreativeMedia})
	return idx
}

func TestJSONExport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONCodec().Export(sampleCategoryIndex(), &buf))

	out := buf.String()
	assert.True(t, strings.HasSuffix(out, "}\n"), "ends with a newline")
	assert.Contains(t, out, `"version": 3`)
	assert.Contains(t, out, `"m/<html>"`, "HTML is not escaped")
	assert.Contains(t, out, `"a/first": "forensics"`)

	// keys are sorted and top-level fields keep their declared order
	assert.Less(t, strings.Index(out, `"a/first"`), strings.Index(out, `"m/<html>"`))
	assert.Less(t, strings.Index(out, `"m/<html>"`), strings.Index(out, `"z/last"`))
	assert.Less(t, strings.Index(out, `"updatedAt"`), strings.Index(out, `"primaryCategories"`))
	assert.Less(t, strings.Index(out, `"skillToCategory"`), strings.Index(out, `"skillToSubcategory"`))

	// identical input serializes identically
	var again bytes.Buffer
	require.NoError(t, NewJSONCodec().Export(sampleCategoryIndex(), &again))
	assert.Equal(t, out, again.String())
}

func TestJSONExportMissingSourceTimestamps(t *testing.T) {
	idx := domain.NewCategoryIndex(&domain.SkillsIndex{}, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))

	var buf bytes.Buffer
	require.NoError(t, NewJSONCodec().Export(idx, &buf))

	out := buf.String()
	assert.Contains(t, out, `"sourceIndexUpdatedAt": null`)
	assert.Contains(t, out, `"sourceSkillsUpdatedAt": null`)
}

func TestYAMLExport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewYAMLCodec().Export(sampleCategoryIndex(), &buf))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, 3, decoded["version"])
	assert.Equal(t, "src", decoded["sourceIndexUpdatedAt"])
	cats, ok := decoded["skillToCategory"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "security", cats["a/first"])
	assert.Len(t, decoded["primaryCategories"], len(domain.PrimaryCategories))
}

func TestForFormat(t *testing.T) {
	for _, format := range []string{"", "json"} {
		exp, err := ForFormat(format)
		require.NoError(t, err)
		assert.Equal(t, "json", exp.Format())
	}
	for _, format := range []string{"yaml", "yml"} {
		exp, err := ForFormat(format)
		require.NoError(t, err)
		assert.Equal(t, "yaml", exp.Format())
	}

	_, err := ForFormat("csv")
	assert.Error(t, err)
}
