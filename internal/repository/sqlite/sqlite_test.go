package sqlite

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillindex/internal/domain"
)

// ============================================================================
// Test Helpers
// ============================================================================

// newTestRepo creates an in-memory SQLite repository for testing
func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
	})
	return repo
}

func testRun(id string, finished time.Time) *domain.Run {
	return &domain.Run{
		ID:          id,
		StartedAt:   finished.Add(-time.Second),
		FinishedAt:  finished,
		Fingerprint: "abc123",
		IndexPath:   "data/skills_index.json",
		OutputPath:  "data/skills_category_index.json",
		Total:       2,
		Skipped:     1,
		Counts: map[domain.Category]int{
			domain.CategorySecurity:         1,
			domain.CategoryDevelopmentTools: 1,
		},
	}
}

func testRecords() []domain.ClassificationRecord {
	return []domain.ClassificationRecord{
		{
			SkillID: "acme/pentest-kit",
			Source:  "acme",
			Title:   "Pentest Kit",
			Classification: domain.Classification{
				Primary:     domain.CategorySecurity,
				Subcategory: domain.SubcategoryPentesting,
				Outcome:     domain.OutcomeCascade,
				Rule:        "security",
			},
		},
		{
			SkillID:        "acme/mystery",
			Source:         "acme",
			Title:          "Mystery",
			Classification: domain.DefaultClassification(),
		},
	}
}

// ============================================================================
// Helper Function Tests
// ============================================================================

func TestNullHelpers(t *testing.T) {
	assert.Equal(t, "", nullToString(sql.NullString{}))
	assert.Equal(t, "x", nullToString(sql.NullString{String: "x", Valid: true}))
	assert.False(t, stringToNull("").Valid)
	assert.Equal(t, sql.NullString{String: "y", Valid: true}, stringToNull("y"))
}

func TestTimeRoundTrip(t *testing.T) {
	in := time.Date(2026, 3, 4, 5, 6, 7, 890, time.FixedZone("x", 3600))
	out, err := parseTime(formatTime(in))
	require.NoError(t, err)
	assert.True(t, in.Equal(out))
	assert.Equal(t, time.UTC, out.Location())
}

func TestMarshalCounts(t *testing.T) {
	ns, err := marshalCounts(nil)
	require.NoError(t, err)
	assert.False(t, ns.Valid)

	ns, err = marshalCounts(map[domain.Category]int{domain.CategorySecurity: 2})
	require.NoError(t, err)
	assert.JSONEq(t, `{"security":2}`, ns.String)
}

// ============================================================================
// Repository Tests
// ============================================================================

func TestEmptyRepository(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	run, err := repo.LatestRun(ctx)
	require.NoError(t, err)
	assert.Nil(t, run)

	rec, err := repo.GetClassification(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, rec)

	list, err := repo.ListClassifications(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list)

	counts, err := repo.CategoryCounts(ctx)
	require.NoError(t, err)
	assert.Len(t, counts, len(domain.PrimaryCategories))
	for _, c := range domain.PrimaryCategories {
		assert.Zero(t, counts[c])
	}
}

func TestSaveRunAndLatest(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	finished := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	run := testRun("run-1", finished)
	require.NoError(t, repo.SaveRun(ctx, run, testRecords()))

	got, err := repo.LatestRun(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "run-1", got.ID)
	assert.True(t, got.FinishedAt.Equal(finished))
	assert.Equal(t, time.Second, got.Duration())
	assert.Equal(t, "abc123", got.Fingerprint)
	assert.Equal(t, run.IndexPath, got.IndexPath)
	assert.Equal(t, run.OutputPath, got.OutputPath)
	assert.Equal(t, 2, got.Total)
	assert.Equal(t, 1, got.Skipped)
	assert.Equal(t, run.Counts, got.Counts)
}

func TestSaveRunAssignsID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	run := testRun("", time.Now())
	require.NoError(t, repo.SaveRun(ctx, run, nil))
	assert.Len(t, run.ID, 36)

	got, err := repo.LatestRun(ctx)
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
}

func TestLatestRunOrdering(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.SaveRun(ctx, testRun("later", base.Add(time.Hour)), nil))
	require.NoError(t, repo.SaveRun(ctx, testRun("earlier", base), nil))

	got, err := repo.LatestRun(ctx)
	require.NoError(t, err)
	assert.Equal(t, "later", got.ID)
}

func TestDuplicateRunIDFails(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveRun(ctx, testRun("dup", time.Now()), testRecords()))
	err := repo.SaveRun(ctx, testRun("dup", time.Now()), nil)
	require.Error(t, err)

	// the failed transaction left the previous classifications alone
	list, err := repo.ListClassifications(ctx, "")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestClassificationQueries(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveRun(ctx, testRun("run-1", time.Now()), testRecords()))

	rec, err := repo.GetClassification(ctx, "acme/pentest-kit")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "run-1", rec.RunID)
	assert.Equal(t, "Pentest Kit", rec.Title)
	assert.Equal(t, domain.CategorySecurity, rec.Classification.Primary)
	assert.Equal(t, domain.SubcategoryPentesting, rec.Classification.Subcategory)
	assert.Equal(t, domain.OutcomeCascade, rec.Classification.Outcome)
	assert.Equal(t, "security", rec.Classification.Rule)

	rec, err = repo.GetClassification(ctx, "acme/mystery")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, domain.DefaultClassification(), rec.Classification)

	all, err := repo.ListClassifications(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "acme/mystery", all[0].SkillID)
	assert.Equal(t, "acme/pentest-kit", all[1].SkillID)

	sec, err := repo.ListClassifications(ctx, domain.CategorySecurity)
	require.NoError(t, err)
	require.Len(t, sec, 1)
	assert.Equal(t, "acme/pentest-kit", sec[0].SkillID)

	counts, err := repo.CategoryCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts[domain.CategorySecurity])
	assert.Equal(t, 1, counts[domain.CategoryDevelopmentTools])
	assert.Equal(t, 0, counts[domain.CategoryProductivity])
}

func TestSaveRunReplacesClassifications(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveRun(ctx, testRun("run-1", time.Now()), testRecords()))

	next := []domain.ClassificationRecord{{
		SkillID: "acme/notes",
		Classification: domain.Classification{
			Primary: domain.CategoryProductivity,
			Outcome: domain.OutcomeCascade,
			Rule:    "productivity",
		},
	}}
	require.NoError(t, repo.SaveRun(ctx, testRun("run-2", time.Now().Add(time.Minute)), next))

	old, err := repo.GetClassification(ctx, "acme/pentest-kit")
	require.NoError(t, err)
	assert.Nil(t, old)

	list, err := repo.ListClassifications(ctx, "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "run-2", list[0].RunID)
}
