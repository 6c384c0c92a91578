package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"skillindex/internal/domain"
)

// Repository implements repository.Repository using SQLite
type Repository struct {
	db *sql.DB
}

// New creates a new SQLite repository
func New(dbPath string) (*Repository, error) {
	dsn := dbPath
	if dbPath != ":memory:" {
		dsn += "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// one connection keeps :memory: databases shared and serializes writers
	db.SetMaxOpenConns(1)

	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at TEXT NOT NULL,
		finished_at TEXT NOT NULL,
		fingerprint TEXT NOT NULL,
		index_path TEXT,
		output_path TEXT,
		total INTEGER NOT NULL DEFAULT 0,
		skipped INTEGER NOT NULL DEFAULT 0,
		counts JSON
	);

	CREATE TABLE IF NOT EXISTS classifications (
		skill_id TEXT PRIMARY KEY,
		source TEXT,
		title TEXT,
		run_id TEXT NOT NULL,
		category TEXT NOT NULL,
		subcategory TEXT,
		outcome TEXT NOT NULL,
		rule TEXT,
		FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_runs_finished ON runs(finished_at);
	CREATE INDEX IF NOT EXISTS idx_classifications_category ON classifications(category);
	`

	_, err := r.db.Exec(schema)
	return err
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}

// SaveRun stores the run and replaces the current classifications in one
// transaction. A run without an ID gets a fresh UUID.
func (r *Repository) SaveRun(ctx context.Context, run *domain.Run, records []domain.ClassificationRecord) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	args, err := runInsertArgs(run)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (`+runColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, args...); err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM classifications`); err != nil {
		return fmt.Errorf("failed to clear classifications: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO classifications (`+classificationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(skill_id) DO UPDATE SET
			source = excluded.source,
			title = excluded.title,
			run_id = excluded.run_id,
			category = excluded.category,
			subcategory = excluded.subcategory,
			outcome = excluded.outcome,
			rule = excluded.rule
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i := range records {
		rec := records[i]
		rec.RunID = run.ID
		if _, err := stmt.ExecContext(ctx, classificationInsertArgs(&rec)...); err != nil {
			return fmt.Errorf("failed to insert classification %s: %w", rec.SkillID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// LatestRun returns the most recently finished run
func (r *Repository) LatestRun(ctx context.Context) (*domain.Run, error) {
	var row runRow
	err := r.db.QueryRowContext(ctx, `
		SELECT `+runColumns+` FROM runs
		ORDER BY finished_at DESC, rowid DESC
		LIMIT 1
	`).Scan(row.scanArgs()...)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest run: %w", err)
	}
	return row.toDomain()
}

// GetClassification retrieves the current classification of one skill
func (r *Repository) GetClassification(ctx context.Context, skillID string) (*domain.ClassificationRecord, error) {
	var row classificationRow
	err := r.db.QueryRowContext(ctx, `
		SELECT `+classificationColumns+` FROM classifications WHERE skill_id = ?
	`, skillID).Scan(row.scanArgs()...)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query classification: %w", err)
	}
	rec := row.toDomain()
	return &rec, nil
}

// ListClassifications returns current classifications ordered by skill ID
func (r *Repository) ListClassifications(ctx context.Context, category domain.Category) ([]domain.ClassificationRecord, error) {
	query := `SELECT ` + classificationColumns + ` FROM classifications`
	var args []interface{}
	if category != "" {
		query += ` WHERE category = ?`
		args = append(args, string(category))
	}
	query += ` ORDER BY skill_id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query classifications: %w", err)
	}
	defer rows.Close()

	records := []domain.ClassificationRecord{}
	for rows.Next() {
		var row classificationRow
		if err := rows.Scan(row.scanArgs()...); err != nil {
			return nil, fmt.Errorf("failed to scan classification: %w", err)
		}
		records = append(records, row.toDomain())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating classifications: %w", err)
	}
	return records, nil
}

// CategoryCounts counts current classifications per primary category.
// Every category of the taxonomy is present, zero when unused.
func (r *Repository) CategoryCounts(ctx context.Context) (map[domain.Category]int, error) {
	counts := make(map[domain.Category]int, len(domain.PrimaryCategories))
	for _, c := range domain.PrimaryCategories {
		counts[c] = 0
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT category, COUNT(*) FROM classifications GROUP BY category
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count classifications: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			category string
			n        int
		)
		if err := rows.Scan(&category, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[domain.Category(category)] = n
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating counts: %w", err)
	}
	return counts, nil
}
