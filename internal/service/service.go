package service

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/sync/errgroup"

	"skillindex/internal/classify"
	"skillindex/internal/codec"
	"skillindex/internal/domain"
	"skillindex/internal/repository"
)

var (
	// ErrEmptyIndex is returned when the skills index has no items
	ErrEmptyIndex = errors.New("skills index has no items")
	// ErrNotFound is returned when a record, or the repository itself, is missing
	ErrNotFound = errors.New("not found")
)

// Result pairs an input entry with its normalized classification
type Result struct {
	Entry          domain.Entry
	Classification domain.Classification
}

// SyncOptions controls one end-to-end rebuild
type SyncOptions struct {
	IndexPath  string
	OutputPath string
	Format     string // output format for OutputPath: json (default) or yaml
	YAMLPath   string // optional YAML copy of the output
	Workers    int    // 0 = GOMAXPROCS
	Force      bool   // rebuild even when the input is unchanged
	AllowEmpty bool   // accept an index with zero items
}

// SyncResult describes the outcome of a sync
type SyncResult struct {
	Run       *domain.Run
	Index     *domain.CategoryIndex // nil when unchanged
	Unchanged bool
}

// IndexService builds the category index and answers classification queries
type IndexService struct {
	classifier *classify.Classifier
	repo       repository.Repository
	eventBus   *EventBus
	logger     *slog.Logger
	now        func() time.Time

	syncMu sync.Mutex

	mu   sync.RWMutex
	last *domain.Run // latest run, kept for setups without a repository
}

// NewIndexService creates a new index service. repo and bus may be nil.
func NewIndexService(cls *classify.Classifier, repo repository.Repository, bus *EventBus, logger *slog.Logger) *IndexService {
	if cls == nil {
		cls = classify.New(nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &IndexService{
		classifier: cls,
		repo:       repo,
		eventBus:   bus,
		logger:     logger,
		now:        time.Now,
	}
}

// Classify returns the normalized classification of an entry. Nothing is stored.
func (s *IndexService) Classify(e domain.Entry) domain.Classification {
	return s.classifier.Classify(e).Normalized()
}

// ClassifyText classifies identifying strings plus literal description text
func (s *IndexService) ClassifyText(source, skillID, title, text string) domain.Classification {
	return s.classifier.ClassifyText(source, skillID, title, text).Normalized()
}

// Build classifies every entry of idx that has an ID. Results come back in
// input order; a later duplicate ID overwrites an earlier one in the index.
func (s *IndexService) Build(ctx context.Context, idx *domain.SkillsIndex, workers int) (*domain.CategoryIndex, []Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	start := time.Now()

	entries := make([]domain.Entry, 0, len(idx.Items))
	for _, e := range idx.Items {
		// IDs become output keys; surrounding whitespace is not part of them
		e.ID = strings.TrimSpace(e.ID)
		if !e.HasID() {
			continue
		}
		entries = append(entries, e)
	}
	if skipped := len(idx.Items) - len(entries); skipped > 0 {
		entriesSkipped.Add(float64(skipped))
		s.logger.Debug("skipped entries without id", "count", skipped)
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range entries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = Result{
				Entry:          entries[i],
				Classification: s.Classify(entries[i]),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("classify entries: %w", err)
	}

	out := domain.NewCategoryIndex(idx, s.now())
	for _, r := range results {
		out.Set(r.Entry.ID, r.Classification)
		classificationsTotal.WithLabelValues(string(r.Classification.Outcome), string(r.Classification.Primary)).Inc()
	}

	buildDuration.Observe(time.Since(start).Seconds())
	return out, results, nil
}

// Sync reads the skills index, rebuilds the category index when the input
// changed, writes it out and records the run. Concurrent calls are serialized.
func (s *IndexService) Sync(ctx context.Context, opts SyncOptions) (*SyncResult, error) {
	s.syncMu.Lock()
	defer s.syncMu.Unlock()

	res, err := s.sync(ctx, opts)
	if err != nil {
		syncTotal.WithLabelValues("failed").Inc()
		s.logger.Error("index sync failed", "index", opts.IndexPath, "error", err)
		s.eventBus.Publish(Event{
			Type:    EventIndexFailed,
			Payload: map[string]string{"index": opts.IndexPath, "error": err.Error()},
		})
		return nil, err
	}

	if res.Unchanged {
		syncTotal.WithLabelValues("unchanged").Inc()
		s.logger.Info("skills index unchanged", "index", opts.IndexPath, "run", res.Run.ID)
		s.eventBus.Publish(Event{
			Type:    EventIndexUnchanged,
			Payload: map[string]string{"run_id": res.Run.ID, "fingerprint": res.Run.Fingerprint},
		})
		return res, nil
	}

	syncTotal.WithLabelValues("built").Inc()
	s.logger.Info("category index built",
		"run", res.Run.ID,
		"skills", res.Run.Total,
		"skipped", res.Run.Skipped,
		"output", res.Run.OutputPath,
		"duration", res.Run.Duration(),
	)
	s.eventBus.Publish(Event{Type: EventIndexBuilt, Payload: res.Run})
	return res, nil
}

func (s *IndexService) sync(ctx context.Context, opts SyncOptions) (*SyncResult, error) {
	started := s.now()

	exporter, err := codec.ForFormat(opts.Format)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(opts.IndexPath)
	if err != nil {
		return nil, fmt.Errorf("read skills index: %w", err)
	}
	fingerprint := Fingerprint(data)

	idx, err := codec.NewJSONCodec().Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse skills index: %w", err)
	}
	if len(idx.Items) == 0 && !opts.AllowEmpty {
		return nil, fmt.Errorf("%w: %s", ErrEmptyIndex, opts.IndexPath)
	}

	if !opts.Force {
		last, err := s.latestRun(ctx)
		if err != nil {
			return nil, err
		}
		if last != nil && last.Fingerprint == fingerprint &&
			last.OutputPath == opts.OutputPath && fileExists(opts.OutputPath) {
			return &SyncResult{Run: last, Unchanged: true}, nil
		}
	}

	out, results, err := s.Build(ctx, idx, opts.Workers)
	if err != nil {
		return nil, err
	}

	if err := writeAtomic(opts.OutputPath, exporter, out); err != nil {
		return nil, err
	}
	if opts.YAMLPath != "" {
		if err := writeAtomic(opts.YAMLPath, codec.NewYAMLCodec(), out); err != nil {
			return nil, err
		}
	}

	run := &domain.Run{
		ID:          uuid.NewString(),
		StartedAt:   started,
		FinishedAt:  s.now(),
		Fingerprint: fingerprint,
		IndexPath:   opts.IndexPath,
		OutputPath:  opts.OutputPath,
		Total:       len(results),
		Skipped:     len(idx.Items) - len(results),
		Counts:      out.Counts(),
	}

	if s.repo != nil {
		records := make([]domain.ClassificationRecord, 0, len(results))
		for _, r := range results {
			records = append(records, domain.NewClassificationRecord(run.ID, r.Entry, r.Classification))
		}
		if err := s.repo.SaveRun(ctx, run, records); err != nil {
			return nil, fmt.Errorf("record run: %w", err)
		}
	}

	s.mu.Lock()
	s.last = run
	s.mu.Unlock()

	return &SyncResult{Run: run, Index: out}, nil
}

// latestRun prefers the repository and falls back to the in-memory record
func (s *IndexService) latestRun(ctx context.Context) (*domain.Run, error) {
	if s.repo != nil {
		run, err := s.repo.LatestRun(ctx)
		if err != nil {
			return nil, fmt.Errorf("load latest run: %w", err)
		}
		return run, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last, nil
}

// LatestRun returns the most recent run
func (s *IndexService) LatestRun(ctx context.Context) (*domain.Run, error) {
	run, err := s.latestRun(ctx)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, fmt.Errorf("run: %w", ErrNotFound)
	}
	return run, nil
}

// GetClassification returns the stored classification of one skill
func (s *IndexService) GetClassification(ctx context.Context, id string) (*domain.ClassificationRecord, error) {
	if s.repo == nil {
		return nil, fmt.Errorf("classification store: %w", ErrNotFound)
	}
	rec, err := s.repo.GetClassification(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("classification %s: %w", id, ErrNotFound)
	}
	return rec, nil
}

// ListClassifications returns stored classifications, optionally filtered by category
func (s *IndexService) ListClassifications(ctx context.Context, category domain.Category) ([]domain.ClassificationRecord, error) {
	if s.repo == nil {
		return nil, fmt.Errorf("classification store: %w", ErrNotFound)
	}
	return s.repo.ListClassifications(ctx, category)
}

// CategoryCounts returns stored classification counts per primary category
func (s *IndexService) CategoryCounts(ctx context.Context) (map[domain.Category]int, error) {
	if s.repo == nil {
		return nil, fmt.Errorf("classification store: %w", ErrNotFound)
	}
	return s.repo.CategoryCounts(ctx)
}

// Fingerprint returns the hex blake2b-256 digest of the skills index bytes
func Fingerprint(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// writeAtomic exports idx to a temp file next to path and renames it into place
func writeAtomic(path string, exp codec.Exporter, idx *domain.CategoryIndex) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if err := exp.Export(idx, tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("export %s: %w", exp.Format(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("chmod output: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename output: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
