package repository

import (
	"context"

	"skillindex/internal/domain"
)

// Repository persists index runs and the classifications they produced.
// Lookups of missing rows return nil, nil.
type Repository interface {
	// SaveRun stores the run and replaces the current classification set
	SaveRun(ctx context.Context, run *domain.Run, records []domain.ClassificationRecord) error
	LatestRun(ctx context.Context) (*domain.Run, error)

	GetClassification(ctx context.Context, skillID string) (*domain.ClassificationRecord, error)
	// ListClassifications filters by primary category; empty returns all
	ListClassifications(ctx context.Context, category domain.Category) ([]domain.ClassificationRecord, error)
	CategoryCounts(ctx context.Context) (map[domain.Category]int, error)

	// Close releases resources
	Close() error
}
