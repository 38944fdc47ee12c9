package repository

import (
	"context"
	"time"

	"flight-unifier-service/internal/domain/entity"
)

// IngestionRunRepository defines the interface for ingestion run tracking
type IngestionRunRepository interface {
	Create(ctx context.Context, run *entity.IngestionRun) error
	FindByBatchID(ctx context.Context, batchID string) (*entity.IngestionRun, error)
	UpdateStatus(ctx context.Context, batchID, status string, startedAt time.Time) error
	MarkAsProcessed(ctx context.Context, batchID, status, errorDetail string, counts entity.RunCounts, skips []entity.SkipReason) error
	ResetProcessingRuns(ctx context.Context) error
}
