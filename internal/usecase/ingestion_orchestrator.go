package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"flight-unifier-service/internal/domain/entity"
	"flight-unifier-service/internal/domain/repository"
	"flight-unifier-service/pkg/converter"
	"flight-unifier-service/pkg/logger"
)

// Unifier is the part of UnificationService the orchestrator needs
type Unifier interface {
	Unify(ctx context.Context, provider string, payload map[string]interface{}) (*UnifyResult, error)
}

// IngestionOrchestrator processes raw batches from the fetch layer and
// tracks each one as an ingestion run.
type IngestionOrchestrator struct {
	runRepo repository.IngestionRunRepository
	unifier Unifier
	logger  logger.Logger
	now     func() time.Time
}

// NewIngestionOrchestrator creates a new ingestion orchestrator
func NewIngestionOrchestrator(
	runRepo repository.IngestionRunRepository,
	unifier Unifier,
	logger logger.Logger,
) *IngestionOrchestrator {
	return &IngestionOrchestrator{
		runRepo: runRepo,
		unifier: unifier,
		logger:  logger,
		now:     time.Now,
	}
}

// ProcessBatch unifies one raw batch. Conversion failures are recorded on the
// run and do not return an error; only run bookkeeping failures do, so the
// caller can redeliver the batch. A redelivered run still PENDING or
// PROCESSING is processed again; finished runs are ignored.
func (o *IngestionOrchestrator) ProcessBatch(ctx context.Context, batch *entity.RawBatch) error {
	if batch.BatchID == "" {
		return fmt.Errorf("batch without id from provider %q", batch.Provider)
	}

	run, err := o.runRepo.FindByBatchID(ctx, batch.BatchID)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		run = &entity.IngestionRun{
			BatchID:       batch.BatchID,
			Provider:      batch.Provider,
			SearchKey:     batch.SearchKey,
			ProcessStatus: entity.StatusPending,
		}
		if err := o.runRepo.Create(ctx, run); err != nil {
			return fmt.Errorf("failed to create run: %w", err)
		}
	case err != nil:
		return fmt.Errorf("failed to find run: %w", err)
	case isFinalStatus(run.ProcessStatus):
		o.logger.Debug("Batch already handled", "batchID", batch.BatchID, "status", run.ProcessStatus)
		return nil
	case run.ProcessStatus == entity.StatusProcessing:
		// The broker only redelivers after the previous attempt nacked or its
		// channel died, so that attempt is not running any more. Upserts make
		// the retry idempotent.
		o.logger.Warn("Resuming interrupted batch", "batchID", batch.BatchID)
	}

	if _, ok := entity.ParseProvider(batch.Provider); !ok {
		o.logger.Debug("No converter for batch",
			"provider", batch.Provider,
			"batchID", batch.BatchID)

		// Not an error, just not a provider we convert
		return o.runRepo.MarkAsProcessed(ctx, batch.BatchID, entity.StatusSkipped,
			"No converter registered for provider", entity.RunCounts{}, nil)
	}

	o.logger.Info("Processing batch",
		"batchID", batch.BatchID,
		"provider", batch.Provider,
		"searchKey", batch.SearchKey)

	if err := o.runRepo.UpdateStatus(ctx, batch.BatchID, entity.StatusProcessing, o.now()); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	res, err := o.unifier.Unify(ctx, batch.Provider, batch.Payload)
	if err != nil {
		o.logger.Error("Failed to unify batch",
			"batchID", batch.BatchID,
			"provider", batch.Provider,
			"error", err)

		status := entity.StatusFailed
		if errors.Is(err, converter.ErrUnknownProvider) {
			status = entity.StatusSkipped
		}
		if markErr := o.runRepo.MarkAsProcessed(ctx, batch.BatchID, status, err.Error(), entity.RunCounts{}, nil); markErr != nil {
			return o.releaseRun(ctx, batch.BatchID, markErr)
		}
		return nil
	}

	if err := o.runRepo.MarkAsProcessed(ctx, batch.BatchID, entity.StatusCompleted, "", res.Counts(), res.Skips); err != nil {
		return o.releaseRun(ctx, batch.BatchID, err)
	}

	o.logger.Info("Batch processed successfully",
		"batchID", batch.BatchID,
		"provider", batch.Provider,
		"stored", res.Stored)
	return nil
}

// releaseRun hands a run whose outcome could not be recorded back to PENDING
// and returns cause, so the caller redelivers the batch.
func (o *IngestionOrchestrator) releaseRun(ctx context.Context, batchID string, cause error) error {
	if err := o.runRepo.UpdateStatus(ctx, batchID, entity.StatusPending, time.Time{}); err != nil {
		o.logger.Error("Failed to release run", "batchID", batchID, "error", err)
	}
	return fmt.Errorf("failed to mark run: %w", cause)
}

func isFinalStatus(status string) bool {
	switch status {
	case entity.StatusCompleted, entity.StatusFailed, entity.StatusSkipped:
		return true
	}
	return false
}

// ResetStaleRuns hands runs stuck in PROCESSING back to PENDING so a
// redelivered batch can be picked up again.
func (o *IngestionOrchestrator) ResetStaleRuns(ctx context.Context) error {
	if err := o.runRepo.ResetProcessingRuns(ctx); err != nil {
		return fmt.Errorf("failed to reset stale runs: %w", err)
	}
	return nil
}
