package repository

import (
	"context"
	"fmt"
	"time"

	"flight-unifier-service/internal/domain/entity"
	"flight-unifier-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// runs stuck in PROCESSING longer than this are handed back to PENDING
const staleProcessingAfter = 5 * time.Minute

// MongoIngestionRunRepository implements the IngestionRunRepository interface
type MongoIngestionRunRepository struct {
	collection *mongo.Collection
}

// NewMongoIngestionRunRepository creates a new MongoDB ingestion run repository
func NewMongoIngestionRunRepository(db *mongo.Database) *MongoIngestionRunRepository {
	return &MongoIngestionRunRepository{
		collection: db.Collection("ingestion_runs"),
	}
}

var _ repository.IngestionRunRepository = (*MongoIngestionRunRepository)(nil)

// EnsureIndexes creates the batch id and status indexes
func (r *MongoIngestionRunRepository) EnsureIndexes(ctx context.Context) error {
	// Index on batchId for fast lookups and uniqueness
	batchIDIndex := mongo.IndexModel{
		Keys:    bson.M{"batchId": 1},
		Options: options.Index().SetUnique(true),
	}

	// Compound index for finding runs by status efficiently
	statusIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "processStatus", Value: 1},
			{Key: "processStartedAt", Value: 1},
		},
	}

	if _, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{batchIDIndex, statusIndex}); err != nil {
		return fmt.Errorf("create ingestion run indexes: %w", err)
	}
	return nil
}

// Create saves a new run
func (r *MongoIngestionRunRepository) Create(ctx context.Context, run *entity.IngestionRun) error {
	if run.ProcessStatus == "" {
		run.ProcessStatus = entity.StatusPending
	}

	_, err := r.collection.InsertOne(ctx, run)
	if err != nil {
		return fmt.Errorf("failed to create ingestion run: %w", err)
	}
	return nil
}

// FindByBatchID finds a run by its batch id
func (r *MongoIngestionRunRepository) FindByBatchID(ctx context.Context, batchID string) (*entity.IngestionRun, error) {
	var run entity.IngestionRun
	err := r.collection.FindOne(ctx, bson.M{"batchId": batchID}).Decode(&run)
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// UpdateStatus moves a run to status
func (r *MongoIngestionRunRepository) UpdateStatus(ctx context.Context, batchID, status string, startedAt time.Time) error {
	update := bson.M{
		"$set": bson.M{
			"processStatus": status,
		},
	}

	if !startedAt.IsZero() {
		update["$set"].(bson.M)["processStartedAt"] = startedAt
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"batchId": batchID}, update)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("no ingestion run found with batch id: %s", batchID)
	}

	return nil
}

// MarkAsProcessed records the outcome of a run
func (r *MongoIngestionRunRepository) MarkAsProcessed(ctx context.Context, batchID, status, errorDetail string, counts entity.RunCounts, skips []entity.SkipReason) error {
	update := bson.M{
		"$set": bson.M{
			"processedAt":   time.Now(),
			"processStatus": status,
			"counts":        counts,
		},
	}

	if len(skips) > 0 {
		update["$set"].(bson.M)["skipReasons"] = skips
	}

	if errorDetail != "" {
		update["$set"].(bson.M)["errorDetail"] = errorDetail
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"batchId": batchID}, update)
	if err != nil {
		return fmt.Errorf("failed to mark as processed: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("no ingestion run found with batch id: %s", batchID)
	}

	return nil
}

// ResetProcessingRuns resets runs stuck in PROCESSING state back to PENDING
func (r *MongoIngestionRunRepository) ResetProcessingRuns(ctx context.Context) error {
	staleTime := time.Now().Add(-staleProcessingAfter)

	filter := bson.M{
		"processStatus": entity.StatusProcessing,
		"$or": []bson.M{
			{"processStartedAt": bson.M{"$lt": staleTime}},
			{"processStartedAt": bson.M{"$exists": false}},
		},
	}

	update := bson.M{
		"$set": bson.M{
			"processStatus": entity.StatusPending,
			"errorDetail":   "Reset from stale PROCESSING state",
		},
	}

	if _, err := r.collection.UpdateMany(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to reset processing runs: %w", err)
	}
	return nil
}
