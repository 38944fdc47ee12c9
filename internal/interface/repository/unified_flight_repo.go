package repository

import (
	"context"
	"fmt"

	"flight-unifier-service/internal/domain/entity"
	"flight-unifier-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const unifiedFlightsCollection = "unified_flights"

// MongoUnifiedFlightRepository implements UnifiedFlightRepository
type MongoUnifiedFlightRepository struct {
	collection *mongo.Collection
}

// NewMongoUnifiedFlightRepository creates a new unified flight repository
func NewMongoUnifiedFlightRepository(db *mongo.Database) *MongoUnifiedFlightRepository {
	return &MongoUnifiedFlightRepository{
		collection: db.Collection(unifiedFlightsCollection),
	}
}

var _ repository.UnifiedFlightRepository = (*MongoUnifiedFlightRepository)(nil)

// EnsureIndexes creates the unique offer key index and the lookup indexes
func (r *MongoUnifiedFlightRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "provider_source", Value: 1},
				{Key: "flight_id", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.M{"flight_id": 1},
		},
		{
			Keys: bson.M{"base_flight_id": 1},
		},
		{
			Keys: bson.D{
				{Key: "route.origin.airport_code", Value: 1},
				{Key: "route.destination.airport_code", Value: 1},
				{Key: "schedule.departure_datetime", Value: 1},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create unified flight indexes: %w", err)
	}
	return nil
}

// offerFilter selects one provider's record of an offer; flight_id alone is
// shared by every provider selling the same offer.
func offerFilter(provider entity.Provider, flightID string) bson.D {
	return bson.D{
		{Key: "provider_source", Value: provider},
		{Key: "flight_id", Value: flightID},
	}
}

// UpsertMany replaces each record by (provider_source, flight_id), inserting new ones
func (r *MongoUnifiedFlightRepository) UpsertMany(ctx context.Context, records []entity.UnifiedFlight) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	// one write per offer key; two upserts of the same new key in one
	// unordered bulk would race on the unique index
	last := make(map[string]int, len(records))
	for i := range records {
		last[string(records[i].ProviderSource)+":"+records[i].FlightID] = i
	}

	models := make([]mongo.WriteModel, 0, len(last))
	for i := range records {
		if last[string(records[i].ProviderSource)+":"+records[i].FlightID] != i {
			continue
		}
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(offerFilter(records[i].ProviderSource, records[i].FlightID)).
			SetReplacement(records[i]).
			SetUpsert(true))
	}

	result, err := r.collection.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return 0, fmt.Errorf("failed to upsert unified flights: %w", err)
	}
	return int(result.MatchedCount + result.UpsertedCount), nil
}

// FindOffer finds one provider's record of an offer
func (r *MongoUnifiedFlightRepository) FindOffer(ctx context.Context, provider entity.Provider, flightID string) (*entity.UnifiedFlight, error) {
	var record entity.UnifiedFlight
	err := r.collection.FindOne(ctx, offerFilter(provider, flightID)).Decode(&record)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// FindByBaseFlightID returns every stored offer of one physical flight, cheapest first
func (r *MongoUnifiedFlightRepository) FindByBaseFlightID(ctx context.Context, baseFlightID string) ([]entity.UnifiedFlight, error) {
	opts := options.Find().SetSort(bson.D{{Key: "pricing.adult.total_fare", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"base_flight_id": baseFlightID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find offers: %w", err)
	}
	defer cursor.Close(ctx)

	records := []entity.UnifiedFlight{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode offers: %w", err)
	}
	return records, nil
}
