package repository

import (
	"context"

	"flight-unifier-service/internal/domain/entity"
)

// UnifiedFlightRepository defines the interface for unified record storage
type UnifiedFlightRepository interface {
	// UpsertMany stores records keyed by (provider_source, flight_id) and
	// returns how many were written. Two providers selling the same offer
	// keep a record each.
	UpsertMany(ctx context.Context, records []entity.UnifiedFlight) (int, error)
	FindOffer(ctx context.Context, provider entity.Provider, flightID string) (*entity.UnifiedFlight, error)
	FindByBaseFlightID(ctx context.Context, baseFlightID string) ([]entity.UnifiedFlight, error)
}
