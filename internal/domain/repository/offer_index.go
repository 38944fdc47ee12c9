package repository

import (
	"context"

	"flight-unifier-service/internal/domain/entity"
)

// OfferIndex groups the offers of one physical flight across providers
type OfferIndex interface {
	Index(ctx context.Context, records []entity.UnifiedFlight) error
	// Offers returns the indexed offers for baseFlightID, cheapest first
	Offers(ctx context.Context, baseFlightID string) ([]entity.OfferSummary, error)
}
