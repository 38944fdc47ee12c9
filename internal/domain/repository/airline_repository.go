package repository

import (
	"context"

	"flight-unifier-service/internal/domain/entity"
)

// AirlineRepository defines the interface for airline alias lookups
type AirlineRepository interface {
	ListAliases(ctx context.Context) ([]entity.AirlineAlias, error)
}
