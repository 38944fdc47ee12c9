package repository

import (
	"context"
	"fmt"
	"time"

	"flight-unifier-service/internal/domain/entity"
	"flight-unifier-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormAirlineRepository implements the AirlineRepository interface
type GormAirlineRepository struct {
	db *gorm.DB
}

// NewGormAirlineRepository creates a new GORM airline repository
func NewGormAirlineRepository(db *gorm.DB) repository.AirlineRepository {
	return &GormAirlineRepository{
		db: db,
	}
}

// AirlineAliases GORM model for database mapping
type AirlineAliases struct {
	ID        uint           `gorm:"primaryKey"`
	Alias     string         `gorm:"column:alias;unique"`
	Code      string         `gorm:"column:code;index"`
	Name      string         `gorm:"column:name"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the default table name
func (AirlineAliases) TableName() string {
	return "m_airline_aliases"
}

// ListAliases returns every live alias row
func (r *GormAirlineRepository) ListAliases(ctx context.Context) ([]entity.AirlineAlias, error) {
	var rows []AirlineAliases
	result := r.db.WithContext(ctx).Order("alias").Find(&rows)
	if result.Error != nil {
		return nil, fmt.Errorf("list airline aliases: %w", result.Error)
	}

	// Convert GORM models to domain entities
	aliases := make([]entity.AirlineAlias, 0, len(rows))
	for _, row := range rows {
		aliases = append(aliases, entity.AirlineAlias{
			ID:        row.ID,
			Alias:     row.Alias,
			Code:      row.Code,
			Name:      row.Name,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
			DeletedAt: row.DeletedAt,
		})
	}
	return aliases, nil
}

// AliasTable flattens alias rows into the alias -> code map the normalizer takes
func AliasTable(aliases []entity.AirlineAlias) map[string]string {
	table := make(map[string]string, len(aliases))
	for _, a := range aliases {
		table[a.Alias] = a.Code
	}
	return table
}
