package entity

import (
	"time"

	"gorm.io/gorm"
)

// AirlineAlias maps a provider-specific airline spelling to its canonical code
type AirlineAlias struct {
	ID        uint
	Alias     string
	Code      string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt
}
