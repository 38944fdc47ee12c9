package usecase

import (
	"flight-unifier-service/internal/domain/entity"
	"flight-unifier-service/pkg/converter"
)

// ConverterRouter routes raw batches to the converter of their provider
type ConverterRouter interface {
	// Register registers the converter for its provider, replacing any previous one
	Register(c converter.Converter)

	// GetConverter returns the converter for provider, or nil
	GetConverter(provider entity.Provider) converter.Converter

	// Providers lists registered providers in registration order
	Providers() []entity.Provider
}
