package router

import (
	"sync"

	"flight-unifier-service/internal/domain/entity"
	"flight-unifier-service/internal/usecase"
	"flight-unifier-service/pkg/converter"
	"flight-unifier-service/pkg/logger"
)

// ProviderRouter routes raw batches to the converter registered for their provider
type ProviderRouter struct {
	mu         sync.RWMutex
	converters map[entity.Provider]converter.Converter
	order      []entity.Provider
	logger     logger.Logger
}

var _ usecase.ConverterRouter = (*ProviderRouter)(nil)

// NewProviderRouter creates a new provider router with convs registered
func NewProviderRouter(logger logger.Logger, convs ...converter.Converter) *ProviderRouter {
	r := &ProviderRouter{
		converters: make(map[entity.Provider]converter.Converter),
		order:      make([]entity.Provider, 0, len(convs)),
		logger:     logger,
	}
	for _, c := range convs {
		r.Register(c)
	}
	return r
}

// Register registers the converter for its provider
func (r *ProviderRouter) Register(c converter.Converter) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := c.Provider()
	if _, exists := r.converters[p]; !exists {
		r.order = append(r.order, p)
	}
	r.converters[p] = c
	r.logger.Info("Registered converter", "provider", p)
}

// GetConverter returns the converter for provider, or nil
func (r *ProviderRouter) GetConverter(provider entity.Provider) converter.Converter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.converters[provider]
}

// Providers lists registered providers in registration order
func (r *ProviderRouter) Providers() []entity.Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.Provider, len(r.order))
	copy(out, r.order)
	return out
}
