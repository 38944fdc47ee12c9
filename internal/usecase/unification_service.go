package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"flight-unifier-service/internal/domain/entity"
	"flight-unifier-service/internal/domain/repository"
	"flight-unifier-service/pkg/converter"
	"flight-unifier-service/pkg/logger"
	"flight-unifier-service/pkg/metrics"
)

// ErrDuplicateProvider is returned when two names in one request resolve to
// the same provider.
var ErrDuplicateProvider = errors.New("duplicate provider")

// UnifyResult is the outcome of unifying one provider response.
// Flights holds only records that passed the validity filter.
type UnifyResult struct {
	Provider   entity.Provider        `json:"provider"`
	RawFlights int                    `json:"raw_flights"`
	Flights    []entity.UnifiedFlight `json:"flights"`
	Skipped    int                    `json:"skipped"`
	Dropped    int                    `json:"dropped"`
	Stored     int                    `json:"stored"`
	Skips      []entity.SkipReason    `json:"skip_reasons"`
	// Error is set when this provider's records could not be stored
	Error string `json:"error,omitempty"`
}

// Counts returns the run counters for r
func (r *UnifyResult) Counts() entity.RunCounts {
	return entity.RunCounts{
		RawFlights: r.RawFlights,
		Converted:  len(r.Flights) + r.Dropped,
		Skipped:    r.Skipped,
		Dropped:    r.Dropped,
		Stored:     r.Stored,
	}
}

// UnificationService converts provider responses, filters them, stores the
// valid records and indexes their offers.
type UnificationService struct {
	router     ConverterRouter
	flightRepo repository.UnifiedFlightRepository
	offerIndex repository.OfferIndex
	metrics    *metrics.Metrics
	logger     logger.Logger
}

// NewUnificationService creates a new unification service
func NewUnificationService(
	router ConverterRouter,
	flightRepo repository.UnifiedFlightRepository,
	offerIndex repository.OfferIndex,
	metrics *metrics.Metrics,
	logger logger.Logger,
) *UnificationService {
	return &UnificationService{
		router:     router,
		flightRepo: flightRepo,
		offerIndex: offerIndex,
		metrics:    metrics,
		logger:     logger,
	}
}

// Unify converts one provider response and persists the valid records.
// An unknown provider returns an error wrapping converter.ErrUnknownProvider.
func (s *UnificationService) Unify(ctx context.Context, provider string, payload map[string]interface{}) (*UnifyResult, error) {
	c, err := s.converterFor(provider)
	if err != nil {
		return nil, err
	}
	res, err := s.unify(ctx, c, payload)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// UnifyAll unifies one response per provider concurrently. Results follow
// the registered provider order, not the map order. A provider whose records
// cannot be stored gets a result with Error set; the others are unaffected.
// Names are matched case-insensitively, so "Alibaba" and "alibaba" in one
// request is rejected with ErrDuplicateProvider.
func (s *UnificationService) UnifyAll(ctx context.Context, payloads map[string]map[string]interface{}) ([]*UnifyResult, error) {
	type job struct {
		name    string
		conv    converter.Converter
		payload map[string]interface{}
	}

	byProvider := make(map[entity.Provider]job, len(payloads))
	for name, payload := range payloads {
		c, err := s.converterFor(name)
		if err != nil {
			return nil, err
		}
		if prev, ok := byProvider[c.Provider()]; ok {
			return nil, fmt.Errorf("%w: %q and %q", ErrDuplicateProvider, prev.name, name)
		}
		byProvider[c.Provider()] = job{name: name, conv: c, payload: payload}
	}

	jobs := make([]job, 0, len(byProvider))
	for _, p := range s.router.Providers() {
		if j, ok := byProvider[p]; ok {
			jobs = append(jobs, j)
		}
	}

	results := make([]*UnifyResult, len(jobs))
	var g errgroup.Group
	for i, j := range jobs {
		i, j := i, j
		g.Go(func() error {
			res, err := s.unify(ctx, j.conv, j.payload)
			if err != nil {
				s.logger.Error("Failed to unify provider batch", "provider", j.conv.Provider(), "error", err)
				res.Flights = []entity.UnifiedFlight{}
				res.Error = "failed to store flights"
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()
	return results, nil
}

// Offers lists the offers of one physical flight, cheapest first. Falls back
// to stored records when the offer index has nothing for it.
func (s *UnificationService) Offers(ctx context.Context, baseFlightID string) ([]entity.OfferSummary, error) {
	offers, err := s.offerIndex.Offers(ctx, baseFlightID)
	if err != nil {
		s.logger.Warn("Offer index lookup failed, reading stored records", "baseFlightID", baseFlightID, "error", err)
		s.metrics.ErrorsCount.WithLabelValues("offer_lookup").Inc()
	} else if len(offers) > 0 {
		return offers, nil
	}

	records, err := s.flightRepo.FindByBaseFlightID(ctx, baseFlightID)
	if err != nil {
		return nil, fmt.Errorf("failed to find flights: %w", err)
	}

	offers = make([]entity.OfferSummary, 0, len(records))
	for i := range records {
		if converter.IsValid(&records[i]) {
			offers = append(offers, records[i].Summary())
		}
	}
	return offers, nil
}

func (s *UnificationService) converterFor(provider string) (converter.Converter, error) {
	p, ok := entity.ParseProvider(provider)
	if !ok {
		return nil, fmt.Errorf("%w: %q", converter.ErrUnknownProvider, provider)
	}
	c := s.router.GetConverter(p)
	if c == nil {
		return nil, fmt.Errorf("%w: %q", converter.ErrUnknownProvider, provider)
	}
	return c, nil
}

// unify returns the conversion counts alongside a storage error so batch
// callers can still report them.
func (s *UnificationService) unify(ctx context.Context, c converter.Converter, payload map[string]interface{}) (*UnifyResult, error) {
	provider := c.Provider().String()
	start := time.Now()
	defer func() {
		s.metrics.ProcessingTime.WithLabelValues(provider).Observe(time.Since(start).Seconds())
	}()

	batch := converter.ConvertBatch(c, payload)
	valid, dropped := converter.FilterValid(batch.Records)

	for _, skip := range batch.Skips {
		s.logger.Warn("Skipped raw flight",
			"provider", provider,
			"index", skip.Index,
			"reason", skip.Reason)
	}

	res := &UnifyResult{
		Provider:   c.Provider(),
		RawFlights: batch.RawCount,
		Flights:    valid,
		Skipped:    len(batch.Skips),
		Dropped:    dropped,
		Skips:      batch.Skips,
	}

	s.metrics.FlightsConverted.WithLabelValues(provider).Add(float64(len(batch.Records)))
	s.metrics.FlightsSkipped.WithLabelValues(provider).Add(float64(res.Skipped))
	s.metrics.FlightsDropped.WithLabelValues(provider).Add(float64(dropped))

	stored, err := s.flightRepo.UpsertMany(ctx, valid)
	if err != nil {
		s.metrics.ErrorsCount.WithLabelValues("store").Inc()
		s.metrics.BatchesProcessed.WithLabelValues(provider, "failed").Inc()
		return res, fmt.Errorf("failed to store %s flights: %w", provider, err)
	}
	res.Stored = stored
	s.metrics.FlightsStored.WithLabelValues(provider).Add(float64(stored))

	// The index only speeds up offer lookups; stored records stay authoritative.
	if err := s.offerIndex.Index(ctx, valid); err != nil {
		s.logger.Warn("Failed to index offers", "provider", provider, "error", err)
		s.metrics.ErrorsCount.WithLabelValues("offer_index").Inc()
	}

	s.metrics.BatchesProcessed.WithLabelValues(provider, "ok").Inc()
	s.logger.Info("Provider batch unified",
		"provider", provider,
		"raw", res.RawFlights,
		"kept", len(valid),
		"skipped", res.Skipped,
		"dropped", dropped,
		"stored", stored)
	return res, nil
}
