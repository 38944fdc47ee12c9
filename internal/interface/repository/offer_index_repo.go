package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"flight-unifier-service/internal/domain/entity"
	"flight-unifier-service/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

const offerKeyPrefix = "offers:"

// RedisOfferIndex keeps one hash per base_flight_id, field provider:flight_id,
// value the JSON offer summary. Every write refreshes the key TTL so stale
// searches age out.
type RedisOfferIndex struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisOfferIndex creates an offer index over rdb
func NewRedisOfferIndex(rdb *redis.Client, ttl time.Duration) *RedisOfferIndex {
	return &RedisOfferIndex{rdb: rdb, ttl: ttl}
}

var (
	_ repository.OfferIndex = (*RedisOfferIndex)(nil)
	_ repository.OfferIndex = NoopOfferIndex{}
)

func offerKey(baseFlightID string) string {
	return offerKeyPrefix + baseFlightID
}

// offerField is unique per seller; flight_id alone repeats across providers
func offerField(s entity.OfferSummary) string {
	return s.Provider.String() + ":" + s.FlightID
}

// Index writes the offers of records, grouped by physical flight, in one pipeline
func (r *RedisOfferIndex) Index(ctx context.Context, records []entity.UnifiedFlight) error {
	if len(records) == 0 {
		return nil
	}

	grouped := make(map[string][]interface{})
	for i := range records {
		summary := records[i].Summary()
		payload, err := json.Marshal(summary)
		if err != nil {
			return fmt.Errorf("encode offer %s: %w", summary.FlightID, err)
		}
		key := offerKey(summary.BaseFlightID)
		grouped[key] = append(grouped[key], offerField(summary), payload)
	}

	_, err := r.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for key, fields := range grouped {
			pipe.HSet(ctx, key, fields...)
			if r.ttl > 0 {
				pipe.Expire(ctx, key, r.ttl)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("index offers: %w", err)
	}
	return nil
}

// Offers returns the indexed offers of a physical flight, cheapest first
func (r *RedisOfferIndex) Offers(ctx context.Context, baseFlightID string) ([]entity.OfferSummary, error) {
	values, err := r.rdb.HGetAll(ctx, offerKey(baseFlightID)).Result()
	if err != nil {
		return nil, fmt.Errorf("read offers: %w", err)
	}

	offers := make([]entity.OfferSummary, 0, len(values))
	for field, raw := range values {
		var o entity.OfferSummary
		if err := json.Unmarshal([]byte(raw), &o); err != nil {
			return nil, fmt.Errorf("decode offer %s: %w", field, err)
		}
		offers = append(offers, o)
	}
	SortOffers(offers)
	return offers, nil
}

// SortOffers orders by adult fare, then flight id and provider for a stable listing
func SortOffers(offers []entity.OfferSummary) {
	sort.Slice(offers, func(i, j int) bool {
		if offers[i].AdultTotalFare != offers[j].AdultTotalFare {
			return offers[i].AdultTotalFare < offers[j].AdultTotalFare
		}
		if offers[i].FlightID != offers[j].FlightID {
			return offers[i].FlightID < offers[j].FlightID
		}
		return offers[i].Provider < offers[j].Provider
	})
}

// NoopOfferIndex is used when Redis is not configured
type NoopOfferIndex struct{}

func (NoopOfferIndex) Index(context.Context, []entity.UnifiedFlight) error {
	return nil
}

func (NoopOfferIndex) Offers(context.Context, string) ([]entity.OfferSummary, error) {
	return []entity.OfferSummary{}, nil
}
