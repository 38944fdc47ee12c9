package converter

import (
	"time"

	"github.com/pkg/errors"

	"flight-unifier-service/internal/domain/entity"
	"flight-unifier-service/pkg/flightid"
)

var (
	// ErrMissingField marks a flight lacking a field its identity depends on
	ErrMissingField = errors.New("missing required field")
	// ErrUnknownProvider is returned for provider names outside the supported set
	ErrUnknownProvider = errors.New("unknown provider")
)

// Converter turns one provider's raw response into unified records.
// Implementations hold no mutable state and are safe for concurrent use.
type Converter interface {
	Provider() entity.Provider
	// Flights extracts the raw flight list from a provider response envelope
	Flights(payload map[string]interface{}) ([]interface{}, error)
	// Convert maps one raw flight to zero or more unified records
	Convert(raw interface{}) ([]entity.UnifiedFlight, error)
}

// Options tunes converter construction
type Options struct {
	// Now stamps metadata.scraped_at; defaults to time.Now
	Now func() time.Time
}

func (o Options) clock() func() time.Time {
	if o.Now != nil {
		return o.Now
	}
	return time.Now
}

// New returns the converter registered for provider
func New(provider entity.Provider, gen *flightid.Generator, opts Options) (Converter, error) {
	b := newBuilder(provider, gen, opts)
	switch provider {
	case entity.ProviderAlibaba:
		return &alibabaConverter{builder: b}, nil
	case entity.ProviderMrBilit:
		return &mrbilitConverter{builder: b}, nil
	case entity.ProviderSafarMarket:
		return &safarMarketConverter{builder: b}, nil
	case entity.ProviderSafar366:
		return &safar366Converter{builder: b}, nil
	case entity.ProviderFlyToday:
		return &flyTodayConverter{builder: b}, nil
	case entity.ProviderPateh:
		return &patehConverter{builder: b}, nil
	}
	return nil, errors.Wrapf(ErrUnknownProvider, "provider %q", provider)
}

// NewAll returns one converter per supported provider, in entity.Providers order
func NewAll(gen *flightid.Generator, opts Options) []Converter {
	convs := make([]Converter, 0, len(entity.Providers))
	for _, p := range entity.Providers {
		c, err := New(p, gen, opts)
		if err != nil {
			continue
		}
		convs = append(convs, c)
	}
	return convs
}
