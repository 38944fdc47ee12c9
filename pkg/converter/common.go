package converter

import (
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"

	"flight-unifier-service/internal/domain/entity"
	"flight-unifier-service/pkg/flightid"
)

const (
	displayEconomyFa  = "اکونومی"
	displayBusinessFa = "بیزینس"
	displayFirstFa    = "فرست"
)

// builder holds what every provider mapping shares: identity generation,
// the scrape clock and record defaults.
type builder struct {
	provider entity.Provider
	gen      *flightid.Generator
	now      func() time.Time
}

func newBuilder(provider entity.Provider, gen *flightid.Generator, opts Options) builder {
	return builder{provider: provider, gen: gen, now: opts.clock()}
}

func (b builder) Provider() entity.Provider {
	return b.provider
}

// offer is the subset of a raw flight that feeds identity generation
type offer struct {
	Origin       string
	Destination  string
	Departure    string
	AirlineCode  string
	FlightNumber string
	BookingClass string
	// CabinClass is the unified cabin class, e.g. entity.CabinClassEconomy
	CabinClass   string
	IsCharter    bool
	AdultPrice   int64
}

type identity struct {
	BaseFlightID string
	FlightID     string
	FlightNumber string
	AirlineCode  string
}

// identify validates the identity fields of o and renders both ids
func (b builder) identify(o offer) (identity, error) {
	origin := strings.TrimSpace(o.Origin)
	dest := strings.TrimSpace(o.Destination)
	flight := strings.TrimSpace(o.FlightNumber)
	switch {
	case origin == "":
		return identity{}, errors.Wrap(ErrMissingField, "origin")
	case dest == "":
		return identity{}, errors.Wrap(ErrMissingField, "destination")
	case flight == "":
		return identity{}, errors.Wrap(ErrMissingField, "flight number")
	}

	airline := strings.ToUpper(strings.TrimSpace(o.AirlineCode))
	if airline == "" {
		airline = flightid.InferAirlineCode(flight)
	}
	cleaned := flightid.CleanFlightNumber(flight, airline)

	key := flightid.FlightKey{
		Origin:        origin,
		Destination:   dest,
		DepartureDate: o.Departure,
		AirlineCode:   airline,
		FlightNumber:  cleaned,
		DepartureTime: departureClock(o.Departure),
	}
	baseID, err := b.gen.BaseID(key)
	if err != nil {
		return identity{}, errors.Wrap(err, "base flight id")
	}
	fullID, err := b.gen.FullID(flightid.OfferKey{
		FlightKey:    key,
		BookingClass: o.BookingClass,
		CabinType:    o.CabinClass,
		IsCharter:    o.IsCharter,
		AdultPrice:   o.AdultPrice,
	})
	if err != nil {
		return identity{}, errors.Wrap(err, "flight id")
	}

	return identity{
		BaseFlightID: baseID,
		FlightID:     fullID,
		FlightNumber: cleaned,
		AirlineCode:  b.gen.Normalizer().AirlineCode(airline),
	}, nil
}

// record returns a unified flight with identity and every list field
// initialised, so empty collections marshal as [] rather than null.
func (b builder) record(id identity) entity.UnifiedFlight {
	return entity.UnifiedFlight{
		BaseFlightID:   id.BaseFlightID,
		FlightID:       id.FlightID,
		ProviderSource: b.provider,
		FlightNumber:   id.FlightNumber,
		Airline:        entity.Airline{Code: id.AirlineCode},
		Pricing:        entity.Pricing{Currency: entity.CurrencyIRR},
		Policies: entity.Policies{
			CancellationRules: []entity.CancellationRule{},
		},
		AdditionalInfo: entity.AdditionalInfo{
			SpecialOffers: []string{},
			Tags:          []string{},
		},
		Providers: []entity.ProviderOffer{},
		Metadata: entity.Metadata{
			ScrapedAt: b.now().UTC().Format(time.RFC3339),
		},
	}
}

// cabinClass maps any provider cabin label onto the unified cabin classes
func (b builder) cabinClass(label string) string {
	code := strings.ToUpper(strings.TrimSpace(label))
	if len(code) != 1 {
		code = b.gen.Normalizer().CabinCode(label)
	}
	switch code {
	case flightid.CabinBusiness:
		return entity.CabinClassBusiness
	case flightid.CabinFirst:
		return entity.CabinClassFirst
	case flightid.CabinPremiumEconomy:
		return entity.CabinClassPremiumEconomy
	}
	return entity.CabinClassEconomy
}

// cabinDisplayFa prefers the provider's own Persian label
func cabinDisplayFa(class string, label *string) string {
	if s := str(label); s != "" {
		return s
	}
	switch class {
	case entity.CabinClassBusiness:
		return displayBusinessFa
	case entity.CabinClassFirst:
		return displayFirstFa
	}
	return displayEconomyFa
}

func ticketType(charter bool) string {
	if charter {
		return entity.TicketTypeCharter
	}
	return entity.TicketTypeSystem
}

// departureClock pulls HH:MM out of "2025-12-15T14:30:00" or "2025-12-15 14:30".
func departureClock(datetime string) string {
	s := strings.TrimSpace(datetime)
	i := strings.IndexAny(s, "T ")
	if i < 0 {
		return ""
	}
	clock := s[i+1:]
	if len(clock) < 5 || clock[2] != ':' {
		return ""
	}
	return clock[:5]
}

var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

func parseDatetime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// minutesBetween is 0 when either side is unparseable or arrival precedes departure
func minutesBetween(departure, arrival string) int {
	dep, ok := parseDatetime(departure)
	if !ok {
		return 0
	}
	arr, ok := parseDatetime(arrival)
	if !ok || arr.Before(dep) {
		return 0
	}
	return int(arr.Sub(dep) / time.Minute)
}

// clockMinutes reads "HH:MM" or "HH:MM:SS" as a duration in minutes
func clockMinutes(s string) int {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 {
		return 0
	}
	h, hok := looseNumber(parts[0])
	m, mok := looseNumber(parts[1])
	if !hok || !mok {
		return 0
	}
	return int(h)*60 + int(m)
}

func clampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

func refundRule(period string, refund int) entity.CancellationRule {
	refund = clampPercent(refund)
	return entity.CancellationRule{
		TimePeriod:        period,
		RefundPercentage:  refund,
		PenaltyPercentage: 100 - refund,
	}
}

func penaltyRule(period string, penalty int) entity.CancellationRule {
	return refundRule(period, 100-clampPercent(penalty))
}

// refundRules reads a period -> refund percentage mapping in key order
func refundRules(table map[string]interface{}) []entity.CancellationRule {
	periods := make([]string, 0, len(table))
	for k := range table {
		periods = append(periods, k)
	}
	sort.Strings(periods)

	rules := make([]entity.CancellationRule, 0, len(periods))
	for _, period := range periods {
		pct := looseInt(table[period])
		if pct == nil {
			continue
		}
		rules = append(rules, refundRule(period, *pct))
	}
	return rules
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

// optional turns blank strings into nil
func optional(p *string) *string {
	if s := str(p); s != "" {
		return &s
	}
	return nil
}

func firstOptional(values ...*string) *string {
	for _, v := range values {
		if o := optional(v); o != nil {
			return o
		}
	}
	return nil
}

func optionalString(s string) *string {
	return optional(&s)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

func intPtr(i int) *int {
	return &i
}

func boolPtr(b bool) *bool {
	return &b
}
