package converter

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"flight-unifier-service/internal/domain/entity"
)

const safarMarketCharter = "CHARTER"

// percentInText finds "30%" or "30 ٪" inside a free-text policy
var percentInText = regexp.MustCompile(`(\d{1,3})\s*[%٪]`)

type safarMarketFlight struct {
	FlightID        *string               `json:"flightId"`
	FlightClass     string                `json:"flightClass"`
	Capacity        int                   `json:"capacity"`
	Reservable      *bool                 `json:"reservable"`
	Promote         bool                  `json:"promote"`
	DiscountPercent *float64              `json:"discountPercent"`
	Tags            []string              `json:"tags"`
	Leave           safarMarketLeave      `json:"leave"`
	Providers       []safarMarketProvider `json:"providers"`
}

type safarMarketLeave struct {
	AirlineCode          string              `json:"airlineCode"`
	FlightNo             string              `json:"flightNo"`
	AirlineName          *string             `json:"airlineName"`
	AirlineNameFa        *string             `json:"airlineNameFa"`
	AirlineLogo          *string             `json:"airlineLogo"`
	DepartureTime        string              `json:"departureTime"`
	ArrivalTime          string              `json:"arrivalTime"`
	Duration             int                 `json:"duration"`
	StopsCount           int                 `json:"stopsCount"`
	SellType             string              `json:"sellType"`
	Charter              bool                `json:"charter"`
	Legs                 []safarMarketLeg    `json:"legs"`
	PriceTypes           safarMarketPrices   `json:"priceTypes"`
	CancellationPolicies []safarMarketPolicy `json:"cancellationPolicies"`
}

type safarMarketLeg struct {
	DepartureTime            string  `json:"departureTime"`
	DepartureAirportCode     string  `json:"departureAirportCode"`
	ArrivalAirportCode       string  `json:"arrivalAirportCode"`
	DepartureAirport         *string `json:"departureAirport"`
	ArrivalAirport           *string `json:"arrivalAirport"`
	DepartureCityName        *string `json:"departureCityName"`
	DepartureCityNamePersian *string `json:"departureCityNamePersian"`
	ArrivalCityName          *string `json:"arrivalCityName"`
	ArrivalCityNamePersian   *string `json:"arrivalCityNamePersian"`
	AirPlaneType             *string `json:"airPlaneType"`
	FlightType               string  `json:"flightType"`
	WaitDuration             *int    `json:"waitDuration"`
}

type safarMarketPrices struct {
	AdultPrice  int64 `json:"adultPrice"`
	ChildPrice  int64 `json:"childPrice"`
	InfantPrice int64 `json:"infantPrice"`
}

type safarMarketProvider struct {
	ID                           *string              `json:"id"`
	Title                        *string              `json:"title"`
	TitleEn                      *string              `json:"titleEn"`
	Price                        *int64               `json:"price"`
	OldPrice                     *int64               `json:"oldPrice"`
	Capacity                     *int                 `json:"capacity"`
	Logo                         *string              `json:"logo"`
	URL                          *string              `json:"url"`
	OutBoundBaggages             []safarMarketBaggage `json:"outBoundBaggages"`
	OutBoundCancellationPolicies []safarMarketPolicy  `json:"outBoundCancellationPolicies"`
}

type safarMarketBaggage struct {
	PassengerType string      `json:"passengerType"`
	WeightKg      interface{} `json:"weightKg"`
	Pieces        *int        `json:"pieces"`
}

type safarMarketPolicy struct {
	Policy      *string `json:"policy"`
	Description *string `json:"description"`
}

type safarMarketConverter struct {
	builder
}

func (c *safarMarketConverter) Flights(payload map[string]interface{}) ([]interface{}, error) {
	return envelope(payload, "result", "flights")
}

// Convert yields one record priced at the cheapest seller; every seller is
// kept in the providers list.
func (c *safarMarketConverter) Convert(raw interface{}) ([]entity.UnifiedFlight, error) {
	var f safarMarketFlight
	if err := decode(raw, &f); err != nil {
		return nil, errors.Wrap(err, "safarmarket")
	}
	leave := f.Leave
	var leg safarMarketLeg
	if len(leave.Legs) > 0 {
		leg = leave.Legs[0]
	}
	best := cheapestSeller(f.Providers)

	adultTotal := leave.PriceTypes.AdultPrice
	offerPrice := adultTotal
	if best != nil && best.Price != nil && *best.Price > 0 {
		offerPrice = *best.Price
		if adultTotal == 0 {
			adultTotal = offerPrice
		}
	}

	charter := leave.Charter || strings.EqualFold(leave.SellType, safarMarketCharter)
	class := c.cabinClass(f.FlightClass)
	departure := firstNonEmpty(leg.DepartureTime, leave.DepartureTime)

	var bookingClass string
	if ft := strings.ToUpper(strings.TrimSpace(leg.FlightType)); ft != "" && ft[0] >= 'A' && ft[0] <= 'Z' {
		bookingClass = ft[:1]
	}

	id, err := c.identify(offer{
		Origin:       leg.DepartureAirportCode,
		Destination:  leg.ArrivalAirportCode,
		Departure:    departure,
		AirlineCode:  leave.AirlineCode,
		FlightNumber: leave.FlightNo,
		BookingClass: bookingClass,
		CabinClass:   class,
		IsCharter:    charter,
		AdultPrice:   offerPrice,
	})
	if err != nil {
		return nil, errors.Wrap(err, "safarmarket")
	}

	rec := c.record(id)
	rec.OriginalID = optional(f.FlightID)
	rec.Airline.NameEn = optional(leave.AirlineName)
	rec.Airline.NameFa = optional(leave.AirlineNameFa)
	rec.Airline.LogoURL = optional(leave.AirlineLogo)
	rec.Aircraft.Type = optional(leg.AirPlaneType)

	rec.Route.Origin = entity.Endpoint{
		AirportCode:   leg.DepartureAirportCode,
		AirportNameEn: optional(leg.DepartureAirport),
		CityCode:      leg.DepartureAirportCode,
		CityNameEn:    optional(leg.DepartureCityName),
		CityNameFa:    optional(leg.DepartureCityNamePersian),
	}
	rec.Route.Destination = entity.Endpoint{
		AirportCode:   leg.ArrivalAirportCode,
		AirportNameEn: optional(leg.ArrivalAirport),
		CityCode:      leg.ArrivalAirportCode,
		CityNameEn:    optional(leg.ArrivalCityName),
		CityNameFa:    optional(leg.ArrivalCityNamePersian),
	}

	rec.Schedule = entity.Schedule{
		DepartureDatetime:     firstNonEmpty(leave.DepartureTime, departure),
		ArrivalDatetime:       leave.ArrivalTime,
		DurationMinutes:       leave.Duration,
		Stops:                 leave.StopsCount,
		ConnectionTimeMinutes: leg.WaitDuration,
	}
	if rec.Schedule.DurationMinutes == 0 {
		rec.Schedule.DurationMinutes = minutesBetween(rec.Schedule.DepartureDatetime, leave.ArrivalTime)
	}

	rec.Pricing.Adult = entity.Fare{BaseFare: adultTotal, TotalFare: adultTotal}
	rec.Pricing.Child = entity.Fare{BaseFare: leave.PriceTypes.ChildPrice, TotalFare: leave.PriceTypes.ChildPrice}
	rec.Pricing.Infant = entity.Fare{BaseFare: leave.PriceTypes.InfantPrice, TotalFare: leave.PriceTypes.InfantPrice}

	rec.Cabin = entity.Cabin{
		Class:              class,
		ClassDisplayNameFa: cabinDisplayFa(class, nil),
	}

	capacity := f.Capacity
	if capacity == 0 && best != nil && best.Capacity != nil {
		capacity = *best.Capacity
	}
	reservable := true
	if f.Reservable != nil {
		reservable = *f.Reservable
	}
	rec.TicketInfo = entity.TicketInfo{
		Type:         ticketType(charter),
		IsCharter:    charter,
		IsRefundable: true,
		IsDomestic:   true,
		Capacity:     capacity,
		Reservable:   reservable,
	}

	policies := leave.CancellationPolicies
	if best != nil {
		rec.Baggage.Checked = safarMarketBaggageAllowance(best.OutBoundBaggages)
		if len(policies) == 0 {
			policies = best.OutBoundCancellationPolicies
		}
	}
	rec.Policies.CancellationRules, rec.Policies.Terms = safarMarketPolicies(policies)

	rec.AdditionalInfo.Promoted = f.Promote
	rec.AdditionalInfo.DiscountPercent = f.DiscountPercent
	if f.Tags != nil {
		rec.AdditionalInfo.Tags = f.Tags
	}

	for _, p := range f.Providers {
		rec.Providers = append(rec.Providers, entity.ProviderOffer{
			ProviderID:     optional(p.ID),
			ProviderName:   optional(p.Title),
			ProviderNameEn: optional(p.TitleEn),
			Price:          p.Price,
			OldPrice:       p.OldPrice,
			Capacity:       p.Capacity,
			LogoURL:        optional(p.Logo),
			BookingURL:     optional(p.URL),
		})
	}

	rec.Metadata.OriginalID = optional(f.FlightID)
	return []entity.UnifiedFlight{rec}, nil
}

// cheapestSeller picks the lowest priced seller; unpriced sellers lose to priced ones
func cheapestSeller(providers []safarMarketProvider) *safarMarketProvider {
	var best *safarMarketProvider
	bestPrice := int64(math.MaxInt64)
	for i := range providers {
		price := int64(math.MaxInt64)
		if providers[i].Price != nil {
			price = *providers[i].Price
		}
		if best == nil || price < bestPrice {
			best = &providers[i]
			bestPrice = price
		}
	}
	return best
}

func safarMarketBaggageAllowance(baggages []safarMarketBaggage) entity.CheckedBaggage {
	var out entity.CheckedBaggage
	for _, b := range baggages {
		switch strings.ToUpper(b.PassengerType) {
		case "ADULT":
			out.AdultKg = positiveInt(b.WeightKg)
			out.Pieces = b.Pieces
		case "CHILD":
			out.ChildKg = positiveInt(b.WeightKg)
		case "INFANT":
			out.InfantKg = positiveInt(b.WeightKg)
		}
	}
	return out
}

// safarMarketPolicies turns text policies into rules where a penalty
// percentage can be read, and collects the remaining text as terms.
func safarMarketPolicies(policies []safarMarketPolicy) ([]entity.CancellationRule, *string) {
	rules := []entity.CancellationRule{}
	var terms []string
	for _, p := range policies {
		text := firstNonEmpty(str(p.Description), str(p.Policy))
		if text == "" {
			continue
		}
		m := percentInText.FindStringSubmatch(latinDigits(text))
		if m == nil {
			terms = append(terms, text)
			continue
		}
		penalty, err := strconv.Atoi(m[1])
		if err != nil {
			terms = append(terms, text)
			continue
		}
		rules = append(rules, penaltyRule(firstNonEmpty(str(p.Policy), text), penalty))
	}
	if len(terms) == 0 {
		return rules, nil
	}
	return rules, optionalString(strings.Join(terms, "\n"))
}

// latinDigits rewrites Persian and Arabic-Indic digits as ASCII
func latinDigits(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= '۰' && r <= '۹':
			return '0' + (r - '۰')
		case r >= '٠' && r <= '٩':
			return '0' + (r - '٠')
		}
		return r
	}, s)
}
