package converter

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"flight-unifier-service/internal/domain/entity"
)

const (
	mrbilitInfantKg     = 10
	mrbilitBookingClass = "Y"
)

type mrbilitFlight struct {
	ID       *string          `json:"Id"`
	Segments []mrbilitSegment `json:"Segments"`
	Prices   []mrbilitPrice   `json:"Prices"`
}

type mrbilitSegment struct {
	Legs []mrbilitLeg `json:"Legs"`
}

type mrbilitLeg struct {
	DepartureTime        string       `json:"DepartureTime"`
	ArrivalTime          string       `json:"ArrivalTime"`
	AirlineCode          string       `json:"AirlineCode"`
	FlightNumber         string       `json:"FlightNumber"`
	OriginCode           string       `json:"OriginCode"`
	DestinationCode      string       `json:"DestinationCode"`
	Airline              mrbilitTitle `json:"Airline"`
	OperatingAirlineCode *string      `json:"OperatingAirlineCode"`
	OperatingAirline     mrbilitTitle `json:"OperatingAirline"`
	AirCraft             mrbilitTitle `json:"AirCraft"`
	OriginAirport        *string      `json:"OriginAirport"`
	DestinationAirport   *string      `json:"DestinationAirport"`
	Origin               *string      `json:"Origin"`
	Destination          *string      `json:"Destination"`
	DepartureTerminal    *string      `json:"DepartureTerminal"`
	ArrivalTerminal      *string      `json:"ArrivalTerminal"`
	DepartureWeekDay     string       `json:"DepartureWeekDay"`
	DepartureDateString  string       `json:"DepartureDateString"`
	JourneyTime          string       `json:"JourneyTime"`
	Stops                int          `json:"Stops"`
}

type mrbilitTitle struct {
	EnglishTitle *string `json:"EnglishTitle"`
	PersianTitle *string `json:"PersianTitle"`
	Logo         *string `json:"Logo"`
	Iatacode     *string `json:"Iatacode"`
}

type mrbilitPrice struct {
	BookingClass             string         `json:"BookingClass"`
	CabinClass               string         `json:"CabinClass"`
	CabinClassDisplayName    *string        `json:"CabinClassDisplayName"`
	IsCharter                bool           `json:"IsCharter"`
	IsRefundable             *bool          `json:"IsRefundable"`
	Capacity                 int            `json:"Capacity"`
	Baggage                  interface{}    `json:"Baggage"`
	FareRules                *string        `json:"FareRules"`
	ExtraTerms               *string        `json:"ExtraTerms"`
	ProposalID               *string        `json:"ProposalId"`
	PassengerFares           []mrbilitFare  `json:"PassengerFares"`
	CancellationTernEntities []mrbilitTerm  `json:"CancellationTernEntities"`
	FlightSpecialOffers      []mrbilitOffer `json:"FlightSpecialOffers"`
}

type mrbilitFare struct {
	PaxType    string `json:"PaxType"`
	TotalFare  int64  `json:"TotalFare"`
	TotalPrice int64  `json:"TotalPrice"`
	BaseFare   int64  `json:"BaseFare"`
	Tax        *int64 `json:"Tax"`
}

type mrbilitTerm struct {
	FromTime *string `json:"FromTime"`
	ToTime   *string `json:"ToTime"`
	Percent  int     `json:"Percent"`
}

type mrbilitOffer struct {
	Title string `json:"Title"`
}

// passenger type spellings seen in PassengerFares
var mrbilitPaxTypes = map[string]string{
	"ADL":    "adult",
	"ADT":    "adult",
	"ADULT":  "adult",
	"CHD":    "child",
	"CHILD":  "child",
	"INF":    "infant",
	"INFANT": "infant",
}

type mrbilitConverter struct {
	builder
}

func (c *mrbilitConverter) Flights(payload map[string]interface{}) ([]interface{}, error) {
	return envelope(payload, "Flights")
}

// Convert yields one record per distinct offer in Prices. Tiers that differ
// only in fields outside the flight id (capacity, refundability, terms) are
// the same sellable offer; the first one listed wins.
func (c *mrbilitConverter) Convert(raw interface{}) ([]entity.UnifiedFlight, error) {
	var f mrbilitFlight
	if err := decode(raw, &f); err != nil {
		return nil, errors.Wrap(err, "mrbilit")
	}
	if len(f.Segments) == 0 || len(f.Segments[0].Legs) == 0 {
		return nil, errors.Wrap(ErrMissingField, "mrbilit: segment legs")
	}
	leg := f.Segments[0].Legs[0]

	records := make([]entity.UnifiedFlight, 0, len(f.Prices))
	seen := make(map[string]bool, len(f.Prices))
	for i, price := range f.Prices {
		rec, err := c.convertPrice(f, leg, price)
		if err != nil {
			return nil, errors.Wrapf(err, "mrbilit: price %d", i)
		}
		if seen[rec.FlightID] {
			continue
		}
		seen[rec.FlightID] = true
		records = append(records, rec)
	}
	return records, nil
}

func (c *mrbilitConverter) convertPrice(f mrbilitFlight, leg mrbilitLeg, price mrbilitPrice) (entity.UnifiedFlight, error) {
	fares := mrbilitFares(price.PassengerFares)
	class := c.cabinClass(price.CabinClass)

	id, err := c.identify(offer{
		Origin:       leg.OriginCode,
		Destination:  leg.DestinationCode,
		Departure:    leg.DepartureTime,
		AirlineCode:  leg.AirlineCode,
		FlightNumber: leg.FlightNumber,
		BookingClass: firstNonEmpty(price.BookingClass, mrbilitBookingClass),
		CabinClass:   class,
		IsCharter:    price.IsCharter,
		AdultPrice:   fares["adult"].TotalFare,
	})
	if err != nil {
		return entity.UnifiedFlight{}, err
	}

	rec := c.record(id)
	if fid := str(f.ID); fid != "" {
		rec.OriginalID = optionalString(fmt.Sprintf("%s_%s", fid, price.BookingClass))
	}
	rec.Airline.NameEn = optional(leg.Airline.EnglishTitle)
	rec.Airline.NameFa = optional(leg.Airline.PersianTitle)
	rec.Airline.LogoURL = optional(leg.Airline.Logo)
	rec.OperatingAirline = entity.OperatingAirline{
		Code:   optional(leg.OperatingAirlineCode),
		NameEn: optional(leg.OperatingAirline.EnglishTitle),
		NameFa: optional(leg.OperatingAirline.PersianTitle),
	}
	rec.Aircraft = entity.Aircraft{
		Type: optional(leg.AirCraft.EnglishTitle),
		Code: optional(leg.AirCraft.Iatacode),
	}

	rec.Route.Origin = entity.Endpoint{
		AirportCode:   leg.OriginCode,
		AirportNameEn: optional(leg.OriginAirport),
		CityCode:      leg.OriginCode,
		CityNameFa:    optional(leg.Origin),
		Terminal:      optional(leg.DepartureTerminal),
	}
	rec.Route.Destination = entity.Endpoint{
		AirportCode:   leg.DestinationCode,
		AirportNameEn: optional(leg.DestinationAirport),
		CityCode:      leg.DestinationCode,
		CityNameFa:    optional(leg.Destination),
		Terminal:      optional(leg.ArrivalTerminal),
	}

	duration := clockMinutes(leg.JourneyTime)
	if duration == 0 {
		duration = minutesBetween(leg.DepartureTime, leg.ArrivalTime)
	}
	rec.Schedule = entity.Schedule{
		DepartureDatetime:   leg.DepartureTime,
		ArrivalDatetime:     leg.ArrivalTime,
		DepartureDateJalali: optionalString(strings.TrimSpace(leg.DepartureWeekDay + " " + leg.DepartureDateString)),
		DurationMinutes:     duration,
		Stops:               leg.Stops,
	}

	rec.Pricing.Adult = fares["adult"]
	rec.Pricing.Child = fares["child"]
	rec.Pricing.Infant = fares["infant"]

	rec.Cabin = entity.Cabin{
		Class:              class,
		ClassDisplayNameFa: cabinDisplayFa(class, price.CabinClassDisplayName),
		BookingClass:       optionalString(price.BookingClass),
	}

	refundable := true
	if price.IsRefundable != nil {
		refundable = *price.IsRefundable
	}
	rec.TicketInfo = entity.TicketInfo{
		Type:         ticketType(price.IsCharter),
		IsCharter:    price.IsCharter,
		IsRefundable: refundable,
		IsDomestic:   true,
		Capacity:     price.Capacity,
		Reservable:   true,
	}

	baggage := looseInt(price.Baggage)
	rec.Baggage.Checked = entity.CheckedBaggage{
		AdultKg:  baggage,
		ChildKg:  baggage,
		InfantKg: intPtr(mrbilitInfantKg),
	}

	for _, term := range price.CancellationTernEntities {
		period := fmt.Sprintf("From %s to %s", firstNonEmpty(str(term.FromTime), "start"), firstNonEmpty(str(term.ToTime), "end"))
		rec.Policies.CancellationRules = append(rec.Policies.CancellationRules, penaltyRule(period, term.Percent))
	}
	rec.Policies.FareRules = optional(price.FareRules)
	rec.Policies.Terms = optional(price.ExtraTerms)

	for _, o := range price.FlightSpecialOffers {
		if o.Title != "" {
			rec.AdditionalInfo.SpecialOffers = append(rec.AdditionalInfo.SpecialOffers, o.Title)
		}
	}

	rec.Metadata.OriginalID = optional(f.ID)
	rec.Metadata.ProposalID = optional(price.ProposalID)
	return rec, nil
}

// mrbilitFares indexes passenger fares by unified passenger type.
// TotalFare is preferred; some responses only carry TotalPrice.
func mrbilitFares(list []mrbilitFare) map[string]entity.Fare {
	fares := make(map[string]entity.Fare, 3)
	for _, pf := range list {
		pax, ok := mrbilitPaxTypes[strings.ToUpper(strings.TrimSpace(pf.PaxType))]
		if !ok {
			continue
		}
		total := pf.TotalFare
		if total == 0 {
			total = pf.TotalPrice
		}
		base := pf.BaseFare
		if base == 0 {
			base = total
		}
		fares[pax] = entity.Fare{BaseFare: base, TotalFare: total, Taxes: pf.Tax}
	}
	return fares
}
