package converter

import (
	"strings"

	"github.com/pkg/errors"

	"flight-unifier-service/internal/domain/entity"
)

const (
	safar366InfantKg     = 10
	safar366BookingClass = "Y"
	safar366Charter      = "Charter"
)

type safar366Item struct {
	AirItinerary                 []safar366Itinerary  `json:"AirItinerary"`
	AirItineraryPricingInfo      safar366PricingInfo  `json:"AirItineraryPricingInfo"`
	OriginDestinationInformation safar366Destinations `json:"OriginDestinationInformation"`
}

type safar366Itinerary struct {
	SessionID *string `json:"SessionId"`
}

type safar366PricingInfo struct {
	ItinTotalFare     safar366Fare          `json:"ItinTotalFare"`
	PTCFareBreakdowns []safar366FareBreakup `json:"PTC_FareBreakdowns"`
}

type safar366FareBreakup struct {
	PassengerTypeQuantity struct {
		Code string `json:"Code"`
	} `json:"PassengerTypeQuantity"`
	PassengerFare safar366Fare `json:"PassengerFare"`
}

type safar366Fare struct {
	BaseFare   int64       `json:"BaseFare"`
	TotalFare  int64       `json:"TotalFare"`
	Taxes      interface{} `json:"Taxes"`
	ServiceTax *int64      `json:"ServiceTax"`
	Commission *int64      `json:"Commission"`
}

type safar366Destinations struct {
	OriginDestinationOption []safar366Option `json:"OriginDestinationOption"`
}

type safar366Option struct {
	FlightDate               string            `json:"FlightDate"`
	OriginLocation           string            `json:"OriginLocation"`
	DestinationLocation      string            `json:"DestinationLocation"`
	DepartureDateJ           *string           `json:"DepartureDateJ"`
	ArrivalDateJ             *string           `json:"ArrivalDateJ"`
	JourneyDurationPerMinute int               `json:"JourneyDurationPerMinute"`
	FlightSegment            []safar366Segment `json:"FlightSegment"`
	TPAExtensions            safar366OptionExt `json:"TPA_Extensions"`
}

type safar366OptionExt struct {
	Origin               *string `json:"Origin"`
	OriginFa             *string `json:"OriginFa"`
	Destination          *string `json:"Destination"`
	DestinationFa        *string `json:"DestinationFa"`
	Stop                 int     `json:"Stop"`
	IsCharter            bool    `json:"IsCharter"`
	IsForeign            bool    `json:"IsForeign"`
	IsLock               bool    `json:"IsLock"`
	IsNationalIDOptional *int    `json:"IsNationalIdOptional"`
}

type safar366Segment struct {
	DepartureDateTime        string             `json:"DepartureDateTime"`
	ArrivalDateTime          string             `json:"ArrivalDateTime"`
	FlightNumber             string             `json:"FlightNumber"`
	ResBookDesigCode         *string            `json:"ResBookDesigCode"`
	CabinClassCode           string             `json:"CabinClassCode"`
	SeatsRemaining           interface{}        `json:"SeatsRemaining"`
	JourneyDurationPerMinute int                `json:"JourneyDurationPerMinute"`
	ConnectionTimePerMinute  *int               `json:"ConnectionTimePerMinute"`
	Comment                  *string            `json:"Comment"`
	DepartureAirport         safar366Airport    `json:"DepartureAirport"`
	ArrivalAirport           safar366Airport    `json:"ArrivalAirport"`
	MarketingAirline         safar366Airline    `json:"MarketingAirline"`
	OperatingAirline         safar366Airline    `json:"OperatingAirline"`
	Equipment                safar366Equipment  `json:"Equipment"`
	MarketingCabin           safar366Cabin      `json:"MarketingCabin"`
	BookingClassAvail        safar366Avail      `json:"BookingClassAvail"`
	TPAExtensions            safar366SegmentExt `json:"TPA_Extensions"`
}

type safar366Airport struct {
	LocationCode string  `json:"LocationCode"`
	AirportName  *string `json:"AirportName"`
	Terminal     *string `json:"Terminal"`
}

type safar366Airline struct {
	Code             *string `json:"Code"`
	CompanyShortName *string `json:"CompanyShortName"`
}

type safar366Equipment struct {
	AirEquipType       *string `json:"AirEquipType"`
	AircraftTailNumber *string `json:"AircraftTailNumber"`
}

type safar366Cabin struct {
	Name             string `json:"Name"`
	BaggageAllowance struct {
		UnitOfMeasureQuantity interface{} `json:"UnitOfMeasureQuantity"`
	} `json:"BaggageAllowance"`
}

type safar366Avail struct {
	ResBookDesigCode *string `json:"ResBookDesigCode"`
}

type safar366SegmentExt struct {
	UniqueID         *string     `json:"UniqueId"`
	FlightID         *string     `json:"FlightId"`
	AirlineNameFa    *string     `json:"AirlineNameFa"`
	Origin           *string     `json:"Origin"`
	OriginFa         *string     `json:"OriginFa"`
	Destination      *string     `json:"Destination"`
	DestinationFa    *string     `json:"DestinationFa"`
	DepartureDateJ   *string     `json:"DepartureDateJ"`
	ArrivalDateJ     *string     `json:"ArrivalDateJ"`
	FlightType       string      `json:"FlightType"`
	CabinClassNameFa *string     `json:"CabinClassNameFa"`
	CabinBaggage     interface{} `json:"CabinBaggage"`
	Rule             *string     `json:"Rule"`
}

type safar366Converter struct {
	builder
}

func (c *safar366Converter) Flights(payload map[string]interface{}) ([]interface{}, error) {
	return envelope(payload, "Items")
}

func (c *safar366Converter) Convert(raw interface{}) ([]entity.UnifiedFlight, error) {
	var item safar366Item
	if err := decode(raw, &item); err != nil {
		return nil, errors.Wrap(err, "safar366")
	}
	options := item.OriginDestinationInformation.OriginDestinationOption
	if len(options) == 0 || len(options[0].FlightSegment) == 0 {
		return nil, errors.Wrap(ErrMissingField, "safar366: flight segment")
	}
	option := options[0]
	seg := option.FlightSegment[0]
	segExt := seg.TPAExtensions
	optExt := option.TPAExtensions

	fares := safar366Fares(item.AirItineraryPricingInfo)
	charter := optExt.IsCharter || strings.EqualFold(segExt.FlightType, safar366Charter)
	class := c.cabinClass(firstNonEmpty(seg.CabinClassCode, seg.MarketingCabin.Name))

	id, err := c.identify(offer{
		Origin:       seg.DepartureAirport.LocationCode,
		Destination:  seg.ArrivalAirport.LocationCode,
		Departure:    firstNonEmpty(seg.DepartureDateTime, option.FlightDate),
		AirlineCode:  str(seg.MarketingAirline.Code),
		FlightNumber: seg.FlightNumber,
		BookingClass: firstNonEmpty(str(seg.ResBookDesigCode), safar366BookingClass),
		CabinClass:   class,
		IsCharter:    charter,
		AdultPrice:   fares["ADT"].TotalFare,
	})
	if err != nil {
		return nil, errors.Wrap(err, "safar366")
	}

	rec := c.record(id)
	rec.OriginalID = optional(segExt.UniqueID)
	rec.Airline.NameEn = optional(seg.MarketingAirline.CompanyShortName)
	rec.Airline.NameFa = optional(segExt.AirlineNameFa)
	rec.OperatingAirline = entity.OperatingAirline{
		Code:   optional(seg.OperatingAirline.Code),
		NameEn: optional(seg.OperatingAirline.CompanyShortName),
	}
	rec.Aircraft = entity.Aircraft{
		Type: optional(seg.Equipment.AirEquipType),
		Code: optional(seg.Equipment.AircraftTailNumber),
	}

	rec.Route.Origin = entity.Endpoint{
		AirportCode:   seg.DepartureAirport.LocationCode,
		AirportNameEn: optional(seg.DepartureAirport.AirportName),
		CityCode:      firstNonEmpty(option.OriginLocation, seg.DepartureAirport.LocationCode),
		CityNameEn:    firstOptional(segExt.Origin, optExt.Origin),
		CityNameFa:    firstOptional(segExt.OriginFa, optExt.OriginFa),
		Terminal:      optional(seg.DepartureAirport.Terminal),
	}
	rec.Route.Destination = entity.Endpoint{
		AirportCode:   seg.ArrivalAirport.LocationCode,
		AirportNameEn: optional(seg.ArrivalAirport.AirportName),
		CityCode:      firstNonEmpty(option.DestinationLocation, seg.ArrivalAirport.LocationCode),
		CityNameEn:    firstOptional(segExt.Destination, optExt.Destination),
		CityNameFa:    firstOptional(segExt.DestinationFa, optExt.DestinationFa),
		Terminal:      optional(seg.ArrivalAirport.Terminal),
	}

	duration := seg.JourneyDurationPerMinute
	if duration == 0 {
		duration = option.JourneyDurationPerMinute
	}
	if duration == 0 {
		duration = minutesBetween(seg.DepartureDateTime, seg.ArrivalDateTime)
	}
	rec.Schedule = entity.Schedule{
		DepartureDatetime:     seg.DepartureDateTime,
		ArrivalDatetime:       seg.ArrivalDateTime,
		DepartureDateJalali:   firstOptional(segExt.DepartureDateJ, option.DepartureDateJ),
		ArrivalDateJalali:     firstOptional(segExt.ArrivalDateJ, option.ArrivalDateJ),
		DurationMinutes:       duration,
		Stops:                 optExt.Stop,
		ConnectionTimeMinutes: seg.ConnectionTimePerMinute,
	}

	rec.Pricing.Adult = fares["ADT"]
	rec.Pricing.Child = fares["CHD"]
	rec.Pricing.Infant = fares["INF"]

	rec.Cabin = entity.Cabin{
		Class:              class,
		ClassDisplayNameFa: cabinDisplayFa(class, segExt.CabinClassNameFa),
		BookingClass:       optional(seg.ResBookDesigCode),
	}

	capacity := 0
	if seats := looseInt(seg.SeatsRemaining); seats != nil {
		capacity = *seats
	}
	rec.TicketInfo = entity.TicketInfo{
		Type:         ticketType(charter),
		IsCharter:    charter,
		IsRefundable: true,
		IsDomestic:   !optExt.IsForeign,
		Capacity:     capacity,
		Reservable:   !optExt.IsLock,
	}
	if optExt.IsNationalIDOptional != nil {
		rec.TicketInfo.RequiresPassport = boolPtr(*optExt.IsNationalIDOptional == 0)
	}

	baggage := looseInt(seg.MarketingCabin.BaggageAllowance.UnitOfMeasureQuantity)
	rec.Baggage.Checked = entity.CheckedBaggage{
		AdultKg:  baggage,
		ChildKg:  baggage,
		InfantKg: intPtr(safar366InfantKg),
	}
	rec.Baggage.Cabin.Kg = looseInt(segExt.CabinBaggage)

	rec.Policies.FareRules = optional(segExt.Rule)
	rec.Policies.Terms = optional(seg.Comment)

	rec.Metadata.OriginalID = optional(segExt.FlightID)
	rec.Metadata.ProposalID = optional(seg.BookingClassAvail.ResBookDesigCode)
	if len(item.AirItinerary) > 0 {
		rec.Metadata.SearchID = optional(item.AirItinerary[0].SessionID)
	}
	return []entity.UnifiedFlight{rec}, nil
}

// safar366Fares indexes fares by passenger code (ADT, CHD, INF). Responses
// without a breakdown price the adult from the itinerary total.
func safar366Fares(info safar366PricingInfo) map[string]entity.Fare {
	fares := make(map[string]entity.Fare, 3)
	for _, b := range info.PTCFareBreakdowns {
		code := strings.ToUpper(strings.TrimSpace(b.PassengerTypeQuantity.Code))
		fares[code] = unifiedFare(b.PassengerFare)
	}
	if _, ok := fares["ADT"]; !ok && info.ItinTotalFare.TotalFare > 0 {
		fares["ADT"] = unifiedFare(info.ItinTotalFare)
	}
	return fares
}

func unifiedFare(f safar366Fare) entity.Fare {
	fare := entity.Fare{
		BaseFare:      f.BaseFare,
		TotalFare:     f.TotalFare,
		ServiceCharge: f.ServiceTax,
		Commission:    f.Commission,
	}
	if taxes, ok := looseNumber(f.Taxes); ok {
		t := int64(taxes)
		fare.Taxes = &t
	}
	return fare
}
