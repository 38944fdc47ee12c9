package converter

import (
	"strings"

	"github.com/pkg/errors"

	"flight-unifier-service/internal/domain/entity"
)

type flyTodayItinerary struct {
	FareSourceCode           *string             `json:"fareSourceCode"`
	ValidatingAirlineCode    string              `json:"validatingAirlineCode"`
	ValidatingAirlineName    *string             `json:"validatingAirlineName"`
	IsCharter                bool                `json:"isCharter"`
	IsRefundable             *bool               `json:"isRefundable"`
	IsDomestic               *bool               `json:"isDomestic"`
	OriginDestinationOptions []flyTodayOption    `json:"originDestinationOptions"`
	AirItineraryPricingInfo  flyTodayPricingInfo `json:"airItineraryPricingInfo"`
}

type flyTodayOption struct {
	JourneyDurationPerMinute int               `json:"journeyDurationPerMinute"`
	FlightSegments           []flyTodaySegment `json:"flightSegments"`
}

type flyTodaySegment struct {
	DepartureDateTime            string      `json:"departureDateTime"`
	ArrivalDateTime              string      `json:"arrivalDateTime"`
	FlightNumber                 string      `json:"flightNumber"`
	MarketingAirlineCode         string      `json:"marketingAirlineCode"`
	OperatingAirlineCode         *string     `json:"operatingAirlineCode"`
	DepartureAirportLocationCode string      `json:"departureAirportLocationCode"`
	ArrivalAirportLocationCode   string      `json:"arrivalAirportLocationCode"`
	ResBookDesigCode             *string     `json:"resBookDesigCode"`
	CabinClassCode               string      `json:"cabinClassCode"`
	OperatingAirlineEquipment    *string     `json:"operatingAirlineEquipmentType"`
	SeatsRemaining               interface{} `json:"seatsRemaining"`
	Baggage                      interface{} `json:"baggage"`
	JourneyDuration              string      `json:"journeyDuration"`
}

type flyTodayPricingInfo struct {
	ItinTotalFare struct {
		BaseFare   int64  `json:"baseFare"`
		TotalFare  int64  `json:"totalFare"`
		TotalTax   *int64 `json:"totalTax"`
		TotalVat   *int64 `json:"totalVat"`
		Commission *int64 `json:"totalCommission"`
	} `json:"itinTotalFare"`
	PTCFareBreakdown []struct {
		PassengerTypeQuantity struct {
			Code string `json:"passengerType"`
		} `json:"passengerTypeQuantity"`
		PassengerFare struct {
			BaseFare  int64  `json:"baseFare"`
			TotalFare int64  `json:"totalFare"`
			Tax       *int64 `json:"taxes"`
		} `json:"passengerFare"`
	} `json:"ptcFareBreakdown"`
}

type flyTodayConverter struct {
	builder
}

func (c *flyTodayConverter) Flights(payload map[string]interface{}) ([]interface{}, error) {
	return envelope(payload, "pricedItineraries")
}

// Convert maps a priced itinerary; the route runs from the first segment's
// origin to the last segment's destination.
func (c *flyTodayConverter) Convert(raw interface{}) ([]entity.UnifiedFlight, error) {
	var it flyTodayItinerary
	if err := decode(raw, &it); err != nil {
		return nil, errors.Wrap(err, "flytoday")
	}
	if len(it.OriginDestinationOptions) == 0 || len(it.OriginDestinationOptions[0].FlightSegments) == 0 {
		return nil, errors.Wrap(ErrMissingField, "flytoday: flight segments")
	}
	option := it.OriginDestinationOptions[0]
	first := option.FlightSegments[0]
	last := option.FlightSegments[len(option.FlightSegments)-1]

	total := it.AirItineraryPricingInfo.ItinTotalFare
	adult := entity.Fare{BaseFare: total.BaseFare, TotalFare: total.TotalFare, Taxes: total.TotalTax, ServiceCharge: total.TotalVat, Commission: total.Commission}
	var child, infant entity.Fare
	for _, b := range it.AirItineraryPricingInfo.PTCFareBreakdown {
		fare := entity.Fare{BaseFare: b.PassengerFare.BaseFare, TotalFare: b.PassengerFare.TotalFare, Taxes: b.PassengerFare.Tax}
		switch strings.ToUpper(b.PassengerTypeQuantity.Code) {
		case "ADT", "ADULT":
			adult = fare
		case "CHD", "CHILD":
			child = fare
		case "INF", "INFANT":
			infant = fare
		}
	}
	if adult.BaseFare == 0 {
		adult.BaseFare = adult.TotalFare
	}

	airline := firstNonEmpty(first.MarketingAirlineCode, it.ValidatingAirlineCode)
	class := c.cabinClass(first.CabinClassCode)
	id, err := c.identify(offer{
		Origin:       first.DepartureAirportLocationCode,
		Destination:  last.ArrivalAirportLocationCode,
		Departure:    first.DepartureDateTime,
		AirlineCode:  airline,
		FlightNumber: first.FlightNumber,
		BookingClass: str(first.ResBookDesigCode),
		CabinClass:   class,
		IsCharter:    it.IsCharter,
		AdultPrice:   adult.TotalFare,
	})
	if err != nil {
		return nil, errors.Wrap(err, "flytoday")
	}

	rec := c.record(id)
	rec.OriginalID = optional(it.FareSourceCode)
	rec.Airline.NameEn = firstOptional(it.ValidatingAirlineName, optionalString(it.ValidatingAirlineCode))
	if op := optional(first.OperatingAirlineCode); op != nil && *op != id.AirlineCode {
		rec.OperatingAirline.Code = op
	}
	rec.Aircraft.Type = optional(first.OperatingAirlineEquipment)

	rec.Route.Origin = entity.Endpoint{
		AirportCode: first.DepartureAirportLocationCode,
		CityCode:    first.DepartureAirportLocationCode,
	}
	rec.Route.Destination = entity.Endpoint{
		AirportCode: last.ArrivalAirportLocationCode,
		CityCode:    last.ArrivalAirportLocationCode,
	}

	duration := option.JourneyDurationPerMinute
	if duration == 0 {
		duration = clockMinutes(first.JourneyDuration)
	}
	if duration == 0 {
		duration = minutesBetween(first.DepartureDateTime, last.ArrivalDateTime)
	}
	rec.Schedule = entity.Schedule{
		DepartureDatetime: first.DepartureDateTime,
		ArrivalDatetime:   last.ArrivalDateTime,
		DurationMinutes:   duration,
		Stops:             len(option.FlightSegments) - 1,
	}

	rec.Pricing.Adult = adult
	rec.Pricing.Child = child
	rec.Pricing.Infant = infant

	rec.Cabin = entity.Cabin{
		Class:              class,
		ClassDisplayNameFa: cabinDisplayFa(class, nil),
		BookingClass:       optional(first.ResBookDesigCode),
	}

	capacity := 0
	if seats := looseInt(first.SeatsRemaining); seats != nil {
		capacity = *seats
	}
	refundable := false
	if it.IsRefundable != nil {
		refundable = *it.IsRefundable
	}
	domestic := true
	if it.IsDomestic != nil {
		domestic = *it.IsDomestic
	}
	rec.TicketInfo = entity.TicketInfo{
		Type:         ticketType(it.IsCharter),
		IsCharter:    it.IsCharter,
		IsRefundable: refundable,
		IsDomestic:   domestic,
		Capacity:     capacity,
		Reservable:   true,
	}

	baggage := looseInt(first.Baggage)
	rec.Baggage.Checked = entity.CheckedBaggage{AdultKg: baggage, ChildKg: baggage}

	rec.Metadata.OriginalID = optional(it.FareSourceCode)
	return []entity.UnifiedFlight{rec}, nil
}
