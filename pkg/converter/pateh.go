package converter

import (
	"github.com/pkg/errors"

	"flight-unifier-service/internal/domain/entity"
)

type patehFlight struct {
	ID      *string      `json:"id"`
	Depart  []patehLeg   `json:"depart"`
	Finance patehFinance `json:"finance"`
}

type patehLeg struct {
	Origin                string      `json:"origin"`
	Destination           string      `json:"destination"`
	OriginName            *string     `json:"origin_name"`
	DestinationName       *string     `json:"destination_name"`
	FlightDatetime        string      `json:"flight_datetime"`
	ArrivalDatetime       string      `json:"arrival_datetime"`
	FlightNo              string      `json:"flight_no"`
	AvailableSeatQuantity int         `json:"available_seat_quantity"`
	IsCharter             bool        `json:"is_charter"`
	CabinType             string      `json:"cabin_type"`
	Baggage               interface{} `json:"baggage"`
	Aircraft              *string     `json:"aircraft"`
	AirlineInfo           struct {
		Code   string  `json:"code"`
		NameFa *string `json:"name_fa"`
		NameEn *string `json:"name_en"`
		Logo   *string `json:"logo"`
	} `json:"airline_info"`
}

type patehFinance struct {
	Adult  patehFare `json:"adult"`
	Child  patehFare `json:"child"`
	Infant patehFare `json:"infant"`
}

type patehFare struct {
	Fare     int64  `json:"fare"`
	BaseFare int64  `json:"base_fare"`
	Tax      *int64 `json:"tax"`
}

func (f patehFare) unified() entity.Fare {
	base := f.BaseFare
	if base == 0 {
		base = f.Fare
	}
	return entity.Fare{BaseFare: base, TotalFare: f.Fare, Taxes: f.Tax}
}

type patehConverter struct {
	builder
}

func (c *patehConverter) Flights(payload map[string]interface{}) ([]interface{}, error) {
	return envelope(payload, "data")
}

// Convert maps one pateh result; multi-leg journeys end at the last leg's destination.
func (c *patehConverter) Convert(raw interface{}) ([]entity.UnifiedFlight, error) {
	var f patehFlight
	if err := decode(raw, &f); err != nil {
		return nil, errors.Wrap(err, "pateh")
	}
	if len(f.Depart) == 0 {
		return nil, errors.Wrap(ErrMissingField, "pateh: depart legs")
	}
	first := f.Depart[0]
	last := f.Depart[len(f.Depart)-1]

	adult := f.Finance.Adult.unified()
	class := c.cabinClass(first.CabinType)
	id, err := c.identify(offer{
		Origin:       first.Origin,
		Destination:  last.Destination,
		Departure:    first.FlightDatetime,
		AirlineCode:  first.AirlineInfo.Code,
		FlightNumber: first.FlightNo,
		CabinClass:   class,
		IsCharter:    first.IsCharter,
		AdultPrice:   adult.TotalFare,
	})
	if err != nil {
		return nil, errors.Wrap(err, "pateh")
	}

	rec := c.record(id)
	rec.OriginalID = optional(f.ID)
	rec.Airline.NameEn = optional(first.AirlineInfo.NameEn)
	rec.Airline.NameFa = optional(first.AirlineInfo.NameFa)
	rec.Airline.LogoURL = optional(first.AirlineInfo.Logo)
	rec.Aircraft.Type = optional(first.Aircraft)

	rec.Route.Origin = entity.Endpoint{
		AirportCode: first.Origin,
		CityCode:    first.Origin,
		CityNameFa:  optional(first.OriginName),
	}
	rec.Route.Destination = entity.Endpoint{
		AirportCode: last.Destination,
		CityCode:    last.Destination,
		CityNameFa:  optional(last.DestinationName),
	}

	rec.Schedule = entity.Schedule{
		DepartureDatetime: first.FlightDatetime,
		ArrivalDatetime:   last.ArrivalDatetime,
		DurationMinutes:   minutesBetween(first.FlightDatetime, last.ArrivalDatetime),
		Stops:             len(f.Depart) - 1,
	}

	rec.Pricing.Adult = adult
	rec.Pricing.Child = f.Finance.Child.unified()
	rec.Pricing.Infant = f.Finance.Infant.unified()

	rec.Cabin = entity.Cabin{
		Class:              class,
		ClassDisplayNameFa: cabinDisplayFa(class, nil),
	}

	rec.TicketInfo = entity.TicketInfo{
		Type:       ticketType(first.IsCharter),
		IsCharter:  first.IsCharter,
		IsDomestic: true,
		Capacity:   first.AvailableSeatQuantity,
		Reservable: true,
	}

	baggage := looseInt(first.Baggage)
	rec.Baggage.Checked = entity.CheckedBaggage{AdultKg: baggage, ChildKg: baggage}

	rec.Metadata.OriginalID = optional(f.ID)
	return []entity.UnifiedFlight{rec}, nil
}
