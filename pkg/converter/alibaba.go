package converter

import (
	"github.com/pkg/errors"

	"flight-unifier-service/internal/domain/entity"
)

const alibabaInfantKg = 10

type alibabaFlight struct {
	UniqueKey         *string                `json:"uniqueKey"`
	FlightID          *string                `json:"flightId"`
	ProposalID        *string                `json:"proposalId"`
	Origin            string                 `json:"origin"`
	Destination       string                 `json:"destination"`
	OriginName        *string                `json:"originName"`
	DestinationName   *string                `json:"destinationName"`
	LeaveDateTime     string                 `json:"leaveDateTime"`
	ArrivalDateTime   string                 `json:"arrivalDateTime"`
	AirlineCode       string                 `json:"airlineCode"`
	AirlineName       *string                `json:"airlineName"`
	AirlineLogo       *string                `json:"airlineLogo"`
	FlightNumber      string                 `json:"flightNumber"`
	Class             *string                `json:"class"`
	ClassType         string                 `json:"classType"`
	ClassTypeName     *string                `json:"classTypeName"`
	IsCharter         bool                   `json:"isCharter"`
	IsRefundable      bool                   `json:"isRefundable"`
	PriceAdult        int64                  `json:"priceAdult"`
	PriceChild        int64                  `json:"priceChild"`
	PriceInfant       int64                  `json:"priceInfant"`
	Commission        *int64                 `json:"commission"`
	Seat              int                    `json:"seat"`
	Aircraft          *string                `json:"aircraft"`
	Terminal          *string                `json:"terminal"`
	MaxAllowedBaggage interface{}            `json:"maxAllowedBaggage"`
	Crcn              map[string]interface{} `json:"crcn"`
	Description       *string                `json:"description"`
	Promoted          float64                `json:"promoted"`
	Discount          *float64               `json:"discount"`
	Stars             *float64               `json:"stars"`
}

type alibabaConverter struct {
	builder
}

func (c *alibabaConverter) Flights(payload map[string]interface{}) ([]interface{}, error) {
	return envelope(payload, "result", "departing")
}

func (c *alibabaConverter) Convert(raw interface{}) ([]entity.UnifiedFlight, error) {
	var f alibabaFlight
	if err := decode(raw, &f); err != nil {
		return nil, errors.Wrap(err, "alibaba")
	}

	class := c.cabinClass(f.ClassType)
	id, err := c.identify(offer{
		Origin:       f.Origin,
		Destination:  f.Destination,
		Departure:    f.LeaveDateTime,
		AirlineCode:  f.AirlineCode,
		FlightNumber: f.FlightNumber,
		BookingClass: str(f.Class),
		CabinClass:   class,
		IsCharter:    f.IsCharter,
		AdultPrice:   f.PriceAdult,
	})
	if err != nil {
		return nil, errors.Wrap(err, "alibaba")
	}

	rec := c.record(id)
	rec.OriginalID = optional(f.UniqueKey)
	rec.Airline.NameFa = optional(f.AirlineName)
	rec.Airline.LogoURL = optional(f.AirlineLogo)
	rec.Aircraft.Type = optional(f.Aircraft)

	rec.Route.Origin = entity.Endpoint{
		AirportCode: f.Origin,
		CityCode:    f.Origin,
		CityNameFa:  optional(f.OriginName),
		Terminal:    optional(f.Terminal),
	}
	rec.Route.Destination = entity.Endpoint{
		AirportCode: f.Destination,
		CityCode:    f.Destination,
		CityNameFa:  optional(f.DestinationName),
	}

	rec.Schedule = entity.Schedule{
		DepartureDatetime: f.LeaveDateTime,
		ArrivalDatetime:   f.ArrivalDateTime,
		DurationMinutes:   minutesBetween(f.LeaveDateTime, f.ArrivalDateTime),
	}

	rec.Pricing.Adult = entity.Fare{BaseFare: f.PriceAdult, TotalFare: f.PriceAdult, Commission: f.Commission}
	rec.Pricing.Child = entity.Fare{BaseFare: f.PriceChild, TotalFare: f.PriceChild}
	rec.Pricing.Infant = entity.Fare{BaseFare: f.PriceInfant, TotalFare: f.PriceInfant}

	rec.Cabin = entity.Cabin{
		Class:              class,
		ClassDisplayNameFa: cabinDisplayFa(class, f.ClassTypeName),
		BookingClass:       optional(f.Class),
	}

	rec.TicketInfo = entity.TicketInfo{
		Type:         ticketType(f.IsCharter),
		IsCharter:    f.IsCharter,
		IsRefundable: f.IsRefundable,
		IsDomestic:   true,
		Capacity:     f.Seat,
		Reservable:   true,
	}

	baggage := looseInt(f.MaxAllowedBaggage)
	rec.Baggage.Checked = entity.CheckedBaggage{
		AdultKg:  baggage,
		ChildKg:  baggage,
		InfantKg: intPtr(alibabaInfantKg),
	}

	rec.Policies.CancellationRules = refundRules(f.Crcn)
	rec.Policies.Terms = optional(f.Description)

	rec.AdditionalInfo.Promoted = f.Promoted > 0
	rec.AdditionalInfo.DiscountPercent = f.Discount
	rec.AdditionalInfo.Rating = f.Stars

	rec.Metadata.OriginalID = optional(f.FlightID)
	rec.Metadata.ProposalID = optional(f.ProposalID)

	return []entity.UnifiedFlight{rec}, nil
}
