package entity

// OfferSummary is the slice of a unified record kept in the offer index,
// enough to compare sellers of one physical flight.
type OfferSummary struct {
	FlightID       string   `json:"flight_id"`
	BaseFlightID   string   `json:"base_flight_id"`
	Provider       Provider `json:"provider"`
	AdultTotalFare int64    `json:"adult_total_fare"`
	Capacity       int      `json:"capacity"`
	CabinClass     string   `json:"cabin_class"`
	IsCharter      bool     `json:"is_charter"`
	DepartureTime  string   `json:"departure_datetime"`
}

// Summary extracts the offer index entry for f
func (f *UnifiedFlight) Summary() OfferSummary {
	return OfferSummary{
		FlightID:       f.FlightID,
		BaseFlightID:   f.BaseFlightID,
		Provider:       f.ProviderSource,
		AdultTotalFare: f.AdultTotalFare(),
		Capacity:       f.TicketInfo.Capacity,
		CabinClass:     f.Cabin.Class,
		IsCharter:      f.TicketInfo.IsCharter,
		DepartureTime:  f.Schedule.DepartureDatetime,
	}
}
