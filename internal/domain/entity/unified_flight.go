// internal/domain/entity/unified_flight.go
package entity

// Cabin classes and ticket types used across every provider
const (
	CabinClassEconomy        = "economy"
	CabinClassBusiness       = "business"
	CabinClassFirst          = "first"
	CabinClassPremiumEconomy = "premium_economy"

	TicketTypeCharter = "charter"
	TicketTypeSystem  = "system"

	CurrencyIRR = "IRR"
)

// UnifiedFlight is the canonical record every provider is converted into.
// Optional fields are pointers and marshal as explicit nulls; consumers rely on the fixed shape.
type UnifiedFlight struct {
	BaseFlightID     string           `json:"base_flight_id" bson:"base_flight_id"`
	FlightID         string           `json:"flight_id" bson:"flight_id"`
	ProviderSource   Provider         `json:"provider_source" bson:"provider_source"`
	OriginalID       *string          `json:"original_id" bson:"original_id"`
	FlightNumber     string           `json:"flight_number" bson:"flight_number"`
	Airline          Airline          `json:"airline" bson:"airline"`
	OperatingAirline OperatingAirline `json:"operating_airline" bson:"operating_airline"`
	Aircraft         Aircraft         `json:"aircraft" bson:"aircraft"`
	Route            Route            `json:"route" bson:"route"`
	Schedule         Schedule         `json:"schedule" bson:"schedule"`
	Pricing          Pricing          `json:"pricing" bson:"pricing"`
	Cabin            Cabin            `json:"cabin" bson:"cabin"`
	TicketInfo       TicketInfo       `json:"ticket_info" bson:"ticket_info"`
	Baggage          Baggage          `json:"baggage" bson:"baggage"`
	Policies         Policies         `json:"policies" bson:"policies"`
	AdditionalInfo   AdditionalInfo   `json:"additional_info" bson:"additional_info"`
	Providers        []ProviderOffer  `json:"providers" bson:"providers"`
	Metadata         Metadata         `json:"metadata" bson:"metadata"`
}

// Airline is the marketing carrier
type Airline struct {
	Code    string  `json:"code" bson:"code"`
	NameEn  *string `json:"name_en" bson:"name_en"`
	NameFa  *string `json:"name_fa" bson:"name_fa"`
	LogoURL *string `json:"logo_url" bson:"logo_url"`
}

// OperatingAirline is set when the operating carrier differs from the marketing one
type OperatingAirline struct {
	Code   *string `json:"code" bson:"code"`
	NameEn *string `json:"name_en" bson:"name_en"`
	NameFa *string `json:"name_fa" bson:"name_fa"`
}

type Aircraft struct {
	Type *string `json:"type" bson:"type"`
	Code *string `json:"code" bson:"code"`
}

type Route struct {
	Origin      Endpoint `json:"origin" bson:"origin"`
	Destination Endpoint `json:"destination" bson:"destination"`
}

// Endpoint is one end of a route
type Endpoint struct {
	AirportCode   string  `json:"airport_code" bson:"airport_code"`
	AirportNameEn *string `json:"airport_name_en" bson:"airport_name_en"`
	AirportNameFa *string `json:"airport_name_fa" bson:"airport_name_fa"`
	CityCode      string  `json:"city_code" bson:"city_code"`
	CityNameEn    *string `json:"city_name_en" bson:"city_name_en"`
	CityNameFa    *string `json:"city_name_fa" bson:"city_name_fa"`
	Terminal      *string `json:"terminal" bson:"terminal"`
}

type Schedule struct {
	DepartureDatetime     string  `json:"departure_datetime" bson:"departure_datetime"`
	ArrivalDatetime       string  `json:"arrival_datetime" bson:"arrival_datetime"`
	DepartureDateJalali   *string `json:"departure_date_jalali" bson:"departure_date_jalali"`
	ArrivalDateJalali     *string `json:"arrival_date_jalali" bson:"arrival_date_jalali"`
	DurationMinutes       int     `json:"duration_minutes" bson:"duration_minutes"`
	Stops                 int     `json:"stops" bson:"stops"`
	ConnectionTimeMinutes *int    `json:"connection_time_minutes" bson:"connection_time_minutes"`
}

// Pricing holds per passenger type fares in IRR
type Pricing struct {
	Adult    Fare   `json:"adult" bson:"adult"`
	Child    Fare   `json:"child" bson:"child"`
	Infant   Fare   `json:"infant" bson:"infant"`
	Currency string `json:"currency" bson:"currency"`
}

type Fare struct {
	BaseFare      int64  `json:"base_fare" bson:"base_fare"`
	TotalFare     int64  `json:"total_fare" bson:"total_fare"`
	Taxes         *int64 `json:"taxes" bson:"taxes"`
	ServiceCharge *int64 `json:"service_charge" bson:"service_charge"`
	Commission    *int64 `json:"commission" bson:"commission"`
}

type Cabin struct {
	Class              string  `json:"class" bson:"class"`
	ClassDisplayNameFa string  `json:"class_display_name_fa" bson:"class_display_name_fa"`
	BookingClass       *string `json:"booking_class" bson:"booking_class"`
}

type TicketInfo struct {
	Type             string `json:"type" bson:"type"`
	IsCharter        bool   `json:"is_charter" bson:"is_charter"`
	IsRefundable     bool   `json:"is_refundable" bson:"is_refundable"`
	IsDomestic       bool   `json:"is_domestic" bson:"is_domestic"`
	Capacity         int    `json:"capacity" bson:"capacity"`
	Reservable       bool   `json:"reservable" bson:"reservable"`
	RequiresPassport *bool  `json:"requires_passport" bson:"requires_passport"`
}

type Baggage struct {
	Checked CheckedBaggage `json:"checked" bson:"checked"`
	Cabin   CabinBaggage   `json:"cabin" bson:"cabin"`
}

type CheckedBaggage struct {
	AdultKg  *int `json:"adult_kg" bson:"adult_kg"`
	ChildKg  *int `json:"child_kg" bson:"child_kg"`
	InfantKg *int `json:"infant_kg" bson:"infant_kg"`
	Pieces   *int `json:"pieces" bson:"pieces"`
}

type CabinBaggage struct {
	Kg     *int `json:"kg" bson:"kg"`
	Pieces *int `json:"pieces" bson:"pieces"`
}

type Policies struct {
	CancellationRules []CancellationRule `json:"cancellation_rules" bson:"cancellation_rules"`
	FareRules         *string            `json:"fare_rules" bson:"fare_rules"`
	Terms             *string            `json:"terms" bson:"terms"`
}

// CancellationRule maps a time window to a refund share.
// RefundPercentage + PenaltyPercentage is always 100.
type CancellationRule struct {
	TimePeriod        string `json:"time_period" bson:"time_period"`
	RefundPercentage  int    `json:"refund_percentage" bson:"refund_percentage"`
	PenaltyPercentage int    `json:"penalty_percentage" bson:"penalty_percentage"`
}

type AdditionalInfo struct {
	Promoted        bool     `json:"promoted" bson:"promoted"`
	DiscountPercent *float64 `json:"discount_percent" bson:"discount_percent"`
	SpecialOffers   []string `json:"special_offers" bson:"special_offers"`
	Tags            []string `json:"tags" bson:"tags"`
	Rating          *float64 `json:"rating" bson:"rating"`
}

// ProviderOffer is one seller listed by an aggregator provider
type ProviderOffer struct {
	ProviderID     *string `json:"provider_id" bson:"provider_id"`
	ProviderName   *string `json:"provider_name" bson:"provider_name"`
	ProviderNameEn *string `json:"provider_name_en" bson:"provider_name_en"`
	Price          *int64  `json:"price" bson:"price"`
	OldPrice       *int64  `json:"old_price" bson:"old_price"`
	Capacity       *int    `json:"capacity" bson:"capacity"`
	LogoURL        *string `json:"logo_url" bson:"logo_url"`
	BookingURL     *string `json:"booking_url" bson:"booking_url"`
}

type Metadata struct {
	ScrapedAt  string  `json:"scraped_at" bson:"scraped_at"`
	OriginalID *string `json:"original_id" bson:"original_id"`
	ProposalID *string `json:"proposal_id" bson:"proposal_id"`
	SearchID   *string `json:"search_id" bson:"search_id"`
}

// AdultTotalFare is the fare the validity rule and offer index look at
func (f *UnifiedFlight) AdultTotalFare() int64 {
	return f.Pricing.Adult.TotalFare
}
