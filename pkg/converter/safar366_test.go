package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flight-unifier-service/internal/domain/entity"
)

func TestSafar366_Convert(t *testing.T) {
	res := convertFixture(t, entity.ProviderSafar366, safar366Fixture)
	require.Len(t, res.Records, 1)
	rec := res.Records[0]

	assert.Equal(t, "THRMHD20251215HIR100YE684460005000", rec.FlightID)
	assert.Equal(t, "u-1", *rec.OriginalID)
	assert.Equal(t, "Iran Air", *rec.Airline.NameEn)
	assert.Equal(t, "ایران ایر", *rec.Airline.NameFa)
	assert.Equal(t, "Mehrabad Intl", *rec.Route.Origin.AirportNameEn)
	assert.Equal(t, int64(48000000), rec.Pricing.Adult.BaseFare)
	assert.Equal(t, int64(2000000), *rec.Pricing.Adult.Taxes)
	assert.Equal(t, int64(5000000), rec.Pricing.Infant.TotalFare)
	assert.Zero(t, rec.Pricing.Child.TotalFare)
	assert.Equal(t, 10, rec.TicketInfo.Capacity)
	assert.False(t, rec.TicketInfo.IsCharter)
	assert.True(t, rec.TicketInfo.IsDomestic)
	require.NotNil(t, rec.TicketInfo.RequiresPassport)
	assert.False(t, *rec.TicketInfo.RequiresPassport)
	assert.Equal(t, 20, *rec.Baggage.Checked.AdultKg)
	assert.Equal(t, 7, *rec.Baggage.Cabin.Kg)
	assert.Equal(t, 75, rec.Schedule.DurationMinutes)
	assert.Equal(t, "b0e0cce3", *rec.Metadata.SearchID)
}

func TestSafar366_ItineraryTotalFallback(t *testing.T) {
	raw := `{"Items":[{
		"AirItineraryPricingInfo":{"ItinTotalFare":{"BaseFare":21769000,"TotalFare":21769000}},
		"OriginDestinationInformation":{"OriginDestinationOption":[{"FlightSegment":[{
			"DepartureDateTime":"2025-11-28T15:00:00","ArrivalDateTime":"2025-11-28T16:15:00","FlightNumber":6700,
			"DepartureAirport":{"LocationCode":"THR"},"ArrivalAirport":{"LocationCode":"MHD"},
			"MarketingAirline":{"Code":"A1","CompanyShortName":"AirOne Air"},
			"TPA_Extensions":{"FlightType":"Charter"},"SeatsRemaining":5}]}]}}]}`

	rec := convertFixture(t, entity.ProviderSafar366, raw).Records[0]
	assert.Equal(t, "THRMHD20251128A167001500", rec.BaseFlightID)
	assert.Equal(t, "6700", rec.FlightNumber)
	assert.Equal(t, int64(21769000), rec.Pricing.Adult.TotalFare)
	assert.True(t, rec.TicketInfo.IsCharter)
	assert.Nil(t, rec.TicketInfo.RequiresPassport)
	assert.Equal(t, 5, rec.TicketInfo.Capacity)
}

func TestSafar366_NoSegmentIsSkipped(t *testing.T) {
	raw := `{"Items":[{"OriginDestinationInformation":{"OriginDestinationOption":[]}}]}`
	res := ConvertBatch(newTestConverter(t, entity.ProviderSafar366), parsePayload(t, raw))
	assert.Empty(t, res.Records)
	assert.Len(t, res.Skips, 1)
}
