package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flight-unifier-service/internal/domain/entity"
)

func TestSafarMarket_Convert(t *testing.T) {
	res := convertFixture(t, entity.ProviderSafarMarket, safarMarketFixture)
	require.Len(t, res.Records, 1)
	rec := res.Records[0]

	assert.Equal(t, "THRMHD20251215HIR100EE684460005000", rec.FlightID)
	assert.Equal(t, "sm-1", *rec.OriginalID)
	assert.Equal(t, "Tehran", *rec.Route.Origin.CityNameEn)
	assert.Equal(t, 75, rec.Schedule.DurationMinutes)
	assert.Equal(t, 10, rec.TicketInfo.Capacity)
	assert.True(t, rec.TicketInfo.Reservable)
	assert.True(t, rec.AdditionalInfo.Promoted)
	assert.Equal(t, []string{"cheapest"}, rec.AdditionalInfo.Tags)

	// baggage comes from the cheapest seller
	require.NotNil(t, rec.Baggage.Checked.AdultKg)
	assert.Equal(t, 20, *rec.Baggage.Checked.AdultKg)
	assert.Equal(t, 1, *rec.Baggage.Checked.Pieces)
	assert.Nil(t, rec.Baggage.Checked.InfantKg)

	require.Len(t, rec.Providers, 2)
	assert.Equal(t, "p1", *rec.Providers[0].ProviderID)
	assert.Equal(t, int64(50000000), *rec.Providers[1].Price)
	assert.Equal(t, int64(51000000), *rec.Providers[1].OldPrice)
	assert.Equal(t, "https://example.org/book", *rec.Providers[1].BookingURL)

	assert.Equal(t, []entity.CancellationRule{
		{TimePeriod: "UNTIL_3H", RefundPercentage: 70, PenaltyPercentage: 30},
	}, rec.Policies.CancellationRules)
	require.NotNil(t, rec.Policies.Terms)
	assert.Equal(t, "no refund after departure", *rec.Policies.Terms)
}

func TestSafarMarket_CharterFromSellType(t *testing.T) {
	raw := `{"result":{"flights":[{"capacity":3,"leave":{"airlineCode":"IR","flightNo":"100","sellType":"CHARTER",
		"departureTime":"2025-12-15 14:30","legs":[{"departureTime":"2025-12-15 14:30","departureAirportCode":"THR","arrivalAirportCode":"MHD"}],
		"priceTypes":{"adultPrice":50000000}}}]}}`

	rec := convertFixture(t, entity.ProviderSafarMarket, raw).Records[0]
	assert.Equal(t, wantBaseID, rec.BaseFlightID)
	assert.True(t, rec.TicketInfo.IsCharter)
	assert.Equal(t, entity.TicketTypeCharter, rec.TicketInfo.Type)
	assert.Empty(t, rec.Providers)
	assert.Empty(t, rec.Policies.CancellationRules)
}

func TestSafarMarketPolicies_PersianDigits(t *testing.T) {
	text := "جریمه ۴۰٪ تا ۲ ساعت قبل"
	rules, terms := safarMarketPolicies([]safarMarketPolicy{{Description: &text}})
	require.Len(t, rules, 1)
	assert.Equal(t, 40, rules[0].PenaltyPercentage)
	assert.Equal(t, 60, rules[0].RefundPercentage)
	assert.Nil(t, terms)
}

func TestCheapestSeller(t *testing.T) {
	p := func(v int64) *int64 { return &v }
	sellers := []safarMarketProvider{{Price: nil}, {Price: p(70)}, {Price: p(50)}, {Price: p(60)}}
	best := cheapestSeller(sellers)
	require.NotNil(t, best)
	assert.Equal(t, int64(50), *best.Price)

	assert.Nil(t, cheapestSeller(nil))
}
