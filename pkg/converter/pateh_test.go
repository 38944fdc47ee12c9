package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flight-unifier-service/internal/domain/entity"
)

func TestPateh_Convert(t *testing.T) {
	res := convertFixture(t, entity.ProviderPateh, patehFixture)
	require.Len(t, res.Records, 1)
	rec := res.Records[0]

	assert.Equal(t, "THRMHD20251215HIR100BE684460005000", rec.FlightID)
	assert.Nil(t, rec.OriginalID)
	assert.Equal(t, "Iran Air", *rec.Airline.NameEn)
	assert.Equal(t, int64(40000000), rec.Pricing.Child.TotalFare)
	assert.Equal(t, 10, rec.TicketInfo.Capacity)
	assert.Equal(t, 75, rec.Schedule.DurationMinutes)
}

func TestPateh_InfersAirlineFromFlightNumber(t *testing.T) {
	raw := `{"data":[{"id":"p-2","depart":[{"origin":"THR","destination":"KIH","flight_datetime":"2025-12-20 06:15:00",
		"flight_no":"TKN3102","available_seat_quantity":3,"airline_info":{"name_en":"Taftan"}}],
		"finance":{"adult":{"fare":30000000}}}]}`

	rec := convertFixture(t, entity.ProviderPateh, raw).Records[0]
	assert.Equal(t, "THRKIH20251220FK31020615", rec.BaseFlightID)
	assert.Equal(t, "FK", rec.Airline.Code)
	assert.Equal(t, "3102", rec.FlightNumber)
	assert.Equal(t, "p-2", *rec.OriginalID)
}
