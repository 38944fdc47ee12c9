package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"flight-unifier-service/internal/domain/entity"
)

func flightWith(id string, fare int64, capacity int) entity.UnifiedFlight {
	return entity.UnifiedFlight{
		FlightID:   id,
		Pricing:    entity.Pricing{Adult: entity.Fare{TotalFare: fare}},
		TicketInfo: entity.TicketInfo{Capacity: capacity},
	}
}

func TestFilterValid(t *testing.T) {
	records := []entity.UnifiedFlight{
		flightWith("zero-fare", 0, 5),
		flightWith("minimal", 1, 1),
		flightWith("negative-capacity", 100, -1),
		flightWith("zero-capacity", 100, 0),
		flightWith("negative-fare", -10, 5),
		flightWith("regular", 50000000, 10),
		{FlightID: "empty"},
	}

	kept, dropped := FilterValid(records)
	assert.Equal(t, 5, dropped)
	if assert.Len(t, kept, 2) {
		assert.Equal(t, "minimal", kept[0].FlightID)
		assert.Equal(t, "regular", kept[1].FlightID)
	}
}

func TestFilterValid_Empty(t *testing.T) {
	kept, dropped := FilterValid(nil)
	assert.Empty(t, kept)
	assert.Zero(t, dropped)
}
