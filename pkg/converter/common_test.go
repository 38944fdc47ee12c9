package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"flight-unifier-service/internal/domain/entity"
)

func TestDepartureClock(t *testing.T) {
	tests := map[string]string{
		"2025-12-15T14:30:00":       "14:30",
		"2025-12-15 06:05":          "06:05",
		"2025-12-15T14:30:00+03:30": "14:30",
		"2025-12-15":                "",
		"":                          "",
		"2025-12-15T9:30":           "",
	}
	for in, want := range tests {
		assert.Equal(t, want, departureClock(in), in)
	}
}

func TestMinutesBetween(t *testing.T) {
	assert.Equal(t, 75, minutesBetween("2025-12-15T14:30:00", "2025-12-15T15:45:00"))
	assert.Equal(t, 90, minutesBetween("2025-12-15 23:30", "2025-12-16 01:00"))
	assert.Zero(t, minutesBetween("2025-12-15T14:30:00", "2025-12-15T13:00:00"))
	assert.Zero(t, minutesBetween("", "2025-12-15T13:00:00"))
}

func TestClockMinutes(t *testing.T) {
	assert.Equal(t, 75, clockMinutes("01:15:00"))
	assert.Equal(t, 130, clockMinutes("2:10"))
	assert.Zero(t, clockMinutes("75"))
}

func TestRefundRules_SortedAndClamped(t *testing.T) {
	rules := refundRules(map[string]interface{}{
		"c": "-5%",
		"a": "70%",
		"b": 40.0,
		"d": "n/a",
	})
	assert.Equal(t, []entity.CancellationRule{
		{TimePeriod: "a", RefundPercentage: 70, PenaltyPercentage: 30},
		{TimePeriod: "b", RefundPercentage: 40, PenaltyPercentage: 60},
		{TimePeriod: "c", RefundPercentage: 0, PenaltyPercentage: 100},
	}, rules)
}

func TestPenaltyRule_Complementary(t *testing.T) {
	for _, p := range []int{-20, 0, 35, 100, 250} {
		r := penaltyRule("any", p)
		assert.Equal(t, 100, r.RefundPercentage+r.PenaltyPercentage)
		assert.GreaterOrEqual(t, r.PenaltyPercentage, 0)
		assert.LessOrEqual(t, r.PenaltyPercentage, 100)
	}
}

func TestLooseInt(t *testing.T) {
	assert.Equal(t, 20, *looseInt("20KG"))
	assert.Equal(t, 20, *looseInt(20.0))
	assert.Equal(t, 7, *looseInt("7 kg"))
	assert.Nil(t, looseInt(nil))
	assert.Nil(t, looseInt("none"))
	assert.Nil(t, positiveInt(0.0))
}
