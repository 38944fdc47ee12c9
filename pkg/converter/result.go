package converter

import (
	"github.com/pkg/errors"

	"flight-unifier-service/internal/domain/entity"
)

// BatchResult is what one provider response produced
type BatchResult struct {
	Provider entity.Provider
	// RawCount is the number of raw flights found in the envelope
	RawCount int
	Records  []entity.UnifiedFlight
	Skips    []entity.SkipReason
}

// EnvelopeIndex marks a skip that applies to the whole response
const EnvelopeIndex = -1

// ConvertBatch converts every raw flight in payload. A flight that fails,
// or panics, is recorded in Skips and the rest of the batch continues.
// Records keep the input order.
func ConvertBatch(c Converter, payload map[string]interface{}) BatchResult {
	res := BatchResult{
		Provider: c.Provider(),
		Records:  []entity.UnifiedFlight{},
		Skips:    []entity.SkipReason{},
	}

	flights, err := c.Flights(payload)
	if err != nil {
		res.Skips = append(res.Skips, entity.SkipReason{
			Index:   EnvelopeIndex,
			Reason:  err.Error(),
			Snippet: snippet(payload),
		})
		return res
	}
	res.RawCount = len(flights)

	for i, raw := range flights {
		records, err := convertOne(c, raw)
		if err != nil {
			res.Skips = append(res.Skips, entity.SkipReason{
				Index:   i,
				Reason:  err.Error(),
				Snippet: snippet(raw),
			})
			continue
		}
		res.Records = append(res.Records, records...)
	}
	return res
}

func convertOne(c Converter, raw interface{}) (records []entity.UnifiedFlight, err error) {
	defer func() {
		if r := recover(); r != nil {
			records = nil
			err = errors.Errorf("panic converting flight: %v", r)
		}
	}()
	return c.Convert(raw)
}
