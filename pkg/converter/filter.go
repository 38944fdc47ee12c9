package converter

import "flight-unifier-service/internal/domain/entity"

// IsValid reports whether a record can be stored or returned:
// a positive adult total fare and positive capacity.
func IsValid(f *entity.UnifiedFlight) bool {
	return f.AdultTotalFare() > 0 && f.TicketInfo.Capacity > 0
}

// FilterValid keeps valid records in order and counts the rest
func FilterValid(records []entity.UnifiedFlight) ([]entity.UnifiedFlight, int) {
	kept := make([]entity.UnifiedFlight, 0, len(records))
	dropped := 0
	for i := range records {
		if !IsValid(&records[i]) {
			dropped++
			continue
		}
		kept = append(kept, records[i])
	}
	return kept, dropped
}
