package domain

import "github.com/strizhka/barbershop-booking/pkg/types"

// CandidateSlot represents a start time available for booking with a barber
// Слоты генерируются заново при каждом запросе и нигде не кэшируются
type CandidateSlot struct {
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
}

// Label returns the display string for the slot ("10:00")
func (s *CandidateSlot) Label() string {
	return s.StartTime.String()
}

// Overlaps returns true if the slot shares any instant with the [start, end) interval
// Используется строгий полуоткрытый тест: граничащие интервалы не пересекаются
func (s *CandidateSlot) Overlaps(start, end types.TimeString) bool {
	return start.IsBefore(s.EndTime) && end.IsAfter(s.StartTime)
}
