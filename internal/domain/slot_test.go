package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/strizhka/barbershop-booking/pkg/types"
)

func TestCandidateSlot_Overlaps(t *testing.T) {
	t.Parallel()

	slot := CandidateSlot{
		StartTime:       types.TimeString("11:30"),
		EndTime:         types.TimeString("12:15"),
		DurationMinutes: 45,
	}

	tests := []struct {
		name  string
		start types.TimeString
		end   types.TimeString
		want  bool
	}{
		{name: "partial overlap at start", start: "11:20", end: "11:40", want: true},
		{name: "partial overlap at end", start: "12:00", end: "12:30", want: true},
		{name: "fully inside", start: "11:40", end: "12:00", want: true},
		{name: "fully covers", start: "11:00", end: "13:00", want: true},
		{name: "identical interval", start: "11:30", end: "12:15", want: true},
		// Граничащие интервалы не считаются пересечением
		{name: "touches at slot start", start: "11:00", end: "11:30", want: false},
		{name: "touches at slot end", start: "12:15", end: "12:45", want: false},
		{name: "before", start: "10:00", end: "10:30", want: false},
		{name: "after", start: "13:00", end: "13:30", want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, slot.Overlaps(tt.start, tt.end))
		})
	}
}

func TestCandidateSlot_Label(t *testing.T) {
	t.Parallel()

	slot := CandidateSlot{StartTime: types.TimeString("10:00"), EndTime: types.TimeString("10:30")}
	assert.Equal(t, "10:00", slot.Label())
}
