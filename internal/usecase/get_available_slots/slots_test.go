package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strizhka/barbershop-booking/internal/domain"
	"github.com/strizhka/barbershop-booking/internal/integrations/staffservice"
	"github.com/strizhka/barbershop-booking/pkg/ptr"
	"github.com/strizhka/barbershop-booking/pkg/types"
)

func workDay(open, close string) staffservice.DaySchedule {
	return staffservice.DaySchedule{
		IsOpen:    true,
		OpenTime:  ptr.Ptr(open),
		CloseTime: ptr.Ptr(close),
	}
}

func activeBooking(start string, durationMinutes int) domain.Booking {
	return domain.Booking{
		StartTime:       types.TimeString(start),
		DurationMinutes: durationMinutes,
		Status:          domain.StatusConfirmed,
	}
}

func slotStarts(slots []domain.CandidateSlot) []string {
	starts := make([]string, len(slots))
	for i, s := range slots {
		starts[i] = s.StartTime.String()
	}
	return starts
}

func TestGenerateCandidateStarts_FutureDate(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)

	// Открыто 10:00-12:00, шаг 30, услуга 30 минут
	starts, err := generateCandidateStarts(workDay("10:00", "12:00"), 30, 30, date, now, 20)
	require.NoError(t, err)

	expected := []string{"10:00", "10:30", "11:00", "11:30"}
	actual := make([]string, len(starts))
	for i, s := range starts {
		actual[i] = s.String()
	}
	assert.Equal(t, expected, actual)
}

func TestGenerateCandidateStarts_StepIndependentOfDuration(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)

	// Шаг 10 минут, услуга 45 минут: кандидаты идут каждые 10 минут
	// от открытия, без подгонки под длительность услуги. Последний
	// допустимый старт - 11:10 (конец 11:55), 11:20 уже не помещается
	starts, err := generateCandidateStarts(workDay("10:00", "12:00"), 10, 45, date, now, 20)
	require.NoError(t, err)
	require.NotEmpty(t, starts)

	assert.Equal(t, "10:00", starts[0].String())
	assert.Equal(t, "10:10", starts[1].String())
	assert.Equal(t, "11:10", starts[len(starts)-1].String())

	// Конец услуги никогда не выходит за закрытие
	closeTime := types.TimeString("12:00")
	for _, s := range starts {
		end, err := s.AddMinutes(45)
		require.NoError(t, err)
		assert.False(t, end.IsAfter(closeTime), "start %s ends after close", s)
	}
}

func TestGenerateCandidateStarts_ServiceLongerThanDay(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)

	// Услуга 180 минут не помещается в окно 10:00-12:00
	starts, err := generateCandidateStarts(workDay("10:00", "12:00"), 10, 180, date, now, 20)
	require.NoError(t, err)
	assert.Empty(t, starts)
}

func TestGenerateCandidateStarts_ClosedDay(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)

	starts, err := generateCandidateStarts(staffservice.DaySchedule{IsOpen: false}, 10, 30, date, now, 20)
	require.NoError(t, err)
	assert.Empty(t, starts)
}

func TestGenerateCandidateStarts_PastDate(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	starts, err := generateCandidateStarts(workDay("10:00", "19:00"), 10, 30, date, now, 20)
	require.NoError(t, err)
	assert.Empty(t, starts)
}

func TestGenerateCandidateStarts_TodayLeadTimeFilter(t *testing.T) {
	t.Parallel()

	// Сейчас 10:25, минимальный запас 20 минут: первый допустимый старт - 10:45,
	// при шаге 30 минут это 11:00
	now := time.Date(2025, 6, 2, 10, 25, 0, 0, time.UTC)
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	starts, err := generateCandidateStarts(workDay("10:00", "13:00"), 30, 30, date, now, 20)
	require.NoError(t, err)

	actual := make([]string, len(starts))
	for i, s := range starts {
		actual[i] = s.String()
	}
	assert.Equal(t, []string{"11:00", "11:30", "12:00", "12:30"}, actual)
}

func TestGenerateCandidateStarts_LeadTimeBoundaryIsAllowed(t *testing.T) {
	t.Parallel()

	// Сейчас 10:40, запас 20 минут: старт ровно в 11:00 допустим
	now := time.Date(2025, 6, 2, 10, 40, 0, 0, time.UTC)
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	starts, err := generateCandidateStarts(workDay("10:00", "12:00"), 30, 30, date, now, 20)
	require.NoError(t, err)
	require.NotEmpty(t, starts)
	assert.Equal(t, "11:00", starts[0].String())
}

func TestFilterFreeSlots_RemovesOverlapping(t *testing.T) {
	t.Parallel()

	starts := []types.TimeString{
		"10:00", "10:10", "10:20", "10:30", "10:40", "10:50", "11:00",
	}

	// Запись 10:30-11:00 при услуге в 30 минут блокирует старты 10:10-10:50
	bookings := []domain.Booking{activeBooking("10:30", 30)}

	slots := filterFreeSlots(starts, 30, bookings)

	assert.Equal(t, []string{"10:00", "11:00"}, slotStarts(slots))
}

func TestFilterFreeSlots_BoundaryTouchIsNotOverlap(t *testing.T) {
	t.Parallel()

	// Запись 11:00-11:30: слот, заканчивающийся ровно в 11:00,
	// и слот, начинающийся ровно в 11:30, доступны
	bookings := []domain.Booking{activeBooking("11:00", 30)}

	slots := filterFreeSlots([]types.TimeString{"10:30", "11:30"}, 30, bookings)

	assert.Equal(t, []string{"10:30", "11:30"}, slotStarts(slots))
}

func TestFilterFreeSlots_IgnoresCancelledBookings(t *testing.T) {
	t.Parallel()

	cancelled := domain.Booking{
		StartTime:       types.TimeString("10:00"),
		DurationMinutes: 60,
		Status:          domain.StatusCancelledByClient,
	}

	slots := filterFreeSlots([]types.TimeString{"10:00", "10:30"}, 30, []domain.Booking{cancelled})

	assert.Equal(t, []string{"10:00", "10:30"}, slotStarts(slots))
}

func TestFilterFreeSlots_FullyBookedDayIsEmptyNotError(t *testing.T) {
	t.Parallel()

	bookings := []domain.Booking{activeBooking("10:00", 120)}

	slots := filterFreeSlots([]types.TimeString{"10:00", "10:30", "11:00", "11:30"}, 30, bookings)

	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestFilterFreeSlots_SetsEndTimeAndDuration(t *testing.T) {
	t.Parallel()

	slots := filterFreeSlots([]types.TimeString{"10:00"}, 45, nil)

	require.Len(t, slots, 1)
	assert.Equal(t, "10:00", slots[0].StartTime.String())
	assert.Equal(t, "10:45", slots[0].EndTime.String())
	assert.Equal(t, 45, slots[0].DurationMinutes)
}
