package create_booking

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

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	valid := &Request{
		ClientID:  1,
		ShopID:    2,
		BarberID:  3,
		ServiceID: 4,
		Date:      time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00",
	}

	assert.NoError(t, validateRequest(valid))

	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{name: "zero client", mutate: func(r *Request) { r.ClientID = 0 }},
		{name: "zero shop", mutate: func(r *Request) { r.ShopID = 0 }},
		{name: "negative barber", mutate: func(r *Request) { r.BarberID = -1 }},
		{name: "zero service", mutate: func(r *Request) { r.ServiceID = 0 }},
		{name: "zero date", mutate: func(r *Request) { r.Date = time.Time{} }},
		{name: "empty start time", mutate: func(r *Request) { r.StartTime = "" }},
		{name: "malformed start time", mutate: func(r *Request) { r.StartTime = "25:99" }},
		// Без ведущего нуля "9:30" лексикографически больше "10:00"
		// и обошла бы проверки рабочих часов и пересечений
		{name: "unpadded start time", mutate: func(r *Request) { r.StartTime = "9:30" }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := *valid
			tt.mutate(&req)

			assert.ErrorIs(t, validateRequest(&req), ErrInvalidInput)
		})
	}
}

func TestValidateSlotFitsWorkingHours(t *testing.T) {
	t.Parallel()

	hours := workDay("10:00", "19:00")

	tests := []struct {
		name        string
		start       string
		duration    int
		granularity int
		expectedErr error
	}{
		{name: "aligned slot inside hours", start: "10:30", duration: 30, granularity: 10},
		{name: "last slot ending exactly at close", start: "18:30", duration: 30, granularity: 10},
		{name: "before opening", start: "09:50", duration: 30, granularity: 10, expectedErr: ErrInvalidTimeSlot},
		{name: "ends after closing", start: "18:45", duration: 30, granularity: 15, expectedErr: ErrInvalidTimeSlot},
		{name: "not aligned to grid", start: "10:07", duration: 30, granularity: 10, expectedErr: ErrInvalidTimeSlot},
		{name: "aligned relative to opening", start: "10:20", duration: 30, granularity: 20},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateSlotFitsWorkingHours(types.TimeString(tt.start), tt.duration, hours, tt.granularity)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateSlotFitsWorkingHours_DayOff(t *testing.T) {
	t.Parallel()

	err := validateSlotFitsWorkingHours("10:00", 30, staffservice.DaySchedule{IsOpen: false}, 10)
	assert.ErrorIs(t, err, ErrBarberNotWorking)
}

func TestValidateBookingTime(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 2, 10, 40, 0, 0, time.UTC)
	today := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	tomorrow := today.AddDate(0, 0, 1)

	// Будущая дата: запас времени не проверяется
	assert.NoError(t, validateBookingTime(tomorrow, "10:00", now, 20))

	// Сегодня, старт ровно через minLeadTime - допустимо
	assert.NoError(t, validateBookingTime(today, "11:00", now, 20))

	// Сегодня, старт раньше now + minLeadTime - отказ
	assert.ErrorIs(t, validateBookingTime(today, "10:50", now, 20), ErrTooLateToBook)
}

func TestValidateDate(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	assert.ErrorIs(t, validateDate(now.AddDate(0, 0, -1), now, 0), ErrInvalidDate)
	assert.NoError(t, validateDate(now, now, 0))
	// Без ограничения advance дата через год допустима
	assert.NoError(t, validateDate(now.AddDate(1, 0, 0), now, 0))
	// С ограничением в 14 дней дата через месяц - отказ
	assert.ErrorIs(t, validateDate(now.AddDate(0, 1, 0), now, 14), ErrDateTooFarInFuture)
	// Граничный день допустим
	assert.NoError(t, validateDate(now.AddDate(0, 0, 14), now, 14))
}

func TestHasOverlappingBooking(t *testing.T) {
	t.Parallel()

	bookings := []domain.Booking{
		{StartTime: "11:00", DurationMinutes: 30, Status: domain.StatusConfirmed},
	}

	tests := []struct {
		name     string
		start    string
		duration int
		expected bool
	}{
		{name: "overlap in the middle", start: "11:10", duration: 30, expected: true},
		{name: "covers the booking", start: "10:45", duration: 60, expected: true},
		{name: "ends exactly at booking start", start: "10:30", duration: 30, expected: false},
		{name: "starts exactly at booking end", start: "11:30", duration: 30, expected: false},
		{name: "far away", start: "15:00", duration: 30, expected: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			overlaps, err := hasOverlappingBooking(types.TimeString(tt.start), tt.duration, bookings)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, overlaps)
		})
	}
}

func TestHasOverlappingBooking_IgnoresInactive(t *testing.T) {
	t.Parallel()

	bookings := []domain.Booking{
		{StartTime: "11:00", DurationMinutes: 60, Status: domain.StatusCancelledByShop},
		{StartTime: "11:00", DurationMinutes: 60, Status: domain.StatusNoShow},
	}

	overlaps, err := hasOverlappingBooking("11:00", 30, bookings)
	require.NoError(t, err)
	assert.False(t, overlaps)
}
