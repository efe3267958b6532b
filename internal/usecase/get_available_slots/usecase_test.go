package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strizhka/barbershop-booking/internal/domain"
	configRepo "github.com/strizhka/barbershop-booking/internal/infra/storage/config"
	"github.com/strizhka/barbershop-booking/internal/integrations/staffservice"
	"github.com/strizhka/barbershop-booking/pkg/ptr"
)

type stubBookingRepo struct {
	bookings []domain.Booking
	err      error
}

func (s *stubBookingRepo) GetByShopWithFilter(_ context.Context, _ domain.ShopBookingsFilter) ([]domain.Booking, error) {
	return s.bookings, s.err
}

type stubConfigRepo struct {
	config *domain.ShopSlotsConfig
	err    error
}

func (s *stubConfigRepo) GetConfigWithHierarchy(_ context.Context, _ int64, _, _ *int64) (*domain.ShopSlotsConfig, error) {
	return s.config, s.err
}

type stubStaffClient struct {
	barber     *staffservice.Barber
	barberErr  error
	service    *staffservice.Service
	serviceErr error
}

func (s *stubStaffClient) GetBarber(_ context.Context, _, _ int64) (*staffservice.Barber, error) {
	return s.barber, s.barberErr
}

func (s *stubStaffClient) GetService(_ context.Context, _, _ int64) (*staffservice.Service, error) {
	return s.service, s.serviceErr
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testBarber() *staffservice.Barber {
	day := staffservice.DaySchedule{
		IsOpen:    true,
		OpenTime:  ptr.Ptr("10:00"),
		CloseTime: ptr.Ptr("13:00"),
	}

	return &staffservice.Barber{
		ID:          7,
		ShopID:      1,
		DisplayName: "Иван",
		IsActive:    true,
		WorkSchedule: staffservice.WeekSchedule{
			Monday:    day,
			Tuesday:   day,
			Wednesday: day,
			Thursday:  day,
			Friday:    day,
			// Суббота и воскресенье - выходные
		},
	}
}

func testService(durationMinutes int) *staffservice.Service {
	return &staffservice.Service{
		ID:              3,
		ShopID:          1,
		Name:            "Стрижка",
		DurationMinutes: durationMinutes,
		BarberIDs:       []int64{7},
	}
}

func responseStarts(slots []Slot) []string {
	starts := make([]string, len(slots))
	for i, s := range slots {
		starts[i] = s.StartTime.String()
	}
	return starts
}

func newTestUseCase(bookingRepo *stubBookingRepo, cfgRepo *stubConfigRepo, staff *stubStaffClient, now time.Time) *UseCase {
	uc := NewUseCase(bookingRepo, cfgRepo, staff, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}

	return uc
}

func TestUseCase_Execute_ReturnsFreeSlots(t *testing.T) {
	t.Parallel()

	// Вторник 2025-06-03, запрос на среду
	now := time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)

	bookingRepo := &stubBookingRepo{
		bookings: []domain.Booking{
			{
				StartTime:       "11:00",
				DurationMinutes: 30,
				Status:          domain.StatusConfirmed,
			},
		},
	}
	cfgRepo := &stubConfigRepo{
		config: &domain.ShopSlotsConfig{
			ID:                     1,
			ShopID:                 1,
			SlotGranularityMinutes: 30,
			MinLeadTimeMinutes:     20,
		},
	}
	staff := &stubStaffClient{barber: testBarber(), service: testService(30)}

	uc := newTestUseCase(bookingRepo, cfgRepo, staff, now)

	resp, err := uc.Execute(context.Background(), &Request{ShopID: 1, BarberID: 7, ServiceID: 3, Date: date})
	require.NoError(t, err)

	// Окно 10:00-13:00, шаг 30, услуга 30, запись 11:00-11:30
	assert.Equal(t, []string{"10:00", "10:30", "11:30", "12:00", "12:30"}, responseStarts(resp.Slots))
}

func TestUseCase_Execute_DefaultConfigWhenMissing(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)

	cfgRepo := &stubConfigRepo{err: configRepo.ErrConfigNotFound}
	staff := &stubStaffClient{barber: testBarber(), service: testService(30)}

	uc := newTestUseCase(&stubBookingRepo{}, cfgRepo, staff, now)

	resp, err := uc.Execute(context.Background(), &Request{ShopID: 1, BarberID: 7, ServiceID: 3, Date: date})
	require.NoError(t, err)

	// Дефолтный шаг 10 минут: первые кандидаты 10:00, 10:10
	require.GreaterOrEqual(t, len(resp.Slots), 2)
	assert.Equal(t, "10:00", resp.Slots[0].StartTime.String())
	assert.Equal(t, "10:10", resp.Slots[1].StartTime.String())
}

func TestUseCase_Execute_DayOffReturnsEmptySlice(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC)
	// Суббота - выходной барбера
	date := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)

	staff := &stubStaffClient{barber: testBarber(), service: testService(30)}

	uc := newTestUseCase(&stubBookingRepo{}, &stubConfigRepo{}, staff, now)

	resp, err := uc.Execute(context.Background(), &Request{ShopID: 1, BarberID: 7, ServiceID: 3, Date: date})
	require.NoError(t, err)
	assert.NotNil(t, resp.Slots)
	assert.Empty(t, resp.Slots)
}

func TestUseCase_Execute_BarberNotFound(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)

	staff := &stubStaffClient{barberErr: staffservice.ErrBarberNotFound}

	uc := newTestUseCase(&stubBookingRepo{}, &stubConfigRepo{}, staff, now)

	_, err := uc.Execute(context.Background(), &Request{ShopID: 1, BarberID: 99, ServiceID: 3, Date: date})
	assert.ErrorIs(t, err, ErrBarberNotFound)
}

func TestUseCase_Execute_ServiceNotProvidedByBarber(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)

	service := testService(30)
	service.BarberIDs = []int64{42}

	staff := &stubStaffClient{barber: testBarber(), service: service}

	uc := newTestUseCase(&stubBookingRepo{}, &stubConfigRepo{}, staff, now)

	_, err := uc.Execute(context.Background(), &Request{ShopID: 1, BarberID: 7, ServiceID: 3, Date: date})
	assert.ErrorIs(t, err, ErrServiceNotProvidedByBarber)
}

func TestUseCase_Execute_DateTooFarInFuture(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC)
	date := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)

	cfgRepo := &stubConfigRepo{
		config: &domain.ShopSlotsConfig{
			ID:                     1,
			ShopID:                 1,
			SlotGranularityMinutes: 10,
			MinLeadTimeMinutes:     20,
			AdvanceBookingDays:     14,
		},
	}
	staff := &stubStaffClient{barber: testBarber(), service: testService(30)}

	uc := newTestUseCase(&stubBookingRepo{}, cfgRepo, staff, now)

	_, err := uc.Execute(context.Background(), &Request{ShopID: 1, BarberID: 7, ServiceID: 3, Date: date})
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestUseCase_Execute_InvalidInput(t *testing.T) {
	t.Parallel()

	uc := newTestUseCase(&stubBookingRepo{}, &stubConfigRepo{}, &stubStaffClient{}, time.Now())

	_, err := uc.Execute(context.Background(), &Request{ShopID: 0, BarberID: 7, ServiceID: 3, Date: time.Now()})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
