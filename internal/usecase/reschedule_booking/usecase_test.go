package reschedule_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strizhka/barbershop-booking/internal/domain"
	"github.com/strizhka/barbershop-booking/internal/integrations/staffservice"
	"github.com/strizhka/barbershop-booking/pkg/ptr"
	"github.com/strizhka/barbershop-booking/pkg/types"
)

type stubBookingRepo struct {
	byID        *domain.Booking
	byIDErr     error
	bookings    []domain.Booking
	rescheduled *domain.Booking
}

func (s *stubBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	return s.byID, s.byIDErr
}

func (s *stubBookingRepo) GetByShopWithFilter(_ context.Context, _ domain.ShopBookingsFilter) ([]domain.Booking, error) {
	return s.bookings, nil
}

func (s *stubBookingRepo) Reschedule(_ context.Context, bookingID int64, newDate time.Time, newStartTime string) (*domain.Booking, error) {
	updated := *s.byID
	updated.BookingDate = newDate
	updated.StartTime = types.TimeString(newStartTime)
	s.rescheduled = &updated

	return &updated, nil
}

type stubConfigRepo struct {
	config *domain.ShopSlotsConfig
	err    error
}

func (s *stubConfigRepo) GetConfigWithHierarchy(_ context.Context, _ int64, _, _ *int64) (*domain.ShopSlotsConfig, error) {
	return s.config, s.err
}

type stubStaffClient struct {
	shop   *staffservice.Shop
	barber *staffservice.Barber
	err    error
}

func (s *stubStaffClient) GetShop(_ context.Context, shopID int64) (*staffservice.Shop, error) {
	if s.shop != nil {
		return s.shop, nil
	}

	return &staffservice.Shop{ID: shopID}, nil
}

func (s *stubStaffClient) GetBarber(_ context.Context, _, _ int64) (*staffservice.Barber, error) {
	return s.barber, s.err
}

type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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
		CloseTime: ptr.Ptr("19:00"),
	}

	return &staffservice.Barber{
		ID:          7,
		ShopID:      1,
		DisplayName: "Иван",
		WorkSchedule: staffservice.WeekSchedule{
			Monday:    day,
			Tuesday:   day,
			Wednesday: day,
			Thursday:  day,
			Friday:    day,
		},
	}
}

func ownBooking() *domain.Booking {
	return &domain.Booking{
		ID:              10,
		ClientID:        5,
		ShopID:          1,
		BarberID:        7,
		ServiceID:       3,
		BookingDate:     time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC),
		StartTime:       "12:00",
		DurationMinutes: 30,
		Status:          domain.StatusConfirmed,
	}
}

func newTestUseCase(repo *stubBookingRepo, cfg *stubConfigRepo, staff *stubStaffClient, now time.Time) *UseCase {
	uc := NewUseCase(repo, cfg, staff, passthroughTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}

	return uc
}

func TestUseCase_Execute_MovesBooking(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC)
	newDate := time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)

	repo := &stubBookingRepo{byID: ownBooking()}

	uc := newTestUseCase(repo, &stubConfigRepo{}, &stubStaffClient{barber: testBarber()}, now)

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: 10,
		ClientID:  5,
		NewDate:   newDate,
		NewTime:   "15:00",
	})
	require.NoError(t, err)

	assert.Equal(t, "15:00", resp.StartTime.String())
	assert.Equal(t, newDate, resp.BookingDate)
	require.NotNil(t, repo.rescheduled)
	assert.Equal(t, "15:00", repo.rescheduled.StartTime.String())
}

func TestUseCase_Execute_ConflictWithOtherBooking(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC)
	newDate := time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)

	repo := &stubBookingRepo{
		byID: ownBooking(),
		bookings: []domain.Booking{
			{ID: 11, StartTime: "15:00", DurationMinutes: 60, Status: domain.StatusConfirmed},
		},
	}

	uc := newTestUseCase(repo, &stubConfigRepo{}, &stubStaffClient{barber: testBarber()}, now)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 10,
		ClientID:  5,
		NewDate:   newDate,
		NewTime:   "15:30",
	})
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestUseCase_Execute_OwnSlotIsNotAConflict(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC)

	booking := ownBooking()

	// Единственная запись на дату - сама переносимая запись:
	// сдвиг на 30 минут внутри собственного интервала не конфликт
	repo := &stubBookingRepo{
		byID:     booking,
		bookings: []domain.Booking{*booking},
	}

	uc := newTestUseCase(repo, &stubConfigRepo{}, &stubStaffClient{barber: testBarber()}, now)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 10,
		ClientID:  5,
		NewDate:   booking.BookingDate,
		NewTime:   "12:15",
	})
	assert.NoError(t, err)
}

func TestUseCase_Execute_BoundaryTouchAllowed(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC)
	newDate := time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)

	repo := &stubBookingRepo{
		byID: ownBooking(),
		bookings: []domain.Booking{
			{ID: 11, StartTime: "15:00", DurationMinutes: 30, Status: domain.StatusConfirmed},
		},
	}

	uc := newTestUseCase(repo, &stubConfigRepo{}, &stubStaffClient{barber: testBarber()}, now)

	// Новая запись 15:30-16:00 начинается ровно там, где заканчивается чужая
	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 10,
		ClientID:  5,
		NewDate:   newDate,
		NewTime:   "15:30",
	})
	assert.NoError(t, err)
}

func TestUseCase_Execute_AccessDenied(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC)

	repo := &stubBookingRepo{byID: ownBooking()}

	uc := newTestUseCase(repo, &stubConfigRepo{}, &stubStaffClient{barber: testBarber()}, now)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 10,
		ClientID:  999,
		NewDate:   time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC),
		NewTime:   "15:00",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUseCase_Execute_ManagerCanMoveAnyBooking(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC)

	repo := &stubBookingRepo{byID: ownBooking()}

	staff := &stubStaffClient{
		shop:   &staffservice.Shop{ID: 1, ManagerIDs: []int64{999}},
		barber: testBarber(),
	}

	uc := newTestUseCase(repo, &stubConfigRepo{}, staff, now)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 10,
		ClientID:  999,
		NewDate:   time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC),
		NewTime:   "15:00",
	})
	assert.NoError(t, err)
}

func TestUseCase_Execute_CancelledBookingNotReschedulable(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC)

	booking := ownBooking()
	booking.Status = domain.StatusCancelledByClient

	repo := &stubBookingRepo{byID: booking}

	uc := newTestUseCase(repo, &stubConfigRepo{}, &stubStaffClient{barber: testBarber()}, now)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 10,
		ClientID:  5,
		NewDate:   time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC),
		NewTime:   "15:00",
	})
	assert.ErrorIs(t, err, ErrBookingNotReschedulable)
}

func TestUseCase_Execute_DayOffRejected(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC)
	// Суббота - выходной барбера
	saturday := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)

	repo := &stubBookingRepo{byID: ownBooking()}

	uc := newTestUseCase(repo, &stubConfigRepo{}, &stubStaffClient{barber: testBarber()}, now)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 10,
		ClientID:  5,
		NewDate:   saturday,
		NewTime:   "15:00",
	})
	assert.ErrorIs(t, err, ErrBarberNotWorking)
}

func TestUseCase_Execute_PastDateRejected(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC)

	repo := &stubBookingRepo{byID: ownBooking()}

	uc := newTestUseCase(repo, &stubConfigRepo{}, &stubStaffClient{barber: testBarber()}, now)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 10,
		ClientID:  5,
		NewDate:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		NewTime:   "15:00",
	})
	assert.ErrorIs(t, err, ErrInvalidDate)
}
