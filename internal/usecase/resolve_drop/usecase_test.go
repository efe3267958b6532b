package resolve_drop

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strizhka/barbershop-booking/internal/domain"
	configRepo "github.com/strizhka/barbershop-booking/internal/infra/storage/config"
)

type stubBookingRepo struct {
	byID     *domain.Booking
	byIDErr  error
	bookings []domain.Booking
}

func (s *stubBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	return s.byID, s.byIDErr
}

func (s *stubBookingRepo) GetByShopWithFilter(_ context.Context, _ domain.ShopBookingsFilter) ([]domain.Booking, error) {
	return s.bookings, nil
}

type stubConfigRepo struct {
	config *domain.ShopSlotsConfig
	err    error
}

func (s *stubConfigRepo) GetConfigWithHierarchy(_ context.Context, _ int64, _, _ *int64) (*domain.ShopSlotsConfig, error) {
	return s.config, s.err
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func draggedBooking() *domain.Booking {
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

func gridConfig() *domain.ShopSlotsConfig {
	return &domain.ShopSlotsConfig{
		ID:              1,
		ShopID:          1,
		GridStartHour:   8,
		GridEndHour:     22,
		GridSnapMinutes: 15,
	}
}

func TestUseCase_Execute_SnapsDropToGrid(t *testing.T) {
	t.Parallel()

	repo := &stubBookingRepo{byID: draggedBooking()}

	uc := NewUseCase(repo, &stubConfigRepo{config: gridConfig()}, nopLogger{})

	// 307px при 60px/час от 08:00 - это 13:07, привязывается к 13:00
	resp, err := uc.Execute(context.Background(), &Request{
		BookingID:  10,
		ShopID:     1,
		TargetDate: time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC),
		OffsetPx:   307,
	})
	require.NoError(t, err)

	assert.Equal(t, "13:00", resp.ResolvedTime.String())
	assert.Equal(t, "13:30", resp.EndTime.String())
	assert.Equal(t, 300, resp.OffsetPx)
	assert.Equal(t, 30, resp.HeightPx)
	assert.False(t, resp.HasConflict)
	assert.Empty(t, resp.Conflicts)
}

func TestUseCase_Execute_RoundsUpPastMidpoint(t *testing.T) {
	t.Parallel()

	repo := &stubBookingRepo{byID: draggedBooking()}

	uc := NewUseCase(repo, &stubConfigRepo{config: gridConfig()}, nopLogger{})

	// 308px - это 13:08, привязывается вверх к 13:15
	resp, err := uc.Execute(context.Background(), &Request{
		BookingID:  10,
		ShopID:     1,
		TargetDate: time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC),
		OffsetPx:   308,
	})
	require.NoError(t, err)

	assert.Equal(t, "13:15", resp.ResolvedTime.String())
}

func TestUseCase_Execute_ReportsConflicts(t *testing.T) {
	t.Parallel()

	repo := &stubBookingRepo{
		byID: draggedBooking(),
		bookings: []domain.Booking{
			{ID: 11, StartTime: "13:00", DurationMinutes: 60, Status: domain.StatusConfirmed},
			{ID: 12, StartTime: "14:00", DurationMinutes: 30, Status: domain.StatusConfirmed},
		},
	}

	uc := NewUseCase(repo, &stubConfigRepo{config: gridConfig()}, nopLogger{})

	// Сброс на 13:00-13:30 пересекается с записью 11, но не с записью 12
	resp, err := uc.Execute(context.Background(), &Request{
		BookingID:  10,
		ShopID:     1,
		TargetDate: time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC),
		OffsetPx:   300,
	})
	require.NoError(t, err)

	assert.True(t, resp.HasConflict)
	assert.Equal(t, []int64{11}, resp.Conflicts)
}

func TestUseCase_Execute_DraggedBookingIsNotItsOwnConflict(t *testing.T) {
	t.Parallel()

	booking := draggedBooking()

	repo := &stubBookingRepo{
		byID:     booking,
		bookings: []domain.Booking{*booking},
	}

	uc := NewUseCase(repo, &stubConfigRepo{config: gridConfig()}, nopLogger{})

	// Сброс обратно на собственное время
	resp, err := uc.Execute(context.Background(), &Request{
		BookingID:  10,
		ShopID:     1,
		TargetDate: booking.BookingDate,
		OffsetPx:   240, // 12:00
	})
	require.NoError(t, err)

	assert.False(t, resp.HasConflict)
}

func TestUseCase_Execute_ClampsOffsetsOutsideGrid(t *testing.T) {
	t.Parallel()

	repo := &stubBookingRepo{byID: draggedBooking()}

	uc := NewUseCase(repo, &stubConfigRepo{config: gridConfig()}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID:  10,
		ShopID:     1,
		TargetDate: time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC),
		OffsetPx:   -100,
	})
	require.NoError(t, err)
	assert.Equal(t, "08:00", resp.ResolvedTime.String())
}

func TestUseCase_Execute_DefaultGridWhenConfigMissing(t *testing.T) {
	t.Parallel()

	repo := &stubBookingRepo{byID: draggedBooking()}

	uc := NewUseCase(repo, &stubConfigRepo{err: configRepo.ErrConfigNotFound}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID:  10,
		ShopID:     1,
		TargetDate: time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC),
		OffsetPx:   0,
	})
	require.NoError(t, err)
	assert.Equal(t, "08:00", resp.ResolvedTime.String())
}

func TestUseCase_Execute_WrongShopDenied(t *testing.T) {
	t.Parallel()

	repo := &stubBookingRepo{byID: draggedBooking()}

	uc := NewUseCase(repo, &stubConfigRepo{config: gridConfig()}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:  10,
		ShopID:     2,
		TargetDate: time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC),
		OffsetPx:   300,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}
