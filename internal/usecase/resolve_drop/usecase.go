package resolve_drop

import (
	"context"
	"errors"
	"fmt"

	"github.com/strizhka/barbershop-booking/internal/agenda"
	"github.com/strizhka/barbershop-booking/internal/domain"
	bookingRepo "github.com/strizhka/barbershop-booking/internal/infra/storage/booking"
	configRepo "github.com/strizhka/barbershop-booking/internal/infra/storage/config"
	"github.com/strizhka/barbershop-booking/pkg/ptr"
	"github.com/strizhka/barbershop-booking/pkg/types"
)

// UseCase use case для разрешения перетаскивания записи по сетке расписания
// Переводит пиксельное смещение в привязанное к сетке время и всегда
// проверяет пересечения с другими записями барбера - результат без
// проверки конфликтов не возвращается никогда
type UseCase struct {
	bookingRepo BookingRepository
	configRepo  ConfigRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	configRepo ConfigRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		configRepo:  configRepo,
		logger:      logger,
	}
}

// Execute выполняет use case разрешения перетаскивания
// Ничего не сохраняет: подтверждение переноса выполняется отдельной операцией
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ResolveDrop: booking=%d, shop=%d, date=%s, offset=%dpx",
		req.BookingID, req.ShopID, req.TargetDate.Format(domain.DateFormat), req.OffsetPx)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ResolveDrop: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем перетаскиваемую запись
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("ResolveDrop: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}

		uc.logger.Error("ResolveDrop: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 3. Запись должна принадлежать барбершопу из запроса
	if booking.ShopID != req.ShopID {
		uc.logger.Warn("ResolveDrop: booking id=%d belongs to shop id=%d, requested shop id=%d",
			req.BookingID, booking.ShopID, req.ShopID)
		return nil, ErrAccessDenied
	}

	// 4. Получаем геометрию сетки из конфигурации
	config, err := uc.configRepo.GetConfigWithHierarchy(ctx, booking.ShopID, ptr.Ptr(booking.BarberID), nil)
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		uc.logger.Error("ResolveDrop: failed to get config: %v", err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}

	grid := gridFromConfig(config, req.PixelsPerHour)

	// 5. Переводим смещение в привязанное к сетке время
	resolvedTime := grid.TimeAtOffset(req.OffsetPx)

	endTime, err := resolvedTime.AddMinutes(booking.DurationMinutes)
	if err != nil {
		// Услуга не помещается до полуночи - прижимаем старт к низу сетки
		resolvedTime = grid.TimeAtOffset(grid.TotalHeight() - grid.HeightForDuration(booking.DurationMinutes))
		endTime, err = resolvedTime.AddMinutes(booking.DurationMinutes)
		if err != nil {
			uc.logger.Error("ResolveDrop: failed to compute end time: %v", err)
			return nil, fmt.Errorf("%w: failed to compute end time: %v", ErrInternal, err)
		}
	}

	// 6. Получаем записи барбера на целевую дату
	filter := domain.ShopBookingsFilter{
		ShopID:          booking.ShopID,
		BarberID:        &booking.BarberID,
		StartDate:       &req.TargetDate,
		EndDate:         &req.TargetDate,
		IncludeInactive: false,
	}

	bookings, err := uc.bookingRepo.GetByShopWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("ResolveDrop: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 7. Проверяем конфликты, исключая саму перетаскиваемую запись
	conflicts := findConflicts(resolvedTime, booking.DurationMinutes, bookings, booking.ID)

	uc.logger.Info("ResolveDrop: booking id=%d resolved to %s (%d conflicts)",
		req.BookingID, resolvedTime, len(conflicts))

	return &Response{
		BookingID:    booking.ID,
		TargetDate:   req.TargetDate,
		ResolvedTime: resolvedTime,
		EndTime:      endTime,
		OffsetPx:     grid.OffsetForTime(resolvedTime),
		HeightPx:     grid.HeightForDuration(booking.DurationMinutes),
		HasConflict:  len(conflicts) > 0,
		Conflicts:    conflicts,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.ShopID <= 0 {
		return fmt.Errorf("%w: shopID must be positive", ErrInvalidInput)
	}

	if req.TargetDate.IsZero() {
		return fmt.Errorf("%w: targetDate is required", ErrInvalidInput)
	}

	return nil
}

// gridFromConfig собирает сетку из конфигурации барбершопа
// При отсутствии конфигурации используются значения по умолчанию
func gridFromConfig(config *domain.ShopSlotsConfig, pixelsPerHour int) agenda.Grid {
	startHour := domain.DefaultGridStartHour
	endHour := domain.DefaultGridEndHour
	snapMinutes := domain.DefaultGridSnapMinutes

	if config != nil {
		startHour = config.GridStartHour
		endHour = config.GridEndHour
		snapMinutes = config.GridSnapMinutes
	}

	if pixelsPerHour <= 0 {
		pixelsPerHour = domain.DefaultGridPixelsPerHour
	}

	return agenda.NewGrid(startHour, endHour, pixelsPerHour, snapMinutes)
}

// findConflicts возвращает ID активных записей, пересекающихся с новым интервалом
// Сама перетаскиваемая запись исключается из проверки,
// граничащие интервалы пересечением не считаются
func findConflicts(
	newTime types.TimeString,
	durationMinutes int,
	bookings []domain.Booking,
	excludeBookingID int64,
) []int64 {
	newEnd, err := newTime.AddMinutes(durationMinutes)
	if err != nil {
		return nil
	}

	conflicts := make([]int64, 0)

	for _, booking := range bookings {
		if booking.ID == excludeBookingID {
			continue
		}

		if !booking.IsActive() {
			continue
		}

		bookingStart := booking.StartTime
		bookingEnd, err := booking.StartTime.AddMinutes(booking.DurationMinutes)
		if err != nil {
			continue
		}

		if bookingStart.IsBefore(newEnd) && bookingEnd.IsAfter(newTime) {
			conflicts = append(conflicts, booking.ID)
		}
	}

	return conflicts
}
