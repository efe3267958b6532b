package reschedule_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/strizhka/barbershop-booking/internal/domain"
	bookingRepo "github.com/strizhka/barbershop-booking/internal/infra/storage/booking"
	configRepo "github.com/strizhka/barbershop-booking/internal/infra/storage/config"
	staffClient "github.com/strizhka/barbershop-booking/internal/integrations/staffservice"
	"github.com/strizhka/barbershop-booking/pkg/ptr"
)

// UseCase use case для переноса записи на новые дату и время
type UseCase struct {
	bookingRepo  BookingRepository
	configRepo   ConfigRepository
	staffClient  StaffServiceClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	configRepo ConfigRepository,
	staffClient StaffServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		configRepo:   configRepo,
		staffClient:  staffClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case переноса записи
// Перенос без проверки конфликтов невозможен: проверка выполняется всегда,
// внутри сериализуемой транзакции с блокировкой записей барбера
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: booking=%d, client=%d, newDate=%s, newTime=%s",
		req.BookingID, req.ClientID, req.NewDate.Format(domain.DateFormat), req.NewTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Дата переноса не может быть в прошлом
	if isDateInPast(req.NewDate, now) {
		uc.logger.Warn("RescheduleBooking: new date %s is in the past", req.NewDate.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	var result *domain.Booking

	// 4. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Получаем запись
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("RescheduleBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}

			uc.logger.Error("RescheduleBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}

		// 4.2. Проверяем право на перенос: владелец записи или менеджер барбершопа
		if booking.ClientID != req.ClientID {
			if err := uc.checkManagerAccess(txCtx, booking.ShopID, req.ClientID); err != nil {
				uc.logger.Warn("RescheduleBooking: user id=%d has no access to booking id=%d",
					req.ClientID, req.BookingID)
				return err
			}
		}

		// 4.3. Переносить можно только ожидающие и подтвержденные записи
		if !booking.CanBeRescheduled() {
			uc.logger.Warn("RescheduleBooking: booking id=%d in status %s cannot be rescheduled",
				req.BookingID, booking.Status)
			return ErrBookingNotReschedulable
		}

		// 4.4. Получаем барбера с расписанием
		barber, err := uc.staffClient.GetBarber(txCtx, booking.ShopID, booking.BarberID)
		if err != nil {
			if errors.Is(err, staffClient.ErrBarberNotFound) {
				uc.logger.Warn("RescheduleBooking: barber id=%d not found", booking.BarberID)
				return ErrBarberNotFound
			}

			uc.logger.Error("RescheduleBooking: failed to get barber id=%d: %v", booking.BarberID, err)
			return fmt.Errorf("%w: failed to get barber: %v", ErrInternal, err)
		}

		// 4.5. Проверяем, что услуга помещается в рабочие часы в новую дату
		workingHours := barber.WorkSchedule.ScheduleForWeekday(req.NewDate.Weekday())

		if err := validateSlotFitsWorkingHours(req.NewTime, booking.DurationMinutes, workingHours); err != nil {
			uc.logger.Warn("RescheduleBooking: slot validation failed: %v", err)
			return err
		}

		// 4.6. Проверяем minLeadTimeMinutes по конфигурации
		config, err := uc.configRepo.GetConfigWithHierarchy(txCtx, booking.ShopID, ptr.Ptr(booking.BarberID), ptr.Ptr(booking.ServiceID))
		if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
			uc.logger.Error("RescheduleBooking: failed to get config: %v", err)
			return fmt.Errorf("%w: failed to get config: %w", ErrInternal, err)
		}

		minLeadTime := domain.DefaultMinLeadTimeMinutes
		if config != nil {
			minLeadTime = config.MinLeadTimeMinutes
		}

		if err := validateLeadTime(req.NewDate, req.NewTime, now, minLeadTime); err != nil {
			uc.logger.Warn("RescheduleBooking: lead time validation failed: %v", err)
			return err
		}

		// 4.7. Получаем записи барбера на новую дату с блокировкой (FOR UPDATE)
		filter := domain.ShopBookingsFilter{
			ShopID:          booking.ShopID,
			BarberID:        &booking.BarberID,
			StartDate:       &req.NewDate,
			EndDate:         &req.NewDate,
			IncludeInactive: false,
		}

		bookings, err := uc.bookingRepo.GetByShopWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		// 4.8. Проверяем конфликт, исключая саму переносимую запись
		conflicts, err := hasConflictingBooking(req.NewTime, booking.DurationMinutes, bookings, booking.ID)
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to check conflicts: %v", err)
			return fmt.Errorf("%w: failed to check conflicts: %v", ErrInternal, err)
		}

		if conflicts {
			uc.logger.Warn("RescheduleBooking: new slot %s conflicts for barber id=%d",
				req.NewTime, booking.BarberID)
			return ErrSlotConflict
		}

		// 4.9. Сохраняем перенос
		updated, err := uc.bookingRepo.Reschedule(txCtx, booking.ID, req.NewDate, req.NewTime.String())
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("RescheduleBooking: slot %s was taken concurrently", req.NewTime)
				return ErrSlotConflict
			}

			uc.logger.Error("RescheduleBooking: failed to reschedule booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to reschedule booking: %w", ErrInternal, err)
		}

		result = updated
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: successfully rescheduled booking id=%d to %s %s",
		result.ID, result.BookingDate.Format(domain.DateFormat), result.StartTime)

	return &Response{
		ID:              result.ID,
		ClientID:        result.ClientID,
		ShopID:          result.ShopID,
		BarberID:        result.BarberID,
		ServiceID:       result.ServiceID,
		BookingDate:     result.BookingDate,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ServiceName:     result.ServiceName,
		BarberName:      result.BarberName,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// checkManagerAccess проверяет, что пользователь является менеджером барбершопа
func (uc *UseCase) checkManagerAccess(ctx context.Context, shopID int64, userID int64) error {
	shop, err := uc.staffClient.GetShop(ctx, shopID)
	if err != nil {
		if errors.Is(err, staffClient.ErrShopNotFound) {
			return ErrAccessDenied
		}

		return fmt.Errorf("%w: failed to get shop: %v", ErrInternal, err)
	}

	for _, managerID := range shop.ManagerIDs {
		if managerID == userID {
			return nil
		}
	}

	return ErrAccessDenied
}
