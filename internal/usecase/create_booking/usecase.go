package create_booking

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

// UseCase use case для создания записи к барберу
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

// Execute выполняет use case создания записи
// Использует сериализуемую транзакцию для предотвращения гонки данных:
// два клиента, увидевшие один и тот же свободный слот, не смогут занять его одновременно
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: client=%d, shop=%d, barber=%d, service=%d, date=%s, time=%s",
		req.ClientID, req.ShopID, req.BarberID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем барбера вместе с расписанием
	barber, err := uc.staffClient.GetBarber(ctx, req.ShopID, req.BarberID)
	if err != nil {
		if errors.Is(err, staffClient.ErrShopNotFound) {
			uc.logger.Warn("CreateBooking: shop id=%d not found", req.ShopID)
			return nil, ErrShopNotFound
		}
		if errors.Is(err, staffClient.ErrBarberNotFound) {
			uc.logger.Warn("CreateBooking: barber id=%d not found in shop id=%d", req.BarberID, req.ShopID)
			return nil, ErrBarberNotFound
		}
		uc.logger.Error("CreateBooking: failed to get barber id=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: failed to get barber: %v", ErrInternal, err)
	}

	// 4. Получаем услугу
	service, err := uc.staffClient.GetService(ctx, req.ShopID, req.ServiceID)
	if err != nil {
		if errors.Is(err, staffClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 5. Проверяем, что барбер выполняет эту услугу
	if err := validateServiceByBarber(service, req.BarberID); err != nil {
		uc.logger.Warn("CreateBooking: service id=%d is not provided by barber id=%d",
			req.ServiceID, req.BarberID)
		return nil, err
	}

	var result *domain.Booking

	// 6. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Получаем конфигурацию слотов с учетом иерархии
		config, err := uc.configRepo.GetConfigWithHierarchy(txCtx, req.ShopID, ptr.Ptr(req.BarberID), ptr.Ptr(req.ServiceID))
		if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
			uc.logger.Error("CreateBooking: failed to get config: %v", err)
			return fmt.Errorf("%w: failed to get config: %w", ErrInternal, err)
		}

		// Если конфигурация не найдена, используем дефолтные значения
		if config == nil {
			config = &domain.ShopSlotsConfig{
				SlotGranularityMinutes: domain.DefaultSlotGranularityMinutes,
				MinLeadTimeMinutes:     domain.DefaultMinLeadTimeMinutes,
				AdvanceBookingDays:     domain.DefaultAdvanceBookingDays,
			}
			uc.logger.Info("CreateBooking: using default config for shop=%d, barber=%d, service=%d",
				req.ShopID, req.BarberID, req.ServiceID)
		} else {
			uc.logger.Info("CreateBooking: using config id=%d", config.ID)
		}

		// 6.2. Валидация даты с учетом конфигурации
		if err := validateDate(req.Date, now, config.AdvanceBookingDays); err != nil {
			uc.logger.Warn("CreateBooking: date validation failed: %v", err)
			return err
		}

		// 6.3. Проверяем рабочие часы и выравнивание по сетке
		workingHours := barber.WorkSchedule.ScheduleForWeekday(req.Date.Weekday())

		if err := validateSlotFitsWorkingHours(req.StartTime, service.DurationMinutes, workingHours, config.SlotGranularityMinutes); err != nil {
			uc.logger.Warn("CreateBooking: slot validation failed: %v", err)
			return err
		}

		// 6.4. Валидация времени записи (minLeadTimeMinutes)
		if err := validateBookingTime(req.Date, req.StartTime, now, config.MinLeadTimeMinutes); err != nil {
			uc.logger.Warn("CreateBooking: booking time validation failed: %v", err)
			return err
		}

		// 6.5. Получаем активные записи барбера на эту дату с блокировкой (FOR UPDATE)
		filter := domain.ShopBookingsFilter{
			ShopID:          req.ShopID,
			BarberID:        &req.BarberID,
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeInactive: false,
		}

		bookings, err := uc.bookingRepo.GetByShopWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		// 6.6. Проверяем пересечение с существующими записями
		// У барбера одно кресло: любое пересечение означает конфликт
		overlaps, err := hasOverlappingBooking(req.StartTime, service.DurationMinutes, bookings)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to check overlaps: %v", err)
			return fmt.Errorf("%w: failed to check overlaps: %v", ErrInternal, err)
		}

		if overlaps {
			uc.logger.Warn("CreateBooking: slot %s is already taken for barber id=%d", req.StartTime, req.BarberID)
			return ErrSlotConflict
		}

		// 6.7. Создаем запись с денормализацией данных услуги и барбера
		booking := &domain.Booking{
			ClientID:        req.ClientID,
			ShopID:          req.ShopID,
			BarberID:        req.BarberID,
			ServiceID:       req.ServiceID,
			BookingDate:     req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: service.DurationMinutes,
			Status:          domain.StatusConfirmed,
			ServiceName:     service.Name,
			ServicePrice:    getServicePrice(service),
			BarberName:      barber.DisplayName,
			Notes:           req.Notes,
		}

		// 6.8. Сохраняем запись
		// Частичный уникальный индекс в БД подстраховывает от гонки
		// при устаревшем снимке списка записей
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateBooking: slot %s was taken concurrently for barber id=%d", req.StartTime, req.BarberID)
				return ErrSlotConflict
			}

			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

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
		ServicePrice:    result.ServicePrice,
		BarberName:      result.BarberName,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// getServicePrice извлекает цену из услуги
// Если цена не указана (nil), возвращает 0.0
func getServicePrice(service *staffClient.Service) float64 {
	if service.Price == nil {
		return 0.0
	}
	return *service.Price
}
