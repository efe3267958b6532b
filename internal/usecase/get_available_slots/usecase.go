package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/strizhka/barbershop-booking/internal/domain"
	configRepo "github.com/strizhka/barbershop-booking/internal/infra/storage/config"
	staffClient "github.com/strizhka/barbershop-booking/internal/integrations/staffservice"
	"github.com/strizhka/barbershop-booking/pkg/ptr"
)

// UseCase use case для получения доступных слотов для записи
type UseCase struct {
	bookingRepo  BookingRepository
	configRepo   ConfigRepository
	staffClient  StaffServiceClient
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	configRepo ConfigRepository,
	staffClient StaffServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		configRepo:   configRepo,
		staffClient:  staffClient,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
// Слоты вычисляются заново при каждом вызове, ничего не кэшируется
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: shop=%d, barber=%d, service=%d, date=%s",
		req.ShopID, req.BarberID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем барбера вместе с его рабочим расписанием
	barber, err := uc.staffClient.GetBarber(ctx, req.ShopID, req.BarberID)
	if err != nil {
		if errors.Is(err, staffClient.ErrShopNotFound) {
			uc.logger.Warn("GetAvailableSlots: shop id=%d not found", req.ShopID)
			return nil, ErrShopNotFound
		}
		if errors.Is(err, staffClient.ErrBarberNotFound) {
			uc.logger.Warn("GetAvailableSlots: barber id=%d not found in shop id=%d", req.BarberID, req.ShopID)
			return nil, ErrBarberNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get barber id=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: failed to get barber: %v", ErrInternal, err)
	}

	// 4. Получаем услугу
	service, err := uc.staffClient.GetService(ctx, req.ShopID, req.ServiceID)
	if err != nil {
		if errors.Is(err, staffClient.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 5. Проверяем, что барбер выполняет эту услугу
	if err := validateServiceByBarber(service, req.BarberID); err != nil {
		uc.logger.Warn("GetAvailableSlots: service id=%d is not provided by barber id=%d",
			req.ServiceID, req.BarberID)
		return nil, err
	}

	// 6. Получаем конфигурацию слотов с учетом иерархии
	config, err := uc.configRepo.GetConfigWithHierarchy(ctx, req.ShopID, ptr.Ptr(req.BarberID), ptr.Ptr(req.ServiceID))
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get config: %v", err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}

	// Если конфигурация не найдена, используем дефолтные значения
	if config == nil {
		config = &domain.ShopSlotsConfig{
			SlotGranularityMinutes: domain.DefaultSlotGranularityMinutes,
			MinLeadTimeMinutes:     domain.DefaultMinLeadTimeMinutes,
			AdvanceBookingDays:     domain.DefaultAdvanceBookingDays,
		}
		uc.logger.Info("GetAvailableSlots: using default config for shop=%d, barber=%d, service=%d",
			req.ShopID, req.BarberID, req.ServiceID)
	} else {
		uc.logger.Info("GetAvailableSlots: using config id=%d", config.ID)
	}

	// 7. Валидация даты с учетом конфигурации
	if err := validateDate(req.Date, now, config.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 8. Получаем расписание барбера на указанный день недели
	workingHours := barber.WorkSchedule.ScheduleForWeekday(req.Date.Weekday())
	if !workingHours.IsOpen {
		uc.logger.Info("GetAvailableSlots: barber id=%d does not work on %s",
			req.BarberID, req.Date.Format(domain.DateFormat))
		return uc.emptyResponse(req), nil
	}

	// 9. Генерируем кандидатные времена начала услуги
	starts, err := generateCandidateStarts(
		workingHours,
		config.SlotGranularityMinutes,
		service.DurationMinutes,
		req.Date,
		now,
		config.MinLeadTimeMinutes,
	)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate candidate starts: %v", err)
		return nil, fmt.Errorf("%w: failed to generate candidate starts: %v", ErrInternal, err)
	}

	// 10. Получаем активные записи барбера на эту дату
	filter := domain.ShopBookingsFilter{
		ShopID:          req.ShopID,
		BarberID:        &req.BarberID,
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: false,
	}

	bookings, err := uc.bookingRepo.GetByShopWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 11. Оставляем только свободные слоты
	candidates := filterFreeSlots(starts, service.DurationMinutes, bookings)

	slots := make([]Slot, 0, len(candidates))
	for _, candidate := range candidates {
		slots = append(slots, Slot{
			StartTime:       candidate.StartTime,
			EndTime:         candidate.EndTime,
			DurationMinutes: candidate.DurationMinutes,
		})
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for shop=%d, barber=%d, service=%d, date=%s",
		len(slots), req.ShopID, req.BarberID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:      req.Date,
		ShopID:    req.ShopID,
		BarberID:  req.BarberID,
		ServiceID: req.ServiceID,
		Slots:     slots,
	}, nil
}

func (uc *UseCase) emptyResponse(req *Request) *Response {
	return &Response{
		Date:      req.Date,
		ShopID:    req.ShopID,
		BarberID:  req.BarberID,
		ServiceID: req.ServiceID,
		Slots:     []Slot{},
	}
}
