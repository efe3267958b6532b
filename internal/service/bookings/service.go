package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/strizhka/barbershop-booking/internal/agenda"
	"github.com/strizhka/barbershop-booking/internal/domain"
	bookingRepo "github.com/strizhka/barbershop-booking/internal/infra/storage/booking"
	configRepo "github.com/strizhka/barbershop-booking/internal/infra/storage/config"
	staffClient "github.com/strizhka/barbershop-booking/internal/integrations/staffservice"
	"github.com/strizhka/barbershop-booking/internal/service/bookings/models"
)

// Service сервис для работы с записями
type Service struct {
	bookingRepo  BookingRepository
	configRepo   ConfigRepository
	staffClient  StaffServiceClient
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	bookingRepo BookingRepository,
	configRepo ConfigRepository,
	staffClient StaffServiceClient,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		configRepo:   configRepo,
		staffClient:  staffClient,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает запись по ID
// Клиент видит только свои записи, менеджер барбершопа - любые записи барбершопа
func (s *Service) GetByID(ctx context.Context, bookingID int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", bookingID, userID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkUserAccess(ctx, booking, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, bookingID)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", bookingID)
	return models.FromDomainBooking(booking), nil
}

// GetClientBookings получает историю записей клиента от новых к старым
func (s *Service) GetClientBookings(ctx context.Context, req *models.GetClientBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetClientBookings: fetching bookings for client=%d, includeInactive=%t",
		req.ClientID, req.IncludeInactive)

	bookings, err := s.bookingRepo.GetByClientID(ctx, req.ClientID, req.IncludeInactive)
	if err != nil {
		s.logger.Error("GetClientBookings: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientBookings: successfully fetched %d bookings for client=%d", len(bookings), req.ClientID)
	return models.FromDomainBookingList(bookings), nil
}

// GetShopAgenda получает дневную сетку барбершопа: записи с геометрией
// для отрисовки и индикатором текущего времени
// Доступно только менеджерам барбершопа
func (s *Service) GetShopAgenda(ctx context.Context, req *models.GetShopAgendaRequest) (*models.AgendaResponse, error) {
	s.logger.Info("GetShopAgenda: shop=%d, user=%d, date=%s",
		req.ShopID, req.UserID, req.Date.Format(domain.DateFormat))

	if err := s.checkManagerAccess(ctx, req.ShopID, req.UserID); err != nil {
		return nil, err
	}

	// Геометрия сетки из конфигурации барбершопа
	config, err := s.configRepo.GetConfigWithHierarchy(ctx, req.ShopID, req.BarberID, nil)
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		s.logger.Error("GetShopAgenda: failed to get config for shop=%d: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: GetShopAgenda - failed to get config: %v", ErrInternal, err)
	}

	startHour := domain.DefaultGridStartHour
	endHour := domain.DefaultGridEndHour
	snapMinutes := domain.DefaultGridSnapMinutes
	if config != nil {
		startHour = config.GridStartHour
		endHour = config.GridEndHour
		snapMinutes = config.GridSnapMinutes
	}

	pixelsPerHour := req.PixelsPerHour
	if pixelsPerHour <= 0 {
		pixelsPerHour = domain.DefaultGridPixelsPerHour
	}

	grid := agenda.NewGrid(startHour, endHour, pixelsPerHour, snapMinutes)

	// Записи барбершопа на дату
	filter := domain.ShopBookingsFilter{
		ShopID:          req.ShopID,
		BarberID:        req.BarberID,
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: false,
	}

	bookings, err := s.bookingRepo.GetByShopWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetShopAgenda: repository error for shop=%d: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: GetShopAgenda - repository error: %v", ErrInternal, err)
	}

	entries := make([]models.AgendaEntry, 0, len(bookings))
	for i := range bookings {
		b := &bookings[i]

		entries = append(entries, models.AgendaEntry{
			Booking:  *models.FromDomainBooking(b),
			OffsetPx: grid.OffsetForTime(b.StartTime),
			HeightPx: grid.HeightForDuration(b.DurationMinutes),
		})
	}

	resp := &models.AgendaResponse{
		ShopID:        req.ShopID,
		Date:          req.Date.Format(domain.DateFormat),
		BarberID:      req.BarberID,
		GridStartHour: grid.StartHour,
		GridEndHour:   grid.EndHour,
		PixelsPerHour: grid.PixelsPerHour,
		TotalHeightPx: grid.TotalHeight(),
		Entries:       entries,
	}

	// Индикатор текущего времени показываем только для сегодняшней даты
	now := s.timeProvider.Now()
	if sameDay(now, req.Date) {
		if offset, visible := grid.NowOffset(now.Hour(), now.Minute()); visible {
			resp.NowOffsetPx = &offset
		}
	}

	s.logger.Info("GetShopAgenda: built agenda with %d entries for shop=%d", len(entries), req.ShopID)
	return resp, nil
}

// Cancel отменяет запись
// Клиент может отменить только свою запись (cancelled_by_client),
// менеджер барбершопа - любую запись барбершопа (cancelled_by_shop)
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return nil, ErrCannotCancel
	}

	// Определяем статус отмены в зависимости от прав доступа
	var cancelStatus domain.BookingStatus

	if booking.ClientID == req.UserID {
		cancelStatus = domain.StatusCancelledByClient
	} else {
		if err := s.checkManagerAccess(ctx, booking.ShopID, req.UserID); err != nil {
			s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", req.UserID, bookingID)
			return nil, ErrAccessDenied
		}
		cancelStatus = domain.StatusCancelledByShop
	}

	cancelled, err := s.bookingRepo.Cancel(ctx, bookingID, cancelStatus, req.CancellationReason)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found during cancellation", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d with status=%s", bookingID, cancelStatus)
	return models.FromDomainBooking(cancelled), nil
}

// UpdateStatus обновляет статус записи
// Доступно только менеджерам барбершопа
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by user=%d",
		bookingID, req.Status, req.UserID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if err := s.checkManagerAccess(ctx, booking.ShopID, req.UserID); err != nil {
		return nil, err
	}

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	updated, err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found during update", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)
	return models.FromDomainBooking(updated), nil
}

// Вспомогательные методы

// checkUserAccess проверяет, что пользователь имеет доступ к записи
func (s *Service) checkUserAccess(ctx context.Context, booking *domain.Booking, userID int64) error {
	if booking.ClientID == userID {
		return nil
	}

	if err := s.checkManagerAccess(ctx, booking.ShopID, userID); err != nil {
		return ErrAccessDenied
	}

	return nil
}

// checkManagerAccess проверяет, что пользователь является менеджером барбершопа
func (s *Service) checkManagerAccess(ctx context.Context, shopID int64, userID int64) error {
	shop, err := s.staffClient.GetShop(ctx, shopID)
	if err != nil {
		if errors.Is(err, staffClient.ErrShopNotFound) {
			s.logger.Warn("checkManagerAccess: shop id=%d not found", shopID)
			return ErrShopNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get shop id=%d: %v", shopID, err)
		return fmt.Errorf("%w: checkManagerAccess - failed to get shop: %v", ErrInternal, err)
	}

	for _, managerID := range shop.ManagerIDs {
		if managerID == userID {
			return nil
		}
	}

	s.logger.Warn("checkManagerAccess: user=%d is not a manager of shop=%d", userID, shopID)
	return ErrAccessDenied
}

// sameDay проверяет, что две даты относятся к одному и тому же дню
func sameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
