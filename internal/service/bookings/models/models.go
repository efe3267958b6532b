package models

import (
	"errors"
	"time"

	"github.com/strizhka/barbershop-booking/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену записи
type CancelBookingRequest struct {
	UserID             int64   `json:"userId"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// UpdateStatusRequest запрос на обновление статуса записи
type UpdateStatusRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}

// GetClientBookingsRequest запрос на получение записей клиента
type GetClientBookingsRequest struct {
	ClientID        int64 `json:"clientId"`
	IncludeInactive bool  `json:"includeInactive,omitempty"`
}

// GetShopAgendaRequest запрос на получение расписания барбершопа на день
type GetShopAgendaRequest struct {
	UserID        int64     `json:"userId"`
	ShopID        int64     `json:"shopId"`
	BarberID      *int64    `json:"barberId,omitempty"` // Фильтр по барберу (опционально)
	Date          time.Time `json:"date"`
	PixelsPerHour int       `json:"pixelsPerHour,omitempty"` // Масштаб сетки на клиенте
}

// Response модели

// BookingResponse ответ с данными записи
type BookingResponse struct {
	ID              int64  `json:"id"`
	ClientID        int64  `json:"clientId"`
	ShopID          int64  `json:"shopId"`
	BarberID        int64  `json:"barberId"`
	ServiceID       int64  `json:"serviceId"`
	BookingDate     string `json:"bookingDate"` // "2025-10-15"
	StartTime       string `json:"startTime"`   // "10:00"
	EndTime         string `json:"endTime"`     // "10:30"
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`

	// Денормализованные данные
	ServiceName  string  `json:"serviceName"`
	ServicePrice float64 `json:"servicePrice"`
	BarberName   string  `json:"barberName"`
	Notes        *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком записей
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// AgendaEntry запись в дневной сетке с геометрией для отрисовки
type AgendaEntry struct {
	Booking  BookingResponse `json:"booking"`
	OffsetPx int             `json:"offsetPx"` // Смещение блока от верха сетки
	HeightPx int             `json:"heightPx"` // Высота блока
}

// AgendaResponse ответ с дневной сеткой барбершопа
type AgendaResponse struct {
	ShopID   int64  `json:"shopId"`
	Date     string `json:"date"` // "2025-10-15"
	BarberID *int64 `json:"barberId,omitempty"`

	// Геометрия сетки
	GridStartHour int `json:"gridStartHour"`
	GridEndHour   int `json:"gridEndHour"`
	PixelsPerHour int `json:"pixelsPerHour"`
	TotalHeightPx int `json:"totalHeightPx"`

	// Индикатор текущего времени (только для сегодняшней даты в пределах сетки)
	NowOffsetPx *int `json:"nowOffsetPx,omitempty"`

	Entries []AgendaEntry `json:"entries"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		ClientID:           b.ClientID,
		ShopID:             b.ShopID,
		BarberID:           b.BarberID,
		ServiceID:          b.ServiceID,
		BookingDate:        b.BookingDate.Format(domain.DateFormat),
		StartTime:          b.StartTime.String(),
		DurationMinutes:    b.DurationMinutes,
		Status:             string(b.Status),
		ServiceName:        b.ServiceName,
		ServicePrice:       b.ServicePrice,
		BarberName:         b.BarberName,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if endTime, err := b.EndTime(); err == nil {
		resp.EndTime = endTime.String()
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for i := range bookings {
		if bookingResp := FromDomainBooking(&bookings[i]); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	switch domain.BookingStatus(status) {
	case domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusInProgress,
		domain.StatusCompleted,
		domain.StatusCancelledByClient,
		domain.StatusCancelledByShop,
		domain.StatusNoShow:
		return domain.BookingStatus(status), nil
	default:
		return "", ErrInvalidStatus
	}
}
