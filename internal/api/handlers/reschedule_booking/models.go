package reschedule_booking

import (
	"time"

	"github.com/strizhka/barbershop-booking/internal/domain"
	rescheduleBooking "github.com/strizhka/barbershop-booking/internal/usecase/reschedule_booking"
	"github.com/strizhka/barbershop-booking/pkg/types"
)

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	NewDate string `json:"newDate"` // "2025-10-15"
	NewTime string `json:"newTime"` // "14:30"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64  `json:"id"`
	ClientID        int64  `json:"clientId"`
	ShopID          int64  `json:"shopId"`
	BarberID        int64  `json:"barberId"`
	ServiceID       int64  `json:"serviceId"`
	BookingDate     string `json:"bookingDate"`
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
	ServiceName     string `json:"serviceName"`
	BarberName      string `json:"barberName"`
	UpdatedAt       string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleBookingRequest) ToUseCaseRequest(bookingID, userID int64) (*rescheduleBooking.Request, error) {
	newDate, err := time.Parse(domain.DateFormat, r.NewDate)
	if err != nil {
		return nil, err
	}

	newTime, err := types.NewTimeStringFromString(r.NewTime)
	if err != nil {
		return nil, err
	}

	return &rescheduleBooking.Request{
		BookingID: bookingID,
		ClientID:  userID,
		NewDate:   newDate,
		NewTime:   newTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		ClientID:        resp.ClientID,
		ShopID:          resp.ShopID,
		BarberID:        resp.BarberID,
		ServiceID:       resp.ServiceID,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		ServiceName:     resp.ServiceName,
		BarberName:      resp.BarberName,
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
