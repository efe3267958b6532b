package resolve_drop

import (
	"time"

	"github.com/strizhka/barbershop-booking/internal/domain"
	resolveDrop "github.com/strizhka/barbershop-booking/internal/usecase/resolve_drop"
)

// ResolveDropRequest HTTP request model
// OffsetPx - вертикальное смещение точки сброса от верха сетки,
// PixelsPerHour - масштаб сетки на клиенте
type ResolveDropRequest struct {
	BookingID     int64  `json:"bookingId"`
	TargetDate    string `json:"targetDate"` // "2025-10-15"
	OffsetPx      int    `json:"offsetPx"`
	PixelsPerHour int    `json:"pixelsPerHour,omitempty"`
}

// ResolveDropResponse HTTP response model
// Запись не сохраняется: подтверждение переноса выполняется отдельным вызовом
type ResolveDropResponse struct {
	BookingID    int64   `json:"bookingId"`
	TargetDate   string  `json:"targetDate"`
	ResolvedTime string  `json:"resolvedTime"` // "14:30"
	EndTime      string  `json:"endTime"`
	OffsetPx     int     `json:"offsetPx"`
	HeightPx     int     `json:"heightPx"`
	HasConflict  bool    `json:"hasConflict"`
	Conflicts    []int64 `json:"conflicts"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ResolveDropRequest) ToUseCaseRequest(shopID int64) (*resolveDrop.Request, error) {
	targetDate, err := time.Parse(domain.DateFormat, r.TargetDate)
	if err != nil {
		return nil, err
	}

	return &resolveDrop.Request{
		BookingID:     r.BookingID,
		ShopID:        shopID,
		TargetDate:    targetDate,
		OffsetPx:      r.OffsetPx,
		PixelsPerHour: r.PixelsPerHour,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *resolveDrop.Response) *ResolveDropResponse {
	conflicts := resp.Conflicts
	if conflicts == nil {
		conflicts = []int64{}
	}

	return &ResolveDropResponse{
		BookingID:    resp.BookingID,
		TargetDate:   resp.TargetDate.Format(domain.DateFormat),
		ResolvedTime: resp.ResolvedTime.String(),
		EndTime:      resp.EndTime.String(),
		OffsetPx:     resp.OffsetPx,
		HeightPx:     resp.HeightPx,
		HasConflict:  resp.HasConflict,
		Conflicts:    conflicts,
	}
}
