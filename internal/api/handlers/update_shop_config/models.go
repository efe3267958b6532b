package update_shop_config

import "github.com/strizhka/barbershop-booking/internal/service/config/models"

// UpsertConfigRequest HTTP request model
// Уровень иерархии задается сочетанием barberId и serviceId
type UpsertConfigRequest struct {
	BarberID               *int64 `json:"barberId,omitempty"`
	ServiceID              *int64 `json:"serviceId,omitempty"`
	SlotGranularityMinutes int    `json:"slotGranularityMinutes"`
	MinLeadTimeMinutes     int    `json:"minLeadTimeMinutes"`
	AdvanceBookingDays     int    `json:"advanceBookingDays"`
	GridStartHour          int    `json:"gridStartHour"`
	GridEndHour            int    `json:"gridEndHour"`
	GridSnapMinutes        int    `json:"gridSnapMinutes"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpsertConfigRequest) ToServiceRequest(shopID, userID int64) *models.UpsertConfigRequest {
	return &models.UpsertConfigRequest{
		UserID:                 userID,
		ShopID:                 shopID,
		BarberID:               r.BarberID,
		ServiceID:              r.ServiceID,
		SlotGranularityMinutes: r.SlotGranularityMinutes,
		MinLeadTimeMinutes:     r.MinLeadTimeMinutes,
		AdvanceBookingDays:     r.AdvanceBookingDays,
		GridStartHour:          r.GridStartHour,
		GridEndHour:            r.GridEndHour,
		GridSnapMinutes:        r.GridSnapMinutes,
	}
}
