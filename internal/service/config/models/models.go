package models

import (
	"time"

	"github.com/strizhka/barbershop-booking/internal/domain"
)

// Request модели

// GetConfigRequest запрос на получение эффективной конфигурации
// BarberID и ServiceID могут быть nil для иерархического поиска
type GetConfigRequest struct {
	ShopID    int64  `json:"shopId"`
	BarberID  *int64 `json:"barberId,omitempty"`  // nil означает любой барбер
	ServiceID *int64 `json:"serviceId,omitempty"` // nil означает любая услуга
}

// UpsertConfigRequest запрос на создание или обновление конфигурации слотов
// Уровень иерархии задается сочетанием BarberID и ServiceID
type UpsertConfigRequest struct {
	UserID                 int64  `json:"userId"`
	ShopID                 int64  `json:"shopId"`
	BarberID               *int64 `json:"barberId,omitempty"`  // NULL = для всех барберов
	ServiceID              *int64 `json:"serviceId,omitempty"` // NULL = для всех услуг
	SlotGranularityMinutes int    `json:"slotGranularityMinutes"`
	MinLeadTimeMinutes     int    `json:"minLeadTimeMinutes"`
	AdvanceBookingDays     int    `json:"advanceBookingDays"` // 0 = без ограничений
	GridStartHour          int    `json:"gridStartHour"`
	GridEndHour            int    `json:"gridEndHour"`
	GridSnapMinutes        int    `json:"gridSnapMinutes"`
}

// DeleteConfigRequest запрос на удаление конфигурации
type DeleteConfigRequest struct {
	UserID   int64 `json:"userId"`
	ShopID   int64 `json:"shopId"`
	ConfigID int64 `json:"configId"`
}

// Response модели

// ConfigResponse ответ с данными конфигурации слотов
type ConfigResponse struct {
	ID                     int64     `json:"id"`
	ShopID                 int64     `json:"shopId"`
	BarberID               *int64    `json:"barberId,omitempty"`
	ServiceID              *int64    `json:"serviceId,omitempty"`
	SlotGranularityMinutes int       `json:"slotGranularityMinutes"`
	MinLeadTimeMinutes     int       `json:"minLeadTimeMinutes"`
	AdvanceBookingDays     int       `json:"advanceBookingDays"`
	GridStartHour          int       `json:"gridStartHour"`
	GridEndHour            int       `json:"gridEndHour"`
	GridSnapMinutes        int       `json:"gridSnapMinutes"`
	CreatedAt              time.Time `json:"createdAt"`
	UpdatedAt              time.Time `json:"updatedAt"`
}

// ConfigListResponse ответ со списком конфигураций
type ConfigListResponse struct {
	Configs []ConfigResponse `json:"configs"`
}

// Методы конвертации

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.ShopSlotsConfig) *ConfigResponse {
	if c == nil {
		return nil
	}

	return &ConfigResponse{
		ID:                     c.ID,
		ShopID:                 c.ShopID,
		BarberID:               c.BarberID,
		ServiceID:              c.ServiceID,
		SlotGranularityMinutes: c.SlotGranularityMinutes,
		MinLeadTimeMinutes:     c.MinLeadTimeMinutes,
		AdvanceBookingDays:     c.AdvanceBookingDays,
		GridStartHour:          c.GridStartHour,
		GridEndHour:            c.GridEndHour,
		GridSnapMinutes:        c.GridSnapMinutes,
		CreatedAt:              c.CreatedAt,
		UpdatedAt:              c.UpdatedAt,
	}
}

// FromDomainConfigList конвертирует список domain моделей в DTO
func FromDomainConfigList(configs []domain.ShopSlotsConfig) *ConfigListResponse {
	resp := &ConfigListResponse{
		Configs: make([]ConfigResponse, 0, len(configs)),
	}

	for i := range configs {
		if configResp := FromDomainConfig(&configs[i]); configResp != nil {
			resp.Configs = append(resp.Configs, *configResp)
		}
	}

	return resp
}

// ToDomainConfig конвертирует UpsertConfigRequest в domain модель
func (r *UpsertConfigRequest) ToDomainConfig() *domain.ShopSlotsConfig {
	return &domain.ShopSlotsConfig{
		ShopID:                 r.ShopID,
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
