package domain

import "time"

// ShopSlotsConfig represents the booking configuration for a barbershop
// Supports hierarchical configuration:
// 1. Service with specific barber (shop_id, barber_id, service_id)
// 2. Barber-wide (shop_id, barber_id, NULL)
// 3. Service-wide (shop_id, NULL, service_id)
// 4. Shop-wide (shop_id, NULL, NULL)
type ShopSlotsConfig struct {
	ID                     int64
	ShopID                 int64
	BarberID               *int64 // NULL = config for all barbers
	ServiceID              *int64 // NULL = config for all services
	SlotGranularityMinutes int    // Шаг перебора кандидатов слотов
	MinLeadTimeMinutes     int    // Минимальный буфер между "сейчас" и началом слота (только для сегодня)
	AdvanceBookingDays     int    // 0 = unlimited

	// Геометрия календарной сетки агенды
	GridStartHour   int // Верхняя граница сетки (час)
	GridEndHour     int // Нижняя граница сетки (час)
	GridSnapMinutes int // Шаг округления при drag-and-drop

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsGlobalConfig returns true if this is a shop-wide configuration
func (c *ShopSlotsConfig) IsGlobalConfig() bool {
	return c.BarberID == nil && c.ServiceID == nil
}

// IsBarberSpecific returns true if this configuration is for a specific barber
func (c *ShopSlotsConfig) IsBarberSpecific() bool {
	return c.BarberID != nil && c.ServiceID == nil
}

// IsServiceSpecific returns true if this configuration is for a specific service (all barbers)
func (c *ShopSlotsConfig) IsServiceSpecific() bool {
	return c.BarberID == nil && c.ServiceID != nil
}

// IsServiceWithBarber returns true if this configuration is for a specific service with a specific barber
func (c *ShopSlotsConfig) IsServiceWithBarber() bool {
	return c.BarberID != nil && c.ServiceID != nil
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (c *ShopSlotsConfig) HasAdvanceBookingLimit() bool {
	return c.AdvanceBookingDays > 0
}
