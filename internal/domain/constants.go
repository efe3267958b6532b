package domain

// Default configuration values
const (
	DefaultSlotGranularityMinutes = 10
	DefaultMinLeadTimeMinutes     = 20
	DefaultAdvanceBookingDays     = 0 // 0 = unlimited
	DefaultGridStartHour          = 8
	DefaultGridEndHour            = 22
	DefaultGridSnapMinutes        = 15
	DefaultGridPixelsPerHour      = 60
)

// Business validation constants
const (
	MinSlotGranularityMinutes   = 5
	MaxSlotGranularityMinutes   = 60
	MinLeadTimeMinutesLimit     = 0
	MaxLeadTimeMinutesLimit     = 1440 // 1 day
	MinAdvanceBookingDays       = 0
	MaxAdvanceBookingDays       = 365 // 1 year
	MinGridSnapMinutes          = 5
	MaxGridSnapMinutes          = 60
	MinServiceDurationMinutes   = 5
	MaxServiceDurationMinutes   = 480 // 8 hours
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов неактивных бронирований
// Неактивные бронирования не занимают время в календаре барбера
var InactiveStatuses = []BookingStatus{
	StatusCancelledByClient,
	StatusCancelledByShop,
	StatusNoShow,
}

// ActiveStatuses список статусов активных бронирований
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
}
