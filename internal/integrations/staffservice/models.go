package staffservice

// Shop модель барбершопа из StaffService
type Shop struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	Address    string   `json:"address"`
	ManagerIDs []int64  `json:"manager_ids"`
	Barbers    []Barber `json:"barbers"`
}

// Barber модель барбера из StaffService
// Имя используется только для отображения, все связи - по ID
type Barber struct {
	ID           int64        `json:"id"`
	ShopID       int64        `json:"shop_id"`
	DisplayName  string       `json:"display_name"`
	IsActive     bool         `json:"is_active"`
	WorkSchedule WeekSchedule `json:"work_schedule"`
}

// Service модель услуги из StaffService
type Service struct {
	ID              int64    `json:"id"`
	ShopID          int64    `json:"shop_id"`
	Name            string   `json:"name"`
	DurationMinutes int      `json:"duration_minutes"`
	Price           *float64 `json:"price,omitempty"`
	BarberIDs       []int64  `json:"barber_ids"` // Барберы, выполняющие эту услугу
}

// WeekSchedule недельное расписание работы барбера
type WeekSchedule struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// DaySchedule расписание работы на один день недели
type DaySchedule struct {
	IsOpen    bool    `json:"is_open"`
	OpenTime  *string `json:"open_time,omitempty"`  // "09:00"
	CloseTime *string `json:"close_time,omitempty"` // "19:00"
}

// ErrorResponse модель ошибки от StaffService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
