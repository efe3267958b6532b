package resolve_drop

import (
	"time"

	"github.com/strizhka/barbershop-booking/pkg/types"
)

// Request модель запроса на разрешение перетаскивания записи по сетке
type Request struct {
	BookingID  int64     // ID перетаскиваемой записи
	ShopID     int64     // ID барбершопа (владелец сетки)
	TargetDate time.Time // Дата колонки, в которую уронили запись
	OffsetPx   int       // Вертикальное смещение точки сброса в пикселях

	// Масштаб сетки на клиенте; при нуле используется значение по умолчанию
	PixelsPerHour int
}

// Response модель ответа с результатом разрешения
// Время уже привязано к сетке; запись НЕ сохраняется - подтверждение
// переноса выполняется отдельным вызовом
type Response struct {
	BookingID    int64            // ID записи
	TargetDate   time.Time        // Целевая дата
	ResolvedTime types.TimeString // Привязанное к сетке время начала
	EndTime      types.TimeString // Время окончания услуги
	OffsetPx     int              // Смещение привязанного времени в пикселях
	HeightPx     int              // Высота блока записи в пикселях

	HasConflict bool    // Пересекается ли новое время с другими записями
	Conflicts   []int64 // ID конфликтующих записей
}
