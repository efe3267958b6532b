package agenda

import (
	"github.com/strizhka/barbershop-booking/pkg/types"
)

// Grid описывает геометрию дневной сетки расписания
// Все вычисления чистые: никаких запросов к БД или внешним сервисам
type Grid struct {
	StartHour     int // Первый час сетки (включительно)
	EndHour       int // Последний час сетки (исключительно)
	PixelsPerHour int // Высота одного часа в пикселях
	SnapMinutes   int // Шаг привязки при перетаскивании
}

// NewGrid создает сетку с валидацией геометрии
// Некорректные значения заменяются безопасными умолчаниями
func NewGrid(startHour, endHour, pixelsPerHour, snapMinutes int) Grid {
	if startHour < 0 || startHour > 23 {
		startHour = 0
	}
	if endHour <= startHour || endHour > 24 {
		endHour = 24
	}
	if pixelsPerHour <= 0 {
		pixelsPerHour = 60
	}
	if snapMinutes <= 0 || snapMinutes > 60 {
		snapMinutes = 15
	}

	return Grid{
		StartHour:     startHour,
		EndHour:       endHour,
		PixelsPerHour: pixelsPerHour,
		SnapMinutes:   snapMinutes,
	}
}

// TotalMinutes возвращает длину окна сетки в минутах
func (g Grid) TotalMinutes() int {
	return (g.EndHour - g.StartHour) * 60
}

// TotalHeight возвращает полную высоту сетки в пикселях
func (g Grid) TotalHeight() int {
	return (g.EndHour - g.StartHour) * g.PixelsPerHour
}

// OffsetForTime переводит время суток в вертикальное смещение в пикселях
// от верха сетки. Времена до начала окна прижимаются к нулю,
// после конца - к полной высоте
func (g Grid) OffsetForTime(t types.TimeString) int {
	minutes, err := t.Minutes()
	if err != nil {
		return 0
	}

	return g.offsetForMinutes(minutes)
}

// HeightForDuration переводит длительность в минутах в высоту в пикселях
// Длительность, выходящая за нижнюю границу сетки, обрезается вызывающей стороной
func (g Grid) HeightForDuration(durationMinutes int) int {
	if durationMinutes <= 0 {
		return 0
	}

	return durationMinutes * g.PixelsPerHour / 60
}

// TimeAtOffset переводит вертикальное смещение в пикселях во время суток,
// привязанное к ближайшей границе SnapMinutes. Смещения вне сетки
// прижимаются к границам окна. Обратное преобразование к OffsetForTime
// с точностью до одного шага привязки
func (g Grid) TimeAtOffset(offsetPx int) types.TimeString {
	minutes := g.minutesAtOffset(offsetPx)

	// Привязка к ближайшей границе шага (round half up)
	snapped := (minutes + g.SnapMinutes/2) / g.SnapMinutes * g.SnapMinutes

	return g.timeForMinutes(snapped)
}

// TimeAtOffsetUnsnapped переводит смещение во время суток без привязки к шагу
func (g Grid) TimeAtOffsetUnsnapped(offsetPx int) types.TimeString {
	return g.timeForMinutes(g.minutesAtOffset(offsetPx))
}

// SnapTime привязывает время суток к ближайшей границе SnapMinutes
// внутри окна сетки
func (g Grid) SnapTime(t types.TimeString) types.TimeString {
	minutes, err := t.Minutes()
	if err != nil {
		return g.timeForMinutes(g.StartHour * 60)
	}

	snapped := (minutes + g.SnapMinutes/2) / g.SnapMinutes * g.SnapMinutes

	return g.timeForMinutes(snapped)
}

// Contains возвращает true, если время суток попадает в окно сетки
func (g Grid) Contains(t types.TimeString) bool {
	minutes, err := t.Minutes()
	if err != nil {
		return false
	}

	return minutes >= g.StartHour*60 && minutes <= g.EndHour*60
}

// NowOffset возвращает смещение текущего времени в пикселях для индикатора
// "сейчас" и признак, виден ли индикатор в окне сетки
func (g Grid) NowOffset(hour, minute int) (int, bool) {
	minutes := hour*60 + minute
	if minutes < g.StartHour*60 || minutes > g.EndHour*60 {
		return 0, false
	}

	return g.offsetForMinutes(minutes), true
}

func (g Grid) offsetForMinutes(minutes int) int {
	minutes = g.clampMinutes(minutes)

	return (minutes - g.StartHour*60) * g.PixelsPerHour / 60
}

func (g Grid) minutesAtOffset(offsetPx int) int {
	if offsetPx < 0 {
		offsetPx = 0
	}
	if offsetPx > g.TotalHeight() {
		offsetPx = g.TotalHeight()
	}

	return g.StartHour*60 + offsetPx*60/g.PixelsPerHour
}

// timeForMinutes прижимает минуты к окну сетки и конвертирует в TimeString
func (g Grid) timeForMinutes(minutes int) types.TimeString {
	t, err := types.NewTimeStringFromMinutes(g.clampMinutes(minutes))
	if err != nil {
		// Окно сетки валидировано в NewGrid, сюда попасть нельзя
		t, _ = types.NewTimeStringFromMinutes(g.StartHour * 60)
	}

	return t
}

func (g Grid) clampMinutes(minutes int) int {
	if minutes < g.StartHour*60 {
		return g.StartHour * 60
	}
	if minutes > g.EndHour*60 {
		return g.EndHour * 60
	}

	return minutes
}
