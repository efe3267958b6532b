package agenda

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strizhka/barbershop-booking/pkg/types"
)

func mustTime(t *testing.T, s string) types.TimeString {
	t.Helper()

	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)

	return ts
}

func TestNewGrid_DefaultsOnInvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		given    Grid
		expected Grid
	}{
		{
			name:     "valid geometry is kept",
			given:    NewGrid(8, 22, 60, 15),
			expected: Grid{StartHour: 8, EndHour: 22, PixelsPerHour: 60, SnapMinutes: 15},
		},
		{
			name:     "negative start hour falls back",
			given:    NewGrid(-1, 22, 60, 15),
			expected: Grid{StartHour: 0, EndHour: 22, PixelsPerHour: 60, SnapMinutes: 15},
		},
		{
			name:     "end before start falls back to midnight",
			given:    NewGrid(10, 9, 60, 15),
			expected: Grid{StartHour: 10, EndHour: 24, PixelsPerHour: 60, SnapMinutes: 15},
		},
		{
			name:     "zero pixels per hour falls back",
			given:    NewGrid(8, 22, 0, 15),
			expected: Grid{StartHour: 8, EndHour: 22, PixelsPerHour: 60, SnapMinutes: 15},
		},
		{
			name:     "zero snap falls back",
			given:    NewGrid(8, 22, 60, 0),
			expected: Grid{StartHour: 8, EndHour: 22, PixelsPerHour: 60, SnapMinutes: 15},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, tt.given)
		})
	}
}

func TestGrid_OffsetForTime(t *testing.T) {
	t.Parallel()

	grid := NewGrid(8, 22, 60, 15)

	tests := []struct {
		time     string
		expected int
	}{
		{time: "08:00", expected: 0},
		{time: "09:00", expected: 60},
		{time: "09:30", expected: 90},
		{time: "13:07", expected: 307},
		{time: "22:00", expected: 840},
		// Времена вне окна прижимаются к границам
		{time: "07:00", expected: 0},
		{time: "23:30", expected: 840},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.time, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, grid.OffsetForTime(mustTime(t, tt.time)))
		})
	}
}

func TestGrid_HeightForDuration(t *testing.T) {
	t.Parallel()

	grid := NewGrid(8, 22, 60, 15)

	assert.Equal(t, 60, grid.HeightForDuration(60))
	assert.Equal(t, 45, grid.HeightForDuration(45))
	assert.Equal(t, 30, grid.HeightForDuration(30))
	assert.Equal(t, 0, grid.HeightForDuration(0))
	assert.Equal(t, 0, grid.HeightForDuration(-10))
}

func TestGrid_TimeAtOffset_Snapping(t *testing.T) {
	t.Parallel()

	grid := NewGrid(8, 22, 60, 15)

	tests := []struct {
		offsetPx int
		expected string
	}{
		{offsetPx: 0, expected: "08:00"},
		{offsetPx: 60, expected: "09:00"},
		// 307px -> 13:07, ближайшая граница шага - 13:00
		{offsetPx: 307, expected: "13:00"},
		// 308px -> 13:08, округляется вверх до 13:15
		{offsetPx: 308, expected: "13:15"},
		{offsetPx: 97, expected: "09:30"},
		// Смещения вне сетки прижимаются к границам
		{offsetPx: -50, expected: "08:00"},
		{offsetPx: 10000, expected: "22:00"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(fmt.Sprintf("%dpx", tt.offsetPx), func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, grid.TimeAtOffset(tt.offsetPx).String())
		})
	}
}

func TestGrid_RoundTrip_WithinOneSnapStep(t *testing.T) {
	t.Parallel()

	grid := NewGrid(8, 22, 60, 15)

	// Прямое и обратное преобразование расходятся не больше чем на шаг привязки
	for minutes := 8 * 60; minutes <= 22*60; minutes += 7 {
		original, err := types.NewTimeStringFromMinutes(minutes)
		require.NoError(t, err)

		offset := grid.OffsetForTime(original)
		restored := grid.TimeAtOffset(offset)

		restoredMinutes, err := restored.Minutes()
		require.NoError(t, err)

		diff := restoredMinutes - minutes
		if diff < 0 {
			diff = -diff
		}

		assert.LessOrEqual(t, diff, grid.SnapMinutes,
			"round trip for %s drifted by %d minutes", original, diff)
	}
}

func TestGrid_SnapTime(t *testing.T) {
	t.Parallel()

	grid := NewGrid(8, 22, 60, 15)

	assert.Equal(t, "13:00", grid.SnapTime(mustTime(t, "13:07")).String())
	assert.Equal(t, "13:15", grid.SnapTime(mustTime(t, "13:08")).String())
	assert.Equal(t, "13:15", grid.SnapTime(mustTime(t, "13:15")).String())
	// Времена вне окна прижимаются после округления
	assert.Equal(t, "08:00", grid.SnapTime(mustTime(t, "06:30")).String())
	assert.Equal(t, "22:00", grid.SnapTime(mustTime(t, "23:59")).String())
}

func TestGrid_NowOffset(t *testing.T) {
	t.Parallel()

	grid := NewGrid(8, 22, 60, 15)

	offset, visible := grid.NowOffset(13, 30)
	assert.True(t, visible)
	assert.Equal(t, 330, offset)

	_, visible = grid.NowOffset(6, 0)
	assert.False(t, visible)

	_, visible = grid.NowOffset(23, 15)
	assert.False(t, visible)
}

func TestGrid_Contains(t *testing.T) {
	t.Parallel()

	grid := NewGrid(8, 22, 60, 15)

	assert.True(t, grid.Contains(mustTime(t, "08:00")))
	assert.True(t, grid.Contains(mustTime(t, "15:45")))
	assert.True(t, grid.Contains(mustTime(t, "22:00")))
	assert.False(t, grid.Contains(mustTime(t, "07:59")))
	assert.False(t, grid.Contains(mustTime(t, "22:01")))
}

func TestGrid_TotalDimensions(t *testing.T) {
	t.Parallel()

	grid := NewGrid(8, 22, 60, 15)

	assert.Equal(t, 840, grid.TotalMinutes())
	assert.Equal(t, 840, grid.TotalHeight())

	tall := NewGrid(9, 18, 120, 30)
	assert.Equal(t, 540, tall.TotalMinutes())
	assert.Equal(t, 1080, tall.TotalHeight())
}
