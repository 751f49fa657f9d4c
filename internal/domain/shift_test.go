package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, min int) time.Time {
	return time.Date(2025, 6, 15, hour, min, 0, 0, time.UTC)
}

func TestCurrentShift(t *testing.T) {
	cases := []struct {
		clock time.Time
		want  Shift
	}{
		{at(5, 40), ShiftA},  // first minute of A
		{at(10, 0), ShiftA},
		{at(13, 59), ShiftA},
		{at(14, 0), ShiftB},  // boundary belongs to the starting shift
		{at(22, 19), ShiftB},
		{at(22, 20), ShiftC},
		{at(23, 59), ShiftC},
		{at(0, 0), ShiftC},   // C wraps midnight
		{at(5, 39), ShiftC},
	}
	for _, tc := range cases {
		got := CurrentShift(tc.clock, DefaultShiftWindows)
		assert.Equal(t, tc.want, got, "clock=%s", tc.clock.Format("15:04"))
	}
}

func TestCurrentShift_NoMatchFallsBackToA(t *testing.T) {
	windows := []ShiftWindow{{Shift: ShiftB, StartMin: 600, EndMin: 660}}
	assert.Equal(t, ShiftA, CurrentShift(at(2, 0), windows))
}

func TestShiftWindowLabel(t *testing.T) {
	assert.Equal(t, "Turno A (05:40 - 14:00)", DefaultShiftWindows[0].Label())
	assert.Equal(t, "Turno C (22:20 - 05:40)", DefaultShiftWindows[2].Label())
}

func TestValidateShift(t *testing.T) {
	assert.NoError(t, ValidateShift(ShiftA))
	assert.NoError(t, ValidateShift(ShiftC))
	assert.Error(t, ValidateShift(Shift("D")))
	assert.Error(t, ValidateShift(Shift("")))
}
