package domain

import (
	"fmt"
	"time"
)

// Shift is one of the three fixed daily production windows.
type Shift string

const (
	ShiftA Shift = "A"
	ShiftB Shift = "B"
	ShiftC Shift = "C"
)

// ShiftWindow is a clock-time window. Minutes are counted from midnight.
// A window whose end precedes its start wraps past midnight (shift C).
type ShiftWindow struct {
	Shift    Shift
	StartMin int
	EndMin   int
}

// DefaultShiftWindows mirrors the plant's fixed schedule:
// A 05:40-14:00, B 14:00-22:20, C 22:20-05:40.
var DefaultShiftWindows = []ShiftWindow{
	{Shift: ShiftA, StartMin: 5*60 + 40, EndMin: 14 * 60},
	{Shift: ShiftB, StartMin: 14 * 60, EndMin: 22*60 + 20},
	{Shift: ShiftC, StartMin: 22*60 + 20, EndMin: 5*60 + 40},
}

// Contains reports whether the clock time t falls inside the window.
func (w ShiftWindow) Contains(t time.Time) bool {
	min := t.Hour()*60 + t.Minute()
	if w.StartMin <= w.EndMin {
		return min >= w.StartMin && min < w.EndMin
	}
	// Wraps midnight.
	return min >= w.StartMin || min < w.EndMin
}

// Label renders the window as "Turno A (05:40 - 14:00)".
func (w ShiftWindow) Label() string {
	return fmt.Sprintf("Turno %s (%02d:%02d - %02d:%02d)",
		w.Shift, w.StartMin/60, w.StartMin%60, w.EndMin/60, w.EndMin%60)
}

// CurrentShift buckets t into a shift using the given windows.
// Falls back to shift A if no window matches (misconfigured schedule).
func CurrentShift(t time.Time, windows []ShiftWindow) Shift {
	for _, w := range windows {
		if w.Contains(t) {
			return w.Shift
		}
	}
	return ShiftA
}

// ValidateShift checks that s is one of the three plant shifts.
func ValidateShift(s Shift) error {
	switch s {
	case ShiftA, ShiftB, ShiftC:
		return nil
	}
	return fmt.Errorf("shift must be A, B or C, got %q", s)
}
