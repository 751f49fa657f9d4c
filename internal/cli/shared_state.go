package cli

import (
	"time"

	"github.com/castroluiz/plastiq/internal/domain"
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Terminal dimensions
	Width  int
	Height int
}

// CurrentShift returns the shift covering the current wall clock,
// per the configured shift windows.
func (s *SharedState) CurrentShift() domain.Shift {
	return domain.CurrentShift(time.Now(), s.App.ShiftWindows)
}

// ContentHeight returns the available height for view content,
// accounting for the header and the status bar (two lines each).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 4
	if h < 1 {
		return 1
	}
	return h
}
