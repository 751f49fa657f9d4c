package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Mold is a tooling resource. Cycle counters accumulate with production
// appointments and drive preventive maintenance.
type Mold struct {
	ID                  string
	Name                string
	Manufacturer        string
	Cavities            int
	TotalCycles         int
	CyclesSinceMaint    int
	MaintEveryCycles    *int // nil when the mold has no preventive schedule
	LastMaintenanceDate *time.Time
	Status              EquipmentStatus
	Notes               string
	CreatedAt           time.Time
}

// NewMold builds a validated mold in the available state.
func NewMold(name, manufacturer string, cavities int, maintEveryCycles *int) (*Mold, error) {
	name = strings.TrimSpace(name)
	manufacturer = strings.TrimSpace(manufacturer)

	if name == "" {
		return nil, fmt.Errorf("mold name is required")
	}
	if n := utf8.RuneCountInString(name); n < 3 || n > 50 {
		return nil, fmt.Errorf("mold name must be between 3 and 50 characters, got %d", n)
	}
	if manufacturer == "" {
		return nil, fmt.Errorf("manufacturer is required")
	}
	if cavities <= 0 {
		return nil, fmt.Errorf("cavity count must be greater than zero, got %d", cavities)
	}
	if maintEveryCycles != nil && *maintEveryCycles <= 0 {
		return nil, fmt.Errorf("maintenance cycle interval must be greater than zero, got %d", *maintEveryCycles)
	}

	return &Mold{
		Name:             name,
		Manufacturer:     manufacturer,
		Cavities:         cavities,
		MaintEveryCycles: maintEveryCycles,
		Status:           EquipmentAvailable,
	}, nil
}

// AddCycles advances both cycle counters by n shots.
func (m *Mold) AddCycles(n int) {
	if n <= 0 {
		return
	}
	m.TotalCycles += n
	m.CyclesSinceMaint += n
}

// MaintenanceDue reports whether the mold has run past its preventive
// maintenance interval.
func (m *Mold) MaintenanceDue() bool {
	return m.MaintEveryCycles != nil && m.CyclesSinceMaint >= *m.MaintEveryCycles
}

// CyclesFor returns the number of shots required to produce qty pieces,
// rounding up for a partial last shot.
func (m *Mold) CyclesFor(qty int) int {
	if qty <= 0 || m.Cavities <= 0 {
		return 0
	}
	return (qty + m.Cavities - 1) / m.Cavities
}
