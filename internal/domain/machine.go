package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var machineNumberPattern = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

// Machine is an injection-molding machine resource.
type Machine struct {
	ID                  string
	Number              string
	Brand               string
	CapacityTon         float64
	Status              EquipmentStatus
	NextMaintenanceDate *time.Time
	LastMaintenanceDate *time.Time
	HourMeter           int
	HourMeterNextMaint  *int
	Notes               string
	CreatedAt           time.Time
}

// NewMachine builds a validated machine in the available state.
// The ID is assigned by the service layer on creation.
func NewMachine(number, brand string, capacityTon float64) (*Machine, error) {
	number = strings.TrimSpace(number)
	brand = strings.TrimSpace(brand)

	if number == "" {
		return nil, fmt.Errorf("machine number is required")
	}
	if !machineNumberPattern.MatchString(number) {
		return nil, fmt.Errorf("machine number %q may contain only letters, digits and hyphens", number)
	}
	if brand == "" {
		return nil, fmt.Errorf("brand is required")
	}
	if capacityTon <= 0 {
		return nil, fmt.Errorf("capacity must be greater than zero, got %.2f", capacityTon)
	}

	return &Machine{
		Number:      number,
		Brand:       brand,
		CapacityTon: capacityTon,
		Status:      EquipmentAvailable,
	}, nil
}

// MaintenanceDue reports whether the machine's hour meter has reached its
// next scheduled maintenance threshold.
func (m *Machine) MaintenanceDue() bool {
	return m.HourMeterNextMaint != nil && m.HourMeter >= *m.HourMeterNextMaint
}
