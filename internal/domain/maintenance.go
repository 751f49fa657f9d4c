package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MaintenanceRecord documents a service event on a machine or mold.
type MaintenanceRecord struct {
	ID            string
	EquipmentKind EquipmentKind
	EquipmentID   string
	Date          time.Time
	Type          MaintenanceType
	Description   string
	Technician    string
	Cost          decimal.Decimal
	DowntimeHours float64
	RecordedAt    time.Time
}

func (r *MaintenanceRecord) Validate() error {
	switch r.EquipmentKind {
	case KindMachine, KindMold:
	default:
		return fmt.Errorf("equipment kind must be machine or mold, got %q", r.EquipmentKind)
	}
	if r.EquipmentID == "" {
		return fmt.Errorf("equipment is required")
	}
	switch r.Type {
	case MaintenancePreventive, MaintenanceCorrective:
	default:
		return fmt.Errorf("maintenance type must be preventive or corrective, got %q", r.Type)
	}
	if strings.TrimSpace(r.Description) == "" {
		return fmt.Errorf("description is required")
	}
	if strings.TrimSpace(r.Technician) == "" {
		return fmt.Errorf("technician is required")
	}
	if r.Cost.IsNegative() {
		return fmt.Errorf("cost cannot be negative")
	}
	if r.DowntimeHours < 0 {
		return fmt.Errorf("downtime cannot be negative")
	}
	return nil
}
