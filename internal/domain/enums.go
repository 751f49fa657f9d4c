package domain

import (
	"fmt"
	"strings"
)

// EquipmentStatus tracks availability of machines and molds.
type EquipmentStatus string

const (
	EquipmentAvailable   EquipmentStatus = "available"
	EquipmentInUse       EquipmentStatus = "in_use"
	EquipmentMaintenance EquipmentStatus = "maintenance"
)

type OrderStatus string

const (
	OrderPending      OrderStatus = "pending"
	OrderInProduction OrderStatus = "in_production"
	OrderCompleted    OrderStatus = "completed"
	OrderLate         OrderStatus = "late"
	OrderCancelled    OrderStatus = "cancelled"
)

// Active reports whether an order still accepts production appointments.
// Late orders stay appointable; only completion or cancellation closes one.
func (s OrderStatus) Active() bool {
	switch s {
	case OrderPending, OrderInProduction, OrderLate:
		return true
	}
	return false
}

type EquipmentKind string

const (
	KindMachine EquipmentKind = "machine"
	KindMold    EquipmentKind = "mold"
)

type MaintenanceType string

const (
	MaintenancePreventive MaintenanceType = "preventive"
	MaintenanceCorrective MaintenanceType = "corrective"
)

type Priority int

const (
	PriorityHigh   Priority = 1
	PriorityNormal Priority = 2
	PriorityLow    Priority = 3
)

// ValidMaterials is the catalog of resins accepted by default. Config may
// extend it.
var ValidMaterials = map[string]bool{
	"PE": true, "PS": true, "SAN": true, "PP": true,
}

// ValidateMaterial checks material against a catalog set. A nil catalog
// falls back to ValidMaterials.
func ValidateMaterial(material string, catalog map[string]bool) error {
	material = strings.ToUpper(strings.TrimSpace(material))
	if material == "" {
		return fmt.Errorf("material is required")
	}
	if catalog == nil {
		catalog = ValidMaterials
	}
	if !catalog[material] {
		return fmt.Errorf("material %q is not in the catalog", material)
	}
	return nil
}
