package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/castroluiz/plastiq/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var testOrderSeq atomic.Int64

// Machine options
type MachineOption func(*domain.Machine)

func WithMachineStatus(s domain.EquipmentStatus) MachineOption {
	return func(m *domain.Machine) {
		m.Status = s
	}
}

func WithHourMeter(hours int, nextMaint *int) MachineOption {
	return func(m *domain.Machine) {
		m.HourMeter = hours
		m.HourMeterNextMaint = nextMaint
	}
}

func NewTestMachine(number string, opts ...MachineOption) *domain.Machine {
	m := &domain.Machine{
		ID:          uuid.New().String(),
		Number:      number,
		Brand:       "Romi",
		CapacityTon: 150,
		Status:      domain.EquipmentAvailable,
		CreatedAt:   time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Mold options
type MoldOption func(*domain.Mold)

func WithMoldStatus(s domain.EquipmentStatus) MoldOption {
	return func(m *domain.Mold) {
		m.Status = s
	}
}

func WithCavities(n int) MoldOption {
	return func(m *domain.Mold) {
		m.Cavities = n
	}
}

func WithMaintEvery(cycles int) MoldOption {
	return func(m *domain.Mold) {
		m.MaintEveryCycles = &cycles
	}
}

func WithCyclesSinceMaint(cycles int) MoldOption {
	return func(m *domain.Mold) {
		m.CyclesSinceMaint = cycles
		m.TotalCycles = cycles
	}
}

func NewTestMold(name string, opts ...MoldOption) *domain.Mold {
	m := &domain.Mold{
		ID:           uuid.New().String(),
		Name:         name,
		Manufacturer: "Sandretto",
		Cavities:     4,
		Status:       domain.EquipmentAvailable,
		CreatedAt:    time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Order options
type OrderOption func(*domain.ProductionOrder)

func WithOrderStatus(s domain.OrderStatus) OrderOption {
	return func(o *domain.ProductionOrder) {
		o.Status = s
	}
}

func WithQtyTarget(qty int) OrderOption {
	return func(o *domain.ProductionOrder) {
		o.QtyTarget = qty
	}
}

func WithMaterial(material string) OrderOption {
	return func(o *domain.ProductionOrder) {
		o.Material = material
	}
}

func WithStartDate(d time.Time) OrderOption {
	return func(o *domain.ProductionOrder) {
		o.StartDate = d
	}
}

func WithDueDate(d time.Time) OrderOption {
	return func(o *domain.ProductionOrder) {
		o.DueDate = &d
	}
}

func WithPriority(p domain.Priority) OrderOption {
	return func(o *domain.ProductionOrder) {
		o.Priority = p
	}
}

// NewTestOrder builds an order bound to the given machine and mold IDs with a
// unique order number derived from its start date.
func NewTestOrder(machineID, moldID string, opts ...OrderOption) *domain.ProductionOrder {
	start := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	n := testOrderSeq.Add(1)
	o := &domain.ProductionOrder{
		ID:             uuid.New().String(),
		OrderNumber:    fmt.Sprintf("PED-%s-%03d", start.Format("20060102"), n%1000),
		Customer:       "Plastval",
		MachineID:      machineID,
		MoldID:         moldID,
		QtyTarget:      10000,
		CycleSeconds:   30,
		Material:       "PP",
		MasterbatchPct: 2,
		PieceWeightG:   12.5,
		StartDate:      start,
		Status:         domain.OrderPending,
		Priority:       domain.PriorityNormal,
		CreatedAt:      time.Now().UTC(),
	}
	o.TotalWeightKg = o.ComputeTotalWeight()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Appointment options
type AppointmentOption func(*domain.Appointment)

func WithAppointmentDate(d time.Time) AppointmentOption {
	return func(a *domain.Appointment) {
		a.Date = d
	}
}

func WithShift(s domain.Shift) AppointmentOption {
	return func(a *domain.Appointment) {
		a.Shift = s
	}
}

func WithScrap(kg decimal.Decimal) AppointmentOption {
	return func(a *domain.Appointment) {
		a.ScrapKg = kg
	}
}

func WithDowntime(minutes int, reason string) AppointmentOption {
	return func(a *domain.Appointment) {
		a.DowntimeMin = minutes
		a.DowntimeReason = reason
	}
}

func NewTestAppointment(orderID string, qty int, opts ...AppointmentOption) *domain.Appointment {
	a := &domain.Appointment{
		ID:          uuid.New().String(),
		OrderID:     orderID,
		Date:        time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
		Shift:       domain.ShiftA,
		QtyProduced: qty,
		ScrapKg:     decimal.Zero,
		Operator:    "Carlos Mendes",
		RecordedAt:  time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Maintenance options
type MaintenanceOption func(*domain.MaintenanceRecord)

func WithMaintenanceType(t domain.MaintenanceType) MaintenanceOption {
	return func(r *domain.MaintenanceRecord) {
		r.Type = t
	}
}

func WithCost(c decimal.Decimal) MaintenanceOption {
	return func(r *domain.MaintenanceRecord) {
		r.Cost = c
	}
}

func NewTestMaintenance(kind domain.EquipmentKind, equipmentID string, opts ...MaintenanceOption) *domain.MaintenanceRecord {
	r := &domain.MaintenanceRecord{
		ID:            uuid.New().String(),
		EquipmentKind: kind,
		EquipmentID:   equipmentID,
		Date:          time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
		Type:          domain.MaintenancePreventive,
		Description:   "Troca de resistencias do bico",
		Technician:    "Jose Silva",
		Cost:          decimal.NewFromInt(350),
		DowntimeHours: 2,
		RecordedAt:    time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}
