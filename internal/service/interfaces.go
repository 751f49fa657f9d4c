package service

import (
	"context"
	"time"

	"github.com/castroluiz/plastiq/internal/domain"
	"github.com/castroluiz/plastiq/internal/repository"
)

// MachineService manages the injection machine registry.
type MachineService interface {
	Register(ctx context.Context, m *domain.Machine) error
	GetByID(ctx context.Context, id string) (*domain.Machine, error)
	GetByNumber(ctx context.Context, number string) (*domain.Machine, error)
	List(ctx context.Context) ([]*domain.Machine, error)
	ListByStatus(ctx context.Context, status domain.EquipmentStatus) ([]*domain.Machine, error)
	Update(ctx context.Context, m *domain.Machine) error
	Delete(ctx context.Context, id string) error
}

// MoldService manages the mold registry.
type MoldService interface {
	Register(ctx context.Context, m *domain.Mold) error
	GetByID(ctx context.Context, id string) (*domain.Mold, error)
	GetByName(ctx context.Context, name string) (*domain.Mold, error)
	List(ctx context.Context) ([]*domain.Mold, error)
	ListByStatus(ctx context.Context, status domain.EquipmentStatus) ([]*domain.Mold, error)
	Update(ctx context.Context, m *domain.Mold) error
	Delete(ctx context.Context, id string) error
}

// OrderService manages the production order lifecycle. Creating an order
// reserves its machine and mold; cancelling releases them.
type OrderService interface {
	Create(ctx context.Context, o *domain.ProductionOrder) error
	GetByID(ctx context.Context, id string) (*domain.ProductionOrder, error)
	GetByNumber(ctx context.Context, number string) (*domain.ProductionOrder, error)
	List(ctx context.Context) ([]*domain.ProductionOrder, error)
	ListActive(ctx context.Context) ([]*domain.ProductionOrder, error)
	ListActiveRows(ctx context.Context) ([]repository.ActiveOrderRow, error)
	Cancel(ctx context.Context, id, reason string) error
	// MarkOverdue flips past-due active orders to late and returns how many
	// were updated.
	MarkOverdue(ctx context.Context, today time.Time) (int, error)
}

// ProductionService records shift appointments against active orders.
type ProductionService interface {
	// LogAppointment applies the appointment to its order and returns the
	// updated order. Completing the target releases the machine and mold.
	LogAppointment(ctx context.Context, a *domain.Appointment) (*domain.ProductionOrder, error)
	ListByOrder(ctx context.Context, orderID string) ([]*domain.Appointment, error)
	ListByPeriod(ctx context.Context, from, to time.Time) ([]*domain.Appointment, error)
}

// MaintenanceService records machine and mold maintenance. Registering a
// record resets the equipment's counters and returns it to service.
type MaintenanceService interface {
	Register(ctx context.Context, r *domain.MaintenanceRecord) error
	ListByEquipment(ctx context.Context, kind domain.EquipmentKind, equipmentID string) ([]*domain.MaintenanceRecord, error)
	ListByPeriod(ctx context.Context, from, to time.Time) ([]*domain.MaintenanceRecord, error)
}

// ReportService serves dashboard and export aggregates.
type ReportService interface {
	Summary(ctx context.Context, from, to time.Time) (*repository.PeriodSummary, error)
	ProductionByMaterial(ctx context.Context, from, to time.Time) ([]repository.MaterialTotal, error)
	OrdersByStatus(ctx context.Context, from, to time.Time) ([]repository.StatusCount, error)
	ProductionByDay(ctx context.Context, from, to time.Time) ([]repository.DayTotal, error)
}
