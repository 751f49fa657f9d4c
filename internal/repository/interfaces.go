package repository

import (
	"context"
	"time"

	"github.com/castroluiz/plastiq/internal/domain"
	"github.com/shopspring/decimal"
)

// ActiveOrderRow is a joined view of an order with its machine number and
// mold name, used by the dashboard and the appointment forms.
type ActiveOrderRow struct {
	Order         domain.ProductionOrder
	MachineNumber string
	MoldName      string
}

// PeriodSummary aggregates dashboard metrics over a date range.
type PeriodSummary struct {
	OrdersInProduction int
	AvgProgressPct     float64
	TotalProduced      int
	TotalScrapKg       decimal.Decimal
	TotalDowntimeMin   int
}

// MaterialTotal is pieces produced per material over a period.
type MaterialTotal struct {
	Material string
	Qty      int
}

// StatusCount is the number of orders per lifecycle status.
type StatusCount struct {
	Status domain.OrderStatus
	Count  int
}

// DayTotal is pieces produced and scrap per production day.
type DayTotal struct {
	Date    time.Time
	Qty     int
	ScrapKg decimal.Decimal
}

type MachineRepo interface {
	Create(ctx context.Context, m *domain.Machine) error
	GetByID(ctx context.Context, id string) (*domain.Machine, error)
	GetByNumber(ctx context.Context, number string) (*domain.Machine, error)
	List(ctx context.Context) ([]*domain.Machine, error)
	ListByStatus(ctx context.Context, status domain.EquipmentStatus) ([]*domain.Machine, error)
	Update(ctx context.Context, m *domain.Machine) error
	Delete(ctx context.Context, id string) error
}

type MoldRepo interface {
	Create(ctx context.Context, m *domain.Mold) error
	GetByID(ctx context.Context, id string) (*domain.Mold, error)
	GetByName(ctx context.Context, name string) (*domain.Mold, error)
	List(ctx context.Context) ([]*domain.Mold, error)
	ListByStatus(ctx context.Context, status domain.EquipmentStatus) ([]*domain.Mold, error)
	Update(ctx context.Context, m *domain.Mold) error
	Delete(ctx context.Context, id string) error
}

type OrderRepo interface {
	Create(ctx context.Context, o *domain.ProductionOrder) error
	GetByID(ctx context.Context, id string) (*domain.ProductionOrder, error)
	GetByNumber(ctx context.Context, number string) (*domain.ProductionOrder, error)
	List(ctx context.Context) ([]*domain.ProductionOrder, error)
	ListActive(ctx context.Context) ([]*domain.ProductionOrder, error)
	ListByPeriod(ctx context.Context, from, to time.Time) ([]*domain.ProductionOrder, error)
	ListActiveRows(ctx context.Context) ([]ActiveOrderRow, error)
	Update(ctx context.Context, o *domain.ProductionOrder) error
}

type AppointmentRepo interface {
	Create(ctx context.Context, a *domain.Appointment) error
	ListByOrder(ctx context.Context, orderID string) ([]*domain.Appointment, error)
	ListByPeriod(ctx context.Context, from, to time.Time) ([]*domain.Appointment, error)
}

type MaintenanceRepo interface {
	Create(ctx context.Context, r *domain.MaintenanceRecord) error
	ListByEquipment(ctx context.Context, kind domain.EquipmentKind, equipmentID string) ([]*domain.MaintenanceRecord, error)
	ListByPeriod(ctx context.Context, from, to time.Time) ([]*domain.MaintenanceRecord, error)
}

// ReportRepo serves the aggregate queries behind the dashboard.
type ReportRepo interface {
	Summary(ctx context.Context, from, to time.Time) (*PeriodSummary, error)
	ProductionByMaterial(ctx context.Context, from, to time.Time) ([]MaterialTotal, error)
	OrdersByStatus(ctx context.Context, from, to time.Time) ([]StatusCount, error)
	ProductionByDay(ctx context.Context, from, to time.Time) ([]DayTotal, error)
}
