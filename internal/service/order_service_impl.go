package service

import (
	"context"
	"fmt"
	"time"

	"github.com/castroluiz/plastiq/internal/db"
	"github.com/castroluiz/plastiq/internal/domain"
	"github.com/castroluiz/plastiq/internal/repository"
	"github.com/google/uuid"
)

type orderService struct {
	orders   repository.OrderRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
	now      func() time.Time
}

func NewOrderService(orders repository.OrderRepo, uow db.UnitOfWork, observers ...UseCaseObserver) OrderService {
	return &orderService{
		orders:   orders,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
		// Local clock on purpose: start and due dates are plant calendar
		// days, so validation must see the plant's wall-clock date.
		now: func() time.Time { return time.Now() },
	}
}

// Create validates the order, reserves its machine and mold, and persists
// everything in one transaction.
func (s *orderService) Create(ctx context.Context, o *domain.ProductionOrder) (err error) {
	startedAt := s.now()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "create-order",
			Duration:  s.now().Sub(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"order": o.OrderNumber},
			StartedAt: startedAt,
		})
	}()

	if err = o.Validate(startedAt); err != nil {
		return err
	}
	if existing, getErr := s.orders.GetByNumber(ctx, o.OrderNumber); getErr == nil && existing != nil {
		return fmt.Errorf("order '%s' already exists", o.OrderNumber)
	}

	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	o.Status = domain.OrderPending
	o.QtyProduced = 0
	o.TotalWeightKg = o.ComputeTotalWeight()
	o.CreatedAt = startedAt

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txMachines := repository.NewSQLiteMachineRepo(tx)
		txMolds := repository.NewSQLiteMoldRepo(tx)
		txOrders := repository.NewSQLiteOrderRepo(tx)

		machine, err := txMachines.GetByID(ctx, o.MachineID)
		if err != nil {
			return err
		}
		if machine.Status != domain.EquipmentAvailable {
			return fmt.Errorf("machine '%s' is %s", machine.Number, machine.Status)
		}

		mold, err := txMolds.GetByID(ctx, o.MoldID)
		if err != nil {
			return err
		}
		if mold.Status != domain.EquipmentAvailable {
			return fmt.Errorf("mold '%s' is %s", mold.Name, mold.Status)
		}

		if o.DueDate == nil {
			due := domain.EstimateCompletion(o.StartDate, o.QtyTarget, mold.Cavities, o.CycleSeconds)
			o.DueDate = &due
		}

		if err := txOrders.Create(ctx, o); err != nil {
			return err
		}

		machine.Status = domain.EquipmentInUse
		if err := txMachines.Update(ctx, machine); err != nil {
			return err
		}
		mold.Status = domain.EquipmentInUse
		return txMolds.Update(ctx, mold)
	})
}

func (s *orderService) GetByID(ctx context.Context, id string) (*domain.ProductionOrder, error) {
	return s.orders.GetByID(ctx, id)
}

func (s *orderService) GetByNumber(ctx context.Context, number string) (*domain.ProductionOrder, error) {
	return s.orders.GetByNumber(ctx, number)
}

func (s *orderService) List(ctx context.Context) ([]*domain.ProductionOrder, error) {
	return s.orders.List(ctx)
}

func (s *orderService) ListActive(ctx context.Context) ([]*domain.ProductionOrder, error) {
	return s.orders.ListActive(ctx)
}

func (s *orderService) ListActiveRows(ctx context.Context) ([]repository.ActiveOrderRow, error) {
	return s.orders.ListActiveRows(ctx)
}

// Cancel closes the order and releases its machine and mold. Equipment held in
// maintenance stays there.
func (s *orderService) Cancel(ctx context.Context, id, reason string) (err error) {
	startedAt := s.now()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "cancel-order",
			Duration:  s.now().Sub(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"order_id": id},
			StartedAt: startedAt,
		})
	}()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txOrders := repository.NewSQLiteOrderRepo(tx)

		o, err := txOrders.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := o.Cancel(reason); err != nil {
			return err
		}
		if err := txOrders.Update(ctx, o); err != nil {
			return err
		}
		return releaseEquipment(ctx, tx, o)
	})
}

// MarkOverdue sweeps active orders whose due date has passed and flips them
// to late. Late orders keep their equipment and still accept appointments.
func (s *orderService) MarkOverdue(ctx context.Context, today time.Time) (int, error) {
	updated := 0
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txOrders := repository.NewSQLiteOrderRepo(tx)

		active, err := txOrders.ListActive(ctx)
		if err != nil {
			return err
		}
		for _, o := range active {
			if !o.MarkLateIfOverdue(today) {
				continue
			}
			if err := txOrders.Update(ctx, o); err != nil {
				return err
			}
			updated++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}

// releaseEquipment returns the order's machine and mold to the available pool.
// A mold past its maintenance interval goes to maintenance instead.
func releaseEquipment(ctx context.Context, tx db.DBTX, o *domain.ProductionOrder) error {
	txMachines := repository.NewSQLiteMachineRepo(tx)
	txMolds := repository.NewSQLiteMoldRepo(tx)

	machine, err := txMachines.GetByID(ctx, o.MachineID)
	if err != nil {
		return err
	}
	if machine.Status == domain.EquipmentInUse {
		machine.Status = domain.EquipmentAvailable
		if err := txMachines.Update(ctx, machine); err != nil {
			return err
		}
	}

	mold, err := txMolds.GetByID(ctx, o.MoldID)
	if err != nil {
		return err
	}
	if mold.Status == domain.EquipmentInUse {
		if mold.MaintenanceDue() {
			mold.Status = domain.EquipmentMaintenance
		} else {
			mold.Status = domain.EquipmentAvailable
		}
		return txMolds.Update(ctx, mold)
	}
	return nil
}
