package service

import (
	"context"
	"time"

	"github.com/castroluiz/plastiq/internal/db"
	"github.com/castroluiz/plastiq/internal/domain"
	"github.com/castroluiz/plastiq/internal/repository"
	"github.com/google/uuid"
)

type productionService struct {
	appointments repository.AppointmentRepo
	uow          db.UnitOfWork
	observer     UseCaseObserver
}

func NewProductionService(appointments repository.AppointmentRepo, uow db.UnitOfWork, observers ...UseCaseObserver) ProductionService {
	return &productionService{
		appointments: appointments,
		uow:          uow,
		observer:     useCaseObserverOrNoop(observers),
	}
}

// LogAppointment applies a shift appointment to its order inside one
// transaction. The mold's cycle counters advance with each appointment, and
// hitting the order target releases the machine and mold.
func (s *productionService) LogAppointment(ctx context.Context, a *domain.Appointment) (order *domain.ProductionOrder, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "log-appointment",
			Duration:  time.Now().UTC().Sub(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"order_id": a.OrderID, "qty": a.QtyProduced},
			StartedAt: startedAt,
		})
	}()

	if err = a.Validate(); err != nil {
		return nil, err
	}
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	a.RecordedAt = startedAt

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txOrders := repository.NewSQLiteOrderRepo(tx)
		txMolds := repository.NewSQLiteMoldRepo(tx)
		txAppointments := repository.NewSQLiteAppointmentRepo(tx)

		o, err := txOrders.GetByID(ctx, a.OrderID)
		if err != nil {
			return err
		}
		if err := o.ApplyAppointment(a.QtyProduced); err != nil {
			return err
		}
		if err := txAppointments.Create(ctx, a); err != nil {
			return err
		}

		mold, err := txMolds.GetByID(ctx, o.MoldID)
		if err != nil {
			return err
		}
		mold.AddCycles(mold.CyclesFor(a.QtyProduced))
		if err := txMolds.Update(ctx, mold); err != nil {
			return err
		}

		if err := txOrders.Update(ctx, o); err != nil {
			return err
		}
		if o.Status == domain.OrderCompleted {
			if err := releaseEquipment(ctx, tx, o); err != nil {
				return err
			}
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *productionService) ListByOrder(ctx context.Context, orderID string) ([]*domain.Appointment, error) {
	return s.appointments.ListByOrder(ctx, orderID)
}

func (s *productionService) ListByPeriod(ctx context.Context, from, to time.Time) ([]*domain.Appointment, error) {
	return s.appointments.ListByPeriod(ctx, from, to)
}
