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

type maintenanceService struct {
	records  repository.MaintenanceRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewMaintenanceService(records repository.MaintenanceRepo, uow db.UnitOfWork, observers ...UseCaseObserver) MaintenanceService {
	return &maintenanceService{
		records:  records,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Register writes the maintenance record and returns the equipment to service
// with its wear counters reset. Equipment bound to an active order cannot be
// serviced.
func (s *maintenanceService) Register(ctx context.Context, r *domain.MaintenanceRecord) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "register-maintenance",
			Duration:  time.Now().UTC().Sub(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"kind": string(r.EquipmentKind), "equipment_id": r.EquipmentID},
			StartedAt: startedAt,
		})
	}()

	if err = r.Validate(); err != nil {
		return err
	}
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	r.RecordedAt = startedAt

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		switch r.EquipmentKind {
		case domain.KindMachine:
			if err := s.serviceMachine(ctx, tx, r); err != nil {
				return err
			}
		case domain.KindMold:
			if err := s.serviceMold(ctx, tx, r); err != nil {
				return err
			}
		}
		return repository.NewSQLiteMaintenanceRepo(tx).Create(ctx, r)
	})
}

func (s *maintenanceService) serviceMachine(ctx context.Context, tx db.DBTX, r *domain.MaintenanceRecord) error {
	txMachines := repository.NewSQLiteMachineRepo(tx)
	machine, err := txMachines.GetByID(ctx, r.EquipmentID)
	if err != nil {
		return err
	}
	if machine.Status == domain.EquipmentInUse {
		return fmt.Errorf("machine '%s' is bound to an active order", machine.Number)
	}
	date := r.Date
	machine.LastMaintenanceDate = &date
	machine.NextMaintenanceDate = nil
	machine.Status = domain.EquipmentAvailable
	return txMachines.Update(ctx, machine)
}

func (s *maintenanceService) serviceMold(ctx context.Context, tx db.DBTX, r *domain.MaintenanceRecord) error {
	txMolds := repository.NewSQLiteMoldRepo(tx)
	mold, err := txMolds.GetByID(ctx, r.EquipmentID)
	if err != nil {
		return err
	}
	if mold.Status == domain.EquipmentInUse {
		return fmt.Errorf("mold '%s' is bound to an active order", mold.Name)
	}
	date := r.Date
	mold.LastMaintenanceDate = &date
	mold.CyclesSinceMaint = 0
	mold.Status = domain.EquipmentAvailable
	return txMolds.Update(ctx, mold)
}

func (s *maintenanceService) ListByEquipment(ctx context.Context, kind domain.EquipmentKind, equipmentID string) ([]*domain.MaintenanceRecord, error) {
	return s.records.ListByEquipment(ctx, kind, equipmentID)
}

func (s *maintenanceService) ListByPeriod(ctx context.Context, from, to time.Time) ([]*domain.MaintenanceRecord, error) {
	return s.records.ListByPeriod(ctx, from, to)
}
