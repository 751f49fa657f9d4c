package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/castroluiz/plastiq/internal/domain"
	"github.com/castroluiz/plastiq/internal/repository"
	"github.com/google/uuid"
)

type machineService struct {
	machines repository.MachineRepo
}

func NewMachineService(machines repository.MachineRepo) MachineService {
	return &machineService{machines: machines}
}

func (s *machineService) Register(ctx context.Context, m *domain.Machine) error {
	if existing, err := s.machines.GetByNumber(ctx, m.Number); err == nil && existing != nil {
		return fmt.Errorf("machine '%s' already registered", m.Number)
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.Status == "" {
		m.Status = domain.EquipmentAvailable
	}
	m.CreatedAt = time.Now().UTC()
	return s.machines.Create(ctx, m)
}

func (s *machineService) GetByID(ctx context.Context, id string) (*domain.Machine, error) {
	return s.machines.GetByID(ctx, id)
}

func (s *machineService) GetByNumber(ctx context.Context, number string) (*domain.Machine, error) {
	return s.machines.GetByNumber(ctx, strings.TrimSpace(number))
}

func (s *machineService) List(ctx context.Context) ([]*domain.Machine, error) {
	return s.machines.List(ctx)
}

func (s *machineService) ListByStatus(ctx context.Context, status domain.EquipmentStatus) ([]*domain.Machine, error) {
	return s.machines.ListByStatus(ctx, status)
}

func (s *machineService) Update(ctx context.Context, m *domain.Machine) error {
	return s.machines.Update(ctx, m)
}

func (s *machineService) Delete(ctx context.Context, id string) error {
	m, err := s.machines.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if m.Status == domain.EquipmentInUse {
		return fmt.Errorf("machine '%s' is bound to an active order", m.Number)
	}
	return s.machines.Delete(ctx, id)
}
