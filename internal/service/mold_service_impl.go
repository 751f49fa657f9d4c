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

type moldService struct {
	molds repository.MoldRepo
}

func NewMoldService(molds repository.MoldRepo) MoldService {
	return &moldService{molds: molds}
}

func (s *moldService) Register(ctx context.Context, m *domain.Mold) error {
	if existing, err := s.molds.GetByName(ctx, m.Name); err == nil && existing != nil {
		return fmt.Errorf("mold '%s' already registered", m.Name)
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.Status == "" {
		m.Status = domain.EquipmentAvailable
	}
	m.CreatedAt = time.Now().UTC()
	return s.molds.Create(ctx, m)
}

func (s *moldService) GetByID(ctx context.Context, id string) (*domain.Mold, error) {
	return s.molds.GetByID(ctx, id)
}

func (s *moldService) GetByName(ctx context.Context, name string) (*domain.Mold, error) {
	return s.molds.GetByName(ctx, strings.TrimSpace(name))
}

func (s *moldService) List(ctx context.Context) ([]*domain.Mold, error) {
	return s.molds.List(ctx)
}

func (s *moldService) ListByStatus(ctx context.Context, status domain.EquipmentStatus) ([]*domain.Mold, error) {
	return s.molds.ListByStatus(ctx, status)
}

func (s *moldService) Update(ctx context.Context, m *domain.Mold) error {
	return s.molds.Update(ctx, m)
}

func (s *moldService) Delete(ctx context.Context, id string) error {
	m, err := s.molds.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if m.Status == domain.EquipmentInUse {
		return fmt.Errorf("mold '%s' is bound to an active order", m.Name)
	}
	return s.molds.Delete(ctx, id)
}
