package service

import (
	"context"
	"fmt"
	"time"

	"github.com/castroluiz/plastiq/internal/repository"
)

type reportService struct {
	reports repository.ReportRepo
}

func NewReportService(reports repository.ReportRepo) ReportService {
	return &reportService{reports: reports}
}

func (s *reportService) Summary(ctx context.Context, from, to time.Time) (*repository.PeriodSummary, error) {
	if err := validatePeriod(from, to); err != nil {
		return nil, err
	}
	return s.reports.Summary(ctx, from, to)
}

func (s *reportService) ProductionByMaterial(ctx context.Context, from, to time.Time) ([]repository.MaterialTotal, error) {
	if err := validatePeriod(from, to); err != nil {
		return nil, err
	}
	return s.reports.ProductionByMaterial(ctx, from, to)
}

func (s *reportService) OrdersByStatus(ctx context.Context, from, to time.Time) ([]repository.StatusCount, error) {
	if err := validatePeriod(from, to); err != nil {
		return nil, err
	}
	return s.reports.OrdersByStatus(ctx, from, to)
}

func (s *reportService) ProductionByDay(ctx context.Context, from, to time.Time) ([]repository.DayTotal, error) {
	if err := validatePeriod(from, to); err != nil {
		return nil, err
	}
	return s.reports.ProductionByDay(ctx, from, to)
}

func validatePeriod(from, to time.Time) error {
	if to.Before(from) {
		return fmt.Errorf("period end %s is before start %s",
			to.Format("2006-01-02"), from.Format("2006-01-02"))
	}
	return nil
}
