package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/castroluiz/plastiq/internal/db"
	"github.com/castroluiz/plastiq/internal/domain"
	"github.com/shopspring/decimal"
)

// SQLiteReportRepo serves dashboard aggregates. Scrap weights are stored as
// decimal strings, so their sums are accumulated in Go instead of SQL.
type SQLiteReportRepo struct {
	db db.DBTX
}

// NewSQLiteReportRepo creates a new SQLiteReportRepo.
func NewSQLiteReportRepo(conn db.DBTX) *SQLiteReportRepo {
	return &SQLiteReportRepo{db: conn}
}

func (r *SQLiteReportRepo) Summary(ctx context.Context, from, to time.Time) (*PeriodSummary, error) {
	s := &PeriodSummary{TotalScrapKg: decimal.Zero}

	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM production_orders WHERE status = 'in_production'`,
	).Scan(&s.OrdersInProduction)
	if err != nil {
		return nil, fmt.Errorf("counting orders in production: %w", err)
	}

	var avg sql.NullFloat64
	err = r.db.QueryRowContext(ctx,
		`SELECT AVG(CAST(qty_produced AS REAL) / qty_target * 100)
		FROM production_orders
		WHERE status != 'pending' AND start_date BETWEEN ? AND ?`,
		from.Format(dateLayout), to.Format(dateLayout),
	).Scan(&avg)
	if err != nil {
		return nil, fmt.Errorf("averaging order progress: %w", err)
	}
	if avg.Valid {
		s.AvgProgressPct = avg.Float64
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT qty_produced, scrap_kg, downtime_min FROM appointments
		WHERE date BETWEEN ? AND ?`,
		from.Format(dateLayout), to.Format(dateLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("summing period production: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var qty, downtime int
		var scrapStr string
		if err := rows.Scan(&qty, &scrapStr, &downtime); err != nil {
			return nil, fmt.Errorf("scanning period production: %w", err)
		}
		scrap, err := parseDecimal(scrapStr)
		if err != nil {
			return nil, err
		}
		s.TotalProduced += qty
		s.TotalDowntimeMin += downtime
		s.TotalScrapKg = s.TotalScrapKg.Add(scrap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating period production: %w", err)
	}
	return s, nil
}

func (r *SQLiteReportRepo) ProductionByMaterial(ctx context.Context, from, to time.Time) ([]MaterialTotal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT o.material, SUM(a.qty_produced)
		FROM production_orders o
		JOIN appointments a ON a.order_id = o.id
		WHERE a.date BETWEEN ? AND ?
		GROUP BY o.material
		ORDER BY SUM(a.qty_produced) DESC`,
		from.Format(dateLayout), to.Format(dateLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("grouping production by material: %w", err)
	}
	defer rows.Close()

	var totals []MaterialTotal
	for rows.Next() {
		var t MaterialTotal
		if err := rows.Scan(&t.Material, &t.Qty); err != nil {
			return nil, fmt.Errorf("scanning material total: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating material totals: %w", err)
	}
	return totals, nil
}

func (r *SQLiteReportRepo) OrdersByStatus(ctx context.Context, from, to time.Time) ([]StatusCount, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT status, COUNT(*)
		FROM production_orders
		WHERE start_date BETWEEN ? AND ?
		GROUP BY status
		ORDER BY status`,
		from.Format(dateLayout), to.Format(dateLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("counting orders by status: %w", err)
	}
	defer rows.Close()

	var counts []StatusCount
	for rows.Next() {
		var c StatusCount
		var statusStr string
		if err := rows.Scan(&statusStr, &c.Count); err != nil {
			return nil, fmt.Errorf("scanning status count: %w", err)
		}
		c.Status = domain.OrderStatus(statusStr)
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating status counts: %w", err)
	}
	return counts, nil
}

func (r *SQLiteReportRepo) ProductionByDay(ctx context.Context, from, to time.Time) ([]DayTotal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT date, qty_produced, scrap_kg FROM appointments
		WHERE date BETWEEN ? AND ?
		ORDER BY date`,
		from.Format(dateLayout), to.Format(dateLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("grouping production by day: %w", err)
	}
	defer rows.Close()

	var totals []DayTotal
	for rows.Next() {
		var dateStr, scrapStr string
		var qty int
		if err := rows.Scan(&dateStr, &qty, &scrapStr); err != nil {
			return nil, fmt.Errorf("scanning day total: %w", err)
		}
		date, err := time.Parse(dateLayout, dateStr)
		if err != nil {
			return nil, fmt.Errorf("parsing appointment date: %w", err)
		}
		scrap, err := parseDecimal(scrapStr)
		if err != nil {
			return nil, err
		}

		if n := len(totals); n > 0 && totals[n-1].Date.Equal(date) {
			totals[n-1].Qty += qty
			totals[n-1].ScrapKg = totals[n-1].ScrapKg.Add(scrap)
		} else {
			totals = append(totals, DayTotal{Date: date, Qty: qty, ScrapKg: scrap})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating day totals: %w", err)
	}
	return totals, nil
}
