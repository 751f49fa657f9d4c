package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/castroluiz/plastiq/internal/db"
	"github.com/castroluiz/plastiq/internal/domain"
)

const appointmentColumns = `id, order_id, date, shift, qty_produced,
		scrap_kg, downtime_min, downtime_reason, operator, notes, recorded_at`

// SQLiteAppointmentRepo implements AppointmentRepo using a SQLite database.
type SQLiteAppointmentRepo struct {
	db db.DBTX
}

// NewSQLiteAppointmentRepo creates a new SQLiteAppointmentRepo.
func NewSQLiteAppointmentRepo(conn db.DBTX) *SQLiteAppointmentRepo {
	return &SQLiteAppointmentRepo{db: conn}
}

func (r *SQLiteAppointmentRepo) Create(ctx context.Context, a *domain.Appointment) error {
	query := `INSERT INTO appointments (` + appointmentColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.OrderID,
		a.Date.Format(dateLayout),
		string(a.Shift),
		a.QtyProduced,
		a.ScrapKg.String(),
		a.DowntimeMin,
		a.DowntimeReason,
		a.Operator,
		a.Notes,
		a.RecordedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting appointment: %w", err)
	}
	return nil
}

func (r *SQLiteAppointmentRepo) ListByOrder(ctx context.Context, orderID string) ([]*domain.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments
		WHERE order_id = ?
		ORDER BY date DESC, recorded_at DESC`
	return r.queryAppointments(ctx, query, orderID)
}

func (r *SQLiteAppointmentRepo) ListByPeriod(ctx context.Context, from, to time.Time) ([]*domain.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments
		WHERE date BETWEEN ? AND ?
		ORDER BY date, shift`
	return r.queryAppointments(ctx, query, from.Format(dateLayout), to.Format(dateLayout))
}

func (r *SQLiteAppointmentRepo) queryAppointments(ctx context.Context, query string, args ...any) ([]*domain.Appointment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing appointments: %w", err)
	}
	defer rows.Close()

	var appointments []*domain.Appointment
	for rows.Next() {
		var a domain.Appointment
		var shiftStr, dateStr, scrapStr, recordedAtStr string

		err := rows.Scan(
			&a.ID, &a.OrderID, &dateStr, &shiftStr, &a.QtyProduced,
			&scrapStr, &a.DowntimeMin, &a.DowntimeReason, &a.Operator,
			&a.Notes, &recordedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning appointment: %w", err)
		}

		a.Shift = domain.Shift(shiftStr)
		if a.ScrapKg, err = parseDecimal(scrapStr); err != nil {
			return nil, err
		}
		if a.Date, err = time.Parse(dateLayout, dateStr); err != nil {
			return nil, fmt.Errorf("parsing appointment date: %w", err)
		}
		if a.RecordedAt, err = time.Parse(time.RFC3339, recordedAtStr); err != nil {
			return nil, fmt.Errorf("parsing recorded_at: %w", err)
		}
		appointments = append(appointments, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating appointments: %w", err)
	}
	return appointments, nil
}
