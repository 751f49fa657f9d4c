package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/castroluiz/plastiq/internal/db"
	"github.com/castroluiz/plastiq/internal/domain"
)

const maintenanceColumns = `id, equipment_kind, equipment_id, date,
		maintenance_type, description, technician, cost, downtime_hours, recorded_at`

// SQLiteMaintenanceRepo implements MaintenanceRepo using a SQLite database.
type SQLiteMaintenanceRepo struct {
	db db.DBTX
}

// NewSQLiteMaintenanceRepo creates a new SQLiteMaintenanceRepo.
func NewSQLiteMaintenanceRepo(conn db.DBTX) *SQLiteMaintenanceRepo {
	return &SQLiteMaintenanceRepo{db: conn}
}

func (r *SQLiteMaintenanceRepo) Create(ctx context.Context, rec *domain.MaintenanceRecord) error {
	query := `INSERT INTO maintenance_records (` + maintenanceColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		string(rec.EquipmentKind),
		rec.EquipmentID,
		rec.Date.Format(dateLayout),
		string(rec.Type),
		rec.Description,
		rec.Technician,
		rec.Cost.String(),
		rec.DowntimeHours,
		rec.RecordedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting maintenance record: %w", err)
	}
	return nil
}

func (r *SQLiteMaintenanceRepo) ListByEquipment(ctx context.Context, kind domain.EquipmentKind, equipmentID string) ([]*domain.MaintenanceRecord, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_records
		WHERE equipment_kind = ? AND equipment_id = ?
		ORDER BY date DESC`
	return r.queryRecords(ctx, query, string(kind), equipmentID)
}

func (r *SQLiteMaintenanceRepo) ListByPeriod(ctx context.Context, from, to time.Time) ([]*domain.MaintenanceRecord, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_records
		WHERE date BETWEEN ? AND ?
		ORDER BY date`
	return r.queryRecords(ctx, query, from.Format(dateLayout), to.Format(dateLayout))
}

func (r *SQLiteMaintenanceRepo) queryRecords(ctx context.Context, query string, args ...any) ([]*domain.MaintenanceRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing maintenance records: %w", err)
	}
	defer rows.Close()

	var records []*domain.MaintenanceRecord
	for rows.Next() {
		var rec domain.MaintenanceRecord
		var kindStr, typeStr, dateStr, costStr, recordedAtStr string

		err := rows.Scan(
			&rec.ID, &kindStr, &rec.EquipmentID, &dateStr,
			&typeStr, &rec.Description, &rec.Technician, &costStr,
			&rec.DowntimeHours, &recordedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning maintenance record: %w", err)
		}

		rec.EquipmentKind = domain.EquipmentKind(kindStr)
		rec.Type = domain.MaintenanceType(typeStr)
		if rec.Cost, err = parseDecimal(costStr); err != nil {
			return nil, err
		}
		if rec.Date, err = time.Parse(dateLayout, dateStr); err != nil {
			return nil, fmt.Errorf("parsing maintenance date: %w", err)
		}
		if rec.RecordedAt, err = time.Parse(time.RFC3339, recordedAtStr); err != nil {
			return nil, fmt.Errorf("parsing recorded_at: %w", err)
		}
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating maintenance records: %w", err)
	}
	return records, nil
}
