package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/castroluiz/plastiq/internal/db"
	"github.com/castroluiz/plastiq/internal/domain"
)

const machineColumns = `id, number, brand, capacity_ton, status,
		next_maintenance_date, last_maintenance_date,
		hour_meter, hour_meter_next_maintenance, notes, created_at`

// SQLiteMachineRepo implements MachineRepo against a DBTX, so the same
// code serves both plain connections and transactions.
type SQLiteMachineRepo struct {
	db db.DBTX
}

// NewSQLiteMachineRepo creates a new SQLiteMachineRepo.
func NewSQLiteMachineRepo(conn db.DBTX) *SQLiteMachineRepo {
	return &SQLiteMachineRepo{db: conn}
}

func (r *SQLiteMachineRepo) Create(ctx context.Context, m *domain.Machine) error {
	query := `INSERT INTO machines (` + machineColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		m.ID,
		m.Number,
		m.Brand,
		m.CapacityTon,
		string(m.Status),
		nullableTimeToString(m.NextMaintenanceDate, dateLayout),
		nullableTimeToString(m.LastMaintenanceDate, dateLayout),
		m.HourMeter,
		nullableIntToValue(m.HourMeterNextMaint),
		m.Notes,
		m.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting machine: %w", err)
	}
	return nil
}

func (r *SQLiteMachineRepo) GetByID(ctx context.Context, id string) (*domain.Machine, error) {
	query := `SELECT ` + machineColumns + ` FROM machines WHERE id = ?`
	return scanMachine(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteMachineRepo) GetByNumber(ctx context.Context, number string) (*domain.Machine, error) {
	query := `SELECT ` + machineColumns + ` FROM machines WHERE UPPER(number) = UPPER(?)`
	return scanMachine(r.db.QueryRowContext(ctx, query, number))
}

func (r *SQLiteMachineRepo) List(ctx context.Context) ([]*domain.Machine, error) {
	query := `SELECT ` + machineColumns + ` FROM machines ORDER BY number`
	return r.queryMachines(ctx, query)
}

func (r *SQLiteMachineRepo) ListByStatus(ctx context.Context, status domain.EquipmentStatus) ([]*domain.Machine, error) {
	query := `SELECT ` + machineColumns + ` FROM machines WHERE status = ? ORDER BY number`
	return r.queryMachines(ctx, query, string(status))
}

func (r *SQLiteMachineRepo) Update(ctx context.Context, m *domain.Machine) error {
	query := `UPDATE machines SET brand = ?, capacity_ton = ?, status = ?,
		next_maintenance_date = ?, last_maintenance_date = ?,
		hour_meter = ?, hour_meter_next_maintenance = ?, notes = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		m.Brand,
		m.CapacityTon,
		string(m.Status),
		nullableTimeToString(m.NextMaintenanceDate, dateLayout),
		nullableTimeToString(m.LastMaintenanceDate, dateLayout),
		m.HourMeter,
		nullableIntToValue(m.HourMeterNextMaint),
		m.Notes,
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("updating machine: %w", err)
	}
	return nil
}

func (r *SQLiteMachineRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM machines WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting machine: %w", err)
	}
	return nil
}

func (r *SQLiteMachineRepo) queryMachines(ctx context.Context, query string, args ...any) ([]*domain.Machine, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing machines: %w", err)
	}
	defer rows.Close()

	var machines []*domain.Machine
	for rows.Next() {
		m, err := scanMachineRow(rows)
		if err != nil {
			return nil, err
		}
		machines = append(machines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating machines: %w", err)
	}
	return machines, nil
}

func scanMachine(row *sql.Row) (*domain.Machine, error) {
	m, err := scanMachineFields(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("machine not found")
	}
	return m, err
}

func scanMachineRow(rows *sql.Rows) (*domain.Machine, error) {
	return scanMachineFields(rows.Scan)
}

func scanMachineFields(scan func(dest ...any) error) (*domain.Machine, error) {
	var m domain.Machine
	var statusStr, createdAtStr string
	var nextMaint, lastMaint sql.NullString
	var hourNext sql.NullInt64

	err := scan(
		&m.ID, &m.Number, &m.Brand, &m.CapacityTon, &statusStr,
		&nextMaint, &lastMaint,
		&m.HourMeter, &hourNext, &m.Notes, &createdAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning machine: %w", err)
	}

	m.Status = domain.EquipmentStatus(statusStr)
	m.NextMaintenanceDate = parseNullableTime(nextMaint, dateLayout)
	m.LastMaintenanceDate = parseNullableTime(lastMaint, dateLayout)
	m.HourMeterNextMaint = parseNullableInt(hourNext)

	m.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &m, nil
}
