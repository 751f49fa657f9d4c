package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/castroluiz/plastiq/internal/db"
	"github.com/castroluiz/plastiq/internal/domain"
)

const moldColumns = `id, name, manufacturer, cavities, total_cycles,
		cycles_since_maintenance, maintenance_interval_cycles,
		last_maintenance_date, status, notes, created_at`

// SQLiteMoldRepo implements MoldRepo using a SQLite database.
type SQLiteMoldRepo struct {
	db db.DBTX
}

// NewSQLiteMoldRepo creates a new SQLiteMoldRepo.
func NewSQLiteMoldRepo(conn db.DBTX) *SQLiteMoldRepo {
	return &SQLiteMoldRepo{db: conn}
}

func (r *SQLiteMoldRepo) Create(ctx context.Context, m *domain.Mold) error {
	query := `INSERT INTO molds (` + moldColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		m.ID,
		m.Name,
		m.Manufacturer,
		m.Cavities,
		m.TotalCycles,
		m.CyclesSinceMaint,
		nullableIntToValue(m.MaintEveryCycles),
		nullableTimeToString(m.LastMaintenanceDate, dateLayout),
		string(m.Status),
		m.Notes,
		m.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting mold: %w", err)
	}
	return nil
}

func (r *SQLiteMoldRepo) GetByID(ctx context.Context, id string) (*domain.Mold, error) {
	query := `SELECT ` + moldColumns + ` FROM molds WHERE id = ?`
	return scanMold(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteMoldRepo) GetByName(ctx context.Context, name string) (*domain.Mold, error) {
	query := `SELECT ` + moldColumns + ` FROM molds WHERE UPPER(name) = UPPER(?)`
	return scanMold(r.db.QueryRowContext(ctx, query, name))
}

func (r *SQLiteMoldRepo) List(ctx context.Context) ([]*domain.Mold, error) {
	query := `SELECT ` + moldColumns + ` FROM molds ORDER BY name`
	return r.queryMolds(ctx, query)
}

func (r *SQLiteMoldRepo) ListByStatus(ctx context.Context, status domain.EquipmentStatus) ([]*domain.Mold, error) {
	query := `SELECT ` + moldColumns + ` FROM molds WHERE status = ? ORDER BY name`
	return r.queryMolds(ctx, query, string(status))
}

func (r *SQLiteMoldRepo) Update(ctx context.Context, m *domain.Mold) error {
	query := `UPDATE molds SET manufacturer = ?, cavities = ?, total_cycles = ?,
		cycles_since_maintenance = ?, maintenance_interval_cycles = ?,
		last_maintenance_date = ?, status = ?, notes = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		m.Manufacturer,
		m.Cavities,
		m.TotalCycles,
		m.CyclesSinceMaint,
		nullableIntToValue(m.MaintEveryCycles),
		nullableTimeToString(m.LastMaintenanceDate, dateLayout),
		string(m.Status),
		m.Notes,
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("updating mold: %w", err)
	}
	return nil
}

func (r *SQLiteMoldRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM molds WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting mold: %w", err)
	}
	return nil
}

func (r *SQLiteMoldRepo) queryMolds(ctx context.Context, query string, args ...any) ([]*domain.Mold, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing molds: %w", err)
	}
	defer rows.Close()

	var molds []*domain.Mold
	for rows.Next() {
		m, err := scanMoldFields(rows.Scan)
		if err != nil {
			return nil, err
		}
		molds = append(molds, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating molds: %w", err)
	}
	return molds, nil
}

func scanMold(row *sql.Row) (*domain.Mold, error) {
	m, err := scanMoldFields(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("mold not found")
	}
	return m, err
}

func scanMoldFields(scan func(dest ...any) error) (*domain.Mold, error) {
	var m domain.Mold
	var statusStr, createdAtStr string
	var lastMaint sql.NullString
	var maintEvery sql.NullInt64

	err := scan(
		&m.ID, &m.Name, &m.Manufacturer, &m.Cavities, &m.TotalCycles,
		&m.CyclesSinceMaint, &maintEvery,
		&lastMaint, &statusStr, &m.Notes, &createdAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning mold: %w", err)
	}

	m.Status = domain.EquipmentStatus(statusStr)
	m.MaintEveryCycles = parseNullableInt(maintEvery)
	m.LastMaintenanceDate = parseNullableTime(lastMaint, dateLayout)

	m.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &m, nil
}
