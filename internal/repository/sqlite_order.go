package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/castroluiz/plastiq/internal/db"
	"github.com/castroluiz/plastiq/internal/domain"
)

const orderColumns = `id, order_number, customer, machine_id, mold_id,
		qty_target, qty_produced, cycle_seconds, material, masterbatch_pct,
		piece_weight_g, total_weight_kg, start_date, due_date, status,
		priority, notes, created_at`

// orderColumnsAliased is the same column list prefixed with "o." for joins.
const orderColumnsAliased = `o.id, o.order_number, o.customer, o.machine_id, o.mold_id,
		o.qty_target, o.qty_produced, o.cycle_seconds, o.material, o.masterbatch_pct,
		o.piece_weight_g, o.total_weight_kg, o.start_date, o.due_date, o.status,
		o.priority, o.notes, o.created_at`

// activeStatuses is the SQL predicate for appointable orders.
const activeStatuses = `('pending','in_production','late')`

// SQLiteOrderRepo implements OrderRepo using a SQLite database.
type SQLiteOrderRepo struct {
	db db.DBTX
}

// NewSQLiteOrderRepo creates a new SQLiteOrderRepo.
func NewSQLiteOrderRepo(conn db.DBTX) *SQLiteOrderRepo {
	return &SQLiteOrderRepo{db: conn}
}

func (r *SQLiteOrderRepo) Create(ctx context.Context, o *domain.ProductionOrder) error {
	query := `INSERT INTO production_orders (` + orderColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		o.ID,
		o.OrderNumber,
		o.Customer,
		o.MachineID,
		o.MoldID,
		o.QtyTarget,
		o.QtyProduced,
		o.CycleSeconds,
		o.Material,
		o.MasterbatchPct,
		o.PieceWeightG,
		o.TotalWeightKg.String(),
		o.StartDate.Format(dateLayout),
		nullableTimeToString(o.DueDate, dateLayout),
		string(o.Status),
		int(o.Priority),
		o.Notes,
		o.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting order: %w", err)
	}
	return nil
}

func (r *SQLiteOrderRepo) GetByID(ctx context.Context, id string) (*domain.ProductionOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM production_orders WHERE id = ?`
	return scanOrder(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteOrderRepo) GetByNumber(ctx context.Context, number string) (*domain.ProductionOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM production_orders WHERE UPPER(order_number) = UPPER(?)`
	return scanOrder(r.db.QueryRowContext(ctx, query, number))
}

func (r *SQLiteOrderRepo) List(ctx context.Context) ([]*domain.ProductionOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM production_orders
		ORDER BY priority, start_date`
	return r.queryOrders(ctx, query)
}

func (r *SQLiteOrderRepo) ListActive(ctx context.Context) ([]*domain.ProductionOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM production_orders
		WHERE status IN ` + activeStatuses + `
		ORDER BY priority, start_date`
	return r.queryOrders(ctx, query)
}

func (r *SQLiteOrderRepo) ListByPeriod(ctx context.Context, from, to time.Time) ([]*domain.ProductionOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM production_orders
		WHERE start_date BETWEEN ? AND ?
		ORDER BY priority, start_date`
	return r.queryOrders(ctx, query, from.Format(dateLayout), to.Format(dateLayout))
}

func (r *SQLiteOrderRepo) ListActiveRows(ctx context.Context) ([]ActiveOrderRow, error) {
	query := `SELECT ` + orderColumnsAliased + `, i.number, m.name
		FROM production_orders o
		JOIN machines i ON o.machine_id = i.id
		JOIN molds m ON o.mold_id = m.id
		WHERE o.status IN ` + activeStatuses + `
		ORDER BY o.priority, o.start_date`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing active order rows: %w", err)
	}
	defer rows.Close()

	var result []ActiveOrderRow
	for rows.Next() {
		var row ActiveOrderRow
		o, err := scanOrderFields(func(dest ...any) error {
			dest = append(dest, &row.MachineNumber, &row.MoldName)
			return rows.Scan(dest...)
		})
		if err != nil {
			return nil, err
		}
		row.Order = *o
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating active order rows: %w", err)
	}
	return result, nil
}

func (r *SQLiteOrderRepo) Update(ctx context.Context, o *domain.ProductionOrder) error {
	query := `UPDATE production_orders SET customer = ?, qty_target = ?,
		qty_produced = ?, cycle_seconds = ?, material = ?, masterbatch_pct = ?,
		piece_weight_g = ?, total_weight_kg = ?, start_date = ?, due_date = ?,
		status = ?, priority = ?, notes = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		o.Customer,
		o.QtyTarget,
		o.QtyProduced,
		o.CycleSeconds,
		o.Material,
		o.MasterbatchPct,
		o.PieceWeightG,
		o.TotalWeightKg.String(),
		o.StartDate.Format(dateLayout),
		nullableTimeToString(o.DueDate, dateLayout),
		string(o.Status),
		int(o.Priority),
		o.Notes,
		o.ID,
	)
	if err != nil {
		return fmt.Errorf("updating order: %w", err)
	}
	return nil
}

func (r *SQLiteOrderRepo) queryOrders(ctx context.Context, query string, args ...any) ([]*domain.ProductionOrder, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.ProductionOrder
	for rows.Next() {
		o, err := scanOrderFields(rows.Scan)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating orders: %w", err)
	}
	return orders, nil
}

func scanOrder(row *sql.Row) (*domain.ProductionOrder, error) {
	o, err := scanOrderFields(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("order not found")
	}
	return o, err
}

func scanOrderFields(scan func(dest ...any) error) (*domain.ProductionOrder, error) {
	var o domain.ProductionOrder
	var statusStr, startDateStr, createdAtStr, totalWeightStr string
	var dueDateStr sql.NullString
	var priority int

	err := scan(
		&o.ID, &o.OrderNumber, &o.Customer, &o.MachineID, &o.MoldID,
		&o.QtyTarget, &o.QtyProduced, &o.CycleSeconds, &o.Material, &o.MasterbatchPct,
		&o.PieceWeightG, &totalWeightStr, &startDateStr, &dueDateStr, &statusStr,
		&priority, &o.Notes, &createdAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning order: %w", err)
	}

	o.Status = domain.OrderStatus(statusStr)
	o.Priority = domain.Priority(priority)
	o.DueDate = parseNullableTime(dueDateStr, dateLayout)

	if o.TotalWeightKg, err = parseDecimal(totalWeightStr); err != nil {
		return nil, err
	}
	if o.StartDate, err = time.Parse(dateLayout, startDateStr); err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}
	if o.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &o, nil
}
