// Package export writes production data as CSV for spreadsheet handoff.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/castroluiz/plastiq/internal/domain"
)

const dateLayout = "2006-01-02"

// Orders writes one row per production order.
func Orders(w io.Writer, orders []*domain.ProductionOrder) error {
	cw := csv.NewWriter(w)
	header := []string{
		"order_number", "customer", "status", "material", "qty_target",
		"qty_produced", "progress_pct", "total_weight_kg", "start_date",
		"due_date", "priority",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing order header: %w", err)
	}
	for _, o := range orders {
		due := ""
		if o.DueDate != nil {
			due = o.DueDate.Format(dateLayout)
		}
		row := []string{
			o.OrderNumber,
			o.Customer,
			string(o.Status),
			o.Material,
			strconv.Itoa(o.QtyTarget),
			strconv.Itoa(o.QtyProduced),
			strconv.FormatFloat(o.Progress(), 'f', 1, 64),
			o.TotalWeightKg.String(),
			o.StartDate.Format(dateLayout),
			due,
			strconv.Itoa(int(o.Priority)),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing order %s: %w", o.OrderNumber, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Appointments writes one row per shift appointment.
func Appointments(w io.Writer, appointments []*domain.Appointment) error {
	cw := csv.NewWriter(w)
	header := []string{
		"date", "shift", "order_id", "qty_produced", "scrap_kg",
		"downtime_min", "downtime_reason", "operator",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing appointment header: %w", err)
	}
	for _, a := range appointments {
		row := []string{
			a.Date.Format(dateLayout),
			string(a.Shift),
			a.OrderID,
			strconv.Itoa(a.QtyProduced),
			a.ScrapKg.String(),
			strconv.Itoa(a.DowntimeMin),
			a.DowntimeReason,
			a.Operator,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing appointment %s: %w", a.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MaintenanceRecords writes one row per maintenance record.
func MaintenanceRecords(w io.Writer, records []*domain.MaintenanceRecord) error {
	cw := csv.NewWriter(w)
	header := []string{
		"date", "equipment_kind", "equipment_id", "type", "description",
		"technician", "cost", "downtime_hours",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing maintenance header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.Date.Format(dateLayout),
			string(r.EquipmentKind),
			r.EquipmentID,
			string(r.Type),
			r.Description,
			r.Technician,
			r.Cost.String(),
			strconv.FormatFloat(r.DowntimeHours, 'f', 1, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing maintenance record %s: %w", r.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
