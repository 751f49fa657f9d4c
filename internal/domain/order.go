package domain

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var orderNumberPattern = regexp.MustCompile(`^PED-\d{8}-\d{3}$`)

// productionEfficiency is the planning assumption for effective machine
// utilization when estimating a completion date.
const productionEfficiency = 0.85

// maxPieceWeightG rejects piece weights that only make sense if the value
// was entered in the wrong unit.
const maxPieceWeightG = 100_000

// dateOf normalizes a timestamp to its calendar day, in the timestamp's own
// location, at UTC midnight. Stored dates parse to UTC midnight, so this
// makes wall-clock times comparable with them.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current local calendar day in the normalized form
// stored dates take.
func Today() time.Time {
	return dateOf(time.Now())
}

// ProductionOrder pairs a machine and a mold to produce a target quantity
// of a material. Its lifecycle is pending -> in_production ->
// completed/late/cancelled.
type ProductionOrder struct {
	ID             string
	OrderNumber    string
	Customer       string
	MachineID      string
	MoldID         string
	QtyTarget      int
	QtyProduced    int
	CycleSeconds   float64
	Material       string
	MasterbatchPct float64
	PieceWeightG   float64
	TotalWeightKg  decimal.Decimal
	StartDate      time.Time
	DueDate        *time.Time
	Status         OrderStatus
	Priority       Priority
	Notes          string
	CreatedAt      time.Time
}

// ValidateOrderNumber checks the PED-YYYYMMDD-NNN format, including that
// the embedded date is a real calendar date.
func ValidateOrderNumber(number string) error {
	if number == "" {
		return fmt.Errorf("order number is required")
	}
	if !orderNumberPattern.MatchString(number) {
		return fmt.Errorf("order number %q must match PED-YYYYMMDD-NNN", number)
	}
	datePart := strings.Split(number, "-")[1]
	if _, err := time.Parse("20060102", datePart); err != nil {
		return fmt.Errorf("order number %q embeds an invalid date: %w", number, err)
	}
	return nil
}

// Validate checks field-level rules. today is the reference date for the
// no-backdated-start rule; pass a zero time to skip that check (used when
// rehydrating stored orders).
func (o *ProductionOrder) Validate(today time.Time) error {
	if err := ValidateOrderNumber(o.OrderNumber); err != nil {
		return err
	}
	if strings.TrimSpace(o.Customer) == "" {
		return fmt.Errorf("customer is required")
	}
	if o.QtyTarget <= 0 {
		return fmt.Errorf("target quantity must be greater than zero, got %d", o.QtyTarget)
	}
	if o.CycleSeconds <= 0 {
		return fmt.Errorf("cycle time must be greater than zero, got %.1f", o.CycleSeconds)
	}
	if o.CycleSeconds > 3600 {
		return fmt.Errorf("cycle time cannot exceed one hour, got %.1fs", o.CycleSeconds)
	}
	if o.MasterbatchPct < 0 || o.MasterbatchPct > 100 {
		return fmt.Errorf("masterbatch percentage must be between 0 and 100, got %.1f", o.MasterbatchPct)
	}
	if o.PieceWeightG <= 0 {
		return fmt.Errorf("piece weight must be greater than zero, got %.1f", o.PieceWeightG)
	}
	if o.PieceWeightG > maxPieceWeightG {
		return fmt.Errorf("piece weight %.1fg seems too high, check that the unit is grams", o.PieceWeightG)
	}
	if strings.TrimSpace(o.Material) == "" {
		return fmt.Errorf("material is required")
	}
	if o.Priority < PriorityHigh || o.Priority > PriorityLow {
		return fmt.Errorf("priority must be 1, 2 or 3, got %d", o.Priority)
	}
	if !today.IsZero() {
		// Compare calendar days in today's own location, so an order
		// started "today" late in the evening is not rejected once UTC
		// has rolled over to the next date.
		if o.StartDate.Before(dateOf(today)) {
			return fmt.Errorf("start date cannot be in the past")
		}
	}
	return nil
}

// ComputeTotalWeight returns the total material weight in kilograms:
// qty x pieceWeight/1000, grossed up by the masterbatch percentage.
func (o *ProductionOrder) ComputeTotalWeight() decimal.Decimal {
	pieceKg := decimal.NewFromFloat(o.PieceWeightG).Div(decimal.NewFromInt(1000))
	base := pieceKg.Mul(decimal.NewFromInt(int64(o.QtyTarget)))
	factor := decimal.NewFromInt(1).Add(
		decimal.NewFromFloat(o.MasterbatchPct).Div(decimal.NewFromInt(100)))
	return base.Mul(factor).Round(3)
}

// EstimateCompletion derives the planned due date from cycle time, target
// quantity and mold cavity count, at the plant's assumed efficiency.
// The result is always at least one day after start.
func EstimateCompletion(start time.Time, qtyTarget, cavities int, cycleSeconds float64) time.Time {
	cycleHours := cycleSeconds / 3600
	shots := float64(qtyTarget) / float64(cavities)
	totalHours := (cycleHours * shots) / productionEfficiency
	days := int(math.Round(totalHours / 24))
	if days < 1 {
		days = 1
	}
	return start.AddDate(0, 0, days)
}

// Remaining returns the quantity still to be produced.
func (o *ProductionOrder) Remaining() int {
	r := o.QtyTarget - o.QtyProduced
	if r < 0 {
		return 0
	}
	return r
}

// Progress returns produced/target as a percentage.
func (o *ProductionOrder) Progress() float64 {
	if o.QtyTarget == 0 {
		return 0
	}
	return float64(o.QtyProduced) / float64(o.QtyTarget) * 100
}

// ApplyAppointment accumulates qty against the target and advances the
// lifecycle: an active order moves to in_production, and to completed when
// the target is reached. Quantities past the remaining target are rejected.
func (o *ProductionOrder) ApplyAppointment(qty int) error {
	if !o.Status.Active() {
		return fmt.Errorf("order %s is %s and no longer accepts appointments", o.OrderNumber, o.Status)
	}
	if qty <= 0 {
		return fmt.Errorf("appointment quantity must be greater than zero, got %d", qty)
	}
	if qty > o.Remaining() {
		return fmt.Errorf("quantity exceeds order target: at most %d pieces remain", o.Remaining())
	}
	o.QtyProduced += qty
	if o.QtyProduced >= o.QtyTarget {
		o.Status = OrderCompleted
	} else {
		o.Status = OrderInProduction
	}
	return nil
}

// Cancel marks the order cancelled, recording the reason in its notes.
func (o *ProductionOrder) Cancel(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return fmt.Errorf("a cancellation reason is required")
	}
	if !o.Status.Active() {
		return fmt.Errorf("order %s is %s and cannot be cancelled", o.OrderNumber, o.Status)
	}
	o.Status = OrderCancelled
	note := "Cancelled: " + strings.TrimSpace(reason)
	if o.Notes != "" {
		o.Notes = o.Notes + "\n" + note
	} else {
		o.Notes = note
	}
	return nil
}

// MarkLateIfOverdue flips an active order past its due date to late.
// The comparison is between calendar days: an order is late only from the
// day after its due date, never at some hour within it. Returns true when
// the status changed.
func (o *ProductionOrder) MarkLateIfOverdue(today time.Time) bool {
	if !o.Status.Active() || o.Status == OrderLate {
		return false
	}
	if o.DueDate == nil {
		return false
	}
	if dateOf(today).After(dateOf(*o.DueDate)) {
		o.Status = OrderLate
		return true
	}
	return false
}
