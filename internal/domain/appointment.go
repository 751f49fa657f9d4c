package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

var operatorPattern = regexp.MustCompile(`^[A-Za-zÀ-ÿ\s]+$`)

// Appointment is a dated record of quantity produced and scrap weight
// against an order in a given shift.
type Appointment struct {
	ID             string
	OrderID        string
	Date           time.Time
	Shift          Shift
	QtyProduced    int
	ScrapKg        decimal.Decimal
	DowntimeMin    int
	DowntimeReason string
	Operator       string
	Notes          string
	RecordedAt     time.Time
}

// Validate checks field-level rules. Quantity-vs-target limits are enforced
// by the order itself when the appointment is applied.
func (a *Appointment) Validate() error {
	if a.OrderID == "" {
		return fmt.Errorf("order is required")
	}
	if err := ValidateShift(a.Shift); err != nil {
		return err
	}
	if a.QtyProduced <= 0 {
		return fmt.Errorf("produced quantity must be greater than zero, got %d", a.QtyProduced)
	}
	if a.ScrapKg.IsNegative() {
		return fmt.Errorf("scrap weight cannot be negative")
	}
	if a.DowntimeMin < 0 {
		return fmt.Errorf("downtime cannot be negative")
	}
	if a.DowntimeMin > 0 && strings.TrimSpace(a.DowntimeReason) == "" {
		return fmt.Errorf("a downtime reason is required when downtime is recorded")
	}
	return a.validateOperator()
}

func (a *Appointment) validateOperator() error {
	op := strings.TrimSpace(a.Operator)
	if op == "" {
		return fmt.Errorf("operator is required")
	}
	if n := utf8.RuneCountInString(op); n < 3 || n > 100 {
		return fmt.Errorf("operator name must be between 3 and 100 characters")
	}
	if !operatorPattern.MatchString(op) {
		return fmt.Errorf("operator name may contain only letters and spaces")
	}
	return nil
}
