package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/castroluiz/plastiq/internal/cli/formatter"
	"github.com/castroluiz/plastiq/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// plastiqHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func plastiqHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// wizardSelectMachine creates a huh form to pick a machine, optionally
// restricted to available ones. Returns nil when there is nothing to pick.
func wizardSelectMachine(ctx context.Context, app *App, onlyAvailable bool, result *string) *huh.Form {
	var (
		machines []*domain.Machine
		err      error
	)
	if onlyAvailable {
		machines, err = app.Machines.ListByStatus(ctx, domain.EquipmentAvailable)
	} else {
		machines, err = app.Machines.List(ctx)
	}
	if err != nil || len(machines) == 0 {
		return nil
	}

	options := make([]huh.Option[string], 0, len(machines))
	for _, m := range machines {
		label := fmt.Sprintf("%s — %s %.0ft", m.Number, m.Brand, m.CapacityTon)
		options = append(options, huh.NewOption(label, m.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Qual maquina?").
				Options(options...).
				Value(result),
		),
	).WithTheme(plastiqHuhTheme()).WithShowHelp(false)
}

// wizardSelectMold creates a huh form to pick a mold.
func wizardSelectMold(ctx context.Context, app *App, onlyAvailable bool, result *string) *huh.Form {
	var (
		molds []*domain.Mold
		err   error
	)
	if onlyAvailable {
		molds, err = app.Molds.ListByStatus(ctx, domain.EquipmentAvailable)
	} else {
		molds, err = app.Molds.List(ctx)
	}
	if err != nil || len(molds) == 0 {
		return nil
	}

	options := make([]huh.Option[string], 0, len(molds))
	for _, m := range molds {
		label := fmt.Sprintf("%s — %d cav.", m.Name, m.Cavities)
		options = append(options, huh.NewOption(label, m.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Qual molde?").
				Options(options...).
				Value(result),
		),
	).WithTheme(plastiqHuhTheme()).WithShowHelp(false)
}

// wizardSelectActiveOrder creates a huh form to pick an appointable order.
func wizardSelectActiveOrder(ctx context.Context, app *App, result *string) *huh.Form {
	rows, err := app.Orders.ListActiveRows(ctx)
	if err != nil || len(rows) == 0 {
		return nil
	}

	options := make([]huh.Option[string], 0, len(rows))
	for _, r := range rows {
		o := r.Order
		label := fmt.Sprintf("%s — %s (%s, %d/%d)",
			o.OrderNumber, o.Customer, r.MachineNumber, o.QtyProduced, o.QtyTarget)
		options = append(options, huh.NewOption(label, o.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Qual pedido?").
				Options(options...).
				Value(result),
		),
	).WithTheme(plastiqHuhTheme()).WithShowHelp(false)
}

// parsePositiveInt parses s as a positive integer, returning fallback if s is
// empty, non-numeric, or non-positive. Used after huh form validation has
// already ensured the string is valid, so this is a safe conversion.
func parsePositiveInt(s string, fallback int) int {
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

// parseOptionalDecimal parses s as a decimal, returning zero when empty.
func parseOptionalDecimal(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// validatePositiveInt accepts a positive integer.
func validatePositiveInt(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fmt.Errorf("informe um numero positivo")
	}
	return nil
}

// validateOptionalNonNegativeInt accepts empty or a non-negative integer.
func validateOptionalNonNegativeInt(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return fmt.Errorf("informe um numero nao negativo")
	}
	return nil
}

// validatePositiveFloat accepts a positive decimal number.
func validatePositiveFloat(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return fmt.Errorf("informe um numero positivo")
	}
	return nil
}

// validateOptionalDecimal accepts empty or a non-negative decimal.
func validateOptionalDecimal(s string) error {
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return fmt.Errorf("informe um valor nao negativo")
	}
	return nil
}

// validateOptionalDate accepts empty or a YYYY-MM-DD date string.
func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("use o formato YYYY-MM-DD")
	}
	return nil
}

// validateRequired rejects blank input.
func validateRequired(field string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s e obrigatorio", field)
		}
		return nil
	}
}
