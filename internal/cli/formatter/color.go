package formatter

import (
	"fmt"
	"strings"

	"github.com/castroluiz/plastiq/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// OrderStatusLabel returns a colored dot indicator for an order status,
// such as "● EM PRODUCAO".
func OrderStatusLabel(status domain.OrderStatus) string {
	switch status {
	case domain.OrderPending:
		return StyleBlue.Render("● PENDENTE")
	case domain.OrderInProduction:
		return StyleGreen.Render("● EM PRODUCAO")
	case domain.OrderCompleted:
		return StyleDim.Render("● CONCLUIDO")
	case domain.OrderLate:
		return StyleRed.Render("● ATRASADO")
	case domain.OrderCancelled:
		return StylePurple.Render("● CANCELADO")
	default:
		return StyleDim.Render("● ?")
	}
}

// EquipmentStatusLabel returns a colored indicator for machine or mold status.
func EquipmentStatusLabel(status domain.EquipmentStatus) string {
	switch status {
	case domain.EquipmentAvailable:
		return StyleGreen.Render("● DISPONIVEL")
	case domain.EquipmentInUse:
		return StyleYellow.Render("● EM USO")
	case domain.EquipmentMaintenance:
		return StyleRed.Render("● MANUTENCAO")
	default:
		return StyleDim.Render("● ?")
	}
}

// PriorityLabel renders the order priority, coloring high priority red.
func PriorityLabel(p domain.Priority) string {
	switch p {
	case domain.PriorityHigh:
		return StyleRed.Render("Alta")
	case domain.PriorityLow:
		return StyleDim.Render("Baixa")
	default:
		return StyleFg.Render("Normal")
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
