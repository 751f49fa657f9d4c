package cli

import (
	"github.com/castroluiz/plastiq/internal/domain"
	"github.com/castroluiz/plastiq/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands,
// plus plant configuration shared by the wizards.
type App struct {
	Machines    service.MachineService
	Molds       service.MoldService
	Orders      service.OrderService
	Production  service.ProductionService
	Maintenance service.MaintenanceService
	Reports     service.ReportService

	ShiftWindows []domain.ShiftWindow
	Materials    []string
	// MaterialCatalog is the lookup set for Materials, used to validate
	// free-typed material flags. The TUI constrains the choice via select.
	MaterialCatalog map[string]bool
}

// NewRootCmd creates the top-level "plastiq" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "plastiq",
		Short: "Controle de producao para injecao plastica",
	}

	root.AddCommand(
		newMachineCmd(app),
		newMoldCmd(app),
		newOrderCmd(app),
		newProductionCmd(app),
		newMaintenanceCmd(app),
		newReportCmd(app),
		newDashboardCmd(app),
	)

	return root
}
