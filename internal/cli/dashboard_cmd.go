package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "painel",
		Short: "Abre o painel interativo",
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunDashboard(app)
		},
	}
}

// RunDashboard starts the interactive TUI. It is also the default entry
// point when the binary is invoked without arguments on a terminal.
func RunDashboard(app *App) error {
	p := tea.NewProgram(newAppModel(app), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("painel encerrado com erro: %w", err)
	}
	return nil
}
