package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/castroluiz/plastiq/internal/cli/formatter"
	"github.com/castroluiz/plastiq/internal/domain"
	"github.com/spf13/cobra"
)

// resolveMachine accepts a machine number, a full ID or an ID prefix.
func resolveMachine(ctx context.Context, app *App, input string) (*domain.Machine, error) {
	if input == "" {
		return nil, fmt.Errorf("informe a maquina")
	}

	if m, err := app.Machines.GetByNumber(ctx, input); err == nil {
		return m, nil
	}

	machines, err := app.Machines.List(ctx)
	if err != nil {
		return nil, err
	}

	var matches []*domain.Machine
	for _, m := range machines {
		if m.ID == input {
			return m, nil
		}
		if strings.HasPrefix(m.ID, input) {
			matches = append(matches, m)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("maquina nao encontrada: %q", input)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("identificador %q e ambiguo (%d maquinas)", input, len(matches))
	}
}

func newMachineCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "maquina",
		Short: "Gerencia o cadastro de injetoras",
	}

	cmd.AddCommand(
		newMachineAddCmd(app),
		newMachineListCmd(app),
		newMachineInspectCmd(app),
		newMachineUpdateCmd(app),
		newMachineRemoveCmd(app),
	)

	return cmd
}

func newMachineAddCmd(app *App) *cobra.Command {
	var number, brand, nextMaint, notes string
	var capacity float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Cadastra uma injetora",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := domain.NewMachine(number, brand, capacity)
			if err != nil {
				return err
			}
			if nextMaint != "" {
				d, err := time.Parse("2006-01-02", nextMaint)
				if err != nil {
					return fmt.Errorf("data de revisao invalida %q: %w", nextMaint, err)
				}
				m.NextMaintenanceDate = &d
			}
			m.Notes = notes

			if err := app.Machines.Register(context.Background(), m); err != nil {
				return err
			}

			fmt.Printf("Maquina %s cadastrada (%s, %.0ft)\n", m.Number, m.Brand, m.CapacityTon)
			return nil
		},
	}

	cmd.Flags().StringVar(&number, "numero", "", "Numero da maquina (ex: INJ-01)")
	cmd.Flags().StringVar(&brand, "marca", "", "Fabricante")
	cmd.Flags().Float64Var(&capacity, "capacidade", 0, "Capacidade de fechamento em toneladas")
	cmd.Flags().StringVar(&nextMaint, "revisao", "", "Proxima revisao (YYYY-MM-DD)")
	cmd.Flags().StringVar(&notes, "obs", "", "Observacoes")
	_ = cmd.MarkFlagRequired("numero")
	_ = cmd.MarkFlagRequired("marca")
	_ = cmd.MarkFlagRequired("capacidade")

	return cmd
}

func newMachineListCmd(app *App) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lista as injetoras",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var machines []*domain.Machine
			var err error
			if status != "" {
				machines, err = app.Machines.ListByStatus(ctx, domain.EquipmentStatus(status))
			} else {
				machines, err = app.Machines.List(ctx)
			}
			if err != nil {
				return err
			}

			if len(machines) == 0 {
				fmt.Println("Nenhuma maquina cadastrada.")
				return nil
			}

			headers := []string{"NUMERO", "MARCA", "CAP", "STATUS", "PROX. REVISAO"}
			rows := make([][]string, 0, len(machines))
			for _, m := range machines {
				next := "—"
				if m.NextMaintenanceDate != nil {
					next = m.NextMaintenanceDate.Format("02/01/2006")
				}
				rows = append(rows, []string{
					m.Number,
					m.Brand,
					fmt.Sprintf("%.0ft", m.CapacityTon),
					formatter.EquipmentStatusLabel(m.Status),
					next,
				})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filtra por status (available, in_use, maintenance)")

	return cmd
}

func newMachineInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect MAQUINA",
		Short: "Detalha uma injetora",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			m, err := resolveMachine(ctx, app, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.Header("Maquina "+m.Number))
			fmt.Printf("Marca:        %s\n", m.Brand)
			fmt.Printf("Capacidade:   %.0f t\n", m.CapacityTon)
			fmt.Printf("Status:       %s\n", formatter.EquipmentStatusLabel(m.Status))
			fmt.Printf("Horimetro:    %s h\n", formatter.FormatInt(m.HourMeter))
			if m.HourMeterNextMaint != nil {
				fmt.Printf("Revisao em:   %s h\n", formatter.FormatInt(*m.HourMeterNextMaint))
				if m.MaintenanceDue() {
					fmt.Println(formatter.StyleRed.Render("Manutencao por horimetro vencida"))
				}
			}
			if m.LastMaintenanceDate != nil {
				fmt.Printf("Ultima rev.:  %s\n", m.LastMaintenanceDate.Format("02/01/2006"))
			}
			if m.NextMaintenanceDate != nil {
				fmt.Printf("Proxima rev.: %s\n", m.NextMaintenanceDate.Format("02/01/2006"))
			}
			if m.Notes != "" {
				fmt.Printf("Obs:          %s\n", m.Notes)
			}

			records, err := app.Maintenance.ListByEquipment(ctx, domain.KindMachine, m.ID)
			if err != nil {
				return err
			}
			if len(records) > 0 {
				fmt.Printf("\n%s\n", formatter.Header("Historico de manutencao"))
				printMaintenanceTable(records)
			}
			return nil
		},
	}
}

func newMachineUpdateCmd(app *App) *cobra.Command {
	var brand, nextMaint, notes string
	var capacity float64
	var hourMeter int

	cmd := &cobra.Command{
		Use:   "update MAQUINA",
		Short: "Atualiza o cadastro de uma injetora",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			m, err := resolveMachine(ctx, app, args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("marca") {
				m.Brand = brand
			}
			if cmd.Flags().Changed("capacidade") {
				m.CapacityTon = capacity
			}
			if cmd.Flags().Changed("revisao") {
				d, err := time.Parse(dateLayout, nextMaint)
				if err != nil {
					return fmt.Errorf("data de revisao invalida %q: %w", nextMaint, err)
				}
				m.NextMaintenanceDate = &d
			}
			if cmd.Flags().Changed("horimetro") {
				m.HourMeter = hourMeter
			}
			if cmd.Flags().Changed("obs") {
				m.Notes = notes
			}

			if err := app.Machines.Update(ctx, m); err != nil {
				return err
			}
			fmt.Printf("Maquina %s atualizada\n", m.Number)
			return nil
		},
	}

	cmd.Flags().StringVar(&brand, "marca", "", "Fabricante")
	cmd.Flags().Float64Var(&capacity, "capacidade", 0, "Capacidade de fechamento em toneladas")
	cmd.Flags().StringVar(&nextMaint, "revisao", "", "Proxima revisao (YYYY-MM-DD)")
	cmd.Flags().IntVar(&hourMeter, "horimetro", 0, "Leitura do horimetro em horas")
	cmd.Flags().StringVar(&notes, "obs", "", "Observacoes")

	return cmd
}

func newMachineRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove MAQUINA",
		Short: "Remove uma injetora do cadastro",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			m, err := resolveMachine(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Machines.Delete(ctx, m.ID); err != nil {
				return err
			}
			fmt.Printf("Maquina %s removida\n", m.Number)
			return nil
		},
	}
}
