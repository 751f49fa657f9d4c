package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/castroluiz/plastiq/internal/cli/formatter"
	"github.com/castroluiz/plastiq/internal/domain"
	"github.com/spf13/cobra"
)

// resolveMold accepts a mold name, a full ID or an ID prefix.
func resolveMold(ctx context.Context, app *App, input string) (*domain.Mold, error) {
	if input == "" {
		return nil, fmt.Errorf("informe o molde")
	}

	if m, err := app.Molds.GetByName(ctx, input); err == nil {
		return m, nil
	}

	molds, err := app.Molds.List(ctx)
	if err != nil {
		return nil, err
	}

	var matches []*domain.Mold
	for _, m := range molds {
		if m.ID == input {
			return m, nil
		}
		if strings.HasPrefix(m.ID, input) {
			matches = append(matches, m)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("molde nao encontrado: %q", input)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("identificador %q e ambiguo (%d moldes)", input, len(matches))
	}
}

func newMoldCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "molde",
		Short: "Gerencia o cadastro de moldes",
	}

	cmd.AddCommand(
		newMoldAddCmd(app),
		newMoldListCmd(app),
		newMoldInspectCmd(app),
		newMoldUpdateCmd(app),
		newMoldRemoveCmd(app),
	)

	return cmd
}

func newMoldAddCmd(app *App) *cobra.Command {
	var name, manufacturer, notes string
	var cavities, maintEvery int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Cadastra um molde",
		RunE: func(cmd *cobra.Command, args []string) error {
			var interval *int
			if maintEvery > 0 {
				interval = &maintEvery
			}
			m, err := domain.NewMold(name, manufacturer, cavities, interval)
			if err != nil {
				return err
			}
			m.Notes = notes

			if err := app.Molds.Register(context.Background(), m); err != nil {
				return err
			}

			fmt.Printf("Molde %s cadastrado (%d cavidades)\n", m.Name, m.Cavities)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "nome", "", "Nome do molde")
	cmd.Flags().StringVar(&manufacturer, "fabricante", "", "Fabricante")
	cmd.Flags().IntVar(&cavities, "cavidades", 0, "Numero de cavidades")
	cmd.Flags().IntVar(&maintEvery, "manutencao-ciclos", 0, "Intervalo de manutencao preventiva em ciclos")
	cmd.Flags().StringVar(&notes, "obs", "", "Observacoes")
	_ = cmd.MarkFlagRequired("nome")
	_ = cmd.MarkFlagRequired("fabricante")
	_ = cmd.MarkFlagRequired("cavidades")

	return cmd
}

func newMoldListCmd(app *App) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lista os moldes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var molds []*domain.Mold
			var err error
			if status != "" {
				molds, err = app.Molds.ListByStatus(ctx, domain.EquipmentStatus(status))
			} else {
				molds, err = app.Molds.List(ctx)
			}
			if err != nil {
				return err
			}

			if len(molds) == 0 {
				fmt.Println("Nenhum molde cadastrado.")
				return nil
			}

			headers := []string{"NOME", "FABRICANTE", "CAV", "CICLOS", "DESDE REV.", "STATUS"}
			rows := make([][]string, 0, len(molds))
			for _, m := range molds {
				since := formatter.FormatInt(m.CyclesSinceMaint)
				if m.MaintEveryCycles != nil {
					since = fmt.Sprintf("%s/%s", since, formatter.FormatInt(*m.MaintEveryCycles))
				}
				rows = append(rows, []string{
					m.Name,
					m.Manufacturer,
					fmt.Sprintf("%d", m.Cavities),
					formatter.FormatInt(m.TotalCycles),
					since,
					formatter.EquipmentStatusLabel(m.Status),
				})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filtra por status (available, in_use, maintenance)")

	return cmd
}

func newMoldInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect MOLDE",
		Short: "Detalha um molde",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			m, err := resolveMold(ctx, app, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.Header("Molde "+m.Name))
			fmt.Printf("Fabricante:    %s\n", m.Manufacturer)
			fmt.Printf("Cavidades:     %d\n", m.Cavities)
			fmt.Printf("Status:        %s\n", formatter.EquipmentStatusLabel(m.Status))
			fmt.Printf("Ciclos totais: %s\n", formatter.FormatInt(m.TotalCycles))
			if m.MaintEveryCycles != nil {
				fmt.Printf("Desde revisao: %s de %s ciclos\n",
					formatter.FormatInt(m.CyclesSinceMaint), formatter.FormatInt(*m.MaintEveryCycles))
				if m.MaintenanceDue() {
					fmt.Println(formatter.StyleRed.Render("Manutencao preventiva vencida"))
				}
			}
			if m.LastMaintenanceDate != nil {
				fmt.Printf("Ultima rev.:   %s\n", m.LastMaintenanceDate.Format("02/01/2006"))
			}
			if m.Notes != "" {
				fmt.Printf("Obs:           %s\n", m.Notes)
			}

			records, err := app.Maintenance.ListByEquipment(ctx, domain.KindMold, m.ID)
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

func newMoldUpdateCmd(app *App) *cobra.Command {
	var manufacturer, notes string
	var maintEvery int

	cmd := &cobra.Command{
		Use:   "update MOLDE",
		Short: "Atualiza o cadastro de um molde",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			m, err := resolveMold(ctx, app, args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("fabricante") {
				m.Manufacturer = manufacturer
			}
			if cmd.Flags().Changed("manutencao-ciclos") {
				if maintEvery > 0 {
					m.MaintEveryCycles = &maintEvery
				} else {
					m.MaintEveryCycles = nil
				}
			}
			if cmd.Flags().Changed("obs") {
				m.Notes = notes
			}

			if err := app.Molds.Update(ctx, m); err != nil {
				return err
			}
			fmt.Printf("Molde %s atualizado\n", m.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&manufacturer, "fabricante", "", "Fabricante")
	cmd.Flags().IntVar(&maintEvery, "manutencao-ciclos", 0, "Intervalo de manutencao preventiva em ciclos (0 remove)")
	cmd.Flags().StringVar(&notes, "obs", "", "Observacoes")

	return cmd
}

func newMoldRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove MOLDE",
		Short: "Remove um molde do cadastro",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			m, err := resolveMold(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Molds.Delete(ctx, m.ID); err != nil {
				return err
			}
			fmt.Printf("Molde %s removido\n", m.Name)
			return nil
		},
	}
}
