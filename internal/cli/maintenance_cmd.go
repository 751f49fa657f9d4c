package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/castroluiz/plastiq/internal/cli/formatter"
	"github.com/castroluiz/plastiq/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func printMaintenanceTable(records []*domain.MaintenanceRecord) {
	headers := []string{"DATA", "TIPO", "DESCRICAO", "TECNICO", "CUSTO", "PARADA"}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		kind := "Preventiva"
		if r.Type == domain.MaintenanceCorrective {
			kind = "Corretiva"
		}
		rows = append(rows, []string{
			r.Date.Format("02/01/2006"),
			kind,
			formatter.Truncate(r.Description, 40),
			r.Technician,
			formatter.FormatMoney(r.Cost),
			fmt.Sprintf("%.1f h", r.DowntimeHours),
		})
	}
	fmt.Print(formatter.RenderTable(headers, rows))
}

func newMaintenanceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manutencao",
		Short: "Registra e consulta manutencoes",
	}

	cmd.AddCommand(
		newMaintenanceAddCmd(app),
		newMaintenanceListCmd(app),
	)

	return cmd
}

func newMaintenanceAddCmd(app *App) *cobra.Command {
	var machine, mold, date, mtype, description, technician, cost string
	var downtime float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Registra uma manutencao e devolve o equipamento ao servico",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if (machine == "") == (mold == "") {
				return fmt.Errorf("informe exatamente um de --maquina ou --molde")
			}

			var kind domain.EquipmentKind
			var equipmentID string
			if machine != "" {
				m, err := resolveMachine(ctx, app, machine)
				if err != nil {
					return err
				}
				kind, equipmentID = domain.KindMachine, m.ID
			} else {
				m, err := resolveMold(ctx, app, mold)
				if err != nil {
					return err
				}
				kind, equipmentID = domain.KindMold, m.ID
			}

			day := domain.Today()
			if date != "" {
				var err error
				day, err = time.Parse(dateLayout, date)
				if err != nil {
					return fmt.Errorf("data invalida %q: %w", date, err)
				}
			}

			costDec := decimal.Zero
			if cost != "" {
				var err error
				costDec, err = decimal.NewFromString(cost)
				if err != nil {
					return fmt.Errorf("custo invalido %q: %w", cost, err)
				}
			}

			r := &domain.MaintenanceRecord{
				EquipmentKind: kind,
				EquipmentID:   equipmentID,
				Date:          day,
				Type:          domain.MaintenanceType(mtype),
				Description:   description,
				Technician:    technician,
				Cost:          costDec,
				DowntimeHours: downtime,
			}

			if err := app.Maintenance.Register(ctx, r); err != nil {
				return err
			}

			fmt.Println("Manutencao registrada, equipamento disponivel.")
			return nil
		},
	}

	cmd.Flags().StringVar(&machine, "maquina", "", "Maquina (numero ou ID)")
	cmd.Flags().StringVar(&mold, "molde", "", "Molde (nome ou ID)")
	cmd.Flags().StringVar(&date, "data", "", "Data da manutencao (YYYY-MM-DD, hoje se omitida)")
	cmd.Flags().StringVar(&mtype, "tipo", string(domain.MaintenancePreventive), "Tipo (preventive, corrective)")
	cmd.Flags().StringVar(&description, "descricao", "", "Descricao do servico")
	cmd.Flags().StringVar(&technician, "tecnico", "", "Tecnico responsavel")
	cmd.Flags().StringVar(&cost, "custo", "", "Custo em reais")
	cmd.Flags().Float64Var(&downtime, "parada", 0, "Horas de equipamento parado")
	_ = cmd.MarkFlagRequired("descricao")
	_ = cmd.MarkFlagRequired("tecnico")

	return cmd
}

func newMaintenanceListCmd(app *App) *cobra.Command {
	var machine, mold, from, to string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lista manutencoes por equipamento ou periodo",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var records []*domain.MaintenanceRecord
			switch {
			case machine != "":
				m, err := resolveMachine(ctx, app, machine)
				if err != nil {
					return err
				}
				records, err = app.Maintenance.ListByEquipment(ctx, domain.KindMachine, m.ID)
				if err != nil {
					return err
				}
			case mold != "":
				m, err := resolveMold(ctx, app, mold)
				if err != nil {
					return err
				}
				records, err = app.Maintenance.ListByEquipment(ctx, domain.KindMold, m.ID)
				if err != nil {
					return err
				}
			default:
				fromDate, toDate, err := parsePeriodFlags(from, to)
				if err != nil {
					return err
				}
				records, err = app.Maintenance.ListByPeriod(ctx, fromDate, toDate)
				if err != nil {
					return err
				}
			}

			if len(records) == 0 {
				fmt.Println("Nenhuma manutencao encontrada.")
				return nil
			}
			printMaintenanceTable(records)
			return nil
		},
	}

	cmd.Flags().StringVar(&machine, "maquina", "", "Filtra por maquina (numero ou ID)")
	cmd.Flags().StringVar(&mold, "molde", "", "Filtra por molde (nome ou ID)")
	cmd.Flags().StringVar(&from, "de", "", "Inicio do periodo (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "ate", "", "Fim do periodo (YYYY-MM-DD)")

	return cmd
}
