package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/castroluiz/plastiq/internal/cli/formatter"
	"github.com/castroluiz/plastiq/internal/domain"
	"github.com/spf13/cobra"
)

func printAppointmentTable(appointments []*domain.Appointment) {
	headers := []string{"DATA", "TURNO", "PECAS", "REFUGO", "PARADA", "OPERADOR"}
	rows := make([][]string, 0, len(appointments))
	for _, a := range appointments {
		downtime := "—"
		if a.DowntimeMin > 0 {
			downtime = fmt.Sprintf("%d min (%s)", a.DowntimeMin, a.DowntimeReason)
		}
		rows = append(rows, []string{
			a.Date.Format("02/01/2006"),
			string(a.Shift),
			formatter.FormatInt(a.QtyProduced),
			formatter.FormatWeight(a.ScrapKg),
			downtime,
			a.Operator,
		})
	}
	fmt.Print(formatter.RenderTable(headers, rows))
}

func newProductionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apontamento",
		Short: "Registra e consulta apontamentos de producao",
	}

	cmd.AddCommand(
		newProductionLogCmd(app),
		newProductionListCmd(app),
	)

	return cmd
}

func newProductionLogCmd(app *App) *cobra.Command {
	var order, date, shift, scrap, reason, operator, notes string
	var qty, downtime int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Registra a producao de um turno",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			o, err := resolveOrder(ctx, app, order)
			if err != nil {
				return err
			}

			day := domain.Today()
			if date != "" {
				day, err = time.Parse(dateLayout, date)
				if err != nil {
					return fmt.Errorf("data invalida %q: %w", date, err)
				}
			}
			if shift == "" {
				shift = string(domain.CurrentShift(time.Now(), app.ShiftWindows))
			}

			a := &domain.Appointment{
				OrderID:        o.ID,
				Date:           day,
				Shift:          domain.Shift(shift),
				QtyProduced:    qty,
				ScrapKg:        parseOptionalDecimal(scrap),
				DowntimeMin:    downtime,
				DowntimeReason: reason,
				Operator:       operator,
				Notes:          notes,
			}

			updated, err := app.Production.LogAppointment(ctx, a)
			if err != nil {
				return err
			}

			fmt.Printf("Apontamento registrado: %s pecas no turno %s\n",
				formatter.FormatInt(a.QtyProduced), a.Shift)
			fmt.Printf("Pedido %s: %s de %s pecas %s\n",
				updated.OrderNumber,
				formatter.FormatInt(updated.QtyProduced), formatter.FormatInt(updated.QtyTarget),
				formatter.RenderProgress(updated.Progress()/100, 20))
			if updated.Status == domain.OrderCompleted {
				fmt.Println("Pedido concluido, equipamento liberado.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&order, "pedido", "", "Pedido (numero ou ID)")
	cmd.Flags().StringVar(&date, "data", "", "Data do apontamento (YYYY-MM-DD, hoje se omitida)")
	cmd.Flags().StringVar(&shift, "turno", "", "Turno A, B ou C (turno atual se omitido)")
	cmd.Flags().IntVar(&qty, "qtd", 0, "Pecas boas produzidas")
	cmd.Flags().StringVar(&scrap, "refugo", "", "Peso de refugo em kg")
	cmd.Flags().IntVar(&downtime, "parada", 0, "Minutos de maquina parada")
	cmd.Flags().StringVar(&reason, "motivo", "", "Motivo da parada")
	cmd.Flags().StringVar(&operator, "operador", "", "Nome do operador")
	cmd.Flags().StringVar(&notes, "obs", "", "Observacoes")
	_ = cmd.MarkFlagRequired("pedido")
	_ = cmd.MarkFlagRequired("qtd")
	_ = cmd.MarkFlagRequired("operador")

	return cmd
}

func newProductionListCmd(app *App) *cobra.Command {
	var order, from, to string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lista apontamentos por pedido ou periodo",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var appointments []*domain.Appointment
			if order != "" {
				o, err := resolveOrder(ctx, app, order)
				if err != nil {
					return err
				}
				appointments, err = app.Production.ListByOrder(ctx, o.ID)
				if err != nil {
					return err
				}
			} else {
				fromDate, toDate, err := parsePeriodFlags(from, to)
				if err != nil {
					return err
				}
				appointments, err = app.Production.ListByPeriod(ctx, fromDate, toDate)
				if err != nil {
					return err
				}
			}

			if len(appointments) == 0 {
				fmt.Println("Nenhum apontamento encontrado.")
				return nil
			}
			printAppointmentTable(appointments)
			return nil
		},
	}

	cmd.Flags().StringVar(&order, "pedido", "", "Filtra por pedido (numero ou ID)")
	cmd.Flags().StringVar(&from, "de", "", "Inicio do periodo (YYYY-MM-DD, 30 dias atras se omitido)")
	cmd.Flags().StringVar(&to, "ate", "", "Fim do periodo (YYYY-MM-DD, hoje se omitido)")

	return cmd
}

// parsePeriodFlags resolves the --de/--ate pair, defaulting to the last
// 30 days.
func parsePeriodFlags(from, to string) (time.Time, time.Time, error) {
	now := domain.Today()
	fromDate := now.AddDate(0, 0, -30)
	toDate := now

	var err error
	if from != "" {
		fromDate, err = time.Parse(dateLayout, from)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("data inicial invalida %q: %w", from, err)
		}
	}
	if to != "" {
		toDate, err = time.Parse(dateLayout, to)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("data final invalida %q: %w", to, err)
		}
	}
	if toDate.Before(fromDate) {
		return time.Time{}, time.Time{}, fmt.Errorf("a data final precede a inicial")
	}
	return fromDate, toDate, nil
}
