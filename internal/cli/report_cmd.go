package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/castroluiz/plastiq/internal/cli/formatter"
	"github.com/castroluiz/plastiq/internal/export"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newReportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "relatorio",
		Short: "Relatorios de producao e exportacao CSV",
	}

	cmd.AddCommand(
		newReportSummaryCmd(app),
		newReportMaterialCmd(app),
		newReportStatusCmd(app),
		newReportDailyCmd(app),
		newReportExportCmd(app),
	)

	return cmd
}

func newReportSummaryCmd(app *App) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "resumo",
		Short: "Resumo de producao do periodo",
		RunE: func(cmd *cobra.Command, args []string) error {
			fromDate, toDate, err := parsePeriodFlags(from, to)
			if err != nil {
				return err
			}

			s, err := app.Reports.Summary(context.Background(), fromDate, toDate)
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.Header(fmt.Sprintf("Resumo %s a %s",
				fromDate.Format("02/01/2006"), toDate.Format("02/01/2006"))))
			fmt.Printf("Pedidos em producao:  %s\n", formatter.FormatInt(s.OrdersInProduction))
			fmt.Printf("Progresso medio:      %s%%\n",
				formatter.FormatDecimal(decimal.NewFromFloat(s.AvgProgressPct), 1))
			fmt.Printf("Pecas produzidas:     %s\n", formatter.FormatInt(s.TotalProduced))
			fmt.Printf("Refugo:               %s\n", formatter.FormatWeight(s.TotalScrapKg))
			fmt.Printf("Paradas:              %s min\n", formatter.FormatInt(s.TotalDowntimeMin))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "de", "", "Inicio do periodo (YYYY-MM-DD, 30 dias atras se omitido)")
	cmd.Flags().StringVar(&to, "ate", "", "Fim do periodo (YYYY-MM-DD, hoje se omitido)")

	return cmd
}

func newReportMaterialCmd(app *App) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "material",
		Short: "Producao por material",
		RunE: func(cmd *cobra.Command, args []string) error {
			fromDate, toDate, err := parsePeriodFlags(from, to)
			if err != nil {
				return err
			}

			totals, err := app.Reports.ProductionByMaterial(context.Background(), fromDate, toDate)
			if err != nil {
				return err
			}
			if len(totals) == 0 {
				fmt.Println("Nenhuma producao no periodo.")
				return nil
			}

			headers := []string{"MATERIAL", "PECAS"}
			rows := make([][]string, 0, len(totals))
			for _, t := range totals {
				rows = append(rows, []string{t.Material, formatter.FormatInt(t.Qty)})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "de", "", "Inicio do periodo (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "ate", "", "Fim do periodo (YYYY-MM-DD)")

	return cmd
}

func newReportStatusCmd(app *App) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Pedidos por status",
		RunE: func(cmd *cobra.Command, args []string) error {
			fromDate, toDate, err := parsePeriodFlags(from, to)
			if err != nil {
				return err
			}

			counts, err := app.Reports.OrdersByStatus(context.Background(), fromDate, toDate)
			if err != nil {
				return err
			}
			if len(counts) == 0 {
				fmt.Println("Nenhum pedido no periodo.")
				return nil
			}

			headers := []string{"STATUS", "PEDIDOS"}
			rows := make([][]string, 0, len(counts))
			for _, c := range counts {
				rows = append(rows, []string{
					formatter.OrderStatusLabel(c.Status),
					formatter.FormatInt(c.Count),
				})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "de", "", "Inicio do periodo (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "ate", "", "Fim do periodo (YYYY-MM-DD)")

	return cmd
}

func newReportDailyCmd(app *App) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "diario",
		Short: "Producao dia a dia",
		RunE: func(cmd *cobra.Command, args []string) error {
			fromDate, toDate, err := parsePeriodFlags(from, to)
			if err != nil {
				return err
			}

			days, err := app.Reports.ProductionByDay(context.Background(), fromDate, toDate)
			if err != nil {
				return err
			}
			if len(days) == 0 {
				fmt.Println("Nenhuma producao no periodo.")
				return nil
			}

			headers := []string{"DATA", "PECAS", "REFUGO"}
			rows := make([][]string, 0, len(days))
			for _, d := range days {
				rows = append(rows, []string{
					d.Date.Format("02/01/2006"),
					formatter.FormatInt(d.Qty),
					formatter.FormatWeight(d.ScrapKg),
				})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "de", "", "Inicio do periodo (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "ate", "", "Fim do periodo (YYYY-MM-DD)")

	return cmd
}

func newReportExportCmd(app *App) *cobra.Command {
	var from, to, output string

	cmd := &cobra.Command{
		Use:   "export (pedidos|apontamentos|manutencoes)",
		Short: "Exporta dados do periodo em CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			fromDate, toDate, err := parsePeriodFlags(from, to)
			if err != nil {
				return err
			}

			var w io.Writer = os.Stdout
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("nao foi possivel criar %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}

			switch args[0] {
			case "pedidos":
				orders, err := app.Orders.List(ctx)
				if err != nil {
					return err
				}
				if err := export.Orders(w, orders); err != nil {
					return err
				}
			case "apontamentos":
				appointments, err := app.Production.ListByPeriod(ctx, fromDate, toDate)
				if err != nil {
					return err
				}
				if err := export.Appointments(w, appointments); err != nil {
					return err
				}
			case "manutencoes":
				records, err := app.Maintenance.ListByPeriod(ctx, fromDate, toDate)
				if err != nil {
					return err
				}
				if err := export.MaintenanceRecords(w, records); err != nil {
					return err
				}
			default:
				return fmt.Errorf("conjunto desconhecido %q (use pedidos, apontamentos ou manutencoes)", args[0])
			}

			if output != "" {
				fmt.Printf("Exportado para %s\n", output)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "de", "", "Inicio do periodo (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "ate", "", "Fim do periodo (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Arquivo de destino (stdout se omitido)")

	return cmd
}
