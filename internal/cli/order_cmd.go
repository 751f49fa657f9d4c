package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/castroluiz/plastiq/internal/cli/formatter"
	"github.com/castroluiz/plastiq/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// resolveOrder accepts an order number (PED-...), a full ID or an ID prefix.
func resolveOrder(ctx context.Context, app *App, input string) (*domain.ProductionOrder, error) {
	if input == "" {
		return nil, fmt.Errorf("informe o pedido")
	}

	if strings.HasPrefix(strings.ToUpper(input), "PED-") {
		return app.Orders.GetByNumber(ctx, strings.ToUpper(input))
	}

	orders, err := app.Orders.List(ctx)
	if err != nil {
		return nil, err
	}

	var matches []*domain.ProductionOrder
	for _, o := range orders {
		if o.ID == input {
			return o, nil
		}
		if strings.HasPrefix(o.ID, input) {
			matches = append(matches, o)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("pedido nao encontrado: %q", input)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("identificador %q e ambiguo (%d pedidos)", input, len(matches))
	}
}

func newOrderCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pedido",
		Short: "Gerencia os pedidos de producao",
	}

	cmd.AddCommand(
		newOrderCreateCmd(app),
		newOrderListCmd(app),
		newOrderInspectCmd(app),
		newOrderCancelCmd(app),
	)

	return cmd
}

func newOrderCreateCmd(app *App) *cobra.Command {
	var number, customer, machine, mold, material, start, due, notes string
	var qty, priority int
	var cycle, masterbatch, pieceWeight float64

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Abre um pedido de producao",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if err := domain.ValidateMaterial(material, app.MaterialCatalog); err != nil {
				return err
			}
			m, err := resolveMachine(ctx, app, machine)
			if err != nil {
				return err
			}
			md, err := resolveMold(ctx, app, mold)
			if err != nil {
				return err
			}

			startDate := domain.Today()
			if start != "" {
				startDate, err = time.Parse(dateLayout, start)
				if err != nil {
					return fmt.Errorf("data de inicio invalida %q: %w", start, err)
				}
			}

			if number == "" {
				number = nextOrderNumber(ctx, app, startDate)
			}

			o := &domain.ProductionOrder{
				OrderNumber:    strings.ToUpper(number),
				Customer:       customer,
				MachineID:      m.ID,
				MoldID:         md.ID,
				QtyTarget:      qty,
				CycleSeconds:   cycle,
				Material:       strings.ToUpper(material),
				MasterbatchPct: masterbatch,
				PieceWeightG:   pieceWeight,
				StartDate:      startDate,
				Priority:       domain.Priority(priority),
				Notes:          notes,
			}
			if due != "" {
				d, err := time.Parse(dateLayout, due)
				if err != nil {
					return fmt.Errorf("data de entrega invalida %q: %w", due, err)
				}
				o.DueDate = &d
			}

			if err := app.Orders.Create(ctx, o); err != nil {
				return err
			}

			fmt.Printf("Pedido %s criado para %s\n", o.OrderNumber, o.Customer)
			fmt.Printf("Materia-prima: %s  Entrega: %s\n",
				formatter.FormatWeight(o.TotalWeightKg), o.DueDate.Format("02/01/2006"))
			return nil
		},
	}

	cmd.Flags().StringVar(&number, "numero", "", "Numero do pedido (PED-YYYYMMDD-NNN, gerado se omitido)")
	cmd.Flags().StringVar(&customer, "cliente", "", "Cliente")
	cmd.Flags().StringVar(&machine, "maquina", "", "Maquina (numero ou ID)")
	cmd.Flags().StringVar(&mold, "molde", "", "Molde (nome ou ID)")
	cmd.Flags().IntVar(&qty, "qtd", 0, "Quantidade alvo de pecas")
	cmd.Flags().Float64Var(&cycle, "ciclo", 0, "Tempo de ciclo em segundos")
	cmd.Flags().StringVar(&material, "material", "", "Material (PE, PS, SAN, PP)")
	cmd.Flags().Float64Var(&masterbatch, "masterbatch", 0, "Percentual de masterbatch")
	cmd.Flags().Float64Var(&pieceWeight, "peso-peca", 0, "Peso da peca em gramas")
	cmd.Flags().StringVar(&start, "inicio", "", "Data de inicio (YYYY-MM-DD, hoje se omitida)")
	cmd.Flags().StringVar(&due, "entrega", "", "Data de entrega (YYYY-MM-DD, estimada se omitida)")
	cmd.Flags().IntVar(&priority, "prioridade", int(domain.PriorityNormal), "Prioridade (1 alta, 2 normal, 3 baixa)")
	cmd.Flags().StringVar(&notes, "obs", "", "Observacoes")
	_ = cmd.MarkFlagRequired("cliente")
	_ = cmd.MarkFlagRequired("maquina")
	_ = cmd.MarkFlagRequired("molde")
	_ = cmd.MarkFlagRequired("qtd")
	_ = cmd.MarkFlagRequired("ciclo")
	_ = cmd.MarkFlagRequired("material")
	_ = cmd.MarkFlagRequired("peso-peca")

	return cmd
}

func newOrderListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lista os pedidos",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var orders []*domain.ProductionOrder
			var err error
			if all {
				orders, err = app.Orders.List(ctx)
			} else {
				orders, err = app.Orders.ListActive(ctx)
			}
			if err != nil {
				return err
			}

			if len(orders) == 0 {
				fmt.Println("Nenhum pedido encontrado.")
				return nil
			}

			headers := []string{"NUMERO", "CLIENTE", "MATERIAL", "PRODUZIDO", "ALVO", "PRIORIDADE", "STATUS"}
			rows := make([][]string, 0, len(orders))
			for _, o := range orders {
				rows = append(rows, []string{
					o.OrderNumber,
					formatter.Truncate(o.Customer, 24),
					o.Material,
					formatter.FormatInt(o.QtyProduced),
					formatter.FormatInt(o.QtyTarget),
					formatter.PriorityLabel(o.Priority),
					formatter.OrderStatusLabel(o.Status),
				})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Inclui pedidos concluidos e cancelados")

	return cmd
}

func newOrderInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect PEDIDO",
		Short: "Detalha um pedido",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			o, err := resolveOrder(ctx, app, args[0])
			if err != nil {
				return err
			}

			m, err := app.Machines.GetByID(ctx, o.MachineID)
			if err != nil {
				return err
			}
			md, err := app.Molds.GetByID(ctx, o.MoldID)
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.Header("Pedido "+o.OrderNumber))
			fmt.Printf("Cliente:     %s\n", o.Customer)
			fmt.Printf("Status:      %s  %s\n",
				formatter.OrderStatusLabel(o.Status), formatter.PriorityLabel(o.Priority))
			fmt.Printf("Maquina:     %s (%s)\n", m.Number, m.Brand)
			fmt.Printf("Molde:       %s (%d cavidades)\n", md.Name, md.Cavities)
			fmt.Printf("Material:    %s, %s%% masterbatch\n",
				o.Material, formatter.FormatDecimal(decimal.NewFromFloat(o.MasterbatchPct), 1))
			fmt.Printf("Producao:    %s de %s pecas  %s\n",
				formatter.FormatInt(o.QtyProduced), formatter.FormatInt(o.QtyTarget),
				formatter.RenderProgress(o.Progress()/100, 20))
			fmt.Printf("Peso total:  %s\n", formatter.FormatWeight(o.TotalWeightKg))
			fmt.Printf("Inicio:      %s\n", o.StartDate.Format("02/01/2006"))
			if o.DueDate != nil {
				fmt.Printf("Entrega:     %s\n", o.DueDate.Format("02/01/2006"))
			}
			if o.Notes != "" {
				fmt.Printf("Obs:         %s\n", o.Notes)
			}

			appointments, err := app.Production.ListByOrder(ctx, o.ID)
			if err != nil {
				return err
			}
			if len(appointments) > 0 {
				fmt.Printf("\n%s\n", formatter.Header("Apontamentos"))
				printAppointmentTable(appointments)
			}
			return nil
		},
	}
}

func newOrderCancelCmd(app *App) *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "cancel PEDIDO",
		Short: "Cancela um pedido e libera o equipamento",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			o, err := resolveOrder(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Orders.Cancel(ctx, o.ID, reason); err != nil {
				return err
			}
			fmt.Printf("Pedido %s cancelado\n", o.OrderNumber)
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "motivo", "", "Motivo do cancelamento")
	_ = cmd.MarkFlagRequired("motivo")

	return cmd
}
