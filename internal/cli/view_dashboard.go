package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/castroluiz/plastiq/internal/cli/formatter"
	"github.com/castroluiz/plastiq/internal/domain"
	"github.com/castroluiz/plastiq/internal/repository"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
)

// sectionHeader renders an indented section title with its underline.
func sectionHeader(title string) string {
	upper := strings.ToUpper(title)
	line := strings.Repeat("─", len(upper))
	return "  " + formatter.StyleHeader.Render(upper) + "\n  " + formatter.Dim(line) + "\n"
}

// dashboardData holds the loaded data for the dashboard view.
type dashboardData struct {
	summary   *repository.PeriodSummary
	active    []repository.ActiveOrderRow
	byStatus  []repository.StatusCount
	lateCount int
}

// dashboardLoadedMsg signals that dashboard data has been loaded.
type dashboardLoadedMsg struct {
	data dashboardData
	err  error
}

// dashboardView is the home screen of the TUI. It shows the last 30 days of
// production metrics and the active order queue.
type dashboardView struct {
	state   *SharedState
	data    *dashboardData
	cursor  int
	loading bool
	err     error
}

func newDashboardView(state *SharedState) *dashboardView {
	return &dashboardView{
		state:   state,
		loading: true,
	}
}

func (v *dashboardView) ID() ViewID    { return ViewDashboard }
func (v *dashboardView) Title() string { return "Painel" }

func (v *dashboardView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "apontar")),
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "novo pedido")),
		key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pedidos")),
		key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "maquinas")),
		key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "moldes")),
		key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "manutencao")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "atualizar")),
	}
}

func (v *dashboardView) Init() tea.Cmd {
	return v.loadData()
}

func (v *dashboardView) loadData() tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		ctx := context.Background()
		now := time.Now()

		// Flip overdue orders before reading, so the queue is current.
		if _, err := app.Orders.MarkOverdue(ctx, now); err != nil {
			return dashboardLoadedMsg{err: err}
		}

		from := now.AddDate(0, 0, -30)
		summary, err := app.Reports.Summary(ctx, from, now)
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		active, err := app.Orders.ListActiveRows(ctx)
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		byStatus, err := app.Reports.OrdersByStatus(ctx, from, now)
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}

		data := dashboardData{summary: summary, active: active, byStatus: byStatus}
		for _, r := range active {
			if r.Order.Status == domain.OrderLate {
				data.lateCount++
			}
		}
		return dashboardLoadedMsg{data: data}
	}
}

func (v *dashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.data = &msg.data
		if v.cursor >= len(msg.data.active) {
			v.cursor = 0
		}
		return v, nil

	case refreshViewMsg:
		return v, v.loadData()

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *dashboardView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.data != nil && v.cursor < len(v.data.active)-1 {
			v.cursor++
		}
	case "enter":
		if v.data != nil && v.cursor < len(v.data.active) {
			row := v.data.active[v.cursor]
			return v, showOrderDetail(v.state, row.Order.ID)
		}
	case "a":
		return v, startAppointmentWizard(v.state)
	case "n":
		return v, startOrderWizard(v.state)
	case "c":
		return v, startCancelWizard(v.state)
	case "t":
		return v, startMaintenanceWizard(v.state)
	case "p":
		return v, pushView(newOrderListView(v.state))
	case "m":
		return v, pushView(newMachineListView(v.state))
	case "f":
		return v, pushView(newMoldListView(v.state))
	case "r":
		v.loading = true
		return v, v.loadData()
	}
	return v, nil
}

func (v *dashboardView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Carregando painel...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Erro: "+v.err.Error())
	}
	if v.data == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(v.renderMetrics())
	b.WriteString("\n")
	b.WriteString(sectionHeader("Pedidos ativos"))
	b.WriteString(v.renderActiveOrders())
	return b.String()
}

func (v *dashboardView) renderMetrics() string {
	s := v.data.summary

	cells := []string{
		fmt.Sprintf("%s %s", formatter.Bold(formatter.FormatInt(s.OrdersInProduction)), formatter.Dim("em producao")),
		fmt.Sprintf("%s %s", formatter.Bold(formatter.FormatInt(s.TotalProduced)), formatter.Dim("pecas/30d")),
		fmt.Sprintf("%s %s", formatter.Bold(formatter.FormatWeight(s.TotalScrapKg)), formatter.Dim("refugo")),
		fmt.Sprintf("%s %s", formatter.Bold(formatter.FormatInt(s.TotalDowntimeMin)+" min"), formatter.Dim("paradas")),
	}
	if v.data.lateCount > 0 {
		cells = append(cells, formatter.StyleRed.Render(
			fmt.Sprintf("%d atrasado(s)", v.data.lateCount)))
	}

	var b strings.Builder
	b.WriteString("  " + strings.Join(cells, formatter.Dim("  │  ")) + "\n")
	if len(v.data.byStatus) > 0 {
		parts := make([]string, 0, len(v.data.byStatus))
		for _, sc := range v.data.byStatus {
			parts = append(parts, fmt.Sprintf("%s %d", formatter.OrderStatusLabel(sc.Status), sc.Count))
		}
		b.WriteString("  " + strings.Join(parts, "   ") + "\n")
	}
	return b.String()
}

func (v *dashboardView) renderActiveOrders() string {
	if len(v.data.active) == 0 {
		return "  " + formatter.Dim("Nenhum pedido ativo.") + "\n"
	}

	var b strings.Builder
	for i, row := range v.data.active {
		o := row.Order

		cursor := "  "
		numStyle := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			numStyle = formatter.StyleBold
		}

		due := formatter.Dim("—")
		if o.DueDate != nil {
			due = formatter.Dim(o.DueDate.Format("02/01"))
		}

		b.WriteString(fmt.Sprintf("%s%s  %s  %s  %s  %s %s\n",
			cursor,
			numStyle.Render(o.OrderNumber),
			formatter.Truncate(o.Customer, 18),
			formatter.Dim(row.MachineNumber),
			formatter.RenderProgress(o.Progress()/100, 16),
			due,
			formatter.OrderStatusLabel(o.Status),
		))
	}
	return b.String()
}

// showOrderDetail loads an order with its appointments and renders a
// transient detail panel.
func showOrderDetail(state *SharedState, orderID string) tea.Cmd {
	app := state.App
	return func() tea.Msg {
		ctx := context.Background()
		o, err := app.Orders.GetByID(ctx, orderID)
		if err != nil {
			return cmdOutputMsg{output: errorText(err)}
		}
		appointments, err := app.Production.ListByOrder(ctx, orderID)
		if err != nil {
			return cmdOutputMsg{output: errorText(err)}
		}

		var b strings.Builder
		b.WriteString("\n" + sectionHeader("Pedido "+o.OrderNumber))
		b.WriteString(fmt.Sprintf("  Cliente:   %s\n", formatter.Bold(o.Customer)))
		b.WriteString(fmt.Sprintf("  Status:    %s  %s\n",
			formatter.OrderStatusLabel(o.Status), formatter.PriorityLabel(o.Priority)))
		b.WriteString(fmt.Sprintf("  Material:  %s, %s%% masterbatch\n",
			o.Material, formatter.FormatDecimal(decimal.NewFromFloat(o.MasterbatchPct), 1)))
		b.WriteString(fmt.Sprintf("  Producao:  %s de %s pecas  %s\n",
			formatter.FormatInt(o.QtyProduced), formatter.FormatInt(o.QtyTarget),
			formatter.RenderProgress(o.Progress()/100, 20)))
		b.WriteString(fmt.Sprintf("  Peso:      %s\n", formatter.FormatWeight(o.TotalWeightKg)))
		if o.DueDate != nil {
			b.WriteString(fmt.Sprintf("  Entrega:   %s\n", o.DueDate.Format("02/01/2006")))
		}
		if o.Notes != "" {
			b.WriteString("  Obs:       " + formatter.Dim(o.Notes) + "\n")
		}

		if len(appointments) > 0 {
			b.WriteString("\n" + sectionHeader("Apontamentos"))
			headers := []string{"DATA", "TURNO", "PECAS", "REFUGO", "PARADA", "OPERADOR"}
			rows := make([][]string, 0, len(appointments))
			for _, a := range appointments {
				rows = append(rows, []string{
					a.Date.Format("02/01"),
					string(a.Shift),
					formatter.FormatInt(a.QtyProduced),
					formatter.FormatWeight(a.ScrapKg),
					fmt.Sprintf("%d min", a.DowntimeMin),
					a.Operator,
				})
			}
			table := formatter.RenderTable(headers, rows)
			for _, line := range strings.Split(strings.TrimRight(table, "\n"), "\n") {
				b.WriteString("  " + line + "\n")
			}
		}

		return cmdOutputMsg{output: b.String()}
	}
}
