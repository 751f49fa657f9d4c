package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/castroluiz/plastiq/internal/cli/formatter"
	"github.com/castroluiz/plastiq/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type orderListLoadedMsg struct {
	orders []*domain.ProductionOrder
	err    error
}

// orderListView lists every production order with cursor navigation and a
// "/" text filter over number, customer and material.
type orderListView struct {
	state     *SharedState
	orders    []*domain.ProductionOrder
	filtered  []*domain.ProductionOrder
	cursor    int
	filter    string
	filtering bool
	loading   bool
	err       error
}

func newOrderListView(state *SharedState) *orderListView {
	return &orderListView{state: state, loading: true}
}

func (v *orderListView) ID() ViewID    { return ViewOrderList }
func (v *orderListView) Title() string { return "Pedidos" }

func (v *orderListView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "detalhes")),
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "novo")),
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "cancelar")),
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filtrar")),
	}
}

// CapturesInput reports filter-typing mode, so global hotkeys stay inert
// while the user types a filter.
func (v *orderListView) CapturesInput() bool { return v.filtering }

func (v *orderListView) Init() tea.Cmd {
	return v.loadData()
}

func (v *orderListView) loadData() tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		orders, err := app.Orders.List(context.Background())
		return orderListLoadedMsg{orders: orders, err: err}
	}
}

func (v *orderListView) applyFilter() {
	if v.filter == "" {
		v.filtered = v.orders
	} else {
		needle := strings.ToLower(v.filter)
		v.filtered = nil
		for _, o := range v.orders {
			hay := strings.ToLower(o.OrderNumber + " " + o.Customer + " " + o.Material)
			if strings.Contains(hay, needle) {
				v.filtered = append(v.filtered, o)
			}
		}
	}
	if v.cursor >= len(v.filtered) {
		v.cursor = 0
	}
}

func (v *orderListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case orderListLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.orders = msg.orders
		v.applyFilter()
		return v, nil

	case refreshViewMsg:
		return v, v.loadData()

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *orderListView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if v.filtering {
		switch msg.String() {
		case "enter", "esc":
			v.filtering = false
		case "backspace":
			if len(v.filter) > 0 {
				v.filter = v.filter[:len(v.filter)-1]
				v.applyFilter()
			}
		default:
			if msg.Type == tea.KeyRunes {
				v.filter += string(msg.Runes)
				v.applyFilter()
			}
		}
		return v, nil
	}

	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.filtered)-1 {
			v.cursor++
		}
	case "enter":
		if v.cursor < len(v.filtered) {
			return v, showOrderDetail(v.state, v.filtered[v.cursor].ID)
		}
	case "n":
		return v, startOrderWizard(v.state)
	case "c":
		return v, startCancelWizard(v.state)
	case "/":
		v.filtering = true
		v.filter = ""
		v.applyFilter()
	case "r":
		v.loading = true
		return v, v.loadData()
	}
	return v, nil
}

func (v *orderListView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Carregando pedidos...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Erro: "+v.err.Error())
	}

	var b strings.Builder
	b.WriteString("\n")
	if v.filtering || v.filter != "" {
		b.WriteString("  " + formatter.Dim("filtro: ") + v.filter + "\n\n")
	}
	if len(v.filtered) == 0 {
		b.WriteString("  " + formatter.Dim("Nenhum pedido encontrado.") + "\n")
		return b.String()
	}

	for i, o := range v.filtered {
		cursor := "  "
		numStyle := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			numStyle = formatter.StyleBold
		}

		b.WriteString(fmt.Sprintf("%s%s  %s  %s  %s/%s  %s %s\n",
			cursor,
			numStyle.Render(o.OrderNumber),
			formatter.Truncate(o.Customer, 20),
			formatter.Dim(o.Material),
			formatter.FormatInt(o.QtyProduced),
			formatter.FormatInt(o.QtyTarget),
			formatter.PriorityLabel(o.Priority),
			formatter.OrderStatusLabel(o.Status),
		))
	}
	return b.String()
}
