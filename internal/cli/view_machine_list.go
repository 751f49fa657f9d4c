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

type machineListLoadedMsg struct {
	machines []*domain.Machine
	err      error
}

// machineListView lists the injection machine registry.
type machineListView struct {
	state    *SharedState
	machines []*domain.Machine
	cursor   int
	loading  bool
	err      error
}

func newMachineListView(state *SharedState) *machineListView {
	return &machineListView{state: state, loading: true}
}

func (v *machineListView) ID() ViewID    { return ViewMachineList }
func (v *machineListView) Title() string { return "Maquinas" }

func (v *machineListView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "nova maquina")),
		key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "manutencao")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "atualizar")),
	}
}

func (v *machineListView) Init() tea.Cmd {
	return v.loadData()
}

func (v *machineListView) loadData() tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		machines, err := app.Machines.List(context.Background())
		return machineListLoadedMsg{machines: machines, err: err}
	}
}

func (v *machineListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case machineListLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.machines = msg.machines
		if v.cursor >= len(v.machines) {
			v.cursor = 0
		}
		return v, nil

	case refreshViewMsg:
		return v, v.loadData()

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(v.machines)-1 {
				v.cursor++
			}
		case "n":
			return v, startMachineWizard(v.state)
		case "t":
			return v, startMaintenanceWizard(v.state)
		case "r":
			v.loading = true
			return v, v.loadData()
		}
	}
	return v, nil
}

func (v *machineListView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Carregando maquinas...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Erro: "+v.err.Error())
	}
	if len(v.machines) == 0 {
		return "\n  " + formatter.Dim("Nenhuma maquina cadastrada.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, m := range v.machines {
		cursor := "  "
		numStyle := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			numStyle = formatter.StyleBold
		}

		hours := formatter.Dim(formatter.FormatInt(m.HourMeter) + " h")
		if m.HourMeterNextMaint != nil {
			hours = formatter.Dim(fmt.Sprintf("%s/%s h",
				formatter.FormatInt(m.HourMeter), formatter.FormatInt(*m.HourMeterNextMaint)))
			if m.MaintenanceDue() {
				hours = formatter.StyleRed.Render(fmt.Sprintf("%s/%s h",
					formatter.FormatInt(m.HourMeter), formatter.FormatInt(*m.HourMeterNextMaint)))
			}
		}

		nextMaint := formatter.Dim("—")
		if m.NextMaintenanceDate != nil {
			nextMaint = formatter.Dim("rev. " + m.NextMaintenanceDate.Format("02/01/2006"))
		}

		b.WriteString(fmt.Sprintf("%s%s  %s  %s  %s  %s  %s\n",
			cursor,
			numStyle.Render(m.Number),
			formatter.Truncate(m.Brand, 16),
			formatter.Dim(fmt.Sprintf("%.0ft", m.CapacityTon)),
			hours,
			formatter.EquipmentStatusLabel(m.Status),
			nextMaint,
		))
	}
	return b.String()
}
