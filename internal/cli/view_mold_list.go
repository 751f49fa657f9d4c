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

type moldListLoadedMsg struct {
	molds []*domain.Mold
	err   error
}

// moldListView lists the mold registry with cycle counters.
type moldListView struct {
	state   *SharedState
	molds   []*domain.Mold
	cursor  int
	loading bool
	err     error
}

func newMoldListView(state *SharedState) *moldListView {
	return &moldListView{state: state, loading: true}
}

func (v *moldListView) ID() ViewID    { return ViewMoldList }
func (v *moldListView) Title() string { return "Moldes" }

func (v *moldListView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "novo molde")),
		key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "manutencao")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "atualizar")),
	}
}

func (v *moldListView) Init() tea.Cmd {
	return v.loadData()
}

func (v *moldListView) loadData() tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		molds, err := app.Molds.List(context.Background())
		return moldListLoadedMsg{molds: molds, err: err}
	}
}

func (v *moldListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case moldListLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.molds = msg.molds
		if v.cursor >= len(v.molds) {
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
			if v.cursor < len(v.molds)-1 {
				v.cursor++
			}
		case "n":
			return v, startMoldWizard(v.state)
		case "t":
			return v, startMaintenanceWizard(v.state)
		case "r":
			v.loading = true
			return v, v.loadData()
		}
	}
	return v, nil
}

func (v *moldListView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Carregando moldes...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Erro: "+v.err.Error())
	}
	if len(v.molds) == 0 {
		return "\n  " + formatter.Dim("Nenhum molde cadastrado.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, m := range v.molds {
		cursor := "  "
		nameStyle := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			nameStyle = formatter.StyleBold
		}

		cycles := formatter.Dim(formatter.FormatInt(m.CyclesSinceMaint) + " ciclos")
		if m.MaintEveryCycles != nil {
			cycles = formatter.Dim(fmt.Sprintf("%s/%s ciclos",
				formatter.FormatInt(m.CyclesSinceMaint), formatter.FormatInt(*m.MaintEveryCycles)))
			if m.MaintenanceDue() {
				cycles = formatter.StyleRed.Render(fmt.Sprintf("%s/%s ciclos",
					formatter.FormatInt(m.CyclesSinceMaint), formatter.FormatInt(*m.MaintEveryCycles)))
			}
		}

		b.WriteString(fmt.Sprintf("%s%s  %s  %s  %s  %s\n",
			cursor,
			nameStyle.Render(formatter.Truncate(m.Name, 24)),
			formatter.Truncate(m.Manufacturer, 16),
			formatter.Dim(fmt.Sprintf("%d cav", m.Cavities)),
			cycles,
			formatter.EquipmentStatusLabel(m.Status),
		))
	}
	return b.String()
}
