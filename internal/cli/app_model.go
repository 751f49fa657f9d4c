package cli

import (
	"strings"

	"github.com/castroluiz/plastiq/internal/cli/formatter"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// appModel is the root bubbletea model. It owns the navigation stack and
// routes messages to the view on top; the dashboard is always the bottom
// of the stack.
type appModel struct {
	state      *SharedState
	viewStack  []View
	lastOutput string
	quitting   bool
}

func newAppModel(app *App) *appModel {
	state := &SharedState{App: app}
	return &appModel{
		state:     state,
		viewStack: []View{newDashboardView(state)},
	}
}

func (m *appModel) activeView() View {
	return m.viewStack[len(m.viewStack)-1]
}

// inputCapturer is implemented by views that temporarily own the keyboard
// outside of forms, such as a list in filter mode.
type inputCapturer interface {
	CapturesInput() bool
}

// viewCapturesInput reports whether the active view owns the keyboard,
// in which case global shortcuts like q are suppressed.
func (m *appModel) viewCapturesInput() bool {
	v := m.activeView()
	if v.ID() == ViewForm {
		return true
	}
	if c, ok := v.(inputCapturer); ok {
		return c.CapturesInput()
	}
	return false
}

func (m *appModel) Init() tea.Cmd {
	return m.activeView().Init()
}

func (m *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		return m, m.forwardToActive(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case pushViewMsg:
		m.lastOutput = ""
		m.viewStack = append(m.viewStack, msg.view)
		return m, msg.view.Init()

	case popViewMsg:
		m.popView()
		return m, nil

	case replaceViewMsg:
		m.lastOutput = ""
		m.viewStack[len(m.viewStack)-1] = msg.view
		return m, msg.view.Init()

	case wizardCompleteMsg:
		m.popView()
		return m, tea.Batch(msg.nextCmd, func() tea.Msg { return refreshViewMsg{} })

	case cmdOutputMsg:
		m.lastOutput = msg.output
		return m, nil

	case refreshViewMsg:
		// Broadcast so stale views below the top also reload.
		var cmds []tea.Cmd
		for i, v := range m.viewStack {
			updated, cmd := v.Update(msg)
			if uv, ok := updated.(View); ok {
				m.viewStack[i] = uv
			}
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)
	}

	return m, m.forwardToActive(msg)
}

func (m *appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	if m.viewCapturesInput() {
		return m, m.forwardToActive(msg)
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		if m.lastOutput != "" {
			m.lastOutput = ""
			return m, nil
		}
		if len(m.viewStack) > 1 {
			m.popView()
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}

	if m.lastOutput != "" {
		// Any key dismisses a transient output panel.
		m.lastOutput = ""
	}
	return m, m.forwardToActive(msg)
}

func (m *appModel) forwardToActive(msg tea.Msg) tea.Cmd {
	idx := len(m.viewStack) - 1
	updated, cmd := m.viewStack[idx].Update(msg)
	if uv, ok := updated.(View); ok {
		m.viewStack[idx] = uv
	}
	return cmd
}

func (m *appModel) popView() {
	m.lastOutput = ""
	if len(m.viewStack) > 1 {
		m.viewStack = m.viewStack[:len(m.viewStack)-1]
	}
}

func (m *appModel) View() string {
	if m.quitting {
		return ""
	}

	header := m.renderHeader()
	status := m.renderStatusBar()

	content := m.lastOutput
	if content == "" {
		content = m.activeView().View()
	}

	body := header + "\n" + content

	// Pin the status bar to the bottom of the terminal.
	if m.state.Height > 0 {
		used := lipgloss.Height(body) + lipgloss.Height(status)
		for pad := m.state.Height - used; pad > 0; pad-- {
			body += "\n"
		}
	} else {
		body += "\n"
	}
	return body + status
}

func (m *appModel) renderHeader() string {
	crumbs := make([]string, 0, len(m.viewStack))
	for _, v := range m.viewStack {
		crumbs = append(crumbs, v.Title())
	}

	left := " " + formatter.StylePurple.Bold(true).Render("plastiq") +
		formatter.Dim(" › ") + strings.Join(crumbs, formatter.Dim(" › "))
	right := formatter.Dim("turno " + string(m.state.CurrentShift()) + " ")

	gap := m.state.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m *appModel) renderStatusBar() string {
	hints := make([]string, 0, 8)
	for _, b := range m.activeView().ShortHelp() {
		h := b.Help()
		hints = append(hints, formatter.Bold(h.Key)+formatter.Dim(": "+h.Desc))
	}
	if len(m.viewStack) > 1 || m.lastOutput != "" {
		hints = append(hints, formatter.Bold("esc")+formatter.Dim(": voltar"))
	}
	hints = append(hints, formatter.Bold("q")+formatter.Dim(": sair"))
	return " " + strings.Join(hints, formatter.Dim("  "))
}
