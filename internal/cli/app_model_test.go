package cli

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubView struct {
	id         ViewID
	title      string
	viewText   string
	updateSeen []tea.Msg
}

func (v *stubView) Init() tea.Cmd { return nil }

func (v *stubView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	v.updateSeen = append(v.updateSeen, msg)
	return v, nil
}

func (v *stubView) View() string             { return v.viewText }
func (v *stubView) ID() ViewID               { return v.id }
func (v *stubView) ShortHelp() []key.Binding { return nil }
func (v *stubView) Title() string            { return v.title }

func newStubView(id ViewID, title, text string) *stubView {
	return &stubView{id: id, title: title, viewText: text}
}

func TestNewAppModelStartsAtDashboard(t *testing.T) {
	m := newAppModel(testApp(t))

	require.Len(t, m.viewStack, 1)
	assert.Equal(t, ViewDashboard, m.activeView().ID())
}

func TestAppModel_NavigationMessages(t *testing.T) {
	m := newAppModel(testApp(t))
	v2 := newStubView(ViewOrderList, "Pedidos", "pedidos")
	v3 := newStubView(ViewMachineList, "Maquinas", "maquinas")

	model, cmd := m.Update(pushViewMsg{view: v2})
	m = model.(*appModel)
	require.Nil(t, cmd)
	require.Len(t, m.viewStack, 2)
	assert.Equal(t, View(v2), m.activeView())

	model, cmd = m.Update(replaceViewMsg{view: v3})
	m = model.(*appModel)
	require.Nil(t, cmd)
	require.Len(t, m.viewStack, 2)
	assert.Equal(t, View(v3), m.activeView())

	model, cmd = m.Update(popViewMsg{})
	m = model.(*appModel)
	require.Nil(t, cmd)
	require.Len(t, m.viewStack, 1)
	assert.Equal(t, ViewDashboard, m.activeView().ID())
}

func TestAppModel_PopNeverRemovesDashboard(t *testing.T) {
	m := newAppModel(testApp(t))

	model, _ := m.Update(popViewMsg{})
	m = model.(*appModel)
	require.Len(t, m.viewStack, 1)
}

func TestAppModel_WindowResizeForwardsToActiveView(t *testing.T) {
	m := newAppModel(testApp(t))
	v := newStubView(ViewOrderList, "Pedidos", "pedidos")
	m.viewStack = []View{v}

	model, cmd := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = model.(*appModel)
	require.Nil(t, cmd)

	assert.Equal(t, 100, m.state.Width)
	assert.Equal(t, 30, m.state.Height)
	require.Len(t, v.updateSeen, 1)
	_, ok := v.updateSeen[0].(tea.WindowSizeMsg)
	assert.True(t, ok)
}

func TestAppModel_KeyHandling(t *testing.T) {
	t.Run("q quits when view does not capture input", func(t *testing.T) {
		m := newAppModel(testApp(t))
		m.viewStack = []View{newStubView(ViewDashboard, "Painel", "painel")}

		model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
		m = model.(*appModel)
		require.NotNil(t, cmd)
		assert.True(t, m.quitting)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	})

	t.Run("form view receives q and does not quit", func(t *testing.T) {
		m := newAppModel(testApp(t))
		v := newStubView(ViewForm, "Formulario", "form")
		m.viewStack = []View{v}

		model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
		m = model.(*appModel)
		require.Nil(t, cmd)
		assert.False(t, m.quitting)
		require.Len(t, v.updateSeen, 1)
		assert.Equal(t, "q", v.updateSeen[0].(tea.KeyMsg).String())
	})

	t.Run("esc pops a pushed view", func(t *testing.T) {
		m := newAppModel(testApp(t))
		m.viewStack = append(m.viewStack, newStubView(ViewOrderList, "Pedidos", "pedidos"))

		model, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		m = model.(*appModel)
		require.Len(t, m.viewStack, 1)
	})

	t.Run("esc dismisses output before popping", func(t *testing.T) {
		m := newAppModel(testApp(t))
		m.viewStack = append(m.viewStack, newStubView(ViewOrderList, "Pedidos", "pedidos"))
		m.lastOutput = "resultado"

		model, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		m = model.(*appModel)
		assert.Empty(t, m.lastOutput)
		require.Len(t, m.viewStack, 2)
	})

	t.Run("ctrl+c quits even inside a form", func(t *testing.T) {
		m := newAppModel(testApp(t))
		m.viewStack = []View{newStubView(ViewForm, "Formulario", "form")}

		model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		m = model.(*appModel)
		require.NotNil(t, cmd)
		assert.True(t, m.quitting)
	})
}

func TestAppModel_CmdOutputShownAndCleared(t *testing.T) {
	m := newAppModel(testApp(t))
	m.viewStack = []View{newStubView(ViewDashboard, "Painel", "conteudo do painel")}
	m.state.Width = 80
	m.state.Height = 24

	model, _ := m.Update(cmdOutputMsg{output: "pedido criado"})
	m = model.(*appModel)
	assert.Contains(t, m.View(), "pedido criado")

	// Any key dismisses the output and returns to the view.
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	m = model.(*appModel)
	assert.Empty(t, m.lastOutput)
	assert.Contains(t, m.View(), "conteudo do painel")
}

func TestAppModel_WizardCompletePopsAndRefreshes(t *testing.T) {
	m := newAppModel(testApp(t))
	base := newStubView(ViewDashboard, "Painel", "painel")
	m.viewStack = []View{base, newStubView(ViewForm, "Formulario", "form")}

	next := func() tea.Msg { return cmdOutputMsg{output: "ok"} }
	model, cmd := m.Update(wizardCompleteMsg{nextCmd: next})
	m = model.(*appModel)

	require.Len(t, m.viewStack, 1)
	assert.Equal(t, View(base), m.activeView())
	require.NotNil(t, cmd)
}

func TestAppModel_RefreshBroadcastsToWholeStack(t *testing.T) {
	m := newAppModel(testApp(t))
	v1 := newStubView(ViewDashboard, "Painel", "painel")
	v2 := newStubView(ViewOrderList, "Pedidos", "pedidos")
	m.viewStack = []View{v1, v2}

	model, _ := m.Update(refreshViewMsg{})
	m = model.(*appModel)

	require.Len(t, v1.updateSeen, 1)
	require.Len(t, v2.updateSeen, 1)
	_, ok := v1.updateSeen[0].(refreshViewMsg)
	assert.True(t, ok)
}

func TestAppModel_HeaderShowsBreadcrumb(t *testing.T) {
	m := newAppModel(testApp(t))
	m.state.Width = 80
	m.state.Height = 24
	m.viewStack = []View{
		newStubView(ViewDashboard, "Painel", "painel"),
		newStubView(ViewOrderList, "Pedidos", "pedidos"),
	}

	header := m.renderHeader()
	assert.Contains(t, header, "plastiq")
	assert.Contains(t, header, "Painel")
	assert.Contains(t, header, "Pedidos")
}
