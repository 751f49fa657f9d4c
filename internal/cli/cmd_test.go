package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/castroluiz/plastiq/internal/domain"
	"github.com/castroluiz/plastiq/internal/repository"
	"github.com/castroluiz/plastiq/internal/service"
	"github.com/castroluiz/plastiq/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)

	machineRepo := repository.NewSQLiteMachineRepo(database)
	moldRepo := repository.NewSQLiteMoldRepo(database)
	orderRepo := repository.NewSQLiteOrderRepo(database)
	appointmentRepo := repository.NewSQLiteAppointmentRepo(database)
	maintenanceRepo := repository.NewSQLiteMaintenanceRepo(database)
	reportRepo := repository.NewSQLiteReportRepo(database)

	return &App{
		Machines:        service.NewMachineService(machineRepo),
		Molds:           service.NewMoldService(moldRepo),
		Orders:          service.NewOrderService(orderRepo, uow),
		Production:      service.NewProductionService(appointmentRepo, uow),
		Maintenance:     service.NewMaintenanceService(maintenanceRepo, uow),
		Reports:         service.NewReportService(reportRepo),
		ShiftWindows:    domain.DefaultShiftWindows,
		Materials:       []string{"PE", "PS", "SAN", "PP"},
		MaterialCatalog: domain.ValidMaterials,
	}
}

// seedPlant registers one available machine and one available mold.
func seedPlant(t *testing.T, app *App) (*domain.Machine, *domain.Mold) {
	t.Helper()
	ctx := context.Background()

	machine, err := domain.NewMachine("INJ-01", "Romi", 150)
	require.NoError(t, err)
	require.NoError(t, app.Machines.Register(ctx, machine))

	mold, err := domain.NewMold("Tampa 38mm", "Moldtec", 4, nil)
	require.NoError(t, err)
	require.NoError(t, app.Molds.Register(ctx, mold))

	return machine, mold
}

// executeCmd runs a cobra command against the app.
func executeCmd(t *testing.T, app *App, args ...string) error {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	return root.Execute()
}

func TestMachineAddCmd(t *testing.T) {
	app := testApp(t)

	err := executeCmd(t, app, "maquina", "add",
		"--numero", "INJ-05", "--marca", "Haitian", "--capacidade", "220")
	require.NoError(t, err)

	m, err := app.Machines.GetByNumber(context.Background(), "INJ-05")
	require.NoError(t, err)
	assert.Equal(t, "Haitian", m.Brand)
	assert.Equal(t, domain.EquipmentAvailable, m.Status)
}

func TestMachineRemoveCmd_ByNumber(t *testing.T) {
	app := testApp(t)
	seedPlant(t, app)

	require.NoError(t, executeCmd(t, app, "maquina", "remove", "INJ-01"))

	_, err := app.Machines.GetByNumber(context.Background(), "INJ-01")
	assert.Error(t, err)
}

func TestMachineUpdateCmd_ChangedFlagsOnly(t *testing.T) {
	app := testApp(t)
	seedPlant(t, app)

	err := executeCmd(t, app, "maquina", "update", "INJ-01",
		"--revisao", "2027-03-01", "--horimetro", "1200")
	require.NoError(t, err)

	m, err := app.Machines.GetByNumber(context.Background(), "INJ-01")
	require.NoError(t, err)
	assert.Equal(t, "Romi", m.Brand)
	assert.Equal(t, 1200, m.HourMeter)
	require.NotNil(t, m.NextMaintenanceDate)
	assert.Equal(t, "2027-03-01", m.NextMaintenanceDate.Format("2006-01-02"))
}

func TestMoldAddCmd_WithMaintenanceInterval(t *testing.T) {
	app := testApp(t)

	err := executeCmd(t, app, "molde", "add",
		"--nome", "Engate rapido", "--fabricante", "Moldtec",
		"--cavidades", "2", "--manutencao-ciclos", "4000")
	require.NoError(t, err)

	m, err := app.Molds.GetByName(context.Background(), "Engate rapido")
	require.NoError(t, err)
	require.NotNil(t, m.MaintEveryCycles)
	assert.Equal(t, 4000, *m.MaintEveryCycles)
}

func TestOrderCreateCmd_ReservesEquipment(t *testing.T) {
	app := testApp(t)
	machine, mold := seedPlant(t, app)
	ctx := context.Background()

	err := executeCmd(t, app, "pedido", "create",
		"--cliente", "Embalagens Sul",
		"--maquina", "INJ-01", "--molde", "Tampa 38mm",
		"--qtd", "5000", "--ciclo", "30",
		"--material", "PP", "--peso-peca", "12.5")
	require.NoError(t, err)

	number := "PED-" + time.Now().Format("20060102") + "-001"
	o, err := app.Orders.GetByNumber(ctx, number)
	require.NoError(t, err)
	assert.Equal(t, "Embalagens Sul", o.Customer)
	require.NotNil(t, o.DueDate)

	m, err := app.Machines.GetByID(ctx, machine.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EquipmentInUse, m.Status)

	md, err := app.Molds.GetByID(ctx, mold.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EquipmentInUse, md.Status)
}

func TestOrderCreateCmd_RejectsUnknownMaterial(t *testing.T) {
	app := testApp(t)
	seedPlant(t, app)

	err := executeCmd(t, app, "pedido", "create",
		"--cliente", "Embalagens Sul",
		"--maquina", "INJ-01", "--molde", "Tampa 38mm",
		"--qtd", "5000", "--ciclo", "30",
		"--material", "ABS", "--peso-peca", "12.5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog")
}

func TestOrderCancelCmd_RequiresReason(t *testing.T) {
	app := testApp(t)
	seedPlant(t, app)

	require.NoError(t, executeCmd(t, app, "pedido", "create",
		"--cliente", "Embalagens Sul",
		"--maquina", "INJ-01", "--molde", "Tampa 38mm",
		"--qtd", "5000", "--ciclo", "30",
		"--material", "PP", "--peso-peca", "12.5"))

	number := "PED-" + time.Now().Format("20060102") + "-001"

	err := executeCmd(t, app, "pedido", "cancel", number)
	assert.Error(t, err)

	require.NoError(t, executeCmd(t, app, "pedido", "cancel", number,
		"--motivo", "cliente desistiu"))

	o, err := app.Orders.GetByNumber(context.Background(), number)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderCancelled, o.Status)
}

func TestProductionLogCmd_AdvancesOrder(t *testing.T) {
	app := testApp(t)
	seedPlant(t, app)
	ctx := context.Background()

	require.NoError(t, executeCmd(t, app, "pedido", "create",
		"--cliente", "Embalagens Sul",
		"--maquina", "INJ-01", "--molde", "Tampa 38mm",
		"--qtd", "5000", "--ciclo", "30",
		"--material", "PP", "--peso-peca", "12.5"))

	number := "PED-" + time.Now().Format("20060102") + "-001"

	err := executeCmd(t, app, "apontamento", "log",
		"--pedido", number, "--qtd", "2000", "--turno", "A",
		"--refugo", "1.5", "--operador", "Carlos Mendes")
	require.NoError(t, err)

	o, err := app.Orders.GetByNumber(ctx, number)
	require.NoError(t, err)
	assert.Equal(t, 2000, o.QtyProduced)
	assert.Equal(t, domain.OrderInProduction, o.Status)

	appointments, err := app.Production.ListByOrder(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, appointments, 1)
	assert.Equal(t, domain.ShiftA, appointments[0].Shift)
}

func TestProductionLogCmd_DowntimeNeedsReason(t *testing.T) {
	app := testApp(t)
	seedPlant(t, app)

	require.NoError(t, executeCmd(t, app, "pedido", "create",
		"--cliente", "Embalagens Sul",
		"--maquina", "INJ-01", "--molde", "Tampa 38mm",
		"--qtd", "5000", "--ciclo", "30",
		"--material", "PP", "--peso-peca", "12.5"))

	number := "PED-" + time.Now().Format("20060102") + "-001"

	err := executeCmd(t, app, "apontamento", "log",
		"--pedido", number, "--qtd", "1000", "--turno", "A",
		"--parada", "20", "--operador", "Carlos Mendes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reason")
}

func TestMaintenanceAddCmd_ReleasesMold(t *testing.T) {
	app := testApp(t)
	_, mold := seedPlant(t, app)
	ctx := context.Background()

	err := executeCmd(t, app, "manutencao", "add",
		"--molde", "Tampa 38mm", "--tipo", "preventive",
		"--descricao", "troca de pinos", "--tecnico", "Jose Silva",
		"--custo", "350.00", "--parada", "2.5")
	require.NoError(t, err)

	records, err := app.Maintenance.ListByEquipment(ctx, domain.KindMold, mold.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "troca de pinos", records[0].Description)

	md, err := app.Molds.GetByID(ctx, mold.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EquipmentAvailable, md.Status)
}

func TestMaintenanceAddCmd_RejectsBothEquipments(t *testing.T) {
	app := testApp(t)
	seedPlant(t, app)

	err := executeCmd(t, app, "manutencao", "add",
		"--maquina", "INJ-01", "--molde", "Tampa 38mm",
		"--descricao", "x", "--tecnico", "y")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exatamente um")
}

func TestReportExportCmd_WritesCSVFile(t *testing.T) {
	app := testApp(t)
	seedPlant(t, app)

	require.NoError(t, executeCmd(t, app, "pedido", "create",
		"--cliente", "Embalagens Sul",
		"--maquina", "INJ-01", "--molde", "Tampa 38mm",
		"--qtd", "5000", "--ciclo", "30",
		"--material", "PP", "--peso-peca", "12.5"))

	out := filepath.Join(t.TempDir(), "pedidos.csv")
	require.NoError(t, executeCmd(t, app, "relatorio", "export", "pedidos", "-o", out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	content := string(data)
	assert.True(t, strings.HasPrefix(content, "order_number,"))
	assert.Contains(t, content, "Embalagens Sul")
}

func TestResolveOrder_EmptyInput(t *testing.T) {
	app := testApp(t)
	_, err := resolveOrder(context.Background(), app, "")
	assert.Error(t, err)
}
