package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/castroluiz/plastiq/internal/domain"
	"github.com/castroluiz/plastiq/internal/repository"
	"github.com/castroluiz/plastiq/internal/testutil"
	"github.com/stretchr/testify/require"
)

// testClock matches the fixture dates so that the no-backdated-start rule
// does not trip on them.
var testClock = func() time.Time {
	return time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)
}

type testEnv struct {
	db          *sql.DB
	machines    repository.MachineRepo
	molds       repository.MoldRepo
	orders      repository.OrderRepo
	orderSvc    OrderService
	production  ProductionService
	maintenance MaintenanceService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)

	orders := repository.NewSQLiteOrderRepo(database)
	orderSvc := NewOrderService(orders, uow)
	orderSvc.(*orderService).now = testClock

	return &testEnv{
		db:          database,
		machines:    repository.NewSQLiteMachineRepo(database),
		molds:       repository.NewSQLiteMoldRepo(database),
		orders:      orders,
		orderSvc:    orderSvc,
		production:  NewProductionService(repository.NewSQLiteAppointmentRepo(database), uow),
		maintenance: NewMaintenanceService(repository.NewSQLiteMaintenanceRepo(database), uow),
	}
}

func (e *testEnv) seedEquipment(t *testing.T, ctx context.Context, moldOpts ...testutil.MoldOption) (*domain.Machine, *domain.Mold) {
	t.Helper()
	machine := testutil.NewTestMachine("INJ-01")
	mold := testutil.NewTestMold("Tampa 38mm", moldOpts...)
	require.NoError(t, e.machines.Create(ctx, machine))
	require.NoError(t, e.molds.Create(ctx, mold))
	return machine, mold
}

func (e *testEnv) machineStatus(t *testing.T, ctx context.Context, id string) domain.EquipmentStatus {
	t.Helper()
	m, err := e.machines.GetByID(ctx, id)
	require.NoError(t, err)
	return m.Status
}

func (e *testEnv) moldStatus(t *testing.T, ctx context.Context, id string) domain.EquipmentStatus {
	t.Helper()
	m, err := e.molds.GetByID(ctx, id)
	require.NoError(t, err)
	return m.Status
}
