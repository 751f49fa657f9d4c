package service

import (
	"context"
	"errors"
	"testing"

	"github.com/castroluiz/plastiq/internal/domain"
	"github.com/castroluiz/plastiq/internal/repository"
	"github.com/castroluiz/plastiq/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductionService_LogAppointment_Accumulates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	machine, mold := env.seedEquipment(t, ctx)

	o := testutil.NewTestOrder(machine.ID, mold.ID)
	require.NoError(t, env.orderSvc.Create(ctx, o))

	updated, err := env.production.LogAppointment(ctx, testutil.NewTestAppointment(o.ID, 4000))
	require.NoError(t, err)
	assert.Equal(t, 4000, updated.QtyProduced)
	assert.Equal(t, domain.OrderInProduction, updated.Status)

	updated, err = env.production.LogAppointment(ctx, testutil.NewTestAppointment(o.ID, 2000,
		testutil.WithShift(domain.ShiftB)))
	require.NoError(t, err)
	assert.Equal(t, 6000, updated.QtyProduced)

	// Mold cycle counters advance with each appointment: 4 cavities, so
	// 1000 + 500 shots.
	m, err := env.molds.GetByID(ctx, mold.ID)
	require.NoError(t, err)
	assert.Equal(t, 1500, m.TotalCycles)

	list, err := env.production.ListByOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestProductionService_LogAppointment_CompletionReleasesEquipment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	machine, mold := env.seedEquipment(t, ctx)

	o := testutil.NewTestOrder(machine.ID, mold.ID)
	require.NoError(t, env.orderSvc.Create(ctx, o))

	updated, err := env.production.LogAppointment(ctx, testutil.NewTestAppointment(o.ID, 10000))
	require.NoError(t, err)
	assert.Equal(t, domain.OrderCompleted, updated.Status)
	assert.Equal(t, domain.EquipmentAvailable, env.machineStatus(t, ctx, machine.ID))
	assert.Equal(t, domain.EquipmentAvailable, env.moldStatus(t, ctx, mold.ID))
}

func TestProductionService_LogAppointment_WornMoldGoesToMaintenance(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	// 4 cavities and a 2000-cycle interval: 10000 pieces is 2500 shots.
	machine, mold := env.seedEquipment(t, ctx, testutil.WithMaintEvery(2000))

	o := testutil.NewTestOrder(machine.ID, mold.ID)
	require.NoError(t, env.orderSvc.Create(ctx, o))

	_, err := env.production.LogAppointment(ctx, testutil.NewTestAppointment(o.ID, 10000))
	require.NoError(t, err)
	assert.Equal(t, domain.EquipmentAvailable, env.machineStatus(t, ctx, machine.ID))
	assert.Equal(t, domain.EquipmentMaintenance, env.moldStatus(t, ctx, mold.ID))
}

func TestProductionService_LogAppointment_RejectsOverrun(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	machine, mold := env.seedEquipment(t, ctx)

	o := testutil.NewTestOrder(machine.ID, mold.ID)
	require.NoError(t, env.orderSvc.Create(ctx, o))
	_, err := env.production.LogAppointment(ctx, testutil.NewTestAppointment(o.ID, 9000))
	require.NoError(t, err)

	_, err = env.production.LogAppointment(ctx, testutil.NewTestAppointment(o.ID, 2000))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at most 1000 pieces remain")

	// Rejected appointment leaves no row behind.
	list, err := env.production.ListByOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestProductionService_LogAppointment_RejectsInvalidOperator(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	machine, mold := env.seedEquipment(t, ctx)

	o := testutil.NewTestOrder(machine.ID, mold.ID)
	require.NoError(t, env.orderSvc.Create(ctx, o))

	a := testutil.NewTestAppointment(o.ID, 100)
	a.Operator = "Op3rador"
	_, err := env.production.LogAppointment(ctx, a)
	assert.Error(t, err)
}

func TestProductionService_LogAppointment_RejectsScrapWithoutReasonedDowntime(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	machine, mold := env.seedEquipment(t, ctx)

	o := testutil.NewTestOrder(machine.ID, mold.ID)
	require.NoError(t, env.orderSvc.Create(ctx, o))

	a := testutil.NewTestAppointment(o.ID, 100, testutil.WithDowntime(20, ""))
	_, err := env.production.LogAppointment(ctx, a)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reason")
}

func TestProductionService_LogAppointment_LateOrderStillAccepts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	machine, mold := env.seedEquipment(t, ctx)

	o := testutil.NewTestOrder(machine.ID, mold.ID)
	require.NoError(t, env.orderSvc.Create(ctx, o))
	_, err := env.orderSvc.MarkOverdue(ctx, o.DueDate.AddDate(0, 0, 5))
	require.NoError(t, err)

	updated, err := env.production.LogAppointment(ctx, testutil.NewTestAppointment(o.ID, 500,
		testutil.WithScrap(decimal.RequireFromString("0.8"))))
	require.NoError(t, err)
	assert.Equal(t, 500, updated.QtyProduced)
	assert.Equal(t, domain.OrderInProduction, updated.Status)
}

func TestProductionService_LogAppointment_RollsBackOnMoldUpdateFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	machine, mold := env.seedEquipment(t, ctx)

	o := testutil.NewTestOrder(machine.ID, mold.ID)
	require.NoError(t, env.orderSvc.Create(ctx, o))

	// Fail on the mold cycle update, after the appointment insert.
	failingUoW := &testutil.FailOnNthExecUoW{
		DB:     env.db,
		FailOn: 2,
		Err:    errors.New("injected failure"),
	}
	svc := NewProductionService(repository.NewSQLiteAppointmentRepo(env.db), failingUoW)

	_, err := svc.LogAppointment(ctx, testutil.NewTestAppointment(o.ID, 3000))
	require.Error(t, err)

	fetched, err := env.orders.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Zero(t, fetched.QtyProduced)
	assert.Equal(t, domain.OrderPending, fetched.Status)

	list, err := env.production.ListByOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
