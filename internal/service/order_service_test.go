package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/castroluiz/plastiq/internal/domain"
	"github.com/castroluiz/plastiq/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderService_Create_ReservesEquipment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	machine, mold := env.seedEquipment(t, ctx)

	o := testutil.NewTestOrder(machine.ID, mold.ID)
	o.DueDate = nil
	require.NoError(t, env.orderSvc.Create(ctx, o))

	fetched, err := env.orders.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderPending, fetched.Status)
	// 10000 pieces / 4 cavities at 30s per shot and 85% efficiency is about
	// one day of production.
	require.NotNil(t, fetched.DueDate)
	assert.Equal(t, "2025-06-16", fetched.DueDate.Format("2006-01-02"))

	assert.Equal(t, domain.EquipmentInUse, env.machineStatus(t, ctx, machine.ID))
	assert.Equal(t, domain.EquipmentInUse, env.moldStatus(t, ctx, mold.ID))
}

func TestOrderService_Create_KeepsExplicitDueDate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	machine, mold := env.seedEquipment(t, ctx)

	due := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	o := testutil.NewTestOrder(machine.ID, mold.ID, testutil.WithDueDate(due))
	require.NoError(t, env.orderSvc.Create(ctx, o))

	fetched, err := env.orders.GetByID(ctx, o.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.DueDate)
	assert.Equal(t, "2025-07-01", fetched.DueDate.Format("2006-01-02"))
}

func TestOrderService_Create_RejectsDuplicateNumber(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	machine, mold := env.seedEquipment(t, ctx)

	o := testutil.NewTestOrder(machine.ID, mold.ID)
	require.NoError(t, env.orderSvc.Create(ctx, o))

	// Free the equipment so only the number collides.
	machine2 := testutil.NewTestMachine("INJ-02")
	mold2 := testutil.NewTestMold("Balde 10L")
	require.NoError(t, env.machines.Create(ctx, machine2))
	require.NoError(t, env.molds.Create(ctx, mold2))

	dup := testutil.NewTestOrder(machine2.ID, mold2.ID)
	dup.OrderNumber = o.OrderNumber
	err := env.orderSvc.Create(ctx, dup)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestOrderService_Create_RejectsBusyMachine(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	machine, mold := env.seedEquipment(t, ctx)
	require.NoError(t, env.orderSvc.Create(ctx, testutil.NewTestOrder(machine.ID, mold.ID)))

	mold2 := testutil.NewTestMold("Balde 10L")
	require.NoError(t, env.molds.Create(ctx, mold2))

	err := env.orderSvc.Create(ctx, testutil.NewTestOrder(machine.ID, mold2.ID))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "in_use")
	// Second mold stays untouched.
	assert.Equal(t, domain.EquipmentAvailable, env.moldStatus(t, ctx, mold2.ID))
}

func TestOrderService_Create_RejectsMoldInMaintenance(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	machine, mold := env.seedEquipment(t, ctx, testutil.WithMoldStatus(domain.EquipmentMaintenance))

	err := env.orderSvc.Create(ctx, testutil.NewTestOrder(machine.ID, mold.ID))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maintenance")
	// Nothing was reserved and no order row exists.
	assert.Equal(t, domain.EquipmentAvailable, env.machineStatus(t, ctx, machine.ID))
	list, err := env.orders.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestOrderService_Create_RejectsBackdatedStart(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	machine, mold := env.seedEquipment(t, ctx)

	o := testutil.NewTestOrder(machine.ID, mold.ID,
		testutil.WithStartDate(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)))
	o.OrderNumber = "PED-20250601-001"
	err := env.orderSvc.Create(ctx, o)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "past")
}

func TestOrderService_Create_RollsBackOnReservationFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	machine, mold := env.seedEquipment(t, ctx)

	// Fail on the mold status update, after the order insert and the machine
	// update have succeeded.
	failingUoW := &testutil.FailOnNthExecUoW{
		DB:     env.db,
		FailOn: 3,
		Err:    errors.New("injected failure"),
	}
	svc := NewOrderService(env.orders, failingUoW)
	svc.(*orderService).now = testClock

	err := svc.Create(ctx, testutil.NewTestOrder(machine.ID, mold.ID))
	require.Error(t, err)

	list, err := env.orders.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, domain.EquipmentAvailable, env.machineStatus(t, ctx, machine.ID))
	assert.Equal(t, domain.EquipmentAvailable, env.moldStatus(t, ctx, mold.ID))
}

func TestOrderService_Cancel_ReleasesEquipment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	machine, mold := env.seedEquipment(t, ctx)

	o := testutil.NewTestOrder(machine.ID, mold.ID)
	require.NoError(t, env.orderSvc.Create(ctx, o))
	require.NoError(t, env.orderSvc.Cancel(ctx, o.ID, "cliente desistiu"))

	fetched, err := env.orders.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderCancelled, fetched.Status)
	assert.Contains(t, fetched.Notes, "cliente desistiu")
	assert.Equal(t, domain.EquipmentAvailable, env.machineStatus(t, ctx, machine.ID))
	assert.Equal(t, domain.EquipmentAvailable, env.moldStatus(t, ctx, mold.ID))
}

func TestOrderService_Cancel_RequiresReason(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	machine, mold := env.seedEquipment(t, ctx)

	o := testutil.NewTestOrder(machine.ID, mold.ID)
	require.NoError(t, env.orderSvc.Create(ctx, o))

	err := env.orderSvc.Cancel(ctx, o.ID, "  ")
	require.Error(t, err)
	// Equipment stays reserved.
	assert.Equal(t, domain.EquipmentInUse, env.machineStatus(t, ctx, machine.ID))
}

func TestOrderService_Cancel_CompletedOrderRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	machine, mold := env.seedEquipment(t, ctx)

	o := testutil.NewTestOrder(machine.ID, mold.ID)
	require.NoError(t, env.orderSvc.Create(ctx, o))
	_, err := env.production.LogAppointment(ctx, testutil.NewTestAppointment(o.ID, 10000))
	require.NoError(t, err)

	err = env.orderSvc.Cancel(ctx, o.ID, "tarde demais")
	assert.Error(t, err)
}

func TestOrderService_MarkOverdue(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	machine, mold := env.seedEquipment(t, ctx)

	due := time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC)
	o := testutil.NewTestOrder(machine.ID, mold.ID, testutil.WithDueDate(due))
	require.NoError(t, env.orderSvc.Create(ctx, o))

	// Not yet overdue on the due date itself.
	n, err := env.orderSvc.MarkOverdue(ctx, due)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = env.orderSvc.MarkOverdue(ctx, due.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	fetched, err := env.orders.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderLate, fetched.Status)

	// Idempotent on a second sweep.
	n, err = env.orderSvc.MarkOverdue(ctx, due.AddDate(0, 0, 2))
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestOrderService_ListActiveRows(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	machine, mold := env.seedEquipment(t, ctx)

	o := testutil.NewTestOrder(machine.ID, mold.ID)
	require.NoError(t, env.orderSvc.Create(ctx, o))

	rows, err := env.orderSvc.ListActiveRows(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "INJ-01", rows[0].MachineNumber)
	assert.Equal(t, "Tampa 38mm", rows[0].MoldName)
}
