package service

import (
	"context"
	"testing"

	"github.com/castroluiz/plastiq/internal/domain"
	"github.com/castroluiz/plastiq/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMachineService_Register_AssignsIDAndRejectsDuplicates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := NewMachineService(env.machines)

	m, err := domain.NewMachine("INJ-01", "Romi", 150)
	require.NoError(t, err)
	require.NoError(t, svc.Register(ctx, m))
	assert.NotEmpty(t, m.ID)
	assert.False(t, m.CreatedAt.IsZero())

	dup, err := domain.NewMachine("INJ-01", "Haitian", 90)
	require.NoError(t, err)
	err = svc.Register(ctx, dup)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestMachineService_Delete_RejectsMachineInUse(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	machine, mold := env.seedEquipment(t, ctx)
	require.NoError(t, env.orderSvc.Create(ctx, testutil.NewTestOrder(machine.ID, mold.ID)))

	svc := NewMachineService(env.machines)
	err := svc.Delete(ctx, machine.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "active order")
}

func TestMoldService_Register_AssignsIDAndRejectsDuplicates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := NewMoldService(env.molds)

	m, err := domain.NewMold("Tampa 38mm", "Sandretto", 8, nil)
	require.NoError(t, err)
	require.NoError(t, svc.Register(ctx, m))
	assert.NotEmpty(t, m.ID)

	dup, err := domain.NewMold("Tampa 38mm", "Outro", 4, nil)
	require.NoError(t, err)
	err = svc.Register(ctx, dup)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestMoldService_Delete_AllowsAvailableMold(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, mold := env.seedEquipment(t, ctx)

	svc := NewMoldService(env.molds)
	require.NoError(t, svc.Delete(ctx, mold.ID))

	list, err := env.molds.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
