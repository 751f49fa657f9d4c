package repository

import (
	"context"
	"testing"
	"time"

	"github.com/castroluiz/plastiq/internal/domain"
	"github.com/castroluiz/plastiq/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMachineRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteMachineRepo(db)
	ctx := context.Background()

	next := 5000
	m := testutil.NewTestMachine("INJ-01", testutil.WithHourMeter(4200, &next))
	m.NextMaintenanceDate = ptrTime(time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Create(ctx, m))

	fetched, err := repo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "INJ-01", fetched.Number)
	assert.Equal(t, "Romi", fetched.Brand)
	assert.Equal(t, domain.EquipmentAvailable, fetched.Status)
	assert.Equal(t, 4200, fetched.HourMeter)
	require.NotNil(t, fetched.HourMeterNextMaint)
	assert.Equal(t, 5000, *fetched.HourMeterNextMaint)
	require.NotNil(t, fetched.NextMaintenanceDate)
	assert.Equal(t, "2025-09-01", fetched.NextMaintenanceDate.Format("2006-01-02"))
}

func TestMachineRepo_GetByNumber(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteMachineRepo(db)
	ctx := context.Background()

	m := testutil.NewTestMachine("INJ-02")
	require.NoError(t, repo.Create(ctx, m))

	fetched, err := repo.GetByNumber(ctx, "INJ-02")
	require.NoError(t, err)
	assert.Equal(t, m.ID, fetched.ID)
}

func TestMachineRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteMachineRepo(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "nonexistent")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMachineRepo_DuplicateNumber(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteMachineRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestMachine("INJ-03")))
	err := repo.Create(ctx, testutil.NewTestMachine("INJ-03"))
	assert.Error(t, err)
}

func TestMachineRepo_ListByStatus(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteMachineRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestMachine("INJ-01")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestMachine("INJ-02", testutil.WithMachineStatus(domain.EquipmentInUse))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestMachine("INJ-03")))

	available, err := repo.ListByStatus(ctx, domain.EquipmentAvailable)
	require.NoError(t, err)
	require.Len(t, available, 2)
	// Sorted by machine number.
	assert.Equal(t, "INJ-01", available[0].Number)
	assert.Equal(t, "INJ-03", available[1].Number)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestMachineRepo_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteMachineRepo(db)
	ctx := context.Background()

	m := testutil.NewTestMachine("INJ-01")
	require.NoError(t, repo.Create(ctx, m))

	m.Status = domain.EquipmentMaintenance
	m.HourMeter = 100
	m.LastMaintenanceDate = ptrTime(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Update(ctx, m))

	fetched, err := repo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EquipmentMaintenance, fetched.Status)
	assert.Equal(t, 100, fetched.HourMeter)
	require.NotNil(t, fetched.LastMaintenanceDate)
	assert.Equal(t, "2025-07-01", fetched.LastMaintenanceDate.Format("2006-01-02"))
}

func TestMachineRepo_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteMachineRepo(db)
	ctx := context.Background()

	m := testutil.NewTestMachine("INJ-01")
	require.NoError(t, repo.Create(ctx, m))
	require.NoError(t, repo.Delete(ctx, m.ID))

	_, err := repo.GetByID(ctx, m.ID)
	assert.Error(t, err)
}

func ptrTime(t time.Time) *time.Time {
	return &t
}
