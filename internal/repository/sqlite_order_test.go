package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/castroluiz/plastiq/internal/domain"
	"github.com/castroluiz/plastiq/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedEquipment creates one machine and one mold so that order rows satisfy
// their foreign keys.
func seedEquipment(t *testing.T, ctx context.Context, database *sql.DB) (*domain.Machine, *domain.Mold) {
	t.Helper()
	machine := testutil.NewTestMachine("INJ-01")
	mold := testutil.NewTestMold("Tampa 38mm")
	require.NoError(t, NewSQLiteMachineRepo(database).Create(ctx, machine))
	require.NoError(t, NewSQLiteMoldRepo(database).Create(ctx, mold))
	return machine, mold
}

func TestOrderRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	machine, mold := seedEquipment(t, ctx, db)
	repo := NewSQLiteOrderRepo(db)

	due := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
	o := testutil.NewTestOrder(machine.ID, mold.ID, testutil.WithDueDate(due))
	require.NoError(t, repo.Create(ctx, o))

	fetched, err := repo.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.OrderNumber, fetched.OrderNumber)
	assert.Equal(t, "Plastval", fetched.Customer)
	assert.Equal(t, machine.ID, fetched.MachineID)
	assert.Equal(t, mold.ID, fetched.MoldID)
	assert.Equal(t, 10000, fetched.QtyTarget)
	assert.Equal(t, "PP", fetched.Material)
	assert.Equal(t, domain.OrderPending, fetched.Status)
	assert.Equal(t, domain.PriorityNormal, fetched.Priority)
	// 10000 * 12.5g * 1.02 = 127.5 kg, stored as a decimal string.
	assert.True(t, fetched.TotalWeightKg.Equal(decimal.RequireFromString("127.5")),
		"total weight = %s", fetched.TotalWeightKg)
	require.NotNil(t, fetched.DueDate)
	assert.Equal(t, "2025-06-20", fetched.DueDate.Format("2006-01-02"))
}

func TestOrderRepo_GetByNumber(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	machine, mold := seedEquipment(t, ctx, db)
	repo := NewSQLiteOrderRepo(db)

	o := testutil.NewTestOrder(machine.ID, mold.ID)
	require.NoError(t, repo.Create(ctx, o))

	fetched, err := repo.GetByNumber(ctx, o.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, o.ID, fetched.ID)

	_, err = repo.GetByNumber(ctx, "PED-20250101-999")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestOrderRepo_ListActive(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	machine, mold := seedEquipment(t, ctx, db)
	repo := NewSQLiteOrderRepo(db)

	pending := testutil.NewTestOrder(machine.ID, mold.ID)
	inProd := testutil.NewTestOrder(machine.ID, mold.ID, testutil.WithOrderStatus(domain.OrderInProduction))
	late := testutil.NewTestOrder(machine.ID, mold.ID, testutil.WithOrderStatus(domain.OrderLate))
	done := testutil.NewTestOrder(machine.ID, mold.ID, testutil.WithOrderStatus(domain.OrderCompleted))
	cancelled := testutil.NewTestOrder(machine.ID, mold.ID, testutil.WithOrderStatus(domain.OrderCancelled))
	for _, o := range []*domain.ProductionOrder{pending, inProd, late, done, cancelled} {
		require.NoError(t, repo.Create(ctx, o))
	}

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 3)
	for _, o := range active {
		assert.True(t, o.Status.Active(), "status %s should be active", o.Status)
	}
}

func TestOrderRepo_List_OrderedByPriority(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	machine, mold := seedEquipment(t, ctx, db)
	repo := NewSQLiteOrderRepo(db)

	low := testutil.NewTestOrder(machine.ID, mold.ID, testutil.WithPriority(domain.PriorityLow))
	high := testutil.NewTestOrder(machine.ID, mold.ID, testutil.WithPriority(domain.PriorityHigh))
	normal := testutil.NewTestOrder(machine.ID, mold.ID)
	for _, o := range []*domain.ProductionOrder{low, high, normal} {
		require.NoError(t, repo.Create(ctx, o))
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, high.ID, list[0].ID)
	assert.Equal(t, normal.ID, list[1].ID)
	assert.Equal(t, low.ID, list[2].ID)
}

func TestOrderRepo_ListByPeriod(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	machine, mold := seedEquipment(t, ctx, db)
	repo := NewSQLiteOrderRepo(db)

	june := testutil.NewTestOrder(machine.ID, mold.ID,
		testutil.WithStartDate(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)))
	july := testutil.NewTestOrder(machine.ID, mold.ID,
		testutil.WithStartDate(time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, repo.Create(ctx, june))
	require.NoError(t, repo.Create(ctx, july))

	list, err := repo.ListByPeriod(ctx,
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, june.ID, list[0].ID)
}

func TestOrderRepo_ListActiveRows_JoinsEquipment(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	machine, mold := seedEquipment(t, ctx, db)
	repo := NewSQLiteOrderRepo(db)

	o := testutil.NewTestOrder(machine.ID, mold.ID, testutil.WithOrderStatus(domain.OrderInProduction))
	require.NoError(t, repo.Create(ctx, o))

	rows, err := repo.ListActiveRows(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, o.ID, rows[0].Order.ID)
	assert.Equal(t, "INJ-01", rows[0].MachineNumber)
	assert.Equal(t, "Tampa 38mm", rows[0].MoldName)
}

func TestOrderRepo_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	machine, mold := seedEquipment(t, ctx, db)
	repo := NewSQLiteOrderRepo(db)

	o := testutil.NewTestOrder(machine.ID, mold.ID)
	require.NoError(t, repo.Create(ctx, o))

	require.NoError(t, o.ApplyAppointment(4000))
	require.NoError(t, repo.Update(ctx, o))

	fetched, err := repo.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, 4000, fetched.QtyProduced)
	assert.Equal(t, domain.OrderInProduction, fetched.Status)
}
