package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/shopplan/pkg/application/services/backlog"
	"github.com/vsinha/shopplan/pkg/domain/entities"
	"github.com/vsinha/shopplan/pkg/domain/services/calendar"
	"github.com/vsinha/shopplan/pkg/domain/services/datetime"
	"github.com/vsinha/shopplan/pkg/infrastructure/repositories/memory"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := OpenDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func ledger() []*entities.Sale {
	return []*entities.Sale{
		{ProductCode: "PLOCA-18", SoldOn: d(2024, 1, 1), Quantity: 10, CostOfGoods: 100},
		{ProductCode: "PLOCA-18", SoldOn: d(2024, 2, 15), Quantity: 5, CostOfGoods: 50},
		{ProductCode: "PLOCA-18", SoldOn: d(2024, 3, 31), Quantity: 2.5, CostOfGoods: 25},
		{ProductCode: "PLOCA-18", SoldOn: d(2024, 4, 1), Quantity: 99, CostOfGoods: 990},
		{ProductCode: "RUB-2", SoldOn: d(2024, 2, 1), Quantity: 7, CostOfGoods: 70},
	}
}

func TestOpenDB_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "shopplan.db")

	database, err := OpenDB(path)
	require.NoError(t, err)
	defer database.Close()

	// migrations are idempotent
	require.NoError(t, Migrate(database))
	assert.FileExists(t, path)
}

func TestSalesRepo_SumsMatchInMemory(t *testing.T) {
	ctx := context.Background()
	repo := NewSalesRepo(newTestDB(t))
	mem := memory.NewSalesRepository()

	require.NoError(t, repo.SaveSales(ctx, ledger()))
	require.NoError(t, mem.SaveSales(ctx, ledger()))

	ranges := [][2]time.Time{
		{d(2024, 1, 1), d(2024, 3, 31)},
		{d(2024, 2, 15), d(2024, 2, 15)},
		{d(2023, 1, 1), d(2023, 12, 31)},
		{d(2024, 3, 31), d(2024, 1, 1)},
	}
	for _, r := range ranges {
		for _, code := range []string{"PLOCA-18", "RUB-2", "NONE"} {
			want, _ := mem.SumQuantityInRange(ctx, code, r[0], r[1])
			got, err := repo.SumQuantityInRange(ctx, code, r[0], r[1])
			require.NoError(t, err)
			assert.InDelta(t, want, got, 1e-9, "%s %v", code, r)

			want, _ = mem.SumCostOfGoodsInRange(ctx, code, r[0], r[1])
			got, err = repo.SumCostOfGoodsInRange(ctx, code, r[0], r[1])
			require.NoError(t, err)
			assert.InDelta(t, want, got, 1e-9, "%s %v", code, r)
		}
	}

	q1, _ := repo.SumQuantityInRange(ctx, "PLOCA-18", d(2024, 1, 1), d(2024, 3, 31))
	assert.InDelta(t, 17.5, q1, 1e-9)
}

func TestSalesRepo_ListAssignsIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewSalesRepo(newTestDB(t))

	sales := ledger()
	require.NoError(t, repo.SaveSales(ctx, sales))
	for _, s := range sales {
		assert.NotEmpty(t, s.ID)
	}

	listed, err := repo.ListSales(ctx, "PLOCA-18")
	require.NoError(t, err)
	require.Len(t, listed, 4)
	assert.Equal(t, d(2024, 1, 1), listed[0].SoldOn)
	assert.Equal(t, d(2024, 4, 1), listed[3].SoldOn)
}

func TestSalesRepo_DuplicateIDRollsBack(t *testing.T) {
	ctx := context.Background()
	repo := NewSalesRepo(newTestDB(t))

	err := repo.SaveSales(ctx, []*entities.Sale{
		{ID: "same", ProductCode: "X", SoldOn: d(2024, 1, 1), Quantity: 1},
		{ID: "same", ProductCode: "X", SoldOn: d(2024, 1, 2), Quantity: 1},
	})
	assert.Error(t, err)

	listed, err := repo.ListSales(ctx, "X")
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestOrderRepo_TableFeedsBacklog(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepo(newTestDB(t))

	done := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	orders := []*entities.ProductionOrder{
		{OrderNumber: "N1", Customer: "Alfa", Quantity: 10, Area: 12, NetValue: 1000, PlannedDate: d(2024, 6, 10), Status: entities.Completed, CompletedAt: &done},
		{OrderNumber: "N2", Customer: "Beta", Quantity: 5, Area: 24, NetValue: 500, PlannedDate: d(2024, 6, 20), Status: entities.InProgress},
		{OrderNumber: "N3", Customer: "Gama", Quantity: 1, Area: 0, Status: entities.Pending},
	}
	require.NoError(t, repo.SaveOrders(ctx, orders))

	// upsert by order number
	orders[1].Area = 36
	require.NoError(t, repo.SaveOrders(ctx, orders[1:2]))

	table, err := repo.OrderTable(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, table.Len())
	assert.Equal(t, "zavrseno", table.Value(0, 7))
	assert.Nil(t, table.Value(2, 6))

	agg := backlog.New(calendar.New(), datetime.NewParser(time.UTC),
		backlog.WithClock(func() time.Time { return time.Date(2024, 6, 13, 8, 0, 0, 0, time.UTC) }))
	snap, err := agg.Summarize(table, 10)
	require.NoError(t, err)

	assert.Empty(t, snap.LegacyColumns)
	assert.Equal(t, "12", snap.Completed.Area.String())
	assert.Equal(t, "36", snap.Pending.Area.String())
	assert.Equal(t, "16", snap.Total.Quantity.String())
	assert.Equal(t, entities.RateFromHistory, snap.RateSource)
	assert.Equal(t, 3, snap.RequiredWorkingDays)
}
