package report

import (
	"testing"
	"time"

	"github.com/dreamshub/backend/internal/domain/catalog"
	"github.com/dreamshub/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProduct(t *testing.T, name string, buying, selling int64) catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(name, name+"-SKU", decimal.NewFromInt(buying), decimal.NewFromInt(selling))
	require.NoError(t, err)
	return *p
}

func inboundAt(t *testing.T, productID, locationID uuid.UUID, qty int64, at time.Time) ledger.Movement {
	t.Helper()
	m, err := ledger.NewInbound(productID, locationID, ledger.MovementTypeIn, qty, "Initial Inventory Load", uuid.Nil)
	require.NoError(t, err)
	m.CreatedAt = at
	return *m
}

func outboundAt(t *testing.T, productID, locationID uuid.UUID, qty int64, reason string, at time.Time) ledger.Movement {
	t.Helper()
	m, err := ledger.NewOutbound(productID, locationID, ledger.MovementTypeOut, qty, reason, uuid.Nil)
	require.NoError(t, err)
	m.CreatedAt = at
	return *m
}

func TestDailySalesSeries(t *testing.T) {
	now := time.Date(2026, 3, 14, 15, 30, 0, 0, time.UTC)
	loc := uuid.New()
	phone := newProduct(t, "Phone", 600, 1000)

	t.Run("seven zero-filled buckets oldest first", func(t *testing.T) {
		series := DailySalesSeries(nil, []catalog.Product{phone}, now)
		require.Len(t, series, 7)
		assert.Equal(t, time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC), series[0].Day)
		assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), series[6].Day)
		for _, point := range series {
			assert.True(t, point.Sales.IsZero())
			assert.Zero(t, point.InflowUnits)
		}
	})

	t.Run("buckets sales and inflow by calendar day", func(t *testing.T) {
		movements := []ledger.Movement{
			outboundAt(t, phone.ID, loc, 2, "Sale: Phone - ORD-100", now.AddDate(0, 0, -1)),
			outboundAt(t, phone.ID, loc, 1, "Sale: Phone - ORD-101", now.AddDate(0, 0, -1)),
			inboundAt(t, phone.ID, loc, 50, now),
			// outside the window, must not appear
			outboundAt(t, phone.ID, loc, 9, "Sale: Phone - ORD-102", now.AddDate(0, 0, -8)),
		}

		series := DailySalesSeries(movements, []catalog.Product{phone}, now)
		require.Len(t, series, 7)
		assert.True(t, series[5].Sales.Equal(decimal.NewFromInt(3000)), "yesterday holds both sales")
		assert.Equal(t, int64(50), series[6].InflowUnits)
		assert.True(t, series[0].Sales.IsZero())
	})
}

func TestCategoryBreakdown(t *testing.T) {
	loc := uuid.New()
	electronics, err := catalog.NewCategory("Electronics", "")
	require.NoError(t, err)
	food, err := catalog.NewCategory("Food", "")
	require.NoError(t, err)

	phone := newProduct(t, "Phone", 600, 1000)
	phone.CategoryID = &electronics.ID
	milk := newProduct(t, "Milk", 2, 5)
	milk.CategoryID = &food.ID

	movements := []ledger.Movement{
		inboundAt(t, phone.ID, loc, 3, time.Now()),
		inboundAt(t, milk.ID, loc, 100, time.Now()),
	}

	rows := CategoryBreakdown(movements, []catalog.Product{phone, milk}, []catalog.Category{*electronics, *food})
	require.Len(t, rows, 2)
	assert.Equal(t, "Electronics", rows[0].Category, "sorted descending by value")
	assert.True(t, rows[0].Value.Equal(decimal.NewFromInt(3000)))
	assert.Equal(t, int64(100), rows[1].Units)
	assert.True(t, rows[1].Value.Equal(decimal.NewFromInt(500)))
}

func TestExpiryUrgency(t *testing.T) {
	cases := []struct {
		days int
		want string
	}{
		{-1, "Expired"},
		{0, "Expired"},
		{1, "Critical"},
		{3, "Urgent"},
		{7, "Soon"},
		{10, "Upcoming"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ExpiryUrgency(tc.days), "days=%d", tc.days)
	}
}

func TestExpiryAlerts(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	loc := uuid.New()

	expiring := func(t *testing.T, name string, daysOut int, stock int64) (catalog.Product, catalog.Batch, ledger.Movement) {
		t.Helper()
		p := newProduct(t, name, 1, 2)
		expiry := now.AddDate(0, 0, daysOut)
		b, err := catalog.NewBatch(p.ID, &expiry, nil)
		require.NoError(t, err)
		m := inboundAt(t, p.ID, loc, stock, now.AddDate(0, 0, -30))
		return p, *b, m
	}

	soon, soonBatch, soonStock := expiring(t, "Yogurt", 5, 8)
	later, laterBatch, laterStock := expiring(t, "Cheese", 20, 4)
	far, farBatch, farStock := expiring(t, "Honey", 90, 4)
	gone, goneBatch, goneStock := expiring(t, "Cream", -2, 4)

	// stocked out, excluded despite near expiry
	sold, soldBatch, soldStock := expiring(t, "Butter", 2, 6)
	soldOut := outboundAt(t, sold.ID, loc, 6, "Sale: Butter - ORD-1", now)

	products := []catalog.Product{soon, later, far, gone, sold}
	batches := []catalog.Batch{soonBatch, laterBatch, farBatch, goneBatch, soldBatch}
	movements := []ledger.Movement{soonStock, laterStock, farStock, goneStock, soldStock, soldOut}

	alerts := ExpiryAlerts(movements, products, batches, now)
	require.Len(t, alerts, 2)
	assert.Equal(t, "Yogurt", alerts[0].ProductName, "soonest first")
	assert.Equal(t, "Soon", alerts[0].Urgency)
	assert.Equal(t, "Cheese", alerts[1].ProductName)
	assert.Equal(t, "Upcoming", alerts[1].Urgency)
}

func TestStockAlertSets(t *testing.T) {
	loc := uuid.New()
	low := newProduct(t, "Low", 1, 2)
	healthy := newProduct(t, "Healthy", 1, 2)
	empty := newProduct(t, "Empty", 1, 2)

	movements := []ledger.Movement{
		inboundAt(t, low.ID, loc, 4, time.Now()),
		inboundAt(t, healthy.ID, loc, 40, time.Now()),
		inboundAt(t, empty.ID, loc, 3, time.Now()),
		outboundAt(t, empty.ID, loc, 3, "Sale: Empty - ORD-9", time.Now()),
	}
	products := []catalog.Product{low, healthy, empty}

	lowSet := LowStock(movements, products)
	require.Len(t, lowSet, 1)
	assert.Equal(t, "Low", lowSet[0].ProductName)
	assert.Equal(t, "Low Stock", lowSet[0].Status)

	outSet := OutOfStock(movements, products)
	require.Len(t, outSet, 1)
	assert.Equal(t, "Empty", outSet[0].ProductName)
}

func TestDeriveOrders(t *testing.T) {
	now := time.Now()
	loc := uuid.New()
	phone := newProduct(t, "Phone", 600, 1000)
	charger := newProduct(t, "Charger", 10, 40)
	products := []catalog.Product{phone, charger}

	t.Run("groups by ORD token across lines", func(t *testing.T) {
		movements := []ledger.Movement{
			outboundAt(t, phone.ID, loc, 1, "Sale: Phone - ORD-555", now.Add(-time.Minute)),
			outboundAt(t, charger.ID, loc, 2, "Sale: Charger - ORD-555", now),
			outboundAt(t, phone.ID, loc, 1, "Sales Order: ORD-556", now.Add(-time.Hour)),
		}

		orders := DeriveOrders(movements, products)
		require.Len(t, orders, 2)
		assert.Equal(t, "ORD-555", orders[0].ID, "newest first")
		require.Len(t, orders[0].Items, 2)
		assert.True(t, orders[0].Total.Equal(decimal.NewFromInt(1080)))
		assert.Equal(t, "ORD-556", orders[1].ID)
	})

	t.Run("rows without a token become synthetic orders", func(t *testing.T) {
		m := outboundAt(t, phone.ID, loc, 1, "Sale: Phone (N/A) - Payment: CASH", now)
		orders := DeriveOrders([]ledger.Movement{m}, products)
		require.Len(t, orders, 1)
		assert.Equal(t, "ORD-"+m.ID.String()[:8], orders[0].ID)
	})

	t.Run("ignores non-OUT movements", func(t *testing.T) {
		m := inboundAt(t, phone.ID, loc, 5, now)
		assert.Empty(t, DeriveOrders([]ledger.Movement{m}, products))
	})
}

func TestComputeDashboardMetrics(t *testing.T) {
	now := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
	loc := uuid.New()
	phone := newProduct(t, "Phone", 600, 1000)
	cable := newProduct(t, "Cable", 2, 10)
	products := []catalog.Product{phone, cable}

	movements := []ledger.Movement{
		inboundAt(t, phone.ID, loc, 10, now.AddDate(0, 0, -3)),
		inboundAt(t, cable.ID, loc, 8, now.AddDate(0, 0, -3)),
		outboundAt(t, phone.ID, loc, 2, "Sale: Phone - ORD-1", now.Add(-2*time.Hour)),
		// yesterday's sale must not count toward today's figures
		outboundAt(t, cable.ID, loc, 3, "Sale: Cable - ORD-2", now.AddDate(0, 0, -1)),
	}

	m := ComputeDashboardMetrics(movements, products, now)
	assert.Equal(t, int64(13), m.TotalItems, "8 phones + 5 cables")
	assert.True(t, m.TotalValue.Equal(decimal.NewFromInt(8050)))
	assert.True(t, m.TotalInventoryCost.Equal(decimal.NewFromInt(4810)))
	assert.Equal(t, 1, m.OrdersToday)
	assert.True(t, m.RevenueToday.Equal(decimal.NewFromInt(2000)))
	assert.True(t, m.CogsToday.Equal(decimal.NewFromInt(1200)))
	assert.True(t, m.ProfitToday.Equal(decimal.NewFromInt(800)))
	assert.Equal(t, 2, m.LowStockCount)
}
