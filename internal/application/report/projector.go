package report

import (
	"fmt"
	"regexp"
	"sort"
	"time"

	"github.com/dreamshub/backend/internal/domain/catalog"
	"github.com/dreamshub/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Everything in this file is a pure function of (movements, catalog,
// now). Nothing reads clocks or stores; callers inject time so the
// boundaries are testable.

// DailySalesPoint is one bucket of the weekly sales series
type DailySalesPoint struct {
	Day         time.Time       `json:"day"`
	Label       string          `json:"label"`
	Sales       decimal.Decimal `json:"sales"`
	InflowUnits int64           `json:"inflow_units"`
}

// DailySalesSeries buckets the last seven calendar days, oldest first.
// Sales sums |quantity| x selling price over OUT movements; inflow sums
// raw quantity over IN movements. Days without activity stay zeroed.
func DailySalesSeries(movements []ledger.Movement, products []catalog.Product, now time.Time) []DailySalesPoint {
	prices := sellingPrices(products)
	today := startOfDay(now)

	series := make([]DailySalesPoint, 7)
	for i := range series {
		day := today.AddDate(0, 0, i-6)
		series[i] = DailySalesPoint{
			Day:   day,
			Label: day.Format("Mon"),
			Sales: decimal.Zero,
		}
	}

	for _, m := range movements {
		day := startOfDay(m.CreatedAt)
		idx := 6 - int(today.Sub(day).Hours()/24)
		if idx < 0 || idx > 6 {
			continue
		}
		switch m.MovementType {
		case ledger.MovementTypeOut:
			price := prices[m.ProductID]
			series[idx].Sales = series[idx].Sales.Add(price.Mul(decimal.NewFromInt(m.AbsQuantity())))
		case ledger.MovementTypeIn:
			series[idx].InflowUnits += m.Quantity
		}
	}
	return series
}

// CategoryBreakdownRow aggregates one category's stock position
type CategoryBreakdownRow struct {
	CategoryID uuid.UUID       `json:"category_id"`
	Category   string          `json:"category"`
	Units      int64           `json:"units"`
	Value      decimal.Decimal `json:"value"`
}

// CategoryBreakdown totals derived stock and stock valuation per
// category, sorted descending by value.
func CategoryBreakdown(movements []ledger.Movement, products []catalog.Product, categories []catalog.Category) []CategoryBreakdownRow {
	stock := ledger.StockByProduct(movements)

	rows := make([]CategoryBreakdownRow, 0, len(categories))
	for _, c := range categories {
		row := CategoryBreakdownRow{CategoryID: c.ID, Category: c.Name, Value: decimal.Zero}
		for i := range products {
			p := &products[i]
			if p.CategoryID == nil || *p.CategoryID != c.ID {
				continue
			}
			qty := stock[p.ID]
			row.Units += qty
			row.Value = row.Value.Add(p.SellingPrice.Mul(decimal.NewFromInt(qty)))
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Value.GreaterThan(rows[j].Value)
	})
	return rows
}

// ExpiryUrgency labels how close an expiry is, given whole days left
func ExpiryUrgency(days int) string {
	switch {
	case days <= 0:
		return "Expired"
	case days <= 1:
		return "Critical"
	case days <= 3:
		return "Urgent"
	case days <= 7:
		return "Soon"
	default:
		return "Upcoming"
	}
}

// ExpiryAlert flags a stocked product approaching its expiry date
type ExpiryAlert struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Stock       int64     `json:"stock"`
	ExpiryDate  time.Time `json:"expiry_date"`
	DaysLeft    int       `json:"days_left"`
	Urgency     string    `json:"urgency"`
}

// ExpiryAlerts lists products with stock on hand whose display batch
// expires within 30 days, soonest first. Already-expired stock is
// excluded here; it surfaces through the urgency label elsewhere.
func ExpiryAlerts(movements []ledger.Movement, products []catalog.Product, batches []catalog.Batch, now time.Time) []ExpiryAlert {
	stock := ledger.StockByProduct(movements)

	byProduct := make(map[uuid.UUID][]catalog.Batch)
	for _, b := range batches {
		byProduct[b.ProductID] = append(byProduct[b.ProductID], b)
	}

	alerts := make([]ExpiryAlert, 0)
	for i := range products {
		p := &products[i]
		if stock[p.ID] <= 0 {
			continue
		}
		display := catalog.DisplayBatch(byProduct[p.ID])
		if display == nil || display.ExpiryDate == nil {
			continue
		}
		days := daysUntil(*display.ExpiryDate, now)
		if days < 1 || days > 30 {
			continue
		}
		alerts = append(alerts, ExpiryAlert{
			ProductID:   p.ID,
			ProductName: p.Name,
			Stock:       stock[p.ID],
			ExpiryDate:  *display.ExpiryDate,
			DaysLeft:    days,
			Urgency:     ExpiryUrgency(days),
		})
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].DaysLeft < alerts[j].DaysLeft
	})
	return alerts
}

// StockAlert flags a product at or near zero stock
type StockAlert struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	SKU         string    `json:"sku"`
	Stock       int64     `json:"stock"`
	Status      string    `json:"status"`
}

// LowStock lists products in the (0, 10] band, lowest first
func LowStock(movements []ledger.Movement, products []catalog.Product) []StockAlert {
	return stockAlerts(movements, products, func(qty int64) bool {
		return qty > 0 && qty <= ledger.LowStockCeiling
	})
}

// OutOfStock lists products whose derived stock is exactly zero
func OutOfStock(movements []ledger.Movement, products []catalog.Product) []StockAlert {
	return stockAlerts(movements, products, func(qty int64) bool {
		return qty == 0
	})
}

func stockAlerts(movements []ledger.Movement, products []catalog.Product, match func(int64) bool) []StockAlert {
	stock := ledger.StockByProduct(movements)

	alerts := make([]StockAlert, 0)
	for i := range products {
		p := &products[i]
		qty := stock[p.ID]
		if !match(qty) {
			continue
		}
		alerts = append(alerts, StockAlert{
			ProductID:   p.ID,
			ProductName: p.Name,
			SKU:         p.SKU,
			Stock:       qty,
			Status:      string(ledger.ClassifyStock(qty)),
		})
	}
	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Stock < alerts[j].Stock
	})
	return alerts
}

// OrderItem is one line of a derived order
type OrderItem struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// Order is a sale reconstructed from the ledger rather than stored
type Order struct {
	ID    string          `json:"id"`
	Items []OrderItem     `json:"items"`
	Total decimal.Decimal `json:"total"`
	Time  time.Time       `json:"time"`
}

var orderToken = regexp.MustCompile(`ORD-\d+`)

// DeriveOrders groups OUT movements into orders by the ORD- token in
// their reason. Rows without a token become synthetic single-line
// orders keyed by a prefix of the movement ID, so legacy sales recorded
// before order numbering still appear. Newest first.
func DeriveOrders(movements []ledger.Movement, products []catalog.Product) []Order {
	prices := sellingPrices(products)
	names := make(map[uuid.UUID]string, len(products))
	for i := range products {
		names[products[i].ID] = products[i].Name
	}

	byKey := make(map[string]*Order)
	keys := make([]string, 0)
	for _, m := range movements {
		if m.MovementType != ledger.MovementTypeOut {
			continue
		}
		key := orderToken.FindString(m.Reason)
		if key == "" {
			key = fmt.Sprintf("ORD-%.8s", m.ID.String())
		}

		order, ok := byKey[key]
		if !ok {
			order = &Order{ID: key, Total: decimal.Zero, Time: m.CreatedAt}
			byKey[key] = order
			keys = append(keys, key)
		}

		price := prices[m.ProductID]
		qty := m.AbsQuantity()
		order.Items = append(order.Items, OrderItem{
			ProductID: m.ProductID,
			Name:      names[m.ProductID],
			Quantity:  qty,
			Price:     price,
		})
		order.Total = order.Total.Add(price.Mul(decimal.NewFromInt(qty)))
		if m.CreatedAt.After(order.Time) {
			order.Time = m.CreatedAt
		}
	}

	orders := make([]Order, 0, len(keys))
	for _, key := range keys {
		orders = append(orders, *byKey[key])
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].Time.After(orders[j].Time)
	})
	return orders
}

// DashboardMetrics is the headline block of the admin dashboard
type DashboardMetrics struct {
	TotalValue         decimal.Decimal `json:"total_value"`
	TotalInventoryCost decimal.Decimal `json:"total_inventory_cost"`
	TotalItems         int64           `json:"total_items"`
	OrdersToday        int             `json:"orders_today"`
	RevenueToday       decimal.Decimal `json:"revenue_today"`
	CogsToday          decimal.Decimal `json:"cogs_today"`
	ProfitToday        decimal.Decimal `json:"profit_today"`
	LowStockCount      int             `json:"low_stock_count"`
}

// ComputeDashboardMetrics folds the ledger into the headline numbers:
// valuation of current stock at both price points, today's revenue,
// cost of goods and profit over OUT movements, and the low-stock count.
func ComputeDashboardMetrics(movements []ledger.Movement, products []catalog.Product, now time.Time) DashboardMetrics {
	stock := ledger.StockByProduct(movements)
	today := startOfDay(now)

	metrics := DashboardMetrics{
		TotalValue:         decimal.Zero,
		TotalInventoryCost: decimal.Zero,
		RevenueToday:       decimal.Zero,
		CogsToday:          decimal.Zero,
		ProfitToday:        decimal.Zero,
	}

	buying := make(map[uuid.UUID]decimal.Decimal, len(products))
	selling := make(map[uuid.UUID]decimal.Decimal, len(products))
	for i := range products {
		p := &products[i]
		qty := decimal.NewFromInt(stock[p.ID])
		metrics.TotalValue = metrics.TotalValue.Add(p.SellingPrice.Mul(qty))
		metrics.TotalInventoryCost = metrics.TotalInventoryCost.Add(p.BuyingPrice.Mul(qty))
		metrics.TotalItems += stock[p.ID]
		if stock[p.ID] > 0 && stock[p.ID] <= ledger.LowStockCeiling {
			metrics.LowStockCount++
		}
		buying[p.ID] = p.BuyingPrice
		selling[p.ID] = p.SellingPrice
	}

	for _, m := range movements {
		if m.MovementType != ledger.MovementTypeOut || m.CreatedAt.Before(today) {
			continue
		}
		qty := decimal.NewFromInt(m.AbsQuantity())
		metrics.OrdersToday++
		metrics.RevenueToday = metrics.RevenueToday.Add(selling[m.ProductID].Mul(qty))
		metrics.CogsToday = metrics.CogsToday.Add(buying[m.ProductID].Mul(qty))
	}
	metrics.ProfitToday = metrics.RevenueToday.Sub(metrics.CogsToday)
	return metrics
}

func sellingPrices(products []catalog.Product) map[uuid.UUID]decimal.Decimal {
	prices := make(map[uuid.UUID]decimal.Decimal, len(products))
	for i := range products {
		prices[products[i].ID] = products[i].SellingPrice
	}
	return prices
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func daysUntil(expiry, now time.Time) int {
	return int(expiry.Sub(now).Hours() / 24)
}
