package ledger

import (
	"github.com/google/uuid"
)

// StockStatus is a three-tier classification derived purely from current stock
type StockStatus string

const (
	StatusInStock    StockStatus = "In Stock"
	StatusLowStock   StockStatus = "Low Stock"
	StatusOutOfStock StockStatus = "Out of Stock"
)

// LowStockCeiling is the inclusive upper bound of the low-stock band
const LowStockCeiling = 10

// ClassifyStock maps a derived stock level to its status.
// stock > 10 is In Stock, 1..10 is Low Stock, anything else is Out of Stock.
func ClassifyStock(stock int64) StockStatus {
	switch {
	case stock > LowStockCeiling:
		return StatusInStock
	case stock > 0:
		return StatusLowStock
	default:
		return StatusOutOfStock
	}
}

// StockByProduct folds movements into global stock per product. The signed
// quantity already encodes direction, so a plain sum is correct regardless
// of location and of insertion order.
func StockByProduct(movements []Movement) map[uuid.UUID]int64 {
	stock := make(map[uuid.UUID]int64, len(movements))
	for i := range movements {
		stock[movements[i].ProductID] += movements[i].Quantity
	}
	return stock
}

// StockFor returns the global derived stock for a single product.
func StockFor(movements []Movement, productID uuid.UUID) int64 {
	var total int64
	for i := range movements {
		if movements[i].ProductID == productID {
			total += movements[i].Quantity
		}
	}
	return total
}

// StockAt folds per-location stock for every product at the given location.
// The rule is uniform: accumulate the stored signed quantity whenever either
// location id matches. Outbound legs are stored negative, so the sum is the
// correct depletion; subtracting on the from side would double-penalize the
// source of a transfer.
func StockAt(movements []Movement, locationID uuid.UUID) map[uuid.UUID]int64 {
	stock := make(map[uuid.UUID]int64)
	for i := range movements {
		m := &movements[i]
		if m.Touches(locationID) {
			stock[m.ProductID] += m.Quantity
		}
	}
	return stock
}

// StockAtFor returns the derived stock for one product at one location.
func StockAtFor(movements []Movement, productID, locationID uuid.UUID) int64 {
	var total int64
	for i := range movements {
		m := &movements[i]
		if m.ProductID == productID && m.Touches(locationID) {
			total += m.Quantity
		}
	}
	return total
}
