package report

import (
	"context"
	"time"

	"github.com/dreamshub/backend/internal/domain/catalog"
	"github.com/dreamshub/backend/internal/domain/ledger"
)

// AnalyticsService projects read-only analytics from the movement
// ledger and the catalog. Every answer is recomputed from source on
// each call.
type AnalyticsService struct {
	movementRepo ledger.MovementRepository
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	batchRepo    catalog.BatchRepository
	now          func() time.Time
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(
	movementRepo ledger.MovementRepository,
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	batchRepo catalog.BatchRepository,
) *AnalyticsService {
	return &AnalyticsService{
		movementRepo: movementRepo,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		batchRepo:    batchRepo,
		now:          time.Now,
	}
}

// SetClock overrides the time source, for tests
func (s *AnalyticsService) SetClock(now func() time.Time) {
	s.now = now
}

func (s *AnalyticsService) load(ctx context.Context) ([]ledger.Movement, []catalog.Product, error) {
	movements, err := s.movementRepo.FindAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	return movements, products, nil
}

// SalesSeries returns the 7-day sales and inflow series, oldest first
func (s *AnalyticsService) SalesSeries(ctx context.Context) ([]DailySalesPoint, error) {
	movements, products, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return DailySalesSeries(movements, products, s.now()), nil
}

// Breakdown returns per-category stock totals sorted by valuation
func (s *AnalyticsService) Breakdown(ctx context.Context) ([]CategoryBreakdownRow, error) {
	movements, products, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return CategoryBreakdown(movements, products, categories), nil
}

// Expiry returns stocked products expiring within 30 days
func (s *AnalyticsService) Expiry(ctx context.Context) ([]ExpiryAlert, error) {
	movements, products, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	batches, err := s.batchRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ExpiryAlerts(movements, products, batches, s.now()), nil
}

// StockAlerts bundles the low-stock and out-of-stock product sets
type StockAlerts struct {
	LowStock   []StockAlert `json:"low_stock"`
	OutOfStock []StockAlert `json:"out_of_stock"`
}

// Alerts returns the low-stock and out-of-stock sets
func (s *AnalyticsService) Alerts(ctx context.Context) (*StockAlerts, error) {
	movements, products, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return &StockAlerts{
		LowStock:   LowStock(movements, products),
		OutOfStock: OutOfStock(movements, products),
	}, nil
}

// Orders reconstructs the order list from OUT movements, newest first
func (s *AnalyticsService) Orders(ctx context.Context) ([]Order, error) {
	movements, products, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return DeriveOrders(movements, products), nil
}

// Dashboard returns the headline metric block
func (s *AnalyticsService) Dashboard(ctx context.Context) (*DashboardMetrics, error) {
	movements, products, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	metrics := ComputeDashboardMetrics(movements, products, s.now())
	return &metrics, nil
}
