package ledger

import (
	"context"
	"time"

	"github.com/dreamshub/backend/internal/domain/catalog"
	"github.com/dreamshub/backend/internal/domain/ledger"
	"github.com/dreamshub/backend/internal/domain/location"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductView is a product enriched with everything the ledger derives
// for it: current stock, status, display expiry, serials, decoded model.
type ProductView struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	Category      string          `json:"category"`
	Model         string          `json:"model"`
	Description   string          `json:"description"`
	BuyingPrice   decimal.Decimal `json:"buying_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	ImageURL      string          `json:"image_url,omitempty"`
	Colors        []string        `json:"colors,omitempty"`
	Stock         int64           `json:"stock"`
	Status        string          `json:"status"`
	ExpiryDate    *time.Time      `json:"expiry_date,omitempty"`
	SerialNumbers []string        `json:"serial_numbers,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// BatchView is a batch with its product's display name attached
type BatchView struct {
	ID               uuid.UUID  `json:"id"`
	ProductID        uuid.UUID  `json:"product_id"`
	ProductName      string     `json:"product_name"`
	BatchNumber      string     `json:"batch_number"`
	ExpiryDate       *time.Time `json:"expiry_date,omitempty"`
	ManufacturedDate *time.Time `json:"manufactured_date,omitempty"`
}

// MovementView is a ledger row with display names resolved for the UI
type MovementView struct {
	MovementResponse
	ProductName  string `json:"product_name"`
	FromLocation string `json:"from_location,omitempty"`
	ToLocation   string `json:"to_location,omitempty"`
}

// WarehouseView is a stock location in snapshot responses
type WarehouseView struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Type     string    `json:"type"`
	Address  string    `json:"address,omitempty"`
	IsActive bool      `json:"is_active"`
}

// CategoryView is a category in snapshot responses
type CategoryView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	HasExpiry   bool      `json:"has_expiry"`
	HasSerials  bool      `json:"has_serials"`
}

// Snapshot is the full derived state of the store: every collection the
// dashboard renders, rebuilt from the ledger on each call. Nothing in it
// is a persisted counter.
type Snapshot struct {
	Products   []ProductView   `json:"products"`
	Categories []CategoryView  `json:"categories"`
	Warehouses []WarehouseView `json:"warehouses"`
	Batches    []BatchView     `json:"batches"`
	Movements  []MovementView  `json:"movements"`
}

// InventoryService derives read models from the movement ledger and the
// catalog. It never writes.
type InventoryService struct {
	movementRepo  ledger.MovementRepository
	productRepo   catalog.ProductRepository
	categoryRepo  catalog.CategoryRepository
	warehouseRepo location.WarehouseRepository
	batchRepo     catalog.BatchRepository
	serialRepo    catalog.SerialNumberRepository
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(
	movementRepo ledger.MovementRepository,
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	warehouseRepo location.WarehouseRepository,
	batchRepo catalog.BatchRepository,
	serialRepo catalog.SerialNumberRepository,
) *InventoryService {
	return &InventoryService{
		movementRepo:  movementRepo,
		productRepo:   productRepo,
		categoryRepo:  categoryRepo,
		warehouseRepo: warehouseRepo,
		batchRepo:     batchRepo,
		serialRepo:    serialRepo,
	}
}

// Snapshot re-fetches everything and rebuilds the derived state
func (s *InventoryService) Snapshot(ctx context.Context) (*Snapshot, error) {
	movements, err := s.movementRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	warehouses, err := s.warehouseRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	batches, err := s.batchRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	serials, err := s.serialRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	stock := ledger.StockByProduct(movements)

	categoryNames := make(map[uuid.UUID]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
	}
	productNames := make(map[uuid.UUID]string, len(products))
	for _, p := range products {
		productNames[p.ID] = p.Name
	}
	warehouseNames := make(map[uuid.UUID]string, len(warehouses))
	for _, w := range warehouses {
		warehouseNames[w.ID] = w.Name
	}

	batchesByProduct := make(map[uuid.UUID][]catalog.Batch)
	for _, b := range batches {
		batchesByProduct[b.ProductID] = append(batchesByProduct[b.ProductID], b)
	}
	serialsByProduct := make(map[uuid.UUID][]string)
	for _, sn := range serials {
		serialsByProduct[sn.ProductID] = append(serialsByProduct[sn.ProductID], sn.Serial)
	}

	snap := &Snapshot{
		Products:   make([]ProductView, 0, len(products)),
		Categories: make([]CategoryView, 0, len(categories)),
		Warehouses: make([]WarehouseView, 0, len(warehouses)),
		Batches:    make([]BatchView, 0, len(batches)),
		Movements:  make([]MovementView, 0, len(movements)),
	}

	for i := range products {
		p := &products[i]
		view := ProductView{
			ID:            p.ID,
			Name:          p.Name,
			SKU:           p.SKU,
			Model:         p.Model(),
			Description:   p.CleanDescription(),
			BuyingPrice:   p.BuyingPrice,
			SellingPrice:  p.SellingPrice,
			ImageURL:      p.ImageURL,
			Colors:        p.ColorList(),
			Stock:         stock[p.ID],
			Status:        string(ledger.ClassifyStock(stock[p.ID])),
			SerialNumbers: serialsByProduct[p.ID],
			CreatedAt:     p.CreatedAt,
		}
		if p.CategoryID != nil {
			view.Category = categoryNames[*p.CategoryID]
		}
		if display := catalog.DisplayBatch(batchesByProduct[p.ID]); display != nil {
			view.ExpiryDate = display.ExpiryDate
		}
		snap.Products = append(snap.Products, view)
	}

	for _, c := range categories {
		snap.Categories = append(snap.Categories, CategoryView{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			Icon:        c.Icon,
			HasExpiry:   c.HasExpiry,
			HasSerials:  c.HasSerials,
		})
	}

	for _, w := range warehouses {
		snap.Warehouses = append(snap.Warehouses, WarehouseView{
			ID:       w.ID,
			Name:     w.Name,
			Type:     string(w.Type),
			Address:  w.Address,
			IsActive: w.IsActive,
		})
	}

	for _, b := range batches {
		snap.Batches = append(snap.Batches, BatchView{
			ID:               b.ID,
			ProductID:        b.ProductID,
			ProductName:      productNames[b.ProductID],
			BatchNumber:      b.BatchNumber,
			ExpiryDate:       b.ExpiryDate,
			ManufacturedDate: b.ManufacturedDate,
		})
	}

	for i := range movements {
		m := &movements[i]
		view := MovementView{
			MovementResponse: ToMovementResponse(m),
			ProductName:      productNames[m.ProductID],
		}
		if m.FromLocationID != nil {
			view.FromLocation = warehouseNames[*m.FromLocationID]
		}
		if m.ToLocationID != nil {
			view.ToLocation = warehouseNames[*m.ToLocationID]
		}
		snap.Movements = append(snap.Movements, view)
	}

	return snap, nil
}

// StockLevels returns the per-product derived stock with status
func (s *InventoryService) StockLevels(ctx context.Context) ([]StockLevelResponse, error) {
	movements, err := s.movementRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	stock := ledger.StockByProduct(movements)

	out := make([]StockLevelResponse, 0, len(stock))
	for id, qty := range stock {
		out = append(out, StockLevelResponse{
			ProductID: id,
			Stock:     qty,
			Status:    string(ledger.ClassifyStock(qty)),
		})
	}
	return out, nil
}

// Movements returns ledger rows matching the filter, newest first
func (s *InventoryService) Movements(ctx context.Context, filter ledger.MovementFilter) ([]MovementResponse, error) {
	movements, err := s.movementRepo.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToMovementResponses(movements), nil
}
