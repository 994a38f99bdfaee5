package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/dreamshub/backend/internal/application/auth"
	appledger "github.com/dreamshub/backend/internal/application/ledger"
	"github.com/dreamshub/backend/internal/domain/catalog"
	"github.com/dreamshub/backend/internal/domain/ledger"
	"github.com/dreamshub/backend/internal/domain/location"
	"github.com/dreamshub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductService handles product intake, edits and the destructive
// removal cascade. Stock never lives on the product; intake with
// starting stock goes through the movement writer.
type ProductService struct {
	productRepo    catalog.ProductRepository
	categoryRepo   catalog.CategoryRepository
	batchRepo      catalog.BatchRepository
	serialRepo     catalog.SerialNumberRepository
	warehouseRepo  location.WarehouseRepository
	movementRepo   ledger.MovementRepository
	writer         *appledger.MovementWriter
	eventPublisher shared.EventPublisher
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	batchRepo catalog.BatchRepository,
	serialRepo catalog.SerialNumberRepository,
	warehouseRepo location.WarehouseRepository,
	movementRepo ledger.MovementRepository,
	writer *appledger.MovementWriter,
) *ProductService {
	return &ProductService{
		productRepo:   productRepo,
		categoryRepo:  categoryRepo,
		batchRepo:     batchRepo,
		serialRepo:    serialRepo,
		warehouseRepo: warehouseRepo,
		movementRepo:  movementRepo,
		writer:        writer,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ProductService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *ProductService) publish(ctx context.Context, events ...shared.DomainEvent) {
	if s.eventPublisher == nil {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
}

// resolveCategory finds a category by name case-insensitively, creating
// it on miss. An empty name resolves to no category.
func (s *ProductService) resolveCategory(ctx context.Context, session auth.Session, name string) (*uuid.UUID, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	existing, err := s.categoryRepo.FindByName(ctx, name)
	if err == nil {
		return &existing.ID, nil
	}
	if !shared.IsNotFound(err) {
		return nil, err
	}

	created, err := catalog.NewCategory(name, "")
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, created); err != nil {
		return nil, err
	}
	s.publish(ctx, catalog.NewCategoryCreatedEvent(created, session.Name, string(session.Role)))
	return &created.ID, nil
}

// CreateProduct performs the full intake: catalog row, optional batch,
// optional serials, and the initial IN movement when starting stock is
// supplied.
func (s *ProductService) CreateProduct(ctx context.Context, session auth.Session, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(req.Name, req.SKU, req.BuyingPrice, req.SellingPrice)
	if err != nil {
		return nil, err
	}
	product.SetDescription(req.Model, req.Description)
	product.SetColors(req.Colors)
	product.ImageURL = req.ImageURL

	categoryID, err := s.resolveCategory(ctx, session, req.Category)
	if err != nil {
		return nil, err
	}
	product.SetCategory(categoryID)

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	if req.ExpiryDate != nil || req.ManufacturedDate != nil {
		batch, err := catalog.NewBatch(product.ID, req.ExpiryDate, req.ManufacturedDate)
		if err != nil {
			return nil, err
		}
		if err := s.batchRepo.Save(ctx, batch); err != nil {
			return nil, err
		}
	}

	if len(req.SerialNumbers) > 0 {
		if err := s.insertSerials(ctx, product.ID, req.SerialNumbers, req.LocationID); err != nil {
			return nil, err
		}
	}

	if _, err := s.writer.RecordInitialStock(ctx, session, product.ID, req.LocationID, req.InitialStock, ""); err != nil {
		return nil, err
	}

	s.publish(ctx, catalog.NewProductCreatedEvent(product, session.Name, string(session.Role)))

	resp := ToProductResponse(product)
	return &resp, nil
}

// insertSerials stores the supplied serials as Available. They land at
// the given location, falling back to the default when none is present.
func (s *ProductService) insertSerials(ctx context.Context, productID uuid.UUID, serials []string, locationID *uuid.UUID) error {
	var home *uuid.UUID
	if locationID != nil && *locationID != uuid.Nil {
		home = locationID
	} else if wh, err := s.warehouseRepo.FindByName(ctx, location.DefaultLocationName); err == nil {
		home = &wh.ID
	}

	rows := make([]*catalog.SerialNumber, 0, len(serials))
	for _, serial := range serials {
		serial = strings.TrimSpace(serial)
		if serial == "" {
			continue
		}
		sn, err := catalog.NewSerialNumber(productID, serial, home)
		if err != nil {
			return err
		}
		rows = append(rows, sn)
	}
	if len(rows) == 0 {
		return nil
	}
	return s.serialRepo.SaveAll(ctx, rows)
}

// UpdateProduct applies the non-nil fields of the request
func (s *ProductService) UpdateProduct(ctx context.Context, session auth.Session, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, shared.NewDomainError(shared.CodeValidation, "Product name cannot be empty")
		}
		product.Name = *req.Name
	}
	if req.BuyingPrice != nil || req.SellingPrice != nil {
		buying := product.BuyingPrice
		selling := product.SellingPrice
		if req.BuyingPrice != nil {
			buying = *req.BuyingPrice
		}
		if req.SellingPrice != nil {
			selling = *req.SellingPrice
		}
		if err := product.SetPrices(buying, selling); err != nil {
			return nil, err
		}
	}
	if req.Model != nil || req.Description != nil {
		model := product.Model()
		description := product.CleanDescription()
		if req.Model != nil {
			model = *req.Model
		}
		if req.Description != nil {
			description = *req.Description
		}
		product.SetDescription(model, description)
	}
	if req.Category != nil {
		categoryID, err := s.resolveCategory(ctx, session, *req.Category)
		if err != nil {
			return nil, err
		}
		product.SetCategory(categoryID)
	}
	if req.Colors != nil {
		product.SetColors(req.Colors)
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	if req.ExpiryDate != nil || req.ManufacturedDate != nil {
		if err := s.upsertBatchDates(ctx, product.ID, req.ExpiryDate, req.ManufacturedDate); err != nil {
			return nil, err
		}
	}

	s.publish(ctx, catalog.NewProductUpdatedEvent(product, session.Name, string(session.Role)))

	resp := ToProductResponse(product)
	return &resp, nil
}

// upsertBatchDates writes the given dates onto the product's batch. A
// product carries at most one batch worth displaying; when none exists
// yet one is created to hold the dates.
func (s *ProductService) upsertBatchDates(ctx context.Context, productID uuid.UUID, expiry, manufactured *time.Time) error {
	batches, err := s.batchRepo.FindByProduct(ctx, productID)
	if err != nil {
		return err
	}
	if len(batches) == 0 {
		batch, err := catalog.NewBatch(productID, expiry, manufactured)
		if err != nil {
			return err
		}
		return s.batchRepo.Save(ctx, batch)
	}

	batch := batches[0]
	if expiry != nil {
		batch.ExpiryDate = expiry
	}
	if manufactured != nil {
		batch.ManufacturedDate = manufactured
	}
	return s.batchRepo.Save(ctx, &batch)
}

// DeleteProduct removes a product and everything hanging off it:
// movements, serials and batches. Destructive; the ledger history for
// the product is gone afterwards.
func (s *ProductService) DeleteProduct(ctx context.Context, session auth.Session, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.movementRepo.DeleteByProduct(ctx, id); err != nil {
		return err
	}
	if err := s.serialRepo.DeleteByProduct(ctx, id); err != nil {
		return err
	}
	if err := s.batchRepo.DeleteByProduct(ctx, id); err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, catalog.NewProductDeletedEvent(id, product.Name, session.Name, string(session.Role)))
	return nil
}

// GetProduct returns a single product
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// ListProducts returns the full catalog
func (s *ProductService) ListProducts(ctx context.Context) ([]ProductResponse, error) {
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, ToProductResponse(&products[i]))
	}
	return out, nil
}
