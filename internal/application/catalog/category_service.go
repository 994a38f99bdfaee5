package catalog

import (
	"context"

	"github.com/dreamshub/backend/internal/application/auth"
	"github.com/dreamshub/backend/internal/domain/catalog"
	"github.com/dreamshub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CategoryService handles explicit category management. The auto-create
// path during product intake lives in ProductService.
type CategoryService struct {
	categoryRepo   catalog.CategoryRepository
	eventPublisher shared.EventPublisher
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo catalog.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *CategoryService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateCategory adds a category; the name must not collide with an
// existing one, compared case-insensitively.
func (s *CategoryService) CreateCategory(ctx context.Context, session auth.Session, req CreateCategoryRequest) (*CategoryResponse, error) {
	if existing, err := s.categoryRepo.FindByName(ctx, req.Name); err == nil {
		return nil, shared.NewDomainErrorf(shared.CodeAlreadyExists, "Category %q already exists", existing.Name)
	} else if !shared.IsNotFound(err) {
		return nil, err
	}

	category, err := catalog.NewCategory(req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	category.Icon = req.Icon
	category.HasExpiry = req.HasExpiry
	category.HasSerials = req.HasSerials

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		_ = s.eventPublisher.Publish(ctx, catalog.NewCategoryCreatedEvent(category, session.Name, string(session.Role)))
	}

	resp := ToCategoryResponse(category)
	return &resp, nil
}

// RenameCategory changes a category's name
func (s *CategoryService) RenameCategory(ctx context.Context, session auth.Session, id uuid.UUID, name string) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing, err := s.categoryRepo.FindByName(ctx, name); err == nil && existing.ID != id {
		return nil, shared.NewDomainErrorf(shared.CodeAlreadyExists, "Category %q already exists", existing.Name)
	} else if err != nil && !shared.IsNotFound(err) {
		return nil, err
	}

	if err := category.Rename(name); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	resp := ToCategoryResponse(category)
	return &resp, nil
}

// DeleteCategory removes a category. Products keep their dangling
// reference and render as uncategorized.
func (s *CategoryService) DeleteCategory(ctx context.Context, session auth.Session, id uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.categoryRepo.Delete(ctx, id)
}

// ListCategories returns all categories
func (s *CategoryService) ListCategories(ctx context.Context) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, ToCategoryResponse(&categories[i]))
	}
	return out, nil
}
