package product

import (
	"context"
	"strings"

	"shopcore-be/internal/category"
	"shopcore-be/internal/logger"

	"go.uber.org/zap"
)

// Service defines the business logic for the product catalog.
type Service interface {
	Create(ctx context.Context, params ProductParams) (*Product, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	ListAll(ctx context.Context) ([]*Product, error)
	ListActive(ctx context.Context) ([]*Product, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]*Product, error)
	Search(ctx context.Context, keyword string) ([]*Product, error)
	Update(ctx context.Context, id int64, params ProductParams) (*Product, error)
	Delete(ctx context.Context, id int64) error
	AdjustStock(ctx context.Context, id int64, delta int) (*Product, error)
}

type service struct {
	repo         Repository
	categoryRepo category.Repository
}

func NewService(repo Repository, categoryRepo category.Repository) Service {
	return &service{repo: repo, categoryRepo: categoryRepo}
}

func (s *service) validate(ctx context.Context, params ProductParams) error {
	if params.Price.IsNegative() {
		return ErrInvalidPrice
	}
	if params.StockQuantity < 0 {
		return ErrInvalidStock
	}

	if _, err := s.categoryRepo.GetByID(ctx, params.CategoryID); err != nil {
		if err == category.ErrCategoryNotFound {
			return ErrCategoryNotFound
		}
		return err
	}

	return nil
}

func (s *service) Create(ctx context.Context, params ProductParams) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
		zap.String("name", params.Name),
	)
	log.Info("create product started")

	if err := s.validate(ctx, params); err != nil {
		return nil, err
	}

	p, err := s.repo.Create(ctx, params)
	if err != nil {
		log.Error("failed to create product", zap.Error(err))
		return nil, err
	}

	return p, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListAll(ctx context.Context) ([]*Product, error) {
	return s.repo.List(ctx, ListFilter{})
}

func (s *service) ListActive(ctx context.Context) ([]*Product, error) {
	return s.repo.List(ctx, ListFilter{OnlyActive: true})
}

func (s *service) ListByCategory(ctx context.Context, categoryID int64) ([]*Product, error) {
	if _, err := s.categoryRepo.GetByID(ctx, categoryID); err != nil {
		if err == category.ErrCategoryNotFound {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	return s.repo.List(ctx, ListFilter{OnlyActive: true, CategoryID: &categoryID})
}

// Search does a case-insensitive substring match over name and description.
// A blank keyword degrades to the plain active listing.
func (s *service) Search(ctx context.Context, keyword string) ([]*Product, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return s.ListActive(ctx)
	}

	return s.repo.List(ctx, ListFilter{OnlyActive: true, Keyword: &keyword})
}

func (s *service) Update(ctx context.Context, id int64, params ProductParams) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Update"),
		zap.Int64("product_id", id),
	)

	if err := s.validate(ctx, params); err != nil {
		return nil, err
	}

	p, err := s.repo.Update(ctx, id, params)
	if err != nil {
		log.Error("failed to update product", zap.Error(err))
		return nil, err
	}

	log.Info("product updated")
	return p, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Delete"),
		zap.Int64("product_id", id),
	)

	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error("failed to delete product", zap.Error(err))
		return err
	}

	log.Info("product deleted")
	return nil
}

func (s *service) AdjustStock(ctx context.Context, id int64, delta int) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AdjustStock"),
		zap.Int64("product_id", id),
		zap.Int("delta", delta),
	)

	p, err := s.repo.AdjustStock(ctx, id, delta)
	if err != nil {
		log.Warn("stock adjustment rejected", zap.Error(err))
		return nil, err
	}

	log.Info("stock adjusted", zap.Int("stock_quantity", p.StockQuantity))
	return p, nil
}
