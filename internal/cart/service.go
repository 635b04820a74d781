package cart

import (
	"context"
	"fmt"

	"shopcore-be/internal/logger"
	"shopcore-be/internal/product"

	"go.uber.org/zap"
)

// Service defines the business logic for carts.
type Service interface {
	AddToCart(ctx context.Context, params AddToCartParams) (*Cart, error)
	GetCart(ctx context.Context, userID int64) (*Cart, error)
	UpdateItem(ctx context.Context, params UpdateItemParams) (*Cart, error)
	RemoveItem(ctx context.Context, userID, itemID int64) (*Cart, error)
	ClearCart(ctx context.Context, userID int64) error
}

type service struct {
	repo        Repository
	productRepo product.Repository
}

// NewService creates a new cart service
func NewService(repo Repository, productRepo product.Repository) Service {
	return &service{repo: repo, productRepo: productRepo}
}

// AddToCart adds a product to a user's cart
func (s *service) AddToCart(ctx context.Context, params AddToCartParams) (*Cart, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddToCart"),
		zap.Int64("user_id", params.UserID),
		zap.Int64("product_id", params.ProductID),
		zap.Int("quantity", params.Quantity),
	)
	log.Info("add to cart started")

	if params.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	// 1. Load the product; only active products can be added.
	p, err := s.productRepo.GetByID(ctx, params.ProductID)
	if err != nil {
		return nil, err
	}
	if !p.Active {
		return nil, ErrProductInactive
	}

	// 2. Cart is normally created at registration; fall back to lazy creation.
	cartID, err := s.repo.EnsureCart(ctx, params.UserID)
	if err != nil {
		return nil, err
	}

	// 3. Existing line item means the quantities add up.
	item, err := s.repo.GetItemByCartAndProduct(ctx, cartID, params.ProductID)
	if err != nil {
		return nil, err
	}

	finalQty := params.Quantity
	if item != nil {
		finalQty += item.Quantity
	}

	// 4. Validate the summed quantity against current stock.
	if finalQty > p.StockQuantity {
		log.Warn("insufficient stock", zap.Int("available", p.StockQuantity))
		return nil, fmt.Errorf("%w. Available: %d", ErrInsufficientStock, p.StockQuantity)
	}

	// 5. Create or update the line item. New lines snapshot the current price.
	if item == nil {
		_, err = s.repo.CreateItem(ctx, cartID, p.ID, params.Quantity, p.Price)
	} else {
		err = s.repo.UpdateItemQuantity(ctx, item.ID, finalQty)
	}
	if err != nil {
		return nil, err
	}

	log.Info("add to cart completed")
	return s.repo.GetCart(ctx, params.UserID)
}

func (s *service) GetCart(ctx context.Context, userID int64) (*Cart, error) {
	return s.repo.GetCart(ctx, userID)
}

// UpdateItem sets a line item's quantity verbatim.
func (s *service) UpdateItem(ctx context.Context, params UpdateItemParams) (*Cart, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateItem"),
		zap.Int64("user_id", params.UserID),
		zap.Int64("item_id", params.ItemID),
	)

	item, err := s.repo.GetItemByID(ctx, params.ItemID)
	if err != nil {
		return nil, err
	}
	if item.UserID != params.UserID {
		log.Warn("ownership check failed", zap.Int64("owner_id", item.UserID))
		return nil, ErrNotOwner
	}

	if params.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	p, err := s.productRepo.GetByID(ctx, item.ProductID)
	if err != nil {
		return nil, err
	}
	if params.Quantity > p.StockQuantity {
		return nil, fmt.Errorf("%w. Available: %d", ErrInsufficientStock, p.StockQuantity)
	}

	if err := s.repo.UpdateItemQuantity(ctx, item.ID, params.Quantity); err != nil {
		return nil, err
	}

	log.Info("cart item updated", zap.Int("quantity", params.Quantity))
	return s.repo.GetCart(ctx, params.UserID)
}

func (s *service) RemoveItem(ctx context.Context, userID, itemID int64) (*Cart, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "RemoveItem"),
		zap.Int64("user_id", userID),
		zap.Int64("item_id", itemID),
	)

	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.UserID != userID {
		log.Warn("ownership check failed", zap.Int64("owner_id", item.UserID))
		return nil, ErrNotOwner
	}

	if err := s.repo.DeleteItem(ctx, item.ID); err != nil {
		return nil, err
	}

	log.Info("cart item removed")
	return s.repo.GetCart(ctx, userID)
}

func (s *service) ClearCart(ctx context.Context, userID int64) error {
	if err := s.repo.Clear(ctx, userID); err != nil {
		return err
	}

	logger.FromCtx(ctx).Info("cart cleared",
		zap.String("layer", "service"),
		zap.Int64("user_id", userID),
	)
	return nil
}
