package order

import (
	"context"
	"strings"

	"shopcore-be/internal/logger"
	"shopcore-be/internal/metrics"

	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, params CreateOrderParams) (*Order, error)
	GetByID(ctx context.Context, userID, orderID int64) (*Order, error)
	ListByUser(ctx context.Context, userID int64) ([]*Order, error)
	ListAll(ctx context.Context) ([]*Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status string) (*Order, error)
	Cancel(ctx context.Context, userID, orderID int64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Create converts the caller's cart into a PENDING order. All validation
// beyond the address check happens inside the repository transaction, against
// locked product rows.
func (s *service) Create(ctx context.Context, params CreateOrderParams) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
		zap.Int64("user_id", params.UserID),
	)
	log.Info("create order started")

	if strings.TrimSpace(params.ShippingAddress) == "" {
		return nil, ErrShippingRequired
	}

	o, err := s.repo.CreateFromCart(ctx, params)
	if err != nil {
		log.Warn("create order failed", zap.Error(err))
		return nil, err
	}

	metrics.OrdersCreated.Inc()
	log.Info("order created", zap.Int64("order_id", o.ID))
	return o, nil
}

func (s *service) GetByID(ctx context.Context, userID, orderID int64) (*Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if o.UserID != userID {
		return nil, ErrNotOwner
	}

	return o, nil
}

func (s *service) ListByUser(ctx context.Context, userID int64) ([]*Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) ListAll(ctx context.Context) ([]*Order, error) {
	return s.repo.ListAll(ctx)
}

// UpdateStatus is the admin status overwrite. CANCELLED is rejected here:
// cancellation restores stock and must go through Cancel, so there is exactly
// one path that touches inventory.
func (s *service) UpdateStatus(ctx context.Context, orderID int64, status string) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateStatus"),
		zap.Int64("order_id", orderID),
		zap.String("status", status),
	)

	target, ok := ParseStatus(status)
	if !ok {
		return nil, ErrInvalidStatus
	}
	if target == StatusCancelled {
		return nil, ErrUseCancelFlow
	}

	if err := s.repo.UpdateStatus(ctx, orderID, target); err != nil {
		log.Error("failed to update status", zap.Error(err))
		return nil, err
	}

	log.Info("order status updated")
	return s.repo.GetByID(ctx, orderID)
}

func (s *service) Cancel(ctx context.Context, userID, orderID int64) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Cancel"),
		zap.Int64("user_id", userID),
		zap.Int64("order_id", orderID),
	)

	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}

	if o.UserID != userID {
		log.Warn("ownership check failed", zap.Int64("owner_id", o.UserID))
		return ErrNotOwner
	}

	// Early status check for the common case; the repository repeats it
	// inside its transaction, which is what actually closes the race.
	switch o.Status {
	case StatusShipped, StatusDelivered:
		return ErrNotCancellable
	case StatusCancelled:
		return ErrAlreadyCancelled
	}

	if err := s.repo.CancelAndRestoreStock(ctx, orderID); err != nil {
		log.Error("failed to cancel order", zap.Error(err))
		return err
	}

	metrics.OrdersCancelled.Inc()
	log.Info("order cancelled")
	return nil
}
