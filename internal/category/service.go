package category

import (
	"context"

	"shopcore-be/internal/logger"

	"go.uber.org/zap"
)

// Service defines the business logic for categories.
type Service interface {
	Create(ctx context.Context, params CategoryParams) (*Category, error)
	GetByID(ctx context.Context, id int64) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
	Update(ctx context.Context, id int64, params CategoryParams) (*Category, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, params CategoryParams) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
		zap.String("name", params.Name),
	)
	log.Info("create category started")

	if taken, err := s.repo.ExistsByName(ctx, params.Name); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrNameTaken
	}

	c, err := s.repo.Create(ctx, params)
	if err != nil {
		log.Error("failed to create category", zap.Error(err))
		return nil, err
	}

	log.Info("category created", zap.Int64("category_id", c.ID))
	return c, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]*Category, error) {
	return s.repo.List(ctx)
}

func (s *service) Update(ctx context.Context, id int64, params CategoryParams) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Update"),
		zap.Int64("category_id", id),
	)

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Renaming onto another category's name is a conflict; keeping the same
	// name is not.
	if existing.Name != params.Name {
		if taken, err := s.repo.ExistsByName(ctx, params.Name); err != nil {
			return nil, err
		} else if taken {
			return nil, ErrNameTaken
		}
	}

	c, err := s.repo.Update(ctx, id, params)
	if err != nil {
		log.Error("failed to update category", zap.Error(err))
		return nil, err
	}

	log.Info("category updated")
	return c, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Delete"),
		zap.Int64("category_id", id),
	)

	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error("failed to delete category", zap.Error(err))
		return err
	}

	log.Info("category deleted")
	return nil
}
