package user

import (
	"context"

	"shopcore-be/internal/logger"
	"shopcore-be/internal/metrics"

	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, params RegisterParams) (string, *User, error)
	Login(ctx context.Context, username, password string) (string, *User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
}

type service struct {
	repo      Repository
	jwtSecret string
}

func NewService(repo Repository, jwtSecret string) Service {
	return &service{repo: repo, jwtSecret: jwtSecret}
}

func (s *service) Register(ctx context.Context, params RegisterParams) (string, *User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Register"),
		zap.String("username", params.Username),
	)
	log.Info("register started")

	// Pre-checks give a clean error before hitting the unique index; the
	// repository still maps 23505 in case of a race.
	if taken, err := s.repo.ExistsByUsername(ctx, params.Username); err != nil {
		return "", nil, err
	} else if taken {
		return "", nil, ErrUsernameTaken
	}

	if taken, err := s.repo.ExistsByEmail(ctx, params.Email); err != nil {
		return "", nil, err
	} else if taken {
		return "", nil, ErrEmailTaken
	}

	hashed, err := HashPassword(params.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return "", nil, err
	}

	u, err := s.repo.Create(ctx, params, hashed, RoleCustomer)
	if err != nil {
		log.Error("failed to create user", zap.Error(err))
		return "", nil, err
	}

	token, err := GenerateJWT(s.jwtSecret, *u)
	if err != nil {
		log.Error("failed to generate jwt", zap.Int64("user_id", u.ID), zap.Error(err))
		return "", nil, err
	}

	log.Info("register completed", zap.Int64("user_id", u.ID))
	return token, u, nil
}

func (s *service) Login(ctx context.Context, username, password string) (string, *User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
		zap.String("username", username),
	)

	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		metrics.FailedLogins.Inc()
		log.Info("login failed: unknown username")
		return "", nil, ErrInvalidCredentials
	}

	if !CheckPasswordHash(password, u.PasswordHash) {
		metrics.FailedLogins.Inc()
		log.Info("login failed: password mismatch", zap.Int64("user_id", u.ID))
		return "", nil, ErrInvalidCredentials
	}

	if !u.Enabled {
		metrics.FailedLogins.Inc()
		return "", nil, ErrAccountDisabled
	}

	token, err := GenerateJWT(s.jwtSecret, *u)
	if err != nil {
		return "", nil, err
	}

	log.Info("login success", zap.Int64("user_id", u.ID))
	return token, u, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*User, error) {
	return s.repo.FindByID(ctx, id)
}
