package user

import (
	"context"
	"database/sql"
	"errors"

	"shopcore-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, params RegisterParams, passwordHash string, role Role) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByID(ctx context.Context, id int64) (*User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// Create inserts the user and its empty cart in one transaction. Every user
// owns exactly one cart from the moment the account exists.
func (r *repository) Create(
	ctx context.Context,
	params RegisterParams,
	passwordHash string,
	role Role,
) (*User, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("username", params.Username),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `
	INSERT INTO users (
		username, email, password_hash,
		first_name, last_name, phone, address,
		role, enabled
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE)
	RETURNING id, username, email, password_hash,
		first_name, last_name, phone, address,
		role, enabled, created_at
	`

	u := &User{}
	err = tx.QueryRowContext(ctx, query,
		params.Username,
		params.Email,
		passwordHash,
		params.FirstName,
		params.LastName,
		params.Phone,
		params.Address,
		role,
	).Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.FirstName,
		&u.LastName,
		&u.Phone,
		&u.Address,
		&u.Role,
		&u.Enabled,
		&u.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == PgUniqueViolation {
			if pqErr.Constraint == "users_email_key" {
				return nil, ErrEmailTaken
			}
			return nil, ErrUsernameTaken
		}
		log.Error("failed to insert user", zap.Error(err))
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO carts (user_id) VALUES ($1)`, u.ID)
	if err != nil {
		log.Error("failed to create cart for user", zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Info("user created", zap.Int64("user_id", u.ID))
	return u, nil
}

func (r *repository) FindByUsername(ctx context.Context, username string) (*User, error) {
	return r.findOne(ctx, `WHERE username = $1`, username)
}

func (r *repository) FindByID(ctx context.Context, id int64) (*User, error) {
	return r.findOne(ctx, `WHERE id = $1`, id)
}

func (r *repository) findOne(ctx context.Context, where string, arg any) (*User, error) {
	query := `
	SELECT id, username, email, password_hash,
		first_name, last_name, phone, address,
		role, enabled, created_at
	FROM users ` + where

	u := &User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.FirstName,
		&u.LastName,
		&u.Phone,
		&u.Address,
		&u.Role,
		&u.Enabled,
		&u.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return u, nil
}

func (r *repository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username,
	).Scan(&exists)
	return exists, err
}

func (r *repository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email,
	).Scan(&exists)
	return exists, err
}
