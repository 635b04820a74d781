package category

import (
	"context"
	"database/sql"
	"errors"

	"shopcore-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, params CategoryParams) (*Category, error)
	GetByID(ctx context.Context, id int64) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
	Update(ctx context.Context, id int64, params CategoryParams) (*Category, error)
	Delete(ctx context.Context, id int64) error
	ExistsByName(ctx context.Context, name string) (bool, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, params CategoryParams) (*Category, error) {
	query := `
	INSERT INTO categories (name, description)
	VALUES ($1, $2)
	RETURNING id, name, description, created_at, updated_at
	`

	var c Category
	err := r.db.QueryRowContext(ctx, query, params.Name, params.Description).
		Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == PgUniqueViolation {
			return nil, ErrNameTaken
		}
		return nil, err
	}

	return &c, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Category, error) {
	query := `
	SELECT id, name, description, created_at, updated_at
	FROM categories
	WHERE id = $1
	`

	var c Category
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *repository) List(ctx context.Context) ([]*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)

	query := `
	SELECT id, name, description, created_at, updated_at
	FROM categories
	ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	categories := make([]*Category, 0)
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		categories = append(categories, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}

func (r *repository) Update(ctx context.Context, id int64, params CategoryParams) (*Category, error) {
	query := `
	UPDATE categories
	SET name = $1, description = $2, updated_at = NOW()
	WHERE id = $3
	RETURNING id, name, description, created_at, updated_at
	`

	var c Category
	err := r.db.QueryRowContext(ctx, query, params.Name, params.Description, id).
		Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == PgUniqueViolation {
			return nil, ErrNameTaken
		}
		return nil, err
	}

	return &c, nil
}

// Delete refuses to remove a category that still has products. The check and
// the delete run in one transaction so a concurrent product insert cannot
// slip between them.
func (r *repository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var hasProducts bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM products WHERE category_id = $1)`, id,
	).Scan(&hasProducts)
	if err != nil {
		return err
	}
	if hasProducts {
		return ErrHasProducts
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrCategoryNotFound
	}

	return tx.Commit()
}

func (r *repository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM categories WHERE name = $1)`, name,
	).Scan(&exists)
	return exists, err
}
