package product

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"shopcore-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, params ProductParams) (*Product, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	List(ctx context.Context, filter ListFilter) ([]*Product, error)
	Update(ctx context.Context, id int64, params ProductParams) (*Product, error)
	Delete(ctx context.Context, id int64) error
	AdjustStock(ctx context.Context, id int64, delta int) (*Product, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `
	p.id,
	p.name,
	p.description,
	p.price,
	p.stock_quantity,
	p.image_url,
	p.active,
	p.category_id,
	c.name,
	p.created_at,
	p.updated_at
`

func scanProduct(row interface{ Scan(...any) error }) (*Product, error) {
	var p Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.StockQuantity,
		&p.ImageURL,
		&p.Active,
		&p.CategoryID,
		&p.CategoryName,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Create(ctx context.Context, params ProductParams) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("name", params.Name),
	)

	active := true
	if params.Active != nil {
		active = *params.Active
	}

	query := `
	INSERT INTO products (
		name, description, price, stock_quantity,
		image_url, active, category_id
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		params.Name,
		params.Description,
		params.Price,
		params.StockQuantity,
		params.ImageURL,
		active,
		params.CategoryID,
	).Scan(&id)
	if err != nil {
		log.Error("failed to insert product", zap.Error(err))
		return nil, err
	}

	log.Info("product created", zap.Int64("product_id", id))
	return r.GetByID(ctx, id)
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Product, error) {
	query := `
	SELECT ` + productColumns + `
	FROM products p
	JOIN categories c ON c.id = p.category_id
	WHERE p.id = $1
	`

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	return p, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)

	start := time.Now()

	where := []string{}
	args := []any{}

	if filter.OnlyActive {
		where = append(where, "p.active = TRUE")
	}

	if filter.CategoryID != nil {
		where = append(where, fmt.Sprintf("p.category_id = $%d", len(args)+1))
		args = append(args, *filter.CategoryID)
		log = log.With(zap.Int64("category_id", *filter.CategoryID))
	}

	if filter.Keyword != nil && *filter.Keyword != "" {
		where = append(where,
			fmt.Sprintf(
				"(p.name ILIKE $%d OR p.description ILIKE $%d)",
				len(args)+1,
				len(args)+1,
			),
		)
		args = append(args, "%"+*filter.Keyword+"%")
		log = log.With(zap.String("keyword", *filter.Keyword))
	}

	query := `
	SELECT ` + productColumns + `
	FROM products p
	JOIN categories c ON c.id = p.category_id
	`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY p.name ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("query failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return nil, err
	}
	defer rows.Close()

	products := make([]*Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.Debug("query success",
		zap.Int("rows", len(products)),
		zap.Duration("duration", time.Since(start)),
	)

	return products, nil
}

func (r *repository) Update(ctx context.Context, id int64, params ProductParams) (*Product, error) {
	query := `
	UPDATE products
	SET name = $1,
	    description = $2,
	    price = $3,
	    stock_quantity = $4,
	    image_url = $5,
	    active = COALESCE($6, active),
	    category_id = $7,
	    updated_at = NOW()
	WHERE id = $8
	`

	res, err := r.db.ExecContext(ctx, query,
		params.Name,
		params.Description,
		params.Price,
		params.StockQuantity,
		params.ImageURL,
		params.Active,
		params.CategoryID,
		id,
	)
	if err != nil {
		return nil, err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rowsAffected == 0 {
		return nil, ErrProductNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// AdjustStock applies a signed delta to the stock. The WHERE guard keeps the
// quantity from ever going below zero.
func (r *repository) AdjustStock(ctx context.Context, id int64, delta int) (*Product, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET stock_quantity = stock_quantity + $1, updated_at = NOW()
		WHERE id = $2 AND stock_quantity + $1 >= 0
	`, delta, id)
	if err != nil {
		return nil, err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rowsAffected == 0 {
		// Either the product is missing or the delta would drive stock
		// negative; tell them apart for the caller.
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrInsufficientStock
	}

	return r.GetByID(ctx, id)
}
