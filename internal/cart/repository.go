package cart

import (
	"context"
	"database/sql"

	"shopcore-be/internal/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Repository interface {
	GetCartIDByUser(ctx context.Context, userID int64) (int64, error)
	EnsureCart(ctx context.Context, userID int64) (int64, error)
	GetCart(ctx context.Context, userID int64) (*Cart, error)
	GetItemByCartAndProduct(ctx context.Context, cartID, productID int64) (*CartItem, error)
	GetItemByID(ctx context.Context, itemID int64) (*CartItem, error)
	CreateItem(ctx context.Context, cartID, productID int64, quantity int, price decimal.Decimal) (*CartItem, error)
	UpdateItemQuantity(ctx context.Context, itemID int64, quantity int) error
	DeleteItem(ctx context.Context, itemID int64) error
	Clear(ctx context.Context, userID int64) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetCartIDByUser(ctx context.Context, userID int64) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM carts WHERE user_id = $1`, userID,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, ErrCartNotFound
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

// EnsureCart returns the user's cart id, creating the cart row if a user
// somehow predates the register-time cart creation.
func (r *repository) EnsureCart(ctx context.Context, userID int64) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO carts (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING id
	`, userID).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// GetCart loads the cart with its items and computes the total from the line
// items, so the figure can never drift from its parts.
func (r *repository) GetCart(ctx context.Context, userID int64) (*Cart, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetCart"),
		zap.Int64("user_id", userID),
	)

	cartID, err := r.GetCartIDByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	query := `
	SELECT
		ci.id,
		ci.cart_id,
		ci.product_id,
		ci.product_name,
		ci.price,
		ci.quantity,
		p.image_url,
		ci.created_at,
		ci.updated_at
	FROM cart_items ci
	JOIN products p ON p.id = ci.product_id
	WHERE ci.cart_id = $1
	ORDER BY ci.created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, cartID)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	c := &Cart{
		ID:          cartID,
		UserID:      userID,
		Items:       make([]*CartItem, 0),
		TotalAmount: decimal.Zero,
	}

	for rows.Next() {
		var item CartItem
		if err := rows.Scan(
			&item.ID,
			&item.CartID,
			&item.ProductID,
			&item.ProductName,
			&item.Price,
			&item.Quantity,
			&item.ImageURL,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}

		item.UserID = userID
		item.Subtotal = item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		c.TotalAmount = c.TotalAmount.Add(item.Subtotal)
		c.Items = append(c.Items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	c.TotalItems = len(c.Items)
	return c, nil
}

func (r *repository) GetItemByCartAndProduct(ctx context.Context, cartID, productID int64) (*CartItem, error) {
	query := `
	SELECT id, cart_id, product_id, product_name, price, quantity, created_at, updated_at
	FROM cart_items
	WHERE cart_id = $1 AND product_id = $2
	`

	var item CartItem
	err := r.db.QueryRowContext(ctx, query, cartID, productID).Scan(
		&item.ID,
		&item.CartID,
		&item.ProductID,
		&item.ProductName,
		&item.Price,
		&item.Quantity,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *repository) GetItemByID(ctx context.Context, itemID int64) (*CartItem, error) {
	query := `
	SELECT ci.id, ci.cart_id, c.user_id, ci.product_id, ci.product_name,
		ci.price, ci.quantity, ci.created_at, ci.updated_at
	FROM cart_items ci
	JOIN carts c ON c.id = ci.cart_id
	WHERE ci.id = $1
	`

	var item CartItem
	err := r.db.QueryRowContext(ctx, query, itemID).Scan(
		&item.ID,
		&item.CartID,
		&item.UserID,
		&item.ProductID,
		&item.ProductName,
		&item.Price,
		&item.Quantity,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrCartItemNotFound
	}
	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *repository) CreateItem(
	ctx context.Context,
	cartID, productID int64,
	quantity int,
	price decimal.Decimal,
) (*CartItem, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateItem"),
		zap.Int64("cart_id", cartID),
		zap.Int64("product_id", productID),
	)

	query := `
	INSERT INTO cart_items (cart_id, product_id, product_name, price, quantity)
	SELECT $1, p.id, p.name, $3, $4
	FROM products p
	WHERE p.id = $2
	RETURNING id, cart_id, product_id, product_name, price, quantity, created_at, updated_at
	`

	var item CartItem
	err := r.db.QueryRowContext(ctx, query, cartID, productID, price, quantity).Scan(
		&item.ID,
		&item.CartID,
		&item.ProductID,
		&item.ProductName,
		&item.Price,
		&item.Quantity,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create cart item", zap.Error(err))
		return nil, err
	}

	log.Info("cart item created", zap.Int64("cart_item_id", item.ID))
	return &item, nil
}

func (r *repository) UpdateItemQuantity(ctx context.Context, itemID int64, quantity int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE cart_items
		SET quantity = $1, updated_at = NOW()
		WHERE id = $2
	`, quantity, itemID)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrCartItemNotFound
	}

	return nil
}

func (r *repository) DeleteItem(ctx context.Context, itemID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE id = $1`, itemID)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrCartItemNotFound
	}

	return nil
}

// Clear is idempotent; clearing an already empty cart is not an error.
func (r *repository) Clear(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE cart_id IN (SELECT id FROM carts WHERE user_id = $1)
	`, userID)
	return err
}
