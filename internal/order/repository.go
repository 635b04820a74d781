package order

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"shopcore-be/internal/logger"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Repository interface {
	CreateFromCart(ctx context.Context, params CreateOrderParams) (*Order, error)
	GetByID(ctx context.Context, orderID int64) (*Order, error)
	ListByUser(ctx context.Context, userID int64) ([]*Order, error)
	ListAll(ctx context.Context) ([]*Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status OrderStatus) error
	CancelAndRestoreStock(ctx context.Context, orderID int64) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

type cartLine struct {
	productID   int64
	productName string
	price       decimal.Decimal
	quantity    int
	stock       int
}

// CreateFromCart converts the user's cart into an order inside a single
// transaction: product rows are locked FOR UPDATE, stock is re-validated and
// decremented with a guard, order items snapshot name and price, and the cart
// is cleared. Any failure rolls the whole thing back.
func (r *repository) CreateFromCart(ctx context.Context, params CreateOrderParams) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateFromCart"),
		zap.Int64("user_id", params.UserID),
	)

	start := time.Now()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// 1. Read cart lines with the products locked. Locking in product-id
	// order keeps concurrent checkouts from deadlocking each other.
	rows, err := tx.QueryContext(ctx, `
		SELECT ci.product_id, ci.product_name, ci.price, ci.quantity, p.stock_quantity
		FROM cart_items ci
		JOIN carts c ON c.id = ci.cart_id
		JOIN products p ON p.id = ci.product_id
		WHERE c.user_id = $1
		ORDER BY ci.product_id
		FOR UPDATE OF p
	`, params.UserID)
	if err != nil {
		log.Error("failed to read cart lines", zap.Error(err))
		return nil, err
	}

	lines := make([]cartLine, 0)
	for rows.Next() {
		var l cartLine
		if err := rows.Scan(&l.productID, &l.productName, &l.price, &l.quantity, &l.stock); err != nil {
			rows.Close()
			return nil, err
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	if len(lines) == 0 {
		return nil, ErrCartEmpty
	}

	// 2. Re-validate stock against the locked rows.
	total := decimal.Zero
	for _, l := range lines {
		if l.stock < l.quantity {
			log.Warn("insufficient stock at checkout",
				zap.Int64("product_id", l.productID),
				zap.Int("stock", l.stock),
				zap.Int("quantity", l.quantity),
			)
			return nil, fmt.Errorf("%w: %s", ErrInsufficientStock, l.productName)
		}
		total = total.Add(l.price.Mul(decimal.NewFromInt(int64(l.quantity))))
	}

	// 3. Insert the order.
	o := &Order{
		UserID:          params.UserID,
		Status:          StatusPending,
		TotalAmount:     total,
		ShippingAddress: params.ShippingAddress,
		PhoneNumber:     params.PhoneNumber,
		Notes:           params.Notes,
		Items:           make([]*OrderItem, 0, len(lines)),
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (user_id, total_amount, status, shipping_address, phone_number, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`,
		o.UserID, o.TotalAmount, o.Status,
		o.ShippingAddress, o.PhoneNumber, o.Notes,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return nil, err
	}

	// 4. Insert items and decrement stock. The guard repeats the stock
	// check inside the UPDATE itself.
	for _, l := range lines {
		item := &OrderItem{
			OrderID:     o.ID,
			ProductID:   l.productID,
			ProductName: l.productName,
			Price:       l.price,
			Quantity:    l.quantity,
			Subtotal:    l.price.Mul(decimal.NewFromInt(int64(l.quantity))),
		}

		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, product_id, product_name, price, quantity)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, item.OrderID, item.ProductID, item.ProductName, item.Price, item.Quantity).
			Scan(&item.ID)
		if err != nil {
			log.Error("failed to insert order item", zap.Error(err))
			return nil, err
		}

		res, err := tx.ExecContext(ctx, `
			UPDATE products
			SET stock_quantity = stock_quantity - $1, updated_at = NOW()
			WHERE id = $2 AND stock_quantity >= $1
		`, l.quantity, l.productID)
		if err != nil {
			return nil, err
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return nil, err
		}
		if affected == 0 {
			return nil, fmt.Errorf("%w: %s", ErrInsufficientStock, l.productName)
		}

		o.Items = append(o.Items, item)
	}

	// 5. Clear the cart.
	_, err = tx.ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE cart_id IN (SELECT id FROM carts WHERE user_id = $1)
	`, params.UserID)
	if err != nil {
		log.Error("failed to clear cart", zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Info("order created",
		zap.Int64("order_id", o.ID),
		zap.Int("items", len(o.Items)),
		zap.String("total", o.TotalAmount.String()),
		zap.Duration("duration", time.Since(start)),
	)

	return o, nil
}

const orderColumns = `
	id, user_id, total_amount, status,
	shipping_address, phone_number, notes,
	created_at, updated_at
`

func (r *repository) GetByID(ctx context.Context, orderID int64) (*Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	var o Order
	err := r.db.QueryRowContext(ctx, query, orderID).Scan(
		&o.ID,
		&o.UserID,
		&o.TotalAmount,
		&o.Status,
		&o.ShippingAddress,
		&o.PhoneNumber,
		&o.Notes,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadItems(ctx, []*Order{&o}); err != nil {
		return nil, err
	}

	return &o, nil
}

func (r *repository) ListByUser(ctx context.Context, userID int64) ([]*Order, error) {
	return r.list(ctx, `WHERE user_id = $1`, userID)
}

func (r *repository) ListAll(ctx context.Context) ([]*Order, error) {
	return r.list(ctx, ``)
}

func (r *repository) list(ctx context.Context, where string, args ...any) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "list"),
	)

	query := `SELECT ` + orderColumns + ` FROM orders ` + where + ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	orders := make([]*Order, 0)
	for rows.Next() {
		var o Order
		if err := rows.Scan(
			&o.ID,
			&o.UserID,
			&o.TotalAmount,
			&o.Status,
			&o.ShippingAddress,
			&o.PhoneNumber,
			&o.Notes,
			&o.CreatedAt,
			&o.UpdatedAt,
		); err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		orders = append(orders, &o)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadItems(ctx, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *repository) loadItems(ctx context.Context, orders []*Order) error {
	if len(orders) == 0 {
		return nil
	}

	byID := make(map[int64]*Order, len(orders))
	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		o.Items = make([]*OrderItem, 0)
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}

	query := `
	SELECT id, order_id, product_id, product_name, price, quantity
	FROM order_items
	WHERE order_id = ANY($1)
	ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.ProductName,
			&item.Price,
			&item.Quantity,
		); err != nil {
			return err
		}

		item.Subtotal = item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		if o, ok := byID[item.OrderID]; ok {
			o.Items = append(o.Items, &item)
		}
	}

	return rows.Err()
}

func (r *repository) UpdateStatus(ctx context.Context, orderID int64, status OrderStatus) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`, status, orderID)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

// CancelAndRestoreStock flips the order to CANCELLED and gives every ordered
// quantity back to its product, atomically. The status flip happens first and
// is guarded, so concurrent cancels of the same order cannot both reach the
// stock restore.
func (r *repository) CancelAndRestoreStock(ctx context.Context, orderID int64) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CancelAndRestoreStock"),
		zap.Int64("order_id", orderID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status NOT IN ($3, $4, $5)
	`, StatusCancelled, orderID, StatusShipped, StatusDelivered, StatusCancelled)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		// The guard rejected the flip; read the row to name the reason.
		var status OrderStatus
		err := tx.QueryRowContext(ctx,
			`SELECT status FROM orders WHERE id = $1`, orderID,
		).Scan(&status)
		if err == sql.ErrNoRows {
			return ErrOrderNotFound
		}
		if err != nil {
			return err
		}
		if status == StatusCancelled {
			return ErrAlreadyCancelled
		}
		return ErrNotCancellable
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE products p
		SET stock_quantity = p.stock_quantity + oi.quantity, updated_at = NOW()
		FROM order_items oi
		WHERE oi.order_id = $1 AND oi.product_id = p.id
	`, orderID)
	if err != nil {
		log.Error("failed to restore stock", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.Info("order cancelled, stock restored")
	return nil
}
