package order

import (
	"context"
	"database/sql"

	"papa-pizza/internal/logger"
	"papa-pizza/internal/pricing"

	"go.uber.org/zap"
)

// ListOptions filters the order listing. A nil OwnerID means every order.
type ListOptions struct {
	OwnerID  *int
	PaidOnly bool
}

type Repository interface {
	Insert(ctx context.Context, customerID *int, serviceType pricing.ServiceType, hasLoyaltyCard bool) (int, error)
	GetByID(ctx context.Context, id int) (*Order, error)
	List(ctx context.Context, opts ListOptions) ([]Order, error)
	AddItem(ctx context.Context, orderID, menuItemID int) error
	// RemoveItem deletes a single occurrence and reports whether one existed.
	RemoveItem(ctx context.Context, orderID, menuItemID int) (bool, error)
	SetPaidAndDiscount(ctx context.Context, orderID int, paid, discounted bool) error
	Delete(ctx context.Context, orderID int) error

	RevenueByUser(ctx context.Context) ([]RevenueRow, error)
	TopItems(ctx context.Context, limit int) ([]TopItemRow, error)
	PaidStats(ctx context.Context) (Stats, error)
	DiscountUsage(ctx context.Context) (DiscountUsage, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, customerID *int, serviceType pricing.ServiceType, hasLoyaltyCard bool) (int, error) {
	var id int
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO orders (customer_id, service_type, has_loyalty_card) VALUES ($1, $2, $3) RETURNING id",
		customerID, int(serviceType), hasLoyaltyCard,
	).Scan(&id)
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to insert order", zap.Error(err))
		return 0, err
	}
	return id, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Order, error) {
	var (
		o  Order
		st int
	)
	err := r.db.QueryRowContext(ctx,
		"SELECT id, customer_id, service_type, has_loyalty_card, is_discounted, paid, created_at FROM orders WHERE id = $1",
		id,
	).Scan(&o.ID, &o.CustomerID, &st, &o.HasLoyaltyCard, &o.Discounted, &o.Paid, &o.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	o.ServiceType = pricing.ServiceType(st)

	items, err := r.itemsForOrder(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *repository) List(ctx context.Context, opts ListOptions) ([]Order, error) {
	query := "SELECT id, customer_id, service_type, has_loyalty_card, is_discounted, paid, created_at FROM orders"
	var args []interface{}

	where := ""
	if opts.OwnerID != nil {
		where = " WHERE customer_id = $1"
		args = append(args, *opts.OwnerID)
	}
	if opts.PaidOnly {
		if where == "" {
			where = " WHERE paid"
		} else {
			where += " AND paid"
		}
	}
	query += where + " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to list orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		var (
			o  Order
			st int
		)
		if err := rows.Scan(&o.ID, &o.CustomerID, &st, &o.HasLoyaltyCard, &o.Discounted, &o.Paid, &o.CreatedAt); err != nil {
			return nil, err
		}
		o.ServiceType = pricing.ServiceType(st)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := r.itemsForOrder(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (r *repository) itemsForOrder(ctx context.Context, orderID int) ([]LineItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT oi.id, oi.menu_item_id, m.name, m.price
		 FROM order_items oi
		 JOIN menu m ON m.id = oi.menu_item_id
		 WHERE oi.order_id = $1
		 ORDER BY oi.id`,
		orderID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []LineItem
	for rows.Next() {
		var it LineItem
		if err := rows.Scan(&it.ID, &it.MenuItemID, &it.Name, &it.Price); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *repository) AddItem(ctx context.Context, orderID, menuItemID int) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO order_items (order_id, menu_item_id) VALUES ($1, $2)",
		orderID, menuItemID,
	)
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to insert order item",
			zap.Int("order_id", orderID),
			zap.Int("menu_item_id", menuItemID),
			zap.Error(err),
		)
	}
	return err
}

func (r *repository) RemoveItem(ctx context.Context, orderID, menuItemID int) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM order_items WHERE id = (
			SELECT id FROM order_items
			WHERE order_id = $1 AND menu_item_id = $2
			ORDER BY id LIMIT 1
		)`,
		orderID, menuItemID,
	)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *repository) SetPaidAndDiscount(ctx context.Context, orderID int, paid, discounted bool) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE orders SET paid = $1, is_discounted = $2 WHERE id = $3",
		paid, discounted, orderID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, orderID int) error {
	// line items cascade via the FK
	res, err := r.db.ExecContext(ctx, "DELETE FROM orders WHERE id = $1", orderID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}
