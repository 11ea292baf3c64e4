package shop

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

type OrderRepo struct{ DB DB }

// Create inserts the order and its lines in one transaction. If any line fails
// nothing from this attempt is committed.
func (r *OrderRepo) Create(ctx context.Context, o *Order) error {
	if len(o.Items) == 0 {
		return ErrEmptyCart
	}
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin order tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, `
		INSERT INTO orders(customer_name, email, address, total_amount, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		o.CustomerName, o.Email, o.Address, o.TotalAmount, o.CreatedAt,
	).Scan(&o.ID)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i := range o.Items {
		it := &o.Items[i]
		it.OrderID = o.ID
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items(order_id, product_id, quantity, price)
			VALUES ($1, $2, $3, $4)`,
			o.ID, it.ProductID, it.Quantity, it.Price,
		); err != nil {
			return fmt.Errorf("insert order item %d: %w", it.ProductID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit order: %w", err)
	}
	return nil
}

func (r *OrderRepo) Get(ctx context.Context, id int64) (Order, error) {
	var o Order
	err := r.DB.QueryRow(ctx, `
		SELECT id, customer_name, email, address, total_amount, created_at
		FROM orders WHERE id = $1`, id,
	).Scan(&o.ID, &o.CustomerName, &o.Email, &o.Address, &o.TotalAmount, &o.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, fmt.Errorf("get order %d: %w", id, err)
	}
	items, err := r.items(ctx, []int64{id})
	if err != nil {
		return Order{}, err
	}
	o.Items = items[id]
	return o, nil
}

func (r *OrderRepo) ByEmail(ctx context.Context, email string) ([]Order, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, customer_name, email, address, total_amount, created_at
		FROM orders WHERE email = $1
		ORDER BY created_at DESC, id DESC`, email)
	if err != nil {
		return nil, fmt.Errorf("orders by email: %w", err)
	}
	defer rows.Close()

	var out []Order
	var ids []int64
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.CustomerName, &o.Email, &o.Address, &o.TotalAmount, &o.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return out, nil
	}

	items, err := r.items(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Items = items[out[i].ID]
	}
	return out, nil
}

// items loads the lines of the given orders. Lines whose product was deleted keep
// their captured values and show an empty name.
func (r *OrderRepo) items(ctx context.Context, orderIDs []int64) (map[int64][]OrderItem, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, COALESCE(p.name, ''), oi.quantity, oi.price
		FROM order_items oi
		LEFT JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.id`, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("order items: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]OrderItem, len(orderIDs))
	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Quantity, &it.Price); err != nil {
			return nil, err
		}
		out[it.OrderID] = append(out[it.OrderID], it)
	}
	return out, rows.Err()
}
