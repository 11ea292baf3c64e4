package shop

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

type StatsRepo struct{ DB DB }

// Dashboard aggregates current catalog and order totals. Empty tables yield zeros.
func (r *StatsRepo) Dashboard(ctx context.Context) (Dashboard, error) {
	d := Dashboard{SalesByCategory: []CategorySales{}}

	if err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(price), 0) FROM products`,
	).Scan(&d.TotalProducts, &d.TotalValue); err != nil {
		return Dashboard{}, fmt.Errorf("product totals: %w", err)
	}
	if err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(total_amount), 0) FROM orders`,
	).Scan(&d.TotalOrders, &d.TotalRevenue); err != nil {
		return Dashboard{}, fmt.Errorf("order totals: %w", err)
	}

	rows, err := r.DB.Query(ctx, `
		SELECT COALESCE(NULLIF(TRIM(p.category), ''), 'Uncategorized') AS category,
		       SUM(oi.quantity * oi.price) AS total_sales
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		GROUP BY 1
		ORDER BY 1`)
	if err != nil {
		return Dashboard{}, fmt.Errorf("sales by category: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var cs CategorySales
		if err := rows.Scan(&cs.Category, &cs.Total); err != nil {
			return Dashboard{}, err
		}
		d.SalesByCategory = append(d.SalesByCategory, cs)
	}
	if err := rows.Err(); err != nil {
		return Dashboard{}, err
	}
	return d, nil
}

// Share is the fraction of revenue a category contributed, for the chart bars.
func (d Dashboard) Share(total decimal.Decimal) float64 {
	if d.TotalRevenue.IsZero() {
		return 0
	}
	f, _ := total.Div(d.TotalRevenue).Float64()
	return f
}
