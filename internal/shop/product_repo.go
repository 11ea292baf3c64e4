package shop

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var productColumns = []string{
	"id", "name", "description", "price", "COALESCE(category, '')", "image_url", "rating",
}

type ProductRepo struct{ DB DB }

func (r *ProductRepo) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT DISTINCT category FROM products
		WHERE category IS NOT NULL AND TRIM(category) <> ''
		ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Search composes only the predicates whose filter is non-empty.
func (r *ProductRepo) Search(ctx context.Context, query, category string) ([]Product, error) {
	q := psql.Select(productColumns...).From("products").OrderBy("id")
	if query != "" {
		pat := "%" + escapeLike(query) + "%"
		q = q.Where(sq.Or{sq.ILike{"name": pat}, sq.ILike{"description": pat}})
	}
	if category != "" {
		q = q.Where(sq.Eq{"category": category})
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build search: %w", err)
	}
	return r.list(ctx, sql, args...)
}

func (r *ProductRepo) List(ctx context.Context) ([]Product, error) {
	sql, args, err := psql.Select(productColumns...).From("products").OrderBy("id").ToSql()
	if err != nil {
		return nil, err
	}
	return r.list(ctx, sql, args...)
}

func (r *ProductRepo) Get(ctx context.Context, id int64) (Product, error) {
	sql, args, err := psql.Select(productColumns...).From("products").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return Product{}, err
	}
	p, err := scanProduct(r.DB.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, fmt.Errorf("get product %d: %w", id, err)
	}
	return p, nil
}

func (r *ProductRepo) Create(ctx context.Context, p *Product) error {
	err := r.DB.QueryRow(ctx, `
		INSERT INTO products(name, description, price, category, image_url)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5)
		RETURNING id`,
		p.Name, p.Description, p.Price, p.Category, p.ImageURL,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

func (r *ProductRepo) Update(ctx context.Context, p Product) error {
	ct, err := r.DB.Exec(ctx, `
		UPDATE products
		SET name = $2, description = $3, price = $4, category = NULLIF($5, ''), image_url = $6
		WHERE id = $1`,
		p.ID, p.Name, p.Description, p.Price, p.Category, p.ImageURL,
	)
	if err != nil {
		return fmt.Errorf("update product %d: %w", p.ID, err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.DB.Exec(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	return nil
}

func (r *ProductRepo) SetRating(ctx context.Context, id int64, rating float64) error {
	ct, err := r.DB.Exec(ctx, `UPDATE products SET rating = $2 WHERE id = $1`, id, rating)
	if err != nil {
		return fmt.Errorf("rate product %d: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProductRepo) list(ctx context.Context, sql string, args ...any) ([]Product, error) {
	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.ImageURL, &p.Rating)
	return p, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes query match literally inside a LIKE pattern.
func escapeLike(query string) string {
	return likeEscaper.Replace(query)
}
