package shop

import (
	"context"
	"strings"
)

type Catalog struct {
	Products ProductStore
}

func (c *Catalog) Categories(ctx context.Context) ([]string, error) {
	return c.Products.Categories(ctx)
}

// Search AND-combines the filters that are present: a case-insensitive substring
// match on name or description, and an exact category.
func (c *Catalog) Search(ctx context.Context, query, category string) ([]Product, error) {
	return c.Products.Search(ctx, strings.TrimSpace(query), strings.TrimSpace(category))
}

func (c *Catalog) Product(ctx context.Context, id int64) (Product, error) {
	return c.Products.Get(ctx, id)
}
