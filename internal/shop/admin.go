package shop

import "context"

// Admin backs the product management and analytics screens. Callers are
// expected to have checked the admin flag.
type Admin struct {
	Products ProductStore
	Stats    StatsStore
}

func (a *Admin) ListProducts(ctx context.Context) ([]Product, error) {
	return a.Products.List(ctx)
}

func (a *Admin) Product(ctx context.Context, id int64) (Product, error) {
	return a.Products.Get(ctx, id)
}

func (a *Admin) CreateProduct(ctx context.Context, form ProductForm) (Product, error) {
	p, err := form.Parse()
	if err != nil {
		return Product{}, err
	}
	if err := a.Products.Create(ctx, &p); err != nil {
		return Product{}, err
	}
	return p, nil
}

// UpdateProduct keeps the stored rating; ErrNotFound when id is unknown.
func (a *Admin) UpdateProduct(ctx context.Context, id int64, form ProductForm) (Product, error) {
	p, err := form.Parse()
	if err != nil {
		return Product{}, err
	}
	p.ID = id
	if err := a.Products.Update(ctx, p); err != nil {
		return Product{}, err
	}
	return p, nil
}

// DeleteProduct is unconditional: order lines keep their captured price and quantity.
func (a *Admin) DeleteProduct(ctx context.Context, id int64) error {
	return a.Products.Delete(ctx, id)
}

func (a *Admin) Dashboard(ctx context.Context) (Dashboard, error) {
	return a.Stats.Dashboard(ctx)
}
