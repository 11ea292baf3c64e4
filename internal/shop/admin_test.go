package shop

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedStats struct{ d Dashboard }

func (f fixedStats) Dashboard(context.Context) (Dashboard, error) { return f.d, nil }

func TestProductFormParse(t *testing.T) {
	p, err := ProductForm{Name: " Mug ", Price: "12.50", Category: " Kitchen "}.Parse()
	require.NoError(t, err)
	assert.Equal(t, "Mug", p.Name)
	assert.Equal(t, "Kitchen", p.Category)
	assert.True(t, p.Price.Equal(dec("12.5")))

	p, err = ProductForm{Name: "Free sample", Price: "0"}.Parse()
	require.NoError(t, err)
	assert.True(t, p.Price.IsZero())

	p, err = ProductForm{Name: "Mug", Price: "9999999999.99"}.Parse()
	require.NoError(t, err)
	assert.True(t, p.Price.Equal(dec("9999999999.99")))

	p, err = ProductForm{Name: "Mug", Price: "4.500"}.Parse()
	require.NoError(t, err)
	assert.True(t, p.Price.Equal(dec("4.5")))

	for _, price := range []string{"", "abc", "-1", "1,5", "1e20", "12345678901", "10000000000", "0.005"} {
		_, err := ProductForm{Name: "Mug", Price: price}.Parse()
		assert.True(t, IsValidation(err), "price %q: got %v", price, err)
	}

	_, err = ProductForm{Price: "1"}.Parse()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "name", ve.Field)
}

func TestAdminProductCRUD(t *testing.T) {
	ctx := context.Background()
	products := newMemProducts()
	admin := &Admin{Products: products}

	p, err := admin.CreateProduct(ctx, ProductForm{Name: "Mug", Price: "8"})
	require.NoError(t, err)
	assert.NotZero(t, p.ID)

	_, err = admin.CreateProduct(ctx, ProductForm{Name: "Bad", Price: "-3"})
	assert.True(t, IsValidation(err))

	require.NoError(t, products.SetRating(ctx, p.ID, 4))
	updated, err := admin.UpdateProduct(ctx, p.ID, ProductForm{Name: "Big Mug", Price: "9"})
	require.NoError(t, err)
	assert.Equal(t, p.ID, updated.ID)

	got, err := admin.Product(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Big Mug", got.Name)
	require.NotNil(t, got.Rating)

	_, err = admin.UpdateProduct(ctx, 404, ProductForm{Name: "Ghost", Price: "1"})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, admin.DeleteProduct(ctx, p.ID))
	require.NoError(t, admin.DeleteProduct(ctx, p.ID))
	list, err := admin.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDeletingProductKeepsHistoricalLines(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture()
	admin := &Admin{Products: f.products}
	sess := newMemSession()

	require.NoError(t, f.cart.Add(ctx, sess, 1))
	require.NoError(t, f.cart.Add(ctx, sess, 1))
	id, err := f.checkout.Place(ctx, sess, CheckoutForm{Name: "A", Email: "a@example.com"})
	require.NoError(t, err)

	require.NoError(t, admin.DeleteProduct(ctx, 1))

	o, err := f.checkout.Order(ctx, id)
	require.NoError(t, err)
	require.Len(t, o.Items, 1)
	assert.Equal(t, 2, o.Items[0].Quantity)
	assert.True(t, o.Items[0].Price.Equal(dec("10")))
}

func TestDashboardShare(t *testing.T) {
	admin := &Admin{Stats: fixedStats{Dashboard{TotalRevenue: dec("40"), SalesByCategory: []CategorySales{{Category: "Tops", Total: dec("10")}}}}}
	d, err := admin.Dashboard(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 0.25, d.Share(d.SalesByCategory[0].Total), 1e-9)

	assert.Zero(t, Dashboard{}.Share(dec("5")))
}
