package shop

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// Cart mutates the cart and wishlist held in the visitor's session.
// Acting on a product id that does not exist is a silent no-op.
type Cart struct {
	Products ProductStore
}

func (c *Cart) Items(ctx context.Context, sess Session) ([]CartEntry, error) {
	var items []CartEntry
	if _, err := sess.GetJSON(ctx, SessionCart, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Cart) Wishlist(ctx context.Context, sess Session) ([]WishlistEntry, error) {
	var items []WishlistEntry
	if _, err := sess.GetJSON(ctx, SessionWishlist, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Cart) Add(ctx context.Context, sess Session, productID int64) error {
	p, err := c.Products.Get(ctx, productID)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return c.update(ctx, sess, func(items []CartEntry) []CartEntry {
		return addEntry(items, p)
	})
}

func (c *Cart) Remove(ctx context.Context, sess Session, productID int64) error {
	return c.update(ctx, sess, func(items []CartEntry) []CartEntry {
		return removeEntry(items, productID)
	})
}

func (c *Cart) Increase(ctx context.Context, sess Session, productID int64) error {
	return c.update(ctx, sess, func(items []CartEntry) []CartEntry {
		if i := indexOf(items, productID); i >= 0 {
			items[i].Quantity++
		}
		return items
	})
}

// Decrease drops the entry instead of letting its quantity reach zero.
func (c *Cart) Decrease(ctx context.Context, sess Session, productID int64) error {
	return c.update(ctx, sess, func(items []CartEntry) []CartEntry {
		i := indexOf(items, productID)
		if i < 0 {
			return items
		}
		if items[i].Quantity <= 1 {
			return removeEntry(items, productID)
		}
		items[i].Quantity--
		return items
	})
}

func (c *Cart) Clear(ctx context.Context, sess Session) error {
	return sess.Delete(ctx, SessionCart)
}

func (c *Cart) AddToWishlist(ctx context.Context, sess Session, productID int64) error {
	p, err := c.Products.Get(ctx, productID)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	items, err := c.Wishlist(ctx, sess)
	if err != nil {
		return err
	}
	for _, it := range items {
		if it.ProductID == productID {
			return nil
		}
	}
	items = append(items, WishlistEntry{
		ProductID:   p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		ImageURL:    p.ImageURL,
	})
	return sess.SetJSON(ctx, SessionWishlist, items)
}

func (c *Cart) RemoveFromWishlist(ctx context.Context, sess Session, productID int64) error {
	items, err := c.Wishlist(ctx, sess)
	if err != nil {
		return err
	}
	out := items[:0]
	for _, it := range items {
		if it.ProductID != productID {
			out = append(out, it)
		}
	}
	if len(out) == len(items) {
		return nil
	}
	return sess.SetJSON(ctx, SessionWishlist, out)
}

func (c *Cart) update(ctx context.Context, sess Session, fn func([]CartEntry) []CartEntry) error {
	items, err := c.Items(ctx, sess)
	if err != nil {
		return err
	}
	return sess.SetJSON(ctx, SessionCart, fn(items))
}

// Total is the sum of price x quantity; zero for an empty cart.
func Total(items []CartEntry) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total
}

func indexOf(items []CartEntry, productID int64) int {
	for i, it := range items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}

func addEntry(items []CartEntry, p Product) []CartEntry {
	if i := indexOf(items, p.ID); i >= 0 {
		items[i].Quantity++
		return items
	}
	return append(items, CartEntry{
		ProductID:   p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		ImageURL:    p.ImageURL,
		Quantity:    1,
	})
}

func removeEntry(items []CartEntry, productID int64) []CartEntry {
	i := indexOf(items, productID)
	if i < 0 {
		return items
	}
	return append(items[:i], items[i+1:]...)
}
