package shop

import (
	"context"
	"log"
	"time"
)

// Publisher delivers encoded events; the kafka producer satisfies it.
type Publisher interface {
	PublishEvent(key []byte, eventType string, value []byte)
}

type Checkout struct {
	Cart     *Cart
	Orders   OrderStore
	Products ProductStore
	Events   Publisher // optional
	Producer string
	Now      func() time.Time
}

// Place turns the session cart into a persisted order and empties the cart.
// The total is computed here from the cart snapshot, never taken from the client.
func (c *Checkout) Place(ctx context.Context, sess Session, form CheckoutForm) (int64, error) {
	items, err := c.Cart.Items(ctx, sess)
	if err != nil {
		return 0, err
	}
	if len(items) == 0 {
		return 0, ErrEmptyCart
	}
	form.normalize()
	if err := check(&form); err != nil {
		return 0, err
	}

	order := Order{
		CustomerName: form.Name,
		Email:        form.Email,
		Address:      form.Address,
		TotalAmount:  Total(items),
		CreatedAt:    c.now(),
		Items:        make([]OrderItem, 0, len(items)),
	}
	for _, it := range items {
		order.Items = append(order.Items, OrderItem{
			ProductID:   it.ProductID,
			ProductName: it.Name,
			Quantity:    it.Quantity,
			Price:       it.Price,
		})
	}
	if err := c.Orders.Create(ctx, &order); err != nil {
		return 0, err
	}

	// the order is committed; a stale cart must not turn this into a failed checkout
	if err := c.Cart.Clear(ctx, sess); err != nil {
		log.Printf("checkout: clear cart for order %d: %v", order.ID, err)
	}
	if err := c.remember(ctx, sess, order.ID); err != nil {
		log.Printf("checkout: remember order %d: %v", order.ID, err)
	}
	c.publish(order)
	return order.ID, nil
}

func (c *Checkout) remember(ctx context.Context, sess Session, id int64) error {
	var ids []int64
	if _, err := sess.GetJSON(ctx, SessionOrders, &ids); err != nil {
		return err
	}
	return sess.SetJSON(ctx, SessionOrders, append(ids, id))
}

// PlacedHere reports whether order id was placed from this session.
func (c *Checkout) PlacedHere(ctx context.Context, sess Session, id int64) (bool, error) {
	var ids []int64
	if _, err := sess.GetJSON(ctx, SessionOrders, &ids); err != nil {
		return false, err
	}
	for _, placed := range ids {
		if placed == id {
			return true, nil
		}
	}
	return false, nil
}

func (c *Checkout) publish(o Order) {
	if c.Events == nil {
		return
	}
	b, err := NewOrderPlaced(c.Producer, o)
	if err != nil {
		log.Printf("checkout: encode OrderPlaced %d: %v", o.ID, err)
		return
	}
	c.Events.PublishEvent(PartitionKey(o.ID), EventOrderPlaced, b)
}

// Rate overwrites the product's rating with the submitted value. No averaging.
func (c *Checkout) Rate(ctx context.Context, productID int64, raw string) error {
	v, err := ParseRating(raw)
	if err != nil {
		return err
	}
	return c.Products.SetRating(ctx, productID, v)
}

func (c *Checkout) Order(ctx context.Context, id int64) (Order, error) {
	return c.Orders.Get(ctx, id)
}

// OrdersFor lists the orders placed under email, newest first.
func (c *Checkout) OrdersFor(ctx context.Context, email string) ([]Order, error) {
	return c.Orders.ByEmail(ctx, email)
}

func (c *Checkout) now() time.Time {
	if c.Now != nil {
		return c.Now().UTC()
	}
	return time.Now().UTC()
}
