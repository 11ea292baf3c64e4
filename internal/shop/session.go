package shop

import "context"

// Session is the per-visitor state the services read and mutate.
// *session.Session satisfies it.
type Session interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, v any) error
	Delete(ctx context.Context, keys ...string) error
}

const (
	SessionCart      = "cart"
	SessionWishlist  = "wishlist"
	SessionUserEmail = "user_email"
	SessionUserName  = "user_name"
	SessionAdmin     = "is_admin"
	SessionOrders    = "placed_orders" // ids of orders placed from this session
)
