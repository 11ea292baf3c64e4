package httpx

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/ariefcatur/go-storefront/internal/shop"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")

	products, err := h.Catalog.Search(ctx, q, category)
	if err != nil {
		serverError(w, r, err)
		return
	}
	categories, err := h.Catalog.Categories(ctx)
	if err != nil {
		serverError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "index.html", "Shop", map[string]any{
		"Products":   products,
		"Categories": categories,
		"Query":      q,
		"Category":   category,
	})
}

func (h *Handler) cart(w http.ResponseWriter, r *http.Request) {
	items, err := h.Cart.Items(r.Context(), sess(r))
	if err != nil {
		serverError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "cart.html", "Cart", map[string]any{
		"Items": items,
		"Total": shop.Total(items),
	})
}

func (h *Handler) wishlist(w http.ResponseWriter, r *http.Request) {
	items, err := h.Cart.Wishlist(r.Context(), sess(r))
	if err != nil {
		serverError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "wishlist.html", "Wishlist", map[string]any{"Items": items})
}

type cartOp func(ctx context.Context, s shop.Session, productID int64) error

// cartAction applies op to the product named in the path and redirects to target.
// An id that is not a product id leaves the session untouched.
func (h *Handler) cartAction(op cartOp, target string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := shop.ParseID(chi.URLParam(r, "id"))
		if err == nil {
			if err := op(r.Context(), sess(r), id); err != nil {
				serverError(w, r, err)
				return
			}
		}
		http.Redirect(w, r, target, http.StatusFound)
	}
}

func (h *Handler) checkoutForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	items, err := h.Cart.Items(ctx, sess(r))
	if err != nil {
		serverError(w, r, err)
		return
	}
	if len(items) == 0 {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	email, name, err := h.Auth.CurrentUser(ctx, sess(r))
	if err != nil {
		serverError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "checkout.html", "Checkout", map[string]any{
		"Items": items,
		"Total": shop.Total(items),
		"Name":  name,
		"Email": email,
	})
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	id, err := h.Checkout.Place(r.Context(), sess(r), shop.CheckoutForm{
		Name:    r.PostForm.Get("name"),
		Email:   r.PostForm.Get("email"),
		Address: r.PostForm.Get("address"),
	})
	if errors.Is(err, shop.ErrEmptyCart) {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	if msg, ok := notice(err); ok {
		redirectWithNotice(w, r, "/checkout", msg)
		return
	}
	if err != nil {
		serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/order_success/"+strconv.FormatInt(id, 10), http.StatusFound)
}

// orderSuccess shows the full summary only to the session that placed the order.
func (h *Handler) orderSuccess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := shop.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	data := map[string]any{"OrderID": id}
	placed, err := h.Checkout.PlacedHere(ctx, sess(r), id)
	if err != nil {
		serverError(w, r, err)
		return
	}
	if placed {
		order, err := h.Checkout.Order(ctx, id)
		if errors.Is(err, shop.ErrNotFound) {
			http.Error(w, "Order not found", http.StatusNotFound)
			return
		}
		if err != nil {
			serverError(w, r, err)
			return
		}
		data["Order"] = &order
	}
	h.render(w, r, http.StatusOK, "order_success.html", "Order placed", data)
}

func (h *Handler) rate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	id, err := shop.ParseID(chi.URLParam(r, "id"))
	if err == nil {
		err = h.Checkout.Rate(r.Context(), id, r.PostForm.Get("rating"))
	}
	if msg, ok := notice(err); ok {
		redirectWithNotice(w, r, "/", msg)
		return
	}
	if err != nil && !errors.Is(err, shop.ErrNotFound) {
		serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handler) myOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	email, _, err := h.Auth.CurrentUser(ctx, sess(r))
	if err != nil {
		serverError(w, r, err)
		return
	}
	orders, err := h.Checkout.OrdersFor(ctx, email)
	if err != nil {
		serverError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "my_orders.html", "My orders", map[string]any{"Orders": orders})
}
