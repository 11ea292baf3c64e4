package httpx

import (
	"errors"
	"log"
	"net/http"

	"github.com/ariefcatur/go-storefront/internal/session"
	"github.com/ariefcatur/go-storefront/internal/shop"
	"github.com/go-chi/chi/v5"
)

// SessionRenewer reissues the session id; *session.Manager satisfies it.
type SessionRenewer interface {
	Renew(w http.ResponseWriter, r *http.Request, old *session.Session) (*session.Session, error)
}

type Handler struct {
	Catalog  *shop.Catalog
	Cart     *shop.Cart
	Checkout *shop.Checkout
	Auth     *shop.Auth
	Admin    *shop.Admin
	Sessions SessionRenewer

	views *views
}

func NewHandler(catalog *shop.Catalog, cart *shop.Cart, checkout *shop.Checkout, auth *shop.Auth, admin *shop.Admin, sessions SessionRenewer) *Handler {
	return &Handler{
		Catalog:  catalog,
		Cart:     cart,
		Checkout: checkout,
		Auth:     auth,
		Admin:    admin,
		Sessions: sessions,
		views:    loadViews(),
	}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.home)
	r.Get("/signup", h.signupForm)
	r.Post("/signup", h.signup)
	r.Get("/login", h.loginForm)
	r.Post("/login", h.login)
	r.Get("/logout", h.logout)
	r.With(h.requireLogin).Get("/my_orders", h.myOrders)

	r.Get("/cart", h.cart)
	r.Get("/add_to_cart/{id}", h.cartAction(h.Cart.Add, "/cart"))
	r.Get("/remove_from_cart/{id}", h.cartAction(h.Cart.Remove, "/cart"))
	r.Get("/cart/increase/{id}", h.cartAction(h.Cart.Increase, "/cart"))
	r.Get("/cart/decrease/{id}", h.cartAction(h.Cart.Decrease, "/cart"))
	r.Get("/wishlist", h.wishlist)
	r.Get("/add_to_wishlist/{id}", h.cartAction(h.Cart.AddToWishlist, "/wishlist"))
	r.Get("/remove_from_wishlist/{id}", h.cartAction(h.Cart.RemoveFromWishlist, "/wishlist"))

	r.Get("/checkout", h.checkoutForm)
	r.Post("/checkout", h.checkout)
	r.Get("/order_success/{id}", h.orderSuccess)
	r.Post("/rate/{id}", h.rate)

	r.Get("/admin/login", h.adminLoginForm)
	r.Post("/admin/login", h.adminLogin)
	r.Get("/admin/logout", h.adminLogout)
	r.Group(func(r chi.Router) {
		r.Use(h.requireAdmin)
		r.Get("/admin/dashboard", h.dashboard)
		r.Get("/admin/products", h.products)
		r.Get("/admin/product/add", h.addProductForm)
		r.Post("/admin/product/add", h.addProduct)
		r.Get("/admin/product/edit/{id}", h.editProductForm)
		r.Post("/admin/product/edit/{id}", h.editProduct)
		r.Get("/admin/product/delete/{id}", h.deleteProduct)
	})
}

func sess(r *http.Request) *session.Session {
	return session.FromContext(r.Context())
}

func (h *Handler) requireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email, _, err := h.Auth.CurrentUser(r.Context(), sess(r))
		if err != nil {
			serverError(w, r, err)
			return
		}
		if email == "" {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok, err := h.Auth.IsAdmin(r.Context(), sess(r))
		if err != nil {
			serverError(w, r, err)
			return
		}
		if !ok {
			http.Redirect(w, r, "/admin/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// renewSession moves the visitor onto a fresh session id after a login, so an id
// planted before authentication is worthless afterwards.
func (h *Handler) renewSession(w http.ResponseWriter, r *http.Request) (*http.Request, error) {
	s, err := h.Sessions.Renew(w, r, sess(r))
	if err != nil {
		return r, err
	}
	return r.WithContext(session.NewContext(r.Context(), s)), nil
}

// redirectWithNotice flashes msg and sends the visitor to target.
func redirectWithNotice(w http.ResponseWriter, r *http.Request, target, msg string) {
	if err := sess(r).Flash(r.Context(), msg); err != nil {
		log.Printf("flash: %v", err)
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// notice turns an expected user-facing error into a message; ok is false for anything else.
func notice(err error) (msg string, ok bool) {
	var ve *shop.ValidationError
	switch {
	case errors.As(err, &ve):
		return ve.Msg, true
	case errors.Is(err, shop.ErrConflict):
		return "An account with that email already exists", true
	case errors.Is(err, shop.ErrAuth):
		return "Invalid email or password", true
	}
	return "", false
}

func serverError(w http.ResponseWriter, r *http.Request, err error) {
	log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}
