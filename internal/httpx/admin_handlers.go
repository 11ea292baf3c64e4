package httpx

import (
	"errors"
	"net/http"

	"github.com/ariefcatur/go-storefront/internal/shop"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) adminLoginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "admin_login.html", "Admin login", nil)
}

func (h *Handler) adminLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	err := h.Auth.AdminLogin(r.Context(), sess(r), r.PostForm.Get("username"), r.PostForm.Get("password"))
	if errors.Is(err, shop.ErrAuth) {
		h.render(w, r, http.StatusOK, "admin_login.html", "Admin login", map[string]any{
			"Error": "Invalid username or password",
		})
		return
	}
	if err != nil {
		serverError(w, r, err)
		return
	}
	if _, err := h.renewSession(w, r); err != nil {
		serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/admin/dashboard", http.StatusFound)
}

func (h *Handler) adminLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.Auth.AdminLogout(r.Context(), sess(r)); err != nil {
		serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.Admin.Dashboard(r.Context())
	if err != nil {
		serverError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "dashboard.html", "Dashboard", map[string]any{"Dashboard": d})
}

func (h *Handler) products(w http.ResponseWriter, r *http.Request) {
	ps, err := h.Admin.ListProducts(r.Context())
	if err != nil {
		serverError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "products.html", "Products", map[string]any{"Products": ps})
}

func (h *Handler) addProductForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "product_form.html", "Add product", map[string]any{
		"Action":  "/admin/product/add",
		"Product": shop.Product{},
	})
}

func (h *Handler) addProduct(w http.ResponseWriter, r *http.Request) {
	form, ok := productForm(w, r)
	if !ok {
		return
	}
	_, err := h.Admin.CreateProduct(r.Context(), form)
	if msg, ok := notice(err); ok {
		redirectWithNotice(w, r, "/admin/product/add", msg)
		return
	}
	if err != nil {
		serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/admin/products", http.StatusFound)
}

func (h *Handler) editProductForm(w http.ResponseWriter, r *http.Request) {
	id, err := shop.ParseID(chi.URLParam(r, "id"))
	var p shop.Product
	if err == nil {
		p, err = h.Admin.Product(r.Context(), id)
	}
	if errors.Is(err, shop.ErrNotFound) {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}
	if err != nil {
		serverError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "product_form.html", "Edit product", map[string]any{
		"Action":  r.URL.Path,
		"Product": p,
	})
}

func (h *Handler) editProduct(w http.ResponseWriter, r *http.Request) {
	id, err := shop.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}
	form, ok := productForm(w, r)
	if !ok {
		return
	}
	_, err = h.Admin.UpdateProduct(r.Context(), id, form)
	if msg, ok := notice(err); ok {
		redirectWithNotice(w, r, r.URL.Path, msg)
		return
	}
	if errors.Is(err, shop.ErrNotFound) {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}
	if err != nil {
		serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/admin/products", http.StatusFound)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if id, err := shop.ParseID(chi.URLParam(r, "id")); err == nil {
		if err := h.Admin.DeleteProduct(r.Context(), id); err != nil {
			serverError(w, r, err)
			return
		}
	}
	http.Redirect(w, r, "/admin/products", http.StatusFound)
}

func productForm(w http.ResponseWriter, r *http.Request) (shop.ProductForm, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return shop.ProductForm{}, false
	}
	return shop.ProductForm{
		Name:        r.PostForm.Get("name"),
		Description: r.PostForm.Get("description"),
		Price:       r.PostForm.Get("price"),
		Category:    r.PostForm.Get("category"),
		ImageURL:    r.PostForm.Get("image_url"),
	}, true
}
