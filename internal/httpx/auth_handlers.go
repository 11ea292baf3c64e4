package httpx

import (
	"net/http"

	"github.com/ariefcatur/go-storefront/internal/shop"
)

func (h *Handler) signupForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "signup.html", "Sign up", nil)
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	_, err := h.Auth.Signup(r.Context(), shop.SignupForm{
		Name:            r.PostForm.Get("name"),
		Email:           r.PostForm.Get("email"),
		Password:        r.PostForm.Get("password"),
		ConfirmPassword: r.PostForm.Get("confirm_password"),
		Address:         r.PostForm.Get("address"),
	})
	if msg, ok := notice(err); ok {
		redirectWithNotice(w, r, "/signup", msg)
		return
	}
	if err != nil {
		serverError(w, r, err)
		return
	}
	redirectWithNotice(w, r, "/login", "Account created, please log in")
}

func (h *Handler) loginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "login.html", "Log in", nil)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	u, err := h.Auth.Login(r.Context(), sess(r), r.PostForm.Get("email"), r.PostForm.Get("password"))
	if msg, ok := notice(err); ok {
		redirectWithNotice(w, r, "/login", msg)
		return
	}
	if err != nil {
		serverError(w, r, err)
		return
	}
	if r, err = h.renewSession(w, r); err != nil {
		serverError(w, r, err)
		return
	}
	redirectWithNotice(w, r, "/", "Welcome back, "+u.Name)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Auth.Logout(r.Context(), sess(r)); err != nil {
		serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}
