package httpx

import (
	"bytes"
	"embed"
	"html/template"
	"log"
	"net/http"
	"path"

	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = []string{
	"index.html", "signup.html", "login.html", "my_orders.html",
	"cart.html", "wishlist.html", "checkout.html", "order_success.html",
	"admin_login.html", "dashboard.html", "products.html", "product_form.html",
}

var funcs = template.FuncMap{
	"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
	"pct":   func(f float64) string { return decimal.NewFromFloat(f * 100).StringFixed(1) },
}

type views struct {
	byName map[string]*template.Template
}

func loadViews() *views {
	v := &views{byName: make(map[string]*template.Template, len(pages))}
	for _, p := range pages {
		v.byName[p] = template.Must(template.New(p).Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html", path.Join("templates", p)))
	}
	return v
}

// page is what every template receives; Data holds the view-specific values.
type page struct {
	Title    string
	Flash    string
	UserName string
	Admin    bool
	Data     map[string]any
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name, title string, data map[string]any) {
	ctx := r.Context()
	s := sess(r)
	p := page{Title: title, Data: data}
	var err error
	if p.Flash, err = s.PopFlash(ctx); err != nil {
		serverError(w, r, err)
		return
	}
	if _, p.UserName, err = h.Auth.CurrentUser(ctx, s); err != nil {
		serverError(w, r, err)
		return
	}
	if p.Admin, err = h.Auth.IsAdmin(ctx, s); err != nil {
		serverError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := h.views.byName[name].ExecuteTemplate(&buf, "layout", p); err != nil {
		serverError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("write %s: %v", name, err)
	}
}
