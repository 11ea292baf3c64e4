package httpx

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/ariefcatur/go-storefront/internal/shop"
)

type memProducts struct {
	mu   sync.Mutex
	next int64
	byID map[int64]shop.Product
}

func newMemProducts(ps ...shop.Product) *memProducts {
	m := &memProducts{byID: map[int64]shop.Product{}}
	for _, p := range ps {
		m.next++
		p.ID = m.next
		m.byID[p.ID] = p
	}
	return m
}

func (m *memProducts) all() []shop.Product {
	out := make([]shop.Product, 0, len(m.byID))
	for _, p := range m.byID {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memProducts) Categories(context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := map[string]bool{}
	var out []string
	for _, p := range m.all() {
		if c := strings.TrimSpace(p.Category); c != "" && !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memProducts) Search(_ context.Context, query, category string) ([]shop.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []shop.Product
	q := strings.ToLower(query)
	for _, p := range m.all() {
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) && !strings.Contains(strings.ToLower(p.Description), q) {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *memProducts) List(context.Context) ([]shop.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.all(), nil
}

func (m *memProducts) Get(_ context.Context, id int64) (shop.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byID[id]
	if !ok {
		return shop.Product{}, shop.ErrNotFound
	}
	return p, nil
}

func (m *memProducts) Create(_ context.Context, p *shop.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	p.ID = m.next
	m.byID[p.ID] = *p
	return nil
}

func (m *memProducts) Update(_ context.Context, p shop.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.byID[p.ID]
	if !ok {
		return shop.ErrNotFound
	}
	p.Rating = old.Rating
	m.byID[p.ID] = p
	return nil
}

func (m *memProducts) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, id)
	return nil
}

func (m *memProducts) SetRating(_ context.Context, id int64, rating float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byID[id]
	if !ok {
		return shop.ErrNotFound
	}
	p.Rating = &rating
	m.byID[id] = p
	return nil
}

type memUsers struct {
	mu      sync.Mutex
	byEmail map[string]shop.User
}

func (m *memUsers) Create(_ context.Context, u *shop.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[u.Email]; ok {
		return shop.ErrConflict
	}
	u.ID = int64(len(m.byEmail) + 1)
	m.byEmail[u.Email] = *u
	return nil
}

func (m *memUsers) ByEmail(_ context.Context, email string) (shop.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byEmail[email]
	if !ok {
		return shop.User{}, shop.ErrNotFound
	}
	return u, nil
}

type memOrders struct {
	mu     sync.Mutex
	orders []shop.Order
}

func (m *memOrders) Create(_ context.Context, o *shop.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o.ID = int64(len(m.orders) + 1)
	m.orders = append(m.orders, *o)
	return nil
}

func (m *memOrders) Get(_ context.Context, id int64) (shop.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return shop.Order{}, shop.ErrNotFound
}

func (m *memOrders) ByEmail(_ context.Context, email string) ([]shop.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []shop.Order
	for i := len(m.orders) - 1; i >= 0; i-- {
		if m.orders[i].Email == email {
			out = append(out, m.orders[i])
		}
	}
	return out, nil
}

type fixedStats struct {
	d shop.Dashboard
}

func (s fixedStats) Dashboard(context.Context) (shop.Dashboard, error) {
	return s.d, nil
}
