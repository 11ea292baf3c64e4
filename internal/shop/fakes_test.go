package shop

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

type memSession struct {
	vals map[string][]byte
}

func newMemSession() *memSession { return &memSession{vals: map[string][]byte{}} }

func (s *memSession) GetJSON(_ context.Context, key string, out any) (bool, error) {
	b, ok := s.vals[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (s *memSession) SetJSON(_ context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.vals[key] = b
	return nil
}

func (s *memSession) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(s.vals, k)
	}
	return nil
}

func (s *memSession) has(key string) bool {
	_, ok := s.vals[key]
	return ok
}

type memProducts struct {
	mu     sync.Mutex
	next   int64
	byID   map[int64]Product
	getErr error
}

func newMemProducts(ps ...Product) *memProducts {
	m := &memProducts{byID: map[int64]Product{}}
	for _, p := range ps {
		if p.ID == 0 {
			m.next++
			p.ID = m.next
		} else if p.ID > m.next {
			m.next = p.ID
		}
		m.byID[p.ID] = p
	}
	return m
}

func (m *memProducts) sorted() []Product {
	out := make([]Product, 0, len(m.byID))
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
	for _, p := range m.sorted() {
		if strings.TrimSpace(p.Category) != "" && !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out, nil
}

func (m *memProducts) Search(_ context.Context, query, category string) ([]Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q := strings.ToLower(query)
	var out []Product
	for _, p := range m.sorted() {
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

func (m *memProducts) List(context.Context) ([]Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sorted(), nil
}

func (m *memProducts) Get(_ context.Context, id int64) (Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return Product{}, m.getErr
	}
	p, ok := m.byID[id]
	if !ok {
		return Product{}, ErrNotFound
	}
	return p, nil
}

func (m *memProducts) Create(_ context.Context, p *Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	p.ID = m.next
	m.byID[p.ID] = *p
	return nil
}

func (m *memProducts) Update(_ context.Context, p Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.byID[p.ID]
	if !ok {
		return ErrNotFound
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
		return ErrNotFound
	}
	p.Rating = &rating
	m.byID[id] = p
	return nil
}

type memOrders struct {
	orders    []Order
	createErr error
}

func (m *memOrders) Create(_ context.Context, o *Order) error {
	if m.createErr != nil {
		return m.createErr
	}
	o.ID = int64(len(m.orders) + 1)
	for i := range o.Items {
		o.Items[i].OrderID = o.ID
	}
	cp := *o
	cp.Items = append([]OrderItem(nil), o.Items...)
	m.orders = append(m.orders, cp)
	return nil
}

func (m *memOrders) Get(_ context.Context, id int64) (Order, error) {
	for _, o := range m.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return Order{}, ErrNotFound
}

func (m *memOrders) ByEmail(_ context.Context, email string) ([]Order, error) {
	var out []Order
	for i := len(m.orders) - 1; i >= 0; i-- {
		if m.orders[i].Email == email {
			out = append(out, m.orders[i])
		}
	}
	return out, nil
}

type memUsers struct {
	byEmail map[string]User
}

func newMemUsers() *memUsers { return &memUsers{byEmail: map[string]User{}} }

func (m *memUsers) Create(_ context.Context, u *User) error {
	if _, ok := m.byEmail[u.Email]; ok {
		return ErrConflict
	}
	u.ID = int64(len(m.byEmail) + 1)
	u.CreatedAt = time.Now()
	m.byEmail[u.Email] = *u
	return nil
}

func (m *memUsers) ByEmail(_ context.Context, email string) (User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

type published struct {
	key       string
	eventType string
	value     []byte
}

type recordingPublisher struct {
	events []published
}

func (p *recordingPublisher) PublishEvent(key []byte, eventType string, value []byte) {
	p.events = append(p.events, published{key: string(key), eventType: eventType, value: value})
}

var errBoom = errors.New("boom")

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
