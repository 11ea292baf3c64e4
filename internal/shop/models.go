package shop

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string // empty when uncategorized
	ImageURL    string
	Rating      *float64 // last submitted rating, nil until rated
}

type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Address      string
	CreatedAt    time.Time
}

type Order struct {
	ID           int64
	CustomerName string
	Email        string
	Address      string
	TotalAmount  decimal.Decimal
	CreatedAt    time.Time
	Items        []OrderItem
}

// OrderItem carries the quantity and unit price captured at checkout.
type OrderItem struct {
	ID          int64
	OrderID     int64
	ProductID   int64
	ProductName string // display only; empty once the product is deleted
	Quantity    int
	Price       decimal.Decimal
}

func (it OrderItem) Subtotal() decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// CartEntry is a session-held snapshot of a product plus the wanted quantity.
type CartEntry struct {
	ProductID   int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	ImageURL    string          `json:"image_url"`
	Quantity    int             `json:"quantity"`
}

func (e CartEntry) Subtotal() decimal.Decimal {
	return e.Price.Mul(decimal.NewFromInt(int64(e.Quantity)))
}

type WishlistEntry struct {
	ProductID   int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	ImageURL    string          `json:"image_url"`
}

type CategorySales struct {
	Category string
	Total    decimal.Decimal
}

type Dashboard struct {
	TotalProducts   int64
	TotalValue      decimal.Decimal
	TotalOrders     int64
	TotalRevenue    decimal.Decimal
	SalesByCategory []CategorySales
}
