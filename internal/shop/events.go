package shop

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	EventOrderPlaced = "OrderPlaced"
	EventVersion     = 1
)

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	CorrelationID string          `json:"correlation_id,omitempty"` // order id
	Payload       json.RawMessage `json:"payload"`
}

type OrderLine struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type OrderPlacedPayload struct {
	OrderID      int64           `json:"order_id"`
	CustomerName string          `json:"customer_name"`
	Email        string          `json:"email"`
	Address      string          `json:"address"`
	Items        []OrderLine     `json:"items"`
	Total        decimal.Decimal `json:"total"`
	PlacedAt     time.Time       `json:"placed_at"`
}

// NewOrderPlaced wraps the order in a v1 envelope ready to publish.
func NewOrderPlaced(producer string, o Order) ([]byte, error) {
	lines := make([]OrderLine, 0, len(o.Items))
	for _, it := range o.Items {
		lines = append(lines, OrderLine{ProductID: it.ProductID, Name: it.ProductName, Quantity: it.Quantity, Price: it.Price})
	}
	payload, err := json.Marshal(OrderPlacedPayload{
		OrderID:      o.ID,
		CustomerName: o.CustomerName,
		Email:        o.Email,
		Address:      o.Address,
		Items:        lines,
		Total:        o.TotalAmount,
		PlacedAt:     o.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	return json.Marshal(Envelope{
		EventID:       uuid.NewString(),
		EventType:     EventOrderPlaced,
		EventVersion:  EventVersion,
		OccurredAt:    time.Now().UTC(),
		Producer:      producer,
		CorrelationID: fmt.Sprint(o.ID),
		Payload:       payload,
	})
}
