package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/ariefcatur/go-storefront/internal/redisx"
	"github.com/ariefcatur/go-storefront/internal/shop"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sent struct{ to, subject, body string }

type fakeSender struct {
	sent []sent
	err  error
}

func (f *fakeSender) Send(_ context.Context, to, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sent{to, subject, body})
	return nil
}

func newService(t *testing.T) (*Service, *fakeSender) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redisx.New(mr.Addr())
	t.Cleanup(func() { _ = rdb.Close() })
	mailer := &fakeSender{}
	return &Service{Redis: rdb, Mailer: mailer, ServiceName: "notifier-test"}, mailer
}

func orderPlacedMessage(t *testing.T) kafkago.Message {
	t.Helper()
	b, err := shop.NewOrderPlaced("storefront", shop.Order{
		ID:           12,
		CustomerName: "Ada",
		Email:        "ada@example.com",
		Address:      "1 Main St",
		TotalAmount:  decimal.RequireFromString("25"),
		CreatedAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Items: []shop.OrderItem{
			{ProductID: 1, ProductName: "Linen Shirt", Quantity: 2, Price: decimal.RequireFromString("10")},
			{ProductID: 2, Quantity: 1, Price: decimal.RequireFromString("5")},
		},
	})
	require.NoError(t, err)
	return kafkago.Message{Value: b}
}

func TestHandleOrderPlacedSendsOnce(t *testing.T) {
	svc, mailer := newService(t)
	ctx := context.Background()
	m := orderPlacedMessage(t)

	require.NoError(t, svc.HandleOrderPlaced(ctx, m))
	require.NoError(t, svc.HandleOrderPlaced(ctx, m))

	require.Len(t, mailer.sent, 1)
	got := mailer.sent[0]
	assert.Equal(t, "ada@example.com", got.to)
	assert.Equal(t, "Order #12 confirmed", got.subject)
	assert.Contains(t, got.body, "2 x Linen Shirt @ 10.00")
	assert.Contains(t, got.body, "1 x product #2 @ 5.00")
	assert.Contains(t, got.body, "Total: 25.00")
	assert.Contains(t, got.body, "Shipping to: 1 Main St")
}

func TestHandleOrderPlacedRetriesAfterMailFailure(t *testing.T) {
	svc, mailer := newService(t)
	ctx := context.Background()
	m := orderPlacedMessage(t)

	mailer.err = errors.New("smtp down")
	assert.Error(t, svc.HandleOrderPlaced(ctx, m))
	assert.Empty(t, mailer.sent)

	mailer.err = nil
	require.NoError(t, svc.HandleOrderPlaced(ctx, m))
	assert.Len(t, mailer.sent, 1)
}

func TestHandleOrderPlacedIgnoresOtherEvents(t *testing.T) {
	svc, mailer := newService(t)
	b, err := json.Marshal(shop.Envelope{EventID: "e1", EventType: "SomethingElse"})
	require.NoError(t, err)

	require.NoError(t, svc.HandleOrderPlaced(context.Background(), kafkago.Message{Value: b}))
	assert.Empty(t, mailer.sent)

	assert.Error(t, svc.HandleOrderPlaced(context.Background(), kafkago.Message{Value: []byte("{")}))
}
