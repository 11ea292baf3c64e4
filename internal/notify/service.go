package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"text/template"

	kafkax "github.com/ariefcatur/go-storefront/internal/kafka"
	"github.com/ariefcatur/go-storefront/internal/redisx"
	"github.com/ariefcatur/go-storefront/internal/shop"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
)

var confirmation = template.Must(template.New("confirmation").Parse(
	`Hi {{.CustomerName}},

Thanks for your order #{{.OrderID}}.
{{range .Items}}
  {{.Quantity}} x {{if .Name}}{{.Name}}{{else}}product #{{.ProductID}}{{end}} @ {{.Price.StringFixed 2}}{{end}}

Total: {{.Total.StringFixed 2}}
{{if .Address}}Shipping to: {{.Address}}
{{end}}`))

type Service struct {
	Redis       *redis.Client
	Mailer      Sender
	ServiceName string
}

// HandleOrderPlaced mails a confirmation once per event, even when Kafka redelivers.
func (s *Service) HandleOrderPlaced(ctx context.Context, m kafkago.Message) error {
	var env shop.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return fmt.Errorf("decode envelope: %w", err)
	}
	if env.EventType != shop.EventOrderPlaced {
		return nil
	}

	dkey := fmt.Sprintf(redisx.KeyDedup, s.ServiceName, env.EventID)
	first, err := redisx.Claim(ctx, s.Redis, dkey, redisx.TTLDedup)
	if err != nil {
		return err
	}
	if !first {
		return nil
	}

	p, err := kafkax.UnwrapPayload[shop.OrderPlacedPayload](env.Payload)
	if err != nil {
		return err
	}
	body, err := RenderConfirmation(p)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Order #%d confirmed", p.OrderID)
	if err := s.Mailer.Send(ctx, p.Email, subject, body); err != nil {
		// let the redelivery try again
		_ = s.Redis.Del(ctx, dkey).Err()
		return err
	}
	log.Printf("confirmation sent: order=%d to=%s", p.OrderID, p.Email)
	return nil
}

func RenderConfirmation(p shop.OrderPlacedPayload) (string, error) {
	var buf bytes.Buffer
	if err := confirmation.Execute(&buf, p); err != nil {
		return "", fmt.Errorf("render confirmation: %w", err)
	}
	return buf.String(), nil
}
