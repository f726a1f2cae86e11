package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mnk3936/Highway-metals/internal/infra"

	"github.com/rs/zerolog/log"
)

// PriceAlertPayload describes one committed material price change.
// Prices travel as strings so the queue never loses decimal precision.
type PriceAlertPayload struct {
	MaterialID      string  `json:"material_id"`
	MaterialName    string  `json:"material_name"`
	OldPrice        string  `json:"old_price"`
	NewPrice        string  `json:"new_price"`
	ProductsChanged int     `json:"products_changed"`
	ChangedBy       *string `json:"changed_by,omitempty"`
}

// Sender is what the worker needs from the mailer.
type Sender interface {
	Send(to, subject, body string) error
}

// PriceAlertWorker emails an operator whenever a material price changes.
// Sends go through the circuit breaker so a dead relay fast-fails.
type PriceAlertWorker struct {
	mailer  Sender
	breaker *infra.CircuitBreaker
	to      string
}

func NewPriceAlertWorker(mailer Sender, breaker *infra.CircuitBreaker, to string) *PriceAlertWorker {
	return &PriceAlertWorker{mailer: mailer, breaker: breaker, to: to}
}

func (w *PriceAlertWorker) Process(_ context.Context, raw json.RawMessage) error {
	if w.to == "" {
		log.Debug().Msg("alert email not configured, job skipped")
		return nil
	}

	var p PriceAlertPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return fmt.Errorf("decode price alert payload: %w", err)
	}

	subject := fmt.Sprintf("Price change: %s", p.MaterialName)
	body := fmt.Sprintf(
		"Raw material %q changed from %s to %s.\n%d dependent product(s) were repriced.\n",
		p.MaterialName, p.OldPrice, p.NewPrice, p.ProductsChanged,
	)
	if p.ChangedBy != nil {
		body += fmt.Sprintf("Changed by user %s.\n", *p.ChangedBy)
	}

	err := w.breaker.Execute(func() error {
		return w.mailer.Send(w.to, subject, body)
	})
	if err != nil {
		return fmt.Errorf("send price alert: %w", err)
	}

	log.Info().Str("material", p.MaterialName).Msg("price alert sent")
	return nil
}
