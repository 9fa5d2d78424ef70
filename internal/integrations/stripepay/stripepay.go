// Package stripepay adapts Stripe payment intents, refunds and webhooks to
// the payment and booking modules.
package stripepay

import (
	"context"
	"encoding/json"
	"fmt"

	"tutorhub/internal/modules/payment"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

type Client struct {
	api           *client.API
	webhookSecret string
}

func New(secretKey, webhookSecret string) *Client {
	return &Client{
		api:           client.New(secretKey, nil),
		webhookSecret: webhookSecret,
	}
}

func (c *Client) CreateIntent(ctx context.Context, p payment.IntentParams) (*payment.Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(p.Amount),
		Currency: stripe.String(p.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.AddMetadata("bookingId", p.BookingID)

	pi, err := c.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe create payment intent: %w", err)
	}
	return &payment.Intent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

// Refund returns the full amount of a payment intent.
func (c *Client) Refund(ctx context.Context, transactionID string) error {
	params := &stripe.RefundParams{PaymentIntent: stripe.String(transactionID)}
	params.Context = ctx

	if _, err := c.api.Refunds.New(params); err != nil {
		return fmt.Errorf("stripe refund %s: %w", transactionID, err)
	}
	return nil
}

func (c *Client) ParseWebhook(payload []byte, signature string) (*payment.Event, error) {
	return ParseEvent(payload, signature, c.webhookSecret)
}

// ParseEvent verifies a Stripe-Signature header and extracts the payment
// intent id of intent events.
func ParseEvent(payload []byte, signature, secret string) (*payment.Event, error) {
	ev, err := webhook.ConstructEventWithOptions(payload, signature, secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, err
	}

	out := &payment.Event{ID: ev.ID, Type: string(ev.Type)}
	if ev.Data == nil || len(ev.Data.Raw) == 0 {
		return out, nil
	}
	if ev.Type == payment.EventIntentSucceeded || ev.Type == "payment_intent.payment_failed" {
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(ev.Data.Raw, &pi); err != nil {
			return nil, fmt.Errorf("decode payment intent: %w", err)
		}
		out.IntentID = pi.ID
	}
	return out, nil
}
