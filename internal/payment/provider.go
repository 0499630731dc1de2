package payment

import (
	"context"
	"errors"
)

// ErrInvalidSignature is returned when a webhook payload fails signature
// verification. Nothing may be mutated when this is returned.
var ErrInvalidSignature = errors.New("webhook signature verification failed")

const EventCheckoutCompleted = "checkout.session.completed"

// CheckoutParams describes one hosted checkout session to open.
type CheckoutParams struct {
	Title       string
	Description string
	ImageURL    string
	UnitAmount  int64 // minor currency units per guest
	Quantity    int64
	SuccessURL  string
	CancelURL   string
	Metadata    map[string]string
}

// Session is the provider-side view of a checkout session.
type Session struct {
	ID   string
	URL  string
	Paid bool
}

// WebhookEvent is a verified event pushed by the processor.
type WebhookEvent struct {
	Type      string
	SessionID string
}

// Provider abstracts the external payment processor so services and tests
// never depend on the Stripe SDK directly.
type Provider interface {
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*Session, error)
	GetCheckoutSession(ctx context.Context, sessionID string) (*Session, error)
	ParseWebhookEvent(payload []byte, signature string) (*WebhookEvent, error)
}
