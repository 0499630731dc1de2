package notifier

import (
	"context"

	"github.com/sirupsen/logrus"
)

const (
	KeyBookingConfirmed     = "notify.booking.confirmed"
	KeyNewsletterSubscribed = "notify.newsletter.subscribed"
)

type BookingConfirmedEvent struct {
	BookingID    uint    `json:"booking_id"`
	Email        string  `json:"email"`
	PackageTitle string  `json:"package_title"`
	Guests       int     `json:"guests"`
	TotalAmount  float64 `json:"total_amount"`
}

type NewsletterSubscribedEvent struct {
	Email string `json:"email"`
}

type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// Events pushes notification events onto the broker. Delivery is best
// effort: a publish failure is logged, never surfaced to the caller.
type Events struct {
	pub Publisher
	log *logrus.Logger
}

func NewEvents(pub Publisher, log *logrus.Logger) *Events {
	return &Events{pub: pub, log: log}
}

func (e *Events) BookingConfirmed(ctx context.Context, ev BookingConfirmedEvent) {
	if err := e.pub.Publish(ctx, KeyBookingConfirmed, ev); err != nil {
		e.log.WithError(err).WithField("booking_id", ev.BookingID).
			Warn("failed to publish booking confirmation event")
	}
}

func (e *Events) NewsletterSubscribed(ctx context.Context, email string) {
	if err := e.pub.Publish(ctx, KeyNewsletterSubscribed, NewsletterSubscribedEvent{Email: email}); err != nil {
		e.log.WithError(err).WithField("email", email).
			Warn("failed to publish newsletter subscription event")
	}
}
