package notifier

import (
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// Mailer consumes notification events and dispatches the corresponding
// emails. The actual SMTP hand-off sits behind Send so the queue plumbing
// stays testable.
type Mailer struct {
	log  *logrus.Logger
	send func(to, subject, body string) error
}

func NewMailer(log *logrus.Logger) *Mailer {
	m := &Mailer{log: log}
	m.send = m.logSend
	return m
}

func (m *Mailer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			m.handleMessage(msg)
		}
		m.log.Info("notification channel closed, stopping mailer")
	}()
}

func (m *Mailer) handleMessage(msg amqp.Delivery) {
	switch msg.RoutingKey {
	case KeyBookingConfirmed:
		var ev BookingConfirmedEvent
		if err := json.Unmarshal(msg.Body, &ev); err != nil {
			m.log.WithError(err).Warn("malformed booking confirmation event")
			msg.Nack(false, false)
			return
		}
		subject := "Your TravelXplore booking is confirmed!"
		body := fmt.Sprintf("Booking #%d for %q (%d guests, $%.2f) is confirmed. See you soon!",
			ev.BookingID, ev.PackageTitle, ev.Guests, ev.TotalAmount)
		if err := m.send(ev.Email, subject, body); err != nil {
			m.log.WithError(err).Warn("failed to send booking confirmation email")
			msg.Nack(false, true) // requeue
			return
		}
	case KeyNewsletterSubscribed:
		var ev NewsletterSubscribedEvent
		if err := json.Unmarshal(msg.Body, &ev); err != nil {
			m.log.WithError(err).Warn("malformed newsletter event")
			msg.Nack(false, false)
			return
		}
		if err := m.send(ev.Email, "Thanks for subscribing!", "Welcome to the TravelXplore newsletter. Stay tuned for updates."); err != nil {
			m.log.WithError(err).Warn("failed to send welcome email")
			msg.Nack(false, true)
			return
		}
	default:
		m.log.WithField("routing_key", msg.RoutingKey).Debug("ignoring unknown notification event")
	}

	msg.Ack(false)
}

func (m *Mailer) logSend(to, subject, _ string) error {
	m.log.WithFields(logrus.Fields{"to": to, "subject": subject}).Info("email dispatched")
	return nil
}
