package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const testWebhookSecret = "whsec_test_secret"

func signPayload(t *testing.T, payload []byte, secret string, ts time.Time) string {
	t.Helper()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts.Unix(), payload)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func completedEventPayload(sessionID string) []byte {
	return []byte(fmt.Sprintf(`{
		"id": "evt_test_1",
		"object": "event",
		"type": "checkout.session.completed",
		"data": {"object": {"id": %q, "object": "checkout.session"}}
	}`, sessionID))
}

func TestParseWebhookEvent_ValidSignature(t *testing.T) {
	p := NewStripeProvider("sk_test_x", testWebhookSecret)
	payload := completedEventPayload("cs_test_123")
	sig := signPayload(t, payload, testWebhookSecret, time.Now())

	ev, err := p.ParseWebhookEvent(payload, sig)
	assert.NoError(t, err)
	assert.Equal(t, EventCheckoutCompleted, ev.Type)
	assert.Equal(t, "cs_test_123", ev.SessionID)
}

func TestParseWebhookEvent_InvalidSignature(t *testing.T) {
	p := NewStripeProvider("sk_test_x", testWebhookSecret)
	payload := completedEventPayload("cs_test_123")
	sig := signPayload(t, payload, "whsec_wrong_secret", time.Now())

	_, err := p.ParseWebhookEvent(payload, sig)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSignature))
}

func TestParseWebhookEvent_StaleTimestamp(t *testing.T) {
	p := NewStripeProvider("sk_test_x", testWebhookSecret)
	payload := completedEventPayload("cs_test_123")
	sig := signPayload(t, payload, testWebhookSecret, time.Now().Add(-time.Hour))

	_, err := p.ParseWebhookEvent(payload, sig)
	assert.True(t, errors.Is(err, ErrInvalidSignature))
}

func TestParseWebhookEvent_OtherEventType(t *testing.T) {
	p := NewStripeProvider("sk_test_x", testWebhookSecret)
	payload := []byte(`{
		"id": "evt_test_2",
		"object": "event",
		"type": "payment_intent.created",
		"data": {"object": {"id": "pi_test_1", "object": "payment_intent"}}
	}`)
	sig := signPayload(t, payload, testWebhookSecret, time.Now())

	ev, err := p.ParseWebhookEvent(payload, sig)
	assert.NoError(t, err)
	assert.NotEqual(t, EventCheckoutCompleted, ev.Type)
	assert.Empty(t, ev.SessionID)
}
