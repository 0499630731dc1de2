package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travelxplore/travelxplore-api/internal/dto"
	"github.com/travelxplore/travelxplore-api/internal/middleware"
	"github.com/travelxplore/travelxplore-api/internal/models"
	"github.com/travelxplore/travelxplore-api/internal/payment"
	"github.com/travelxplore/travelxplore-api/internal/service"
	"github.com/travelxplore/travelxplore-api/pkg/token"
)

// --- Mock BookingService ---

type mockBookingService struct {
	checkoutFn func(ctx context.Context, userID uint, req dto.CheckoutRequest) (*payment.Session, error)
	verifyFn   func(ctx context.Context, sessionID string) (*models.Booking, bool, error)
	myFn       func(ctx context.Context, userID uint) ([]models.Booking, error)
	allFn      func(ctx context.Context) ([]models.Booking, error)
	webhookFn  func(ctx context.Context, payload []byte, signature string) error
}

func (m *mockBookingService) CreateCheckoutSession(ctx context.Context, userID uint, req dto.CheckoutRequest) (*payment.Session, error) {
	return m.checkoutFn(ctx, userID, req)
}
func (m *mockBookingService) VerifyPayment(ctx context.Context, sessionID string) (*models.Booking, bool, error) {
	return m.verifyFn(ctx, sessionID)
}
func (m *mockBookingService) MyBookings(ctx context.Context, userID uint) ([]models.Booking, error) {
	return m.myFn(ctx, userID)
}
func (m *mockBookingService) AllBookings(ctx context.Context) ([]models.Booking, error) {
	return m.allFn(ctx)
}
func (m *mockBookingService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	return m.webhookFn(ctx, payload, signature)
}

func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = middleware.NewRequestValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func asUser(c echo.Context, userID uint) {
	c.Set(middleware.ContextKeyUser, &token.UserClaims{UserID: userID, Username: "traveler", Role: models.RoleUser})
}

// --- Tests ---

func TestCreateCheckoutSession_Handler_Success(t *testing.T) {
	svc := &mockBookingService{
		checkoutFn: func(ctx context.Context, userID uint, req dto.CheckoutRequest) (*payment.Session, error) {
			assert.Equal(t, uint(7), userID)
			assert.Equal(t, uint(3), req.PackageID)
			assert.Equal(t, 2, req.Guests)
			return &payment.Session{ID: "cs_test_123", URL: "https://checkout.example/cs_test_123"}, nil
		},
	}

	c, rec := newTestContext(http.MethodPost, "/api/bookings/create-checkout-session",
		`{"packageId":3,"guests":2,"travelDate":"2026-10-01"}`)
	asUser(c, 7)

	h := NewBookingHandler(svc)
	err := h.CreateCheckoutSession(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.CheckoutResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "cs_test_123", resp.SessionID)
	assert.Equal(t, "https://checkout.example/cs_test_123", resp.URL)
}

func TestCreateCheckoutSession_Handler_PackageNotFound(t *testing.T) {
	svc := &mockBookingService{
		checkoutFn: func(ctx context.Context, userID uint, req dto.CheckoutRequest) (*payment.Session, error) {
			return nil, service.ErrPackageNotFound
		},
	}

	c, _ := newTestContext(http.MethodPost, "/api/bookings/create-checkout-session",
		`{"packageId":99,"guests":2}`)
	asUser(c, 7)

	err := NewBookingHandler(svc).CreateCheckoutSession(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestCreateCheckoutSession_Handler_InvalidGuests(t *testing.T) {
	svc := &mockBookingService{
		checkoutFn: func(ctx context.Context, userID uint, req dto.CheckoutRequest) (*payment.Session, error) {
			t.Fatal("service must not be called on validation failure")
			return nil, nil
		},
	}

	c, _ := newTestContext(http.MethodPost, "/api/bookings/create-checkout-session",
		`{"packageId":3,"guests":0}`)
	asUser(c, 7)

	err := NewBookingHandler(svc).CreateCheckoutSession(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestVerifyPayment_Handler_Paid(t *testing.T) {
	svc := &mockBookingService{
		verifyFn: func(ctx context.Context, sessionID string) (*models.Booking, bool, error) {
			assert.Equal(t, "cs_test_123", sessionID)
			return &models.Booking{
				ID:              11,
				StripeSessionID: sessionID,
				Status:          models.StatusConfirmed,
				PaymentStatus:   models.PaymentPaid,
			}, true, nil
		},
	}

	c, rec := newTestContext(http.MethodGet, "/api/bookings/verify-payment/cs_test_123", "")
	c.SetParamNames("sessionId")
	c.SetParamValues("cs_test_123")
	asUser(c, 7)

	err := NewBookingHandler(svc).VerifyPayment(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.VerifyPaymentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Booking confirmed!", resp.Message)
	assert.Equal(t, models.StatusConfirmed, resp.Booking.Status)
}

func TestVerifyPayment_Handler_Unpaid(t *testing.T) {
	svc := &mockBookingService{
		verifyFn: func(ctx context.Context, sessionID string) (*models.Booking, bool, error) {
			return nil, false, nil
		},
	}

	c, rec := newTestContext(http.MethodGet, "/api/bookings/verify-payment/cs_unpaid", "")
	c.SetParamNames("sessionId")
	c.SetParamValues("cs_unpaid")
	asUser(c, 7)

	err := NewBookingHandler(svc).VerifyPayment(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Payment not completed", resp.Message)
}

func TestMyBookings_Handler(t *testing.T) {
	svc := &mockBookingService{
		myFn: func(ctx context.Context, userID uint) ([]models.Booking, error) {
			assert.Equal(t, uint(7), userID)
			return []models.Booking{{ID: 1, UserID: 7}, {ID: 2, UserID: 7}}, nil
		},
	}

	c, rec := newTestContext(http.MethodGet, "/api/bookings/my-bookings", "")
	asUser(c, 7)

	err := NewBookingHandler(svc).MyBookings(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.BookingListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Len(t, resp.Bookings, 2)
}

func TestWebhook_Handler_InvalidSignature(t *testing.T) {
	svc := &mockBookingService{
		webhookFn: func(ctx context.Context, payload []byte, signature string) error {
			return payment.ErrInvalidSignature
		},
	}

	c, rec := newTestContext(http.MethodPost, "/api/bookings/webhook", `{"type":"checkout.session.completed"}`)
	c.Request().Header.Set("Stripe-Signature", "t=1,v1=bad")

	err := NewBookingHandler(svc).Webhook(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "Webhook Error:"))
}

func TestWebhook_Handler_Acknowledged(t *testing.T) {
	svc := &mockBookingService{
		webhookFn: func(ctx context.Context, payload []byte, signature string) error {
			assert.Equal(t, "t=1,v1=good", signature)
			assert.JSONEq(t, `{"type":"checkout.session.completed"}`, string(payload))
			return nil
		},
	}

	c, rec := newTestContext(http.MethodPost, "/api/bookings/webhook", `{"type":"checkout.session.completed"}`)
	c.Request().Header.Set("Stripe-Signature", "t=1,v1=good")

	err := NewBookingHandler(svc).Webhook(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"received":true}`, rec.Body.String())
}
