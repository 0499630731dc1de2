package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/travelxplore/travelxplore-api/internal/dto"
	"github.com/travelxplore/travelxplore-api/internal/middleware"
	"github.com/travelxplore/travelxplore-api/internal/models"
	"github.com/travelxplore/travelxplore-api/internal/payment"
	"github.com/travelxplore/travelxplore-api/internal/service"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) RegisterRoutes(g *echo.Group, requireAuth, requireAdmin echo.MiddlewareFunc) {
	g.POST("/create-checkout-session", h.CreateCheckoutSession, requireAuth)
	g.GET("/verify-payment/:sessionId", h.VerifyPayment, requireAuth)
	g.GET("/my-bookings", h.MyBookings, requireAuth)
	g.GET("/all", h.AllBookings, requireAuth, requireAdmin)
	g.POST("/webhook", h.Webhook)
}

func (h *BookingHandler) CreateCheckoutSession(c echo.Context) error {
	claims := middleware.CurrentUser(c)

	var req dto.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	sess, err := h.svc.CreateCheckoutSession(c.Request().Context(), claims.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPackageNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Package not found")
		case errors.Is(err, service.ErrTooManyGuests):
			return echo.NewHTTPError(http.StatusBadRequest, "Guest count exceeds package limit")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create checkout session")
		}
	}

	return c.JSON(http.StatusOK, dto.CheckoutResponse{
		Success:   true,
		SessionID: sess.ID,
		URL:       sess.URL,
	})
}

func (h *BookingHandler) VerifyPayment(c echo.Context) error {
	sessionID := c.Param("sessionId")
	if sessionID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "session id is required")
	}

	booking, paid, err := h.svc.VerifyPayment(c.Request().Context(), sessionID)
	if err != nil {
		if errors.Is(err, service.ErrBookingNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Booking not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to verify payment")
	}

	if !paid {
		return c.JSON(http.StatusOK, dto.Response{Success: false, Message: "Payment not completed"})
	}

	return c.JSON(http.StatusOK, dto.VerifyPaymentResponse{
		Success: true,
		Message: "Booking confirmed!",
		Booking: dto.ToBookingResponse(booking),
	})
}

func (h *BookingHandler) MyBookings(c echo.Context) error {
	claims := middleware.CurrentUser(c)

	bookings, err := h.svc.MyBookings(c.Request().Context(), claims.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch bookings")
	}

	return c.JSON(http.StatusOK, dto.BookingListResponse{
		Success:  true,
		Bookings: toBookingResponses(bookings),
	})
}

func (h *BookingHandler) AllBookings(c echo.Context) error {
	bookings, err := h.svc.AllBookings(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch bookings")
	}

	return c.JSON(http.StatusOK, dto.BookingListResponse{
		Success:  true,
		Bookings: toBookingResponses(bookings),
	})
}

// Webhook receives the processor's signed push. Per the processor contract
// the signature-failure response is plain text, not the JSON envelope.
func (h *BookingHandler) Webhook(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.String(http.StatusBadRequest, "Webhook Error: unreadable body")
	}

	signature := c.Request().Header.Get("Stripe-Signature")
	if err := h.svc.HandleWebhook(c.Request().Context(), payload, signature); err != nil {
		if errors.Is(err, payment.ErrInvalidSignature) {
			return c.String(http.StatusBadRequest, "Webhook Error: "+err.Error())
		}
		// Non-2xx tells the processor to retry later
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to process webhook")
	}

	return c.JSON(http.StatusOK, map[string]bool{"received": true})
}

func toBookingResponses(bookings []models.Booking) []dto.BookingResponse {
	resp := make([]dto.BookingResponse, len(bookings))
	for i := range bookings {
		resp[i] = dto.ToBookingResponse(&bookings[i])
	}
	return resp
}
