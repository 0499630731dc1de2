package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/travelxplore/travelxplore-api/internal/dto"
	"github.com/travelxplore/travelxplore-api/internal/service"
)

type NewsletterHandler struct {
	svc service.NewsletterService
}

func NewNewsletterHandler(svc service.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{svc: svc}
}

func (h *NewsletterHandler) RegisterRoutes(g *echo.Group, requireAuth, requireAdmin echo.MiddlewareFunc) {
	g.POST("/subscribe", h.Subscribe)
	g.GET("", h.Subscribers, requireAuth, requireAdmin)
	g.DELETE("/:id", h.Unsubscribe, requireAuth, requireAdmin)
}

// Subscribe answers the same way for new and repeat subscribers, so the
// endpoint does not leak who is already on the list.
func (h *NewsletterHandler) Subscribe(c echo.Context) error {
	var req dto.SubscribeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.svc.Subscribe(c.Request().Context(), req.Email); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to subscribe")
	}

	return c.JSON(http.StatusOK, dto.Response{Success: true, Message: "Subscribed to newsletter!"})
}

func (h *NewsletterHandler) Subscribers(c echo.Context) error {
	subscribers, err := h.svc.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.SubscriberListResponse{
		Success:     true,
		Count:       len(subscribers),
		Subscribers: subscribers,
	})
}

func (h *NewsletterHandler) Unsubscribe(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, service.ErrSubscriberNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Subscriber not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.Response{Success: true, Message: "Subscriber removed"})
}
