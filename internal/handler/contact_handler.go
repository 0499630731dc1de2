package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/travelxplore/travelxplore-api/internal/dto"
	"github.com/travelxplore/travelxplore-api/internal/models"
	"github.com/travelxplore/travelxplore-api/internal/service"
)

type ContactHandler struct {
	svc service.ContactService
}

func NewContactHandler(svc service.ContactService) *ContactHandler {
	return &ContactHandler{svc: svc}
}

func (h *ContactHandler) RegisterRoutes(g *echo.Group, requireAuth, requireAdmin echo.MiddlewareFunc) {
	g.POST("", h.Submit)
	g.GET("", h.List, requireAuth, requireAdmin)
	g.GET("/stats/summary", h.Stats, requireAuth, requireAdmin)
	g.GET("/:id", h.Get, requireAuth, requireAdmin)
	g.PUT("/:id", h.UpdateStatus, requireAuth, requireAdmin)
	g.DELETE("/:id", h.Delete, requireAuth, requireAdmin)
}

func (h *ContactHandler) Submit(c echo.Context) error {
	var req dto.ContactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.svc.Submit(c.Request().Context(), req); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to send message")
	}

	return c.JSON(http.StatusCreated, dto.Response{
		Success: true,
		Message: "Message sent. We will get back to you soon!",
	})
}

func (h *ContactHandler) List(c echo.Context) error {
	var status *models.MessageStatus
	if v := c.QueryParam("status"); v != "" {
		s := models.MessageStatus(v)
		status = &s
	}

	limit := 0
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	messages, err := h.svc.List(c.Request().Context(), status, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.ContactListResponse{
		Success:  true,
		Count:    len(messages),
		Messages: messages,
	})
}

func (h *ContactHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	msg, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrMessageNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Message not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.ContactDetailResponse{Success: true, Message: *msg})
}

func (h *ContactHandler) UpdateStatus(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateMessageStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.svc.UpdateStatus(c.Request().Context(), id, models.MessageStatus(req.Status)); err != nil {
		if errors.Is(err, service.ErrMessageNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Message not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.Response{Success: true, Message: "Status updated"})
}

func (h *ContactHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, service.ErrMessageNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Message not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.Response{Success: true, Message: "Deleted successfully"})
}

func (h *ContactHandler) Stats(c echo.Context) error {
	stats, err := h.svc.Stats(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.ContactStatsResponse{Success: true, Stats: stats})
}
