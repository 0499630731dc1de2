package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/travelxplore/travelxplore-api/internal/dto"
	"github.com/travelxplore/travelxplore-api/internal/repository"
	"github.com/travelxplore/travelxplore-api/internal/service"
	"github.com/travelxplore/travelxplore-api/internal/upload"
)

type DestinationHandler struct {
	svc     service.CatalogService
	uploads *upload.Store
}

func NewDestinationHandler(svc service.CatalogService, uploads *upload.Store) *DestinationHandler {
	return &DestinationHandler{svc: svc, uploads: uploads}
}

func (h *DestinationHandler) RegisterRoutes(g *echo.Group, requireAuth, requireAdmin echo.MiddlewareFunc) {
	g.GET("", h.List)
	g.GET("/filter/countries", h.Countries)
	g.GET("/:id", h.Get)
	g.POST("", h.Create, requireAuth, requireAdmin)
	g.PUT("/:id", h.Update, requireAuth, requireAdmin)
	g.DELETE("/:id", h.Delete, requireAuth, requireAdmin)
}

func (h *DestinationHandler) List(c echo.Context) error {
	filter := repository.DestinationFilter{
		Country: c.QueryParam("country"),
		Search:  c.QueryParam("search"),
	}
	if c.QueryParam("featured") == "true" {
		featured := true
		filter.Featured = &featured
	}
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}

	destinations, err := h.svc.ListDestinations(c.Request().Context(), filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.DestinationListResponse{
		Success:      true,
		Count:        len(destinations),
		Destinations: destinations,
	})
}

func (h *DestinationHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	dest, packages, err := h.svc.GetDestination(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrDestinationNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Destination not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.DestinationDetailResponse{
		Success:     true,
		Destination: *dest,
		Packages:    packages,
	})
}

func (h *DestinationHandler) Create(c echo.Context) error {
	input, err := h.bindInput(c)
	if err != nil {
		return err
	}
	if input.Name == "" || input.Country == "" || input.Description == "" || input.Price == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Name, country, description, price required")
	}

	dest, err := h.svc.CreateDestination(c.Request().Context(), input)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, dto.CreatedResponse{
		Success: true,
		Message: "Created successfully",
		ID:      dest.ID,
	})
}

func (h *DestinationHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	input, err := h.bindInput(c)
	if err != nil {
		return err
	}

	if err := h.svc.UpdateDestination(c.Request().Context(), id, input); err != nil {
		if errors.Is(err, service.ErrDestinationNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.Response{Success: true, Message: "Updated successfully"})
}

func (h *DestinationHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.svc.DeleteDestination(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, service.ErrDestinationNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Not found")
		case errors.Is(err, service.ErrDestinationInUse):
			return echo.NewHTTPError(http.StatusConflict, "Destination has packages; delete them first")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, dto.Response{Success: true, Message: "Deleted successfully"})
}

func (h *DestinationHandler) Countries(c echo.Context) error {
	countries, err := h.svc.Countries(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.CountriesResponse{Success: true, Countries: countries})
}

func (h *DestinationHandler) bindInput(c echo.Context) (service.DestinationInput, error) {
	input := service.DestinationInput{
		Name:             c.FormValue("name"),
		Country:          c.FormValue("country"),
		Description:      c.FormValue("description"),
		ShortDescription: c.FormValue("short_description"),
	}

	if v := c.FormValue("price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil || price <= 0 {
			return input, echo.NewHTTPError(http.StatusBadRequest, "price must be a positive number")
		}
		input.Price = &price
	}
	if v := c.FormValue("rating"); v != "" {
		rating, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return input, echo.NewHTTPError(http.StatusBadRequest, "rating must be a number")
		}
		input.Rating = &rating
	}
	if v := c.FormValue("featured"); v != "" {
		featured := v == "true"
		input.Featured = &featured
	}

	if file, err := c.FormFile("image"); err == nil {
		path, err := h.uploads.Save(file)
		if err != nil {
			return input, echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		input.Image = &path
	}

	return input, nil
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}
