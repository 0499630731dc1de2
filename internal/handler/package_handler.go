package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/travelxplore/travelxplore-api/internal/dto"
	"github.com/travelxplore/travelxplore-api/internal/models"
	"github.com/travelxplore/travelxplore-api/internal/repository"
	"github.com/travelxplore/travelxplore-api/internal/service"
	"github.com/travelxplore/travelxplore-api/internal/upload"
)

type PackageHandler struct {
	svc     service.CatalogService
	uploads *upload.Store
}

func NewPackageHandler(svc service.CatalogService, uploads *upload.Store) *PackageHandler {
	return &PackageHandler{svc: svc, uploads: uploads}
}

func (h *PackageHandler) RegisterRoutes(g *echo.Group, requireAuth, requireAdmin echo.MiddlewareFunc) {
	g.GET("", h.List)
	g.GET("/destination/:id", h.ByDestination)
	g.GET("/:id", h.Get)
	g.POST("", h.Create, requireAuth, requireAdmin)
	g.PUT("/:id", h.Update, requireAuth, requireAdmin)
	g.DELETE("/:id", h.Delete, requireAuth, requireAdmin)
}

func (h *PackageHandler) List(c echo.Context) error {
	filter := repository.PackageFilter{
		Search: c.QueryParam("search"),
	}
	if c.QueryParam("featured") == "true" {
		featured := true
		filter.Featured = &featured
	}
	if v := c.QueryParam("destination_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil {
			filter.DestinationID = uint(id)
		}
	}
	if v := c.QueryParam("min_price"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinPrice = &p
		}
	}
	if v := c.QueryParam("max_price"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxPrice = &p
		}
	}
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}

	packages, err := h.svc.ListPackages(c.Request().Context(), filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.PackageListResponse{
		Success:  true,
		Count:    len(packages),
		Packages: toPackageResponses(packages),
	})
}

func (h *PackageHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	pkg, related, err := h.svc.GetPackage(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPackageNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.PackageDetailResponse{
		Success:         true,
		Package:         dto.ToPackageResponse(pkg),
		RelatedPackages: toPackageResponses(related),
	})
}

func (h *PackageHandler) Create(c echo.Context) error {
	input, err := h.bindInput(c)
	if err != nil {
		return err
	}
	if input.DestinationID == nil || input.Title == "" || input.Description == "" ||
		input.DurationDays == nil || input.Price == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing required fields")
	}

	pkg, err := h.svc.CreatePackage(c.Request().Context(), input)
	if err != nil {
		if errors.Is(err, service.ErrDestinationNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Destination not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, dto.CreatedResponse{
		Success: true,
		Message: "Created successfully",
		ID:      pkg.ID,
	})
}

func (h *PackageHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	input, err := h.bindInput(c)
	if err != nil {
		return err
	}

	if err := h.svc.UpdatePackage(c.Request().Context(), id, input); err != nil {
		if errors.Is(err, service.ErrPackageNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.Response{Success: true, Message: "Updated successfully"})
}

func (h *PackageHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.svc.DeletePackage(c.Request().Context(), id); err != nil {
		if errors.Is(err, service.ErrPackageNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.Response{Success: true, Message: "Deleted successfully"})
}

func (h *PackageHandler) ByDestination(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	packages, err := h.svc.PackagesByDestination(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.PackageListResponse{
		Success:  true,
		Count:    len(packages),
		Packages: toPackageResponses(packages),
	})
}

func (h *PackageHandler) bindInput(c echo.Context) (service.PackageInput, error) {
	input := service.PackageInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Inclusions:  c.FormValue("inclusions"),
		Exclusions:  c.FormValue("exclusions"),
	}

	if v := c.FormValue("destination_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return input, echo.NewHTTPError(http.StatusBadRequest, "destination_id must be a number")
		}
		destID := uint(id)
		input.DestinationID = &destID
	}
	if v := c.FormValue("duration_days"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil || days <= 0 {
			return input, echo.NewHTTPError(http.StatusBadRequest, "duration_days must be a positive number")
		}
		input.DurationDays = &days
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
	if v := c.FormValue("max_guests"); v != "" {
		guests, err := strconv.Atoi(v)
		if err != nil || guests <= 0 {
			return input, echo.NewHTTPError(http.StatusBadRequest, "max_guests must be a positive number")
		}
		input.MaxGuests = &guests
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

func toPackageResponses(packages []models.Package) []dto.PackageResponse {
	resp := make([]dto.PackageResponse, len(packages))
	for i := range packages {
		resp[i] = dto.ToPackageResponse(&packages[i])
	}
	return resp
}
