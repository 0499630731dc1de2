package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/travelxplore/travelxplore-api/internal/dto"
	"github.com/travelxplore/travelxplore-api/internal/middleware"
	"github.com/travelxplore/travelxplore-api/internal/service"
)

type AuthHandler struct {
	svc          service.AuthService
	secureCookie bool
}

func NewAuthHandler(svc service.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{svc: svc, secureCookie: secureCookie}
}

func (h *AuthHandler) RegisterRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.POST("/logout", h.Logout)
	g.GET("/me", h.Me, requireAuth)
	g.GET("/verify", h.Verify, requireAuth)
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.svc.Register(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			return echo.NewHTTPError(http.StatusBadRequest, "Email or username already taken")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error during registration")
	}

	return c.JSON(http.StatusCreated, dto.RegisterResponse{
		Success: true,
		Message: "Registered successfully",
		UserID:  user.ID,
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, tok, err := h.svc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error during login")
	}

	c.SetCookie(&http.Cookie{
		Name:     "token",
		Value:    tok,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookie,
		MaxAge:   int((7 * 24 * time.Hour).Seconds()),
	})

	return c.JSON(http.StatusOK, dto.AuthResponse{
		Success: true,
		Message: "Login successful",
		Token:   tok,
		User:    dto.ToUserResponse(user),
	})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	return c.JSON(http.StatusOK, dto.Response{Success: true, Message: "Logged out successfully"})
}

func (h *AuthHandler) Me(c echo.Context) error {
	claims := middleware.CurrentUser(c)

	user, err := h.svc.GetUser(c.Request().Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.AuthResponse{
		Success: true,
		User:    dto.ToUserResponse(user),
	})
}

// Verify answers from the decoded claims alone; no database round trip.
func (h *AuthHandler) Verify(c echo.Context) error {
	claims := middleware.CurrentUser(c)
	return c.JSON(http.StatusOK, dto.AuthResponse{
		Success: true,
		User: dto.UserResponse{
			ID:       claims.UserID,
			Username: claims.Username,
			Role:     claims.Role,
		},
	})
}
