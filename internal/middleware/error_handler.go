package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/travelxplore/travelxplore-api/internal/dto"
)

// NewErrorHandler maps any error escaping a handler onto the uniform JSON
// envelope. Outside development the 500 message is suppressed.
func NewErrorHandler(env string) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		msg := err.Error()

		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if m, ok := he.Message.(string); ok {
				msg = m
			}
		}

		if code == http.StatusInternalServerError && env != "development" {
			msg = "Internal server error"
		}

		_ = c.JSON(code, dto.Response{Success: false, Message: msg})
	}
}
