package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// NewHTTPErrorHandler renders every error as the flat {"error": message}
// envelope. 5xx causes are logged server-side and replaced with a generic
// message so internal detail never reaches the client.
func NewHTTPErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := "Internal server error"

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			code = httpErr.Code
			if msg, ok := httpErr.Message.(string); ok {
				message = msg
			}
		}

		if code >= http.StatusInternalServerError {
			logger.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Msg("request failed")
			message = "Internal server error"
		}

		if writeErr := c.JSON(code, map[string]string{"error": message}); writeErr != nil {
			logger.Error().Err(writeErr).Msg("failed to write error response")
		}
	}
}
