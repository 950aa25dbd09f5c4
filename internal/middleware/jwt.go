package middleware

import (
	"net/http"
	"strings"

	"notable/internal/common"
	"notable/internal/models"
	"notable/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// JWT is the request gate. It verifies the bearer token and injects the
// trusted user id, tenant id, and role into the request context. Routes that
// skip it (health, login) are simply not registered behind it.
func JWT(authSvc services.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token format")
			}

			claims, err := authSvc.ValidateToken(tokenString)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			tenantID, err := uuid.Parse(claims.TenantID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			role := models.Role(claims.Role)
			if !role.Valid() {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			ctx := common.WithIdentity(c.Request().Context(), userID, tenantID, role)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}
