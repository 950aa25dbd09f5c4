package handlers

import (
	"errors"
	"net/http"

	"notable/internal/common"
	"notable/internal/services"

	"github.com/labstack/echo/v4"
)

// TenantHandlers handles tenant-related HTTP requests
type TenantHandlers struct {
	tenantSvc services.TenantService
}

// NewTenantHandlers creates a new tenant handlers instance
func NewTenantHandlers(tenantSvc services.TenantService) *TenantHandlers {
	return &TenantHandlers{tenantSvc: tenantSvc}
}

// UpgradePlan handles upgrading the caller's tenant to the PRO plan.
// Admin-only; the slug must belong to the caller's own tenant.
func (h *TenantHandlers) UpgradePlan(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	role, ok := common.GetRoleFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	tenant, err := h.tenantSvc.UpgradePlan(ctx, tenantID, role, c.Param("slug"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAdminRequired):
			return echo.NewHTTPError(http.StatusForbidden, "Admin access required")
		case errors.Is(err, services.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Tenant not found")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Upgraded to Pro plan successfully",
		"tenant":  tenant,
	})
}
