package handlers

import (
	"errors"
	"net/http"

	"notable/internal/common"
	"notable/internal/models"
	"notable/internal/repositories"
	"notable/internal/services"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

// AuthHandlers handles authentication-related HTTP requests
type AuthHandlers struct {
	userRepo  repositories.UserRepository
	tenantSvc services.TenantService
	authSvc   services.AuthService
}

// NewAuthHandlers creates a new auth handlers instance
func NewAuthHandlers(userRepo repositories.UserRepository, tenantSvc services.TenantService, authSvc services.AuthService) *AuthHandlers {
	return &AuthHandlers{
		userRepo:  userRepo,
		tenantSvc: tenantSvc,
		authSvc:   authSvc,
	}
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserPayload is the user shape returned by login and /auth/me.
type UserPayload struct {
	ID     uuid.UUID      `json:"id"`
	Email  string         `json:"email"`
	Role   models.Role    `json:"role"`
	Tenant *models.Tenant `json:"tenant"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	Token string      `json:"token"`
	User  UserPayload `json:"user"`
}

// Login handles user login with email and password
func (h *AuthHandlers) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Email and password are required")
	}

	// Same response for unknown email and wrong password. A storage failure
	// is not a credential problem and must not read as one.
	user, err := h.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	if !h.authSvc.VerifyPassword(req.Password, user.PasswordHash) {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}

	tenant, err := h.tenantSvc.GetByID(ctx, user.TenantID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	token, err := h.authSvc.GenerateToken(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Token: token,
		User: UserPayload{
			ID:     user.ID,
			Email:  user.Email,
			Role:   user.Role,
			Tenant: tenant,
		},
	})
}

// Me handles getting the current user profile with its tenant. User data is
// read fresh from storage so a stale token never reflects deleted users.
func (h *AuthHandlers) Me(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	user, err := h.userRepo.GetByID(ctx, tenantID, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token or user not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	tenant, err := h.tenantSvc.GetByID(ctx, tenantID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(http.StatusOK, UserPayload{
		ID:     user.ID,
		Email:  user.Email,
		Role:   user.Role,
		Tenant: tenant,
	})
}
