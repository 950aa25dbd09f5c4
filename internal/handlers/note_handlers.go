package handlers

import (
	"errors"
	"net/http"

	"notable/internal/common"
	"notable/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// NoteHandlers handles note-related HTTP requests
type NoteHandlers struct {
	noteSvc services.NoteService
}

// NewNoteHandlers creates a new note handlers instance
func NewNoteHandlers(noteSvc services.NoteService) *NoteHandlers {
	return &NoteHandlers{noteSvc: noteSvc}
}

// ListNotes returns the tenant's notes, newest first.
func (h *NoteHandlers) ListNotes(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	notes, err := h.noteSvc.List(ctx, tenantID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(http.StatusOK, notes)
}

// NoteRequest is the create/update payload. Tenant and author are never read
// from the body; they come from the verified request context.
type NoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// CreateNote handles creating a new note, enforcing the FREE plan cap.
func (h *NoteHandlers) CreateNote(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	var req NoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	note, err := h.noteSvc.Create(ctx, tenantID, userID, req.Title, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTitleContentRequired):
			return echo.NewHTTPError(http.StatusBadRequest, "Title and content are required")
		case errors.Is(err, services.ErrPlanLimit):
			return echo.NewHTTPError(http.StatusForbidden, "Free plan limit reached. Upgrade to Pro.")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
		}
	}

	return c.JSON(http.StatusCreated, note)
}

// GetNote handles getting note details by ID
func (h *NoteHandlers) GetNote(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		// An unparseable id names no note; same answer as a missing one.
		return echo.NewHTTPError(http.StatusNotFound, "Note not found")
	}

	note, err := h.noteSvc.Get(ctx, tenantID, noteID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Note not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(http.StatusOK, note)
}

// UpdateNote handles updating a note's title and content.
func (h *NoteHandlers) UpdateNote(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Note not found")
	}

	var req NoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	note, err := h.noteSvc.Update(ctx, tenantID, noteID, req.Title, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTitleContentRequired):
			return echo.NewHTTPError(http.StatusBadRequest, "Title and content are required")
		case errors.Is(err, services.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Note not found")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
		}
	}

	return c.JSON(http.StatusOK, note)
}

// DeleteNote handles deleting a note. Deleting an already-deleted note is a
// 404, not an error-free no-op.
func (h *NoteHandlers) DeleteNote(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Note not found")
	}

	if err := h.noteSvc.Delete(ctx, tenantID, noteID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Note not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Note deleted successfully",
	})
}
