package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"notable/internal/common"
	"notable/internal/models"
	"notable/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockNoteService struct {
	mock.Mock
}

func (m *MockNoteService) List(ctx context.Context, tenantID uuid.UUID) ([]*models.Note, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Note), args.Error(1)
}

func (m *MockNoteService) Create(ctx context.Context, tenantID, authorID uuid.UUID, title, content string) (*models.Note, error) {
	args := m.Called(ctx, tenantID, authorID, title, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Note), args.Error(1)
}

func (m *MockNoteService) Get(ctx context.Context, tenantID, id uuid.UUID) (*models.Note, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Note), args.Error(1)
}

func (m *MockNoteService) Update(ctx context.Context, tenantID, id uuid.UUID, title, content string) (*models.Note, error) {
	args := m.Called(ctx, tenantID, id, title, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Note), args.Error(1)
}

func (m *MockNoteService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// newIdentityContext builds an echo context carrying a verified identity, the
// way the request gate leaves it for handlers.
func newIdentityContext(t *testing.T, method, target, body string, userID, tenantID uuid.UUID, role models.Role) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req = req.WithContext(common.WithIdentity(req.Context(), userID, tenantID, role))
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func assertHTTPError(t *testing.T, err error, code int, message string) {
	t.Helper()

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, code, httpErr.Code)
	assert.Equal(t, message, httpErr.Message)
}

func TestListNotes_Unauthenticated(t *testing.T) {
	h := NewNoteHandlers(&MockNoteService{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/notes", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	err := h.ListNotes(c)
	assertHTTPError(t, err, http.StatusUnauthorized, "Authentication required")
}

func TestListNotes_Success(t *testing.T) {
	svc := &MockNoteService{}
	h := NewNoteHandlers(svc)
	tenantID := uuid.New()
	userID := uuid.New()

	notes := []*models.Note{{ID: uuid.New(), TenantID: tenantID, Title: "a", Content: "b"}}
	svc.On("List", mock.Anything, tenantID).Return(notes, nil)

	c, rec := newIdentityContext(t, http.MethodGet, "/notes", "", userID, tenantID, models.RoleMember)
	require.NoError(t, h.ListNotes(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestCreateNote_Success(t *testing.T) {
	svc := &MockNoteService{}
	h := NewNoteHandlers(svc)
	tenantID := uuid.New()
	userID := uuid.New()

	created := &models.Note{ID: uuid.New(), TenantID: tenantID, AuthorID: userID, Title: "a", Content: "b"}
	svc.On("Create", mock.Anything, tenantID, userID, "a", "b").Return(created, nil)

	c, rec := newIdentityContext(t, http.MethodPost, "/notes", `{"title":"a","content":"b"}`, userID, tenantID, models.RoleMember)
	require.NoError(t, h.CreateNote(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	svc.AssertExpectations(t)
}

func TestCreateNote_PlanLimit(t *testing.T) {
	svc := &MockNoteService{}
	h := NewNoteHandlers(svc)
	tenantID := uuid.New()
	userID := uuid.New()

	svc.On("Create", mock.Anything, tenantID, userID, "a", "b").Return(nil, services.ErrPlanLimit)

	c, _ := newIdentityContext(t, http.MethodPost, "/notes", `{"title":"a","content":"b"}`, userID, tenantID, models.RoleMember)
	err := h.CreateNote(c)
	assertHTTPError(t, err, http.StatusForbidden, "Free plan limit reached. Upgrade to Pro.")
}

func TestCreateNote_MissingFields(t *testing.T) {
	svc := &MockNoteService{}
	h := NewNoteHandlers(svc)
	tenantID := uuid.New()
	userID := uuid.New()

	svc.On("Create", mock.Anything, tenantID, userID, "", "b").Return(nil, services.ErrTitleContentRequired)

	c, _ := newIdentityContext(t, http.MethodPost, "/notes", `{"title":"","content":"b"}`, userID, tenantID, models.RoleMember)
	err := h.CreateNote(c)
	assertHTTPError(t, err, http.StatusBadRequest, "Title and content are required")
}

func TestGetNote_CrossTenant(t *testing.T) {
	svc := &MockNoteService{}
	h := NewNoteHandlers(svc)
	tenantID := uuid.New()
	userID := uuid.New()
	noteID := uuid.New()

	// The service answers not-found for ids outside the caller's tenant.
	svc.On("Get", mock.Anything, tenantID, noteID).Return(nil, services.ErrNotFound)

	c, _ := newIdentityContext(t, http.MethodGet, "/notes/"+noteID.String(), "", userID, tenantID, models.RoleMember)
	c.SetParamNames("id")
	c.SetParamValues(noteID.String())

	err := h.GetNote(c)
	assertHTTPError(t, err, http.StatusNotFound, "Note not found")
}

func TestGetNote_UnparseableID(t *testing.T) {
	h := NewNoteHandlers(&MockNoteService{})
	c, _ := newIdentityContext(t, http.MethodGet, "/notes/oops", "", uuid.New(), uuid.New(), models.RoleMember)
	c.SetParamNames("id")
	c.SetParamValues("oops")

	err := h.GetNote(c)
	assertHTTPError(t, err, http.StatusNotFound, "Note not found")
}

func TestUpdateNote_MissingFields(t *testing.T) {
	svc := &MockNoteService{}
	h := NewNoteHandlers(svc)
	tenantID := uuid.New()
	userID := uuid.New()
	noteID := uuid.New()

	svc.On("Update", mock.Anything, tenantID, noteID, "a", "").Return(nil, services.ErrTitleContentRequired)

	c, _ := newIdentityContext(t, http.MethodPut, "/notes/"+noteID.String(), `{"title":"a","content":""}`, userID, tenantID, models.RoleMember)
	c.SetParamNames("id")
	c.SetParamValues(noteID.String())

	err := h.UpdateNote(c)
	assertHTTPError(t, err, http.StatusBadRequest, "Title and content are required")
}

func TestDeleteNote_Twice(t *testing.T) {
	svc := &MockNoteService{}
	h := NewNoteHandlers(svc)
	tenantID := uuid.New()
	userID := uuid.New()
	noteID := uuid.New()

	svc.On("Delete", mock.Anything, tenantID, noteID).Return(nil).Once()
	svc.On("Delete", mock.Anything, tenantID, noteID).Return(services.ErrNotFound).Once()

	c, rec := newIdentityContext(t, http.MethodDelete, "/notes/"+noteID.String(), "", userID, tenantID, models.RoleMember)
	c.SetParamNames("id")
	c.SetParamValues(noteID.String())
	require.NoError(t, h.DeleteNote(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, _ = newIdentityContext(t, http.MethodDelete, "/notes/"+noteID.String(), "", userID, tenantID, models.RoleMember)
	c.SetParamNames("id")
	c.SetParamValues(noteID.String())
	err := h.DeleteNote(c)
	assertHTTPError(t, err, http.StatusNotFound, "Note not found")
	svc.AssertExpectations(t)
}
