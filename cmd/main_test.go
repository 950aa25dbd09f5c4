package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestRouter_TrailingSlashMatchesRoute(t *testing.T) {
	e := newRouter(zerolog.New(io.Discard))
	e.GET("/notes", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	for _, target := range []string{"/notes", "/notes/"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, target)
	}
}

func TestRouter_ErrorEnvelope(t *testing.T) {
	e := newRouter(zerolog.New(io.Discard))
	e.GET("/boom", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusForbidden, "Admin access required")
	})

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"Admin access required"}`, rec.Body.String())
}
