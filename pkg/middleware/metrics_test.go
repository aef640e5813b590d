package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Astemirdum/library-resource/pkg/middleware"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	m := middleware.NewMetrics("library")

	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/libraries/:id", func(c echo.Context) error {
		if c.Param("id") == "0" {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return c.NoContent(http.StatusOK)
	})
	e.GET("/metrics", m.Handler())

	for _, path := range []string{"/libraries/1", "/libraries/2", "/libraries/0"} {
		w := httptest.NewRecorder()
		e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, http.NoBody))
	}

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	require.True(t, strings.Contains(body,
		`library_http_requests_total{method="GET",route="/libraries/:id",status="200"} 2`), body)
	require.True(t, strings.Contains(body,
		`library_http_requests_total{method="GET",route="/libraries/:id",status="404"} 1`), body)
}
