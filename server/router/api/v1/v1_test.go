package v1

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestCORSAllowlist(t *testing.T) {
	e, _ := newTestServer(t)

	// Preflight from an allowlisted development origin is accepted.
	req := httptest.NewRequest(http.MethodOptions, "/api/conversations/", nil)
	req.Header.Set(echo.HeaderOrigin, "http://localhost:5173")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodGet)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, "http://localhost:5173", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	require.Equal(t, "true", rec.Header().Get(echo.HeaderAccessControlAllowCredentials))

	// Unknown origins get no CORS grant.
	req = httptest.NewRequest(http.MethodOptions, "/api/conversations/", nil)
	req.Header.Set(echo.HeaderOrigin, "http://evil.example.com")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodGet)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Empty(t, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}
