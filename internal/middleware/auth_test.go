package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestAdminToken(t *testing.T) {
	e := echo.New()
	e.PUT("/api/profile", func(c echo.Context) error {
		return c.String(http.StatusOK, "stored")
	}, AdminToken("0123456789abcdef"))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid token", "Bearer 0123456789abcdef", http.StatusOK},
		{"wrong token", "Bearer fedcba9876543210", http.StatusUnauthorized},
		{"missing header", "", http.StatusBadRequest},
		{"wrong scheme", "Basic 0123456789abcdef", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/api/profile", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()

			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
