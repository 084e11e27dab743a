package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		checks     map[string]Check
		wantStatus int
		wantBody   HealthResponse
	}{
		{
			name:       "no checks",
			checks:     nil,
			wantStatus: http.StatusOK,
			wantBody:   HealthResponse{Status: "healthy"},
		},
		{
			name: "all healthy",
			checks: map[string]Check{
				"database": func(context.Context) error { return nil },
			},
			wantStatus: http.StatusOK,
			wantBody:   HealthResponse{Status: "healthy", Services: map[string]string{"database": "healthy"}},
		},
		{
			name: "one failing",
			checks: map[string]Check{
				"database": func(context.Context) error { return nil },
				"newsapi":  func(context.Context) error { return errors.New("circuit open") },
			},
			wantStatus: http.StatusServiceUnavailable,
			wantBody: HealthResponse{Status: "unhealthy", Services: map[string]string{
				"database": "healthy",
				"newsapi":  "unhealthy",
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/health", NewHealthHandler(tt.checks).Health)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			var got HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, tt.wantBody, got)
		})
	}
}

func TestHealthHandler_Live(t *testing.T) {
	router := gin.New()
	router.GET("/live", NewHealthHandler(nil).Live)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/live", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"alive"}`, w.Body.String())
}
