package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
}

func TestCORS_SetsHeaders(t *testing.T) {
	handler := CORS(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestCORS_PreflightShortCircuits(t *testing.T) {
	called := false
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodOptions, "/checkout", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.False(t, called)
}

func TestAPIKeyAuth(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name           string
		configuredKey  string
		providedKey    string
		path           string
		expectedStatus int
	}{
		{
			name:           "auth disabled when no key configured",
			configuredKey:  "",
			path:           "/checkout",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "valid key",
			configuredKey:  "secret",
			providedKey:    "secret",
			path:           "/checkout",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing key",
			configuredKey:  "secret",
			path:           "/checkout",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong key",
			configuredKey:  "secret",
			providedKey:    "nope",
			path:           "/checkout",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "root is always open",
			configuredKey:  "secret",
			path:           "/",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "health is always open",
			configuredKey:  "secret",
			path:           "/health",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "diagnostics are always open",
			configuredKey:  "secret",
			path:           "/test",
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := APIKeyAuth(tt.configuredKey, logger)(okHandler())

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.providedKey != "" {
				req.Header.Set("X-API-Key", tt.providedKey)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestLogging_PassesThrough(t *testing.T) {
	logger := zerolog.Nop()
	handler := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestRecovery_RecoversFromPanic(t *testing.T) {
	logger := zerolog.Nop()
	handler := Recovery(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/checkout", nil)
	rec := httptest.NewRecorder()

	assert.NotPanics(t, func() {
		handler.ServeHTTP(rec, req)
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
}
