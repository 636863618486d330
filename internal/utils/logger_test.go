package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextLoggerAddsRequestFields(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	base := NewSlogLogger(slog.New(slog.NewJSONHandler(&buf, nil)))

	r := gin.New()
	r.Use(ContextLogger(base))
	r.GET("/ping", func(c *gin.Context) {
		GetLoggerFromContext(c, NewNopLogger()).Info("pong")
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "req-1")
	r.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "pong", entry["msg"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "/ping", entry["path"])
}

func TestGetLoggerFromContextFallback(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	fallback := NewNopLogger()

	assert.Same(t, fallback, GetLoggerFromContext(c, fallback))

	c.Set("logger", "not a logger")
	assert.Same(t, fallback, GetLoggerFromContext(c, fallback))
}

func TestToSlogLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(slog.New(slog.NewJSONHandler(&buf, nil)))

	ToSlogLogger(logger).Info("hello", "k", "v")
	assert.Contains(t, buf.String(), `"k":"v"`)
}

func TestLoggerMiddlewareLogsRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	base := NewSlogLogger(slog.New(slog.NewJSONHandler(&buf, nil)))

	r := gin.New()
	r.Use(LoggerMiddleware(base), ContextLogger(NewNopLogger()))
	r.GET("/results/:id", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/results/42", nil))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "/results/:id", entry["path"])
	assert.EqualValues(t, http.StatusNotFound, entry["status_code"])

	requestID := w.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, requestID)
	assert.Equal(t, requestID, entry["request_id"])
}

func TestNewLoggerLevel(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		level       string
		debug       bool
	}{
		{"development defaults to debug", "development", "", true},
		{"production defaults to info", "production", "", false},
		{"explicit level wins", "development", "warn", false},
		{"invalid level ignored", "production", "loud", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := ToSlogLogger(NewLogger(tt.environment, tt.level))
			assert.Equal(t, tt.debug, logger.Enabled(context.Background(), slog.LevelDebug))
		})
	}
}
