package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(logger zerolog.Logger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Logging(logger), gin.CustomRecovery(HandlePanics(logger)))
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })
	r.GET("/panic", func(c *gin.Context) { panic("kaboom") })
	return r
}

func TestRequestID_Generated(t *testing.T) {
	w := httptest.NewRecorder()
	newEngine(zerolog.Nop()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

	id := w.Header().Get(HeaderRequestID)
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, w.Body.String())
}

func TestRequestID_Propagated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(HeaderRequestID, "trace-1")
	w := httptest.NewRecorder()
	newEngine(zerolog.Nop()).ServeHTTP(w, req)
	assert.Equal(t, "trace-1", w.Header().Get(HeaderRequestID))

	req = httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(HeaderRequestID, strings.Repeat("x", 200))
	w = httptest.NewRecorder()
	newEngine(zerolog.Nop()).ServeHTTP(w, req)
	assert.Len(t, w.Header().Get(HeaderRequestID), 36, "oversized ids are replaced")
}

func TestHandlePanics(t *testing.T) {
	var logs bytes.Buffer
	w := httptest.NewRecorder()
	newEngine(zerolog.New(&logs)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"detail":"Internal Server Error"}`, w.Body.String())
	assert.Contains(t, logs.String(), "kaboom")
	assert.Contains(t, logs.String(), `"status":500`)
}

func TestLogging(t *testing.T) {
	var logs bytes.Buffer
	w := httptest.NewRecorder()
	newEngine(zerolog.New(&logs)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok?skip=1", nil))

	out := logs.String()
	assert.Contains(t, out, `"level":"info"`)
	assert.Contains(t, out, `"path":"/ok"`)
	assert.Contains(t, out, `"query":"skip=1"`)
	assert.Contains(t, out, `"status":200`)
	assert.Contains(t, out, w.Header().Get(HeaderRequestID))
}
