package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"

	"github.com/kdduha/skillscribe/pkg/logger"
)

func TestRequestLoggerAddsRequestAttributes(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, nil))

	var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromContext(r.Context()).Info("inside")
	})
	handler = NewLoggerMiddleware(base).RequestLogger(handler)
	handler = chimiddleware.RequestID(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/solve", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	assert.Contains(t, out, "msg=inside")
	assert.Contains(t, out, "method=GET")
	assert.Contains(t, out, "path=/api/solve")
	assert.Contains(t, out, "request_id=")
}
