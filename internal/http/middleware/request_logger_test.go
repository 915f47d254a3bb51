package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/prismatek/prismatek-ai-backend/pkg/logging"
)

type requestLogLine struct {
	Msg       string `json:"msg"`
	Method    string `json:"method"`
	Path      string `json:"path"`
	RequestID string `json:"request_id"`
	Status    int    `json:"status"`
}

func captureRequestLog(t *testing.T, outer func(http.Handler) http.Handler, buf *bytes.Buffer) requestLogLine {
	t.Helper()
	handler := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))
	handler = RequestLogger(logging.NewWithWriter("info", buf))(handler)
	if outer != nil {
		handler = outer(handler)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/leads", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected response to pass through, got %d", rec.Code)
	}

	var line requestLogLine
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected one JSON log line, got %q: %v", buf.String(), err)
	}
	return line
}

func TestRequestLoggerReusesChiRequestID(t *testing.T) {
	var buf bytes.Buffer
	line := captureRequestLog(t, chimiddleware.RequestID, &buf)

	if line.Msg != "request completed" {
		t.Errorf("unexpected message %q", line.Msg)
	}
	if line.Method != http.MethodGet || line.Path != "/api/leads" {
		t.Errorf("unexpected method/path %s %s", line.Method, line.Path)
	}
	if line.RequestID == "" {
		t.Error("expected the chi request id to be logged")
	}
	if line.Status != http.StatusTeapot {
		t.Errorf("expected response status %d to be logged, got %d", http.StatusTeapot, line.Status)
	}
}

func TestRequestLoggerMintsIDWithoutRequestIDMiddleware(t *testing.T) {
	var buf bytes.Buffer
	line := captureRequestLog(t, nil, &buf)

	if line.RequestID == "" {
		t.Error("expected a fallback request id")
	}
	if line.Status != http.StatusTeapot {
		t.Errorf("expected response status %d to be logged, got %d", http.StatusTeapot, line.Status)
	}
}
