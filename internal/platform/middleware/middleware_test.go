package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequestID()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected a generated request id on the response")
	}
}

func TestRequestID_PreservesIncoming(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-abc")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequestID()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := rec.Header().Get("X-Request-ID"); got != "req-abc" {
		t.Errorf("expected incoming request id preserved, got %q", got)
	}
}

func TestRateLimit_RejectsAfterBurst(t *testing.T) {
	e := echo.New()
	cfg := RateLimitConfig{RequestsPerSecond: 1, BurstSize: 2}
	handler := RateLimit(cfg)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	var lastErr error
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		lastErr = handler(c)
	}

	httpErr, ok := lastErr.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected HTTP error after burst, got %v", lastErr)
	}
	if httpErr.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", httpErr.Code)
	}
}

func TestRateLimit_SeparateKeys(t *testing.T) {
	e := echo.New()
	cfg := RateLimitConfig{RequestsPerSecond: 1, BurstSize: 1}
	handler := RateLimit(cfg)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	first := httptest.NewRequest(http.MethodGet, "/", nil)
	first.Header.Set("X-Real-IP", "10.0.0.1")
	if err := handler(e.NewContext(first, httptest.NewRecorder())); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := httptest.NewRequest(http.MethodGet, "/", nil)
	second.Header.Set("X-Real-IP", "10.0.0.2")
	if err := handler(e.NewContext(second, httptest.NewRecorder())); err != nil {
		t.Errorf("expected separate bucket per client, got %v", err)
	}
}
