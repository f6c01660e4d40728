package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"
)

func newRateLimitedHandler(rl *RateLimiter, calls *int) http.Handler {
	return rl.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		w.WriteHeader(http.StatusOK)
	}))
}

func requestFrom(remoteAddr string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.RemoteAddr = remoteAddr
	return req
}

func TestRateLimitMiddleware_AllowsRequestsWithinLimit(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		Rate:            2,
		Burst:           5,
		CleanupInterval: time.Minute,
	})
	defer rl.Stop()

	calls := 0
	handler := newRateLimitedHandler(rl, &calls)

	// バースト内の5リクエストは全て通る
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, requestFrom("192.0.2.1:1234"))
		if w.Code != http.StatusOK {
			t.Errorf("request %d: status = %d, want %d", i+1, w.Code, http.StatusOK)
		}
	}

	if calls != 5 {
		t.Errorf("handler call count = %d, want 5", calls)
	}
}

func TestRateLimitMiddleware_RejectsExcessRequests(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		Rate:            1,
		Burst:           2,
		CleanupInterval: time.Minute,
	})
	defer rl.Stop()

	calls := 0
	handler := newRateLimitedHandler(rl, &calls)

	for i := 0; i < 2; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), requestFrom("192.0.2.1:1234"))
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, requestFrom("192.0.2.1:1234"))

	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusTooManyRequests)
	}
	if calls != 2 {
		t.Errorf("handler call count = %d, want 2", calls)
	}

	retryAfter := w.Header().Get("Retry-After")
	if retryAfter == "" {
		t.Fatal("Retry-After header should be set")
	}
	if sec, err := strconv.Atoi(retryAfter); err != nil || sec < 1 {
		t.Errorf("Retry-After = %q, want positive integer", retryAfter)
	}

	var body MessageResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Message != rateLimitMessage {
		t.Errorf("message = %q, want %q", body.Message, rateLimitMessage)
	}
}

func TestRateLimitMiddleware_IsolatesClients(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		Rate:            1,
		Burst:           1,
		CleanupInterval: time.Minute,
	})
	defer rl.Stop()

	calls := 0
	handler := newRateLimitedHandler(rl, &calls)

	handler.ServeHTTP(httptest.NewRecorder(), requestFrom("192.0.2.1:1234"))

	// 別のIPは独立したバケットを持つ
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, requestFrom("192.0.2.2:1234"))
	if w.Code != http.StatusOK {
		t.Errorf("second client status = %d, want %d", w.Code, http.StatusOK)
	}

	// 同一IPでポートが異なっても同じクライアントとして扱う
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, requestFrom("192.0.2.1:5678"))
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("same client status = %d, want %d", w.Code, http.StatusTooManyRequests)
	}

	if got := rl.LimiterCount(); got != 2 {
		t.Errorf("LimiterCount() = %d, want 2", got)
	}
}

func TestRateLimiter_CleanupRemovesStaleEntries(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		Rate:            10,
		Burst:           10,
		CleanupInterval: 10 * time.Millisecond,
	})
	defer rl.Stop()

	calls := 0
	handler := newRateLimitedHandler(rl, &calls)
	handler.ServeHTTP(httptest.NewRecorder(), requestFrom("192.0.2.1:1234"))

	if got := rl.LimiterCount(); got != 1 {
		t.Fatalf("LimiterCount() = %d, want 1", got)
	}

	deadline := time.Now().Add(2 * time.Second)
	for rl.LimiterCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("stale limiter was not cleaned up, count = %d", rl.LimiterCount())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestRateLimiter_StopIsIdempotent(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Rate: 1, Burst: 1, CleanupInterval: time.Minute})
	rl.Stop()
	rl.Stop()
}

func TestRateLimiterConfigPerMinute(t *testing.T) {
	cfg := RateLimiterConfigPerMinute(120)

	if cfg.Rate != 2 {
		t.Errorf("Rate = %v, want 2", cfg.Rate)
	}
	if cfg.Burst != 120 {
		t.Errorf("Burst = %d, want 120", cfg.Burst)
	}
	if cfg.CleanupInterval <= 0 {
		t.Errorf("CleanupInterval = %v, want positive", cfg.CleanupInterval)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		remoteAddr string
		want       string
	}{
		{"192.0.2.1:1234", "192.0.2.1"},
		{"[2001:db8::1]:443", "2001:db8::1"},
		{"192.0.2.1", "192.0.2.1"},
	}

	for _, tt := range tests {
		if got := clientIP(requestFrom(tt.remoteAddr)); got != tt.want {
			t.Errorf("clientIP(%q) = %q, want %q", tt.remoteAddr, got, tt.want)
		}
	}
}
