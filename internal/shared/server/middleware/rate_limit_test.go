package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestRateLimitAllowsWithinBurst(t *testing.T) {
	gin.SetMode(gin.TestMode)

	now := time.Unix(1700000000, 0)
	limiter := NewRateLimiter(func() time.Time { return now })

	r := gin.New()
	r.Use(RateLimit(RateLimitConfig{
		Rules: map[string]RateLimitRule{
			defaultRateLimitGroup: {Rate: 1, Burst: 2},
		},
		Limiter: limiter,
	}))
	r.POST("/documents", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		resp := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/documents", nil)
		r.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, resp.Code)
		}
	}

	resp := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/documents", nil)
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %d", resp.Code)
	}
	if resp.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header")
	}
}

func TestRateLimiterRefillsOverTime(t *testing.T) {
	now := time.Unix(1700000000, 0)
	limiter := NewRateLimiter(func() time.Time { return now })
	rule := RateLimitRule{Rate: 1, Burst: 1}

	if ok, _ := limiter.Allow("ip|g", rule); !ok {
		t.Fatal("first request should pass")
	}
	if ok, _ := limiter.Allow("ip|g", rule); ok {
		t.Fatal("second immediate request should be limited")
	}

	now = now.Add(2 * time.Second)
	if ok, _ := limiter.Allow("ip|g", rule); !ok {
		t.Fatal("request after refill should pass")
	}
}
