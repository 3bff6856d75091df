package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestRateLimiterAllowsBurst(t *testing.T) {
	rl := NewRateLimiter(10, 1*time.Minute)
	for i := 0; i < 10; i++ {
		if !rl.allow("203.0.113.7") {
			t.Fatalf("login attempt %d should be allowed within the burst", i+1)
		}
	}
	if rl.allow("203.0.113.7") {
		t.Fatal("attempt past the burst should be blocked")
	}
}

func TestRateLimiterRefill(t *testing.T) {
	// Short window so a token comes back within the test
	rl := NewRateLimiter(1, 50*time.Millisecond)
	rl.allow("203.0.113.7")
	if rl.allow("203.0.113.7") {
		t.Fatal("bucket should be empty right after the burst")
	}
	time.Sleep(60 * time.Millisecond)
	if !rl.allow("203.0.113.7") {
		t.Fatal("bucket should have refilled after the window")
	}
}

func TestRateLimiterPerClientBuckets(t *testing.T) {
	rl := NewRateLimiter(1, 1*time.Minute)
	rl.allow("203.0.113.7")
	if !rl.allow("198.51.100.9") {
		t.Fatal("a different client must not share the exhausted bucket")
	}
}

func TestRateLimiterMiddlewareEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := NewRateLimiter(1, 1*time.Minute)

	r := gin.New()
	r.POST("/login", rl.Middleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/login", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("first attempt: expected 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/login", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second attempt: expected 429, got %d", w.Code)
	}

	var resp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["success"] != false {
		t.Fatalf("429 must carry success=false, got %v", resp)
	}
	if resp["message"] != "Too many requests. Please try again later." {
		t.Fatalf("unexpected 429 message: %v", resp["message"])
	}
}
