package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

// Without Redis configured the limiters run on the in-memory window, which
// is what these tests exercise.

func TestRateLimitBlocksOverLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limit := 3
	r := gin.New()
	r.GET("/test", RateLimit(limit, time.Minute), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	srv := httptest.NewServer(r)
	defer srv.Close()

	for i := 0; i < limit; i++ {
		res, err := http.Get(srv.URL + "/test")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		res.Body.Close()
		if res.StatusCode != 200 {
			t.Fatalf("request %d: expected 200 got %d", i+1, res.StatusCode)
		}
	}

	res, err := http.Get(srv.URL + "/test")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429 got %d", res.StatusCode)
	}
}

func TestGameRateLimitPerUser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limit := 2
	r := gin.New()
	r.GET("/play", func(c *gin.Context) {
		// stand-in for the JWT middleware
		uid, _ := strconv.ParseInt(c.Query("uid"), 10, 64)
		c.Set("user_id", uid)
	}, GameRateLimit(limit, time.Minute), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	srv := httptest.NewServer(r)
	defer srv.Close()

	status := func(uid string) int {
		res, err := http.Get(srv.URL + "/play?uid=" + uid)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		res.Body.Close()
		return res.StatusCode
	}

	for i := 0; i < limit; i++ {
		if got := status("101"); got != 200 {
			t.Fatalf("user 101 request %d: expected 200 got %d", i+1, got)
		}
	}
	if got := status("101"); got != http.StatusTooManyRequests {
		t.Fatalf("user 101 over limit: expected 429 got %d", got)
	}

	// a different user has their own window
	if got := status("202"); got != 200 {
		t.Fatalf("user 202: expected 200 got %d", got)
	}
}

func TestGameRateLimitRequiresUser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/play", GameRateLimit(10, time.Minute), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	srv := httptest.NewServer(r)
	defer srv.Close()

	res, err := http.Get(srv.URL + "/play")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", res.StatusCode)
	}
}
