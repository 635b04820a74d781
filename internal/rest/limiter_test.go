package rest

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimit_StrictTierThrottlesAuth(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit())
	r.POST("/auth/login", func(c *gin.Context) { c.Status(http.StatusOK) })

	throttled := false
	for i := 0; i < burstStrict+1; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)

		if w.Code == http.StatusTooManyRequests {
			throttled = true
		}
	}

	assert.True(t, throttled, "burst exhausted requests should be throttled")
}

func TestRateLimit_BucketsPerClientIP(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit())
	r.POST("/auth/login", func(c *gin.Context) { c.Status(http.StatusOK) })

	// Exhaust one address's strict bucket.
	for i := 0; i < burstStrict+1; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = "10.0.0.2:1234"
		r.ServeHTTP(w, req)
	}

	// A different address still has a full bucket.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.RemoteAddr = "10.0.0.3:1234"
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimit_TiersAreIndependent(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit())
	r.GET("/products", func(c *gin.Context) { c.Status(http.StatusOK) })

	// The strict bucket for this IP may be drained by other tests; the
	// general tier keeps its own bucket.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
