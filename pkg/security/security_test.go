package security

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newLimitedRouter(maxRequests int, keyFn KeyFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/ask", RateLimiter(maxRequests, time.Minute, keyFn), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func doGet(router *gin.Engine, userHeader string) int {
	req := httptest.NewRequest(http.MethodGet, "/ask", nil)
	if userHeader != "" {
		req.Header.Set("X-User", userHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimiterExhaustsBudget(t *testing.T) {
	router := newLimitedRouter(2, nil)

	assert.Equal(t, http.StatusOK, doGet(router, ""))
	assert.Equal(t, http.StatusOK, doGet(router, ""))
	assert.Equal(t, http.StatusTooManyRequests, doGet(router, ""))
}

func TestRateLimiterIsolatesKeys(t *testing.T) {
	// 配额按keyFn给出的维度分账，一个用户打满不影响另一个
	router := newLimitedRouter(1, func(c *gin.Context) string {
		return c.GetHeader("X-User")
	})

	assert.Equal(t, http.StatusOK, doGet(router, "alice"))
	assert.Equal(t, http.StatusTooManyRequests, doGet(router, "alice"))
	assert.Equal(t, http.StatusOK, doGet(router, "bob"))
}
