package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func performTimeoutRequest(handler gin.HandlerFunc, d time.Duration) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(Timeout(TimeoutConfig{Duration: d}))
	engine.GET("/", handler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	engine.ServeHTTP(w, req)
	return w
}

func TestTimeoutFastHandlerPassesThrough(t *testing.T) {
	w := performTimeoutRequest(func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}, time.Second)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
}

func TestTimeoutExpiredDeadlineYields504(t *testing.T) {
	w := performTimeoutRequest(func(c *gin.Context) {
		<-c.Request.Context().Done()
	}, 10*time.Millisecond)

	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	assert.Contains(t, w.Body.String(), "request timeout")
}

func TestTimeoutDoesNotOverwriteWrittenResponse(t *testing.T) {
	w := performTimeoutRequest(func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
		<-c.Request.Context().Done()
	}, 10*time.Millisecond)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
}
