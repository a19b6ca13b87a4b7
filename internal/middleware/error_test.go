package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/jwalitptl/marketplace-api/pkg/errors"
)

func performErrorRequest(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(ErrorHandler())
	engine.GET("/", func(c *gin.Context) {
		_ = c.Error(err)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	engine.ServeHTTP(w, req)
	return w
}

func TestErrorHandlerMapsAppErrorStatus(t *testing.T) {
	w := performErrorRequest(apperrors.Forbidden("not your booking"))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "not your booking")
}

func TestErrorHandlerUnwrapsWrappedAppErrors(t *testing.T) {
	err := fmt.Errorf("loading booking: %w", apperrors.NotFound("booking", nil))

	w := performErrorRequest(err)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestErrorHandlerDefaultsToInternalError(t *testing.T) {
	w := performErrorRequest(fmt.Errorf("boom"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
