package httpresponse

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"validation", apperror.Validation("op", "name is required"), http.StatusBadRequest, "name is required"},
		{"not found", apperror.NotFound("op", "product not found"), http.StatusNotFound, "product not found"},
		{"upload", apperror.Upload("op", errors.New("s3 down")), http.StatusBadGateway, "failed to upload image"},
		{"constraint", apperror.Constraint("op", "fk", "subcategory does not exist", nil), http.StatusConflict, "subcategory does not exist"},
		{"store", apperror.Store("op", errors.New("pq: password authentication failed")), http.StatusInternalServerError, "failed to access product store"},
		{"untyped", errors.New("boom"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := StatusFor(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestError_DoesNotLeakCause(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, logger.NewNop(), apperror.Store("FindAll", errors.New("pq: relation \"products\" does not exist")))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"failed to access product store"}`, w.Body.String())
}

func TestPathID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for _, raw := range []string{"abc", "0", "-3", "1.5"} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: raw}}

		_, ok := PathID(c, "id")
		assert.False(t, ok, raw)
		assert.Equal(t, http.StatusBadRequest, w.Code, raw)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	id, ok := PathID(c, "id")
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)
}
