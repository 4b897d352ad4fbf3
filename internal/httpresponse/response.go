package httpresponse

import (
	"net/http"
	"strconv"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// StatusFor maps an error to the HTTP status and the message shown to the caller.
func StatusFor(err error) (int, string) {
	e, ok := apperror.As(err)
	if !ok {
		return http.StatusInternalServerError, "Internal server error"
	}

	switch e.Kind {
	case apperror.KindValidation:
		return http.StatusBadRequest, e.Message
	case apperror.KindNotFound:
		return http.StatusNotFound, e.Message
	case apperror.KindUpload:
		return http.StatusBadGateway, e.Message
	case apperror.KindStore:
		if e.Constraint != "" {
			return http.StatusConflict, e.Message
		}
		return http.StatusInternalServerError, e.Message
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// Error writes err as a JSON error body. Server side failures are logged
// with their cause; caller errors are logged at debug.
func Error(c *gin.Context, log logger.ZapLogger, err error) {
	status, msg := StatusFor(err)

	fields := []zap.Field{
		zap.Error(err),
		zap.Int("status", status),
		zap.String("path", c.FullPath()),
	}
	if status >= http.StatusInternalServerError {
		log.Error("request failed", fields...)
	} else {
		log.Debug("request rejected", fields...)
	}

	c.JSON(status, ErrorResponse{Error: msg})
}

func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

// PathID parses a positive integer path parameter. It writes a 400 and
// returns false when the parameter is malformed.
func PathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		BadRequest(c, "invalid "+name+" parameter")
		return 0, false
	}
	return id, true
}
