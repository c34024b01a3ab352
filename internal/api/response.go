package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/energyflow/internal/board"
	"github.com/julianstephens/energyflow/internal/logger"
	"github.com/julianstephens/energyflow/internal/planner"
	"github.com/julianstephens/energyflow/internal/validation"
)

// APIResponse is the envelope of every response body.
type APIResponse struct {
	Data  any            `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *APIError      `json:"error,omitempty"`
}

type APIError struct {
	Code    string                  `json:"code"`
	Message string                  `json:"message"`
	Fields  []validation.FieldError `json:"fields,omitempty"`
}

const (
	CodeBadRequest     = "bad_request"
	CodeValidation     = "validation_failed"
	CodeProfileMissing = "profile_missing"
	CodeNotFound       = "not_found"
	CodeRateLimited    = "rate_limited"
	CodeInternal       = "internal_error"
)

func success(c *gin.Context, status int, data any, meta map[string]any) {
	c.JSON(status, APIResponse{Data: data, Meta: meta})
}

func fail(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, APIResponse{Error: &APIError{Code: code, Message: msg}})
}

// handleError maps service errors to status codes and writes the envelope.
func handleError(c *gin.Context, err error) {
	var verr *validation.Error
	switch {
	case errors.Is(err, planner.ErrProfileMissing):
		fail(c, http.StatusPreconditionFailed, CodeProfileMissing, err.Error())
	case errors.As(err, &verr):
		c.AbortWithStatusJSON(http.StatusBadRequest, APIResponse{Error: &APIError{
			Code:    CodeValidation,
			Message: err.Error(),
			Fields:  verr.Fields,
		}})
	case errors.Is(err, board.ErrTaskNotFound):
		fail(c, http.StatusNotFound, CodeNotFound, err.Error())
	case errors.Is(err, board.ErrEmptyText), errors.Is(err, board.ErrInvalidZone):
		fail(c, http.StatusBadRequest, CodeBadRequest, err.Error())
	default:
		logger.Named("api").Error("request failed", "request_id", c.GetString(requestIDKey), "path", c.FullPath(), "error", err)
		fail(c, http.StatusInternalServerError, CodeInternal, "internal error")
	}
}
