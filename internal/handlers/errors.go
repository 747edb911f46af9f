package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	apierrors "github.com/yukikurage/team-task-api/internal/errors"
	"github.com/yukikurage/team-task-api/internal/logger"
	"github.com/yukikurage/team-task-api/internal/services"
)

// respondError maps a service error onto the API error envelope.
func respondError(c *gin.Context, err error) {
	var validationErr *services.ValidationError

	switch {
	case errors.Is(err, services.ErrUnauthenticated):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrUnauthorized):
		apierrors.Forbidden(c, "")
	case errors.Is(err, services.ErrNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.As(err, &validationErr):
		apierrors.BadRequestWithDetails(c, "Validation failed", []fieldError{{
			Field:  validationErr.Field,
			Reason: validationErr.Reason,
		}})
	case errors.Is(err, services.ErrTaskCompleted):
		apierrors.InvalidOperation(c, err.Error())
	case errors.Is(err, services.ErrConflict):
		apierrors.Conflict(c, err.Error())
	default:
		logger.FromContext(c.Request.Context()).Error("request failed", "error", err)
		_ = c.Error(err)
		apierrors.InternalError(c, "")
	}
}

type fieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// respondBindError reports a request body or query that failed binding.
func respondBindError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make([]fieldError, len(validationErrs))
		for i, fe := range validationErrs {
			details[i] = fieldError{Field: fe.Field(), Reason: fe.Tag()}
		}
		apierrors.BadRequestWithDetails(c, "Validation failed", details)
		return
	}
	apierrors.BadRequest(c, "Invalid request body")
}

// parseIDParam reads a positive numeric path parameter.
func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		apierrors.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}
