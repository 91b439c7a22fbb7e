package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	apperrors "github.com/carelink/healthcare-api/pkg/errors"
)

// Envelope is the standard success body: a message plus the named resource
// payload, e.g. {"message": ..., "patient": {...}}.
type Envelope = gin.H

// Error translates a domain error into the error envelope. Validation and
// conflict errors map to 400, not-found (including ownership mismatches) to
// 404, anything unclassified to 500 with the stringified cause.
func Error(c *gin.Context, err error) {
	if appErr := apperrors.As(err); appErr != nil {
		body := Envelope{"error": appErr.Message}
		if len(appErr.Details) > 0 {
			body["details"] = appErr.Details
		}
		c.JSON(appErr.StatusCode(), body)
		return
	}

	log.Error().
		Err(err).
		Str("path", c.Request.URL.Path).
		Str("method", c.Request.Method).
		Msg("unhandled error")

	c.JSON(http.StatusInternalServerError, Envelope{
		"error":   "Internal server error",
		"details": err.Error(),
	})
}

// BindError reports a malformed or invalid request body.
func BindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, Envelope{
		"error":   "Invalid request",
		"details": err.Error(),
	})
}
