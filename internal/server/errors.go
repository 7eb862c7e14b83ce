package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Rorical/flightai/internal/core"
	"github.com/Rorical/flightai/internal/tools"
)

// Error codes returned in ErrorResponse.Code
const (
	CodeInvalidRequest      = "invalid_request"
	CodeToolError           = "tool_error"
	CodeProviderUnavailable = "provider_unavailable"
	CodeModelError          = "model_error"
	CodeTranslationDisabled = "translation_disabled"
	CodeNotFound            = "not_found"
	CodeInternal            = "internal_error"
)

// writeTurnError maps a failed turn onto a status and error code
func writeTurnError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, tools.ErrUnknownTool),
		errors.Is(err, tools.ErrMalformedArguments),
		errors.Is(err, tools.ErrInvalidArguments):
		writeError(c, http.StatusBadGateway, CodeToolError, err)
	case errors.Is(err, core.ErrProviderUnavailable):
		writeError(c, http.StatusServiceUnavailable, CodeProviderUnavailable, err)
	default:
		writeError(c, http.StatusBadGateway, CodeModelError, err)
	}
}

func writeError(c *gin.Context, status int, code string, err error) {
	c.AbortWithStatusJSON(status, ErrorResponse{Code: code, Message: err.Error()})
}
