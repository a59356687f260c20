package api

import (
	"net/http"

	"schemesathi/internal/common/errors"

	"github.com/gin-gonic/gin"
)

const permissionDeniedMessage = "You don't have permission to do that."

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func statusFor(code errors.ErrorCode) int {
	switch code {
	case errors.ErrCodeNotAuthenticated:
		return http.StatusUnauthorized
	case errors.ErrCodePermissionDenied:
		return http.StatusForbidden
	case errors.ErrCodeSchemeNotFound, errors.ErrCodeApplicationNotFound, errors.ErrCodeProfileRequired:
		return http.StatusNotFound
	case errors.ErrCodeValidationFailed:
		return http.StatusBadRequest
	case errors.ErrCodeDuplicateApplication, errors.ErrCodeInvalidStatusTransition:
		return http.StatusConflict
	case errors.ErrCodeInternal:
		return http.StatusInternalServerError
	}
	if errors.IsRetryableErrorCode(code) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// writeError maps err to a status and a user-safe message. Diagnostics stay in the log.
func (s *Server) writeError(c *gin.Context, err error) {
	std := errors.AsStandardError(err)
	status := statusFor(std.Code)

	fields := map[string]interface{}{
		"code":    std.Code,
		"details": std.Details,
		"route":   c.FullPath(),
	}
	for k, v := range std.Metadata {
		fields[k] = v
	}

	body := errorBody{Code: string(std.Code), Message: std.Message}
	switch {
	case std.Code == errors.ErrCodePermissionDenied:
		body.Message = permissionDeniedMessage
		s.logger.Error("permission denied", fields)
	case status >= 500:
		s.logger.Error("request error", fields)
	default:
		s.logger.Debug("request rejected", fields)
	}

	c.JSON(status, gin.H{"error": body})
}
