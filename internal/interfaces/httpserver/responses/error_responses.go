package responses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"support-chat-api/internal/utils/platformerrors"
)

// genericFailureMessage is returned whenever a downstream failure must not
// leak upstream internals to the caller.
const genericFailureMessage = "I apologize, but I'm having trouble processing your request right now. Please try again in a moment."

// ErrorResponse represents an error response with platform error details
type ErrorResponse struct {
	Code      string `json:"code,omitempty"` // UUID from PlatformError
	Error     string `json:"error"`
	Message   string `json:"message,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// HandleError handles domain errors and returns appropriate HTTP responses.
// External, database and internal failures are rewritten to a generic
// apologetic message so upstream details never reach the caller.
func HandleError(reqCtx *gin.Context, err error, message string) {
	var domainErr *platformerrors.PlatformError
	if errors.As(err, &domainErr) {
		statusCode := platformerrors.ErrorTypeToHTTPStatus(domainErr.GetErrorType())

		errorMessage := domainErr.Message
		if errorMessage == "" {
			errorMessage = message
		}
		if sanitizedType(domainErr.GetErrorType()) {
			errorMessage = genericFailureMessage
		}

		reqCtx.AbortWithStatusJSON(statusCode, ErrorResponse{
			Code:      domainErr.GetUUID(),
			Error:     errorMessage,
			Message:   errorMessage,
			RequestID: domainErr.GetRequestID(),
		})
		return
	}
	// Non-platform errors
	reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
		Error:   genericFailureMessage,
		Message: genericFailureMessage,
	})
}

// HandleNewError creates a new typed error at the route layer and handles it
func HandleNewError(reqCtx *gin.Context, errorType platformerrors.ErrorType, message string, uuid string) {
	ctx := reqCtx.Request.Context()
	err := platformerrors.NewError(ctx, platformerrors.LayerRoute, errorType, message, nil, uuid)
	HandleError(reqCtx, err, message)
}

func sanitizedType(errorType platformerrors.ErrorType) bool {
	switch errorType {
	case platformerrors.ErrorTypeExternal,
		platformerrors.ErrorTypeDatabaseError,
		platformerrors.ErrorTypeInternal:
		return true
	}
	return false
}
