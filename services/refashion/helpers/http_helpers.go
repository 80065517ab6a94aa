package helpers

import (
	"errors"
	"fmt"
	"net/http"

	"refashion/internal/refashionerrors"
	"refashion/utils"

	"github.com/gin-gonic/gin"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, refashionerrors.ErrInvalidCategory):
		return http.StatusBadRequest, "invalid bag category"
	case errors.Is(err, refashionerrors.ErrInvalidListing):
		return http.StatusBadRequest, "invalid listing details"
	case errors.Is(err, refashionerrors.ErrInvalidAmount):
		return http.StatusBadRequest, "invalid points amount"
	case errors.Is(err, refashionerrors.ErrListingNotFound):
		return http.StatusNotFound, "listing not found"
	case errors.Is(err, refashionerrors.ErrBagItemNotFound):
		return http.StatusNotFound, "bag item not found"
	case errors.Is(err, refashionerrors.ErrKeyNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, refashionerrors.ErrInsufficientPoints):
		return http.StatusConflict, "insufficient points"
	case errors.Is(err, refashionerrors.ErrNotAuthenticated), errors.Is(err, refashionerrors.ErrUnauthorized):
		return http.StatusUnauthorized, "authentication required"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// RespondError writes the mapped error response and logs it
func RespondError(c *gin.Context, handlerName string, err error, fields map[string]any) {
	status, message := MapErrorToHTTP(err)
	utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)

	if fields == nil {
		fields = map[string]any{}
	}
	fields["handler"] = handlerName
	fields["error"] = err.Error()
	if status >= http.StatusInternalServerError {
		utils.Error(handlerName+": request failed", fields)
		return
	}
	utils.Warn(handlerName+": request rejected", fields)
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
