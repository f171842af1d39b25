package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

// HandleServiceError maps domain errors to HTTP statuses per the error
// taxonomy: token and signature failures are 401, permission failures 403,
// lookups 404, malformed input 400, everything downstream 500.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrMemberNotFound):
		RespondError(c, http.StatusNotFound, "Member not found")
	case errors.Is(err, ErrInvalidCheckInToken):
		RespondError(c, http.StatusUnauthorized, "Invalid or expired check-in link")
	case errors.Is(err, ErrInvalidAlertToken):
		RespondError(c, http.StatusUnauthorized, "Invalid or expired alert link")
	case errors.Is(err, ErrInvalidSession):
		RespondError(c, http.StatusUnauthorized, "Invalid session")
	case errors.Is(err, ErrInvalidJobsToken):
		RespondError(c, http.StatusUnauthorized, "Invalid jobs API token")
	case errors.Is(err, ErrInsufficientPermissions):
		RespondError(c, http.StatusForbidden, "Insufficient permissions")
	case errors.Is(err, ErrCannotRepeatCheckIn):
		RespondError(c, http.StatusBadRequest, "There is no previous check-in to repeat")
	case errors.Is(err, ErrInvalidIsAttribute):
		RespondError(c, http.StatusBadRequest, "Invalid member attribute")
	case errors.Is(err, ErrNoLocationParams):
		RespondError(c, http.StatusBadRequest, "Either a place id or coordinates are required")
	case errors.Is(err, ErrLocationProvider):
		RespondError(c, http.StatusInternalServerError, "Could not resolve location")
	case errors.Is(err, ErrMessageDelivery):
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	case errors.Is(err, ErrDatabaseError):
		log.Printf("Database error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
