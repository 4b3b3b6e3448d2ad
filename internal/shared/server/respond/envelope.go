package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"filemanager-backend/internal/shared/telemetry"
)

const (
	statusSuccess = "SUCCESS"
	statusError   = "ERROR"
)

// Envelope is the body shape of every JSON response.
type Envelope struct {
	Status         string `json:"status"`
	Message        string `json:"message"`
	ErrorCode      int    `json:"errorCode,omitempty"`
	Data           any    `json:"data"`
	DisplayMessage string `json:"displayMessage"`
}

// Success writes a 200 response carrying data.
func Success(c *gin.Context, st Status, data any) {
	c.JSON(http.StatusOK, Envelope{
		Status:         statusSuccess,
		Message:        st.Message,
		Data:           data,
		DisplayMessage: DisplayMessage(c, st),
	})
}

// Failure logs and writes an error response, aborting the handler chain.
func Failure(c *gin.Context, httpStatus int, st Status, data any) {
	fields := map[string]any{
		"status":     httpStatus,
		"error_code": st.Code,
		"message":    st.Message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if ownerID := c.GetString("ownerId"); ownerID != "" {
		fields["owner_id"] = ownerID
	}
	telemetry.Error("http.error", fields)

	c.AbortWithStatusJSON(httpStatus, Envelope{
		Status:         statusError,
		Message:        st.Message,
		ErrorCode:      st.Code,
		Data:           data,
		DisplayMessage: DisplayMessage(c, st),
	})
}

// BadRequest writes a 400 error response.
func BadRequest(c *gin.Context, st Status, data any) {
	Failure(c, http.StatusBadRequest, st, data)
}

// InternalError writes a 500 error response.
func InternalError(c *gin.Context) {
	Failure(c, http.StatusInternalServerError, InternalServerError, nil)
}

// JSON writes a raw JSON payload without the envelope.
func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}
