package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ProxyError is the machine-readable body the proxy returns for failures it
// produces itself, as opposed to bodies relayed from the upstream.
type ProxyError struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Error sends a proxy-originated error with the specified status code.
func Error(c *gin.Context, code int, errMsg, detail string) {
	c.AbortWithStatusJSON(code, ProxyError{
		Error:   errMsg,
		Message: detail,
	})
}

// Fail sends an internal server error response (500).
func Fail(c *gin.Context, errMsg, detail string) {
	Error(c, http.StatusInternalServerError, errMsg, detail)
}

// Relay copies an upstream status and JSON body through unmodified.
func Relay(c *gin.Context, status int, body []byte) {
	c.Data(status, "application/json", body)
}
