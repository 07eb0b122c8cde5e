// internal/pkg/response/upstream.go
package response

import (
	"net/http"

	"hostel-portal/internal/upstream"

	"github.com/gin-gonic/gin"
)

// UpstreamError relays a failed upstream call to the browser, preserving the
// upstream status and message where one exists.
func UpstreamError(c *gin.Context, err error) {
	if apiErr, ok := upstream.AsError(err); ok {
		Error(c, apiErr.HTTPStatus(), apiErr.Message, nil)
		return
	}
	Error(c, http.StatusInternalServerError, "internal server error", err)
}

// UpstreamSuccess relays a successful upstream result to the browser.
func UpstreamSuccess(c *gin.Context, res *upstream.Result) {
	message := res.Message
	if message == "" {
		message = "OK"
	}
	var data interface{}
	if len(res.Data) > 0 {
		data = res.Data
	}
	Success(c, http.StatusOK, message, data)
}
