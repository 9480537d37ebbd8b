package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mzhao28/commune/utils"
)

// RequestID tags every request with a UUID, echoed in the X-Request-ID
// response header and attached to access log lines.
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		ctx.Set(utils.ContextRequestIDKey, id)
		ctx.Writer.Header().Set("X-Request-ID", id)
		ctx.Next()
	}
}
