package middlewares

import (
	"shareit/src/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func SecureHeaders(ctx *gin.Context) {
	ctx.Header("X-Content-Type-Options", "nosniff")
	ctx.Header("X-Frame-Options", "DENY")
	ctx.Header("Referrer-Policy", "no-referrer")
	ctx.Header("Cache-Control", "no-store")
}

// RequestID keeps the inbound X-Request-Id or assigns a fresh one, and echoes it back.
func RequestID(ctx *gin.Context) {
	rid := ctx.GetHeader(config.REQUEST_ID_HEADER)
	if _, err := uuid.Parse(rid); err != nil {
		rid = uuid.NewString()
		ctx.Request.Header.Set(config.REQUEST_ID_HEADER, rid)
	}
	ctx.Set("request_id", rid)
	ctx.Header(config.REQUEST_ID_HEADER, rid)
	ctx.Next()
}
