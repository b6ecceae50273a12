package middlewares

import (
	"log"
	"strconv"
	"strings"

	"shareit/src/config"
	"shareit/src/types"

	"github.com/gin-gonic/gin"
)

// SharerUserID trusts the numeric X-Sharer-User-Id header as the caller's
// identity and stores it under "id". Requests without it fail Validation.
func SharerUserID(ctx *gin.Context) {
	id, err := parseSharerUserID(ctx)
	if err != nil {
		log.Printf("Rejected identity header: %s\n", err.Error())
		ctx.Error(err)
		ctx.Abort()
		return
	}
	ctx.Set("id", id)
}

// OptionalSharerUserID stores the caller id when the header is present.
func OptionalSharerUserID(ctx *gin.Context) {
	if strings.TrimSpace(ctx.GetHeader(config.SHARER_USER_HEADER)) == "" {
		return
	}
	SharerUserID(ctx)
}

func parseSharerUserID(ctx *gin.Context) (uint, error) {
	raw := strings.TrimSpace(ctx.GetHeader(config.SHARER_USER_HEADER))
	if raw == "" {
		return 0, types.NewValidationError("Header %s is required", config.SHARER_USER_HEADER)
	}
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || id == 0 {
		return 0, types.NewValidationError("Header %s must be a positive number, got %q", config.SHARER_USER_HEADER, raw)
	}
	return uint(id), nil
}
