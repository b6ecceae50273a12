package middlewares

import (
	"log"

	"shareit/src/types"

	"github.com/gin-gonic/gin"
)

// ErrorResponder renders the last error a handler attached with ctx.Error.
func ErrorResponder(ctx *gin.Context) {
	ctx.Next()

	if len(ctx.Errors) == 0 || ctx.Writer.Written() {
		return
	}
	err := ctx.Errors.Last().Err
	status, category := types.HTTPStatus(err)
	if status >= 500 {
		log.Printf("[%s %s] %s\n", ctx.Request.Method, ctx.Request.URL.Path, err.Error())
		ctx.JSON(status, types.ErrorResponse{Error: category, Description: category})
		return
	}
	ctx.JSON(status, types.ErrorResponse{Error: category, Description: err.Error()})
}
