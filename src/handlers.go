package main

import (
	"log"

	"shareit/src/types"

	"github.com/gin-gonic/gin"
)

func bindUri(ctx *gin.Context, params *types.SimpleRequestParams) bool {
	if err := ctx.ShouldBindUri(params); err != nil {
		ctx.Error(types.NewValidationError("Invalid id: %s", ctx.Param("id")))
		return false
	}
	return true
}

func bindJSON(ctx *gin.Context, body any) bool {
	if err := ctx.ShouldBindJSON(body); err != nil {
		log.Printf("Error while parsing request body: %s\n", err.Error())
		ctx.Error(types.NewValidationError("Malformed request body: %s", err.Error()))
		return false
	}
	return true
}

func bindQuery(ctx *gin.Context, query any) bool {
	if err := ctx.ShouldBindQuery(query); err != nil {
		log.Printf("Error while parsing request params: %s\n", err.Error())
		ctx.Error(types.NewValidationError("Malformed query: %s", err.Error()))
		return false
	}
	return true
}
