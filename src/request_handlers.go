package main

import (
	"net/http"

	"shareit/src/middlewares"
	"shareit/src/services"
	"shareit/src/types"

	"github.com/gin-gonic/gin"
)

func requestHandlers(g *gin.RouterGroup, svc *services.ItemRequestService) *gin.RouterGroup {
	requests := g.Group("/requests")
	requests.
		POST("", middlewares.SharerUserID, func(ctx *gin.Context) {
			var body types.CreateItemRequestRequestBody
			if !bindJSON(ctx, &body) {
				return
			}
			request, err := svc.Create(ctx.Request.Context(), ctx.GetUint("id"), body)
			if err != nil {
				ctx.Error(err)
				return
			}
			ctx.JSON(http.StatusCreated, request)
		}).
		GET("", middlewares.SharerUserID, func(ctx *gin.Context) {
			res, err := svc.ListOwn(ctx.Request.Context(), ctx.GetUint("id"))
			if err != nil {
				ctx.Error(err)
				return
			}
			ctx.JSON(http.StatusOK, res)
		}).
		GET("/all", middlewares.OptionalSharerUserID, func(ctx *gin.Context) {
			res, err := svc.ListAll(ctx.Request.Context(), ctx.GetUint("id"))
			if err != nil {
				ctx.Error(err)
				return
			}
			ctx.JSON(http.StatusOK, res)
		}).
		GET("/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if !bindUri(ctx, &params) {
				return
			}
			request, err := svc.Get(ctx.Request.Context(), params.ID)
			if err != nil {
				ctx.Error(err)
				return
			}
			ctx.JSON(http.StatusOK, request)
		})
	return requests
}
