package main

import (
	"net/http"

	"shareit/src/middlewares"
	"shareit/src/services"
	"shareit/src/types"

	"github.com/gin-gonic/gin"
)

func itemHandlers(g *gin.RouterGroup, svc *services.ItemService) *gin.RouterGroup {
	items := g.Group("/items", middlewares.SharerUserID)
	items.
		POST("", func(ctx *gin.Context) {
			var body types.ItemRequestBody
			if !bindJSON(ctx, &body) {
				return
			}
			item, err := svc.Create(ctx.Request.Context(), ctx.GetUint("id"), body)
			if err != nil {
				ctx.Error(err)
				return
			}
			ctx.JSON(http.StatusCreated, item)
		}).
		GET("", func(ctx *gin.Context) {
			res, err := svc.ListByOwner(ctx.Request.Context(), ctx.GetUint("id"))
			if err != nil {
				ctx.Error(err)
				return
			}
			ctx.JSON(http.StatusOK, res)
		}).
		GET("/search", func(ctx *gin.Context) {
			var query types.SearchItemsQuery
			if !bindQuery(ctx, &query) {
				return
			}
			res, err := svc.Search(ctx.Request.Context(), ctx.GetUint("id"), query.Text)
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
			item, err := svc.Get(ctx.Request.Context(), ctx.GetUint("id"), params.ID)
			if err != nil {
				ctx.Error(err)
				return
			}
			ctx.JSON(http.StatusOK, item)
		}).
		PATCH("/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if !bindUri(ctx, &params) {
				return
			}
			var body types.ItemRequestBody
			if !bindJSON(ctx, &body) {
				return
			}
			item, err := svc.Update(ctx.Request.Context(), ctx.GetUint("id"), params.ID, body)
			if err != nil {
				ctx.Error(err)
				return
			}
			ctx.JSON(http.StatusOK, item)
		}).
		POST("/:id/comment", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if !bindUri(ctx, &params) {
				return
			}
			var body types.CreateCommentRequestBody
			if !bindJSON(ctx, &body) {
				return
			}
			comment, err := svc.CreateComment(ctx.Request.Context(), ctx.GetUint("id"), params.ID, body)
			if err != nil {
				ctx.Error(err)
				return
			}
			ctx.JSON(http.StatusCreated, comment)
		})
	return items
}
