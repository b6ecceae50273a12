package main

import (
	"net/http"

	"shareit/src/services"
	"shareit/src/types"

	"github.com/gin-gonic/gin"
)

func userHandlers(g *gin.RouterGroup, svc *services.UserService) *gin.RouterGroup {
	g.
		GET("/users", func(ctx *gin.Context) {
			users, err := svc.List(ctx.Request.Context())
			if err != nil {
				ctx.Error(err)
				return
			}
			ctx.JSON(http.StatusOK, users)
		}).
		POST("/users", func(ctx *gin.Context) {
			var body types.CreateUserRequestBody
			if !bindJSON(ctx, &body) {
				return
			}
			user, err := svc.Create(ctx.Request.Context(), body)
			if err != nil {
				ctx.Error(err)
				return
			}
			ctx.JSON(http.StatusCreated, user)
		}).
		GET("/users/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if !bindUri(ctx, &params) {
				return
			}
			user, err := svc.Get(ctx.Request.Context(), params.ID)
			if err != nil {
				ctx.Error(err)
				return
			}
			ctx.JSON(http.StatusOK, user)
		}).
		PATCH("/users/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if !bindUri(ctx, &params) {
				return
			}
			var body types.UpdateUserRequestBody
			if !bindJSON(ctx, &body) {
				return
			}
			user, err := svc.Update(ctx.Request.Context(), params.ID, body)
			if err != nil {
				ctx.Error(err)
				return
			}
			ctx.JSON(http.StatusOK, user)
		}).
		DELETE("/users/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if !bindUri(ctx, &params) {
				return
			}
			if err := svc.Delete(ctx.Request.Context(), params.ID); err != nil {
				ctx.Error(err)
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}
