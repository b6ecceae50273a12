package main

import (
	"net/http"

	"shareit/src/middlewares"
	"shareit/src/services"
	"shareit/src/types"

	"github.com/gin-gonic/gin"
)

func bookingHandlers(g *gin.RouterGroup, svc *services.BookingService) *gin.RouterGroup {
	bookings := g.Group("/bookings", middlewares.SharerUserID)
	bookings.
		POST("", func(ctx *gin.Context) {
			var body types.CreateBookingRequestBody
			if !bindJSON(ctx, &body) {
				return
			}
			booking, err := svc.Create(ctx.Request.Context(), ctx.GetUint("id"), body)
			if err != nil {
				ctx.Error(err)
				return
			}
			ctx.JSON(http.StatusCreated, booking)
		}).
		PATCH("/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if !bindUri(ctx, &params) {
				return
			}
			var query types.ApproveBookingQuery
			if !bindQuery(ctx, &query) {
				return
			}
			booking, err := svc.Decide(ctx.Request.Context(), ctx.GetUint("id"), params.ID, *query.Approved)
			if err != nil {
				ctx.Error(err)
				return
			}
			ctx.JSON(http.StatusOK, booking)
		}).
		GET("/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if !bindUri(ctx, &params) {
				return
			}
			booking, err := svc.Get(ctx.Request.Context(), ctx.GetUint("id"), params.ID)
			if err != nil {
				ctx.Error(err)
				return
			}
			ctx.JSON(http.StatusOK, booking)
		}).
		GET("", func(ctx *gin.Context) {
			var query types.BookingStateQuery
			if !bindQuery(ctx, &query) {
				return
			}
			res, err := svc.ListByBooker(ctx.Request.Context(), ctx.GetUint("id"), query.State)
			if err != nil {
				ctx.Error(err)
				return
			}
			ctx.JSON(http.StatusOK, res)
		}).
		GET("/owner", func(ctx *gin.Context) {
			var query types.BookingStateQuery
			if !bindQuery(ctx, &query) {
				return
			}
			res, err := svc.ListByOwner(ctx.Request.Context(), ctx.GetUint("id"), query.State)
			if err != nil {
				ctx.Error(err)
				return
			}
			ctx.JSON(http.StatusOK, res)
		})
	return bookings
}
