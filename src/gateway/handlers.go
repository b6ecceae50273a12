package main

import (
	"errors"
	"io"
	"log"
	"net/http"

	"shareit/src/middlewares"
	"shareit/src/types"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// forward relays the request as-is and copies the server's answer back.
func forward(client *ShareItClient, body []byte) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		req := ctx.Request
		res, err := client.Do(req.Context(), req.Method, req.URL.Path, req.URL.RawQuery, req.Header, body)
		if res == nil {
			log.Printf("[gateway] %s %s failed: %s\n", req.Method, req.URL.Path, err.Error())
			ctx.JSON(http.StatusServiceUnavailable, types.ErrorResponse{
				Error:       "Service unavailable",
				Description: err.Error(),
			})
			return
		}
		if errors.Is(err, ErrServerFailure) {
			log.Printf("[gateway] %s\n", err.Error())
		}
		contentType := res.Header.Get("Content-Type")
		if len(res.Body) == 0 {
			ctx.Status(res.Status)
			return
		}
		ctx.Data(res.Status, contentType, res.Body)
	}
}

// validated binds the JSON body into dto, then forwards the original bytes.
func validated(client *ShareItClient, newDTO func() any) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		body, err := io.ReadAll(ctx.Request.Body)
		if err != nil {
			ctx.Error(types.NewValidationError("Unreadable request body: %s", err.Error()))
			return
		}
		if err := binding.JSON.BindBody(body, newDTO()); err != nil {
			log.Printf("[gateway] Rejected %s %s: %s\n", ctx.Request.Method, ctx.Request.URL.Path, err.Error())
			ctx.Error(types.NewValidationError("%s", err.Error()))
			return
		}
		forward(client, body)(ctx)
	}
}

func checkID(ctx *gin.Context) {
	var params types.SimpleRequestParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.Error(types.NewValidationError("Invalid id: %s", ctx.Param("id")))
		ctx.Abort()
	}
}

func checkState(ctx *gin.Context) {
	var query types.BookingStateQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.Error(types.NewValidationError("Malformed query: %s", err.Error()))
		ctx.Abort()
		return
	}
	if _, err := types.ParseBookingState(query.State); err != nil {
		ctx.Error(err)
		ctx.Abort()
	}
}

func checkApproved(ctx *gin.Context) {
	var query types.ApproveBookingQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.Error(types.NewValidationError("Query parameter approved must be true or false"))
		ctx.Abort()
	}
}

func userHandlers(g *gin.RouterGroup, client *ShareItClient) *gin.RouterGroup {
	g.
		GET("/users", forward(client, nil)).
		POST("/users", validated(client, func() any { return &CreateUserRequestBody{} })).
		GET("/users/:id", checkID, forward(client, nil)).
		PATCH("/users/:id", checkID, validated(client, func() any { return &UpdateUserRequestBody{} })).
		DELETE("/users/:id", checkID, forward(client, nil))
	return g
}

func itemHandlers(g *gin.RouterGroup, client *ShareItClient) *gin.RouterGroup {
	items := g.Group("/items", middlewares.SharerUserID)
	items.
		POST("", validated(client, func() any { return &CreateItemRequestBody{} })).
		GET("", forward(client, nil)).
		GET("/search", forward(client, nil)).
		GET("/:id", checkID, forward(client, nil)).
		PATCH("/:id", checkID, validated(client, func() any { return &UpdateItemRequestBody{} })).
		POST("/:id/comment", checkID, validated(client, func() any { return &CreateCommentRequestBody{} }))
	return items
}

func bookingHandlers(g *gin.RouterGroup, client *ShareItClient) *gin.RouterGroup {
	bookings := g.Group("/bookings", middlewares.SharerUserID)
	bookings.
		POST("", validated(client, func() any { return &CreateBookingRequestBody{} })).
		PATCH("/:id", checkID, checkApproved, forward(client, nil)).
		GET("/:id", checkID, forward(client, nil)).
		GET("", checkState, forward(client, nil)).
		GET("/owner", checkState, forward(client, nil))
	return bookings
}

func requestHandlers(g *gin.RouterGroup, client *ShareItClient) *gin.RouterGroup {
	requests := g.Group("/requests")
	requests.
		POST("", middlewares.SharerUserID, validated(client, func() any { return &CreateItemRequestRequestBody{} })).
		GET("", middlewares.SharerUserID, forward(client, nil)).
		GET("/all", middlewares.OptionalSharerUserID, forward(client, nil)).
		GET("/:id", checkID, forward(client, nil))
	return requests
}
