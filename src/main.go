package main

import (
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"path"

	"shareit/src/boot"
	"shareit/src/config"
	"shareit/src/middlewares"
	"shareit/src/services"

	"github.com/covalenthq/lumberjack"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func setupRouter() *gin.Engine {
	router := gin.Default()
	router.Use(middlewares.SecureHeaders, middlewares.RequestID, middlewares.ErrorResponder)
	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, "ok")
	})
	return router
}

func maintenanceModeMiddleware(g *gin.Engine) *gin.Engine {
	g.Use(func(ctx *gin.Context) {
		if config.IsMaintenance() {
			err := errors.New("server is under maintenance")
			log.Println(err.Error())
			ctx.AbortWithStatusJSON(http.StatusServiceUnavailable, err.Error())
			return
		}
	})
	return g
}

func apiRoutes(g *gin.Engine, svc *services.Services) *gin.RouterGroup {
	api := g.Group("")
	userHandlers(api, svc.Users)
	itemHandlers(api, svc.Items)
	bookingHandlers(api, svc.Bookings)
	requestHandlers(api, svc.Requests)
	return api
}

func initLogger() {
	cwd, _ := os.Getwd()
	logsDir := path.Join(cwd, "logs")
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		log.Printf("Could not create logs directory: %s\n", err.Error())
		return
	}
	serverLogs := path.Join(logsDir, "server.log")
	apiLogs := path.Join(logsDir, "api.log")

	f, _ := os.Create(apiLogs)
	gin.DefaultWriter = io.MultiWriter(f, os.Stdout)
	log.SetOutput(&lumberjack.Logger{
		Filename:   serverLogs,
		MaxSize:    500,
		MaxBackups: 3,
		MaxAge:     30,
		Compress:   true,
	})
}

func main() {
	if config.IsLocal() {
		cwd, _ := os.Getwd()
		if err := godotenv.Load(path.Join(cwd, ".env")); err != nil {
			panic(err)
		}
	}
	initLogger()

	svc := boot.InitServices()

	router := setupRouter()
	if config.IsLocal() {
		router.Use(cors.Default())
	} else {
		cc := cors.DefaultConfig()
		cc.AllowAllOrigins = true
		cc.AllowHeaders = append(cc.AllowHeaders, config.SHARER_USER_HEADER, config.REQUEST_ID_HEADER)
		cc.ExposeHeaders = append(cc.ExposeHeaders, config.REQUEST_ID_HEADER)
		router.Use(cors.New(cc))
	}
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router = maintenanceModeMiddleware(router)

	apiRoutes(router, svc)

	if err := router.Run(":" + config.GetServerPort()); err != nil {
		log.Fatalf("Failed to start server: %s", err)
	}
}
