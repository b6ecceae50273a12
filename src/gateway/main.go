package main

import (
	"io"
	"log"
	"net/http"
	"os"
	"path"

	"shareit/src/config"
	"shareit/src/middlewares"

	"github.com/covalenthq/lumberjack"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func setupRouter(client *ShareItClient) *gin.Engine {
	router := gin.Default()
	router.Use(middlewares.SecureHeaders, middlewares.RequestID, cors.Default(), middlewares.ErrorResponder)
	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, "ok")
	})

	api := router.Group("")
	userHandlers(api, client)
	itemHandlers(api, client)
	bookingHandlers(api, client)
	requestHandlers(api, client)
	return router
}

func initLogger() {
	cwd, _ := os.Getwd()
	logsDir := path.Join(cwd, "logs")
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		log.Printf("Could not create logs directory: %s\n", err.Error())
		return
	}
	f, _ := os.Create(path.Join(logsDir, "gateway-api.log"))
	gin.DefaultWriter = io.MultiWriter(f, os.Stdout)
	log.SetOutput(&lumberjack.Logger{
		Filename:   path.Join(logsDir, "gateway.log"),
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
	registerValidators()

	client := NewShareItClient(config.GetServerURL(), config.GetGatewayTimeout())
	router := setupRouter(client)

	log.Printf("[gateway] forwarding to %s\n", config.GetServerURL())
	if err := router.Run(":" + config.GetGatewayPort()); err != nil {
		log.Fatalf("Failed to start gateway: %s", err)
	}
}
