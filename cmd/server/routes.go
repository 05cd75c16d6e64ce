package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bot-commander.backend/internal/interfaces/http/handlers"
)

type routeDeps struct {
	authHandler  *handlers.AuthHandler
	userHandler  *handlers.UserHandler
	botHandler   *handlers.BotHandler
	requireLogin gin.HandlerFunc
	requireAdmin gin.HandlerFunc
}

func registerAPIRoutes(r *gin.Engine, d routeDeps) {
	api := r.Group("/api")
	{
		// Auth routes
		api.POST("/login", d.authHandler.Login)
		api.POST("/logout", d.authHandler.Logout)
		api.GET("/me", d.requireLogin, d.authHandler.Me)

		// User management (admin only)
		users := api.Group("/users")
		users.Use(d.requireLogin, d.requireAdmin)
		{
			users.GET("", d.userHandler.List)
			users.GET("/:id", d.userHandler.Get)
			users.POST("", d.userHandler.Create)
			users.PUT("/:id", d.userHandler.Update)
			users.DELETE("/:id", d.userHandler.Delete)
		}

		// Bot assignment and control
		bots := api.Group("/bots")
		bots.Use(d.requireLogin)
		{
			bots.GET("", d.botHandler.List)
			bots.GET("/:id", d.botHandler.Get)
			bots.POST("/:id/control", d.botHandler.Control)

			// lifecycle operations are admin only
			bots.POST("", d.requireAdmin, d.botHandler.Assign)
			bots.DELETE("/:id", d.requireAdmin, d.botHandler.Unassign)
		}
	}
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "bot-commander-backend",
			"version": "0.1.0",
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
