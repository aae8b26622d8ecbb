package main

import (
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/tahsinkabir/marketmind/internal/metrics"
	"github.com/tahsinkabir/marketmind/internal/middleware"
)

func setupRouter(api *API) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(api.logger))
	router.Use(metricsMiddleware())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	router.GET("/health", api.healthCheck)

	v1 := router.Group("/api/v1")
	v1.Use(middleware.RateLimit(api.limiter))
	{
		v1.POST("/auth/register", api.register)
		v1.POST("/auth/login", api.login)
	}

	authed := v1.Group("")
	authed.Use(middleware.JWTAuth())
	{
		authed.POST("/auth/logout", api.logout)
		authed.GET("/me", api.getMe)
		authed.POST("/me/plan", api.selectPlan)
		authed.PUT("/me/daily-post", api.setDailyPost)
		authed.DELETE("/me/daily-post", api.clearDailyPost)

		// Generation
		authed.POST("/generate/content", api.generateContent)
		authed.POST("/generate/social-post", api.generateSocialPost)
		authed.POST("/generate/image", api.generateImage)
		authed.POST("/generate/strategy", api.generateStrategy)

		// Analysis
		authed.POST("/analyze/problem", api.analyzeProblem)
		authed.POST("/analyze/sheet", api.analyzeSheet)
		authed.POST("/analyze/competitors", api.analyzeCompetitors)

		// Content history
		authed.PUT("/content/:index", api.updateContent)
		authed.POST("/content/:index/video-script", api.generateVideoScript)
		authed.POST("/content/:index/variations/:variationId/toggle-save", api.toggleSavedVariation)
	}

	admin := authed.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/users", api.listUsers)
		admin.PUT("/users/:email/plan", api.adminSetPlan)
		admin.PUT("/users/:email/status", api.adminSetStatus)
		admin.GET("/activities", api.listActivities)
	}

	return router
}

func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		metrics.RecordHTTPRequest(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start).Seconds(),
		)
	}
}
