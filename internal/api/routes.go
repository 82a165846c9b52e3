package api

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pokedata/cardwiki/internal/api/handlers"
	"github.com/pokedata/cardwiki/internal/metrics"
	"github.com/pokedata/cardwiki/internal/services"
)

func SetupRouter(joinService *services.JoinService) *gin.Engine {
	router := gin.Default()

	// CORS configuration - allow origins from environment or use defaults
	config := cors.DefaultConfig()
	if corsOrigins := os.Getenv("CORS_ALLOWED_ORIGINS"); corsOrigins != "" {
		config.AllowOrigins = strings.Split(corsOrigins, ",")
	} else {
		config.AllowOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	config.AllowCredentials = false
	router.Use(cors.New(config))
	router.Use(metricsMiddleware())

	entityHandler := handlers.NewEntityHandler(joinService)
	wikiHandler := handlers.NewWikiHandler(joinService)
	adminHandler := handlers.NewAdminHandler(joinService)

	api := router.Group("/api")
	{
		pokemon := api.Group("/pokemon")
		{
			pokemon.GET("", entityHandler.ListEntities)
			pokemon.GET("/search", entityHandler.SearchEntities)
			pokemon.GET("/:name", entityHandler.GetEntity)
		}

		wiki := api.Group("/wiki")
		{
			wiki.GET("", wikiHandler.ListWikiPages)
			wiki.GET("/:title", wikiHandler.GetWikiInfo)
		}

		api.GET("/stats", entityHandler.GetStats)
		api.GET("/names/decompose", entityHandler.DecomposeName)

		admin := api.Group("/admin")
		{
			admin.POST("/rejoin", adminHandler.Rejoin)
			admin.GET("/runs/latest", adminHandler.LatestRun)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}

// metricsMiddleware records request counts and latency per route.
func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method, path, strconv.Itoa(c.Writer.Status()),
		).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(
			c.Request.Method, path,
		).Observe(time.Since(start).Seconds())
	}
}
