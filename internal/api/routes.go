package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"discogswatch/internal/api/handlers"
	"discogswatch/internal/config"
	"discogswatch/internal/service"
)

// SetupRouter builds the read-only HTTP surface. Handlers never talk to
// Discogs; they only read the poller's current snapshot.
func SetupRouter(cfg *config.Config, poller *service.Poller) *gin.Engine {
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORSOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORSOrigins
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	corsConfig.AllowMethods = []string{"GET", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	router.Use(cors.New(corsConfig))

	sensorHandler := handlers.NewSensorHandler(poller, cfg.Name, cfg.EnabledSensors())

	api := router.Group("/api")
	{
		api.GET("/sensors", sensorHandler.ListSensors)
		api.GET("/sensors/:key", sensorHandler.GetSensor)
		api.GET("/status", sensorHandler.GetStatus)
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}
