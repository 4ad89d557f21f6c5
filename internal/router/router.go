package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Octopus30/health-analysis/internal/report"
)

func NewRouter(reportHandler *report.Handler) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	reports := r.Group("/reports")
	{
		reports.POST("/upload", reportHandler.Upload)
		reports.POST("/:id/extract", reportHandler.Extract)
		reports.POST("/:id/analyze", reportHandler.Analyze)
		reports.GET("/:id", reportHandler.Get)
		reports.GET("/:id/status", reportHandler.GetStatus)
		reports.GET("/:id/results.csv", reportHandler.DownloadResult)
	}

	return r
}
