package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JNU-econovation/EATceed-AI/controllers"
)

func SetupRouter(foodImage *controllers.FoodImageController, analysis *controllers.AnalysisController) *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		food := v1.Group("/food")
		{
			food.POST("/image", foodImage.AnalyzeImage)
			food.POST("/similar", foodImage.SearchSimilar)
			food.GET("/image/remaining/:member_id", foodImage.RemainingRequests)
		}

		v1.GET("/analysis/:member_id", analysis.GetAnalysis)
	}

	return r
}
