package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/JNU-econovation/EATceed-AI/services"
)

// AnalysisController serves the latest completed diet analysis per member.
type AnalysisController struct {
	status *services.AnalysisStatusService
}

func NewAnalysisController(status *services.AnalysisStatusService) *AnalysisController {
	return &AnalysisController{status: status}
}

// GET /analysis/:member_id
func (ctl *AnalysisController) GetAnalysis(c *gin.Context) {
	memberID, err := strconv.ParseUint(c.Param("member_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "INVALID_PARAMETER", "message": "member_id must be an integer"}})
		return
	}

	habits, err := ctl.status.LatestResult(c.Request.Context(), uint(memberID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"weight_prediction":   habits.WeightPrediction,
		"advice_carbohydrate": habits.AdviceCarbohydrate,
		"advice_protein":      habits.AdviceProtein,
		"advice_fat":          habits.AdviceFat,
		"synthesis_advice":    habits.SynthesisAdvice,
		"avg_calorie":         habits.AvgCalorie,
		"analyzed_at":         habits.CreatedAt,
	})
}
