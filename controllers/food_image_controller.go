package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/JNU-econovation/EATceed-AI/services"
)

// FoodImageController exposes the quota-gated image analysis pipeline.
type FoodImageController struct {
	quota     *services.QuotaService
	foodImage *services.FoodImageService
}

func NewFoodImageController(quota *services.QuotaService, foodImage *services.FoodImageService) *FoodImageController {
	return &FoodImageController{quota: quota, foodImage: foodImage}
}

// stripDataURI drops an optional data URI prefix so the service always sees
// bare base64.
func stripDataURI(s string) string {
	if strings.HasPrefix(s, "data:image") {
		if idx := strings.Index(s, "base64,"); idx >= 0 {
			return s[idx+len("base64,"):]
		}
	}
	return s
}

// POST /food/image  { "member_id": 1, "image_base64": "..." }
func (ctl *FoodImageController) AnalyzeImage(c *gin.Context) {
	var req struct {
		MemberID    uint   `json:"member_id" binding:"required"`
		ImageBase64 string `json:"image_base64" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "INVALID_BODY", "message": err.Error()}})
		return
	}

	// Fail fast before the expensive vision call; the quota is only consumed
	// once the analysis actually succeeded.
	if _, err := ctl.quota.Check(c.Request.Context(), req.MemberID); err != nil {
		respondError(c, err)
		return
	}

	foodName, err := ctl.foodImage.Identify(c.Request.Context(), stripDataURI(req.ImageBase64))
	if err != nil {
		respondError(c, err)
		return
	}

	similar, err := ctl.foodImage.SearchSimilar(c.Request.Context(), foodName)
	if err != nil {
		respondError(c, err)
		return
	}

	remaining, err := ctl.quota.Consume(c.Request.Context(), req.MemberID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"food_name":          foodName,
		"similar_foods":      similar,
		"remaining_requests": remaining,
	})
}

// POST /food/similar  { "food_name": "..." }
func (ctl *FoodImageController) SearchSimilar(c *gin.Context) {
	var req struct {
		FoodName string `json:"food_name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "INVALID_BODY", "message": err.Error()}})
		return
	}

	similar, err := ctl.foodImage.SearchSimilar(c.Request.Context(), req.FoodName)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"similar_foods": similar})
}

// GET /food/image/remaining/:member_id
func (ctl *FoodImageController) RemainingRequests(c *gin.Context) {
	memberID, err := strconv.ParseUint(c.Param("member_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "INVALID_PARAMETER", "message": "member_id must be an integer"}})
		return
	}

	remaining, err := ctl.quota.Remaining(c.Request.Context(), uint(memberID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"remaining_requests": remaining})
}
