package main

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tahsinkabir/marketmind/internal/account"
	"github.com/tahsinkabir/marketmind/internal/metrics"
	"github.com/tahsinkabir/marketmind/internal/middleware"
	"github.com/tahsinkabir/marketmind/internal/store"
	"github.com/tahsinkabir/marketmind/pkg/models"
)

// currentUser loads the authenticated account, or writes the error response
// and returns nil.
func (api *API) currentUser(c *gin.Context) *models.User {
	email, _ := middleware.GetUserEmail(c)

	user, err := api.store.GetUserByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return nil
	}
	return user
}

func contentIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid content index"})
		return 0, false
	}
	return index, true
}

// Generate marketing content endpoint
func (api *API) generateContent(c *gin.Context) {
	user := api.currentUser(c)
	if user == nil {
		return
	}

	var req struct {
		ProductInfo  models.ProductInfo  `json:"productInfo" binding:"required"`
		CampaignType models.CampaignType `json:"campaignType"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	content, err := api.advisor.GenerateMarketingContent(c.Request.Context(), req.ProductInfo, user.Plan, req.CampaignType)
	if err != nil {
		metrics.RecordError("advisor", "marketing_content")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	updated, err := api.account.AddGeneratedContent(c.Request.Context(), user.Email, *content)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"content": updated.GeneratedContent[0],
		"user":    sanitize(updated),
	})
}

// Generate social post endpoint
func (api *API) generateSocialPost(c *gin.Context) {
	user := api.currentUser(c)
	if user == nil {
		return
	}

	var req struct {
		ProductInfo models.ProductInfo `json:"productInfo" binding:"required"`
		Date        string             `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := api.advisor.GenerateSocialPost(c.Request.Context(), req.ProductInfo)
	if err != nil {
		metrics.RecordError("advisor", "social_post")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	updated, err := api.account.SetDailySocialPost(c.Request.Context(), user.Email, &models.DailySocialPost{
		Date:    req.Date,
		Content: *post,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"post": updated.DailySocialPost,
		"user": sanitize(updated),
	})
}

// Generate image endpoint
func (api *API) generateImage(c *gin.Context) {
	email, _ := middleware.GetUserEmail(c)

	var req struct {
		Prompt string `json:"prompt" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	data, err := api.advisor.GenerateImage(c.Request.Context(), req.Prompt)
	if err != nil {
		metrics.RecordError("advisor", "image")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	resp := gin.H{
		"imageBase64": base64.StdEncoding.EncodeToString(data),
	}

	// Stash a copy in object storage when it is available
	if api.images != nil {
		objectName, err := api.images.UploadImage(c.Request.Context(), email, data)
		if err != nil {
			metrics.RecordImageUpload("error", 0)
			api.logger.WithError(err).Warn("Failed to store generated image")
		} else {
			metrics.RecordImageUpload("success", len(data))
			if url, err := api.images.GetURL(c.Request.Context(), objectName); err == nil {
				resp["imageUrl"] = url
			}
		}
	}

	c.JSON(http.StatusCreated, resp)
}

// Generate campaign strategy endpoint
func (api *API) generateStrategy(c *gin.Context) {
	var req struct {
		ProductInfo models.ProductInfo  `json:"productInfo" binding:"required"`
		Goal        models.CampaignGoal `json:"goal" binding:"required"`
		TotalBudget float64             `json:"totalBudget" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	strategy, err := api.advisor.GenerateCampaignStrategy(c.Request.Context(), req.ProductInfo, req.Goal, req.TotalBudget)
	if err != nil {
		metrics.RecordError("advisor", "campaign_strategy")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, strategy)
}

// Analyze business problem endpoint
func (api *API) analyzeProblem(c *gin.Context) {
	var req struct {
		ImageBase64 string `json:"imageBase64" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := api.advisor.AnalyzeBusinessProblem(c.Request.Context(), req.ImageBase64, req.Description)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Analyze ad sheet endpoint
func (api *API) analyzeSheet(c *gin.Context) {
	var req struct {
		SheetURL string `json:"sheetUrl" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := api.advisor.AnalyzeAdSheet(c.Request.Context(), req.SheetURL)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Analyze competitors endpoint
func (api *API) analyzeCompetitors(c *gin.Context) {
	var req struct {
		Keyword        string `json:"keyword" binding:"required"`
		CompetitorInfo string `json:"competitorInfo"`
		MyProductInfo  string `json:"myProductInfo"`
		ImageBase64    string `json:"imageBase64"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := api.advisor.GenerateCompetitorAnalysis(c.Request.Context(), req.Keyword, req.CompetitorInfo, req.MyProductInfo, req.ImageBase64)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Update content entry endpoint
func (api *API) updateContent(c *gin.Context) {
	email, _ := middleware.GetUserEmail(c)

	index, ok := contentIndex(c)
	if !ok {
		return
	}

	var req models.GeneratedContent
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := api.account.UpdateGeneratedContent(c.Request.Context(), email, index, req)
	if err != nil {
		if errors.Is(err, account.ErrInvalidIndex) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, sanitize(user))
}

// Generate video script endpoint
func (api *API) generateVideoScript(c *gin.Context) {
	email, _ := middleware.GetUserEmail(c)

	index, ok := contentIndex(c)
	if !ok {
		return
	}

	var req struct {
		AdCopy string `json:"adCopy" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	script, err := api.advisor.GenerateVideoScript(c.Request.Context(), req.AdCopy)
	if err != nil {
		metrics.RecordError("advisor", "video_script")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	user, err := api.account.AttachVideoScript(c.Request.Context(), email, index, *script)
	if err != nil {
		if errors.Is(err, account.ErrInvalidIndex) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"videoScript": script,
		"user":        sanitize(user),
	})
}

// Toggle saved variation endpoint
func (api *API) toggleSavedVariation(c *gin.Context) {
	email, _ := middleware.GetUserEmail(c)

	index, ok := contentIndex(c)
	if !ok {
		return
	}
	variationID, err := strconv.Atoi(c.Param("variationId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid variation id"})
		return
	}

	user, err := api.account.ToggleSavedVariation(c.Request.Context(), email, index, variationID)
	if err != nil {
		if errors.Is(err, account.ErrInvalidIndex) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, sanitize(user))
}
