package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/questdeck/questdeck-backend/internal/api/middleware"
	"github.com/questdeck/questdeck-backend/internal/models"
	"github.com/questdeck/questdeck-backend/internal/service"
)

type CampaignHandler struct {
	campaignService service.CampaignService
}

// Create creates a campaign owned by the caller
func (h *CampaignHandler) Create(c *gin.Context) {
	account := middleware.GetAccount(c)
	if account == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req models.CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	campaign, err := h.campaignService.Create(c.Request.Context(), account, req.Name, req.Description, req.GameSystem)
	if err != nil {
		respondServiceError(c, err, "Failed to create campaign")
		return
	}

	c.JSON(http.StatusCreated, toCampaignResponse(campaign))
}

// List lists the caller's campaigns
func (h *CampaignHandler) List(c *gin.Context) {
	accountID, ok := middleware.RequireAccountID(c)
	if !ok {
		return
	}

	campaigns, err := h.campaignService.ListForAccount(c.Request.Context(), accountID)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch campaigns")
		return
	}

	response := make([]models.CampaignResponse, len(campaigns))
	for i, campaign := range campaigns {
		response[i] = toCampaignResponse(campaign)
	}
	c.JSON(http.StatusOK, response)
}

// Get returns one campaign the caller is a member of
func (h *CampaignHandler) Get(c *gin.Context) {
	accountID, ok := middleware.RequireAccountID(c)
	if !ok {
		return
	}

	campaign, err := h.campaignService.Get(c.Request.Context(), c.Param("id"), accountID)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch campaign")
		return
	}

	c.JSON(http.StatusOK, toCampaignResponse(campaign))
}

// Update edits campaign fields
func (h *CampaignHandler) Update(c *gin.Context) {
	accountID, ok := middleware.RequireAccountID(c)
	if !ok {
		return
	}

	var req models.UpdateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	campaign, err := h.campaignService.Update(c.Request.Context(), c.Param("id"), accountID, req.Name, req.Description, req.GameSystem)
	if err != nil {
		respondServiceError(c, err, "Failed to update campaign")
		return
	}

	c.JSON(http.StatusOK, toCampaignResponse(campaign))
}

// Delete removes a campaign and everything scoped to it
func (h *CampaignHandler) Delete(c *gin.Context) {
	accountID, ok := middleware.RequireAccountID(c)
	if !ok {
		return
	}

	if err := h.campaignService.Delete(c.Request.Context(), c.Param("id"), accountID); err != nil {
		respondServiceError(c, err, "Failed to delete campaign")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Campaign deleted"})
}
