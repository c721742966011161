package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/questdeck/questdeck-backend/internal/api/middleware"
	"github.com/questdeck/questdeck-backend/internal/models"
	"github.com/questdeck/questdeck-backend/internal/service"
)

type InviteLinkHandler struct {
	linkService service.InviteLinkService
}

// Create creates a shareable invite link
func (h *InviteLinkHandler) Create(c *gin.Context) {
	accountID, ok := middleware.RequireAccountID(c)
	if !ok {
		return
	}

	var req models.CreateInviteLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	link, err := h.linkService.Create(c.Request.Context(), c.Param("id"), accountID, req.ExpiresAt, req.MaxUses, req.RequireApproval)
	if err != nil {
		respondServiceError(c, err, "Failed to create invite link")
		return
	}

	c.JSON(http.StatusCreated, toInviteLinkResponse(link))
}

// List lists a campaign's invite links
func (h *InviteLinkHandler) List(c *gin.Context) {
	accountID, ok := middleware.RequireAccountID(c)
	if !ok {
		return
	}

	links, err := h.linkService.List(c.Request.Context(), c.Param("id"), accountID)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch invite links")
		return
	}

	response := make([]models.InviteLinkResponse, len(links))
	for i, link := range links {
		response[i] = toInviteLinkResponse(link)
	}
	c.JSON(http.StatusOK, response)
}

// Revoke deactivates an invite link
func (h *InviteLinkHandler) Revoke(c *gin.Context) {
	accountID, ok := middleware.RequireAccountID(c)
	if !ok {
		return
	}

	if err := h.linkService.Revoke(c.Request.Context(), c.Param("id"), accountID, c.Param("linkId")); err != nil {
		respondServiceError(c, err, "Failed to revoke invite link")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invite link revoked"})
}

// Consume joins the caller through an invite link token
func (h *InviteLinkHandler) Consume(c *gin.Context) {
	account := middleware.GetAccount(c)
	if account == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req models.ConsumeInviteLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.linkService.Consume(c.Request.Context(), req.Token, account)
	if err != nil {
		respondServiceError(c, err, "Failed to join via invite link")
		return
	}

	if result.Member != nil {
		c.JSON(http.StatusCreated, gin.H{"member": toMemberResponse(result.Member)})
		return
	}
	status := http.StatusCreated
	if result.Existing {
		status = http.StatusOK
	}
	c.JSON(status, gin.H{"joinRequest": toJoinRequestResponse(result.Request)})
}
