package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/questdeck/questdeck-backend/internal/api/middleware"
	"github.com/questdeck/questdeck-backend/internal/models"
	"github.com/questdeck/questdeck-backend/internal/service"
)

type InvitationHandler struct {
	invitationService service.InvitationService
}

// AddMember adds a member by email, falling back to a direct invitation
// when the email is not in the directory yet
func (h *InvitationHandler) AddMember(c *gin.Context) {
	accountID, ok := middleware.RequireAccountID(c)
	if !ok {
		return
	}

	var req models.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.invitationService.AddMemberByEmail(c.Request.Context(), c.Param("id"), accountID, req.Email, req.Role)
	if err != nil {
		respondServiceError(c, err, "Failed to add member")
		return
	}

	if result.Member != nil {
		c.JSON(http.StatusCreated, gin.H{"member": toMemberResponse(result.Member)})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"invitation": toInvitationResponse(result.Invitation)})
}

// List lists pending invitations for a campaign
func (h *InvitationHandler) List(c *gin.Context) {
	accountID, ok := middleware.RequireAccountID(c)
	if !ok {
		return
	}

	invitations, err := h.invitationService.ListPending(c.Request.Context(), c.Param("id"), accountID)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch invitations")
		return
	}

	response := make([]models.InvitationResponse, len(invitations))
	for i, invitation := range invitations {
		response[i] = toInvitationResponse(invitation)
	}
	c.JSON(http.StatusOK, response)
}

// Resend re-sends an invitation and extends its expiry
func (h *InvitationHandler) Resend(c *gin.Context) {
	accountID, ok := middleware.RequireAccountID(c)
	if !ok {
		return
	}

	invitation, err := h.invitationService.Resend(c.Request.Context(), c.Param("id"), accountID, c.Param("invId"))
	if err != nil {
		respondServiceError(c, err, "Failed to resend invitation")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "invitation": toInvitationResponse(invitation)})
}

// Revoke deletes a pending invitation
func (h *InvitationHandler) Revoke(c *gin.Context) {
	accountID, ok := middleware.RequireAccountID(c)
	if !ok {
		return
	}

	if err := h.invitationService.Revoke(c.Request.Context(), c.Param("id"), accountID, c.Param("invId")); err != nil {
		respondServiceError(c, err, "Failed to revoke invitation")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invitation revoked"})
}

// Accept consumes an invitation token for the authenticated account
func (h *InvitationHandler) Accept(c *gin.Context) {
	account := middleware.GetAccount(c)
	if account == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req models.AcceptInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.invitationService.Accept(c.Request.Context(), req.Token, account); err != nil {
		respondServiceError(c, err, "Failed to accept invitation")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
