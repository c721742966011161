package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/questdeck/questdeck-backend/internal/api/middleware"
	"github.com/questdeck/questdeck-backend/internal/models"
	"github.com/questdeck/questdeck-backend/internal/service"
)

type MemberHandler struct {
	memberService service.MemberService
}

// List lists campaign members
func (h *MemberHandler) List(c *gin.Context) {
	accountID, ok := middleware.RequireAccountID(c)
	if !ok {
		return
	}

	members, err := h.memberService.List(c.Request.Context(), c.Param("id"), accountID)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch members")
		return
	}

	response := make([]models.MemberResponse, len(members))
	for i, member := range members {
		response[i] = toMemberResponse(member)
	}
	c.JSON(http.StatusOK, response)
}

// ChangeRole assigns co-gm or viewer to a member
func (h *MemberHandler) ChangeRole(c *gin.Context) {
	accountID, ok := middleware.RequireAccountID(c)
	if !ok {
		return
	}

	var req models.ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member, err := h.memberService.ChangeRole(c.Request.Context(), c.Param("id"), accountID, req.MemberID, req.Role)
	if err != nil {
		respondServiceError(c, err, "Failed to change role")
		return
	}

	c.JSON(http.StatusOK, toMemberResponse(member))
}

// Remove removes a member from the campaign
func (h *MemberHandler) Remove(c *gin.Context) {
	accountID, ok := middleware.RequireAccountID(c)
	if !ok {
		return
	}

	memberID := c.Query("memberId")
	if memberID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "memberId query parameter required"})
		return
	}

	if err := h.memberService.Remove(c.Request.Context(), c.Param("id"), accountID, memberID); err != nil {
		respondServiceError(c, err, "Failed to remove member")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member removed"})
}

// Leave removes the caller's own membership
func (h *MemberHandler) Leave(c *gin.Context) {
	accountID, ok := middleware.RequireAccountID(c)
	if !ok {
		return
	}

	if err := h.memberService.Leave(c.Request.Context(), c.Param("id"), accountID); err != nil {
		respondServiceError(c, err, "Failed to leave campaign")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Left campaign"})
}

// UpdateSelf updates the caller's own membership fields
func (h *MemberHandler) UpdateSelf(c *gin.Context) {
	accountID, ok := middleware.RequireAccountID(c)
	if !ok {
		return
	}

	var req models.UpdateSelfRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member, err := h.memberService.UpdateCharacterName(c.Request.Context(), c.Param("id"), accountID, req.CharacterName)
	if err != nil {
		respondServiceError(c, err, "Failed to update membership")
		return
	}

	c.JSON(http.StatusOK, toMemberResponse(member))
}
