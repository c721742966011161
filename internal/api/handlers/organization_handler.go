package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/questdeck/questdeck-backend/internal/api/middleware"
	"github.com/questdeck/questdeck-backend/internal/models"
	"github.com/questdeck/questdeck-backend/internal/service"
)

type OrganizationHandler struct {
	orgService service.OrganizationService
}

func (h *OrganizationHandler) Create(c *gin.Context) {
	accountID, ok := middleware.RequireAccountID(c)
	if !ok {
		return
	}

	var req models.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	org, err := h.orgService.Create(c.Request.Context(), c.Param("id"), accountID, req.Name, req.Description, req.Kind)
	if err != nil {
		respondServiceError(c, err, "Failed to create organization")
		return
	}

	c.JSON(http.StatusCreated, toOrganizationResponse(org))
}

func (h *OrganizationHandler) List(c *gin.Context) {
	accountID, ok := middleware.RequireAccountID(c)
	if !ok {
		return
	}

	orgs, err := h.orgService.List(c.Request.Context(), c.Param("id"), accountID)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch organizations")
		return
	}

	response := make([]models.OrganizationResponse, len(orgs))
	for i, org := range orgs {
		response[i] = toOrganizationResponse(org)
	}
	c.JSON(http.StatusOK, response)
}

func (h *OrganizationHandler) Update(c *gin.Context) {
	accountID, ok := middleware.RequireAccountID(c)
	if !ok {
		return
	}

	var req models.UpdateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	org, err := h.orgService.Update(c.Request.Context(), c.Param("id"), accountID, c.Param("orgId"), req.Name, req.Description, req.Kind)
	if err != nil {
		respondServiceError(c, err, "Failed to update organization")
		return
	}

	c.JSON(http.StatusOK, toOrganizationResponse(org))
}

func (h *OrganizationHandler) Delete(c *gin.Context) {
	accountID, ok := middleware.RequireAccountID(c)
	if !ok {
		return
	}

	if err := h.orgService.Delete(c.Request.Context(), c.Param("id"), accountID, c.Param("orgId")); err != nil {
		respondServiceError(c, err, "Failed to delete organization")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Organization deleted"})
}
