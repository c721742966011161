package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/questdeck/questdeck-backend/internal/api/middleware"
	"github.com/questdeck/questdeck-backend/internal/models"
	"github.com/questdeck/questdeck-backend/internal/service"
)

type MissionTypeHandler struct {
	missionService service.MissionTypeService
}

func (h *MissionTypeHandler) Create(c *gin.Context) {
	accountID, ok := middleware.RequireAccountID(c)
	if !ok {
		return
	}

	var req models.CreateMissionTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mt, err := h.missionService.Create(c.Request.Context(), c.Param("id"), accountID, req.Name, req.Description)
	if err != nil {
		respondServiceError(c, err, "Failed to create mission type")
		return
	}

	c.JSON(http.StatusCreated, toMissionTypeResponse(mt))
}

func (h *MissionTypeHandler) List(c *gin.Context) {
	accountID, ok := middleware.RequireAccountID(c)
	if !ok {
		return
	}

	missionTypes, err := h.missionService.List(c.Request.Context(), c.Param("id"), accountID)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch mission types")
		return
	}

	response := make([]models.MissionTypeResponse, len(missionTypes))
	for i, mt := range missionTypes {
		response[i] = toMissionTypeResponse(mt)
	}
	c.JSON(http.StatusOK, response)
}

func (h *MissionTypeHandler) Delete(c *gin.Context) {
	accountID, ok := middleware.RequireAccountID(c)
	if !ok {
		return
	}

	if err := h.missionService.Delete(c.Request.Context(), c.Param("id"), accountID, c.Param("typeId")); err != nil {
		respondServiceError(c, err, "Failed to delete mission type")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Mission type deleted"})
}
