package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/questdeck/questdeck-backend/internal/api/middleware"
	"github.com/questdeck/questdeck-backend/internal/models"
	"github.com/questdeck/questdeck-backend/internal/service"
)

type JoinRequestHandler struct {
	requestService service.JoinRequestService
}

// List lists a campaign's join requests
func (h *JoinRequestHandler) List(c *gin.Context) {
	accountID, ok := middleware.RequireAccountID(c)
	if !ok {
		return
	}

	requests, err := h.requestService.List(c.Request.Context(), c.Param("id"), accountID)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch join requests")
		return
	}

	response := make([]models.JoinRequestResponse, len(requests))
	for i, request := range requests {
		response[i] = toJoinRequestResponse(request)
	}
	c.JSON(http.StatusOK, response)
}

// Review approves or rejects a pending join request
func (h *JoinRequestHandler) Review(c *gin.Context) {
	accountID, ok := middleware.RequireAccountID(c)
	if !ok {
		return
	}

	var req models.ReviewJoinRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := h.requestService.Review(c.Request.Context(), c.Param("id"), accountID, c.Param("reqId"), req.Action)
	if err != nil {
		respondServiceError(c, err, "Failed to review join request")
		return
	}

	c.JSON(http.StatusOK, toJoinRequestResponse(request))
}
