package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/questdeck/questdeck-backend/internal/api/middleware"
	"github.com/questdeck/questdeck-backend/internal/models"
	"github.com/questdeck/questdeck-backend/internal/service"
)

type PollHandler struct {
	pollService service.PollService
}

// Open publishes the campaign's job poll under a share token
func (h *PollHandler) Open(c *gin.Context) {
	accountID, ok := middleware.RequireAccountID(c)
	if !ok {
		return
	}

	campaign, err := h.pollService.Open(c.Request.Context(), c.Param("id"), accountID)
	if err != nil {
		respondServiceError(c, err, "Failed to open poll")
		return
	}

	c.JSON(http.StatusOK, gin.H{"pollToken": campaign.PollToken})
}

// Close withdraws the poll share token
func (h *PollHandler) Close(c *gin.Context) {
	accountID, ok := middleware.RequireAccountID(c)
	if !ok {
		return
	}

	if err := h.pollService.Close(c.Request.Context(), c.Param("id"), accountID); err != nil {
		respondServiceError(c, err, "Failed to close poll")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Poll closed"})
}

// View renders the public poll page payload. No authentication.
func (h *PollHandler) View(c *gin.Context) {
	view, err := h.pollService.View(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch poll")
		return
	}

	jobs := make([]models.JobResponse, len(view.Jobs))
	for i, job := range view.Jobs {
		jobs[i] = toJobResponse(job)
	}
	c.JSON(http.StatusOK, models.PollViewResponse{
		CampaignName: view.CampaignName,
		Jobs:         jobs,
		Tallies:      view.Tallies,
	})
}

// Vote casts a named vote for a job. No authentication.
func (h *PollHandler) Vote(c *gin.Context) {
	var req models.CastVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	votes, err := h.pollService.Vote(c.Request.Context(), c.Param("token"), req.JobID, req.VoterName)
	if err != nil {
		respondServiceError(c, err, "Failed to cast vote")
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobId": req.JobID, "votes": votes})
}
