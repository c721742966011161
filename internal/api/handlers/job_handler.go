package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/questdeck/questdeck-backend/internal/api/middleware"
	"github.com/questdeck/questdeck-backend/internal/models"
	"github.com/questdeck/questdeck-backend/internal/service"
)

type JobHandler struct {
	jobService service.JobService
}

// Generate asks the generation service for a new job posting
func (h *JobHandler) Generate(c *gin.Context) {
	accountID, ok := middleware.RequireAccountID(c)
	if !ok {
		return
	}

	var req models.GenerateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	job, err := h.jobService.Generate(c.Request.Context(), c.Param("id"), accountID, &service.GenerateJobInput{
		OrganizationID: req.OrganizationID,
		MissionTypeID:  req.MissionTypeID,
		Prompt:         req.Prompt,
	})
	if err != nil {
		respondServiceError(c, err, "Failed to generate job")
		return
	}

	c.JSON(http.StatusCreated, toJobResponse(job))
}

// List lists jobs, optionally filtered by status
func (h *JobHandler) List(c *gin.Context) {
	accountID, ok := middleware.RequireAccountID(c)
	if !ok {
		return
	}

	jobs, err := h.jobService.List(c.Request.Context(), c.Param("id"), accountID, c.Query("status"))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch jobs")
		return
	}

	response := make([]models.JobResponse, len(jobs))
	for i, job := range jobs {
		response[i] = toJobResponse(job)
	}
	c.JSON(http.StatusOK, response)
}

// Get returns one job
func (h *JobHandler) Get(c *gin.Context) {
	accountID, ok := middleware.RequireAccountID(c)
	if !ok {
		return
	}

	job, err := h.jobService.Get(c.Request.Context(), c.Param("id"), accountID, c.Param("jobId"))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch job")
		return
	}

	c.JSON(http.StatusOK, toJobResponse(job))
}

// UpdateStatus moves a job between open, played and archived
func (h *JobHandler) UpdateStatus(c *gin.Context) {
	accountID, ok := middleware.RequireAccountID(c)
	if !ok {
		return
	}

	var req models.UpdateJobStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	job, err := h.jobService.UpdateStatus(c.Request.Context(), c.Param("id"), accountID, c.Param("jobId"), req.Status)
	if err != nil {
		respondServiceError(c, err, "Failed to update job status")
		return
	}

	c.JSON(http.StatusOK, toJobResponse(job))
}

// Delete removes a job and its votes
func (h *JobHandler) Delete(c *gin.Context) {
	accountID, ok := middleware.RequireAccountID(c)
	if !ok {
		return
	}

	if err := h.jobService.Delete(c.Request.Context(), c.Param("id"), accountID, c.Param("jobId")); err != nil {
		respondServiceError(c, err, "Failed to delete job")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Job deleted"})
}
