package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"jobtrail/internal/dtos"
	"jobtrail/internal/services"
)

// JobHandler exposes ingestion, extraction and analysis over HTTP.
type JobHandler struct {
	JobService      *services.JobService
	AnalysisService *services.AnalysisService
}

func NewJobHandler(jobs *services.JobService, analysis *services.AnalysisService) *JobHandler {
	return &JobHandler{
		JobService:      jobs,
		AnalysisService: analysis,
	}
}

// ScanJob is POST /scan - the extension's ingestion endpoint.
func (h *JobHandler) ScanJob(c *gin.Context) {
	var req dtos.JobScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: title, companyName, description, sourceUrl, sourceSite"})
		return
	}

	result, err := h.JobService.ScanJob(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process job"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// ExtractJob is POST /extract - LLM extraction of raw page content.
func (h *JobHandler) ExtractJob(c *gin.Context) {
	var req dtos.JobExtractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Page content and URL are required"})
		return
	}

	extracted, err := h.AnalysisService.ExtractJobPosting(c.Request.Context(), req.PageContent, req.PageURL, req.PageTitle)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to extract job data"})
		return
	}
	if !extracted.IsJobPage {
		c.JSON(http.StatusOK, gin.H{"isJobPage": false, "error": "This does not appear to be a job posting page"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"isJobPage": true, "data": extracted})
}

// AnalyzeJob is POST /jobs/:id/analyze - re-run match analysis on demand.
func (h *JobHandler) AnalyzeJob(c *gin.Context) {
	job, err := h.JobService.AnalyzeJob(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
	case errors.Is(err, services.ErrNoResume):
		c.JSON(http.StatusBadRequest, gin.H{"error": "No resume found. Please upload your resume first."})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze job"})
	default:
		c.JSON(http.StatusOK, job)
	}
}

func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.JobService.GetJob(c.Param("id"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get job"})
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) ListJobs(c *gin.Context) {
	jobs, err := h.JobService.ListJobs()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list jobs"})
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *JobHandler) DeleteJob(c *gin.Context) {
	err := h.JobService.DeleteJob(c.Param("id"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete job"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
