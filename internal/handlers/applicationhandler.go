package handlers

import (
	"context"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/job-apply-assistant/internal/cv"
	"github.com/justsurfingit/job-apply-assistant/internal/dtos"
	"github.com/justsurfingit/job-apply-assistant/internal/models"
	"github.com/justsurfingit/job-apply-assistant/internal/pipeline"
	"github.com/justsurfingit/job-apply-assistant/internal/services"
)

// Dispatcher delivers application emails.
type Dispatcher interface {
	Send(recipients []string, subject, body string, attachments []string) bool
}

// Tracker is the application-record store behind the handlers. A nil
// Tracker means the spreadsheet is not configured.
type Tracker interface {
	Append(ctx context.Context, rec models.ApplicationRecord) bool
	ListAll(ctx context.Context) []models.ApplicationRecord
}

// ApplicationHandler serves the dispatch/track side of the pipeline.
type ApplicationHandler struct {
	Jobs    *services.JobService
	Letters *services.LetterService
	Email   Dispatcher
	Tracker Tracker

	UploadsDir string
	LettersDir string
}

func NewApplicationHandler(jobs *services.JobService, letters *services.LetterService, email Dispatcher, tracker Tracker, uploadsDir, lettersDir string) *ApplicationHandler {
	return &ApplicationHandler{
		Jobs:       jobs,
		Letters:    letters,
		Email:      email,
		Tracker:    tracker,
		UploadsDir: uploadsDir,
		LettersDir: lettersDir,
	}
}

// SendApplication is POST /applications/send: package CV + cover letter for
// one stored posting, email them, and track the application as Applied.
func (h *ApplicationHandler) SendApplication(c *gin.Context) {
	var req dtos.SendApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	job, err := h.Jobs.JobByID(c.Request.Context(), req.JobID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}

	cvPath := filepath.Join(h.UploadsDir, filepath.Base(req.CVFile))
	cvText, err := cv.ExtractText(cvPath)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read CV: " + err.Error()})
		return
	}
	applicant := cv.ExtractApplicant(cvText)

	letterPath := ""
	if req.LetterFile != "" {
		letterPath = filepath.Join(h.LettersDir, filepath.Base(req.LetterFile))
	} else {
		letter, err := h.Letters.Generate(c.Request.Context(), *job, cvText, services.ModeTemplate)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Cover letter generation failed: " + err.Error()})
			return
		}
		letterPath, err = h.Letters.SaveLetter(letter, applicant.Name)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cover letter: " + err.Error()})
			return
		}
	}

	sent := h.Email.Send(req.Recipients,
		services.ApplicationSubject(job.Title, job.Company),
		services.ApplicationBody(job.Title, job.Company, applicant.Name),
		[]string{cvPath, letterPath})
	if !sent {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to send application email"})
		return
	}

	tracked := false
	if h.Tracker != nil {
		rec := pipeline.RecordForJob(*job, models.StatusApplied)
		rec.Notes = req.Notes
		tracked = h.Tracker.Append(c.Request.Context(), rec)
	}

	c.JSON(http.StatusOK, gin.H{"sent": true, "tracked": tracked})
}

// ListApplications is GET /applications: the full tracking sheet.
func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	if h.Tracker == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Tracker not configured"})
		return
	}
	records := h.Tracker.ListAll(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"count": len(records), "applications": records})
}

// CreateApplication is POST /applications: append one manual row.
func (h *ApplicationHandler) CreateApplication(c *gin.Context) {
	if h.Tracker == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Tracker not configured"})
		return
	}

	var req dtos.TrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	if !models.ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status: " + req.Status})
		return
	}

	rec := models.ApplicationRecord{
		JobTitle:        req.JobTitle,
		Company:         req.Company,
		Location:        req.Location,
		Created:         req.Created,
		SalaryMin:       req.SalaryMin,
		SalaryMax:       req.SalaryMax,
		ApplyLink:       req.ApplyLink,
		Status:          req.Status,
		ApplicationDate: req.ApplicationDate,
		InterviewDate:   req.InterviewDate,
		Notes:           req.Notes,
	}
	if !h.Tracker.Append(c.Request.Context(), rec) {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to update tracking sheet"})
		return
	}
	c.JSON(http.StatusCreated, rec)
}
