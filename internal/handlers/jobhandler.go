package handlers

import (
	"log"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/job-apply-assistant/internal/cv"
	"github.com/justsurfingit/job-apply-assistant/internal/dtos"
	"github.com/justsurfingit/job-apply-assistant/internal/services"
)

// JobHandler serves the search/upload/letter side of the pipeline.
type JobHandler struct {
	Scraper    *services.ScraperService
	Jobs       *services.JobService
	Letters    *services.LetterService
	UploadsDir string
}

func NewJobHandler(scraper *services.ScraperService, jobs *services.JobService, letters *services.LetterService, uploadsDir string) *JobHandler {
	return &JobHandler{
		Scraper:    scraper,
		Jobs:       jobs,
		Letters:    letters,
		UploadsDir: uploadsDir,
	}
}

// SearchJobs is POST /jobs/search. An empty result list means "no results",
// never an error.
func (h *JobHandler) SearchJobs(c *gin.Context) {
	var req dtos.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	location := req.Location
	if location == "" {
		location = "London"
	}

	jobs := h.Scraper.Search(c.Request.Context(), req.Terms, location)
	c.JSON(http.StatusOK, gin.H{"count": len(jobs), "jobs": jobs})
}

// ListJobs is GET /jobs: every posting in the local store.
func (h *JobHandler) ListJobs(c *gin.Context) {
	jobs, err := h.Jobs.SavedJobs(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load saved jobs: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(jobs), "jobs": jobs})
}

// ExportJobs is GET /jobs/export: the saved postings as CSV.
func (h *JobHandler) ExportJobs(c *gin.Context) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="saved_jobs.csv"`)
	if err := h.Jobs.ExportCSV(c.Request.Context(), c.Writer); err != nil {
		log.Printf("CSV export failed: %v", err)
	}
}

// UploadCV is POST /cv. Only pdf, docx and txt files are accepted; the
// response carries best-effort applicant info extracted from the file.
func (h *JobHandler) UploadCV(c *gin.Context) {
	file, err := c.FormFile("cv")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file part"})
		return
	}
	if !cv.IsAllowedFile(file.Filename) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Allowed file types are pdf, docx, and txt"})
		return
	}

	filename := filepath.Base(file.Filename)
	dst := filepath.Join(h.UploadsDir, filename)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file: " + err.Error()})
		return
	}

	text, err := cv.ExtractText(dst)
	if err != nil {
		// Extraction is best-effort; the upload itself succeeded.
		log.Printf("CV text extraction failed for %s: %v", filename, err)
		text = ""
	}
	applicant := cv.ExtractApplicant(text)

	c.JSON(http.StatusCreated, gin.H{
		"cv_file":   filename,
		"applicant": applicant,
	})
}

// GenerateLetter is POST /letters: produce a cover letter for one stored
// posting, in template or llm mode. No fallback between modes.
func (h *JobHandler) GenerateLetter(c *gin.Context) {
	var req dtos.LetterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	job, err := h.Jobs.JobByID(c.Request.Context(), req.JobID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}

	cvText := ""
	if req.CVFile != "" {
		text, err := cv.ExtractText(filepath.Join(h.UploadsDir, filepath.Base(req.CVFile)))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read CV: " + err.Error()})
			return
		}
		cvText = text
	}

	letter, err := h.Letters.Generate(c.Request.Context(), *job, cvText, services.GenerationMode(req.Mode))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cover letter generation failed: " + err.Error()})
		return
	}

	applicant := cv.ExtractApplicant(cvText)
	path, err := h.Letters.SaveLetter(letter, applicant.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cover letter: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"letter":      letter,
		"letter_file": filepath.Base(path),
	})
}
