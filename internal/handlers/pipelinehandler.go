package handlers

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/job-apply-assistant/internal/dtos"
	"github.com/justsurfingit/job-apply-assistant/internal/pipeline"
	"github.com/justsurfingit/job-apply-assistant/internal/services"
)

// PipelineHandler exposes the full four-stage run as one endpoint.
type PipelineHandler struct {
	Pipeline   *pipeline.Pipeline
	UploadsDir string
}

func NewPipelineHandler(p *pipeline.Pipeline, uploadsDir string) *PipelineHandler {
	return &PipelineHandler{Pipeline: p, UploadsDir: uploadsDir}
}

// RunPipeline is POST /pipeline/run.
func (h *PipelineHandler) RunPipeline(c *gin.Context) {
	var req dtos.PipelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	location := req.Location
	if location == "" {
		location = "London"
	}

	params := pipeline.Params{
		Terms:      req.Terms,
		Location:   location,
		Recipients: req.Recipients,
		Mode:       services.GenerationMode(req.Mode),
	}
	if req.CVFile != "" {
		params.CVPath = filepath.Join(h.UploadsDir, filepath.Base(req.CVFile))
	}

	summary, err := h.Pipeline.Run(c.Request.Context(), params)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}
