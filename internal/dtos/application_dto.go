package dtos

// SearchRequest drives the fetch stage: one Adzuna query per term.
type SearchRequest struct {
	Terms    []string `json:"terms" binding:"required,min=1"`
	Location string   `json:"location"`
}

// LetterRequest asks for a cover letter for one stored posting.
type LetterRequest struct {
	JobID  uint   `json:"job_id" binding:"required"`
	CVFile string `json:"cv_file"`
	Mode   string `json:"mode"` // "template" (default) or "llm"
}

// SendApplicationRequest packages and emails an application, then tracks it.
type SendApplicationRequest struct {
	JobID      uint     `json:"job_id" binding:"required"`
	Recipients []string `json:"recipients" binding:"required,min=1"`
	CVFile     string   `json:"cv_file" binding:"required"`
	LetterFile string   `json:"letter_file"`
	Notes      string   `json:"notes"`
}

// TrackRequest appends a manual row to the tracking sheet.
type TrackRequest struct {
	JobTitle string `json:"job_title" binding:"required"`
	Company  string `json:"company" binding:"required"`
	Status   string `json:"status" binding:"required"`

	// Optional fields
	Location        string `json:"location"`
	Created         string `json:"created"`
	SalaryMin       string `json:"salary_min"`
	SalaryMax       string `json:"salary_max"`
	ApplyLink       string `json:"apply_link"`
	ApplicationDate string `json:"application_date"`
	InterviewDate   string `json:"interview_date"`
	Notes           string `json:"notes"`
}

// PipelineRequest runs the full fetch → generate → send → track flow.
type PipelineRequest struct {
	Terms      []string `json:"terms" binding:"required,min=1"`
	Location   string   `json:"location"`
	CVFile     string   `json:"cv_file"`
	Recipients []string `json:"recipients"`
	Mode       string   `json:"mode"`
}
