package models

import "time"

// Application status values tracked in the spreadsheet.
const (
	StatusInterested = "Interested"
	StatusApplied    = "Applied"
	StatusInterview  = "Interview"
	StatusOffer      = "Offer"
	StatusRejected   = "Rejected"
)

// ValidStatus reports whether s is one of the tracked status values.
func ValidStatus(s string) bool {
	switch s {
	case StatusInterested, StatusApplied, StatusInterview, StatusOffer, StatusRejected:
		return true
	}
	return false
}

// JobPosting is a single listing fetched from the Adzuna search API.
// The jobs table is append-only: repeated searches may store duplicates.
type JobPosting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	JobTitle     string   `json:"job_title"`
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Location     string   `json:"location"`
	Created      string   `json:"created"`
	Description  string   `gorm:"type:text" json:"description"`
	SalaryMin    *float64 `json:"salary_min"`
	SalaryMax    *float64 `json:"salary_max"`
	ContractType string   `json:"contract_type"`
	ContractTime string   `json:"contract_time"`
	ApplyLink    string   `json:"apply_link"`
}

// TableName keeps the historical table name used by the scraper.
func (JobPosting) TableName() string { return "jobs" }

// Applicant is best-effort contact info pulled from an uploaded CV.
// No validation is applied; missing lines fall back to placeholders.
type Applicant struct {
	Name        string `json:"name"`
	ContactInfo string `json:"contact_info"`
}

// ApplicationRecord is one row of the tracking spreadsheet, in column order.
type ApplicationRecord struct {
	JobTitle        string `json:"job_title"`
	Company         string `json:"company"`
	Location        string `json:"location"`
	Created         string `json:"created"`
	SalaryMin       string `json:"salary_min"`
	SalaryMax       string `json:"salary_max"`
	ApplyLink       string `json:"apply_link"`
	Status          string `json:"status"`
	ApplicationDate string `json:"application_date"`
	InterviewDate   string `json:"interview_date"`
	Notes           string `json:"notes"`
}
