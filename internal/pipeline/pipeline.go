package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/justsurfingit/job-apply-assistant/internal/cv"
	"github.com/justsurfingit/job-apply-assistant/internal/models"
	"github.com/justsurfingit/job-apply-assistant/internal/services"
)

// The pipeline runs four named stages in order: fetch, generate, send,
// track. Each stage is an injected collaborator; there is no agent layer.

// Fetcher pulls postings for the search terms.
type Fetcher interface {
	Search(ctx context.Context, terms []string, location string) []models.JobPosting
}

// LetterWriter generates cover-letter prose and persists it to disk.
type LetterWriter interface {
	Generate(ctx context.Context, job models.JobPosting, cvText string, mode services.GenerationMode) (string, error)
	SaveLetter(letter, applicantName string) (string, error)
}

// Dispatcher emails the packaged application.
type Dispatcher interface {
	Send(recipients []string, subject, body string, attachments []string) bool
}

// Tracker records application status rows.
type Tracker interface {
	Append(ctx context.Context, rec models.ApplicationRecord) bool
}

// Deps wires the four stage collaborators. Tracker may be nil when the
// spreadsheet is not configured; tracking is then skipped.
type Deps struct {
	Fetcher Fetcher
	Letters LetterWriter
	Email   Dispatcher
	Tracker Tracker
}

type Pipeline struct {
	fetcher Fetcher
	letters LetterWriter
	email   Dispatcher
	tracker Tracker
}

func New(deps Deps) *Pipeline {
	return &Pipeline{
		fetcher: deps.Fetcher,
		letters: deps.Letters,
		email:   deps.Email,
		tracker: deps.Tracker,
	}
}

// Params describes one full pipeline run. When Recipients is empty, the
// send stage is skipped and postings are tracked as Interested instead of
// Applied.
type Params struct {
	Terms      []string
	Location   string
	CVPath     string
	Recipients []string
	Mode       services.GenerationMode
}

// Summary reports per-stage outcomes of a run.
type Summary struct {
	Fetched  int      `json:"fetched"`
	Letters  int      `json:"letters"`
	Sent     int      `json:"sent"`
	Tracked  int      `json:"tracked"`
	Failures []string `json:"failures,omitempty"`
}

// Run executes fetch → generate → send → track for every fetched posting.
// A posting whose letter fails is skipped with a recorded failure; a failed
// send or track is recorded and the run continues. Run itself only errors
// when the whole run is unusable (no terms).
func (p *Pipeline) Run(ctx context.Context, params Params) (*Summary, error) {
	if len(params.Terms) == 0 {
		return nil, fmt.Errorf("no search terms given")
	}

	summary := &Summary{}

	// Stage 1: fetch. An empty result is "no results", not an error.
	postings := p.fetcher.Search(ctx, params.Terms, params.Location)
	summary.Fetched = len(postings)
	if len(postings) == 0 {
		log.Println("Pipeline: no postings fetched.")
		return summary, nil
	}

	cvText := ""
	if params.CVPath != "" {
		text, err := cv.ExtractText(params.CVPath)
		if err != nil {
			// Heuristics degrade to placeholders on empty text.
			log.Printf("Pipeline: CV extraction failed, using placeholders: %v", err)
			summary.Failures = append(summary.Failures, fmt.Sprintf("cv: %v", err))
		} else {
			cvText = text
		}
	}
	applicant := cv.ExtractApplicant(cvText)

	for _, job := range postings {
		// Stage 2: generate.
		letter, err := p.letters.Generate(ctx, job, cvText, params.Mode)
		if err != nil {
			summary.Failures = append(summary.Failures, fmt.Sprintf("letter for %s at %s: %v", job.Title, job.Company, err))
			continue
		}
		letterPath, err := p.letters.SaveLetter(letter, applicant.Name)
		if err != nil {
			summary.Failures = append(summary.Failures, fmt.Sprintf("save letter for %s: %v", job.Title, err))
			continue
		}
		summary.Letters++

		// Stage 3: send (optional).
		status := models.StatusInterested
		if len(params.Recipients) > 0 {
			attachments := []string{letterPath}
			if params.CVPath != "" {
				attachments = append([]string{params.CVPath}, attachments...)
			}
			ok := p.email.Send(params.Recipients,
				services.ApplicationSubject(job.Title, job.Company),
				services.ApplicationBody(job.Title, job.Company, applicant.Name),
				attachments)
			if ok {
				summary.Sent++
				status = models.StatusApplied
			} else {
				summary.Failures = append(summary.Failures, fmt.Sprintf("send for %s at %s", job.Title, job.Company))
			}
		}

		// Stage 4: track.
		if p.tracker == nil {
			continue
		}
		rec := RecordForJob(job, status)
		if p.tracker.Append(ctx, rec) {
			summary.Tracked++
		} else {
			summary.Failures = append(summary.Failures, fmt.Sprintf("track for %s at %s", job.Title, job.Company))
		}
	}

	return summary, nil
}

// RecordForJob maps a posting onto a spreadsheet row with the given status.
func RecordForJob(job models.JobPosting, status string) models.ApplicationRecord {
	rec := models.ApplicationRecord{
		JobTitle:  job.JobTitle,
		Company:   job.Company,
		Location:  job.Location,
		Created:   job.Created,
		ApplyLink: job.ApplyLink,
		Status:    status,
	}
	if job.SalaryMin != nil {
		rec.SalaryMin = fmt.Sprintf("%.0f", *job.SalaryMin)
	}
	if job.SalaryMax != nil {
		rec.SalaryMax = fmt.Sprintf("%.0f", *job.SalaryMax)
	}
	if status == models.StatusApplied {
		rec.ApplicationDate = time.Now().Format("2006-01-02")
	}
	return rec
}
