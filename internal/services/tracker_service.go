package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"google.golang.org/api/googleapi"

	"github.com/justsurfingit/job-apply-assistant/internal/models"
)

// Column order of the tracking sheet. ListAll pads short rows to this width.
var sheetColumns = []string{
	"job_title", "company", "location", "created", "salary_min", "salary_max",
	"apply_link", "status", "application_date", "interview_date", "notes",
}

// SpreadsheetClient is the narrow contract the tracker needs from the
// remote spreadsheet API. The concrete implementation wraps Google Sheets.
type SpreadsheetClient interface {
	AppendRow(ctx context.Context, row []interface{}) error
	Rows(ctx context.Context) ([][]interface{}, error)
}

// TrackerService records application status rows in the remote spreadsheet.
// The store is append-only from this system's perspective.
type TrackerService struct {
	Sheets SpreadsheetClient

	retryBase time.Duration
}

// NewTrackerService wraps an already-authenticated spreadsheet client.
// Credential lifecycle is owned by the caller.
func NewTrackerService(sheets SpreadsheetClient) *TrackerService {
	return &TrackerService{Sheets: sheets, retryBase: 1 * time.Second}
}

// Append validates required fields before any network call, then appends the
// row with bounded backoff retries on API errors. Returns false on failure.
func (s *TrackerService) Append(ctx context.Context, rec models.ApplicationRecord) bool {
	if rec.JobTitle == "" || rec.Company == "" || rec.Status == "" {
		log.Println("Missing required fields in application record.")
		return false
	}

	row := []interface{}{
		rec.JobTitle, rec.Company, rec.Location, rec.Created,
		rec.SalaryMin, rec.SalaryMax, rec.ApplyLink, rec.Status,
		rec.ApplicationDate, rec.InterviewDate, rec.Notes,
	}

	err := retry(3, s.retryBase, func() error {
		return s.Sheets.AppendRow(ctx, row)
	})
	if err != nil {
		log.Printf("Error updating spreadsheet: %v", err)
		return false
	}

	log.Printf("Job data for %s added to tracking sheet.", rec.JobTitle)
	return true
}

// ListAll performs a full-table read. A leading header row is skipped and
// rows missing trailing columns are tolerated (absent cells read as empty).
func (s *TrackerService) ListAll(ctx context.Context) []models.ApplicationRecord {
	rows, err := s.Sheets.Rows(ctx)
	if err != nil {
		log.Printf("Error retrieving job status: %v", err)
		return nil
	}

	records := make([]models.ApplicationRecord, 0, len(rows))
	for i, row := range rows {
		if i == 0 && isHeaderRow(row) {
			continue
		}
		cells := make([]string, len(sheetColumns))
		for c := range cells {
			if c < len(row) {
				cells[c] = fmt.Sprint(row[c])
			}
		}
		records = append(records, models.ApplicationRecord{
			JobTitle:        cells[0],
			Company:         cells[1],
			Location:        cells[2],
			Created:         cells[3],
			SalaryMin:       cells[4],
			SalaryMax:       cells[5],
			ApplyLink:       cells[6],
			Status:          cells[7],
			ApplicationDate: cells[8],
			InterviewDate:   cells[9],
			Notes:           cells[10],
		})
	}
	return records
}

func isHeaderRow(row []interface{}) bool {
	return len(row) > 0 && fmt.Sprint(row[0]) == sheetColumns[0]
}

// retry executes fn with doubling backoff, stopping early on errors that
// retrying cannot fix.
func retry(attempts int, sleep time.Duration, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		err = fn()
		if err == nil {
			return nil
		}
		if !isRetryableAPIError(err) {
			return err
		}
		log.Printf("API Error: %v. Retrying in %v...", err, sleep)
		time.Sleep(sleep)
		sleep *= 2
	}
	return fmt.Errorf("failed after %d attempts: %w", attempts, err)
}

// isRetryableAPIError treats rate limiting and server-side failures as
// transient; other structured API errors (bad request, permission) are not.
func isRetryableAPIError(err error) bool {
	if gErr, ok := err.(*googleapi.Error); ok {
		return gErr.Code == 429 || gErr.Code >= 500
	}
	// Transport-level errors carry no code; assume transient.
	return true
}
