package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/justsurfingit/job-apply-assistant/internal/config"
	"github.com/justsurfingit/job-apply-assistant/internal/models"
	"github.com/justsurfingit/job-apply-assistant/internal/services"
)

// fakeDispatcher counts attempts and always succeeds.
type fakeDispatcher struct {
	calls       int
	attachments []string
}

func (f *fakeDispatcher) Send(recipients []string, subject, body string, attachments []string) bool {
	f.calls++
	f.attachments = attachments
	return true
}

// memorySheet is an in-memory SpreadsheetClient.
type memorySheet struct {
	rows [][]interface{}
}

func (m *memorySheet) AppendRow(ctx context.Context, row []interface{}) error {
	m.rows = append(m.rows, row)
	return nil
}

func (m *memorySheet) Rows(ctx context.Context) ([][]interface{}, error) {
	return m.rows, nil
}

const adzunaResult = `{
	"results": [{
		"title": "Data Scientist",
		"company": {"display_name": "TechCorp"},
		"location": {"display_name": "London"},
		"created": "2025-03-01T00:00:00Z",
		"description": "Python and machine learning work",
		"salary_min": 50000,
		"salary_max": 70000,
		"contract_type": "permanent",
		"contract_time": "full_time",
		"redirect_url": "https://example.com/apply"
	}]
}`

func newPipelineFixture(t *testing.T) (*Pipeline, *fakeDispatcher, *services.TrackerService, string, *gorm.DB) {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, adzunaResult)
	}))
	t.Cleanup(server.Close)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&models.JobPosting{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	dir := t.TempDir()
	cfg := &config.Config{
		AdzunaAppID:   "id",
		AdzunaAppKey:  "key",
		AdzunaBaseURL: server.URL,
		LettersDir:    filepath.Join(dir, "letters"),
	}

	jobs := services.NewJobService(db)
	scraper := services.NewScraperService(jobs, cfg)
	letters, err := services.NewLetterService(context.Background(), cfg)
	if err != nil {
		t.Fatalf("letter service: %v", err)
	}

	dispatcher := &fakeDispatcher{}
	tracker := services.NewTrackerService(&memorySheet{})

	p := New(Deps{
		Fetcher: scraper,
		Letters: letters,
		Email:   dispatcher,
		Tracker: tracker,
	})

	cvPath := filepath.Join(dir, "cv.txt")
	cvText := "Jane Doe\njane@example.com\nWork experience at DataCo"
	if err := os.WriteFile(cvPath, []byte(cvText), 0o644); err != nil {
		t.Fatalf("write cv fixture: %v", err)
	}

	return p, dispatcher, tracker, cvPath, db
}

func TestRunEndToEnd(t *testing.T) {
	p, dispatcher, tracker, cvPath, db := newPipelineFixture(t)

	summary, err := p.Run(context.Background(), Params{
		Terms:      []string{"Data Scientist"},
		Location:   "London",
		CVPath:     cvPath,
		Recipients: []string{"hr@techcorp.example"},
		Mode:       services.ModeTemplate,
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if summary.Fetched != 1 || summary.Letters != 1 || summary.Sent != 1 || summary.Tracked != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if len(summary.Failures) != 0 {
		t.Fatalf("unexpected failures %v", summary.Failures)
	}

	// Fetch stage persisted exactly one row.
	var count int64
	if err := db.Model(&models.JobPosting{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 persisted posting, got %d", count)
	}

	// Generate stage produced a letter naming the job and company.
	if len(dispatcher.attachments) != 2 {
		t.Fatalf("expected cv + letter attachments, got %v", dispatcher.attachments)
	}
	letter, err := os.ReadFile(dispatcher.attachments[1])
	if err != nil {
		t.Fatalf("read letter: %v", err)
	}
	for _, want := range []string{"Data Scientist", "TechCorp", "Jane Doe"} {
		if !strings.Contains(string(letter), want) {
			t.Errorf("letter missing %q", want)
		}
	}

	// Send stage needed a single attempt.
	if dispatcher.calls != 1 {
		t.Fatalf("expected 1 send attempt, got %d", dispatcher.calls)
	}

	// Track stage appended a row that ListAll sees.
	records := tracker.ListAll(context.Background())
	if len(records) != 1 {
		t.Fatalf("expected 1 tracked record, got %d", len(records))
	}
	rec := records[0]
	if rec.JobTitle != "Data Scientist" || rec.Company != "TechCorp" || rec.Status != models.StatusApplied {
		t.Errorf("unexpected record %+v", rec)
	}
	if rec.ApplicationDate == "" {
		t.Error("expected application date for an Applied record")
	}
}

func TestRunWithoutRecipientsTracksInterested(t *testing.T) {
	p, dispatcher, tracker, cvPath, _ := newPipelineFixture(t)

	summary, err := p.Run(context.Background(), Params{
		Terms:    []string{"Data Scientist"},
		Location: "London",
		CVPath:   cvPath,
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if summary.Sent != 0 || dispatcher.calls != 0 {
		t.Fatal("send stage must be skipped without recipients")
	}
	records := tracker.ListAll(context.Background())
	if len(records) != 1 || records[0].Status != models.StatusInterested {
		t.Fatalf("expected one Interested record, got %+v", records)
	}
}

func TestRunRequiresTerms(t *testing.T) {
	p, _, _, _, _ := newPipelineFixture(t)
	if _, err := p.Run(context.Background(), Params{}); err == nil {
		t.Fatal("expected error for empty term list")
	}
}

func TestRecordForJob(t *testing.T) {
	min, max := 50000.0, 70000.0
	job := models.JobPosting{
		JobTitle:  "Data Scientist",
		Company:   "TechCorp",
		Location:  "London",
		Created:   "2025-03-01",
		ApplyLink: "https://example.com/apply",
		SalaryMin: &min,
		SalaryMax: &max,
	}

	rec := RecordForJob(job, models.StatusInterested)
	if rec.SalaryMin != "50000" || rec.SalaryMax != "70000" {
		t.Errorf("salary formatting: %q / %q", rec.SalaryMin, rec.SalaryMax)
	}
	if rec.ApplicationDate != "" {
		t.Error("Interested records must not carry an application date")
	}
}
