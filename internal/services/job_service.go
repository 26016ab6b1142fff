package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/justsurfingit/job-apply-assistant/internal/models"
	"gorm.io/gorm"
)

// JobService is the only writer of the local jobs table.
type JobService struct {
	DB *gorm.DB
}

func NewJobService(db *gorm.DB) *JobService {
	return &JobService{DB: db}
}

// SaveAll appends the postings to the jobs table in one bulk insert.
// The table is append-only; no deduplication is attempted.
func (s *JobService) SaveAll(ctx context.Context, postings []models.JobPosting) error {
	if len(postings) == 0 {
		return nil
	}
	return s.DB.WithContext(ctx).Create(&postings).Error
}

// SavedJobs returns every stored posting.
func (s *JobService) SavedJobs(ctx context.Context) ([]models.JobPosting, error) {
	var jobs []models.JobPosting
	if err := s.DB.WithContext(ctx).Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// JobByID looks up a single stored posting.
func (s *JobService) JobByID(ctx context.Context, id uint) (*models.JobPosting, error) {
	var job models.JobPosting
	if err := s.DB.WithContext(ctx).First(&job, id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// Count reports how many postings the store holds.
func (s *JobService) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.DB.WithContext(ctx).Model(&models.JobPosting{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// ExportCSV writes all saved postings as CSV, header row first.
func (s *JobService) ExportCSV(ctx context.Context, w io.Writer) error {
	jobs, err := s.SavedJobs(ctx)
	if err != nil {
		return fmt.Errorf("load saved jobs: %w", err)
	}

	cw := csv.NewWriter(w)
	header := []string{
		"id", "job_title", "title", "company", "location", "created",
		"description", "salary_min", "salary_max", "contract_type",
		"contract_time", "apply_link",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, j := range jobs {
		row := []string{
			strconv.FormatUint(uint64(j.ID), 10),
			j.JobTitle, j.Title, j.Company, j.Location, j.Created,
			j.Description, salaryString(j.SalaryMin), salaryString(j.SalaryMax),
			j.ContractType, j.ContractTime, j.ApplyLink,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func salaryString(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
