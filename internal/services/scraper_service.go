package services

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/justsurfingit/job-apply-assistant/internal/config"
	"github.com/justsurfingit/job-apply-assistant/internal/models"
)

const (
	resultsPerTerm = 5
	// Cap on concurrent Adzuna requests.
	maxConcurrentFetches = 5
	fetchTimeout         = 10 * time.Second
)

// ScraperService queries the Adzuna search API and persists the results.
type ScraperService struct {
	Jobs *JobService

	baseURL string
	appID   string
	appKey  string
	client  *http.Client
}

func NewScraperService(jobs *JobService, cfg *config.Config) *ScraperService {
	return &ScraperService{
		Jobs:    jobs,
		baseURL: cfg.AdzunaBaseURL,
		appID:   cfg.AdzunaAppID,
		appKey:  cfg.AdzunaAppKey,
		client:  &http.Client{Timeout: fetchTimeout},
	}
}

// Raw Adzuna record; absent fields decode to zero values and are defaulted
// during normalization.
type adzunaJob struct {
	Title   string `json:"title"`
	Company struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
	Location struct {
		DisplayName string `json:"display_name"`
	} `json:"location"`
	Created      string   `json:"created"`
	Description  string   `json:"description"`
	SalaryMin    *float64 `json:"salary_min"`
	SalaryMax    *float64 `json:"salary_max"`
	ContractType string   `json:"contract_type"`
	ContractTime string   `json:"contract_time"`
	RedirectURL  string   `json:"redirect_url"`
}

type adzunaResponse struct {
	Results []adzunaJob `json:"results"`
}

// Search fetches postings for each term in parallel (at most
// maxConcurrentFetches in flight) and bulk-appends the aggregate to the
// local store. A term that fails contributes nothing but never aborts the
// others, and a persistence error is logged rather than propagated: the
// fetched list is returned either way. Zero terms yields an empty list.
func (s *ScraperService) Search(ctx context.Context, terms []string, location string) []models.JobPosting {
	perTerm := make([][]models.JobPosting, len(terms))

	var wg sync.WaitGroup
	sem := make(chan struct{}, maxConcurrentFetches)
	for i, term := range terms {
		wg.Add(1)
		go func(i int, term string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			perTerm[i] = s.fetchTerm(ctx, term, location)
		}(i, term)
	}
	wg.Wait()

	var all []models.JobPosting
	for _, jobs := range perTerm {
		all = append(all, jobs...)
	}

	if len(all) > 0 {
		if err := s.Jobs.SaveAll(ctx, all); err != nil {
			log.Printf("Error saving to database: %v", err)
		} else {
			log.Printf("Saved %d jobs to database", len(all))
		}
	}
	return all
}

// fetchTerm issues one Adzuna request. Any failure is logged and yields an
// empty result for this term only.
func (s *ScraperService) fetchTerm(ctx context.Context, term, location string) []models.JobPosting {
	params := url.Values{}
	params.Set("app_id", s.appID)
	params.Set("app_key", s.appKey)
	params.Set("what", term)
	params.Set("where", location)
	params.Set("results_per_page", strconv.Itoa(resultsPerTerm))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		log.Printf("Request failed for '%s': %v", term, err)
		return nil
	}

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("Request failed for '%s': %v", term, err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("Error fetching '%s': %d", term, resp.StatusCode)
		return nil
	}

	var body adzunaResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		log.Printf("Error decoding response for '%s': %v", term, err)
		return nil
	}

	jobs := make([]models.JobPosting, 0, len(body.Results))
	for _, raw := range body.Results {
		jobs = append(jobs, normalize(raw))
	}
	return jobs
}

// normalize maps a raw record onto a JobPosting, defaulting any missing
// string field to "Unknown". Salaries stay nil when absent.
func normalize(raw adzunaJob) models.JobPosting {
	return models.JobPosting{
		JobTitle:     orUnknown(raw.Title),
		Title:        orUnknown(raw.Title),
		Company:      orUnknown(raw.Company.DisplayName),
		Location:     orUnknown(raw.Location.DisplayName),
		Created:      orUnknown(raw.Created),
		Description:  orUnknown(raw.Description),
		SalaryMin:    raw.SalaryMin,
		SalaryMax:    raw.SalaryMax,
		ContractType: orUnknown(raw.ContractType),
		ContractTime: orUnknown(raw.ContractTime),
		ApplyLink:    orUnknown(raw.RedirectURL),
	}
}

func orUnknown(v string) string {
	if v == "" {
		return "Unknown"
	}
	return v
}
