package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"github.com/justsurfingit/job-apply-assistant/internal/config"
	"github.com/justsurfingit/job-apply-assistant/internal/cv"
	"github.com/justsurfingit/job-apply-assistant/internal/models"
)

// GenerationMode selects how a cover letter is produced.
type GenerationMode string

const (
	ModeTemplate GenerationMode = "template"
	ModeLLM      GenerationMode = "llm"

	// Cap on generated letter length in LLM mode.
	maxLetterTokens = 300
)

// ErrLLMUnavailable is returned when llm mode is requested without a
// configured Gemini client. There is no automatic fallback to template mode.
var ErrLLMUnavailable = errors.New("llm generation unavailable: GEMINI_API_KEY is not set")

// LetterService generates cover letters from a posting plus CV text and
// saves them as flat text artifacts for later attachment.
type LetterService struct {
	client     llms.Model
	lettersDir string
}

// NewLetterService initializes the Gemini client when an API key is
// configured; without one, only template mode is available.
func NewLetterService(ctx context.Context, cfg *config.Config) (*LetterService, error) {
	s := &LetterService{lettersDir: cfg.LettersDir}

	if cfg.GeminiAPIKey == "" {
		log.Println("⚠️ GEMINI_API_KEY not set. Cover letters limited to template mode.")
		return s, nil
	}

	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.GeminiAPIKey),
		googleai.WithDefaultModel("gemini-2.5-flash"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	s.client = llm
	return s, nil
}

// Generate produces cover-letter prose for the posting. Name, contact and
// experience come from best-effort CV heuristics and degrade to placeholders;
// a strategy failure is returned to the caller as-is.
func (s *LetterService) Generate(ctx context.Context, job models.JobPosting, cvText string, mode GenerationMode) (string, error) {
	applicant := cv.ExtractApplicant(cvText)
	skills := cv.ExtractSkills(job.Description)
	experience := cv.ExtractExperience(cvText)
	if experience == "" {
		experience = cv.PlaceholderExperience
	}

	switch mode {
	case ModeLLM:
		return s.generateLLM(ctx, job, applicant, skills, experience)
	case ModeTemplate, "":
		return renderTemplate(job, applicant, skills, experience), nil
	default:
		return "", fmt.Errorf("unknown generation mode %q", mode)
	}
}

func (s *LetterService) generateLLM(ctx context.Context, job models.JobPosting, applicant models.Applicant, skills []string, experience string) (string, error) {
	if s.client == nil {
		return "", ErrLLMUnavailable
	}

	prompt := fmt.Sprintf(
		"Write a professional cover letter for the %s position at %s. "+
			"Job description: %s. Skills: %s. My experience: %s. "+
			"Name: %s. Contact: %s. Keep it concise, under 300 words.",
		job.Title, job.Company, truncate(job.Description, 200),
		strings.Join(skills, ", "), truncate(experience, 200),
		applicant.Name, applicant.ContactInfo,
	)

	letter, err := llms.GenerateFromSinglePrompt(ctx, s.client, prompt,
		llms.WithMaxTokens(maxLetterTokens))
	if err != nil {
		return "", fmt.Errorf("cover letter generation failed: %w", err)
	}
	return letter, nil
}

func renderTemplate(job models.JobPosting, applicant models.Applicant, skills []string, experience string) string {
	skillList := strings.Join(skills, ", ")
	if skillList == "" {
		skillList = "data analysis and software development"
	}

	return fmt.Sprintf(`Dear Hiring Manager,

I am excited to apply for the %s position at %s. With a strong background in %s, I am eager to contribute my expertise to your team.

My background includes %s. I have successfully contributed to optimizing workflows, improving outcomes, and collaborating across teams.

I look forward to the opportunity to further discuss how my background and skills can contribute to the continued success of %s. Thank you for your consideration.

Sincerely,
%s
%s
`, job.Title, job.Company, skillList, experience, job.Company, applicant.Name, applicant.ContactInfo)
}

// SaveLetter writes the letter under the configured output directory and
// returns its path.
func (s *LetterService) SaveLetter(letter, applicantName string) (string, error) {
	if err := os.MkdirAll(s.lettersDir, 0o755); err != nil {
		return "", fmt.Errorf("create letters directory: %w", err)
	}

	name := strings.ReplaceAll(strings.TrimSpace(applicantName), " ", "_")
	if name == "" {
		name = "applicant"
	}
	path := filepath.Join(s.lettersDir, fmt.Sprintf("Cover_letter_%s.txt", name))
	if err := os.WriteFile(path, []byte(letter), 0o644); err != nil {
		return "", fmt.Errorf("write cover letter: %w", err)
	}
	return path, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
