package cv

import (
	"strings"

	"github.com/justsurfingit/job-apply-assistant/internal/models"
)

// Placeholders used when the CV yields nothing usable.
const (
	PlaceholderName       = "Your Full Name"
	PlaceholderContact    = "Your Contact Information"
	PlaceholderExperience = "relevant professional experience"
)

// Section headings that mark experience content in a CV.
var experienceKeywords = []string{"experience", "work", "role", "responsibilities"}

// Terms scanned for in job descriptions when building the skill list.
var skillVocabulary = []string{
	"python", "go", "golang", "java", "sql", "machine learning", "deep learning",
	"data analysis", "statistics", "aws", "gcp", "azure", "docker", "kubernetes",
	"ci/cd", "git", "agile", "communication", "leadership", "teamwork",
}

// ExtractApplicant derives name and contact info from CV text: first
// non-empty line is the name, second is the contact. Best-effort only.
func ExtractApplicant(text string) models.Applicant {
	applicant := models.Applicant{
		Name:        PlaceholderName,
		ContactInfo: PlaceholderContact,
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
		if len(lines) == 2 {
			break
		}
	}

	if len(lines) > 0 {
		applicant.Name = lines[0]
	}
	if len(lines) > 1 {
		applicant.ContactInfo = lines[1]
	}
	return applicant
}

// ExtractExperience collects CV lines mentioning experience-section keywords.
// Returns the empty string when nothing matches; callers substitute a
// placeholder.
func ExtractExperience(text string) string {
	var section strings.Builder
	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)
		for _, keyword := range experienceKeywords {
			if strings.Contains(lower, keyword) {
				section.WriteString(strings.TrimSpace(line))
				section.WriteString("\n")
				break
			}
		}
	}
	return strings.TrimSpace(section.String())
}

// ExtractSkills scans a job description for known skill terms. Short terms
// are required to appear as whole words to avoid false positives.
func ExtractSkills(description string) []string {
	lower := strings.ToLower(description)
	words := strings.FieldsFunc(lower, func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9' || r == '/')
	})
	wordSet := make(map[string]bool, len(words))
	for _, w := range words {
		wordSet[w] = true
	}

	var skills []string
	for _, term := range skillVocabulary {
		if strings.Contains(term, " ") {
			if strings.Contains(lower, term) {
				skills = append(skills, term)
			}
			continue
		}
		if wordSet[term] {
			skills = append(skills, term)
		}
	}
	return skills
}
