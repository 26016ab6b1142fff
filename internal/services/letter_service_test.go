package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/justsurfingit/job-apply-assistant/internal/models"
)

func testPosting() models.JobPosting {
	return models.JobPosting{
		JobTitle:    "Data Scientist",
		Title:       "Data Scientist",
		Company:     "TechCorp",
		Location:    "London",
		Description: "We need Python and SQL plus machine learning experience.",
	}
}

func TestGenerateTemplateMode(t *testing.T) {
	svc := &LetterService{lettersDir: t.TempDir()}
	cvText := "Jane Doe\njane@example.com\nWork experience at DataCo"

	letter, err := svc.Generate(context.Background(), testPosting(), cvText, ModeTemplate)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	for _, want := range []string{"Data Scientist", "TechCorp", "Jane Doe", "jane@example.com", "python"} {
		if !strings.Contains(letter, want) {
			t.Errorf("letter missing %q", want)
		}
	}
}

func TestGenerateTemplateModeDegradesToPlaceholders(t *testing.T) {
	svc := &LetterService{lettersDir: t.TempDir()}

	letter, err := svc.Generate(context.Background(), testPosting(), "", ModeTemplate)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if !strings.Contains(letter, "Your Full Name") {
		t.Error("expected name placeholder for empty CV text")
	}
	if !strings.Contains(letter, "relevant professional experience") {
		t.Error("expected experience placeholder for empty CV text")
	}
}

func TestGenerateLLMModeWithoutClient(t *testing.T) {
	svc := &LetterService{lettersDir: t.TempDir()}

	_, err := svc.Generate(context.Background(), testPosting(), "", ModeLLM)
	if !errors.Is(err, ErrLLMUnavailable) {
		t.Fatalf("expected ErrLLMUnavailable, got %v", err)
	}
}

func TestGenerateUnknownMode(t *testing.T) {
	svc := &LetterService{lettersDir: t.TempDir()}

	if _, err := svc.Generate(context.Background(), testPosting(), "", "haiku"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestSaveLetter(t *testing.T) {
	dir := t.TempDir()
	svc := &LetterService{lettersDir: dir}

	path, err := svc.SaveLetter("Dear Hiring Manager,", "Jane Doe")
	if err != nil {
		t.Fatalf("SaveLetter returned error: %v", err)
	}
	if filepath.Base(path) != "Cover_letter_Jane_Doe.txt" {
		t.Errorf("unexpected filename %q", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read letter: %v", err)
	}
	if string(data) != "Dear Hiring Manager," {
		t.Errorf("unexpected content %q", data)
	}
}
