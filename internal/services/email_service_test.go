package services

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/gomail.v2"
)

func newTestEmailService(send func(m *gomail.Message) error) *EmailService {
	return &EmailService{
		user:       "user@example.com",
		password:   "secret",
		host:       "smtp.example.com",
		port:       587,
		retryDelay: 0,
		send:       send,
	}
}

func TestSendSucceedsAfterTransientFailures(t *testing.T) {
	attempts := 0
	svc := newTestEmailService(func(m *gomail.Message) error {
		attempts++
		if attempts < 3 {
			return errors.New("connection reset")
		}
		return nil
	})

	if !svc.Send([]string{"hr@example.com"}, "subject", "body", nil) {
		t.Fatal("expected success on the third attempt")
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestSendExhaustsRetries(t *testing.T) {
	attempts := 0
	svc := newTestEmailService(func(m *gomail.Message) error {
		attempts++
		return errors.New("unreachable host")
	})

	if svc.Send([]string{"hr@example.com"}, "subject", "body", nil) {
		t.Fatal("expected non-success after exhausting retries")
	}
	if attempts != 3 {
		t.Fatalf("expected exactly 3 attempts, got %d", attempts)
	}
}

func TestSendFailsFastWithoutCredentials(t *testing.T) {
	attempts := 0
	svc := newTestEmailService(func(m *gomail.Message) error {
		attempts++
		return nil
	})
	svc.password = ""

	if svc.Send([]string{"hr@example.com"}, "subject", "body", nil) {
		t.Fatal("expected failure with missing credentials")
	}
	if attempts != 0 {
		t.Fatalf("expected no send attempt, got %d", attempts)
	}
}

func TestSendOmitsMissingAttachments(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "cv.txt")
	if err := os.WriteFile(present, []byte("Jane Doe"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	missing := filepath.Join(dir, "does_not_exist.txt")

	svc := newTestEmailService(func(m *gomail.Message) error { return nil })
	if !svc.Send([]string{"hr@example.com"}, "subject", "body", []string{present, missing}) {
		t.Fatal("a missing attachment must not abort the send")
	}
}

func TestApplicationSubjectAndBody(t *testing.T) {
	subject := ApplicationSubject("Data Scientist", "TechCorp")
	if subject != "Application for Data Scientist Position at TechCorp" {
		t.Errorf("unexpected subject %q", subject)
	}

	body := ApplicationBody("Data Scientist", "TechCorp", "Jane Doe")
	for _, want := range []string{"Data Scientist", "TechCorp", "Jane Doe"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}
