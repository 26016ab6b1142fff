package services

import (
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/justsurfingit/job-apply-assistant/internal/config"
)

const (
	sendAttempts   = 3
	sendRetryDelay = 5 * time.Second
)

// EmailService delivers packaged applications over SMTP (STARTTLS),
// retrying transient failures a bounded number of times.
type EmailService struct {
	user     string
	password string
	host     string
	port     int

	// send delivers one message; replaced in tests.
	send       func(m *gomail.Message) error
	retryDelay time.Duration
}

func NewEmailService(cfg *config.Config) *EmailService {
	s := &EmailService{
		user:       cfg.EmailUser,
		password:   cfg.EmailPassword,
		host:       cfg.EmailHost,
		port:       cfg.EmailPort,
		retryDelay: sendRetryDelay,
	}
	dialer := gomail.NewDialer(s.host, s.port, s.user, s.password)
	s.send = func(m *gomail.Message) error { return dialer.DialAndSend(m) }
	return s
}

// Send builds a multipart message with a plain-text body and the given file
// attachments, then attempts delivery up to sendAttempts times with a fixed
// delay between attempts. Missing credentials fail fast with no dial. An
// unreadable attachment is logged and omitted; the send still proceeds.
// Returns false after exhausting retries; never panics past its boundary.
func (s *EmailService) Send(recipients []string, subject, body string, attachments []string) bool {
	if s.user == "" || s.password == "" {
		log.Println("Email credentials are not set properly in environment variables.")
		return false
	}
	if len(recipients) == 0 {
		log.Println("No recipients given, nothing to send.")
		return false
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.user)
	m.SetHeader("To", recipients...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	for _, path := range attachments {
		if _, err := os.Stat(path); err != nil {
			log.Printf("Error attaching %s: %v", path, err)
			continue
		}
		m.Attach(path)
	}

	for attempt := 1; attempt <= sendAttempts; attempt++ {
		log.Printf("Attempting to send email to %v...", recipients)
		err := s.send(m)
		if err == nil {
			log.Printf("Application email sent successfully to %v", recipients)
			return true
		}

		log.Printf("Error sending email to %v: %v", recipients, err)
		if attempt < sendAttempts {
			log.Printf("Retrying... (Attempt %d of %d)", attempt+1, sendAttempts)
			time.Sleep(s.retryDelay)
		}
	}

	log.Println("All retry attempts failed.")
	return false
}

// ApplicationSubject is the standard subject line for an application email.
func ApplicationSubject(jobTitle, company string) string {
	return fmt.Sprintf("Application for %s Position at %s", jobTitle, company)
}

// ApplicationBody is the standard plain-text body for an application email.
func ApplicationBody(jobTitle, company, applicantName string) string {
	return fmt.Sprintf(`Dear Hiring Manager,

I hope this email finds you well. I am excited to apply for the %s position at %s. With my experience and skills, I am confident in my ability to contribute effectively to your team.

Please find my CV and cover letter attached for your review. I would appreciate the opportunity to discuss how my background aligns with the role. I look forward to your response.

Best regards,
%s
`, jobTitle, company, applicantName)
}
