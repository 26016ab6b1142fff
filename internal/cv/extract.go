package cv

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Upload allow-list mirrored by the upload handler.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".txt":  true,
}

// IsAllowedFile reports whether filename has an accepted CV extension.
func IsAllowedFile(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// docx stores visible text inside w:t runs; paragraphs end with w:p.
var (
	docxTextRun  = regexp.MustCompile(`<w:t[^>]*>([^<]*)</w:t>`)
	docxParaEnd  = regexp.MustCompile(`</w:p>`)
	docxAnyTag   = regexp.MustCompile(`<[^>]+>`)
	xmlUnescaper = strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">", "&quot;", `"`, "&apos;", "'")
)

// ExtractText pulls plain text out of a CV file. Supported formats are
// pdf, docx and txt; anything else is rejected.
func ExtractText(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read txt: %w", err)
		}
		return string(data), nil
	case ".pdf":
		return extractPDF(path)
	case ".docx":
		return extractDOCX(path)
	default:
		return "", fmt.Errorf("unsupported file type: %s", filepath.Ext(path))
	}
}

func extractPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return buf.String(), nil
}

func extractDOCX(path string) (string, error) {
	r, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	defer r.Close()

	content := r.Editable().GetContent()
	return docxToPlainText(content), nil
}

// docxToPlainText flattens the word-processing XML into newline-separated
// paragraphs, keeping only the visible text runs.
func docxToPlainText(content string) string {
	content = docxParaEnd.ReplaceAllString(content, "\n")

	var b strings.Builder
	for _, line := range strings.Split(content, "\n") {
		runs := docxTextRun.FindAllStringSubmatch(line, -1)
		if len(runs) == 0 {
			// Fall back to stripping tags for lines with no explicit runs.
			stripped := strings.TrimSpace(docxAnyTag.ReplaceAllString(line, ""))
			if stripped != "" {
				b.WriteString(xmlUnescaper.Replace(stripped))
				b.WriteString("\n")
			}
			continue
		}
		for _, run := range runs {
			b.WriteString(xmlUnescaper.Replace(run[1]))
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}
