// Package export renders memos to downloadable PDF files.
package export

import (
	"errors"
	"html/template"
	"strings"
	"time"
)

// Request contains parameters for an export operation.
type Request struct {
	MemoID string
}

// Memo carries everything the template needs to render one memo.
type Memo struct {
	ID            string
	Title         string
	Content       string
	OwnerUsername string
	AccessType    string
	UpdatedAt     time.Time
}

// Result contains the export output.
type Result struct {
	Data     []byte
	Filename string
	MimeType string
}

// ErrPDFDependencyMissing indicates PDF export runtime dependencies are unavailable.
var ErrPDFDependencyMissing = errors.New("export pdf dependency missing")

// Service renders memos to PDF.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// ExportPDF renders the memo to HTML and prints it to PDF with headless Chrome.
func (s *Service) ExportPDF(memo Memo) (*Result, error) {
	html, err := RenderMemoHTML(memo)
	if err != nil {
		return nil, err
	}
	return exportPDF(html, memo.Title)
}

// contentToHTML turns plain memo text into paragraph-per-blank-line HTML.
// Everything is escaped; memo content is untrusted.
func contentToHTML(content string) template.HTML {
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	blocks := strings.Split(normalized, "\n\n")

	var b strings.Builder
	for _, block := range blocks {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		lines := strings.Split(block, "\n")
		for i, line := range lines {
			lines[i] = template.HTMLEscapeString(line)
		}
		b.WriteString("<p>")
		b.WriteString(strings.Join(lines, "<br>"))
		b.WriteString("</p>\n")
	}
	return template.HTML(b.String())
}
