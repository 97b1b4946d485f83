// Package local implements domain.TextExtractor with in-process decoding.
//
// PDF text is read via github.com/ledongthuc/pdf; DOCX text comes from the
// word/document.xml entry of the zip container. The contract is silent
// failure: unsupported types, corrupt documents, and decoder panics all yield
// an empty string, and the caller decides what an empty result means.
package local

import (
	"archive/zip"
	"bytes"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/fairyhunter13/resume-screener/internal/domain"
)

// Extractor is stateless and safe for concurrent use.
type Extractor struct{}

// New constructs an Extractor.
func New() *Extractor { return &Extractor{} }

// Extract converts document bytes to plain text with page/paragraph
// boundaries joined by newlines, trimmed. It never panics.
func (e *Extractor) Extract(_ domain.Context, data []byte, kind domain.DocType) (text string) {
	defer func() {
		// Some PDF decoders panic on malformed xref tables. The contract here
		// is empty text, not a fault.
		if rec := recover(); rec != nil {
			slog.Warn("document decode panic recovered", slog.Any("recover", rec))
			text = ""
		}
	}()
	switch kind {
	case domain.DocTypePDF:
		text = extractPDF(data)
	case domain.DocTypeDOCX:
		text = extractDOCX(data)
	default:
		return ""
	}
	return strings.TrimSpace(text)
}

func extractPDF(data []byte) string {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		slog.Warn("pdf open failed", slog.Any("error", err))
		return ""
	}
	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(content)
	}
	return sb.String()
}

var xmlTagRe = regexp.MustCompile(`<[^>]+>`)

func extractDOCX(data []byte) string {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		slog.Warn("docx open failed", slog.Any("error", err))
		return ""
	}
	var docXML []byte
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return ""
		}
		docXML, err = io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return ""
		}
		break
	}
	if len(docXML) == 0 {
		return ""
	}
	// Paragraph ends become newlines, tabs stay tabs, remaining markup goes.
	s := string(docXML)
	s = strings.ReplaceAll(s, "</w:p>", "\n")
	s = strings.ReplaceAll(s, "<w:tab/>", "\t")
	s = strings.ReplaceAll(s, "<w:br/>", "\n")
	s = xmlTagRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "&amp;", "&")
	s = strings.ReplaceAll(s, "&lt;", "<")
	s = strings.ReplaceAll(s, "&gt;", ">")
	return s
}
