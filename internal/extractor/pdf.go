package extractor

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
	pdflib "github.com/ledongthuc/pdf"
)

// PDFExtractor extracts text from PDF bytes. It tries MuPDF (go-fitz)
// first and falls back to ledongthuc/pdf when the primary errors or
// yields no text. The primary's result wins whenever it is non-empty;
// empty text is never returned as success.
type PDFExtractor struct{}

func (e *PDFExtractor) Extract(data []byte) (string, error) {
	text, primaryErr := extractFitz(data)
	if primaryErr == nil && strings.TrimSpace(text) != "" {
		return text, nil
	}

	text, fallbackErr := extractPDFLib(data)
	if fallbackErr != nil {
		if primaryErr != nil {
			return "", fmt.Errorf("extract pdf text: %w (fallback: %v)", primaryErr, fallbackErr)
		}
		return "", fmt.Errorf("extract pdf text: %w", fallbackErr)
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrNoText
	}
	return text, nil
}

// extractFitz reads the PDF with MuPDF, concatenating page text.
func extractFitz(data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	var buf strings.Builder
	numPages := doc.NumPage()
	for i := 0; i < numPages; i++ {
		pageText, err := doc.Text(i)
		if err != nil {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(pageText)
	}
	return buf.String(), nil
}

// extractPDFLib reads the PDF with the pure-Go library.
func extractPDFLib(data []byte) (string, error) {
	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var buf strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(pageText)
	}
	return buf.String(), nil
}
