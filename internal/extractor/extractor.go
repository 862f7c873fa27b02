package extractor

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrNoText indicates a document was readable but contained no
// extractable text.
var ErrNoText = errors.New("no text content found in document")

// Extractor converts raw document bytes into plain text.
type Extractor interface {
	Extract(data []byte) (string, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".pdf":      true,
	".docx":     true,
	".html":     true,
	".htm":      true,
	".md":       true,
	".markdown": true,
	".csv":      true,
	".txt":      true,
}

// contentTypeExt maps MIME types to a canonical extension, for uploads
// whose filename carries no useful extension.
var contentTypeExt = map[string]string{
	"application/pdf": ".pdf",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
	"text/html":     ".html",
	"text/markdown": ".md",
	"text/csv":      ".csv",
	"text/plain":    ".txt",
}

// ForUpload returns the extractor for an uploaded file, chosen by
// extension first and declared content type second.
func ForUpload(filename, contentType string) (Extractor, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !SupportedExtensions[ext] {
		ct := contentType
		if i := strings.Index(ct, ";"); i >= 0 {
			ct = ct[:i]
		}
		ext = contentTypeExt[strings.TrimSpace(strings.ToLower(ct))]
	}

	switch ext {
	case ".pdf":
		return &PDFExtractor{}, nil
	case ".docx":
		return &DOCXExtractor{}, nil
	case ".html", ".htm":
		return &HTMLExtractor{}, nil
	case ".md", ".markdown":
		return &MarkdownExtractor{}, nil
	case ".csv":
		return &CSVExtractor{}, nil
	case ".txt":
		return &TextExtractor{}, nil
	default:
		return nil, fmt.Errorf("unsupported document type: %s (%s)", filepath.Ext(filename), contentType)
	}
}

// IsSupported reports whether an upload with the given filename and
// content type can be extracted.
func IsSupported(filename, contentType string) bool {
	_, err := ForUpload(filename, contentType)
	return err == nil
}
