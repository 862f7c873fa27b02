package extractor

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
)

// CSVExtractor handles CSV uploads. Rows are rendered as
// "header: value" lines so downstream models see labeled fields.
type CSVExtractor struct{}

func (e *CSVExtractor) Extract(data []byte) (string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return "", fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return "", nil
	}

	headers := records[0]
	var buf strings.Builder
	for _, row := range records[1:] {
		for j, cell := range row {
			if j > 0 {
				buf.WriteString(", ")
			}
			if j < len(headers) {
				buf.WriteString(headers[j] + ": " + cell)
			} else {
				buf.WriteString(cell)
			}
		}
		buf.WriteString(".\n")
	}

	return buf.String(), nil
}
