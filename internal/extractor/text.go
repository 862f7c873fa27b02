package extractor

// TextExtractor handles plain text uploads.
type TextExtractor struct{}

func (e *TextExtractor) Extract(data []byte) (string, error) {
	return string(data), nil
}
