package rag

import "github.com/fededelrincon/docchat/pkg/textextract"

type fileExtractor struct{}

// NewFileExtractor returns the production Extractor over pkg/textextract.
func NewFileExtractor() Extractor { return fileExtractor{} }

func (fileExtractor) Extract(data []byte, filename string) (string, error) {
	return textextract.Extract(data, filename)
}

func (fileExtractor) Supported(filename string) bool {
	return textextract.Supported(filename)
}
