package extract

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// OCRExtractor recognizes text in uploaded images using Tesseract.
type OCRExtractor struct{}

// NewOCRExtractor creates a new OCR extractor
func NewOCRExtractor() *OCRExtractor {
	return &OCRExtractor{}
}

// ExtractText runs OCR over the image at path
func (e *OCRExtractor) ExtractText(ctx context.Context, path string) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImage(path); err != nil {
		return "", fmt.Errorf("failed to load image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("failed to OCR image: %w", err)
	}
	return text, nil
}
