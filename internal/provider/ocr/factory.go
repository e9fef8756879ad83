package ocr

import (
	"context"
	"fmt"

	"github.com/darck0ne2011-gif/verifeye-app/internal/config"
)

// BackendType defines supported OCR backend types
type BackendType string

const (
	// BackendTesseract is the local tesseract binary (dev/test)
	BackendTesseract BackendType = "tesseract"
	// BackendRekognition is AWS Rekognition DetectText (cloud, for prod)
	BackendRekognition BackendType = "rekognition"
	// BackendNone disables on-screen text extraction
	BackendNone BackendType = "none"
)

// NewTextExtractor creates a TextExtractor based on configuration.
//
// Environment variables:
//   - OCR_PROVIDER: "tesseract", "rekognition" or "none" (default: "tesseract")
//   - TESSERACT_PATH: tesseract binary path (default: "tesseract")
//   - AWS_REGION: AWS region for Rekognition (default: "us-east-1")
//
// A nil extractor with nil error means OCR is disabled.
func NewTextExtractor(ctx context.Context, cfg *config.Config) (TextExtractor, error) {
	switch BackendType(cfg.OCRProvider) {
	case BackendRekognition:
		extractor, err := NewRekognitionExtractor(ctx, cfg.AWSRegion)
		if err != nil {
			return nil, fmt.Errorf("create rekognition text extractor: %w", err)
		}
		return extractor, nil

	case BackendTesseract, "":
		return NewTesseractExtractor(cfg.TesseractPath), nil

	case BackendNone:
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown OCR backend: %s (supported: %s, %s, %s)",
			cfg.OCRProvider, BackendTesseract, BackendRekognition, BackendNone)
	}
}
