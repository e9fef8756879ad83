package ocr

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"
)

const tesseractTimeout = 15 * time.Second

// TesseractExtractor shells out to a local tesseract binary. Used in
// development and on deployments without AWS access.
type TesseractExtractor struct {
	// BinaryPath is the tesseract executable, "tesseract" by default.
	BinaryPath string
}

// NewTesseractExtractor creates a tesseract-backed text extractor.
func NewTesseractExtractor(binaryPath string) *TesseractExtractor {
	if binaryPath == "" {
		binaryPath = "tesseract"
	}
	return &TesseractExtractor{BinaryPath: binaryPath}
}

// ExtractText feeds the image through stdin and reads the recognized text
// from stdout.
func (e *TesseractExtractor) ExtractText(ctx context.Context, image []byte) (string, error) {
	runCtx, cancel := context.WithTimeout(ctx, tesseractTimeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, e.BinaryPath, "stdin", "stdout")
	cmd.Stdin = bytes.NewReader(image)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("tesseract: %w: %s", err, stderr.String())
	}

	return stdout.String(), nil
}
