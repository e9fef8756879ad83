package ocr

import (
	"context"
	"errors"
	"fmt"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/aws/smithy-go"
)

const (
	errCodeAccessDenied     = "AccessDeniedException"
	errCodeInvalidParameter = "InvalidParameterException"
	errCodeImageTooLarge    = "ImageTooLargeException"
)

var (
	// ErrInvalidCredentials indicates the AWS credentials are missing or lack
	// rekognition:DetectText permission.
	ErrInvalidCredentials = errors.New("invalid AWS credentials for text detection")
	// ErrUnreadableFrame indicates the frame could not be processed as an image.
	ErrUnreadableFrame = errors.New("frame not readable by text detection")
)

// RekognitionExtractor detects text with AWS Rekognition DetectText.
// It uses the AWS default credential chain to authenticate.
type RekognitionExtractor struct {
	rekognition *rekognition.Client
}

// NewRekognitionExtractor creates a Rekognition-backed text extractor.
func NewRekognitionExtractor(ctx context.Context, region string) (*RekognitionExtractor, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &RekognitionExtractor{
		rekognition: rekognition.NewFromConfig(awsCfg),
	}, nil
}

// ExtractText returns the LINE-level detections joined with newlines.
// WORD detections are skipped, they duplicate the line content.
func (e *RekognitionExtractor) ExtractText(ctx context.Context, image []byte) (string, error) {
	input := &rekognition.DetectTextInput{
		Image: &types.Image{Bytes: image},
	}

	output, err := e.rekognition.DetectText(ctx, input)
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			switch apiErr.ErrorCode() {
			case errCodeAccessDenied:
				return "", ErrInvalidCredentials
			case errCodeInvalidParameter, errCodeImageTooLarge:
				return "", fmt.Errorf("%w: %s", ErrUnreadableFrame, apiErr.ErrorCode())
			}
		}
		return "", fmt.Errorf("detect text: %w", err)
	}

	var lines []string
	for _, detection := range output.TextDetections {
		if detection.Type != types.TextTypesLine || detection.DetectedText == nil {
			continue
		}
		line := strings.TrimSpace(*detection.DetectedText)
		if line != "" {
			lines = append(lines, line)
		}
	}

	return strings.Join(lines, "\n"), nil
}
