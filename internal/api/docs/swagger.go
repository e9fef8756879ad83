package docs

import (
	"github.com/go-swagno/swagno"
	"github.com/go-swagno/swagno/components/endpoint"
	"github.com/go-swagno/swagno/components/http/response"
	"github.com/go-swagno/swagno/components/mime"
	"github.com/go-swagno/swagno/components/parameter"
)

// AnalysisResponse represents the consolidated result for an analyzed file
type AnalysisResponse struct {
	ContentHash     string             `json:"content_hash" example:"9f86d081884c7d659a2feaa0c55ad015"`
	Cached          bool               `json:"cached" example:"false"`
	FakeProbability int                `json:"fake_probability" example:"81"`
	AIProbability   int                `json:"ai_probability,omitempty" example:"81"`
	MediaCategory   string             `json:"media_category" example:"image"`
	FileMetadata    FileMetadataData   `json:"file_metadata"`
	LocalSignals    LocalSignalsData   `json:"local_signals"`
	Requested       []string           `json:"requested_capabilities" example:"genai,quality"`
	Fetched         []string           `json:"capabilities_fetched_this_call,omitempty" example:"genai"`
	Credibility     *CredibilityData   `json:"credibility_assessment,omitempty"`
	Scores          map[string]float64 `json:"per_capability_scores"`
}

// FileMetadataData summarizes the analyzed file
type FileMetadataData struct {
	Type           string `json:"type" example:"image/png"`
	Extension      string `json:"extension" example:"png"`
	Size           int64  `json:"size" example:"204800"`
	Resolution     string `json:"resolution,omitempty" example:"1024x1024"`
	FramesAnalyzed int    `json:"frames_analyzed,omitempty" example:"5"`
	AnalysisMethod string `json:"analysis_method,omitempty" example:"native_video"`
	Summary        string `json:"summary,omitempty" example:"Strong generative artifacts in both texture and metadata."`
}

// LocalSignalsData are metadata-derived heuristics
type LocalSignalsData struct {
	MissingCameraMetadata bool     `json:"missing_camera_metadata" example:"true"`
	SuspiciousResolution  string   `json:"suspicious_resolution,omitempty" example:"1024x1024"`
	MatchedGeneratorTags  []string `json:"matched_generator_tags,omitempty" example:"midjourney"`
}

// CredibilityData rates on-media text trustworthiness
type CredibilityData struct {
	Rating     string   `json:"rating" example:"Low"`
	Score      int      `json:"score" example:"25"`
	Reasoning  string   `json:"reasoning" example:"Sensational claim with no attributable source."`
	RedFlags   []string `json:"red_flags" example:"unverifiable claim"`
	Error      bool     `json:"error,omitempty" example:"false"`
	ReasonCode string   `json:"reason_code,omitempty" example:"credibility_error_rate_limit"`
}

// ScanData represents one persisted scan
type ScanData struct {
	ID              string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	ContentHash     string `json:"content_hash" example:"9f86d081884c7d659a2feaa0c55ad015"`
	Filename        string `json:"filename" example:"photo.png"`
	MediaCategory   string `json:"media_category" example:"image"`
	FakeProbability int    `json:"fake_probability" example:"81"`
	DisplayScore    int    `json:"display_score" example:"81"`
	Verdict         string `json:"verdict" example:"FAKE"`
	Summary         string `json:"summary,omitempty" example:"Strong generative artifacts."`
	CreatedAt       string `json:"created_at" example:"2025-01-01T00:00:00Z"`
}

// HistoryListData is the paginated scan listing
type HistoryListData struct {
	Scans  []ScanData `json:"scans"`
	Limit  int        `json:"limit" example:"20"`
	Offset int        `json:"offset" example:"0"`
}

// HealthData is the health and readiness payload
type HealthData struct {
	Status  string `json:"status" example:"ok"`
	Version string `json:"version,omitempty" example:"0.1.0"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Code    string `json:"code" example:"NO_FILE_UPLOADED"`
	Message string `json:"message" example:"No media file was provided"`
}

func NewSwagger() *swagno.Swagger {
	sw := swagno.New(swagno.Config{
		Title:       "VerifEye Media Analysis API",
		Version:     "v1.0.0",
		Description: "Media authenticity service estimating the probability that an uploaded image, audio or video file was AI-generated or manipulated",
		Host:        "localhost:3000",
		Path:        "/v1",
	})

	endpoints := []*endpoint.EndPoint{
		// POST /v1/analyze - Analyze media
		endpoint.New(
			endpoint.POST,
			"/analyze",
			endpoint.WithTags("Analysis"),
			endpoint.WithSummary("Analyze an uploaded media file"),
			endpoint.WithDescription("Classifies the upload as image, audio or video, runs the requested detection capabilities (fetching only results not already cached for identical content) and returns a consolidated fake probability."),
			endpoint.WithConsume([]mime.MIME{mime.MIME("multipart/form-data")}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(AnalysisResponse{}, "200", "Analysis completed"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "NO_FILE_UPLOADED", Message: "No media file was provided"}, "400", "Bad Request"),
				response.New(ErrorResponse{Code: "FILE_TOO_LARGE", Message: "Uploaded file exceeds the size limit"}, "413", "Payload Too Large"),
				response.New(ErrorResponse{Code: "UNSUPPORTED_MEDIA_TYPE", Message: "Only image, audio and video files are accepted"}, "415", "Unsupported Media Type"),
				response.New(ErrorResponse{Code: "RATE_LIMIT_EXCEEDED", Message: "Rate limit exceeded, please try again later"}, "429", "Too Many Requests"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
				response.New(ErrorResponse{Code: "DETECTION_UNAVAILABLE", Message: "Detection service unreachable, please retry later"}, "503", "Service Unavailable"),
			}),
		),

		// GET /v1/history - List scans
		endpoint.New(
			endpoint.GET,
			"/history",
			endpoint.WithTags("History"),
			endpoint.WithSummary("List recent scans"),
			endpoint.WithDescription("Returns persisted scan verdicts ordered by most recent first"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.IntParam("limit", parameter.Query, parameter.WithDescription("Maximum number of scans (default: 20, max: 100)")),
				parameter.IntParam("offset", parameter.Query, parameter.WithDescription("Offset for pagination (default: 0)")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(HistoryListData{}, "200", "Scan listing"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// GET /v1/history/{id} - Get scan
		endpoint.New(
			endpoint.GET,
			"/history/{id}",
			endpoint.WithTags("History"),
			endpoint.WithSummary("Fetch one scan by id"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(parameter.StrParam("id", parameter.Path, parameter.WithDescription("Scan identifier (UUID)"))),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(ScanData{}, "200", "Scan record"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "Request validation failed"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "SCAN_NOT_FOUND", Message: "Scan record not found"}, "404", "Not Found"),
			}),
		),

		// GET /health - Liveness
		endpoint.New(
			endpoint.GET,
			"/health",
			endpoint.WithTags("Health"),
			endpoint.WithSummary("Liveness probe"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(HealthData{}, "200", "Service is up"),
			}),
		),

		// GET /ready - Readiness
		endpoint.New(
			endpoint.GET,
			"/ready",
			endpoint.WithTags("Health"),
			endpoint.WithSummary("Readiness probe"),
			endpoint.WithDescription("Reports ready once the database is reachable"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(HealthData{}, "200", "Service is ready"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(HealthData{Status: "unavailable"}, "503", "Database unreachable"),
			}),
		),
	}

	sw.AddEndpoints(endpoints)

	return sw
}
