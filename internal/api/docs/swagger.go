package docs

import (
	"github.com/go-swagno/swagno"
	"github.com/go-swagno/swagno/components/endpoint"
	"github.com/go-swagno/swagno/components/http/response"
	"github.com/go-swagno/swagno/components/mime"
	"github.com/go-swagno/swagno/components/parameter"
)

// FaceBoxData is the analysed face rectangle
type FaceBoxData struct {
	X      int `json:"x" example:"112"`
	Y      int `json:"y" example:"84"`
	Width  int `json:"width" example:"240"`
	Height int `json:"height" example:"240"`
}

// ConditionScoresData holds one score in [0,100] per skin condition
type ConditionScoresData struct {
	Pores        float64 `json:"pores" example:"21.4"`
	Wrinkles     float64 `json:"wrinkles" example:"8.2"`
	Pigmentation float64 `json:"pigmentation" example:"30.1"`
	Acne         float64 `json:"acne" example:"21.4"`
	Texture      float64 `json:"texture" example:"21.4"`
	Redness      float64 `json:"redness" example:"4.7"`
	Blackheads   float64 `json:"blackheads" example:"21.4"`
	Tone         float64 `json:"tone" example:"60.2"`
}

// RegionsData holds the condition scores of every facial region
type RegionsData struct {
	Forehead   ConditionScoresData `json:"forehead"`
	LeftCheek  ConditionScoresData `json:"left_cheek"`
	RightCheek ConditionScoresData `json:"right_cheek"`
	Nose       ConditionScoresData `json:"nose"`
	Chin       ConditionScoresData `json:"chin"`
}

// AgeAnalysisData represents the perceived and eye age estimate
type AgeAnalysisData struct {
	ActualAge        int `json:"actual_age" example:"34"`
	PerceivedAge     int `json:"perceived_age" example:"37"`
	AgeDifference    int `json:"age_difference" example:"3"`
	EyeAge           int `json:"eye_age" example:"36"`
	EyeAgeDifference int `json:"eye_age_difference" example:"2"`
}

// SkinAnalysisData represents the engine output
type SkinAnalysisData struct {
	OverallScore float64             `json:"overall_score" example:"78.3"`
	Regions      RegionsData         `json:"regions"`
	Conditions   ConditionScoresData `json:"conditions"`
	AgeAnalysis  AgeAnalysisData     `json:"age_analysis"`
}

// SeverityData holds the severity band of every condition
type SeverityData struct {
	Pores        string `json:"pores" example:"low"`
	Wrinkles     string `json:"wrinkles" example:"low"`
	Pigmentation string `json:"pigmentation" example:"mild"`
	Acne         string `json:"acne" example:"low"`
	Texture      string `json:"texture" example:"low"`
	Redness      string `json:"redness" example:"low"`
	Blackheads   string `json:"blackheads" example:"low"`
	Tone         string `json:"tone" example:"moderate"`
}

// InsightsData represents the rule-based interpretation of an analysis
type InsightsData struct {
	SkinTone         string       `json:"skin_tone" example:"Intermediate"`
	ITA              float64      `json:"ita" example:"33.7"`
	SkinType         string       `json:"skin_type" example:"Normal/Dry Skin"`
	UVAdvice         string       `json:"uv_advice" example:"Moderate UV sensitivity - Use SPF 30-50"`
	PigmentationRisk string       `json:"pigmentation_risk" example:"Higher risk of hyperpigmentation - avoid strong peels or lasers without doctor advice"`
	Severity         SeverityData `json:"severity"`
}

// AnalyzeResponse represents the response for a skin analysis
type AnalyzeResponse struct {
	ID           string           `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Face         FaceBoxData      `json:"face"`
	SkinAnalysis SkinAnalysisData `json:"skin_analysis"`
	Insights     InsightsData     `json:"insights"`
	LatencyMs    int64            `json:"latency_ms" example:"85"`
	CreatedAt    string           `json:"created_at" example:"2026-01-01T00:00:00Z"`
}

// HealthResponse represents the health and readiness probes
type HealthResponse struct {
	Status    string `json:"status" example:"ok"`
	Version   string `json:"version,omitempty" example:"0.1.0"`
	Detector  string `json:"detector,omitempty" example:"pigo"`
	AgeOracle string `json:"age_oracle,omitempty" example:"static"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Code    string `json:"code" example:"VALIDATION_FAILED"`
	Message string `json:"message" example:"Request validation failed"`
}

func NewSwagger() *swagno.Swagger {
	sw := swagno.New(swagno.Config{
		Title:       "SkinScan API",
		Version:     "v1.0.0",
		Description: "Deterministic facial skin-condition analysis: per-region condition scores, perceived and eye age, skin tone and care insights",
		Host:        "localhost:3000",
		Path:        "/",
	})

	endpoints := []*endpoint.EndPoint{
		// POST /v1/analyze - Analyze Skin
		endpoint.New(
			endpoint.POST,
			"/v1/analyze",
			endpoint.WithTags("Analysis"),
			endpoint.WithSummary("Analyze the skin of the largest face in an image"),
			endpoint.WithDescription("Locates the largest face, scores eight skin conditions over five facial regions, estimates perceived and eye age and derives skin tone insights. The result is deterministic for a given image and age."),
			endpoint.WithConsume([]mime.MIME{mime.MIME("multipart/form-data")}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.FileParam("image", parameter.WithRequired(), parameter.WithDescription("Face image (jpeg, png, webp, gif, bmp or tiff)")),
				parameter.IntParam("actual_age", parameter.Form, parameter.WithDescription("Chronological age in years (0-150); when omitted the configured age oracle decides")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(AnalyzeResponse{}, "200", "Analysis completed successfully"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "Request validation failed"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "INVALID_IMAGE", Message: "Invalid image format or corrupted file"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "NO_FACE_DETECTED", Message: "No face detected in the image"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "DEGENERATE_FACE", Message: "Detected face is too small to analyze"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "RATE_LIMIT_EXCEEDED", Message: "Too many requests, please retry later"}, "429", "Too Many Requests"),
				response.New(ErrorResponse{Code: "REQUEST_CANCELED", Message: "Request was canceled by the client"}, "499", "Client Closed Request"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
				response.New(ErrorResponse{Code: "DETECTOR_UNAVAILABLE", Message: "Face detection backend is unavailable"}, "503", "Service Unavailable"),
				response.New(ErrorResponse{Code: "ANALYSIS_TIMEOUT", Message: "Analysis did not complete in time"}, "504", "Gateway Timeout"),
			}),
		),

		// GET /health - Liveness probe
		endpoint.New(
			endpoint.GET,
			"/health",
			endpoint.WithTags("Health"),
			endpoint.WithSummary("Liveness probe"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(HealthResponse{}, "200", "Service is up"),
			}),
		),

		// GET /ready - Readiness probe
		endpoint.New(
			endpoint.GET,
			"/ready",
			endpoint.WithTags("Health"),
			endpoint.WithSummary("Readiness probe"),
			endpoint.WithDescription("Reports the configured detection backend and age oracle"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(HealthResponse{Status: "ready"}, "200", "Service is ready"),
			}),
		),
	}

	sw.AddEndpoints(endpoints)

	return sw
}
