package docs

import (
	"github.com/go-swagno/swagno"
	"github.com/go-swagno/swagno/components/endpoint"
	"github.com/go-swagno/swagno/components/http/response"
	"github.com/go-swagno/swagno/components/mime"
	"github.com/go-swagno/swagno/components/parameter"
)

// AnalysisResponse represents the result of a photo analysis
type AnalysisResponse struct {
	ID              string                   `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	FaceShape       FaceShapeData            `json:"face_shape"`
	Undertone       UndertoneData            `json:"undertone"`
	Measurements    MeasurementsData         `json:"measurements"`
	Recommendations []RecommendationResponse `json:"recommendations"`
	AgeBand         string                   `json:"age_band,omitempty" example:"1020대"`
	Landmarks       []LandmarkData           `json:"landmarks"`
	LandmarkCount   int                      `json:"landmark_count" example:"18"`
	Details         []string                 `json:"details"`
	CatalogVersion  uint64                   `json:"catalog_version" example:"12"`
	CatalogDegraded bool                     `json:"catalog_degraded" example:"false"`
	LatencyMs       int64                    `json:"latency_ms" example:"180"`
	CreatedAt       string                   `json:"created_at" example:"2026-01-01T00:00:00Z"`
}

// LandmarkData is one named point in pixels (x, y) and normalised units (nx, ny)
type LandmarkData struct {
	Name string  `json:"name" example:"left_eye"`
	X    float64 `json:"x" example:"170"`
	Y    float64 `json:"y" example:"182"`
	NX   float64 `json:"nx" example:"-0.5"`
	NY   float64 `json:"ny" example:"0"`
}

// FaceShapeData represents the face-shape classification
type FaceShapeData struct {
	Shape      string             `json:"shape" example:"oval"`
	Tag        string             `json:"tag" example:"타원형"`
	Confidence float64            `json:"confidence" example:"78"`
	Rule       string             `json:"rule" example:"oval"`
	Reasoning  string             `json:"reasoning" example:"balanced proportions, jaw slightly narrower than cheekbones"`
	Ratios     map[string]float64 `json:"ratios"`
}

// UndertoneData represents the skin undertone estimate
type UndertoneData struct {
	Undertone  string   `json:"undertone" example:"warm"`
	Confidence float64  `json:"confidence" example:"82.5"`
	Score      float64  `json:"score" example:"31.4"`
	HairColors []string `json:"hair_colors" example:"골드 브라운,카라멜 브라운"`
	Fallback   bool     `json:"fallback" example:"false"`
}

// MeasurementsData represents face widths and length
type MeasurementsData struct {
	ForeheadWidth    float64 `json:"forehead_width" example:"1.9"`
	CheekboneWidth   float64 `json:"cheekbone_width" example:"2.1"`
	JawWidth         float64 `json:"jaw_width" example:"1.65"`
	FaceLength       float64 `json:"face_length" example:"3"`
	InterocularPx    float64 `json:"interocular_px" example:"80"`
	ForeheadWidthPx  int     `json:"forehead_width_px" example:"152"`
	CheekboneWidthPx int     `json:"cheekbone_width_px" example:"168"`
	JawWidthPx       int     `json:"jaw_width_px" example:"132"`
	FaceLengthPx     int     `json:"face_length_px" example:"240"`
}

// RecommendationResponse represents one recommended style
type RecommendationResponse struct {
	Rank         int      `json:"rank" example:"1"`
	StyleName    string   `json:"style_name" example:"레이어드미디움"`
	Category     string   `json:"category,omitempty" example:"layered"`
	FaceShape    string   `json:"face_shape" example:"oval"`
	AgeBand      string   `json:"age_band" example:"전연령"`
	Rationale    string   `json:"rationale" example:"타원형 얼굴에는 레이어드미디움 스타일이 균형 잡힌 비율을 살려 줍니다"`
	PrimaryURL   string   `json:"primary_url" example:"https://cdn.example.com/styles/011_레이어드미디움_타원형_전연령_v1.jpg"`
	ImageURLs    []string `json:"image_urls"`
	VariantCount int      `json:"variant_count" example:"1"`
}

// CatalogStatusResponse represents the cache control view of the catalog
type CatalogStatusResponse struct {
	Backend     string  `json:"backend" example:"s3"`
	Version     uint64  `json:"version" example:"12"`
	AgeSeconds  float64 `json:"snapshot_age_seconds" example:"42.5"`
	EntryCount  int     `json:"entry_count" example:"120"`
	AssetCount  int     `json:"asset_count" example:"310"`
	Skipped     int     `json:"skipped" example:"2"`
	Collisions  int     `json:"collisions" example:"0"`
	LastRefresh string  `json:"last_refresh,omitempty" example:"2026-01-01T00:00:00Z"`
	LastAttempt string  `json:"last_attempt,omitempty" example:"2026-01-01T00:00:00Z"`
	Fresh       bool    `json:"fresh" example:"true"`
	Degraded    bool    `json:"degraded" example:"false"`
	LastError   string  `json:"last_error,omitempty" example:""`
}

// StyleEntryResponse represents one catalog style with all of its variants
type StyleEntryResponse struct {
	Key       string   `json:"key" example:"oval|전연령|레이어드미디움"`
	StyleName string   `json:"style_name" example:"레이어드미디움"`
	FaceShape string   `json:"face_shape" example:"oval"`
	AgeBand   string   `json:"age_band" example:"전연령"`
	Sequence  int      `json:"sequence" example:"11"`
	URLs      []string `json:"urls"`
}

// StylesResponse represents a catalog browse result
type StylesResponse struct {
	Shape   string               `json:"shape" example:"oval"`
	AgeBand string               `json:"age_band,omitempty" example:"1020대"`
	Version uint64               `json:"version" example:"12"`
	Styles  []StyleEntryResponse `json:"styles"`
}

// HealthResponse represents the liveness and readiness checks
type HealthResponse struct {
	Status  string            `json:"status" example:"ok"`
	Version string            `json:"version,omitempty" example:"0.1.0"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Code    string `json:"code" example:"VALIDATION_FAILED"`
	Message string `json:"message" example:"Request validation failed"`
}

// NewSwagger creates and configures the Swagger documentation
func NewSwagger() *swagno.Swagger {
	sw := swagno.New(swagno.Config{
		Title:       "Hairfit API",
		Version:     "v1.0.0",
		Description: "Face-shape and undertone analysis with hairstyle recommendations from the style catalog",
		Host:        "localhost:3000",
		Path:        "/v1",
	})

	endpoints := []*endpoint.EndPoint{
		// POST /v1/analyze - Analyze Photo
		endpoint.New(
			endpoint.POST,
			"/analyze",
			endpoint.WithTags("Analysis"),
			endpoint.WithSummary("Analyze a photo and recommend hairstyles"),
			endpoint.WithDescription("Multipart form with an image field and an optional age_band field (1020대, 3040대, 5060대 or 전연령; empty selects every band). Detects landmarks, classifies the face shape, estimates the skin undertone and returns up to four styles from the catalog. The catalog may be served stale when the object store is unreachable (catalog_degraded=true)."),
			endpoint.WithConsume([]mime.MIME{mime.MIME("multipart/form-data")}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(AnalysisResponse{}, "200", "Analysis completed successfully"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "image is required"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "INVALID_IMAGE", Message: "Invalid image format or corrupted file"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "INVALID_AGE_BAND", Message: "Unknown age band"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "NO_FACE_DETECTED", Message: "No face detected in the image, please retake the photo"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
				response.New(ErrorResponse{Code: "DETECTOR_UNAVAILABLE", Message: "Landmark detector is unavailable, try again later"}, "503", "Service Unavailable"),
			}),
		),

		// GET /v1/catalog/status - Catalog Status
		endpoint.New(
			endpoint.GET,
			"/catalog/status",
			endpoint.WithTags("Catalog"),
			endpoint.WithSummary("Get catalog cache status"),
			endpoint.WithDescription("Returns snapshot age, entry count, last successful refresh and the degraded-mode flag"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(CatalogStatusResponse{}, "200", "Status retrieved successfully"),
			}),
		),

		// POST /v1/catalog/refresh - Force Refresh
		endpoint.New(
			endpoint.POST,
			"/catalog/refresh",
			endpoint.WithTags("Catalog"),
			endpoint.WithSummary("Force a catalog refresh"),
			endpoint.WithDescription("Lists the object store regardless of snapshot age. On failure the previous snapshot is kept and the status reports degraded mode."),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(CatalogStatusResponse{}, "200", "Catalog refreshed"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(CatalogStatusResponse{Degraded: true, LastError: "transient provider error"}, "503", "Refresh failed, previous snapshot retained"),
			}),
		),

		// GET /v1/catalog/styles - Browse Styles
		endpoint.New(
			endpoint.GET,
			"/catalog/styles",
			endpoint.WithTags("Catalog"),
			endpoint.WithSummary("List catalog styles"),
			endpoint.WithDescription("Lists the styles of a face shape, optionally restricted to one age band"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("shape", parameter.Query, parameter.WithDescription("Required face shape: oval, round, square, long, heart, diamond or the Korean tag")),
				parameter.StrParam("age_band", parameter.Query, parameter.WithDescription("Optional age band")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(StylesResponse{}, "200", "Styles retrieved successfully"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "INVALID_FACE_SHAPE", Message: "Unknown face shape"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "INVALID_AGE_BAND", Message: "Unknown age band"}, "422", "Unprocessable Entity"),
			}),
		),
	}

	sw.AddEndpoints(endpoints)

	return sw
}
