package domain

import (
	"time"

	"github.com/google/uuid"
)

// FaceShape is one of the six canonical face shapes
type FaceShape string

const (
	FaceShapeOval    FaceShape = "oval"
	FaceShapeRound   FaceShape = "round"
	FaceShapeSquare  FaceShape = "square"
	FaceShapeLong    FaceShape = "long"
	FaceShapeHeart   FaceShape = "heart"
	FaceShapeDiamond FaceShape = "diamond"
)

// FaceShapes lists every shape in tie-break priority order
var FaceShapes = []FaceShape{
	FaceShapeOval,
	FaceShapeRound,
	FaceShapeSquare,
	FaceShapeLong,
	FaceShapeHeart,
	FaceShapeDiamond,
}

// faceShapeTags maps each shape to the tag used in asset filenames
var faceShapeTags = map[FaceShape]string{
	FaceShapeRound:   "둥근형",
	FaceShapeOval:    "타원형",
	FaceShapeSquare:  "각진형",
	FaceShapeLong:    "긴형",
	FaceShapeHeart:   "하트형",
	FaceShapeDiamond: "다이아몬드형",
}

var faceShapesByTag = invert(faceShapeTags)

// Tag returns the filename tag of the shape
func (s FaceShape) Tag() string {
	return faceShapeTags[s]
}

// Priority returns the tie-break rank of the shape; lower wins
func (s FaceShape) Priority() int {
	for i, shape := range FaceShapes {
		if shape == s {
			return i
		}
	}
	return len(FaceShapes)
}

func (s FaceShape) Valid() bool {
	_, ok := faceShapeTags[s]
	return ok
}

// FaceShapeFromTag resolves a filename tag such as "둥근형"
func FaceShapeFromTag(tag string) (FaceShape, bool) {
	s, ok := faceShapesByTag[tag]
	return s, ok
}

// ParseFaceShape accepts either the english identifier or the filename tag
func ParseFaceShape(v string) (FaceShape, error) {
	if s := FaceShape(v); s.Valid() {
		return s, nil
	}
	if s, ok := FaceShapeFromTag(v); ok {
		return s, nil
	}
	return "", ErrInvalidFaceShape
}

// AgeBand is the age range a style targets
type AgeBand string

const (
	AgeBand1020 AgeBand = "1020대"
	AgeBand3040 AgeBand = "3040대"
	AgeBand5060 AgeBand = "5060대"
	// AgeBandAll is a catalog tag for styles that suit every age
	AgeBandAll AgeBand = "전연령"
	// AgeBandAny is the request wildcard used when the age is unknown
	AgeBandAny AgeBand = ""
)

var ageBands = map[AgeBand]bool{
	AgeBand1020: true,
	AgeBand3040: true,
	AgeBand5060: true,
	AgeBandAll:  true,
}

// AgeBands lists the catalog vocabulary in display order
var AgeBands = []AgeBand{AgeBand1020, AgeBand3040, AgeBand5060, AgeBandAll}

func (b AgeBand) Valid() bool {
	return ageBands[b]
}

func (b AgeBand) IsWildcard() bool {
	return b == AgeBandAny
}

// ParseAgeBand resolves a request value; empty means wildcard
func ParseAgeBand(v string) (AgeBand, error) {
	if v == "" {
		return AgeBandAny, nil
	}
	b := AgeBand(v)
	if !b.Valid() {
		return "", ErrInvalidAgeBand
	}
	return b, nil
}

// Undertone is the coarse skin undertone
type Undertone string

const (
	UndertoneWarm    Undertone = "warm"
	UndertoneCool    Undertone = "cool"
	UndertoneNeutral Undertone = "neutral"
)

var hairColors = map[Undertone][]string{
	UndertoneWarm:    {"골드 브라운", "카라멜 브라운", "코퍼 오렌지", "허니 블론드"},
	UndertoneCool:    {"애쉬 브라운", "블루 블랙", "애쉬 그레이", "플래티넘 블론드"},
	UndertoneNeutral: {"내추럴 브라운", "다크 초콜릿", "밀크 브라운", "소프트 블랙"},
}

// HairColors returns the hair colour names that complement the undertone
func (u Undertone) HairColors() []string {
	colors := hairColors[u]
	out := make([]string, len(colors))
	copy(out, colors)
	return out
}

// Analysis is the full pipeline output for one photograph
type Analysis struct {
	ID              uuid.UUID        `json:"id"`
	FaceShape       ShapeResult      `json:"face_shape"`
	Undertone       UndertoneResult  `json:"undertone"`
	Measurements    Measurements     `json:"measurements"`
	Recommendations []Recommendation `json:"recommendations"`
	AgeBand         AgeBand          `json:"age_band,omitempty"`
	Landmarks       []Landmark       `json:"landmarks"`
	LandmarkCount   int              `json:"landmark_count"`
	Details         []string         `json:"details"`
	CatalogVersion  uint64           `json:"catalog_version"`
	CatalogDegraded bool             `json:"catalog_degraded"`
	LatencyMs       int64            `json:"latency_ms"`
	CreatedAt       time.Time        `json:"created_at"`
}

// Landmark is one named detector point in image pixels and in the
// normalised frame (inter-ocular distance 1, eye midpoint at the origin)
type Landmark struct {
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	NX   float64 `json:"nx"`
	NY   float64 `json:"ny"`
}

// ShapeResult is the face-shape classification
type ShapeResult struct {
	Shape      FaceShape          `json:"shape"`
	Tag        string             `json:"tag"`
	Confidence float64            `json:"confidence"`
	Rule       string             `json:"rule"`
	Reasoning  string             `json:"reasoning"`
	Ratios     map[string]float64 `json:"ratios"`
}

// UndertoneResult is the undertone estimate with suggested hair colours
type UndertoneResult struct {
	Undertone  Undertone `json:"undertone"`
	Confidence float64   `json:"confidence"`
	Score      float64   `json:"score"`
	HairColors []string  `json:"hair_colors"`
	Fallback   bool      `json:"fallback"`
}

// Measurements holds widths and length both in inter-ocular units and pixels
type Measurements struct {
	ForeheadWidth    float64 `json:"forehead_width"`
	CheekboneWidth   float64 `json:"cheekbone_width"`
	JawWidth         float64 `json:"jaw_width"`
	FaceLength       float64 `json:"face_length"`
	InterocularPx    float64 `json:"interocular_px"`
	ForeheadWidthPx  int     `json:"forehead_width_px"`
	CheekboneWidthPx int     `json:"cheekbone_width_px"`
	JawWidthPx       int     `json:"jaw_width_px"`
	FaceLengthPx     int     `json:"face_length_px"`
}

// Recommendation is one ranked hairstyle
type Recommendation struct {
	Rank         int       `json:"rank"`
	StyleName    string    `json:"style_name"`
	Category     string    `json:"category,omitempty"`
	FaceShape    FaceShape `json:"face_shape"`
	AgeBand      AgeBand   `json:"age_band"`
	Rationale    string    `json:"rationale"`
	PrimaryURL   string    `json:"primary_url"`
	ImageURLs    []string  `json:"image_urls"`
	VariantCount int       `json:"variant_count"`
}

func invert[K comparable, V comparable](m map[K]V) map[V]K {
	out := make(map[V]K, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}
