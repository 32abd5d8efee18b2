package faceshape

import "github.com/saturnino-fabrica-de-software/hairfit/internal/domain"

// Rule is one row of the classification table. Every rule whose Match holds
// is a candidate; the highest Weight wins.
type Rule struct {
	Name        string
	Shape       domain.FaceShape
	Weight      float64
	Description string
	Match       func(Ratios) bool
}

// Thresholds used by the default table
const (
	longStrongLength = 1.5
	longLength       = 1.38
	roundMaxLength   = 1.15
	squareMaxLength  = 1.2
	ovalMinLength    = 1.2
	wideJaw          = 0.9
	fullJaw          = 0.85
	narrowJaw        = 0.8
	ovalMinJaw       = 0.75
	ovalMaxJaw       = 0.95
	angularJawAngle  = 125
	heartForehead    = 1.25
	heartStrong      = 1.4
	diamondForehead  = 0.85
)

// DefaultRules returns the built-in rule table
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:        "long-strong",
			Shape:       domain.FaceShapeLong,
			Weight:      88,
			Description: "face is at least one and a half times longer than wide",
			Match:       func(r Ratios) bool { return r.LengthToWidth >= longStrongLength },
		},
		{
			Name:        "long",
			Shape:       domain.FaceShapeLong,
			Weight:      76,
			Description: "long face with straight sides",
			Match: func(r Ratios) bool {
				return r.LengthToWidth >= longLength && r.JawToCheekbone >= narrowJaw
			},
		},
		{
			Name:        "round",
			Shape:       domain.FaceShapeRound,
			Weight:      80,
			Description: "length close to width with a full, soft jaw",
			Match: func(r Ratios) bool {
				return r.LengthToWidth <= roundMaxLength && r.JawToCheekbone >= fullJaw && r.JawAngle < angularJawAngle
			},
		},
		{
			Name:        "square",
			Shape:       domain.FaceShapeSquare,
			Weight:      82,
			Description: "short face with a wide, angular jaw",
			Match: func(r Ratios) bool {
				return r.LengthToWidth <= squareMaxLength && r.JawToCheekbone >= wideJaw && r.JawAngle >= angularJawAngle
			},
		},
		{
			Name:        "square-soft",
			Shape:       domain.FaceShapeSquare,
			Weight:      70,
			Description: "jaw nearly as wide as the cheekbones",
			Match: func(r Ratios) bool {
				return r.LengthToWidth < longLength && r.JawToCheekbone >= ovalMaxJaw
			},
		},
		{
			Name:        "heart-strong",
			Shape:       domain.FaceShapeHeart,
			Weight:      88,
			Description: "forehead much wider than a narrow jaw",
			Match: func(r Ratios) bool {
				return r.ForeheadToJaw >= heartStrong && r.JawToCheekbone < narrowJaw
			},
		},
		{
			Name:        "heart",
			Shape:       domain.FaceShapeHeart,
			Weight:      78,
			Description: "forehead wider than the jaw, tapering chin",
			Match: func(r Ratios) bool {
				return r.ForeheadToJaw >= heartForehead && r.JawToCheekbone < fullJaw
			},
		},
		{
			Name:        "diamond",
			Shape:       domain.FaceShapeDiamond,
			Weight:      80,
			Description: "cheekbones clearly wider than both forehead and jaw",
			Match: func(r Ratios) bool {
				return r.JawToCheekbone < narrowJaw && r.ForeheadToCheekbone() < diamondForehead
			},
		},
		{
			Name:        "oval",
			Shape:       domain.FaceShapeOval,
			Weight:      78,
			Description: "balanced proportions, jaw slightly narrower than cheekbones",
			Match: func(r Ratios) bool {
				return r.LengthToWidth >= ovalMinLength && r.LengthToWidth < longStrongLength &&
					r.JawToCheekbone >= ovalMinJaw && r.JawToCheekbone < ovalMaxJaw
			},
		},
		{
			Name:        "oval-soft",
			Shape:       domain.FaceShapeOval,
			Weight:      62,
			Description: "moderately elongated face",
			Match: func(r Ratios) bool {
				return r.LengthToWidth >= 1.1 && r.LengthToWidth < 1.6
			},
		},
		{
			Name:        "round-soft",
			Shape:       domain.FaceShapeRound,
			Weight:      60,
			Description: "short face with a moderately full jaw",
			Match: func(r Ratios) bool {
				return r.LengthToWidth < squareMaxLength && r.JawToCheekbone >= ovalMinJaw
			},
		},
	}
}
