package faceshape

import (
	"math"

	"github.com/saturnino-fabrica-de-software/hairfit/internal/domain"
	"github.com/saturnino-fabrica-de-software/hairfit/internal/landmark"
)

// Ratios are the scale-free measurements the rule table operates on
type Ratios struct {
	LengthToWidth  float64 `json:"length_to_width"`
	JawToCheekbone float64 `json:"jaw_to_cheekbone"`
	ForeheadToJaw  float64 `json:"forehead_to_jaw"`
	// JawAngle is the angle at the chin tip between both jaw corners, in degrees
	JawAngle float64 `json:"jaw_angle"`
}

// ForeheadToCheekbone is derived from the two stored width ratios
func (r Ratios) ForeheadToCheekbone() float64 {
	return r.ForeheadToJaw * r.JawToCheekbone
}

// Map renders the ratios with the keys used in API responses
func (r Ratios) Map() map[string]float64 {
	return map[string]float64{
		"length_to_width":  round(r.LengthToWidth, 3),
		"jaw_to_cheekbone": round(r.JawToCheekbone, 3),
		"forehead_to_jaw":  round(r.ForeheadToJaw, 3),
		"jaw_angle":        round(r.JawAngle, 1),
	}
}

// Measure computes widths, length and ratios from a normalized landmark set.
// Widths are in inter-ocular units; pixel values use the detection scale.
func Measure(n *landmark.Normalized) (domain.Measurements, Ratios) {
	p := &n.Points

	forehead := landmark.Distance(p.At(landmark.ForeheadLeft), p.At(landmark.ForeheadRight))
	cheekbone := landmark.Distance(p.At(landmark.CheekboneLeft), p.At(landmark.CheekboneRight))
	jaw := landmark.Distance(p.At(landmark.JawLeft), p.At(landmark.JawRight))
	length := landmark.Distance(p.At(landmark.FaceTop), p.At(landmark.Chin))

	scale := n.Transform.Scale
	m := domain.Measurements{
		ForeheadWidth:    round(forehead, 3),
		CheekboneWidth:   round(cheekbone, 3),
		JawWidth:         round(jaw, 3),
		FaceLength:       round(length, 3),
		InterocularPx:    round(scale, 1),
		ForeheadWidthPx:  int(math.Round(forehead * scale)),
		CheekboneWidthPx: int(math.Round(cheekbone * scale)),
		JawWidthPx:       int(math.Round(jaw * scale)),
		FaceLengthPx:     int(math.Round(length * scale)),
	}

	r := Ratios{
		LengthToWidth:  safeDiv(length, cheekbone),
		JawToCheekbone: safeDiv(jaw, cheekbone),
		ForeheadToJaw:  safeDiv(forehead, jaw),
		JawAngle:       angleAt(p.At(landmark.Chin), p.At(landmark.JawLeft), p.At(landmark.JawRight)),
	}
	return m, r
}

// angleAt returns the angle in degrees at vertex between rays to a and b
func angleAt(vertex, a, b landmark.Point) float64 {
	u, v := a.Sub(vertex), b.Sub(vertex)
	nu, nv := math.Hypot(u.X, u.Y), math.Hypot(v.X, v.Y)
	if nu == 0 || nv == 0 {
		return 0
	}
	cos := (u.X*v.X + u.Y*v.Y) / (nu * nv)
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * 180 / math.Pi
}

func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

func round(v float64, places int) float64 {
	f := math.Pow(10, float64(places))
	return math.Round(v*f) / f
}
