package landmark

// Geometry describes a face in canonical units (inter-ocular distance = 1,
// eyes at (-0.5, 0) and (0.5, 0), y pointing down like image rows).
// It is used to synthesise detections for development and tests.
type Geometry struct {
	FaceLength     float64
	ForeheadWidth  float64
	CheekboneWidth float64
	JawWidth       float64
	// JawDrop is the vertical distance from the jaw corners down to the chin tip
	JawDrop float64
}

// DefaultGeometry is an average adult face, which classifies as oval
func DefaultGeometry() Geometry {
	return Geometry{
		FaceLength:     3.0,
		ForeheadWidth:  1.9,
		CheekboneWidth: 2.1,
		JawWidth:       1.65,
		JawDrop:        0.6,
	}
}

// Canonical lays the geometry out as a normalized Set
func (g Geometry) Canonical() Set {
	const top = -1.0
	chinY := top + g.FaceLength
	jawY := chinY - g.JawDrop

	var s Set
	s[FaceTop] = Point{0, top}
	s[ForeheadCenter] = Point{0, -0.6}
	s[ForeheadLeft] = Point{-g.ForeheadWidth / 2, -0.45}
	s[ForeheadRight] = Point{g.ForeheadWidth / 2, -0.45}
	s[LeftEye] = Point{-0.5, 0}
	s[RightEye] = Point{0.5, 0}
	s[NoseBridge] = Point{0, 0.05}
	s[CheekboneLeft] = Point{-g.CheekboneWidth / 2, 0.35}
	s[CheekboneRight] = Point{g.CheekboneWidth / 2, 0.35}
	s[LeftCheek] = Point{-0.6, 0.75}
	s[RightCheek] = Point{0.6, 0.75}
	s[MouthLeft] = Point{-0.35, jawY - 0.15}
	s[MouthRight] = Point{0.35, jawY - 0.15}
	s[JawLeft] = Point{-g.JawWidth / 2, jawY}
	s[JawRight] = Point{g.JawWidth / 2, jawY}
	s[ChinLeft] = Point{-g.JawWidth / 4, chinY - 0.15}
	s[ChinRight] = Point{g.JawWidth / 4, chinY - 0.15}
	s[Chin] = Point{0, chinY}
	return s
}

// Place projects the geometry into an image through t and returns it as a
// raw detection
func (g Geometry) Place(t Transform, width, height int, confidence float64) *Detection {
	canonical := g.Canonical()
	points := make([]Point, Count)
	for i := range canonical {
		points[i] = t.Invert(canonical[i])
	}
	return &Detection{
		Points:      points,
		Confidence:  confidence,
		ImageWidth:  width,
		ImageHeight: height,
	}
}

// Centered returns a transform that puts the eye midpoint slightly above the
// image centre with an inter-ocular distance of width/5
func Centered(width, height int) Transform {
	return Transform{
		Origin: Point{X: float64(width) / 2, Y: float64(height) * 0.42},
		Scale:  float64(width) / 5,
	}
}
