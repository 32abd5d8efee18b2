package landmark

import (
	"errors"
	"fmt"
	"math"
)

// ErrDetectionMissing indicates that no usable face was found
var ErrDetectionMissing = errors.New("no usable face detection")

// minInterocular is the smallest eye distance, in pixels, that still defines a frame
const minInterocular = 1e-6

// Transform maps image coordinates into the canonical frame:
// translate by -Origin, rotate by -Angle, divide by Scale
type Transform struct {
	Origin Point   `json:"origin"`
	Scale  float64 `json:"scale"`
	Angle  float64 `json:"angle"`
}

// Apply maps an image point into the canonical frame
func (t Transform) Apply(p Point) Point {
	return p.Sub(t.Origin).Rotate(-t.Angle).Scale(1 / t.Scale)
}

// Invert maps a canonical point back into image coordinates
func (t Transform) Invert(p Point) Point {
	return p.Scale(t.Scale).Rotate(t.Angle).Add(t.Origin)
}

// Normalized is a landmark Set in the canonical frame together with the
// transform that produced it
type Normalized struct {
	Points      Set       `json:"points"`
	Transform   Transform `json:"transform"`
	Confidence  float64   `json:"confidence"`
	ImageWidth  int       `json:"image_width"`
	ImageHeight int       `json:"image_height"`
}

// Normalize moves the inter-eye midpoint to the origin, scales so the
// inter-ocular distance is 1 and rotates the eye line onto the x axis
func Normalize(d *Detection) (*Normalized, error) {
	if d == nil || len(d.Points) == 0 {
		return nil, ErrDetectionMissing
	}
	if len(d.Points) < MinPoints {
		return nil, fmt.Errorf("%w: got %d points, need %d", ErrDetectionMissing, len(d.Points), MinPoints)
	}

	left, right := d.Points[LeftEye], d.Points[RightEye]
	iod := Distance(left, right)
	if iod < minInterocular || math.IsNaN(iod) || math.IsInf(iod, 0) {
		return nil, fmt.Errorf("%w: degenerate eye positions", ErrDetectionMissing)
	}

	eyeLine := right.Sub(left)
	t := Transform{
		Origin: left.Add(right).Scale(0.5),
		Scale:  iod,
		Angle:  math.Atan2(eyeLine.Y, eyeLine.X),
	}

	n := &Normalized{
		Transform:   t,
		Confidence:  d.Confidence,
		ImageWidth:  d.ImageWidth,
		ImageHeight: d.ImageHeight,
	}
	for i := 0; i < Count; i++ {
		n.Points[i] = t.Apply(d.Points[i])
	}

	// Snap the reference points so the frame invariants hold exactly.
	n.Points[LeftEye] = Point{X: -0.5}
	n.Points[RightEye] = Point{X: 0.5}

	return n, nil
}

// Interocular returns the eye distance of the normalized set
func (n *Normalized) Interocular() float64 {
	return Distance(n.Points[LeftEye], n.Points[RightEye])
}

// EyeLineSlope returns the slope of the line through both eyes
func (n *Normalized) EyeLineSlope() float64 {
	d := n.Points[RightEye].Sub(n.Points[LeftEye])
	return d.Y / d.X
}
