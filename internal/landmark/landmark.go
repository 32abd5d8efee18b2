// Package landmark defines the 18-point detector contract and converts raw
// detections into a scale- and rotation-invariant frame.
package landmark

import "math"

// Name indexes a point in a landmark Set
type Name int

const (
	FaceTop Name = iota
	ForeheadCenter
	ForeheadLeft
	ForeheadRight
	LeftEye
	RightEye
	NoseBridge
	CheekboneLeft
	CheekboneRight
	LeftCheek
	RightCheek
	MouthLeft
	MouthRight
	JawLeft
	JawRight
	ChinLeft
	ChinRight
	Chin

	// Count is the number of points every detector must return
	Count int = iota
)

// MinPoints is the minimum number of points a detection needs to be usable
const MinPoints = Count

var names = [Count]string{
	"face_top", "forehead_center", "forehead_left", "forehead_right",
	"left_eye", "right_eye", "nose_bridge",
	"cheekbone_left", "cheekbone_right", "left_cheek", "right_cheek",
	"mouth_left", "mouth_right", "jaw_left", "jaw_right",
	"chin_left", "chin_right", "chin",
}

func (n Name) String() string {
	if n < 0 || int(n) >= Count {
		return "unknown"
	}
	return names[n]
}

// Point is a 2-D coordinate
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

func (p Point) Scale(f float64) Point { return Point{p.X * f, p.Y * f} }

// Rotate rotates p counter-clockwise by angle radians around the origin
func (p Point) Rotate(angle float64) Point {
	sin, cos := math.Sincos(angle)
	return Point{p.X*cos - p.Y*sin, p.X*sin + p.Y*cos}
}

// Distance returns the euclidean distance between p and q
func Distance(p, q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Set holds one detection's points indexed by Name
type Set [Count]Point

func (s *Set) At(n Name) Point { return s[n] }

// Detection is the raw output of a landmark detector in image pixel coordinates
type Detection struct {
	Points      []Point `json:"points"`
	Confidence  float64 `json:"confidence"`
	ImageWidth  int     `json:"image_width"`
	ImageHeight int     `json:"image_height"`
}
