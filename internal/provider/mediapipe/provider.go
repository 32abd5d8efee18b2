package mediapipe

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image/png"

	"github.com/saturnino-fabrica-de-software/hairfit/internal/imaging"
	"github.com/saturnino-fabrica-de-software/hairfit/internal/landmark"
	"github.com/saturnino-fabrica-de-software/hairfit/internal/provider"
)

// meshIndex maps each landmark of the detector contract to its face-mesh vertex
var meshIndex = [landmark.Count]int{
	landmark.FaceTop:        10,
	landmark.ForeheadCenter: 151,
	landmark.ForeheadLeft:   127,
	landmark.ForeheadRight:  356,
	landmark.LeftEye:        33,
	landmark.RightEye:       362,
	landmark.NoseBridge:     168,
	landmark.CheekboneLeft:  234,
	landmark.CheekboneRight: 454,
	landmark.LeftCheek:      205,
	landmark.RightCheek:     425,
	landmark.MouthLeft:      61,
	landmark.MouthRight:     291,
	landmark.JawLeft:        172,
	landmark.JawRight:       397,
	landmark.ChinLeft:       148,
	landmark.ChinRight:      377,
	landmark.Chin:           152,
}

// Provider implements provider.LandmarkDetector using the face-mesh sidecar
type Provider struct {
	client *Client
}

var (
	_ provider.LandmarkDetector = (*Provider)(nil)
	_ provider.Pinger           = (*Provider)(nil)
)

// NewProvider creates a new MediaPipe provider
func NewProvider(config Config) *Provider {
	return &Provider{
		client: NewClient(config),
	}
}

func (p *Provider) Name() string { return "mediapipe" }

// DetectLandmarks runs the mesh and keeps the highest scoring face
func (p *Provider) DetectLandmarks(ctx context.Context, frame *imaging.Frame) (*landmark.Detection, error) {
	raw, err := encodeFrame(frame)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Landmarks(ctx, base64.StdEncoding.EncodeToString(raw))
	if err != nil {
		return nil, fmt.Errorf("detect landmarks: %w", err)
	}

	if len(resp.Faces) == 0 {
		return nil, landmark.ErrDetectionMissing
	}

	best := resp.Faces[0]
	for _, f := range resp.Faces[1:] {
		if f.Score > best.Score {
			best = f
		}
	}

	return toDetection(best, frame.Width(), frame.Height())
}

// Ping checks the sidecar health endpoint
func (p *Provider) Ping(ctx context.Context) error {
	if err := p.client.Health(ctx); err != nil {
		return fmt.Errorf("mediapipe health: %w", err)
	}
	return nil
}

func toDetection(mesh FaceMesh, width, height int) (*landmark.Detection, error) {
	points := make([]landmark.Point, landmark.Count)
	for name, idx := range meshIndex {
		if idx >= len(mesh.Landmarks) {
			return nil, fmt.Errorf("%w: %w: got %d vertices, need index %d",
				landmark.ErrDetectionMissing, ErrIncompleteMesh, len(mesh.Landmarks), idx)
		}
		v := mesh.Landmarks[idx]
		points[name] = landmark.Point{X: v.X * float64(width), Y: v.Y * float64(height)}
	}

	return &landmark.Detection{
		Points:      points,
		Confidence:  mesh.Score,
		ImageWidth:  width,
		ImageHeight: height,
	}, nil
}

func encodeFrame(frame *imaging.Frame) ([]byte, error) {
	if len(frame.Raw) > 0 {
		return frame.Raw, nil
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, frame.Image); err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	return buf.Bytes(), nil
}
