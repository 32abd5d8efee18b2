package mediapipe

import (
	"context"
	"encoding/json"
	"image"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/hairfit/internal/imaging"
	"github.com/saturnino-fabrica-de-software/hairfit/internal/landmark"
)

// meshFor builds a 468-vertex mesh whose contract vertices follow det
func meshFor(det *landmark.Detection, score float64) FaceMesh {
	mesh := FaceMesh{Score: score, Landmarks: make([]MeshPoint, 468)}
	for name, idx := range meshIndex {
		p := det.Points[name]
		mesh.Landmarks[idx] = MeshPoint{
			X: p.X / float64(det.ImageWidth),
			Y: p.Y / float64(det.ImageHeight),
		}
	}
	return mesh
}

func meshServer(t *testing.T, resp LandmarksResponse) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestProvider_DetectLandmarks(t *testing.T) {
	const w, h = 400, 500
	want := landmark.DefaultGeometry().Place(landmark.Centered(w, h), w, h, 0.93)
	other := landmark.Geometry{FaceLength: 2.4, ForeheadWidth: 2, CheekboneWidth: 2.2, JawWidth: 2, JawDrop: 0.4}.
		Place(landmark.Centered(w, h), w, h, 0.4)

	server := meshServer(t, LandmarksResponse{Faces: []FaceMesh{meshFor(other, 0.4), meshFor(want, 0.93)}})

	p := NewProvider(testConfig(server.URL))
	frame := imaging.FromImage(image.NewRGBA(image.Rect(0, 0, w, h)))

	det, err := p.DetectLandmarks(context.Background(), frame)
	require.NoError(t, err)

	assert.Equal(t, 0.93, det.Confidence)
	assert.Equal(t, w, det.ImageWidth)
	assert.Equal(t, h, det.ImageHeight)
	require.Len(t, det.Points, landmark.Count)
	for i := range want.Points {
		assert.InDelta(t, want.Points[i].X, det.Points[i].X, 1e-6, landmark.Name(i).String())
		assert.InDelta(t, want.Points[i].Y, det.Points[i].Y, 1e-6, landmark.Name(i).String())
	}

	n, err := landmark.Normalize(det)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, n.Interocular(), 1e-12)
}

func TestProvider_NoFace(t *testing.T) {
	server := meshServer(t, LandmarksResponse{})

	_, err := NewProvider(testConfig(server.URL)).
		DetectLandmarks(context.Background(), imaging.FromImage(image.NewRGBA(image.Rect(0, 0, 100, 100))))

	assert.ErrorIs(t, err, landmark.ErrDetectionMissing)
}

func TestProvider_IncompleteMesh(t *testing.T) {
	server := meshServer(t, LandmarksResponse{Faces: []FaceMesh{{Score: 0.9, Landmarks: make([]MeshPoint, 100)}}})

	_, err := NewProvider(testConfig(server.URL)).
		DetectLandmarks(context.Background(), imaging.FromImage(image.NewRGBA(image.Rect(0, 0, 100, 100))))

	assert.ErrorIs(t, err, landmark.ErrDetectionMissing)
	assert.ErrorIs(t, err, ErrIncompleteMesh)
}

func TestProvider_Name(t *testing.T) {
	assert.Equal(t, "mediapipe", NewProvider(DefaultConfig()).Name())
}

func TestProvider_Ping(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		wantStatus int
	}{
		{name: "sidecar up", status: http.StatusOK},
		{name: "sidecar loading model", status: http.StatusServiceUnavailable, wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var path string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				path = r.URL.Path
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"status":"ok"}`))
			}))
			defer server.Close()

			err := NewProvider(testConfig(server.URL)).Ping(context.Background())
			assert.Equal(t, "/health", path)

			if tt.wantStatus == 0 {
				assert.NoError(t, err)
				return
			}
			var se *StatusError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.wantStatus, se.StatusCode)
		})
	}
}

func TestProvider_PingUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	assert.Error(t, NewProvider(testConfig(url)).Ping(context.Background()))
}
