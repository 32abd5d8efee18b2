package mediapipe

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/hairfit/internal/provider"
)

func testConfig(url string) Config {
	return Config{
		BaseURL:    url,
		Timeout:    2 * time.Second,
		RetryCount: 2,
		RetryDelay: time.Millisecond,
	}
}

func TestClient_Landmarks(t *testing.T) {
	tests := []struct {
		name           string
		serverResponse interface{}
		serverStatus   int
		wantErr        bool
		wantErrContain string
		wantCalls      int32
		validateResp   func(*testing.T, *LandmarksResponse)
	}{
		{
			name: "successful response with single face",
			serverResponse: LandmarksResponse{
				Faces: []FaceMesh{{Score: 0.97, Landmarks: make([]MeshPoint, 468)}},
			},
			serverStatus: http.StatusOK,
			wantCalls:    1,
			validateResp: func(t *testing.T, resp *LandmarksResponse) {
				require.Len(t, resp.Faces, 1)
				assert.Len(t, resp.Faces[0].Landmarks, 468)
				assert.Equal(t, 0.97, resp.Faces[0].Score)
			},
		},
		{
			name:           "empty response",
			serverResponse: LandmarksResponse{Faces: []FaceMesh{}},
			serverStatus:   http.StatusOK,
			wantCalls:      1,
			validateResp: func(t *testing.T, resp *LandmarksResponse) {
				assert.Empty(t, resp.Faces)
			},
		},
		{
			name:           "server error 500 is retried",
			serverResponse: map[string]string{"error": "internal server error"},
			serverStatus:   http.StatusInternalServerError,
			wantErr:        true,
			wantErrContain: "status 500",
			wantCalls:      3,
		},
		{
			name:           "bad request 400 is not retried",
			serverResponse: map[string]string{"error": "invalid image"},
			serverStatus:   http.StatusBadRequest,
			wantErr:        true,
			wantErrContain: "status 400",
			wantCalls:      1,
		},
		{
			name:           "invalid json response",
			serverResponse: "not a valid json",
			serverStatus:   http.StatusOK,
			wantErr:        true,
			wantErrContain: "invalid response",
			wantCalls:      3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				assert.Equal(t, "/landmarks", r.URL.Path)
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

				var req LandmarksRequest
				if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
					assert.NotEmpty(t, req.Img)
					assert.Equal(t, 1, req.MaxFaces)
				}

				w.WriteHeader(tt.serverStatus)
				if s, ok := tt.serverResponse.(string); ok {
					_, _ = w.Write([]byte(s))
					return
				}
				_ = json.NewEncoder(w).Encode(tt.serverResponse)
			}))
			defer server.Close()

			client := NewClient(testConfig(server.URL))
			resp, err := client.Landmarks(context.Background(), "aGVsbG8=")

			assert.Equal(t, tt.wantCalls, calls.Load())
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrContain)
				return
			}
			require.NoError(t, err)
			tt.validateResp(t, resp)
		})
	}
}

func TestClient_ExhaustedRetriesAreTransient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := NewClient(testConfig(server.URL)).Landmarks(context.Background(), "aGVsbG8=")

	assert.ErrorIs(t, err, ErrMediapipeUnavailable)
	assert.ErrorIs(t, err, provider.ErrTransient)
}

func TestClient_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.RetryDelay = time.Second

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewClient(cfg).Landmarks(ctx, "aGVsbG8=")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCalculateBackoff(t *testing.T) {
	base := time.Second
	assert.Equal(t, time.Second, calculateBackoff(base, 0))
	assert.Equal(t, time.Second, calculateBackoff(base, 1))
	assert.Equal(t, 2*time.Second, calculateBackoff(base, 2))
	assert.Equal(t, 4*time.Second, calculateBackoff(base, 3))
	assert.Equal(t, maxBackoff, calculateBackoff(base, 20))
}
