package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/hairfit/internal/catalog"
	"github.com/saturnino-fabrica-de-software/hairfit/internal/domain"
	providermock "github.com/saturnino-fabrica-de-software/hairfit/internal/provider/mock"
)

type stubSource struct {
	snap       *catalog.Snapshot
	status     catalog.Status
	refreshErr error
	refreshes  int
}

func (s *stubSource) Snapshot(ctx context.Context) (*catalog.Snapshot, error) {
	return s.snap, nil
}

func (s *stubSource) Status() catalog.Status {
	return s.status
}

func (s *stubSource) Refresh(ctx context.Context) (*catalog.Snapshot, error) {
	s.refreshes++
	if s.refreshErr != nil {
		s.status.Degraded = true
		s.status.LastError = s.refreshErr.Error()
		return s.snap, s.refreshErr
	}
	s.status.Version++
	return s.snap, nil
}

func timeZero() time.Time {
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
}

func TestCatalogService_Styles(t *testing.T) {
	sync := newTestSynchronizer(providermock.NewLister(providermock.SampleObjects("https://cdn.example.com", "")))
	svc := NewCatalogService(sync)

	tests := []struct {
		name      string
		shape     string
		band      string
		wantNames []string
		wantErr   error
	}{
		{
			name:      "english shape with band",
			shape:     "round",
			band:      "1020대",
			wantNames: []string{"레이어드컷", "허쉬컷", "시스루뱅단발"},
		},
		{
			name:      "korean tag without band",
			shape:     "긴형",
			wantNames: []string{"시스루뱅", "빌드펌", "볼륨단발"},
		},
		{
			name:      "band with no styles",
			shape:     "heart",
			band:      "5060대",
			wantNames: []string{},
		},
		{
			name:    "unknown shape",
			shape:   "triangle",
			wantErr: domain.ErrInvalidFaceShape,
		},
		{
			name:    "unknown band",
			shape:   "oval",
			band:    "teen",
			wantErr: domain.ErrInvalidAgeBand,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listing, err := svc.Styles(context.Background(), tt.shape, tt.band)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, uint64(1), listing.Version)

			names := make([]string, 0, len(listing.Styles))
			for _, e := range listing.Styles {
				names = append(names, e.StyleName)
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}

func TestCatalogService_StylesVersionFollowsSnapshot(t *testing.T) {
	objects := providermock.SampleObjects("https://cdn.example.com", "")
	source := &stubSource{
		snap: catalog.Build(objects, 7, timeZero(), testLogger()),
		// A refresh landed after the snapshot was taken.
		status: catalog.Status{Version: 8},
	}
	svc := NewCatalogService(source)

	listing, err := svc.Styles(context.Background(), "oval", "1020대")
	require.NoError(t, err)

	assert.Equal(t, uint64(7), listing.Version)
	assert.NotEmpty(t, listing.Styles)
}

func TestCatalogService_Refresh(t *testing.T) {
	source := &stubSource{snap: catalog.Empty()}
	svc := NewCatalogService(source)

	status, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), status.Version)
	assert.False(t, status.Degraded)

	source.refreshErr = errors.New("listing timed out")
	status, err = svc.Refresh(context.Background())
	require.Error(t, err)
	assert.True(t, status.Degraded)
	assert.Equal(t, "listing timed out", status.LastError)
	assert.Equal(t, 2, source.refreshes)
}

func TestCatalogService_Status(t *testing.T) {
	sync := newTestSynchronizer(providermock.NewLister(providermock.SampleObjects("https://cdn.example.com", "")))
	svc := NewCatalogService(sync)

	before := svc.Status()
	assert.Equal(t, uint64(0), before.Version)
	assert.False(t, before.Fresh)

	_, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	after := svc.Status()
	assert.Equal(t, uint64(1), after.Version)
	assert.True(t, after.Fresh)
	assert.Equal(t, "mock", after.Backend)
	assert.Positive(t, after.EntryCount)
}
