package s3store

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/hairfit/internal/provider"
)

type stubLister struct {
	objects []provider.Object
	err     error
	calls   int
}

func (s *stubLister) ListObjects(ctx context.Context, prefix string) ([]provider.Object, error) {
	s.calls++
	return s.objects, s.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLister_PassesThrough(t *testing.T) {
	stub := &stubLister{objects: []provider.Object{{Name: "a.jpg", URL: "https://x/a.jpg"}}}
	l := newLister(stub, Config{}, testLogger())

	objects, err := l.ListObjects(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, stub.objects, objects)
	assert.Equal(t, "s3", l.Name())
	assert.Equal(t, "closed", l.State())
}

func TestLister_OpensAfterConsecutiveFailures(t *testing.T) {
	stub := &stubLister{err: fmt.Errorf("%w: timeout", provider.ErrTransient)}
	l := newLister(stub, Config{BreakerFailures: 2, BreakerTimeout: time.Hour}, testLogger())

	for i := 0; i < 2; i++ {
		_, err := l.ListObjects(context.Background(), "")
		assert.ErrorIs(t, err, provider.ErrTransient)
	}
	assert.Equal(t, "open", l.State())

	_, err := l.ListObjects(context.Background(), "")
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.ErrorIs(t, err, provider.ErrTransient)
	assert.Equal(t, 2, stub.calls, "open circuit must not reach S3")
}

func TestLister_HalfOpenRecovers(t *testing.T) {
	stub := &stubLister{err: fmt.Errorf("%w: timeout", provider.ErrTransient)}
	l := newLister(stub, Config{BreakerFailures: 1, BreakerTimeout: 20 * time.Millisecond}, testLogger())

	_, err := l.ListObjects(context.Background(), "")
	require.Error(t, err)
	require.Equal(t, "open", l.State())

	time.Sleep(40 * time.Millisecond)
	stub.err = nil
	stub.objects = []provider.Object{{Name: "a.jpg"}}

	objects, err := l.ListObjects(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, objects, 1)
	assert.Equal(t, "closed", l.State())
}
