package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/hairfit/internal/domain"
	"github.com/saturnino-fabrica-de-software/hairfit/internal/provider"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fakeLister struct {
	mu      sync.Mutex
	objects []provider.Object
	err     error
	hang    bool
	release chan struct{}
	started chan struct{}
	calls   atomic.Int32
}

func (f *fakeLister) ListObjects(ctx context.Context, prefix string) ([]provider.Object, error) {
	if f.calls.Add(1) == 1 && f.started != nil {
		close(f.started)
	}

	f.mu.Lock()
	objs, err, hang, release := f.objects, f.err, f.hang, f.release
	f.mu.Unlock()

	if hang {
		<-ctx.Done()
		return nil, fmt.Errorf("%w: %v", provider.ErrTransient, ctx.Err())
	}
	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return objs, err
}

func (f *fakeLister) Name() string { return "fake" }

func (f *fakeLister) set(objs []provider.Object, err error, hang bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects, f.err, f.hang = objs, err, hang
}

var seedNames = []string{
	"001_클래식보브_둥근형_1020대_v1.jpg.jpg",
	"001_클래식보브_둥근형_1020대_v2.jpg.jpg",
	"002_레이어드컷_타원형_3040대_v1.jpg",
}

func newTestSync(lister *fakeLister, clock *fakeClock) *Synchronizer {
	return NewSynchronizer(lister, Config{
		TTL:          5 * time.Minute,
		FetchTimeout: 50 * time.Millisecond,
		RetryBackoff: 30 * time.Second,
	}, testLogger(), WithClock(clock.Now))
}

func TestSynchronizer_FreshReadsDoNotList(t *testing.T) {
	lister := &fakeLister{objects: objects(seedNames...)}
	clock := newFakeClock()
	s := newTestSync(lister, clock)

	first, err := s.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), first.Version)
	assert.Equal(t, 2, first.EntryCount())

	clock.Advance(4 * time.Minute)
	second, err := s.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), lister.calls.Load())
}

func TestSynchronizer_StaleReadRefreshes(t *testing.T) {
	lister := &fakeLister{objects: objects(seedNames...)}
	clock := newFakeClock()
	s := newTestSync(lister, clock)

	_, err := s.Snapshot(context.Background())
	require.NoError(t, err)

	lister.set(objects(append(seedNames, "003_허쉬컷_하트형_1020대_v1.jpg")...), nil, false)
	clock.Advance(5 * time.Minute)

	snap, err := s.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, uint64(2), snap.Version)
	assert.Equal(t, 3, snap.EntryCount())
	assert.Len(t, snap.Entries(domain.FaceShapeHeart, domain.AgeBand1020), 1)
	assert.Equal(t, int32(2), lister.calls.Load())

	st := s.Status()
	assert.True(t, st.Fresh)
	assert.False(t, st.Degraded)
	assert.Zero(t, st.SnapshotAge)
}

func TestSynchronizer_RefreshForcesListing(t *testing.T) {
	lister := &fakeLister{objects: objects(seedNames...)}
	s := newTestSync(lister, newFakeClock())

	_, err := s.Snapshot(context.Background())
	require.NoError(t, err)

	snap, err := s.Refresh(context.Background())
	require.NoError(t, err)

	assert.Equal(t, uint64(2), snap.Version)
	assert.Equal(t, int32(2), lister.calls.Load())
}

func TestSynchronizer_TimeoutKeepsPreviousSnapshot(t *testing.T) {
	lister := &fakeLister{objects: objects(seedNames...)}
	clock := newFakeClock()
	s := newTestSync(lister, clock)

	before, err := s.Snapshot(context.Background())
	require.NoError(t, err)
	builtAt := before.BuiltAt

	clock.Advance(6 * time.Minute)
	preRefreshAge := s.Status().SnapshotAge

	lister.set(nil, nil, true)
	after, err := s.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Same(t, before, after)

	st := s.Status()
	assert.True(t, st.Degraded)
	assert.Equal(t, preRefreshAge, st.SnapshotAge)
	require.NotNil(t, st.LastRefresh)
	assert.Equal(t, builtAt, *st.LastRefresh)
	assert.Contains(t, st.LastError, "deadline exceeded")
	assert.Equal(t, uint64(1), st.Version)
	assert.Equal(t, 2, st.EntryCount)
	assert.False(t, st.Fresh)
}

func TestSynchronizer_BacksOffAfterFailure(t *testing.T) {
	lister := &fakeLister{objects: objects(seedNames...)}
	clock := newFakeClock()
	s := newTestSync(lister, clock)

	_, err := s.Snapshot(context.Background())
	require.NoError(t, err)

	clock.Advance(6 * time.Minute)
	lister.set(nil, fmt.Errorf("%w: connection reset", provider.ErrTransient), false)

	_, err = s.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), lister.calls.Load())

	clock.Advance(10 * time.Second)
	_, err = s.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), lister.calls.Load(), "no listing during backoff")

	lister.set(objects(seedNames...), nil, false)
	clock.Advance(30 * time.Second)
	snap, err := s.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(3), lister.calls.Load())
	assert.Equal(t, uint64(2), snap.Version)
	assert.False(t, s.Status().Degraded)
	assert.Empty(t, s.Status().LastError)
}

func TestSynchronizer_ExplicitRefreshReportsFailure(t *testing.T) {
	lister := &fakeLister{objects: objects(seedNames...)}
	s := newTestSync(lister, newFakeClock())

	before, err := s.Snapshot(context.Background())
	require.NoError(t, err)

	boom := errors.New("access denied")
	lister.set(nil, boom, false)

	snap, err := s.Refresh(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Same(t, before, snap)
	assert.True(t, s.Status().Degraded)
}

func TestSynchronizer_NeverPopulated(t *testing.T) {
	lister := &fakeLister{err: errors.New("bucket missing")}
	s := newTestSync(lister, newFakeClock())

	assert.Equal(t, ErrNeverSynced.Error(), s.Status().LastError)
	assert.False(t, s.Ready())

	snap, err := s.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Zero(t, snap.EntryCount())
	assert.False(t, s.Ready())

	st := s.Status()
	assert.True(t, st.Degraded)
	assert.Equal(t, "bucket missing", st.LastError)
	assert.Nil(t, st.LastRefresh)
}

func TestSynchronizer_SingleFlight(t *testing.T) {
	lister := &fakeLister{
		objects: objects(seedNames...),
		release: make(chan struct{}),
		started: make(chan struct{}),
	}
	s := NewSynchronizer(lister, Config{TTL: time.Minute, FetchTimeout: 5 * time.Second}, testLogger())

	const callers = 32
	var wg sync.WaitGroup
	versions := make([]uint64, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			snap, err := s.Snapshot(context.Background())
			assert.NoError(t, err)
			versions[i] = snap.Version
		}(i)
	}

	<-lister.started
	time.Sleep(50 * time.Millisecond)
	close(lister.release)
	wg.Wait()

	assert.Equal(t, int32(1), lister.calls.Load())
	for _, v := range versions {
		assert.Equal(t, uint64(1), v)
	}
}

// pausingClock blocks the first Now call made after pauseNext until resume
type pausingClock struct {
	*fakeClock

	gate   sync.Mutex
	hold   chan struct{}
	paused chan struct{}
}

// pauseNext arms the clock and returns a channel closed once a caller is held
func (c *pausingClock) pauseNext() <-chan struct{} {
	c.gate.Lock()
	defer c.gate.Unlock()
	c.hold = make(chan struct{})
	c.paused = make(chan struct{})
	return c.paused
}

func (c *pausingClock) resume() {
	c.gate.Lock()
	defer c.gate.Unlock()
	close(c.hold)
}

func (c *pausingClock) Now() time.Time {
	c.gate.Lock()
	hold, paused := c.hold, c.paused
	c.paused = nil
	c.gate.Unlock()

	if paused != nil {
		close(paused)
		<-hold
	}
	return c.fakeClock.Now()
}

func TestSynchronizer_StaleReaderAfterFinishedFlight(t *testing.T) {
	lister := &fakeLister{objects: objects(seedNames...)}
	clock := &pausingClock{fakeClock: newFakeClock()}
	s := NewSynchronizer(lister, Config{
		TTL:          5 * time.Minute,
		FetchTimeout: time.Second,
		RetryBackoff: 30 * time.Second,
	}, testLogger(), WithClock(clock.Now))

	_, err := s.Refresh(context.Background())
	require.NoError(t, err)
	clock.Advance(6 * time.Minute)

	// The late reader loads the stale snapshot and stalls in its freshness check.
	paused := clock.pauseNext()
	late := make(chan *Snapshot, 1)
	go func() {
		snap, err := s.Snapshot(context.Background())
		assert.NoError(t, err)
		late <- snap
	}()
	<-paused

	// Another reader refreshes to completion while the first one is stalled.
	snap, err := s.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(2), snap.Version)

	clock.resume()
	got := <-late

	assert.Equal(t, uint64(2), got.Version)
	assert.Equal(t, int32(2), lister.calls.Load(), "stale readers must share one listing")
}

func TestSynchronizer_CallerCancellation(t *testing.T) {
	lister := &fakeLister{
		objects: objects(seedNames...),
		release: make(chan struct{}),
		started: make(chan struct{}),
	}
	s := NewSynchronizer(lister, Config{TTL: time.Minute, FetchTimeout: 5 * time.Second}, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := s.Snapshot(ctx)
		done <- err
	}()

	<-lister.started
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	// The shared listing is not tied to the cancelled caller.
	close(lister.release)
	assert.Eventually(t, s.Ready, time.Second, 10*time.Millisecond)
}
