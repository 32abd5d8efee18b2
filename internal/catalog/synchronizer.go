// Package catalog keeps the hairstyle index built from the object store
// listing. The index is rebuilt wholesale on expiry and swapped atomically.
package catalog

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/saturnino-fabrica-de-software/hairfit/internal/metrics"
	"github.com/saturnino-fabrica-de-software/hairfit/internal/provider"
)

const refreshKey = "catalog-refresh"

// Config configures the Synchronizer
type Config struct {
	// Prefix is the object store prefix holding the assets
	Prefix string
	// TTL is how long a snapshot stays fresh
	TTL time.Duration
	// FetchTimeout bounds one remote listing
	FetchTimeout time.Duration
	// RetryBackoff is the minimum wait after a failed refresh before a read triggers another
	RetryBackoff time.Duration
}

// DefaultConfig returns the default synchronizer settings
func DefaultConfig() Config {
	return Config{
		TTL:          5 * time.Minute,
		FetchTimeout: 10 * time.Second,
		RetryBackoff: 30 * time.Second,
	}
}

// Status is the cache control view of the synchronizer
type Status struct {
	Backend     string        `json:"backend"`
	Version     uint64        `json:"version"`
	SnapshotAge time.Duration `json:"-"`
	AgeSeconds  float64       `json:"snapshot_age_seconds"`
	EntryCount  int           `json:"entry_count"`
	AssetCount  int           `json:"asset_count"`
	Skipped     int           `json:"skipped"`
	Collisions  int           `json:"collisions"`
	LastRefresh *time.Time    `json:"last_refresh,omitempty"`
	LastAttempt *time.Time    `json:"last_attempt,omitempty"`
	Fresh       bool          `json:"fresh"`
	Degraded    bool          `json:"degraded"`
	LastError   string        `json:"last_error,omitempty"`
}

// Synchronizer owns the catalog snapshot. Reads of a fresh snapshot never
// touch the network; a stale read triggers at most one listing at a time
// shared by every waiting caller. A failed listing keeps the previous
// snapshot and flags the catalog as degraded.
type Synchronizer struct {
	lister provider.ObjectLister
	config Config
	logger *slog.Logger
	now    func() time.Time

	group   singleflight.Group
	current atomic.Pointer[Snapshot]
	version atomic.Uint64

	mu          sync.RWMutex
	lastAttempt time.Time
	lastErr     error
	degraded    bool
}

// Option customizes a Synchronizer
type Option func(*Synchronizer)

// WithClock replaces time.Now, used by tests to control expiry
func WithClock(now func() time.Time) Option {
	return func(s *Synchronizer) {
		s.now = now
	}
}

// NewSynchronizer creates a synchronizer with no snapshot installed
func NewSynchronizer(lister provider.ObjectLister, cfg Config, logger *slog.Logger, opts ...Option) *Synchronizer {
	defaults := DefaultConfig()
	if cfg.TTL <= 0 {
		cfg.TTL = defaults.TTL
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = defaults.FetchTimeout
	}
	if cfg.RetryBackoff < 0 {
		cfg.RetryBackoff = 0
	}

	s := &Synchronizer{
		lister: lister,
		config: cfg,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the current catalog. When the snapshot is stale it waits
// for a shared refresh; a failed refresh still returns the previous snapshot
// (or an empty one) with a nil error. Only cancellation of ctx is returned.
func (s *Synchronizer) Snapshot(ctx context.Context) (*Snapshot, error) {
	if snap := s.current.Load(); snap != nil && s.isFresh(snap) {
		return snap, nil
	}

	if s.backingOff() {
		return s.currentOrEmpty(), nil
	}

	if _, err := s.refresh(ctx, false); err != nil && ctx.Err() != nil {
		return s.currentOrEmpty(), ctx.Err()
	}
	return s.currentOrEmpty(), nil
}

// Refresh forces a listing regardless of snapshot age and returns the
// resulting snapshot. On failure the previous snapshot stays installed and
// the listing error is returned.
func (s *Synchronizer) Refresh(ctx context.Context) (*Snapshot, error) {
	snap, err := s.refresh(ctx, true)
	if err != nil {
		return s.currentOrEmpty(), err
	}
	return snap, nil
}

// Current returns the installed snapshot without checking freshness
func (s *Synchronizer) Current() *Snapshot {
	return s.currentOrEmpty()
}

// Ready reports whether a snapshot was ever installed
func (s *Synchronizer) Ready() bool {
	return s.current.Load() != nil
}

// Status reports snapshot age, size, last successful refresh and degraded mode
func (s *Synchronizer) Status() Status {
	now := s.now()

	s.mu.RLock()
	lastAttempt, lastErr, degraded := s.lastAttempt, s.lastErr, s.degraded
	s.mu.RUnlock()

	st := Status{
		Backend:  s.lister.Name(),
		Degraded: degraded,
	}
	if lastErr != nil {
		st.LastError = lastErr.Error()
	}
	if !lastAttempt.IsZero() {
		st.LastAttempt = &lastAttempt
	}

	if snap := s.current.Load(); snap != nil {
		built := snap.BuiltAt
		st.Version = snap.Version
		st.SnapshotAge = snap.Age(now)
		st.AgeSeconds = st.SnapshotAge.Seconds()
		st.EntryCount = snap.EntryCount()
		st.AssetCount = snap.AssetCount()
		st.Skipped = snap.Skipped
		st.Collisions = snap.Collisions
		st.LastRefresh = &built
		st.Fresh = s.isFresh(snap)
	} else if lastErr == nil {
		st.LastError = ErrNeverSynced.Error()
	}

	return st
}

// refresh runs one shared listing. Unless force is set, a flight that starts
// after another one already installed a fresh snapshot (or failed within the
// backoff window) returns the installed snapshot without listing.
func (s *Synchronizer) refresh(ctx context.Context, force bool) (*Snapshot, error) {
	ch := s.group.DoChan(refreshKey, func() (any, error) {
		if !force {
			if snap := s.current.Load(); snap != nil && s.isFresh(snap) {
				return snap, nil
			}
			if s.backingOff() {
				return s.currentOrEmpty(), nil
			}
		}

		// The listing outlives any single waiting caller; FetchTimeout bounds it.
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.config.FetchTimeout)
		defer cancel()
		return s.fetch(fetchCtx)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Snapshot), nil
	}
}

func (s *Synchronizer) fetch(ctx context.Context) (*Snapshot, error) {
	start := time.Now()
	defer func() {
		metrics.CatalogRefreshDuration.Observe(time.Since(start).Seconds())
	}()

	objects, err := s.lister.ListObjects(ctx, s.config.Prefix)
	if err != nil {
		s.mu.Lock()
		s.lastAttempt = s.now()
		s.lastErr = err
		s.degraded = true
		s.mu.Unlock()

		metrics.CatalogRefreshesTotal.WithLabelValues("failure").Inc()
		metrics.CatalogDegraded.Set(1)

		attrs := []any{"backend", s.lister.Name(), "error", err}
		if prev := s.current.Load(); prev != nil {
			attrs = append(attrs, "serving_version", prev.Version, "snapshot_age", prev.Age(s.now()))
		}
		s.logger.Warn("catalog refresh failed, serving previous snapshot", attrs...)
		return nil, err
	}

	snap := Build(objects, s.version.Add(1), s.now(), s.logger)
	s.current.Store(snap)

	s.mu.Lock()
	s.lastAttempt = snap.BuiltAt
	s.lastErr = nil
	s.degraded = false
	s.mu.Unlock()

	metrics.CatalogRefreshesTotal.WithLabelValues("success").Inc()
	metrics.CatalogDegraded.Set(0)
	metrics.CatalogEntries.Set(float64(snap.EntryCount()))
	metrics.CatalogAssets.Set(float64(snap.AssetCount()))
	metrics.CatalogSkippedTotal.Add(float64(snap.Skipped))

	s.logger.Info("catalog refreshed",
		"backend", s.lister.Name(),
		"version", snap.Version,
		"objects", len(objects),
		"entries", snap.EntryCount(),
		"assets", snap.AssetCount(),
		"skipped", snap.Skipped,
		"collisions", snap.Collisions,
	)
	return snap, nil
}

func (s *Synchronizer) isFresh(snap *Snapshot) bool {
	return snap.Age(s.now()) < s.config.TTL
}

// expiresWithin reports whether the installed snapshot is missing or goes
// stale within d
func (s *Synchronizer) expiresWithin(d time.Duration) bool {
	snap := s.current.Load()
	return snap == nil || snap.Age(s.now())+d >= s.config.TTL
}

func (s *Synchronizer) backingOff() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr != nil && s.now().Sub(s.lastAttempt) < s.config.RetryBackoff
}

func (s *Synchronizer) currentOrEmpty() *Snapshot {
	if snap := s.current.Load(); snap != nil {
		return snap
	}
	return Empty()
}
