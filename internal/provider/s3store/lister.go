package s3store

import (
	"context"
	"errors"
	"log/slog"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/saturnino-fabrica-de-software/hairfit/internal/metrics"
	"github.com/saturnino-fabrica-de-software/hairfit/internal/provider"
)

const breakerName = "s3-listing"

// objectLister is the listing call the breaker protects
type objectLister interface {
	ListObjects(ctx context.Context, prefix string) ([]provider.Object, error)
}

// Lister implements provider.ObjectLister over S3 behind a circuit breaker.
// While the circuit is open listings fail fast with ErrCircuitOpen.
type Lister struct {
	client objectLister
	cb     *gobreaker.CircuitBreaker[[]provider.Object]
	logger *slog.Logger
}

// Ensure Lister implements provider.ObjectLister interface at compile time
var _ provider.ObjectLister = (*Lister)(nil)

// NewLister loads AWS credentials and builds the lister
func NewLister(ctx context.Context, cfg Config, logger *slog.Logger) (*Lister, error) {
	client, err := NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return newLister(client, cfg, logger), nil
}

func newLister(client objectLister, cfg Config, logger *slog.Logger) *Lister {
	defaults := DefaultConfig()
	if cfg.BreakerFailures == 0 {
		cfg.BreakerFailures = defaults.BreakerFailures
	}
	if cfg.BreakerTimeout <= 0 {
		cfg.BreakerTimeout = defaults.BreakerTimeout
	}

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	l := &Lister{client: client, logger: logger}
	l.cb = gobreaker.NewCircuitBreaker[[]provider.Object](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
		// Permanent errors (missing bucket, bad credentials) still count as failures.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state transition",
				"breaker", name, "from", from.String(), "to", to.String())
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})
	return l
}

func (l *Lister) Name() string { return "s3" }

// ListObjects lists the bucket through the circuit breaker
func (l *Lister) ListObjects(ctx context.Context, prefix string) ([]provider.Object, error) {
	start := time.Now()
	objects, err := l.cb.Execute(func() ([]provider.Object, error) {
		return l.client.ListObjects(ctx, prefix)
	})

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "rejected").Inc()
			return nil, ErrCircuitOpen
		}
		metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "failure").Inc()
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "success").Inc()
	l.logger.Debug("s3 listing completed", "prefix", prefix, "objects", len(objects), "duration", time.Since(start))
	return objects, nil
}

// State returns the breaker state name
func (l *Lister) State() string {
	return l.cb.State().String()
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
