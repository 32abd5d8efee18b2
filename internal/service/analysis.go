package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/saturnino-fabrica-de-software/hairfit/internal/catalog"
	"github.com/saturnino-fabrica-de-software/hairfit/internal/domain"
	"github.com/saturnino-fabrica-de-software/hairfit/internal/faceshape"
	"github.com/saturnino-fabrica-de-software/hairfit/internal/imaging"
	"github.com/saturnino-fabrica-de-software/hairfit/internal/landmark"
	"github.com/saturnino-fabrica-de-software/hairfit/internal/metrics"
	"github.com/saturnino-fabrica-de-software/hairfit/internal/provider"
	"github.com/saturnino-fabrica-de-software/hairfit/internal/recommend"
	"github.com/saturnino-fabrica-de-software/hairfit/internal/undertone"
)

// CatalogSource is the read side of the catalog synchronizer
type CatalogSource interface {
	Snapshot(ctx context.Context) (*catalog.Snapshot, error)
	Status() catalog.Status
}

type AnalysisService struct {
	detector      provider.LandmarkDetector
	catalog       CatalogSource
	classifier    *faceshape.Classifier
	estimator     *undertone.Estimator
	engine        *recommend.Engine
	logger        *slog.Logger
	detectTimeout time.Duration
}

func NewAnalysisService(
	detector provider.LandmarkDetector,
	source CatalogSource,
	classifier *faceshape.Classifier,
	estimator *undertone.Estimator,
	engine *recommend.Engine,
	logger *slog.Logger,
) *AnalysisService {
	return &AnalysisService{
		detector:      detector,
		catalog:       source,
		classifier:    classifier,
		estimator:     estimator,
		engine:        engine,
		logger:        logger,
		detectTimeout: 20 * time.Second,
	}
}

func (s *AnalysisService) WithDetectTimeout(timeout time.Duration) *AnalysisService {
	if timeout > 0 {
		s.detectTimeout = timeout
	}
	return s
}

// Analyze runs the full pipeline on one photograph. band is optional; an
// empty band recommends across every age band.
func (s *AnalysisService) Analyze(ctx context.Context, imageBytes []byte, band string) (*domain.Analysis, error) {
	start := time.Now()

	analysis, err := s.analyze(ctx, imageBytes, band)
	metrics.AnalysesTotal.WithLabelValues(outcome(err)).Inc()
	metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	analysis.LatencyMs = time.Since(start).Milliseconds()
	return analysis, nil
}

func (s *AnalysisService) analyze(ctx context.Context, imageBytes []byte, band string) (*domain.Analysis, error) {
	ageBand, err := domain.ParseAgeBand(band)
	if err != nil {
		return nil, domain.ErrInvalidAgeBand.WithError(fmt.Errorf("age band %q", band))
	}

	frame, err := imaging.Decode(imageBytes)
	if err != nil {
		return nil, domain.ErrInvalidImage.WithError(err)
	}

	detection, err := s.detect(ctx, frame)
	if err != nil {
		return nil, err
	}

	normalized, err := landmark.Normalize(detection)
	if err != nil {
		return nil, domain.ErrNoFaceDetected.WithError(err)
	}

	var (
		measurements domain.Measurements
		shape        faceshape.Result
		tone         undertone.Result
	)

	var g errgroup.Group
	g.Go(func() error {
		var ratios faceshape.Ratios
		measurements, ratios = faceshape.Measure(normalized)

		var err error
		shape, err = s.classifier.Classify(ratios)
		if err != nil {
			s.logger.Warn("face shape fallback", "error", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		tone, err = s.estimator.Estimate(frame.Image, normalized)
		if err != nil {
			s.logger.Warn("undertone fallback", "error", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	metrics.FaceShapesTotal.WithLabelValues(string(shape.Shape), metrics.BoolLabel(shape.Fallback)).Inc()
	metrics.UndertonesTotal.WithLabelValues(string(tone.Undertone), metrics.BoolLabel(tone.Fallback)).Inc()

	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog snapshot: %w", err)
	}

	rec := s.engine.Recommend(recommend.Input{
		Shape:     shape.Shape,
		Undertone: tone.Undertone,
		AgeBand:   ageBand,
	}, snap)

	analysis := &domain.Analysis{
		ID:              uuid.New(),
		FaceShape:       shape.ToDomain(),
		Undertone:       tone.ToDomain(),
		Measurements:    measurements,
		Recommendations: rec.Styles,
		AgeBand:         ageBand,
		Landmarks:       namedLandmarks(detection, normalized),
		LandmarkCount:   len(detection.Points),
		Details:         details(shape, tone),
		CatalogVersion:  snap.Version,
		CatalogDegraded: s.catalog.Status().Degraded,
		CreatedAt:       time.Now().UTC(),
	}

	s.logger.Info("analysis completed",
		"analysis_id", analysis.ID,
		"shape", shape.Shape,
		"shape_confidence", shape.Confidence,
		"undertone", tone.Undertone,
		"recommendations", len(rec.Styles),
		"catalog_version", snap.Version,
	)

	return analysis, nil
}

func (s *AnalysisService) detect(ctx context.Context, frame *imaging.Frame) (*landmark.Detection, error) {
	ctx, cancel := context.WithTimeout(ctx, s.detectTimeout)
	defer cancel()

	start := time.Now()
	detection, err := s.detector.DetectLandmarks(ctx, frame)
	metrics.DetectorDuration.WithLabelValues(s.detector.Name()).Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		return detection, nil
	case errors.Is(err, landmark.ErrDetectionMissing):
		return nil, domain.ErrNoFaceDetected.WithError(err)
	case errors.Is(err, provider.ErrTransient), errors.Is(err, context.DeadlineExceeded):
		return nil, domain.ErrDetectorUnavailable.WithError(err)
	default:
		return nil, fmt.Errorf("%s: detect landmarks: %w", s.detector.Name(), err)
	}
}

// namedLandmarks pairs each detector point with its normalised position
func namedLandmarks(d *landmark.Detection, n *landmark.Normalized) []domain.Landmark {
	out := make([]domain.Landmark, 0, landmark.Count)
	for i := 0; i < landmark.Count && i < len(d.Points); i++ {
		name := landmark.Name(i)
		p, np := d.Points[i], n.Points.At(name)
		out = append(out, domain.Landmark{Name: name.String(), X: p.X, Y: p.Y, NX: np.X, NY: np.Y})
	}
	return out
}

func details(shape faceshape.Result, tone undertone.Result) []string {
	out := []string{
		fmt.Sprintf("%s (%s)", shape.Shape.Tag(), shape.Shape),
		fmt.Sprintf("근거: %s", shape.Reasoning),
		fmt.Sprintf("신뢰도: %.0f%%", shape.Confidence),
		fmt.Sprintf("언더톤: %s (%.0f%%)", tone.Undertone, tone.Confidence),
	}
	if shape.Fallback || tone.Fallback {
		out = append(out, "일부 단계가 기본값으로 대체되었습니다")
	}
	return out
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrNoFaceDetected):
		return "no_face"
	case errors.Is(err, domain.ErrInvalidImage), errors.Is(err, domain.ErrInvalidAgeBand):
		return "invalid_input"
	case errors.Is(err, domain.ErrDetectorUnavailable):
		return "detector_unavailable"
	default:
		return "error"
	}
}
