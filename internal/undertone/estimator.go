// Package undertone estimates a warm, cool or neutral skin undertone from the
// red/blue balance of skin regions located through normalized landmarks.
package undertone

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/saturnino-fabrica-de-software/hairfit/internal/domain"
	"github.com/saturnino-fabrica-de-software/hairfit/internal/landmark"
)

// ErrSamplingOutOfBounds indicates a skin region falls outside the image
var ErrSamplingOutOfBounds = errors.New("skin sampling region outside image bounds")

const (
	MinConfidence = 60
	MaxConfidence = 90
)

// Config tunes the estimator
type Config struct {
	// Threshold is the R-B difference (0-255 scale) separating warm and cool from neutral
	Threshold float64
	// RegionRadius is the half-size of each sampled square, in inter-ocular units
	RegionRadius float64
	// Regions are the landmarks each square is centred on
	Regions []landmark.Name
}

// DefaultConfig samples the forehead and both cheeks
func DefaultConfig() Config {
	return Config{
		Threshold:    10,
		RegionRadius: 0.12,
		Regions:      []landmark.Name{landmark.ForeheadCenter, landmark.LeftCheek, landmark.RightCheek},
	}
}

// Result is an undertone estimate
type Result struct {
	Undertone  domain.Undertone
	Confidence float64
	Score      float64
	Fallback   bool
}

// ToDomain attaches the hair colour suggestions for the undertone
func (r Result) ToDomain() domain.UndertoneResult {
	return domain.UndertoneResult{
		Undertone:  r.Undertone,
		Confidence: r.Confidence,
		Score:      math.Round(r.Score*10) / 10,
		HairColors: r.Undertone.HairColors(),
		Fallback:   r.Fallback,
	}
}

type Estimator struct {
	config Config
}

func NewEstimator(cfg Config) *Estimator {
	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultConfig().Threshold
	}
	if cfg.RegionRadius <= 0 {
		cfg.RegionRadius = DefaultConfig().RegionRadius
	}
	if len(cfg.Regions) == 0 {
		cfg.Regions = DefaultConfig().Regions
	}
	return &Estimator{config: cfg}
}

// Estimate samples the configured regions of img. When a region leaves the
// image it returns a neutral result at minimum confidence together with an
// error wrapping ErrSamplingOutOfBounds.
func (e *Estimator) Estimate(img image.Image, n *landmark.Normalized) (Result, error) {
	regions, err := e.Regions(img.Bounds(), n)
	if err != nil {
		return fallback(), err
	}

	var sumR, sumB, count float64
	for _, rect := range regions {
		r, b, c := sumChannels(img, rect)
		sumR += r
		sumB += b
		count += c
	}
	if count == 0 {
		return fallback(), fmt.Errorf("%w: regions contain no pixels", ErrSamplingOutOfBounds)
	}

	return e.Classify((sumR - sumB) / count), nil
}

// Classify maps an R-B score to an undertone
func (e *Estimator) Classify(score float64) Result {
	tone := domain.UndertoneNeutral
	switch {
	case score > e.config.Threshold:
		tone = domain.UndertoneWarm
	case score < -e.config.Threshold:
		tone = domain.UndertoneCool
	}

	confidence := math.Max(MinConfidence, math.Min(MaxConfidence, MinConfidence+math.Abs(score)))

	return Result{
		Undertone:  tone,
		Confidence: math.Round(confidence*10) / 10,
		Score:      score,
	}
}

// Regions returns the pixel rectangles sampled for n inside bounds
func (e *Estimator) Regions(bounds image.Rectangle, n *landmark.Normalized) ([]image.Rectangle, error) {
	half := math.Max(2, e.config.RegionRadius*n.Transform.Scale)

	rects := make([]image.Rectangle, 0, len(e.config.Regions))
	for _, name := range e.config.Regions {
		c := n.Transform.Invert(n.Points[name])
		rect := image.Rect(
			int(math.Floor(c.X-half)),
			int(math.Floor(c.Y-half)),
			int(math.Ceil(c.X+half)),
			int(math.Ceil(c.Y+half)),
		)
		if !rect.In(bounds) {
			return nil, fmt.Errorf("%w: %s region %v not within %v", ErrSamplingOutOfBounds, name, rect, bounds)
		}
		rects = append(rects, rect)
	}
	return rects, nil
}

func sumChannels(img image.Image, rect image.Rectangle) (r, b, count float64) {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			cr, _, cb, _ := img.At(x, y).RGBA()
			r += float64(cr >> 8)
			b += float64(cb >> 8)
			count++
		}
	}
	return r, b, count
}

func fallback() Result {
	return Result{
		Undertone:  domain.UndertoneNeutral,
		Confidence: MinConfidence,
		Fallback:   true,
	}
}
