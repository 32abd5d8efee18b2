// Package faceshape classifies a face into one of six canonical shapes from
// landmark ratios using an ordered, data-driven rule table.
package faceshape

import (
	"errors"
	"fmt"
	"math"

	"github.com/saturnino-fabrica-de-software/hairfit/internal/domain"
)

// ErrClassificationIndeterminate means no rule matched and the fallback was used
var ErrClassificationIndeterminate = errors.New("no classification rule matched")

const (
	MinConfidence = 50
	MaxConfidence = 95
)

// Result is the outcome of a classification
type Result struct {
	Shape      domain.FaceShape
	Confidence float64
	Rule       string
	Reasoning  string
	Ratios     Ratios
	Fallback   bool
}

// ToDomain converts the result into its API representation
func (r Result) ToDomain() domain.ShapeResult {
	return domain.ShapeResult{
		Shape:      r.Shape,
		Tag:        r.Shape.Tag(),
		Confidence: r.Confidence,
		Rule:       r.Rule,
		Reasoning:  r.Reasoning,
		Ratios:     r.Ratios.Map(),
	}
}

type Classifier struct {
	rules []Rule
}

// NewClassifier creates a classifier over rules, or DefaultRules when none are given
func NewClassifier(rules ...Rule) *Classifier {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Classifier{rules: rules}
}

// Rules returns a copy of the rule table
func (c *Classifier) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// Classify picks the heaviest matching rule, breaking ties by shape priority
// and then table order. When nothing matches it returns an oval result at
// minimum confidence together with ErrClassificationIndeterminate.
func (c *Classifier) Classify(r Ratios) (Result, error) {
	var winner *Rule
	for i := range c.rules {
		rule := &c.rules[i]
		if !rule.Match(r) {
			continue
		}
		if winner == nil || beats(rule, winner) {
			winner = rule
		}
	}

	if winner == nil {
		return Result{
			Shape:      domain.FaceShapeOval,
			Confidence: MinConfidence,
			Rule:       "fallback",
			Reasoning:  "no rule matched " + describe(r),
			Ratios:     r,
			Fallback:   true,
		}, fmt.Errorf("%w: %s", ErrClassificationIndeterminate, describe(r))
	}

	return Result{
		Shape:      winner.Shape,
		Confidence: clip(winner.Weight),
		Rule:       winner.Name,
		Reasoning:  fmt.Sprintf("%s %s", winner.Description, describe(r)),
		Ratios:     r,
	}, nil
}

func beats(candidate, current *Rule) bool {
	if candidate.Weight != current.Weight {
		return candidate.Weight > current.Weight
	}
	return candidate.Shape.Priority() < current.Shape.Priority()
}

func clip(weight float64) float64 {
	return math.Max(MinConfidence, math.Min(MaxConfidence, weight))
}

func describe(r Ratios) string {
	return fmt.Sprintf("(length/width %.2f, jaw/cheekbone %.2f, forehead/jaw %.2f, jaw angle %.0f°)",
		r.LengthToWidth, r.JawToCheekbone, r.ForeheadToJaw, r.JawAngle)
}
