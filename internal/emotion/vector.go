package emotion

import (
	"fmt"
	"math"
	"strings"
)

// Labels lists the canonical emotion labels in their fixed feature order.
// Every Vector carries exactly these keys; classifiers consume them in this
// order, so it must never be reordered.
var Labels = []string{"angry", "disgust", "fear", "happy", "sad", "surprise", "neutral"}

// Vector is an ordered mapping from the canonical emotion labels to
// non-negative weights. Missing signal is represented as 0, never by an
// absent key. Vectors are created once per analysis and not mutated after.
type Vector struct {
	weights map[string]float64
}

// New returns a Vector with all seven weights set to zero.
func New() Vector {
	weights := make(map[string]float64, len(Labels))
	for _, label := range Labels {
		weights[label] = 0
	}
	return Vector{weights: weights}
}

// FromMap builds a Vector from the provided weights. Unknown keys are
// ignored; missing keys default to zero; negative weights are clamped to zero.
func FromMap(values map[string]float64) Vector {
	v := New()
	for _, label := range Labels {
		if weight, ok := values[label]; ok && weight > 0 && !math.IsNaN(weight) {
			v.weights[label] = weight
		}
	}
	return v
}

// FromSlice builds a Vector from weights given in canonical label order.
func FromSlice(values []float64) (Vector, error) {
	if len(values) != len(Labels) {
		return Vector{}, fmt.Errorf("emotion vector: expected %d weights, got %d", len(Labels), len(values))
	}
	v := New()
	for i, label := range Labels {
		if values[i] > 0 && !math.IsNaN(values[i]) {
			v.weights[label] = values[i]
		}
	}
	return v, nil
}

// Default returns the fixed neutral-leaning vector substituted whenever no
// real signal is available (missing file, zero analyzable frames, degraded
// backend).
func Default() Vector {
	return FromMap(map[string]float64{
		"angry":    0.05,
		"disgust":  0.02,
		"fear":     0.03,
		"happy":    0.15,
		"sad":      0.10,
		"surprise": 0.05,
		"neutral":  0.60,
	})
}

// Weight returns the weight for the given label, or zero for unknown labels.
func (v Vector) Weight(label string) float64 {
	if v.weights == nil {
		return 0
	}
	return v.weights[label]
}

// Values returns the weights in canonical label order.
func (v Vector) Values() []float64 {
	values := make([]float64, len(Labels))
	for i, label := range Labels {
		values[i] = v.Weight(label)
	}
	return values
}

// Map returns a copy of the weights keyed by label, all seven keys present.
func (v Vector) Map() map[string]float64 {
	out := make(map[string]float64, len(Labels))
	for _, label := range Labels {
		out[label] = v.Weight(label)
	}
	return out
}

// Sum returns the total weight across all labels.
func (v Vector) Sum() float64 {
	total := 0.0
	for _, label := range Labels {
		total += v.Weight(label)
	}
	return total
}

// Normalized returns a copy scaled so the weights sum to 1. A zero vector
// normalizes to the fixed default vector rather than dividing by zero.
func (v Vector) Normalized() Vector {
	total := v.Sum()
	if total <= 0 {
		return Default()
	}
	scaled := make(map[string]float64, len(Labels))
	for _, label := range Labels {
		scaled[label] = v.Weight(label) / total
	}
	return Vector{weights: scaled}
}

// Mean averages the provided vectors component-wise. Returns false when the
// input is empty so callers can substitute the default vector explicitly.
func Mean(vectors []Vector) (Vector, bool) {
	if len(vectors) == 0 {
		return Vector{}, false
	}
	sums := make(map[string]float64, len(Labels))
	for _, vec := range vectors {
		for _, label := range Labels {
			sums[label] += vec.Weight(label)
		}
	}
	for _, label := range Labels {
		sums[label] /= float64(len(vectors))
	}
	return Vector{weights: sums}, true
}

// String renders the vector as "label: weight" pairs in canonical order,
// matching the summary format used in generation prompts.
func (v Vector) String() string {
	parts := make([]string, 0, len(Labels))
	for _, label := range Labels {
		parts = append(parts, fmt.Sprintf("%s: %.2f", label, v.Weight(label)))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
