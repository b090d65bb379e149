package generator

import (
	"math"
	"math/rand"
	"sort"
)

// applyTemperature scales logits in place. Temperatures at or below zero
// leave the logits untouched (greedy-equivalent behavior is handled by the
// caller via Params.Sample).
func applyTemperature(logits []float64, temperature float64) {
	if temperature <= 0 || temperature == 1 {
		return
	}
	for i := range logits {
		logits[i] /= temperature
	}
}

// applyTopP performs nucleus filtering in place: logits outside the smallest
// prefix of the probability-sorted distribution whose cumulative mass reaches
// topP are masked to -Inf. A topP of 1 (or anything that no prefix reaches)
// retains the full distribution.
func applyTopP(logits []float64, topP float64) {
	if topP <= 0 || topP >= 1 {
		return
	}

	sorted := append([]float64(nil), logits...)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))

	probs := softmaxProbs(sorted)
	cumulative := 0.0
	threshold := math.Inf(-1)
	for i, p := range probs {
		cumulative += p
		if cumulative >= topP {
			threshold = sorted[i]
			break
		}
	}
	if math.IsInf(threshold, -1) {
		return
	}

	for i := range logits {
		if logits[i] < threshold {
			logits[i] = math.Inf(-1)
		}
	}
}

// sampleLogits draws a token index from the (possibly masked) logits.
func sampleLogits(rng *rand.Rand, logits []float64) int {
	probs := softmaxProbs(logits)
	target := rng.Float64()
	cumulative := 0.0
	for i, p := range probs {
		cumulative += p
		if target < cumulative {
			return i
		}
	}
	// Rounding slack: fall back to the last token with any mass.
	for i := len(probs) - 1; i >= 0; i-- {
		if probs[i] > 0 {
			return i
		}
	}
	return 0
}

// argmaxLogits returns the index of the largest logit, for greedy decoding.
func argmaxLogits(logits []float64) int {
	best := 0
	for i, v := range logits {
		if v > logits[best] {
			best = i
		}
	}
	return best
}

func softmaxProbs(logits []float64) []float64 {
	maxLogit := math.Inf(-1)
	for _, v := range logits {
		if v > maxLogit {
			maxLogit = v
		}
	}
	probs := make([]float64, len(logits))
	sum := 0.0
	for i, v := range logits {
		if math.IsInf(v, -1) {
			continue
		}
		probs[i] = math.Exp(v - maxLogit)
		sum += probs[i]
	}
	if sum == 0 {
		// Degenerate mask: treat as uniform.
		for i := range probs {
			probs[i] = 1 / float64(len(probs))
		}
		return probs
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}
