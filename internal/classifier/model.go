package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"blossom/internal/emotion"
)

// RiskModel is a trained linear classifier over the seven-element emotion
// vector, loaded from a JSON weights artifact exported by the training
// pipeline. Scores pass through a softmax; the predicted label is the class
// with maximum probability and that probability is the confidence.
type RiskModel struct {
	labels  []string
	weights [][]float64
	bias    []float64
}

type riskModelArtifact struct {
	Labels  []string    `json:"labels"`
	Weights [][]float64 `json:"weights"`
	Bias    []float64   `json:"bias"`
}

// LoadRiskModel reads and validates a risk model artifact.
func LoadRiskModel(path string) (*RiskModel, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("risk model: empty path")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("risk model: read artifact: %w", err)
	}
	var artifact riskModelArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("risk model: parse artifact: %w", err)
	}
	if len(artifact.Labels) == 0 {
		return nil, errors.New("risk model: artifact has no labels")
	}
	if len(artifact.Weights) != len(artifact.Labels) {
		return nil, fmt.Errorf("risk model: %d weight rows for %d labels", len(artifact.Weights), len(artifact.Labels))
	}
	for i, row := range artifact.Weights {
		if len(row) != len(emotion.Labels) {
			return nil, fmt.Errorf("risk model: weight row %d has %d features, want %d", i, len(row), len(emotion.Labels))
		}
	}
	if len(artifact.Bias) != 0 && len(artifact.Bias) != len(artifact.Labels) {
		return nil, fmt.Errorf("risk model: %d bias terms for %d labels", len(artifact.Bias), len(artifact.Labels))
	}
	bias := artifact.Bias
	if len(bias) == 0 {
		bias = make([]float64, len(artifact.Labels))
	}
	return &RiskModel{
		labels:  artifact.Labels,
		weights: artifact.Weights,
		bias:    bias,
	}, nil
}

// Name identifies the variant for status reporting.
func (m *RiskModel) Name() string { return "model" }

// Classify feeds the vector through the linear model. Any scoring anomaly
// yields ("unknown", 0.0) instead of an error.
func (m *RiskModel) Classify(vector emotion.Vector) Diagnosis {
	scores := make([]float64, len(m.labels))
	features := vector.Values()
	for i, row := range m.weights {
		score := m.bias[i]
		for j, weight := range row {
			score += weight * features[j]
		}
		if math.IsNaN(score) || math.IsInf(score, 0) {
			return Unknown()
		}
		scores[i] = score
	}

	probs := softmax(scores)
	best, bestProb := 0, probs[0]
	for i, p := range probs {
		if p > bestProb {
			best, bestProb = i, p
		}
	}
	if math.IsNaN(bestProb) {
		return Unknown()
	}
	return Diagnosis{Label: m.labels[best], Confidence: clampConfidence(bestProb)}
}

func softmax(scores []float64) []float64 {
	maxScore := scores[0]
	for _, s := range scores[1:] {
		if s > maxScore {
			maxScore = s
		}
	}
	exps := make([]float64, len(scores))
	sum := 0.0
	for i, s := range scores {
		exps[i] = math.Exp(s - maxScore)
		sum += exps[i]
	}
	for i := range exps {
		exps[i] /= sum
	}
	return exps
}
