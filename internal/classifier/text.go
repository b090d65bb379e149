package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"blossom/internal/textutil"
)

// TextClassifier diagnoses risk directly from raw user text, independent of
// the emotion pipeline. It combines a term-frequency vectorizer artifact with
// a linear model artifact; both must be present at startup for the text
// diagnosis flow to be available.
type TextClassifier struct {
	vocabulary map[string]int
	idf        []float64
	labels     []string
	weights    [][]float64
	bias       []float64
}

type vectorizerArtifact struct {
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf"`
}

type textModelArtifact struct {
	Labels  []string    `json:"labels"`
	Weights [][]float64 `json:"weights"`
	Bias    []float64   `json:"bias"`
}

// LoadTextClassifier reads and validates the vectorizer and model artifacts.
func LoadTextClassifier(vectorizerPath, modelPath string) (*TextClassifier, error) {
	vectorizerPath = strings.TrimSpace(vectorizerPath)
	modelPath = strings.TrimSpace(modelPath)
	if vectorizerPath == "" || modelPath == "" {
		return nil, errors.New("text classifier: artifact paths required")
	}

	vectorizerData, err := os.ReadFile(vectorizerPath)
	if err != nil {
		return nil, fmt.Errorf("text classifier: read vectorizer: %w", err)
	}
	var vectorizer vectorizerArtifact
	if err := json.Unmarshal(vectorizerData, &vectorizer); err != nil {
		return nil, fmt.Errorf("text classifier: parse vectorizer: %w", err)
	}
	if len(vectorizer.Vocabulary) == 0 {
		return nil, errors.New("text classifier: vectorizer has empty vocabulary")
	}
	size := len(vectorizer.Vocabulary)
	for token, index := range vectorizer.Vocabulary {
		if index < 0 || index >= size {
			return nil, fmt.Errorf("text classifier: token %q has index %d outside vocabulary of %d", token, index, size)
		}
	}
	if len(vectorizer.IDF) != 0 && len(vectorizer.IDF) != size {
		return nil, fmt.Errorf("text classifier: %d idf terms for vocabulary of %d", len(vectorizer.IDF), size)
	}

	modelData, err := os.ReadFile(modelPath)
	if err != nil {
		return nil, fmt.Errorf("text classifier: read model: %w", err)
	}
	var model textModelArtifact
	if err := json.Unmarshal(modelData, &model); err != nil {
		return nil, fmt.Errorf("text classifier: parse model: %w", err)
	}
	if len(model.Labels) == 0 {
		return nil, errors.New("text classifier: model has no labels")
	}
	if len(model.Weights) != len(model.Labels) {
		return nil, fmt.Errorf("text classifier: %d weight rows for %d labels", len(model.Weights), len(model.Labels))
	}
	for i, row := range model.Weights {
		if len(row) != size {
			return nil, fmt.Errorf("text classifier: weight row %d has %d features, want %d", i, len(row), size)
		}
	}
	if len(model.Bias) != 0 && len(model.Bias) != len(model.Labels) {
		return nil, fmt.Errorf("text classifier: %d bias terms for %d labels", len(model.Bias), len(model.Labels))
	}
	bias := model.Bias
	if len(bias) == 0 {
		bias = make([]float64, len(model.Labels))
	}

	return &TextClassifier{
		vocabulary: vectorizer.Vocabulary,
		idf:        vectorizer.IDF,
		labels:     model.Labels,
		weights:    model.Weights,
		bias:       bias,
	}, nil
}

// Diagnose vectorizes the text and predicts a label with the maximum class
// probability as confidence. Empty text is rejected before scoring.
func (t *TextClassifier) Diagnose(text string) (Diagnosis, error) {
	if strings.TrimSpace(text) == "" {
		return Diagnosis{}, errors.New("text classifier: empty text")
	}

	features := t.vectorize(text)
	scores := make([]float64, len(t.labels))
	for i, row := range t.weights {
		score := t.bias[i]
		for j, weight := range row {
			if features[j] != 0 {
				score += weight * features[j]
			}
		}
		if math.IsNaN(score) || math.IsInf(score, 0) {
			return Unknown(), nil
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
	return Diagnosis{Label: t.labels[best], Confidence: clampConfidence(bestProb)}, nil
}

func (t *TextClassifier) vectorize(text string) []float64 {
	features := make([]float64, len(t.vocabulary))
	for token, count := range textutil.TermFrequencies(text) {
		index, ok := t.vocabulary[token]
		if !ok {
			continue
		}
		weight := count
		if len(t.idf) > 0 {
			weight *= t.idf[index]
		}
		features[index] = weight
	}
	return features
}
