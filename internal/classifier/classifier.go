package classifier

import "blossom/internal/emotion"

// Diagnosis is a risk tier label with a best-effort confidence in [0, 1].
// Confidence is a calibration signal, not a probability guarantee.
type Diagnosis struct {
	Label      string  `json:"diagnosis"`
	Confidence float64 `json:"confidence"`
}

// Unknown is the diagnosis substituted when a model-backed prediction fails.
func Unknown() Diagnosis {
	return Diagnosis{Label: "unknown", Confidence: 0}
}

// Classifier maps an emotion vector to a diagnosis. Implementations are
// total: every vector yields a diagnosis, never an error escaping the
// component boundary.
type Classifier interface {
	// Name identifies the variant for status reporting.
	Name() string
	Classify(vector emotion.Vector) Diagnosis
}

func clampConfidence(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
