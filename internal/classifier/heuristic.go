package classifier

import "blossom/internal/emotion"

// Risk tier labels produced by the heuristic classifier.
const (
	LabelLowRisk      = "low_risk"
	LabelModerateRisk = "moderate_risk"
	LabelHighRisk     = "high_risk"
)

// Heuristic thresholds. Demo constants carried over for behavioral
// compatibility; they have no clinical derivation.
const (
	highRiskThreshold     = 0.7
	moderateRiskThreshold = 0.4
)

// Heuristic is the rule-backed classifier used when no trained risk model
// artifact is present at startup.
type Heuristic struct{}

// NewHeuristic returns the rule-backed classifier.
func NewHeuristic() *Heuristic {
	return &Heuristic{}
}

// Name identifies the variant for status reporting.
func (h *Heuristic) Name() string { return "heuristic" }

// Classify scores negative emotions (sad + fear + 0.7*angry) against
// positive ones (happy + 0.3*neutral). The risk ratio is
// negative/(negative+positive), or 1.0 when no positive signal exists.
func (h *Heuristic) Classify(vector emotion.Vector) Diagnosis {
	negative := vector.Weight("sad") + vector.Weight("fear") + vector.Weight("angry")*0.7
	positive := vector.Weight("happy") + vector.Weight("neutral")*0.3

	ratio := 1.0
	if negative+positive > 0 {
		ratio = negative / (negative + positive)
	}

	switch {
	case ratio > highRiskThreshold:
		return Diagnosis{Label: LabelHighRisk, Confidence: clampConfidence(ratio)}
	case ratio > moderateRiskThreshold:
		return Diagnosis{Label: LabelModerateRisk, Confidence: clampConfidence(ratio)}
	default:
		return Diagnosis{Label: LabelLowRisk, Confidence: clampConfidence(1 - ratio)}
	}
}
