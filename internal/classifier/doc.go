// Package classifier maps emotion vectors (and raw text) to risk diagnoses.
//
// Two interchangeable emotion-vector classifiers sit behind the Classifier
// interface: RiskModel wraps a trained linear model loaded from a JSON
// weights artifact, and Heuristic applies fixed ratio rules when no artifact
// is present. Both are total; prediction failures surface as the
// ("unknown", 0.0) diagnosis, never as an error.
//
// TextClassifier serves the pure-text diagnosis flow. Unlike the emotion
// classifiers it does not degrade: when its artifacts are missing at startup
// the flow reports a structured error instead.
package classifier
