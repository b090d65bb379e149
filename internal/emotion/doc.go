// Package emotion defines the seven-key emotion feature vector shared by
// every stage of the screening pipeline.
//
// A Vector always carries all seven canonical labels (angry, disgust, fear,
// happy, sad, surprise, neutral); absent signal is a zero weight, never a
// missing key. Weights are not required to sum to 1 except where a producer
// explicitly normalizes them for output stability.
//
// Default returns the fixed neutral-leaning vector every extractor variant
// substitutes when no real signal is available. It is intentionally not a
// zero vector so downstream classification still degrades to a low-risk
// reading instead of an undefined one.
package emotion
