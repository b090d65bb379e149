// Package pipeline orchestrates the analysis flow from media or text input
// through emotion extraction, risk classification, remedy selection, and
// supportive text generation.
package pipeline
