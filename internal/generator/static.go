package generator

import "context"

// Fixed responses served when neither the hosted nor the local backend
// initialized at startup.
const (
	staticAdviceMessage = "I'm here to support you. Please take care of yourself and consider reaching out to a trusted person or professional if you need additional support."
	staticChatMessage   = "I'm currently unavailable. Please try again later."
)

// Static is the generation backend of last resort. It never fails and
// carries no model; it returns one of two fixed strings depending on whether
// a conversational reply was requested.
type Static struct{}

// NewStatic returns the static fallback backend.
func NewStatic() *Static { return &Static{} }

// Name identifies the variant for status reporting.
func (s *Static) Name() string { return "static" }

// Generate returns the fixed supportive string for the request kind.
func (s *Static) Generate(_ context.Context, _ string, params Params) (string, error) {
	if params.Conversational {
		return staticChatMessage, nil
	}
	return staticAdviceMessage, nil
}
