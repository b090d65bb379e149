package remedies

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"blossom/internal/textutil"
)

//go:embed remedies.json
var remediesJSON []byte

// Bundle pairs an empathetic intro with an ordered list of actionable
// suggestions for a diagnosis.
type Bundle struct {
	Intro       string   `json:"intro"`
	Suggestions []string `json:"suggestions"`
}

// Selector maps diagnosis labels to remedy bundles. Selection is a pure,
// total function: unknown labels receive the built-in default suggestions
// and a generic intro, never an empty bundle.
type Selector struct {
	table map[string][]string
}

var introByTier = map[string]string{
	"severe":   "I'm really glad you reached out. Let's take small, gentle steps together.",
	"moderate": "Thanks for sharing. Here are a few practices that many find helpful.",
	"mild":     "A few light habits can make a meaningful difference over time.",
}

const genericIntro = "Here are supportive tips you can try at your own pace."

var defaultSuggestions = []string{
	"Practice a brief grounding exercise (5-4-3-2-1).",
	"Step outside or near a window for fresh air and light.",
	"Message a trusted person to check in.",
	"Drink water and have a small, nourishing snack.",
	"Plan one gentle activity you enjoy (music, walk, journaling).",
}

// NewSelector loads the embedded remedies table.
func NewSelector() (*Selector, error) {
	var table map[string][]string
	if err := json.Unmarshal(remediesJSON, &table); err != nil {
		return nil, fmt.Errorf("remedies: parse embedded table: %w", err)
	}
	return &Selector{table: table}, nil
}

// Select returns the remedy bundle for the diagnosis label.
func (s *Selector) Select(diagnosis string) Bundle {
	normalized := textutil.Normalize(diagnosis)

	suggestions := s.table[normalized]
	if len(suggestions) == 0 {
		suggestions = defaultSuggestions
	}

	intro, ok := introByTier[normalized]
	if !ok {
		intro = genericIntro
	}

	out := make([]string, len(suggestions))
	copy(out, suggestions)
	return Bundle{Intro: intro, Suggestions: out}
}
