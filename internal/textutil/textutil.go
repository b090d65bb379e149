package textutil

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// tokenSplitPattern matches non-alphanumeric character sequences for tokenization.
var tokenSplitPattern = regexp.MustCompile(`[^a-z0-9]+`)

var caseFolder = cases.Fold()

// Normalize case-folds and trims text for case-insensitive matching.
func Normalize(text string) string {
	return strings.TrimSpace(caseFolder.String(text))
}

// Title renders text in title case for display.
func Title(text string) string {
	return cases.Title(language.Und).String(strings.TrimSpace(text))
}

// Tokenize splits text into lowercase tokens, filtering tokens shorter than
// three characters.
func Tokenize(text string) []string {
	lowered := strings.ToLower(text)
	raw := tokenSplitPattern.Split(lowered, -1)
	terms := make([]string, 0, len(raw))
	for _, token := range raw {
		token = strings.TrimSpace(token)
		if len(token) < 3 {
			continue
		}
		terms = append(terms, token)
	}
	return terms
}

// TermFrequencies returns token counts for the provided text.
// Returns nil when the text produces no valid tokens.
func TermFrequencies(text string) map[string]float64 {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return nil
	}
	counts := make(map[string]float64, len(tokens))
	for _, token := range tokens {
		counts[token]++
	}
	return counts
}
