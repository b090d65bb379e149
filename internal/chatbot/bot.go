package chatbot

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"blossom/internal/textutil"
)

//go:embed intents.json
var intentsJSON []byte

// Intent tags reserved for the default reply when nothing matches.
var defaultTags = map[string]struct{}{
	"no-response": {},
	"default":     {},
}

const defaultReply = "I'm here to listen."

// Intent pairs trigger patterns with canned responses.
type Intent struct {
	Tag       string   `json:"tag"`
	Patterns  []string `json:"patterns"`
	Responses []string `json:"responses"`
}

// Bot answers chat messages from a static intent table when the response
// generator is unavailable or failing. Matching is simple containment over
// case-folded text; the reply is drawn at random from the matched intent's
// responses.
type Bot struct {
	intents []Intent
	rng     *rand.Rand
}

// Option customizes the bot.
type Option func(*Bot)

// WithRand overrides the response picker source (useful for tests).
func WithRand(rng *rand.Rand) Option {
	return func(b *Bot) {
		if rng != nil {
			b.rng = rng
		}
	}
}

// New loads the embedded intents table.
func New(opts ...Option) (*Bot, error) {
	var payload struct {
		Intents []Intent `json:"intents"`
	}
	if err := json.Unmarshal(intentsJSON, &payload); err != nil {
		return nil, fmt.Errorf("chatbot: parse embedded intents: %w", err)
	}
	bot := &Bot{
		intents: payload.Intents,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(bot)
	}
	return bot, nil
}

// Respond returns a canned reply for the message. It is total: unmatched
// messages fall through to the no-response intent, then to a fixed default.
func (b *Bot) Respond(text string) string {
	normalized := textutil.Normalize(text)

	var matched *Intent
	for i := range b.intents {
		if intentMatches(&b.intents[i], normalized) {
			matched = &b.intents[i]
			break
		}
	}
	if matched == nil {
		for i := range b.intents {
			if _, ok := defaultTags[b.intents[i].Tag]; ok {
				matched = &b.intents[i]
				break
			}
		}
	}
	if matched == nil || len(matched.Responses) == 0 {
		return defaultReply
	}
	return matched.Responses[b.rng.Intn(len(matched.Responses))]
}

func intentMatches(intent *Intent, normalized string) bool {
	for _, pattern := range intent.Patterns {
		p := textutil.Normalize(pattern)
		if p == "" {
			continue
		}
		if strings.Contains(normalized, p) {
			return true
		}
	}
	return false
}
