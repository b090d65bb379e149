package chatbot

import (
	"math/rand"
	"testing"
)

func newBot(t *testing.T) *Bot {
	t.Helper()
	bot, err := New(WithRand(rand.New(rand.NewSource(1))))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return bot
}

func TestRespondMatchesContainment(t *testing.T) {
	bot := newBot(t)
	reply := bot.Respond("Well, HELLO to you")
	found := false
	for _, intent := range bot.intents {
		if intent.Tag != "greeting" {
			continue
		}
		for _, candidate := range intent.Responses {
			if candidate == reply {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("reply %q not drawn from greeting intent", reply)
	}
}

func TestRespondUnmatchedFallsToNoResponse(t *testing.T) {
	bot := newBot(t)
	reply := bot.Respond("qwertyuiop zxcvbnm")
	found := false
	for _, intent := range bot.intents {
		if intent.Tag != "no-response" {
			continue
		}
		for _, candidate := range intent.Responses {
			if candidate == reply {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("reply %q not drawn from no-response intent", reply)
	}
}

func TestRespondIsTotal(t *testing.T) {
	bot := newBot(t)
	if reply := bot.Respond(""); reply == "" {
		t.Fatal("empty message produced empty reply")
	}
}
