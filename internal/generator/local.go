package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"
)

// contextWindow is the number of trailing tokens averaged into the hidden
// state on each decoding step.
const contextWindow = 4

// Local decodes autoregressively over an exported inference graph: a
// word-level tokenizer vocabulary plus embedding and output matrices,
// exported to JSON by the training pipeline. Each step predicts next-token
// logits, applies temperature scaling and nucleus filtering, samples, and
// appends until EOS or the length cap.
type Local struct {
	vocab     []string
	tokenToID map[string]int
	unkID     int
	eosID     int
	embedding [][]float64 // [vocab][dim]
	output    [][]float64 // [dim][vocab]
	bias      []float64   // [vocab]
	rng       *rand.Rand
}

type localArtifact struct {
	Vocab     []string    `json:"vocab"`
	UnkID     int         `json:"unk_id"`
	EosID     int         `json:"eos_id"`
	Dim       int         `json:"dim"`
	Embedding [][]float64 `json:"embedding"`
	Output    [][]float64 `json:"output"`
	Bias      []float64   `json:"bias"`
}

// LocalOption customizes the local generator.
type LocalOption func(*Local)

// WithRand overrides the sampling source (useful for tests).
func WithRand(rng *rand.Rand) LocalOption {
	return func(l *Local) {
		if rng != nil {
			l.rng = rng
		}
	}
}

// LoadLocal reads and validates an exported generation model artifact.
func LoadLocal(path string, opts ...LocalOption) (*Local, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("local generator: empty artifact path")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("local generator: read artifact: %w", err)
	}
	var artifact localArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("local generator: parse artifact: %w", err)
	}

	size := len(artifact.Vocab)
	if size == 0 {
		return nil, errors.New("local generator: empty vocabulary")
	}
	if artifact.UnkID < 0 || artifact.UnkID >= size {
		return nil, fmt.Errorf("local generator: unk_id %d outside vocabulary", artifact.UnkID)
	}
	if artifact.EosID < 0 || artifact.EosID >= size {
		return nil, fmt.Errorf("local generator: eos_id %d outside vocabulary", artifact.EosID)
	}
	if len(artifact.Embedding) != size {
		return nil, fmt.Errorf("local generator: %d embedding rows for vocabulary of %d", len(artifact.Embedding), size)
	}
	for i, row := range artifact.Embedding {
		if len(row) != artifact.Dim {
			return nil, fmt.Errorf("local generator: embedding row %d has dim %d, want %d", i, len(row), artifact.Dim)
		}
	}
	if len(artifact.Output) != artifact.Dim {
		return nil, fmt.Errorf("local generator: %d output rows for dim %d", len(artifact.Output), artifact.Dim)
	}
	for i, row := range artifact.Output {
		if len(row) != size {
			return nil, fmt.Errorf("local generator: output row %d has %d logits, want %d", i, len(row), size)
		}
	}
	if len(artifact.Bias) != 0 && len(artifact.Bias) != size {
		return nil, fmt.Errorf("local generator: %d bias terms for vocabulary of %d", len(artifact.Bias), size)
	}
	bias := artifact.Bias
	if len(bias) == 0 {
		bias = make([]float64, size)
	}

	tokenToID := make(map[string]int, size)
	for id, token := range artifact.Vocab {
		tokenToID[token] = id
	}

	local := &Local{
		vocab:     artifact.Vocab,
		tokenToID: tokenToID,
		unkID:     artifact.UnkID,
		eosID:     artifact.EosID,
		embedding: artifact.Embedding,
		output:    artifact.Output,
		bias:      bias,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(local)
	}
	return local, nil
}

// Name identifies the variant for status reporting.
func (l *Local) Name() string { return "local" }

// Generate runs the decoding loop and returns the generated continuation
// with the echoed prompt prefix stripped.
func (l *Local) Generate(ctx context.Context, prompt string, params Params) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("local generate: empty prompt")
	}
	maxLength := params.MaxLength
	if maxLength <= 0 {
		maxLength = 100
	}

	ids := l.encode(prompt)
	promptLen := len(ids)

	for len(ids) < maxLength {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("local generate: %w", err)
		}

		logits := l.forward(ids)

		var next int
		if params.Sample {
			applyTemperature(logits, params.Temperature)
			applyTopP(logits, params.TopP)
			next = sampleLogits(l.rng, logits)
		} else {
			next = argmaxLogits(logits)
		}

		if next == l.eosID {
			break
		}
		ids = append(ids, next)
	}

	full := l.decode(ids)
	echoed := l.decode(ids[:promptLen])
	if strings.HasPrefix(full, echoed) {
		return strings.TrimSpace(full[len(echoed):]), nil
	}
	return strings.TrimSpace(full), nil
}

// forward computes next-token logits from the mean embedding of the trailing
// context window.
func (l *Local) forward(ids []int) []float64 {
	start := len(ids) - contextWindow
	if start < 0 {
		start = 0
	}
	window := ids[start:]

	dim := len(l.output)
	hidden := make([]float64, dim)
	for _, id := range window {
		row := l.embedding[id]
		for d := 0; d < dim; d++ {
			hidden[d] += row[d]
		}
	}
	for d := range hidden {
		hidden[d] /= float64(len(window))
	}

	logits := append([]float64(nil), l.bias...)
	for d, row := range l.output {
		if hidden[d] == 0 {
			continue
		}
		for j := range logits {
			logits[j] += hidden[d] * row[j]
		}
	}
	return logits
}

func (l *Local) encode(text string) []int {
	fields := strings.Fields(strings.ToLower(text))
	ids := make([]int, 0, len(fields))
	for _, field := range fields {
		token := strings.Trim(field, ".,!?:;\"'()")
		if token == "" {
			continue
		}
		id, ok := l.tokenToID[token]
		if !ok {
			id = l.unkID
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		ids = append(ids, l.unkID)
	}
	return ids
}

func (l *Local) decode(ids []int) string {
	words := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == l.eosID {
			continue
		}
		token := l.vocab[id]
		if strings.HasPrefix(token, "<") && strings.HasSuffix(token, ">") {
			continue
		}
		words = append(words, token)
	}
	return strings.Join(words, " ")
}
