package preflight

import (
	"context"

	"blossom/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
// A failed check never blocks startup; the daemon degrades instead, and the
// results tell operators which fallback tier they are running on.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	results = append(results, CheckDirectoryAccess("Data directory", cfg.Paths.DataDir))
	results = append(results, CheckDirectoryAccess("Upload directory", cfg.Paths.UploadDir))
	results = append(results, CheckDirectoryAccess("Model directory", cfg.Paths.ModelDir))

	results = append(results, CheckArtifact("Risk model", cfg.ModelPath(cfg.Models.RiskModel)))
	results = append(results, CheckArtifact("Text vectorizer", cfg.ModelPath(cfg.Models.TextVectorizer)))
	results = append(results, CheckArtifact("Text model", cfg.ModelPath(cfg.Models.TextModel)))
	results = append(results, CheckArtifact("Generation model", cfg.ModelPath(cfg.Models.GenerationModel)))

	results = append(results, CheckGenerationKey(cfg))

	return results
}
