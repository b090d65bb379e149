package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"blossom/internal/config"
)

// Requirement defines an external binary Blossom relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements returns the external binaries used by the analysis pipeline.
// All of them are optional: each missing binary degrades the extractor one
// step further instead of failing startup.
func Requirements(cfg *config.Config) []Requirement {
	emotionCommand := ""
	if cfg != nil {
		emotionCommand = cfg.Analysis.EmotionCommand
	}
	return []Requirement{
		{
			Name:        "Emotion model",
			Command:     emotionCommand,
			Description: "Face/emotion model CLI for full-capability extraction",
			Optional:    true,
		},
		{
			Name:        "ffmpeg",
			Command:     "ffmpeg",
			Description: "Video frame extraction for sampled analysis",
			Optional:    true,
		},
		{
			Name:        "ffprobe",
			Command:     "ffprobe",
			Description: "Uploaded media validation and duration probing",
			Optional:    true,
		},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Available = false
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// Available reports whether the named requirement is available in the given
// status list.
func Available(statuses []Status, name string) bool {
	for _, status := range statuses {
		if status.Name == name {
			return status.Available
		}
	}
	return false
}
