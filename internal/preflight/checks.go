package preflight

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"blossom/internal/config"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckArtifact verifies that a model artifact exists and is non-empty.
// Missing artifacts are reported, not fatal: the matching pipeline stage
// falls back to its heuristic tier.
func CheckArtifact(name, path string) Result {
	if path == "" {
		return Result{Name: name, Detail: "not configured"}
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (missing)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	if info.IsDir() || info.Size() == 0 {
		return Result{Name: name, Detail: fmt.Sprintf("%s (empty)", path)}
	}
	return Result{Name: name, Passed: true, Detail: path}
}

// CheckGenerationKey reports whether hosted generation credentials resolve.
func CheckGenerationKey(cfg *config.Config) Result {
	const name = "Generation API key"
	if cfg.GenerationAPIKey() == "" {
		return Result{Name: name, Detail: "no key in config or GEMINI_API_KEY"}
	}
	return Result{Name: name, Passed: true, Detail: "configured"}
}
