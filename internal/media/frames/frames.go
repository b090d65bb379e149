// Package frames extracts still images from video files by shelling out
// to ffmpeg.
package frames

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// Extract samples every strideth frame from the video at path into a fresh
// temporary directory and returns the ordered image paths. The caller owns
// the returned directory and should remove it when finished.
func Extract(ctx context.Context, binary string, path string, stride int) (dir string, paths []string, err error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil, errors.New("frame extract: empty path")
	}
	if stride < 1 {
		stride = 1
	}

	dir, err = os.MkdirTemp("", "blossom-frames-")
	if err != nil {
		return "", nil, fmt.Errorf("frame extract: %w", err)
	}

	pattern := filepath.Join(dir, "frame_%05d.jpg")
	filter := fmt.Sprintf(`select=not(mod(n\,%d))`, stride)
	cmd := exec.CommandContext(ctx, binary,
		"-hide_banner",
		"-loglevel", "error",
		"-i", path,
		"-vf", filter,
		"-fps_mode", "vfr",
		pattern,
	)
	output, runErr := cmd.CombinedOutput()
	if runErr != nil {
		os.RemoveAll(dir)
		return "", nil, fmt.Errorf("frame extract: %w: %s", runErr, strings.TrimSpace(string(output)))
	}

	paths, err = List(dir)
	if err != nil {
		os.RemoveAll(dir)
		return "", nil, err
	}
	return dir, paths, nil
}

// List returns the frame images under dir in capture order.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("frame list: %w", err)
	}
	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), ".jpg") {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}
