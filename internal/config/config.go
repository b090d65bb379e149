package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and bind address configuration.
type Paths struct {
	DataDir   string `toml:"data_dir"`
	UploadDir string `toml:"upload_dir"`
	ModelDir  string `toml:"model_dir"`
	LogDir    string `toml:"log_dir"`
	APIBind   string `toml:"api_bind"`
	APIToken  string `toml:"api_token"`
}

// Models contains the filenames of the on-disk model artifacts, resolved
// relative to paths.model_dir unless absolute. Absence of an artifact at
// startup is not fatal; the owning component degrades to its fallback.
type Models struct {
	RiskModel       string `toml:"risk_model"`
	TextModel       string `toml:"text_model"`
	TextVectorizer  string `toml:"text_vectorizer"`
	GenerationModel string `toml:"generation_model"`
}

// Analysis contains settings for the emotion extraction stage.
type Analysis struct {
	// EmotionCommand is the external face/emotion model CLI invoked per image.
	// It must print a JSON object of emotion scores on stdout.
	EmotionCommand string `toml:"emotion_command"`
	// FrameStride samples every Nth video frame. Default: 30.
	FrameStride int `toml:"frame_stride"`
	// FrameTimeoutSeconds bounds a single per-frame analysis call.
	FrameTimeoutSeconds int `toml:"frame_timeout_seconds"`
}

// Generation contains settings for the response generator.
type Generation struct {
	// APIKey enables the hosted Gemini backend when set. GEMINI_API_KEY is
	// consulted when empty.
	APIKey string `toml:"api_key"`
	// Model is the hosted model identifier.
	Model string `toml:"model"`
	// MaxLength caps generated output in tokens for chat replies.
	MaxLength int `toml:"max_length"`
	// AdviceMaxLength caps generated output for emotion advice.
	AdviceMaxLength int `toml:"advice_max_length"`
	// Temperature is the default sampling temperature for chat replies.
	Temperature float64 `toml:"temperature"`
	// AdviceTemperature is used for emotion advice prompts.
	AdviceTemperature float64 `toml:"advice_temperature"`
	TopP              float64 `toml:"top_p"`
	TimeoutSeconds    int     `toml:"timeout_seconds"`
}

// Workflow contains request handling timeouts.
type Workflow struct {
	RequestTimeoutSeconds  int `toml:"request_timeout_seconds"`
	ShutdownTimeoutSeconds int `toml:"shutdown_timeout_seconds"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for Blossom.
//
// Configuration sections by subsystem:
//   - Paths: data directories and API bind address
//   - Models: on-disk artifact locations for classifiers and generation
//   - Analysis: emotion extraction command and video sampling
//   - Generation: hosted/local text generation and sampling defaults
//   - Workflow: request timeouts
//   - Logging: log format and level
type Config struct {
	Paths      Paths      `toml:"paths"`
	Models     Models     `toml:"models"`
	Analysis   Analysis   `toml:"analysis"`
	Generation Generation `toml:"generation"`
	Workflow   Workflow   `toml:"workflow"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/blossom/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("blossom.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories required for daemon operation.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.UploadDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// ModelPath resolves an artifact filename against paths.model_dir.
// Absolute names are returned unchanged; empty names stay empty.
func (c *Config) ModelPath(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Paths.ModelDir, name)
}

// GenerationAPIKey returns the hosted generation API key, falling back to the
// GEMINI_API_KEY environment variable.
func (c *Config) GenerationAPIKey() string {
	if key := strings.TrimSpace(c.Generation.APIKey); key != "" {
		return key
	}
	return strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
}

// FFmpegBinary returns the ffmpeg executable name used for frame extraction.
func (c *Config) FFmpegBinary() string {
	return "ffmpeg"
}

// FFprobeBinary returns the ffprobe executable name used for media validation.
func (c *Config) FFprobeBinary() string {
	return "ffprobe"
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if _, err := os.Stat(expanded); err == nil {
		return fmt.Errorf("config file already exists at %s", expanded)
	}
	if err := os.WriteFile(expanded, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
