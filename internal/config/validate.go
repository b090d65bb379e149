package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAnalysis(); err != nil {
		return err
	}
	if err := c.validateGeneration(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateAnalysis() error {
	if c.Analysis.FrameStride < 1 {
		return errors.New("analysis.frame_stride must be at least 1")
	}
	return nil
}

func (c *Config) validateGeneration() error {
	if c.Generation.TopP <= 0 || c.Generation.TopP > 1 {
		return errors.New("generation.top_p must be in (0, 1]")
	}
	if c.Generation.Temperature <= 0 {
		return errors.New("generation.temperature must be positive")
	}
	if c.Generation.MaxLength < 1 {
		return errors.New("generation.max_length must be at least 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
