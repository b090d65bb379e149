package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeModels()
	c.normalizeAnalysis()
	c.normalizeGeneration()
	c.normalizeWorkflow()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.UploadDir) == "" {
		c.Paths.UploadDir = defaultUploadDir
	}
	if c.Paths.UploadDir, err = expandPath(c.Paths.UploadDir); err != nil {
		return fmt.Errorf("paths.upload_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.ModelDir) == "" {
		c.Paths.ModelDir = defaultModelDir
	}
	if c.Paths.ModelDir, err = expandPath(c.Paths.ModelDir); err != nil {
		return fmt.Errorf("paths.model_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	if c.Paths.APIBind == "" {
		c.Paths.APIBind = defaultAPIBind
	}
	c.Paths.APIToken = strings.TrimSpace(c.Paths.APIToken)
	return nil
}

func (c *Config) normalizeModels() {
	if strings.TrimSpace(c.Models.RiskModel) == "" {
		c.Models.RiskModel = defaultRiskModel
	}
	if strings.TrimSpace(c.Models.TextModel) == "" {
		c.Models.TextModel = defaultTextModel
	}
	if strings.TrimSpace(c.Models.TextVectorizer) == "" {
		c.Models.TextVectorizer = defaultTextVectorizer
	}
	if strings.TrimSpace(c.Models.GenerationModel) == "" {
		c.Models.GenerationModel = defaultGenerationModel
	}
}

func (c *Config) normalizeAnalysis() {
	c.Analysis.EmotionCommand = strings.TrimSpace(c.Analysis.EmotionCommand)
	if c.Analysis.EmotionCommand == "" {
		c.Analysis.EmotionCommand = defaultEmotionCommand
	}
	if c.Analysis.FrameStride <= 0 {
		c.Analysis.FrameStride = defaultFrameStride
	}
	if c.Analysis.FrameTimeoutSeconds <= 0 {
		c.Analysis.FrameTimeoutSeconds = defaultFrameTimeoutSeconds
	}
}

func (c *Config) normalizeGeneration() {
	c.Generation.APIKey = strings.TrimSpace(c.Generation.APIKey)
	c.Generation.Model = strings.TrimSpace(c.Generation.Model)
	if c.Generation.Model == "" {
		c.Generation.Model = defaultGenerationModelID
	}
	if c.Generation.MaxLength <= 0 {
		c.Generation.MaxLength = defaultMaxLength
	}
	if c.Generation.AdviceMaxLength <= 0 {
		c.Generation.AdviceMaxLength = defaultAdviceMaxLength
	}
	if c.Generation.Temperature <= 0 {
		c.Generation.Temperature = defaultTemperature
	}
	if c.Generation.AdviceTemperature <= 0 {
		c.Generation.AdviceTemperature = defaultAdviceTemperature
	}
	if c.Generation.TopP <= 0 {
		c.Generation.TopP = defaultTopP
	}
	if c.Generation.TimeoutSeconds <= 0 {
		c.Generation.TimeoutSeconds = defaultGenTimeoutSeconds
	}
}

func (c *Config) normalizeWorkflow() {
	if c.Workflow.RequestTimeoutSeconds <= 0 {
		c.Workflow.RequestTimeoutSeconds = defaultRequestTimeout
	}
	if c.Workflow.ShutdownTimeoutSeconds <= 0 {
		c.Workflow.ShutdownTimeoutSeconds = defaultShutdownTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
