package config

const (
	defaultDataDir             = "~/.local/share/blossom"
	defaultUploadDir           = "~/.local/share/blossom/uploads"
	defaultModelDir            = "~/.local/share/blossom/models"
	defaultLogDir              = "~/.local/share/blossom/logs"
	defaultAPIBind             = "127.0.0.1:8674"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	defaultRiskModel           = "risk_model.json"
	defaultTextModel           = "text_model.json"
	defaultTextVectorizer      = "text_vectorizer.json"
	defaultGenerationModel     = "chat_model.json"
	defaultEmotionCommand      = "deepface"
	defaultFrameStride         = 30
	defaultFrameTimeoutSeconds = 20
	defaultGenerationModelID   = "gemini-2.0-flash"
	defaultMaxLength           = 100
	defaultAdviceMaxLength     = 150
	defaultTemperature         = 0.7
	defaultAdviceTemperature   = 0.8
	defaultTopP                = 0.9
	defaultGenTimeoutSeconds   = 30
	defaultRequestTimeout      = 120
	defaultShutdownTimeout     = 5
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:   defaultDataDir,
			UploadDir: defaultUploadDir,
			ModelDir:  defaultModelDir,
			LogDir:    defaultLogDir,
			APIBind:   defaultAPIBind,
		},
		Models: Models{
			RiskModel:       defaultRiskModel,
			TextModel:       defaultTextModel,
			TextVectorizer:  defaultTextVectorizer,
			GenerationModel: defaultGenerationModel,
		},
		Analysis: Analysis{
			EmotionCommand:      defaultEmotionCommand,
			FrameStride:         defaultFrameStride,
			FrameTimeoutSeconds: defaultFrameTimeoutSeconds,
		},
		Generation: Generation{
			Model:             defaultGenerationModelID,
			MaxLength:         defaultMaxLength,
			AdviceMaxLength:   defaultAdviceMaxLength,
			Temperature:       defaultTemperature,
			AdviceTemperature: defaultAdviceTemperature,
			TopP:              defaultTopP,
			TimeoutSeconds:    defaultGenTimeoutSeconds,
		},
		Workflow: Workflow{
			RequestTimeoutSeconds:  defaultRequestTimeout,
			ShutdownTimeoutSeconds: defaultShutdownTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
