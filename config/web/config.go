package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Port           int           `env:"PORT" env-default:"8080"`
	LogLevel       string        `env:"LOG_LEVEL" env-default:"debug"`
	LogJSON        bool          `env:"LOG_JSON" env-default:"false"`
	JWTSecret      string        `env:"JWT_SECRET"`
	AuthRequired   bool          `env:"AUTH_REQUIRED" env-default:"false"`
	MaxUploadBytes int64         `env:"MAX_UPLOAD_BYTES" env-default:"104857600"`
	TempDir        string        `env:"TEMP_DIR"`
	WriteTimeout   time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"5m"`
	CleanupTimeout time.Duration `env:"CLEANUP_TIMEOUT" env-default:"10s"`
	FFmpegPath     string        `env:"FFMPEG_PATH" env-default:"ffmpeg"`
	GCP            GCPConfig
	Speech         SpeechConfig
	Storage        StorageConfig
	LLM            LLMConfig
}

type GCPConfig struct {
	ProjectID       string `env:"GCP_PROJECT_ID" env-required:"true"`
	Region          string `env:"GCP_REGION" env-default:"us-central1"`
	CredentialsFile string `env:"GOOGLE_APPLICATION_CREDENTIALS"`
}

type SpeechConfig struct {
	Model         string   `env:"SPEECH_MODEL" env-default:"chirp_2"`
	LanguageCodes []string `env:"SPEECH_LANGUAGE_CODES" env-default:"en-IN"`
}

type StorageConfig struct {
	Bucket string `env:"GCS_BUCKET" env-default:"meetlens-audio"`
	Prefix string `env:"GCS_PREFIX" env-default:"transcription"`
}

type LLMConfig struct {
	Provider      string `env:"LLM_PROVIDER" env-default:"gemini"`
	PolishModel   string `env:"POLISH_MODEL" env-default:"gemini-1.5-flash-001"`
	AnalysisModel string `env:"ANALYSIS_MODEL" env-default:"gemini-2.0-flash-lite"`
	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIModel   string `env:"OPENAI_MODEL" env-default:"gpt-4o-mini"`
}

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err.Error())
	}

	return cfg
}

func (c *Config) validate() error {
	switch c.LLM.Provider {
	case ProviderGemini:
	case ProviderOpenAI:
		if c.LLM.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when LLM_PROVIDER=%s", ProviderOpenAI)
		}
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.LLM.Provider)
	}

	if c.AuthRequired && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when AUTH_REQUIRED=true")
	}

	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}

	if len(c.Speech.LanguageCodes) == 0 {
		return fmt.Errorf("SPEECH_LANGUAGE_CODES must not be empty")
	}

	return nil
}

// Models returns the polish and analysis model names for the selected
// provider. The Gemini model settings do not apply to OpenAI.
func (c LLMConfig) Models() (polish, analysis string) {
	if c.Provider == ProviderOpenAI {
		return c.OpenAIModel, c.OpenAIModel
	}
	return c.PolishModel, c.AnalysisModel
}

// SpeechEndpoint is the regional speech API endpoint. Batch recognition with
// regional recognizers is only served by the regional host.
func (c *Config) SpeechEndpoint() string {
	return fmt.Sprintf("%s-speech.googleapis.com:443", c.GCP.Region)
}
