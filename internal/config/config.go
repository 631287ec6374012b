package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Mode string

const (
	ModeLocal Mode = "local"
	ModeGCP   Mode = "gcp"
)

// Config is loaded from APEX_* environment variables.
type Config struct {
	Mode Mode   `envconfig:"MODE" default:"local"`
	Port string `envconfig:"PORT" default:"8080"`

	GCPProjectID string `envconfig:"GCP_PROJECT"`
	GCPLocation  string `envconfig:"GCP_LOCATION" default:"us-central1"`

	// GeminiAPIKey selects the API-key backend when set; otherwise the
	// gateway authenticates against Vertex with the GCP project.
	GeminiAPIKey string `envconfig:"GEMINI_API_KEY"`

	// ProModel handles long-form document forging, FlashModel the
	// refinement / distillation / extraction calls.
	ProModel   string `envconfig:"PRO_MODEL" default:"gemini-2.5-pro"`
	FlashModel string `envconfig:"FLASH_MODEL" default:"gemini-2.5-flash"`

	StorageBackend string `envconfig:"STORAGE_BACKEND" default:"memory"`
	UseMockLLM     bool   `envconfig:"USE_MOCK_LLM"`

	// GenerateTimeout bounds every call to the generation service.
	GenerateTimeout time.Duration `envconfig:"GENERATE_TIMEOUT" default:"60s"`

	// DistillDebounce is the quiet period after the last qualifying
	// transcript change before a distillation pass runs.
	DistillDebounce time.Duration `envconfig:"DISTILL_DEBOUNCE" default:"1500ms"`
}

// Load reads all env vars and builds the config.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("APEX", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	switch cfg.Mode {
	case ModeLocal, ModeGCP:
	default:
		return nil, fmt.Errorf("invalid APEX_MODE %q", cfg.Mode)
	}

	if cfg.Mode == ModeGCP && cfg.GCPProjectID == "" && cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("APEX_GCP_PROJECT or APEX_GEMINI_API_KEY must be set in gcp mode")
	}
	if cfg.StorageBackend == "firestore" && cfg.GCPProjectID == "" {
		return nil, fmt.Errorf("APEX_GCP_PROJECT is required for the firestore backend")
	}

	return &cfg, nil
}
