package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds everything cardbot reads from the environment.
type Config struct {
	Port        int    `envconfig:"PORT" default:"5051"`
	AccessToken string `envconfig:"WEBEX_ACCESS_TOKEN"`

	// BotID overrides the identity fetched from the platform when set.
	BotID string `envconfig:"BOT_ID"`

	// TargetSpaceID is the room used by the one-off sendcard utility.
	TargetSpaceID string `envconfig:"TARGET_SPACE_ID"`

	// PublicURL is the externally visible base URL webhooks are registered
	// against. When empty, the URL is derived from the incoming request.
	PublicURL string `envconfig:"PUBLIC_URL"`

	APIBase   string `envconfig:"WEBEX_API_BASE" default:"https://webexapis.com/v1"`
	RateLimit int    `envconfig:"RATE_LIMIT" default:"100"`

	// DryRun skips all webhook registration calls against the platform.
	DryRun bool `envconfig:"DRY_RUN"`
}

// LoadEnvFile loads a dotenv file before Config parsing. DOT_ENV_FILE picks
// an alternative file, otherwise .env in the working directory is used.
func LoadEnvFile() {
	if file := os.Getenv("DOT_ENV_FILE"); file != "" {
		_ = godotenv.Load(file) //nolint:errcheck
		return
	}
	_ = godotenv.Load() //nolint:errcheck
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.AccessToken == "" {
		return fmt.Errorf("WEBEX_ACCESS_TOKEN environment variable is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be a valid TCP port, got %d", c.Port)
	}
	return nil
}
