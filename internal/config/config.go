package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is the process configuration, read from the environment.
type Config struct {
	Addr              string        `envconfig:"ADDR" default:":8080"`
	MaxActiveSessions int           `envconfig:"MAX_ACTIVE_SESSIONS" default:"16"`
	VoteTimeout       time.Duration `envconfig:"VOTE_TIMEOUT" default:"60s"`

	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogEncoding string `envconfig:"LOG_ENCODING" default:"json"`

	OpenAIAPIKey  string        `envconfig:"OPENAI_API_KEY"`
	OpenAIBaseURL string        `envconfig:"OPENAI_BASE_URL"`
	OpenAIModel   string        `envconfig:"OPENAI_MODEL"`
	OpenAITimeout time.Duration `envconfig:"OPENAI_TIMEOUT" default:"90s"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}
