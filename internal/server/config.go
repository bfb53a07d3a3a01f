package server

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"

	appenv "github.com/garrettladley/huddle/internal/env"
)

type Config struct {
	Port        string             `env:"PORT" envDefault:"5000"`
	Env         appenv.Environment `env:"ENVIRONMENT" envDefault:"development"`
	DatabaseURL string             `env:"DATABASE_URL"`
	AuthTokens  string             `env:"AUTH_TOKENS"`
	RateLimit   RateLimit          `envPrefix:"RATE_"`
}

type RateLimit struct {
	Limit float64 `env:"LIMIT" envDefault:"10"`
	Burst int     `env:"BURST" envDefault:"20"`
}

func ReadConfig() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if !c.Env.IsDevelopment() && !c.Env.IsProduction() {
		return fmt.Errorf("invalid ENVIRONMENT %q", c.Env)
	}
	if c.Env.IsProduction() && c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required in production")
	}
	if c.RateLimit.Limit <= 0 || c.RateLimit.Burst <= 0 {
		return errors.New("RATE_LIMIT and RATE_BURST must be positive")
	}
	if _, err := ParseAuthTokens(c.AuthTokens); err != nil {
		return err
	}
	return nil
}

// ParseAuthTokens parses "token:user,token:user" into a token to user map.
func ParseAuthTokens(s string) (map[string]string, error) {
	tokens := make(map[string]string)
	for pair := range strings.SplitSeq(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		token, user, ok := strings.Cut(pair, ":")
		token, user = strings.TrimSpace(token), strings.TrimSpace(user)
		if !ok || token == "" || user == "" {
			return nil, fmt.Errorf("invalid AUTH_TOKENS entry %q, expected token:user", pair)
		}
		tokens[token] = user
	}
	return tokens, nil
}
