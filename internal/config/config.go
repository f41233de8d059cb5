// Package config loads the settings of the example server: an optional YAML
// file, then a .env file, then environment variables, each overriding the
// previous one.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/jwtbackend/go-jwt-backend/core"
	"github.com/jwtbackend/go-jwt-backend/validator"
)

// Validator backends.
const (
	BackendJWX   = "jwx"
	BackendJWTGo = "jwtgo"
)

// HTTPConfig holds listener settings.
type HTTPConfig struct {
	Addr            string        `yaml:"addr" env:"HTTP_ADDR"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT"`
}

// JWTConfig holds token validation settings.
type JWTConfig struct {
	Secret        string        `yaml:"secret" env:"JWT_SECRET"`
	Algorithm     string        `yaml:"algorithm" env:"JWT_ALGORITHM"`
	Scheme        string        `yaml:"scheme" env:"JWT_SCHEME"`
	UsernameClaim string        `yaml:"username_claim" env:"JWT_USERNAME_CLAIM"`
	Issuer        string        `yaml:"issuer" env:"JWT_ISSUER"`
	Audience      []string      `yaml:"audience" env:"JWT_AUDIENCE" envSeparator:","`
	Leeway        time.Duration `yaml:"leeway" env:"JWT_LEEWAY"`
	Backend       string        `yaml:"backend" env:"JWT_BACKEND"`
	QueryParam    string        `yaml:"query_param" env:"JWT_QUERY_PARAM"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Format string `yaml:"format" env:"LOG_FORMAT"`
}

// Config is the top-level configuration of the example server.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	JWT     JWTConfig     `yaml:"jwt"`
	Logging LoggingConfig `yaml:"logging"`
}

// Default returns a Config populated with default values. The secret has no
// default.
func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
		JWT: JWTConfig{
			Algorithm:     string(validator.HS256),
			Scheme:        core.DefaultScheme,
			UsernameClaim: validator.DefaultUsernameClaim,
			Backend:       BackendJWX,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds the configuration. path names an optional YAML file; envFiles
// are dotenv files to read, ".env" when none are given. Missing dotenv files
// are ignored. Variables already set in the environment win over dotenv files.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("jwt secret is required (set JWT_SECRET)")
	}
	if _, err := validator.ParseAlgorithm(c.JWT.Algorithm); err != nil {
		return fmt.Errorf("jwt algorithm: %w", err)
	}
	if c.JWT.Scheme == "" {
		return errors.New("jwt scheme cannot be empty")
	}
	if c.JWT.Leeway < 0 {
		return errors.New("jwt leeway cannot be negative")
	}
	switch c.JWT.Backend {
	case BackendJWX, BackendJWTGo:
	default:
		return fmt.Errorf("unknown jwt backend %q (want %q or %q)", c.JWT.Backend, BackendJWX, BackendJWTGo)
	}
	if c.HTTP.Addr == "" {
		return errors.New("http addr cannot be empty")
	}
	return nil
}
