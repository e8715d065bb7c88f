package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/cesargomez89/lrcsieve/internal/constants"
)

// Config holds all application configuration
type Config struct {
	InputPath  string `ignored:"true"`
	OutputPath string `ignored:"true"`

	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat     string `envconfig:"LOG_FORMAT" default:"text"`
	CommitEvery   int64  `envconfig:"COMMIT_EVERY" default:"100000"`
	ProgressEvery int64  `envconfig:"PROGRESS_EVERY" default:"500000"`
	MinLines      int    `envconfig:"MIN_LINES" default:"10"`
	MinTextBytes  int    `envconfig:"MIN_TEXT_BYTES" default:"100"`
	MinDuration   int    `envconfig:"MIN_DURATION" default:"60"`
	Classifier    string `envconfig:"CLASSIFIER" default:"codepoint"`
}

// Load reads an optional .env file (ENV_FILE, default ".env") and then the
// process environment. Values already present in the environment win.
func Load(inputPath, outputPath string) (*Config, error) {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	cfg.InputPath = inputPath
	cfg.OutputPath = outputPath
	return cfg, nil
}

// Default returns a configuration carrying the built-in defaults.
func Default(inputPath, outputPath string) *Config {
	return &Config{
		InputPath:     inputPath,
		OutputPath:    outputPath,
		LogLevel:      constants.DefaultLogLevel,
		LogFormat:     constants.DefaultLogFormat,
		CommitEvery:   constants.DefaultCommitEvery,
		ProgressEvery: constants.DefaultProgressEvery,
		MinLines:      constants.DefaultMinLines,
		MinTextBytes:  constants.DefaultMinTextBytes,
		MinDuration:   constants.DefaultMinDuration,
		Classifier:    constants.DefaultClassifier,
	}
}

// Validate validates the configuration and returns detailed errors
func (c *Config) Validate() error {
	var errors []string

	if c.InputPath == "" {
		errors = append(errors, "input path cannot be empty")
	}
	if c.OutputPath == "" {
		errors = append(errors, "output path cannot be empty")
	}
	if c.InputPath != "" && c.InputPath == c.OutputPath {
		errors = append(errors, fmt.Sprintf("input and output must differ, both are %s", c.InputPath))
	}

	if c.CommitEvery < 1 {
		errors = append(errors, fmt.Sprintf("COMMIT_EVERY must be >= 1, got: %d", c.CommitEvery))
	}
	if c.ProgressEvery < 1 {
		errors = append(errors, fmt.Sprintf("PROGRESS_EVERY must be >= 1, got: %d", c.ProgressEvery))
	}
	if c.MinLines < 1 {
		errors = append(errors, fmt.Sprintf("MIN_LINES must be >= 1, got: %d", c.MinLines))
	}
	if c.MinTextBytes < 0 {
		errors = append(errors, fmt.Sprintf("MIN_TEXT_BYTES must be >= 0, got: %d", c.MinTextBytes))
	}
	if c.MinDuration < 0 {
		errors = append(errors, fmt.Sprintf("MIN_DURATION must be >= 0, got: %d", c.MinDuration))
	}

	validClassifiers := map[string]bool{
		constants.ClassifierCodepoint: true,
		constants.ClassifierLingua:    true,
	}
	if !validClassifiers[c.Classifier] {
		errors = append(errors, fmt.Sprintf("CLASSIFIER must be one of: codepoint, lingua, got: %s", c.Classifier))
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: debug, info, warn, error, got: %s", c.LogLevel))
	}

	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[c.LogFormat] {
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be one of: text, json, got: %s", c.LogFormat))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}
