// Package config loads the application settings from a YAML file,
// falling back to defaults when the file or individual fields are absent.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings holds all configuration options.
type Settings struct {
	// OutputDir is the root under which songs/ and metadata/ are created.
	OutputDir string `yaml:"output_dir"`

	// BaseURL is the catalog API base URL.
	BaseURL string `yaml:"base_url"`

	// UserAgent and Referer identify the client to the origin.
	UserAgent string `yaml:"user_agent"`
	Referer   string `yaml:"referer"`

	// MaxConcurrency caps the number of parallel downloads. Zero means
	// derive from the task count, capped at the built-in ceiling.
	MaxConcurrency int `yaml:"max_concurrency"`

	// DownloadRetries is the number of extra attempts for transient
	// network failures.
	DownloadRetries int `yaml:"download_retries"`

	// RetryBackoffSeconds is the fixed pause before a retry, in seconds.
	RetryBackoffSeconds float64 `yaml:"retry_backoff_seconds"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		OutputDir:           ".",
		BaseURL:             "https://monster-siren.hypergryph.com/api",
		UserAgent:           "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/142.0.0.0 Safari/537.36",
		Referer:             "https://monster-siren.hypergryph.com/music",
		MaxConcurrency:      0,
		DownloadRetries:     1,
		RetryBackoffSeconds: 2,
	}
}

// RetryBackoff returns the retry pause as a duration.
func (s *Settings) RetryBackoff() time.Duration {
	return time.Duration(s.RetryBackoffSeconds * float64(time.Second))
}

// Load reads settings from a YAML file.
//
// A missing file is not an error: defaults are returned. Fields left
// empty in the file keep their default values.
func Load(path string) (*Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	if settings.OutputDir == "" {
		settings.OutputDir = "."
	}
	if settings.BaseURL == "" {
		settings.BaseURL = DefaultSettings().BaseURL
	}
	if settings.RetryBackoffSeconds <= 0 {
		settings.RetryBackoffSeconds = DefaultSettings().RetryBackoffSeconds
	}

	return settings, nil
}
