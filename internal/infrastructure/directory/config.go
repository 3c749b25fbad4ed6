// Copyright The FreeTogether Authors.
// SPDX-License-Identifier: MIT

package directory

import (
	"os"
	"strconv"
	"time"
)

// Config holds the configuration for the HTTP user directory client
type Config struct {
	// BaseURL is the user directory API base URL
	BaseURL string

	// Token is the bearer token for authenticating against the directory
	Token string

	// Timeout is the HTTP client timeout for requests
	Timeout time.Duration

	// MaxRetries is the maximum number of retry attempts for failed requests
	MaxRetries int

	// RetryDelay is the delay between retry attempts
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		Timeout:    10 * time.Second,
		MaxRetries: 3,
		RetryDelay: 1 * time.Second,
	}
}

// NewConfigFromEnv creates a Config from environment variables
func NewConfigFromEnv() Config {
	config := DefaultConfig()

	if baseURL := os.Getenv("USER_DIRECTORY_URL"); baseURL != "" {
		config.BaseURL = baseURL
	}

	if token := os.Getenv("USER_DIRECTORY_TOKEN"); token != "" {
		config.Token = token
	}

	if timeoutStr := os.Getenv("USER_DIRECTORY_TIMEOUT"); timeoutStr != "" {
		if timeout, err := time.ParseDuration(timeoutStr); err == nil {
			config.Timeout = timeout
		}
	}

	if retriesStr := os.Getenv("USER_DIRECTORY_MAX_RETRIES"); retriesStr != "" {
		if retries, err := strconv.Atoi(retriesStr); err == nil {
			config.MaxRetries = retries
		}
	}

	if delayStr := os.Getenv("USER_DIRECTORY_RETRY_DELAY"); delayStr != "" {
		if delay, err := time.ParseDuration(delayStr); err == nil {
			config.RetryDelay = delay
		}
	}

	return config
}
