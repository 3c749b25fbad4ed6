// Copyright The FreeTogether Authors.
// SPDX-License-Identifier: MIT

// Package constants defines global constants used throughout the scheduling service.
package constants

// Service constants
const (
	// ServiceName is the name of this service
	ServiceName = "scheduling"
)

// HTTP header constants
const (
	// RequestIDHeader is the HTTP header name for request ID
	RequestIDHeader = "X-Request-Id"
)

// Environment variables
const (
	// EnvNATSURL is the environment variable for NATS server URL
	EnvNATSURL = "NATS_URL"
	// EnvUserDirectoryMode selects the user directory adapter (nats or http)
	EnvUserDirectoryMode = "USER_DIRECTORY_MODE"
	// EnvUserDirectoryURL is the base URL for the HTTP user directory adapter
	EnvUserDirectoryURL = "USER_DIRECTORY_URL"
)

// Resource type constants for domain resolution
const (
	// ResourceTypeEvent represents a scheduling event resource
	ResourceTypeEvent = "event"
	// ResourceTypeResponse represents an availability response resource
	ResourceTypeResponse = "response"
)
