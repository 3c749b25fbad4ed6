// Copyright The FreeTogether Authors.
// SPDX-License-Identifier: MIT

// Package mock provides mock implementations for testing purposes.
package mock

import (
	"context"
	"log/slog"
	"os"

	"github.com/freetogether/scheduling-service/internal/domain/port"
	"github.com/freetogether/scheduling-service/pkg/errors"
)

// MockAuthService provides a mock implementation of the authentication service
type MockAuthService struct{}

// ParsePrincipal parses and validates a bearer token, returning a mock principal
func (m *MockAuthService) ParsePrincipal(ctx context.Context, _ string, logger *slog.Logger) (string, error) {

	principal := os.Getenv("AUTH_DISABLED_MOCK_LOCAL_PRINCIPAL")

	if principal == "" {
		return "", errors.NewValidation("AUTH_DISABLED_MOCK_LOCAL_PRINCIPAL environment variable not set")
	}

	logger.DebugContext(ctx, "parsed principal",
		"user_id", principal,
	)

	return principal, nil
}

// NewMockAuthService creates a new mock authentication service
func NewMockAuthService() port.Authenticator {
	return &MockAuthService{}
}
