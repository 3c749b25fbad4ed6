// Copyright The FreeTogether Authors.
// SPDX-License-Identifier: MIT

package directory

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/freetogether/scheduling-service/pkg/errors"
	"github.com/freetogether/scheduling-service/pkg/httpclient"
)

// mapHTTPError maps httpclient errors to domain errors with proper context logging
func mapHTTPError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	// Check if it's a retryable error from httpclient
	if retryableErr, ok := err.(*httpclient.RetryableError); ok {
		slog.WarnContext(ctx, "user directory HTTP error occurred",
			"status_code", retryableErr.StatusCode,
			"message", retryableErr.Message,
		)

		switch retryableErr.StatusCode {
		case http.StatusNotFound:
			return errors.NewNotFound("user not found in directory", err)
		case http.StatusUnauthorized:
			return errors.NewUnauthorized("user directory authentication failed", err)
		case http.StatusForbidden:
			return errors.NewForbidden("user directory access denied", err)
		case http.StatusTooManyRequests:
			return errors.NewServiceUnavailable("user directory rate limited", err)
		case http.StatusBadRequest:
			return errors.NewValidation(fmt.Sprintf("user directory validation error: %s", retryableErr.Message), err)
		case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return errors.NewServiceUnavailable("user directory unavailable", err)
		default:
			slog.ErrorContext(ctx, "unexpected user directory HTTP status code",
				"status_code", retryableErr.StatusCode,
				"message", retryableErr.Message,
			)
			return errors.NewUnexpected("user directory API error", err)
		}
	}

	// Handle other error types (network, timeout, etc.)
	slog.ErrorContext(ctx, "user directory request failed with non-HTTP error",
		"error", err.Error(),
	)
	return errors.NewServiceUnavailable("user directory request failed", err)
}
