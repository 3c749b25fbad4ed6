// Copyright The FreeTogether Authors.
// SPDX-License-Identifier: MIT

package port

import (
	"context"
	"log/slog"
)

// Authenticator parses a bearer credential into a principal identifier.
// The authentication protocol itself lives outside this service; the
// port keeps the seam so handlers stay testable.
type Authenticator interface {
	ParsePrincipal(ctx context.Context, token string, logger *slog.Logger) (string, error)
}
