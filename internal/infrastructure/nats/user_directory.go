// Copyright The FreeTogether Authors.
// SPDX-License-Identifier: MIT

package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/freetogether/scheduling-service/internal/domain/model"
	"github.com/freetogether/scheduling-service/internal/domain/port"
	"github.com/freetogether/scheduling-service/pkg/constants"
	"github.com/freetogether/scheduling-service/pkg/errors"
	"github.com/freetogether/scheduling-service/pkg/utils"
)

// userDirectory resolves user identities over NATS request/reply against
// the directory service
type userDirectory struct {
	client *NATSClient
	retry  utils.RetryConfig
}

// resolve sends the lookup term on the given subject and decodes the
// directory's reply. Transient request failures are retried with
// exponential backoff. An empty reply means the user is unknown; a
// reply carrying an error field is surfaced as-is.
func (u *userDirectory) resolve(ctx context.Context, subject, term string) (*model.DirectoryUser, error) {
	var msg *nats.Msg
	err := utils.RetryWithExponentialBackoff(ctx, u.retry, func() error {
		var errRequest error
		msg, errRequest = u.client.conn.RequestWithContext(ctx, subject, []byte(term))
		return errRequest
	})
	if err != nil {
		slog.ErrorContext(ctx, "user directory request failed",
			"error", err,
			"subject", subject)
		return nil, errors.NewServiceUnavailable(fmt.Sprintf("user directory unavailable: %v", err))
	}

	if len(msg.Data) == 0 {
		return nil, errors.NewNotFound(fmt.Sprintf("user not found for %s", subject))
	}

	// Try to parse as JSON error response first
	var errorResponse struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(msg.Data, &errorResponse); err == nil && errorResponse.Error != "" {
		slog.WarnContext(ctx, "user directory responded with an error", "subject", subject, "error", errorResponse.Error)
		return nil, errors.NewUnexpected(errorResponse.Error)
	}

	user := &model.DirectoryUser{}
	if err := json.Unmarshal(msg.Data, user); err != nil {
		slog.ErrorContext(ctx, "failed to unmarshal user directory response",
			"error", err,
			"subject", subject)
		return nil, errors.NewUnexpected("failed to unmarshal user directory response", err)
	}

	return user, nil
}

// ResolveByID resolves a user ID to email and display name
func (u *userDirectory) ResolveByID(ctx context.Context, userID string) (*model.DirectoryUser, error) {
	return u.resolve(ctx, constants.DirectoryResolveByIDSubject, userID)
}

// ResolveByEmail resolves an email address to user ID and display name
func (u *userDirectory) ResolveByEmail(ctx context.Context, email string) (*model.DirectoryUser, error) {
	return u.resolve(ctx, constants.DirectoryResolveByEmailSubject, email)
}

// NewUserDirectory creates a user directory client using NATS request/reply
func NewUserDirectory(client *NATSClient) port.UserDirectory {
	return &userDirectory{
		client: client,
		retry:  utils.NewRetryConfig(3, 100*time.Millisecond, 2*time.Second),
	}
}
