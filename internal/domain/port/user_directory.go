// Copyright The FreeTogether Authors.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/freetogether/scheduling-service/internal/domain/model"
)

// UserDirectory resolves user identities. It is an external collaborator:
// lookups may fail with NotFound for unknown users or ServiceUnavailable
// when the directory is unreachable.
type UserDirectory interface {
	// ResolveByID resolves a user ID to email and display name
	ResolveByID(ctx context.Context, userID string) (*model.DirectoryUser, error)
	// ResolveByEmail resolves an email address to user ID and display name
	ResolveByEmail(ctx context.Context, email string) (*model.DirectoryUser, error)
}
