// Copyright The FreeTogether Authors.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/freetogether/scheduling-service/internal/domain/model"
)

// ResponseReader defines read operations for availability responses
type ResponseReader interface {
	// GetResponse retrieves one respondent's record for an event
	GetResponse(ctx context.Context, eventUID, userID string) (*model.Response, error)
	// ListResponses retrieves all responses belonging to an event
	ListResponses(ctx context.Context, eventUID string) ([]*model.Response, error)
}

// ResponseWriter defines write operations for availability responses
type ResponseWriter interface {
	// PutResponse stores a respondent's record, fully overwriting any
	// prior record for the same event and respondent
	PutResponse(ctx context.Context, response *model.Response) error
	// DeleteResponsesForEvent removes every response belonging to an event
	DeleteResponsesForEvent(ctx context.Context, eventUID string) error
}

// ResponseReaderWriter combines response read and write operations
type ResponseReaderWriter interface {
	ResponseReader
	ResponseWriter
}
