// Copyright The FreeTogether Authors.
// SPDX-License-Identifier: MIT

// Package port defines the interfaces between the scheduling service's
// use cases and its infrastructure collaborators.
package port

import (
	"context"

	"github.com/freetogether/scheduling-service/internal/domain/model"
)

// EventReader defines read operations for events against the document store
type EventReader interface {
	// GetEvent retrieves a single event by UID and returns the document revision
	GetEvent(ctx context.Context, uid string) (*model.Event, uint64, error)
	// ListEventsByOwner retrieves all events created by the given user
	ListEventsByOwner(ctx context.Context, userID string) ([]*model.Event, error)
	// ListEventsByInvitee retrieves all events whose invitee set contains the given email
	ListEventsByInvitee(ctx context.Context, email string) ([]*model.Event, error)
	// IsReady checks whether the underlying store is reachable
	IsReady(ctx context.Context) error
}

// EventWriter defines write operations for events against the document store
type EventWriter interface {
	// CreateEvent stores a new event document and its lookup indices
	CreateEvent(ctx context.Context, event *model.Event) (*model.Event, uint64, error)
	// UpdateEvent replaces an event document, guarded by the expected revision
	UpdateEvent(ctx context.Context, event *model.Event, expectedRevision uint64) (*model.Event, uint64, error)
	// DeleteEvent removes an event document, its lookup indices and all
	// child responses, guarded by the expected revision
	DeleteEvent(ctx context.Context, event *model.Event, expectedRevision uint64) error
}

// EventReaderWriter combines event read and write operations
type EventReaderWriter interface {
	EventReader
	EventWriter
}
