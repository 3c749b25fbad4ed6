// Copyright The FreeTogether Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"

	"github.com/freetogether/scheduling-service/internal/domain/model"
	"github.com/freetogether/scheduling-service/internal/domain/port"
)

// SchedulingWriter defines the write use cases, all gated by the access policy
type SchedulingWriter interface {
	// CreateEvent creates a new event owned by the actor
	CreateEvent(ctx context.Context, actor model.Actor, create *model.EventCreate) (*model.Event, error)
	// DeleteEvent deletes an event and all of its responses; owner only
	DeleteEvent(ctx context.Context, actor model.Actor, eventUID string) error
	// Invite adds email addresses to the invitee set; owner only.
	// Unresolvable addresses are reported back, not treated as failures.
	Invite(ctx context.Context, actor model.Actor, eventUID string, emails []string) (*model.InviteResult, error)
	// Schedule pins the final date and time; owner only
	Schedule(ctx context.Context, actor model.Actor, eventUID, date, timeOfDay string) (*model.Event, error)
	// Close stops availability collection; owner only
	Close(ctx context.Context, actor model.Actor, eventUID string) (*model.Event, error)
	// Reopen resumes availability collection and clears the scheduled
	// date and time; owner only
	Reopen(ctx context.Context, actor model.Actor, eventUID string) (*model.Event, error)
	// SubmitResponse normalizes and stores the actor's availability,
	// overwriting any prior submission
	SubmitResponse(ctx context.Context, actor model.Actor, eventUID string, submission *model.Response) (*model.Response, error)
}

// schedulingWriterOrchestratorOption defines a function type for setting options on the writer orchestrator
type schedulingWriterOrchestratorOption func(*schedulingWriterOrchestrator)

// WithEventReaderWriter sets the event repository port
func WithEventReaderWriter(rw port.EventReaderWriter) schedulingWriterOrchestratorOption {
	return func(w *schedulingWriterOrchestrator) {
		w.eventRepo = rw
	}
}

// WithResponseReaderWriter sets the response repository port
func WithResponseReaderWriter(rw port.ResponseReaderWriter) schedulingWriterOrchestratorOption {
	return func(w *schedulingWriterOrchestrator) {
		w.responseRepo = rw
	}
}

// WithUserDirectory sets the user directory collaborator
func WithUserDirectory(directory port.UserDirectory) schedulingWriterOrchestratorOption {
	return func(w *schedulingWriterOrchestrator) {
		w.directory = directory
	}
}

// WithMessagePublisher sets the message publisher for indexing and access sync
func WithMessagePublisher(publisher port.MessagePublisher) schedulingWriterOrchestratorOption {
	return func(w *schedulingWriterOrchestrator) {
		w.publisher = publisher
	}
}

// schedulingWriterOrchestrator implements the write use cases
type schedulingWriterOrchestrator struct {
	eventRepo    port.EventReaderWriter
	responseRepo port.ResponseReaderWriter
	directory    port.UserDirectory
	publisher    port.MessagePublisher
}

// NewSchedulingWriterOrchestrator creates a new writer orchestrator using the option pattern
func NewSchedulingWriterOrchestrator(opts ...schedulingWriterOrchestratorOption) SchedulingWriter {
	wc := &schedulingWriterOrchestrator{}
	for _, opt := range opts {
		opt(wc)
	}
	return wc
}
