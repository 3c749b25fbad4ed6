// Copyright The FreeTogether Authors.
// SPDX-License-Identifier: MIT

// Package service implements the scheduling use cases on top of the
// domain ports.
package service

import (
	"context"

	"github.com/freetogether/scheduling-service/internal/domain/model"
	"github.com/freetogether/scheduling-service/internal/domain/port"
)

// SchedulingReader defines the read use cases, all gated by the access policy
type SchedulingReader interface {
	// GetEvent retrieves a single event visible to the actor
	GetEvent(ctx context.Context, actor model.Actor, uid string) (*model.Event, error)
	// ListEvents retrieves the events the actor owns or is invited to
	ListEvents(ctx context.Context, actor model.Actor) ([]*model.Event, error)
	// ListResponses retrieves all responses of an event visible to the actor
	ListResponses(ctx context.Context, actor model.Actor, eventUID string) ([]*model.Response, error)
	// GetHeatmap aggregates an event's responses into the availability heatmap
	GetHeatmap(ctx context.Context, actor model.Actor, eventUID string) (*model.Heatmap, error)
	// IsReady checks whether the underlying collaborators are reachable
	IsReady(ctx context.Context) error
}

// schedulingReaderOrchestratorOption defines a function type for setting options on the reader orchestrator
type schedulingReaderOrchestratorOption func(*schedulingReaderOrchestrator)

// WithEventReader sets the event reader port
func WithEventReader(reader port.EventReader) schedulingReaderOrchestratorOption {
	return func(r *schedulingReaderOrchestrator) {
		r.eventReader = reader
	}
}

// WithResponseReader sets the response reader port
func WithResponseReader(reader port.ResponseReader) schedulingReaderOrchestratorOption {
	return func(r *schedulingReaderOrchestrator) {
		r.responseReader = reader
	}
}

// schedulingReaderOrchestrator implements the read use cases
type schedulingReaderOrchestrator struct {
	eventReader    port.EventReader
	responseReader port.ResponseReader
}

// NewSchedulingReaderOrchestrator creates a new reader orchestrator using the option pattern
func NewSchedulingReaderOrchestrator(opts ...schedulingReaderOrchestratorOption) SchedulingReader {
	rc := &schedulingReaderOrchestrator{}
	for _, opt := range opts {
		opt(rc)
	}
	return rc
}

// IsReady checks readiness of the event store
func (sr *schedulingReaderOrchestrator) IsReady(ctx context.Context) error {
	return sr.eventReader.IsReady(ctx)
}
