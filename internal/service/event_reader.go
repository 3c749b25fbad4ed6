// Copyright The FreeTogether Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/freetogether/scheduling-service/internal/domain/model"
	"github.com/freetogether/scheduling-service/pkg/concurrent"
)

// GetEvent retrieves a single event visible to the actor
func (sr *schedulingReaderOrchestrator) GetEvent(ctx context.Context, actor model.Actor, uid string) (*model.Event, error) {
	slog.DebugContext(ctx, "executing get event use case",
		"event_uid", uid,
		"user_id", actor.UserID,
	)

	event, revision, err := loadEventForViewer(ctx, sr.eventReader, actor, uid)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get event",
			"error", err,
			"event_uid", uid,
		)
		return nil, err
	}

	slog.DebugContext(ctx, "event retrieved successfully",
		"event_uid", uid,
		"revision", revision,
	)

	return event, nil
}

// ListEvents retrieves the events the actor owns or is invited to. The
// two index scans run concurrently and the union is deduplicated by UID.
func (sr *schedulingReaderOrchestrator) ListEvents(ctx context.Context, actor model.Actor) ([]*model.Event, error) {
	slog.DebugContext(ctx, "executing list events use case",
		"user_id", actor.UserID,
	)

	var (
		mu      sync.Mutex
		owned   []*model.Event
		invited []*model.Event
	)

	err := concurrent.NewWorkerPool(2).Run(ctx,
		func() error {
			events, errOwned := sr.eventReader.ListEventsByOwner(ctx, actor.UserID)
			if errOwned != nil {
				return errOwned
			}
			mu.Lock()
			owned = events
			mu.Unlock()
			return nil
		},
		func() error {
			if actor.Email == "" {
				return nil
			}
			events, errInvited := sr.eventReader.ListEventsByInvitee(ctx, actor.Email)
			if errInvited != nil {
				return errInvited
			}
			mu.Lock()
			invited = events
			mu.Unlock()
			return nil
		},
	)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list events",
			"error", err,
			"user_id", actor.UserID,
		)
		return nil, err
	}

	seen := make(map[string]bool, len(owned)+len(invited))
	merged := make([]*model.Event, 0, len(owned)+len(invited))
	for _, event := range append(owned, invited...) {
		if seen[event.UID] {
			continue
		}
		seen[event.UID] = true
		merged = append(merged, event)
	}

	// Stable ordering for callers regardless of which scan returned first
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].UID < merged[j].UID
	})

	slog.DebugContext(ctx, "events listed successfully",
		"user_id", actor.UserID,
		"count", len(merged),
	)

	return merged, nil
}

// ListResponses retrieves all responses of an event visible to the actor
func (sr *schedulingReaderOrchestrator) ListResponses(ctx context.Context, actor model.Actor, eventUID string) ([]*model.Response, error) {
	slog.DebugContext(ctx, "executing list responses use case",
		"event_uid", eventUID,
		"user_id", actor.UserID,
	)

	if _, _, err := loadEventForViewer(ctx, sr.eventReader, actor, eventUID); err != nil {
		slog.ErrorContext(ctx, "failed to check event access",
			"error", err,
			"event_uid", eventUID,
		)
		return nil, err
	}

	responses, err := sr.responseReader.ListResponses(ctx, eventUID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list responses",
			"error", err,
			"event_uid", eventUID,
		)
		return nil, err
	}

	slog.DebugContext(ctx, "responses listed successfully",
		"event_uid", eventUID,
		"count", len(responses),
	)

	return responses, nil
}
