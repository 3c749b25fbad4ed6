// Copyright The FreeTogether Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/freetogether/scheduling-service/internal/domain/model"
)

// Schedule pins the final date and time and moves the event to
// scheduled; owner only. The transition is legal from any status,
// including closed.
func (sw *schedulingWriterOrchestrator) Schedule(ctx context.Context, actor model.Actor, eventUID, date, timeOfDay string) (*model.Event, error) {
	slog.DebugContext(ctx, "executing schedule event use case",
		"event_uid", eventUID,
		"user_id", actor.UserID,
		"scheduled_date", date,
		"scheduled_time", timeOfDay,
	)

	return sw.transition(ctx, actor, eventUID, func(event *model.Event, now time.Time) error {
		return event.Schedule(date, timeOfDay, now)
	})
}

// Close stops availability collection; owner only. Scheduled fields are
// left intact so a scheduled event stays readable after closing.
func (sw *schedulingWriterOrchestrator) Close(ctx context.Context, actor model.Actor, eventUID string) (*model.Event, error) {
	slog.DebugContext(ctx, "executing close event use case",
		"event_uid", eventUID,
		"user_id", actor.UserID,
	)

	return sw.transition(ctx, actor, eventUID, func(event *model.Event, now time.Time) error {
		event.Close(now)
		return nil
	})
}

// Reopen resumes availability collection and clears the scheduled date
// and time; owner only.
func (sw *schedulingWriterOrchestrator) Reopen(ctx context.Context, actor model.Actor, eventUID string) (*model.Event, error) {
	slog.DebugContext(ctx, "executing reopen event use case",
		"event_uid", eventUID,
		"user_id", actor.UserID,
	)

	return sw.transition(ctx, actor, eventUID, func(event *model.Event, now time.Time) error {
		event.Reopen(now)
		return nil
	})
}

// transition loads the event for the owner, applies the lifecycle
// mutation and persists it guarded by the loaded revision, so two
// concurrent transitions on the same event cannot silently interleave.
func (sw *schedulingWriterOrchestrator) transition(ctx context.Context, actor model.Actor, eventUID string, mutate func(*model.Event, time.Time) error) (*model.Event, error) {
	event, revision, err := loadEventForOwner(ctx, sw.eventRepo, actor, eventUID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check event access",
			"error", err,
			"event_uid", eventUID,
		)
		return nil, err
	}

	if err := mutate(event, time.Now()); err != nil {
		slog.ErrorContext(ctx, "lifecycle transition rejected",
			"error", err,
			"event_uid", eventUID,
		)
		return nil, err
	}

	updatedEvent, newRevision, err := sw.eventRepo.UpdateEvent(ctx, event, revision)
	if err != nil {
		slog.ErrorContext(ctx, "failed to update event",
			"error", err,
			"event_uid", eventUID,
			"expected_revision", revision,
		)
		return nil, err
	}

	slog.DebugContext(ctx, "event transitioned successfully",
		"event_uid", eventUID,
		"status", updatedEvent.Status,
		"revision", newRevision,
	)

	if err := sw.publishEventMessages(ctx, updatedEvent, model.ActionUpdated); err != nil {
		slog.ErrorContext(ctx, "failed to publish messages", "error", err)
		// Don't fail the transition on message publishing errors
	}

	return updatedEvent, nil
}
