// Copyright The FreeTogether Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	stderrors "errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/freetogether/scheduling-service/internal/domain/model"
	"github.com/freetogether/scheduling-service/pkg/concurrent"
	"github.com/freetogether/scheduling-service/pkg/constants"
	errs "github.com/freetogether/scheduling-service/pkg/errors"
)

// CreateEvent creates a new event owned by the actor
func (sw *schedulingWriterOrchestrator) CreateEvent(ctx context.Context, actor model.Actor, create *model.EventCreate) (*model.Event, error) {
	slog.DebugContext(ctx, "executing create event use case",
		"event_name", create.Name,
		"event_kind", create.Kind,
		"user_id", actor.UserID,
	)

	now := time.Now()
	event := &model.Event{
		UID:       uuid.New().String(),
		Name:      create.Name,
		Kind:      create.Kind,
		Timezone:  create.Timezone,
		StartDate: create.StartDate,
		EndDate:   create.EndDate,
		Invitees:  []string{},
		CreatedBy: actor.UserID,
		Status:    model.StatusCollecting,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, email := range create.Invitees {
		event.AddInvitee(email)
	}

	if err := event.ValidateBasicFields(); err != nil {
		slog.ErrorContext(ctx, "event validation failed",
			"error", err,
			"event_name", create.Name,
		)
		return nil, err
	}

	createdEvent, revision, err := sw.eventRepo.CreateEvent(ctx, event)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create event",
			"error", err,
			"event_name", create.Name,
		)
		return nil, err
	}

	slog.DebugContext(ctx, "event created successfully",
		"event_uid", createdEvent.UID,
		"revision", revision,
	)

	if err := sw.publishEventMessages(ctx, createdEvent, model.ActionCreated); err != nil {
		slog.ErrorContext(ctx, "failed to publish messages", "error", err)
		// Don't fail the create on message publishing errors
	}

	return createdEvent, nil
}

// DeleteEvent deletes an event, its lookup indices and all of its
// responses; owner only
func (sw *schedulingWriterOrchestrator) DeleteEvent(ctx context.Context, actor model.Actor, eventUID string) error {
	slog.DebugContext(ctx, "executing delete event use case",
		"event_uid", eventUID,
		"user_id", actor.UserID,
	)

	event, revision, err := loadEventForOwner(ctx, sw.eventRepo, actor, eventUID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check event access",
			"error", err,
			"event_uid", eventUID,
		)
		return err
	}

	// Child responses go first so a delete retried after a partial
	// failure never leaves orphaned responses behind a missing event.
	if err := sw.responseRepo.DeleteResponsesForEvent(ctx, eventUID); err != nil {
		slog.ErrorContext(ctx, "failed to delete event responses",
			"error", err,
			"event_uid", eventUID,
		)
		return err
	}

	if err := sw.eventRepo.DeleteEvent(ctx, event, revision); err != nil {
		slog.ErrorContext(ctx, "failed to delete event",
			"error", err,
			"event_uid", eventUID,
		)
		return err
	}

	slog.DebugContext(ctx, "event deleted successfully",
		"event_uid", eventUID,
	)

	if err := sw.publishEventDeleteMessages(ctx, eventUID); err != nil {
		slog.ErrorContext(ctx, "failed to publish delete messages", "error", err)
		// Don't fail the delete on message publishing errors
	}

	return nil
}

// Invite resolves email addresses through the user directory and adds
// the resolvable ones to the invitee set; owner only. Addresses the
// directory does not know are reported back, not treated as failures.
func (sw *schedulingWriterOrchestrator) Invite(ctx context.Context, actor model.Actor, eventUID string, emails []string) (*model.InviteResult, error) {
	slog.DebugContext(ctx, "executing invite use case",
		"event_uid", eventUID,
		"user_id", actor.UserID,
		"email_count", len(emails),
	)

	if len(emails) == 0 {
		return nil, errs.NewValidation("at least one email address is required")
	}

	event, revision, err := loadEventForOwner(ctx, sw.eventRepo, actor, eventUID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check event access",
			"error", err,
			"event_uid", eventUID,
		)
		return nil, err
	}

	result := &model.InviteResult{}
	changed := false
	for _, email := range emails {
		if _, errResolve := sw.directory.ResolveByEmail(ctx, email); errResolve != nil {
			var notFound errs.NotFound
			if stderrors.As(errResolve, &notFound) {
				slog.DebugContext(ctx, "invitee email not found in directory",
					"event_uid", eventUID,
				)
				result.NotFoundEmails = append(result.NotFoundEmails, email)
				continue
			}
			slog.ErrorContext(ctx, "user directory lookup failed",
				"error", errResolve,
				"event_uid", eventUID,
			)
			return nil, errResolve
		}

		if event.AddInvitee(email) {
			changed = true
		}
		result.InvitedCount++
	}

	if changed {
		event.UpdatedAt = time.Now()
		if _, _, err := sw.eventRepo.UpdateEvent(ctx, event, revision); err != nil {
			slog.ErrorContext(ctx, "failed to update event invitees",
				"error", err,
				"event_uid", eventUID,
			)
			return nil, err
		}

		if err := sw.publishEventMessages(ctx, event, model.ActionUpdated); err != nil {
			slog.ErrorContext(ctx, "failed to publish messages", "error", err)
		}
	}

	slog.DebugContext(ctx, "invite completed",
		"event_uid", eventUID,
		"invited_count", result.InvitedCount,
		"not_found_count", len(result.NotFoundEmails),
	)

	return result, nil
}

// publishEventMessages publishes the indexer and access control messages
// for a created or updated event
func (sw *schedulingWriterOrchestrator) publishEventMessages(ctx context.Context, event *model.Event, action model.MessageAction) error {
	if sw.publisher == nil {
		slog.WarnContext(ctx, "publisher not available, skipping event message publishing")
		return nil
	}

	indexerMessage := &model.IndexerMessage{
		Action: action,
		Tags:   event.Tags(),
	}
	builtIndexerMessage, err := indexerMessage.Build(ctx, event)
	if err != nil {
		slog.ErrorContext(ctx, "failed to build indexer message", "error", err)
		return err
	}

	accessMessage := model.NewEventAccessMessage(event)

	// Publish messages concurrently
	messages := []func() error{
		func() error {
			return sw.publisher.Indexer(ctx, constants.IndexEventSubject, builtIndexerMessage)
		},
		func() error {
			return sw.publisher.Access(ctx, constants.UpdateAccessEventSubject, accessMessage)
		},
	}

	errPublishingMessage := concurrent.NewWorkerPool(len(messages)).Run(ctx, messages...)
	if errPublishingMessage != nil {
		slog.ErrorContext(ctx, "failed to publish event messages",
			"error", errPublishingMessage,
			"event_uid", event.UID,
		)
		return errPublishingMessage
	}

	slog.DebugContext(ctx, "event messages published successfully",
		"event_uid", event.UID,
		"action", action,
	)

	return nil
}

// publishEventDeleteMessages publishes the indexer and access deletion
// messages for a deleted event
func (sw *schedulingWriterOrchestrator) publishEventDeleteMessages(ctx context.Context, uid string) error {
	if sw.publisher == nil {
		slog.WarnContext(ctx, "publisher not available, skipping event delete message publishing")
		return nil
	}

	indexerMessage := &model.IndexerMessage{
		Action: model.ActionDeleted,
	}
	builtMessage, err := indexerMessage.Build(ctx, uid)
	if err != nil {
		slog.ErrorContext(ctx, "failed to build indexer delete message", "error", err)
		return err
	}

	messages := []func() error{
		func() error {
			return sw.publisher.Indexer(ctx, constants.IndexEventSubject, builtMessage)
		},
		func() error {
			return sw.publisher.Access(ctx, constants.DeleteAllAccessEventSubject, uid)
		},
	}

	errPublishingMessage := concurrent.NewWorkerPool(len(messages)).Run(ctx, messages...)
	if errPublishingMessage != nil {
		slog.ErrorContext(ctx, "failed to publish event delete messages",
			"error", errPublishingMessage,
			"event_uid", uid,
		)
		return errPublishingMessage
	}

	slog.DebugContext(ctx, "event delete messages published successfully", "event_uid", uid)
	return nil
}
