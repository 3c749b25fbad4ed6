// Copyright The FreeTogether Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/freetogether/scheduling-service/internal/domain/model"
)

// SubmitResponse normalizes and stores the actor's availability for an
// event. The respondent's identity is the natural key: a resubmission
// fully overwrites the prior record, so submitting is idempotent.
func (sw *schedulingWriterOrchestrator) SubmitResponse(ctx context.Context, actor model.Actor, eventUID string, submission *model.Response) (*model.Response, error) {
	slog.DebugContext(ctx, "executing submit response use case",
		"event_uid", eventUID,
		"user_id", actor.UserID,
	)

	if _, _, err := loadEventForViewer(ctx, sw.eventRepo, actor, eventUID); err != nil {
		slog.ErrorContext(ctx, "failed to check event access",
			"error", err,
			"event_uid", eventUID,
		)
		return nil, err
	}

	submission.EventUID = eventUID
	submission.UserID = actor.UserID
	submission.UpdatedAt = time.Now()

	dropped, err := submission.Normalize()
	if err != nil {
		slog.ErrorContext(ctx, "response normalization failed",
			"error", err,
			"event_uid", eventUID,
			"user_id", actor.UserID,
		)
		return nil, err
	}
	if len(dropped) > 0 {
		slog.WarnContext(ctx, "maybe slots also submitted as free were dropped",
			"event_uid", eventUID,
			"user_id", actor.UserID,
			"dropped_count", len(dropped),
		)
	}

	sw.enrichRespondent(ctx, actor, submission)

	if err := sw.responseRepo.PutResponse(ctx, submission); err != nil {
		slog.ErrorContext(ctx, "failed to store response",
			"error", err,
			"event_uid", eventUID,
			"user_id", actor.UserID,
		)
		return nil, err
	}

	slog.DebugContext(ctx, "response stored successfully",
		"event_uid", eventUID,
		"user_id", actor.UserID,
		"free_count", len(submission.FreeSlots),
		"maybe_count", len(submission.MaybeSlots),
	)

	return submission, nil
}

// enrichRespondent fills in the respondent's email and display name from
// the user directory. Directory failures are tolerated: the display name
// degrades to the submitted email so a directory outage never blocks a
// submission or blanks the respondent listing.
func (sw *schedulingWriterOrchestrator) enrichRespondent(ctx context.Context, actor model.Actor, response *model.Response) {
	response.UserEmail = actor.Email
	response.UserName = actor.Email

	if sw.directory == nil {
		return
	}

	user, err := sw.directory.ResolveByID(ctx, actor.UserID)
	if err != nil {
		slog.WarnContext(ctx, "user directory lookup failed, using actor identity",
			"error", err,
			"user_id", actor.UserID,
		)
		return
	}

	if user.Email != "" {
		response.UserEmail = user.Email
	}
	if user.DisplayName != "" {
		response.UserName = user.DisplayName
	}
}
