// Copyright The FreeTogether Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"

	"github.com/freetogether/scheduling-service/internal/domain/model"
	"github.com/freetogether/scheduling-service/internal/domain/port"
	errs "github.com/freetogether/scheduling-service/pkg/errors"
)

// loadEventForViewer loads an event and checks view access: the owner
// and every invitee may read. A missing event surfaces as NotFound; an
// existing event the actor cannot see surfaces as Forbidden, which
// deliberately reveals that the event exists.
func loadEventForViewer(ctx context.Context, reader port.EventReader, actor model.Actor, uid string) (*model.Event, uint64, error) {
	event, revision, err := reader.GetEvent(ctx, uid)
	if err != nil {
		return nil, 0, err
	}

	if !event.IsOwner(actor.UserID) && !event.IsInvited(actor.Email) {
		slog.WarnContext(ctx, "actor is neither owner nor invitee",
			"event_uid", uid,
			"user_id", actor.UserID,
		)
		return nil, 0, errs.NewForbidden("actor is not permitted to view this event")
	}

	return event, revision, nil
}

// loadEventForOwner loads an event and checks owner access: only the
// creating user may mutate the event. Invitees get Forbidden, not
// NotFound, since they can already see the event.
func loadEventForOwner(ctx context.Context, reader port.EventReader, actor model.Actor, uid string) (*model.Event, uint64, error) {
	event, revision, err := reader.GetEvent(ctx, uid)
	if err != nil {
		return nil, 0, err
	}

	if !event.IsOwner(actor.UserID) {
		slog.WarnContext(ctx, "actor is not the event owner",
			"event_uid", uid,
			"user_id", actor.UserID,
		)
		return nil, 0, errs.NewForbidden("only the event owner may perform this operation")
	}

	return event, revision, nil
}
