// Copyright The FreeTogether Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"

	"github.com/freetogether/scheduling-service/internal/domain/model"
	"github.com/freetogether/scheduling-service/internal/domain/port"
	"github.com/freetogether/scheduling-service/pkg/constants"
	errs "github.com/freetogether/scheduling-service/pkg/errors"
	"github.com/nats-io/nats.go"
)

// apiRequest is the envelope every scheduling API message carries: the
// already-authenticated actor plus the operation's fields.
type apiRequest struct {
	Actor model.Actor `json:"actor"`

	EventUID string `json:"event_uid,omitempty"`

	// create
	Event *model.EventCreate `json:"event,omitempty"`

	// invite
	Emails []string `json:"emails,omitempty"`

	// schedule
	Date string `json:"date,omitempty"`
	Time string `json:"time,omitempty"`

	// submit
	Response *model.Response `json:"response,omitempty"`
}

// apiError is the reply envelope for failed operations
type apiError struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// SchedulingMessageHandler routes scheduling API messages received over
// NATS request/reply to the use-case orchestrators
type SchedulingMessageHandler struct {
	reader SchedulingReader
	writer SchedulingWriter
	auth   port.Authenticator
}

// NewSchedulingMessageHandler creates a new scheduling message handler
func NewSchedulingMessageHandler(reader SchedulingReader, writer SchedulingWriter, auth port.Authenticator) *SchedulingMessageHandler {
	return &SchedulingMessageHandler{
		reader: reader,
		writer: writer,
		auth:   auth,
	}
}

// HandleMessage routes NATS messages to appropriate handlers based on
// subject and replies with the operation result or an error envelope
func (h *SchedulingMessageHandler) HandleMessage(ctx context.Context, msg *nats.Msg) error {
	subject := msg.Subject

	slog.DebugContext(ctx, "received scheduling API message", "subject", subject)

	var req apiRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		slog.ErrorContext(ctx, "failed to unmarshal scheduling API request", "error", err, "subject", subject)
		return h.respondError(ctx, msg, errs.NewValidation("malformed request payload", err))
	}

	// A bearer token on the message overrides the claimed actor identity
	if h.auth != nil {
		if token := msg.Header.Get(constants.AuthorizationHeader); token != "" {
			principal, err := h.auth.ParsePrincipal(ctx, token, slog.Default())
			if err != nil {
				return h.respondError(ctx, msg, errs.NewUnauthorized("invalid credentials", err))
			}
			req.Actor.UserID = principal
		}
	}

	if req.Actor.UserID == "" {
		return h.respondError(ctx, msg, errs.NewUnauthorized("actor is required"))
	}

	result, err := h.dispatch(ctx, subject, &req)
	if err != nil {
		return h.respondError(ctx, msg, err)
	}

	return h.respond(ctx, msg, result)
}

func (h *SchedulingMessageHandler) dispatch(ctx context.Context, subject string, req *apiRequest) (any, error) {
	switch subject {
	case constants.EventGetSubject:
		return h.reader.GetEvent(ctx, req.Actor, req.EventUID)
	case constants.EventListSubject:
		return h.reader.ListEvents(ctx, req.Actor)
	case constants.EventCreateSubject:
		if req.Event == nil {
			return nil, errs.NewValidation("event payload is required")
		}
		return h.writer.CreateEvent(ctx, req.Actor, req.Event)
	case constants.EventDeleteSubject:
		if err := h.writer.DeleteEvent(ctx, req.Actor, req.EventUID); err != nil {
			return nil, err
		}
		return map[string]string{"deleted": req.EventUID}, nil
	case constants.EventInviteSubject:
		return h.writer.Invite(ctx, req.Actor, req.EventUID, req.Emails)
	case constants.EventScheduleSubject:
		return h.writer.Schedule(ctx, req.Actor, req.EventUID, req.Date, req.Time)
	case constants.EventCloseSubject:
		return h.writer.Close(ctx, req.Actor, req.EventUID)
	case constants.EventReopenSubject:
		return h.writer.Reopen(ctx, req.Actor, req.EventUID)
	case constants.ResponseSubmitSubject:
		if req.Response == nil {
			return nil, errs.NewValidation("response payload is required")
		}
		return h.writer.SubmitResponse(ctx, req.Actor, req.EventUID, req.Response)
	case constants.ResponseListSubject:
		return h.reader.ListResponses(ctx, req.Actor, req.EventUID)
	case constants.HeatmapGetSubject:
		return h.reader.GetHeatmap(ctx, req.Actor, req.EventUID)
	default:
		slog.WarnContext(ctx, "unknown scheduling API subject", "subject", subject)
		return nil, errs.NewValidation(fmt.Sprintf("unknown subject: %s", subject))
	}
}

func (h *SchedulingMessageHandler) respond(ctx context.Context, msg *nats.Msg, result any) error {
	data, err := json.Marshal(result)
	if err != nil {
		slog.ErrorContext(ctx, "failed to marshal scheduling API reply", "error", err, "subject", msg.Subject)
		return h.respondError(ctx, msg, errs.NewUnexpected("failed to marshal reply", err))
	}
	if err := msg.Respond(data); err != nil {
		slog.ErrorContext(ctx, "failed to send scheduling API reply", "error", err, "subject", msg.Subject)
		return err
	}
	return nil
}

func (h *SchedulingMessageHandler) respondError(ctx context.Context, msg *nats.Msg, opErr error) error {
	reply := apiError{
		Error: opErr.Error(),
		Code:  errorCode(opErr),
	}
	data, err := json.Marshal(reply)
	if err != nil {
		return err
	}
	if err := msg.Respond(data); err != nil {
		slog.ErrorContext(ctx, "failed to send scheduling API error reply", "error", err, "subject", msg.Subject)
		return err
	}
	return nil
}

// errorCode maps the error taxonomy onto wire codes so callers can
// branch without parsing messages
func errorCode(err error) string {
	var (
		validation   errs.Validation
		notFound     errs.NotFound
		forbidden    errs.Forbidden
		unauthorized errs.Unauthorized
		conflict     errs.Conflict
		unavailable  errs.ServiceUnavailable
	)
	switch {
	case stderrors.As(err, &validation):
		return "validation"
	case stderrors.As(err, &notFound):
		return "not_found"
	case stderrors.As(err, &forbidden):
		return "forbidden"
	case stderrors.As(err, &unauthorized):
		return "unauthorized"
	case stderrors.As(err, &conflict):
		return "conflict"
	case stderrors.As(err, &unavailable):
		return "unavailable"
	default:
		return "internal"
	}
}
