// Copyright The FreeTogether Authors.
// SPDX-License-Identifier: MIT

package model

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/freetogether/scheduling-service/pkg/constants"
)

// MessageAction is a type for the action of an event resource message
type MessageAction string

// MessageAction constants for the action of an event resource message
const (
	// ActionCreated is the action for a resource creation message
	ActionCreated MessageAction = "created"
	// ActionUpdated is the action for a resource update message
	ActionUpdated MessageAction = "updated"
	// ActionDeleted is the action for a resource deletion message
	ActionDeleted MessageAction = "deleted"
)

// IndexerMessage is a NATS message schema for sending messages related to event CRUD operations
// This message is consumed by indexing services to maintain search indexes
type IndexerMessage struct {
	Action  MessageAction     `json:"action"`
	Headers map[string]string `json:"headers"`
	Data    any               `json:"data"`
	// Tags is a list of tags to be set on the indexed resource for search
	Tags []string `json:"tags"`
}

// Build constructs an indexer message with proper context extraction and data marshaling
func (m *IndexerMessage) Build(ctx context.Context, input any) (*IndexerMessage, error) {
	// Extract headers from context for authorization propagation
	headers := make(map[string]string)
	if authorization, ok := ctx.Value(constants.AuthorizationContextID).(string); ok {
		headers[constants.AuthorizationHeader] = authorization
	}
	if principal, ok := ctx.Value(constants.PrincipalContextID).(string); ok {
		headers[constants.XOnBehalfOfHeader] = principal
	}
	m.Headers = headers

	var payload any

	switch m.Action {
	case ActionCreated, ActionUpdated:
		// For create/update actions, marshal and unmarshal to get a map[string]any
		// that the indexer expects
		data, err := json.Marshal(input)
		if err != nil {
			slog.ErrorContext(ctx, "error marshalling data into JSON", "error", err)
			return nil, err
		}
		var jsonData map[string]any
		if err := json.Unmarshal(data, &jsonData); err != nil {
			slog.ErrorContext(ctx, "error unmarshalling data into JSON", "error", err)
			return nil, err
		}
		payload = jsonData
	case ActionDeleted:
		// For delete actions, the data should just be a string of the UID being deleted
		payload = input
	}

	m.Data = payload
	return m, nil
}

// AccessMessage is the schema for the data in the message sent to the permission
// sync service whenever an event's ownership or invitee set changes.
type AccessMessage struct {
	UID string `json:"uid"`
	// ObjectType is the type of the object that the message is about, e.g. "event"
	ObjectType string `json:"object_type"`
	// Relations maps permission levels to user identifiers: the owner
	// under "owner", invitee emails under "viewer"
	Relations map[string][]string `json:"relations"`
	// References are reserved for future use and intentionally left empty
	References map[string][]string `json:"references"`
}

// NewEventAccessMessage builds the access message for an event from its
// current owner and invitee set.
func NewEventAccessMessage(event *Event) *AccessMessage {
	return &AccessMessage{
		UID:        event.UID,
		ObjectType: constants.ResourceTypeEvent,
		Relations: map[string][]string{
			constants.RelationOwner:  {event.CreatedBy},
			constants.RelationViewer: append([]string(nil), event.Invitees...),
		},
		References: map[string][]string{},
	}
}
