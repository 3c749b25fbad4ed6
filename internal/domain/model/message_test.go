// Copyright The FreeTogether Authors.
// SPDX-License-Identifier: MIT

package model

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freetogether/scheduling-service/pkg/constants"
)

func TestIndexerMessage_Build(t *testing.T) {
	tests := []struct {
		name        string
		message     *IndexerMessage
		context     func() context.Context
		input       any
		expectError bool
		validate    func(t *testing.T, result *IndexerMessage, err error)
	}{
		{
			name: "build create action with context headers",
			message: &IndexerMessage{
				Action: ActionCreated,
				Tags:   []string{"event_uid:event-1"},
			},
			context: func() context.Context {
				ctx := context.Background()
				ctx = context.WithValue(ctx, constants.AuthorizationContextID, "Bearer token123")
				ctx = context.WithValue(ctx, constants.PrincipalContextID, "user-1")
				return ctx
			},
			input: &Event{
				UID:  "event-1",
				Name: "team offsite",
			},
			validate: func(t *testing.T, result *IndexerMessage, err error) {
				require.NoError(t, err)
				require.NotNil(t, result)

				assert.Equal(t, ActionCreated, result.Action)
				assert.Equal(t, []string{"event_uid:event-1"}, result.Tags)

				// Headers extracted from context
				assert.Equal(t, "Bearer token123", result.Headers[constants.AuthorizationHeader])
				assert.Equal(t, "user-1", result.Headers[constants.XOnBehalfOfHeader])

				// Data marshaled into the map form the indexer expects
				dataMap, ok := result.Data.(map[string]any)
				require.True(t, ok, "Data should be a map[string]any")
				assert.Equal(t, "event-1", dataMap["uid"])
				assert.Equal(t, "team offsite", dataMap["name"])
			},
		},
		{
			name: "build update action without context headers",
			message: &IndexerMessage{
				Action: ActionUpdated,
			},
			context: context.Background,
			input: &Event{
				UID:    "event-2",
				Status: StatusScheduled,
			},
			validate: func(t *testing.T, result *IndexerMessage, err error) {
				require.NoError(t, err)

				assert.Empty(t, result.Headers)
				dataMap, ok := result.Data.(map[string]any)
				require.True(t, ok)
				assert.Equal(t, "event-2", dataMap["uid"])
				assert.Equal(t, "scheduled", dataMap["status"])
			},
		},
		{
			name: "build delete action keeps the bare UID",
			message: &IndexerMessage{
				Action: ActionDeleted,
			},
			context: context.Background,
			input:   "event-3",
			validate: func(t *testing.T, result *IndexerMessage, err error) {
				require.NoError(t, err)
				assert.Equal(t, "event-3", result.Data)
			},
		},
		{
			name: "build create action with unmarshalable input",
			message: &IndexerMessage{
				Action: ActionCreated,
			},
			context:     context.Background,
			input:       make(chan int),
			expectError: true,
			validate: func(t *testing.T, result *IndexerMessage, err error) {
				require.Error(t, err)
				assert.Nil(t, result)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tt.message.Build(tt.context(), tt.input)
			if tt.expectError {
				require.Error(t, err)
			}
			tt.validate(t, result, err)
		})
	}
}

func TestNewEventAccessMessage(t *testing.T) {
	event := &Event{
		UID:       "event-1",
		CreatedBy: "user-1",
		Invitees:  []string{"a@example.org", "b@example.org"},
	}

	message := NewEventAccessMessage(event)

	assert.Equal(t, "event-1", message.UID)
	assert.Equal(t, constants.ResourceTypeEvent, message.ObjectType)
	assert.Equal(t, []string{"user-1"}, message.Relations[constants.RelationOwner])
	assert.Equal(t, []string{"a@example.org", "b@example.org"}, message.Relations[constants.RelationViewer])
	assert.NotNil(t, message.References)
	assert.Empty(t, message.References)

	// The invitee slice is copied, not aliased.
	message.Relations[constants.RelationViewer][0] = "mutated"
	assert.Equal(t, "a@example.org", event.Invitees[0])
}
