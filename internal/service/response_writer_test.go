// Copyright The FreeTogether Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freetogether/scheduling-service/internal/domain/model"
	"github.com/freetogether/scheduling-service/internal/infrastructure/mock"
	errs "github.com/freetogether/scheduling-service/pkg/errors"
)

func TestSchedulingWriterOrchestratorSubmitResponse(t *testing.T) {
	ctx := context.Background()
	mockRepo := mock.NewMockRepository()
	writer := newTestWriter(mockRepo)

	tests := []struct {
		name          string
		setupMock     func()
		actor         model.Actor
		eventUID      string
		submission    *model.Response
		expectedError bool
		errorType     error
		validate      func(t *testing.T, response *model.Response)
	}{
		{
			name: "invitee submits slot lists",
			setupMock: func() {
				mockRepo.ClearAll()
				mockRepo.AddEvent(testEvent("event-1", "user-1", "a@example.org"))
			},
			actor:    model.Actor{UserID: "user-2", Email: "a@example.org"},
			eventUID: "event-1",
			submission: &model.Response{
				FreeSlots:  []string{"monday_2024-05-06_14"},
				MaybeSlots: []string{"tuesday_2024-05-07_9"},
			},
			validate: func(t *testing.T, response *model.Response) {
				assert.Equal(t, "event-1", response.EventUID)
				assert.Equal(t, "user-2", response.UserID)
				assert.Equal(t, "a@example.org", response.UserEmail)
				assert.NotZero(t, response.UpdatedAt)

				stored, err := mockRepo.GetResponse(ctx, "event-1", "user-2")
				require.NoError(t, err)
				assert.Equal(t, []string{"monday_2024-05-06_14"}, stored.FreeSlots)
			},
		},
		{
			name: "owner may submit too",
			setupMock: func() {
				mockRepo.ClearAll()
				mockRepo.AddEvent(testEvent("event-1", "user-1"))
			},
			actor:    model.Actor{UserID: "user-1"},
			eventUID: "event-1",
			submission: &model.Response{
				RSVP: &model.RSVPAnswer{Status: model.RSVPYes},
			},
			validate: func(t *testing.T, response *model.Response) {
				assert.Equal(t, "user-1", response.UserID)
				require.NotNil(t, response.RSVP)
			},
		},
		{
			name: "normalization drops maybe keys also submitted as free",
			setupMock: func() {
				mockRepo.ClearAll()
				mockRepo.AddEvent(testEvent("event-1", "user-1", "a@example.org"))
			},
			actor:    model.Actor{UserID: "user-2", Email: "a@example.org"},
			eventUID: "event-1",
			submission: &model.Response{
				FreeSlots:  []string{"monday_14"},
				MaybeSlots: []string{"monday_14", "friday_18"},
			},
			validate: func(t *testing.T, response *model.Response) {
				assert.Equal(t, []string{"monday_14"}, response.FreeSlots)
				assert.Equal(t, []string{"friday_18"}, response.MaybeSlots)
			},
		},
		{
			name: "directory enrichment fills email and display name",
			setupMock: func() {
				mockRepo.ClearAll()
				mockRepo.AddEvent(testEvent("event-1", "user-1", "a@example.org"))
				mockRepo.AddDirectoryUser(&model.DirectoryUser{
					UserID:      "user-2",
					Email:       "alice@example.org",
					DisplayName: "Alice",
				})
			},
			actor:    model.Actor{UserID: "user-2", Email: "a@example.org"},
			eventUID: "event-1",
			submission: &model.Response{
				FreeSlots: []string{"monday_14"},
			},
			validate: func(t *testing.T, response *model.Response) {
				assert.Equal(t, "alice@example.org", response.UserEmail)
				assert.Equal(t, "Alice", response.UserName)
			},
		},
		{
			name: "directory miss falls back to the actor identity",
			setupMock: func() {
				mockRepo.ClearAll()
				mockRepo.AddEvent(testEvent("event-1", "user-1", "a@example.org"))
			},
			actor:    model.Actor{UserID: "user-2", Email: "a@example.org"},
			eventUID: "event-1",
			submission: &model.Response{
				FreeSlots: []string{"monday_14"},
			},
			validate: func(t *testing.T, response *model.Response) {
				assert.Equal(t, "a@example.org", response.UserEmail)
				assert.Equal(t, "a@example.org", response.UserName)
			},
		},
		{
			name: "resolved user without a display name keeps the email placeholder",
			setupMock: func() {
				mockRepo.ClearAll()
				mockRepo.AddEvent(testEvent("event-1", "user-1", "a@example.org"))
				mockRepo.AddDirectoryUser(&model.DirectoryUser{
					UserID: "user-2",
					Email:  "alice@example.org",
				})
			},
			actor:    model.Actor{UserID: "user-2", Email: "a@example.org"},
			eventUID: "event-1",
			submission: &model.Response{
				FreeSlots: []string{"monday_14"},
			},
			validate: func(t *testing.T, response *model.Response) {
				assert.Equal(t, "alice@example.org", response.UserEmail)
				assert.Equal(t, "a@example.org", response.UserName)
			},
		},
		{
			name: "stranger cannot submit",
			setupMock: func() {
				mockRepo.ClearAll()
				mockRepo.AddEvent(testEvent("event-1", "user-1", "a@example.org"))
			},
			actor:    model.Actor{UserID: "user-9", Email: "x@example.org"},
			eventUID: "event-1",
			submission: &model.Response{
				FreeSlots: []string{"monday_14"},
			},
			expectedError: true,
			errorType:     errs.Forbidden{},
		},
		{
			name: "empty submission rejected",
			setupMock: func() {
				mockRepo.ClearAll()
				mockRepo.AddEvent(testEvent("event-1", "user-1", "a@example.org"))
			},
			actor:         model.Actor{UserID: "user-2", Email: "a@example.org"},
			eventUID:      "event-1",
			submission:    &model.Response{},
			expectedError: true,
			errorType:     errs.Validation{},
		},
		{
			name: "missing event surfaces as not found",
			setupMock: func() {
				mockRepo.ClearAll()
			},
			actor:    model.Actor{UserID: "user-2", Email: "a@example.org"},
			eventUID: "nonexistent",
			submission: &model.Response{
				FreeSlots: []string{"monday_14"},
			},
			expectedError: true,
			errorType:     errs.NotFound{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			response, err := writer.SubmitResponse(ctx, tt.actor, tt.eventUID, tt.submission)

			if tt.expectedError {
				require.Error(t, err)
				assert.Nil(t, response)
				if tt.errorType != nil {
					assert.IsType(t, tt.errorType, err)
				}
				return
			}
			require.NoError(t, err)
			require.NotNil(t, response)
			tt.validate(t, response)
		})
	}
}

func TestSchedulingWriterOrchestratorSubmitResponseOverwrites(t *testing.T) {
	ctx := context.Background()
	mockRepo := mock.NewMockRepository()
	writer := newTestWriter(mockRepo)

	mockRepo.ClearAll()
	mockRepo.AddEvent(testEvent("event-1", "user-1", "a@example.org"))
	actor := model.Actor{UserID: "user-2", Email: "a@example.org"}

	first, err := writer.SubmitResponse(ctx, actor, "event-1", &model.Response{
		FreeSlots:  []string{"monday_2024-05-06_14", "tuesday_2024-05-07_9"},
		MaybeSlots: []string{"wednesday_2024-05-08_10"},
	})
	require.NoError(t, err)
	firstUpdatedAt := first.UpdatedAt

	// The resubmission fully replaces the first record, including shapes
	// the second submission does not carry.
	_, err = writer.SubmitResponse(ctx, actor, "event-1", &model.Response{
		RSVP: &model.RSVPAnswer{Status: model.RSVPNo, Comment: "traveling that week"},
	})
	require.NoError(t, err)

	stored, err := mockRepo.GetResponse(ctx, "event-1", "user-2")
	require.NoError(t, err)
	assert.Empty(t, stored.FreeSlots)
	assert.Empty(t, stored.MaybeSlots)
	require.NotNil(t, stored.RSVP)
	assert.Equal(t, model.RSVPNo, stored.RSVP.Status)
	assert.False(t, stored.UpdatedAt.Before(firstUpdatedAt))

	responses, err := mockRepo.ListResponses(ctx, "event-1")
	require.NoError(t, err)
	assert.Len(t, responses, 1)
}
