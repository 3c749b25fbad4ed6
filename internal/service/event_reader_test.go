// Copyright The FreeTogether Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freetogether/scheduling-service/internal/domain/model"
	"github.com/freetogether/scheduling-service/internal/infrastructure/mock"
	errs "github.com/freetogether/scheduling-service/pkg/errors"
)

func newTestReader(mockRepo *mock.MockRepository) SchedulingReader {
	return NewSchedulingReaderOrchestrator(
		WithEventReader(mock.NewMockEventReaderWriter(mockRepo)),
		WithResponseReader(mock.NewMockResponseReaderWriter(mockRepo)),
	)
}

func testEvent(uid, owner string, invitees ...string) *model.Event {
	return &model.Event{
		UID:       uid,
		Name:      "team offsite",
		Kind:      model.KindOnce,
		Timezone:  "UTC",
		StartDate: "2024-05-06",
		EndDate:   "2024-05-08",
		Invitees:  invitees,
		CreatedBy: owner,
		Status:    model.StatusCollecting,
		CreatedAt: time.Now().Add(-time.Hour),
		UpdatedAt: time.Now(),
	}
}

func TestSchedulingReaderOrchestratorGetEvent(t *testing.T) {
	ctx := context.Background()
	mockRepo := mock.NewMockRepository()
	reader := newTestReader(mockRepo)

	tests := []struct {
		name          string
		setupMock     func()
		actor         model.Actor
		eventUID      string
		expectedError bool
		errorType     error
		validate      func(t *testing.T, event *model.Event)
	}{
		{
			name: "owner can read the event",
			setupMock: func() {
				mockRepo.ClearAll()
				mockRepo.AddEvent(testEvent("event-1", "user-1", "a@example.org"))
			},
			actor:    model.Actor{UserID: "user-1"},
			eventUID: "event-1",
			validate: func(t *testing.T, event *model.Event) {
				require.NotNil(t, event)
				assert.Equal(t, "event-1", event.UID)
				assert.Equal(t, "user-1", event.CreatedBy)
			},
		},
		{
			name: "invitee can read the event",
			setupMock: func() {
				mockRepo.ClearAll()
				mockRepo.AddEvent(testEvent("event-1", "user-1", "a@example.org"))
			},
			actor:    model.Actor{UserID: "user-2", Email: "a@example.org"},
			eventUID: "event-1",
			validate: func(t *testing.T, event *model.Event) {
				require.NotNil(t, event)
				assert.Equal(t, "event-1", event.UID)
			},
		},
		{
			name: "stranger gets forbidden, not not-found",
			setupMock: func() {
				mockRepo.ClearAll()
				mockRepo.AddEvent(testEvent("event-1", "user-1", "a@example.org"))
			},
			actor:         model.Actor{UserID: "user-3", Email: "c@example.org"},
			eventUID:      "event-1",
			expectedError: true,
			errorType:     errs.Forbidden{},
		},
		{
			name: "missing event surfaces as not found",
			setupMock: func() {
				mockRepo.ClearAll()
			},
			actor:         model.Actor{UserID: "user-1"},
			eventUID:      "nonexistent",
			expectedError: true,
			errorType:     errs.NotFound{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			event, err := reader.GetEvent(ctx, tt.actor, tt.eventUID)

			if tt.expectedError {
				require.Error(t, err)
				assert.Nil(t, event)
				if tt.errorType != nil {
					assert.IsType(t, tt.errorType, err)
				}
				return
			}
			require.NoError(t, err)
			tt.validate(t, event)
		})
	}
}

func TestSchedulingReaderOrchestratorListEvents(t *testing.T) {
	ctx := context.Background()
	mockRepo := mock.NewMockRepository()
	reader := newTestReader(mockRepo)

	tests := []struct {
		name      string
		setupMock func()
		actor     model.Actor
		validate  func(t *testing.T, events []*model.Event)
	}{
		{
			name: "owned and invited events merge without duplicates",
			setupMock: func() {
				mockRepo.ClearAll()
				// Owned only.
				mockRepo.AddEvent(testEvent("event-1", "user-1"))
				// Invited only.
				mockRepo.AddEvent(testEvent("event-2", "user-2", "me@example.org"))
				// Owned and invited: must appear once.
				mockRepo.AddEvent(testEvent("event-3", "user-1", "me@example.org"))
				// Unrelated.
				mockRepo.AddEvent(testEvent("event-4", "user-2", "other@example.org"))
			},
			actor: model.Actor{UserID: "user-1", Email: "me@example.org"},
			validate: func(t *testing.T, events []*model.Event) {
				require.Len(t, events, 3)
				assert.Equal(t, "event-1", events[0].UID)
				assert.Equal(t, "event-2", events[1].UID)
				assert.Equal(t, "event-3", events[2].UID)
			},
		},
		{
			name: "actor without email only sees owned events",
			setupMock: func() {
				mockRepo.ClearAll()
				mockRepo.AddEvent(testEvent("event-1", "user-1"))
				mockRepo.AddEvent(testEvent("event-2", "user-2", "me@example.org"))
			},
			actor: model.Actor{UserID: "user-1"},
			validate: func(t *testing.T, events []*model.Event) {
				require.Len(t, events, 1)
				assert.Equal(t, "event-1", events[0].UID)
			},
		},
		{
			name: "no events yields an empty list",
			setupMock: func() {
				mockRepo.ClearAll()
			},
			actor: model.Actor{UserID: "user-1", Email: "me@example.org"},
			validate: func(t *testing.T, events []*model.Event) {
				assert.Empty(t, events)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			events, err := reader.ListEvents(ctx, tt.actor)

			require.NoError(t, err)
			tt.validate(t, events)
		})
	}
}

func TestSchedulingReaderOrchestratorListResponses(t *testing.T) {
	ctx := context.Background()
	mockRepo := mock.NewMockRepository()
	reader := newTestReader(mockRepo)

	tests := []struct {
		name          string
		setupMock     func()
		actor         model.Actor
		eventUID      string
		expectedError bool
		errorType     error
		validate      func(t *testing.T, responses []*model.Response)
	}{
		{
			name: "invitee lists all responses of the event",
			setupMock: func() {
				mockRepo.ClearAll()
				mockRepo.AddEvent(testEvent("event-1", "user-1", "a@example.org"))
				mockRepo.AddResponse(&model.Response{
					EventUID:  "event-1",
					UserID:    "user-2",
					FreeSlots: []string{"monday_2024-05-06_14"},
				})
				mockRepo.AddResponse(&model.Response{
					EventUID: "event-1",
					UserID:   "user-3",
					RSVP:     &model.RSVPAnswer{Status: model.RSVPYes},
				})
				// Belongs to another event, must not leak.
				mockRepo.AddResponse(&model.Response{
					EventUID:  "event-2",
					UserID:    "user-2",
					FreeSlots: []string{"monday_14"},
				})
			},
			actor:    model.Actor{UserID: "user-2", Email: "a@example.org"},
			eventUID: "event-1",
			validate: func(t *testing.T, responses []*model.Response) {
				require.Len(t, responses, 2)
				for _, response := range responses {
					assert.Equal(t, "event-1", response.EventUID)
				}
			},
		},
		{
			name: "stranger cannot list responses",
			setupMock: func() {
				mockRepo.ClearAll()
				mockRepo.AddEvent(testEvent("event-1", "user-1", "a@example.org"))
			},
			actor:         model.Actor{UserID: "user-9", Email: "x@example.org"},
			eventUID:      "event-1",
			expectedError: true,
			errorType:     errs.Forbidden{},
		},
		{
			name: "missing event surfaces as not found",
			setupMock: func() {
				mockRepo.ClearAll()
			},
			actor:         model.Actor{UserID: "user-1"},
			eventUID:      "nonexistent",
			expectedError: true,
			errorType:     errs.NotFound{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			responses, err := reader.ListResponses(ctx, tt.actor, tt.eventUID)

			if tt.expectedError {
				require.Error(t, err)
				assert.Nil(t, responses)
				if tt.errorType != nil {
					assert.IsType(t, tt.errorType, err)
				}
				return
			}
			require.NoError(t, err)
			tt.validate(t, responses)
		})
	}
}
