// Copyright The FreeTogether Authors.
// SPDX-License-Identifier: MIT

package mock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freetogether/scheduling-service/internal/domain/model"
	errs "github.com/freetogether/scheduling-service/pkg/errors"
)

func mockEvent(uid, owner string, invitees ...string) *model.Event {
	return &model.Event{
		UID:       uid,
		Name:      "team offsite",
		Kind:      model.KindOnce,
		Timezone:  "UTC",
		Invitees:  invitees,
		CreatedBy: owner,
		Status:    model.StatusCollecting,
	}
}

func TestMockRepositoryEventCAS(t *testing.T) {
	ctx := context.Background()
	mockRepo := NewMockRepository()

	t.Run("create assigns revision 1", func(t *testing.T) {
		mockRepo.ClearAll()

		_, revision, err := mockRepo.CreateEvent(ctx, mockEvent("event-1", "user-1"))
		require.NoError(t, err)
		assert.Equal(t, uint64(1), revision)

		_, revision, err = mockRepo.GetEvent(ctx, "event-1")
		require.NoError(t, err)
		assert.Equal(t, uint64(1), revision)
	})

	t.Run("create rejects duplicate UIDs", func(t *testing.T) {
		mockRepo.ClearAll()

		_, _, err := mockRepo.CreateEvent(ctx, mockEvent("event-1", "user-1"))
		require.NoError(t, err)

		_, _, err = mockRepo.CreateEvent(ctx, mockEvent("event-1", "user-2"))
		require.Error(t, err)
		assert.IsType(t, errs.Conflict{}, err)
	})

	t.Run("update with the current revision succeeds and bumps it", func(t *testing.T) {
		mockRepo.ClearAll()

		event, revision, err := mockRepo.CreateEvent(ctx, mockEvent("event-1", "user-1"))
		require.NoError(t, err)

		event.Name = "renamed"
		_, newRevision, err := mockRepo.UpdateEvent(ctx, event, revision)
		require.NoError(t, err)
		assert.Equal(t, revision+1, newRevision)

		stored, storedRevision, err := mockRepo.GetEvent(ctx, "event-1")
		require.NoError(t, err)
		assert.Equal(t, "renamed", stored.Name)
		assert.Equal(t, newRevision, storedRevision)
	})

	t.Run("update with a stale revision conflicts", func(t *testing.T) {
		mockRepo.ClearAll()

		event, revision, err := mockRepo.CreateEvent(ctx, mockEvent("event-1", "user-1"))
		require.NoError(t, err)

		_, _, err = mockRepo.UpdateEvent(ctx, event, revision)
		require.NoError(t, err)

		// The first update consumed the revision; retrying with it races.
		_, _, err = mockRepo.UpdateEvent(ctx, event, revision)
		require.Error(t, err)
		assert.IsType(t, errs.Conflict{}, err)
	})

	t.Run("delete with a stale revision conflicts", func(t *testing.T) {
		mockRepo.ClearAll()

		event, revision, err := mockRepo.CreateEvent(ctx, mockEvent("event-1", "user-1"))
		require.NoError(t, err)

		err = mockRepo.DeleteEvent(ctx, event, revision+1)
		require.Error(t, err)
		assert.IsType(t, errs.Conflict{}, err)

		err = mockRepo.DeleteEvent(ctx, event, revision)
		require.NoError(t, err)

		_, _, err = mockRepo.GetEvent(ctx, "event-1")
		require.Error(t, err)
		assert.IsType(t, errs.NotFound{}, err)
	})

	t.Run("update of a missing event is not found", func(t *testing.T) {
		mockRepo.ClearAll()

		_, _, err := mockRepo.UpdateEvent(ctx, mockEvent("ghost", "user-1"), 1)
		require.Error(t, err)
		assert.IsType(t, errs.NotFound{}, err)
	})
}

func TestMockRepositoryEventCopies(t *testing.T) {
	ctx := context.Background()
	mockRepo := NewMockRepository()
	mockRepo.ClearAll()

	_, _, err := mockRepo.CreateEvent(ctx, mockEvent("event-1", "user-1", "a@example.org"))
	require.NoError(t, err)

	// Mutating a returned event must not leak into the stored copy.
	first, _, err := mockRepo.GetEvent(ctx, "event-1")
	require.NoError(t, err)
	first.Name = "mutated"
	first.Invitees[0] = "mutated@example.org"

	second, _, err := mockRepo.GetEvent(ctx, "event-1")
	require.NoError(t, err)
	assert.Equal(t, "team offsite", second.Name)
	assert.Equal(t, []string{"a@example.org"}, second.Invitees)
}

func TestMockRepositoryResponses(t *testing.T) {
	ctx := context.Background()
	mockRepo := NewMockRepository()

	t.Run("put overwrites by event and user", func(t *testing.T) {
		mockRepo.ClearAll()

		require.NoError(t, mockRepo.PutResponse(ctx, &model.Response{
			EventUID:  "event-1",
			UserID:    "user-2",
			FreeSlots: []string{"monday_14"},
		}))
		require.NoError(t, mockRepo.PutResponse(ctx, &model.Response{
			EventUID:   "event-1",
			UserID:     "user-2",
			MaybeSlots: []string{"friday_18"},
		}))

		responses, err := mockRepo.ListResponses(ctx, "event-1")
		require.NoError(t, err)
		require.Len(t, responses, 1)
		assert.Empty(t, responses[0].FreeSlots)
		assert.Equal(t, []string{"friday_18"}, responses[0].MaybeSlots)
	})

	t.Run("delete removes only the event's responses", func(t *testing.T) {
		mockRepo.ClearAll()

		require.NoError(t, mockRepo.PutResponse(ctx, &model.Response{EventUID: "event-1", UserID: "user-2"}))
		require.NoError(t, mockRepo.PutResponse(ctx, &model.Response{EventUID: "event-1", UserID: "user-3"}))
		require.NoError(t, mockRepo.PutResponse(ctx, &model.Response{EventUID: "event-2", UserID: "user-2"}))

		require.NoError(t, mockRepo.DeleteResponsesForEvent(ctx, "event-1"))

		responses, err := mockRepo.ListResponses(ctx, "event-1")
		require.NoError(t, err)
		assert.Empty(t, responses)

		responses, err = mockRepo.ListResponses(ctx, "event-2")
		require.NoError(t, err)
		assert.Len(t, responses, 1)
	})

	t.Run("get missing response is not found", func(t *testing.T) {
		mockRepo.ClearAll()

		_, err := mockRepo.GetResponse(ctx, "event-1", "user-2")
		require.Error(t, err)
		assert.IsType(t, errs.NotFound{}, err)
	})
}

func TestMockRepositoryUserDirectory(t *testing.T) {
	ctx := context.Background()
	mockRepo := NewMockRepository()
	mockRepo.ClearAll()

	mockRepo.AddDirectoryUser(&model.DirectoryUser{
		UserID:      "user-1",
		Email:       "alice@example.org",
		DisplayName: "Alice",
	})

	user, err := mockRepo.ResolveByID(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.org", user.Email)

	user, err = mockRepo.ResolveByEmail(ctx, "alice@example.org")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.UserID)

	_, err = mockRepo.ResolveByID(ctx, "ghost")
	require.Error(t, err)
	assert.IsType(t, errs.NotFound{}, err)

	_, err = mockRepo.ResolveByEmail(ctx, "ghost@example.org")
	require.Error(t, err)
	assert.IsType(t, errs.NotFound{}, err)
}
