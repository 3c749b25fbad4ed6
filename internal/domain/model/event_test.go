// Copyright The FreeTogether Authors.
// SPDX-License-Identifier: MIT

package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/freetogether/scheduling-service/pkg/errors"
)

func TestEventValidateBasicFields(t *testing.T) {
	tests := []struct {
		name        string
		event       *Event
		expectError bool
	}{
		{
			name: "valid event with date range",
			event: &Event{
				Name:      "team offsite",
				Kind:      KindOnce,
				Timezone:  "Europe/Berlin",
				StartDate: "2024-05-06",
				EndDate:   "2024-05-12",
			},
		},
		{
			name: "valid weekly event without dates",
			event: &Event{
				Name:     "standup",
				Kind:     KindWeekly,
				Timezone: "UTC",
			},
		},
		{
			name: "missing name",
			event: &Event{
				Kind:     KindOnce,
				Timezone: "UTC",
			},
			expectError: true,
		},
		{
			name: "missing kind",
			event: &Event{
				Name:     "team offsite",
				Timezone: "UTC",
			},
			expectError: true,
		},
		{
			name: "unknown kind",
			event: &Event{
				Name:     "team offsite",
				Kind:     "biweekly",
				Timezone: "UTC",
			},
			expectError: true,
		},
		{
			name: "missing timezone",
			event: &Event{
				Name: "team offsite",
				Kind: KindOnce,
			},
			expectError: true,
		},
		{
			name: "start date without end date",
			event: &Event{
				Name:      "team offsite",
				Kind:      KindOnce,
				Timezone:  "UTC",
				StartDate: "2024-05-06",
			},
			expectError: true,
		},
		{
			name: "end date before start date",
			event: &Event{
				Name:      "team offsite",
				Kind:      KindOnce,
				Timezone:  "UTC",
				StartDate: "2024-05-12",
				EndDate:   "2024-05-06",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.event.ValidateBasicFields()
			if tt.expectError {
				require.Error(t, err)
				assert.IsType(t, errs.Validation{}, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestEventSlotUniverse(t *testing.T) {
	tests := []struct {
		name     string
		event    *Event
		validate func(t *testing.T, days []DaySlot)
	}{
		{
			name: "date range expands to dated columns",
			event: &Event{
				StartDate: "2024-05-06",
				EndDate:   "2024-05-08",
			},
			validate: func(t *testing.T, days []DaySlot) {
				require.Len(t, days, 3)
				assert.Equal(t, "2024-05-06", days[0].Date)
				assert.Equal(t, "2024-05-08", days[2].Date)
			},
		},
		{
			name:  "no range falls back to the weekly grid",
			event: &Event{},
			validate: func(t *testing.T, days []DaySlot) {
				require.Len(t, days, 7)
				assert.Equal(t, "monday", days[0].Weekday)
				assert.Empty(t, days[0].Date)
			},
		},
		{
			name: "unparseable stored range falls back to the weekly grid",
			event: &Event{
				StartDate: "garbage",
				EndDate:   "2024-05-08",
			},
			validate: func(t *testing.T, days []DaySlot) {
				require.Len(t, days, 7)
				assert.Empty(t, days[0].Date)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, tt.event.SlotUniverse())
		})
	}
}

func TestEventAccessChecks(t *testing.T) {
	event := &Event{
		CreatedBy: "user-1",
		Invitees:  []string{"a@example.org", "b@example.org"},
	}

	assert.True(t, event.IsOwner("user-1"))
	assert.False(t, event.IsOwner("user-2"))
	assert.True(t, event.IsInvited("a@example.org"))
	assert.False(t, event.IsInvited("c@example.org"))
	assert.False(t, event.IsInvited(""))
}

func TestEventAddInvitee(t *testing.T) {
	event := &Event{}

	assert.True(t, event.AddInvitee("a@example.org"))
	assert.True(t, event.AddInvitee("b@example.org"))
	assert.False(t, event.AddInvitee("a@example.org"))
	assert.Equal(t, []string{"a@example.org", "b@example.org"}, event.Invitees)
}

func TestEventLifecycle(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	t.Run("schedule pins date and time", func(t *testing.T) {
		event := &Event{Status: StatusCollecting}

		err := event.Schedule("2024-05-11", "18:00", now)
		require.NoError(t, err)

		assert.Equal(t, StatusScheduled, event.Status)
		require.NotNil(t, event.ScheduledDate)
		assert.Equal(t, "2024-05-11", *event.ScheduledDate)
		require.NotNil(t, event.ScheduledTime)
		assert.Equal(t, "18:00", *event.ScheduledTime)
		assert.NotNil(t, event.ScheduledAt)
		assert.Equal(t, now, event.UpdatedAt)
	})

	t.Run("schedule requires both date and time", func(t *testing.T) {
		event := &Event{Status: StatusCollecting}

		err := event.Schedule("2024-05-11", "", now)
		require.Error(t, err)
		assert.IsType(t, errs.Validation{}, err)

		err = event.Schedule("", "18:00", now)
		require.Error(t, err)
	})

	t.Run("close keeps scheduled fields", func(t *testing.T) {
		event := &Event{Status: StatusCollecting}
		require.NoError(t, event.Schedule("2024-05-11", "18:00", now))

		event.Close(now)

		assert.Equal(t, StatusClosed, event.Status)
		assert.NotNil(t, event.ClosedAt)
		assert.NotNil(t, event.ScheduledDate)
		assert.NotNil(t, event.ScheduledTime)
	})

	t.Run("reopen clears scheduled fields", func(t *testing.T) {
		event := &Event{Status: StatusCollecting}
		require.NoError(t, event.Schedule("2024-05-11", "18:00", now))

		event.Reopen(now)

		assert.Equal(t, StatusCollecting, event.Status)
		assert.Nil(t, event.ScheduledDate)
		assert.Nil(t, event.ScheduledTime)
		assert.NotNil(t, event.ReopenedAt)
	})

	t.Run("transitions are not constrained by current status", func(t *testing.T) {
		event := &Event{Status: StatusCollecting}

		// Closing straight from collecting is legal.
		event.Close(now)
		assert.Equal(t, StatusClosed, event.Status)

		// So is scheduling a closed event.
		require.NoError(t, event.Schedule("2024-05-11", "18:00", now))
		assert.Equal(t, StatusScheduled, event.Status)
	})
}

func TestEventIndexKeys(t *testing.T) {
	event := &Event{
		UID:       "event-1",
		CreatedBy: "user-1",
	}

	ownerKey := event.OwnerIndexKey()
	assert.Equal(t, IndexDigest("user-1")+"/event-1", ownerKey)

	inviteeKey := event.InviteeIndexKey("a@example.org")
	assert.Equal(t, IndexDigest("a@example.org")+"/event-1", inviteeKey)

	// Digests are deterministic and contain no key-hostile characters.
	assert.Equal(t, IndexDigest("user-1"), IndexDigest("user-1"))
	assert.NotEqual(t, IndexDigest("user-1"), IndexDigest("user-2"))
	assert.Len(t, IndexDigest("a@example.org"), 64)
	assert.NotContains(t, IndexDigest("a@example.org"), "@")
}

func TestEventTags(t *testing.T) {
	tests := []struct {
		name     string
		event    *Event
		expected []string
	}{
		{
			name: "all fields populated",
			event: &Event{
				UID:       "event-1",
				Kind:      KindOnce,
				Status:    StatusCollecting,
				CreatedBy: "user-1",
			},
			expected: []string{
				"event_uid:event-1",
				"kind:once",
				"status:collecting",
				"created_by:user-1",
			},
		},
		{
			name:     "empty event",
			event:    &Event{},
			expected: nil,
		},
		{
			name:     "nil event",
			event:    nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.event.Tags())
		})
	}
}
