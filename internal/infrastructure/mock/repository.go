// Copyright The FreeTogether Authors.
// SPDX-License-Identifier: MIT

package mock

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/freetogether/scheduling-service/internal/domain/model"
	"github.com/freetogether/scheduling-service/internal/domain/port"
	"github.com/freetogether/scheduling-service/pkg/errors"
)

// Global mock repository instance to share data between all repositories
var (
	globalMockRepo     *MockRepository
	globalMockRepoOnce = &sync.Once{}
)

// MockRepository provides a mock implementation of all repository interfaces for testing
type MockRepository struct {
	events          map[string]*model.Event    // UID -> event
	eventRevisions  map[string]uint64          // UID -> revision
	responses       map[string]*model.Response // eventUID/userID -> response
	usersByID       map[string]*model.DirectoryUser
	usersByEmail    map[string]*model.DirectoryUser
	mu              sync.RWMutex // Protect concurrent access to maps
}

// NewMockRepository returns the shared mock repository instance
func NewMockRepository() *MockRepository {
	globalMockRepoOnce.Do(func() {
		globalMockRepo = &MockRepository{
			events:         make(map[string]*model.Event),
			eventRevisions: make(map[string]uint64),
			responses:      make(map[string]*model.Response),
			usersByID:      make(map[string]*model.DirectoryUser),
			usersByEmail:   make(map[string]*model.DirectoryUser),
		}
	})
	return globalMockRepo
}

func responseKey(eventUID, userID string) string {
	return fmt.Sprintf("%s/%s", eventUID, userID)
}

// ==================== EVENT READER OPERATIONS ====================

// GetEvent retrieves an event by UID with its revision
func (m *MockRepository) GetEvent(ctx context.Context, uid string) (*model.Event, uint64, error) {
	slog.DebugContext(ctx, "mock repository: getting event", "event_uid", uid)

	m.mu.RLock()
	defer m.mu.RUnlock()

	event, exists := m.events[uid]
	if !exists {
		return nil, 0, errors.NewNotFound("event not found")
	}

	eventCopy := *event
	eventCopy.Invitees = append([]string(nil), event.Invitees...)
	return &eventCopy, m.eventRevisions[uid], nil
}

// ListEventsByOwner retrieves all events created by the given user
func (m *MockRepository) ListEventsByOwner(ctx context.Context, userID string) ([]*model.Event, error) {
	slog.DebugContext(ctx, "mock repository: listing events by owner", "user_id", userID)

	m.mu.RLock()
	defer m.mu.RUnlock()

	var events []*model.Event
	for _, event := range m.events {
		if event.IsOwner(userID) {
			eventCopy := *event
			events = append(events, &eventCopy)
		}
	}
	return events, nil
}

// ListEventsByInvitee retrieves all events whose invitee set contains the given email
func (m *MockRepository) ListEventsByInvitee(ctx context.Context, email string) ([]*model.Event, error) {
	slog.DebugContext(ctx, "mock repository: listing events by invitee", "email", email)

	m.mu.RLock()
	defer m.mu.RUnlock()

	var events []*model.Event
	for _, event := range m.events {
		if event.IsInvited(email) {
			eventCopy := *event
			events = append(events, &eventCopy)
		}
	}
	return events, nil
}

// IsReady always reports ready for the mock
func (m *MockRepository) IsReady(ctx context.Context) error {
	return nil
}

// ==================== EVENT WRITER OPERATIONS ====================

// CreateEvent stores a new event with revision 1
func (m *MockRepository) CreateEvent(ctx context.Context, event *model.Event) (*model.Event, uint64, error) {
	slog.DebugContext(ctx, "mock repository: creating event", "event_uid", event.UID)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.events[event.UID]; exists {
		return nil, 0, errors.NewConflict("event already exists")
	}

	eventCopy := *event
	eventCopy.Invitees = append([]string(nil), event.Invitees...)
	m.events[event.UID] = &eventCopy
	m.eventRevisions[event.UID] = 1

	return event, 1, nil
}

// UpdateEvent replaces an event, guarded by the expected revision
func (m *MockRepository) UpdateEvent(ctx context.Context, event *model.Event, expectedRevision uint64) (*model.Event, uint64, error) {
	slog.DebugContext(ctx, "mock repository: updating event",
		"event_uid", event.UID,
		"expected_revision", expectedRevision)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.events[event.UID]; !exists {
		return nil, 0, errors.NewNotFound("event not found")
	}
	if m.eventRevisions[event.UID] != expectedRevision {
		return nil, 0, errors.NewConflict("event was modified concurrently")
	}

	eventCopy := *event
	eventCopy.Invitees = append([]string(nil), event.Invitees...)
	m.events[event.UID] = &eventCopy
	m.eventRevisions[event.UID] = expectedRevision + 1

	return event, expectedRevision + 1, nil
}

// DeleteEvent removes an event, guarded by the expected revision
func (m *MockRepository) DeleteEvent(ctx context.Context, event *model.Event, expectedRevision uint64) error {
	slog.DebugContext(ctx, "mock repository: deleting event",
		"event_uid", event.UID,
		"expected_revision", expectedRevision)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.events[event.UID]; !exists {
		return errors.NewNotFound("event not found")
	}
	if m.eventRevisions[event.UID] != expectedRevision {
		return errors.NewConflict("event was modified concurrently")
	}

	delete(m.events, event.UID)
	delete(m.eventRevisions, event.UID)
	return nil
}

// ==================== RESPONSE OPERATIONS ====================

// GetResponse retrieves one respondent's record for an event
func (m *MockRepository) GetResponse(ctx context.Context, eventUID, userID string) (*model.Response, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	response, exists := m.responses[responseKey(eventUID, userID)]
	if !exists {
		return nil, errors.NewNotFound("response not found")
	}

	responseCopy := *response
	return &responseCopy, nil
}

// ListResponses retrieves all responses belonging to an event
func (m *MockRepository) ListResponses(ctx context.Context, eventUID string) ([]*model.Response, error) {
	slog.DebugContext(ctx, "mock repository: listing responses", "event_uid", eventUID)

	m.mu.RLock()
	defer m.mu.RUnlock()

	var responses []*model.Response
	for _, response := range m.responses {
		if response.EventUID == eventUID {
			responseCopy := *response
			responses = append(responses, &responseCopy)
		}
	}
	return responses, nil
}

// PutResponse stores a respondent's record, overwriting any prior record
func (m *MockRepository) PutResponse(ctx context.Context, response *model.Response) error {
	slog.DebugContext(ctx, "mock repository: storing response",
		"event_uid", response.EventUID,
		"user_id", response.UserID)

	m.mu.Lock()
	defer m.mu.Unlock()

	responseCopy := *response
	m.responses[responseKey(response.EventUID, response.UserID)] = &responseCopy
	return nil
}

// DeleteResponsesForEvent removes every response belonging to an event
func (m *MockRepository) DeleteResponsesForEvent(ctx context.Context, eventUID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key, response := range m.responses {
		if response.EventUID == eventUID {
			delete(m.responses, key)
		}
	}
	return nil
}

// ==================== USER DIRECTORY OPERATIONS ====================

// ResolveByID resolves a user ID to email and display name
func (m *MockRepository) ResolveByID(ctx context.Context, userID string) (*model.DirectoryUser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, exists := m.usersByID[userID]
	if !exists {
		return nil, errors.NewNotFound("user not found")
	}
	userCopy := *user
	return &userCopy, nil
}

// ResolveByEmail resolves an email address to user ID and display name
func (m *MockRepository) ResolveByEmail(ctx context.Context, email string) (*model.DirectoryUser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, exists := m.usersByEmail[email]
	if !exists {
		return nil, errors.NewNotFound("user not found")
	}
	userCopy := *user
	return &userCopy, nil
}

// ==================== TEST HELPERS ====================

// AddEvent adds an event to the mock repository (useful for test setup)
func (m *MockRepository) AddEvent(event *model.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	eventCopy := *event
	eventCopy.Invitees = append([]string(nil), event.Invitees...)
	m.events[event.UID] = &eventCopy
	if m.eventRevisions[event.UID] == 0 {
		m.eventRevisions[event.UID] = 1
	}
}

// AddResponse adds a response to the mock repository (useful for test setup)
func (m *MockRepository) AddResponse(response *model.Response) {
	m.mu.Lock()
	defer m.mu.Unlock()

	responseCopy := *response
	m.responses[responseKey(response.EventUID, response.UserID)] = &responseCopy
}

// AddDirectoryUser adds a user to the mock directory (useful for test setup)
func (m *MockRepository) AddDirectoryUser(user *model.DirectoryUser) {
	m.mu.Lock()
	defer m.mu.Unlock()

	userCopy := *user
	m.usersByID[user.UserID] = &userCopy
	if user.Email != "" {
		m.usersByEmail[user.Email] = &userCopy
	}
}

// GetEventCount returns the total number of stored events
func (m *MockRepository) GetEventCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.events)
}

// ClearAll clears all mock data (useful for testing)
func (m *MockRepository) ClearAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.events = make(map[string]*model.Event)
	m.eventRevisions = make(map[string]uint64)
	m.responses = make(map[string]*model.Response)
	m.usersByID = make(map[string]*model.DirectoryUser)
	m.usersByEmail = make(map[string]*model.DirectoryUser)
}

// ==================== CONSTRUCTORS ====================

// NewMockEventReaderWriter creates an event repository backed by the mock
func NewMockEventReaderWriter(mock *MockRepository) port.EventReaderWriter {
	return mock
}

// NewMockResponseReaderWriter creates a response repository backed by the mock
func NewMockResponseReaderWriter(mock *MockRepository) port.ResponseReaderWriter {
	return mock
}

// NewMockUserDirectory creates a user directory backed by the mock
func NewMockUserDirectory(mock *MockRepository) port.UserDirectory {
	return mock
}
