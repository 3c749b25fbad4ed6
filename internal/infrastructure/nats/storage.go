// Copyright The FreeTogether Authors.
// SPDX-License-Identifier: MIT

package nats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/freetogether/scheduling-service/internal/domain/model"
	"github.com/freetogether/scheduling-service/internal/domain/port"
	"github.com/freetogether/scheduling-service/pkg/constants"
	errs "github.com/freetogether/scheduling-service/pkg/errors"

	"github.com/nats-io/nats.go/jetstream"
)

type storage struct {
	client *NATSClient
}

// GetEvent retrieves a single event by UID and returns the document revision
func (s *storage) GetEvent(ctx context.Context, uid string) (*model.Event, uint64, error) {
	slog.DebugContext(ctx, "nats storage: getting event",
		"event_uid", uid)

	event := &model.Event{}
	rev, err := s.get(ctx, constants.KVBucketNameEvents, uid, event)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			slog.DebugContext(ctx, "event not found", "event_uid", uid, "error", err)
			return nil, 0, errs.NewNotFound("event not found")
		}
		slog.ErrorContext(ctx, "failed to get event", "error", err, "event_uid", uid)
		return nil, 0, errs.NewServiceUnavailable("failed to get event")
	}

	slog.DebugContext(ctx, "nats storage: event retrieved",
		"event_uid", uid,
		"status", event.Status,
		"revision", rev)

	return event, rev, nil
}

// ListEventsByOwner retrieves all events created by the given user via
// the owner lookup index
func (s *storage) ListEventsByOwner(ctx context.Context, userID string) ([]*model.Event, error) {
	if userID == "" {
		return nil, errs.NewValidation("user ID cannot be empty")
	}
	prefix := fmt.Sprintf(constants.KVLookupEventOwnerPrefix, model.IndexDigest(userID)) + "/"
	return s.listEventsByIndex(ctx, prefix)
}

// ListEventsByInvitee retrieves all events whose invitee set contains the
// given email via the invitee lookup index
func (s *storage) ListEventsByInvitee(ctx context.Context, email string) ([]*model.Event, error) {
	if email == "" {
		return nil, errs.NewValidation("email cannot be empty")
	}
	prefix := fmt.Sprintf(constants.KVLookupEventInviteePrefix, model.IndexDigest(email)) + "/"
	return s.listEventsByIndex(ctx, prefix)
}

// listEventsByIndex scans the events bucket for index keys matching the
// prefix and fetches the event each one points at. Index keys embed the
// event UID as their last path segment.
func (s *storage) listEventsByIndex(ctx context.Context, prefix string) ([]*model.Event, error) {
	keys, err := s.keysWithPrefix(ctx, constants.KVBucketNameEvents, prefix)
	if err != nil {
		return nil, err
	}

	events := make([]*model.Event, 0, len(keys))
	for _, key := range keys {
		uid := key[strings.LastIndex(key, "/")+1:]
		event, _, errGet := s.GetEvent(ctx, uid)
		if errGet != nil {
			// A stale index entry pointing at a deleted event is not an
			// error for the listing as a whole.
			var notFound errs.NotFound
			if errors.As(errGet, &notFound) {
				slog.WarnContext(ctx, "stale index entry skipped", "key", key, "event_uid", uid)
				continue
			}
			return nil, errGet
		}
		events = append(events, event)
	}

	return events, nil
}

// keysWithPrefix lists the keys of a bucket and keeps those matching the
// prefix. Index keys use "/" separators, which are literal characters in
// the underlying subjects, so subject wildcards cannot do this server-side.
func (s *storage) keysWithPrefix(ctx context.Context, bucket, prefix string) ([]string, error) {
	kv, exists := s.client.kvStore[bucket]
	if !exists || kv == nil {
		return nil, errs.NewServiceUnavailable("KV bucket not available")
	}

	lister, err := kv.ListKeys(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list keys", "error", err, "bucket", bucket)
		return nil, errs.NewServiceUnavailable("failed to list keys", err)
	}
	defer func() {
		if errStop := lister.Stop(); errStop != nil {
			slog.WarnContext(ctx, "failed to stop key lister", "error", errStop, "bucket", bucket)
		}
	}()

	var keys []string
	for key := range lister.Keys() {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}

	return keys, nil
}

// CreateEvent stores a new event document and its lookup indices
func (s *storage) CreateEvent(ctx context.Context, event *model.Event) (*model.Event, uint64, error) {
	slog.DebugContext(ctx, "nats storage: creating event",
		"event_uid", event.UID,
		"event_kind", event.Kind)

	rev, err := s.put(ctx, constants.KVBucketNameEvents, event.UID, event)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create event", "error", err, "event_uid", event.UID)
		return nil, 0, errs.NewServiceUnavailable("failed to create event")
	}

	if err := s.createEventIndices(ctx, event); err != nil {
		return nil, 0, err
	}

	slog.DebugContext(ctx, "nats storage: event created",
		"event_uid", event.UID,
		"revision", rev)

	return event, rev, nil
}

// UpdateEvent replaces an event document, guarded by the expected revision.
// Index keys for any newly added invitees are created as well.
func (s *storage) UpdateEvent(ctx context.Context, event *model.Event, expectedRevision uint64) (*model.Event, uint64, error) {
	slog.DebugContext(ctx, "nats storage: updating event",
		"event_uid", event.UID,
		"expected_revision", expectedRevision)

	rev, err := s.putWithRevision(ctx, constants.KVBucketNameEvents, event.UID, event, expectedRevision)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyExists) {
			slog.WarnContext(ctx, "event revision mismatch", "event_uid", event.UID, "expected_revision", expectedRevision)
			return nil, 0, errs.NewConflict("event was modified concurrently")
		}
		slog.ErrorContext(ctx, "failed to update event", "error", err, "event_uid", event.UID)
		return nil, 0, errs.NewServiceUnavailable("failed to update event")
	}

	if err := s.createEventIndices(ctx, event); err != nil {
		return nil, 0, err
	}

	slog.DebugContext(ctx, "nats storage: event updated",
		"event_uid", event.UID,
		"revision", rev)

	return event, rev, nil
}

// createEventIndices creates the owner and invitee lookup keys for an
// event. Keys that already exist are left alone, so the method is safe to
// call on every write.
func (s *storage) createEventIndices(ctx context.Context, event *model.Event) error {
	kv, exists := s.client.kvStore[constants.KVBucketNameEvents]
	if !exists || kv == nil {
		return errs.NewServiceUnavailable("KV bucket not available")
	}

	indexKeys := []string{
		fmt.Sprintf(constants.KVLookupEventOwnerPrefix, event.OwnerIndexKey()),
	}
	for _, email := range event.Invitees {
		indexKeys = append(indexKeys, fmt.Sprintf(constants.KVLookupEventInviteePrefix, event.InviteeIndexKey(email)))
	}

	for _, key := range indexKeys {
		if _, err := kv.Create(ctx, key, []byte(event.UID)); err != nil {
			if errors.Is(err, jetstream.ErrKeyExists) {
				continue
			}
			slog.ErrorContext(ctx, "failed to create lookup index", "error", err, "key", key)
			return errs.NewServiceUnavailable("failed to create lookup index")
		}
	}

	return nil
}

// DeleteEvent removes an event document and its lookup indices, guarded
// by the expected revision. Child responses are deleted separately
// through the response writer.
func (s *storage) DeleteEvent(ctx context.Context, event *model.Event, expectedRevision uint64) error {
	slog.DebugContext(ctx, "nats storage: deleting event",
		"event_uid", event.UID,
		"expected_revision", expectedRevision)

	if err := s.delete(ctx, constants.KVBucketNameEvents, event.UID, expectedRevision); err != nil {
		slog.ErrorContext(ctx, "failed to delete event", "error", err, "event_uid", event.UID)
		return errs.NewServiceUnavailable("failed to delete event")
	}

	kv := s.client.kvStore[constants.KVBucketNameEvents]
	indexKeys := []string{
		fmt.Sprintf(constants.KVLookupEventOwnerPrefix, event.OwnerIndexKey()),
	}
	for _, email := range event.Invitees {
		indexKeys = append(indexKeys, fmt.Sprintf(constants.KVLookupEventInviteePrefix, event.InviteeIndexKey(email)))
	}
	for _, key := range indexKeys {
		if err := kv.Delete(ctx, key); err != nil && !errors.Is(err, jetstream.ErrKeyNotFound) {
			slog.WarnContext(ctx, "failed to delete lookup index", "error", err, "key", key)
		}
	}

	slog.DebugContext(ctx, "nats storage: event deleted",
		"event_uid", event.UID)

	return nil
}

// GetResponse retrieves one respondent's record for an event
func (s *storage) GetResponse(ctx context.Context, eventUID, userID string) (*model.Response, error) {
	key := fmt.Sprintf(constants.KVResponseKeyFormat, eventUID, userID)

	slog.DebugContext(ctx, "nats storage: getting response",
		"event_uid", eventUID,
		"user_id", userID)

	response := &model.Response{}
	_, err := s.get(ctx, constants.KVBucketNameResponses, key, response)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, errs.NewNotFound("response not found")
		}
		slog.ErrorContext(ctx, "failed to get response", "error", err, "event_uid", eventUID, "user_id", userID)
		return nil, errs.NewServiceUnavailable("failed to get response")
	}

	return response, nil
}

// ListResponses retrieves all responses belonging to an event via a
// prefix scan over the responses bucket
func (s *storage) ListResponses(ctx context.Context, eventUID string) ([]*model.Response, error) {
	if eventUID == "" {
		return nil, errs.NewValidation("event UID cannot be empty")
	}

	slog.DebugContext(ctx, "nats storage: listing responses",
		"event_uid", eventUID)

	prefix := fmt.Sprintf(constants.KVResponseChildPrefix, eventUID)
	keys, err := s.keysWithPrefix(ctx, constants.KVBucketNameResponses, prefix)
	if err != nil {
		return nil, err
	}

	responses := make([]*model.Response, 0, len(keys))
	for _, key := range keys {
		response := &model.Response{}
		if _, errGet := s.get(ctx, constants.KVBucketNameResponses, key, response); errGet != nil {
			if errors.Is(errGet, jetstream.ErrKeyNotFound) {
				continue
			}
			slog.ErrorContext(ctx, "failed to get response", "error", errGet, "key", key)
			return nil, errs.NewServiceUnavailable("failed to list responses")
		}
		responses = append(responses, response)
	}

	slog.DebugContext(ctx, "nats storage: responses listed",
		"event_uid", eventUID,
		"count", len(responses))

	return responses, nil
}

// PutResponse stores a respondent's record, fully overwriting any prior
// record for the same event and respondent
func (s *storage) PutResponse(ctx context.Context, response *model.Response) error {
	if response.EventUID == "" || response.UserID == "" {
		return errs.NewValidation("event UID and user ID are required")
	}
	key := fmt.Sprintf(constants.KVResponseKeyFormat, response.EventUID, response.UserID)

	slog.DebugContext(ctx, "nats storage: storing response",
		"event_uid", response.EventUID,
		"user_id", response.UserID)

	if _, err := s.put(ctx, constants.KVBucketNameResponses, key, response); err != nil {
		slog.ErrorContext(ctx, "failed to store response", "error", err, "key", key)
		return errs.NewServiceUnavailable("failed to store response")
	}

	return nil
}

// DeleteResponsesForEvent removes every response belonging to an event
func (s *storage) DeleteResponsesForEvent(ctx context.Context, eventUID string) error {
	if eventUID == "" {
		return errs.NewValidation("event UID cannot be empty")
	}

	slog.DebugContext(ctx, "nats storage: deleting responses for event",
		"event_uid", eventUID)

	prefix := fmt.Sprintf(constants.KVResponseChildPrefix, eventUID)
	keys, err := s.keysWithPrefix(ctx, constants.KVBucketNameResponses, prefix)
	if err != nil {
		return err
	}

	kv := s.client.kvStore[constants.KVBucketNameResponses]
	for _, key := range keys {
		if errDel := kv.Delete(ctx, key); errDel != nil && !errors.Is(errDel, jetstream.ErrKeyNotFound) {
			slog.ErrorContext(ctx, "failed to delete response", "error", errDel, "key", key)
			return errs.NewServiceUnavailable("failed to delete responses")
		}
	}

	slog.DebugContext(ctx, "nats storage: responses deleted",
		"event_uid", eventUID,
		"count", len(keys))

	return nil
}

// get retrieves a model from the NATS KV store by bucket and key.
// It unmarshals the data into the provided model and returns the revision.
func (s *storage) get(ctx context.Context, bucket, key string, model any) (uint64, error) {
	if key == "" {
		return 0, errs.NewValidation("key cannot be empty")
	}

	kv, exists := s.client.kvStore[bucket]
	if !exists || kv == nil {
		return 0, errs.NewServiceUnavailable("KV bucket not available")
	}

	data, errGet := kv.Get(ctx, key)
	if errGet != nil {
		return 0, errGet
	}

	errUnmarshal := json.Unmarshal(data.Value(), model)
	if errUnmarshal != nil {
		return 0, errUnmarshal
	}

	return data.Revision(), nil
}

// put stores a model in the NATS KV store by bucket and key.
// It marshals the model into JSON and stores it, returning the revision.
func (s *storage) put(ctx context.Context, bucket, key string, model any) (uint64, error) {
	if key == "" {
		return 0, errs.NewValidation("key cannot be empty")
	}

	kv, exists := s.client.kvStore[bucket]
	if !exists || kv == nil {
		return 0, errs.NewServiceUnavailable("KV bucket not available")
	}

	data, err := json.Marshal(model)
	if err != nil {
		return 0, err
	}

	revision, err := kv.Put(ctx, key, data)
	if err != nil {
		return 0, err
	}

	return revision, nil
}

// putWithRevision stores a model in the NATS KV store with expected revision checking.
// It performs a conditional update based on the expected revision.
func (s *storage) putWithRevision(ctx context.Context, bucket, key string, model any, expectedRevision uint64) (uint64, error) {
	if key == "" {
		return 0, errs.NewValidation("key cannot be empty")
	}

	kv, exists := s.client.kvStore[bucket]
	if !exists || kv == nil {
		return 0, errs.NewServiceUnavailable("KV bucket not available")
	}

	data, err := json.Marshal(model)
	if err != nil {
		return 0, err
	}

	revision, err := kv.Update(ctx, key, data, expectedRevision)
	if err != nil {
		return 0, err
	}

	return revision, nil
}

// delete removes a model from the NATS KV store by bucket and key with revision checking.
func (s *storage) delete(ctx context.Context, bucket, key string, expectedRevision uint64) error {
	if key == "" {
		return errs.NewValidation("key cannot be empty")
	}

	kv, exists := s.client.kvStore[bucket]
	if !exists || kv == nil {
		return errs.NewServiceUnavailable("KV bucket not available")
	}

	err := kv.Delete(ctx, key, jetstream.LastRevision(expectedRevision))
	if err != nil {
		return err
	}

	return nil
}

// IsReady checks if the storage is ready by verifying the client connection
func (s *storage) IsReady(ctx context.Context) error {
	return s.client.IsReady(ctx)
}

// NewEventStorage creates the event repository backed by NATS KV
func NewEventStorage(client *NATSClient) port.EventReaderWriter {
	return &storage{
		client: client,
	}
}

// NewResponseStorage creates the response repository backed by NATS KV
func NewResponseStorage(client *NATSClient) port.ResponseReaderWriter {
	return &storage{
		client: client,
	}
}
