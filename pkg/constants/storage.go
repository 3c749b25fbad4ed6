// Copyright The FreeTogether Authors.
// SPDX-License-Identifier: MIT

package constants

const (
	// KVBucketNameEvents is the name of the KV bucket for scheduling events.
	KVBucketNameEvents = "scheduling-events"

	// KVBucketNameResponses is the name of the KV bucket for availability responses.
	KVBucketNameResponses = "scheduling-responses"

	// Lookup key patterns for secondary indices
	// KVLookupEventOwnerPrefix indexes events by owning user ID.
	KVLookupEventOwnerPrefix = "lookup/owner/%s"
	// KVLookupEventInviteePrefix indexes events by invitee email hash.
	KVLookupEventInviteePrefix = "lookup/invitee/%s"

	// KVResponseKeyFormat is the key pattern for a response document,
	// keyed by event UID and respondent user ID so a resubmission
	// overwrites the prior record.
	KVResponseKeyFormat = "%s/%s"

	// KVResponseChildPrefix is the prefix scanned to list all responses
	// belonging to one event.
	KVResponseChildPrefix = "%s/"
)
