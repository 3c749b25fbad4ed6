// Copyright The FreeTogether Authors.
// SPDX-License-Identifier: MIT

package constants

// NATS subject constants for message publishing
const (
	// IndexEventSubject is the indexing subject for search and discovery
	IndexEventSubject = "freetogether.index.event"

	// Access control subjects for permission sync
	UpdateAccessEventSubject    = "freetogether.update_access.event"
	DeleteAllAccessEventSubject = "freetogether.delete_all_access.event"
)

// NATS subject constants for the scheduling request/reply API
const (
	// SchedulingAPIQueue is the queue group for load-balanced API handling
	SchedulingAPIQueue = "scheduling-api"

	EventGetSubject      = "freetogether.scheduling.event.get"
	EventListSubject     = "freetogether.scheduling.event.list"
	EventCreateSubject   = "freetogether.scheduling.event.create"
	EventDeleteSubject   = "freetogether.scheduling.event.delete"
	EventInviteSubject   = "freetogether.scheduling.event.invite"
	EventScheduleSubject = "freetogether.scheduling.event.schedule"
	EventCloseSubject    = "freetogether.scheduling.event.close"
	EventReopenSubject   = "freetogether.scheduling.event.reopen"

	ResponseSubmitSubject = "freetogether.scheduling.response.submit"
	ResponseListSubject   = "freetogether.scheduling.response.list"

	HeatmapGetSubject = "freetogether.scheduling.heatmap.get"
)

// NATS subject constants for the user directory collaborator
const (
	// DirectoryResolveByIDSubject resolves a user ID to email and display name
	DirectoryResolveByIDSubject = "freetogether.directory.resolve_by_id"
	// DirectoryResolveByEmailSubject resolves an email to user ID and display name
	DirectoryResolveByEmailSubject = "freetogether.directory.resolve_by_email"
)
