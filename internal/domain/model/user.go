// Copyright The FreeTogether Authors.
// SPDX-License-Identifier: MIT

package model

// DirectoryUser is the user directory's view of one user: the identity
// triple the scheduling service caches on responses and resolves during
// invites.
type DirectoryUser struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// Actor is the already-authenticated identity performing an operation.
// Ownership checks use the user ID; invitee checks use the email.
type Actor struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// EventCreate carries the caller-supplied fields of a new event. The
// service assigns identity, ownership, status and timestamps.
type EventCreate struct {
	Name      string   `json:"name"`
	Kind      string   `json:"kind"`
	Timezone  string   `json:"timezone"`
	StartDate string   `json:"start_date,omitempty"`
	EndDate   string   `json:"end_date,omitempty"`
	Invitees  []string `json:"invitees,omitempty"`
}
