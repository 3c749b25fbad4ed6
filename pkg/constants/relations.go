// Copyright The FreeTogether Authors.
// SPDX-License-Identifier: MIT

// Package constants defines access relation constants used throughout the scheduling service.
package constants

// Relation constants for authorization and access control
const (
	// RelationViewer defines the viewer permission level (invitees)
	RelationViewer = "viewer"

	// RelationOwner defines the owner permission level (event creator)
	RelationOwner = "owner"
)
