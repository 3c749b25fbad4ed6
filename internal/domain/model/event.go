// Copyright The FreeTogether Authors.
// SPDX-License-Identifier: MIT

package model

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/freetogether/scheduling-service/pkg/errors"
	"github.com/freetogether/scheduling-service/pkg/utils"
)

// Event represents a group availability scheduling event: an organizer
// defines a candidate date range, invitees submit their free time slots,
// and the organizer picks a final time from the aggregated heatmap.
type Event struct {
	UID      string `json:"uid"`
	Name     string `json:"name"`
	Kind     string `json:"kind"` // "once" | "weekly"
	Timezone string `json:"timezone"`

	// Candidate date range, inclusive. Empty on legacy events, which
	// fall back to the generic weekly grid.
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`

	// Invitees is the append-only set of invited email addresses.
	Invitees []string `json:"invitees"`

	// CreatedBy is the owning user's ID. Only the owner may mutate the
	// event's lifecycle or invitee list.
	CreatedBy string `json:"created_by"`

	Status EventStatus `json:"status"`

	// Scheduled fields are populated by Schedule and cleared by Reopen.
	ScheduledDate *string `json:"scheduled_date"`
	ScheduledTime *string `json:"scheduled_time"`

	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	ScheduledAt *string   `json:"scheduled_at"` // RFC3339, nullable
	ClosedAt    *string   `json:"closed_at"`    // RFC3339, nullable
	ReopenedAt  *string   `json:"reopened_at"`  // RFC3339, nullable
}

// EventStatus is the event's phase in its collection lifecycle.
type EventStatus string

// Lifecycle states. Transitions are intentionally unconstrained by the
// current status: closing straight from collecting is legal, and so is
// scheduling a closed event. This mirrors the historical behavior and
// must not be tightened without a product decision.
const (
	StatusCollecting EventStatus = "collecting"
	StatusScheduled  EventStatus = "scheduled"
	StatusClosed     EventStatus = "closed"
)

// Valid event kinds
const (
	KindOnce   = "once"
	KindWeekly = "weekly"
)

// ValidEventKinds returns all valid event kind values
func ValidEventKinds() []string {
	return []string{KindOnce, KindWeekly}
}

// ValidateBasicFields validates the required fields and formats
func (e *Event) ValidateBasicFields() error {
	if e.Name == "" {
		return errors.NewValidation("name is required")
	}

	if e.Kind == "" {
		return errors.NewValidation("kind is required")
	}
	if e.Kind != KindOnce && e.Kind != KindWeekly {
		return errors.NewValidation("kind must be 'once' or 'weekly'")
	}

	if e.Timezone == "" {
		return errors.NewValidation("timezone is required")
	}

	// Date range is optional, but when present both ends must parse and
	// the end must not precede the start.
	if e.StartDate != "" || e.EndDate != "" {
		if _, err := ExpandRange(e.StartDate, e.EndDate); err != nil {
			return err
		}
	}

	return nil
}

// HasDateRange reports whether the event carries a parseable date range.
// Events without one degrade to the generic weekly grid.
func (e *Event) HasDateRange() bool {
	if e.StartDate == "" || e.EndDate == "" {
		return false
	}
	_, err := ExpandRange(e.StartDate, e.EndDate)
	return err == nil
}

// SlotUniverse expands the event's candidate days: the date range when
// it parses, the weekly fallback template otherwise.
func (e *Event) SlotUniverse() []DaySlot {
	if e.HasDateRange() {
		days, err := ExpandRange(e.StartDate, e.EndDate)
		if err == nil {
			return days
		}
	}
	return WeeklyTemplate()
}

// IsOwner reports whether the actor is the owning user.
func (e *Event) IsOwner(actorID string) bool {
	return e.CreatedBy == actorID
}

// IsInvited reports whether the email is in the invitee set.
func (e *Event) IsInvited(email string) bool {
	for _, invitee := range e.Invitees {
		if invitee == email {
			return true
		}
	}
	return false
}

// AddInvitee appends the email to the invitee set, suppressing duplicates.
// It reports whether the set changed.
func (e *Event) AddInvitee(email string) bool {
	if e.IsInvited(email) {
		return false
	}
	e.Invitees = append(e.Invitees, email)
	return true
}

// Schedule transitions the event to scheduled, pinning the final date and
// time. Both values are required.
func (e *Event) Schedule(date, timeOfDay string, now time.Time) error {
	if date == "" || timeOfDay == "" {
		return errors.NewValidation("scheduled date and time are both required")
	}

	e.Status = StatusScheduled
	e.ScheduledDate = &date
	e.ScheduledTime = &timeOfDay
	e.ScheduledAt = utils.FormatTimePtr(&now)
	e.UpdatedAt = now
	return nil
}

// Close transitions the event to closed. Scheduled fields, if any, are
// left intact.
func (e *Event) Close(now time.Time) {
	e.Status = StatusClosed
	e.ClosedAt = utils.FormatTimePtr(&now)
	e.UpdatedAt = now
}

// Reopen transitions the event back to collecting and clears the
// scheduled date and time.
func (e *Event) Reopen(now time.Time) {
	e.Status = StatusCollecting
	e.ScheduledDate = nil
	e.ScheduledTime = nil
	e.ReopenedAt = utils.FormatTimePtr(&now)
	e.UpdatedAt = now
}

// OwnerIndexKey generates the secondary index key listing this event
// under its owner.
func (e *Event) OwnerIndexKey() string {
	return fmt.Sprintf("%s/%s", IndexDigest(e.CreatedBy), e.UID)
}

// InviteeIndexKey generates the secondary index key listing this event
// under one invitee email. Emails are hashed because the raw form is not
// a valid KV key.
func (e *Event) InviteeIndexKey(email string) string {
	return fmt.Sprintf("%s/%s", IndexDigest(email), e.UID)
}

// IndexDigest hashes an index term into a fixed KV-safe token.
func IndexDigest(term string) string {
	hash := sha256.Sum256([]byte(term))
	return hex.EncodeToString(hash[:])
}

// Tags generates a consistent set of tags for the event
func (e *Event) Tags() []string {
	var tags []string

	if e == nil {
		return nil
	}

	if e.UID != "" {
		tags = append(tags, fmt.Sprintf("event_uid:%s", e.UID))
	}

	if e.Kind != "" {
		tags = append(tags, fmt.Sprintf("kind:%s", e.Kind))
	}

	if e.Status != "" {
		tags = append(tags, fmt.Sprintf("status:%s", e.Status))
	}

	if e.CreatedBy != "" {
		tags = append(tags, fmt.Sprintf("created_by:%s", e.CreatedBy))
	}

	return tags
}

// InviteResult reports the outcome of an invite operation. Unresolvable
// addresses are partial failures, not transaction failures.
type InviteResult struct {
	InvitedCount   int      `json:"invited_count"`
	NotFoundEmails []string `json:"not_found"`
}
