// Copyright The FreeTogether Authors.
// SPDX-License-Identifier: MIT

package model

import (
	"fmt"
	"time"

	"github.com/freetogether/scheduling-service/pkg/errors"
)

// AvailabilityLevel is the legacy per-slot grid value.
type AvailabilityLevel int

// Legacy grid levels
const (
	LevelNo    AvailabilityLevel = 0
	LevelMaybe AvailabilityLevel = 1
	LevelYes   AvailabilityLevel = 2
)

// RSVPStatus is the whole-event yes/no/maybe answer.
type RSVPStatus string

// Valid RSVP statuses
const (
	RSVPYes   RSVPStatus = "yes"
	RSVPNo    RSVPStatus = "no"
	RSVPMaybe RSVPStatus = "maybe"
)

// ValidRSVPStatuses returns all valid RSVP status values
func ValidRSVPStatuses() []RSVPStatus {
	return []RSVPStatus{RSVPYes, RSVPNo, RSVPMaybe}
}

// RSVPAnswer is the RSVP response shape: one status for the whole event
// plus a free-text comment.
type RSVPAnswer struct {
	Status  RSVPStatus `json:"status"`
	Comment string     `json:"comment,omitempty"`
}

// Response is one respondent's canonical availability record for one
// event. The respondent's identity is the natural key: a resubmission
// fully overwrites the prior record.
//
// Three historical submission shapes coexist and are stored side by
// side rather than fused, because downstream consumers read different
// shapes: the heatmap folds the slot lists and the legacy grid, while
// the legacy grid view reads the grid and its comments verbatim.
type Response struct {
	EventUID  string `json:"event_uid"`
	UserID    string `json:"user_id"`
	UserEmail string `json:"user_email"`
	UserName  string `json:"user_name"`

	// Time-slot-list shape. Disjoint by contract; a key present in both
	// is a caller error resolved in favor of free.
	FreeSlots  []string `json:"free_slots,omitempty"`
	MaybeSlots []string `json:"maybe_slots,omitempty"`

	// RSVP shape.
	RSVP *RSVPAnswer `json:"rsvp,omitempty"`

	// Legacy grid shape: slot key to availability level, with optional
	// free-text comments per slot.
	Grid         map[string]AvailabilityLevel `json:"grid,omitempty"`
	GridComments map[string]string            `json:"grid_comments,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

// IsEmpty reports whether no shape is populated. Empty submissions are
// rejected before normalization.
func (r *Response) IsEmpty() bool {
	return len(r.FreeSlots) == 0 && len(r.MaybeSlots) == 0 && r.RSVP == nil && len(r.Grid) == 0
}

// HasSlotShapes reports whether the response contributes slots to the
// heatmap. RSVP-only responses do not.
func (r *Response) HasSlotShapes() bool {
	return len(r.FreeSlots) > 0 || len(r.MaybeSlots) > 0 || len(r.Grid) > 0
}

// Normalize validates the submission and canonicalizes every slot key.
//
// It rejects empty submissions and invalid RSVP statuses, re-encodes
// every slot key through its parsed form, drops maybe entries that also
// appear as free, and checks grid levels are within range. Dropped maybe
// keys are returned so the caller can log them.
func (r *Response) Normalize() ([]string, error) {
	if r.IsEmpty() {
		return nil, errors.NewValidation("empty submission: at least one availability shape is required")
	}

	if r.RSVP != nil {
		valid := false
		for _, status := range ValidRSVPStatuses() {
			if r.RSVP.Status == status {
				valid = true
				break
			}
		}
		if !valid {
			return nil, errors.NewValidation(fmt.Sprintf("invalid rsvp status %q: must be 'yes', 'no', or 'maybe'", r.RSVP.Status))
		}
	}

	free, freeKeys, err := canonicalizeKeys(r.FreeSlots)
	if err != nil {
		return nil, err
	}
	maybe, maybeKeys, err := canonicalizeKeys(r.MaybeSlots)
	if err != nil {
		return nil, err
	}

	// Free wins over maybe for keys submitted in both lists. The check
	// runs on slot equivalence rather than exact strings, so a legacy key
	// in one list conflicts with a dated key for the same weekday and
	// hour in the other.
	var dropped []string
	kept := maybe[:0]
	for i, key := range maybe {
		conflict := false
		for _, freeKey := range freeKeys {
			if maybeKeys[i].Equivalent(freeKey) {
				conflict = true
				break
			}
		}
		if conflict {
			dropped = append(dropped, key)
			continue
		}
		kept = append(kept, key)
	}
	r.FreeSlots = free
	r.MaybeSlots = kept

	if len(r.Grid) > 0 {
		grid := make(map[string]AvailabilityLevel, len(r.Grid))
		for raw, level := range r.Grid {
			key, err := ParseSlotKey(raw)
			if err != nil {
				return nil, err
			}
			if level < LevelNo || level > LevelYes {
				return nil, errors.NewValidation(fmt.Sprintf("invalid availability level %d for slot %q: must be 0, 1 or 2", level, raw))
			}
			grid[key.String()] = level
		}
		r.Grid = grid
	}

	return dropped, nil
}

// canonicalizeKeys parses and re-encodes a slot key list, deduplicating
// exact repeats while preserving submission order. Both the canonical
// strings and their parsed forms are returned so callers can compare
// keys across encodings.
func canonicalizeKeys(raw []string) ([]string, []SlotKey, error) {
	if len(raw) == 0 {
		return nil, nil, nil
	}

	seen := make(map[string]struct{}, len(raw))
	encoded := make([]string, 0, len(raw))
	keys := make([]SlotKey, 0, len(raw))
	for _, r := range raw {
		key, err := ParseSlotKey(r)
		if err != nil {
			return nil, nil, err
		}
		canonical := key.String()
		if _, dup := seen[canonical]; dup {
			continue
		}
		seen[canonical] = struct{}{}
		encoded = append(encoded, canonical)
		keys = append(keys, key)
	}
	return encoded, keys, nil
}
