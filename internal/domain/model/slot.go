// Copyright The FreeTogether Authors.
// SPDX-License-Identifier: MIT

// Package model defines the domain models and entities for the scheduling service.
package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/freetogether/scheduling-service/pkg/errors"
	"github.com/freetogether/scheduling-service/pkg/utils"
)

// weekdayNames maps the lowercase day tokens used in slot keys to their
// time.Weekday counterparts. Slot keys always use full english day names.
var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// weekOrder is the display order of the weekly fallback grid, Monday first.
var weekOrder = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// HoursPerDay is the number of hourly slots in one day column.
const HoursPerDay = 24

// SlotKey is one hour of one day within an event's collection window.
// Two encodings exist on the wire: the legacy weekday-only form
// "monday_14" used by recurring events created before date ranges, and
// the date-qualified form "monday_2024-05-06_14" used by date-ranged
// events. Both refer to hour 14; the date qualifier pins the calendar day.
type SlotKey struct {
	Weekday string // lowercase day name, always set
	Date    string // YYYY-MM-DD, empty for the legacy encoding
	Hour    int    // 0-23
}

// ParseSlotKey parses either slot key encoding into its canonical form.
// It returns a Validation error when the key matches neither pattern,
// uses an unknown day name, carries a malformed date, or has an hour
// outside [0,23].
func ParseSlotKey(raw string) (SlotKey, error) {
	parts := strings.Split(raw, "_")

	var key SlotKey
	switch len(parts) {
	case 2:
		key.Weekday = parts[0]
	case 3:
		key.Weekday = parts[0]
		if _, err := utils.ParseDate(parts[1]); err != nil {
			return SlotKey{}, errors.NewValidation(fmt.Sprintf("malformed slot key %q: bad date qualifier", raw), err)
		}
		key.Date = parts[1]
	default:
		return SlotKey{}, errors.NewValidation(fmt.Sprintf("malformed slot key %q: expected day_hour or day_date_hour", raw))
	}

	if _, ok := weekdayNames[key.Weekday]; !ok {
		return SlotKey{}, errors.NewValidation(fmt.Sprintf("malformed slot key %q: unknown day name %q", raw, key.Weekday))
	}

	hour, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return SlotKey{}, errors.NewValidation(fmt.Sprintf("malformed slot key %q: hour is not a number", raw), err)
	}
	if hour < 0 || hour >= HoursPerDay {
		return SlotKey{}, errors.NewValidation(fmt.Sprintf("malformed slot key %q: hour %d outside [0,23]", raw, hour))
	}
	key.Hour = hour

	return key, nil
}

// String re-encodes the key canonically, preserving its encoding.
func (k SlotKey) String() string {
	if k.Date == "" {
		return fmt.Sprintf("%s_%d", k.Weekday, k.Hour)
	}
	return fmt.Sprintf("%s_%s_%d", k.Weekday, k.Date, k.Hour)
}

// HasDate reports whether the key carries a date qualifier.
func (k SlotKey) HasDate() bool {
	return k.Date != ""
}

// Equivalent reports whether two keys refer to the same day and hour.
// A legacy weekday-only key is equivalent to a date-qualified key for
// the same weekday and hour, so counts from both encodings accumulate
// into one bucket during aggregation.
func (k SlotKey) Equivalent(other SlotKey) bool {
	if k.Weekday != other.Weekday || k.Hour != other.Hour {
		return false
	}
	if k.Date == "" || other.Date == "" {
		return true
	}
	return k.Date == other.Date
}

// MatchesDay reports whether the key contributes to the given day column.
// A date-qualified key only matches the column with the same date; a
// legacy key matches any column with the same weekday.
func (k SlotKey) MatchesDay(day DaySlot) bool {
	if k.Date != "" {
		return k.Date == day.Date && k.Weekday == day.Weekday
	}
	return k.Weekday == day.Weekday
}

// DaySlot is one day column of the slot universe: a weekday, optionally
// pinned to a calendar date, carrying 24 hourly slots.
type DaySlot struct {
	Weekday string
	Date    string // empty in the weekly fallback grid
}

// Key returns the day column identifier used in heatmap payloads:
// "monday" for the weekly grid, "monday_2024-05-26" for dated columns.
func (d DaySlot) Key() string {
	if d.Date == "" {
		return d.Weekday
	}
	return fmt.Sprintf("%s_%s", d.Weekday, d.Date)
}

// SlotKeys returns the 24 hourly slot keys of the day column.
func (d DaySlot) SlotKeys() []SlotKey {
	keys := make([]SlotKey, 0, HoursPerDay)
	for hour := 0; hour < HoursPerDay; hour++ {
		keys = append(keys, SlotKey{Weekday: d.Weekday, Date: d.Date, Hour: hour})
	}
	return keys
}

// ExpandRange expands an inclusive calendar date range into one DaySlot
// per day. It returns a Validation error when either date is malformed
// or the end date precedes the start date. The result is never empty.
func ExpandRange(startDate, endDate string) ([]DaySlot, error) {
	start, err := utils.ParseDate(startDate)
	if err != nil {
		return nil, errors.NewValidation("invalid date range: bad start date", err)
	}
	end, err := utils.ParseDate(endDate)
	if err != nil {
		return nil, errors.NewValidation("invalid date range: bad end date", err)
	}
	if end.Before(start) {
		return nil, errors.NewValidation(fmt.Sprintf("invalid date range: end %s before start %s", endDate, startDate))
	}

	var days []DaySlot
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, DaySlot{
			Weekday: strings.ToLower(d.Weekday().String()),
			Date:    utils.FormatDate(d),
		})
	}
	return days, nil
}

// WeeklyTemplate returns the generic Monday-through-Sunday grid used for
// events that predate date ranges and for events whose stored range
// cannot be parsed.
func WeeklyTemplate() []DaySlot {
	days := make([]DaySlot, 0, len(weekOrder))
	for _, weekday := range weekOrder {
		days = append(days, DaySlot{Weekday: weekday})
	}
	return days
}
