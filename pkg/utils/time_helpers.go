// Copyright The FreeTogether Authors.
// SPDX-License-Identifier: MIT

// Package utils provides utility functions for the scheduling service.
package utils

import (
	"fmt"
	"time"

	"github.com/freetogether/scheduling-service/pkg/constants"
)

// ValidateRFC3339 validates that a timestamp string is in RFC3339 format.
// Returns the parsed time.Time and nil error if valid, or zero time and error if invalid.
func ValidateRFC3339(timestamp string) (time.Time, error) {
	if timestamp == "" {
		return time.Time{}, fmt.Errorf(constants.ErrEmptyTimestamp)
	}

	t, err := time.Parse(time.RFC3339Nano, timestamp)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", constants.ErrInvalidTimestampFormat, err)
	}

	return t, nil
}

// ValidateRFC3339Ptr validates a timestamp pointer string is in RFC3339 format.
// Returns nil error if the pointer is nil or contains a valid timestamp.
func ValidateRFC3339Ptr(timestamp *string) error {
	if timestamp == nil {
		return nil // nil is allowed
	}

	_, err := ValidateRFC3339(*timestamp)
	return err
}

// NowRFC3339Ptr returns the current time as an RFC3339 formatted string pointer.
func NowRFC3339Ptr() *string {
	now := time.Now().Format(constants.TimestampFormat)
	return &now
}

// ParseTimestampPtr safely parses a timestamp pointer into a time.Time pointer.
// Returns nil if the input is nil or empty, or a pointer to the parsed time.
// Returns an error if parsing fails.
func ParseTimestampPtr(timestamp *string) (*time.Time, error) {
	if timestamp == nil || *timestamp == "" {
		return nil, nil
	}

	t, err := ValidateRFC3339(*timestamp)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// FormatTimePtr formats a time.Time pointer as an RFC3339 string pointer.
// Returns nil if the input is nil.
func FormatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}

	formatted := t.Format(constants.TimestampFormat)
	return &formatted
}
// ParseDate parses a calendar date in YYYY-MM-DD form.
// Date-ranged events and date-qualified slot keys use this format.
func ParseDate(date string) (time.Time, error) {
	if date == "" {
		return time.Time{}, fmt.Errorf("date cannot be empty")
	}

	t, err := time.Parse(constants.DateFormat, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format, expected YYYY-MM-DD: %w", err)
	}

	return t, nil
}

// FormatDate formats a time.Time as a YYYY-MM-DD calendar date.
func FormatDate(t time.Time) string {
	return t.Format(constants.DateFormat)
}
