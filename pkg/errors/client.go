// Copyright The FreeTogether Authors.
// SPDX-License-Identifier: MIT

package errors

import "errors"

// Validation represents a validation error in the application.
// It covers malformed slot keys, invalid enum values, empty submissions
// and invalid date ranges.
type Validation struct {
	base
}

// Error returns the error message for Validation.
func (v Validation) Error() string {
	return v.error()
}

// Unwrap returns the wrapped error, if any.
func (v Validation) Unwrap() error {
	return v.err
}

// NewValidation creates a new Validation error with the provided message.
func NewValidation(message string, err ...error) Validation {
	return Validation{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}

// NotFound represents a not found error in the application.
type NotFound struct {
	base
}

// Error returns the error message for NotFound.
func (nf NotFound) Error() string {
	return nf.error()
}

// Unwrap returns the wrapped error, if any.
func (nf NotFound) Unwrap() error {
	return nf.err
}

// NewNotFound creates a new NotFound error with the provided message.
func NewNotFound(message string, err ...error) NotFound {
	return NotFound{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}

// Forbidden represents an authorization error: the actor is known but is
// not permitted to perform the operation. It is intentionally distinct
// from NotFound so callers can decide whether to reveal existence.
type Forbidden struct {
	base
}

// Error returns the error message for Forbidden.
func (f Forbidden) Error() string {
	return f.error()
}

// Unwrap returns the wrapped error, if any.
func (f Forbidden) Unwrap() error {
	return f.err
}

// NewForbidden creates a new Forbidden error with the provided message.
func NewForbidden(message string, err ...error) Forbidden {
	return Forbidden{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}

// Unauthorized represents a missing or invalid actor identity. The
// authentication layer surfaces it; the core only carries the type.
type Unauthorized struct {
	base
}

// Error returns the error message for Unauthorized.
func (u Unauthorized) Error() string {
	return u.error()
}

// Unwrap returns the wrapped error, if any.
func (u Unauthorized) Unwrap() error {
	return u.err
}

// NewUnauthorized creates a new Unauthorized error with the provided message.
func NewUnauthorized(message string, err ...error) Unauthorized {
	return Unauthorized{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}

// Conflict represents a conflict error, such as a concurrent update
// losing a compare-and-swap race on the same document.
type Conflict struct {
	base
}

// Error returns the error message for Conflict.
func (c Conflict) Error() string {
	return c.error()
}

// Unwrap returns the wrapped error, if any.
func (c Conflict) Unwrap() error {
	return c.err
}

// NewConflict creates a new Conflict error with the provided message.
func NewConflict(message string, err ...error) Conflict {
	return Conflict{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}
