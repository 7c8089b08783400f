// Copyright (c) 2023-2024, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package booking implements the state engine behind a multi-section service
// booking form. The form value is partitioned into four sections (personal,
// vehicle, booking details and terms) that are replaced wholesale on every edit,
// a group of contact method flags is kept consistent with an aggregate
// "select all" flag, the list of cities offered to the user is derived from the
// selected country against a location index fetched once from a remote source,
// and submission is gated behind a boolean validator.
//
// The Controller ties these together for a single user session. It is not safe
// for concurrent use, callers that share a Controller between goroutines must
// serialise access.
package booking

//go:generate mockgen -source booking.go -destination mock_test.go -package booking -typed

import (
	"context"
	"errors"

	"github.com/choria-io/booking/locations"
)

var (
	// ErrUnknownSection indicates a section identifier outside the four known sections
	ErrUnknownSection = errors.New("unknown section")
	// ErrUnknownField indicates a field name that does not exist in the addressed section
	ErrUnknownField = errors.New("unknown field")
	// ErrInvalidValue indicates a value of the wrong type for the addressed field
	ErrInvalidValue = errors.New("invalid value")
	// ErrUnknownContactMethod indicates a contact method other than whatsapp, sms or call
	ErrUnknownContactMethod = errors.New("unknown contact method")
)

// Sink receives a form value that passed validation
type Sink interface {
	Submit(ctx context.Context, data FormData) error
}

// LocationSource supplies the raw country and city tree
type LocationSource interface {
	Fetch(ctx context.Context, q locations.Query) ([]locations.Node, error)
}

// Logger is the logging interface used throughout the package, no logging is done without one
type Logger interface {
	Debugf(format string, v ...any)
	Infof(format string, v ...any)
	Errorf(format string, v ...any)
}

type noopLogger struct{}

func (noopLogger) Debugf(string, ...any) {}
func (noopLogger) Infof(string, ...any)  {}
func (noopLogger) Errorf(string, ...any) {}

// SinkFunc adapts a function to the Sink interface
type SinkFunc func(ctx context.Context, data FormData) error

// Submit implements Sink
func (f SinkFunc) Submit(ctx context.Context, data FormData) error {
	return f(ctx, data)
}
