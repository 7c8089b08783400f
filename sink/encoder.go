// Copyright (c) 2023-2024, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package sink

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/choria-io/booking"
	"gopkg.in/yaml.v3"
)

// Encoding formats supported by the encoder sink
const (
	JSONFormat = "json"
	YAMLFormat = "yaml"
)

// EncoderSink writes each submission to a writer as JSON lines or YAML documents
type EncoderSink struct {
	format string
	w      io.Writer
}

// NewEncoder creates an encoder sink for format writing to w
func NewEncoder(format string, w io.Writer) (*EncoderSink, error) {
	switch format {
	case "":
		format = JSONFormat
	case JSONFormat, YAMLFormat:
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}

	return &EncoderSink{format: format, w: w}, nil
}

// Submit encodes d
func (s *EncoderSink) Submit(_ context.Context, d booking.FormData) error {
	d = d.Normalize()

	if s.format == YAMLFormat {
		_, err := fmt.Fprintln(s.w, "---")
		if err != nil {
			return err
		}

		enc := yaml.NewEncoder(s.w)
		enc.SetIndent(2)
		err = enc.Encode(d)
		if err != nil {
			return err
		}

		return enc.Close()
	}

	return json.NewEncoder(s.w).Encode(d)
}

// Multi submits to every sink in order, a failing sink does not prevent the others from running
type Multi []booking.Sink

// Submit implements booking.Sink
func (m Multi) Submit(ctx context.Context, d booking.FormData) error {
	var errs []error

	for _, s := range m {
		err := s.Submit(ctx, d)
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
