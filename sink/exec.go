// Copyright (c) 2023-2024, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/choria-io/booking"
	"github.com/kballard/go-shellquote"
)

// ExecSink runs a command for each submission. The form is written as JSON to a
// temporary file whose path replaces every {} in the command arguments, or is
// appended as the last argument when there is no placeholder.
type ExecSink struct {
	cmd  string
	args []string
	log  booking.Logger
}

// NewExec parses command using shell quoting rules
func NewExec(command string) (*ExecSink, error) {
	parts, err := shellquote.Split(command)
	if err != nil {
		return nil, err
	}

	if len(parts) == 0 {
		return nil, fmt.Errorf("no command provided")
	}

	return &ExecSink{cmd: parts[0], args: parts[1:]}, nil
}

// Logger configures a logger to use, no logging is done without this
func (s *ExecSink) Logger(log booking.Logger) {
	s.log = log
}

// Submit writes d to a temporary file and runs the command against it
func (s *ExecSink) Submit(ctx context.Context, d booking.FormData) error {
	j, err := json.Marshal(d.Normalize())
	if err != nil {
		return err
	}

	tf, err := os.CreateTemp("", "booking-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tf.Name())

	_, err = tf.Write(j)
	if err != nil {
		tf.Close()
		return err
	}

	err = tf.Close()
	if err != nil {
		return err
	}

	f := tf.Name()
	var args []string
	hasPlaceholder := false
	for _, p := range s.args {
		if strings.Contains(p, "{}") {
			args = append(args, strings.ReplaceAll(p, "{}", f))
			hasPlaceholder = true
		} else {
			args = append(args, p)
		}
	}

	if !hasPlaceholder {
		args = append(args, f)
	}

	if s.log != nil {
		s.log.Infof("Submitting booking using: %s %s", s.cmd, strings.Join(args, " "))
	}

	out, err := exec.CommandContext(ctx, s.cmd, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("failed to submit booking using %s\nerror: %w\noutput: %q", s.cmd, err, out)
	}

	return nil
}
