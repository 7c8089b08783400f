// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// logger adapts zerolog to booking.Logger
type logger struct {
	log zerolog.Logger
}

func newLogger(out io.Writer, debug bool) *logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	return &logger{
		log: zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}).Level(level).With().Timestamp().Logger(),
	}
}

func (l *logger) Debugf(format string, v ...any) {
	l.log.Debug().Msgf(format, v...)
}

func (l *logger) Infof(format string, v ...any) {
	l.log.Info().Msgf(format, v...)
}

func (l *logger) Errorf(format string, v ...any) {
	l.log.Error().Msgf(format, v...)
}
