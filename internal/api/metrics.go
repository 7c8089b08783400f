// Copyright (c) 2023-2024, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// submission results
const (
	submitted = "submitted"
	invalid   = "invalid"
	failed    = "failed"
)

// location fetch results
const (
	success = "success"
	failure = "failure"
)

type metrics struct {
	submissions    *prometheus.CounterVec
	locationFetch  *prometheus.CounterVec
	sessions       prometheus.Gauge
	locationsCount prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "booking",
			Name:      "submissions_total",
			Help:      "Booking submissions by result",
		}, []string{"result"}),

		locationFetch: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "booking",
			Name:      "location_fetches_total",
			Help:      "Location data fetches by result",
		}, []string{"result"}),

		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "booking",
			Name:      "sessions",
			Help:      "Booking sessions currently open",
		}),

		locationsCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "booking",
			Name:      "countries",
			Help:      "Countries in the current location index",
		}),
	}

	reg.MustRegister(m.submissions, m.locationFetch, m.sessions, m.locationsCount)
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return m
}
