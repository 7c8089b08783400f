// Copyright (c) 2023-2024, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package api exposes booking sessions over a JSON HTTP API. Every session is a
// booking.Controller, all sessions share one location index that is fetched once
// and refreshed on demand.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/choria-io/booking"
	"github.com/choria-io/booking/locations"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ErrSessionNotFound indicates an unknown session id
var ErrSessionNotFound = errors.New("session not found")

// ErrTooManySessions indicates the session limit is reached
var ErrTooManySessions = errors.New("too many open sessions")

// Option configures a Server
type Option func(*Server)

// WithLocationSource sets the source locations are fetched from
func WithLocationSource(src booking.LocationSource, q locations.Query) Option {
	return func(s *Server) {
		s.source = src
		s.query = q
	}
}

// WithSink sets the sink every session submits to
func WithSink(sink booking.Sink) Option {
	return func(s *Server) {
		s.sink = sink
	}
}

// WithLogger configures a logger to use, no logging is done without this
func WithLogger(log booking.Logger) Option {
	return func(s *Server) {
		s.log = log
	}
}

// WithRegistry registers metrics with reg instead of a private registry
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.registry = reg
	}
}

// WithAllowedOrigins restricts cross origin requests to origins, all origins are allowed by default
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) {
		s.origins = origins
	}
}

// WithSessionLimit caps the number of open sessions, 0 removes the limit
func WithSessionLimit(n int) Option {
	return func(s *Server) {
		s.maxSessions = n
	}
}

// WithSessionIdleTimeout discards sessions not used for d, 0 keeps sessions until discarded
func WithSessionIdleTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.idleTimeout = d
	}
}

// Defaults for session housekeeping
const (
	DefaultSessionLimit       = 10000
	DefaultSessionIdleTimeout = 30 * time.Minute
)

// session is a controller with its own lock, a controller is used by one caller at a time
type session struct {
	c        *booking.Controller
	lastUsed time.Time
	mu       sync.Mutex
}

// Server holds the open booking sessions
type Server struct {
	origins     []string
	source      booking.LocationSource
	query       locations.Query
	sink        booking.Sink
	log         booking.Logger
	registry    *prometheus.Registry
	metrics     *metrics
	newID       func() string
	now         func() time.Time
	maxSessions int
	idleTimeout time.Duration

	// locator loads locations on behalf of every session, guarded by refreshMu
	locator   *booking.Controller
	refreshMu sync.Mutex

	// mu guards the fields below, holding it never blocks on a session lock
	index    *locations.Index
	status   booking.LocationStatus
	sessions map[string]*session
	mu       sync.Mutex
}

// New creates a server without any sessions, call RefreshLocations to load the location index
func New(opts ...Option) *Server {
	s := &Server{
		query:       locations.Query{}.WithDefaults(),
		sessions:    make(map[string]*session),
		newID:       uuid.NewString,
		now:         time.Now,
		maxSessions: DefaultSessionLimit,
		idleTimeout: DefaultSessionIdleTimeout,
		status:      booking.LocationsPending,
	}

	for _, o := range opts {
		o(s)
	}

	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}

	s.metrics = newMetrics(s.registry)
	s.locator = booking.New(s.controllerOpts(booking.WithLocationSource(s.source), booking.WithQuery(s.query))...)

	return s
}

func (s *Server) controllerOpts(opts ...booking.Option) []booking.Option {
	opts = append(opts, booking.WithLogger(s.log))
	if s.sink != nil {
		opts = append(opts, booking.WithSink(s.sink))
	}

	return opts
}

// RefreshLocations fetches the location tree and hands the new index to every
// open session. A failed fetch keeps the previous index. Sessions stay usable
// while the fetch runs.
func (s *Server) RefreshLocations(ctx context.Context) booking.LocationStatus {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	status := s.locator.LoadLocations(ctx)
	idx := s.locator.LocationIndex()

	s.mu.Lock()
	s.status = status
	if status != booking.LocationsReady {
		s.mu.Unlock()
		s.metrics.locationFetch.WithLabelValues(failure).Inc()
		return status
	}

	s.index = idx
	open := make([]*session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		open = append(open, sess)
	}
	s.mu.Unlock()

	s.metrics.locationFetch.WithLabelValues(success).Inc()
	s.metrics.locationsCount.Set(float64(idx.Len()))

	for _, sess := range open {
		sess.mu.Lock()
		sess.c.ReplaceLocations(idx)
		sess.mu.Unlock()
	}

	return status
}

// LocationStatus is the status of the shared location index
func (s *Server) LocationStatus() booking.LocationStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.status
}

// Create opens a new session and returns its id, fails with ErrTooManySessions
// when the session limit is reached
func (s *Server) Create() (string, booking.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.expireLocked()

	if s.maxSessions > 0 && len(s.sessions) >= s.maxSessions {
		return "", booking.State{}, ErrTooManySessions
	}

	var opts []booking.Option
	if s.index != nil {
		opts = append(opts, booking.WithLocationIndex(s.index))
	}

	id := s.newID()
	sess := &session{c: booking.New(s.controllerOpts(opts...)...), lastUsed: s.now()}
	s.sessions[id] = sess
	s.metrics.sessions.Set(float64(len(s.sessions)))

	return id, withStatus(sess.c.State(), s.status), nil
}

// Discard closes the session id
func (s *Server) Discard(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.sessions[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	delete(s.sessions, id)
	s.metrics.sessions.Set(float64(len(s.sessions)))

	return nil
}

// Expire discards sessions idle for longer than the idle timeout and returns how many were removed
func (s *Server) Expire() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.expireLocked()
}

func (s *Server) expireLocked() int {
	if s.idleTimeout <= 0 {
		return 0
	}

	removed := 0
	for id, sess := range s.sessions {
		// a session in use holds its lock, it is not idle
		if !sess.mu.TryLock() {
			continue
		}
		idle := s.idle(sess)
		sess.mu.Unlock()

		if idle {
			delete(s.sessions, id)
			removed++
		}
	}

	if removed > 0 {
		s.metrics.sessions.Set(float64(len(s.sessions)))
		if s.log != nil {
			s.log.Debugf("Expired %d idle sessions", removed)
		}
	}

	return removed
}

// idle reports whether sess was not used within the idle timeout, the session lock must be held
func (s *Server) idle(sess *session) bool {
	if s.idleTimeout <= 0 {
		return false
	}

	return sess.lastUsed.Before(s.now().Add(-s.idleTimeout))
}

// remove deletes id when it still refers to sess
func (s *Server) remove(id string, sess *session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sessions[id] == sess {
		delete(s.sessions, id)
		s.metrics.sessions.Set(float64(len(s.sessions)))
	}
}

// Update runs cb against the session id while holding that session's lock and
// returns the resulting state, other sessions are not affected by a slow cb
func (s *Server) Update(id string, cb func(*booking.Controller) error) (booking.State, error) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	s.mu.Unlock()

	if !ok {
		return booking.State{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if s.idle(sess) {
		s.remove(id, sess)
		return booking.State{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	err := cb(sess.c)
	sess.lastUsed = s.now()
	state := sess.c.State()

	return withStatus(state, s.LocationStatus()), err
}

// SubmitResult reports the outcome of a submission
type SubmitResult struct {
	Submitted bool              `json:"submitted"`
	Failed    []booking.Section `json:"failed,omitempty"`
	State     booking.State     `json:"state"`
}

// Submit validates the session id and submits it when valid
func (s *Server) Submit(ctx context.Context, id string) (SubmitResult, error) {
	var res SubmitResult

	state, err := s.Update(id, func(c *booking.Controller) error {
		ok, err := c.Submit(ctx)
		if err != nil {
			s.metrics.submissions.WithLabelValues(failed).Inc()
			return err
		}

		res.Submitted = ok
		if ok {
			s.metrics.submissions.WithLabelValues(submitted).Inc()
		} else {
			s.metrics.submissions.WithLabelValues(invalid).Inc()
			res.Failed = booking.ValidateSections(c.Form()).Failed()
		}

		return nil
	})
	res.State = state

	return res, err
}

// withStatus attaches the shared location status to a session state
func withStatus(st booking.State, status booking.LocationStatus) booking.State {
	st.LocationStatus = status

	return st
}

// Index is the shared location index, nil before the first successful refresh
func (s *Server) Index() *locations.Index {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.index
}

// Run serves the API on addr until ctx is cancelled
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		errs <- srv.ListenAndServe()
	}()

	if s.idleTimeout > 0 {
		go s.expireIdle(ctx)
	}

	if s.log != nil {
		s.log.Infof("Listening on %s", addr)
	}

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdown)
}

func (s *Server) expireIdle(ctx context.Context) {
	ticker := time.NewTicker(max(s.idleTimeout/2, time.Second))
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Expire()
		case <-ctx.Done():
			return
		}
	}
}

// Handler is the HTTP handler serving the API and metrics
func (s *Server) Handler() http.Handler {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete}
	if len(s.origins) > 0 {
		corsConfig.AllowOrigins = s.origins
	} else {
		corsConfig.AllowAllOrigins = true
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery(), cors.New(corsConfig), s.requestLogger())

	r.POST("/sessions", s.createHandler)
	r.GET("/sessions/:id", s.getHandler)
	r.DELETE("/sessions/:id", s.discardHandler)
	r.PATCH("/sessions/:id/fields", s.setFieldHandler)
	r.POST("/sessions/:id/contact-methods/:method", s.contactMethodHandler)
	r.POST("/sessions/:id/select-all", s.selectAllHandler)
	r.POST("/sessions/:id/sections/:section/toggle", s.toggleSectionHandler)
	r.POST("/sessions/:id/reset", s.resetHandler)
	r.POST("/sessions/:id/submit", s.submitHandler)

	r.GET("/countries", s.countriesHandler)
	r.GET("/countries/:country/cities", s.citiesHandler)
	r.POST("/locations/refresh", s.refreshHandler)

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{Registry: s.registry})))

	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if s.log != nil {
			s.log.Debugf("%s %s %d %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
		}
	}
}
