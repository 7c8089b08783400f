// Copyright (c) 2023-2024, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package booking

import (
	"context"
	"fmt"

	"github.com/choria-io/booking/locations"
)

// LocationStatus describes the availability of the location index
type LocationStatus string

const (
	// LocationsPending means no fetch has completed yet
	LocationsPending LocationStatus = "pending"
	// LocationsReady means the index holds the result of the latest fetch
	LocationsReady LocationStatus = "ready"
	// LocationsUnavailable means the first fetch failed and the index is empty
	LocationsUnavailable LocationStatus = "unavailable"
	// LocationsStale means a refresh failed and the previous index is kept
	LocationsStale LocationStatus = "stale"
)

// State is a read only snapshot of a Controller
type State struct {
	Form           FormData       `json:"form"`
	Accordion      Accordion      `json:"accordion"`
	Countries      []string       `json:"countries"`
	FilteredCities []string       `json:"filteredCities"`
	LocationStatus LocationStatus `json:"locationStatus"`
}

// Option configures a Controller
type Option func(*Controller)

// WithLocationSource sets the source LoadLocations reads from
func WithLocationSource(s LocationSource) Option {
	return func(c *Controller) {
		c.source = s
	}
}

// WithQuery sets the location root requested from the source
func WithQuery(q locations.Query) Option {
	return func(c *Controller) {
		c.query = q.WithDefaults()
	}
}

// WithSink sets the destination of valid submissions
func WithSink(s Sink) Option {
	return func(c *Controller) {
		c.sink = s
	}
}

// WithLogger configures a logger to use, no logging is done without this
func WithLogger(l Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithLocationIndex starts the controller with an index that was built elsewhere,
// typically one index shared by many sessions
func WithLocationIndex(idx *locations.Index) Option {
	return func(c *Controller) {
		c.index = idx
		c.status = LocationsReady
	}
}

// Controller drives a single booking session. Every method completes its state
// transition before returning, derived values are recomputed as part of the edit
// that affects them.
type Controller struct {
	source LocationSource
	sink   Sink
	log    Logger
	query  locations.Query

	data      FormData
	accordion Accordion
	index     *locations.Index
	status    LocationStatus
	cities    []string
}

// New creates a Controller with an empty form and every section closed
func New(opts ...Option) *Controller {
	c := &Controller{
		log:    noopLogger{},
		query:  locations.Query{}.WithDefaults(),
		data:   NewFormData(),
		status: LocationsPending,
	}

	for _, o := range opts {
		o(c)
	}

	if c.sink == nil {
		c.sink = SinkFunc(func(_ context.Context, d FormData) error {
			c.log.Infof("Form submitted successfully: %+v", d.Map())
			return nil
		})
	}

	c.recomputeCities()

	return c
}

// LoadLocations fetches the location tree and commits the resulting index. A
// failure is logged and leaves the current index in place, the returned status
// tells the caller whether data is available. Calling it again refreshes the index.
func (c *Controller) LoadLocations(ctx context.Context) LocationStatus {
	if c.source == nil {
		c.log.Errorf("Error fetching countries and cities: no location source configured")
		c.markFetchFailed()
		return c.status
	}

	tree, err := c.source.Fetch(ctx, c.query)
	if err != nil {
		c.log.Errorf("Error fetching countries and cities: %v", err)
		c.markFetchFailed()
		return c.status
	}

	c.ReplaceLocations(locations.Build(tree))
	c.log.Debugf("Loaded %d countries from %s", c.index.Len(), c.query.Path)

	return c.status
}

// ReplaceLocations commits idx as the current index and recomputes the filtered cities
func (c *Controller) ReplaceLocations(idx *locations.Index) {
	c.index = idx
	c.status = LocationsReady
	c.recomputeCities()
}

func (c *Controller) markFetchFailed() {
	switch c.status {
	case LocationsReady, LocationsStale:
		c.status = LocationsStale
	default:
		c.status = LocationsUnavailable
	}
}

// SetField updates a single field, see SetField for the rules
func (c *Controller) SetField(section Section, field string, value any) error {
	next, err := SetField(c.data, section, field, value)
	if err != nil {
		return err
	}

	c.data = next

	if section == PersonalInfoSection && field == CountryField {
		c.recomputeCities()
	}

	return nil
}

// ToggleContactMethod sets one contact method and recomputes select all
func (c *Controller) ToggleContactMethod(method ContactMethod, value bool) error {
	next, err := SetContactMethod(c.data, method, value)
	if err != nil {
		return err
	}

	c.data = next

	return nil
}

// ToggleSelectAll sets every contact method to value
func (c *Controller) ToggleSelectAll(value bool) {
	c.data = SelectAllContactMethods(c.data, value)
}

// ToggleSection expands or collapses section
func (c *Controller) ToggleSection(section Section) error {
	next, err := c.accordion.Toggle(section)
	if err != nil {
		return err
	}

	c.accordion = next

	return nil
}

// Replace discards the current form value in favour of d. Missing sections are
// filled with empty values and select all is derived from the individual methods.
func (c *Controller) Replace(d FormData) {
	d = d.Normalize()

	cm := d.TermsConditions.ContactMethods
	if cm.SelectAll != cm.allSelected() {
		tc := *d.TermsConditions
		tc.ContactMethods.SelectAll = cm.allSelected()
		d.TermsConditions = &tc
	}

	c.data = d
	c.recomputeCities()
}

// Reset discards the form and closes every section, the location index is kept
func (c *Controller) Reset() {
	c.data = NewFormData()
	c.accordion = Accordion{}
	c.recomputeCities()
}

// Submit validates the form and hands it to the sink when valid. It returns false
// without an error when validation fails and false with the sink error when the
// sink fails.
func (c *Controller) Submit(ctx context.Context) (bool, error) {
	if !Validate(c.data) {
		c.log.Infof("Form validation failed")
		return false, nil
	}

	err := c.sink.Submit(ctx, c.data)
	if err != nil {
		c.log.Errorf("Form submission failed: %v", err)
		return false, fmt.Errorf("submission failed: %w", err)
	}

	c.log.Debugf("Form submitted")

	return true, nil
}

// Form is the current form value. Its sections are shared with the controller
// and must be treated as read only, keeping them shared preserves the pointer
// identity used to detect changed sections. Use State for a copy that may be
// modified.
func (c *Controller) Form() FormData {
	return c.data
}

// Accordion is the current section visibility
func (c *Controller) Accordion() Accordion {
	return c.accordion
}

// Countries lists the countries available for selection
func (c *Controller) Countries() []string {
	return c.index.Countries()
}

// FilteredCities lists the cities valid for the selected country
func (c *Controller) FilteredCities() []string {
	res := make([]string, len(c.cities))
	copy(res, c.cities)

	return res
}

// LocationIndex is the index currently in use, nil before the first successful load
func (c *Controller) LocationIndex() *locations.Index {
	return c.index
}

// LocationStatus reports whether location data is available
func (c *Controller) LocationStatus() LocationStatus {
	return c.status
}

// State is a snapshot of everything a user interface needs to render the form,
// it shares nothing with the controller
func (c *Controller) State() State {
	return State{
		Form:           c.data.Clone(),
		Accordion:      c.accordion,
		Countries:      c.Countries(),
		FilteredCities: c.FilteredCities(),
		LocationStatus: c.status,
	}
}

func (c *Controller) recomputeCities() {
	c.cities = FilteredCities(c.data, c.index)
}
