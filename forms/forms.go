// Copyright (c) 2023-2024, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package forms fills a booking interactively on a terminal. A form is a YAML
// document listing the sections of the booking and, per section, the fields to
// ask for. Every answer is applied to a booking.Controller immediately so that
// later prompts see derived state, the city prompt for example offers the cities
// of the country chosen just before it.
//
// Properties support conditional expressions evaluated against the booking so
// far (available as input), validation expressions that constrain the accepted
// answer, enums, defaults and descriptions rendered as Go templates with Sprig
// functions and color markup like {red}text{/red}.
package forms

//go:generate mockgen -source forms.go -destination mock_test.go -package forms -typed

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"github.com/choria-io/booking"
	"github.com/choria-io/booking/internal/validator"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultForm []byte

// ErrUnsupportedType indicates a property type the processor cannot ask for
var ErrUnsupportedType = errors.New("unsupported property type")

// surveyor abstracts the survey library for testability.
type surveyor interface {
	AskOne(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error
}

type defaultSurveyor struct{}

func (d *defaultSurveyor) AskOne(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error {
	return survey.AskOne(p, response, opts...)
}

type processOption func(*processor)

func withSurveyor(s surveyor) processOption {
	return func(p *processor) {
		p.surveyor = s
	}
}

func withIsTerminal(f func() bool) processOption {
	return func(p *processor) {
		p.isTerminal = f
	}
}

func withOutput(w io.Writer) processOption {
	return func(p *processor) {
		p.output = w
	}
}

// Type constants identify property types in form definitions.
const (
	StringType  = "string"
	BoolType    = "bool"
	CountryType = "country"
	CityType    = "city"
)

// DefaultHeading is shown when a form has no name
const DefaultHeading = "Booking Appointment"

// Form defines an interactive booking form. The Description supports Go template
// syntax with Sprig functions and color markup tags like {red}text{/red}.
type Form struct {
	Name        string        `json:"name" yaml:"name"`
	Description string        `json:"description" yaml:"description"`
	Sections    []FormSection `json:"sections" yaml:"sections"`
}

// FormSection groups the properties of one booking section
type FormSection struct {
	Section     string     `json:"section" yaml:"section"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Properties  []Property `json:"properties" yaml:"properties"`
}

// Property defines a single booking field. Type determines the prompt used,
// country and city present the available locations. ConditionalExpression is
// evaluated against the environment and the booking so far to decide whether the
// property is asked at all.
type Property struct {
	Field                 string   `json:"field" yaml:"field"`
	Label                 string   `json:"label" yaml:"label"`
	Description           string   `json:"description" yaml:"description"`
	Help                  string   `json:"help" yaml:"help"`
	Type                  string   `json:"type" yaml:"type"`
	ConditionalExpression string   `json:"conditional" yaml:"conditional"`
	ValidationExpression  string   `json:"validation" yaml:"validation"`
	Required              bool     `json:"required" yaml:"required"`
	Default               string   `json:"default" yaml:"default"`
	Enum                  []string `json:"enum" yaml:"enum"`
}

func (p *Property) message() string {
	if p.Label != "" {
		return p.Label
	}

	return p.Field
}

// processor holds the configuration needed to interactively process a form
type processor struct {
	env        map[string]any
	booking    *booking.Controller
	surveyor   surveyor
	isTerminal func() bool
	output     io.Writer
}

// DefaultForm is the built-in form covering every booking field
func DefaultForm() (Form, error) {
	return parseForm(defaultForm)
}

// ProcessReader reads YAML form data from r and processes it interactively.
func ProcessReader(r io.Reader, c *booking.Controller, env map[string]any, opts ...processOption) error {
	fb, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	return ProcessBytes(fb, c, env, opts...)
}

// ProcessFile reads YAML form data from the file at path f and processes it interactively.
func ProcessFile(f string, c *booking.Controller, env map[string]any, opts ...processOption) error {
	fb, err := os.ReadFile(f)
	if err != nil {
		return err
	}

	return ProcessBytes(fb, c, env, opts...)
}

// ProcessBytes unmarshals f as a YAML form definition and processes it interactively.
func ProcessBytes(f []byte, c *booking.Controller, env map[string]any, opts ...processOption) error {
	form, err := parseForm(f)
	if err != nil {
		return err
	}

	return ProcessForm(form, c, env, opts...)
}

func parseForm(f []byte) (Form, error) {
	var form Form
	err := yaml.Unmarshal(f, &form)
	if err != nil {
		return Form{}, err
	}

	return form, nil
}

// ProcessForm presents the form interactively on a terminal and applies every
// answer to c. Each section is expanded in c while it is being asked and
// collapsed once done. Submitting the result is left to the caller.
func ProcessForm(f Form, c *booking.Controller, env map[string]any, opts ...processOption) error {
	proc := &processor{
		env:        env,
		booking:    c,
		surveyor:   &defaultSurveyor{},
		isTerminal: isTerminal,
		output:     os.Stdout,
	}

	for _, o := range opts {
		o(proc)
	}

	if !proc.isTerminal() {
		return fmt.Errorf("can only process forms on a valid terminal")
	}

	if len(f.Sections) == 0 {
		return fmt.Errorf("no sections defined")
	}

	heading := f.Name
	if heading == "" {
		heading = DefaultHeading
	}

	d, err := renderTemplate(f.Description, proc.environment())
	if err != nil {
		return err
	}
	fmt.Fprintln(proc.output, colorMarkup("{bold}"+heading+"{/bold}"))
	fmt.Fprintln(proc.output, d)

	proc.surveyor.AskOne(&survey.Input{Message: "Press enter to start"}, &struct{}{})

	for _, s := range f.Sections {
		err = proc.askSection(s)
		if err != nil {
			return err
		}
	}

	return nil
}

// askSection expands the section, asks its properties and collapses it again
func (p *processor) askSection(s FormSection) error {
	section, err := booking.ParseSection(s.Section)
	if err != nil {
		return err
	}

	title := s.Title
	if title == "" {
		title = string(section)
	}

	d, err := renderTemplate(s.Description, p.environment())
	if err != nil {
		return err
	}

	fmt.Fprintln(p.output)
	fmt.Fprintln(p.output, colorMarkup("{bold}"+title+"{/bold}"))
	if d != "" {
		fmt.Fprintln(p.output, d)
	}

	err = p.setSectionOpen(section, true)
	if err != nil {
		return err
	}

	for _, prop := range s.Properties {
		should, err := p.shouldProcess(prop)
		if err != nil {
			return err
		}
		if !should {
			continue
		}

		err = p.askProperty(section, prop)
		if err != nil {
			return fmt.Errorf("%s.%s: %w", section, prop.Field, err)
		}
	}

	return p.setSectionOpen(section, false)
}

func (p *processor) setSectionOpen(section booking.Section, open bool) error {
	if p.booking.Accordion().IsOpen(section) == open {
		return nil
	}

	return p.booking.ToggleSection(section)
}

// askProperty dispatches a single property to the appropriate type-specific handler
func (p *processor) askProperty(section booking.Section, prop Property) error {
	switch {
	case prop.Type == BoolType:
		ans, err := p.askBoolValue(prop)
		if err != nil {
			return err
		}
		return p.booking.SetField(section, prop.Field, ans)

	case prop.Type == CountryType:
		ans, err := p.askChoice(prop, p.booking.Countries())
		if err != nil {
			return err
		}
		return p.booking.SetField(section, prop.Field, ans)

	case prop.Type == CityType:
		ans, err := p.askChoice(prop, p.booking.FilteredCities())
		if err != nil {
			return err
		}
		return p.booking.SetField(section, prop.Field, ans)

	case isOneOf(prop.Type, StringType, ""):
		ans, err := p.askStringValue(prop)
		if err != nil {
			return err
		}
		return p.booking.SetField(section, prop.Field, ans)

	default:
		return fmt.Errorf("%w %q", ErrUnsupportedType, prop.Type)
	}
}

// askChoice presents options as a select prompt, when there are no options it
// falls back to free text so the booking can proceed without location data
func (p *processor) askChoice(prop Property, options []string) (string, error) {
	if len(options) > 0 {
		prop.Enum = options
	}

	return p.askStringValue(prop)
}

// askStringEnum presents a select prompt with the property's Enum choices.
func (p *processor) askStringEnum(prop Property) (string, error) {
	var ans string
	var opts []survey.AskOpt

	if prop.Required {
		opts = append(opts, survey.WithValidator(survey.Required))
	}

	deflt := prop.Default
	if !isOneOf(deflt, prop.Enum...) {
		deflt = prop.Enum[0]
	}

	err := p.surveyor.AskOne(&survey.Select{
		Message: prop.message(),
		Help:    prop.Help,
		Default: deflt,
		Options: prop.Enum,
	}, &ans, opts...)
	if err != nil {
		return "", err
	}

	return ans, nil
}

// askStringValue displays the property description, then prompts for a string
// value. Delegates to askStringEnum when the property has Enum values.
func (p *processor) askStringValue(prop Property) (string, error) {
	err := p.describe(prop)
	if err != nil {
		return "", err
	}

	if len(prop.Enum) > 0 {
		return p.askStringEnum(prop)
	}

	var ans string
	var validators []survey.Validator
	var opts []survey.AskOpt

	if prop.Required {
		validators = append(validators, survey.MinLength(1))
	}

	if prop.ValidationExpression != "" {
		validators = append(validators, validator.SurveyValidator(prop.ValidationExpression, prop.Required))
	}

	if len(validators) > 0 {
		opts = append(opts, survey.WithValidator(survey.ComposeValidators(validators...)))
	}

	err = p.surveyor.AskOne(&survey.Input{
		Message: prop.message(),
		Help:    prop.Help,
		Default: prop.Default,
	}, &ans, opts...)
	if err != nil {
		return "", err
	}

	return ans, nil
}

// askBoolValue displays the property description and prompts for a boolean confirmation.
func (p *processor) askBoolValue(prop Property) (bool, error) {
	err := p.describe(prop)
	if err != nil {
		return false, err
	}

	var ans bool
	var dflt bool

	if prop.Default != "" {
		dflt, err = strconv.ParseBool(prop.Default)
		if err != nil {
			return false, err
		}
	}

	err = p.surveyor.AskOne(&survey.Confirm{
		Message: prop.message(),
		Help:    prop.Help,
		Default: dflt,
	}, &ans)
	if err != nil {
		return false, err
	}

	return ans, nil
}

func (p *processor) describe(prop Property) error {
	if prop.Description == "" {
		return nil
	}

	d, err := renderTemplate(prop.Description, p.environment())
	if err != nil {
		return err
	}

	fmt.Fprintln(p.output)
	fmt.Fprintln(p.output, d)

	return nil
}

// environment is the user supplied environment with the booking so far
// available as "input"/"Input"
func (p *processor) environment() map[string]any {
	env := make(map[string]any)
	for k, v := range p.env {
		env[k] = v
	}

	env["input"] = p.booking.Form().Map()
	env["Input"] = env["input"]
	env["countries"] = p.booking.Countries()
	env["cities"] = p.booking.FilteredCities()

	return env
}

// shouldProcess evaluates the property's ConditionalExpression against the
// environment. Returns true when there is no conditional or when the expression
// evaluates to true.
func (p *processor) shouldProcess(prop Property) (bool, error) {
	if prop.ConditionalExpression == "" {
		return true, nil
	}

	return validator.Validate(p.environment(), prop.ConditionalExpression)
}
