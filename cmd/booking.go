// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/choria-io/booking"
	"github.com/choria-io/booking/forms"
	"github.com/choria-io/booking/internal/api"
	"github.com/choria-io/booking/internal/config"
	"github.com/choria-io/booking/sink"
	"github.com/choria-io/fisk"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"
)

const (
	endpointEnv = "BOOKING_GRAPHQL_ENDPOINT"
	apiKeyEnv   = "BOOKING_API_KEY"
)

var (
	configFile    string
	envFiles      []string
	debug         bool
	endpoint      string
	apiKey        string
	language      string
	locationsFile string
	sinkFormat    string
	sinkTemplate  string
	sinkExec      string
	formFile      string
	bookingFile   string
	submit        bool
	listen        string
	jsonOutput    bool
	version       string
)

func main() {
	// .env in the working directory feeds the environment variable defaults below
	err := config.LoadEnvFiles()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load .env: %v\n", err)
		os.Exit(1)
	}

	app := fisk.New("booking", "Vehicle service appointment bookings")
	app.Version(version)

	app.Help = `
Fill, validate and submit vehicle service appointment bookings.

Countries and cities are read from a GraphQL content service or a local file,
valid bookings are handed to the configured sinks.
`
	app.Flag("config", "Configuration file to load").Short('c').PlaceHolder("FILE").ExistingFileVar(&configFile)
	app.Flag("env-file", "Loads environment variables from a file").PlaceHolder("FILE").ExistingFilesVar(&envFiles)
	app.Flag("debug", "Enables debug logging").UnNegatableBoolVar(&debug)
	app.Flag("endpoint", "GraphQL endpoint serving locations").Envar(endpointEnv).PlaceHolder("URL").StringVar(&endpoint)
	app.Flag("api-key", "Access key for the GraphQL endpoint").Envar(apiKeyEnv).PlaceHolder("KEY").StringVar(&apiKey)
	app.Flag("language", "Content language of the location data").StringVar(&language)
	app.Flag("locations-file", "Reads locations from a YAML or JSON file").PlaceHolder("FILE").ExistingFileVar(&locationsFile)
	app.Flag("output", "Writes submitted bookings to stdout (json, yaml)").EnumVar(&sinkFormat, "json", "yaml")
	app.Flag("template", "Renders submitted bookings using a template file").PlaceHolder("FILE").ExistingFileVar(&sinkTemplate)
	app.Flag("exec", "Runs a command for every submitted booking, {} is replaced by the booking file").PlaceHolder("COMMAND").StringVar(&sinkExec)

	fill := app.Command("fill", "Fills in a booking interactively").Default().Action(fillAction)
	fill.HelpLong(`
Walks through every section of the booking asking for each field, countries and
cities are offered from the location data when available.

A custom form can be given, the shell environment is available as ENVIRONMENT
in form descriptions and conditions.
`)
	fill.Flag("form", "Loads the questions from a form file").PlaceHolder("FILE").ExistingFileVar(&formFile)

	locs := app.Command("locations", "Shows the available countries and cities").Alias("ls").Action(locationsAction)
	locs.Flag("json", "Produce JSON output").UnNegatableBoolVar(&jsonOutput)

	validate := app.Command("validate", "Validates a booking file").Action(validateAction)
	validate.Arg("file", "JSON or YAML file holding the booking").Required().ExistingFileVar(&bookingFile)
	validate.Flag("submit", "Submits the booking when valid").UnNegatableBoolVar(&submit)

	serve := app.Command("serve", "Serves the booking API").Action(serveAction)
	serve.Flag("listen", "Address to listen on").PlaceHolder("ADDRESS").StringVar(&listen)

	app.MustParseWithUsage(os.Args[1:])
}

// setup loads the configuration and applies command line overrides
func setup() (*config.Config, *logger, error) {
	if len(envFiles) > 0 {
		err := config.LoadEnvFiles(envFiles...)
		if err != nil {
			return nil, nil, err
		}
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, err
	}

	if endpoint == "" {
		endpoint = os.Getenv(endpointEnv)
	}
	if apiKey == "" {
		apiKey = os.Getenv(apiKeyEnv)
	}

	override := func(target *string, val string) {
		if val != "" {
			*target = val
		}
	}

	override(&cfg.Endpoint, endpoint)
	override(&cfg.APIKey, apiKey)
	override(&cfg.Language, language)
	override(&cfg.LocationsFile, locationsFile)
	override(&cfg.Listen, listen)
	override(&cfg.Sink.Format, sinkFormat)
	override(&cfg.Sink.Exec, sinkExec)
	if sinkTemplate != "" {
		cfg.Sink.Template = &sink.TemplateConfig{TemplateFile: sinkTemplate}
	}

	return cfg, newLogger(os.Stderr, debug), nil
}

// controller creates a controller wired to the configured source and sinks
func controller(cfg *config.Config, log *logger) (*booking.Controller, error) {
	opts := []booking.Option{booking.WithLogger(log), booking.WithQuery(cfg.Query())}

	src, err := cfg.LocationSource()
	switch {
	case errors.Is(err, config.ErrNoLocationSource):
		log.Debugf("No location source configured, countries and cities will be free text")
	case err != nil:
		return nil, err
	default:
		opts = append(opts, booking.WithLocationSource(src))
	}

	sinks, err := cfg.Sinks(os.Stdout, log)
	if err != nil {
		return nil, err
	}
	if sinks != nil {
		opts = append(opts, booking.WithSink(sinks))
	}

	return booking.New(opts...), nil
}

func environment() map[string]any {
	envData := map[string]string{}
	for _, val := range os.Environ() {
		parts := strings.SplitN(val, "=", 2)
		if len(parts) != 2 {
			continue
		}
		envData[parts[0]] = parts[1]
	}

	return map[string]any{"ENVIRONMENT": envData}
}

func fillAction(_ *fisk.ParseContext) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	c, err := controller(cfg, log)
	if err != nil {
		return err
	}

	ctx := context.Background()

	if cfg.Endpoint != "" || cfg.LocationsFile != "" {
		status := c.LoadLocations(ctx)
		if status != booking.LocationsReady {
			log.Infof("Location data is %s, countries and cities will be free text", status)
		}
	}

	if formFile != "" {
		err = forms.ProcessFile(formFile, c, environment())
	} else {
		var form forms.Form
		form, err = forms.DefaultForm()
		if err == nil {
			err = forms.ProcessForm(form, c, environment())
		}
	}
	if err != nil {
		return err
	}

	return submitBooking(ctx, c)
}

func submitBooking(ctx context.Context, c *booking.Controller) error {
	ok, err := c.Submit(ctx)
	if err != nil {
		return err
	}

	if !ok {
		showSections(booking.ValidateSections(c.Form()))
		return fmt.Errorf("booking is incomplete")
	}

	fmt.Println("Booking submitted")

	return nil
}

func showSections(res booking.SectionResults) {
	failed := res.Failed()

	tbl := table.NewWriter()
	tbl.SetOutputMirror(os.Stdout)
	tbl.SetStyle(table.StyleRounded)
	tbl.AppendHeader(table.Row{"Section", "Complete"})
	for _, s := range booking.Sections {
		complete := "yes"
		for _, f := range failed {
			if f == s {
				complete = "no"
			}
		}
		tbl.AppendRow(table.Row{s, complete})
	}
	tbl.Render()
}

func locationsAction(_ *fisk.ParseContext) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	c, err := controller(cfg, log)
	if err != nil {
		return err
	}

	status := c.LoadLocations(context.Background())
	if status != booking.LocationsReady {
		return fmt.Errorf("location data is %s", status)
	}

	idx := c.LocationIndex()

	if jsonOutput {
		j, err := json.MarshalIndent(map[string]any{"countries": idx.Countries(), "cities": idx.Map()}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(j))
		return nil
	}

	tbl := table.NewWriter()
	tbl.SetOutputMirror(os.Stdout)
	tbl.SetStyle(table.StyleRounded)
	tbl.AppendHeader(table.Row{"Country", "Cities"})
	for _, country := range idx.Countries() {
		tbl.AppendRow(table.Row{country, strings.Join(idx.Cities(country), ", ")})
	}
	tbl.AppendFooter(table.Row{fmt.Sprintf("%d countries", idx.Len()), ""})
	tbl.Render()

	return nil
}

func validateAction(_ *fisk.ParseContext) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	fb, err := os.ReadFile(bookingFile)
	if err != nil {
		return err
	}

	// JSON documents are valid YAML
	var d booking.FormData
	err = yaml.Unmarshal(fb, &d)
	if err != nil {
		return fmt.Errorf("invalid booking %s: %w", bookingFile, err)
	}

	c, err := controller(cfg, log)
	if err != nil {
		return err
	}
	c.Replace(d)

	res := booking.ValidateSections(c.Form())
	if !submit {
		showSections(res)
		if !res.Valid() {
			return fmt.Errorf("booking is incomplete")
		}
		return nil
	}

	return submitBooking(context.Background(), c)
}

func serveAction(_ *fisk.ParseContext) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	opts := []api.Option{api.WithLogger(log), api.WithAllowedOrigins(cfg.AllowedOrigins...)}
	if cfg.SessionLimit > 0 {
		opts = append(opts, api.WithSessionLimit(cfg.SessionLimit))
	}
	if cfg.SessionIdleTimeout > 0 {
		opts = append(opts, api.WithSessionIdleTimeout(cfg.SessionIdleTimeout))
	}

	src, err := cfg.LocationSource()
	if err != nil {
		return err
	}
	opts = append(opts, api.WithLocationSource(src, cfg.Query()))

	sinks, err := cfg.Sinks(os.Stdout, log)
	if err != nil {
		return err
	}
	if sinks != nil {
		opts = append(opts, api.WithSink(sinks))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	srv := api.New(opts...)
	status := srv.RefreshLocations(ctx)
	if status != booking.LocationsReady {
		log.Errorf("Location data is %s, retry using POST /locations/refresh", status)
	}

	return srv.Run(ctx, cfg.Listen)
}
