// Copyright (c) 2023-2024, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package sink provides destinations for booking forms that passed validation.
package sink

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/CloudyKit/jet/v6"
	"github.com/choria-io/booking"
	"github.com/choria-io/booking/internal/sprig"
)

// Template engines supported by the template sink
const (
	GoEngine  = "go"
	JetEngine = "jet"
)

// TemplateConfig configures a template sink
type TemplateConfig struct {
	// Engine is the template engine to use, go or jet, defaults to go
	Engine string `yaml:"engine"`
	// Template is the template body, mutually exclusive with TemplateFile
	Template string `yaml:"template"`
	// TemplateFile reads the template body from a file
	TemplateFile string `yaml:"template_file"`
	// Output is a template producing the path of the rendered file, when empty output goes to the writer
	Output string `yaml:"output"`
	// CustomLeftDelimiter sets a custom template delimiter
	CustomLeftDelimiter string `yaml:"left_delimiter"`
	// CustomRightDelimiter sets a custom template delimiter
	CustomRightDelimiter string `yaml:"right_delimiter"`
}

// TemplateSink renders each submission through a template, either into a file or a writer
type TemplateSink struct {
	cfg    TemplateConfig
	body   string
	root   string
	writer io.Writer
	log    booking.Logger
	now    func() time.Time
}

// NewTemplate creates a template sink writing to w when cfg.Output is empty
func NewTemplate(cfg TemplateConfig, w io.Writer) (*TemplateSink, error) {
	if cfg.Engine == "" {
		cfg.Engine = GoEngine
	}

	if cfg.Engine != GoEngine && cfg.Engine != JetEngine {
		return nil, fmt.Errorf("unsupported template engine %q", cfg.Engine)
	}

	body := cfg.Template
	switch {
	case cfg.Template != "" && cfg.TemplateFile != "":
		return nil, fmt.Errorf("template and template_file are mutually exclusive")

	case cfg.TemplateFile != "":
		tb, err := os.ReadFile(cfg.TemplateFile)
		if err != nil {
			return nil, fmt.Errorf("cannot read template: %w", err)
		}
		body = string(tb)

	case cfg.Template == "":
		return nil, fmt.Errorf("no template provided")
	}

	if cfg.Output == "" && w == nil {
		w = os.Stdout
	}

	s := &TemplateSink{cfg: cfg, body: body, writer: w, now: time.Now}

	if cfg.Output != "" {
		root, err := filepath.Abs(outputRoot(cfg))
		if err != nil {
			return nil, err
		}
		s.root = root
	}

	return s, nil
}

// outputRoot is the directory named by the static part of the output template,
// rendered paths have to stay below it
func outputRoot(cfg TemplateConfig) string {
	left := "{{"
	if cfg.CustomLeftDelimiter != "" && cfg.CustomRightDelimiter != "" {
		left = cfg.CustomLeftDelimiter
	}

	prefix := cfg.Output
	if i := strings.Index(prefix, left); i >= 0 {
		prefix = prefix[:i]
	}

	switch {
	case prefix == "":
		return "."
	case strings.HasSuffix(prefix, string(filepath.Separator)):
		return prefix
	default:
		return filepath.Dir(prefix)
	}
}

// confine resolves path and fails when it is outside the output root
func (s *TemplateSink) confine(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	rel, err := filepath.Rel(s.root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("output path %q is outside %s", path, s.root)
	}

	return abs, nil
}

// Logger configures a logger to use, no logging is done without this
func (s *TemplateSink) Logger(log booking.Logger) {
	s.log = log
}

// Submit renders d and writes the result
func (s *TemplateSink) Submit(_ context.Context, d booking.FormData) error {
	data := templateData(d, s.now())

	res, err := s.render("booking", s.body, data)
	if err != nil {
		return err
	}

	if s.cfg.Output == "" {
		_, err = s.writer.Write(res)
		return err
	}

	out, err := s.render("output", s.cfg.Output, data)
	if err != nil {
		return err
	}

	path := string(bytes.TrimSpace(out))
	if path == "" {
		return fmt.Errorf("output template produced an empty path")
	}

	path, err = s.confine(path)
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(path), 0755)
	if err != nil {
		return err
	}

	err = os.WriteFile(path, res, 0644)
	if err != nil {
		return err
	}

	if s.log != nil {
		s.log.Infof("Rendered booking to %s", path)
	}

	return nil
}

func templateData(d booking.FormData, now time.Time) map[string]any {
	return map[string]any{
		"Form":        d.Map(),
		"SubmittedAt": now.UTC().Format(time.RFC3339),
	}
}

func (s *TemplateSink) render(name string, body string, data any) ([]byte, error) {
	switch s.cfg.Engine {
	case JetEngine:
		return s.renderJet(name, body, data)
	default:
		return s.renderGoTempl(name, body, data)
	}
}

func (s *TemplateSink) renderGoTempl(name string, body string, data any) ([]byte, error) {
	buf := bytes.NewBuffer([]byte{})
	templ := template.New(name).Funcs(sprig.TxtFuncMap())

	if s.cfg.CustomLeftDelimiter != "" && s.cfg.CustomRightDelimiter != "" {
		templ.Delims(s.cfg.CustomLeftDelimiter, s.cfg.CustomRightDelimiter)
	}

	templ, err := templ.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parsing template %v failed: %w", name, err)
	}

	err = templ.Execute(buf, data)
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (s *TemplateSink) renderJet(name string, body string, data any) ([]byte, error) {
	loader := jet.NewInMemLoader()
	loader.Set(name, body)

	opts := []jet.Option{jet.WithSafeWriter(nil)}
	if s.cfg.CustomLeftDelimiter != "" && s.cfg.CustomRightDelimiter != "" {
		opts = append(opts, jet.WithDelims(s.cfg.CustomLeftDelimiter, s.cfg.CustomRightDelimiter))
	}

	set := jet.NewSet(loader, opts...)
	for k, fn := range sprig.GenericFuncMap() {
		set.AddGlobal(k, fn)
	}

	t, err := set.GetTemplate(name)
	if err != nil {
		return nil, fmt.Errorf("parsing template %v failed: %w", name, err)
	}

	buf := bytes.NewBuffer([]byte{})
	err = t.Execute(buf, nil, data)
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
