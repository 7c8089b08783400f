// Copyright (c) 2023-2024, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package locations

import (
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// FileSource reads the location tree from a YAML or JSON file, the query is ignored
type FileSource struct {
	path string
}

// NewFileSource creates a source reading from path
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Fetch reads and parses the file on every call
func (f *FileSource) Fetch(_ context.Context, _ Query) ([]Node, error) {
	fb, err := os.ReadFile(f.path)
	if err != nil {
		return nil, err
	}

	return ParseBytes(fb)
}

// ParseReader parses a YAML or JSON tree from r
func ParseReader(r io.Reader) ([]Node, error) {
	fb, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return ParseBytes(fb)
}

// ParseBytes parses a YAML or JSON list of nodes, JSON being a subset of YAML
func ParseBytes(b []byte) ([]Node, error) {
	var tree []Node
	err := yaml.Unmarshal(b, &tree)
	if err != nil {
		return nil, fmt.Errorf("invalid location data: %w", err)
	}

	return tree, nil
}

// StaticSource serves a fixed tree, used for embedded data and tests
type StaticSource []Node

// Fetch returns the tree
func (s StaticSource) Fetch(_ context.Context, _ Query) ([]Node, error) {
	return s, nil
}
