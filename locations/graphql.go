// Copyright (c) 2023-2024, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package locations

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultPath is the content path of the location root
const DefaultPath = "/sitecore/content/company/company-dev/Data/Location"

// DefaultLanguage is the content language requested when none is set
const DefaultLanguage = "en"

// APIKeyHeader carries the access credential on every request
const APIKeyHeader = "sc_apikey"

// Query identifies the location root to read
type Query struct {
	Path     string `json:"path" yaml:"path"`
	Language string `json:"language" yaml:"language"`
}

// WithDefaults fills empty fields with DefaultPath and DefaultLanguage
func (q Query) WithDefaults() Query {
	if q.Path == "" {
		q.Path = DefaultPath
	}
	if q.Language == "" {
		q.Language = DefaultLanguage
	}

	return q
}

// locationsQuery requests three levels below the root, the index uses two
const locationsQuery = `query GetLocations($path: String!, $language: String!) {
  item(path: $path, language: $language) {
    children {
      results {
        name
        id
        children {
          results {
            name
            id
            children {
              results {
                name
                id
              }
            }
          }
        }
      }
    }
  }
}`

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type graphqlItem struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Children *graphqlChildren `json:"children"`
}

type graphqlChildren struct {
	Results []graphqlItem `json:"results"`
}

type graphqlResponse struct {
	Data struct {
		Item *graphqlItem `json:"item"`
	} `json:"data"`
	Errors []graphqlError `json:"errors"`
}

// GraphQLOption configures a GraphQLSource
type GraphQLOption func(*GraphQLSource)

// WithHTTPClient sets the HTTP client used for queries
func WithHTTPClient(c *http.Client) GraphQLOption {
	return func(s *GraphQLSource) {
		s.client = c
	}
}

// WithTimeout bounds the duration of a single fetch
func WithTimeout(d time.Duration) GraphQLOption {
	return func(s *GraphQLSource) {
		s.timeout = d
	}
}

// GraphQLSource reads the location tree from a content delivery GraphQL endpoint.
// One instance is meant to be created per process and reused.
type GraphQLSource struct {
	endpoint string
	apiKey   string
	client   *http.Client
	timeout  time.Duration
}

// NewGraphQLSource creates a source for endpoint authenticating with apiKey
func NewGraphQLSource(endpoint string, apiKey string, opts ...GraphQLOption) (*GraphQLSource, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("graphql endpoint is required")
	}

	s := &GraphQLSource{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   http.DefaultClient,
		timeout:  30 * time.Second,
	}

	for _, o := range opts {
		o(s)
	}

	return s, nil
}

// Fetch performs a single query and returns the children of the location root
func (s *GraphQLSource) Fetch(ctx context.Context, q Query) ([]Node, error) {
	q = q.WithDefaults()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	body, err := json.Marshal(graphqlRequest{
		Query:     locationsQuery,
		Variables: map[string]any{"path": q.Path, "language": q.Language},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if s.apiKey != "" {
		req.Header.Set(APIKeyHeader, s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("location query failed: %w", err)
	}
	defer resp.Body.Close()

	rb, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("location query failed: %s: %s", resp.Status, strings.TrimSpace(string(rb)))
	}

	var res graphqlResponse
	err = json.Unmarshal(rb, &res)
	if err != nil {
		return nil, fmt.Errorf("invalid location query response: %w", err)
	}

	if len(res.Errors) > 0 {
		msgs := make([]string, len(res.Errors))
		for i, e := range res.Errors {
			msgs[i] = e.Message
		}
		return nil, fmt.Errorf("location query failed: %s", strings.Join(msgs, "; "))
	}

	if res.Data.Item == nil {
		return nil, fmt.Errorf("location root %q not found", q.Path)
	}

	return res.Data.Item.children(), nil
}

func (i graphqlItem) children() []Node {
	if i.Children == nil {
		return nil
	}

	nodes := make([]Node, 0, len(i.Children.Results))
	for _, c := range i.Children.Results {
		nodes = append(nodes, Node{ID: c.ID, Name: c.Name, Children: c.children()})
	}

	return nodes
}
