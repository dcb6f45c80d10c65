// Package catalog holds the machine-readable description of the public API,
// served at GET /api.
package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed endpoints.yaml
var endpointsRawData []byte

// Endpoint describes one route of the API.
type Endpoint struct {
	Method       string         `yaml:"method" json:"method"`
	Path         string         `yaml:"path" json:"path"`
	Description  string         `yaml:"description" json:"description"`
	Queries      []string       `yaml:"queries,omitempty" json:"queries,omitempty"`
	RequestBody  map[string]any `yaml:"request_body,omitempty" json:"request_body,omitempty"`
	ExampleReply map[string]any `yaml:"example_response,omitempty" json:"example_response,omitempty"`
}

// Key is the catalogue key of the endpoint, e.g. "GET /api/articles".
func (e Endpoint) Key() string {
	return e.Method + " " + e.Path
}

// catalogFile is the top-level structure of the embedded YAML.
type catalogFile struct {
	Endpoints []Endpoint `yaml:"endpoints"`
}

// Catalog provides lazy-loaded access to the embedded endpoint catalogue.
type Catalog struct {
	once      sync.Once
	endpoints []Endpoint
	err       error
}

// NewCatalog creates a new Catalog that will parse the embedded YAML on first access.
func NewCatalog() *Catalog {
	return &Catalog{}
}

// Endpoints returns a copy of all catalogue entries in document order.
func (c *Catalog) Endpoints() ([]Endpoint, error) {
	c.once.Do(c.load)
	if c.err != nil {
		return nil, c.err
	}
	cp := make([]Endpoint, len(c.endpoints))
	copy(cp, c.endpoints)
	return cp, nil
}

// ByKey returns the catalogue as a map keyed by "METHOD /path".
func (c *Catalog) ByKey() (map[string]Endpoint, error) {
	eps, err := c.Endpoints()
	if err != nil {
		return nil, err
	}
	m := make(map[string]Endpoint, len(eps))
	for _, e := range eps {
		m[e.Key()] = e
	}
	return m, nil
}

// load parses the embedded YAML catalogue data.
func (c *Catalog) load() {
	var f catalogFile
	if err := yaml.Unmarshal(endpointsRawData, &f); err != nil {
		c.err = fmt.Errorf("catalog: parse yaml: %w", err)
		return
	}
	for i, e := range f.Endpoints {
		if e.Method == "" || e.Path == "" {
			c.err = fmt.Errorf("catalog: entry %d: method and path are required", i)
			return
		}
	}
	c.endpoints = f.Endpoints
}
