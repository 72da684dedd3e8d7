// Package catalog loads and runs conformance catalogs: YAML files listing
// builtin invocations together with the output or the failure each one
// must produce.
//
// A catalog looks like:
//
//	name: core
//	cases:
//	  - id: length-of-boolean
//	    builtin: length
//	    args: ["true"]
//	    error: true has no length
//	    kind: Length
//	  - id: add-numbers
//	    builtin: "+"
//	    args: ["1", "2"]
//	    output: "3"
//	    check: output == 3.0
//
// Arguments and outputs are JSON texts. A case expects exactly one of an
// output, an error message, or a failure kind (an error message may be
// combined with a kind). The optional check is an expr-lang boolean
// evaluated over the outcome.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/dshills/jqrt/pkg/builtin"
	"github.com/dshills/jqrt/pkg/failure"
)

// ErrInvalidCatalog is wrapped by every load and validation error.
var ErrInvalidCatalog = errors.New("invalid catalog")

//go:embed schema.json
var schema []byte

var schemaLoader = gojsonschema.NewBytesLoader(schema)

// Catalog is a named list of conformance cases.
type Catalog struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Cases       []Case `yaml:"cases"`

	// Path is the file the catalog was loaded from, if any.
	Path string `yaml:"-"`
}

// Case is one builtin invocation and its expected outcome.
type Case struct {
	ID      string   `yaml:"id"`
	Builtin string   `yaml:"builtin"`
	Args    []string `yaml:"args,omitempty"`
	Output  *string  `yaml:"output,omitempty"`
	Error   *string  `yaml:"error,omitempty"`
	Kind    string   `yaml:"kind,omitempty"`
	Check   string   `yaml:"check,omitempty"`
}

// ExpectsFailure reports whether the case must fail.
func (c Case) ExpectsFailure() bool {
	return c.Output == nil
}

// Load reads and validates a catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	cat, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cat.Path = path
	return cat, nil
}

// Parse decodes catalog YAML, validates it against the catalog schema and
// checks that every builtin and failure kind it names exists.
func Parse(data []byte) (*Catalog, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidCatalog)
	}

	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: failed to parse YAML: %v", ErrInvalidCatalog, err)
	}
	if err := validateSchema(doc); err != nil {
		return nil, err
	}

	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("%w: failed to decode catalog: %v", ErrInvalidCatalog, err)
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return &cat, nil
}

func validateSchema(doc interface{}) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("%w: schema validation error: %v", ErrInvalidCatalog, err)
	}

	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
		}
		return fmt.Errorf("%w: %s", ErrInvalidCatalog, strings.Join(msgs, "; "))
	}
	return nil
}

// Validate checks the semantic rules the schema cannot express.
func (c *Catalog) Validate() error {
	seen := make(map[string]bool, len(c.Cases))
	for _, tc := range c.Cases {
		if seen[tc.ID] {
			return fmt.Errorf("%w: duplicate case id %q", ErrInvalidCatalog, tc.ID)
		}
		seen[tc.ID] = true

		if _, err := builtin.Lookup(tc.Builtin); err != nil {
			return fmt.Errorf("%w: case %s: %v", ErrInvalidCatalog, tc.ID, err)
		}
		if tc.Kind != "" {
			if _, err := failure.ParseKind(tc.Kind); err != nil {
				return fmt.Errorf("%w: case %s: %v", ErrInvalidCatalog, tc.ID, err)
			}
		}
	}
	return nil
}
