package schema

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Document is the JSON Schema describing an install manifest.
//
//go:embed manifest.schema.json
var Document []byte

const resourceURL = "https://manifest-validator.local/manifest.schema.json"

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// Finding is one JSON Schema violation.
type Finding struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func compile() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(Document))
		if err != nil {
			compileErr = fmt.Errorf("failed to parse embedded schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(resourceURL, doc); err != nil {
			compileErr = fmt.Errorf("failed to add schema resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(resourceURL)
	})
	return compiled, compileErr
}

// Lint validates raw manifest bytes against the schema and returns the leaf findings.
// A non-nil error means the input or the schema itself could not be processed.
func Lint(data []byte) ([]Finding, error) {
	sch, err := compile()
	if err != nil {
		return nil, err
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	err = sch.Validate(inst)
	if err == nil {
		return nil, nil
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return nil, err
	}

	var findings []Finding
	collectLeaves(verr, &findings)
	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Path < findings[j].Path
	})
	return findings, nil
}

func collectLeaves(e *jsonschema.ValidationError, out *[]Finding) {
	if len(e.Causes) == 0 {
		*out = append(*out, Finding{
			Path:    "/" + strings.Join(e.InstanceLocation, "/"),
			Message: e.Error(),
		})
		return
	}
	for _, c := range e.Causes {
		collectLeaves(c, out)
	}
}
