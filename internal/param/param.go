// Package param models a job's input parameters as the source's
// ParameterSet/Parameter/ParameterGroup triple: a named, optionally
// grouped collection of values, validated against a JSON Schema before a
// job is allowed to run. Where the source builds this structure with a
// LinkedList of tagged-union Parameter nodes, Go represents the value
// directly as interface{} inside encoding/json's own decode path.
package param

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Level mirrors the source's ParameterLevel: whether a Parameter should
// be shown in a simple or an advanced view of a job's inputs.
type Level int

const (
	LevelSimple Level = iota
	LevelAdvanced
)

// Parameter is a single named input value.
type Parameter struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Level       Level  `json:"level"`
	Value       any    `json:"value"`
}

// Group is a named collection of Parameters shown together, mirroring
// ParameterGroup.
type Group struct {
	Name       string      `json:"name"`
	Parameters []Parameter `json:"parameters"`
}

// Set is an optionally-named, optionally-described collection of
// Parameters and Groups, mirroring ParameterSet.
type Set struct {
	Name        string      `json:"name,omitempty"`
	Description string      `json:"description,omitempty"`
	Parameters  []Parameter `json:"parameters"`
	Groups      []Group     `json:"groups,omitempty"`
}

// NewSet creates an empty Set with the given name and description.
func NewSet(name, description string) *Set {
	return &Set{Name: name, Description: description}
}

// Add appends a Parameter to the Set directly, outside of any Group.
func (s *Set) Add(p Parameter) {
	s.Parameters = append(s.Parameters, p)
}

// AddToGroup appends a Parameter to the named Group, creating the Group
// if it does not already exist.
func (s *Set) AddToGroup(groupName string, p Parameter) {
	for i := range s.Groups {
		if s.Groups[i].Name == groupName {
			s.Groups[i].Parameters = append(s.Groups[i].Parameters, p)
			return
		}
	}
	s.Groups = append(s.Groups, Group{Name: groupName, Parameters: []Parameter{p}})
}

// Find returns the named Parameter, searching ungrouped Parameters first
// and then every Group in order, and reports whether it was found.
func (s *Set) Find(name string) (Parameter, bool) {
	for _, p := range s.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	for _, g := range s.Groups {
		for _, p := range g.Parameters {
			if p.Name == name {
				return p, true
			}
		}
	}
	return Parameter{}, false
}

// Validator validates a decoded JSON value against a compiled JSON
// Schema, adapting the single compile-then-validate call the basics
// package demonstrates against a file on disk into one that works
// against an in-memory schema document.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles schemaJSON as a JSON Schema document.
func NewValidator(schemaName string, schemaJSON []byte) (*Validator, error) {
	var doc any
	if err := json.Unmarshal(schemaJSON, &doc); err != nil {
		return nil, fmt.Errorf("param: decoding schema %q: %w", schemaName, err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaName, doc); err != nil {
		return nil, fmt.Errorf("param: adding schema resource %q: %w", schemaName, err)
	}

	schema, err := compiler.Compile(schemaName)
	if err != nil {
		return nil, fmt.Errorf("param: compiling schema %q: %w", schemaName, err)
	}

	return &Validator{schema: schema}, nil
}

// ValidateSet collects the Set's values (ungrouped and grouped) into one
// flat map keyed by parameter name and validates that map against the
// compiled schema.
func (v *Validator) ValidateSet(s *Set) error {
	return v.Validate(s.flattenValues())
}

// Validate validates an already-decoded JSON value directly.
func (v *Validator) Validate(data any) error {
	if err := v.schema.Validate(data); err != nil {
		return fmt.Errorf("param: validation failed: %w", err)
	}
	return nil
}

func (s *Set) flattenValues() map[string]any {
	out := make(map[string]any, len(s.Parameters))
	for _, p := range s.Parameters {
		out[p.Name] = p.Value
	}
	for _, g := range s.Groups {
		for _, p := range g.Parameters {
			out[p.Name] = p.Value
		}
	}
	return out
}

// DecodeValue re-decodes a Parameter's already-unmarshalled value into
// dst, for callers that know the concrete type they expect (an int
// parameter that arrived as float64 through the generic interface{},
// for example).
func DecodeValue(value any, dst any) error {
	buf, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("param: re-encoding value: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(buf))
	dec.UseNumber()
	return dec.Decode(dst)
}
