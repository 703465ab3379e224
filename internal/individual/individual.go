// Package individual is the boundary to the domain-object collaborator: an
// Individual carries raw stored bytes and parses them into predicate/resource
// form. Storage backends only ever set raw bytes and ask for a parse verdict;
// they never interpret the structure themselves.
package individual

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Resource is one value of a predicate.
type Resource struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Individual is a structured record identified by URI. The raw form is the
// JSON object `{"@": "<uri>", "<predicate>": [<resources>...], ...}`.
type Individual struct {
	id        string
	raw       []byte
	resources map[string][]Resource
}

// SetRaw replaces the raw bytes and drops any previously parsed state.
func (ind *Individual) SetRaw(data []byte) {
	ind.raw = bytes.Clone(data)
	ind.id = ""
	ind.resources = nil
}

// Raw returns the raw bytes last set on the individual.
func (ind *Individual) Raw() []byte { return ind.raw }

// RawLen returns the length of the raw bytes.
func (ind *Individual) RawLen() int { return len(ind.raw) }

// ID returns the individual's URI. Empty until a successful Parse.
func (ind *Individual) ID() string { return ind.id }

// Get returns the resources of one predicate, or nil if absent/unparsed.
func (ind *Individual) Get(predicate string) []Resource {
	return ind.resources[predicate]
}

// Predicates returns the number of parsed predicates, "@" excluded.
func (ind *Individual) Predicates() int { return len(ind.resources) }

// Parse interprets the individual's raw bytes. It fails when the bytes are
// not a JSON object, the "@" identifier is missing or not a string, or any
// predicate value is not a resource list.
func Parse(ind *Individual) error {
	if len(ind.raw) == 0 {
		return fmt.Errorf("individual: empty raw data")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(ind.raw, &fields); err != nil {
		return fmt.Errorf("individual: decoding raw object: %w", err)
	}

	rawID, ok := fields["@"]
	if !ok {
		return fmt.Errorf("individual: missing @ identifier")
	}
	var id string
	if err := json.Unmarshal(rawID, &id); err != nil || id == "" {
		return fmt.Errorf("individual: invalid @ identifier")
	}

	resources := make(map[string][]Resource, len(fields)-1)
	for predicate, raw := range fields {
		if predicate == "@" {
			continue
		}
		var list []Resource
		if err := json.Unmarshal(raw, &list); err != nil {
			return fmt.Errorf("individual: predicate %q: %w", predicate, err)
		}
		resources[predicate] = list
	}

	ind.id = id
	ind.resources = resources
	return nil
}
