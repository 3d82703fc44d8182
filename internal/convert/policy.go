// Package convert translates tabular records into JSON-ready objects.
//
// Translation is driven by a Policy deciding, per field, whether the raw
// text becomes a JSON number, a string, or null. A Policy is compiled once
// at startup and shared read-only by every concurrent conversion.
package convert

import (
	"encoding/json"
	"fmt"

	"github.com/gobwas/glob"
)

// Mode selects the numeric inference strategy.
type Mode int

const (
	// ModeStrings emits every field as a JSON string.
	ModeStrings Mode = iota
	// ModeAuto attempts a numeric parse on every field, falling back to
	// string when the text is not a valid number.
	ModeAuto
	// ModeFields attempts a numeric parse only on fields whose header name
	// matches one of the configured wildcard patterns. An empty value in a
	// matching field becomes null.
	ModeFields
)

// Policy decides how raw field text maps to JSON values.
//
// The zero value behaves like ModeStrings. Construct with one of the
// New*Policy functions; a Policy is read-only after construction.
type Policy struct {
	mode     Mode
	patterns []glob.Glob
}

// NewStringPolicy returns a policy that keeps every field a string.
func NewStringPolicy() *Policy {
	return &Policy{mode: ModeStrings}
}

// NewAutoPolicy returns a policy that tries to parse every field as a number.
func NewAutoPolicy() *Policy {
	return &Policy{mode: ModeAuto}
}

// NewFieldPolicy returns a policy that tries numeric parsing only for header
// names matching one of the given wildcard patterns (* and ? are supported,
// matched against the whole name).
//
// Patterns are compiled here, once, never per row. An invalid pattern is a
// configuration error and aborts construction.
func NewFieldPolicy(patterns []string) (*Policy, error) {
	compiled := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid numeric field pattern %q: %w", p, err)
		}
		compiled = append(compiled, g)
	}
	return &Policy{mode: ModeFields, patterns: compiled}, nil
}

// Mode reports the inference strategy of the policy.
func (p *Policy) Mode() Mode {
	return p.mode
}

// Plan resolves the policy against one concrete header, deciding per column
// whether it is a number candidate. The plan is shared by every row of the
// file, so pattern matching runs once per header, not once per row.
func (p *Policy) Plan(header []string) Plan {
	numeric := make([]bool, len(header))
	switch p.mode {
	case ModeAuto:
		for i := range numeric {
			numeric[i] = true
		}
	case ModeFields:
		for i, name := range header {
			for _, g := range p.patterns {
				if g.Match(name) {
					numeric[i] = true
					break
				}
			}
		}
	}
	return Plan{mode: p.mode, numeric: numeric}
}

// Plan is a Policy resolved against one header.
type Plan struct {
	mode    Mode
	numeric []bool
}

// value maps one raw field to its JSON representation.
func (p Plan) value(col int, raw string) interface{} {
	if col >= len(p.numeric) || !p.numeric[col] {
		return raw
	}
	if p.mode == ModeFields && raw == "" {
		return nil
	}
	if isNumber(raw) {
		// json.Number re-emits the validated text verbatim, so integers
		// stay integers and precision is never lost to a float round trip.
		return json.Number(raw)
	}
	return raw
}
