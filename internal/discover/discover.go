// Package discover expands input patterns into processing units.
//
// A unit pairs one resolved input file with its derived output destination.
// Discovery failures (a pattern that matches nothing, an unreadable literal
// path) are logged and skipped so the rest of the batch proceeds; they never
// abort the run. A unit that later fails to convert is a different, fatal
// tier of error handled by the batch package.
package discover

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Unit pairs one input file with its output destination. An empty Output
// means the JSON array goes to the process's standard output stream. Units
// are value objects: created here, consumed once, never mutated.
type Unit struct {
	Input  string
	Output string
}

// Collect expands the given patterns against the filesystem and derives an
// output path for every match.
//
// A pattern without glob metacharacters is a literal path and must exist.
// With no output setting and exactly one resolved input, the single unit
// targets stdout; otherwise every unit gets a file path from DerivePath.
func Collect(patterns []string, output string, log zerolog.Logger) []Unit {
	inputs := expand(patterns, log)

	if output == "" && len(inputs) == 1 {
		return []Unit{{Input: inputs[0]}}
	}

	units := make([]Unit, 0, len(inputs))
	for _, input := range inputs {
		units = append(units, Unit{
			Input:  input,
			Output: DerivePath(output, input, len(inputs)),
		})
	}
	return units
}

// expand resolves each pattern to concrete paths, skipping entries that
// cannot be resolved.
func expand(patterns []string, log zerolog.Logger) []string {
	var inputs []string
	for _, pattern := range patterns {
		// Not a glob pattern: treat as a literal path.
		if !strings.ContainsAny(pattern, "*?[") {
			if _, err := os.Stat(pattern); err != nil {
				log.Warn().Err(err).Str("path", pattern).Msg("skipping unreadable input")
				continue
			}
			inputs = append(inputs, pattern)
			continue
		}

		matches, err := filepath.Glob(pattern)
		if err != nil {
			log.Warn().Err(err).Str("pattern", pattern).Msg("skipping invalid pattern")
			continue
		}
		if len(matches) == 0 {
			log.Warn().Str("pattern", pattern).Msg("pattern matched no files")
			continue
		}
		inputs = append(inputs, matches...)
	}
	return inputs
}

// DerivePath computes the output path for one input given the output
// setting and the number of units in the batch. It is pure: directory
// creation happens separately in EnsureDir.
//
// Rules: an empty setting appends ".json" beside the input; a setting
// ending in ".json" names the file verbatim when the batch has exactly one
// unit; anything else is a directory base under which the input's relative
// nesting is preserved. More than one unit always gets directory semantics,
// even when the setting looks like a file path.
func DerivePath(output, input string, units int) string {
	if output == "" {
		return input + ".json"
	}
	if units == 1 && strings.EqualFold(filepath.Ext(output), ".json") {
		return output
	}
	return filepath.Join(output, filepath.Dir(input), filepath.Base(input)+".json")
}

// EnsureDir creates the parent directory of path, including intermediates.
// It is idempotent and safe to call concurrently for sibling outputs that
// share a parent.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
