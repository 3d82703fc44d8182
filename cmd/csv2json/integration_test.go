package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/vegasq/csv2json/internal/batch"
	"github.com/vegasq/csv2json/internal/convert"
	"github.com/vegasq/csv2json/internal/discover"
)

// writeCSV drops a csv file into dir and returns its path.
func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to make dirs: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	return path
}

func TestPipeline_SingleFileToStdout(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "a.csv", "id,name\n1,Alice\n2,Bob\n")

	units := discover.Collect([]string{filepath.Join(dir, "a.csv")}, "", zerolog.Nop())
	if len(units) != 1 || units[0].Output != "" {
		t.Fatalf("units = %v, want one stdout unit", units)
	}

	var stdout bytes.Buffer
	runner := &batch.Runner{Policy: convert.NewStringPolicy(), Stdout: &stdout, Log: zerolog.Nop()}
	if _, err := runner.Run(units); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	want := "[{\"id\":\"1\",\"name\":\"Alice\"},\n{\"id\":\"2\",\"name\":\"Bob\"}]\n"
	if got := stdout.String(); got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestPipeline_GlobToOutputDirectory(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "data/a.csv", "id\n1\n")
	writeCSV(t, dir, "data/b.csv", "id\n2\n")
	outDir := filepath.Join(dir, "out")

	// Derivation mirrors the input layout beneath the output directory.
	units := discover.Collect([]string{filepath.Join(dir, "data", "*.csv")}, outDir, zerolog.Nop())
	if len(units) != 2 {
		t.Fatalf("discovered %d units, want 2", len(units))
	}

	runner := &batch.Runner{Log: zerolog.Nop()}
	if _, err := runner.Run(units); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	for _, u := range units {
		data, err := os.ReadFile(u.Output)
		if err != nil {
			t.Fatalf("output for %s missing: %v", u.Input, err)
		}
		var parsed []map[string]interface{}
		if err := json.Unmarshal(data, &parsed); err != nil {
			t.Fatalf("output for %s is not valid JSON: %v", u.Input, err)
		}
		if len(parsed) != 1 {
			t.Errorf("output for %s has %d elements, want 1", u.Input, len(parsed))
		}
	}
}

func TestPipeline_PrettyPrint(t *testing.T) {
	dir := t.TempDir()
	input := writeCSV(t, dir, "a.csv", "id\n1\n")

	var stdout bytes.Buffer
	runner := &batch.Runner{Pretty: true, Stdout: &stdout, Log: zerolog.Nop()}
	if _, err := runner.Run([]discover.Unit{{Input: input}}); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	want := "[{\n  \"id\": \"1\"\n}]\n"
	if got := stdout.String(); got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestBuildPolicy(t *testing.T) {
	tests := []struct {
		name    string
		auto    bool
		fields  []string
		want    convert.Mode
		wantErr bool
	}{
		{name: "default keeps strings", want: convert.ModeStrings},
		{name: "auto numbers", auto: true, want: convert.ModeAuto},
		{name: "field patterns", fields: []string{"score*"}, want: convert.ModeFields},
		{name: "auto overrides fields", auto: true, fields: []string{"score*"}, want: convert.ModeAuto},
		{name: "invalid pattern", fields: []string{"[bad"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy, err := buildPolicy(tt.auto, tt.fields)
			if (err != nil) != tt.wantErr {
				t.Fatalf("buildPolicy() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if policy.Mode() != tt.want {
				t.Errorf("Mode() = %v, want %v", policy.Mode(), tt.want)
			}
		})
	}
}
