package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/vegasq/csv2json/internal/batch"
	"github.com/vegasq/csv2json/internal/convert"
	"github.com/vegasq/csv2json/internal/discover"
	"github.com/vegasq/csv2json/internal/logging"
)

// stringList collects the values of a repeatable string flag.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

var (
	outputFlag      = flag.String("o", "", "Output file or directory (default: <input>.json beside each input)")
	autoNumbersFlag = flag.Bool("auto-numbers", false, "Attempt numeric parsing on every field, falling back to string")
	prettyFlag      = flag.Bool("pretty", false, "Pretty print JSON output")
	jobsFlag        = flag.Int("jobs", 0, "Number of files converted in parallel (0 = number of CPUs)")
	reportFlag      = flag.Bool("report", false, "Print a per-file summary table to stderr when done")
	logLevelFlag    = flag.String("log-level", "info", "Log level: debug, info, warn, error, quiet")
	numericFields   stringList
)

func init() {
	flag.Var(&numericFields, "numeric-field", "Header name pattern whose values become numbers (* and ? wildcards, repeatable)")
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <pattern>...\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Converts csv (and parquet) files to json arrays.\n\n")
		fmt.Fprintf(os.Stderr, "With a single input and no -o, the array is written to stdout.\n")
		fmt.Fprintf(os.Stderr, "Otherwise each input gets a sibling <name>.json, or a mirrored\n")
		fmt.Fprintf(os.Stderr, "path beneath the -o directory.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s data.csv\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -o out 'data/*.csv'\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -auto-numbers -pretty data.csv\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -numeric-field 'score*' -numeric-field id data.csv\n", os.Args[0])
	}

	flag.Parse()

	if *jobsFlag < 0 {
		fmt.Fprintf(os.Stderr, "Error: -jobs must be non-negative, got %d\n", *jobsFlag)
		os.Exit(1)
	}
	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: missing input file argument\n\n")
		flag.Usage()
		os.Exit(1)
	}

	log := logging.New(os.Stderr, *logLevelFlag)

	policy, err := buildPolicy(*autoNumbersFlag, numericFields)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	units := discover.Collect(flag.Args(), *outputFlag, log)
	if len(units) == 0 {
		fmt.Fprintf(os.Stderr, "Error: no input files matched\n")
		os.Exit(1)
	}

	runner := &batch.Runner{
		Policy: policy,
		Pretty: *prettyFlag,
		Jobs:   *jobsFlag,
		Stdout: os.Stdout,
		Log:    log,
	}

	results, err := runner.Run(units)
	if *reportFlag {
		batch.WriteReport(os.Stderr, results)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildPolicy maps the flag surface to an inference policy. Auto numbers
// override any configured field patterns.
func buildPolicy(auto bool, fields []string) (*convert.Policy, error) {
	if auto {
		return convert.NewAutoPolicy(), nil
	}
	if len(fields) > 0 {
		return convert.NewFieldPolicy(fields)
	}
	return convert.NewStringPolicy(), nil
}
