// Package batch fans conversion of the discovered units out over a worker
// pool and aggregates per-unit outcomes.
//
// Units are independent by construction: they share only the read-only
// inference policy and the logger, so one unit's failure never aborts its
// siblings. The runner reports the first failure it observed once every
// unit has run to completion.
package batch

import (
	"errors"
	"io"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/vegasq/csv2json/internal/convert"
	"github.com/vegasq/csv2json/internal/discover"
	"github.com/vegasq/csv2json/internal/output"
	"github.com/vegasq/csv2json/internal/reader"
)

// Result records the outcome of one processing unit. Every discovered unit
// produces exactly one Result.
type Result struct {
	Unit    discover.Unit
	Rows    int // rows written to the output array
	Skipped int // malformed rows dropped along the way
	Err     error
}

// Runner converts processing units in parallel.
//
// Policy and Log are shared read-only across workers; a nil Policy keeps
// every field a string.
type Runner struct {
	Policy *convert.Policy
	Pretty bool
	Jobs   int       // worker bound; 0 or less means GOMAXPROCS
	Stdout io.Writer // sink for units without an output path; nil means os.Stdout
	Log    zerolog.Logger
}

// Run converts every unit, returning one result per unit in input order and
// the first failure observed. Sibling conversions run to completion even
// when one fails, and their outputs stay on disk.
func (r *Runner) Run(units []discover.Unit) ([]Result, error) {
	results := make([]Result, len(units))

	jobs := r.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	var g errgroup.Group
	g.SetLimit(jobs)

	for i, unit := range units {
		i, unit := i, unit
		g.Go(func() error {
			rows, skipped, err := r.convert(unit)
			// Each goroutine owns exactly one slot, so no locking.
			results[i] = Result{Unit: unit, Rows: rows, Skipped: skipped, Err: err}
			return err
		})
	}

	return results, g.Wait()
}

// convert runs the full pipeline for one unit: open input, read header,
// translate rows, stream the JSON array to the sink.
func (r *Runner) convert(unit discover.Unit) (rows, skipped int, err error) {
	src, err := reader.Open(unit.Input)
	if err != nil {
		kind := KindHeaderRead
		if errors.Is(err, os.ErrNotExist) {
			// Discovery saw this file; it vanished before open.
			kind = KindInputNotFound
		}
		return 0, 0, &UnitError{Kind: kind, Input: unit.Input, Err: err}
	}
	defer func() { _ = src.Close() }()

	sink, done, err := r.openSink(unit)
	if err != nil {
		return 0, 0, &UnitError{Kind: KindOutputWrite, Input: unit.Input, Err: err}
	}

	rows, skipped, err = r.stream(unit, src, sink)

	if cerr := done(); cerr != nil && err == nil {
		err = &UnitError{Kind: KindOutputWrite, Input: unit.Input, Err: cerr}
	}
	return rows, skipped, err
}

// openSink resolves the unit's destination: the runner's stdout writer for
// stream mode, otherwise a freshly created file beneath freshly ensured
// directories. The returned func finalizes the sink.
func (r *Runner) openSink(unit discover.Unit) (io.Writer, func() error, error) {
	if unit.Output == "" {
		w := r.Stdout
		if w == nil {
			w = os.Stdout
		}
		return w, func() error { return nil }, nil
	}

	if err := discover.EnsureDir(unit.Output); err != nil {
		return nil, nil, err
	}
	f, err := os.Create(unit.Output)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

// stream does the single forward pass: one record in, one array element out.
func (r *Runner) stream(unit discover.Unit, src reader.Source, sink io.Writer) (int, int, error) {
	policy := r.Policy
	if policy == nil {
		policy = convert.NewStringPolicy()
	}
	header := src.Header()
	plan := policy.Plan(header)

	w := output.NewArrayWriter(sink, r.Pretty)
	skipped := 0

	for {
		record, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if errors.Is(err, reader.ErrRow) {
			skipped++
			r.Log.Warn().Str("input", unit.Input).Err(err).Msg("skipping malformed row")
			continue
		}
		if err != nil {
			return w.Count(), skipped, &UnitError{Kind: KindInputRead, Input: unit.Input, Err: err}
		}

		if err := w.Write(convert.Translate(header, record, plan)); err != nil {
			kind := KindOutputWrite
			if errors.Is(err, output.ErrMarshal) {
				kind = KindSerialization
			}
			return w.Count(), skipped, &UnitError{Kind: kind, Input: unit.Input, Err: err}
		}
	}

	if err := w.Close(); err != nil {
		return w.Count(), skipped, &UnitError{Kind: KindOutputWrite, Input: unit.Input, Err: err}
	}
	return w.Count(), skipped, nil
}
