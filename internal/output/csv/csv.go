// Package csv writes classification results as a comma-separated report.
package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/roach88/fwdmuon/internal/model"
	"github.com/roach88/fwdmuon/internal/output"
)

// Output writes one header line followed by one line per result. Every
// line is flushed to the underlying writer before Write returns.
type Output struct {
	w      *csv.Writer
	closer io.Closer
	path   string
}

// Create truncates (or creates) the report file at path and writes the header.
func Create(path string) (*Output, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv output: create %s: %w", path, err)
	}
	o, err := newOutput(f, f)
	if err != nil {
		f.Close()
		return nil, err
	}
	o.path = path
	return o, nil
}

// New writes the report to w. Close flushes but does not close w.
func New(w io.Writer) (*Output, error) {
	return newOutput(w, nil)
}

func newOutput(w io.Writer, closer io.Closer) (*Output, error) {
	o := &Output{w: csv.NewWriter(w), closer: closer}
	if err := o.w.Write(output.Header); err != nil {
		return nil, fmt.Errorf("csv output: header: %w", err)
	}
	if err := o.Flush(); err != nil {
		return nil, err
	}
	return o, nil
}

// Write appends result as one line and flushes it.
func (o *Output) Write(_ context.Context, result model.Result) error {
	if err := o.w.Write(output.Record(result)); err != nil {
		return fmt.Errorf("csv output: write: %w", err)
	}
	return o.Flush()
}

// Flush pushes buffered lines to the underlying writer.
func (o *Output) Flush() error {
	o.w.Flush()
	if err := o.w.Error(); err != nil {
		return fmt.Errorf("csv output: flush: %w", err)
	}
	return nil
}

// Close flushes and, for files opened by Create, closes the file.
func (o *Output) Close() error {
	err := o.Flush()
	if o.closer != nil {
		if cerr := o.closer.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("csv output: close %s: %w", o.path, cerr)
		}
	}
	return err
}
