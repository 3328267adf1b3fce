// Package source reads events (tracks plus their truth record) for the
// classifier.
//
// The on-disk format is a YAML stream with one document per event:
//
//	index: 0
//	particles:
//	  - {id: 10, pdg: 421, status: 91, mothers: [9], eta: -3.1, pt: 4.2}
//	tracks:
//	  - {eta: -3.0, pt: 4.0, p: 40.1, phi: 0.31, nclusters: 10, truth: 11}
//
// Unknown fields are rejected so typos surface as errors instead of silently
// dropped values.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/fwdmuon/internal/model"
)

// Source yields events one at a time. Next returns io.EOF after the last
// event.
type Source interface {
	Next(ctx context.Context) (model.Event, error)
}

// Decoder reads events from a YAML stream.
type Decoder struct {
	dec   *yaml.Decoder
	count int
}

// NewDecoder creates a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	return &Decoder{dec: dec}
}

// Next decodes the next event document.
func (d *Decoder) Next(ctx context.Context) (model.Event, error) {
	if err := ctx.Err(); err != nil {
		return model.Event{}, err
	}
	var ev model.Event
	if err := d.dec.Decode(&ev); err != nil {
		if errors.Is(err, io.EOF) {
			return model.Event{}, io.EOF
		}
		return model.Event{}, fmt.Errorf("decode event %d: %w", d.count, err)
	}
	d.count++
	return ev, nil
}

// File is a Decoder over an opened events file.
type File struct {
	*Decoder
	f    *os.File
	path string
}

// Open opens the events file at path.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open events file: %w", err)
	}
	return &File{Decoder: NewDecoder(f), f: f, path: path}, nil
}

// Path returns the file's path.
func (f *File) Path() string {
	return f.path
}

// Close closes the underlying file.
func (f *File) Close() error {
	return f.f.Close()
}

// Slice serves events from memory.
type Slice struct {
	events []model.Event
	pos    int
}

// NewSlice creates a Source over events.
func NewSlice(events ...model.Event) *Slice {
	return &Slice{events: events}
}

// Next returns the next event, or io.EOF when all were served.
func (s *Slice) Next(ctx context.Context) (model.Event, error) {
	if err := ctx.Err(); err != nil {
		return model.Event{}, err
	}
	if s.pos >= len(s.events) {
		return model.Event{}, io.EOF
	}
	ev := s.events[s.pos]
	s.pos++
	return ev, nil
}

// ReadAll drains src into a slice.
func ReadAll(ctx context.Context, src Source) ([]model.Event, error) {
	var events []model.Event
	for {
		ev, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			return events, nil
		}
		if err != nil {
			return events, err
		}
		events = append(events, ev)
	}
}

// Encode writes events as a YAML stream readable by NewDecoder.
func Encode(w io.Writer, events ...model.Event) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	for _, ev := range events {
		if err := enc.Encode(ev); err != nil {
			return fmt.Errorf("encode event %d: %w", ev.Index, err)
		}
	}
	return enc.Close()
}
