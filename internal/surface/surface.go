// Package surface hosts rendered diagrams. A render acquires a fresh region,
// mounts exactly one diagram into it and releases it; nothing is shared
// between renders.
package surface

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/KromDaniel/regview/internal/diagram"
)

var (
	// ErrMounted is returned when a region already holds a diagram.
	ErrMounted = errors.New("region already mounted")
	// ErrReleased is returned when a region is used after Release.
	ErrReleased = errors.New("region released")
)

// Surface hands out display regions.
type Surface interface {
	Acquire() (Region, error)
}

// Region is a display area owned by one render.
type Region interface {
	Mount(diagram.Node) error
	Release() error
}

// Display renders n onto s: acquire, mount, release. The region is released
// even when mounting fails.
func Display(s Surface, n diagram.Node) (err error) {
	r, err := s.Acquire()
	if err != nil {
		return fmt.Errorf("acquire region: %w", err)
	}
	defer func() {
		if rerr := r.Release(); rerr != nil && err == nil {
			err = fmt.Errorf("release region: %w", rerr)
		}
	}()

	if err := r.Mount(n); err != nil {
		return fmt.Errorf("mount diagram: %w", err)
	}
	return nil
}

// ForFormat returns the surface for a format name: "outline", "json" or "yaml".
func ForFormat(format string, w io.Writer) (Surface, error) {
	switch format {
	case "", "outline":
		return &Outline{W: w}, nil
	case "json":
		return &JSON{W: w, Indent: "  "}, nil
	case "yaml":
		return &YAML{W: w}, nil
	}
	return nil, fmt.Errorf("unknown diagram format %q", format)
}

// bufferedRegion encodes the mounted diagram into a buffer and writes it out
// on Release, so a failed mount leaves the writer untouched.
type bufferedRegion struct {
	w        io.Writer
	encode   func(io.Writer, diagram.Node) error
	buf      bytes.Buffer
	mounted  bool
	released bool
}

func newRegion(w io.Writer, encode func(io.Writer, diagram.Node) error) *bufferedRegion {
	return &bufferedRegion{w: w, encode: encode}
}

func (r *bufferedRegion) Mount(n diagram.Node) error {
	switch {
	case r.released:
		return ErrReleased
	case r.mounted:
		return ErrMounted
	}
	if n == nil {
		return errors.New("nil diagram")
	}
	if err := r.encode(&r.buf, n); err != nil {
		r.buf.Reset()
		return err
	}
	r.mounted = true
	return nil
}

func (r *bufferedRegion) Release() error {
	if r.released {
		return ErrReleased
	}
	r.released = true
	if !r.mounted {
		return nil
	}
	_, err := r.buf.WriteTo(r.w)
	return err
}
