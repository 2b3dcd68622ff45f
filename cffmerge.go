// seehuhn.de/go/cffmerge - merge multi-master glyph outlines into variable charstrings
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package cffmerge combines the outlines of glyphs drawn in several font
// masters into single variable charstring programs. Per-master coordinate
// differences are encoded as compact blend operands instead of separate
// full outlines, and the resulting instruction sequence is rewritten into
// a minimal-length encoding under a fixed operand-stack budget.
//
// The package does not read or write font files. Callers supply one
// outline per master (as a path, or via PathFromSegments for outlines
// loaded with golang.org/x/image/font/sfnt) together with a variation
// model, and receive the token stream of the merged charstring.
package cffmerge

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"seehuhn.de/go/geom/path"
)

// TraceSource provides per-master glyph outlines.
type TraceSource interface {
	// Outline returns the outline of the named glyph in the given master,
	// in absolute coordinates. Master 0 is the default master.
	Outline(glyph string, master int) (*path.Data, error)
}

// Options configures a glyph set merge.
type Options struct {
	// Model converts per-master value vectors into interpolation deltas.
	Model VariationModel

	// NumMasters is the number of masters, including the default master.
	NumMasters int

	// MaxStack is the operand stack budget of the target charstring
	// format. Zero means MaxStackCFF2.
	MaxStack int

	// Workers limits the number of glyphs merged concurrently by
	// MergeGlyphs. Zero means GOMAXPROCS.
	Workers int

	// PreserveTopology disables rewrites that change the number of drawn
	// points, for consumers that rely on point numbering.
	PreserveTopology bool

	// RoundTolerance controls rounding of control points synthesized
	// during outline repairs. Zero means the default of 0.5 (always
	// round); negative values disable rounding.
	RoundTolerance float64

	// Private and GlobalSubrs are passed through unchanged to every
	// produced CharString. This package does not interpret them.
	Private     any
	GlobalSubrs any
}

// CharString is the merged, specialized charstring of one glyph.
type CharString struct {
	// Glyph is the glyph the program was built for.
	Glyph string

	// Program is the flat operand/operator token stream.
	Program Program

	// Private and GlobalSubrs are the resources the program was
	// parameterized with, copied from Options unchanged.
	Private     any
	GlobalSubrs any
}

// MergeGlyph merges the outlines of one glyph across all masters and
// returns its charstring. Master traces are fetched from src in master
// order, so that repairs always compare against the default skeleton.
func MergeGlyph(src TraceSource, glyph string, opts *Options) (*CharString, error) {
	m := NewMerger(glyph, opts.NumMasters)
	switch {
	case opts.RoundTolerance > 0:
		m.RoundTolerance = opts.RoundTolerance
	case opts.RoundTolerance < 0:
		m.RoundTolerance = 0
	}

	for master := range opts.NumMasters {
		trace, err := src.Outline(glyph, master)
		if err != nil {
			return nil, fmt.Errorf("glyph %q, master %d: %w", glyph, master, err)
		}
		if err := m.AddMaster(master, trace); err != nil {
			return nil, err
		}
	}
	return m.CharString(opts)
}

// MergeGlyphs merges every glyph in glyphOrder using a pool of worker
// goroutines. Results are returned in glyph order.
//
// A glyph whose masters cannot be aligned leaves a nil entry in the result
// slice and does not stop the remaining glyphs; all per-glyph failures are
// aggregated into a single *MergeErrors value. Cancellation via ctx is
// honoured between glyphs, never in the middle of one.
func MergeGlyphs(ctx context.Context, src TraceSource, glyphOrder []string, opts *Options) ([]*CharString, error) {
	results := make([]*CharString, len(glyphOrder))
	errs := make([]error, len(glyphOrder))

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g := &errgroup.Group{}
	g.SetLimit(workers)
	for i, glyph := range glyphOrder {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			cs, err := MergeGlyph(src, glyph, opts)
			if err != nil {
				errs[i] = err
			} else {
				results[i] = cs
			}
			return nil
		})
	}
	g.Wait()

	if err := ctx.Err(); err != nil {
		return results, err
	}

	var merr *MergeErrors
	for i, err := range errs {
		if err == nil {
			continue
		}
		if merr == nil {
			merr = &MergeErrors{}
		}
		merr.Glyphs = append(merr.Glyphs, glyphOrder[i])
		merr.Errors = append(merr.Errors, err)
	}
	if merr != nil {
		return results, merr
	}
	return results, nil
}
