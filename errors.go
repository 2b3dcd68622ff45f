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

package cffmerge

import "fmt"

// MismatchError reports an operator disagreement between masters that
// neither the flat-curve nor the close-path repair could resolve. The
// merge for the affected glyph fails; sibling glyphs are unaffected.
type MismatchError struct {
	Glyph      string // glyph being merged
	PointIndex int    // command index within the skeleton
	Master     int    // master whose trace disagrees
	Merged     int    // coordinate groups already merged at that command
	Type       string // operator drawn by the offending master
	Default    string // operator recorded from the default master
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("glyph %q: %q at point index %d in master index %d differs from the default master point type %q",
		e.Glyph, e.Type, e.PointIndex, e.Master, e.Default)
}

// MergeErrors aggregates the per-glyph failures of a glyph set merge.
// Glyphs and Errors run in parallel, in glyph order.
type MergeErrors struct {
	Glyphs []string
	Errors []error
}

func (e *MergeErrors) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d glyphs failed to merge (first: %v)", len(e.Errors), e.Errors[0])
}

// Unwrap exposes the individual per-glyph errors to errors.Is/As.
func (e *MergeErrors) Unwrap() []error {
	return e.Errors
}

// Warning describes a recoverable problem encountered while merging
// per-master dictionary data. The offending field is dropped and
// processing continues.
type Warning struct {
	Field  string // dictionary key
	Reason string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Field, w.Reason)
}
