// seehuhn.de/go/cffmerge - multi-master CFF2 charstring merging
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

package testcases

import (
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// TestCase defines a single multi-master merge test.
type TestCase struct {
	Name    string       // lowercase a-z, 0-9 and _ only
	Glyph   string       // glyph name used in error messages
	Masters []*path.Data // per-master outlines, default master first

	// WantProgram is the expected merged charstring, written as its
	// disassembly, with deltas taken relative to the default master.
	// Empty for cases where merging is expected to fail.
	WantProgram string

	// WantMismatch marks cases whose masters cannot be aligned.
	WantMismatch bool

	MismatchPoint   int    // expected failing point index
	MismatchType    string // operator tag of the offending point
	MismatchDefault string // operator tag expected by the default master
}

// pt is a helper to create a vec.Vec2 from x, y coordinates.
func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}
