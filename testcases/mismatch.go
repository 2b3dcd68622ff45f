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

import "seehuhn.de/go/geom/path"

var mismatchCases = []TestCase{
	{
		// The region starts a new subpath while the default master is
		// still drawing, and the close-path repair does not apply
		// because the default's pending line does not return to the
		// subpath start.
		Name:  "line_vs_move",
		Glyph: "broken",
		Masters: []*path.Data{
			(&path.Data{}).MoveTo(pt(0, 0)).LineTo(pt(10, 0)).LineTo(pt(20, 0)),
			(&path.Data{}).MoveTo(pt(0, 0)).LineTo(pt(10, 0)).MoveTo(pt(5, 5)),
		},
		WantMismatch:    true,
		MismatchPoint:   2,
		MismatchType:    "rmoveto",
		MismatchDefault: "rlineto",
	},
	{
		// Two consecutive moves in the region cannot stand in for the
		// default master's curve.
		Name:  "curve_vs_move",
		Glyph: "broken2",
		Masters: []*path.Data{
			(&path.Data{}).MoveTo(pt(0, 0)).CubeTo(pt(3, 3), pt(7, 7), pt(10, 10)),
			(&path.Data{}).MoveTo(pt(0, 0)).MoveTo(pt(5, 5)),
		},
		WantMismatch:    true,
		MismatchPoint:   1,
		MismatchType:    "rmoveto",
		MismatchDefault: "rrcurveto",
	},
	{
		// A region with more points than the default master runs past
		// the end of the skeleton.
		Name:  "region_too_long",
		Glyph: "broken3",
		Masters: []*path.Data{
			(&path.Data{}).MoveTo(pt(0, 0)).LineTo(pt(10, 0)),
			(&path.Data{}).MoveTo(pt(0, 0)).LineTo(pt(10, 0)).LineTo(pt(20, 0)),
		},
		WantMismatch:    true,
		MismatchPoint:   2,
		MismatchType:    "rlineto",
		MismatchDefault: "end of outline",
	},
}
