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

var repairCases = []TestCase{
	{
		// The second master degenerates the curve to a straight line.
		// It is promoted to a flat curve with control points at one
		// third and two thirds of the chord.
		Name:  "flat_curve_in_region",
		Glyph: "wedge",
		Masters: []*path.Data{
			(&path.Data{}).MoveTo(pt(0, 0)).CubeTo(pt(10, 0), pt(20, 0), pt(30, 0)),
			(&path.Data{}).MoveTo(pt(0, 0)).LineTo(pt(30, 3)),
		},
		WantProgram: "0 hmoveto 10 0 1 1 blend 10 0 1 1 blend 10 0 1 1 blend rrcurveto",
	},
	{
		// Same situation the other way round: the default master has
		// the degenerate line and gets flat control points inserted.
		Name:  "flat_curve_in_default",
		Glyph: "wedge2",
		Masters: []*path.Data{
			(&path.Data{}).MoveTo(pt(0, 0)).LineTo(pt(30, 0)),
			(&path.Data{}).MoveTo(pt(0, 0)).CubeTo(pt(10, 1), pt(20, 2), pt(30, 3)),
		},
		WantProgram: "0 hmoveto 10 0 1 1 blend 10 0 1 1 blend 10 0 1 1 blend rrcurveto",
	},
	{
		// The default master leaves the triangle implicitly closed
		// while the other masters draw the closing line. A matching
		// closing line is synthesized for the default master.
		Name:  "close_line_missing_in_default",
		Glyph: "triangle2",
		Masters: []*path.Data{
			(&path.Data{}).MoveTo(pt(0, 0)).LineTo(pt(10, 0)).LineTo(pt(10, 10)).
				MoveTo(pt(20, 20)).LineTo(pt(30, 20)),
			(&path.Data{}).MoveTo(pt(0, 0)).LineTo(pt(10, 0)).LineTo(pt(10, 10)).LineTo(pt(0, 0)).
				MoveTo(pt(20, 20)).LineTo(pt(30, 20)),
			(&path.Data{}).MoveTo(pt(0, 0)).LineTo(pt(10, 0)).LineTo(pt(10, 10)).LineTo(pt(0, 0)).
				MoveTo(pt(20, 20)).LineTo(pt(30, 20)),
		},
		WantProgram: "0 hmoveto 10 10 hlineto -10 -10 rlineto 20 20 rmoveto 10 hlineto",
	},
	{
		// Here the default master draws the closing line and a region
		// master omits it.
		Name:  "close_line_missing_in_region",
		Glyph: "triangle3",
		Masters: []*path.Data{
			(&path.Data{}).MoveTo(pt(0, 0)).LineTo(pt(10, 0)).LineTo(pt(10, 10)).LineTo(pt(0, 0)).
				MoveTo(pt(20, 20)).LineTo(pt(30, 20)),
			(&path.Data{}).MoveTo(pt(0, 0)).LineTo(pt(10, 0)).LineTo(pt(10, 10)).
				MoveTo(pt(20, 20)).LineTo(pt(30, 20)),
		},
		WantProgram: "0 hmoveto 10 10 hlineto -10 -10 rlineto 20 20 rmoveto 10 hlineto",
	},
	{
		// A region master closes its subpath with a curve the default
		// master does not have. The synthesized default curve is flat
		// along the closing chord, so only the control points blend.
		Name:  "close_curve_missing_in_default",
		Glyph: "blob",
		Masters: []*path.Data{
			(&path.Data{}).MoveTo(pt(0, 0)).LineTo(pt(10, 0)).LineTo(pt(10, 10)).
				MoveTo(pt(20, 20)).LineTo(pt(30, 20)),
			(&path.Data{}).MoveTo(pt(0, 0)).LineTo(pt(10, 0)).LineTo(pt(10, 10)).
				CubeTo(pt(7, 7), pt(3, 3), pt(0, 0)).
				MoveTo(pt(20, 20)).LineTo(pt(30, 20)),
		},
		WantProgram: "0 hmoveto 10 10 hlineto -3 -3 -3 -3 -4 -4 -1 -1 1 1 4 blend rrcurveto 20 20 rmoveto 10 hlineto",
	},
}
