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

var mergeCases = []TestCase{
	{
		// Three identical masters collapse to a static charstring.
		Name:  "identical_triangle",
		Glyph: "triangle",
		Masters: []*path.Data{
			(&path.Data{}).MoveTo(pt(10, 10)).LineTo(pt(110, 10)).LineTo(pt(110, 110)),
			(&path.Data{}).MoveTo(pt(10, 10)).LineTo(pt(110, 10)).LineTo(pt(110, 110)),
			(&path.Data{}).MoveTo(pt(10, 10)).LineTo(pt(110, 10)).LineTo(pt(110, 110)),
		},
		WantProgram: "10 10 rmoveto 100 100 hlineto",
	},
	{
		// Only the line's vertical component varies between the two
		// masters, so the horizontal component stays a plain number.
		Name:  "blend_line",
		Glyph: "slash",
		Masters: []*path.Data{
			(&path.Data{}).MoveTo(pt(0, 0)).LineTo(pt(50, 100)),
			(&path.Data{}).MoveTo(pt(0, 0)).LineTo(pt(50, 105)),
		},
		WantProgram: "0 hmoveto 50 100 5 1 blend rlineto",
	},
	{
		// The move varies vertically, the line not at all.
		Name:  "shifted_bar",
		Glyph: "bar",
		Masters: []*path.Data{
			(&path.Data{}).MoveTo(pt(0, 0)).LineTo(pt(100, 0)),
			(&path.Data{}).MoveTo(pt(0, 10)).LineTo(pt(100, 10)),
		},
		WantProgram: "0 10 1 blend vmoveto 100 hlineto",
	},
	{
		// Four alternating curves of a ring merge into a single
		// sixteen-argument vhcurveto.
		Name:  "ring",
		Glyph: "o",
		Masters: []*path.Data{
			(&path.Data{}).MoveTo(pt(0, 50)).
				CubeTo(pt(0, 22), pt(22, 0), pt(50, 0)).
				CubeTo(pt(78, 0), pt(100, 22), pt(100, 50)).
				CubeTo(pt(100, 78), pt(78, 100), pt(50, 100)).
				CubeTo(pt(22, 100), pt(0, 78), pt(0, 50)).
				Close(),
		},
		WantProgram: "50 vmoveto -28 22 -22 28 28 22 22 28 28 -22 22 -28 -28 -22 -22 -28 vhcurveto",
	},
	{
		// Horizontal start and end with a sloped first tangent: the
		// odd-count hhcurveto form carries dy1 in front.
		Name:  "hh_odd_count",
		Glyph: "swash",
		Masters: []*path.Data{
			(&path.Data{}).MoveTo(pt(0, 0)).CubeTo(pt(10, 5), pt(20, 15), pt(30, 15)),
		},
		WantProgram: "0 hmoveto 5 10 10 10 10 hhcurveto",
	},
	{
		// Vertical start, sloped end: five-argument vhcurveto.
		Name:  "vh_general_end",
		Glyph: "hook",
		Masters: []*path.Data{
			(&path.Data{}).MoveTo(pt(0, 0)).CubeTo(pt(0, 10), pt(10, 20), pt(25, 35)),
		},
		WantProgram: "0 hmoveto 10 10 10 15 15 vhcurveto",
	},
}
