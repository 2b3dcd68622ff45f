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

import (
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// PathFromSegments converts a glyph outline as returned by
// sfnt.Font.LoadGlyph into the trace form consumed by the merger.
// Coordinates are converted from 26.6 fixed point; quadratic segments are
// kept and elevated to cubics during merging.
func PathFromSegments(segs sfnt.Segments) *path.Data {
	d := &path.Data{}
	for _, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			d.Cmds = append(d.Cmds, path.CmdMoveTo)
			d.Coords = append(d.Coords, fixedPoint(s.Args[0]))
		case sfnt.SegmentOpLineTo:
			d.Cmds = append(d.Cmds, path.CmdLineTo)
			d.Coords = append(d.Coords, fixedPoint(s.Args[0]))
		case sfnt.SegmentOpQuadTo:
			d.Cmds = append(d.Cmds, path.CmdQuadTo)
			d.Coords = append(d.Coords, fixedPoint(s.Args[0]), fixedPoint(s.Args[1]))
		case sfnt.SegmentOpCubeTo:
			d.Cmds = append(d.Cmds, path.CmdCubeTo)
			d.Coords = append(d.Coords,
				fixedPoint(s.Args[0]), fixedPoint(s.Args[1]), fixedPoint(s.Args[2]))
		}
	}
	return d
}

func fixedPoint(p fixed.Point26_6) vec.Vec2 {
	return vec.Vec2{
		X: float64(p.X) / 64,
		Y: float64(p.Y) / 64,
	}
}
