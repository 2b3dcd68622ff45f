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
	"reflect"
	"testing"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"seehuhn.de/go/geom/path"
)

func fxPt(x, y fixed.Int26_6) fixed.Point26_6 {
	return fixed.Point26_6{X: x, Y: y}
}

func TestPathFromSegments(t *testing.T) {
	segs := sfnt.Segments{
		{
			Op:   sfnt.SegmentOpMoveTo,
			Args: [3]fixed.Point26_6{fxPt(64, 128)},
		},
		{
			Op:   sfnt.SegmentOpLineTo,
			Args: [3]fixed.Point26_6{fxPt(640, 128)},
		},
		{
			Op:   sfnt.SegmentOpQuadTo,
			Args: [3]fixed.Point26_6{fxPt(672, 160), fxPt(672, 224)},
		},
		{
			Op:   sfnt.SegmentOpCubeTo,
			Args: [3]fixed.Point26_6{fxPt(640, 288), fxPt(96, 288), fxPt(64, 224)},
		},
	}

	got := PathFromSegments(segs)
	want := (&path.Data{}).
		MoveTo(pt(1, 2)).
		LineTo(pt(10, 2)).
		QuadTo(pt(10.5, 2.5), pt(10.5, 3.5)).
		CubeTo(pt(10, 4.5), pt(1.5, 4.5), pt(1, 3.5))

	if !reflect.DeepEqual(got, want) {
		t.Errorf("got  %v\nwant %v", got, want)
	}
}

// Sub-pixel coordinates survive the fixed-point conversion exactly.
func TestFixedPointFractions(t *testing.T) {
	p := fixedPoint(fxPt(33, -1))
	if p.X != 33.0/64 || p.Y != -1.0/64 {
		t.Errorf("got %v", p)
	}
}
