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
	"fmt"
	"testing"

	"seehuhn.de/go/geom/path"
)

// BenchmarkMergeGlyph measures merging one moderately complex glyph
// across a varying number of masters.
func BenchmarkMergeGlyph(b *testing.B) {
	for _, numMasters := range []int{2, 4, 8} {
		b.Run(fmt.Sprintf("%dmasters", numMasters), func(b *testing.B) {
			masters := make([]*path.Data, numMasters)
			for i := range masters {
				// every master has a slightly different weight
				masters[i] = benchOutline(float64(i) * 2)
			}
			src := glyphSource{"o": masters}
			opts := &Options{Model: cornerModel{}, NumMasters: numMasters}

			b.ReportAllocs()
			for b.Loop() {
				if _, err := MergeGlyph(src, "o", opts); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkSpecialize measures the command rewriter alone on a long
// alternating outline.
func BenchmarkSpecialize(b *testing.B) {
	base := make([]Command, 0, 201)
	base = append(base, gc(rMoveTo, 10, 10))
	for i := range 100 {
		base = append(base,
			gc(rLineTo, float64(i%7+1), 0),
			gc(rLineTo, 0, float64(i%5+1)))
	}

	b.ReportAllocs()
	for b.Loop() {
		in := make([]Command, len(base))
		copy(in, base)
		if _, err := Specialize(in, nil); err != nil {
			b.Fatal(err)
		}
	}
}

// benchOutline builds a two-ring "o" whose thickness varies with w.
func benchOutline(w float64) *path.Data {
	outer := 50 + w
	inner := 30 - w
	d := (&path.Data{}).MoveTo(pt(-outer, 0)).
		CubeTo(pt(-outer, 28), pt(-28, outer), pt(0, outer)).
		CubeTo(pt(28, outer), pt(outer, 28), pt(outer, 0)).
		CubeTo(pt(outer, -28), pt(28, -outer), pt(0, -outer)).
		CubeTo(pt(-28, -outer), pt(-outer, -28), pt(-outer, 0)).
		Close()
	d = d.MoveTo(pt(-inner, 0)).
		CubeTo(pt(-inner, 17), pt(-17, inner), pt(0, inner)).
		CubeTo(pt(17, inner), pt(inner, 17), pt(inner, 0)).
		CubeTo(pt(inner, -17), pt(17, -inner), pt(0, -inner)).
		CubeTo(pt(-17, -inner), pt(-inner, -17), pt(-inner, 0)).
		Close()
	return d
}
