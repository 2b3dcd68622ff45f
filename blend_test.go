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

	"seehuhn.de/go/geom/path"
)

// Reduce converts absolute per-master coordinates to relative operands,
// collapses operands that agree across masters into scalars and
// delta-encodes the rest, keeping the raw default value in front.
func TestReduce(t *testing.T) {
	m := NewMerger("slash", 2)
	def := (&path.Data{}).MoveTo(pt(0, 0)).LineTo(pt(50, 100))
	reg := (&path.Data{}).MoveTo(pt(0, 0)).LineTo(pt(50, 105))
	if err := m.AddMaster(0, def); err != nil {
		t.Fatal(err)
	}
	if err := m.AddMaster(1, reg); err != nil {
		t.Fatal(err)
	}

	got, err := m.Reduce(cornerModel{})
	if err != nil {
		t.Fatal(err)
	}
	want := []Command{
		{Op: rMoveTo, Args: []Arg{Scalar(0), Scalar(0)}},
		{Op: rLineTo, Args: []Arg{Scalar(50), {Blend: []float64{100, 5}}}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got  %v\nwant %v", got, want)
	}
}

// Relative offsets are tracked per master, so a constant shift between
// masters must vanish after the first point.
func TestReduceRelativePerMaster(t *testing.T) {
	m := NewMerger("bar", 2)
	def := (&path.Data{}).MoveTo(pt(0, 0)).LineTo(pt(100, 0)).LineTo(pt(100, 50))
	reg := (&path.Data{}).MoveTo(pt(0, 10)).LineTo(pt(100, 10)).LineTo(pt(100, 60))
	if err := m.AddMaster(0, def); err != nil {
		t.Fatal(err)
	}
	if err := m.AddMaster(1, reg); err != nil {
		t.Fatal(err)
	}

	got, err := m.Reduce(cornerModel{})
	if err != nil {
		t.Fatal(err)
	}
	want := []Command{
		{Op: rMoveTo, Args: []Arg{Scalar(0), {Blend: []float64{0, 10}}}},
		{Op: rLineTo, Args: []Arg{Scalar(100), Scalar(0)}},
		{Op: rLineTo, Args: []Arg{Scalar(0), Scalar(50)}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got  %v\nwant %v", got, want)
	}
}

func TestArg(t *testing.T) {
	if Scalar(3).IsBlend() {
		t.Error("scalar reported as blend")
	}
	b := Arg{Blend: []float64{3, 1}}
	if !b.IsBlend() {
		t.Error("blend reported as scalar")
	}

	// scalar + scalar
	if got := Scalar(2).add(Scalar(3)); !reflect.DeepEqual(got, Scalar(5)) {
		t.Errorf("2+3 = %v", got)
	}

	// scalar + blend touches only the default component
	got := Scalar(2).add(b)
	if want := (Arg{Blend: []float64{5, 1}}); !reflect.DeepEqual(got, want) {
		t.Errorf("2+blend = %v, want %v", got, want)
	}

	// blend + blend is element-wise
	got = b.add(Arg{Blend: []float64{10, 2}})
	if want := (Arg{Blend: []float64{13, 3}}); !reflect.DeepEqual(got, want) {
		t.Errorf("blend+blend = %v, want %v", got, want)
	}

	// deltas that cancel collapse back to a scalar
	got = b.add(Arg{Blend: []float64{10, -1}})
	if want := Scalar(13); !reflect.DeepEqual(got, want) {
		t.Errorf("blend+blend with cancelling deltas = %v, want %v", got, want)
	}

	// the inputs must stay untouched
	if !reflect.DeepEqual(b.Blend, []float64{3, 1}) {
		t.Error("add modified its operand")
	}
}
