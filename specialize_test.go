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
)

// gc builds a command with scalar operands.
func gc(op Op, vals ...float64) Command {
	args := make([]Arg, len(vals))
	for i, v := range vals {
		args[i] = Scalar(v)
	}
	return Command{Op: op, Args: args}
}

// specialized runs the rewriter and formats the result, failing the test
// on error.
func specialized(t *testing.T, cmds []Command, opts *SpecializeOptions) string {
	t.Helper()
	out, err := Specialize(cmds, opts)
	if err != nil {
		t.Fatal(err)
	}
	maxStack := MaxStackCFF2
	if opts != nil && opts.MaxStack != 0 {
		maxStack = opts.MaxStack
	}
	return BuildProgram(out, maxStack).String()
}

func TestSpecialize(t *testing.T) {
	tests := []struct {
		name string
		in   []Command
		want string
	}{
		{
			name: "coalesce_moves",
			in: []Command{
				gc(rMoveTo, 1, 2),
				gc(rMoveTo, 3, 4),
				gc(rLineTo, 10, 0),
			},
			want: "4 6 rmoveto 10 hlineto",
		},
		{
			name: "delete_zero_line",
			in: []Command{
				gc(rMoveTo, 1, 2),
				gc(rLineTo, 0, 0),
				gc(rLineTo, 0, 5),
			},
			want: "1 2 rmoveto 5 vlineto",
		},
		{
			name: "degenerate_curve_becomes_line",
			in: []Command{
				gc(rMoveTo, 1, 2),
				gc(rrCurveTo, 0, 0, 3, 4, 0, 0),
			},
			want: "1 2 rmoveto 3 4 rlineto",
		},
		{
			name: "fully_degenerate_curve_vanishes",
			in: []Command{
				gc(rMoveTo, 1, 2),
				gc(rrCurveTo, 0, 0, 0, 0, 0, 0),
				gc(rLineTo, 5, 0),
			},
			want: "1 2 rmoveto 5 hlineto",
		},
		{
			name: "merge_same_axis_lines",
			in: []Command{
				gc(rMoveTo, 0, 0),
				gc(rLineTo, 5, 0),
				gc(rLineTo, 7, 0),
			},
			want: "0 hmoveto 12 hlineto",
		},
		{
			name: "peephole_reverts_isolated_axis_line",
			in: []Command{
				gc(rMoveTo, 1, 1),
				gc(rLineTo, 1, 2),
				gc(rLineTo, 0, 3),
				gc(rLineTo, 4, 5),
			},
			want: "1 1 rmoveto 1 2 0 3 4 5 rlineto",
		},
		{
			name: "peephole_reverts_isolated_axis_curve",
			in: []Command{
				gc(rrCurveTo, 1, 2, 3, 4, 5, 6),
				gc(rrCurveTo, 7, 0, 8, 9, 10, 11),
				gc(rrCurveTo, 12, 13, 14, 15, 16, 17),
			},
			want: "1 2 3 4 5 6 7 0 8 9 10 11 12 13 14 15 16 17 rrcurveto",
		},
		{
			name: "curve_then_line_becomes_rcurveline",
			in: []Command{
				gc(rrCurveTo, 1, 2, 3, 4, 5, 6),
				gc(rLineTo, 7, 8),
			},
			want: "1 2 3 4 5 6 7 8 rcurveline",
		},
		{
			name: "lines_then_curve_become_rlinecurve",
			in: []Command{
				gc(rLineTo, 1, 2),
				gc(rLineTo, 3, 4),
				gc(rrCurveTo, 5, 6, 7, 8, 9, 10),
			},
			want: "1 2 3 4 5 6 7 8 9 10 rlinecurve",
		},
		{
			name: "merge_axis_curves",
			in: []Command{
				gc(rrCurveTo, 1, 0, 2, 3, 4, 0),
				gc(rrCurveTo, 5, 0, 6, 7, 8, 0),
			},
			want: "1 2 3 4 5 6 7 8 hhcurveto",
		},
		{
			name: "vv_odd_count",
			in: []Command{
				gc(rrCurveTo, 3, 10, 1, 2, 0, 20),
			},
			want: "3 10 1 2 20 vvcurveto",
		},
		{
			name: "hv_odd_count_swaps_tail",
			in: []Command{
				gc(rrCurveTo, 10, 0, 1, 2, 3, 4),
			},
			want: "10 1 2 4 3 hvcurveto",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := specialized(t, tt.in, nil); got != tt.want {
				t.Errorf("got  %s\nwant %s", got, tt.want)
			}
		})
	}
}

func TestPreserveTopologyKeepsZeroSegments(t *testing.T) {
	in := []Command{
		gc(rMoveTo, 1, 2),
		gc(rLineTo, 0, 0),
		gc(rLineTo, 0, 5),
	}
	opts := &SpecializeOptions{PreserveTopology: true}
	if got, want := specialized(t, in, opts), "1 2 rmoveto 0 hlineto 5 vlineto"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// A merge must never grow a command beyond the stack budget, less the one
// slot reserved for subroutine calls.
func TestSpecializeStackBudget(t *testing.T) {
	in := []Command{
		gc(rMoveTo, 0, 0),
		gc(rLineTo, 1, 0),
		gc(rLineTo, 0, 1),
		gc(rLineTo, 1, 0),
		gc(rLineTo, 0, 1),
		gc(rLineTo, 1, 0),
		gc(rLineTo, 0, 1),
	}
	opts := &SpecializeOptions{MaxStack: 5}
	want := "0 hmoveto 1 1 hlineto 1 1 1 1 hlineto"
	if got := specialized(t, in, opts); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// Re-specializing an already specialized program through GeneralizeFirst
// must reproduce it unchanged.
func TestSpecializeIdempotent(t *testing.T) {
	tests := []struct {
		name string
		in   []Command
	}{
		{
			name: "alternating_axis_lines",
			in: []Command{
				gc(rMoveTo, 0, 0),
				gc(rLineTo, 5, 0),
				gc(rLineTo, 0, 3),
				gc(rLineTo, 7, 0),
			},
		},
		{
			name: "reverted_axis_line",
			in: []Command{
				gc(rMoveTo, 1, 1),
				gc(rLineTo, 1, 2),
				gc(rLineTo, 0, 3),
				gc(rLineTo, 4, 5),
			},
		},
		{
			name: "hh_odd_count",
			in: []Command{
				gc(rMoveTo, 0, 0),
				gc(rrCurveTo, 10, 5, 10, 10, 10, 0),
			},
		},
		{
			name: "vv_odd_count",
			in: []Command{
				gc(rMoveTo, 0, 0),
				gc(rrCurveTo, 3, 10, 1, 2, 0, 20),
			},
		},
		{
			name: "hv_odd_count",
			in: []Command{
				gc(rMoveTo, 0, 0),
				gc(rrCurveTo, 10, 0, 1, 2, 3, 4),
			},
		},
		{
			name: "vh_general_end",
			in: []Command{
				gc(rMoveTo, 0, 0),
				gc(rrCurveTo, 0, 10, 10, 10, 15, 15),
			},
		},
		{
			name: "alternating_curve_ring",
			in: []Command{
				gc(rMoveTo, 0, 50),
				gc(rrCurveTo, 0, -28, 22, -22, 28, 0),
				gc(rrCurveTo, 28, 0, 22, 22, 0, 28),
				gc(rrCurveTo, 0, 28, -22, 22, -28, 0),
				gc(rrCurveTo, -28, 0, -22, -22, 0, -28),
			},
		},
		{
			name: "curve_then_line",
			in: []Command{
				gc(rrCurveTo, 1, 2, 3, 4, 5, 6),
				gc(rLineTo, 7, 8),
			},
		},
		{
			name: "lines_then_curve",
			in: []Command{
				gc(rLineTo, 1, 2),
				gc(rLineTo, 3, 4),
				gc(rrCurveTo, 5, 6, 7, 8, 9, 10),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once, err := Specialize(tt.in, nil)
			if err != nil {
				t.Fatal(err)
			}
			first := BuildProgram(once, MaxStackCFF2).String()

			twice, err := Specialize(once, &SpecializeOptions{GeneralizeFirst: true})
			if err != nil {
				t.Fatal(err)
			}
			second := BuildProgram(twice, MaxStackCFF2).String()
			if second != first {
				t.Errorf("re-specializing changed the program:\nonce:  %s\ntwice: %s", first, second)
			}
		})
	}
}

// Coalescing moves can cancel the variation of an offset; the summed
// operand must come out scalar, not as an all-zero-delta blend.
func TestSpecializeCancelledBlend(t *testing.T) {
	in := []Command{
		{Op: rMoveTo, Args: []Arg{{Blend: []float64{1, 5}}, Scalar(0)}},
		{Op: rMoveTo, Args: []Arg{{Blend: []float64{2, -5}}, Scalar(0)}},
		gc(rLineTo, 10, 0),
	}
	want := "3 hmoveto 10 hlineto"
	if got := specialized(t, in, nil); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// Specializing and generalizing are inverse on nondegenerate outlines.
func TestSpecializeGeneralizeRoundTrip(t *testing.T) {
	ring := func() []Command {
		return []Command{
			gc(rMoveTo, 0, 50),
			gc(rrCurveTo, 0, -28, 22, -22, 28, 0),
			gc(rrCurveTo, 28, 0, 22, 22, 0, 28),
			gc(rrCurveTo, 0, 28, -22, 22, -28, 0),
			gc(rrCurveTo, -28, 0, -22, -22, 0, -28),
		}
	}

	spec, err := Specialize(ring(), nil)
	if err != nil {
		t.Fatal(err)
	}
	back, err := Generalize(spec, false)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(back, ring()) {
		t.Errorf("round trip changed commands:\n got: %v\nwant: %v", back, ring())
	}
}
