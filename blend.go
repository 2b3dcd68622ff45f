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
	"slices"
)

// VariationModel converts per-master value vectors into interpolation
// deltas. Implementations are supplied by the variation-store layer and
// must be safe for concurrent use; this package never mutates the returned
// slice.
type VariationModel interface {
	// Deltas maps a vector of per-master values (index 0 = default
	// master) to delta values. The value at index 0 is passed through
	// unchanged; indices 1 to N-1 carry the per-region deltas.
	Deltas(values []float64) []float64
}

// Arg is one operand slot of a Command: either a single number shared by
// all masters, or a blend vector holding the default-master value at
// index 0 followed by the per-region deltas.
type Arg struct {
	Value float64   // scalar value; unused if Blend is non-nil
	Blend []float64 // nil for a scalar operand
}

// Scalar returns a scalar operand.
func Scalar(v float64) Arg {
	return Arg{Value: v}
}

// IsBlend reports whether the operand varies across masters.
func (a Arg) IsBlend() bool {
	return a.Blend != nil
}

// isZero reports whether the operand is the constant zero in every master.
// Blend operands are never zero: all-equal vectors have already been
// collapsed to scalars by the reducer.
func (a Arg) isZero() bool {
	return a.Blend == nil && a.Value == 0
}

// add returns the element-wise sum of two operands. Scalars broadcast
// into the default component of a blend vector; since region deltas are
// differences against the default, they are unaffected.
func (a Arg) add(b Arg) Arg {
	switch {
	case a.Blend == nil && b.Blend == nil:
		return Arg{Value: a.Value + b.Value}
	case a.Blend == nil:
		sum := slices.Clone(b.Blend)
		sum[0] += a.Value
		return Arg{Blend: sum}
	case b.Blend == nil:
		sum := slices.Clone(a.Blend)
		sum[0] += b.Value
		return Arg{Blend: sum}
	default:
		sum := slices.Clone(a.Blend)
		varies := false
		for i, v := range b.Blend {
			sum[i] += v
			if i > 0 && sum[i] != 0 {
				varies = true
			}
		}
		// Region deltas can cancel out when opposite variations are
		// summed; the result is then constant across masters again.
		if !varies {
			return Arg{Value: sum[0]}
		}
		return Arg{Blend: sum}
	}
}

// Command is one charstring operation: an operator together with its
// operand slots.
type Command struct {
	Op   Op
	Args []Arg
}

// Reduce transforms the merged skeleton from per-master absolute
// coordinates into the scalar/blend form required for emission:
// coordinates are transposed into per-slot master vectors, converted to
// offsets from the previous point (tracked per coordinate channel and per
// master), collapsed to scalars where no master differs, and otherwise
// delta-encoded through the variation model. The default component of
// every blend operand is the raw relative default-master value, never a
// model output.
func (m *Merger) Reduce(model VariationModel) ([]Command, error) {
	n := m.numMasters
	prevX := make([]float64, n)
	prevY := make([]float64, n)

	cmds := make([]Command, len(m.cmds))
	for ci := range m.cmds {
		mc := &m.cmds[ci]
		if len(mc.coords) != n {
			return nil, fmt.Errorf("glyph %q: point %d has coordinates for %d of %d masters",
				m.glyph, ci, len(mc.coords), n)
		}

		numSlots := len(mc.coords[0])
		args := make([]Arg, numSlots)
		for j := range numSlots {
			prev := prevY
			if j%2 == 0 {
				prev = prevX
			}

			rel := make([]float64, n)
			allEqual := true
			for mi := range n {
				rel[mi] = mc.coords[mi][j] - prev[mi]
				if rel[mi] != rel[0] {
					allEqual = false
				}
			}
			for mi := range n {
				prev[mi] = mc.coords[mi][j]
			}

			if allEqual {
				args[j] = Arg{Value: rel[0]}
			} else {
				blend := slices.Clone(model.Deltas(rel))
				blend[0] = rel[0]
				args[j] = Arg{Blend: blend}
			}
		}

		op := Op{Kind: mc.kind, Start: CategoryGeneral}
		if mc.kind == KindCurve {
			op.End = CategoryGeneral
		}
		cmds[ci] = Command{Op: op, Args: args}
	}
	return cmds, nil
}
