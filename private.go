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
	"maps"
	"slices"
)

// PrivateDict holds the numeric entries of one master's private
// dictionary. Single-valued entries (StdHW, StdVW, ...) hold one number;
// array entries (BlueValues, OtherBlues, StemSnapH, ...) hold one number
// per element.
type PrivateDict map[string][]float64

// MergePrivate combines the numeric entries of per-master private
// dictionaries (index 0 = default master) into blended operand lists.
//
// Single values collapse to a scalar when no master differs and are
// delta-encoded otherwise. Array entries are converted row-wise to
// offsets from the previous element before delta encoding, matching the
// on-disk delta format of the target dictionaries; the default component
// of each row is restored to its absolute value afterwards.
//
// An entry that is missing in some master, or whose element count differs
// between masters, cannot be merged: it is dropped and reported as a
// Warning. Merging never fails.
func MergePrivate(dicts []PrivateDict, model VariationModel) (map[string][]Arg, []Warning) {
	numMasters := len(dicts)
	merged := make(map[string][]Arg)
	var warnings []Warning

	for _, key := range slices.Sorted(maps.Keys(dicts[0])) {
		values := make([][]float64, numMasters)
		values[0] = dicts[0][key]
		ok := true
		for i := 1; i < numMasters; i++ {
			v, found := dicts[i][key]
			if !found {
				warnings = append(warnings, Warning{
					Field:  key,
					Reason: fmt.Sprintf("missing in master %d", i),
				})
				ok = false
				break
			}
			if len(v) != len(values[0]) {
				warnings = append(warnings, Warning{
					Field: key,
					Reason: fmt.Sprintf("%d values in master %d, %d in the default master",
						len(v), i, len(values[0])),
				})
				ok = false
				break
			}
			values[i] = v
		}
		if !ok {
			continue
		}

		if len(values[0]) == 1 {
			merged[key] = []Arg{mergeScalar(values, model)}
		} else {
			merged[key] = mergeArray(values, model)
		}
	}
	return merged, warnings
}

// mergeScalar blends a single-valued entry across masters.
func mergeScalar(values [][]float64, model VariationModel) Arg {
	row := make([]float64, len(values))
	allEqual := true
	for i, v := range values {
		row[i] = v[0]
		if row[i] != row[0] {
			allEqual = false
		}
	}
	if allEqual {
		return Arg{Value: row[0]}
	}
	blend := slices.Clone(model.Deltas(row))
	blend[0] = row[0]
	return Arg{Blend: blend}
}

// mergeArray blends an array entry row by row. Rows are made relative to
// the previous row per master before delta encoding; the default
// component stays absolute, as required by the dictionary encoding.
func mergeArray(values [][]float64, model VariationModel) []Arg {
	numMasters := len(values)
	numRows := len(values[0])

	out := make([]Arg, numRows)
	prev := make([]float64, numMasters)
	for j := range numRows {
		rel := make([]float64, numMasters)
		allEqual := true
		for i := range numMasters {
			rel[i] = values[i][j] - prev[i]
			if rel[i] != rel[0] {
				allEqual = false
			}
			prev[i] = values[i][j]
		}
		if allEqual {
			out[j] = Arg{Value: values[0][j]}
			continue
		}
		blend := slices.Clone(model.Deltas(rel))
		blend[0] = values[0][j]
		out[j] = Arg{Blend: blend}
	}
	return out
}
