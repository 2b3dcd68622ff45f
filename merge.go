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
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// mergedCommand is one slot of the command skeleton built during
// alignment: a general operator plus one absolute coordinate group per
// master, in master order. Move and line groups hold x,y; curve groups
// hold x1,y1,x2,y2,x3,y3.
type mergedCommand struct {
	kind   OpKind
	coords [][]float64
}

// A Merger aligns the draw traces of one glyph across all masters and
// combines them into a single command skeleton. The default master
// (index 0) is merged first and defines the authoritative command
// sequence; each further master is matched against it slot by slot.
//
// A Merger processes a single glyph and is not safe for concurrent use.
type Merger struct {
	// RoundTolerance controls rounding of control points synthesized
	// during repairs. Values of 0.5 and above always round to the nearest
	// integer; smaller positive values round only when the rounded value
	// is within the tolerance; zero disables rounding.
	RoundTolerance float64

	glyph      string
	numMasters int

	cmds []mergedCommand

	// cursor state for the master currently being merged
	master      int
	ptIndex     int
	prevMoveIdx int
	cur         vec.Vec2
}

// NewMerger returns a Merger for one glyph. numMasters counts the default
// master, so traces for masters 0 to numMasters-1 must be added before the
// skeleton can be reduced.
func NewMerger(glyph string, numMasters int) *Merger {
	return &Merger{
		RoundTolerance: 0.5,
		glyph:          glyph,
		numMasters:     numMasters,
	}
}

// StartMaster resets the cursor to the beginning of the skeleton for the
// given master index. AddMaster calls this automatically.
func (m *Merger) StartMaster(master int) {
	m.master = master
	m.ptIndex = 0
	m.prevMoveIdx = 0
	m.cur = vec.Vec2{}
}

// AddMaster merges one master's trace into the skeleton. Quadratic
// segments are elevated to cubics, since the target instruction set is
// cubic-only. Close commands are dropped: charstring subpaths close
// implicitly.
func (m *Merger) AddMaster(master int, trace *path.Data) error {
	m.StartMaster(master)

	coordIdx := 0
	for _, cmd := range trace.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			if err := m.MoveTo(trace.Coords[coordIdx]); err != nil {
				return err
			}
			coordIdx++

		case path.CmdLineTo:
			if err := m.LineTo(trace.Coords[coordIdx]); err != nil {
				return err
			}
			coordIdx++

		case path.CmdQuadTo:
			q := trace.Coords[coordIdx]
			end := trace.Coords[coordIdx+1]
			c1 := m.cur.Add(q.Sub(m.cur).Mul(2.0 / 3.0))
			c2 := end.Add(q.Sub(end).Mul(2.0 / 3.0))
			if err := m.CurveTo(c1, c2, end); err != nil {
				return err
			}
			coordIdx += 2

		case path.CmdCubeTo:
			if err := m.CurveTo(trace.Coords[coordIdx], trace.Coords[coordIdx+1], trace.Coords[coordIdx+2]); err != nil {
				return err
			}
			coordIdx += 3

		case path.CmdClose:
			// nothing to do
		}
	}
	return nil
}

// MoveTo starts a new subpath at the absolute point p.
func (m *Merger) MoveTo(p vec.Vec2) error {
	if err := m.addPoint(KindMove, []float64{p.X, p.Y}); err != nil {
		return err
	}
	// addPoint can advance the cursor past repaired slots, so the subpath
	// start index is recorded only afterwards.
	m.prevMoveIdx = m.ptIndex - 1
	m.cur = p
	return nil
}

// LineTo draws a line to the absolute point p.
func (m *Merger) LineTo(p vec.Vec2) error {
	if err := m.addPoint(KindLine, []float64{p.X, p.Y}); err != nil {
		return err
	}
	m.cur = p
	return nil
}

// CurveTo draws a cubic curve with the absolute control points p1, p2 and
// endpoint p3.
func (m *Merger) CurveTo(p1, p2, p3 vec.Vec2) error {
	if err := m.addPoint(KindCurve, []float64{p1.X, p1.Y, p2.X, p2.Y, p3.X, p3.Y}); err != nil {
		return err
	}
	m.cur = p3
	return nil
}

// addPoint appends one draw call for the current master. For the default
// master this creates a new skeleton slot; for region masters the call
// must match the slot at the cursor, possibly after repair.
func (m *Merger) addPoint(kind OpKind, coords []float64) error {
	if m.master == 0 {
		m.cmds = append(m.cmds, mergedCommand{kind: kind, coords: [][]float64{coords}})
		m.ptIndex++
		return nil
	}

	if m.ptIndex >= len(m.cmds) {
		return m.mismatch(kind, "end of outline")
	}
	cmd := &m.cmds[m.ptIndex]
	if cmd.kind != kind {
		fixed, fixedCoords := m.fixFlatCurve(cmd, kind, coords)
		if fixed {
			coords = fixedCoords
		} else {
			if !m.fixClosePath(cmd, kind, coords) {
				return m.mismatch(kind, opName(cmd.kind))
			}
			// fixClosePath may have advanced the cursor or inserted a
			// slot; re-check against the slot now at the cursor.
			if m.ptIndex >= len(m.cmds) {
				return m.mismatch(kind, "end of outline")
			}
			cmd = &m.cmds[m.ptIndex]
			if cmd.kind != kind {
				return m.mismatch(kind, opName(cmd.kind))
			}
		}
	}
	cmd.coords = append(cmd.coords, coords)
	m.ptIndex++
	return nil
}

func (m *Merger) mismatch(kind OpKind, defaultType string) error {
	merged := 0
	if m.ptIndex < len(m.cmds) {
		merged = len(m.cmds[m.ptIndex].coords)
	}
	return &MismatchError{
		Glyph:      m.glyph,
		PointIndex: m.ptIndex,
		Master:     m.master,
		Merged:     merged,
		Type:       opName(kind),
		Default:    defaultType,
	}
}

// fixFlatCurve repairs masters that disagree about whether a shallow
// segment was authored as a line or as a curve, by expanding the line
// into a flattened cubic with control points at one and two thirds of
// the chord. This makes both sides structurally equal.
func (m *Merger) fixFlatCurve(cmd *mergedCommand, kind OpKind, coords []float64) (bool, []float64) {
	if m.ptIndex == 0 {
		return false, coords
	}
	prev := &m.cmds[m.ptIndex-1]

	switch {
	case kind == KindLine && cmd.kind == KindCurve:
		// This region drew a line where the skeleton has a curve: flatten
		// the region's line.
		px, py := lastPoint(prev.coords[len(prev.coords)-1])
		return true, m.flatCurve(px, py, coords[0], coords[1])

	case kind == KindCurve && cmd.kind == KindLine:
		// The skeleton has a line where this region drew a curve: flatten
		// the line in every already merged master.
		for i, c := range cmd.coords {
			px, py := lastPoint(prev.coords[i])
			cmd.coords[i] = m.flatCurve(px, py, c[0], c[1])
		}
		cmd.kind = KindCurve
		return true, coords
	}
	return false, coords
}

// fixClosePath repairs subpaths whose closing segment was authored in some
// masters but dropped in others. The two branches are deliberately
// asymmetric: the default master is the baseline that downstream variation
// data depends on, so repairing it means inserting a new skeleton slot,
// while repairing a region only appends to an existing slot.
//
// Reports whether the mismatch was resolved; on success the caller must
// re-fetch the slot at the cursor.
func (m *Merger) fixClosePath(cmd *mergedCommand, kind OpKind, coords []float64) bool {
	if m.ptIndex == 0 {
		return false
	}
	move := &m.cmds[m.prevMoveIdx]
	prev := &m.cmds[m.ptIndex-1]

	if kind == KindMove {
		// The region reached the end of its subpath while the skeleton
		// still expects the closing segment (cmd is not a move here).

		// The previous command must not already close the subpath for
		// this region.
		sx, sy := lastPoint(move.coords[len(move.coords)-1])
		px, py := lastPoint(prev.coords[len(prev.coords)-1])
		if px == sx && py == sy {
			return false
		}

		// The current command must close the subpath for the default
		// master.
		dx, dy := lastPoint(move.coords[0])
		cx, cy := lastPoint(cmd.coords[0])
		if cx != dx || cy != dy {
			return false
		}

		// Synthesize the region's closing segment in the existing slot
		// and step past it, so that the pending move merges with the
		// skeleton's next command.
		var closing []float64
		if cmd.kind == KindCurve {
			closing = m.flatCurve(px, py, sx, sy)
		} else {
			closing = []float64{sx, sy}
		}
		cmd.coords = append(cmd.coords, closing)
		m.ptIndex++
		return true
	}

	if cmd.kind == KindMove {
		// The skeleton reached the end of the default master's subpath
		// while this region still draws the explicit closing segment.

		// The previous command must not already close the subpath for
		// the default master.
		dx, dy := lastPoint(move.coords[0])
		px, py := lastPoint(prev.coords[0])
		if px == dx && py == dy {
			return false
		}

		// The incoming segment must close the subpath for this region.
		sx, sy := lastPoint(move.coords[len(move.coords)-1])
		cx, cy := lastPoint(coords)
		if cx != sx || cy != sy {
			return false
		}

		// Insert the missing closing segment into the skeleton, with one
		// coordinate group per already merged master. The group for the
		// current region is appended by the normal merge step afterwards.
		groups := make([][]float64, len(move.coords)-1)
		for i := range groups {
			mx, my := move.coords[i][0], move.coords[i][1]
			if kind == KindCurve {
				qx, qy := lastPoint(prev.coords[i])
				groups[i] = m.flatCurve(qx, qy, mx, my)
			} else {
				groups[i] = []float64{mx, my}
			}
		}
		m.cmds = append(m.cmds, mergedCommand{})
		copy(m.cmds[m.ptIndex+1:], m.cmds[m.ptIndex:])
		m.cmds[m.ptIndex] = mergedCommand{kind: kind, coords: groups}
		return true
	}

	return false
}

// flatCurve builds the absolute coordinates of a flattened cubic from
// (px,py) to (cx,cy), with the control points at one and two thirds of
// the chord.
func (m *Merger) flatCurve(px, py, cx, cy float64) []float64 {
	dx := m.round((cx - px) / 3)
	dy := m.round((cy - py) / 3)
	return []float64{px + dx, py + dy, px + 2*dx, py + 2*dy, cx, cy}
}

func (m *Merger) round(x float64) float64 {
	tol := m.RoundTolerance
	if tol <= 0 {
		return x
	}
	rounded := math.Floor(x + 0.5)
	if tol >= 0.5 || math.Abs(rounded-x) <= tol {
		return rounded
	}
	return x
}

// CharString reduces the merged skeleton to blend form, specializes the
// commands and emits the final program. All masters must have been added.
func (m *Merger) CharString(opts *Options) (*CharString, error) {
	cmds, err := m.Reduce(opts.Model)
	if err != nil {
		return nil, err
	}

	maxStack := opts.MaxStack
	if maxStack == 0 {
		maxStack = MaxStackCFF2
	}
	cmds, err = Specialize(cmds, &SpecializeOptions{
		PreserveTopology: opts.PreserveTopology,
		MaxStack:         maxStack,
	})
	if err != nil {
		return nil, err
	}

	return &CharString{
		Glyph:       m.glyph,
		Program:     BuildProgram(cmds, maxStack),
		Private:     opts.Private,
		GlobalSubrs: opts.GlobalSubrs,
	}, nil
}

// lastPoint returns the endpoint of a coordinate group.
func lastPoint(coords []float64) (x, y float64) {
	return coords[len(coords)-2], coords[len(coords)-1]
}

// opName returns the general operator name for error messages.
func opName(kind OpKind) string {
	switch kind {
	case KindMove:
		return "rmoveto"
	case KindLine:
		return "rlineto"
	case KindCurve:
		return "rrcurveto"
	default:
		return fmt.Sprintf("op(%d)", kind)
	}
}
