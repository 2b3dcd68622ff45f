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

import "slices"

// Operand stack limits of the two charstring formats.
const (
	MaxStackT2   = 48  // Type 2 charstrings
	MaxStackCFF2 = 513 // CFF2 charstrings
)

// OpKind is the base shape of a charstring operator.
type OpKind uint8

const (
	// KindNone marks a placeholder that carries operands but no operator
	// byte. Placeholders are produced when generalization is asked to
	// ignore malformed input.
	KindNone OpKind = iota

	KindMove
	KindLine
	KindCurve

	// KindLineCurve is a run of lines followed by one final curve
	// (rlinecurve); KindCurveLine is a run of curves followed by one
	// final line (rcurveline).
	KindLineCurve
	KindCurveLine
)

// Category classifies a 2-dimensional offset by which of its components
// vanish in every master.
type Category uint8

const (
	// CategoryZero marks an offset with both components zero. It never
	// appears in emitted programs: remaining zero offsets are resolved to
	// CategoryHorizontal before emission.
	CategoryZero Category = iota

	CategoryHorizontal // vertical component zero
	CategoryVertical   // horizontal component zero
	CategoryGeneral    // both components non-zero
)

// mergeCategories combines the categories of two adjacent offsets into the
// category of a joint operator. Zero acts as a wildcard; distinct axes do
// not combine.
func mergeCategories(a, b Category) (Category, bool) {
	switch {
	case a == CategoryZero:
		return b, true
	case b == CategoryZero:
		return a, true
	case a == b:
		return a, true
	default:
		return 0, false
	}
}

// negateCategory flips the axis of a category. Zero and general are their
// own mirror images.
func negateCategory(a Category) Category {
	switch a {
	case CategoryHorizontal:
		return CategoryVertical
	case CategoryVertical:
		return CategoryHorizontal
	default:
		return a
	}
}

// Op identifies a charstring operator. Start is the offset category of a
// move or line, or of a curve's leading tangent; End is the category of a
// curve's trailing tangent and is unused for the other kinds.
type Op struct {
	Kind  OpKind
	Start Category
	End   Category
}

// The general operators every command is decombined into.
var (
	rMoveTo    = Op{Kind: KindMove, Start: CategoryGeneral}
	rLineTo    = Op{Kind: KindLine, Start: CategoryGeneral}
	rrCurveTo  = Op{Kind: KindCurve, Start: CategoryGeneral, End: CategoryGeneral}
	rLineCurve = Op{Kind: KindLineCurve, Start: CategoryGeneral, End: CategoryGeneral}
	rCurveLine = Op{Kind: KindCurveLine, Start: CategoryGeneral, End: CategoryGeneral}
)

// Mnemonic returns the operator name in the charstring wire format, or ""
// for placeholders. The result is only meaningful for resolved operators:
// zero categories and mixed general/axis curve forms are rewritten by the
// final specializer pass before emission.
func (o Op) Mnemonic() string {
	switch o.Kind {
	case KindMove:
		switch o.Start {
		case CategoryHorizontal:
			return "hmoveto"
		case CategoryVertical:
			return "vmoveto"
		default:
			return "rmoveto"
		}
	case KindLine:
		switch o.Start {
		case CategoryHorizontal:
			return "hlineto"
		case CategoryVertical:
			return "vlineto"
		default:
			return "rlineto"
		}
	case KindCurve:
		switch {
		case o.Start == CategoryHorizontal && o.End == CategoryHorizontal:
			return "hhcurveto"
		case o.Start == CategoryVertical && o.End == CategoryVertical:
			return "vvcurveto"
		case o.Start == CategoryHorizontal && o.End == CategoryVertical:
			return "hvcurveto"
		case o.Start == CategoryVertical && o.End == CategoryHorizontal:
			return "vhcurveto"
		default:
			return "rrcurveto"
		}
	case KindLineCurve:
		return "rlinecurve"
	case KindCurveLine:
		return "rcurveline"
	default:
		return ""
	}
}

// SpecializeOptions configures the command rewriter.
type SpecializeOptions struct {
	// IgnoreErrors replaces commands with malformed operand counts by
	// bare placeholders during generalization instead of failing.
	IgnoreErrors bool

	// GeneralizeFirst rewrites already specialized input back to its
	// general form before optimizing. Callers that know the input uses
	// only single-segment rmoveto/rlineto/rrcurveto commands can leave
	// this off.
	GeneralizeFirst bool

	// PreserveTopology disables rewrites that change the number of drawn
	// points, for consumers that rely on point numbering.
	PreserveTopology bool

	// MaxStack is the operand stack budget. Zero means MaxStackCFF2.
	MaxStack int
}

// Specialize rewrites a command list into a minimal-length equivalent
// encoding. The rewrite happens in six fixed-order passes: successive
// moves are coalesced, offsets are classified by axis, redundant
// operations are merged or deleted (unless PreserveTopology is set),
// isolated axis variants are reverted where that is not larger, adjacent
// operators are combined greedily under the stack budget, and remaining
// internal placeholder forms are resolved to wire operators.
//
// Specialize modifies the input list and its operand slices in place and
// returns the rewritten list. An error can only occur during the optional
// generalization step.
func Specialize(commands []Command, opts *SpecializeOptions) ([]Command, error) {
	if opts == nil {
		opts = &SpecializeOptions{}
	}
	maxStack := opts.MaxStack
	if maxStack == 0 {
		maxStack = MaxStackCFF2
	}

	var cmds []Command
	if opts.GeneralizeFirst {
		var err error
		cmds, err = Generalize(commands, opts.IgnoreErrors)
		if err != nil {
			return nil, err
		}
	} else {
		cmds = slices.Clone(commands)
	}

	// Pass 1: combine successive moves by summing their offsets.
	for i := len(cmds) - 1; i > 0; i-- {
		if cmds[i].Op == rMoveTo && cmds[i-1].Op == rMoveTo {
			a, b := cmds[i-1].Args, cmds[i].Args
			cmds[i-1] = Command{Op: rMoveTo, Args: []Arg{a[0].add(b[0]), a[1].add(b[1])}}
			cmds = slices.Delete(cmds, i, i+1)
		}
	}

	// Pass 2: classify each offset as zero, horizontal, vertical or
	// general, dropping the operands the classification implies. The zero
	// category keeps a single zero operand so that it can later stand in
	// for either axis.
	for i := range cmds {
		c := cmds[i]
		switch c.Op {
		case rMoveTo, rLineTo:
			cat, args := categorizeVector(c.Args[0], c.Args[1])
			cmds[i] = Command{Op: Op{Kind: c.Op.Kind, Start: cat}, Args: args}
		case rrCurveTo:
			c1, a1 := categorizeVector(c.Args[0], c.Args[1])
			c2, a2 := categorizeVector(c.Args[4], c.Args[5])
			args := make([]Arg, 0, len(a1)+2+len(a2))
			args = append(args, a1...)
			args = append(args, c.Args[2], c.Args[3])
			args = append(args, a2...)
			cmds[i] = Command{Op: Op{Kind: KindCurve, Start: c1, End: c2}, Args: args}
		}
	}

	// Pass 3: topology-changing cleanup.
	if !opts.PreserveTopology {
		for i := len(cmds) - 1; i >= 0; i-- {
			c := cmds[i]

			// A zero-zero curve is really a line.
			if c.Op.Kind == KindCurve && c.Op.Start == CategoryZero && c.Op.End == CategoryZero {
				cat, args := categorizeVector(c.Args[1], c.Args[2])
				c = Command{Op: Op{Kind: KindLine, Start: cat}, Args: args}
				cmds[i] = c
			}

			// A zero-offset line draws nothing.
			if c.Op.Kind == KindLine && c.Op.Start == CategoryZero {
				cmds = slices.Delete(cmds, i, i+1)
				continue
			}

			// Adjacent single-offset lines along the same axis merge by
			// summing their offsets.
			if i > 0 && c.Op.Kind == KindLine &&
				(c.Op.Start == CategoryHorizontal || c.Op.Start == CategoryVertical) &&
				cmds[i-1].Op == c.Op &&
				len(c.Args) == 1 && len(cmds[i-1].Args) == 1 {
				cmds[i-1] = Command{Op: c.Op, Args: []Arg{cmds[i-1].Args[0].add(c.Args[0])}}
				cmds = slices.Delete(cmds, i, i+1)
			}
		}
	}

	// Pass 4: an isolated axis variant between two general operators is
	// reverted to general form: it encodes no smaller and blocks the
	// merges of pass 5.
	for i := 1; i+1 < len(cmds); i++ {
		c := cmds[i]
		prv, nxt := cmds[i-1].Op, cmds[i+1].Op

		if c.Op.Kind == KindLine && c.Op.Start != CategoryGeneral &&
			prv == rLineTo && nxt == rLineTo {
			var args []Arg
			if c.Op.Start == CategoryVertical {
				args = []Arg{{}, c.Args[0]}
			} else {
				args = []Arg{c.Args[0], {}}
			}
			cmds[i] = Command{Op: rLineTo, Args: args}
			continue
		}

		if c.Op.Kind == KindCurve && len(c.Args) == 5 &&
			prv == rrCurveTo && nxt == rrCurveTo {
			// Exactly one of the two tangents is general; re-insert the
			// zero operand the classification dropped.
			var pos int
			switch {
			case c.Op.Start == CategoryVertical:
				pos = 0
			case c.Op.Start != CategoryGeneral:
				pos = 1
			case c.Op.End == CategoryVertical:
				pos = 4
			default:
				pos = 5
			}
			args := slices.Insert(slices.Clone(c.Args), pos, Arg{})
			cmds[i] = Command{Op: rrCurveTo, Args: args}
		}
	}

	// Pass 5: combine adjacent operators, right to left, keeping one
	// stack slot free so that subroutine calls can be inserted anywhere
	// later.
	for i := len(cmds) - 1; i > 0; i-- {
		newOp, ok := combineOps(cmds[i-1], cmds[i])
		if !ok {
			continue
		}
		args1, args2 := cmds[i-1].Args, cmds[i].Args
		if len(args1)+len(args2) < maxStack {
			args := make([]Arg, 0, len(args1)+len(args2))
			args = append(args, args1...)
			args = append(args, args2...)
			cmds[i-1] = Command{Op: newOp, Args: args}
			cmds = slices.Delete(cmds, i, i+1)
		}
	}

	// Pass 6: resolve remaining internal forms into wire operators.
	for i := range cmds {
		switch cmds[i].Op.Kind {
		case KindMove, KindLine:
			if cmds[i].Op.Start == CategoryZero {
				cmds[i].Op.Start = CategoryHorizontal
			}
		case KindCurve:
			resolveCurve(&cmds[i])
		}
	}

	return cmds, nil
}

// categorizeVector classifies a 2-dimensional offset and returns the
// operands that remain after the implied components are dropped. A fully
// zero offset keeps a single zero operand as an axis wildcard.
func categorizeVector(dx, dy Arg) (Category, []Arg) {
	if dx.isZero() {
		if dy.isZero() {
			return CategoryZero, []Arg{dx}
		}
		return CategoryVertical, []Arg{dy}
	}
	if dy.isZero() {
		return CategoryHorizontal, []Arg{dx}
	}
	return CategoryGeneral, []Arg{dx, dy}
}

// combineOps decides whether two adjacent commands can merge into one
// operator, and which. Operand counts matter for the mixed line/curve
// forms, which require the trailing command to be a single segment.
func combineOps(c1, c2 Command) (Op, bool) {
	op1, op2 := c1.Op, c2.Op

	if (op1 == rLineTo || op1 == rrCurveTo) && (op2 == rLineTo || op2 == rrCurveTo) {
		if op1 == op2 {
			return op1, true
		}
		if op2 == rrCurveTo && len(c2.Args) == 6 {
			return rLineCurve, true
		}
		if len(c2.Args) == 2 {
			return rCurveLine, true
		}
		return Op{}, false
	}

	if op1 == rLineTo && op2 == rLineCurve {
		return op2, true
	}
	if op1 == rrCurveTo && op2 == rCurveLine {
		return op2, true
	}

	// Opposite-axis lines merge into one alternating operator named after
	// the first segment's axis.
	if op1.Kind == KindLine && op2.Kind == KindLine &&
		op1.Start != op2.Start &&
		op1.Start != CategoryGeneral && op1.Start != CategoryZero &&
		op2.Start != CategoryGeneral && op2.Start != CategoryZero {
		return op1, true
	}

	if op1.Kind == KindCurve && op2.Kind == KindCurve {
		d0, d1 := op1.Start, op1.End
		d2, d3 := op2.Start, op2.End

		// A general tangent at an interior joint cannot be encoded, and
		// neither can a spline that is general at both ends.
		if d1 == CategoryGeneral || d2 == CategoryGeneral ||
			(d0 == CategoryGeneral && d3 == CategoryGeneral) {
			return Op{}, false
		}

		d, ok := mergeCategories(d1, d2)
		if !ok {
			return Op{}, false
		}
		if d0 == CategoryGeneral {
			d, ok = mergeCategories(d, d3)
			if !ok {
				return Op{}, false
			}
			return Op{Kind: KindCurve, Start: CategoryGeneral, End: d}, true
		}
		if d3 == CategoryGeneral {
			d0, ok = mergeCategories(d0, negateCategory(d))
			if !ok {
				return Op{}, false
			}
			return Op{Kind: KindCurve, Start: d0, End: CategoryGeneral}, true
		}
		d0, ok = mergeCategories(d0, d3)
		if !ok {
			return Op{}, false
		}
		return Op{Kind: KindCurve, Start: d0, End: d}, true
	}

	return Op{}, false
}

// resolveCurve rewrites a curve operator that is not one of the five
// canonical forms (general/general or a pure axis pair) into the nearest
// axis pair. An odd operand count marks one general endpoint; the wire
// encoding then requires a fixed operand-order swap depending on which
// axis takes the extra operand.
func resolveCurve(c *Command) {
	s, e := c.Op.Start, c.Op.End
	if s == CategoryGeneral && e == CategoryGeneral {
		return
	}
	if s != CategoryGeneral && s != CategoryZero && e != CategoryGeneral && e != CategoryZero {
		return
	}

	if s == CategoryZero {
		s = CategoryHorizontal
	}
	if e == CategoryZero {
		e = CategoryHorizontal
	}
	if s == CategoryGeneral {
		s = e
	}
	if e == CategoryGeneral {
		e = negateCategory(s)
	}

	args := c.Args
	if len(args)%2 == 1 {
		if s != e {
			// hvcurveto/vhcurveto: the extra operand belongs at the very
			// end, in an order that depends on the spline length.
			if (s == CategoryHorizontal) != (len(args)%8 == 1) {
				args[len(args)-2], args[len(args)-1] = args[len(args)-1], args[len(args)-2]
			}
		} else if s == CategoryHorizontal {
			// hhcurveto: the extra operand comes first.
			args[0], args[1] = args[1], args[0]
		}
	}

	c.Op = Op{Kind: KindCurve, Start: s, End: e}
}
