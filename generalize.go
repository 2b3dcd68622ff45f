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

import "fmt"

// Generalize rewrites specialized commands into the simple general form
// where every command is a single-segment rmoveto, rlineto or rrcurveto
// with explicit operands for both coordinates. This is the canonical input
// shape of the specializer, and a left inverse of specialization.
//
// Commands with malformed operand counts cause an error unless
// ignoreErrors is set, in which case they are replaced by operator-less
// placeholders that keep their operands.
func Generalize(commands []Command, ignoreErrors bool) ([]Command, error) {
	var out []Command
	for _, c := range commands {
		expanded, err := generalizeCommand(c)
		if err != nil {
			if !ignoreErrors {
				return nil, err
			}
			// Keep the operands on the stack, but drop the operator.
			out = append(out,
				Command{Op: Op{Kind: KindNone}, Args: c.Args},
				Command{Op: Op{Kind: KindNone}})
			continue
		}
		out = append(out, expanded...)
	}
	return out, nil
}

func generalizeCommand(c Command) ([]Command, error) {
	args := c.Args
	bad := func() error {
		return fmt.Errorf("generalize: %s with %d operands", c.Op.Mnemonic(), len(args))
	}

	switch c.Op.Kind {
	case KindNone:
		return []Command{c}, nil

	case KindMove:
		switch c.Op.Start {
		case CategoryHorizontal:
			if len(args) != 1 {
				return nil, bad()
			}
			return []Command{{Op: rMoveTo, Args: []Arg{args[0], {}}}}, nil
		case CategoryVertical:
			if len(args) != 1 {
				return nil, bad()
			}
			return []Command{{Op: rMoveTo, Args: []Arg{{}, args[0]}}}, nil
		default:
			if len(args) != 2 {
				return nil, bad()
			}
			return []Command{{Op: rMoveTo, Args: args}}, nil
		}

	case KindLine:
		switch c.Op.Start {
		case CategoryHorizontal, CategoryVertical:
			if len(args) == 0 {
				return nil, bad()
			}
			return generalizeAltLines(args, c.Op.Start == CategoryHorizontal), nil
		default:
			if len(args) == 0 || len(args)%2 != 0 {
				return nil, bad()
			}
			out := make([]Command, 0, len(args)/2)
			for i := 0; i+2 <= len(args); i += 2 {
				out = append(out, Command{Op: rLineTo, Args: args[i : i+2 : i+2]})
			}
			return out, nil
		}

	case KindCurve:
		s, e := c.Op.Start, c.Op.End
		switch {
		case s == CategoryGeneral && e == CategoryGeneral:
			if len(args) == 0 || len(args)%6 != 0 {
				return nil, bad()
			}
			out := make([]Command, 0, len(args)/6)
			for i := 0; i+6 <= len(args); i += 6 {
				out = append(out, Command{Op: rrCurveTo, Args: args[i : i+6 : i+6]})
			}
			return out, nil
		case s == CategoryHorizontal && e == CategoryHorizontal:
			if len(args) < 4 || len(args)%4 > 1 {
				return nil, bad()
			}
			return generalizeAxisCurves(args, true), nil
		case s == CategoryVertical && e == CategoryVertical:
			if len(args) < 4 || len(args)%4 > 1 {
				return nil, bad()
			}
			return generalizeAxisCurves(args, false), nil
		case s == CategoryHorizontal && e == CategoryVertical:
			if len(args) < 4 || (len(args)%8 != 0 && len(args)%8 != 1 && len(args)%8 != 4 && len(args)%8 != 5) {
				return nil, bad()
			}
			return generalizeAltCurves(args, true), nil
		case s == CategoryVertical && e == CategoryHorizontal:
			if len(args) < 4 || (len(args)%8 != 0 && len(args)%8 != 1 && len(args)%8 != 4 && len(args)%8 != 5) {
				return nil, bad()
			}
			return generalizeAltCurves(args, false), nil
		default:
			return nil, bad()
		}

	case KindCurveLine:
		if len(args) < 8 || (len(args)-2)%6 != 0 {
			return nil, bad()
		}
		out := make([]Command, 0, (len(args)-2)/6+1)
		i := 0
		for ; i+6 <= len(args)-2; i += 6 {
			out = append(out, Command{Op: rrCurveTo, Args: args[i : i+6 : i+6]})
		}
		out = append(out, Command{Op: rLineTo, Args: args[i : i+2 : i+2]})
		return out, nil

	case KindLineCurve:
		if len(args) < 8 || (len(args)-6)%2 != 0 {
			return nil, bad()
		}
		out := make([]Command, 0, (len(args)-6)/2+1)
		i := 0
		for ; i+2 <= len(args)-6; i += 2 {
			out = append(out, Command{Op: rLineTo, Args: args[i : i+2 : i+2]})
		}
		out = append(out, Command{Op: rrCurveTo, Args: args[i : i+6 : i+6]})
		return out, nil
	}

	return nil, bad()
}

// generalizeAltLines expands an alternating axis line operator (one
// operand per segment) into general lines.
func generalizeAltLines(args []Arg, horizontal bool) []Command {
	out := make([]Command, 0, len(args))
	for _, a := range args {
		if horizontal {
			out = append(out, Command{Op: rLineTo, Args: []Arg{a, {}}})
		} else {
			out = append(out, Command{Op: rLineTo, Args: []Arg{{}, a}})
		}
		horizontal = !horizontal
	}
	return out
}

// generalizeAxisCurves expands hhcurveto/vvcurveto. An odd operand count
// means that the first curve's off-axis start offset is carried as the
// leading operand.
func generalizeAxisCurves(args []Arg, horizontal bool) []Command {
	var lead Arg
	i := 0
	if len(args)%2 == 1 {
		lead = args[0]
		i = 1
	}
	out := make([]Command, 0, (len(args)-i)/4)
	for ; i+4 <= len(args); i += 4 {
		a, b, cc, d := args[i], args[i+1], args[i+2], args[i+3]
		if horizontal {
			out = append(out, Command{Op: rrCurveTo, Args: []Arg{a, lead, b, cc, d, {}}})
		} else {
			out = append(out, Command{Op: rrCurveTo, Args: []Arg{lead, a, b, cc, {}, d}})
		}
		lead = Arg{}
	}
	return out
}

// generalizeAltCurves expands hvcurveto/vhcurveto: four operands per
// curve, the tangent axis alternating from segment to segment. An odd
// operand count marks a general final endpoint carrying both offsets.
func generalizeAltCurves(args []Arg, startHorizontal bool) []Command {
	var last []Arg
	lastStraight := false
	if len(args)%2 == 1 {
		lastStraight = len(args)%8 == 5
		last = args[len(args)-5:]
		args = args[:len(args)-5]
	}

	out := make([]Command, 0, len(args)/4+1)
	horizontal := startHorizontal
	for i := 0; i+4 <= len(args); i += 4 {
		a, b, cc, d := args[i], args[i+1], args[i+2], args[i+3]
		if horizontal {
			out = append(out, Command{Op: rrCurveTo, Args: []Arg{a, {}, b, cc, {}, d}})
		} else {
			out = append(out, Command{Op: rrCurveTo, Args: []Arg{{}, a, b, cc, d, {}}})
		}
		horizontal = !horizontal
	}

	if last != nil {
		a, b, cc, d, e := last[0], last[1], last[2], last[3], last[4]
		if lastStraight == startHorizontal {
			out = append(out, Command{Op: rrCurveTo, Args: []Arg{a, {}, b, cc, e, d}})
		} else {
			out = append(out, Command{Op: rrCurveTo, Args: []Arg{{}, a, b, cc, d, e}})
		}
	}
	return out
}
