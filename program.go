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
	"strconv"
	"strings"
)

// Token is one element of an emitted charstring program: either a numeric
// operand or an operator mnemonic.
type Token struct {
	Operator string  // operator mnemonic; empty for numeric operands
	Value    float64 // operand value if Operator is empty
}

// Program is the flat token stream of one charstring, ready for binary
// encoding. Programs are produced once and never mutated.
type Program []Token

func number(v float64) Token {
	return Token{Value: v}
}

func operator(name string) Token {
	return Token{Operator: name}
}

// String formats the program the way charstring disassemblers do, one
// token per space. Intended for tests and debugging.
func (p Program) String() string {
	var sb strings.Builder
	for i, t := range p {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if t.Operator != "" {
			sb.WriteString(t.Operator)
		} else {
			sb.WriteString(strconv.FormatFloat(t.Value, 'g', -1, 64))
		}
	}
	return sb.String()
}

// BuildProgram flattens a specialized command list into a token stream.
// Scalar operands become plain numeric tokens. Each maximal run of
// consecutive blend operands becomes a single blend operation: first the
// default-master value of every operand in the run, then the region
// deltas of every operand (run order, not interleaved per operand), then
// the operand count and the blend operator. Runs are sized so that
// 1 + runLength*numMasters never exceeds maxStack.
func BuildProgram(commands []Command, maxStack int) Program {
	var prog Program
	for _, c := range commands {
		args := c.Args
		for i := 0; i < len(args); {
			if !args[i].IsBlend() {
				prog = append(prog, number(args[i].Value))
				i++
				continue
			}

			numMasters := len(args[i].Blend)
			run := 1
			for i+run < len(args) && args[i+run].IsBlend() &&
				1+(run+1)*numMasters <= maxStack {
				run++
			}

			for k := range run {
				prog = append(prog, number(args[i+k].Blend[0]))
			}
			for k := range run {
				for _, delta := range args[i+k].Blend[1:] {
					prog = append(prog, number(delta))
				}
			}
			prog = append(prog, number(float64(run)), operator("blend"))
			i += run
		}

		if name := c.Op.Mnemonic(); name != "" {
			prog = append(prog, operator(name))
		}
	}
	return prog
}
