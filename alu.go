// Copyright © 2024 Jeff Berkowitz (pdxjjb@gmail.com)
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.

package main

// ALU is one thread's integer unit, active during EXECUTE (spec.md §4.6).
// It has no state of its own: Eval is a pure function of its inputs, same
// as the teacher's executeXOP arithmetic case block, minus the flags SPR.
type ALU struct{}

// Eval computes the ALU result for one instruction. When outMux is set
// (CMP), the result is the packed NZP flags instead of an arithmetic value.
// All arithmetic is 8-bit unsigned with wraparound; divide-by-zero yields 0
// silently, per spec.md §4.6 and §7 — there is no overflow reporting.
func (ALU) Eval(ctrl ALUCtrl, outMux bool, rs, rt uint8) uint8 {
	if outMux {
		return packNZP(rs, rt)
	}
	switch ctrl {
	case ALUAdd:
		return rs + rt
	case ALUSub:
		return rs - rt
	case ALUMul:
		return rs * rt
	case ALUDiv:
		if rt == 0 {
			return 0
		}
		return rs / rt
	default:
		return 0
	}
}

// packNZP computes {N=(rs<rt), Z=(rs==rt), P=(rs>rt)} packed into bits
// [2:0]. Exactly one bit is set — the ordering of two uint8s is total.
func packNZP(rs, rt uint8) uint8 {
	switch {
	case rs < rt:
		return FlagN
	case rs == rt:
		return FlagZ
	default:
		return FlagP
	}
}
