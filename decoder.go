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

// DecodedControl is the set of control signals produced for one instruction
// (spec.md §4.4). Signals default to inactive; only the ones the current
// opcode calls for are asserted.
type DecodedControl struct {
	inst *Instruction

	nextPCMux bool // BR: take the branch if the masked NZP test passes
	aluCtrl   ALUCtrl
	aluOutMux bool // CMP: ALU produces packed NZP instead of an arithmetic result
	nzpWE     bool // CMP: latch NZP flags at UPDATE
	rfWE      bool
	rfMux     RFMux
	memRE     bool // LDR
	memWE     bool // STR
	ret       bool // RET

	rd      uint8
	nzpMask uint8
	rs      uint8
	rt      uint8
	imm8    uint8
}

// Decoder turns one fetched instruction word into control signals, once per
// core per DECODE cycle (spec.md §4.4). It has no state of its own beyond
// the instruction it is handed — "decoding" is a pure function here, same
// as the teacher's decodeFields, just with control-signal derivation added
// on top of field extraction.
type Decoder struct{}

// Decode produces the control bundle for raw instruction word inst.
// Unrecognized opcodes decode as NOP, per spec.md §4.4's opcode table.
func (Decoder) Decode(inst uint16) *DecodedControl {
	f := decodeFields(inst)
	c := &DecodedControl{
		inst:    f,
		rd:      f.rd,
		nzpMask: f.nzpMask,
		rs:      f.rs,
		rt:      f.rt,
		imm8:    f.imm8,
	}

	switch f.opcode {
	case OpNOP:
		// no signals
	case OpBR:
		c.nextPCMux = true
	case OpCMP:
		c.aluCtrl = ALUSub
		c.aluOutMux = true
		c.nzpWE = true
	case OpADD:
		c.aluCtrl = ALUAdd
		c.rfWE = true
		c.rfMux = RFMuxALU
	case OpSUB:
		c.aluCtrl = ALUSub
		c.rfWE = true
		c.rfMux = RFMuxALU
	case OpMUL:
		c.aluCtrl = ALUMul
		c.rfWE = true
		c.rfMux = RFMuxALU
	case OpDIV:
		c.aluCtrl = ALUDiv
		c.rfWE = true
		c.rfMux = RFMuxALU
	case OpLDR:
		c.memRE = true
		c.rfWE = true
		c.rfMux = RFMuxLSU
	case OpSTR:
		c.memWE = true
	case OpCONST:
		c.rfWE = true
		c.rfMux = RFMuxImm
	case OpRET:
		c.ret = true
	default:
		// treated as NOP
	}

	return c
}
