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

import "fmt"

// disassemble produces a human-readable line for one raw instruction word.
func disassemble(raw uint16) string {
	f := decodeFields(raw)

	switch f.opcode {
	case OpNOP:
		return "NOP"
	case OpBR:
		return fmt.Sprintf("BR %s, %d", nzpMaskName(f.nzpMask), f.imm8)
	case OpCMP:
		return fmt.Sprintf("CMP R%d, R%d", f.rs, f.rt)
	case OpADD:
		return fmt.Sprintf("ADD R%d, R%d, R%d", f.rd, f.rs, f.rt)
	case OpSUB:
		return fmt.Sprintf("SUB R%d, R%d, R%d", f.rd, f.rs, f.rt)
	case OpMUL:
		return fmt.Sprintf("MUL R%d, R%d, R%d", f.rd, f.rs, f.rt)
	case OpDIV:
		return fmt.Sprintf("DIV R%d, R%d, R%d", f.rd, f.rs, f.rt)
	case OpLDR:
		return fmt.Sprintf("LDR R%d, R%d", f.rd, f.rs)
	case OpSTR:
		return fmt.Sprintf("STR R%d, R%d", f.rs, f.rt)
	case OpCONST:
		return fmt.Sprintf("CONST R%d, %d", f.rd, f.imm8)
	case OpRET:
		return "RET"
	default:
		return fmt.Sprintf("NOP ; unrecognized opcode 0x%X (0x%04X)", f.opcode, raw)
	}
}

// nzpMaskName renders a 3-bit NZP mask as the letters it tests.
func nzpMaskName(mask uint8) string {
	s := ""
	if mask&FlagN != 0 {
		s += "N"
	}
	if mask&FlagZ != 0 {
		s += "Z"
	}
	if mask&FlagP != 0 {
		s += "P"
	}
	if s == "" {
		return "-"
	}
	return s
}
