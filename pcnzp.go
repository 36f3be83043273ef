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

// PCNZP is one thread's program counter and condition-flag register, active
// during EXECUTE and UPDATE (spec.md §4.7). Each PCNZP tests the mask it is
// handed against its own flags; the core fetches with thread-0's PC, so
// thread-0's flags decide the warp's control flow (spec.md §9 note 2).
type PCNZP struct {
	pc  uint8
	nzp uint8
}

// Reset sets pc to 0 and clears the flags, per spec.md §4.7.
func (p *PCNZP) Reset() {
	p.pc = 0
	p.nzp = 0
}

// Execute computes the next PC for this thread during EXECUTE. When
// nextPCMux is set and the masked flag test is nonzero, the branch target
// imm8 is taken; otherwise PC advances by one, wrapping at 256 per spec.md
// §8 boundary case (PC at 255 increments to 0, no fault).
func (p *PCNZP) Execute(nextPCMux bool, nzpMask, imm8 uint8) {
	if nextPCMux && (p.nzp&nzpMask) != 0 {
		p.pc = imm8
	} else {
		p.pc++
	}
}

// Update latches the NZP flags from the ALU's packed output when
// nzpWriteEnable is set (CMP), per spec.md §4.7.
func (p *PCNZP) Update(nzpWriteEnable bool, aluOut uint8) {
	if nzpWriteEnable {
		p.nzp = aluOut & 0x7
	}
}

// PC returns the thread's current program counter.
func (p *PCNZP) PC() uint8 { return p.pc }

// NZP returns the thread's current condition flags.
func (p *PCNZP) NZP() uint8 { return p.nzp }
