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

import "testing"

func TestRegFileResetSeedsReservedRegisters(t *testing.T) {
	var rf RegFile
	rf.Reset(2, 1, 4)

	if got := rf.Read(RegBlockID); got != 2 {
		t.Errorf("R13 (block_id) = %d, want 2", got)
	}
	if got := rf.Read(RegThreadID); got != 1 {
		t.Errorf("R14 (thread_id) = %d, want 1", got)
	}
	if got := rf.Read(RegThreadsPB); got != 4 {
		t.Errorf("R15 (threads_per_block) = %d, want 4", got)
	}
	if got := rf.Read(0); got != 0 {
		t.Errorf("R0 = %d, want 0", got)
	}
}

func TestRegFileWriteAndRead(t *testing.T) {
	var rf RegFile
	rf.Reset(0, 0, 0)

	rf.Write(3, 55, true)
	if got := rf.Read(3); got != 55 {
		t.Errorf("R3 = %d, want 55", got)
	}
}

func TestRegFileWriteDisabled(t *testing.T) {
	var rf RegFile
	rf.Reset(0, 0, 0)

	rf.Write(3, 55, false)
	if got := rf.Read(3); got != 0 {
		t.Errorf("R3 = %d, want 0 (write_enable false)", got)
	}
}

func TestRegFileReservedRegistersAreWriteProtected(t *testing.T) {
	var rf RegFile
	rf.Reset(9, 9, 9)

	for _, reg := range []uint8{RegBlockID, RegThreadID, RegThreadsPB} {
		rf.Write(reg, 123, true)
		if got := rf.Read(reg); got == 123 {
			t.Errorf("register %d accepted a write, want protected", reg)
		}
	}
}
