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

func TestROMZeroPadsShortPrograms(t *testing.T) {
	rom := NewROM([]uint16{0x9105})
	if got := rom.Fetch(0); got != 0x9105 {
		t.Errorf("Fetch(0) = 0x%04X, want 0x9105", got)
	}
	if got := rom.Fetch(1); got != 0 {
		t.Errorf("Fetch(1) = 0x%04X, want 0 (unloaded address defaults to NOP)", got)
	}
}

func TestROMTruncatesLongPrograms(t *testing.T) {
	program := make([]uint16, RomSize+10)
	for i := range program {
		program[i] = uint16(i)
	}
	rom := NewROM(program)
	if got := rom.Fetch(255); got != 255 {
		t.Errorf("Fetch(255) = %d, want 255", got)
	}
}

func TestFetcherLatchesOnlyDuringFetchStage(t *testing.T) {
	rom := NewROM([]uint16{0xAAAA, 0xBBBB})
	f := NewFetcher(rom)

	f.Fetch(StateFetch, 0)
	if got := f.Instruction(); got != 0xAAAA {
		t.Fatalf("Instruction() = 0x%04X, want 0xAAAA", got)
	}

	f.Fetch(StateDecode, 1) // wrong stage: must hold the prior latch
	if got := f.Instruction(); got != 0xAAAA {
		t.Errorf("Instruction() = 0x%04X, want 0xAAAA (latch held outside FETCH)", got)
	}

	f.Fetch(StateFetch, 1)
	if got := f.Instruction(); got != 0xBBBB {
		t.Errorf("Instruction() = 0x%04X, want 0xBBBB", got)
	}
}
