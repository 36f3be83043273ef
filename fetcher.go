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

// ROM is the read-only, 256-entry instruction store shared by every core
// (spec.md §6). Addresses beyond the loaded program default to NOP.
type ROM struct {
	words [RomSize]uint16
}

// NewROM builds a ROM image from program, zero-padding the remainder.
// Programs longer than RomSize are truncated.
func NewROM(program []uint16) *ROM {
	r := &ROM{}
	copy(r.words[:], program)
	return r
}

// Fetch returns the instruction word at pc.
func (r *ROM) Fetch(pc uint8) uint16 {
	return r.words[pc]
}

// Fetcher combinationally indexes the ROM using thread-0's PC during FETCH,
// and holds the latch steady on every other cycle (spec.md §4.3).
type Fetcher struct {
	rom         *ROM
	instruction uint16
}

// NewFetcher wires a fetcher to the given ROM.
func NewFetcher(rom *ROM) *Fetcher {
	return &Fetcher{rom: rom}
}

// Fetch latches instruction ← ROM[pc0] when coreState is FETCH; outside
// FETCH the latch holds its prior value (spec.md §4.3).
func (f *Fetcher) Fetch(coreState CoreState, pc0 uint8) {
	if coreState != StateFetch {
		return
	}
	f.instruction = f.rom.Fetch(pc0)
}

// Instruction returns the currently latched instruction word.
func (f *Fetcher) Instruction() uint16 { return f.instruction }
