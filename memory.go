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

// Memory is the flat, byte-addressable, single-port RAM shared by every
// thread's LSU (spec.md §3, §4.9). It has no FSM of its own: the memory
// controller's channels own the access timing, and treat every access as
// completing within the cycle it is issued (spec.md §9, "always-ready").
type Memory struct {
	bytes [MemorySize]uint8
}

// NewMemory returns a zeroed 256-byte memory.
func NewMemory() *Memory {
	return &Memory{}
}

// Read returns the byte at addr.
func (m *Memory) Read(addr uint8) uint8 {
	return m.bytes[addr]
}

// Write stores value at addr.
func (m *Memory) Write(addr uint8, value uint8) {
	m.bytes[addr] = value
}

// Load copies data into memory starting at address 0, for seeding RAM
// contents before a kernel invocation (spec.md §6, "load-before-start").
// Data longer than MemorySize is truncated.
func (m *Memory) Load(data []uint8) {
	copy(m.bytes[:], data)
}

// Dump returns a copy of the full memory contents, for the host's
// dump-after-done hook (spec.md §6) and the CLI's --dump-ram flag.
func (m *Memory) Dump() [MemorySize]uint8 {
	return m.bytes
}
