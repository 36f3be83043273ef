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

func TestMemoryReadWrite(t *testing.T) {
	m := NewMemory()

	m.Write(10, 42)
	if got := m.Read(10); got != 42 {
		t.Errorf("Read(10) = %d, want 42", got)
	}
	if got := m.Read(11); got != 0 {
		t.Errorf("Read(11) = %d, want 0 (unwritten)", got)
	}
}

func TestMemoryLoad(t *testing.T) {
	m := NewMemory()
	m.Load([]uint8{1, 2, 3})

	for i, want := range []uint8{1, 2, 3} {
		if got := m.Read(uint8(i)); got != want {
			t.Errorf("Read(%d) = %d, want %d", i, got, want)
		}
	}
}

func TestMemoryDump(t *testing.T) {
	m := NewMemory()
	m.Write(255, 0xAB)

	dump := m.Dump()
	if dump[255] != 0xAB {
		t.Errorf("Dump()[255] = 0x%02X, want 0xAB", dump[255])
	}
	if len(dump) != MemorySize {
		t.Errorf("len(Dump()) = %d, want %d", len(dump), MemorySize)
	}
}

func TestParseROMImage(t *testing.T) {
	data := []byte{0xA5, 0xD6, 2, 0, 0x00, 0x90, 0x00, 0xF0}
	words, err := ParseROMImage(data)
	if err != nil {
		t.Fatalf("ParseROMImage: %v", err)
	}
	want := []uint16{0x9000, 0xF000}
	if len(words) != len(want) {
		t.Fatalf("len(words) = %d, want %d", len(words), len(want))
	}
	for i := range want {
		if words[i] != want[i] {
			t.Errorf("words[%d] = 0x%04X, want 0x%04X", i, words[i], want[i])
		}
	}
}

func TestParseROMImageBadMagic(t *testing.T) {
	data := []byte{0x00, 0x00, 0, 0}
	if _, err := ParseROMImage(data); err == nil {
		t.Fatal("expected error for bad magic, got nil")
	}
}

func TestParseROMImageTruncated(t *testing.T) {
	data := []byte{0xA5, 0xD6, 2, 0, 0x00, 0x90}
	if _, err := ParseROMImage(data); err == nil {
		t.Fatal("expected error for truncated rom, got nil")
	}
}
