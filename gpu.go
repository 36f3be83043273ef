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

// GPU is the top-level machine: it instantiates the dispatcher, one core
// per block slot, and the shared memory controller, and wires every LSU to
// it (spec.md §2, "Top-level wiring"). GPU is the type the host control
// surface (spec.md §6.2) is implemented on.
type GPU struct {
	dispatcher *Dispatcher
	cores      []*Core
	rom        *ROM
	mem        *Memory
	memctrl    *MemoryController

	threadsPerBlock int
	threadCount     uint8

	cycles     uint64
	lastDone   []bool
	tracer     *Tracer
}

// GPUConfig configures machine geometry at construction time (spec.md §3's
// compile-time constants, turned into runtime config for this simulator).
type GPUConfig struct {
	NumCores        int
	ThreadsPerBlock int
	Channels        int
}

// DefaultGPUConfig mirrors spec.md's stated defaults (B=4, K=2) plus enough
// cores to run every boundary scenario in spec.md §8 without reassignment
// stalls.
func DefaultGPUConfig() GPUConfig {
	return GPUConfig{
		NumCores:        4,
		ThreadsPerBlock: DefaultThreadsPerBlock,
		Channels:        DefaultChannels,
	}
}

// NewGPU builds a machine around the given ROM image.
func NewGPU(rom []uint16, cfg GPUConfig) *GPU {
	g := &GPU{
		rom:             NewROM(rom),
		mem:             NewMemory(),
		threadsPerBlock: cfg.ThreadsPerBlock,
	}

	g.cores = make([]*Core, cfg.NumCores)
	for i := range g.cores {
		g.cores[i] = NewCore(i, g.rom, cfg.ThreadsPerBlock, i*cfg.ThreadsPerBlock)
	}

	g.dispatcher = NewDispatcher(cfg.NumCores, uint8(cfg.ThreadsPerBlock))
	g.memctrl = NewMemoryController(cfg.Channels, cfg.NumCores*cfg.ThreadsPerBlock)
	g.lastDone = make([]bool, cfg.NumCores)
	return g
}

// SetTracer installs a tracer; nil disables tracing.
func (g *GPU) SetTracer(t *Tracer) { g.tracer = t }

// Memory exposes the flat RAM for load-before-start and dump-after-done
// hooks (spec.md §6).
func (g *GPU) Memory() *Memory { return g.mem }

// Core exposes core i, for tests and the CLI's state dump.
func (g *GPU) Core(i int) *Core { return g.cores[i] }

// NumCores reports how many cores this machine has.
func (g *GPU) NumCores() int { return len(g.cores) }

// Cycles returns the number of clock ticks executed since the last Reset.
func (g *GPU) Cycles() uint64 { return g.cycles }

// Reset asserts reset for a cycle and returns every component to its
// initial state (spec.md §6.2).
func (g *GPU) Reset() {
	g.dispatcher.Reset()
	g.memctrl.Reset()
	for _, c := range g.cores {
		c.applyReset()
	}
	for i := range g.lastDone {
		g.lastDone[i] = false
	}
	g.cycles = 0
}

// SetThreadCount writes the Device Control Register (spec.md §6.2).
func (g *GPU) SetThreadCount(n uint8) {
	g.threadCount = n
}

// Start pulses the start signal for one cycle (spec.md §6.2).
func (g *GPU) Start() {
	g.dispatcher.Start(g.threadCount)
}

// Done queries the kernel-completion output (spec.md §6.2).
func (g *GPU) Done() bool {
	return g.dispatcher.Done()
}

// Step advances the clock by n ticks (spec.md §6.2, default 1).
func (g *GPU) Step(n ...uint32) {
	count := uint32(1)
	if len(n) > 0 {
		count = n[0]
	}
	for i := uint32(0); i < count; i++ {
		g.tick()
	}
}

// tick runs exactly one discrete-time synchronous cycle across the whole
// machine: dispatcher assignment/completion, per-core datapath evaluation,
// one global memory-controller arbitration pass, then per-core writeback and
// stage advancement (spec.md §5's two-copy current/next discipline — phase1
// reads only state settled at the end of the previous tick, and every
// sequential update below commits before the next tick begins). Writeback is
// deferred to phase2, after the memory controller's Tick, so a load served on
// this very cycle is visible to the register file it writes back to — see
// Core.phase2's comment.
func (g *GPU) tick() {
	if g.tracer != nil {
		g.tracer.TracePreCycle(g)
	}

	assignments := g.dispatcher.Tick(g.lastDone)

	stages := make([]CoreState, len(g.cores))
	for i, c := range g.cores {
		if assignments[i].reset {
			// The dispatcher's reset pulse returns the scheduler to IDLE and
			// clears core_done; thread datapaths keep their state until the
			// next block assignment re-seeds them in phase1.
			c.scheduler.Reset()
		}
		stages[i] = c.phase1(assignments[i].start, assignments[i].blockID, assignments[i].threadCount)
	}

	consumers := make([]*LSU, 0, len(g.cores)*g.threadsPerBlock)
	for _, c := range g.cores {
		consumers = c.consumerLSUs(consumers)
	}
	g.memctrl.Tick(consumers, g.mem)

	for i, c := range g.cores {
		c.phase2(stages[i], assignments[i].start, assignments[i].blockID, assignments[i].threadCount)
		g.lastDone[i] = c.Done()
	}

	g.cycles++

	if g.tracer != nil {
		g.tracer.TracePostCycle(g)
	}
}

// DumpRAM formats the full 256-byte memory image as a hex listing, 16
// bytes per row, grounded on the teacher's printSpecialRegisters-style
// formatted state dump (SPEC_FULL.md §9).
func (g *GPU) DumpRAM() string {
	dump := g.mem.Dump()
	s := ""
	for row := 0; row < MemorySize/16; row++ {
		s += fmt.Sprintf("%02X: ", row*16)
		for col := 0; col < 16; col++ {
			s += fmt.Sprintf("%02X ", dump[row*16+col])
		}
		s += "\n"
	}
	return s
}
