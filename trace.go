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

import (
	"fmt"
	"io"
)

// Tracer writes a per-cycle execution trace: dispatcher state, each core's
// pipeline stage and fetched instruction, and the memory controller's
// channel states. Modeled directly on the teacher's writer-based
// TracePreInstruction/TracePostInstruction pair, generalized from one
// thread to one core's warp plus the shared memory controller
// (SPEC_FULL.md §9).
type Tracer struct {
	out io.Writer
}

// NewTracer creates a tracer writing to out.
func NewTracer(out io.Writer) *Tracer {
	return &Tracer{out: out}
}

// TracePreCycle logs the state every component will act on this cycle,
// before the tick's state transitions are applied.
func (t *Tracer) TracePreCycle(g *GPU) {
	fmt.Fprintf(t.out, "\n--- cycle %d ---\n", g.cycles)
	fmt.Fprintf(t.out, "dispatcher: %s done=%v\n", g.dispatcher.State(), g.dispatcher.Done())

	for _, c := range g.cores {
		s := c.State()
		fmt.Fprintf(t.out, "core %d: state=%s done=%v", c.id, s, c.Done())
		if s == StateDecode || s == StateRequest || s == StateExecute || s == StateUpdate {
			fmt.Fprintf(t.out, " inst=0x%04X %q", c.fetcher.Instruction(), disassemble(c.fetcher.Instruction()))
		}
		fmt.Fprintf(t.out, "\n")
		for j, th := range c.threads {
			fmt.Fprintf(t.out, "  thread %d: pc=%d nzp=%s lsu=%s\n", j, th.pcnzp.PC(), nzpMaskName(th.pcnzp.NZP()), th.lsu.State())
		}
	}
}

// TracePostCycle logs the memory controller's channel states after the
// tick's single global arbitration pass.
func (t *Tracer) TracePostCycle(g *GPU) {
	for i := range g.memctrl.channels {
		fmt.Fprintf(t.out, "channel %d: %s\n", i, g.memctrl.ChannelState(i))
	}
}

// TraceFault logs a host-detected fault (timeout, bad ROM, misconfigured
// thread count) — these never interrupt in-simulation state machines
// (spec.md §7); they are purely a host-side report.
func (t *Tracer) TraceFault(kind string, detail string) {
	fmt.Fprintf(t.out, "\n*** FAULT: %s: %s\n", kind, detail)
}
