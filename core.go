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

// thread bundles one lane's private datapath state: register file, ALU,
// PC/NZP, and load/store unit (spec.md §3's per-thread ownership list).
type thread struct {
	rf     RegFile
	alu    ALU
	pcnzp  PCNZP
	lsu    LSU
	aluOut uint8
}

func (t *thread) reset(blockID, threadID, threadsPerBlock uint8) {
	t.rf.Reset(blockID, threadID, threadsPerBlock)
	t.pcnzp.Reset()
	t.lsu.Reset()
	t.aluOut = 0
}

// Core is one lockstep warp: a scheduler, a fetcher sharing one ROM, one
// decoder, and threadsPerBlock private thread datapaths (spec.md §4,
// "Core: one lockstep warp pipeline").
type Core struct {
	id int

	scheduler *Scheduler
	fetcher   *Fetcher
	decoder   Decoder
	decoded   *DecodedControl

	threads []*thread

	consumerBase int // this core's first consumer index into the shared memory controller
}

// NewCore builds a core with threadsPerBlock thread lanes sharing rom,
// whose LSUs occupy consumer indices [consumerBase, consumerBase+threadsPerBlock).
func NewCore(id int, rom *ROM, threadsPerBlock int, consumerBase int) *Core {
	c := &Core{
		id:           id,
		scheduler:    NewScheduler(),
		fetcher:      NewFetcher(rom),
		threads:      make([]*thread, threadsPerBlock),
		consumerBase: consumerBase,
	}
	for i := range c.threads {
		c.threads[i] = &thread{}
		c.threads[i].lsu.consumer = consumerBase + i
	}
	c.decoded = &DecodedControl{}
	return c
}

// Done reports the core's core_done output.
func (c *Core) Done() bool { return c.scheduler.Done() }

// State exposes the scheduler's pipeline stage, for tracing and the CLI.
func (c *Core) State() CoreState { return c.scheduler.State() }

// ThreadRegister reads register reg out of thread threadIdx's register
// file, for tests and the CLI's state dump.
func (c *Core) ThreadRegister(threadIdx int, reg uint8) uint8 {
	return c.threads[threadIdx].rf.Read(reg)
}

// ThreadNZP reads thread threadIdx's condition flags.
func (c *Core) ThreadNZP(threadIdx int) uint8 {
	return c.threads[threadIdx].pcnzp.NZP()
}

// NumThreads reports how many thread lanes this core has.
func (c *Core) NumThreads() int { return len(c.threads) }

// consumerLSUs appends this core's LSUs, in thread order, to out — used to
// build the machine-wide consumer slice the memory controller arbitrates
// over (spec.md §4.9, "C = cores × threads-per-block").
func (c *Core) consumerLSUs(out []*LSU) []*LSU {
	for _, t := range c.threads {
		out = append(out, &t.lsu)
	}
	return out
}

// applyReset forces the scheduler and every thread datapath back to their
// initial state; GPU.Reset uses it for a machine-wide reset. The
// dispatcher's per-core reset pulse resets only the scheduler (see GPU.tick).
func (c *Core) applyReset() {
	c.scheduler.Reset()
	for _, t := range c.threads {
		t.reset(0, 0, 0)
	}
}

// phase1 runs the combinational/datapath half of one cycle: fetch, decode,
// per-thread request issue, and ALU/PC evaluation, all gated by the
// scheduler's current stage (spec.md §4.2–§4.7). It must run before the
// shared memory controller's Tick for this cycle. Register/flag writeback
// happens afterward, in phase2 — see that method's comment for why.
func (c *Core) phase1(start bool, blockID, threadCount uint8) (stageSnapshot CoreState) {
	s := c.scheduler.State()
	stageSnapshot = s

	if s == StateIdle && start {
		for j, t := range c.threads {
			t.reset(blockID, uint8(j), threadCount)
		}
	}

	c.fetcher.Fetch(s, c.threads[0].pcnzp.PC())

	if s == StateDecode {
		c.decoded = c.decoder.Decode(c.fetcher.Instruction())
	}

	if s == StateRequest {
		for _, t := range c.threads {
			rs := t.rf.Read(c.decoded.rs)
			rt := t.rf.Read(c.decoded.rt)
			t.lsu.Request(s, c.decoded.memRE, c.decoded.memWE, rs, rt)
		}
	}

	if s == StateExecute {
		for _, t := range c.threads {
			rs := t.rf.Read(c.decoded.rs)
			rt := t.rf.Read(c.decoded.rt)
			t.aluOut = t.alu.Eval(c.decoded.aluCtrl, c.decoded.aluOutMux, rs, rt)
			t.pcnzp.Execute(c.decoded.nextPCMux, c.decoded.nzpMask, c.decoded.imm8)
		}
	}

	return stageSnapshot
}

// phase2 runs after the shared memory controller has ticked: it performs the
// UPDATE-stage register/flag writeback, advances each LSU's stage-gated
// transitions, computes the stall predicate, and drives the scheduler into
// its next state (spec.md §4.2, §4.4–§4.8, §9 note 1).
//
// Writeback is done here rather than in phase1 because an LSU's read result
// (RFMuxLSU) is only latched by the memory controller's Tick — which runs
// between phase1 and phase2 — so a thread whose load is served on the very
// UPDATE cycle that resolves the stall would otherwise write back the LSU's
// stale, not-yet-latched output (spec.md §8 scenario 6, contended LDRs).
func (c *Core) phase2(s CoreState, start bool, blockID, threadCount uint8) {
	if s == StateUpdate {
		for _, t := range c.threads {
			var writeback uint8
			switch c.decoded.rfMux {
			case RFMuxALU:
				writeback = t.aluOut
			case RFMuxLSU:
				writeback = t.lsu.Out()
			case RFMuxImm:
				writeback = c.decoded.imm8
			}
			t.rf.Write(c.decoded.rd, writeback, c.decoded.rfWE)
			t.pcnzp.Update(c.decoded.nzpWE, t.aluOut)
		}
	}

	blocking := false
	for _, t := range c.threads {
		t.lsu.AdvanceOnUpdate(s)
		t.lsu.AdvanceOnLeaveUpdate(s)
		if t.lsu.Blocking() {
			blocking = true
		}
	}

	retIsRET := s == StateUpdate && c.decoded.ret
	c.scheduler.Advance(start, blockID, threadCount, retIsRET, blocking)
}
