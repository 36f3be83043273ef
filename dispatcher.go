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

// coreAssignment is the dispatcher's per-core output bundle: the signals a
// core's scheduler consults in IDLE (spec.md §4.1).
type coreAssignment struct {
	start       bool
	reset       bool
	blockID     uint8
	threadCount uint8
}

// Dispatcher assigns blocks to cores and aggregates their completion
// (spec.md §4.1). It owns no thread or scheduler state of its own — only
// the block-assignment counters and the per-core signals it drives.
type Dispatcher struct {
	state           DispatchState
	blocksDispatched uint8
	blocksDone       uint8
	totalBlocks      uint8
	threadCount      uint8
	threadsPerBlock  uint8
	done             bool

	numCores int
	started  []bool // per-core: core_start currently asserted
}

// NewDispatcher builds a dispatcher over numCores cores with the given
// block size (spec.md §3, B = THREADS_PER_BLOCK).
func NewDispatcher(numCores int, threadsPerBlock uint8) *Dispatcher {
	d := &Dispatcher{
		numCores:        numCores,
		threadsPerBlock: threadsPerBlock,
		started:         make([]bool, numCores),
	}
	d.Reset()
	return d
}

// Reset returns the dispatcher to IDLE with every counter cleared and every
// core held in reset (spec.md §4.1).
func (d *Dispatcher) Reset() {
	d.state = DispatchIdle
	d.blocksDispatched = 0
	d.blocksDone = 0
	d.totalBlocks = 0
	d.done = false
	for i := range d.started {
		d.started[i] = false
	}
}

// Done reports the kernel-completion output.
func (d *Dispatcher) Done() bool { return d.done }

// State exposes the dispatcher's top-level state, for tracing.
func (d *Dispatcher) State() DispatchState { return d.state }

// Start pulses the start signal: it computes total_blocks and moves to
// DISPATCHING immediately, so the next Tick no longer holds the cores in
// reset and makes the first block assignment (spec.md §4.1).
func (d *Dispatcher) Start(threadCount uint8) {
	d.threadCount = threadCount
	d.state = DispatchDispatching
	d.totalBlocks = ceilDiv(threadCount, d.threadsPerBlock)
	d.blocksDispatched = 0
	d.blocksDone = 0
	d.done = false
}

// ceilDiv computes ceil(n / b), per spec.md §3's block-count formula.
// threadCount == 0 yields 0 blocks, per spec.md §7's "out-of-range start".
func ceilDiv(n, b uint8) uint8 {
	if n == 0 {
		return 0
	}
	return (n + b - 1) / b
}

// Tick runs one cycle of assignment and completion against coreDone — the
// core_done value observed from each core as of the end of the previous
// cycle — and returns this cycle's per-core assignment signals (spec.md
// §4.1). coreReset, once returned true for a core, is consumed by that
// core's applyReset for exactly this one cycle (spec.md §9 note 3).
func (d *Dispatcher) Tick(coreDone []bool) []coreAssignment {
	out := make([]coreAssignment, d.numCores)

	if d.state != DispatchDispatching {
		for i := range out {
			out[i].reset = true
		}
		return out
	}

	for i := 0; i < d.numCores; i++ {
		// Assignment: hand this core the next block if one remains and
		// the core is idle (not already running, not held in reset).
		if d.blocksDispatched < d.totalBlocks && !d.started[i] {
			blockID := d.blocksDispatched
			threads := d.threadsPerBlock
			if blockID == d.totalBlocks-1 {
				threads = d.threadCount - blockID*d.threadsPerBlock
			}
			out[i].start = true
			out[i].blockID = blockID
			out[i].threadCount = threads
			d.started[i] = true
			d.blocksDispatched++
			continue
		}

		// Completion: a core that was started and now reports done is
		// pulsed back into reset and counted.
		if d.started[i] && i < len(coreDone) && coreDone[i] {
			d.started[i] = false
			out[i].reset = true
			d.blocksDone++
		}
	}

	if d.totalBlocks != 0 && d.blocksDone == d.totalBlocks {
		d.done = true
		d.state = DispatchIdle
	}

	return out
}
