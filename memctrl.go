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

// channel is one memory-controller arbitration lane (spec.md §4.9).
type channel struct {
	state    ChannelState
	consumer int // index into the consumer slice; -1 when idle
	isWrite  bool
	addr     uint8
	writeVal uint8
	readVal  uint8
}

// MemoryController arbitrates C consumer LSUs across K channels onto one
// memory port. servedBitmap is the mutual-exclusion record described in
// spec.md §4.9 and tested by invariant 1 in spec.md §8: served[j] is true
// iff some channel currently holds consumer j.
type MemoryController struct {
	channels []channel
	served   []bool
}

// NewMemoryController builds a controller for numChannels channels serving
// numConsumers LSUs (spec.md §4.9 default K=2).
func NewMemoryController(numChannels, numConsumers int) *MemoryController {
	mc := &MemoryController{
		channels: make([]channel, numChannels),
		served:   make([]bool, numConsumers),
	}
	mc.Reset()
	return mc
}

// Reset returns every channel to IDLE and clears the served bitmap.
func (mc *MemoryController) Reset() {
	for i := range mc.channels {
		mc.channels[i] = channel{state: ChanIdle, consumer: -1}
	}
	for i := range mc.served {
		mc.served[i] = false
	}
}

// Served reports whether consumer j is currently claimed by some channel.
func (mc *MemoryController) Served(j int) bool { return mc.served[j] }

// ChannelState exposes channel i's state, for tracing.
func (mc *MemoryController) ChannelState(i int) ChannelState { return mc.channels[i].state }

// Tick advances every channel's FSM by one cycle, in ascending channel
// index order (spec.md §4.9). consumers is indexed by the same consumer ID
// used by servedBitmap — one entry per thread's LSU across the whole
// machine, in core-major, thread-minor order.
func (mc *MemoryController) Tick(consumers []*LSU, mem *Memory) {
	for i := range mc.channels {
		ch := &mc.channels[i]
		switch ch.state {
		case ChanIdle:
			mc.tryClaim(ch, consumers)

		case ChanProcessing:
			// Memory is always-ready in this model (spec.md §9): the
			// access completes within the same cycle it is issued, and the
			// result is handed to the consumer in that same cycle too,
			// instead of waiting for a separate WAITING-state tick.
			if ch.isWrite {
				mem.Write(ch.addr, ch.writeVal)
			} else {
				ch.readVal = mem.Read(ch.addr)
			}
			ch.state = ChanWaiting
			mc.serviceWaiting(ch, consumers)

		case ChanWaiting:
			mc.serviceWaiting(ch, consumers)

		case ChanCompletion:
			mc.served[ch.consumer] = false
			ch.consumer = -1
			ch.state = ChanIdle
		}
	}
}

// tryClaim scans consumers in ascending index order for the first unserved
// one asserting a request, per spec.md §4.9's IDLE behavior.
func (mc *MemoryController) tryClaim(ch *channel, consumers []*LSU) {
	for j, c := range consumers {
		if mc.served[j] {
			continue
		}
		if !c.ReadValid() && !c.WriteValid() {
			continue
		}
		mc.served[j] = true
		ch.consumer = j
		ch.isWrite = c.WriteValid()
		ch.addr = c.Addr()
		if ch.isWrite {
			ch.writeVal = c.WriteDataOut()
		}
		ch.state = ChanProcessing
		return
	}
}

// serviceWaiting exposes the captured result to the claimed consumer. Once
// the consumer has dropped both of its valid lines — which happens the
// instant its LSU consumes the result via Poll — the channel completes, per
// spec.md §4.9's WAITING exit condition.
func (mc *MemoryController) serviceWaiting(ch *channel, consumers []*LSU) {
	lsu := consumers[ch.consumer]
	if lsu.State() == LSURequesting {
		lsu.Poll(!ch.isWrite, ch.readVal, ch.isWrite)
	}
	if !lsu.ReadValid() && !lsu.WriteValid() {
		ch.state = ChanCompletion
	}
}
