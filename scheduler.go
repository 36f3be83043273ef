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

// Scheduler drives one core's pipeline FSM over FETCH→DECODE→REQUEST→
// EXECUTE→UPDATE (spec.md §4.2). It holds no thread-level state itself —
// Core owns the fetcher, decoder and per-thread datapaths this FSM gates.
type Scheduler struct {
	state CoreState

	blockID         uint8
	threadsPerBlock uint8

	done bool
}

// NewScheduler returns a scheduler reset to IDLE.
func NewScheduler() *Scheduler {
	s := &Scheduler{}
	s.Reset()
	return s
}

// Reset forces the scheduler to IDLE and clears its latched block
// assignment, per the dispatcher's reset-pulse contract (spec.md §4.1,
// §9 note 3).
func (s *Scheduler) Reset() {
	s.state = StateIdle
	s.blockID = 0
	s.threadsPerBlock = 0
	s.done = false
}

// State returns the scheduler's current pipeline stage.
func (s *Scheduler) State() CoreState { return s.state }

// Done reports the core_done output.
func (s *Scheduler) Done() bool { return s.done }

// BlockID and ThreadsPerBlock return the currently latched block
// assignment, valid from IDLE→FETCH onward.
func (s *Scheduler) BlockID() uint8         { return s.blockID }
func (s *Scheduler) ThreadsPerBlock() uint8 { return s.threadsPerBlock }

// Advance runs one cycle of the scheduler FSM.
//
//   - start/blockID/threadCount are the dispatcher's per-core assignment
//     inputs, consulted only in IDLE.
//   - retIsRET reports whether the instruction retiring this cycle (valid
//     only when state==UPDATE) was RET.
//   - lsuBlocking reports whether any thread's LSU is still REQUESTING or
//     WAITING (valid only when state==UPDATE); the stall predicate treats
//     IDLE and DONE as non-blocking (spec.md §9 note 1).
func (s *Scheduler) Advance(start bool, blockID, threadCount uint8, retIsRET, lsuBlocking bool) {
	switch s.state {
	case StateIdle:
		if !start {
			return
		}
		s.blockID = blockID
		s.threadsPerBlock = threadCount
		s.done = false
		s.state = StateFetch

	case StateFetch:
		s.state = StateDecode

	case StateDecode:
		s.state = StateRequest

	case StateRequest:
		s.state = StateExecute

	case StateExecute:
		s.state = StateUpdate

	case StateUpdate:
		if retIsRET {
			s.done = true
			s.state = StateIdle
			return
		}
		if !lsuBlocking {
			s.state = StateFetch
		}
		// else: stall in UPDATE until every LSU is IDLE or DONE.
	}
}
